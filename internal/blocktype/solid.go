package blocktype

import (
	"strconv"

	"github.com/Faultbox/blockmesh/internal/biome"
	"github.com/Faultbox/blockmesh/internal/emit"
	"github.com/Faultbox/blockmesh/internal/geometry"
	"github.com/Faultbox/blockmesh/internal/texture"
	"github.com/Faultbox/blockmesh/internal/world"
	"github.com/Faultbox/blockmesh/pkg/formats"
)

func blendOf(def formats.BlockDef) geometry.BlendMode {
	switch {
	case def.Transparent:
		return geometry.Transparent
	case def.AlphaTest:
		return geometry.AlphaTest
	}
	return geometry.Solid
}

// Solid is a full cube with side, top and bottom textures.
type Solid struct {
	base
	tex   faces
	blend geometry.BlendMode
	tint  tint
	// hides, when set, also culls faces against matching neighbours.
	hides func(self, n world.Cell) bool
}

func newSolid(s kindArgs) BlockType {
	side := s.b.required(s.def, "side", "texture")
	top := s.b.slot(s.def, "top", "texture")
	if !top.Valid() {
		top = side
	}
	bottom := s.b.slot(s.def, "bottom", "top", "texture")
	if !bottom.Valid() {
		bottom = top
	}
	t := &Solid{base: s.base, tex: sided(side, top, bottom), blend: blendOf(s.def), tint: s.tint}
	t.solid = t.blend == geometry.Solid
	return t
}

func (t *Solid) Emit(ctx *emit.Context, x, y, z int, mode emit.Mode) {
	p := newPainter(ctx, mode, x, y, z, t.blend)
	p.shade = t.tint.shade(ctx, x, y, z)
	if t.hides != nil {
		self := cellAt(ctx, x, y, z)
		p.hides = func(n world.Cell) bool { return t.hides(self, n) }
	}
	p.box(fullBox, t.tex)
}

func newGlass(s kindArgs) BlockType {
	tex := s.b.required(s.def, "texture")
	return &Solid{base: s.base, tex: same(tex), blend: geometry.AlphaTest, tint: s.tint, hides: sameBlock}
}

func newIce(s kindArgs) BlockType {
	tex := s.b.required(s.def, "texture")
	return &Solid{base: s.base, tex: same(tex), blend: geometry.Transparent, tint: s.tint, hides: sameBlock}
}

func newLeaves(s kindArgs) BlockType {
	tex := s.b.required(s.def, "texture")
	return &Solid{base: s.base, tex: same(tex), blend: geometry.AlphaTest, tint: s.tint.or(biomeTint(biome.Foliage))}
}

func newWorkbench(s kindArgs) BlockType {
	top := s.b.required(s.def, "top")
	side1 := s.b.required(s.def, "side1")
	side2 := s.b.slot(s.def, "side2")
	if !side2.Valid() {
		side2 = side1
	}
	tex := faces{up: top, down: top, north: side1, south: side1, east: side2, west: side2}
	return &Solid{base: base{name: s.base.name, solid: true}, tex: tex, blend: geometry.Solid}
}

// DataSolid is a full cube whose textures are picked by the data value,
// like wool or stained clay.
type DataSolid struct {
	base
	variants []faces
	blend    geometry.BlendMode
	tint     tint
}

func newDataSolid(s kindArgs) BlockType {
	sides := s.b.numbered(s.def, "side")
	tops := s.b.numbered(s.def, "top")
	t := &DataSolid{base: s.base, blend: blendOf(s.def), tint: s.tint}
	t.solid = t.blend == geometry.Solid
	for i, side := range sides {
		top := side
		if i < len(tops) {
			top = tops[i]
		}
		t.variants = append(t.variants, sided(side, top, top))
	}
	return t
}

func (t *DataSolid) Emit(ctx *emit.Context, x, y, z int, mode emit.Mode) {
	d := data(ctx, x, y, z)
	if d >= len(t.variants) {
		ctx.MissingTexture(t.name + ":" + strconv.Itoa(d))
		return
	}
	p := newPainter(ctx, mode, x, y, z, t.blend)
	p.shade = t.tint.shade(ctx, x, y, z)
	p.box(fullBox, t.variants[d])
}

// Log is a pillar whose top texture follows its axis.
type Log struct {
	base
	side, top texture.SubTexture
}

func newLog(s kindArgs) BlockType {
	return &Log{
		base: base{name: s.base.name, solid: true},
		side: s.b.required(s.def, "side"),
		top:  s.b.required(s.def, "top"),
	}
}

// axis reads the axis property or the 0x4/0x8 data bits.
func logAxis(c world.Cell) string {
	if a := c.Props.Get("axis"); a != "" {
		return a
	}
	switch c.Data & 0xC {
	case 0x4:
		return "x"
	case 0x8:
		return "z"
	case 0xC:
		return "none"
	}
	return "y"
}

func (t *Log) Emit(ctx *emit.Context, x, y, z int, mode emit.Mode) {
	var tex faces
	switch logAxis(cellAt(ctx, x, y, z)) {
	case "x":
		tex = faces{up: t.side, down: t.side, north: t.side, south: t.side, east: t.top, west: t.top}
	case "z":
		tex = faces{up: t.side, down: t.side, north: t.top, south: t.top, east: t.side, west: t.side}
	case "none":
		tex = same(t.side)
	default:
		tex = sided(t.side, t.top, t.top)
	}
	newPainter(ctx, mode, x, y, z, geometry.Solid).box(fullBox, tex)
}

// Grass has a tinted top, dirt sides with a tinted overlay and snowy sides
// under snow.
type Grass struct {
	base
	dirtSide, grassSide, snowSide texture.SubTexture
	top, bottom                   texture.SubTexture
	betterGrass                   string
}

func newGrass(s kindArgs) BlockType {
	return &Grass{
		base:        base{name: s.base.name, solid: true},
		dirtSide:    s.b.required(s.def, "dirtSide"),
		grassSide:   s.b.slot(s.def, "grassSide"),
		snowSide:    s.b.slot(s.def, "snowSide"),
		top:         s.b.required(s.def, "top"),
		bottom:      s.b.required(s.def, "bottom", "dirtSide"),
		betterGrass: s.def.BetterGrass,
	}
}

func isSnow(c world.Cell) bool {
	if c.IsLegacy() {
		return c.ID == 78 || c.ID == 80
	}
	return c.Name == "minecraft:snow" || c.Name == "minecraft:snow_block"
}

func (t *Grass) Emit(ctx *emit.Context, x, y, z int, mode emit.Mode) {
	above, _ := ctx.Neighbor(mode, x, y+1, z)
	if isSnow(above) && t.snowSide.Valid() {
		newPainter(ctx, mode, x, y, z, geometry.Solid).box(fullBox, sided(t.snowSide, t.top, t.bottom))
		return
	}

	green := ctx.Tint(biome.Grass, x, y, z)
	p := newPainter(ctx, mode, x, y, z, geometry.Solid)
	p.box(fullBox, faces{down: t.bottom})

	tinted := newPainter(ctx, mode, x, y, z, geometry.Solid)
	tinted.shade = colorShade(green)
	tinted.box(fullBox, faces{up: t.top})

	self := cellAt(ctx, x, y, z)
	for _, sd := range [...]side{north, south, east, west} {
		if t.sideIsTop(ctx, self, x, y, z, sd) {
			var top faces
			top[sd] = t.top
			tinted.box(fullBox, top)
			continue
		}
		var tex faces
		tex[sd] = t.dirtSide
		p.box(fullBox, tex)
		if t.grassSide.Valid() {
			overlay := newPainter(ctx, mode, x, y, z, geometry.AlphaTest)
			overlay.shade = tinted.shade
			var o faces
			o[sd] = t.grassSide
			overlay.box(fullBox, o)
		}
	}
}

// sideIsTop applies the better grass setting: fast draws every side with the
// top texture, fancy only where grass continues down the slope.
func (t *Grass) sideIsTop(ctx *emit.Context, self world.Cell, x, y, z int, sd side) bool {
	switch t.betterGrass {
	case "fast":
		return true
	case "fancy":
		o := sideOffsets[sd]
		below, ok := ctx.Cell(x+o[0], y-1, z+o[2])
		return ok && sameBlock(self, below)
	}
	return false
}

// Furnace is a cube with a front texture on its facing side.
type Furnace struct {
	base
	top, side, front, bottom texture.SubTexture
	// vertical allows the front to face up or down.
	vertical bool
	decode   func(int) string
}

func newFurnace(s kindArgs) BlockType {
	top := s.b.required(s.def, "top")
	return &Furnace{
		base:   base{name: s.base.name, solid: true},
		top:    top,
		bottom: top,
		side:   s.b.required(s.def, "side"),
		front:  s.b.required(s.def, "front"),
		decode: legacyFacing,
	}
}

func newDispenser(s kindArgs) BlockType {
	return &Furnace{
		base:     base{name: s.base.name, solid: true},
		top:      s.b.required(s.def, "top"),
		bottom:   s.b.required(s.def, "topBottom", "top"),
		side:     s.b.required(s.def, "side"),
		front:    s.b.required(s.def, "front"),
		vertical: true,
		decode:   dispenserFacing,
	}
}

func newPumpkin(s kindArgs) BlockType {
	top := s.b.required(s.def, "top")
	return &Furnace{
		base:   base{name: s.base.name, solid: true},
		top:    top,
		bottom: top,
		side:   s.b.required(s.def, "side"),
		front:  s.b.required(s.def, "front"),
		decode: pumpkinFacing,
	}
}

func dispenserFacing(d int) string {
	switch d & 7 {
	case 0:
		return "down"
	case 1:
		return "up"
	}
	return legacyFacing(d & 7)
}

func pumpkinFacing(d int) string {
	return [...]string{"south", "west", "north", "east"}[d&3]
}

var sideByName = map[string]side{
	"up": up, "down": down, "north": north, "south": south, "east": east, "west": west,
}

func (t *Furnace) Emit(ctx *emit.Context, x, y, z int, mode emit.Mode) {
	tex := sided(t.side, t.top, t.bottom)
	f := facing(cellAt(ctx, x, y, z), t.decode)
	if sd, ok := sideByName[f]; ok {
		if (sd == up || sd == down) && t.vertical {
			// The face opposite the front shows the plain end.
			tex = faces{north: t.side, south: t.side, east: t.side, west: t.side, up: t.bottom, down: t.bottom}
		}
		tex[sd] = t.front
	}
	newPainter(ctx, mode, x, y, z, geometry.Solid).box(fullBox, tex)
}
