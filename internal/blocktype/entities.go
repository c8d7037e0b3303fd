package blocktype

import (
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/blockmesh/internal/biome"
	"github.com/Faultbox/blockmesh/internal/emit"
	"github.com/Faultbox/blockmesh/internal/geometry"
	"github.com/Faultbox/blockmesh/internal/texture"
	"github.com/Faultbox/blockmesh/internal/world"
)

// Types in this file read the chunk's tile entity tables as well as the cell.

func localPos(x, y, z int) world.LocalPos {
	return world.LocalPos{X: x, Y: y, Z: z}
}

// Bed is one half of a bed, modelled with its head to the south.
type Bed struct {
	base
	headTop, footTop   texture.SubTexture
	headSide, footSide texture.SubTexture
	headEdge, footEdge texture.SubTexture
}

func newBed(s kindArgs) BlockType {
	return &Bed{
		base:     s.base,
		headTop:  s.b.required(s.def, "headTop"),
		footTop:  s.b.required(s.def, "footTop"),
		headSide: s.b.required(s.def, "headSide"),
		footSide: s.b.required(s.def, "footSide"),
		headEdge: s.b.slot(s.def, "headEdge"),
		footEdge: s.b.slot(s.def, "footEdge"),
	}
}

func bedFacing(d int) string {
	return [...]string{"south", "west", "north", "east"}[d&3]
}

// bedColor returns the dye tint of a bed: from the block name in modern
// worlds, from the tile entity in legacy ones.
func bedColor(ctx *emit.Context, c world.Cell, x, y, z int) (colorful.Color, bool) {
	if !c.IsLegacy() {
		if d, ok := biome.DyeByName(strings.TrimSuffix(c.Name, "_bed")); ok {
			return d.Color(ctx.LegacyColors()), true
		}
		return colorful.Color{}, false
	}
	e, ok := ctx.Chunk.Beds[localPos(x, y, z)]
	if !ok {
		return colorful.Color{}, false
	}
	d, ok := biome.DyeByID(e.Color)
	if !ok {
		return colorful.Color{}, false
	}
	return d.Color(ctx.LegacyColors()), true
}

func (t *Bed) Emit(ctx *emit.Context, x, y, z int, mode emit.Mode) {
	self := cellAt(ctx, x, y, z)
	head := self.Props.Is("part", "head") || (self.IsLegacy() && self.Data&8 != 0)

	var tex faces
	if head {
		tex = faces{up: t.headTop, east: t.headSide, west: t.headSide, south: t.headEdge}
	} else {
		tex = faces{up: t.footTop, east: t.footSide, west: t.footSide, north: t.footEdge}
	}

	color := emit.Gray(cellLight(ctx, x, y, z))
	if c, ok := bedColor(ctx, self, x, y, z); ok {
		color = emit.Tinted(color.X(), c)
	}

	var sub geometry.SubMesh
	addBox(&sub, px(0, 3, 0, 16, 9, 16), tex, color)
	push(ctx, &sub, geometry.Solid, x, y, z, yawFor(facing(self, bedFacing)))
}

// Sign is a standing sign on a post, or a board on a wall. Text is not drawn.
type Sign struct {
	base
	tex  texture.SubTexture
	wall bool
}

func newSign(s kindArgs) BlockType {
	return &Sign{base: s.base, tex: s.b.required(s.def, "texture"), wall: s.b.flag(s.def, "isWall")}
}

// Sign board layout in the 64x32 sign texture.
const (
	signWidth     = 16
	signHeight    = 8
	signThickness = 2
)

func (t *Sign) Emit(ctx *emit.Context, x, y, z int, mode emit.Mode) {
	self := cellAt(ctx, x, y, z)
	cut := sheet(t.tex, 64, 32)
	board := faces{
		north: cut(28, 2, 52, 14),
		south: cut(2, 2, 26, 14),
		up:    cut(2, 0, 26, 2),
		down:  cut(26, 0, 50, 2),
		east:  cut(0, 2, 2, 14),
		west:  cut(26, 2, 28, 14),
	}
	color := emit.Gray(cellLight(ctx, x, y, z))

	var sub geometry.SubMesh
	if t.wall || strings.Contains(self.Name, "wall_sign") {
		addBoxRaw(&sub, px(0, 4, 0, signWidth, 4+signHeight, signThickness), board, color)
		push(ctx, &sub, geometry.Solid, x, y, z, yawFor(facing(self, legacyFacing)))
		return
	}

	addBoxRaw(&sub, px(0, 8, 7, signWidth, 8+signHeight, 7+signThickness), board, color)
	addBoxRaw(&sub, px(7, 0, 7, 9, 8, 9), same(cut(0, 16, 2, 30)), color)
	push(ctx, &sub, geometry.Solid, x, y, z, geometry.Yaw(90.0/4*float32(signRotation(ctx, self, x, y, z))))
}

// signRotation returns the 0-15 turn of a standing sign.
func signRotation(ctx *emit.Context, c world.Cell, x, y, z int) int {
	if v := c.Props.Get("rotation"); v != "" {
		n, _ := strconv.Atoi(v)
		return n & 15
	}
	if c.IsLegacy() {
		return int(c.Data)
	}
	if e, ok := ctx.Chunk.Signs[localPos(x, y, z)]; ok {
		return e.Rotation & 15
	}
	return 0
}

// Chest draws a single chest or one half of a double chest from the chest
// entity textures.
type Chest struct {
	base
	small, large, ender texture.SubTexture
}

func newChest(s kindArgs) BlockType {
	small := s.b.required(s.def, "small")
	large := s.b.slot(s.def, "large")
	ender := s.b.slot(s.def, "ender")
	if !ender.Valid() {
		ender = small
	}
	return &Chest{base: s.base, small: small, large: large, ender: ender}
}

// chestHalf is "single", "left" or "right".
func chestHalf(ctx *emit.Context, c world.Cell, x, y, z int) string {
	if v := c.Props.Get("type"); v != "" {
		return v
	}
	if e, ok := ctx.Chunk.Chests[localPos(x, y, z)]; ok && e.Kind != "" {
		return e.Kind
	}
	return "single"
}

func isEnderChest(c world.Cell) bool {
	return (c.IsLegacy() && c.ID == 130) || c.Name == "minecraft:ender_chest"
}

func (t *Chest) Emit(ctx *emit.Context, x, y, z int, mode emit.Mode) {
	self := cellAt(ctx, x, y, z)
	half := chestHalf(ctx, self, x, y, z)
	tex := t.small
	switch {
	case isEnderChest(self):
		tex, half = t.ender, "single"
	case half != "single" && t.large.Valid():
		tex = t.large
	default:
		half = "single"
	}

	// The front spans 14 pixels on a single sheet and 30 on a double one.
	w, span := float32(64), float32(14)
	if half != "single" {
		w, span = 128, 30
	}
	cut := sheet(tex, w, 64)
	strip := func(x0, y0, y1 float32) texture.SubTexture {
		switch half {
		case "left":
			return cut(x0, y0, x0+span/2, y1)
		case "right":
			return cut(x0+span/2, y0, x0+span, y1)
		}
		return cut(x0, y0, x0+span, y1)
	}

	lid := faces{
		up:    strip(14, 0, 14),
		south: strip(14, 14, 19),
		north: strip(28+span, 14, 19),
		east:  cut(0, 14, 14, 19),
		west:  cut(0, 14, 14, 19),
	}
	body := faces{
		down:  strip(14+span, 19, 33),
		south: strip(14, 33, 43),
		north: strip(28+span, 33, 43),
		east:  cut(0, 33, 14, 43),
		west:  cut(0, 33, 14, 43),
	}

	x0, x1 := float32(1), float32(15)
	switch half {
	case "left":
		x1 = 16
		lid[east], body[east] = texture.SubTexture{}, texture.SubTexture{}
	case "right":
		x0 = 0
		lid[west], body[west] = texture.SubTexture{}, texture.SubTexture{}
	}

	color := emit.Gray(cellLight(ctx, x, y, z))
	var sub geometry.SubMesh
	addBoxRaw(&sub, px(x0, 0, 1, x1, 10, 15), body, color)
	addBoxRaw(&sub, px(x0, 10, 1, x1, 14, 15), lid, color)
	push(ctx, &sub, geometry.Solid, x, y, z, yawFor(facing(self, legacyFacing)))
}

// Beacon draws the glass, core and obsidian base, and the beam above an
// active beacon. The beam takes the running average colour of the stained
// glass it passes through.
type Beacon struct {
	base
	beam, glass, core, obsidian texture.SubTexture
	models                      ModelEmitter
}

const beamAlpha = 0.4

func newBeacon(s kindArgs) BlockType {
	return &Beacon{
		base:     s.base,
		beam:     s.b.required(s.def, "beam"),
		glass:    s.b.slot(s.def, "glass"),
		core:     s.b.slot(s.def, "beacon"),
		obsidian: s.b.slot(s.def, "obsidian"),
		models:   s.b.opts.Models,
	}
}

func (t *Beacon) Emit(ctx *emit.Context, x, y, z int, mode emit.Mode) {
	self := cellAt(ctx, x, y, z)
	if self.IsLegacy() || t.models == nil || !t.models.EmitBlock(ctx, x, y, z, mode, self) {
		t.emitBase(ctx, x, y, z, mode)
	}
	if e, ok := ctx.Chunk.Beacons[localPos(x, y, z)]; ok && e.Levels > 0 {
		t.emitBeam(ctx, x, y, z, mode)
	}
}

func (t *Beacon) emitBase(ctx *emit.Context, x, y, z int, mode emit.Mode) {
	if t.obsidian.Valid() {
		newPainter(ctx, mode, x, y, z, geometry.Solid).box(px(2, 0.1, 2, 14, 3, 14), same(t.obsidian))
	}
	if t.core.Valid() {
		texel := t.core.Texel()
		p := newPainter(ctx, mode, x, y, z, geometry.Solid)
		p.raw = true
		p.box(px(3, 3, 3, 13, 13, 13), same(t.core.Inset(texel, texel, texel, texel)))
	}
	if t.glass.Valid() {
		newPainter(ctx, mode, x, y, z, geometry.AlphaTest).box(fullBox, same(t.glass))
	}
}

// glassDye returns the dye of a stained glass block or pane.
func glassDye(c world.Cell) (biome.Dye, bool) {
	if c.IsLegacy() {
		if c.ID == 95 || c.ID == 160 {
			return biome.DyeByID(int(c.Data))
		}
		return biome.Dye{}, false
	}
	name, _, ok := strings.Cut(c.Name, "_stained_glass")
	if !ok {
		return biome.Dye{}, false
	}
	return biome.DyeByName(name)
}

func (t *Beacon) emitBeam(ctx *emit.Context, x, y, z int, mode emit.Mode) {
	color := colorful.Color{R: 1, G: 1, B: 1}
	tinted := false
	sides := faces{north: t.beam, south: t.beam, east: t.beam, west: t.beam}

	for by := y + 1; by < ctx.Chunk.Height; by++ {
		c, ok := ctx.Neighbor(mode, x, by, z)
		if !ok {
			break
		}
		if d, ok := glassDye(c); ok {
			dc := d.Color(ctx.LegacyColors())
			if tinted {
				dc = colorful.Color{R: (color.R + dc.R) / 2, G: (color.G + dc.G) / 2, B: (color.B + dc.B) / 2}
			}
			color, tinted = dc, true
		} else if ctx.IsOpaque(mode, x, by, z) {
			break
		}

		light := cellLight(ctx, x, by, z)
		var inner, outer geometry.SubMesh
		addBoxRaw(&inner, px(5, 0, 5, 11, 16, 11), sides, emit.Tinted(light, color))
		addBoxRaw(&outer, px(3, 0, 3, 13, 16, 13), sides, emit.WithAlpha(emit.Tinted(light, color), beamAlpha))
		push(ctx, &inner, geometry.Transparent, x, by, z, geometry.Yaw(45))
		push(ctx, &outer, geometry.Transparent, x, by, z)
	}
}
