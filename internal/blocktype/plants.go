package blocktype

import (
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/blockmesh/internal/biome"
	"github.com/Faultbox/blockmesh/internal/emit"
	"github.com/Faultbox/blockmesh/internal/geometry"
	"github.com/Faultbox/blockmesh/internal/lighting"
	"github.com/Faultbox/blockmesh/internal/texture"
	"github.com/Faultbox/blockmesh/internal/world"
)

// cross draws the two diagonal quads of a plant, scaled about the block
// centre and raised by y0.
func cross(p *painter, t texture.SubTexture, scale, y0 float32) {
	lo, hi := 0.5-scale/2, 0.5+scale/2
	y1 := y0 + scale
	p.quad([4]mgl32.Vec3{{lo, y1, lo}, {hi, y1, hi}, {hi, y0, hi}, {lo, y0, lo}}, t, lighting.FaceTop, true)
	p.quad([4]mgl32.Vec3{{lo, y1, hi}, {hi, y1, lo}, {hi, y0, lo}, {lo, y0, hi}}, t, lighting.FaceTop, true)
}

// hash draws the four crossing planes of crops, inset 4 pixels from each side.
func hash(p *painter, t texture.SubTexture) {
	for _, s := range [...]side{north, south, east, west} {
		p.quad(wallQuad(s, 4.0/16), t, lighting.FaceTop, true)
	}
}

// age reads the age property or the low data bits.
func age(c world.Cell, mask uint8) int {
	if v := c.Props.Get("age"); v != "" {
		n, _ := strconv.Atoi(v)
		return n
	}
	return int(c.Data & mask)
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// Plant is a cross-shaped plant. Double-height plants configure a top and a
// bottom texture, chosen by the upper-half bit.
type Plant struct {
	base
	tex, top, bottom texture.SubTexture
	tint             tint
}

func newPlant(s kindArgs) BlockType {
	t := &Plant{
		base:   s.base,
		tex:    s.b.slot(s.def, "texture"),
		top:    s.b.slot(s.def, "top"),
		bottom: s.b.slot(s.def, "bottom"),
		tint:   s.tint,
	}
	if !t.tex.Valid() && !t.bottom.Valid() {
		t.tex = s.b.required(s.def, "texture")
	}
	return t
}

func (t *Plant) Emit(ctx *emit.Context, x, y, z int, mode emit.Mode) {
	tex := t.tex
	if t.top.Valid() && t.bottom.Valid() {
		self := cellAt(ctx, x, y, z)
		tex = t.bottom
		if self.Props.Is("half", "upper") || (self.IsLegacy() && self.Data&8 != 0) {
			tex = t.top
		}
	}
	p := newPainter(ctx, mode, x, y, z, geometry.AlphaTest)
	p.shade = t.tint.shade(ctx, x, y, z)
	cross(p, tex, 1, 0)
}

// TallGrass picks dead bush, tall grass or fern by data; the living ones
// take the grass colour.
type TallGrass struct {
	base
	dead, tall, fern texture.SubTexture
}

func newTallGrass(s kindArgs) BlockType {
	return &TallGrass{
		base: s.base,
		dead: s.b.slot(s.def, "dead"),
		tall: s.b.required(s.def, "tall"),
		fern: s.b.slot(s.def, "fern", "tall"),
	}
}

func (t *TallGrass) Emit(ctx *emit.Context, x, y, z int, mode emit.Mode) {
	self := cellAt(ctx, x, y, z)
	variant := int(self.Data)
	if !self.IsLegacy() {
		variant = 1
		switch {
		case strings.Contains(self.Name, "fern"):
			variant = 2
		case strings.Contains(self.Name, "dead"):
			variant = 0
		}
	}

	p := newPainter(ctx, mode, x, y, z, geometry.AlphaTest)
	switch variant {
	case 0:
		if t.dead.Valid() {
			cross(p, t.dead, 1, 0)
		}
	case 2:
		p.shade = biomeTint(biome.Grass).shade(ctx, x, y, z)
		cross(p, t.fern, 1, 0)
	default:
		p.shade = biomeTint(biome.Grass).shade(ctx, x, y, z)
		cross(p, t.tall, 1, 0)
	}
}

// Crops grow through up to eight textures.
type Crops struct {
	base
	stages []texture.SubTexture
	// stageOf maps the age to a texture index.
	stageOf func(age int) int
}

func newCrops(s kindArgs) BlockType {
	stages := s.b.numbered(s.def, "tex")
	if len(stages) == 0 {
		stages = []texture.SubTexture{s.b.required(s.def, "tex0")}
	}
	return &Crops{base: s.base, stages: stages, stageOf: func(a int) int { return a }}
}

func newNetherWart(s kindArgs) BlockType {
	stages := s.b.numbered(s.def, "texture")
	if len(stages) == 0 {
		stages = []texture.SubTexture{s.b.required(s.def, "texture0")}
	}
	return &Crops{base: s.base, stages: stages, stageOf: func(a int) int { return (a + 1) / 2 }}
}

// Emit draws the stage of the cell's age. An age past the configured stages
// draws nothing and is recorded as a missing texture.
func (t *Crops) Emit(ctx *emit.Context, x, y, z int, mode emit.Mode) {
	a := age(cellAt(ctx, x, y, z), 7)
	i := t.stageOf(a)
	if i < 0 || i >= len(t.stages) {
		ctx.MissingTexture(t.name + ":" + strconv.Itoa(a))
		return
	}
	hash(newPainter(ctx, mode, x, y, z, geometry.AlphaTest), t.stages[i])
}

// LilyPad lies flat on the water surface.
type LilyPad struct {
	base
	tex  texture.SubTexture
	tint tint
}

var lilyPadTint = tint{mode: tintFixed, fixed: mustHex("#208030")}

func newLilyPad(s kindArgs) BlockType {
	return &LilyPad{base: s.base, tex: s.b.required(s.def, "texture"), tint: s.tint.or(lilyPadTint)}
}

func (t *LilyPad) Emit(ctx *emit.Context, x, y, z int, mode emit.Mode) {
	p := newPainter(ctx, mode, x, y, z, geometry.AlphaTest)
	p.shade = t.tint.shade(ctx, x, y, z)
	p.quad(wallQuad(down, 1.0/64), t.tex, lighting.FaceTop, true)
}

// Vines hang on any of the four walls or under the block above.
type Vines struct {
	base
	tex  texture.SubTexture
	tint tint
}

func newVines(s kindArgs) BlockType {
	return &Vines{base: s.base, tex: s.b.required(s.def, "texture"), tint: s.tint.or(biomeTint(biome.Foliage))}
}

// vineBits is the legacy data bit of each wall.
var vineBits = [...]struct {
	side side
	bit  uint8
	prop string
}{
	{south, 1, "south"},
	{west, 2, "west"},
	{north, 4, "north"},
	{east, 8, "east"},
}

func (t *Vines) Emit(ctx *emit.Context, x, y, z int, mode emit.Mode) {
	self := cellAt(ctx, x, y, z)
	p := newPainter(ctx, mode, x, y, z, geometry.AlphaTest)
	p.shade = t.tint.shade(ctx, x, y, z)

	hung := false
	for _, v := range vineBits {
		on := self.Props.Is(v.prop, "true")
		if self.IsLegacy() {
			on = self.Data&v.bit != 0
		}
		if on {
			p.quad(wallQuad(v.side, 0.8/16), t.tex, v.side.light(), true)
			hung = true
		}
	}
	if !hung || self.Props.Is("up", "true") {
		p.quad(wallQuad(up, 0.8/16), t.tex, lighting.FaceTop, true)
	}
}
