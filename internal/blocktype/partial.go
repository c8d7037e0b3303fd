package blocktype

import (
	"strconv"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/blockmesh/internal/biome"
	"github.com/Faultbox/blockmesh/internal/emit"
	"github.com/Faultbox/blockmesh/internal/geometry"
	"github.com/Faultbox/blockmesh/internal/lighting"
	"github.com/Faultbox/blockmesh/internal/texture"
	"github.com/Faultbox/blockmesh/internal/world"
)

// Box is a single fixed cuboid, such as carpet, farmland or an enchanting
// table.
type Box struct {
	base
	box   box
	tex   faces
	blend geometry.BlendMode
	tint  tint
}

func (t *Box) Emit(ctx *emit.Context, x, y, z int, mode emit.Mode) {
	p := newPainter(ctx, mode, x, y, z, t.blend)
	p.shade = t.tint.shade(ctx, x, y, z)
	p.box(t.box, t.tex)
}

func newCarpet(s kindArgs) BlockType {
	return &Box{base: s.base, box: px(0, 0, 0, 16, 1, 16), tex: same(s.b.required(s.def, "texture")), tint: s.tint}
}

func newSoil(s kindArgs) BlockType {
	side := s.b.required(s.def, "side")
	return &Box{base: s.base, box: px(0, 0, 0, 16, 15, 16), tex: sided(side, s.b.required(s.def, "top"), side)}
}

func newEnchantmentTable(s kindArgs) BlockType {
	tex := sided(s.b.required(s.def, "side"), s.b.required(s.def, "top"), s.b.required(s.def, "bottom"))
	return &Box{base: s.base, box: px(0, 0, 0, 16, 12, 16), tex: tex}
}

// Slab is a half block, upper or lower by the 0x8 bit or the type property.
type Slab struct {
	base
	tex faces
}

func newSlab(s kindArgs) BlockType {
	side := s.b.required(s.def, "side", "texture")
	top := s.b.slot(s.def, "top", "texture")
	if !top.Valid() {
		top = side
	}
	return &Slab{base: s.base, tex: sided(side, top, top)}
}

func (t *Slab) Emit(ctx *emit.Context, x, y, z int, mode emit.Mode) {
	self := cellAt(ctx, x, y, z)
	b := px(0, 0, 0, 16, 8, 16)
	switch {
	case self.Props.Is("type", "double"):
		b = fullBox
	case self.Props.Is("type", "top") || (self.IsLegacy() && self.Data&8 != 0):
		b = px(0, 8, 0, 16, 16, 16)
	}
	newPainter(ctx, mode, x, y, z, geometry.Solid).box(b, t.tex)
}

// Snow is a stack of one to eight layers.
type Snow struct {
	base
	tex texture.SubTexture
}

func newSnow(s kindArgs) BlockType {
	return &Snow{base: s.base, tex: s.b.required(s.def, "texture")}
}

func snowLayers(c world.Cell) int {
	if v := c.Props.Get("layers"); v != "" {
		n, _ := strconv.Atoi(v)
		return clampIndex(n-1, 8) + 1
	}
	return int(c.Data&7) + 1
}

func (t *Snow) Emit(ctx *emit.Context, x, y, z int, mode emit.Mode) {
	h := float32(snowLayers(cellAt(ctx, x, y, z))*2) / 16
	newPainter(ctx, mode, x, y, z, geometry.Solid).box(box{max: mgl32.Vec3{1, h, 1}}, same(t.tex))
}

// PressurePlate sinks to half its height when powered.
type PressurePlate struct {
	base
	tex texture.SubTexture
}

func newPressurePlate(s kindArgs) BlockType {
	return &PressurePlate{base: s.base, tex: s.b.required(s.def, "texture")}
}

func (t *PressurePlate) Emit(ctx *emit.Context, x, y, z int, mode emit.Mode) {
	self := cellAt(ctx, x, y, z)
	h := float32(1)
	if self.Props.Is("powered", "true") || (self.IsLegacy() && self.Data&1 != 0) {
		h = 0.5
	}
	newPainter(ctx, mode, x, y, z, geometry.Solid).box(px(1, 0, 1, 15, h, 15), same(t.tex))
}

// Cake loses a slice from its west side per bite.
type Cake struct {
	base
	top, side, interior texture.SubTexture
}

func newCake(s kindArgs) BlockType {
	side := s.b.required(s.def, "side")
	interior := s.b.slot(s.def, "interior")
	if !interior.Valid() {
		interior = side
	}
	return &Cake{base: s.base, top: s.b.required(s.def, "top"), side: side, interior: interior}
}

func (t *Cake) Emit(ctx *emit.Context, x, y, z int, mode emit.Mode) {
	self := cellAt(ctx, x, y, z)
	bites := int(self.Data & 7)
	if v := self.Props.Get("bites"); v != "" {
		bites, _ = strconv.Atoi(v)
	}
	bites = clampIndex(bites, 7)

	tex := sided(t.side, t.top, t.side)
	if bites > 0 {
		tex[west] = t.interior
	}
	b := px(1+2*float32(bites), 0, 1, 15, 8, 15)
	newPainter(ctx, mode, x, y, z, geometry.AlphaTest).box(b, tex)
}

// Cactus has its sides inset by one pixel.
type Cactus struct {
	base
	side, top, bottom texture.SubTexture
}

func newCactus(s kindArgs) BlockType {
	top := s.b.required(s.def, "top")
	bottom := s.b.slot(s.def, "bottom")
	if !bottom.Valid() {
		bottom = top
	}
	return &Cactus{base: s.base, side: s.b.required(s.def, "side"), top: top, bottom: bottom}
}

func (t *Cactus) Emit(ctx *emit.Context, x, y, z int, mode emit.Mode) {
	p := newPainter(ctx, mode, x, y, z, geometry.AlphaTest)
	p.box(fullBox, faces{up: t.top, down: t.bottom})
	p.box(px(1, 0, 1, 15, 16, 15), faces{north: t.side, south: t.side, east: t.side, west: t.side})
}

// EnderPortalFrame is a thirteen pixel high block with an optional eye.
type EnderPortalFrame struct {
	base
	top, side, bottom, eye texture.SubTexture
}

func newEnderPortalFrame(s kindArgs) BlockType {
	return &EnderPortalFrame{
		base:   s.base,
		top:    s.b.required(s.def, "top"),
		side:   s.b.required(s.def, "side"),
		bottom: s.b.required(s.def, "bottom"),
		eye:    s.b.slot(s.def, "eye"),
	}
}

func (t *EnderPortalFrame) Emit(ctx *emit.Context, x, y, z int, mode emit.Mode) {
	p := newPainter(ctx, mode, x, y, z, geometry.Solid)
	p.box(px(0, 0, 0, 16, 13, 16), sided(t.side, t.top, t.bottom))

	self := cellAt(ctx, x, y, z)
	if t.eye.Valid() && (self.Props.Is("eye", "true") || (self.IsLegacy() && self.Data&4 != 0)) {
		p.box(px(4, 13, 4, 12, 16, 12), same(t.eye))
	}
}

// Cauldron is a hollow basin with an optional water surface.
type Cauldron struct {
	base
	top, side, bottom, water texture.SubTexture
}

func newCauldron(s kindArgs) BlockType {
	side := s.b.required(s.def, "side")
	return &Cauldron{
		base:   s.base,
		top:    s.b.required(s.def, "top"),
		side:   side,
		bottom: s.b.slot(s.def, "bottom", "side"),
		water:  s.b.slot(s.def, "water"),
	}
}

func (t *Cauldron) Emit(ctx *emit.Context, x, y, z int, mode emit.Mode) {
	p := newPainter(ctx, mode, x, y, z, geometry.AlphaTest)
	p.box(fullBox, sided(t.side, t.top, t.bottom))

	// Inner walls and floor face into the basin.
	for _, s := range [...]side{north, south, east, west} {
		p.quad(wallQuad(s, 2.0/16), t.side, s.light(), false)
	}
	p.quad(wallQuad(down, 3.0/16), t.bottom, lighting.FaceTop, false)

	self := cellAt(ctx, x, y, z)
	level := int(self.Data & 3)
	if v := self.Props.Get("level"); v != "" {
		level, _ = strconv.Atoi(v)
	}
	if level == 0 || !t.water.Valid() {
		return
	}
	w := newPainter(ctx, mode, x, y, z, geometry.Transparent)
	w.shade = alphaShade(biomeTint(biome.Water).shade(ctx, x, y, z), waterAlpha)
	w.quad(wallQuad(down, float32(6+3*level)/16), t.water, lighting.FaceTop, false)
}

// FlowerPot is a small pot filled with dirt and, when data is set, a plant.
type FlowerPot struct {
	base
	tex, dirt, plant texture.SubTexture
}

const (
	potWidth  = 6
	potHeight = 6
	potDirt   = 4
)

func newFlowerPot(s kindArgs) BlockType {
	return &FlowerPot{
		base:  s.base,
		tex:   s.b.required(s.def, "texture"),
		dirt:  s.b.slot(s.def, "dirt"),
		plant: s.b.slot(s.def, "plant"),
	}
}

func (t *FlowerPot) Emit(ctx *emit.Context, x, y, z int, mode emit.Mode) {
	lo, hi := float32(8-potWidth/2), float32(8+potWidth/2)
	p := newPainter(ctx, mode, x, y, z, geometry.AlphaTest)
	p.box(px(lo, 0, lo, hi, potHeight, hi), faces{north: t.tex, south: t.tex, east: t.tex, west: t.tex, down: t.tex})
	if t.dirt.Valid() {
		p.box(px(lo+1, 0, lo+1, hi-1, potDirt, hi-1), faces{up: t.dirt})
	}

	self := cellAt(ctx, x, y, z)
	if t.plant.Valid() && (self.Data != 0 || (!self.IsLegacy() && self.Name != "minecraft:flower_pot")) {
		cross(p, t.plant, 0.75, potDirt/16.0)
	}
}
