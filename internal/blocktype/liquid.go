package blocktype

import (
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/blockmesh/internal/biome"
	"github.com/Faultbox/blockmesh/internal/emit"
	"github.com/Faultbox/blockmesh/internal/geometry"
	"github.com/Faultbox/blockmesh/internal/texture"
	"github.com/Faultbox/blockmesh/internal/world"
)

const waterAlpha = 0.8

// Liquid is water or lava. Its surface drops with the flow level and its
// faces are culled against any liquid or waterlogged neighbour.
type Liquid struct {
	base
	tex   texture.SubTexture
	tint  tint
	blend geometry.BlendMode
	reg   *Registry
}

func newLiquid(s kindArgs) BlockType {
	t := &Liquid{
		base:  base{name: s.base.name, water: true},
		tex:   s.b.required(s.def, "texture"),
		tint:  s.tint,
		blend: geometry.Transparent,
		reg:   s.reg,
	}
	if strings.Contains(strings.ToLower(s.def.Label()), "lava") {
		t.blend = geometry.Solid
	} else {
		t.tint = t.tint.or(biomeTint(biome.Water))
	}
	return t
}

// IsSeaPlant reports whether a block name always stands in water.
func IsSeaPlant(name string) bool {
	return name == "minecraft:kelp" || name == "minecraft:kelp_plant" || strings.Contains(name, "seagrass")
}

// IsWaterlogged reports whether a modern cell also holds water.
func IsWaterlogged(c world.Cell) bool {
	return !c.IsLegacy() && (c.Props.Is("waterlogged", "true") || IsSeaPlant(c.Name))
}

func (t *Liquid) isLiquid(n world.Cell) bool {
	if n.IsAir() {
		return false
	}
	return IsWaterlogged(n) || t.reg.Lookup(n).IsWater()
}

// liquidLevel returns the flow level, 0 for a source. Falling liquid reports 8+.
func liquidLevel(c world.Cell) int {
	if v := c.Props.Get("level"); v != "" {
		n, _ := strconv.Atoi(v)
		return n
	}
	if !c.IsLegacy() {
		return 0
	}
	return int(c.Data)
}

func (t *Liquid) Emit(ctx *emit.Context, x, y, z int, mode emit.Mode) {
	self := cellAt(ctx, x, y, z)

	height := float32(1)
	above, ok := ctx.Neighbor(mode, x, y+1, z)
	if !ok || !t.isLiquid(above) {
		if level := liquidLevel(self); level < 8 {
			height = float32(8-level) / 9
		}
	}

	p := newPainter(ctx, mode, x, y, z, t.blend)
	p.hides = t.isLiquid
	p.shade = t.tint.shade(ctx, x, y, z)
	if t.blend == geometry.Transparent {
		p.shade = alphaShade(p.shade, waterAlpha)
	}
	p.box(box{max: mgl32.Vec3{1, height, 1}}, same(t.tex))
}

// Portal is the translucent sheet inside a nether portal frame.
type Portal struct {
	base
	tex texture.SubTexture
}

func newPortal(s kindArgs) BlockType {
	return &Portal{base: s.base, tex: s.b.required(s.def, "texture")}
}

func (t *Portal) Emit(ctx *emit.Context, x, y, z int, mode emit.Mode) {
	self := cellAt(ctx, x, y, z)
	b := px(0, 0, 6, 16, 16, 10)
	if self.Props.Is("axis", "z") || (self.IsLegacy() && self.Data == 2) {
		b = px(6, 0, 0, 10, 16, 16)
	}
	p := newPainter(ctx, mode, x, y, z, geometry.Transparent)
	p.hides = func(n world.Cell) bool { return sameBlock(self, n) }
	p.shade = alphaShade(emit.Gray, 0.75)
	p.box(b, same(t.tex))
}

// EnderPortal is the flat surface of an active end portal.
type EnderPortal struct {
	base
	tex texture.SubTexture
}

func newEnderPortal(s kindArgs) BlockType {
	return &EnderPortal{base: s.base, tex: s.b.required(s.def, "texture")}
}

func (t *EnderPortal) Emit(ctx *emit.Context, x, y, z int, mode emit.Mode) {
	h := float32(12) / 16
	newPainter(ctx, mode, x, y, z, geometry.Solid).box(box{min: mgl32.Vec3{0, h, 0}, max: mgl32.Vec3{1, h, 1}}, faces{up: t.tex})
}
