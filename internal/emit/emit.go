// Package emit holds the per-chunk state shared by the block emitters: the
// cell grid, neighbour lookups, lighting, tint and the geometry being built.
package emit

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/blockmesh/internal/biome"
	"github.com/Faultbox/blockmesh/internal/geometry"
	"github.com/Faultbox/blockmesh/internal/lighting"
	"github.com/Faultbox/blockmesh/internal/logger"
	"github.com/Faultbox/blockmesh/internal/texture"
	"github.com/Faultbox/blockmesh/internal/world"
)

// Mode selects the neighbour lookup path of an emitter.
type Mode int

const (
	// Interior cells have every neighbour inside the chunk.
	Interior Mode = iota
	// Edge cells may have neighbours in adjacent chunks.
	Edge
)

// Context is owned by one chunk compile and is not safe for concurrent use.
type Context struct {
	World    world.BlockContext
	Chunk    *world.Chunk
	Geometry *geometry.Geometry
	Classes  world.Classifier
	// Warnings collects missing-texture keys across all chunks.
	Warnings *logger.Once
}

// ModeFor returns Edge for cells on the chunk border and Interior otherwise.
func (c *Context) ModeFor(x, y, z int) Mode {
	if c.Chunk.IsEdge(x, y, z) {
		return Edge
	}
	return Interior
}

// Cell returns the cell at a chunk-local position, looking into neighbouring
// chunks when needed. ok is false when that data is not loaded.
func (c *Context) Cell(x, y, z int) (world.Cell, bool) {
	if c.Chunk.InBounds(x, y, z) {
		return c.Chunk.Cell(x, y, z), true
	}
	if c.World == nil {
		return world.Cell{}, false
	}
	return c.World.Cell(c.Chunk.Coord, x, y, z)
}

// Neighbor is Cell with a fast path for Interior mode, where the position is
// known to lie inside the chunk.
func (c *Context) Neighbor(mode Mode, x, y, z int) (world.Cell, bool) {
	if mode == Interior {
		return c.Chunk.Cell(x, y, z), true
	}
	return c.Cell(x, y, z)
}

// Class returns the occlusion class at a position. Positions above the world
// are air; other unavailable positions are unknown.
func (c *Context) Class(mode Mode, x, y, z int) world.Class {
	cell, ok := c.Neighbor(mode, x, y, z)
	if !ok {
		if y >= c.Chunk.Height {
			return world.ClassAir
		}
		return world.ClassUnknown
	}
	if c.Classes == nil {
		if cell.IsAir() {
			return world.ClassAir
		}
		return world.ClassOpaque
	}
	return c.Classes.Classify(cell)
}

// IsOpaque reports whether the cell at a position hides faces behind it.
func (c *Context) IsOpaque(mode Mode, x, y, z int) bool {
	return c.Class(mode, x, y, z) == world.ClassOpaque
}

// LightStyle returns the style of the render, day if there is no world.
func (c *Context) LightStyle() lighting.Style {
	if c.World == nil {
		return lighting.StyleDay
	}
	return c.World.LightStyle()
}

// Light returns the brightness of a face whose light is sampled at x,y,z,
// usually the cell the face looks into.
func (c *Context) Light(face lighting.Face, x, y, z int) float32 {
	style := c.LightStyle()
	cell, ok := c.Cell(x, y, z)
	if !ok {
		return lighting.Fallback(style, face)
	}
	var adj float32
	if c.World != nil {
		adj = c.World.NightLightAdjustment()
	}
	return lighting.Brightness(style, face, int(cell.SkyLight), int(cell.BlockLight), y, c.Chunk.Height, adj)
}

// Tint returns the biome colour of kind for the cell at x,y,z.
func (c *Context) Tint(kind biome.Kind, x, y, z int) colorful.Color {
	cell, _ := c.Cell(x, y, z)
	if c.World == nil {
		return biome.DefaultPalette().Color(kind, int(cell.Biome))
	}
	return c.World.BiomeColor(kind, int(cell.Biome))
}

// LegacyColors reports whether the old dye palette is selected.
func (c *Context) LegacyColors() bool {
	return c.World != nil && c.World.LegacyColors()
}

// Mesh returns the geometry bucket for a region's texture.
func (c *Context) Mesh(sub texture.SubTexture, mode geometry.BlendMode) *geometry.Mesh {
	return c.Geometry.Mesh(sub.Texture, mode)
}

// MissingTexture records a block variant that could not be drawn.
func (c *Context) MissingTexture(key string) {
	if c.Warnings != nil {
		c.Warnings.Record(key)
	}
}

// Gray returns an untinted vertex colour of the given brightness.
func Gray(light float32) mgl32.Vec4 {
	return mgl32.Vec4{light, light, light, 1}
}

// Tinted returns a vertex colour of brightness light multiplied by col.
func Tinted(light float32, col colorful.Color) mgl32.Vec4 {
	return mgl32.Vec4{light * float32(col.R), light * float32(col.G), light * float32(col.B), 1}
}

// WithAlpha returns color with its blend weight replaced.
func WithAlpha(color mgl32.Vec4, alpha float32) mgl32.Vec4 {
	color[3] = alpha
	return color
}
