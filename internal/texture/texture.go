// Package texture resolves logical texture names to textures and sub-regions.
package texture

import "fmt"

// PackVersion tags the layout of the texture pack a SubTexture came from.
type PackVersion int

const (
	// VersionModern packs hold one image per texture.
	VersionModern PackVersion = iota
	// VersionTerrainAtlas packs hold every block texture in a single
	// terrain.png sheet of 16x16 tiles.
	VersionTerrainAtlas
)

// String returns the version name.
func (v PackVersion) String() string {
	switch v {
	case VersionModern:
		return "modern"
	case VersionTerrainAtlas:
		return "terrain-atlas"
	default:
		return fmt.Sprintf("PackVersion(%d)", int(v))
	}
}

// Texel returns the size of one source pixel of a 16 pixel tile in UV units.
func (v PackVersion) Texel() float32 {
	if v == VersionTerrainAtlas {
		return 1.0 / 16.0 / 16.0
	}
	return 1.0 / 16.0
}

// Texture is a loaded image with its transparency classification.
type Texture struct {
	Name   string
	Width  int
	Height int
	// Transparent is set when any pixel is fully transparent.
	Transparent bool
	// Translucent is set when any pixel is partially transparent.
	Translucent bool
}

// Frames returns the number of square animation frames stacked vertically.
func (t *Texture) Frames() int {
	if t == nil || t.Width <= 0 || t.Height <= t.Width {
		return 1
	}
	return t.Height / t.Width
}

// SubTexture is a rectangular region of a texture in normalised UV space.
type SubTexture struct {
	Texture *Texture
	U0, V0  float32
	U1, V1  float32
	Version PackVersion
}

// Whole returns the full region of tex.
func Whole(tex *Texture, version PackVersion) SubTexture {
	return SubTexture{Texture: tex, U0: 0, V0: 0, U1: 1, V1: 1, Version: version}
}

// Valid reports whether the region references a texture.
func (s SubTexture) Valid() bool {
	return s.Texture != nil
}

// Texel returns the size of one tile pixel for this region's pack layout.
func (s SubTexture) Texel() float32 {
	return s.Version.Texel()
}

// Region returns a new region on the same texture. The version tag is kept.
func (s SubTexture) Region(u0, v0, u1, v1 float32) SubTexture {
	return SubTexture{Texture: s.Texture, U0: u0, V0: v0, U1: u1, V1: v1, Version: s.Version}
}

// Inset shrinks the region by the given amounts from each edge.
func (s SubTexture) Inset(left, top, right, bottom float32) SubTexture {
	return s.Region(s.U0+left, s.V0+top, s.U1-right, s.V1-bottom)
}

// Width returns the U extent.
func (s SubTexture) Width() float32 { return s.U1 - s.U0 }

// Height returns the V extent.
func (s SubTexture) Height() float32 { return s.V1 - s.V0 }

// Tile returns tile (x, y) of a grid of n x n tiles laid over the region.
func (s SubTexture) Tile(x, y, n int) SubTexture {
	w := s.Width() / float32(n)
	h := s.Height() / float32(n)
	u0 := s.U0 + float32(x)*w
	v0 := s.V0 + float32(y)*h
	return s.Region(u0, v0, u0+w, v0+h)
}
