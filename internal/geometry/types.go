// Package geometry accumulates chunk vertex data grouped by texture and blend
// mode, ready for a rasterizer to upload.
package geometry

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// BlendMode selects how a mesh is drawn.
type BlendMode int

const (
	// Solid meshes are opaque.
	Solid BlendMode = iota
	// AlphaTest meshes discard fully transparent texels.
	AlphaTest
	// Transparent meshes are alpha blended; vertex alpha is the blend weight.
	Transparent
)

// String returns the mode name.
func (m BlendMode) String() string {
	switch m {
	case Solid:
		return "solid"
	case AlphaTest:
		return "alpha-test"
	case Transparent:
		return "transparent"
	default:
		return fmt.Sprintf("BlendMode(%d)", int(m))
	}
}

// Vertex is one corner of a quad.
type Vertex struct {
	Position mgl32.Vec3
	Color    mgl32.Vec4 // rgb = light * tint, a = blend weight
	TexCoord mgl32.Vec2
}

// vertexSize is the byte size of a Vertex in a packed buffer.
const vertexSize = (3 + 4 + 2) * 4

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// emptyBounds returns an inverted box that any point will expand.
func emptyBounds() Bounds {
	return Bounds{
		Min: mgl32.Vec3{1e10, 1e10, 1e10},
		Max: mgl32.Vec3{-1e10, -1e10, -1e10},
	}
}

// IsEmpty reports whether no point was ever added.
func (b Bounds) IsEmpty() bool {
	return b.Min.X() > b.Max.X()
}

// updateBounds expands bounds to include point p.
func updateBounds(b *Bounds, p mgl32.Vec3) {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}
