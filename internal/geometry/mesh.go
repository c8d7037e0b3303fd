package geometry

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/blockmesh/internal/texture"
)

// Mesh is the vertex data for one (texture, blend mode) bucket.
type Mesh struct {
	Texture  *texture.Texture
	Mode     BlendMode
	Vertices []Vertex
	Indices  []uint32
}

// AddQuad appends a quad. Corners go p0..p3 around the face; the region is
// mapped so that p0 gets (u0,v0), p1 (u1,v0), p2 (u1,v1) and p3 (u0,v1).
func (m *Mesh) AddQuad(p0, p1, p2, p3 mgl32.Vec3, color mgl32.Vec4, sub texture.SubTexture) {
	m.AddQuadUV([4]mgl32.Vec3{p0, p1, p2, p3}, color, regionUVs(sub))
}

// AddQuadUV appends a quad with explicit texture coordinates.
func (m *Mesh) AddQuadUV(p [4]mgl32.Vec3, color mgl32.Vec4, uv [4]mgl32.Vec2) {
	base := uint32(len(m.Vertices))
	for i := 0; i < 4; i++ {
		m.Vertices = append(m.Vertices, Vertex{Position: p[i], Color: color, TexCoord: uv[i]})
	}
	m.Indices = append(m.Indices,
		base, base+1, base+2,
		base, base+2, base+3,
	)
}

// QuadCount returns the number of quads in the mesh.
func (m *Mesh) QuadCount() int {
	return len(m.Vertices) / 4
}

func regionUVs(sub texture.SubTexture) [4]mgl32.Vec2 {
	return [4]mgl32.Vec2{
		{sub.U0, sub.V0},
		{sub.U1, sub.V0},
		{sub.U1, sub.V1},
		{sub.U0, sub.V1},
	}
}
