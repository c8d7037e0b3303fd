package geometry

import (
	"sort"

	"github.com/Faultbox/blockmesh/internal/texture"
)

type bucketKey struct {
	tex  *texture.Texture
	mode BlendMode
}

// Geometry is the compiled output of one chunk. It is built by a single
// goroutine and must not be shared until Finalise has returned.
type Geometry struct {
	meshes   map[bucketKey]*Mesh
	bounds   Bounds
	released bool
}

// New creates empty geometry.
func New() *Geometry {
	return &Geometry{
		meshes: make(map[bucketKey]*Mesh),
		bounds: emptyBounds(),
	}
}

// Mesh returns the bucket for a texture and blend mode, creating it on first use.
func (g *Geometry) Mesh(tex *texture.Texture, mode BlendMode) *Mesh {
	k := bucketKey{tex: tex, mode: mode}
	m, ok := g.meshes[k]
	if !ok {
		m = &Mesh{Texture: tex, Mode: mode}
		g.meshes[k] = m
	}
	return m
}

// Meshes returns the non-empty buckets ordered by blend mode, then texture name.
func (g *Geometry) Meshes() []*Mesh {
	out := make([]*Mesh, 0, len(g.meshes))
	for _, m := range g.meshes {
		if len(m.Vertices) > 0 {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Mode != out[j].Mode {
			return out[i].Mode < out[j].Mode
		}
		return textureName(out[i].Texture) < textureName(out[j].Texture)
	})
	return out
}

func textureName(t *texture.Texture) string {
	if t == nil {
		return ""
	}
	return t.Name
}

// Finalise drops empty buckets and computes the bounding box.
func (g *Geometry) Finalise() {
	g.bounds = emptyBounds()
	for k, m := range g.meshes {
		if len(m.Vertices) == 0 {
			delete(g.meshes, k)
			continue
		}
		for _, v := range m.Vertices {
			updateBounds(&g.bounds, v.Position)
		}
	}
}

// Bounds returns the box computed by Finalise.
func (g *Geometry) Bounds() Bounds {
	return g.bounds
}

// IsEmpty reports whether the geometry holds no vertices.
func (g *Geometry) IsEmpty() bool {
	return g.VertexCount() == 0
}

// VertexCount returns the total number of vertices.
func (g *Geometry) VertexCount() int {
	n := 0
	for _, m := range g.meshes {
		n += len(m.Vertices)
	}
	return n
}

// IndexCount returns the total number of indices.
func (g *Geometry) IndexCount() int {
	n := 0
	for _, m := range g.meshes {
		n += len(m.Indices)
	}
	return n
}

// MemorySize estimates the bytes held by the vertex and index buffers.
func (g *Geometry) MemorySize() int64 {
	return int64(g.VertexCount())*vertexSize + int64(g.IndexCount())*4
}

// Release frees the buffers. The geometry must not be used afterwards.
func (g *Geometry) Release() {
	g.meshes = nil
	g.released = true
}

// Released reports whether Release was called.
func (g *Geometry) Released() bool {
	return g.released
}

// Group is a contiguous index range drawn with one texture and blend mode.
type Group struct {
	Texture    *texture.Texture
	Mode       BlendMode
	StartIndex int32
	IndexCount int32
}

// Packed is the geometry flattened into single vertex and index buffers.
type Packed struct {
	Vertices []Vertex
	Indices  []uint32
	Groups   []Group
	Bounds   Bounds
}

// Pack flattens every bucket into one buffer pair. Groups follow the draw
// order of Meshes: solid, alpha tested, then transparent.
func (g *Geometry) Pack() *Packed {
	p := &Packed{Bounds: g.bounds}
	for _, m := range g.Meshes() {
		base := uint32(len(p.Vertices))
		p.Groups = append(p.Groups, Group{
			Texture:    m.Texture,
			Mode:       m.Mode,
			StartIndex: int32(len(p.Indices)),
			IndexCount: int32(len(m.Indices)),
		})
		p.Vertices = append(p.Vertices, m.Vertices...)
		for _, idx := range m.Indices {
			p.Indices = append(p.Indices, base+idx)
		}
	}
	return p
}
