package blocktype

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/blockmesh/internal/emit"
	"github.com/Faultbox/blockmesh/internal/geometry"
	"github.com/Faultbox/blockmesh/internal/lighting"
	"github.com/Faultbox/blockmesh/internal/texture"
	"github.com/Faultbox/blockmesh/internal/world"
)

// side is a box face.
type side int

const (
	up side = iota
	down
	north
	south
	east
	west
)

var allSides = [...]side{up, down, north, south, east, west}

var sideOffsets = [...][3]int{
	up:    {0, 1, 0},
	down:  {0, -1, 0},
	north: {0, 0, -1},
	south: {0, 0, 1},
	east:  {1, 0, 0},
	west:  {-1, 0, 0},
}

func (s side) light() lighting.Face {
	switch s {
	case north, south:
		return lighting.FaceNorthSouth
	case east, west:
		return lighting.FaceEastWest
	default:
		return lighting.FaceTop
	}
}

// box is an axis-aligned cuboid in block units.
type box struct {
	min, max mgl32.Vec3
}

// px builds a box from pixel coordinates (0..16).
func px(x0, y0, z0, x1, y1, z1 float32) box {
	return box{min: mgl32.Vec3{x0, y0, z0}.Mul(1.0 / 16), max: mgl32.Vec3{x1, y1, z1}.Mul(1.0 / 16)}
}

var fullBox = box{max: mgl32.Vec3{1, 1, 1}}

// turned rotates b about the block centre. Right-angle turns keep it a box.
func (b box) turned(rots ...geometry.Rotation) box {
	p := geometry.RotateAboutCentre(b.min, rots...)
	q := geometry.RotateAboutCentre(b.max, rots...)
	lo := mgl32.Vec3{min(p.X(), q.X()), min(p.Y(), q.Y()), min(p.Z(), q.Z())}
	hi := mgl32.Vec3{max(p.X(), q.X()), max(p.Y(), q.Y()), max(p.Z(), q.Z())}
	return box{min: snapVec(lo), max: snapVec(hi)}
}

func snapVec(v mgl32.Vec3) mgl32.Vec3 {
	for i := range v {
		v[i] = float32(math.Round(float64(v[i])*1024) / 1024)
	}
	return v
}

// turnQuad rotates quad corners about the block centre.
func turnQuad(c [4]mgl32.Vec3, rots ...geometry.Rotation) [4]mgl32.Vec3 {
	for i := range c {
		c[i] = geometry.RotateAboutCentre(c[i], rots...)
	}
	return c
}

// wallQuad returns a full-size quad parallel to side s, inset d from it and
// facing into the block.
func wallQuad(s side, d float32) [4]mgl32.Vec3 {
	switch s {
	case north:
		return box{min: mgl32.Vec3{0, 0, d}, max: mgl32.Vec3{1, 1, d}}.corners(south)
	case south:
		return box{min: mgl32.Vec3{0, 0, 1 - d}, max: mgl32.Vec3{1, 1, 1 - d}}.corners(north)
	case west:
		return box{min: mgl32.Vec3{d, 0, 0}, max: mgl32.Vec3{d, 1, 1}}.corners(east)
	case east:
		return box{min: mgl32.Vec3{1 - d, 0, 0}, max: mgl32.Vec3{1 - d, 1, 1}}.corners(west)
	case up:
		return box{min: mgl32.Vec3{0, 1 - d, 0}, max: mgl32.Vec3{1, 1 - d, 1}}.corners(down)
	default:
		return box{min: mgl32.Vec3{0, d, 0}, max: mgl32.Vec3{1, d, 1}}.corners(up)
	}
}

func opposite(s side) side {
	switch s {
	case up:
		return down
	case down:
		return up
	case north:
		return south
	case south:
		return north
	case east:
		return west
	default:
		return east
	}
}

// sheet returns a function cutting pixel rectangles out of t, which spans a
// w x h pixel image.
func sheet(t texture.SubTexture, w, h float32) func(x0, y0, x1, y1 float32) texture.SubTexture {
	return func(x0, y0, x1, y1 float32) texture.SubTexture {
		return t.Region(
			t.U0+x0/w*t.Width(), t.V0+y0/h*t.Height(),
			t.U0+x1/w*t.Width(), t.V0+y1/h*t.Height())
	}
}

// pixels cuts a rectangle of tile pixels out of t, sized by its pack layout.
func pixels(t texture.SubTexture, x0, y0, x1, y1 float32) texture.SubTexture {
	px := t.Texel()
	return t.Region(t.U0+x0*px, t.V0+y0*px, t.U0+x1*px, t.V0+y1*px)
}

// touches reports whether the face lies on the block boundary.
func (b box) touches(s side) bool {
	switch s {
	case up:
		return b.max.Y() >= 1
	case down:
		return b.min.Y() <= 0
	case north:
		return b.min.Z() <= 0
	case south:
		return b.max.Z() >= 1
	case east:
		return b.max.X() >= 1
	default:
		return b.min.X() <= 0
	}
}

// corners returns the face corners clockwise from the top left as seen from
// outside, matching Mesh.AddQuad.
func (b box) corners(s side) [4]mgl32.Vec3 {
	x0, y0, z0 := b.min.X(), b.min.Y(), b.min.Z()
	x1, y1, z1 := b.max.X(), b.max.Y(), b.max.Z()
	switch s {
	case up:
		return [4]mgl32.Vec3{{x0, y1, z0}, {x1, y1, z0}, {x1, y1, z1}, {x0, y1, z1}}
	case down:
		return [4]mgl32.Vec3{{x0, y0, z1}, {x1, y0, z1}, {x1, y0, z0}, {x0, y0, z0}}
	case north:
		return [4]mgl32.Vec3{{x1, y1, z0}, {x0, y1, z0}, {x0, y0, z0}, {x1, y0, z0}}
	case south:
		return [4]mgl32.Vec3{{x0, y1, z1}, {x1, y1, z1}, {x1, y0, z1}, {x0, y0, z1}}
	case east:
		return [4]mgl32.Vec3{{x1, y1, z1}, {x1, y1, z0}, {x1, y0, z0}, {x1, y0, z1}}
	default:
		return [4]mgl32.Vec3{{x0, y1, z0}, {x0, y1, z1}, {x0, y0, z1}, {x0, y0, z0}}
	}
}

// project returns the part of tex a face of b covers, using the same default
// mapping as block models so partial boxes do not stretch their texture.
func project(tex texture.SubTexture, s side, b box) texture.SubTexture {
	u0, v0, u1, v1 := b.min.X(), 1-b.max.Y(), b.max.X(), 1-b.min.Y()
	switch s {
	case up, down:
		v0, v1 = b.min.Z(), b.max.Z()
	case north:
		u0, u1 = 1-u1, 1-u0
	case east:
		u0, u1 = 1-b.max.Z(), 1-b.min.Z()
	case west:
		u0, u1 = b.min.Z(), b.max.Z()
	}
	w, h := tex.Width(), tex.Height()
	return tex.Region(tex.U0+u0*w, tex.V0+v0*h, tex.U0+u1*w, tex.V0+v1*h)
}

// faces holds one texture per side; invalid entries are not drawn.
type faces [6]texture.SubTexture

func same(t texture.SubTexture) faces {
	return faces{t, t, t, t, t, t}
}

func sided(side, top, bottom texture.SubTexture) faces {
	return faces{up: top, down: bottom, north: side, south: side, east: side, west: side}
}

// shade turns a brightness into a vertex colour.
type shade func(light float32) mgl32.Vec4

// painter draws axis-aligned boxes straight into chunk geometry. Boundary
// faces are culled against the neighbour and lit from it; inner faces take
// the light of the cell itself.
type painter struct {
	ctx     *emit.Context
	mode    emit.Mode
	x, y, z int
	blend   geometry.BlendMode
	shade   shade
	// hides reports whether the neighbour cell covers a boundary face, on
	// top of the opaque check.
	hides func(n world.Cell) bool
	// raw maps each texture onto its face unchanged instead of projecting.
	raw bool
}

func newPainter(ctx *emit.Context, mode emit.Mode, x, y, z int, blend geometry.BlendMode) *painter {
	return &painter{ctx: ctx, mode: mode, x: x, y: y, z: z, blend: blend, shade: emit.Gray}
}

func (p *painter) covered(s side) bool {
	o := sideOffsets[s]
	nx, ny, nz := p.x+o[0], p.y+o[1], p.z+o[2]
	if p.ctx.IsOpaque(p.mode, nx, ny, nz) {
		return true
	}
	if p.hides == nil {
		return false
	}
	n, ok := p.ctx.Neighbor(p.mode, nx, ny, nz)
	return ok && p.hides(n)
}

// box draws b with one texture per side.
func (p *painter) box(b box, tex faces) {
	for _, s := range allSides {
		t := tex[s]
		if !t.Valid() {
			continue
		}
		lx, ly, lz := p.x, p.y, p.z
		if b.touches(s) {
			if p.covered(s) {
				continue
			}
			o := sideOffsets[s]
			lx, ly, lz = lx+o[0], ly+o[1], lz+o[2]
		}
		if !p.raw {
			t = project(t, s, b)
		}
		p.face(b.corners(s), p.ctx.Light(s.light(), lx, ly, lz), t)
	}
}

func (p *painter) face(c [4]mgl32.Vec3, light float32, t texture.SubTexture) {
	off := mgl32.Vec3{float32(p.x), float32(p.y), float32(p.z)}
	p.ctx.Mesh(t, p.blend).AddQuad(c[0].Add(off), c[1].Add(off), c[2].Add(off), c[3].Add(off), p.shade(light), t)
}

// quad draws a free-standing quad lit by the cell itself, as used for cross
// plants and flat overlays. Both windings are emitted when twoSided is set.
func (p *painter) quad(c [4]mgl32.Vec3, t texture.SubTexture, face lighting.Face, twoSided bool) {
	light := p.ctx.Light(face, p.x, p.y, p.z)
	p.face(c, light, t)
	if twoSided {
		p.face([4]mgl32.Vec3{c[1], c[0], c[3], c[2]}, light, t.Region(t.U1, t.V0, t.U0, t.V1))
	}
}

// addBox appends the faces of b to a block-local sub-mesh. Used by shapes
// that are rotated as a whole, which are lit uniformly.
func addBox(sub *geometry.SubMesh, b box, tex faces, color mgl32.Vec4) {
	for _, s := range allSides {
		t := tex[s]
		if !t.Valid() {
			continue
		}
		c := b.corners(s)
		sub.AddQuad(c[0], c[1], c[2], c[3], color, project(t, s, b))
	}
}

// addBoxRaw is addBox without projection: each face shows its whole region.
func addBoxRaw(sub *geometry.SubMesh, b box, tex faces, color mgl32.Vec4) {
	for _, s := range allSides {
		if t := tex[s]; t.Valid() {
			c := b.corners(s)
			sub.AddQuad(c[0], c[1], c[2], c[3], color, t)
		}
	}
}

// cellLight returns the top light of the cell itself, the uniform light of
// rotated shapes.
func cellLight(ctx *emit.Context, x, y, z int) float32 {
	return ctx.Light(lighting.FaceTop, x, y, z)
}

func push(ctx *emit.Context, sub *geometry.SubMesh, blend geometry.BlendMode, x, y, z int, rots ...geometry.Rotation) {
	sub.PushTo(ctx.Geometry, blend, float32(x), float32(y), float32(z), rots...)
}
