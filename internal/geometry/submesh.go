package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/blockmesh/internal/texture"
)

// Axis is a rotation axis.
type Axis int

const (
	AxisY Axis = iota
	AxisX
	AxisZ
)

// Rotation turns a block about its centre. Angle is in degrees, clockwise
// when looking from the positive end of the axis towards the origin, and is
// expected to be a multiple of 45.
type Rotation struct {
	Axis  Axis
	Angle float32
}

// Yaw rotates about the vertical axis.
func Yaw(deg float32) Rotation { return Rotation{Axis: AxisY, Angle: deg} }

// Pitch rotates about the east-west axis.
func Pitch(deg float32) Rotation { return Rotation{Axis: AxisX, Angle: deg} }

// Roll rotates about the north-south axis.
func Roll(deg float32) Rotation { return Rotation{Axis: AxisZ, Angle: deg} }

// IsZero reports whether the rotation leaves points unchanged.
func (r Rotation) IsZero() bool {
	return math.Mod(float64(r.Angle), 360) == 0
}

// Matrix returns the rotation matrix. Entries that are within rounding of
// -1, 0 or 1 are snapped so right-angle turns stay exact.
func (r Rotation) Matrix() mgl32.Mat3 {
	rad := -mgl32.DegToRad(r.Angle)
	var m mgl32.Mat3
	switch r.Axis {
	case AxisX:
		m = mgl32.Rotate3DX(rad)
	case AxisZ:
		m = mgl32.Rotate3DZ(rad)
	default:
		m = mgl32.Rotate3DY(rad)
	}
	for i := range m {
		m[i] = snap(m[i])
	}
	return m
}

func snap(v float32) float32 {
	for _, target := range [...]float32{-1, 0, 1} {
		if mgl32.Abs(v-target) < 1e-6 {
			return target
		}
	}
	return v
}

var blockCentre = mgl32.Vec3{0.5, 0.5, 0.5}

// RotateAboutCentre rotates a block-local point about (0.5,0.5,0.5), applying
// the rotations in order.
func RotateAboutCentre(p mgl32.Vec3, rots ...Rotation) mgl32.Vec3 {
	for _, r := range rots {
		if r.IsZero() {
			continue
		}
		p = r.Matrix().Mul3x1(p.Sub(blockCentre)).Add(blockCentre)
	}
	return p
}

type quad struct {
	pos   [4]mgl32.Vec3
	uv    [4]mgl32.Vec2
	color mgl32.Vec4
	tex   *texture.Texture
}

// SubMesh is a list of quads in block-local space (the unit cube at the
// origin) that is transformed and copied into chunk geometry.
type SubMesh struct {
	quads []quad
}

// Len returns the number of quads.
func (s *SubMesh) Len() int {
	return len(s.quads)
}

// AddQuad appends a quad textured with a region; see Mesh.AddQuad for the
// corner to UV mapping.
func (s *SubMesh) AddQuad(p0, p1, p2, p3 mgl32.Vec3, color mgl32.Vec4, sub texture.SubTexture) {
	s.AddQuadUV([4]mgl32.Vec3{p0, p1, p2, p3}, color, sub.Texture, regionUVs(sub))
}

// AddQuadUV appends a quad with explicit texture coordinates.
func (s *SubMesh) AddQuadUV(p [4]mgl32.Vec3, color mgl32.Vec4, tex *texture.Texture, uv [4]mgl32.Vec2) {
	s.quads = append(s.quads, quad{pos: p, uv: uv, color: color, tex: tex})
}

// AddBlock appends a box at (x,y,z) with size (w,h,d). Faces whose region is
// not valid are left out, so a box can be built from side faces only.
func (s *SubMesh) AddBlock(x, y, z, w, h, d float32, color mgl32.Vec4, side, top, bottom texture.SubTexture) {
	x1, y1, z1 := x+w, y+h, z+d

	if top.Valid() {
		s.AddQuad(mgl32.Vec3{x, y1, z}, mgl32.Vec3{x1, y1, z}, mgl32.Vec3{x1, y1, z1}, mgl32.Vec3{x, y1, z1}, color, top)
	}
	if bottom.Valid() {
		s.AddQuad(mgl32.Vec3{x, y, z1}, mgl32.Vec3{x1, y, z1}, mgl32.Vec3{x1, y, z}, mgl32.Vec3{x, y, z}, color, bottom)
	}
	if side.Valid() {
		// north
		s.AddQuad(mgl32.Vec3{x1, y1, z}, mgl32.Vec3{x, y1, z}, mgl32.Vec3{x, y, z}, mgl32.Vec3{x1, y, z}, color, side)
		// south
		s.AddQuad(mgl32.Vec3{x, y1, z1}, mgl32.Vec3{x1, y1, z1}, mgl32.Vec3{x1, y, z1}, mgl32.Vec3{x, y, z1}, color, side)
		// east
		s.AddQuad(mgl32.Vec3{x1, y1, z1}, mgl32.Vec3{x1, y1, z}, mgl32.Vec3{x1, y, z}, mgl32.Vec3{x1, y, z1}, color, side)
		// west
		s.AddQuad(mgl32.Vec3{x, y1, z}, mgl32.Vec3{x, y1, z1}, mgl32.Vec3{x, y, z1}, mgl32.Vec3{x, y, z}, color, side)
	}
}

// PushTo rotates every quad about the block centre by rots in order,
// translates it to (x,y,z) and appends it to the bucket of its texture and mode.
func (s *SubMesh) PushTo(g *Geometry, mode BlendMode, x, y, z float32, rots ...Rotation) {
	offset := mgl32.Vec3{x, y, z}
	for _, q := range s.quads {
		var p [4]mgl32.Vec3
		for i := range q.pos {
			p[i] = RotateAboutCentre(q.pos[i], rots...).Add(offset)
		}
		g.Mesh(q.tex, mode).AddQuadUV(p, q.color, q.uv)
	}
}
