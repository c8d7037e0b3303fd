package blockmodel

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/blockmesh/internal/emit"
	"github.com/Faultbox/blockmesh/internal/geometry"
	"github.com/Faultbox/blockmesh/internal/lighting"
	"github.com/Faultbox/blockmesh/internal/world"
)

// Rotations returns the whole-block rotation of an instance: pitch by x
// first, then yaw by y. This is the reverse of the legacy emitters, which
// pass yaw as the primary rotation; blockstates such as upside-down stairs
// (x=180 with any y) only come out right when x is applied first.
func (i Instance) Rotations() []geometry.Rotation {
	var rots []geometry.Rotation
	if i.X%360 != 0 {
		rots = append(rots, geometry.Pitch(float32(i.X)))
	}
	if i.Y%360 != 0 {
		rots = append(rots, geometry.Yaw(float32(i.Y)))
	}
	return rots
}

// Emit draws a model instance of block at the chunk-local position x, y, z.
// Culled faces are dropped against the rotated neighbour, light is sampled
// from the cell each face looks into, and tinted faces take the biome colour
// of the cell.
func Emit(ctx *emit.Context, x, y, z int, mode emit.Mode, block string, inst Instance) {
	m := inst.Model
	if m == nil || len(m.Elements) == 0 {
		return
	}

	rots := inst.Rotations()
	var (
		sub     geometry.SubMesh
		tint    colorful.Color
		hasTint bool
	)

	for _, e := range m.Elements {
		for _, f := range e.Faces {
			n := rotateNormal(f.Dir.Normal(), rots)
			nx, ny, nz := x+int(n.X()), y+int(n.Y()), z+int(n.Z())

			if f.Cull && ctx.IsOpaque(mode, nx, ny, nz) {
				continue
			}

			face := lighting.FaceTop
			if e.Shaded {
				face = lightFace(n)
			}
			light := ctx.Light(face, nx, ny, nz)

			color := emit.Gray(light)
			if f.Tinted {
				if !hasTint {
					tint, hasTint = tintColor(ctx, block, x, y, z), true
				}
				color = emit.Tinted(light, tint)
			}

			sub.AddQuadUV(e.corners(f.Dir), color, f.Texture.Texture, faceUVs(f))
		}
	}

	sub.PushTo(ctx.Geometry, m.BlendMode(), float32(x), float32(y), float32(z), rots...)
}

// EmitCell resolves a modern cell against the registry and draws every
// instance. It reports false when the block has no blockstate.
func (r *Registry) EmitCell(ctx *emit.Context, x, y, z int, mode emit.Mode, cell world.Cell, choose Chooser) bool {
	if inst, ok := r.SingleVariant(cell.Name); ok {
		Emit(ctx, x, y, z, mode, cell.Name, inst)
		return true
	}
	insts, ok := r.Resolve(cell.Name, cell.Props, choose)
	if !ok {
		return false
	}
	for _, inst := range insts {
		Emit(ctx, x, y, z, mode, cell.Name, inst)
	}
	return true
}

func tintColor(ctx *emit.Context, block string, x, y, z int) colorful.Color {
	if c, ok := fixedTint(block); ok {
		return c
	}
	return ctx.Tint(tintKind(block), x, y, z)
}

// rotateNormal turns a face normal by the block rotation, keeping it on the
// unit axes.
func rotateNormal(n mgl32.Vec3, rots []geometry.Rotation) mgl32.Vec3 {
	for _, r := range rots {
		n = r.Matrix().Mul3x1(n)
	}
	return mgl32.Vec3{round(n.X()), round(n.Y()), round(n.Z())}
}

func round(v float32) float32 {
	return float32(math.Round(float64(v)))
}

// corners returns the block-local corners of a face, ordered clockwise from
// the top left as seen from outside.
func (e Element) corners(dir Direction) [4]mgl32.Vec3 {
	x0, y0, z0 := e.From.X()/16, e.From.Y()/16, e.From.Z()/16
	x1, y1, z1 := e.To.X()/16, e.To.Y()/16, e.To.Z()/16

	var p [4]mgl32.Vec3
	switch dir {
	case Up:
		p = [4]mgl32.Vec3{{x0, y1, z0}, {x1, y1, z0}, {x1, y1, z1}, {x0, y1, z1}}
	case Down:
		p = [4]mgl32.Vec3{{x0, y0, z1}, {x1, y0, z1}, {x1, y0, z0}, {x0, y0, z0}}
	case North:
		p = [4]mgl32.Vec3{{x1, y1, z0}, {x0, y1, z0}, {x0, y0, z0}, {x1, y0, z0}}
	case South:
		p = [4]mgl32.Vec3{{x0, y1, z1}, {x1, y1, z1}, {x1, y0, z1}, {x0, y0, z1}}
	case East:
		p = [4]mgl32.Vec3{{x1, y1, z1}, {x1, y1, z0}, {x1, y0, z0}, {x1, y0, z1}}
	case West:
		p = [4]mgl32.Vec3{{x0, y1, z0}, {x0, y1, z1}, {x0, y0, z1}, {x0, y0, z0}}
	}

	if e.Angle == 0 {
		return p
	}
	for i := range p {
		p[i] = e.tilt(p[i])
	}
	return p
}

// tilt applies the element rotation to a block-local point.
func (e Element) tilt(p mgl32.Vec3) mgl32.Vec3 {
	origin := e.Origin.Mul(1.0 / 16)
	d := p.Sub(origin)

	if e.Rescale {
		scale := float32(1 / math.Cos(float64(mgl32.DegToRad(e.Angle))))
		for i := 0; i < 3; i++ {
			if i != axisIndex(e.Axis) {
				d[i] *= scale
			}
		}
	}

	// Element angles turn counter-clockwise seen from the positive axis.
	r := geometry.Rotation{Axis: e.Axis, Angle: -e.Angle}
	return r.Matrix().Mul3x1(d).Add(origin)
}

func axisIndex(a geometry.Axis) int {
	switch a {
	case geometry.AxisX:
		return 0
	case geometry.AxisZ:
		return 2
	default:
		return 1
	}
}

// faceUVs maps the face region to its corners, turned by the face rotation.
func faceUVs(f Face) [4]mgl32.Vec2 {
	t := f.Texture
	uv := [4]mgl32.Vec2{{t.U0, t.V0}, {t.U1, t.V0}, {t.U1, t.V1}, {t.U0, t.V1}}

	steps := (f.Rotation / 90) % 4
	if steps == 0 {
		return uv
	}
	var out [4]mgl32.Vec2
	for i := range out {
		out[i] = uv[(i-steps+4)%4]
	}
	return out
}
