// Package blockmodel resolves declarative block definitions: model files with
// parent inheritance, blockstate variants and multipart rules. It builds one
// immutable Registry at startup and emits model geometry into chunk buffers.
package blockmodel

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/blockmesh/internal/geometry"
	"github.com/Faultbox/blockmesh/internal/lighting"
	"github.com/Faultbox/blockmesh/internal/texture"
)

// Direction is one of the six faces of a cuboid.
type Direction int

const (
	Down Direction = iota
	Up
	North
	South
	West
	East
)

var directionNames = [...]string{"down", "up", "north", "south", "west", "east"}

var directionNormals = [...]mgl32.Vec3{
	Down:  {0, -1, 0},
	Up:    {0, 1, 0},
	North: {0, 0, -1},
	South: {0, 0, 1},
	West:  {-1, 0, 0},
	East:  {1, 0, 0},
}

// ParseDirection returns the direction of a face key. "bottom" is accepted as
// an alias of down.
func ParseDirection(s string) (Direction, error) {
	if s == "bottom" {
		return Down, nil
	}
	for i, n := range directionNames {
		if n == s {
			return Direction(i), nil
		}
	}
	return 0, fmt.Errorf("unknown face direction %q", s)
}

// String returns the face key.
func (d Direction) String() string {
	if d < 0 || int(d) >= len(directionNames) {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// Normal returns the unit vector pointing out of the face.
func (d Direction) Normal() mgl32.Vec3 {
	return directionNormals[d]
}

// lightFace returns the lighting face class of a world-space direction.
func lightFace(n mgl32.Vec3) lighting.Face {
	switch {
	case n.Y() != 0:
		return lighting.FaceTop
	case n.Z() != 0:
		return lighting.FaceNorthSouth
	default:
		return lighting.FaceEastWest
	}
}

// Face is one textured side of an element.
type Face struct {
	Dir     Direction
	Texture texture.SubTexture
	// Cull drops the face when the neighbour it looks into is opaque.
	Cull bool
	// Rotation turns the texture on the face, in degrees (0, 90, 180, 270).
	Rotation int
	// Tinted faces are multiplied by the biome colour at emission time.
	Tinted bool
}

// Element is a cuboid of a model. Bounds are in sixteenths of a block.
type Element struct {
	From, To mgl32.Vec3

	// Element rotation about Origin. A zero Angle means no rotation.
	Origin  mgl32.Vec3
	Axis    geometry.Axis
	Angle   float32
	Rescale bool

	Shaded bool
	Faces  []Face
}

// Model is an immutable, fully resolved block model. Derived flags are
// computed once when the model is built.
type Model struct {
	Name             string
	AmbientOcclusion bool
	Elements         []Element

	solid       bool
	translucent bool
	fullBlock   bool
}

// IsSolid reports whether no referenced texture has transparent pixels.
func (m *Model) IsSolid() bool { return m.solid }

// IsTranslucent reports whether a referenced texture is partially transparent.
func (m *Model) IsTranslucent() bool { return m.translucent }

// IsFullBlock reports whether the model fills the whole cell.
func (m *Model) IsFullBlock() bool { return m.fullBlock }

// BlendMode returns the geometry bucket the model draws into.
func (m *Model) BlendMode() geometry.BlendMode {
	switch {
	case m.translucent:
		return geometry.Transparent
	case !m.solid:
		return geometry.AlphaTest
	default:
		return geometry.Solid
	}
}

// FaceCount returns the number of faces over all elements.
func (m *Model) FaceCount() int {
	n := 0
	for _, e := range m.Elements {
		n += len(e.Faces)
	}
	return n
}

// insideBlock reports whether v lies strictly between the cell walls.
func insideBlock(v float32) bool {
	return v > 0 && v < 16
}

func (e Element) partial() bool {
	for i := 0; i < 3; i++ {
		if insideBlock(e.From[i]) || insideBlock(e.To[i]) {
			return true
		}
	}
	return false
}
