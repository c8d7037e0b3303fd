// Model JSON format parser.
package formats

import (
	"errors"
	"fmt"

	"github.com/muhammadmuzzammil1998/jsonc"
)

// Model format errors.
var (
	ErrMalformedModel = errors.New("malformed block model")
	ErrBadElement     = errors.New("element bounds out of range")
	ErrBadFace        = errors.New("invalid element face")
)

// Face names of a model element.
var FaceNames = [...]string{"down", "up", "north", "south", "west", "east"}

// ModelFile is the JSON document of one block model. Elements is nil when the
// model inherits its elements from the parent.
type ModelFile struct {
	Parent           string            `json:"parent"`
	AmbientOcclusion *bool             `json:"ambientocclusion"`
	Textures         map[string]string `json:"textures"`
	Elements         []ElementDef      `json:"elements"`
}

// ElementDef is one cuboid of a model in 0..16 units.
type ElementDef struct {
	From     [3]float32         `json:"from"`
	To       [3]float32         `json:"to"`
	Rotation *ElementRotation   `json:"rotation"`
	Shade    *bool              `json:"shade"`
	Faces    map[string]FaceDef `json:"faces"`
}

// ElementRotation tilts an element about an origin.
type ElementRotation struct {
	Origin  [3]float32 `json:"origin"`
	Axis    string     `json:"axis"`
	Angle   float32    `json:"angle"`
	Rescale bool       `json:"rescale"`
}

// FaceDef is one face of an element.
type FaceDef struct {
	UV        *[4]float32 `json:"uv"`
	Texture   string      `json:"texture"`
	CullFace  string      `json:"cullface"`
	Rotation  int         `json:"rotation"`
	TintIndex *int        `json:"tintindex"`
}

// IsShaded reports whether directional shading applies (default true).
func (e ElementDef) IsShaded() bool {
	return e.Shade == nil || *e.Shade
}

// ParseModel parses a model document. Comments are tolerated.
func ParseModel(data []byte) (*ModelFile, error) {
	var m ModelFile
	if err := jsonc.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedModel, err)
	}
	for i, e := range m.Elements {
		if err := e.validate(); err != nil {
			return nil, fmt.Errorf("%w: element %d: %w", ErrMalformedModel, i, err)
		}
	}
	return &m, nil
}

func (e ElementDef) validate() error {
	for i := 0; i < 3; i++ {
		if e.From[i] < -16 || e.From[i] > 32 || e.To[i] < -16 || e.To[i] > 32 {
			return fmt.Errorf("%w: from %v to %v", ErrBadElement, e.From, e.To)
		}
	}
	if r := e.Rotation; r != nil {
		switch r.Axis {
		case "x", "y", "z":
		default:
			return fmt.Errorf("%w: rotation axis %q", ErrBadElement, r.Axis)
		}
	}
	for name, f := range e.Faces {
		if !isFaceName(name) {
			return fmt.Errorf("%w: unknown face %q", ErrBadFace, name)
		}
		if f.Texture == "" {
			return fmt.Errorf("%w: face %s has no texture", ErrBadFace, name)
		}
		switch f.Rotation {
		case 0, 90, 180, 270:
		default:
			return fmt.Errorf("%w: face %s rotation %d", ErrBadFace, name, f.Rotation)
		}
		if f.CullFace != "" && !isFaceName(f.CullFace) && f.CullFace != "bottom" {
			return fmt.Errorf("%w: face %s cullface %q", ErrBadFace, name, f.CullFace)
		}
	}
	return nil
}

func isFaceName(s string) bool {
	for _, n := range FaceNames {
		if n == s {
			return true
		}
	}
	return false
}
