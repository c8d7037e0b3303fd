package blockmodel

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/blockmesh/internal/geometry"
	"github.com/Faultbox/blockmesh/internal/logger"
	"github.com/Faultbox/blockmesh/internal/texture"
	"github.com/Faultbox/blockmesh/pkg/formats"
)

// Pack directories of the declarative definitions.
const (
	ModelRoot      = "assets/minecraft/models/"
	BlockStateRoot = "assets/minecraft/blockstates/"
)

const (
	maxParentDepth  = 32
	maxTextureChain = 16
)

// Model loading errors. Cycles and over-deep chains are reported as malformed
// models.
var (
	ErrModelNotFound = errors.New("model not found")
	ErrParentCycle   = errors.New("model parent cycle")
	ErrParentDepth   = errors.New("model parent chain too deep")
)

// Source reads definition files from the resource pack stack.
type Source interface {
	Load(path string) ([]byte, error)
	List(prefix string) []string
}

// Random is a uniform random source. IntN returns a value in [0, n).
type Random interface {
	IntN(n int) int
}

// loader builds models during registry construction. It is used by a single
// goroutine.
type loader struct {
	src      Source
	atlas    *texture.Atlas
	rand     Random
	warnings *logger.Once

	files  map[string]*formats.ModelFile
	models map[string]*Model
}

func newLoader(src Source, atlas *texture.Atlas, rand Random, warnings *logger.Once) *loader {
	return &loader{
		src:      src,
		atlas:    atlas,
		rand:     rand,
		warnings: warnings,
		files:    make(map[string]*formats.ModelFile),
		models:   make(map[string]*Model),
	}
}

// modelName normalises a model reference to its path under ModelRoot.
// Unqualified names from old packs live in the block directory.
func modelName(ref string) string {
	name := strings.TrimPrefix(ref, "minecraft:")
	if !strings.Contains(name, "/") {
		name = "block/" + name
	}
	return name
}

func isBuiltin(ref string) bool {
	return strings.HasPrefix(strings.TrimPrefix(ref, "minecraft:"), "builtin/")
}

func (l *loader) file(name string) (*formats.ModelFile, error) {
	if f, ok := l.files[name]; ok {
		return f, nil
	}

	data, err := l.src.Load(ModelRoot + name + ".json")
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrModelNotFound, name)
	}
	f, err := formats.ParseModel(data)
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", name, err)
	}
	l.files[name] = f
	return f, nil
}

// chain returns the model followed by its ancestors, nearest first.
func (l *loader) chain(name string) ([]*formats.ModelFile, error) {
	var chain []*formats.ModelFile
	seen := make(map[string]bool)

	for cur := name; cur != ""; {
		if len(chain) == maxParentDepth {
			return nil, fmt.Errorf("%w: %w: %s", formats.ErrMalformedModel, ErrParentDepth, name)
		}
		if seen[cur] {
			return nil, fmt.Errorf("%w: %w: %s via %s", formats.ErrMalformedModel, ErrParentCycle, name, cur)
		}
		seen[cur] = true

		f, err := l.file(cur)
		if err != nil {
			return nil, err
		}
		chain = append(chain, f)

		cur = ""
		if f.Parent != "" && !isBuiltin(f.Parent) {
			cur = modelName(f.Parent)
		}
	}
	return chain, nil
}

// model returns the resolved model for a reference, building it on first use.
func (l *loader) model(ref string) (*Model, error) {
	name := modelName(ref)
	if m, ok := l.models[name]; ok {
		return m, nil
	}

	chain, err := l.chain(name)
	if err != nil {
		return nil, err
	}

	// Textures merge root first so the child wins; elements and the
	// ambient occlusion flag come from the nearest model that sets them.
	textures := make(map[string]string)
	for i := len(chain) - 1; i >= 0; i-- {
		for k, v := range chain[i].Textures {
			textures[k] = v
		}
	}

	var elements []formats.ElementDef
	hasElements := false
	ao, aoSet := true, false
	for _, f := range chain {
		if !hasElements && f.Elements != nil {
			elements, hasElements = f.Elements, true
		}
		if !aoSet && f.AmbientOcclusion != nil {
			ao, aoSet = *f.AmbientOcclusion, true
		}
	}

	m := l.build(name, ao, textures, elements)
	l.models[name] = m
	return m, nil
}

func (l *loader) build(name string, ao bool, textures map[string]string, defs []formats.ElementDef) *Model {
	m := &Model{
		Name:             name,
		AmbientOcclusion: ao,
		solid:            true,
		fullBlock:        len(defs) > 0,
	}
	tintable := !tintSuppressed(name)

	for _, def := range defs {
		e := Element{
			From:   mgl32.Vec3(def.From),
			To:     mgl32.Vec3(def.To),
			Origin: mgl32.Vec3{8, 8, 8},
			Axis:   geometry.AxisY,
			Shaded: def.IsShaded(),
		}
		if r := def.Rotation; r != nil {
			e.Origin = mgl32.Vec3(r.Origin)
			e.Axis = parseAxis(r.Axis)
			e.Angle = r.Angle
			e.Rescale = r.Rescale
		}
		if e.partial() {
			m.fullBlock = false
		}

		for i, key := range formats.FaceNames {
			fd, ok := def.Faces[key]
			if !ok {
				continue
			}
			dir := Direction(i)
			sub := l.faceTexture(m, textures, fd.Texture)
			e.Faces = append(e.Faces, Face{
				Dir:      dir,
				Texture:  faceRegion(sub, dir, e.From, e.To, fd.UV, l.frame(sub)),
				Cull:     fd.CullFace != "",
				Rotation: fd.Rotation,
				Tinted:   fd.TintIndex != nil && tintable,
			})
		}
		m.Elements = append(m.Elements, e)
	}

	applyFlagOverrides(m)
	return m
}

func parseAxis(s string) geometry.Axis {
	switch s {
	case "x":
		return geometry.AxisX
	case "z":
		return geometry.AxisZ
	default:
		return geometry.AxisY
	}
}

// resolveTexture follows "#variable" references through the merged texture
// map. ok is false for dangling or looping references.
func resolveTexture(textures map[string]string, ref string) (string, bool) {
	for i := 0; i < maxTextureChain; i++ {
		if !strings.HasPrefix(ref, "#") {
			return ref, ref != ""
		}
		next, ok := textures[ref[1:]]
		if !ok {
			return "", false
		}
		ref = next
	}
	return "", false
}

// faceTexture resolves a face texture and folds its transparency into the
// model flags. Misses fall back to the placeholder and are recorded once per
// model and texture.
func (l *loader) faceTexture(m *Model, textures map[string]string, ref string) texture.SubTexture {
	path, ok := resolveTexture(textures, ref)
	if ok {
		sub, err := l.atlas.SubTexture(path)
		if err == nil {
			if sub.Texture.Translucent {
				m.solid = false
				m.translucent = true
			} else if sub.Texture.Transparent {
				m.solid = false
			}
			return texture.Whole(sub.Texture, sub.Version)
		}
	} else {
		path = ref
	}

	if l.warnings != nil {
		l.warnings.Warn(m.Name+"|"+path, "missing texture", zap.String("model", m.Name), zap.String("texture", path))
	}
	return l.atlas.Missing()
}

// frame picks the animation frame of a texture strip.
func (l *loader) frame(sub texture.SubTexture) int {
	n := sub.Texture.Frames()
	if n <= 1 || l.rand == nil {
		return 0
	}
	return l.rand.IntN(n)
}

// faceRegion computes the texture region of a face from the element bounds.
// uv, when set, overrides the default projection.
func faceRegion(sub texture.SubTexture, dir Direction, from, to mgl32.Vec3, uv *[4]float32, frame int) texture.SubTexture {
	u0, v0, u1, v1 := from.X(), 16-to.Y(), to.X(), 16-from.Y()

	switch dir {
	case Up, Down:
		v0, v1 = from.Z(), to.Z()
	case North:
		u0, u1 = 16-u1, 16-u0
	case East:
		u0, u1 = 16-to.Z(), 16-from.Z()
	case West:
		u0, u1 = from.Z(), to.Z()
	}
	if uv != nil {
		u0, v0, u1, v1 = uv[0], uv[1], uv[2], uv[3]
	}

	frames := float32(sub.Texture.Frames())
	offset := float32(frame) / frames
	return sub.Region(
		u0/16, v0/16/frames+offset,
		u1/16, v1/16/frames+offset,
	)
}
