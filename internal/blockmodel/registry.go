package blockmodel

import (
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/blockmesh/internal/logger"
	"github.com/Faultbox/blockmesh/internal/texture"
	"github.com/Faultbox/blockmesh/internal/world"
	"github.com/Faultbox/blockmesh/pkg/formats"
)

// Options configures registry construction.
type Options struct {
	// Rand draws animation frames at load time. Nil always picks frame 0.
	Rand Random
	// Warnings receives missing model and texture reports.
	Warnings *logger.Once
}

// Registry holds every blockstate and model of a resource pack stack. It is
// built once and read concurrently afterwards.
type Registry struct {
	states map[string]*BlockState
	single map[string]Instance
	class  map[string]world.Class
	models map[string]*Model
}

// Load reads every blockstate document under BlockStateRoot and the models
// they reference. Malformed documents fail the whole load; a missing model
// file drops that candidate with a warning.
func Load(src Source, atlas *texture.Atlas, opts Options) (*Registry, error) {
	log := logger.Named("blockmodel")
	l := newLoader(src, atlas, opts.Rand, opts.Warnings)

	r := &Registry{
		states: make(map[string]*BlockState),
		single: make(map[string]Instance),
		class:  make(map[string]world.Class),
	}

	for _, p := range src.List(BlockStateRoot) {
		if !strings.HasSuffix(p, ".json") {
			continue
		}
		data, err := src.Load(p)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", p, err)
		}

		name := "minecraft:" + strings.TrimSuffix(path.Base(p), ".json")
		bs, err := l.blockState(name, data)
		if err != nil {
			return nil, fmt.Errorf("blockstate %s: %w", name, err)
		}
		r.add(bs)
	}

	r.models = l.models
	log.Info("block models loaded",
		zap.Int("blockstates", len(r.states)),
		zap.Int("models", len(r.models)),
		zap.Int("textures", atlas.Loaded()))
	return r, nil
}

func (l *loader) blockState(name string, data []byte) (*BlockState, error) {
	def, err := formats.ParseBlockState(data)
	if err != nil {
		return nil, err
	}

	bs := &BlockState{Name: name}
	for key, refs := range def.Variants {
		models, err := l.candidates(name, refs)
		if err != nil {
			return nil, err
		}
		bs.Variants = append(bs.Variants, Variant{Key: key, Props: parseVariantKey(key), Models: models})
	}
	sortVariants(bs.Variants)

	for _, part := range def.Multipart {
		models, err := l.candidates(name, part.Apply)
		if err != nil {
			return nil, err
		}
		bs.Multipart = append(bs.Multipart, MultipartRule{When: part.When, Models: models})
	}
	return bs, nil
}

func (l *loader) candidates(block string, refs formats.ModelRefList) ([]Candidate, error) {
	out := make([]Candidate, 0, len(refs))
	for _, ref := range refs {
		m, err := l.model(ref.Model)
		if errors.Is(err, ErrModelNotFound) {
			if l.warnings != nil {
				l.warnings.Warn(block+"|"+ref.Model, "missing block model",
					zap.String("block", block), zap.String("model", ref.Model))
			}
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, Candidate{
			Model:  m,
			X:      ref.X,
			Y:      ref.Y,
			UVLock: ref.UVLock,
			Weight: ref.EffectiveWeight(),
		})
	}
	return out, nil
}

func (r *Registry) add(bs *BlockState) {
	r.states[bs.Name] = bs
	r.class[bs.Name] = classOf(bs)
	if len(bs.Multipart) == 0 && len(bs.Variants) == 1 &&
		len(bs.Variants[0].Props) == 0 && len(bs.Variants[0].Models) == 1 {
		r.single[bs.Name] = bs.Variants[0].Models[0].instance()
	}
}

// classOf is opaque only when every candidate model is a solid full block.
func classOf(bs *BlockState) world.Class {
	if isLiquidName(bs.Name) {
		return world.ClassLiquid
	}
	seen := false
	check := func(list []Candidate) bool {
		for _, c := range list {
			seen = true
			if !c.Model.IsFullBlock() || !c.Model.IsSolid() {
				return false
			}
		}
		return true
	}
	for _, v := range bs.Variants {
		if !check(v.Models) {
			return world.ClassTransparent
		}
	}
	for _, p := range bs.Multipart {
		if !check(p.Models) {
			return world.ClassTransparent
		}
	}
	if !seen {
		return world.ClassTransparent
	}
	return world.ClassOpaque
}

func isLiquidName(name string) bool {
	return name == "minecraft:water" || name == "minecraft:lava" || name == "minecraft:bubble_column"
}

// BlockState returns the resolver of a block name.
func (r *Registry) BlockState(name string) (*BlockState, bool) {
	bs, ok := r.states[name]
	return bs, ok
}

// SingleVariant returns the only model of blocks that have exactly one
// unconditional candidate, skipping property matching.
func (r *Registry) SingleVariant(name string) (Instance, bool) {
	inst, ok := r.single[name]
	return inst, ok
}

// Resolve returns the model instances for a block, or false for unknown names.
func (r *Registry) Resolve(name string, props world.Properties, choose Chooser) ([]Instance, bool) {
	if inst, ok := r.single[name]; ok {
		return []Instance{inst}, true
	}
	bs, ok := r.states[name]
	if !ok {
		return nil, false
	}
	return bs.Resolve(props, choose), true
}

// Classify returns the occlusion class of a block name.
func (r *Registry) Classify(name string) world.Class {
	if world.IsAirName(name) {
		return world.ClassAir
	}
	if c, ok := r.class[name]; ok {
		return c
	}
	return world.ClassUnknown
}

// Model returns a loaded model by path, such as "block/stone".
func (r *Registry) Model(name string) (*Model, bool) {
	m, ok := r.models[modelName(name)]
	return m, ok
}

// Names returns the registered block names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.states))
	for n := range r.states {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered blockstates.
func (r *Registry) Len() int {
	return len(r.states)
}
