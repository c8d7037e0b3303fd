// Package blocktype is the legacy dispatch table: a closed set of hand-written
// shape emitters keyed by numeric id and data, or by block name.
package blocktype

import (
	"github.com/brentp/intintmap"

	"github.com/Faultbox/blockmesh/internal/emit"
	"github.com/Faultbox/blockmesh/internal/world"
)

// BlockType emits the geometry of one legacy block. Emit must produce the
// same output in both modes; Interior only skips border lookups.
type BlockType interface {
	Name() string
	IsSolid() bool
	IsWater() bool
	Emit(ctx *emit.Context, x, y, z int, mode emit.Mode)
}

// Air is the no-op type returned for unmapped blocks.
type Air struct {
	name string
}

// NewAir creates an air type.
func NewAir(name string) *Air { return &Air{name: name} }

func (a *Air) Name() string                                     { return a.name }
func (a *Air) IsSolid() bool                                    { return false }
func (a *Air) IsWater() bool                                    { return false }
func (a *Air) Emit(ctx *emit.Context, x, y, z int, mode emit.Mode) {}

// IsAir reports whether t is the no-op type.
func IsAir(t BlockType) bool {
	_, ok := t.(*Air)
	return ok
}

// Registry maps legacy ids and block names to types. It is filled by Build and
// read-only afterwards.
type Registry struct {
	ids    *intintmap.Map
	types  []BlockType
	names  map[string]BlockType
	air    BlockType
	water  BlockType
	byKind map[string]int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		ids:    intintmap.New(1024, 0.6),
		names:  make(map[string]BlockType),
		air:    NewAir("Air"),
		byKind: make(map[string]int),
	}
}

func key(id, data int) int64 {
	return int64(id)<<4 | int64(data&0xF)
}

// Register maps (id, data) to t.
func (r *Registry) Register(id, data int, t BlockType) {
	r.types = append(r.types, t)
	r.ids.Put(key(id, data), int64(len(r.types)-1))
}

// RegisterName maps a block name to t.
func (r *Registry) RegisterName(name string, t BlockType) {
	r.names[name] = t
}

// Find returns the type of a numeric block, Air when unmapped.
func (r *Registry) Find(id, data int) BlockType {
	if i, ok := r.ids.Get(key(id, data)); ok {
		return r.types[i]
	}
	return r.air
}

// FindName returns the type registered for a block name, Air when unmapped.
func (r *Registry) FindName(name string) BlockType {
	if t, ok := r.names[name]; ok {
		return t
	}
	return r.air
}

// Lookup returns the type of a cell.
func (r *Registry) Lookup(c world.Cell) BlockType {
	if c.IsLegacy() {
		return r.Find(int(c.ID), int(c.Data))
	}
	return r.FindName(c.Name)
}

// Classify returns the occlusion class of a cell. Cells without a type are
// unknown, so the mask keeps their neighbours visible.
func (r *Registry) Classify(c world.Cell) world.Class {
	if c.IsAir() {
		return world.ClassAir
	}
	return ClassOf(r.Lookup(c))
}

// ClassOf returns the occlusion class of a type.
func ClassOf(t BlockType) world.Class {
	switch {
	case IsAir(t):
		return world.ClassUnknown
	case t.IsWater():
		return world.ClassLiquid
	case t.IsSolid():
		return world.ClassOpaque
	default:
		return world.ClassTransparent
	}
}

// Water returns the type drawn under waterlogged blocks, or Air when no water
// kind is configured.
func (r *Registry) Water() BlockType {
	if r.water == nil {
		return r.air
	}
	return r.water
}

// Len returns the number of (id, data) registrations.
func (r *Registry) Len() int {
	return r.ids.Size()
}

// NameCount returns the number of name registrations.
func (r *Registry) NameCount() int {
	return len(r.names)
}

// Kinds returns the number of types built per kind.
func (r *Registry) Kinds() map[string]int {
	out := make(map[string]int, len(r.byKind))
	for k, n := range r.byKind {
		out[k] = n
	}
	return out
}
