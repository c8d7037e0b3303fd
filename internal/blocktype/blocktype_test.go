package blocktype

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Faultbox/blockmesh/internal/emit"
	"github.com/Faultbox/blockmesh/internal/logger"
	"github.com/Faultbox/blockmesh/internal/texture"
	"github.com/Faultbox/blockmesh/internal/world"
	"github.com/Faultbox/blockmesh/pkg/formats"
)

func TestFind(t *testing.T) {
	r := buildRegistry(t, testConfig, Options{})

	tests := []struct {
		id, data int
		want     string
	}{
		{1, 0, "Stone"},
		{1, 7, "Stone"},
		{35, 1, "Wool"},
		{18, 0, "Oak Leaves"},
		{18, 4, "Oak Leaves"},
		{18, 12, "Oak Leaves"},
		{44, 8, "Stone Slab"},
		{6, 8, "Oak Sapling"},
		{18, 1, "Air"},
		{44, 1, "Air"},
		{4000, 0, "Air"},
	}
	for _, tt := range tests {
		if got := r.Find(tt.id, tt.data).Name(); got != tt.want {
			t.Errorf("Find(%d, %d): expected %q, got %q", tt.id, tt.data, tt.want, got)
		}
	}

	if got := r.FindName("minecraft:oak_stairs").Name(); got != "Oak Stairs" {
		t.Errorf("expected Oak Stairs, got %q", got)
	}
	if !IsAir(r.FindName("minecraft:acacia_stairs")) {
		t.Error("expected unmapped name to be air")
	}
	if got := r.Water().Name(); got != "Water" {
		t.Errorf("expected water overlay type, got %q", got)
	}
}

func TestClassify(t *testing.T) {
	r := buildRegistry(t, testConfig, Options{})

	tests := []struct {
		name string
		cell world.Cell
		want world.Class
	}{
		{"air", world.Cell{}, world.ClassAir},
		{"stone", world.Cell{ID: 1}, world.ClassOpaque},
		{"glass", world.Cell{ID: 20}, world.ClassTransparent},
		{"water", world.Cell{ID: 9}, world.ClassLiquid},
		{"lava", world.Cell{Name: "minecraft:lava"}, world.ClassLiquid},
		{"leaves", world.Cell{ID: 18, Data: 4}, world.ClassTransparent},
		{"unmapped id", world.Cell{ID: 250}, world.ClassUnknown},
		{"unmapped name", world.Cell{Name: "minecraft:sculk"}, world.ClassUnknown},
		{"cave air", world.Cell{Name: "minecraft:cave_air"}, world.ClassAir},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Classify(tt.cell); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestUnknownKindSkipped(t *testing.T) {
	warnings := logger.NewOnce(nil)
	doc := `
blocks:
  - kind: teleporter
    id: "200"
  - kind: teleporter
    id: "201"
  - kind: solid
    id: "1"
    textures: {texture: block/stone}
`
	r := buildRegistry(t, doc, Options{Warnings: warnings})

	if !IsAir(r.Find(200, 0)) {
		t.Error("expected unknown kind to resolve to air")
	}
	if r.Find(1, 0).Name() != "1" {
		t.Errorf("expected label from id, got %q", r.Find(1, 0).Name())
	}
	if diff := cmp.Diff([]string{"blocktype|kind|teleporter"}, warnings.Keys()); diff != "" {
		t.Errorf("warnings mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"bad color", "blocks:\n  - kind: solid\n    id: \"1\"\n    color: \"#zzz\"\n"},
		{"bad id", "blocks:\n  - kind: solid\n    id: \"1:16\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := formats.ParseBlockConfig([]byte(tt.doc))
			if err == nil {
				_, err = Build(cfg, newAtlas(texture.VersionModern), Options{Warnings: logger.NewOnce(nil)})
			}
			if !errors.Is(err, formats.ErrMalformedBlockConfig) {
				t.Errorf("expected ErrMalformedBlockConfig, got %v", err)
			}
		})
	}
}

func TestMissingTextureUsesPlaceholder(t *testing.T) {
	warnings := logger.NewOnce(nil)
	doc := `
blocks:
  - kind: solid
    id: "1"
    name: Marble
    textures: {texture: block/marble}
`
	r := buildRegistry(t, doc, Options{Warnings: warnings})
	ctx := newContext(t, r)
	ctx.Chunk.SetLegacy(4, 4, 4, 1, 0)
	emitAt(ctx, r, 4, 4, 4)

	meshes := ctx.Geometry.Meshes()
	if len(meshes) != 1 || meshes[0].Texture.Name != texture.MissingName {
		t.Fatalf("expected one placeholder bucket, got %d", len(meshes))
	}
	if warnings.Len() != 1 {
		t.Errorf("expected 1 warning, got %d", warnings.Len())
	}
}

func TestDataVariantWithoutTexture(t *testing.T) {
	r := buildRegistry(t, testConfig, Options{})
	ctx := newContext(t, r)
	ctx.Chunk.SetLegacy(2, 2, 2, 35, 1)
	ctx.Chunk.SetLegacy(6, 2, 2, 35, 9)
	ctx.Chunk.SetLegacy(9, 2, 2, 35, 9)

	for _, x := range []int{2, 6, 9} {
		emitAt(ctx, r, x, 2, 2)
	}

	if got := quadCount(ctx.Geometry); got != 6 {
		t.Errorf("expected only the orange block drawn, got %d quads", got)
	}
	if diff := cmp.Diff([]string{"Wool:9"}, ctx.Warnings.Keys()); diff != "" {
		t.Errorf("warnings mismatch (-want +got):\n%s", diff)
	}
}

func TestCropStageWithoutTexture(t *testing.T) {
	r := buildRegistry(t, testConfig, Options{})
	ctx := newContext(t, r)
	ctx.Chunk.SetLegacy(2, 2, 2, 59, 1)
	ctx.Chunk.SetLegacy(6, 2, 2, 59, 5)
	ctx.Chunk.SetLegacy(9, 2, 2, 59, 5)

	for _, x := range []int{2, 6, 9} {
		emitAt(ctx, r, x, 2, 2)
	}

	// Four two-sided planes.
	if got := quadCount(ctx.Geometry); got != 8 {
		t.Errorf("expected only the stage 1 crop drawn, got %d quads", got)
	}
	if diff := cmp.Diff([]string{"Wheat:5"}, ctx.Warnings.Keys()); diff != "" {
		t.Errorf("warnings mismatch (-want +got):\n%s", diff)
	}
}

func TestSolidCulling(t *testing.T) {
	r := buildRegistry(t, testConfig, Options{})
	ctx := newContext(t, r)
	ctx.Chunk.SetLegacy(5, 5, 5, 1, 0)
	emitAt(ctx, r, 5, 5, 5)
	if got := quadCount(ctx.Geometry); got != 6 {
		t.Errorf("expected 6 quads for a lone block, got %d", got)
	}

	ctx = newContext(t, r)
	ctx.Chunk.SetLegacy(5, 5, 5, 1, 0)
	for _, o := range sideOffsets {
		ctx.Chunk.SetLegacy(5+o[0], 5+o[1], 5+o[2], 1, 0)
	}
	emitAt(ctx, r, 5, 5, 5)
	if got := quadCount(ctx.Geometry); got != 0 {
		t.Errorf("expected enclosed block to emit nothing, got %d quads", got)
	}
}

func TestGlassCullsSameBlock(t *testing.T) {
	r := buildRegistry(t, testConfig, Options{})
	ctx := newContext(t, r)
	ctx.Chunk.SetLegacy(5, 5, 5, 20, 0)
	ctx.Chunk.SetLegacy(6, 5, 5, 20, 0)
	emitAt(ctx, r, 5, 5, 5)
	emitAt(ctx, r, 6, 5, 5)

	if got := quadCount(ctx.Geometry); got != 10 {
		t.Errorf("expected 10 quads, got %d", got)
	}
}

// Interior and Edge emission must produce identical geometry.
func TestModesEquivalent(t *testing.T) {
	r := buildRegistry(t, testConfig, Options{})

	cells := []world.Cell{
		{ID: 1},
		{ID: 53, Data: 2},
		{ID: 85},
		{ID: 50, Data: 3},
		{ID: 44, Data: 8},
		{ID: 9, Data: 3},
		{Name: "minecraft:oak_stairs", Props: world.Properties{"facing": "west", "half": "top"}},
	}
	for _, c := range cells {
		var got [2]*emit.Context
		for i, mode := range []emit.Mode{emit.Interior, emit.Edge} {
			ctx := newContext(t, r)
			c.SkyLight = 15
			ctx.Chunk.Set(7, 7, 7, c)
			ctx.Chunk.SetLegacy(8, 7, 7, 85, 0)
			ctx.Chunk.SetLegacy(7, 6, 7, 1, 0)
			r.Lookup(c).Emit(ctx, 7, 7, 7, mode)
			got[i] = ctx
		}
		if diff := cmp.Diff(got[0].Geometry.Meshes(), got[1].Geometry.Meshes()); diff != "" {
			t.Errorf("%s: interior and edge differ (-interior +edge):\n%s", r.Lookup(c).Name(), diff)
		}
	}
}
