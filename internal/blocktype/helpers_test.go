package blocktype

import (
	"testing"

	"github.com/Faultbox/blockmesh/internal/emit"
	"github.com/Faultbox/blockmesh/internal/geometry"
	"github.com/Faultbox/blockmesh/internal/lighting"
	"github.com/Faultbox/blockmesh/internal/logger"
	"github.com/Faultbox/blockmesh/internal/texture"
	"github.com/Faultbox/blockmesh/internal/world"
	"github.com/Faultbox/blockmesh/pkg/formats"
)

const testConfig = `
blocks:
  - kind: solid
    id: "1"
    string_id: minecraft:stone
    name: Stone
    textures: {texture: block/stone}
  - kind: datasolid
    id: "35"
    name: Wool
    textures: {side0: block/white_wool, side1: block/orange_wool}
  - kind: glass
    id: "20"
    string_id: minecraft:glass
    name: Glass
    textures: {texture: block/glass}
  - kind: water
    id: "9"
    string_id: minecraft:water
    name: Water
    textures: {texture: block/water_still}
  - kind: water
    id: "11"
    string_id: minecraft:lava
    name: Lava
    textures: {texture: block/lava_still}
  - kind: leaves
    id: "18:0"
    name: Oak Leaves
    textures: {texture: block/oak_leaves}
  - kind: slab
    id: "44:0"
    name: Stone Slab
    textures: {side: block/stone, top: block/stone}
  - kind: sapling
    id: "6:0"
    name: Oak Sapling
    textures: {texture: block/oak_sapling}
  - kind: stairs
    id: "53"
    string_id: minecraft:oak_stairs
    name: Oak Stairs
    textures: {texture: block/oak_planks}
  - kind: fence
    id: "85"
    name: Fence
    textures: {texture: block/oak_planks}
  - kind: torch
    id: "50"
    name: Torch
    textures: {texture: block/torch}
  - kind: glasspane
    id: "102"
    name: Glass Pane
    textures: {texture: block/glass}
  - kind: beacon
    id: "138"
    name: Beacon
    textures: {beam: block/beacon_beam, glass: block/glass, beacon: block/beacon, obsidian: block/obsidian}
  - kind: datasolid
    id: "95"
    name: Stained Glass
    alpha_test: true
    textures: {side0: block/white_stained_glass, side1: block/orange_stained_glass}
  - kind: crops
    id: "59"
    name: Wheat
    textures: {tex0: block/wheat_stage0, tex1: block/wheat_stage1}
`

var testTextures = []string{
	"block/stone", "block/white_wool", "block/orange_wool", "block/glass",
	"block/water_still", "block/lava_still", "block/oak_leaves", "block/oak_sapling",
	"block/oak_planks", "block/torch", "block/beacon_beam", "block/beacon",
	"block/obsidian", "block/white_stained_glass", "block/orange_stained_glass",
	"block/wheat_stage0", "block/wheat_stage1",
}

func newAtlas(version texture.PackVersion) *texture.Atlas {
	a := texture.NewAtlas(nil, version)
	for _, name := range testTextures {
		a.Register(&texture.Texture{Name: name, Width: 16, Height: 16})
	}
	return a
}

func buildRegistry(t *testing.T, doc string, opts Options) *Registry {
	t.Helper()
	cfg, err := formats.ParseBlockConfig([]byte(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Warnings == nil {
		opts.Warnings = logger.NewOnce(nil)
	}
	r, err := Build(cfg, newAtlas(texture.VersionModern), opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return r
}

func newContext(t *testing.T, r *Registry) *emit.Context {
	t.Helper()
	chunk := world.NewChunk(world.ChunkCoord{}, 16)
	m := world.NewMap(world.Options{Style: lighting.StyleNone})
	m.Add(chunk)
	return &emit.Context{
		World:    m,
		Chunk:    chunk,
		Geometry: geometry.New(),
		Classes:  r,
		Warnings: logger.NewOnce(nil),
	}
}

// emitAt runs the type of the cell at x, y, z with the mode its position calls for.
func emitAt(ctx *emit.Context, r *Registry, x, y, z int) {
	r.Lookup(ctx.Chunk.Cell(x, y, z)).Emit(ctx, x, y, z, ctx.ModeFor(x, y, z))
}

func quadCount(g *geometry.Geometry) int {
	n := 0
	for _, m := range g.Meshes() {
		n += m.QuadCount()
	}
	return n
}

func approx(a, b float32) bool {
	d := a - b
	return d < 1e-5 && d > -1e-5
}
