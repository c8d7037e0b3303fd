package blockmodel

import (
	"errors"
	"testing"

	"github.com/Faultbox/blockmesh/internal/logger"
	"github.com/Faultbox/blockmesh/internal/texture"
	"github.com/Faultbox/blockmesh/internal/world"
	"github.com/Faultbox/blockmesh/pkg/formats"
)

func stairsPack() map[string]string {
	return map[string]string{
		ModelRoot + "block/stairs.json": `{"textures": {"t": "block/stone"}, "elements": [
			{"from": [0,0,0], "to": [16,8,16], "faces": {"up": {"texture": "#t"}, "down": {"texture": "#t", "cullface": "down"}}},
			{"from": [8,8,0], "to": [16,16,16], "faces": {"up": {"texture": "#t"}, "west": {"texture": "#t"}}}
		]}`,
		ModelRoot + "block/outer_stairs.json": `{"textures": {"t": "block/stone"}, "elements": [
			{"from": [0,0,0], "to": [16,8,16], "faces": {"up": {"texture": "#t"}}}
		]}`,
		BlockStateRoot + "oak_stairs.json": `{"variants": {
			"facing=east,half=bottom,shape=straight":  {"model": "block/stairs", "y": 270},
			"facing=north,half=bottom,shape=straight": {"model": "block/stairs", "y": 180},
			"facing=south,half=bottom,shape=straight": {"model": "block/stairs"},
			"facing=west,half=bottom,shape=straight":  {"model": "block/stairs", "y": 90},
			"facing=east,half=bottom,shape=outer_left": {"model": "block/outer_stairs", "y": 270}
		}}`,
	}
}

func fencePack() map[string]string {
	return map[string]string{
		ModelRoot + "block/fence_post.json": `{"textures": {"t": "block/oak_planks"}, "elements": [
			{"from": [6,0,6], "to": [10,16,10], "faces": {"north": {"texture": "#t"}, "south": {"texture": "#t"}, "east": {"texture": "#t"}, "west": {"texture": "#t"}, "up": {"texture": "#t"}, "down": {"texture": "#t"}}}
		]}`,
		ModelRoot + "block/fence_side.json": `{"textures": {"t": "block/oak_planks"}, "elements": [
			{"from": [7,12,0], "to": [9,15,9], "faces": {"up": {"texture": "#t"}, "down": {"texture": "#t"}, "west": {"texture": "#t"}, "east": {"texture": "#t"}}},
			{"from": [7,6,0], "to": [9,9,9], "faces": {"up": {"texture": "#t"}, "down": {"texture": "#t"}, "west": {"texture": "#t"}, "east": {"texture": "#t"}}}
		]}`,
		BlockStateRoot + "oak_fence.json": `{"multipart": [
			{"apply": {"model": "block/fence_post"}},
			{"when": {"north": "true"}, "apply": {"model": "block/fence_side", "uvlock": true}},
			{"when": {"east": "true"}, "apply": {"model": "block/fence_side", "y": 90, "uvlock": true}},
			{"when": {"south": "true"}, "apply": {"model": "block/fence_side", "y": 180, "uvlock": true}},
			{"when": {"west": "true"}, "apply": {"model": "block/fence_side", "y": 270, "uvlock": true}}
		]}`,
	}
}

func TestAlwaysVariant(t *testing.T) {
	files := map[string]string{
		ModelRoot + "block/cube_all.json":       cubeAll,
		ModelRoot + "block/stone.json":          `{"parent": "block/cube_all", "textures": {"all": "block/stone"}}`,
		ModelRoot + "block/stone_mirrored.json": `{"parent": "block/cube_all", "textures": {"all": "block/stone"}}`,
		BlockStateRoot + "stone.json":           `{"variants": {"": [{"model": "block/stone", "weight": 3}, {"model": "block/stone_mirrored"}]}}`,
	}
	r := loadRegistry(t, files, newAtlas(opaque("block/stone")), Options{})
	bs, ok := r.BlockState("minecraft:stone")
	if !ok {
		t.Fatal("expected minecraft:stone to be registered")
	}

	propMaps := []world.Properties{
		nil,
		{},
		{"facing": "north"},
		{"waterlogged": "true", "axis": "y"},
	}
	first := bs.Candidates(propMaps[0])
	for _, props := range propMaps {
		got := bs.Candidates(props)
		if len(got) != 1 || len(got[0]) != 2 {
			t.Fatalf("%v: expected one list of 2 candidates, got %v", props, got)
		}
		for i := range got[0] {
			if got[0][i].Model != first[0][i].Model || got[0][i].Weight != first[0][i].Weight {
				t.Errorf("%v: candidate %d differs", props, i)
			}
		}
	}

	if w := first[0][0].Weight; w != 3 {
		t.Errorf("expected weight 3, got %d", w)
	}
	if w := first[0][1].Weight; w != 1 {
		t.Errorf("expected default weight 1, got %d", w)
	}
}

func TestWeightedChoice(t *testing.T) {
	weights := []int{3, 1}
	tests := []struct {
		draw int
		want int
	}{
		{0, 0},
		{2, 0},
		{3, 1},
	}

	for _, tt := range tests {
		c := WeightedChooser{Rand: fixedRand(tt.draw)}
		if got := c.Choose(weights); got != tt.want {
			t.Errorf("draw %d: expected index %d, got %d", tt.draw, tt.want, got)
		}
	}
}

type countingChooser struct {
	calls int
	pick  int
}

func (c *countingChooser) Choose(weights []int) int {
	c.calls++
	return c.pick
}

func TestResolveChoosesPerCall(t *testing.T) {
	a, b := &Model{Name: "a"}, &Model{Name: "b"}
	bs := &BlockState{
		Name:     "minecraft:test",
		Variants: []Variant{{Key: "", Props: world.Properties{}, Models: []Candidate{{Model: a, Weight: 1}, {Model: b, Weight: 1}}}},
	}
	c := &countingChooser{pick: 1}

	for i := 0; i < 3; i++ {
		got := bs.Resolve(world.Properties{}, c)
		if len(got) != 1 || got[0].Model != b {
			t.Fatalf("expected model b, got %v", got)
		}
	}
	if c.calls != 3 {
		t.Errorf("expected a draw per call, got %d", c.calls)
	}
}

func TestStairsVariant(t *testing.T) {
	r := loadRegistry(t, stairsPack(), newAtlas(opaque("block/stone")), Options{})
	bs, _ := r.BlockState("minecraft:oak_stairs")

	props := world.Properties{"facing": "east", "half": "bottom", "shape": "straight", "waterlogged": "false"}
	got := bs.Resolve(props, nil)
	if len(got) != 1 {
		t.Fatalf("expected exactly one instance, got %d", len(got))
	}
	if got[0].Model.Name != "block/stairs" || got[0].Y != 270 || got[0].X != 0 {
		t.Errorf("expected block/stairs at y=270, got %s x=%d y=%d", got[0].Model.Name, got[0].X, got[0].Y)
	}
	if len(bs.Multipart) != 0 || len(bs.Candidates(props)) != 1 {
		t.Error("expected no multipart contribution")
	}

	facing := map[string]int{"north": 180, "south": 0, "east": 270, "west": 90}
	for f, want := range facing {
		got := bs.Resolve(world.Properties{"facing": f, "half": "bottom", "shape": "straight"}, nil)
		if len(got) != 1 || got[0].Y != want {
			t.Errorf("facing=%s: expected y=%d, got %v", f, want, got)
		}
	}

	if got := bs.Resolve(world.Properties{"facing": "up"}, nil); len(got) != 0 {
		t.Errorf("expected no match for unknown facing, got %v", got)
	}
}

func TestVariantSpecificity(t *testing.T) {
	vs := []Variant{
		{Key: "facing=east", Props: parseVariantKey("facing=east")},
		{Key: "", Props: parseVariantKey("")},
		{Key: "facing=east,lit=true", Props: parseVariantKey("facing=east,lit=true")},
	}
	sortVariants(vs)

	bs := &BlockState{Variants: vs}
	for i := range bs.Variants {
		bs.Variants[i].Models = []Candidate{{Model: &Model{Name: bs.Variants[i].Key}}}
	}

	tests := []struct {
		props world.Properties
		want  string
	}{
		{world.Properties{"facing": "east", "lit": "true"}, "facing=east,lit=true"},
		{world.Properties{"facing": "east", "lit": "false"}, "facing=east"},
		{world.Properties{"facing": "west"}, ""},
	}
	for _, tt := range tests {
		got := bs.Resolve(tt.props, nil)
		if len(got) != 1 || got[0].Model.Name != tt.want {
			t.Errorf("%v: expected variant %q, got %v", tt.props, tt.want, got)
		}
	}
}

func TestVariantKeyNormal(t *testing.T) {
	v := Variant{Key: "normal", Props: parseVariantKey("normal")}
	if !v.Matches(world.Properties{"snowy": "false"}) {
		t.Error("expected legacy normal key to match any properties")
	}
}

func TestFenceMultipart(t *testing.T) {
	r := loadRegistry(t, fencePack(), newAtlas(opaque("block/oak_planks")), Options{})

	props := world.Properties{"north": "true", "east": "false", "south": "true", "west": "false"}
	got, ok := r.Resolve("minecraft:oak_fence", props, nil)
	if !ok {
		t.Fatal("expected oak_fence to resolve")
	}
	if len(got) != 3 {
		t.Fatalf("expected post plus two connectors, got %d instances", len(got))
	}

	if got[0].Model.Name != "block/fence_post" {
		t.Errorf("expected post first, got %s", got[0].Model.Name)
	}
	elements := 0
	for _, inst := range got {
		elements += len(inst.Model.Elements)
	}
	if elements != 5 {
		t.Errorf("expected 5 elements (1 post + 2x2 side), got %d", elements)
	}
	if got[1].Y != 0 || got[2].Y != 180 || !got[1].UVLock {
		t.Errorf("expected north (y=0) and south (y=180) connectors, got y=%d and y=%d", got[1].Y, got[2].Y)
	}
}

func TestMultipartCount(t *testing.T) {
	r := loadRegistry(t, fencePack(), newAtlas(opaque("block/oak_planks")), Options{})
	bs, _ := r.BlockState("minecraft:oak_fence")

	tests := []struct {
		name  string
		props world.Properties
		want  int
	}{
		{"no properties", nil, 1},
		{"all false", world.Properties{"north": "false", "east": "false", "south": "false", "west": "false"}, 1},
		{"all true", world.Properties{"north": "true", "east": "true", "south": "true", "west": "true"}, 5},
		{"partial keys", world.Properties{"east": "true"}, 2},
		{"unrelated keys", world.Properties{"waterlogged": "true"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			satisfied := 0
			for _, rule := range bs.Multipart {
				if rule.Matches(tt.props) {
					satisfied++
				}
			}
			got := bs.Resolve(tt.props, nil)
			if len(got) != tt.want || len(got) != satisfied {
				t.Errorf("expected %d parts (%d rules satisfied), got %d", tt.want, satisfied, len(got))
			}
		})
	}
}

func TestSingleVariant(t *testing.T) {
	files := stairsPack()
	files[ModelRoot+"block/cube_all.json"] = cubeAll
	files[ModelRoot+"block/dirt.json"] = `{"parent": "block/cube_all", "textures": {"all": "block/dirt"}}`
	files[BlockStateRoot+"dirt.json"] = `{"variants": {"": {"model": "block/dirt"}}}`
	r := loadRegistry(t, files, newAtlas(opaque("block/stone"), opaque("block/dirt")), Options{})

	inst, ok := r.SingleVariant("minecraft:dirt")
	if !ok || inst.Model.Name != "block/dirt" {
		t.Errorf("expected dirt fast path, got %v %v", inst, ok)
	}
	if _, ok := r.SingleVariant("minecraft:oak_stairs"); ok {
		t.Error("expected no fast path for a block with property variants")
	}
	if names := r.Names(); len(names) != 2 || names[0] != "minecraft:dirt" {
		t.Errorf("unexpected names %v", names)
	}
}

func TestClassify(t *testing.T) {
	files := fencePack()
	files[ModelRoot+"block/cube_all.json"] = cubeAll
	files[ModelRoot+"block/dirt.json"] = `{"parent": "block/cube_all", "textures": {"all": "block/dirt"}}`
	files[ModelRoot+"block/glass.json"] = `{"parent": "block/cube_all", "textures": {"all": "block/glass"}}`
	files[BlockStateRoot+"dirt.json"] = `{"variants": {"": {"model": "block/dirt"}}}`
	files[BlockStateRoot+"glass.json"] = `{"variants": {"": {"model": "block/glass"}}}`
	files[BlockStateRoot+"water.json"] = `{"variants": {"": {"model": "block/dirt"}}}`
	atlas := newAtlas(opaque("block/oak_planks"), opaque("block/dirt"),
		&texture.Texture{Name: "block/glass", Width: 16, Height: 16, Transparent: true})
	r := loadRegistry(t, files, atlas, Options{})

	tests := map[string]world.Class{
		"minecraft:dirt":      world.ClassOpaque,
		"minecraft:glass":     world.ClassTransparent,
		"minecraft:oak_fence": world.ClassTransparent,
		"minecraft:water":     world.ClassLiquid,
		"minecraft:air":       world.ClassAir,
		"minecraft:cave_air":  world.ClassAir,
		"minecraft:unknown":   world.ClassUnknown,
	}
	for name, want := range tests {
		if got := r.Classify(name); got != want {
			t.Errorf("%s: expected %s, got %s", name, want, got)
		}
	}
}

func TestMissingModelIsSkipped(t *testing.T) {
	files := map[string]string{
		BlockStateRoot + "ghost.json": `{"variants": {"": {"model": "block/ghost"}}}`,
	}
	warnings := logger.NewOnce(nil)
	r := loadRegistry(t, files, newAtlas(), Options{Warnings: warnings})

	got, ok := r.Resolve("minecraft:ghost", nil, nil)
	if !ok || len(got) != 0 {
		t.Errorf("expected known block with no instances, got %v %v", got, ok)
	}
	if warnings.Len() != 1 {
		t.Errorf("expected one missing model warning, got %v", warnings.Keys())
	}
}

func TestMalformedBlockStateFailsLoad(t *testing.T) {
	files := map[string]string{
		BlockStateRoot + "broken.json": `{"variants": {"": `,
	}
	_, err := Load(newPack(files), newAtlas(), Options{})
	if !errors.Is(err, formats.ErrMalformedBlockState) {
		t.Errorf("expected ErrMalformedBlockState, got %v", err)
	}
}

func TestMalformedModelFailsLoad(t *testing.T) {
	files := map[string]string{
		ModelRoot + "block/bad.json": `{"elements": [{"from": [0,0,0], "to": [99,0,0], "faces": {}}]}`,
		BlockStateRoot + "bad.json":  `{"variants": {"": {"model": "block/bad"}}}`,
	}
	_, err := Load(newPack(files), newAtlas(), Options{})
	if !errors.Is(err, formats.ErrMalformedModel) {
		t.Errorf("expected ErrMalformedModel, got %v", err)
	}
}
