package formats

import (
	"errors"
	"testing"
)

func TestParseBlockConfig(t *testing.T) {
	data := []byte(`
blocks:
  - kind: solid
    id: "1"
    string_id: minecraft:stone
    name: Stone
    textures:
      texture: block/stone
  - kind: leaves
    id: "18:1"
    name: Spruce Leaves
    color: "#619961"
    alpha_test: true
    textures:
      texture: block/spruce_leaves
  - kind: water
    string_id: minecraft:water
    textures:
      texture: block/water_still
`)

	cfg, err := ParseBlockConfig(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Blocks) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(cfg.Blocks))
	}

	id, dataVal, ok, err := cfg.Blocks[0].NumericID()
	if err != nil || !ok || id != 1 || dataVal != AnyData {
		t.Errorf("expected id 1 with any data, got %d:%d ok=%v err=%v", id, dataVal, ok, err)
	}

	leaves := cfg.Blocks[1]
	id, dataVal, _, _ = leaves.NumericID()
	if id != 18 || dataVal != 1 {
		t.Errorf("expected 18:1, got %d:%d", id, dataVal)
	}
	if !leaves.AlphaTest || leaves.Color != "#619961" {
		t.Errorf("unexpected leaves attributes %+v", leaves)
	}
	if leaves.Texture("texture") != "block/spruce_leaves" {
		t.Errorf("unexpected texture %s", leaves.Texture("texture"))
	}

	if _, _, ok, _ := cfg.Blocks[2].NumericID(); ok {
		t.Error("expected name-only block to have no numeric id")
	}
	if cfg.Blocks[2].Label() != "minecraft:water" {
		t.Errorf("expected label to fall back to string id, got %s", cfg.Blocks[2].Label())
	}
}

func TestParseBlockConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", "blocks: [\n  - kind"},
		{"no kind", "blocks:\n  - id: \"1\"\n"},
		{"no id", "blocks:\n  - kind: solid\n"},
		{"bad id", "blocks:\n  - kind: solid\n    id: stone\n"},
		{"bad data", "blocks:\n  - kind: solid\n    id: \"1:16\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseBlockConfig([]byte(tt.data)); !errors.Is(err, ErrMalformedBlockConfig) {
				t.Errorf("expected ErrMalformedBlockConfig, got %v", err)
			}
		})
	}
}
