package blockmodel

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/blockmesh/internal/biome"
)

// Hand-coded exceptions to the flags derived from texture content. Keys are
// matched as substrings of the model or block name.

// untintedModels never apply their tintindex.
var untintedModels = []string{
	"powder_snow_cauldron",
	"lava_cauldron",
}

type flagOverride struct {
	match     string
	solid     *bool
	fullBlock *bool
}

func boolPtr(v bool) *bool { return &v }

var flagOverrides = []flagOverride{
	// Drawn by the entity renderer, the model is only a particle holder.
	{match: "shulker_box", fullBlock: boolPtr(false)},
	{match: "spawner", solid: boolPtr(false)},
}

// fixedTints are blocks whose tint ignores the biome.
var fixedTints = map[string]string{
	"minecraft:spruce_leaves": "#619961",
	"minecraft:birch_leaves":  "#80a755",
	"minecraft:lily_pad":      "#208030",
}

func tintSuppressed(model string) bool {
	for _, m := range untintedModels {
		if strings.Contains(model, m) {
			return true
		}
	}
	return false
}

func applyFlagOverrides(m *Model) {
	for _, o := range flagOverrides {
		if !strings.Contains(m.Name, o.match) {
			continue
		}
		if o.solid != nil {
			m.solid = *o.solid
		}
		if o.fullBlock != nil {
			m.fullBlock = *o.fullBlock
		}
	}
}

// tintKind picks the biome colour a block's tinted faces use.
func tintKind(block string) biome.Kind {
	switch {
	case strings.Contains(block, "water"), strings.Contains(block, "bubble_column"):
		return biome.Water
	case strings.Contains(block, "leaves"), strings.Contains(block, "vine"):
		return biome.Foliage
	default:
		return biome.Grass
	}
}

// fixedTint returns the constant tint of a block, if it has one.
func fixedTint(block string) (colorful.Color, bool) {
	hex, ok := fixedTints[block]
	if !ok {
		return colorful.Color{}, false
	}
	c, err := colorful.Hex(hex)
	return c, err == nil
}
