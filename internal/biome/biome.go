// Package biome provides tint colours: per-biome grass, foliage and water
// colours and the sixteen dye colours.
package biome

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/blockmesh/internal/config"
)

// Kind selects which biome colour a tinted face uses.
type Kind int

const (
	Grass Kind = iota
	Foliage
	Water
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Grass:
		return "grass"
	case Foliage:
		return "foliage"
	case Water:
		return "water"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Colors holds the three tint colours of one biome.
type Colors struct {
	Grass   colorful.Color
	Foliage colorful.Color
	Water   colorful.Color
}

func (c Colors) get(kind Kind) colorful.Color {
	switch kind {
	case Foliage:
		return c.Foliage
	case Water:
		return c.Water
	default:
		return c.Grass
	}
}

func (c *Colors) set(kind Kind, col colorful.Color) {
	switch kind {
	case Foliage:
		c.Foliage = col
	case Water:
		c.Water = col
	default:
		c.Grass = col
	}
}

// Common legacy biome ids.
const (
	Ocean       = 0
	Plains      = 1
	Desert      = 2
	Mountains   = 3
	Forest      = 4
	Taiga       = 5
	Swamp       = 6
	River       = 7
	SnowyTundra = 12
	Jungle      = 21
	Savanna     = 35
	Badlands    = 37
)

var defaults = map[int][3]string{
	Ocean:       {"#8eb971", "#71a74d", "#3f76e4"},
	Plains:      {"#91bd59", "#77ab2f", "#3f76e4"},
	Desert:      {"#bfb755", "#aea42a", "#3f76e4"},
	Mountains:   {"#8ab689", "#6da36b", "#3f76e4"},
	Forest:      {"#79c05a", "#59ae30", "#3f76e4"},
	Taiga:       {"#86b783", "#68a464", "#287082"},
	Swamp:       {"#6a7039", "#6a7039", "#617b64"},
	River:       {"#8eb971", "#71a74d", "#3f76e4"},
	SnowyTundra: {"#80b497", "#60a17b", "#3d57d6"},
	Jungle:      {"#59c93c", "#30bb0b", "#3f76e4"},
	Savanna:     {"#bfb755", "#aea42a", "#3f76e4"},
	Badlands:    {"#90814d", "#9e814d", "#3f76e4"},
}

// Palette maps biome ids to tint colours. It is read-only once built.
type Palette struct {
	entries  map[int]Colors
	fallback Colors
}

// DefaultPalette returns the built-in biome colours. Unknown biomes use plains.
func DefaultPalette() *Palette {
	p := &Palette{entries: make(map[int]Colors, len(defaults))}
	for id, hex := range defaults {
		p.entries[id] = Colors{Grass: mustHex(hex[0]), Foliage: mustHex(hex[1]), Water: mustHex(hex[2])}
	}
	p.fallback = p.entries[Plains]
	return p
}

// FromConfig returns the default palette with the configured overrides applied.
func FromConfig(overrides map[int]config.BiomeColors) (*Palette, error) {
	p := DefaultPalette()
	for id, o := range overrides {
		for kind, hex := range map[Kind]string{Grass: o.Grass, Foliage: o.Foliage, Water: o.Water} {
			if hex == "" {
				continue
			}
			if err := p.Override(id, kind, hex); err != nil {
				return nil, err
			}
		}
	}
	return p, nil
}

// Override replaces one colour of a biome.
func (p *Palette) Override(id int, kind Kind, hex string) error {
	col, err := colorful.Hex(hex)
	if err != nil {
		return fmt.Errorf("biome %d %s colour %q: %w", id, kind, hex, err)
	}
	c, ok := p.entries[id]
	if !ok {
		c = p.fallback
	}
	c.set(kind, col)
	p.entries[id] = c
	return nil
}

// Color returns the tint of kind for a biome.
func (p *Palette) Color(kind Kind, biome int) colorful.Color {
	if c, ok := p.entries[biome]; ok {
		return c.get(kind)
	}
	return p.fallback.get(kind)
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}
