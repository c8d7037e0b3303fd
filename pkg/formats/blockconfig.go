// Legacy block-config document parser.
package formats

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Block config errors.
var (
	ErrMalformedBlockConfig = errors.New("malformed block config")
	ErrBadBlockID           = errors.New("invalid block id")
)

// AnyData marks a block definition that covers every data value of its id.
const AnyData = -1

// BlockConfig lists the hand-written block types of the legacy dispatch table.
type BlockConfig struct {
	Blocks []BlockDef `yaml:"blocks"`
}

// BlockDef defines one legacy block type.
//
//	- kind: solid
//	  id: "1"
//	  string_id: minecraft:stone
//	  name: Stone
//	  textures: {texture: block/stone}
type BlockDef struct {
	Kind        string            `yaml:"kind"`
	ID          string            `yaml:"id"`        // "35" or "35:4"
	StringID    string            `yaml:"string_id"` // block name for modern worlds
	Name        string            `yaml:"name"`
	Textures    map[string]string `yaml:"textures"`
	AlphaTest   bool              `yaml:"alpha_test"`
	Transparent bool              `yaml:"transparent"`
	Color       string            `yaml:"color"`        // grass, foliage, water or "#rrggbb"
	BetterGrass string            `yaml:"better_grass"` // none, fast or fancy
	Frame       int               `yaml:"frame"`
}

// NumericID parses the "id" or "id:data" field. ok is false when the block is
// only addressed by name.
func (d BlockDef) NumericID() (id, data int, ok bool, err error) {
	if d.ID == "" {
		return 0, AnyData, false, nil
	}

	idPart, dataPart, hasData := strings.Cut(d.ID, ":")
	id, err = strconv.Atoi(strings.TrimSpace(idPart))
	if err != nil || id < 0 || id > 4095 {
		return 0, 0, false, fmt.Errorf("%w: %q", ErrBadBlockID, d.ID)
	}

	data = AnyData
	if hasData {
		data, err = strconv.Atoi(strings.TrimSpace(dataPart))
		if err != nil || data < 0 || data > 15 {
			return 0, 0, false, fmt.Errorf("%w: %q", ErrBadBlockID, d.ID)
		}
	}
	return id, data, true, nil
}

// Texture returns the texture reference of a slot.
func (d BlockDef) Texture(slot string) string {
	return d.Textures[slot]
}

// Label returns the display name, falling back to the string id.
func (d BlockDef) Label() string {
	if d.Name != "" {
		return d.Name
	}
	if d.StringID != "" {
		return d.StringID
	}
	return d.ID
}

// ParseBlockConfig parses a block config document.
func ParseBlockConfig(data []byte) (*BlockConfig, error) {
	var cfg BlockConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBlockConfig, err)
	}

	for i, def := range cfg.Blocks {
		if def.Kind == "" {
			return nil, fmt.Errorf("%w: block %d (%s) has no kind", ErrMalformedBlockConfig, i, def.Label())
		}
		if def.ID == "" && def.StringID == "" {
			return nil, fmt.Errorf("%w: block %d (%s) has neither id nor string_id", ErrMalformedBlockConfig, i, def.Kind)
		}
		if _, _, _, err := def.NumericID(); err != nil {
			return nil, fmt.Errorf("%w: block %d: %w", ErrMalformedBlockConfig, i, err)
		}
	}
	return &cfg, nil
}
