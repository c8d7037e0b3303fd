// Package world holds the raw chunk block grid handed to the geometry compiler
// and the neighbour lookups that cross chunk borders.
package world

import (
	"fmt"
	"sort"
	"strings"
)

// Chunk dimensions in blocks. Height is chosen per world.
const (
	Width = 16
	Depth = 16
)

// ChunkCoord identifies a chunk column.
type ChunkCoord struct {
	X, Z int32
}

// String returns "x,z".
func (c ChunkCoord) String() string {
	return fmt.Sprintf("%d,%d", c.X, c.Z)
}

// Offset returns the chunk dx, dz columns away.
func (c ChunkCoord) Offset(dx, dz int32) ChunkCoord {
	return ChunkCoord{X: c.X + dx, Z: c.Z + dz}
}

// LocalPos is a block position inside a chunk.
type LocalPos struct {
	X, Y, Z int
}

// Properties is a block-state property map such as facing=east.
type Properties map[string]string

// ParseProperties parses "k=v,k=v". Malformed pairs are skipped.
func ParseProperties(s string) Properties {
	props := make(Properties)
	if s == "" {
		return props
	}
	for _, pair := range strings.Split(s, ",") {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || k == "" {
			continue
		}
		props[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return props
}

// Get returns the value of key or "".
func (p Properties) Get(key string) string {
	return p[key]
}

// Is reports whether key has the given value.
func (p Properties) Is(key, value string) bool {
	v, ok := p[key]
	return ok && v == value
}

// String formats the map as sorted "k=v,k=v".
func (p Properties) String() string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var sb strings.Builder
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(p[k])
	}
	return sb.String()
}

// Cell is one block of a chunk. Modern worlds set Name and Props; legacy
// worlds set ID and Data and leave Name empty.
type Cell struct {
	ID         uint16
	Data       uint8
	Name       string
	Props      Properties
	SkyLight   uint8
	BlockLight uint8
	Biome      uint16
}

// IsLegacy reports whether the cell is identified by numeric id.
func (c Cell) IsLegacy() bool {
	return c.Name == ""
}

// IsAir reports whether the cell holds no block.
func (c Cell) IsAir() bool {
	if c.Name == "" {
		return c.ID == 0
	}
	return IsAirName(c.Name)
}

// IsAirName reports whether a block name is one of the air variants.
func IsAirName(name string) bool {
	return strings.Contains(name, "minecraft:air") || strings.Contains(name, "_air")
}
