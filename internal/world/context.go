package world

import (
	"sort"
	"sync"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/blockmesh/internal/biome"
	"github.com/Faultbox/blockmesh/internal/lighting"
)

// BlockContext gives emitters read access to the world around the chunk
// being compiled. Implementations must be safe for concurrent reads.
type BlockContext interface {
	// Cell returns the cell at x, y, z relative to the origin of chunk coord.
	// x and z may fall outside 0..15. ok is false when the position lies in a
	// chunk that is not loaded or outside the world height.
	Cell(coord ChunkCoord, x, y, z int) (Cell, bool)
	LightStyle() lighting.Style
	NightLightAdjustment() float32
	BiomeColor(kind biome.Kind, biomeID int) colorful.Color
	// LegacyColors selects the pre-1.12 dye palette.
	LegacyColors() bool
}

// Locate converts a position relative to coord into the chunk that holds it
// and the local x, z inside that chunk.
func Locate(coord ChunkCoord, x, z int) (ChunkCoord, int, int) {
	cx, lx := floorDiv(x, Width)
	cz, lz := floorDiv(z, Depth)
	return coord.Offset(int32(cx), int32(cz)), lx, lz
}

func floorDiv(v, n int) (q, r int) {
	q = v / n
	r = v % n
	if r < 0 {
		q--
		r += n
	}
	return q, r
}

// Options configures a Map.
type Options struct {
	Style                lighting.Style
	NightLightAdjustment float32
	Palette              *biome.Palette
	LegacyColors         bool
}

// Map is a set of loaded chunks. It implements BlockContext.
type Map struct {
	opts Options

	mu     sync.RWMutex
	chunks map[ChunkCoord]*Chunk
}

// NewMap creates an empty map.
func NewMap(opts Options) *Map {
	if opts.Palette == nil {
		opts.Palette = biome.DefaultPalette()
	}
	return &Map{opts: opts, chunks: make(map[ChunkCoord]*Chunk)}
}

// Add inserts or replaces a chunk.
func (m *Map) Add(c *Chunk) {
	m.mu.Lock()
	m.chunks[c.Coord] = c
	m.mu.Unlock()
}

// Remove drops a chunk.
func (m *Map) Remove(coord ChunkCoord) {
	m.mu.Lock()
	delete(m.chunks, coord)
	m.mu.Unlock()
}

// Chunk returns a loaded chunk.
func (m *Map) Chunk(coord ChunkCoord) (*Chunk, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.chunks[coord]
	return c, ok
}

// Coords returns the loaded chunk coordinates ordered by z then x.
func (m *Map) Coords() []ChunkCoord {
	m.mu.RLock()
	out := make([]ChunkCoord, 0, len(m.chunks))
	for c := range m.chunks {
		out = append(out, c)
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Z != out[j].Z {
			return out[i].Z < out[j].Z
		}
		return out[i].X < out[j].X
	})
	return out
}

// Cell implements BlockContext.
func (m *Map) Cell(coord ChunkCoord, x, y, z int) (Cell, bool) {
	at, lx, lz := Locate(coord, x, z)
	c, ok := m.Chunk(at)
	if !ok || y < 0 || y >= c.Height {
		return Cell{}, false
	}
	return c.Cell(lx, y, lz), true
}

// LightStyle implements BlockContext.
func (m *Map) LightStyle() lighting.Style { return m.opts.Style }

// NightLightAdjustment implements BlockContext.
func (m *Map) NightLightAdjustment() float32 { return m.opts.NightLightAdjustment }

// BiomeColor implements BlockContext.
func (m *Map) BiomeColor(kind biome.Kind, biomeID int) colorful.Color {
	return m.opts.Palette.Color(kind, biomeID)
}

// LegacyColors implements BlockContext.
func (m *Map) LegacyColors() bool { return m.opts.LegacyColors }
