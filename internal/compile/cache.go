package compile

import (
	"sort"
	"sync"

	"github.com/Faultbox/blockmesh/internal/geometry"
	"github.com/Faultbox/blockmesh/internal/world"
)

// Cache owns the compiled geometry of loaded chunks. Replacing or evicting
// an entry releases the old geometry, so callers must not keep a Geometry
// obtained from Get past the next Put or Evict of the same chunk.
type Cache struct {
	mu      sync.RWMutex
	entries map[world.ChunkCoord]*geometry.Geometry
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[world.ChunkCoord]*geometry.Geometry)}
}

// Put stores the geometry of a chunk, releasing any previous one.
func (c *Cache) Put(coord world.ChunkCoord, g *geometry.Geometry) {
	c.mu.Lock()
	old, ok := c.entries[coord]
	c.entries[coord] = g
	c.mu.Unlock()

	if ok && old != g {
		old.Release()
	}
}

// Get returns the geometry of a chunk.
func (c *Cache) Get(coord world.ChunkCoord) (*geometry.Geometry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	g, ok := c.entries[coord]
	return g, ok
}

// Evict removes and releases the geometry of a chunk. It reports whether
// anything was cached.
func (c *Cache) Evict(coord world.ChunkCoord) bool {
	c.mu.Lock()
	g, ok := c.entries[coord]
	delete(c.entries, coord)
	c.mu.Unlock()

	if ok {
		g.Release()
	}
	return ok
}

// Clear evicts every chunk.
func (c *Cache) Clear() {
	c.mu.Lock()
	entries := c.entries
	c.entries = make(map[world.ChunkCoord]*geometry.Geometry)
	c.mu.Unlock()

	for _, g := range entries {
		g.Release()
	}
}

// Len returns the number of cached chunks.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Coords returns the cached chunk coordinates in x, z order.
func (c *Cache) Coords() []world.ChunkCoord {
	c.mu.RLock()
	coords := make([]world.ChunkCoord, 0, len(c.entries))
	for k := range c.entries {
		coords = append(coords, k)
	}
	c.mu.RUnlock()

	sort.Slice(coords, func(i, j int) bool {
		if coords[i].X != coords[j].X {
			return coords[i].X < coords[j].X
		}
		return coords[i].Z < coords[j].Z
	})
	return coords
}

// MemorySize estimates the bytes held by all cached geometry.
func (c *Cache) MemorySize() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var n int64
	for _, g := range c.entries {
		n += g.MemorySize()
	}
	return n
}
