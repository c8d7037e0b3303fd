// Package assets reads resource pack files (textures, models, block states)
// from layered archives and directories.
package assets

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"go.uber.org/atomic"
)

// ErrNotFound is returned when no source contains the requested path.
var ErrNotFound = errors.New("asset not found")

// Source is one layer of a resource pack stack.
type Source interface {
	Name() string
	Read(path string) ([]byte, error)
	// List returns every file path under prefix.
	List(prefix string) []string
	Close() error
}

// Manager handles asset loading from stacked sources.
type Manager struct {
	sources []Source
	cache   *Cache
	mu      sync.RWMutex
}

// NewManager creates a new asset manager.
func NewManager() *Manager {
	return &Manager{
		cache: NewCache(),
	}
}

// AddPack opens a zip/jar archive or a directory and adds it to the stack.
// Sources are searched in reverse order (last added = highest priority).
func (m *Manager) AddPack(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("opening pack %s: %w", path, err)
	}

	var src Source
	if info.IsDir() {
		src = NewDirSource(path)
	} else {
		src, err = OpenZip(path)
		if err != nil {
			return fmt.Errorf("opening pack %s: %w", path, err)
		}
	}

	m.AddSource(src)
	return nil
}

// AddSource adds an already opened source on top of the stack.
func (m *Manager) AddSource(src Source) {
	m.mu.Lock()
	m.sources = append(m.sources, src)
	m.mu.Unlock()
}

// Load loads a file from the sources.
func (m *Manager) Load(path string) ([]byte, error) {
	path = normalize(path)
	if data, ok := m.cache.Get(path); ok {
		return data, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.sources) - 1; i >= 0; i-- {
		data, err := m.sources[i].Read(path)
		if err == nil {
			m.cache.Set(path, data)
			return data, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
}

// Exists reports whether any source has path.
func (m *Manager) Exists(path string) bool {
	_, err := m.Load(path)
	return err == nil
}

// List returns the sorted union of paths under prefix across all sources.
func (m *Manager) List(prefix string) []string {
	prefix = normalize(prefix)

	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := make(map[string]struct{})
	var out []string
	for _, src := range m.sources {
		for _, p := range src.List(prefix) {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out
}

// Close closes all sources.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, src := range m.sources {
		_ = src.Close()
	}
	m.sources = nil
	m.cache.Clear()
}

// CacheStats returns cache hit and miss counts.
func (m *Manager) CacheStats() (hits, misses int64) {
	return m.cache.Stats()
}

func normalize(path string) string {
	path = strings.ReplaceAll(path, "\\", "/")
	return strings.TrimPrefix(path, "/")
}

// Cache is a simple in-memory cache for loaded assets.
type Cache struct {
	data map[string][]byte
	mu   sync.RWMutex

	hits   atomic.Int64
	misses atomic.Int64
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	data, ok := c.data[key]
	c.mu.RUnlock()

	if ok {
		c.hits.Inc()
	} else {
		c.misses.Inc()
	}
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.hits.Store(0)
	c.misses.Store(0)
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}
