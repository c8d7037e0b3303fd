package compile

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Faultbox/blockmesh/internal/geometry"
	"github.com/Faultbox/blockmesh/internal/world"
)

func TestPoolIsolatesFailures(t *testing.T) {
	s := newSetup(t)

	good := newChunk(s, 0, 0)
	good.SetLegacy(8, 8, 8, 1, 0)
	bad := newChunk(s, 1, 0)
	bad.SetLegacy(8, 8, 8, 200, 0)
	other := newChunk(s, 2, 0)
	other.SetLegacy(1, 1, 1, 1, 0)

	cache := NewCache()
	p := NewPool(s.Engine, cache, 2)
	defer p.Stop()

	results := p.CompileAll(context.Background(), []*world.Chunk{good, bad, other})
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].Err != nil || results[2].Err != nil {
		t.Errorf("expected healthy chunks to compile, got %v and %v", results[0].Err, results[2].Err)
	}
	if !errors.Is(results[1].Err, ErrCompile) {
		t.Errorf("expected ErrCompile, got %v", results[1].Err)
	}

	want := []world.ChunkCoord{{X: 0, Z: 0}, {X: 2, Z: 0}}
	if diff := cmp.Diff(want, cache.Coords()); diff != "" {
		t.Errorf("cached chunks mismatch (-want +got):\n%s", diff)
	}

	stats := p.Stats()
	if stats.Compiled != 2 || stats.Failed != 1 || stats.Cancelled != 0 {
		t.Errorf("expected 2 compiled and 1 failed, got %+v", stats)
	}
	if stats.Vertices != 48 {
		t.Errorf("expected 48 vertices, got %d", stats.Vertices)
	}
}

func TestPoolCancelledNotPublished(t *testing.T) {
	s := newSetup(t)
	c := newChunk(s, 0, 0)
	c.SetLegacy(0, 0, 0, 1, 0)

	cache := NewCache()
	p := NewPool(s.Engine, cache, 1)
	defer p.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	job, err := p.Submit(ctx, c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := job.Wait(); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if cache.Len() != 0 {
		t.Errorf("expected empty cache, got %d entries", cache.Len())
	}
	if got := p.Stats().Cancelled; got != 1 {
		t.Errorf("expected 1 cancelled compile, got %d", got)
	}
}

func TestPoolStopRefusesWork(t *testing.T) {
	s := newSetup(t)
	c := newChunk(s, 0, 0)
	c.SetLegacy(0, 0, 0, 1, 0)

	p := NewPool(s.Engine, nil, 1)
	job, err := p.Submit(context.Background(), c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p.Stop()

	// Work queued before Stop still completes.
	select {
	case <-job.Done():
	default:
		t.Error("expected in-flight compile to finish before Stop returns")
	}
	if g, err := job.Wait(); err != nil || g == nil {
		t.Errorf("expected geometry, got %v", err)
	}

	if !p.Stopped() {
		t.Error("expected pool to report stopped")
	}
	if _, err := p.Submit(context.Background(), c); !errors.Is(err, ErrStopped) {
		t.Errorf("expected ErrStopped, got %v", err)
	}
	results := p.CompileAll(context.Background(), []*world.Chunk{c})
	if !errors.Is(results[0].Err, ErrStopped) {
		t.Errorf("expected ErrStopped, got %v", results[0].Err)
	}
}

func TestCacheEvictReleases(t *testing.T) {
	cache := NewCache()
	coord := world.ChunkCoord{X: 3, Z: 4}

	first := geometry.New()
	cache.Put(coord, first)
	second := geometry.New()
	cache.Put(coord, second)

	if !first.Released() {
		t.Error("expected replaced geometry to be released")
	}
	if g, ok := cache.Get(coord); !ok || g != second {
		t.Error("expected latest geometry to be cached")
	}

	if !cache.Evict(coord) {
		t.Error("expected Evict to report a cached chunk")
	}
	if !second.Released() {
		t.Error("expected evicted geometry to be released")
	}
	if cache.Evict(coord) {
		t.Error("expected second Evict to report nothing")
	}
	if _, ok := cache.Get(coord); ok {
		t.Error("expected chunk to be gone")
	}
}

func TestCacheClear(t *testing.T) {
	cache := NewCache()
	gs := []*geometry.Geometry{geometry.New(), geometry.New()}
	cache.Put(world.ChunkCoord{X: 1}, gs[0])
	cache.Put(world.ChunkCoord{X: -1}, gs[1])

	if cache.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", cache.Len())
	}
	cache.Clear()
	if cache.Len() != 0 {
		t.Errorf("expected empty cache, got %d entries", cache.Len())
	}
	for i, g := range gs {
		if !g.Released() {
			t.Errorf("expected geometry %d to be released", i)
		}
	}
}
