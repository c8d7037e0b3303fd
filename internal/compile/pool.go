package compile

import (
	"context"
	"errors"
	"runtime"
	"time"

	"github.com/alitto/pond/v2"
	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/Faultbox/blockmesh/internal/geometry"
	"github.com/Faultbox/blockmesh/internal/logger"
	"github.com/Faultbox/blockmesh/internal/world"
)

// ErrStopped is returned when work is submitted to a stopped pool.
var ErrStopped = errors.New("compile pool stopped")

// Stats counts the outcome of every compile run by a pool.
type Stats struct {
	Compiled  int64
	Failed    int64
	Cancelled int64
	Vertices  int64
	Elapsed   time.Duration
}

// Result is the outcome of compiling one chunk.
type Result struct {
	Coord    world.ChunkCoord
	Geometry *geometry.Geometry
	Err      error
}

// Job is a submitted compile.
type Job struct {
	Coord world.ChunkCoord

	task pond.Task
	geom *geometry.Geometry
	err  error
}

// Done is closed once the compile has finished.
func (j *Job) Done() <-chan struct{} {
	return j.task.Done()
}

// Wait blocks until the compile finishes and returns its geometry. When the
// pool has a cache the geometry is also stored there and owned by it.
func (j *Job) Wait() (*geometry.Geometry, error) {
	if err := j.task.Wait(); err != nil {
		return nil, err
	}
	return j.geom, j.err
}

// Pool runs chunk compiles on a fixed set of workers.
type Pool struct {
	engine *Engine
	cache  *Cache
	pool   pond.Pool
	log    *zap.Logger

	stopped   *atomic.Bool
	compiled  *atomic.Int64
	failed    *atomic.Int64
	cancelled *atomic.Int64
	vertices  *atomic.Int64
	elapsed   *atomic.Duration
}

// NewPool starts a pool of workers. workers <= 0 uses one per CPU. cache may
// be nil, in which case callers own the geometry returned by Job.Wait.
func NewPool(e *Engine, cache *Cache, workers int) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Pool{
		engine:    e,
		cache:     cache,
		pool:      pond.NewPool(workers),
		log:       logger.Named("pool"),
		stopped:   atomic.NewBool(false),
		compiled:  atomic.NewInt64(0),
		failed:    atomic.NewInt64(0),
		cancelled: atomic.NewInt64(0),
		vertices:  atomic.NewInt64(0),
		elapsed:   atomic.NewDuration(0),
	}
}

// Submit queues a chunk for compilation. Geometry is published to the cache
// only after a complete successful compile.
func (p *Pool) Submit(ctx context.Context, chunk *world.Chunk) (*Job, error) {
	if p.stopped.Load() {
		return nil, ErrStopped
	}

	job := &Job{Coord: chunk.Coord}
	job.task = p.pool.Submit(func() {
		start := time.Now()
		g, err := p.engine.Compile(ctx, chunk)
		p.elapsed.Add(time.Since(start))

		switch {
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			p.cancelled.Inc()
		case err != nil:
			p.failed.Inc()
		default:
			p.compiled.Inc()
			p.vertices.Add(int64(g.VertexCount()))
			if p.cache != nil {
				p.cache.Put(chunk.Coord, g)
			}
		}
		job.geom, job.err = g, err
	})
	return job, nil
}

// CompileAll compiles every chunk and waits for all of them. Failed chunks
// carry their error; the others are unaffected.
func (p *Pool) CompileAll(ctx context.Context, chunks []*world.Chunk) []Result {
	jobs := make([]*Job, len(chunks))
	results := make([]Result, len(chunks))
	for i, c := range chunks {
		results[i].Coord = c.Coord
		job, err := p.Submit(ctx, c)
		if err != nil {
			results[i].Err = err
			continue
		}
		jobs[i] = job
	}

	for i, job := range jobs {
		if job == nil {
			continue
		}
		results[i].Geometry, results[i].Err = job.Wait()
	}
	return results
}

// Stop refuses new work and waits for queued and in-flight compiles.
func (p *Pool) Stop() {
	if p.stopped.Swap(true) {
		return
	}
	p.pool.StopAndWait()

	s := p.Stats()
	p.log.Info("compile pool stopped",
		zap.Int64("compiled", s.Compiled),
		zap.Int64("failed", s.Failed),
		zap.Int64("cancelled", s.Cancelled),
		zap.Int64("vertices", s.Vertices),
		zap.Duration("elapsed", s.Elapsed))
}

// Stopped reports whether Stop has been called.
func (p *Pool) Stopped() bool {
	return p.stopped.Load()
}

// Stats returns a snapshot of the pool counters.
func (p *Pool) Stats() Stats {
	return Stats{
		Compiled:  p.compiled.Load(),
		Failed:    p.failed.Load(),
		Cancelled: p.cancelled.Load(),
		Vertices:  p.vertices.Load(),
		Elapsed:   p.elapsed.Load(),
	}
}
