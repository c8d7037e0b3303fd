// Package compile turns chunk block grids into geometry and runs those
// compiles on a worker pool.
package compile

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/blockmesh/internal/blockmask"
	"github.com/Faultbox/blockmesh/internal/blockmodel"
	"github.com/Faultbox/blockmesh/internal/blocktype"
	"github.com/Faultbox/blockmesh/internal/emit"
	"github.com/Faultbox/blockmesh/internal/geometry"
	"github.com/Faultbox/blockmesh/internal/logger"
	"github.com/Faultbox/blockmesh/internal/world"
)

// ErrCompile wraps a failure inside a single chunk compile.
var ErrCompile = errors.New("chunk compile failed")

// Options configures an Engine.
type Options struct {
	// World gives access to neighbouring chunks, lighting and biome colours.
	World world.BlockContext
	// Chooser picks weighted model variants. Nil always takes the first.
	Chooser blockmodel.Chooser
	// Warnings collects deduplicated warnings across all compiles.
	Warnings *logger.Once
}

// Engine compiles chunks against immutable block registries. It is safe for
// concurrent use; every Compile call owns its own state.
type Engine struct {
	types    *blocktype.Registry
	models   *blockmodel.Registry
	world    world.BlockContext
	choose   blockmodel.Chooser
	classes  world.Classifier
	warnings *logger.Once
	log      *zap.Logger
}

// NewEngine creates an engine. models may be nil for legacy-only worlds.
func NewEngine(types *blocktype.Registry, models *blockmodel.Registry, opts Options) *Engine {
	if opts.Warnings == nil {
		opts.Warnings = logger.NewOnce(nil)
	}
	return &Engine{
		types:    types,
		models:   models,
		world:    opts.World,
		choose:   opts.Chooser,
		classes:  classifier{types: types, models: models},
		warnings: opts.Warnings,
		log:      logger.Named("compile"),
	}
}

// Classes returns the combined occlusion classifier of both registries.
func (e *Engine) Classes() world.Classifier {
	return e.classes
}

// Warnings returns the engine's deduplicated warning set.
func (e *Engine) Warnings() *logger.Once {
	return e.warnings
}

// Compile builds the geometry of one chunk. A panic in any emitter is
// recovered and returned as ErrCompile naming the chunk and block; the
// partial geometry is released. Cancellation is checked between layers.
func (e *Engine) Compile(ctx context.Context, chunk *world.Chunk) (g *geometry.Geometry, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g = geometry.New()
	ectx := &emit.Context{
		World:    e.world,
		Chunk:    chunk,
		Geometry: g,
		Classes:  e.classes,
		Warnings: e.warnings,
	}

	var (
		cx, cy, cz int
		cur        world.Cell
	)
	defer func() {
		if r := recover(); r != nil {
			g.Release()
			e.log.Error("chunk compile failed",
				zap.Stringer("chunk", chunk.Coord),
				zap.String("block", describe(cur)),
				zap.Int("x", cx), zap.Int("y", cy), zap.Int("z", cz),
				zap.Any("panic", r))
			g, err = nil, fmt.Errorf("%w: chunk %s, %s at %d,%d,%d: %v", ErrCompile, chunk.Coord, describe(cur), cx, cy, cz, r)
		}
	}()

	mask := blockmask.Compute(chunk, e.world, e.classes)
	for y := 0; y < chunk.Height; y++ {
		if err := ctx.Err(); err != nil {
			g.Release()
			return nil, err
		}
		for x := 0; x < world.Width; x++ {
			for z := 0; z < world.Depth; z++ {
				if !mask.IsVisible(x, y, z) {
					continue
				}
				cx, cy, cz = x, y, z
				cur = chunk.Cell(x, y, z)
				e.emitCell(ectx, x, y, z, cur)
			}
		}
	}

	g.Finalise()
	e.log.Debug("chunk compiled",
		zap.Stringer("chunk", chunk.Coord),
		zap.Int("visible", mask.Visible()),
		zap.Int("vertices", g.VertexCount()),
		zap.Int64("bytes", g.MemorySize()))
	return g, nil
}

// emitCell draws one cell through the legacy table or the model registry,
// plus the water layer of waterlogged blocks.
func (e *Engine) emitCell(ectx *emit.Context, x, y, z int, cell world.Cell) {
	mode := ectx.ModeFor(x, y, z)

	if cell.IsLegacy() {
		if cell.ID == 0 {
			return
		}
		t := e.types.Find(int(cell.ID), int(cell.Data))
		if blocktype.IsAir(t) {
			e.warnings.Warn("compile|unknown|"+describe(cell), "block has no definition",
				zap.Int("id", int(cell.ID)), zap.Int("data", int(cell.Data)))
			return
		}
		t.Emit(ectx, x, y, z, mode)
		return
	}

	if world.IsAirName(cell.Name) {
		return
	}
	if t := e.types.FindName(cell.Name); !blocktype.IsAir(t) {
		t.Emit(ectx, x, y, z, mode)
	} else if e.models == nil || !e.models.EmitCell(ectx, x, y, z, mode, cell, e.choose) {
		e.warnings.Warn("compile|unknown|"+cell.Name, "block has no definition", zap.String("block", cell.Name))
	}

	if blocktype.IsWaterlogged(cell) {
		e.types.Water().Emit(ectx, x, y, z, emit.Edge)
	}
}

func describe(c world.Cell) string {
	if c.IsLegacy() {
		return fmt.Sprintf("%d:%d", c.ID, c.Data)
	}
	if len(c.Props) == 0 {
		return c.Name
	}
	return c.Name + "[" + c.Props.String() + "]"
}
