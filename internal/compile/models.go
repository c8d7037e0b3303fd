package compile

import (
	"github.com/Faultbox/blockmesh/internal/blockmodel"
	"github.com/Faultbox/blockmesh/internal/emit"
	"github.com/Faultbox/blockmesh/internal/world"
)

// modelEmitter lets legacy types that decorate a modern block, such as the
// beacon, draw its model first.
type modelEmitter struct {
	models *blockmodel.Registry
	choose blockmodel.Chooser
}

func (m modelEmitter) EmitBlock(ctx *emit.Context, x, y, z int, mode emit.Mode, cell world.Cell) bool {
	return m.models.EmitCell(ctx, x, y, z, mode, cell, m.choose)
}
