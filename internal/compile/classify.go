package compile

import (
	"github.com/Faultbox/blockmesh/internal/blockmodel"
	"github.com/Faultbox/blockmesh/internal/blocktype"
	"github.com/Faultbox/blockmesh/internal/world"
)

// classifier answers occlusion questions for both resolution paths: legacy
// types first, then the block model registry for modern names they do not
// cover.
type classifier struct {
	types  *blocktype.Registry
	models *blockmodel.Registry
}

func (c classifier) Classify(cell world.Cell) world.Class {
	if cell.IsAir() {
		return world.ClassAir
	}
	if cell.IsLegacy() {
		return c.types.Classify(cell)
	}
	if t := c.types.FindName(cell.Name); !blocktype.IsAir(t) {
		return blocktype.ClassOf(t)
	}
	if c.models == nil {
		return world.ClassUnknown
	}
	return c.models.Classify(cell.Name)
}
