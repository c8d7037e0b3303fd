package blocktype

import (
	"github.com/Faultbox/blockmesh/internal/emit"
	"github.com/Faultbox/blockmesh/internal/geometry"
	"github.com/Faultbox/blockmesh/internal/world"
)

func cellAt(ctx *emit.Context, x, y, z int) world.Cell {
	c, _ := ctx.Cell(x, y, z)
	return c
}

func data(ctx *emit.Context, x, y, z int) int {
	return int(cellAt(ctx, x, y, z).Data)
}

// sameBlock reports whether two cells hold the same block, by id for legacy
// cells and by name otherwise.
func sameBlock(a, b world.Cell) bool {
	if a.IsLegacy() != b.IsLegacy() {
		return false
	}
	if a.IsLegacy() {
		return a.ID == b.ID
	}
	return a.Name == b.Name
}

// legacyFacing maps the 2..5 data encoding shared by furnaces, ladders, chests
// and wall signs.
func legacyFacing(d int) string {
	switch d {
	case 2:
		return "north"
	case 3:
		return "south"
	case 4:
		return "west"
	case 5:
		return "east"
	}
	return "south"
}

// facing returns the facing property of a modern cell, or decodes the data
// value of a legacy one.
func facing(c world.Cell, legacy func(int) string) string {
	if f := c.Props.Get("facing"); f != "" {
		return f
	}
	return legacy(int(c.Data))
}

// yawFor returns the turn that brings a south-facing shape to face f.
func yawFor(f string) geometry.Rotation {
	switch f {
	case "west":
		return geometry.Yaw(90)
	case "north":
		return geometry.Yaw(180)
	case "east":
		return geometry.Yaw(270)
	}
	return geometry.Yaw(0)
}

// base holds the fields every type shares.
type base struct {
	name  string
	solid bool
	water bool
}

func (b base) Name() string  { return b.name }
func (b base) IsSolid() bool { return b.solid }
func (b base) IsWater() bool { return b.water }
