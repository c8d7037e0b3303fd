// Package blockmask decides which cells of a chunk can contribute visible
// geometry, so the compile loop can skip buried blocks.
package blockmask

import (
	"github.com/Faultbox/blockmesh/internal/world"
)

var neighbours = [6][3]int{
	{0, 1, 0}, {0, -1, 0},
	{0, 0, -1}, {0, 0, 1},
	{1, 0, 0}, {-1, 0, 0},
}

// Mask is the visibility bitset of one chunk. It is built per compile and
// dropped with it.
type Mask struct {
	height  int
	bits    []uint64
	visible int
}

// Compute classifies every cell of chunk. A cell is hidden when it is air, or
// when all six neighbours cover it: opaque blocks cover everything, liquids
// also cover liquids. Neighbours that are not loaded or not classified leave
// the cell visible, so the mask can over-include but never drop a face.
func Compute(chunk *world.Chunk, bc world.BlockContext, classes world.Classifier) *Mask {
	n := world.Width * chunk.Height * world.Depth
	m := &Mask{height: chunk.Height, bits: make([]uint64, (n+63)/64)}

	// Classify the chunk once; neighbours inside it are looked up here.
	grid := make([]world.Class, n)
	for y := 0; y < chunk.Height; y++ {
		for z := 0; z < world.Depth; z++ {
			for x := 0; x < world.Width; x++ {
				grid[m.index(x, y, z)] = classes.Classify(chunk.Cell(x, y, z))
			}
		}
	}

	classAt := func(x, y, z int) world.Class {
		if chunk.InBounds(x, y, z) {
			return grid[m.index(x, y, z)]
		}
		if y >= chunk.Height {
			return world.ClassAir
		}
		if bc == nil || y < 0 {
			return world.ClassUnknown
		}
		c, ok := bc.Cell(chunk.Coord, x, y, z)
		if !ok {
			return world.ClassUnknown
		}
		return classes.Classify(c)
	}

	for y := 0; y < chunk.Height; y++ {
		for z := 0; z < world.Depth; z++ {
			for x := 0; x < world.Width; x++ {
				self := grid[m.index(x, y, z)]
				if self == world.ClassAir || buried(self, x, y, z, classAt) {
					continue
				}
				m.set(x, y, z)
			}
		}
	}
	return m
}

func buried(self world.Class, x, y, z int, classAt func(x, y, z int) world.Class) bool {
	for _, o := range neighbours {
		switch classAt(x+o[0], y+o[1], z+o[2]) {
		case world.ClassOpaque:
		case world.ClassLiquid:
			if self != world.ClassLiquid {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func (m *Mask) index(x, y, z int) int {
	return (y*world.Depth+z)*world.Width + x
}

func (m *Mask) set(x, y, z int) {
	i := m.index(x, y, z)
	m.bits[i/64] |= 1 << (i % 64)
	m.visible++
}

// IsVisible reports whether the cell at x, y, z must be emitted. Air cells
// and positions outside the chunk are never visible; every other cell with
// an unloaded or unclassified neighbour is.
func (m *Mask) IsVisible(x, y, z int) bool {
	if x < 0 || x >= world.Width || z < 0 || z >= world.Depth || y < 0 || y >= m.height {
		return false
	}
	i := m.index(x, y, z)
	return m.bits[i/64]&(1<<(i%64)) != 0
}

// Visible returns the number of visible cells.
func (m *Mask) Visible() int {
	return m.visible
}
