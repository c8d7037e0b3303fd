package world

import "fmt"

// SignEntity is the tile entity of a sign.
type SignEntity struct {
	Lines    [4]string
	Rotation int // 0-15 for standing signs
}

// BedEntity is the tile entity of a bed; Color is a dye id.
type BedEntity struct {
	Color int
}

// ChestEntity is the tile entity of a chest. Kind is "single", "left" or "right".
type ChestEntity struct {
	Kind       string
	CustomName string
}

// BeaconEntity is the tile entity of a beacon; Levels is the pyramid height.
type BeaconEntity struct {
	Levels int
}

// Chunk is the raw block grid of one chunk column plus its tile entities.
// It is filled once by the world loader and read-only afterwards.
type Chunk struct {
	Coord  ChunkCoord
	Height int

	cells []Cell

	Signs   map[LocalPos]SignEntity
	Beds    map[LocalPos]BedEntity
	Chests  map[LocalPos]ChestEntity
	Beacons map[LocalPos]BeaconEntity
}

// NewChunk allocates an empty (all air) chunk.
func NewChunk(coord ChunkCoord, height int) *Chunk {
	return &Chunk{
		Coord:   coord,
		Height:  height,
		cells:   make([]Cell, Width*Depth*height),
		Signs:   make(map[LocalPos]SignEntity),
		Beds:    make(map[LocalPos]BedEntity),
		Chests:  make(map[LocalPos]ChestEntity),
		Beacons: make(map[LocalPos]BeaconEntity),
	}
}

// InBounds reports whether the local position lies inside the chunk.
func (c *Chunk) InBounds(x, y, z int) bool {
	return x >= 0 && x < Width && z >= 0 && z < Depth && y >= 0 && y < c.Height
}

func (c *Chunk) index(x, y, z int) int {
	return (y*Depth+z)*Width + x
}

// Cell returns the cell at a local position. Out of range positions return air.
func (c *Chunk) Cell(x, y, z int) Cell {
	if !c.InBounds(x, y, z) {
		return Cell{}
	}
	return c.cells[c.index(x, y, z)]
}

// Set stores a cell. It panics when the position is outside the chunk.
func (c *Chunk) Set(x, y, z int, cell Cell) {
	if !c.InBounds(x, y, z) {
		panic(fmt.Sprintf("chunk %s: position %d,%d,%d out of range", c.Coord, x, y, z))
	}
	c.cells[c.index(x, y, z)] = cell
}

// SetLegacy stores a numeric block with full sky light.
func (c *Chunk) SetLegacy(x, y, z int, id uint16, data uint8) {
	c.Set(x, y, z, Cell{ID: id, Data: data, SkyLight: 15})
}

// SetBlock stores a named block with full sky light.
func (c *Chunk) SetBlock(x, y, z int, name string, props Properties) {
	c.Set(x, y, z, Cell{Name: name, Props: props, SkyLight: 15})
}

// IsEdge reports whether a position lies on the chunk border, where emitters
// must look up neighbours through the world instead of the chunk.
func (c *Chunk) IsEdge(x, y, z int) bool {
	return x == 0 || y == 0 || z == 0 || x == Width-1 || y == c.Height-1 || z == Depth-1
}

// WorldPos returns the world coordinates of a local position.
func (c *Chunk) WorldPos(x, y, z int) (int, int, int) {
	return int(c.Coord.X)*Width + x, y, int(c.Coord.Z)*Depth + z
}

// MemorySize estimates the bytes held by the cell grid.
func (c *Chunk) MemorySize() int64 {
	return int64(len(c.cells)) * 48
}
