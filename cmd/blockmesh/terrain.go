package main

import (
	"github.com/ojrac/opensimplex-go"

	"github.com/Faultbox/blockmesh/internal/world"
)

// Legacy ids of the synthetic terrain.
const (
	idStone = 1
	idGrass = 2
	idDirt  = 3
	idWater = 9
	idSand  = 12
)

// terrain fills chunks from fractal simplex noise, flooding every column up
// to sea level.
type terrain struct {
	noise  opensimplex.Noise32
	height int
	sea    int
}

func newTerrain(seed int64, height int) *terrain {
	return &terrain{
		noise:  opensimplex.New32(seed),
		height: height,
		sea:    height / 2,
	}
}

// surface returns the column height at a world position.
func (t *terrain) surface(x, z int) int {
	const (
		octaves     = 4
		lacunarity  = 2.0
		persistence = 0.5
		scale       = 96.0
	)
	amplitude := float32(t.height) / 4
	x1, z1 := float32(x), float32(z)

	var v float32
	for i := 0; i < octaves; i++ {
		v += t.noise.Eval2(x1/scale, z1/scale) * amplitude
		x1 *= lacunarity
		z1 *= lacunarity
		amplitude *= persistence
	}
	return min(max(t.sea+int(v), 1), t.height-1)
}

func (t *terrain) chunk(coord world.ChunkCoord) *world.Chunk {
	c := world.NewChunk(coord, t.height)
	for x := 0; x < world.Width; x++ {
		for z := 0; z < world.Depth; z++ {
			wx, _, wz := c.WorldPos(x, 0, z)
			top := t.surface(wx, wz)

			for y := 0; y <= top; y++ {
				switch {
				case y < top-3:
					c.SetLegacy(x, y, z, idStone, 0)
				case top <= t.sea:
					c.SetLegacy(x, y, z, idSand, 0)
				case y < top:
					c.SetLegacy(x, y, z, idDirt, 0)
				default:
					c.SetLegacy(x, y, z, idGrass, 0)
				}
			}
			for y := top + 1; y <= t.sea; y++ {
				c.SetLegacy(x, y, z, idWater, 0)
			}
		}
	}
	return c
}
