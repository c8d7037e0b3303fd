package main

import (
	"testing"

	"github.com/Faultbox/blockmesh/internal/world"
)

func TestTerrainColumns(t *testing.T) {
	gen := newTerrain(7, 64)
	c := gen.chunk(world.ChunkCoord{X: 1, Z: -2})

	for x := 0; x < world.Width; x++ {
		for z := 0; z < world.Depth; z++ {
			if got := c.Cell(x, 0, z).ID; got != idStone && got != idSand && got != idDirt && got != idGrass {
				t.Fatalf("expected ground at the bottom of %d,%d, got id %d", x, z, got)
			}
			if got := c.Cell(x, 63, z).ID; got != 0 {
				t.Errorf("expected air at the top of %d,%d, got id %d", x, z, got)
			}
			if got := c.Cell(x, gen.sea, z).ID; got == 0 {
				t.Errorf("expected sea level filled at %d,%d", x, z)
			}
		}
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"minecraft:oak_stairs", "Oak Stairs"},
		{"stone", "Stone"},
	}
	for _, tt := range tests {
		if got := displayName(tt.in); got != tt.want {
			t.Errorf("expected %q, got %q", tt.want, got)
		}
	}
}
