package world

import (
	"testing"

	"github.com/Faultbox/blockmesh/internal/lighting"
)

func TestLocate(t *testing.T) {
	tests := []struct {
		x, z   int
		coord  ChunkCoord
		lx, lz int
	}{
		{0, 0, ChunkCoord{0, 0}, 0, 0},
		{-1, 5, ChunkCoord{-1, 0}, 15, 5},
		{16, -17, ChunkCoord{1, -2}, 0, 15},
		{31, 15, ChunkCoord{1, 0}, 15, 15},
	}

	for _, tt := range tests {
		coord, lx, lz := Locate(ChunkCoord{}, tt.x, tt.z)
		if coord != tt.coord || lx != tt.lx || lz != tt.lz {
			t.Errorf("Locate(%d,%d): expected %v %d,%d, got %v %d,%d", tt.x, tt.z, tt.coord, tt.lx, tt.lz, coord, lx, lz)
		}
	}
}

func TestMapCellAcrossBorders(t *testing.T) {
	m := NewMap(Options{Style: lighting.StyleNight})

	home := NewChunk(ChunkCoord{0, 0}, 32)
	west := NewChunk(ChunkCoord{-1, 0}, 32)
	west.SetBlock(15, 4, 3, "minecraft:stone", nil)
	m.Add(home)
	m.Add(west)

	cell, ok := m.Cell(home.Coord, -1, 4, 3)
	if !ok {
		t.Fatal("expected west neighbour to be loaded")
	}
	if cell.Name != "minecraft:stone" {
		t.Errorf("expected stone, got %q", cell.Name)
	}

	if _, ok := m.Cell(home.Coord, 16, 4, 3); ok {
		t.Error("expected east neighbour to be unloaded")
	}
	if _, ok := m.Cell(home.Coord, 3, 32, 3); ok {
		t.Error("expected position above the world to be unavailable")
	}
	if m.LightStyle() != lighting.StyleNight {
		t.Errorf("expected night style, got %v", m.LightStyle())
	}

	m.Remove(west.Coord)
	if _, ok := m.Cell(home.Coord, -1, 4, 3); ok {
		t.Error("expected removed chunk to be unavailable")
	}
}

func TestProperties(t *testing.T) {
	p := ParseProperties("facing=east, half=bottom,broken,=x")
	if len(p) != 2 {
		t.Fatalf("expected 2 properties, got %v", p)
	}
	if !p.Is("facing", "east") || p.Is("half", "top") {
		t.Errorf("unexpected properties %v", p)
	}
	if p.String() != "facing=east,half=bottom" {
		t.Errorf("expected sorted string, got %s", p.String())
	}
}

func TestCellAir(t *testing.T) {
	tests := []struct {
		cell Cell
		air  bool
	}{
		{Cell{}, true},
		{Cell{ID: 1}, false},
		{Cell{Name: "minecraft:air"}, true},
		{Cell{Name: "minecraft:cave_air"}, true},
		{Cell{Name: "minecraft:stone"}, false},
	}
	for _, tt := range tests {
		if got := tt.cell.IsAir(); got != tt.air {
			t.Errorf("%+v: expected air=%v, got %v", tt.cell, tt.air, got)
		}
	}
}

func TestChunkEdge(t *testing.T) {
	c := NewChunk(ChunkCoord{2, -3}, 64)
	if !c.IsEdge(0, 10, 5) || !c.IsEdge(5, 63, 5) || c.IsEdge(5, 10, 5) {
		t.Error("unexpected edge classification")
	}
	x, y, z := c.WorldPos(1, 2, 3)
	if x != 33 || y != 2 || z != -45 {
		t.Errorf("expected world pos 33,2,-45, got %d,%d,%d", x, y, z)
	}
}
