package blocktype

import (
	"testing"

	"github.com/Faultbox/blockmesh/internal/biome"
	"github.com/Faultbox/blockmesh/internal/geometry"
	"github.com/Faultbox/blockmesh/internal/texture"
	"github.com/Faultbox/blockmesh/internal/world"
)

func TestBoxTurned(t *testing.T) {
	tests := []struct {
		name string
		rot  geometry.Rotation
		want box
	}{
		{"none", geometry.Yaw(0), px(0, 0, 0, 16, 16, 3)},
		{"east", geometry.Yaw(90), px(13, 0, 0, 16, 16, 16)},
		{"south", geometry.Yaw(180), px(0, 0, 13, 16, 16, 16)},
		{"west", geometry.Yaw(270), px(0, 0, 0, 3, 16, 16)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := px(0, 0, 0, 16, 16, 3).turned(tt.rot)
			for i := 0; i < 3; i++ {
				if !approx(got.min[i], tt.want.min[i]) || !approx(got.max[i], tt.want.max[i]) {
					t.Fatalf("expected %v, got %v", tt.want, got)
				}
			}
		})
	}
}

func TestProject(t *testing.T) {
	tex := texture.Whole(&texture.Texture{Name: "t", Width: 16, Height: 16}, texture.VersionModern)
	b := px(2, 0, 4, 10, 8, 16)

	tests := []struct {
		side           side
		u0, v0, u1, v1 float32
	}{
		{up, 2.0 / 16, 4.0 / 16, 10.0 / 16, 1},
		{south, 2.0 / 16, 0.5, 10.0 / 16, 1},
		{north, 6.0 / 16, 0.5, 14.0 / 16, 1},
		{east, 0, 0.5, 12.0 / 16, 1},
		{west, 4.0 / 16, 0.5, 1, 1},
	}
	for _, tt := range tests {
		got := project(tex, tt.side, b)
		if !approx(got.U0, tt.u0) || !approx(got.V0, tt.v0) || !approx(got.U1, tt.u1) || !approx(got.V1, tt.v1) {
			t.Errorf("side %d: expected (%v,%v,%v,%v), got (%v,%v,%v,%v)",
				tt.side, tt.u0, tt.v0, tt.u1, tt.v1, got.U0, got.V0, got.U1, got.V1)
		}
	}
}

func TestPixelsFollowPackLayout(t *testing.T) {
	tex := &texture.Texture{Name: "terrain.png", Width: 256, Height: 256}

	modern := pixels(texture.Whole(tex, texture.VersionModern), 7, 6, 9, 16)
	if !approx(modern.U0, 7.0/16) || !approx(modern.V1, 1) {
		t.Errorf("modern: expected (7/16 .. 1), got (%v .. %v)", modern.U0, modern.V1)
	}

	tile := texture.Whole(tex, texture.VersionTerrainAtlas).Tile(3, 1, 16)
	legacy := pixels(tile, 7, 6, 9, 16)
	if !approx(legacy.U0, 3.0/16+7.0/256) || !approx(legacy.V1, 2.0/16) {
		t.Errorf("atlas: expected (%v .. %v), got (%v .. %v)", 3.0/16+7.0/256, 2.0/16, legacy.U0, legacy.V1)
	}
}

func maxY(g *geometry.Geometry) float32 {
	y := float32(-1)
	for _, m := range g.Meshes() {
		for _, v := range m.Vertices {
			y = max(y, v.Position.Y())
		}
	}
	return y
}

func TestSlabHalves(t *testing.T) {
	r := buildRegistry(t, testConfig, Options{})
	tests := []struct {
		name string
		cell world.Cell
		top  float32
	}{
		{"lower", world.Cell{ID: 44, SkyLight: 15}, 3.5},
		{"upper", world.Cell{ID: 44, Data: 8, SkyLight: 15}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := newContext(t, r)
			ctx.Chunk.Set(3, 3, 3, tt.cell)
			emitAt(ctx, r, 3, 3, 3)
			if got := maxY(ctx.Geometry); !approx(got, tt.top) {
				t.Errorf("expected top at %v, got %v", tt.top, got)
			}
		})
	}
}

func TestLiquidSurface(t *testing.T) {
	r := buildRegistry(t, testConfig, Options{})

	ctx := newContext(t, r)
	ctx.Chunk.SetLegacy(3, 3, 3, 9, 0)
	emitAt(ctx, r, 3, 3, 3)
	if got := maxY(ctx.Geometry); !approx(got, 3+8.0/9) {
		t.Errorf("expected source surface at %v, got %v", 3+8.0/9, got)
	}

	ctx = newContext(t, r)
	ctx.Chunk.SetLegacy(3, 3, 3, 9, 0)
	ctx.Chunk.SetLegacy(3, 4, 3, 9, 0)
	emitAt(ctx, r, 3, 3, 3)
	if got := quadCount(ctx.Geometry); got != 5 {
		t.Errorf("expected top face culled under water, got %d quads", got)
	}
	if got := maxY(ctx.Geometry); !approx(got, 4) {
		t.Errorf("expected full height under water, got %v", got)
	}
	for _, m := range ctx.Geometry.Meshes() {
		if m.Mode != geometry.Transparent {
			t.Errorf("expected water to be transparent, got %v", m.Mode)
		}
	}
}

func TestFenceConnects(t *testing.T) {
	r := buildRegistry(t, testConfig, Options{})
	ctx := newContext(t, r)
	ctx.Chunk.SetLegacy(5, 1, 5, 85, 0)
	emitAt(ctx, r, 5, 1, 5)
	alone := quadCount(ctx.Geometry)

	ctx = newContext(t, r)
	ctx.Chunk.SetLegacy(5, 1, 5, 85, 0)
	ctx.Chunk.SetLegacy(6, 1, 5, 85, 0)
	ctx.Chunk.SetLegacy(5, 1, 4, 1, 0)
	emitAt(ctx, r, 5, 1, 5)
	joined := quadCount(ctx.Geometry)

	// Two arms of two rails each, minus the stone-side rail ends.
	if want := alone + 2*2*6 - 2; joined != want {
		t.Errorf("expected %d quads, got %d", want, joined)
	}
}

func TestBeaconBeam(t *testing.T) {
	r := buildRegistry(t, testConfig, Options{})
	ctx := newContext(t, r)
	ctx.Chunk.SetLegacy(8, 1, 8, 138, 0)
	ctx.Chunk.SetLegacy(8, 3, 8, 95, 14)
	ctx.Chunk.SetLegacy(8, 10, 8, 1, 0)
	ctx.Chunk.Beacons = map[world.LocalPos]world.BeaconEntity{{X: 8, Y: 1, Z: 8}: {Levels: 1}}

	emitAt(ctx, r, 8, 1, 8)

	var beam *geometry.Mesh
	for _, m := range ctx.Geometry.Meshes() {
		if m.Texture.Name == "block/beacon_beam" {
			beam = m
		}
	}
	if beam == nil {
		t.Fatal("expected beam geometry")
	}
	if beam.Mode != geometry.Transparent {
		t.Errorf("expected transparent beam, got %v", beam.Mode)
	}
	// y=2..9, stopped by stone at 10: two boxes of four sides per block.
	if got := beam.QuadCount(); got != 8*2*4 {
		t.Errorf("expected %d beam quads, got %d", 8*2*4, got)
	}

	red, _ := biome.DyeByName("red")
	var sawWhite, sawRed, sawOuter bool
	for _, v := range beam.Vertices {
		switch {
		case v.Position.Y() <= 3:
			sawWhite = sawWhite || v.Color.X() == v.Color.Z()
		case approx(v.Color.X(), float32(red.Modern.R)) && approx(v.Color.Y(), float32(red.Modern.G)):
			sawRed = true
		}
		if approx(v.Color.W(), beamAlpha) {
			sawOuter = true
		}
	}
	if !sawWhite || !sawRed || !sawOuter {
		t.Errorf("expected white, red and outer beam vertices, got %v %v %v", sawWhite, sawRed, sawOuter)
	}
}

func TestTorchOnWall(t *testing.T) {
	r := buildRegistry(t, testConfig, Options{})
	ctx := newContext(t, r)
	ctx.Chunk.SetLegacy(5, 5, 5, 50, 3)
	emitAt(ctx, r, 5, 5, 5)

	minZ := float32(100)
	for _, m := range ctx.Geometry.Meshes() {
		for _, v := range m.Vertices {
			minZ = min(minZ, v.Position.Z())
		}
	}
	if !approx(minZ, 5+1.0/16) {
		t.Errorf("expected south-pointing torch against the north wall, got min z %v", minZ)
	}
}
