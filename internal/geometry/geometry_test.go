package geometry

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/blockmesh/internal/texture"
)

var (
	stone = &texture.Texture{Name: "block/stone", Width: 16, Height: 16}
	glass = &texture.Texture{Name: "block/glass", Width: 16, Height: 16, Transparent: true}
	white = mgl32.Vec4{1, 1, 1, 1}
)

func TestGeometryBuckets(t *testing.T) {
	g := New()

	var sm SubMesh
	sm.AddBlock(0, 0, 0, 1, 1, 1, white, texture.Whole(stone, 0), texture.Whole(stone, 0), texture.Whole(stone, 0))
	sm.PushTo(g, Solid, 4, 5, 6)

	var pane SubMesh
	pane.AddQuad(mgl32.Vec3{0, 1, 0.5}, mgl32.Vec3{1, 1, 0.5}, mgl32.Vec3{1, 0, 0.5}, mgl32.Vec3{0, 0, 0.5}, white, texture.Whole(glass, 0))
	pane.PushTo(g, AlphaTest, 4, 6, 6)
	pane.PushTo(g, Transparent, 4, 7, 6)

	g.Mesh(stone, Transparent) // left empty
	g.Finalise()

	meshes := g.Meshes()
	if len(meshes) != 3 {
		t.Fatalf("expected 3 buckets, got %d", len(meshes))
	}
	if meshes[0].Mode != Solid || meshes[0].QuadCount() != 6 {
		t.Errorf("expected solid stone cube first with 6 quads, got %v with %d", meshes[0].Mode, meshes[0].QuadCount())
	}
	if meshes[1].Mode != AlphaTest || meshes[2].Mode != Transparent {
		t.Errorf("expected alpha-test then transparent, got %v, %v", meshes[1].Mode, meshes[2].Mode)
	}

	b := g.Bounds()
	if b.Min != (mgl32.Vec3{4, 5, 6}) || b.Max != (mgl32.Vec3{5, 8, 7}) {
		t.Errorf("unexpected bounds %v", b)
	}
	if g.VertexCount() != 32 {
		t.Errorf("expected 32 vertices, got %d", g.VertexCount())
	}
	if g.MemorySize() != int64(32*vertexSize+48*4) {
		t.Errorf("unexpected memory size %d", g.MemorySize())
	}
}

func TestPack(t *testing.T) {
	g := New()
	var sm SubMesh
	sm.AddQuad(mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 1, 0}, mgl32.Vec3{1, 1, 1}, mgl32.Vec3{0, 1, 1}, white, texture.Whole(stone, 0))
	sm.PushTo(g, Solid, 0, 0, 0)
	sm.PushTo(g, AlphaTest, 1, 0, 0)
	g.Finalise()

	p := g.Pack()
	if len(p.Groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(p.Groups))
	}
	second := p.Groups[1]
	if second.StartIndex != 6 || second.IndexCount != 6 {
		t.Errorf("expected second group at 6+6, got %d+%d", second.StartIndex, second.IndexCount)
	}
	if p.Indices[6] != 4 {
		t.Errorf("expected second group indices rebased to 4, got %d", p.Indices[6])
	}
}

func TestRelease(t *testing.T) {
	g := New()
	g.Mesh(stone, Solid).AddQuad(mgl32.Vec3{}, mgl32.Vec3{}, mgl32.Vec3{}, mgl32.Vec3{}, white, texture.Whole(stone, 0))
	g.Release()
	if !g.Released() || !g.IsEmpty() {
		t.Error("expected released geometry to be empty")
	}
}

func vecNear(a, b mgl32.Vec3) bool {
	return a.ApproxEqualThreshold(b, 1e-5)
}

func TestRotationRoundTrip(t *testing.T) {
	points := []mgl32.Vec3{{0, 0, 0}, {1, 0.25, 0.75}, {0.3, 0.9, 0.1}}
	for _, axis := range []Axis{AxisY, AxisX, AxisZ} {
		for angle := float32(0); angle < 360; angle += 45 {
			for _, p := range points {
				r := Rotation{Axis: axis, Angle: angle}
				back := Rotation{Axis: axis, Angle: 360 - angle}
				got := RotateAboutCentre(RotateAboutCentre(p, r), back)
				if !vecNear(got, p) {
					t.Errorf("axis %d angle %v: %v came back as %v", axis, angle, p, got)
				}
			}
		}
	}
}

func TestRotationDirection(t *testing.T) {
	north := mgl32.Vec3{0.5, 0.5, 0}

	// Quarter turn clockwise seen from above takes north to east.
	if got := RotateAboutCentre(north, Yaw(90)); got != (mgl32.Vec3{1, 0.5, 0.5}) {
		t.Errorf("expected yaw 90 to map north to east, got %v", got)
	}
	// Pitch 90 takes north to down.
	if got := RotateAboutCentre(north, Pitch(90)); got != (mgl32.Vec3{0.5, 0, 0.5}) {
		t.Errorf("expected pitch 90 to map north to down, got %v", got)
	}
	// Order matters: yaw first takes east to south, then pitch lifts it up.
	east := mgl32.Vec3{1, 0.5, 0.5}
	if got := RotateAboutCentre(east, Yaw(90), Pitch(90)); got != (mgl32.Vec3{0.5, 1, 0.5}) {
		t.Errorf("expected east to end at up, got %v", got)
	}
	if got := RotateAboutCentre(east, Pitch(90), Yaw(90)); got != (mgl32.Vec3{0.5, 0.5, 1}) {
		t.Errorf("expected east to end at south, got %v", got)
	}
}

func TestPushToTranslates(t *testing.T) {
	g := New()
	var sm SubMesh
	sm.AddQuad(mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 1, 0}, mgl32.Vec3{1, 1, 1}, mgl32.Vec3{0, 1, 1}, white, texture.Whole(stone, 0))
	sm.PushTo(g, Solid, 10, 20, 30, Roll(180))

	v := g.Mesh(stone, Solid).Vertices
	for _, vert := range v {
		if vert.Position.Y() != 20 {
			t.Errorf("expected rolled top face at y=20, got %v", vert.Position)
		}
	}
}
