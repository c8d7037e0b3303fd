package blockmodel

import (
	"testing"

	"github.com/Faultbox/blockmesh/internal/assets"
	"github.com/Faultbox/blockmesh/internal/texture"
)

// fixedRand always returns the same draw, clamped to n.
type fixedRand int

func (f fixedRand) IntN(n int) int {
	if int(f) >= n {
		return n - 1
	}
	return int(f)
}

func newPack(files map[string]string) *assets.Manager {
	data := make(map[string][]byte, len(files))
	for p, s := range files {
		data[p] = []byte(s)
	}
	m := assets.NewManager()
	m.AddSource(assets.NewMemSource("test", data))
	return m
}

func newAtlas(textures ...*texture.Texture) *texture.Atlas {
	a := texture.NewAtlas(nil, texture.VersionModern)
	for _, tex := range textures {
		a.Register(tex)
	}
	return a
}

func opaque(name string) *texture.Texture {
	return &texture.Texture{Name: name, Width: 16, Height: 16}
}

const cubeAll = `{
	"elements": [{
		"from": [0, 0, 0], "to": [16, 16, 16],
		"faces": {
			"down":  {"texture": "#all", "cullface": "down"},
			"up":    {"texture": "#all", "cullface": "up"},
			"north": {"texture": "#all", "cullface": "north"},
			"south": {"texture": "#all", "cullface": "south"},
			"west":  {"texture": "#all", "cullface": "west"},
			"east":  {"texture": "#all", "cullface": "east"}
		}
	}]
}`

func loadRegistry(t *testing.T, files map[string]string, atlas *texture.Atlas, opts Options) *Registry {
	t.Helper()
	r, err := Load(newPack(files), atlas, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return r
}

func approx(a, b float32) bool {
	d := a - b
	return d < 1e-5 && d > -1e-5
}
