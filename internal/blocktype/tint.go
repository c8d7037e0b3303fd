package blocktype

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/blockmesh/internal/biome"
	"github.com/Faultbox/blockmesh/internal/emit"
	"github.com/Faultbox/blockmesh/pkg/formats"
)

type tintMode int

const (
	tintNone tintMode = iota
	tintBiome
	tintFixed
)

// tint is the colour a block's faces are multiplied by: nothing, a biome
// colour of the cell, or a fixed colour.
type tint struct {
	mode  tintMode
	kind  biome.Kind
	fixed colorful.Color
}

// parseTint reads the color attribute: empty, grass, foliage, water or #rrggbb.
func parseTint(s string) (tint, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return tint{}, nil
	case "grass":
		return tint{mode: tintBiome, kind: biome.Grass}, nil
	case "foliage":
		return tint{mode: tintBiome, kind: biome.Foliage}, nil
	case "water":
		return tint{mode: tintBiome, kind: biome.Water}, nil
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return tint{}, fmt.Errorf("%w: color %q", formats.ErrMalformedBlockConfig, s)
	}
	return tint{mode: tintFixed, fixed: c}, nil
}

func biomeTint(kind biome.Kind) tint {
	return tint{mode: tintBiome, kind: kind}
}

func (t tint) or(def tint) tint {
	if t.mode == tintNone {
		return def
	}
	return t
}

// shade returns the vertex colour function for the cell at x, y, z.
func (t tint) shade(ctx *emit.Context, x, y, z int) shade {
	switch t.mode {
	case tintBiome:
		c := ctx.Tint(t.kind, x, y, z)
		return func(light float32) mgl32.Vec4 { return emit.Tinted(light, c) }
	case tintFixed:
		c := t.fixed
		return func(light float32) mgl32.Vec4 { return emit.Tinted(light, c) }
	}
	return emit.Gray
}

func colorShade(c colorful.Color) shade {
	return func(light float32) mgl32.Vec4 { return emit.Tinted(light, c) }
}

func alphaShade(s shade, alpha float32) shade {
	return func(light float32) mgl32.Vec4 { return emit.WithAlpha(s(light), alpha) }
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}
