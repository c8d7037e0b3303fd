// Package lighting converts per-cell light levels into face brightness.
package lighting

import (
	"fmt"
	"strings"
)

// MaxLight is the highest sky or block light level.
const MaxLight = 15

// Style selects the lighting model for a whole render.
type Style int

const (
	StyleDay Style = iota
	StyleNight
	StyleCave
	StyleNone
)

// ParseStyle converts a config value to a Style.
func ParseStyle(s string) (Style, error) {
	switch strings.ToLower(s) {
	case "day", "":
		return StyleDay, nil
	case "night":
		return StyleNight, nil
	case "cave":
		return StyleCave, nil
	case "none":
		return StyleNone, nil
	}
	return StyleDay, fmt.Errorf("unknown light style %q", s)
}

// String returns the config name of the style.
func (s Style) String() string {
	switch s {
	case StyleDay:
		return "day"
	case StyleNight:
		return "night"
	case StyleCave:
		return "cave"
	case StyleNone:
		return "none"
	default:
		return fmt.Sprintf("Style(%d)", int(s))
	}
}

// Face groups block faces by their fixed shading offset.
type Face int

const (
	FaceTop        Face = iota // up and down
	FaceNorthSouth             // faces along the Z axis
	FaceEastWest               // faces along the X axis
)

// Brightness returns the brightness in [0,1] of a face lit by the given sky
// and block light, for a cell at height y in a world maxHeight blocks tall.
func Brightness(style Style, face Face, sky, block, y, maxHeight int, nightAdjustment float32) float32 {
	var result float32

	switch style {
	case StyleDay:
		result = clamp(float32(sky)*0.7+float32(block), 0, MaxLight)/MaxLight + 0.3
	case StyleNight:
		result = clamp(float32(sky)*0.1+float32(block)*0.7, 0, MaxLight)/MaxLight + nightAdjustment
	case StyleCave:
		heightScale := float32(0.1)
		if maxHeight > 0 {
			heightScale += float32(y) / float32(maxHeight) * 0.6
		}
		result = clamp(heightScale+float32(block)/MaxLight*0.5, 0, 1)
	case StyleNone:
		return noneBrightness(face)
	}

	return clamp(result-faceOffset(style, face), 0, 1)
}

// Fallback returns the brightness used when the light data for a position is
// not available, such as past the top of the world or in an unloaded chunk.
func Fallback(style Style, face Face) float32 {
	var result float32
	switch style {
	case StyleDay:
		result = 1.0
	case StyleNight, StyleCave:
		result = 0.1
	case StyleNone:
		return noneBrightness(face)
	}
	return clamp(result-faceOffset(style, face), 0, 1)
}

func faceOffset(style Style, face Face) float32 {
	switch face {
	case FaceNorthSouth:
		if style == StyleDay {
			return 0.15
		}
		return 0.05
	case FaceEastWest:
		if style == StyleDay {
			return 0.30
		}
		return 0.1
	}
	return 0
}

func noneBrightness(face Face) float32 {
	switch face {
	case FaceNorthSouth:
		return 0.85
	case FaceEastWest:
		return 0.7
	default:
		return 1.0
	}
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
