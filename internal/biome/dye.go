package biome

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Dye is one of the sixteen dye colours. IDs follow the modern numbering;
// legacy wool data values are 15-id.
type Dye struct {
	ID     int
	Name   string
	Alias  string
	Modern colorful.Color
	Legacy colorful.Color
}

// Color returns the dye colour from the requested palette.
func (d Dye) Color(legacy bool) colorful.Color {
	if legacy {
		return d.Legacy
	}
	return d.Modern
}

func rgb(r, g, b uint8) colorful.Color {
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

var dyes = [16]Dye{
	{0, "white", "", rgb(249, 255, 254), rgb(255, 255, 255)},
	{1, "orange", "", rgb(249, 128, 29), rgb(216, 127, 51)},
	{2, "magenta", "", rgb(199, 78, 189), rgb(178, 76, 216)},
	{3, "light_blue", "", rgb(58, 179, 218), rgb(102, 153, 216)},
	{4, "yellow", "", rgb(254, 216, 61), rgb(229, 229, 51)},
	{5, "lime", "", rgb(128, 199, 31), rgb(127, 204, 25)},
	{6, "pink", "", rgb(243, 139, 170), rgb(242, 127, 165)},
	{7, "gray", "", rgb(71, 79, 82), rgb(76, 76, 76)},
	{8, "silver", "light_gray", rgb(157, 157, 151), rgb(153, 153, 153)},
	{9, "cyan", "", rgb(22, 156, 156), rgb(76, 127, 153)},
	{10, "purple", "", rgb(137, 50, 184), rgb(127, 63, 178)},
	{11, "blue", "", rgb(60, 68, 170), rgb(51, 76, 178)},
	{12, "brown", "", rgb(131, 84, 50), rgb(102, 76, 51)},
	{13, "green", "", rgb(94, 124, 22), rgb(102, 127, 51)},
	{14, "red", "", rgb(176, 46, 38), rgb(153, 51, 51)},
	{15, "black", "", rgb(29, 29, 33), rgb(25, 25, 25)},
}

var dyesByName = func() map[string]Dye {
	m := make(map[string]Dye, len(dyes)+1)
	for _, d := range dyes {
		m[d.Name] = d
		if d.Alias != "" {
			m[d.Alias] = d
		}
	}
	return m
}()

// DyeByID returns the dye with the given modern id.
func DyeByID(id int) (Dye, bool) {
	if id < 0 || id >= len(dyes) {
		return Dye{}, false
	}
	return dyes[id], true
}

// DyeByName returns the dye with the given name, with or without namespace.
func DyeByName(name string) (Dye, bool) {
	d, ok := dyesByName[strings.TrimPrefix(name, "minecraft:")]
	return d, ok
}
