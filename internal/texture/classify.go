package texture

import (
	"image"

	"github.com/disintegration/imaging"
)

// Classify scans the first animation frame of img for transparent and
// translucent pixels.
func Classify(img image.Image) (transparent, translucent bool) {
	b := img.Bounds()
	if b.Dx() > 0 && b.Dy() > b.Dx() {
		img = imaging.Crop(img, image.Rect(b.Min.X, b.Min.Y, b.Max.X, b.Min.Y+b.Dx()))
		b = img.Bounds()
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			_, _, _, a := img.At(x, y).RGBA()
			switch {
			case a == 0:
				transparent = true
			case a < 0xffff:
				translucent = true
			}
			if transparent && translucent {
				return
			}
		}
	}
	return
}
