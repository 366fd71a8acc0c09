package editor

import (
	"image"
	"image/color"
	"math"
)

// sampleAt reads the colour under p. The buffer is opaque so the result always
// has full alpha.
func sampleAt(img *image.RGBA, p Point) (color.RGBA, bool) {
	if img == nil {
		return color.RGBA{}, false
	}
	pt := image.Pt(int(math.Floor(p.X)), int(math.Floor(p.Y)))
	if !pt.In(img.Bounds()) {
		return color.RGBA{}, false
	}
	c := img.RGBAAt(pt.X, pt.Y)
	c.A = 255
	return c, true
}
