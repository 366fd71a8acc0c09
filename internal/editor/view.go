package editor

import (
	"image"
	"math"
)

const (
	minZoom = 0.1
	maxZoom = 32
)

// PointerSample is a normalised pointer position in screen space. Input
// adapters produce it from whatever event shape the host window delivers.
type PointerSample struct {
	X, Y float64
}

// Point is a position in buffer space.
type Point struct {
	X, Y float64
}

// ViewTransform maps screen positions onto the buffer. Zoom, Pan and Scale are
// pure view state; Rotation mirrors the rotation the surface was built with.
type ViewTransform struct {
	Rotation int
	Zoom     float64
	// Origin is the screen position where buffer (0,0) is drawn at zero pan.
	Origin image.Point
	// Pan is stored in buffer coordinates so it is independent of zoom.
	Pan image.Point
	// Scale is the display scale factor between screen pixels and the
	// coordinates pointer events are reported in.
	Scale float64
}

// DefaultView returns an identity view.
func DefaultView() ViewTransform {
	return ViewTransform{Zoom: 1, Scale: 1}
}

func (v ViewTransform) factor() float64 {
	z := v.Zoom
	if z <= 0 {
		z = 1
	}
	s := v.Scale
	if s <= 0 {
		s = 1
	}
	return z * s
}

// ToBuffer converts a screen sample into buffer space.
func (v ViewTransform) ToBuffer(p PointerSample) Point {
	f := v.factor()
	return Point{
		X: (p.X-float64(v.Origin.X))/f - float64(v.Pan.X),
		Y: (p.Y-float64(v.Origin.Y))/f - float64(v.Pan.Y),
	}
}

// ToScreen converts a buffer position into screen space.
func (v ViewTransform) ToScreen(p Point) PointerSample {
	f := v.factor()
	return PointerSample{
		X: (p.X+float64(v.Pan.X))*f + float64(v.Origin.X),
		Y: (p.Y+float64(v.Pan.Y))*f + float64(v.Origin.Y),
	}
}

// ScreenRect returns where a buffer of the given size lands on screen.
func (v ViewTransform) ScreenRect(size image.Point) image.Rectangle {
	min := v.ToScreen(Point{})
	f := v.factor()
	x0 := int(math.Round(min.X))
	y0 := int(math.Round(min.Y))
	return image.Rect(x0, y0, x0+int(float64(size.X)*f), y0+int(float64(size.Y)*f))
}

func clampZoom(z float64) float64 {
	if z < minZoom || math.IsNaN(z) {
		return minZoom
	}
	if z > maxZoom {
		return maxZoom
	}
	return z
}

// FitZoom returns the zoom that fits a buffer of size into avail.
func FitZoom(size, avail image.Point) float64 {
	if size.X <= 0 || size.Y <= 0 || avail.X <= 0 || avail.Y <= 0 {
		return 1
	}
	zx := float64(avail.X) / float64(size.X)
	zy := float64(avail.Y) / float64(size.Y)
	return clampZoom(math.Min(zx, zy))
}
