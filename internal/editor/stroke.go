package editor

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
)

const (
	MinBrushRadius = 1
	MaxBrushRadius = 100
)

// stroke paints one freehand gesture straight into the surface buffer.
type stroke struct {
	dc   *gg.Context
	last Point
}

// beginStroke starts a path at p. A dot is laid down immediately so a press
// without motion still leaves a mark.
func beginStroke(dst *image.RGBA, p Point, col color.RGBA, radius int) *stroke {
	col.A = 255
	width := float64(clampRadius(radius))
	dc := gg.NewContextForRGBA(dst)
	dc.SetColor(col)
	dc.SetLineWidth(width)
	dc.SetLineCapRound()
	dc.SetLineJoinRound()
	dc.DrawCircle(p.X, p.Y, width/2)
	dc.Fill()
	return &stroke{dc: dc, last: p}
}

// lineTo strokes a straight segment from the previous sample to p. Round caps
// on every segment keep fast motion connected.
func (s *stroke) lineTo(p Point) {
	if p == s.last {
		return
	}
	s.dc.DrawLine(s.last.X, s.last.Y, p.X, p.Y)
	s.dc.Stroke()
	s.last = p
}

func clampRadius(r int) int {
	if r < MinBrushRadius {
		return MinBrushRadius
	}
	if r > MaxBrushRadius {
		return MaxBrushRadius
	}
	return r
}
