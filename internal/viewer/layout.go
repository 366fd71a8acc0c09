package viewer

import (
	"image"
	"image/color"

	"github.com/example/panelpaint/internal/editor"
)

const (
	toolbarWidth = 76
	statusHeight = 24
	buttonHeight = 24
	swatchSize   = 16
	swatchGap    = 2
	// panStep is the screen distance moved per arrow key press.
	panStep = 40
)

// Palette lists the swatches offered in the toolbar.
var Palette = []color.RGBA{
	{0, 0, 0, 255},
	{255, 255, 255, 255},
	{229, 57, 53, 255},
	{67, 160, 71, 255},
	{30, 136, 229, 255},
	{253, 216, 53, 255},
	{0, 172, 193, 255},
	{142, 36, 170, 255},
	{251, 140, 0, 255},
	{109, 76, 65, 255},
	{158, 158, 158, 255},
	{96, 125, 139, 255},
}

var toolLabels = map[editor.Tool]string{
	editor.ToolPaint:       "B:Paint",
	editor.ToolErase:       "E:Erase",
	editor.ToolPlaceText:   "T:Text",
	editor.ToolSelectMove:  "M:Select",
	editor.ToolSampleColor: "I:Sample",
}

type region int

const (
	regionNone region = iota
	regionTool
	regionSwatch
	regionRadiusDown
	regionRadiusUp
	regionCanvas
)

// layout holds the screen rectangles of every part of the window.
type layout struct {
	size       image.Point
	tools      []image.Rectangle
	swatches   []image.Rectangle
	radiusDown image.Rectangle
	radiusUp   image.Rectangle
	radiusText image.Point
	preview    image.Rectangle
	toolbar    image.Rectangle
	canvas     image.Rectangle
	status     image.Rectangle
}

func computeLayout(size image.Point) layout {
	l := layout{size: size}
	l.toolbar = image.Rect(0, 0, toolbarWidth, size.Y-statusHeight)
	l.status = image.Rect(0, size.Y-statusHeight, size.X, size.Y)
	l.canvas = image.Rect(toolbarWidth, 0, size.X, size.Y-statusHeight)
	if l.canvas.Empty() {
		l.canvas = image.Rectangle{}
	}

	y := 0
	for range editor.Tools() {
		l.tools = append(l.tools, image.Rect(0, y, toolbarWidth, y+buttonHeight))
		y += buttonHeight
	}

	y += 6
	x := 4
	for range Palette {
		if x+swatchSize > toolbarWidth {
			x = 4
			y += swatchSize + swatchGap
		}
		l.swatches = append(l.swatches, image.Rect(x, y, x+swatchSize, y+swatchSize))
		x += swatchSize + swatchGap
	}
	y += swatchSize + 6

	l.radiusDown = image.Rect(0, y, 20, y+buttonHeight)
	l.radiusUp = image.Rect(toolbarWidth-20, y, toolbarWidth, y+buttonHeight)
	l.radiusText = image.Pt(24, y+16)
	y += buttonHeight + 6

	l.preview = image.Rect(4, y, toolbarWidth-4, y+buttonHeight)
	return l
}

// hit reports which part of the window contains p, and its index for the
// regions that repeat.
func (l layout) hit(p image.Point) (region, int) {
	for i, r := range l.tools {
		if p.In(r) {
			return regionTool, i
		}
	}
	for i, r := range l.swatches {
		if p.In(r) {
			return regionSwatch, i
		}
	}
	switch {
	case p.In(l.radiusDown):
		return regionRadiusDown, 0
	case p.In(l.radiusUp):
		return regionRadiusUp, 0
	case p.In(l.canvas):
		return regionCanvas, 0
	}
	return regionNone, 0
}

// windowSize picks an initial window size that shows img at full size when
// it fits on a typical screen.
func windowSize(img image.Point) image.Point {
	const maxW, maxH = 1600, 1000
	if img.X <= 0 || img.Y <= 0 {
		return image.Pt(960, 720)
	}
	return image.Pt(min(img.X+toolbarWidth, maxW), min(img.Y+statusHeight, maxH))
}
