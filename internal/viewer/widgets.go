package viewer

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/panelpaint/internal/editor"
	"github.com/example/panelpaint/internal/theme"
)

// ButtonState describes the visual state of a button.
type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StatePressed
)

// Button is a toolbar element.
type Button interface {
	Draw(dst *image.RGBA, state ButtonState)
	Rect() image.Rectangle
	SetRect(r image.Rectangle)
}

// CacheButton wraps another Button and caches its rendered states.
type CacheButton struct {
	Button
	cache [3]*image.RGBA
}

var _ Button = (*CacheButton)(nil)

func (cb *CacheButton) Draw(dst *image.RGBA, state ButtonState) {
	if cb.cache[state] == nil {
		rect := cb.Button.Rect()
		img := image.NewRGBA(rect)
		cb.Button.Draw(img, state)
		cb.cache[state] = img
	}
	draw.Draw(dst, cb.Button.Rect(), cb.cache[state], cb.Button.Rect().Min, draw.Src)
}

func (cb *CacheButton) SetRect(r image.Rectangle) {
	if r != cb.Button.Rect() {
		cb.Button.SetRect(r)
		cb.cache = [3]*image.RGBA{}
	}
}

// ToolButton selects an editor tool.
type ToolButton struct {
	label string
	tool  editor.Tool
	rect  image.Rectangle
	theme *theme.Theme
}

func (tb *ToolButton) Draw(dst *image.RGBA, state ButtonState) {
	c := tb.theme.ButtonBackground
	switch state {
	case StateHover:
		c = tb.theme.ButtonBackgroundHover
	case StatePressed:
		c = tb.theme.ButtonBackgroundPress
	}
	draw.Draw(dst, tb.rect, &image.Uniform{c}, image.Point{}, draw.Src)
	drawLabel(dst, tb.label, image.Pt(tb.rect.Min.X+4, tb.rect.Min.Y+16), tb.theme.ButtonText)
}

func (tb *ToolButton) Rect() image.Rectangle { return tb.rect }

func (tb *ToolButton) SetRect(r image.Rectangle) { tb.rect = r }

func newToolButtons(t *theme.Theme) []*CacheButton {
	var out []*CacheButton
	for _, tool := range editor.Tools() {
		out = append(out, &CacheButton{Button: &ToolButton{label: toolLabels[tool], tool: tool, theme: t}})
	}
	return out
}

func drawLabel(dst *image.RGBA, s string, dot image.Point, col color.RGBA) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(col), Face: basicfont.Face7x13, Dot: fixed.P(dot.X, dot.Y)}
	d.DrawString(s)
}

func labelWidth(s string) int {
	d := &font.Drawer{Face: basicfont.Face7x13}
	return d.MeasureString(s).Ceil()
}

func fillRect(dst *image.RGBA, r image.Rectangle, col color.Color) {
	draw.Draw(dst, r, &image.Uniform{col}, image.Point{}, draw.Src)
}

// drawOutline draws a one pixel border just inside r.
func drawOutline(dst *image.RGBA, r image.Rectangle, col color.Color) {
	if r.Empty() {
		return
	}
	fillRect(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), col)
	fillRect(dst, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), col)
	fillRect(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), col)
	fillRect(dst, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), col)
}

// drawDashedRect outlines r alternating between c1 and c2 every dash pixels.
func drawDashedRect(dst *image.RGBA, r image.Rectangle, dash int, c1, c2 color.Color) {
	if r.Empty() || dash <= 0 {
		return
	}
	pick := func(i int) color.Color {
		if (i/dash)%2 == 0 {
			return c1
		}
		return c2
	}
	b := dst.Bounds()
	set := func(x, y int, c color.Color) {
		if image.Pt(x, y).In(b) {
			dst.Set(x, y, c)
		}
	}
	for x := r.Min.X; x < r.Max.X; x++ {
		set(x, r.Min.Y, pick(x-r.Min.X))
		set(x, r.Max.Y-1, pick(x-r.Min.X))
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		set(r.Min.X, y, pick(y-r.Min.Y))
		set(r.Max.X-1, y, pick(y-r.Min.Y))
	}
}

// drawCheckerboard fills rect of dst with squares of size alternating
// between light and dark.
func drawCheckerboard(dst *image.RGBA, rect image.Rectangle, size int, light, dark color.RGBA) {
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if ((x/size)+(y/size))%2 == 0 {
				dst.SetRGBA(x, y, light)
			} else {
				dst.SetRGBA(x, y, dark)
			}
		}
	}
}
