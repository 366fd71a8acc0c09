package viewer

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"sync"
	"time"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"golang.org/x/exp/shiny/screen"

	"github.com/example/panelpaint/internal/editor"
	"github.com/example/panelpaint/internal/theme"
)

// frameDropThreshold specifies how many consecutive frames can be canceled
// before a draw is allowed to complete to keep the UI responsive.
const frameDropThreshold = 10

var (
	messageFaceOnce sync.Once
	messageFace     font.Face
)

func loadMessageFace() font.Face {
	messageFaceOnce.Do(func() {
		f, err := opentype.Parse(goregular.TTF)
		if err != nil {
			log.Printf("parse font: %v", err)
			return
		}
		messageFace, err = opentype.NewFace(f, &opentype.FaceOptions{Size: 32, DPI: 72, Hinting: font.HintingFull})
		if err != nil {
			log.Printf("font face: %v", err)
		}
	})
	return messageFace
}

// frameState is everything a frame needs, captured on the event loop so the
// paint goroutine never touches the session.
type frameState struct {
	size   image.Point
	layout layout
	theme  *theme.Theme
	// image is the flattened session, nil while nothing is loaded.
	image     *image.RGBA
	view      editor.ViewTransform
	selection image.Rectangle
	tool      editor.Tool
	color     color.RGBA
	radius    int
	hoverTool int
	status    string
	editing   bool
	editText  string

	message      string
	messageUntil time.Time
}

// painter renders frames. It is only used from the paint goroutine.
type painter struct {
	buttons  []*CacheButton
	backdrop *image.RGBA
	light    color.RGBA
	dark     color.RGBA
}

func newPainter(t *theme.Theme) *painter {
	return &painter{buttons: newToolButtons(t), light: t.CheckerLight, dark: t.CheckerDark}
}

func (p *painter) drawBackdrop(dst *image.RGBA, r image.Rectangle) {
	if p.backdrop == nil || p.backdrop.Bounds() != r {
		p.backdrop = image.NewRGBA(r)
		drawCheckerboard(p.backdrop, r, 8, p.light, p.dark)
	}
	draw.Draw(dst, r, p.backdrop, r.Min, draw.Src)
}

// render draws st into dst. It returns false when ctx was cancelled part way.
func (p *painter) render(ctx context.Context, dst *image.RGBA, st frameState) bool {
	l := st.layout
	fillRect(dst, dst.Bounds(), st.theme.Background)
	p.drawBackdrop(dst, l.canvas)
	if ctx.Err() != nil {
		return false
	}

	if st.image != nil {
		canvas := dst.SubImage(l.canvas).(*image.RGBA)
		r := st.view.ScreenRect(st.image.Bounds().Size()).Add(l.canvas.Min)
		scaler := xdraw.Interpolator(xdraw.NearestNeighbor)
		if st.view.Zoom < 1 {
			scaler = xdraw.ApproxBiLinear
		}
		scaler.Scale(canvas, r, st.image, st.image.Bounds(), draw.Over, nil)
		if ctx.Err() != nil {
			return false
		}
		if !st.selection.Empty() {
			drawDashedRect(canvas, st.selection.Add(l.canvas.Min), 4, st.theme.Selection, color.White)
		}
	}
	if ctx.Err() != nil {
		return false
	}

	p.drawToolbar(dst, st)
	drawStatus(dst, st)
	if ctx.Err() != nil {
		return false
	}

	if st.message != "" && time.Now().Before(st.messageUntil) {
		drawMessage(dst, l.canvas, st.message)
	}
	return ctx.Err() == nil
}

func (p *painter) drawToolbar(dst *image.RGBA, st frameState) {
	l := st.layout
	t := st.theme
	fillRect(dst, l.toolbar, t.ToolbarBackground)
	for i, cb := range p.buttons {
		if i >= len(l.tools) {
			break
		}
		cb.SetRect(l.tools[i])
		state := StateDefault
		if cb.Button.(*ToolButton).tool == st.tool {
			state = StatePressed
		} else if i == st.hoverTool {
			state = StateHover
		}
		cb.Draw(dst, state)
	}

	for i, r := range l.swatches {
		fillRect(dst, r, Palette[i])
		if Palette[i] == st.color {
			drawOutline(dst, r.Inset(-1), t.Selection)
		} else {
			drawOutline(dst, r, t.ButtonBorder)
		}
	}

	fillRect(dst, l.radiusDown, t.ButtonBackground)
	fillRect(dst, l.radiusUp, t.ButtonBackground)
	drawLabel(dst, "-", image.Pt(l.radiusDown.Min.X+7, l.radiusDown.Min.Y+16), t.ButtonText)
	drawLabel(dst, "+", image.Pt(l.radiusUp.Min.X+7, l.radiusUp.Min.Y+16), t.ButtonText)
	drawLabel(dst, fmt.Sprintf("%dpx", st.radius), l.radiusText, t.Foreground)

	fillRect(dst, l.preview, st.color)
	drawOutline(dst, l.preview, t.ButtonBorder)
}

func drawStatus(dst *image.RGBA, st frameState) {
	l := st.layout
	fillRect(dst, l.status, st.theme.StatusBackground)
	text := st.status
	if st.editing {
		text = "Text: " + st.editText + "|  (Enter:done Esc:cancel)"
	}
	drawLabel(dst, text, image.Pt(l.status.Min.X+4, l.status.Min.Y+16), st.theme.StatusText)
}

func drawMessage(dst *image.RGBA, area image.Rectangle, msg string) {
	face := loadMessageFace()
	if face == nil {
		return
	}
	d := &font.Drawer{Dst: dst, Src: image.Black, Face: face}
	w := d.MeasureString(msg).Ceil()
	ascent := face.Metrics().Ascent.Ceil()
	descent := face.Metrics().Descent.Ceil()
	px := area.Min.X + (area.Dx()-w)/2
	py := area.Min.Y + (area.Dy()-ascent-descent)/2 + ascent
	rect := image.Rect(px-8, py-ascent-8, px+w+8, py+descent+8)
	draw.Draw(dst, rect, &image.Uniform{color.RGBA{255, 255, 255, 230}}, image.Point{}, draw.Over)
	drawOutline(dst, rect, color.Black)
	d.Dot = fixed.P(px, py)
	d.DrawString(msg)
}

// statusLine summarises the session for the status bar.
func statusLine(sess *editor.Session) string {
	switch {
	case sess.Finished():
		return "closed"
	case sess.Loading() && !sess.Ready():
		return "loading..."
	case !sess.Ready():
		return "no image"
	}
	b := sess.Buffer().Bounds()
	s := fmt.Sprintf("%s  %dx%d  %.0f%%  %d°", sess.Tool(), b.Dx(), b.Dy(), sess.View().Zoom*100, sess.Rotation())
	if id, ok := sess.Selected(); ok {
		s += "  selected " + id
	}
	if sess.Loading() {
		s += "  rotating..."
	}
	return s + "  ^S:save ^C:copy ^Z:undo Q:quit"
}

// selectionRect returns the screen outline of the selected text relative to
// the canvas, or an empty rectangle.
func selectionRect(sess *editor.Session, view editor.ViewTransform) image.Rectangle {
	id, ok := sess.Selected()
	if !ok {
		return image.Rectangle{}
	}
	t, ok := sess.Text(id)
	if !ok {
		return image.Rectangle{}
	}
	lo, hi := t.Bounds()
	a := view.ToScreen(lo)
	b := view.ToScreen(hi)
	return image.Rect(int(a.X), int(a.Y), int(b.X), int(b.Y))
}

func drawFrame(ctx context.Context, s screen.Screen, w screen.Window, p *painter, st frameState) bool {
	b, err := s.NewBuffer(st.size)
	if err != nil {
		log.Printf("new buffer: %v", err)
		return false
	}
	defer b.Release()
	if !p.render(ctx, b.RGBA(), st) {
		return false
	}
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
	return true
}
