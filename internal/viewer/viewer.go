// Package viewer hosts an editor session in a shiny window.
package viewer

import (
	"context"
	"fmt"
	"image"
	"log"
	"sync"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/panelpaint/internal/editor"
	"github.com/example/panelpaint/internal/input"
	"github.com/example/panelpaint/internal/theme"
)

const (
	radiusStep       = 2
	fontSizeStep     = 4
	textRotationStep = 15
	messageDuration  = 2 * time.Second
)

// Viewer shows a session in a window and feeds it pointer and key input.
// The session must not be used by anything else while Main runs.
type Viewer struct {
	sess   *editor.Session
	theme  *theme.Theme
	keymap input.Keymap
	title  string
	copyFn func(image.Image) error
}

// Option modifies a Viewer during creation.
type Option func(*Viewer)

// WithTheme sets the colors of the window chrome.
func WithTheme(t *theme.Theme) Option { return func(v *Viewer) { v.theme = t } }

// WithKeymap replaces the default key bindings.
func WithKeymap(k input.Keymap) Option { return func(v *Viewer) { v.keymap = k } }

// WithTitle sets the window title.
func WithTitle(title string) Option { return func(v *Viewer) { v.title = title } }

// WithCopy sets the handler for the copy action. Without one, copy reports
// that no clipboard is available.
func WithCopy(fn func(image.Image) error) Option { return func(v *Viewer) { v.copyFn = fn } }

// New creates a viewer for sess.
func New(sess *editor.Session, opts ...Option) *Viewer {
	v := &Viewer{sess: sess, title: "panelpaint"}
	for _, o := range opts {
		o(v)
	}
	if v.theme == nil {
		v.theme = theme.Default()
	}
	if v.keymap == nil {
		v.keymap = input.DefaultKeymap()
	}
	return v
}

// Run executes the UI loop using shiny's driver.
func (v *Viewer) Run() { driver.Main(v.Main) }

// Main runs the window until the session is saved or closed, or the window
// goes away. A session still open on return is closed.
func (v *Viewer) Main(s screen.Screen) {
	sz := image.Pt(960, 720)
	if v.sess.Ready() {
		sz = windowSize(v.sess.Buffer().Bounds().Size())
	}
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: sz.X, Height: sz.Y, Title: v.title})
	if err != nil {
		log.Printf("new window: %v", err)
		v.sess.Close()
		return
	}
	defer w.Release()
	defer func() {
		if !v.sess.Finished() {
			v.sess.Close()
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		for {
			select {
			case res := <-v.sess.LoadResults():
				w.Send(res)
			case <-ctx.Done():
				return
			}
		}
	}()

	var paintMu sync.Mutex
	var paintCancel context.CancelFunc
	var dropCount int
	paintCh := make(chan frameState, 1)
	defer close(paintCh)
	go func() {
		p := newPainter(v.theme)
		for st := range paintCh {
			fctx, fcancel := context.WithCancel(ctx)
			paintMu.Lock()
			paintCancel = fcancel
			paintMu.Unlock()
			drawFrame(fctx, s, w, p, st)
			paintMu.Lock()
			paintCancel = nil
			if fctx.Err() == nil {
				dropCount = 0
			}
			paintMu.Unlock()
			fcancel()
		}
	}()
	stopPaint := func() {
		paintMu.Lock()
		if paintCancel != nil {
			paintCancel()
		}
		paintMu.Unlock()
	}

	l := &loop{v: v, w: w, ctx: ctx, fit: true, hoverTool: -1, stale: true}
	l.resize(sz)

	for {
		switch e := w.NextEvent().(type) {
		case editor.LoadResult:
			l.load(e)
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				stopPaint()
				return
			}
		case size.Event:
			l.resize(image.Pt(e.WidthPx, e.HeightPx))
			l.repaint()
		case paint.Event:
			paintMu.Lock()
			if paintCancel != nil && dropCount < frameDropThreshold {
				paintCancel()
				dropCount++
			}
			paintMu.Unlock()
			st := l.frame()
			queueFrame(paintCh, st)
		case mouse.Event:
			l.mouse(e)
		case key.Event:
			if l.key(e) {
				stopPaint()
				return
			}
		case error:
			log.Print(e)
		}
	}
}

// loop is the state owned by the event loop.
type loop struct {
	v   *Viewer
	w   screen.Window
	ctx context.Context

	size    image.Point
	layout  layout
	pointer input.Pointer
	fit     bool

	// flat caches the flattened session between changes.
	flat  *image.RGBA
	stale bool

	edit     *input.LineEdit
	editID   string
	editOrig string

	hoverTool    int
	message      string
	messageUntil time.Time

	// rotateLoad is the load that replaces edited pixels after a rotation.
	rotateLoad uint64
	// rotateReq is the outstanding rotation load, rotateTo its angle.
	rotateReq uint64
	rotateTo  int
}

func (l *loop) repaint() { l.w.Send(paint.Event{}) }

// invalidate marks the cached image stale and schedules a repaint.
func (l *loop) invalidate() {
	l.stale = true
	l.repaint()
}

func (l *loop) flash(format string, args ...any) {
	l.message = fmt.Sprintf(format, args...)
	l.messageUntil = time.Now().Add(messageDuration)
	log.Print(l.message)
}

func (l *loop) resize(sz image.Point) {
	l.size = sz
	l.layout = computeLayout(sz)
	l.pointer.Offset = editor.PointerSample{X: float64(l.layout.canvas.Min.X), Y: float64(l.layout.canvas.Min.Y)}
	if l.fit {
		l.applyFit()
	}
}

func (l *loop) applyFit() {
	sess := l.v.sess
	if !sess.Ready() {
		return
	}
	view := sess.View()
	view.Zoom = editor.FitZoom(sess.Buffer().Bounds().Size(), l.layout.canvas.Size())
	view.Pan = image.Point{}
	sess.SetView(view)
}

func (l *loop) frame() frameState {
	sess := l.v.sess
	if l.stale {
		l.flat = nil
		if sess.Ready() {
			img, err := sess.Flatten()
			if err != nil {
				log.Printf("flatten: %v", err)
			}
			l.flat = img
		}
		l.stale = false
	}
	st := frameState{
		size:         l.size,
		layout:       l.layout,
		theme:        l.v.theme,
		image:        l.flat,
		view:         sess.View(),
		tool:         sess.Tool(),
		color:        sess.Color(),
		radius:       sess.BrushRadius(),
		hoverTool:    l.hoverTool,
		status:       statusLine(sess),
		message:      l.message,
		messageUntil: l.messageUntil,
	}
	if sess.Ready() {
		st.selection = selectionRect(sess, st.view)
	}
	if l.edit != nil {
		st.editing = true
		st.editText = l.edit.String()
	}
	return st
}

func (l *loop) load(res editor.LoadResult) {
	if res.ID == l.rotateReq {
		l.rotateReq = 0
	}
	ok, err := l.v.sess.ApplyLoad(res)
	if err != nil {
		l.flash("load failed: %v", err)
		l.repaint()
		return
	}
	if ok {
		l.cancelEdit()
		if res.ID == l.rotateLoad {
			l.flash("rotated to %d°, undo restores the previous image", res.Rotation)
		}
		if l.fit {
			l.applyFit()
		}
		l.invalidate()
	}
}

func (l *loop) mouse(e mouse.Event) {
	sess := l.v.sess
	if f, ok := input.Wheel(e); ok {
		l.zoomBy(f)
		return
	}
	if !l.pointer.Pressed() {
		r, idx := l.layout.hit(image.Pt(int(e.X), int(e.Y)))
		hover := -1
		if r == regionTool {
			hover = idx
		}
		if hover != l.hoverTool {
			l.hoverTool = hover
			l.repaint()
		}
		if r != regionCanvas {
			if e.Direction == mouse.DirPress && e.Button == mouse.ButtonLeft {
				l.toolbarClick(r, idx)
			}
			return
		}
		if e.Direction == mouse.DirPress && l.edit != nil {
			l.finishEdit()
		}
	}
	ev, ok := l.pointer.Translate(e)
	if !ok {
		return
	}
	before := sess.Tool()
	d := sess.Apply(ev)
	if before == editor.ToolPlaceText && d.Committed {
		if id, ok := sess.Selected(); ok {
			l.startEdit(id)
		}
	}
	if d.Redraw() {
		l.invalidate()
	}
}

func (l *loop) toolbarClick(r region, idx int) {
	sess := l.v.sess
	switch r {
	case regionTool:
		l.finishEdit()
		sess.SetTool(editor.Tools()[idx])
	case regionSwatch:
		c := Palette[idx]
		sess.SetColor(c)
		if id, ok := l.selectedText(); ok {
			if err := sess.SetTextColor(id, c); err == nil {
				l.commit()
			}
		}
	case regionRadiusDown:
		l.adjustSize(-1)
	case regionRadiusUp:
		l.adjustSize(1)
	default:
		return
	}
	l.invalidate()
}

// selectedText returns the selected text when the select tool is active.
func (l *loop) selectedText() (string, bool) {
	if l.v.sess.Tool() != editor.ToolSelectMove {
		return "", false
	}
	return l.v.sess.Selected()
}

func (l *loop) commit() {
	if _, err := l.v.sess.CommitProperties(); err != nil {
		log.Printf("commit: %v", err)
	}
}

// adjustSize grows or shrinks the selected text, or the brush when no text
// is selected.
func (l *loop) adjustSize(dir int) {
	sess := l.v.sess
	if id, ok := l.selectedText(); ok {
		t, _ := sess.Text(id)
		if err := sess.SetFontSize(id, t.FontSize+float64(dir*fontSizeStep)); err == nil {
			l.commit()
		}
		return
	}
	sess.SetBrushRadius(sess.BrushRadius() + dir*radiusStep)
}

// rotate turns the selected text, or the whole image when no text is
// selected. Rotating the image rebuilds the surface and discards strokes.
func (l *loop) rotate(dir int) {
	sess := l.v.sess
	if id, ok := l.selectedText(); ok {
		t, _ := sess.Text(id)
		if err := sess.SetTextRotation(id, t.Rotation+float64(dir*textRotationStep)); err == nil {
			l.commit()
		}
		return
	}
	edited := sess.CanUndo() || len(sess.Texts()) > 0
	to := nextRotation(sess.Rotation(), sess.Loading() && l.rotateReq != 0, l.rotateTo, dir)
	id, err := sess.SetRotation(l.ctx, to)
	if err != nil {
		l.flash("rotate: %v", err)
		return
	}
	l.rotateReq, l.rotateTo = id, to
	if edited {
		l.rotateLoad = id
	}
}

// queueFrame replaces any unpainted frame in ch with st. ch must have a
// buffer of one and a single sender.
func queueFrame(ch chan frameState, st frameState) {
	select {
	case <-ch:
	default:
	}
	ch <- st
}

// nextRotation steps a quarter turn from the pending request when one is
// outstanding, otherwise from the applied rotation.
func nextRotation(applied int, pending bool, requested, dir int) int {
	base := applied
	if pending {
		base = requested
	}
	r := (base + dir*90) % 360
	if r < 0 {
		r += 360
	}
	return r
}

func (l *loop) zoomBy(f float64) {
	sess := l.v.sess
	l.fit = false
	sess.SetZoom(sess.View().Zoom * f)
	l.repaint()
}

func (l *loop) pan(dx, dy int) {
	sess := l.v.sess
	view := sess.View()
	z := view.Zoom
	if z <= 0 {
		z = 1
	}
	step := int(panStep / z)
	if step < 1 {
		step = 1
	}
	view.Pan = view.Pan.Add(image.Pt(dx*step, dy*step))
	l.fit = false
	sess.SetView(view)
	l.repaint()
}

func (l *loop) startEdit(id string) {
	t, ok := l.v.sess.Text(id)
	if !ok {
		return
	}
	l.edit = input.NewLineEdit(t.Content)
	l.editID = id
	l.editOrig = t.Content
	l.repaint()
}

func (l *loop) finishEdit() {
	if l.edit == nil {
		return
	}
	l.edit = nil
	l.commit()
	l.invalidate()
}

func (l *loop) cancelEdit() {
	if l.edit == nil {
		return
	}
	l.edit = nil
	if err := l.v.sess.SetContent(l.editID, l.editOrig); err == nil {
		l.commit()
	}
	l.invalidate()
}

// key handles a key event and reports whether the window should close.
func (l *loop) key(e key.Event) bool {
	if l.edit != nil {
		switch l.edit.Key(e) {
		case input.EditChanged:
			if err := l.v.sess.SetContent(l.editID, l.edit.String()); err != nil {
				log.Printf("edit text: %v", err)
			}
			l.invalidate()
		case input.EditDone:
			l.finishEdit()
		case input.EditCancelled:
			l.cancelEdit()
		}
		return false
	}
	a := l.v.keymap.Lookup(e)
	if a == input.ActionNone {
		return false
	}
	return l.do(a)
}

// do performs a keyboard action and reports whether the window should close.
func (l *loop) do(a input.Action) bool {
	sess := l.v.sess
	switch a {
	case input.ActionToolPaint:
		sess.SetTool(editor.ToolPaint)
	case input.ActionToolErase:
		sess.SetTool(editor.ToolErase)
	case input.ActionToolText:
		sess.SetTool(editor.ToolPlaceText)
	case input.ActionToolSelect:
		sess.SetTool(editor.ToolSelectMove)
	case input.ActionToolSample:
		sess.SetTool(editor.ToolSampleColor)
	case input.ActionUndo:
		sess.Undo()
	case input.ActionRedo:
		sess.Redo()
	case input.ActionSave:
		if err := sess.Save(); err != nil {
			l.flash("save failed: %v", err)
			break
		}
		return true
	case input.ActionCopy:
		l.copyImage()
	case input.ActionClose:
		sess.Close()
		return true
	case input.ActionZoomIn:
		l.zoomBy(input.ZoomStep)
	case input.ActionZoomOut:
		l.zoomBy(1 / input.ZoomStep)
	case input.ActionZoomFit:
		l.fit = true
		l.applyFit()
	case input.ActionRotateCW:
		l.rotate(1)
	case input.ActionRotateCCW:
		l.rotate(-1)
	case input.ActionRadiusUp:
		l.adjustSize(1)
	case input.ActionRadiusDown:
		l.adjustSize(-1)
	case input.ActionDeleteText:
		if id, ok := sess.Selected(); ok {
			if err := sess.Delete(id); err != nil {
				log.Printf("delete: %v", err)
			}
		}
	case input.ActionEditText:
		if id, ok := sess.Selected(); ok {
			l.startEdit(id)
		}
	case input.ActionPanLeft:
		l.pan(-1, 0)
	case input.ActionPanRight:
		l.pan(1, 0)
	case input.ActionPanUp:
		l.pan(0, -1)
	case input.ActionPanDown:
		l.pan(0, 1)
	}
	l.invalidate()
	return false
}

func (l *loop) copyImage() {
	if l.v.copyFn == nil {
		l.flash("no clipboard available")
		return
	}
	img, err := l.v.sess.Flatten()
	if err != nil {
		l.flash("copy failed: %v", err)
		return
	}
	if err := l.v.copyFn(img); err != nil {
		l.flash("copy failed: %v", err)
		return
	}
	l.flash("image copied to clipboard")
}
