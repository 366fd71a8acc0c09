package editor

import (
	"context"
	"errors"
	"image"
	"image/color"
	"log"
	"slices"
)

// DefaultBackground is the opaque surface colour behind the source image and
// the colour the eraser paints with.
var DefaultBackground = color.RGBA{255, 255, 255, 255}

// DefaultColor is the initial paint colour.
var DefaultColor = color.RGBA{229, 57, 53, 255}

// DefaultBrushRadius is the initial brush radius in buffer pixels.
const DefaultBrushRadius = 8

// Session owns every piece of editor state for one image: the surface, the
// text overlay, the tool state, the view and the history. All methods must be
// called from one goroutine; only the decoder of a pending load runs
// elsewhere, and it reports back through LoadResults.
type Session struct {
	surf   surface
	texts  overlay
	hist   *history
	view   ViewTransform
	tool   Tool
	color  color.RGBA
	radius int
	export ExportOptions
	stroke *stroke

	onSave  func([]byte)
	onClose func()
	logger  *log.Logger

	loads    chan LoadResult
	done     chan struct{}
	finished bool
	nextLoad uint64
}

// Option configures a Session during creation.
type Option func(*Session)

// WithOnSave registers the callback that receives the exported bytes.
func WithOnSave(fn func([]byte)) Option { return func(s *Session) { s.onSave = fn } }

// WithOnClose registers the callback invoked when the editor is closed
// without saving.
func WithOnClose(fn func()) Option { return func(s *Session) { s.onClose = fn } }

// WithHistorySize sets the number of undo entries kept.
func WithHistorySize(n int) Option { return func(s *Session) { s.hist = newHistory(n) } }

// WithBackground sets the surface background, which is also the eraser colour.
func WithBackground(c color.RGBA) Option {
	return func(s *Session) {
		c.A = 255
		s.surf.background = c
	}
}

// WithColor sets the initial paint colour.
func WithColor(c color.RGBA) Option {
	return func(s *Session) {
		c.A = 255
		s.color = c
	}
}

// WithBrushRadius sets the initial brush radius.
func WithBrushRadius(r int) Option { return func(s *Session) { s.radius = clampRadius(r) } }

// WithExportOptions sets the encoding used by Save.
func WithExportOptions(o ExportOptions) Option { return func(s *Session) { s.export = o } }

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *log.Logger) Option { return func(s *Session) { s.logger = l } }

// New creates a Session with the provided options. The default tool is
// ToolPaint.
func New(opts ...Option) *Session {
	s := &Session{
		surf:   surface{background: DefaultBackground},
		hist:   newHistory(DefaultHistorySize),
		view:   DefaultView(),
		tool:   ToolPaint,
		color:  DefaultColor,
		radius: DefaultBrushRadius,
		export: DefaultExportOptions(),
		logger: log.Default(),
		loads:  make(chan LoadResult, 8),
		done:   make(chan struct{}),
	}
	for _, o := range opts {
		o(s)
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	return s
}

// BeginLoad starts decoding src off the event loop and returns the request
// id. The completion arrives on LoadResults. Pointer input is ignored until
// the newest request has been applied.
func (s *Session) BeginLoad(ctx context.Context, src Source, rotation int) uint64 {
	s.nextLoad++
	id := s.nextLoad
	rotation = normalizeRotation(rotation)
	if s.surf.cancel != nil {
		s.surf.cancel()
	}
	s.surf.request = ctx
	ctx, cancel := context.WithCancel(ctx)
	s.surf.cancel = cancel
	s.surf.latest = id
	s.surf.pending = true
	bg := s.surf.background
	go func() {
		defer cancel()
		img, err := decodeAndRender(ctx, src, rotation, bg)
		res := LoadResult{ID: id, Rotation: rotation, Err: err, src: src, img: img}
		select {
		case s.loads <- res:
		case <-s.done:
		}
	}()
	return id
}

// LoadResults delivers completions of BeginLoad requests.
func (s *Session) LoadResults() <-chan LoadResult { return s.loads }

// ApplyLoad installs a completed load. Results that are not from the newest
// request, whose request context has been cancelled, or that arrive after the
// session finished, are discarded and reported as not applied. A decode failure of the newest request leaves the
// previous surface untouched and returns the *DecodeError.
func (s *Session) ApplyLoad(res LoadResult) (bool, error) {
	if s.finished {
		s.logger.Printf("load %d: session finished, result dropped", res.ID)
		return false, nil
	}
	if res.ID != s.surf.latest {
		s.logger.Printf("load %d: superseded by %d, result dropped", res.ID, s.surf.latest)
		return false, nil
	}
	s.surf.pending = false
	s.surf.cancel = nil
	if s.surf.request != nil && s.surf.request.Err() != nil {
		s.logger.Printf("load %d: request cancelled, result dropped", res.ID)
		return false, nil
	}
	if errors.Is(res.Err, context.Canceled) {
		return false, nil
	}
	if res.Err != nil {
		return false, res.Err
	}
	s.surf.img = res.img
	s.surf.source = res.src
	s.surf.rotation = res.Rotation
	s.view.Rotation = res.Rotation
	s.stroke = nil
	s.texts.reset(nil)
	s.commit()
	return true, nil
}

// Load decodes src at rotation and installs it, waiting for completion.
// Results of older requests that arrive meanwhile are discarded.
func (s *Session) Load(ctx context.Context, src Source, rotation int) error {
	if s.finished {
		return ErrFinished
	}
	id := s.BeginLoad(ctx, src, rotation)
	for {
		select {
		case res := <-s.loads:
			applied, err := s.ApplyLoad(res)
			if res.ID != id {
				continue
			}
			if err == nil && !applied && ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		case <-ctx.Done():
			if s.surf.latest == id {
				s.surf.latest = 0
				s.surf.pending = false
				if s.surf.cancel != nil {
					s.surf.cancel()
					s.surf.cancel = nil
				}
			}
			return ctx.Err()
		}
	}
}

// SetRotation reloads the remembered source at deg degrees, snapped to a
// quarter turn. The rebuilt surface replaces the buffer, so strokes made since
// the last load are discarded.
func (s *Session) SetRotation(ctx context.Context, deg int) (uint64, error) {
	if s.finished {
		return 0, ErrFinished
	}
	if s.surf.source == nil {
		return 0, ErrNotReady
	}
	return s.BeginLoad(ctx, s.surf.source, deg), nil
}

// Rotate is the synchronous form of SetRotation.
func (s *Session) Rotate(ctx context.Context, deg int) error {
	if s.finished {
		return ErrFinished
	}
	if s.surf.source == nil {
		return ErrNotReady
	}
	return s.Load(ctx, s.surf.source, deg)
}

// Ready reports whether a surface exists.
func (s *Session) Ready() bool { return s.surf.img != nil }

// Loading reports whether a load request is outstanding.
func (s *Session) Loading() bool { return s.surf.pending }

// Finished reports whether Save or Close has completed the session.
func (s *Session) Finished() bool { return s.finished }

// Buffer returns the live pixel buffer. Callers must treat it as read-only.
func (s *Session) Buffer() *image.RGBA { return s.surf.img }

// Background returns the surface background colour.
func (s *Session) Background() color.RGBA { return s.surf.background }

// Rotation returns the rotation the surface was built with.
func (s *Session) Rotation() int { return s.surf.rotation }

// Tool returns the active tool.
func (s *Session) Tool() Tool { return s.tool }

// SetTool arms t. An in-progress gesture is committed first.
func (s *Session) SetTool(t Tool) Delta {
	d := s.finishGesture()
	if t < ToolPaint || t > ToolSampleColor || t == s.tool {
		return d
	}
	s.tool = t
	d.Tool = true
	return d
}

// Color returns the active paint colour.
func (s *Session) Color() color.RGBA { return s.color }

// SetColor sets the active paint colour.
func (s *Session) SetColor(c color.RGBA) {
	c.A = 255
	s.color = c
}

// BrushRadius returns the active brush radius.
func (s *Session) BrushRadius() int { return s.radius }

// SetBrushRadius sets the brush radius, clamped to 1..100.
func (s *Session) SetBrushRadius(r int) { s.radius = clampRadius(r) }

// View returns the view transform.
func (s *Session) View() ViewTransform { return s.view }

// SetView replaces the view-only parts of the transform. Rotation is model
// state and is left alone.
func (s *Session) SetView(v ViewTransform) {
	v.Rotation = s.view.Rotation
	v.Zoom = clampZoom(v.Zoom)
	if v.Scale <= 0 {
		v.Scale = 1
	}
	s.view = v
}

// SetZoom changes the zoom factor without touching the buffer.
func (s *Session) SetZoom(z float64) { s.view.Zoom = clampZoom(z) }

// ExportOptions returns the encoding used by Save.
func (s *Session) ExportOptions() ExportOptions { return s.export }

// SetExportOptions changes the encoding used by Save.
func (s *Session) SetExportOptions(o ExportOptions) { s.export = o }

// Sample reads the colour at p in buffer space.
func (s *Session) Sample(p Point) (color.RGBA, bool) { return sampleAt(s.surf.img, p) }

// Undo steps back one entry, restoring buffer and texts together. It returns
// false at the oldest entry.
func (s *Session) Undo() bool {
	if s.finished {
		return false
	}
	s.finishGesture()
	e, ok := s.hist.undo()
	if !ok {
		return false
	}
	s.restore(e)
	return true
}

// Redo moves forward one entry if an undo left one available.
func (s *Session) Redo() bool {
	if s.finished {
		return false
	}
	s.finishGesture()
	e, ok := s.hist.redo()
	if !ok {
		return false
	}
	s.restore(e)
	return true
}

// CanUndo reports whether Undo would change anything.
func (s *Session) CanUndo() bool { return s.hist.canUndo() }

// CanRedo reports whether Redo would change anything.
func (s *Session) CanRedo() bool { return s.hist.canRedo() }

// HistoryLen returns the number of retained entries.
func (s *Session) HistoryLen() int { return s.hist.len() }

func (s *Session) commit() {
	if s.surf.img == nil {
		return
	}
	s.hist.push(entry{
		frame:    captureFrame(s.surf.img),
		texts:    copyTexts(s.texts.texts),
		rotation: s.surf.rotation,
		source:   s.surf.source,
	})
}

func (s *Session) restore(e entry) {
	s.surf.img = e.frame.image()
	s.surf.rotation = e.rotation
	s.surf.source = e.source
	s.view.Rotation = e.rotation
	s.stroke = nil
	s.texts.reset(e.texts)
}

// dirty reports whether the live text list differs from the current entry.
func (s *Session) dirty() bool {
	e, ok := s.hist.current()
	if !ok {
		return true
	}
	return !slices.Equal(e.texts, s.texts.texts)
}

// Flatten composites the texts over a copy of the buffer. The live state is
// not modified.
func (s *Session) Flatten() (*image.RGBA, error) {
	if s.surf.img == nil {
		return nil, ErrNotReady
	}
	return flatten(s.surf.img, s.texts.texts)
}

// Encode flattens and encodes with the session's export options. The live
// state is not modified, so repeated calls without edits return identical
// bytes.
func (s *Session) Encode() ([]byte, error) {
	img, err := s.Flatten()
	if err != nil {
		if errors.Is(err, ErrNotReady) {
			return nil, err
		}
		return nil, &EncodeError{Format: s.export.Format, Err: err}
	}
	return encodeImage(img, s.export)
}

// Save exports the image and hands the bytes to the save callback. It
// finishes the session on success; on failure nothing reaches the callback and
// the session stays usable.
func (s *Session) Save() error {
	if s.finished {
		return ErrFinished
	}
	data, err := s.Encode()
	if err != nil {
		return err
	}
	s.finish()
	if s.onSave != nil {
		s.onSave(data)
	}
	return nil
}

// Close abandons the session and invokes the close callback. Pending loads
// are cancelled and their results are never applied. Close after Save, or a
// second Close, does nothing.
func (s *Session) Close() {
	if s.finished {
		return
	}
	s.finish()
	if s.onClose != nil {
		s.onClose()
	}
}

func (s *Session) finish() {
	s.finished = true
	s.stroke = nil
	s.texts.drag = nil
	if s.surf.cancel != nil {
		s.surf.cancel()
		s.surf.cancel = nil
	}
	s.surf.pending = false
	close(s.done)
}
