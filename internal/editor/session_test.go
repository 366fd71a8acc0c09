package editor

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngSource(t *testing.T, w, h int, c color.RGBA) BytesSource {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	// a marker in the top-left corner makes rotations distinguishable
	for y := 0; y < h/4; y++ {
		for x := 0; x < w/4; x++ {
			img.SetRGBA(x, y, color.RGBA{0, 0, 255, 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return BytesSource{Name: "test.png", Data: buf.Bytes()}
}

func quietLogger() *log.Logger { return log.New(io.Discard, "", 0) }

func loaded(t *testing.T, w, h int, opts ...Option) (*Session, Source) {
	t.Helper()
	opts = append([]Option{WithLogger(quietLogger())}, opts...)
	s := New(opts...)
	src := pngSource(t, w, h, color.RGBA{200, 200, 200, 255})
	require.NoError(t, s.Load(context.Background(), src, 0))
	return s, src
}

func drawStroke(s *Session, pts ...PointerSample) Delta {
	d := s.Apply(PointerDown{pts[0]})
	for _, p := range pts[1:] {
		d = d.merge(s.Apply(PointerMove{p}))
	}
	return d.merge(s.Apply(PointerUp{pts[len(pts)-1]}))
}

func snapshot(s *Session) []byte {
	return append([]byte(nil), s.Buffer().Pix...)
}

func TestLoadBuildsSurfaceAndBaseline(t *testing.T) {
	s, _ := loaded(t, 40, 30)
	require.True(t, s.Ready())
	assert.False(t, s.Loading())
	assert.Equal(t, image.Pt(40, 30), s.Buffer().Bounds().Size())
	assert.Equal(t, 1, s.HistoryLen())
	assert.False(t, s.CanUndo())
	assert.Equal(t, ToolPaint, s.Tool())
}

func TestLoadDecodeErrorKeepsSurface(t *testing.T) {
	s, _ := loaded(t, 20, 20)
	before := snapshot(s)

	err := s.Load(context.Background(), BytesSource{Name: "junk", Data: []byte("not an image at all")}, 0)
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "junk", de.Source)
	assert.Equal(t, before, snapshot(s))
	assert.False(t, s.Loading())
}

func TestLoadDecodeErrorWithoutSurface(t *testing.T) {
	s := New(WithLogger(quietLogger()))
	err := s.Load(context.Background(), DataURISource("data:text/plain,hello"), 0)
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.False(t, s.Ready())
}

func TestStrokeMarksBufferAndCommits(t *testing.T) {
	s, _ := loaded(t, 100, 100)
	before := snapshot(s)

	d := drawStroke(s, PointerSample{X: 20, Y: 20}, PointerSample{X: 80, Y: 20})
	assert.True(t, d.Buffer)
	assert.True(t, d.Committed)
	assert.NotEqual(t, before, snapshot(s))
	assert.Equal(t, 2, s.HistoryLen())

	mid := s.Buffer().RGBAAt(50, 20)
	assert.InDelta(t, DefaultColor.R, mid.R, 2)
	assert.InDelta(t, DefaultColor.G, mid.G, 2)
	assert.InDelta(t, DefaultColor.B, mid.B, 2)
}

func TestClickWithoutMotionLeavesDot(t *testing.T) {
	s, _ := loaded(t, 100, 100)
	bg := s.Buffer().RGBAAt(70, 70)
	drawStroke(s, PointerSample{X: 70, Y: 70})
	assert.NotEqual(t, bg, s.Buffer().RGBAAt(70, 70))
}

func TestEraseUsesBackground(t *testing.T) {
	s, _ := loaded(t, 100, 100, WithBackground(color.RGBA{10, 20, 30, 255}))
	drawStroke(s, PointerSample{X: 50, Y: 50}, PointerSample{X: 60, Y: 50})
	s.SetTool(ToolErase)
	drawStroke(s, PointerSample{X: 50, Y: 50}, PointerSample{X: 60, Y: 50})
	got := s.Buffer().RGBAAt(55, 50)
	assert.InDelta(t, 10, got.R, 2)
	assert.InDelta(t, 20, got.G, 2)
	assert.InDelta(t, 30, got.B, 2)
	assert.Equal(t, ToolErase, s.Tool())
}

func TestUndoRedoRoundTrip(t *testing.T) {
	s, _ := loaded(t, 120, 120)
	baseBuf := snapshot(s)
	baseTexts := s.Texts()

	drawStroke(s, PointerSample{X: 10, Y: 10}, PointerSample{X: 100, Y: 100})
	_, err := s.PlaceText(Point{X: 60, Y: 60})
	require.NoError(t, err)
	s.SetTool(ToolPaint)
	drawStroke(s, PointerSample{X: 100, Y: 10}, PointerSample{X: 10, Y: 100})
	top := snapshot(s)
	topTexts := s.Texts()

	for i := 0; i < 3; i++ {
		require.True(t, s.Undo())
	}
	assert.False(t, s.Undo())
	assert.Equal(t, baseBuf, snapshot(s))
	assert.Equal(t, baseTexts, s.Texts())

	for i := 0; i < 3; i++ {
		require.True(t, s.Redo())
	}
	assert.False(t, s.Redo())
	assert.Equal(t, top, snapshot(s))
	assert.Equal(t, topTexts, s.Texts())
}

func TestHistoryCapEvictsOldest(t *testing.T) {
	s, _ := loaded(t, 60, 60, WithHistorySize(5))
	baseline := snapshot(s)
	for i := 0; i < 10; i++ {
		y := float64(5 + i*5)
		drawStroke(s, PointerSample{X: 5, Y: y}, PointerSample{X: 55, Y: y})
	}
	assert.Equal(t, 5, s.HistoryLen())
	undos := 0
	for s.Undo() {
		undos++
	}
	assert.Equal(t, 4, undos)
	assert.NotEqual(t, baseline, snapshot(s))
}

func TestCommitAfterUndoTruncatesRedo(t *testing.T) {
	s, _ := loaded(t, 80, 80)
	drawStroke(s, PointerSample{X: 10, Y: 10}, PointerSample{X: 70, Y: 10})
	drawStroke(s, PointerSample{X: 10, Y: 30}, PointerSample{X: 70, Y: 30})
	drawStroke(s, PointerSample{X: 10, Y: 50}, PointerSample{X: 70, Y: 50})
	discarded := snapshot(s)

	require.True(t, s.Undo())
	require.True(t, s.Undo())
	require.True(t, s.CanRedo())

	drawStroke(s, PointerSample{X: 40, Y: 5}, PointerSample{X: 40, Y: 75})
	assert.False(t, s.CanRedo())
	assert.False(t, s.Redo())
	assert.NotEqual(t, discarded, snapshot(s))
	assert.Equal(t, 3, s.HistoryLen())
}

func TestHitTestNewestWins(t *testing.T) {
	s, _ := loaded(t, 300, 300)
	p := Point{X: 150, Y: 150}
	a, err := s.PlaceText(p)
	require.NoError(t, err)
	require.NoError(t, s.SetContent(a.ID, "A"))
	s.SetTool(ToolPlaceText)
	b, err := s.PlaceText(p)
	require.NoError(t, err)
	require.NoError(t, s.SetContent(b.ID, "B"))

	id, ok := s.HitTest(p)
	require.True(t, ok)
	assert.Equal(t, b.ID, id)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestHitTestMissIsNotAnError(t *testing.T) {
	s, _ := loaded(t, 300, 300)
	_, err := s.PlaceText(Point{X: 50, Y: 50})
	require.NoError(t, err)
	_, ok := s.HitTest(Point{X: 290, Y: 290})
	assert.False(t, ok)
}

func TestPlaceTextDefaults(t *testing.T) {
	s, _ := loaded(t, 200, 200, WithBrushRadius(12))
	s.SetTool(ToolPlaceText)
	d := s.Apply(PointerDown{PointerSample{X: 100, Y: 80}})
	assert.True(t, d.Committed)
	assert.Equal(t, ToolSelectMove, s.Tool())

	texts := s.Texts()
	require.Len(t, texts, 1)
	assert.Equal(t, "t1", texts[0].ID)
	assert.Equal(t, DefaultTextContent, texts[0].Content)
	assert.Equal(t, 36.0, texts[0].FontSize)
	assert.Equal(t, 0.0, texts[0].Rotation)
	assert.Equal(t, Point{X: 100, Y: 80}, texts[0].Position())
	sel, ok := s.Selected()
	assert.True(t, ok)
	assert.Equal(t, "t1", sel)

	s.SetBrushRadius(2)
	t2, err := s.PlaceText(Point{X: 10, Y: 10})
	require.NoError(t, err)
	assert.Equal(t, 24.0, t2.FontSize)
	assert.Equal(t, "t2", t2.ID)
}

func TestDragHasNoJump(t *testing.T) {
	s, _ := loaded(t, 300, 300)
	txt, err := s.PlaceText(Point{X: 100, Y: 100})
	require.NoError(t, err)
	entries := s.HistoryLen()

	// grab off-centre
	s.Apply(PointerDown{PointerSample{X: 110, Y: 95}})
	s.Apply(PointerMove{PointerSample{X: 110, Y: 95}})
	got, _ := s.Text(txt.ID)
	assert.Equal(t, txt.Position(), got.Position())

	s.Apply(PointerMove{PointerSample{X: 160, Y: 145}})
	d := s.Apply(PointerUp{PointerSample{X: 170, Y: 155}})
	assert.True(t, d.Committed)
	got, _ = s.Text(txt.ID)
	assert.Equal(t, Point{X: 160, Y: 160}, got.Position())
	assert.Equal(t, entries+1, s.HistoryLen())
}

func TestClickWithoutDragDoesNotCommit(t *testing.T) {
	s, _ := loaded(t, 300, 300)
	_, err := s.PlaceText(Point{X: 100, Y: 100})
	require.NoError(t, err)
	entries := s.HistoryLen()
	d := s.Apply(PointerDown{PointerSample{X: 100, Y: 100}})
	d = d.merge(s.Apply(PointerUp{PointerSample{X: 100, Y: 100}}))
	assert.False(t, d.Committed)
	assert.Equal(t, entries, s.HistoryLen())
}

func TestSelectMissClearsSelection(t *testing.T) {
	s, _ := loaded(t, 300, 300)
	_, err := s.PlaceText(Point{X: 50, Y: 50})
	require.NoError(t, err)
	d := s.Apply(PointerDown{PointerSample{X: 280, Y: 280}})
	assert.True(t, d.Overlay)
	_, ok := s.Selected()
	assert.False(t, ok)
	assert.Equal(t, ToolSelectMove, s.Tool())
}

func TestPropertyEditsCommitOnRequest(t *testing.T) {
	s, _ := loaded(t, 200, 200)
	txt, err := s.PlaceText(Point{X: 100, Y: 100})
	require.NoError(t, err)
	entries := s.HistoryLen()

	require.NoError(t, s.SetContent(txt.ID, "hello"))
	require.NoError(t, s.SetFontSize(txt.ID, 1000))
	require.NoError(t, s.SetTextRotation(txt.ID, -500))
	require.NoError(t, s.SetTextColor(txt.ID, color.RGBA{1, 2, 3, 0}))
	assert.Equal(t, entries, s.HistoryLen())

	got, _ := s.Text(txt.ID)
	assert.Equal(t, "hello", got.Content)
	assert.Equal(t, float64(MaxFontSize), got.FontSize)
	assert.Equal(t, float64(MinTextRotation), got.Rotation)
	assert.Equal(t, color.RGBA{1, 2, 3, 255}, got.Color)

	ok, err := s.CommitProperties()
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.CommitProperties()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, entries+1, s.HistoryLen())

	require.True(t, s.Undo())
	got, _ = s.Text(txt.ID)
	assert.Equal(t, DefaultTextContent, got.Content)
	_, selected := s.Selected()
	assert.False(t, selected)
}

func TestDelete(t *testing.T) {
	s, _ := loaded(t, 200, 200)
	txt, err := s.PlaceText(Point{X: 100, Y: 100})
	require.NoError(t, err)
	require.NoError(t, s.Delete(txt.ID))
	assert.Empty(t, s.Texts())
	_, ok := s.Selected()
	assert.False(t, ok)
	assert.ErrorIs(t, s.Delete(txt.ID), ErrUnknownText)
	assert.ErrorIs(t, s.SetContent("t99", "x"), ErrUnknownText)

	require.True(t, s.Undo())
	assert.Len(t, s.Texts(), 1)
	next, err := s.PlaceText(Point{X: 10, Y: 10})
	require.NoError(t, err)
	assert.Equal(t, "t2", next.ID)
}

func TestSampleColorIsOneShot(t *testing.T) {
	s, _ := loaded(t, 100, 100)
	s.SetTool(ToolSampleColor)
	d := s.Apply(PointerDown{PointerSample{X: 5, Y: 5}})
	assert.True(t, d.Tool)
	assert.Equal(t, ToolPaint, s.Tool())
	assert.Equal(t, color.RGBA{0, 0, 255, 255}, s.Color())

	c, ok := s.Sample(Point{X: 90, Y: 90})
	assert.True(t, ok)
	assert.Equal(t, color.RGBA{200, 200, 200, 255}, c)
	_, ok = s.Sample(Point{X: -1, Y: 3})
	assert.False(t, ok)
}

func TestZoomedInputMapsToBuffer(t *testing.T) {
	s, _ := loaded(t, 100, 100)
	s.SetView(ViewTransform{Zoom: 2, Origin: image.Pt(10, 10), Scale: 1, Rotation: 270})
	assert.Equal(t, 0, s.View().Rotation)
	s.SetTool(ToolPlaceText)
	s.Apply(PointerDown{PointerSample{X: 110, Y: 70}})
	texts := s.Texts()
	require.Len(t, texts, 1)
	assert.Equal(t, Point{X: 50, Y: 30}, texts[0].Position())
}

func TestRotateSwapsAndUndoKeepsRotation(t *testing.T) {
	s, _ := loaded(t, 400, 600)
	require.NoError(t, s.Rotate(context.Background(), 90))
	assert.Equal(t, image.Pt(600, 400), s.Buffer().Bounds().Size())
	assert.Equal(t, 90, s.View().Rotation)
	blank := snapshot(s)

	drawStroke(s, PointerSample{X: 100, Y: 100}, PointerSample{X: 500, Y: 300})
	assert.NotEqual(t, blank, snapshot(s))

	require.True(t, s.Undo())
	assert.Equal(t, image.Pt(600, 400), s.Buffer().Bounds().Size())
	assert.Equal(t, blank, snapshot(s))
	assert.Equal(t, 90, s.Rotation())
}

func TestRotationDiscardsStrokes(t *testing.T) {
	s, src := loaded(t, 60, 90)
	drawStroke(s, PointerSample{X: 10, Y: 10}, PointerSample{X: 50, Y: 80})
	_, err := s.PlaceText(Point{X: 30, Y: 30})
	require.NoError(t, err)
	require.NoError(t, s.Rotate(context.Background(), 180))

	fresh := New(WithLogger(quietLogger()))
	require.NoError(t, fresh.Load(context.Background(), src, 180))
	assert.Equal(t, snapshot(fresh), snapshot(s))
	assert.Empty(t, s.Texts())
}

func TestRotationNormalizes(t *testing.T) {
	s, _ := loaded(t, 30, 50)
	require.NoError(t, s.Rotate(context.Background(), -90))
	assert.Equal(t, 270, s.Rotation())
	assert.Equal(t, image.Pt(50, 30), s.Buffer().Bounds().Size())
}

func TestRotateWithoutSource(t *testing.T) {
	s := New(WithLogger(quietLogger()))
	_, err := s.SetRotation(context.Background(), 90)
	assert.ErrorIs(t, err, ErrNotReady)
}

func TestStaleLoadIsDiscarded(t *testing.T) {
	s := New(WithLogger(quietLogger()))
	first := s.BeginLoad(context.Background(), pngSource(t, 10, 10, color.RGBA{255, 0, 0, 255}), 0)
	second := s.BeginLoad(context.Background(), pngSource(t, 20, 30, color.RGBA{0, 255, 0, 255}), 0)
	require.Greater(t, second, first)

	applied := map[uint64]bool{}
	for i := 0; i < 2; i++ {
		select {
		case res := <-s.LoadResults():
			ok, err := s.ApplyLoad(res)
			if res.ID == second {
				require.NoError(t, err)
			}
			applied[res.ID] = ok
		case <-time.After(5 * time.Second):
			t.Fatal("load did not complete")
		}
	}
	assert.False(t, applied[first])
	assert.True(t, applied[second])
	assert.Equal(t, image.Pt(20, 30), s.Buffer().Bounds().Size())
}

func TestUndoRestoresSourceForRotation(t *testing.T) {
	s, _ := loaded(t, 40, 30)
	require.NoError(t, s.Load(context.Background(), pngSource(t, 20, 20, color.RGBA{0, 255, 0, 255}), 0))
	require.True(t, s.Undo())
	require.Equal(t, image.Pt(40, 30), s.Buffer().Bounds().Size())

	require.NoError(t, s.Rotate(context.Background(), 90))
	assert.Equal(t, image.Pt(30, 40), s.Buffer().Bounds().Size())
	assert.Equal(t, 90, s.Rotation())
}

func TestCancelledRequestIsDiscarded(t *testing.T) {
	s, _ := loaded(t, 10, 10)
	before := snapshot(s)
	ctx, cancel := context.WithCancel(context.Background())
	id := s.BeginLoad(ctx, pngSource(t, 50, 50, color.RGBA{255, 0, 0, 255}), 0)

	var res LoadResult
	select {
	case res = <-s.LoadResults():
	case <-time.After(5 * time.Second):
		t.Fatal("load did not complete")
	}
	require.Equal(t, id, res.ID)
	cancel()

	ok, err := s.ApplyLoad(res)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, s.Loading())
	assert.Equal(t, image.Pt(10, 10), s.Buffer().Bounds().Size())
	assert.Equal(t, before, snapshot(s))
}

func TestLoadCancelledWhileWaitingLeavesNothingToApply(t *testing.T) {
	s, _ := loaded(t, 10, 10)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := s.Load(ctx, pngSource(t, 50, 50, color.RGBA{255, 0, 0, 255}), 0)
	require.ErrorIs(t, err, context.Canceled)

	// anything the decoder still delivers must not be installed
	select {
	case res := <-s.LoadResults():
		ok, err := s.ApplyLoad(res)
		require.NoError(t, err)
		assert.False(t, ok)
	case <-time.After(200 * time.Millisecond):
	}
	assert.False(t, s.Loading())
	assert.Equal(t, image.Pt(10, 10), s.Buffer().Bounds().Size())
}

func TestPointerIgnoredWhileLoading(t *testing.T) {
	s, src := loaded(t, 50, 50)
	before := snapshot(s)
	s.BeginLoad(context.Background(), src, 90)
	require.True(t, s.Loading())
	d := drawStroke(s, PointerSample{X: 10, Y: 10}, PointerSample{X: 40, Y: 40})
	assert.Equal(t, Delta{}, d)
	assert.Equal(t, before, snapshot(s))

	res := <-s.LoadResults()
	ok, err := s.ApplyLoad(res)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.False(t, s.Loading())
}

func TestCloseBeforeLoadCompletes(t *testing.T) {
	closes := 0
	s := New(WithLogger(quietLogger()), WithOnClose(func() { closes++ }))
	s.BeginLoad(context.Background(), pngSource(t, 10, 10, color.RGBA{255, 0, 0, 255}), 0)
	s.Close()
	s.Close()
	assert.Equal(t, 1, closes)

	select {
	case res := <-s.LoadResults():
		ok, err := s.ApplyLoad(res)
		assert.NoError(t, err)
		assert.False(t, ok)
	case <-time.After(100 * time.Millisecond):
	}
	assert.False(t, s.Ready())
	assert.ErrorIs(t, s.Load(context.Background(), pngSource(t, 5, 5, color.RGBA{}), 0), ErrFinished)
}

func TestSaveThenCloseCallsSaveOnly(t *testing.T) {
	var saved [][]byte
	closes := 0
	s, _ := loaded(t, 40, 40,
		WithExportOptions(ExportOptions{Format: FormatPNG}),
		WithOnSave(func(b []byte) { saved = append(saved, b) }),
		WithOnClose(func() { closes++ }),
	)
	require.NoError(t, s.Save())
	s.Close()
	assert.ErrorIs(t, s.Save(), ErrFinished)
	require.Len(t, saved, 1)
	assert.Equal(t, 0, closes)
	assert.True(t, s.Finished())

	img, err := png.Decode(bytes.NewReader(saved[0]))
	require.NoError(t, err)
	assert.Equal(t, image.Pt(40, 40), img.Bounds().Size())

	_, err = s.PlaceText(Point{X: 1, Y: 1})
	assert.ErrorIs(t, err, ErrFinished)
	assert.False(t, s.Undo())
}

func TestEncodeErrorKeepsSessionOpen(t *testing.T) {
	saves := 0
	s, _ := loaded(t, 40, 40,
		WithExportOptions(ExportOptions{Format: Format("bmp")}),
		WithOnSave(func([]byte) { saves++ }),
	)
	err := s.Save()
	var ee *EncodeError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, Format("bmp"), ee.Format)
	assert.Equal(t, 0, saves)
	assert.False(t, s.Finished())

	s.SetExportOptions(DefaultExportOptions())
	require.NoError(t, s.Save())
	assert.Equal(t, 1, saves)
}

func TestSaveBeforeLoad(t *testing.T) {
	s := New(WithLogger(quietLogger()))
	assert.ErrorIs(t, s.Save(), ErrNotReady)
	assert.False(t, s.Finished())
}

func TestExportIsPure(t *testing.T) {
	s, _ := loaded(t, 200, 120)
	drawStroke(s, PointerSample{X: 10, Y: 10}, PointerSample{X: 190, Y: 110})
	txt, err := s.PlaceText(Point{X: 100, Y: 60})
	require.NoError(t, err)
	require.NoError(t, s.SetTextRotation(txt.ID, 30))
	buf := snapshot(s)
	texts := s.Texts()
	entries := s.HistoryLen()
	sel, _ := s.Selected()

	for _, f := range []Format{FormatJPEG, FormatPNG} {
		s.SetExportOptions(ExportOptions{Format: f, Quality: 0.8})
		a, err := s.Encode()
		require.NoError(t, err)
		b, err := s.Encode()
		require.NoError(t, err)
		assert.Equal(t, a, b, "format %s", f)
	}
	assert.Equal(t, buf, snapshot(s))
	assert.Equal(t, texts, s.Texts())
	assert.Equal(t, entries, s.HistoryLen())
	gotSel, _ := s.Selected()
	assert.Equal(t, sel, gotSel)
}

func TestFlattenDrawsText(t *testing.T) {
	s, _ := loaded(t, 200, 100)
	plain, err := s.Flatten()
	require.NoError(t, err)
	_, err = s.PlaceText(Point{X: 100, Y: 50})
	require.NoError(t, err)
	withText, err := s.Flatten()
	require.NoError(t, err)
	assert.NotEqual(t, plain.Pix, withText.Pix)
}

func TestSetToolCommitsOpenStroke(t *testing.T) {
	s, _ := loaded(t, 100, 100)
	s.Apply(PointerDown{PointerSample{X: 10, Y: 10}})
	s.Apply(PointerMove{PointerSample{X: 50, Y: 50}})
	d := s.SetTool(ToolSelectMove)
	assert.True(t, d.Committed)
	assert.True(t, d.Tool)
	assert.Equal(t, 2, s.HistoryLen())
	// the trailing up belongs to no gesture
	assert.False(t, s.Apply(PointerUp{PointerSample{X: 60, Y: 60}}).Committed)
}

func TestDecodeErrorMessage(t *testing.T) {
	err := &DecodeError{Source: "x.png", Err: errors.New("boom")}
	assert.Equal(t, "decode x.png: boom", err.Error())
}
