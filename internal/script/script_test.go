package script

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/panelpaint/internal/editor"
)

func writePNG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	path := filepath.Join(t.TempDir(), "in.png")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func newInterpreter(opts ...editor.Option) (*Interpreter, *editor.Session, *bytes.Buffer) {
	opts = append(opts, editor.WithLogger(log.New(io.Discard, "", 0)))
	sess := editor.New(opts...)
	var out bytes.Buffer
	return New(sess, &out), sess, &out
}

func TestRunEditsAndSaves(t *testing.T) {
	path := writePNG(t, 40, 30)
	var saved []byte
	in, sess, out := newInterpreter(editor.WithOnSave(func(b []byte) { saved = b }))
	script := strings.Join([]string{
		"# comment",
		"load " + path,
		"color black",
		"radius 3",
		"stroke 5 5 20 5 20 20",
		"text 20 15 Hello there",
		"info",
		"save",
		"undo",
	}, "\n")
	require.NoError(t, in.Run(context.Background(), strings.NewReader(script)))
	assert.True(t, sess.Finished())
	assert.NotEmpty(t, saved)
	assert.Contains(t, out.String(), "loaded "+path+" (40x30)")
	assert.Contains(t, out.String(), "size 40x30 rotation 0")
	assert.Contains(t, out.String(), `"Hello there"`)
}

func TestStrokeThenUndo(t *testing.T) {
	in, sess, _ := newInterpreter()
	ctx := context.Background()
	_, err := in.Exec(ctx, "load "+writePNG(t, 20, 20))
	require.NoError(t, err)
	_, err = in.Exec(ctx, "color #000000")
	require.NoError(t, err)
	_, err = in.Exec(ctx, "stroke 2 10 18 10")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, sess.Buffer().RGBAAt(10, 10))
	assert.True(t, sess.CanUndo())

	_, err = in.Exec(ctx, "undo")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, sess.Buffer().RGBAAt(10, 10))
}

func TestSelectAndEditText(t *testing.T) {
	in, sess, out := newInterpreter()
	ctx := context.Background()
	for _, line := range []string{
		"load " + writePNG(t, 200, 200),
		"text 100 100 Hi",
		"select 100 100",
		"size 48",
		"angle 30",
		"content Bye",
		"commit",
	} {
		_, err := in.Exec(ctx, line)
		require.NoError(t, err, line)
	}
	texts := sess.Texts()
	require.Len(t, texts, 1)
	assert.Equal(t, "Bye", texts[0].Content)
	assert.Equal(t, 48.0, texts[0].FontSize)
	assert.Equal(t, 30.0, texts[0].Rotation)
	assert.Contains(t, out.String(), "selected t1")

	_, err := in.Exec(ctx, "delete")
	require.NoError(t, err)
	assert.Empty(t, sess.Texts())

	_, err = in.Exec(ctx, "size 20")
	assert.ErrorIs(t, err, ErrNoSelection)
}

func TestSampleSetsColor(t *testing.T) {
	in, sess, out := newInterpreter()
	ctx := context.Background()
	_, err := in.Exec(ctx, "load "+writePNG(t, 10, 10))
	require.NoError(t, err)
	_, err = in.Exec(ctx, "sample 3 3")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, sess.Color())
	assert.Contains(t, out.String(), "color #FFFFFF")

	_, err = in.Exec(ctx, "sample 50 50")
	assert.Error(t, err)
}

func TestCommandsBeforeLoad(t *testing.T) {
	in, _, out := newInterpreter()
	ctx := context.Background()
	_, err := in.Exec(ctx, "down 1 1")
	assert.ErrorIs(t, err, editor.ErrNotReady)
	_, err = in.Exec(ctx, "rotate 90")
	assert.ErrorIs(t, err, editor.ErrNotReady)
	_, err = in.Exec(ctx, "info")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "no image loaded")
}

func TestErrors(t *testing.T) {
	in, _, _ := newInterpreter()
	ctx := context.Background()
	_, err := in.Exec(ctx, "paint 1 2")
	assert.EqualError(t, err, `unknown command "paint"`)
	_, err = in.Exec(ctx, "tool lasso")
	assert.Error(t, err)
	_, err = in.Exec(ctx, "load")
	assert.EqualError(t, err, "load: usage: load PATH [ROTATION]")

	err = in.Run(ctx, strings.NewReader("info\n\nzoom big\n"))
	assert.EqualError(t, err, `line 3: zoom: invalid number "big"`)
}

func TestCloseFinishes(t *testing.T) {
	closed := 0
	in, sess, _ := newInterpreter(editor.WithOnClose(func() { closed++ }))
	done, err := in.Exec(context.Background(), "close")
	require.NoError(t, err)
	assert.True(t, done)
	assert.True(t, sess.Finished())
	assert.Equal(t, 1, closed)
}

func TestOpenSource(t *testing.T) {
	assert.IsType(t, editor.DataURISource(""), OpenSource("data:image/png;base64,AAAA"))
	assert.Equal(t, editor.FileSource("a.png"), OpenSource("a.png"))
	assert.Contains(t, Usage(), "stroke X0 Y0 X1 Y1 ...")
}
