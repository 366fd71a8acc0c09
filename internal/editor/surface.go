package editor

import (
	"context"
	"image"
	"image/color"
	"image/draw"

	"github.com/anthonynsimon/bild/transform"
)

// surface owns the working pixel buffer and remembers the source it was built
// from so a rotation change can rebuild it.
type surface struct {
	img        *image.RGBA
	background color.RGBA
	source     Source
	rotation   int

	// latest is the id of the newest load request. Results carrying any other
	// id are stale.
	latest  uint64
	request context.Context
	pending bool
	cancel  context.CancelFunc
}

// LoadResult is the completion of a BeginLoad request. Hosts receive it from
// Session.LoadResults and hand it back to Session.ApplyLoad on the thread that
// owns the session.
type LoadResult struct {
	ID       uint64
	Rotation int
	Err      error

	src Source
	img *image.RGBA
}

// normalizeRotation folds deg onto 0, 90, 180 or 270, snapping to the nearest
// quarter turn.
func normalizeRotation(deg int) int {
	q := deg / 90
	if r := deg % 90; r >= 45 {
		q++
	} else if r <= -45 {
		q--
	}
	q %= 4
	if q < 0 {
		q += 4
	}
	return q * 90
}

// surfaceSize returns the buffer size for a source of size src drawn at
// rotation degrees.
func surfaceSize(src image.Point, rotation int) image.Point {
	if rotation%180 != 0 {
		return image.Pt(src.Y, src.X)
	}
	return src
}

// renderSurface builds a fresh opaque buffer holding img rotated clockwise by
// rotation degrees and centred over the background colour.
func renderSurface(img image.Image, rotation int, background color.RGBA) *image.RGBA {
	background.A = 255
	size := surfaceSize(img.Bounds().Size(), rotation)
	dst := image.NewRGBA(image.Rect(0, 0, size.X, size.Y))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	var rotated image.Image = img
	if rotation != 0 {
		rotated = transform.Rotate(img, float64(rotation), &transform.RotationOptions{ResizeBounds: true})
	}
	rb := rotated.Bounds()
	off := image.Pt((size.X-rb.Dx())/2, (size.Y-rb.Dy())/2)
	draw.Draw(dst, rb.Sub(rb.Min).Add(off), rotated, rb.Min, draw.Over)
	return dst
}

// decodeAndRender is the part of a load that runs off the event loop. It
// touches no session state.
func decodeAndRender(ctx context.Context, src Source, rotation int, background color.RGBA) (*image.RGBA, error) {
	img, err := decodeSource(ctx, src)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return renderSurface(img, rotation, background), nil
}

func cloneRGBA(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}
