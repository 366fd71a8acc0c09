package editor

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"math"
	"strings"

	"github.com/fogleman/gg"
)

// Format selects the encoding handed to the host.
type Format string

const (
	FormatJPEG Format = "jpeg"
	FormatPNG  Format = "png"

	// DefaultQuality is used when no export quality is configured.
	DefaultQuality = 0.92
)

// ParseFormat maps a user supplied name onto a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "jpeg", "jpg":
		return FormatJPEG, nil
	case "png":
		return FormatPNG, nil
	}
	return "", fmt.Errorf("unsupported format %q", s)
}

// ExportOptions controls Session.Save.
type ExportOptions struct {
	Format Format
	// Quality is the lossy quality factor in (0, 1]. PNG ignores it.
	Quality float64
}

// DefaultExportOptions returns JPEG at DefaultQuality.
func DefaultExportOptions() ExportOptions {
	return ExportOptions{Format: FormatJPEG, Quality: DefaultQuality}
}

// flatten composites the texts over a copy of buffer. Neither argument is
// modified.
func flatten(buffer *image.RGBA, texts []TextObject) (*image.RGBA, error) {
	out := cloneRGBA(buffer)
	if len(texts) == 0 {
		return out, nil
	}
	dc := gg.NewContextForRGBA(out)
	for _, t := range texts {
		face, err := faceForSize(t.FontSize)
		if err != nil {
			return nil, err
		}
		dc.Push()
		dc.Translate(t.X, t.Y)
		dc.Rotate(gg.Radians(t.Rotation))
		dc.SetFontFace(face)
		dc.SetColor(t.Color)
		dc.DrawStringAnchored(t.Content, 0, 0, 0.5, 0.5)
		dc.Pop()
	}
	return out, nil
}

// encodeImage serialises img. Any failure is an *EncodeError and no bytes are
// returned with it.
func encodeImage(img image.Image, opts ExportOptions) ([]byte, error) {
	if opts.Format == "" {
		opts.Format = FormatJPEG
	}
	if img == nil || img.Bounds().Empty() {
		return nil, &EncodeError{Format: opts.Format, Err: errors.New("empty image")}
	}
	var buf bytes.Buffer
	switch opts.Format {
	case FormatJPEG:
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality(opts.Quality)}); err != nil {
			return nil, &EncodeError{Format: opts.Format, Err: err}
		}
	case FormatPNG:
		if err := png.Encode(&buf, img); err != nil {
			return nil, &EncodeError{Format: opts.Format, Err: err}
		}
	default:
		return nil, &EncodeError{Format: opts.Format, Err: errors.New("unsupported format")}
	}
	return buf.Bytes(), nil
}

// jpegQuality maps a quality factor in (0, 1] onto the 1..100 JPEG scale.
func jpegQuality(q float64) int {
	if q <= 0 || math.IsNaN(q) {
		q = DefaultQuality
	}
	v := int(math.Round(q * 100))
	if v < 1 {
		return 1
	}
	if v > 100 {
		return 100
	}
	return v
}
