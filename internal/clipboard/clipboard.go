// Package clipboard moves edited images and image references between the
// editor and the desktop clipboard.
package clipboard

import (
	"bytes"
	"errors"
	"image"
	"image/png"
)

var (
	errNoDisplay = errors.New("clipboard initialization requires DISPLAY or WAYLAND_DISPLAY")
	// ErrNoImage is returned when the clipboard holds no image data.
	ErrNoImage = errors.New("clipboard does not contain image data")
	// ErrNoText is returned when the clipboard holds no text.
	ErrNoText = errors.New("clipboard does not contain text data")
)

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
