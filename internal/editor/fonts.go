package editor

import (
	"fmt"
	"math"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	fontOnce  sync.Once
	textFont  *truetype.Font
	fontErr   error
	textFaces sync.Map // map[float64]font.Face
)

func loadFont() {
	textFont, fontErr = truetype.Parse(goregular.TTF)
	if fontErr != nil {
		fontErr = fmt.Errorf("parse font: %w", fontErr)
	}
}

// faceForSize returns a cached face for size points at 72 DPI, so one point is
// one buffer pixel.
func faceForSize(size float64) (font.Face, error) {
	fontOnce.Do(loadFont)
	if fontErr != nil {
		return nil, fontErr
	}
	size = math.Round(size*4) / 4
	if size <= 0 {
		size = MinFontSize
	}
	if face, ok := textFaces.Load(size); ok {
		return face.(font.Face), nil
	}
	face := truetype.NewFace(textFont, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingNone})
	actual, _ := textFaces.LoadOrStore(size, face)
	return actual.(font.Face), nil
}
