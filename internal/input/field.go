package input

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/mobile/event/key"

	"github.com/example/panelpaint/internal/editor"
)

// ParseFontSize parses a font size typed by the user and clamps it to the
// range the editor accepts.
func ParseFontSize(s string) (float64, error) {
	v, err := parseNumber(s)
	if err != nil {
		return 0, fmt.Errorf("font size: %w", err)
	}
	return math.Min(math.Max(v, editor.MinFontSize), editor.MaxFontSize), nil
}

// ParseRotation parses a text rotation in degrees, clamped to -180..180. A
// trailing degree sign is accepted.
func ParseRotation(s string) (float64, error) {
	v, err := parseNumber(strings.TrimSuffix(strings.TrimSpace(s), "°"))
	if err != nil {
		return 0, fmt.Errorf("rotation: %w", err)
	}
	return math.Min(math.Max(v, editor.MinTextRotation), editor.MaxTextRotation), nil
}

// ParseRadius parses a brush radius, clamped to 1..100.
func ParseRadius(s string) (int, error) {
	v, err := parseNumber(s)
	if err != nil {
		return 0, fmt.Errorf("radius: %w", err)
	}
	r := int(math.Round(v))
	return min(max(r, editor.MinBrushRadius), editor.MaxBrushRadius), nil
}

func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty value")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a finite number", s)
	}
	return v, nil
}

// LineEdit collects typed characters for a single-line text field.
type LineEdit struct {
	text []rune
}

// NewLineEdit starts editing with initial content.
func NewLineEdit(initial string) *LineEdit {
	return &LineEdit{text: []rune(initial)}
}

// String returns the current content.
func (l *LineEdit) String() string { return string(l.text) }

// EditResult reports what a key press did to a LineEdit.
type EditResult int

const (
	EditIgnored EditResult = iota
	EditChanged
	EditDone
	EditCancelled
)

// Key applies a key press. Enter finishes and Escape cancels.
func (l *LineEdit) Key(e key.Event) EditResult {
	if e.Direction == key.DirRelease {
		return EditIgnored
	}
	switch e.Code {
	case key.CodeReturnEnter:
		return EditDone
	case key.CodeEscape:
		return EditCancelled
	case key.CodeDeleteBackspace:
		if len(l.text) == 0 {
			return EditIgnored
		}
		l.text = l.text[:len(l.text)-1]
		return EditChanged
	}
	if e.Rune > 0 && e.Modifiers&(key.ModControl|key.ModMeta) == 0 {
		l.text = append(l.text, e.Rune)
		return EditChanged
	}
	return EditIgnored
}
