package editor

import (
	"fmt"
	"image/color"
	"math"
	"unicode/utf8"

	"github.com/jinzhu/copier"
)

const (
	DefaultTextContent = "Text"

	MinFontSize = 10
	MaxFontSize = 400

	MinTextRotation = -180
	MaxTextRotation = 180

	// hitPadding widens the approximate text box on every side.
	hitPadding = 20
	// glyphAdvance approximates the advance of one glyph as a fraction of
	// the font size.
	glyphAdvance = 0.6
)

// TextObject is a movable text annotation drawn above the pixel buffer until
// export. X and Y locate the centre of the text in buffer space.
type TextObject struct {
	ID       string
	Content  string
	X, Y     float64
	FontSize float64
	Rotation float64
	Color    color.RGBA
}

// Position returns the text centre.
func (t TextObject) Position() Point { return Point{X: t.X, Y: t.Y} }

// Bounds returns the padded approximate box used for hit testing, in buffer
// space. The text rotation is ignored.
func (t TextObject) Bounds() (min, max Point) {
	hw := glyphAdvance*t.FontSize*float64(utf8.RuneCountInString(t.Content))/2 + hitPadding
	hh := t.FontSize/2 + hitPadding
	return Point{X: t.X - hw, Y: t.Y - hh}, Point{X: t.X + hw, Y: t.Y + hh}
}

// contains reports whether p falls inside Bounds. Glyph accurate hit testing
// is not attempted.
func (t TextObject) contains(p Point) bool {
	lo, hi := t.Bounds()
	return p.X >= lo.X && p.X <= hi.X && p.Y >= lo.Y && p.Y <= hi.Y
}

type drag struct {
	id     string
	offset Point
	from   Point
}

// overlay is the ordered list of text objects. Later entries paint on top.
type overlay struct {
	texts    []TextObject
	selected string
	nextID   int
	drag     *drag
}

func (o *overlay) index(id string) int {
	for i := range o.texts {
		if o.texts[i].ID == id {
			return i
		}
	}
	return -1
}

func (o *overlay) get(id string) *TextObject {
	if i := o.index(id); i >= 0 {
		return &o.texts[i]
	}
	return nil
}

// hitTest walks from the most recently added object to the oldest, so the
// visually topmost object wins overlaps.
func (o *overlay) hitTest(p Point) (string, bool) {
	for i := len(o.texts) - 1; i >= 0; i-- {
		if o.texts[i].contains(p) {
			return o.texts[i].ID, true
		}
	}
	return "", false
}

func (o *overlay) place(p Point, col color.RGBA, radius int) TextObject {
	o.nextID++
	col.A = 255
	t := TextObject{
		ID:       fmt.Sprintf("t%d", o.nextID),
		Content:  DefaultTextContent,
		X:        p.X,
		Y:        p.Y,
		FontSize: math.Max(24, float64(clampRadius(radius)*3)),
		Color:    col,
	}
	o.texts = append(o.texts, t)
	o.selected = t.ID
	return t
}

func (o *overlay) beginDrag(id string, p Point) bool {
	t := o.get(id)
	if t == nil {
		return false
	}
	o.drag = &drag{id: id, offset: Point{X: p.X - t.X, Y: p.Y - t.Y}, from: t.Position()}
	return true
}

func (o *overlay) updateDrag(p Point) bool {
	if o.drag == nil {
		return false
	}
	t := o.get(o.drag.id)
	if t == nil {
		o.drag = nil
		return false
	}
	t.X = p.X - o.drag.offset.X
	t.Y = p.Y - o.drag.offset.Y
	return true
}

// endDrag finishes the drag and reports whether the object moved.
func (o *overlay) endDrag() bool {
	d := o.drag
	o.drag = nil
	if d == nil {
		return false
	}
	t := o.get(d.id)
	return t != nil && t.Position() != d.from
}

func (o *overlay) remove(id string) bool {
	i := o.index(id)
	if i < 0 {
		return false
	}
	o.texts = append(o.texts[:i], o.texts[i+1:]...)
	if o.selected == id {
		o.selected = ""
	}
	if o.drag != nil && o.drag.id == id {
		o.drag = nil
	}
	return true
}

// reset replaces the list wholesale, as undo and load do.
func (o *overlay) reset(texts []TextObject) {
	o.texts = copyTexts(texts)
	o.selected = ""
	o.drag = nil
}

// copyTexts deep copies a text list. Empty lists come back as nil.
func copyTexts(src []TextObject) []TextObject {
	if len(src) == 0 {
		return nil
	}
	out := make([]TextObject, 0, len(src))
	if err := copier.CopyWithOption(&out, src, copier.Option{DeepCopy: true}); err != nil || len(out) != len(src) {
		// TextObject holds only value fields, so an element copy is just as deep.
		out = append(out[:0], src...)
	}
	return out
}

func clampFontSize(size float64) float64 {
	if math.IsNaN(size) || size < MinFontSize {
		return MinFontSize
	}
	if size > MaxFontSize {
		return MaxFontSize
	}
	return size
}

func clampTextRotation(deg float64) float64 {
	if math.IsNaN(deg) {
		return 0
	}
	if deg < MinTextRotation {
		return MinTextRotation
	}
	if deg > MaxTextRotation {
		return MaxTextRotation
	}
	return deg
}
