package editor

import "image/color"

// Texts returns a copy of the overlay list in paint order.
func (s *Session) Texts() []TextObject { return copyTexts(s.texts.texts) }

// Text returns the object with the given id.
func (s *Session) Text(id string) (TextObject, bool) {
	if t := s.texts.get(id); t != nil {
		return *t, true
	}
	return TextObject{}, false
}

// Selected returns the id of the selected text, if any.
func (s *Session) Selected() (string, bool) {
	return s.texts.selected, s.texts.selected != ""
}

// Select marks id as the selected text.
func (s *Session) Select(id string) error {
	if s.texts.get(id) == nil {
		return ErrUnknownText
	}
	s.texts.selected = id
	return nil
}

// ClearSelection drops the selection.
func (s *Session) ClearSelection() { s.texts.selected = "" }

// HitTest returns the topmost text whose padded box contains p. A miss is not
// an error.
func (s *Session) HitTest(p Point) (string, bool) { return s.texts.hitTest(p) }

// PlaceText adds a default text object centred on p, selects it and switches
// to ToolSelectMove.
func (s *Session) PlaceText(p Point) (TextObject, error) {
	if err := s.mutable(); err != nil {
		return TextObject{}, err
	}
	s.finishGesture()
	return s.placeText(p), nil
}

func (s *Session) placeText(p Point) TextObject {
	t := s.texts.place(p, s.color, s.radius)
	s.tool = ToolSelectMove
	s.commit()
	return t
}

// BeginDrag starts moving id from the buffer position p.
func (s *Session) BeginDrag(id string, p Point) error {
	if err := s.mutable(); err != nil {
		return err
	}
	s.finishGesture()
	if !s.texts.beginDrag(id, p) {
		return ErrUnknownText
	}
	s.texts.selected = id
	return nil
}

// UpdateDrag moves the dragged text so it keeps its offset from p.
func (s *Session) UpdateDrag(p Point) bool { return s.texts.updateDrag(p) }

// EndDrag finishes a drag, committing when the text moved.
func (s *Session) EndDrag() Delta { return s.finishGesture() }

// SetContent replaces the content of id. The edit is live until
// CommitProperties.
func (s *Session) SetContent(id, content string) error {
	return s.editText(id, func(t *TextObject) { t.Content = content })
}

// SetFontSize changes the size of id, clamped to MinFontSize..MaxFontSize.
func (s *Session) SetFontSize(id string, size float64) error {
	return s.editText(id, func(t *TextObject) { t.FontSize = clampFontSize(size) })
}

// SetTextRotation changes the rotation of id in degrees, clamped to
// -180..180.
func (s *Session) SetTextRotation(id string, deg float64) error {
	return s.editText(id, func(t *TextObject) { t.Rotation = clampTextRotation(deg) })
}

// SetTextColor changes the colour of id.
func (s *Session) SetTextColor(id string, c color.RGBA) error {
	c.A = 255
	return s.editText(id, func(t *TextObject) { t.Color = c })
}

func (s *Session) editText(id string, fn func(*TextObject)) error {
	if err := s.mutable(); err != nil {
		return err
	}
	t := s.texts.get(id)
	if t == nil {
		return ErrUnknownText
	}
	fn(t)
	return nil
}

// CommitProperties records live property edits as one history entry. It
// reports whether an entry was recorded; nothing is recorded when the texts
// match the current entry.
func (s *Session) CommitProperties() (bool, error) {
	if err := s.mutable(); err != nil {
		return false, err
	}
	if !s.dirty() {
		return false, nil
	}
	s.commit()
	return true, nil
}

// Delete removes id and commits.
func (s *Session) Delete(id string) error {
	if err := s.mutable(); err != nil {
		return err
	}
	s.finishGesture()
	if !s.texts.remove(id) {
		return ErrUnknownText
	}
	s.commit()
	return nil
}

func (s *Session) mutable() error {
	if s.finished {
		return ErrFinished
	}
	if s.surf.img == nil {
		return ErrNotReady
	}
	return nil
}
