package editor

import (
	"fmt"
	"strings"
)

// Tool selects which component interprets pointer input.
type Tool int

const (
	ToolPaint Tool = iota
	ToolErase
	ToolPlaceText
	ToolSelectMove
	ToolSampleColor
)

var toolNames = [...]string{
	ToolPaint:       "paint",
	ToolErase:       "erase",
	ToolPlaceText:   "text",
	ToolSelectMove:  "select",
	ToolSampleColor: "sample",
}

func (t Tool) String() string {
	if t >= 0 && int(t) < len(toolNames) {
		return toolNames[t]
	}
	return fmt.Sprintf("Tool(%d)", int(t))
}

// Tools lists every tool in toolbar order.
func Tools() []Tool {
	return []Tool{ToolPaint, ToolErase, ToolPlaceText, ToolSelectMove, ToolSampleColor}
}

// ParseTool maps a tool name, or a common alias, onto a Tool.
func ParseTool(s string) (Tool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "paint", "brush", "draw":
		return ToolPaint, nil
	case "erase", "eraser":
		return ToolErase, nil
	case "text", "place-text":
		return ToolPlaceText, nil
	case "select", "move", "select-move":
		return ToolSelectMove, nil
	case "sample", "eyedropper", "pick":
		return ToolSampleColor, nil
	}
	return 0, fmt.Errorf("unknown tool %q", s)
}

// Event is a normalised pointer event. The set is closed: PointerDown,
// PointerMove and PointerUp.
type Event interface {
	Sample() PointerSample
	isEvent()
}

type PointerDown struct{ PointerSample }
type PointerMove struct{ PointerSample }
type PointerUp struct{ PointerSample }

func (e PointerDown) Sample() PointerSample { return e.PointerSample }
func (e PointerMove) Sample() PointerSample { return e.PointerSample }
func (e PointerUp) Sample() PointerSample { return e.PointerSample }

func (PointerDown) isEvent() {}
func (PointerMove) isEvent() {}
func (PointerUp) isEvent() {}

// Delta describes what an operation changed so the host can decide what to
// redraw.
type Delta struct {
	Buffer    bool
	Overlay   bool
	Tool      bool
	Committed bool
}

// Redraw reports whether anything visible changed.
func (d Delta) Redraw() bool { return d.Buffer || d.Overlay || d.Tool }

func (d Delta) merge(o Delta) Delta {
	return Delta{
		Buffer:    d.Buffer || o.Buffer,
		Overlay:   d.Overlay || o.Overlay,
		Tool:      d.Tool || o.Tool,
		Committed: d.Committed || o.Committed,
	}
}

// Apply routes one pointer event to exactly one of the stroke renderer, the
// text overlay or the colour sampler, chosen by the active tool. Events are
// ignored while a load is pending or before any surface exists.
func (s *Session) Apply(ev Event) Delta {
	if ev == nil || s.finished || s.surf.img == nil || s.surf.pending {
		return Delta{}
	}
	p := s.view.ToBuffer(ev.Sample())
	switch ev.(type) {
	case PointerDown:
		return s.pointerDown(p)
	case PointerMove:
		return s.pointerMove(p)
	case PointerUp:
		return s.pointerUp(p)
	}
	return Delta{}
}

func (s *Session) pointerDown(p Point) Delta {
	// A down without a matching up closes the previous gesture first.
	d := s.finishGesture()
	switch s.tool {
	case ToolPaint, ToolErase:
		col := s.color
		if s.tool == ToolErase {
			col = s.surf.background
		}
		s.stroke = beginStroke(s.surf.img, p, col, s.radius)
		d.Buffer = true
	case ToolPlaceText:
		s.placeText(p)
		d = d.merge(Delta{Overlay: true, Tool: true, Committed: true})
	case ToolSelectMove:
		if id, ok := s.texts.hitTest(p); ok {
			d.Overlay = d.Overlay || s.texts.selected != id
			s.texts.selected = id
			s.texts.beginDrag(id, p)
		} else if s.texts.selected != "" {
			s.texts.selected = ""
			d.Overlay = true
		}
	case ToolSampleColor:
		if c, ok := sampleAt(s.surf.img, p); ok {
			s.color = c
		}
		s.tool = ToolPaint
		d.Tool = true
	}
	return d
}

func (s *Session) pointerMove(p Point) Delta {
	switch {
	case s.stroke != nil:
		s.stroke.lineTo(p)
		return Delta{Buffer: true}
	case s.texts.drag != nil:
		return Delta{Overlay: s.texts.updateDrag(p)}
	}
	return Delta{}
}

func (s *Session) pointerUp(p Point) Delta {
	if s.stroke != nil {
		s.stroke.lineTo(p)
	} else if s.texts.drag != nil {
		s.texts.updateDrag(p)
	}
	return s.finishGesture()
}

// finishGesture commits an in-progress stroke or drag.
func (s *Session) finishGesture() Delta {
	switch {
	case s.stroke != nil:
		s.stroke = nil
		s.commit()
		return Delta{Buffer: true, Committed: true}
	case s.texts.drag != nil:
		if s.texts.endDrag() {
			s.commit()
			return Delta{Overlay: true, Committed: true}
		}
	}
	return Delta{}
}
