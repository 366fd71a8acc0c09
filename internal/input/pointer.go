// Package input turns window-system events into editor events and parses
// values typed into property fields.
package input

import (
	"golang.org/x/mobile/event/mouse"

	"github.com/example/panelpaint/internal/editor"
)

// ZoomStep is the factor applied per wheel notch or zoom key press.
const ZoomStep = 1.25

// Pointer tracks the primary button so motion is only forwarded while a
// gesture is in progress.
type Pointer struct {
	pressed bool
	// Offset is subtracted from every sample, for hosts that draw the canvas
	// inside a larger window.
	Offset editor.PointerSample
}

// Pressed reports whether a gesture is in progress.
func (p *Pointer) Pressed() bool { return p.pressed }

// Translate converts a mouse event into an editor event. ok is false for
// events that do not belong to a left-button gesture.
func (p *Pointer) Translate(e mouse.Event) (ev editor.Event, ok bool) {
	s := editor.PointerSample{X: float64(e.X) - p.Offset.X, Y: float64(e.Y) - p.Offset.Y}
	switch e.Direction {
	case mouse.DirPress:
		if e.Button != mouse.ButtonLeft {
			return nil, false
		}
		p.pressed = true
		return editor.PointerDown{PointerSample: s}, true
	case mouse.DirNone:
		if !p.pressed {
			return nil, false
		}
		return editor.PointerMove{PointerSample: s}, true
	case mouse.DirRelease:
		if e.Button != mouse.ButtonLeft || !p.pressed {
			return nil, false
		}
		p.pressed = false
		return editor.PointerUp{PointerSample: s}, true
	}
	return nil, false
}

// Cancel forgets an in-progress gesture, for example when the pointer leaves
// the canvas and the host ends the gesture itself.
func (p *Pointer) Cancel() { p.pressed = false }

// Wheel returns the zoom factor for a wheel event.
func Wheel(e mouse.Event) (float64, bool) {
	if e.Direction != mouse.DirStep {
		return 0, false
	}
	switch e.Button {
	case mouse.ButtonWheelUp:
		return ZoomStep, true
	case mouse.ButtonWheelDown:
		return 1 / ZoomStep, true
	}
	return 0, false
}
