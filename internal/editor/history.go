package editor

import (
	"image"
)

// DefaultHistorySize is the number of entries kept when no capacity is
// configured.
const DefaultHistorySize = 20

// frame is an immutable copy of the buffer's pixels.
type frame struct {
	rect image.Rectangle
	pix  []byte
}

func captureFrame(img *image.RGBA) frame {
	pix := make([]byte, len(img.Pix))
	copy(pix, img.Pix)
	return frame{rect: img.Bounds(), pix: pix}
}

// image returns a fresh buffer holding the frame. The frame itself is never
// handed out, so entries stay immutable.
func (f frame) image() *image.RGBA {
	img := image.NewRGBA(f.rect)
	copy(img.Pix, f.pix)
	return img
}

// entry is one atomic snapshot. Buffer, text list, rotation and the source
// the surface was built from are always restored together.
type entry struct {
	frame    frame
	texts    []TextObject
	rotation int
	source   Source
}

// history is a bounded linear undo stack with a current index.
type history struct {
	entries  []entry
	index    int
	capacity int
}

func newHistory(capacity int) *history {
	if capacity < 1 {
		capacity = DefaultHistorySize
	}
	return &history{index: -1, capacity: capacity}
}

// push drops any redo branch beyond the current index, appends e, evicts the
// oldest entries past capacity and moves the index to the new top.
func (h *history) push(e entry) {
	h.entries = append(h.entries[:h.index+1], e)
	if over := len(h.entries) - h.capacity; over > 0 {
		for i := 0; i < over; i++ {
			h.entries[i] = entry{}
		}
		h.entries = append(h.entries[:0:0], h.entries[over:]...)
	}
	h.index = len(h.entries) - 1
}

func (h *history) current() (entry, bool) {
	if h.index < 0 || h.index >= len(h.entries) {
		return entry{}, false
	}
	return h.entries[h.index], true
}

func (h *history) canUndo() bool { return h.index > 0 }

func (h *history) canRedo() bool { return h.index >= 0 && h.index < len(h.entries)-1 }

func (h *history) undo() (entry, bool) {
	if !h.canUndo() {
		return entry{}, false
	}
	h.index--
	return h.entries[h.index], true
}

func (h *history) redo() (entry, bool) {
	if !h.canRedo() {
		return entry{}, false
	}
	h.index++
	return h.entries[h.index], true
}

func (h *history) len() int { return len(h.entries) }
