package input

import (
	"unicode"

	"golang.org/x/mobile/event/key"
)

// Action is an editor command bound to a key.
type Action int

const (
	ActionNone Action = iota
	ActionToolPaint
	ActionToolErase
	ActionToolText
	ActionToolSelect
	ActionToolSample
	ActionUndo
	ActionRedo
	ActionSave
	ActionCopy
	ActionClose
	ActionZoomIn
	ActionZoomOut
	ActionZoomFit
	ActionRotateCW
	ActionRotateCCW
	ActionRadiusUp
	ActionRadiusDown
	ActionDeleteText
	ActionEditText
	ActionPanLeft
	ActionPanRight
	ActionPanUp
	ActionPanDown
)

var actionNames = map[Action]string{
	ActionToolPaint:  "paint",
	ActionToolErase:  "erase",
	ActionToolText:   "text",
	ActionToolSelect: "select",
	ActionToolSample: "sample",
	ActionUndo:       "undo",
	ActionRedo:       "redo",
	ActionSave:       "save",
	ActionCopy:       "copy",
	ActionClose:      "close",
	ActionZoomIn:     "zoom in",
	ActionZoomOut:    "zoom out",
	ActionZoomFit:    "fit",
	ActionRotateCW:   "rotate",
	ActionRotateCCW:  "rotate back",
	ActionRadiusUp:   "bigger brush",
	ActionRadiusDown: "smaller brush",
	ActionDeleteText: "delete text",
	ActionEditText:   "edit text",
	ActionPanLeft:    "pan left",
	ActionPanRight:   "pan right",
	ActionPanUp:      "pan up",
	ActionPanDown:    "pan down",
}

func (a Action) String() string {
	if n, ok := actionNames[a]; ok {
		return n
	}
	return "none"
}

// Shortcut describes a keyboard combination. Rune is compared lower-cased;
// Code is used for keys without a rune.
type Shortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

// Keymap binds shortcuts to actions.
type Keymap map[Shortcut]Action

// DefaultKeymap returns the standard bindings.
func DefaultKeymap() Keymap {
	ctrl := key.ModControl
	k := Keymap{}
	k.Bind(ActionToolPaint, Shortcut{Rune: 'b'})
	k.Bind(ActionToolErase, Shortcut{Rune: 'e'})
	k.Bind(ActionToolText, Shortcut{Rune: 't'})
	k.Bind(ActionToolSelect, Shortcut{Rune: 'm'})
	k.Bind(ActionToolSample, Shortcut{Rune: 'i'})
	k.Bind(ActionUndo, Shortcut{Rune: 'z', Modifiers: ctrl})
	k.Bind(ActionRedo, Shortcut{Rune: 'y', Modifiers: ctrl}, Shortcut{Rune: 'z', Modifiers: ctrl | key.ModShift})
	k.Bind(ActionSave, Shortcut{Rune: 's', Modifiers: ctrl})
	k.Bind(ActionCopy, Shortcut{Rune: 'c', Modifiers: ctrl})
	k.Bind(ActionClose, Shortcut{Rune: 'q'}, Shortcut{Code: key.CodeEscape})
	k.Bind(ActionZoomIn, Shortcut{Rune: '+'}, Shortcut{Rune: '='})
	k.Bind(ActionZoomOut, Shortcut{Rune: '-'})
	k.Bind(ActionZoomFit, Shortcut{Rune: '0'})
	k.Bind(ActionRotateCW, Shortcut{Rune: 'r'})
	k.Bind(ActionRotateCCW, Shortcut{Rune: 'r', Modifiers: key.ModShift})
	k.Bind(ActionRadiusUp, Shortcut{Rune: ']'})
	k.Bind(ActionRadiusDown, Shortcut{Rune: '['})
	k.Bind(ActionDeleteText, Shortcut{Code: key.CodeDeleteForward}, Shortcut{Code: key.CodeDeleteBackspace})
	k.Bind(ActionEditText, Shortcut{Code: key.CodeReturnEnter})
	k.Bind(ActionPanLeft, Shortcut{Code: key.CodeLeftArrow})
	k.Bind(ActionPanRight, Shortcut{Code: key.CodeRightArrow})
	k.Bind(ActionPanUp, Shortcut{Code: key.CodeUpArrow})
	k.Bind(ActionPanDown, Shortcut{Code: key.CodeDownArrow})
	return k
}

// Bind maps every shortcut in keys to a.
func (k Keymap) Bind(a Action, keys ...Shortcut) {
	for _, sc := range keys {
		k[sc] = a
	}
}

// Shortcuts lists the bindings of a in no particular order.
func (k Keymap) Shortcuts(a Action) []Shortcut {
	var out []Shortcut
	for sc, bound := range k {
		if bound == a {
			out = append(out, sc)
		}
	}
	return out
}

// Lookup returns the action bound to a key press.
func (k Keymap) Lookup(e key.Event) Action {
	if e.Direction != key.DirPress && e.Direction != key.DirNone {
		return ActionNone
	}
	mods := e.Modifiers & (key.ModControl | key.ModShift | key.ModAlt | key.ModMeta)
	if e.Rune > 0 {
		r := unicode.ToLower(e.Rune)
		if a, ok := k[Shortcut{Rune: r, Modifiers: mods}]; ok {
			return a
		}
		// shifted punctuation such as '+' already carries the shift
		if a, ok := k[Shortcut{Rune: r, Modifiers: mods &^ key.ModShift}]; ok && !unicode.IsLetter(r) {
			return a
		}
		if unicode.IsPrint(r) && mods&^key.ModShift == 0 {
			return ActionNone
		}
	}
	return k[Shortcut{Code: e.Code, Modifiers: mods}]
}
