// Package notify announces finished edits through desktop notifications.
package notify

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/example/panelpaint/internal/platform"
)

// Event identifies how an editing session ended, or what left it.
type Event string

const (
	// EventSave fires when an edited image is written to disk.
	EventSave Event = "save"
	// EventCopy fires when an edited image is placed on the clipboard.
	EventCopy Event = "copy"
	// EventDiscard fires when a session is closed without saving.
	EventDiscard Event = "discard"
)

var categories = map[Event]string{
	EventSave:    "transfer.complete",
	EventCopy:    "transfer.complete",
	EventDiscard: "transfer",
}

// Events lists every event in a stable order.
func Events() []Event {
	return []Event{EventSave, EventCopy, EventDiscard}
}

// Preferences holds the message templates. A template may use {name} for the
// base name of the file involved and {path} for the full detail.
type Preferences struct {
	Title     string
	Timeout   time.Duration
	Templates map[Event]string
}

// DefaultPreferences returns the built-in messages.
func DefaultPreferences() Preferences {
	return Preferences{
		Title:   "panelpaint",
		Timeout: 5 * time.Second,
		Templates: map[Event]string{
			EventSave:    "Saved {name}",
			EventCopy:    "Copied {name} to the clipboard",
			EventDiscard: "Closed {name} without saving",
		},
	}
}

// LoadPreferences applies PANELPAINT_NOTIFY_TITLE and
// PANELPAINT_NOTIFY_<EVENT>_TEXT overrides to the defaults.
func LoadPreferences() Preferences {
	prefs := DefaultPreferences()
	if v := strings.TrimSpace(os.Getenv("PANELPAINT_NOTIFY_TITLE")); v != "" {
		prefs.Title = v
	}
	for _, ev := range Events() {
		key := "PANELPAINT_NOTIFY_" + strings.ToUpper(string(ev)) + "_TEXT"
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			prefs.Templates[ev] = v
		}
	}
	return prefs
}

// Notifier sends the enabled events to the desktop.
type Notifier struct {
	prefs   Preferences
	enabled map[Event]bool
	send    func(platform.Notification) error
}

// New returns a notifier with every event disabled.
func New(prefs Preferences) *Notifier {
	templates := make(map[Event]string, len(prefs.Templates))
	for k, v := range prefs.Templates {
		templates[k] = v
	}
	prefs.Templates = templates
	return &Notifier{prefs: prefs, enabled: map[Event]bool{}, send: platform.Notify}
}

func (n *Notifier) Enable(event Event, enabled bool) {
	if n == nil {
		return
	}
	n.enabled[event] = enabled
}

// Save announces a written file. The file doubles as the notification icon.
func (n *Notifier) Save(path string) {
	icon := ""
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
		if _, err := os.Stat(abs); err == nil {
			icon = abs
		}
	}
	n.dispatch(EventSave, path, icon)
}

// Copy announces a clipboard copy of detail, usually a file name.
func (n *Notifier) Copy(detail string) {
	n.dispatch(EventCopy, detail, "")
}

// Discard announces that the edits to source were abandoned.
func (n *Notifier) Discard(source string) {
	n.dispatch(EventDiscard, source, "")
}

// Message renders the body for event, or "" when the event has no template.
func (n *Notifier) Message(event Event, detail string) string {
	tmpl := strings.TrimSpace(n.prefs.Templates[event])
	if tmpl == "" {
		return ""
	}
	detail = strings.TrimSpace(detail)
	name := filepath.Base(detail)
	if detail == "" {
		detail, name = "image", "image"
	}
	r := strings.NewReplacer("{name}", name, "{path}", detail)
	return strings.TrimSpace(r.Replace(tmpl))
}

func (n *Notifier) dispatch(event Event, detail, icon string) {
	if n == nil || !n.enabled[event] || n.send == nil {
		return
	}
	body := n.Message(event, detail)
	if body == "" {
		return
	}
	err := n.send(platform.Notification{
		AppName:  n.prefs.Title,
		Title:    n.prefs.Title,
		Body:     body,
		IconPath: icon,
		Category: categories[event],
		Timeout:  n.prefs.Timeout,
	})
	if err != nil {
		log.Printf("notify %s: %v", event, err)
	}
}
