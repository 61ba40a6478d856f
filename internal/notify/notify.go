package notify

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/example/spotdiff/internal/game"
	"github.com/example/spotdiff/internal/platform"
)

// Event identifies a notification trigger.
type Event string

const (
	// EventComplete fires when every difference has been found.
	EventComplete Event = "complete"
	// EventFailed fires when the mistake budget runs out.
	EventFailed Event = "failed"
	// EventPrank fires on the easter-egg prank.
	EventPrank Event = "prank"
	// EventMessage forwards in-game messages such as hints.
	EventMessage Event = "message"
	// EventSave fires when a board is written to disk.
	EventSave Event = "save"
	// EventCopy fires when a board is copied to the clipboard.
	EventCopy Event = "copy"
)

// Events lists every event in a stable order.
func Events() []Event {
	return []Event{EventComplete, EventFailed, EventPrank, EventMessage, EventSave, EventCopy}
}

// EventPreference describes formatting for a notification event.
type EventPreference struct {
	Template string
}

// Preferences describes notification behaviour loaded from configuration.
type Preferences struct {
	Title  string
	Events map[Event]EventPreference
}

// DefaultPreferences returns the default notification settings.
func DefaultPreferences() Preferences {
	return Preferences{
		Title: platform.DefaultAppName,
		Events: map[Event]EventPreference{
			EventComplete: {Template: "All %s differences found!"},
			EventFailed:   {Template: "Game over after %s mistakes"},
			EventPrank:    {Template: "Hey! Eyes on the picture!"},
			EventMessage:  {Template: "%s"},
			EventSave:     {Template: "Saved %s"},
			EventCopy:     {Template: "Copied %s to clipboard"},
		},
	}
}

// LoadPreferences applies SPOTDIFF_NOTIFY_* environment overrides to prefs.
func LoadPreferences(prefs Preferences) Preferences {
	out := prefs.clone()
	if v := strings.TrimSpace(os.Getenv("SPOTDIFF_NOTIFY_TITLE")); v != "" {
		out.Title = v
	}
	for _, ev := range Events() {
		key := "SPOTDIFF_NOTIFY_" + strings.ToUpper(string(ev)) + "_TEXT"
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			out.Events[ev] = EventPreference{Template: v}
		}
	}
	return out
}

func (p Preferences) clone() Preferences {
	out := Preferences{Title: p.Title, Events: make(map[Event]EventPreference, len(p.Events))}
	for k, v := range p.Events {
		out.Events[k] = v
	}
	return out
}

// sender is swapped in tests.
var sender = platform.Notify

// Notifier sends OS-level notifications based on the configured preferences.
// It implements game.CuePlayer for round outcomes and game.Messenger for
// in-game text. Dispatch happens on a goroutine so callers never wait on the
// notification daemon.
type Notifier struct {
	prefs   Preferences
	enabled map[Event]bool
	detail  func(Event) string
	wg      sync.WaitGroup
}

// New creates a new Notifier using the provided preferences. All events
// start disabled.
func New(prefs Preferences) *Notifier {
	return &Notifier{prefs: prefs.clone(), enabled: make(map[Event]bool)}
}

// Enable toggles the notifier for the provided event.
func (n *Notifier) Enable(event Event, enabled bool) {
	if n == nil {
		return
	}
	if n.enabled == nil {
		n.enabled = make(map[Event]bool)
	}
	n.enabled[event] = enabled
}

// Enabled reports whether event is switched on.
func (n *Notifier) Enabled(event Event) bool {
	return n.enabledFor(event)
}

// SetDetail installs the source of the %s argument for cue-driven events,
// typically a closure over the session's progress.
func (n *Notifier) SetDetail(fn func(Event) string) {
	if n != nil {
		n.detail = fn
	}
}

// Play maps round-ending cues to notifications and ignores the rest.
func (n *Notifier) Play(c game.Cue) {
	var ev Event
	switch c {
	case game.CueComplete:
		ev = EventComplete
	case game.CueFailed:
		ev = EventFailed
	case game.CuePrank:
		ev = EventPrank
	default:
		return
	}
	detail := ""
	if n != nil && n.detail != nil {
		detail = n.detail(ev)
	}
	n.dispatch(ev, detail, platform.Options{})
}

// Message forwards in-game text.
func (n *Notifier) Message(text string) {
	n.dispatch(EventMessage, text, platform.Options{})
}

// Save sends a save notification including the written filename when available.
func (n *Notifier) Save(path string) {
	if !n.enabledFor(EventSave) {
		return
	}
	detail := strings.TrimSpace(path)
	opts := platform.Options{}
	if abs, err := filepath.Abs(path); err == nil {
		detail = abs
		if _, statErr := os.Stat(abs); statErr == nil {
			opts.IconPath = abs
		}
	}
	n.dispatch(EventSave, detail, opts)
}

// Copy sends a clipboard notification.
func (n *Notifier) Copy(detail string) {
	if strings.TrimSpace(detail) == "" {
		detail = "board"
	}
	n.dispatch(EventCopy, detail, platform.Options{})
}

// Wait blocks until every dispatched notification has been handed to the
// platform.
func (n *Notifier) Wait() {
	if n != nil {
		n.wg.Wait()
	}
}

func (n *Notifier) enabledFor(event Event) bool {
	if n == nil {
		return false
	}
	if n.enabled == nil {
		return false
	}
	return n.enabled[event]
}

func (n *Notifier) dispatch(event Event, detail string, opts platform.Options) {
	if !n.enabledFor(event) {
		return
	}
	body := n.format(event, detail)
	if body == "" {
		return
	}
	opts.AppName = n.prefs.Title
	title := n.prefs.Title
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		if err := sender(title, body, opts); err != nil {
			notifyLog.Warn().Err(err).Str("event", string(event)).Msg("notification failed")
		}
	}()
}

func (n *Notifier) format(event Event, detail string) string {
	template := strings.TrimSpace(n.template(event))
	if template == "" {
		return ""
	}
	if !strings.Contains(template, "%") {
		return template
	}
	return strings.TrimSpace(fmt.Sprintf(template, strings.TrimSpace(detail)))
}

func (n *Notifier) template(event Event) string {
	if n == nil {
		return ""
	}
	if pref, ok := n.prefs.Events[event]; ok {
		return pref.Template
	}
	return ""
}
