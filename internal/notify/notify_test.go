package notify

import (
	"errors"
	"sync"
	"testing"

	"github.com/example/spotdiff/internal/game"
	"github.com/example/spotdiff/internal/platform"
)

type sent struct {
	title, body string
	opts        platform.Options
}

func captureSends(t *testing.T, fail bool) (*[]sent, *sync.Mutex) {
	t.Helper()
	orig := sender
	t.Cleanup(func() { sender = orig })
	var mu sync.Mutex
	var out []sent
	sender = func(title, body string, opts platform.Options) error {
		mu.Lock()
		defer mu.Unlock()
		out = append(out, sent{title, body, opts})
		if fail {
			return errors.New("daemon gone")
		}
		return nil
	}
	return &out, &mu
}

func TestPlayMapsCues(t *testing.T) {
	got, _ := captureSends(t, false)
	n := New(DefaultPreferences())
	for _, ev := range Events() {
		n.Enable(ev, true)
	}
	n.SetDetail(func(ev Event) string {
		switch ev {
		case EventComplete:
			return "6"
		case EventFailed:
			return "5"
		default:
			return "Hey! Eyes on the picture!"
		}
	})

	n.Play(game.CueFound)
	n.Play(game.CueMistake)
	n.Play(game.CueEasterEgg)
	n.Wait()
	if len(*got) != 0 {
		t.Fatalf("in-round cues should not notify, got %+v", *got)
	}

	n.Play(game.CueComplete)
	n.Wait()
	n.Play(game.CueFailed)
	n.Wait()
	n.Play(game.CuePrank)
	n.Wait()
	want := []string{"All 6 differences found!", "Game over after 5 mistakes", "Hey! Eyes on the picture!"}
	if len(*got) != len(want) {
		t.Fatalf("sent %d notifications, want %d", len(*got), len(want))
	}
	for i, w := range want {
		if (*got)[i].body != w {
			t.Errorf("notification %d = %q, want %q", i, (*got)[i].body, w)
		}
		if (*got)[i].title != platform.DefaultAppName {
			t.Errorf("title %q", (*got)[i].title)
		}
	}
}

func TestDisabledEventsAreSilent(t *testing.T) {
	got, _ := captureSends(t, false)
	n := New(DefaultPreferences())
	n.Play(game.CueComplete)
	n.Message("Hint: area 4")
	n.Copy("")
	n.Save("board.png")
	n.Wait()
	if len(*got) != 0 {
		t.Fatalf("expected no notifications, got %+v", *got)
	}

	var nilNotifier *Notifier
	nilNotifier.Play(game.CueComplete)
	nilNotifier.Message("x")
	nilNotifier.Wait()
}

func TestMessageAndCopy(t *testing.T) {
	got, _ := captureSends(t, true)
	n := New(DefaultPreferences())
	n.Enable(EventMessage, true)
	n.Enable(EventCopy, true)
	n.Message("Hint: area 16")
	n.Wait()
	n.Copy("")
	n.Wait()
	if len(*got) != 2 {
		t.Fatalf("sent %d", len(*got))
	}
	if (*got)[0].body != "Hint: area 16" {
		t.Fatalf("message body %q", (*got)[0].body)
	}
	if (*got)[1].body != "Copied board to clipboard" {
		t.Fatalf("copy body %q", (*got)[1].body)
	}
}

func TestSaveUsesAbsolutePath(t *testing.T) {
	got, _ := captureSends(t, false)
	n := New(DefaultPreferences())
	n.Enable(EventSave, true)
	n.Save("missing-board.png")
	n.Wait()
	if len(*got) != 1 {
		t.Fatalf("sent %d", len(*got))
	}
	if (*got)[0].opts.IconPath != "" {
		t.Fatalf("icon set for a file that does not exist")
	}
	if (*got)[0].body == "Saved missing-board.png" {
		t.Fatalf("expected absolute path in %q", (*got)[0].body)
	}
}

func TestLoadPreferencesFromEnv(t *testing.T) {
	t.Setenv("SPOTDIFF_NOTIFY_TITLE", "Beach Day")
	t.Setenv("SPOTDIFF_NOTIFY_COMPLETE_TEXT", "Done!")
	base := DefaultPreferences()
	prefs := LoadPreferences(base)
	if prefs.Title != "Beach Day" {
		t.Fatalf("title %q", prefs.Title)
	}
	if prefs.Events[EventComplete].Template != "Done!" {
		t.Fatalf("template %q", prefs.Events[EventComplete].Template)
	}
	if base.Events[EventComplete].Template == "Done!" {
		t.Fatalf("LoadPreferences mutated its input")
	}

	got, _ := captureSends(t, false)
	n := New(prefs)
	n.Enable(EventComplete, true)
	n.Play(game.CueComplete)
	n.Wait()
	if len(*got) != 1 || (*got)[0].body != "Done!" || (*got)[0].title != "Beach Day" {
		t.Fatalf("unexpected send %+v", *got)
	}
}
