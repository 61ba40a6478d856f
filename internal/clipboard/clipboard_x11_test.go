//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && !cgo

package clipboard

import (
	"errors"
	"testing"
	"time"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

type step struct {
	ev  xgb.Event
	err xgb.Error
}

// scriptedEvents replays steps, then reports a closed connection. When hold
// is set it blocks on it before reporting the close.
type scriptedEvents struct {
	steps []step
	hold  chan struct{}
}

func (s *scriptedEvents) WaitForEvent() (xgb.Event, xgb.Error) {
	if len(s.steps) == 0 {
		if s.hold != nil {
			<-s.hold
		}
		return nil, nil
	}
	st := s.steps[0]
	s.steps = s.steps[1:]
	return st.ev, st.err
}

func TestServeSurvivesErrorsAndStopsOnClose(t *testing.T) {
	o := &selectionOwner{current: offer{text: []byte("layout")}}
	src := &scriptedEvents{steps: []step{
		{err: xproto.WindowError{}},
		{ev: xproto.SelectionClearEvent{}},
	}}

	done := make(chan struct{})
	go func() {
		o.serve(src)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("serve did not return after the connection closed")
	}
	if len(o.current.text) != 0 {
		t.Fatalf("selection clear after an X error was not handled")
	}
}

func TestWaitSelection(t *testing.T) {
	want := xproto.SelectionNotifyEvent{Property: 42}
	src := &scriptedEvents{steps: []step{
		{ev: xproto.PropertyNotifyEvent{}},
		{ev: want},
	}}
	got, err := waitSelection(src, time.Second)
	if err != nil {
		t.Fatalf("waitSelection: %v", err)
	}
	if got.Property != want.Property {
		t.Fatalf("property = %d, want %d", got.Property, want.Property)
	}
}

func TestWaitSelectionClosedConnection(t *testing.T) {
	_, err := waitSelection(&scriptedEvents{}, time.Second)
	if !errors.Is(err, errConnClosed) {
		t.Fatalf("expected errConnClosed, got %v", err)
	}
}

func TestWaitSelectionTimeout(t *testing.T) {
	hold := make(chan struct{})
	t.Cleanup(func() { close(hold) })
	_, err := waitSelection(&scriptedEvents{hold: hold}, 20*time.Millisecond)
	if !errors.Is(err, errRequestTimeout) {
		t.Fatalf("expected errRequestTimeout, got %v", err)
	}
}

func TestReplyTargets(t *testing.T) {
	o := &selectionOwner{atoms: atoms{targets: 10, utf8: 11, textPlain: 12, png: 13}}
	o.current = offer{png: []byte{1, 2, 3}}

	typ, format, payload := o.reply(o.atoms.targets)
	if typ != xproto.AtomAtom || format != 32 || len(payload) != 8 {
		t.Fatalf("targets reply = %d/%d/%d bytes", typ, format, len(payload))
	}
	if _, format, _ := o.reply(o.atoms.utf8); format != 0 {
		t.Fatalf("text served without text on offer")
	}
	if typ, _, payload := o.reply(o.atoms.png); typ != o.atoms.png || len(payload) != 3 {
		t.Fatalf("png reply = %d, %d bytes", typ, len(payload))
	}
}
