//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && !cgo

package clipboard

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"sync"
	"time"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// Without cgo the clipboard is owned directly over the X11 protocol. The
// owner window stays alive for the life of the process so other clients can
// request the selection after WriteImage returns.

var owner *selectionOwner

// requestTimeout bounds how long ReadImage waits for the selection owner.
const requestTimeout = 3 * time.Second

var (
	errConnClosed     = errors.New("x11 connection closed")
	errRequestTimeout = errors.New("clipboard owner did not answer")
)

// eventSource is the part of *xgb.Conn the event loops read from.
type eventSource interface {
	WaitForEvent() (xgb.Event, xgb.Error)
}

// nextEvent reads one event. xgb reports a closed connection as a nil event
// with a nil error.
func nextEvent(src eventSource) (xgb.Event, error) {
	ev, xerr := src.WaitForEvent()
	if xerr != nil {
		return nil, xerr
	}
	if ev == nil {
		return nil, errConnClosed
	}
	return ev, nil
}

func ensureInit() error {
	initOnce.Do(func() {
		if !hasDisplay() {
			initErr = errNoDisplay
			return
		}
		o, err := newSelectionOwner()
		if err != nil {
			clipLog.Warn().Err(err).Msg("x11 clipboard init failed")
			initErr = err
			return
		}
		owner = o
	})
	return initErr
}

// WriteImage encodes the provided image as PNG and takes ownership of the
// clipboard selection.
func WriteImage(img image.Image) error {
	if err := ensureInit(); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}
	return owner.publish(offer{png: buf.Bytes()})
}

// ReadImage asks the current selection owner for PNG data.
func ReadImage() (image.Image, error) {
	if err := ensureInit(); err != nil {
		return nil, err
	}
	data, err := owner.request(owner.atoms.png)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errNoImage
	}
	return png.Decode(bytes.NewReader(data))
}

// WriteText takes ownership of the clipboard selection with UTF-8 text.
func WriteText(text string) error {
	if err := ensureInit(); err != nil {
		return err
	}
	return owner.publish(offer{text: []byte(text)})
}

// offer is what the process currently serves; at most one field is set.
type offer struct {
	text []byte
	png  []byte
}

type atoms struct {
	clipboard xproto.Atom
	targets   xproto.Atom
	utf8      xproto.Atom
	textPlain xproto.Atom
	png       xproto.Atom
	property  xproto.Atom
}

type selectionOwner struct {
	conn   *xgb.Conn
	window xproto.Window
	atoms  atoms

	mu      sync.RWMutex
	current offer
}

func newSelectionOwner() (*selectionOwner, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, err
	}
	screen := xproto.Setup(conn).DefaultScreen(conn)
	window, err := xproto.NewWindowId(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}
	const mask = xproto.EventMaskPropertyChange | xproto.EventMaskStructureNotify
	err = xproto.CreateWindowChecked(conn, screen.RootDepth, window, screen.Root,
		0, 0, 1, 1, 0, xproto.WindowClassInputOutput, screen.RootVisual,
		xproto.CwEventMask, []uint32{mask}).Check()
	if err != nil {
		conn.Close()
		return nil, err
	}
	a, err := internAtoms(conn)
	if err != nil {
		xproto.DestroyWindow(conn, window)
		conn.Close()
		return nil, err
	}
	o := &selectionOwner{conn: conn, window: window, atoms: a}
	go o.serve(conn)
	return o, nil
}

func internAtoms(conn *xgb.Conn) (atoms, error) {
	names := []string{"CLIPBOARD", "TARGETS", "UTF8_STRING", "text/plain;charset=utf-8", "image/png", "SPOTDIFF_CLIPBOARD"}
	got := make([]xproto.Atom, len(names))
	for i, name := range names {
		reply, err := xproto.InternAtom(conn, false, uint16(len(name)), name).Reply()
		if err != nil {
			return atoms{}, fmt.Errorf("intern %s: %w", name, err)
		}
		got[i] = reply.Atom
	}
	return atoms{
		clipboard: got[0],
		targets:   got[1],
		utf8:      got[2],
		textPlain: got[3],
		png:       got[4],
		property:  got[5],
	}, nil
}

func (o *selectionOwner) publish(next offer) error {
	o.mu.Lock()
	o.current = offer{text: append([]byte(nil), next.text...), png: append([]byte(nil), next.png...)}
	o.mu.Unlock()
	return xproto.SetSelectionOwnerChecked(o.conn, o.window, o.atoms.clipboard, xproto.TimeCurrentTime).Check()
}

func (o *selectionOwner) serve(src eventSource) {
	for {
		ev, err := nextEvent(src)
		if errors.Is(err, errConnClosed) {
			clipLog.Debug().Msg("x11 clipboard event loop stopped")
			return
		}
		if err != nil {
			// requestors may vanish before we answer them
			clipLog.Debug().Err(err).Msg("x11 clipboard error")
			continue
		}
		o.handle(ev)
	}
}

func (o *selectionOwner) handle(ev xgb.Event) {
	switch e := ev.(type) {
	case xproto.SelectionRequestEvent:
		o.answer(e)
	case xproto.SelectionClearEvent:
		o.mu.Lock()
		o.current = offer{}
		o.mu.Unlock()
	}
}

// reply picks the payload for a requested target. A zero format means the
// target cannot be served.
func (o *selectionOwner) reply(target xproto.Atom) (typ xproto.Atom, format byte, payload []byte) {
	o.mu.RLock()
	cur := o.current
	o.mu.RUnlock()

	switch target {
	case o.atoms.targets:
		list := []xproto.Atom{o.atoms.targets}
		if len(cur.text) > 0 {
			list = append(list, o.atoms.utf8, xproto.AtomString, o.atoms.textPlain)
		}
		if len(cur.png) > 0 {
			list = append(list, o.atoms.png)
		}
		buf := make([]byte, len(list)*4)
		for i, a := range list {
			xgb.Put32(buf[i*4:], uint32(a))
		}
		return xproto.AtomAtom, 32, buf
	case o.atoms.utf8, xproto.AtomString, o.atoms.textPlain:
		if len(cur.text) > 0 {
			return o.atoms.utf8, 8, cur.text
		}
	case o.atoms.png:
		if len(cur.png) > 0 {
			return o.atoms.png, 8, cur.png
		}
	}
	return xproto.AtomNone, 0, nil
}

func (o *selectionOwner) answer(e xproto.SelectionRequestEvent) {
	property := e.Property
	if property == xproto.AtomNone {
		property = e.Target
	}
	typ, format, payload := o.reply(e.Target)
	if format == 0 {
		property = xproto.AtomNone
	} else {
		length := uint32(len(payload)) / uint32(format/8)
		xproto.ChangeProperty(o.conn, xproto.PropModeReplace, e.Requestor, property, typ, format, length, payload)
	}
	notify := xproto.SelectionNotifyEvent{
		Time:      e.Time,
		Requestor: e.Requestor,
		Selection: e.Selection,
		Target:    e.Target,
		Property:  property,
	}
	_ = xproto.SendEvent(o.conn, false, e.Requestor, 0, string(notify.Bytes()))
}

// request converts the clipboard selection to target on a throwaway
// connection so the owner's event loop is not disturbed.
func (o *selectionOwner) request(target xproto.Atom) ([]byte, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	screen := xproto.Setup(conn).DefaultScreen(conn)
	window, err := xproto.NewWindowId(conn)
	if err != nil {
		return nil, err
	}
	err = xproto.CreateWindowChecked(conn, 0, window, screen.Root, 0, 0, 1, 1, 0,
		xproto.WindowClassInputOnly, 0, xproto.CwEventMask, []uint32{xproto.EventMaskPropertyChange}).Check()
	if err != nil {
		return nil, err
	}
	defer xproto.DestroyWindow(conn, window)

	if err := xproto.ConvertSelectionChecked(conn, window, o.atoms.clipboard, target, o.atoms.property, xproto.TimeCurrentTime).Check(); err != nil {
		return nil, err
	}
	e, err := waitSelection(conn, requestTimeout)
	if err != nil {
		return nil, err
	}
	if e.Property == xproto.AtomNone {
		return nil, fmt.Errorf("clipboard target unavailable")
	}
	r, err := xproto.GetProperty(conn, true, window, o.atoms.property, xproto.GetPropertyTypeAny, 0, (1<<31)-1).Reply()
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), r.Value...), nil
}

// waitSelection returns the first SelectionNotify event from src. It gives
// up after timeout; the reader goroutine exits once the connection closes.
func waitSelection(src eventSource, timeout time.Duration) (xproto.SelectionNotifyEvent, error) {
	type result struct {
		ev  xproto.SelectionNotifyEvent
		err error
	}
	out := make(chan result, 1)
	go func() {
		for {
			ev, err := nextEvent(src)
			if err != nil {
				out <- result{err: err}
				return
			}
			if e, ok := ev.(xproto.SelectionNotifyEvent); ok {
				out <- result{ev: e}
				return
			}
		}
	}()
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case r := <-out:
		return r.ev, r.err
	case <-timer.C:
		return xproto.SelectionNotifyEvent{}, errRequestTimeout
	}
}
