package appstate

import (
	"context"
	"errors"
	"image"
	"sync"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
)

// frameDropThreshold specifies how many consecutive frames can be canceled
// before a draw is allowed to complete to keep the UI responsive.
const frameDropThreshold = 10

// AppState is the play window.
type AppState struct {
	Controller *Controller
	Title      string

	onClose   func()
	closeOnce sync.Once
}

// Option modifies an AppState during creation.
type Option func(*AppState)

// WithTitle sets the window title.
func WithTitle(title string) Option { return func(a *AppState) { a.Title = title } }

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(a *AppState) { a.onClose = fn } }

// New creates an AppState for c with the provided options.
func New(c *Controller, opts ...Option) *AppState {
	a := &AppState{Controller: c, Title: "Spotdiff"}
	for _, o := range opts {
		o(a)
	}
	return a
}

func (a *AppState) notifyClose() {
	a.closeOnce.Do(func() {
		if a.onClose != nil {
			a.onClose()
		}
	})
}

// Run executes the UI loop using shiny's driver.
func (a *AppState) Run() { driver.Main(a.Main) }

// Main runs the window on s until it is closed or the player quits.
func (a *AppState) Main(s screen.Screen) {
	c := a.Controller
	pw, ph := c.Painter.Size()
	initial := windowSize(pw, ph)
	width, height := initial.X, initial.Y
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: a.Title})
	if err != nil {
		appLog.Error().Err(err).Msg("new window")
		return
	}
	defer w.Release()
	defer a.notifyClose()

	var paintMu sync.Mutex
	var paintCancel context.CancelFunc
	var dropCount int
	paintCh := make(chan paintState, 1)
	defer close(paintCh)
	go func() {
		for st := range paintCh {
			ctx, cancel := context.WithCancel(context.Background())
			paintMu.Lock()
			paintCancel = cancel
			paintMu.Unlock()
			drawFrame(ctx, s, w, st)
			paintMu.Lock()
			paintCancel = nil
			if ctx.Err() == nil {
				dropCount = 0
			}
			paintMu.Unlock()
			cancel()
		}
	}()

	// Expire HUD messages without waiting for input.
	done := make(chan struct{})
	defer close(done)
	go func() {
		t := time.NewTicker(time.Second)
		defer t.Stop()
		for {
			select {
			case <-t.C:
				w.Send(paint.Event{})
			case <-done:
				return
			}
		}
	}()

	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				paintMu.Lock()
				if paintCancel != nil {
					paintCancel()
				}
				paintMu.Unlock()
				return
			}
		case size.Event:
			width, height = e.WidthPx, e.HeightPx
			w.Send(paint.Event{})
		case paint.Event:
			paintMu.Lock()
			if paintCancel != nil && dropCount < frameDropThreshold {
				paintCancel()
				dropCount++
			}
			paintMu.Unlock()
			left, right := c.Painter.Panes()
			st := paintState{
				width:    width,
				height:   height,
				left:     left,
				right:    right,
				progress: c.Session.Progress(),
				message:  c.HUD.Current(),
			}
			select {
			case paintCh <- st:
			default:
				// replace the stale frame
				select {
				case <-paintCh:
				default:
				}
				paintCh <- st
			}
		case mouse.Event:
			if e.Button != mouse.ButtonLeft || e.Direction != mouse.DirPress {
				continue
			}
			f := layoutFrame(width, height, pw, ph)
			if x, y, ok := f.toPane(image.Pt(int(e.X), int(e.Y))); ok {
				c.Click(x, y)
				w.Send(paint.Event{})
			}
		case key.Event:
			if e.Direction != key.DirPress {
				continue
			}
			if e.Code == key.CodeEscape {
				return
			}
			if err := c.Key(e.Rune); err != nil {
				if errors.Is(err, ErrQuit) {
					return
				}
				appLog.Warn().Err(err).Msg("key action")
			}
			w.Send(paint.Event{})
		case error:
			appLog.Error().Err(e).Msg("window event")
		}
	}
}
