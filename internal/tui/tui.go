// Package tui plays a round in the terminal. Each cell shows two vertically
// stacked pixels using the upper half block, so the panes keep their aspect
// ratio on ordinary fonts.
package tui

import (
	"errors"
	"image"
	"image/color"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/example/spotdiff/internal/appstate"
)

const (
	gapCols  = 2
	hudRows  = 2
	halfRune = '▀'
)

var (
	styleHUD    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorDarkSlateGray)
	styleMsg    = styleHUD.Foreground(tcell.ColorYellow)
	styleBanner = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorMaroon).Bold(true)
)

// grid maps the panes onto terminal cells. Pixel rows are twice the cell
// rows.
type grid struct {
	scale       float64
	left, right image.Rectangle
	hudY        int
}

func layoutGrid(cols, rows, paneW, paneH int) grid {
	availCols := (cols - gapCols) / 2
	availPix := 2 * (rows - hudRows)
	if availCols < 1 {
		availCols = 1
	}
	if availPix < 2 {
		availPix = 2
	}
	scale := float64(availCols) / float64(paneW)
	if s := float64(availPix) / float64(paneH); s < scale {
		scale = s
	}
	w := int(float64(paneW) * scale)
	h := int(float64(paneH)*scale) / 2
	left := image.Rect(0, 0, w, h)
	return grid{
		scale: scale,
		left:  left,
		right: left.Add(image.Pt(w+gapCols, 0)),
		hudY:  rows - hudRows,
	}
}

// cellToPane maps a cell over the right pane to pane pixels.
func (g grid) cellToPane(x, y int) (float64, float64, bool) {
	if !image.Pt(x, y).In(g.right) || g.scale <= 0 {
		return 0, 0, false
	}
	px := (float64(x-g.right.Min.X) + 0.5) / g.scale
	py := (float64(2*(y-g.right.Min.Y)) + 1) / g.scale
	return px, py, true
}

// Terminal is the tcell front-end.
type Terminal struct {
	screen tcell.Screen
	ctl    *appstate.Controller
	held   bool
}

// New wraps an initialized screen.
func New(screen tcell.Screen, ctl *appstate.Controller) *Terminal {
	screen.EnableMouse()
	screen.HideCursor()
	return &Terminal{screen: screen, ctl: ctl}
}

// Run draws and handles events until the player quits.
func (t *Terminal) Run() error {
	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)
	go pump(t.screen, events, done)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	t.Draw()
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !t.handle(ev) {
				return nil
			}
			t.Draw()
		case <-ticker.C:
			t.Draw()
		}
	}
}

// pump forwards screen events until the screen is finalized or done closes.
func pump(s tcell.Screen, events chan<- tcell.Event, done <-chan struct{}) {
	defer close(events)
	for {
		ev := s.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// handle applies one event and reports whether the loop should continue.
func (t *Terminal) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			if err := t.ctl.Key(ev.Rune()); err != nil {
				if errors.Is(err, appstate.ErrQuit) {
					return false
				}
				tuiLog.Warn().Err(err).Msg("key action")
			}
		}
	case *tcell.EventMouse:
		down := ev.Buttons()&tcell.Button1 != 0
		if down && !t.held {
			cols, rows := t.screen.Size()
			pw, ph := t.ctl.Painter.Size()
			x, y := ev.Position()
			if px, py, ok := layoutGrid(cols, rows, pw, ph).cellToPane(x, y); ok {
				t.ctl.Click(px, py)
			}
		}
		t.held = down
	case *tcell.EventResize:
		t.screen.Sync()
	}
	return true
}

// Draw renders both panes and the HUD.
func (t *Terminal) Draw() {
	s := t.screen
	s.Clear()
	cols, rows := s.Size()
	pw, ph := t.ctl.Painter.Size()
	g := layoutGrid(cols, rows, pw, ph)
	left, right := t.ctl.Painter.Panes()
	drawPane(s, g.left, g.scale, left)
	drawPane(s, g.right, g.scale, right)

	p := t.ctl.Session.Progress()
	fill(s, g.hudY, cols, styleHUD)
	x := drawText(s, 1, g.hudY, appstate.StatusLine(p), styleHUD)
	if msg := t.ctl.HUD.Current(); msg != "" {
		drawText(s, x+3, g.hudY, msg, styleMsg)
	}
	if g.hudY+1 < rows {
		fill(s, g.hudY+1, cols, styleHUD)
		drawText(s, 1, g.hudY+1, appstate.Help, styleHUD)
	}
	if title, sub, ok := appstate.Overlay(p); ok {
		banner(s, g.right, title, sub)
	}
	s.Show()
}

func drawPane(s tcell.Screen, r image.Rectangle, scale float64, img *image.RGBA) {
	b := img.Bounds()
	at := func(fx, fy float64) color.RGBA {
		x := b.Min.X + int(fx/scale)
		y := b.Min.Y + int(fy/scale)
		if x >= b.Max.X {
			x = b.Max.X - 1
		}
		if y >= b.Max.Y {
			y = b.Max.Y - 1
		}
		return img.RGBAAt(x, y)
	}
	for cy := 0; cy < r.Dy(); cy++ {
		for cx := 0; cx < r.Dx(); cx++ {
			fx := float64(cx) + 0.5
			top := at(fx, float64(2*cy)+0.5)
			bottom := at(fx, float64(2*cy)+1.5)
			st := tcell.StyleDefault.Foreground(toColor(top)).Background(toColor(bottom))
			s.SetContent(r.Min.X+cx, r.Min.Y+cy, halfRune, nil, st)
		}
	}
}

func toColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func fill(s tcell.Screen, y, cols int, st tcell.Style) {
	for x := 0; x < cols; x++ {
		s.SetContent(x, y, ' ', nil, st)
	}
}

// drawText writes text from (x, y) and returns the column after it.
func drawText(s tcell.Screen, x, y int, text string, st tcell.Style) int {
	for _, r := range text {
		s.SetContent(x, y, r, nil, st)
		x++
	}
	return x
}

func banner(s tcell.Screen, over image.Rectangle, title, sub string) {
	cy := over.Min.Y + over.Dy()/2
	for i, line := range []string{title, sub} {
		w := len([]rune(line)) + 2
		x := over.Min.X + (over.Dx()-w)/2
		if x < over.Min.X {
			x = over.Min.X
		}
		drawText(s, x, cy+i, " "+line+" ", styleBanner)
	}
}

// Play runs a terminal session on a freshly created screen.
func Play(ctl *appstate.Controller) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	return New(screen, ctl).Run()
}
