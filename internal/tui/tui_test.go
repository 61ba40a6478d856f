package tui

import (
	"image"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/example/spotdiff/internal/appstate"
	"github.com/example/spotdiff/internal/game"
	"github.com/example/spotdiff/internal/layout"
	"github.com/example/spotdiff/internal/render"
)

type onePlanner struct{}

func (onePlanner) Plan([]layout.Tier) (layout.Plan, error) {
	return layout.Plan{Descriptors: []layout.Descriptor{
		{ID: 0, Name: "pebble", Tier: layout.IQ100, Shape: layout.Circle{X: 0.1, Y: 0.9, R: 0.01}},
	}}, nil
}

func newTestTerminal(t *testing.T) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 30)

	painter := render.NewPainter(image.NewRGBA(image.Rect(0, 0, 200, 200)), render.DefaultOptions())
	hud := &appstate.HUD{}
	s, err := game.NewSession(game.Options{
		Planner:   onePlanner{},
		Width:     200,
		Height:    200,
		Renderer:  painter,
		Messenger: hud,
	})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	ctl := &appstate.Controller{Session: s, Painter: painter, HUD: hud}
	return New(screen, ctl), screen
}

func TestLayoutGrid(t *testing.T) {
	g := layoutGrid(80, 30, 200, 200)
	if g.left.Dx() != 39 || g.left.Dy() != 19 {
		t.Fatalf("left pane %v", g.left)
	}
	if g.right.Min.X != 41 || g.hudY != 28 {
		t.Fatalf("right pane %v hud %d", g.right, g.hudY)
	}
	if _, _, ok := g.cellToPane(5, 5); ok {
		t.Fatalf("left pane cell mapped")
	}
	px, py, ok := g.cellToPane(44, 17)
	if !ok || px < 15 || px > 25 || py < 175 || py > 185 {
		t.Fatalf("cellToPane(44,17) = %v,%v,%v", px, py, ok)
	}
}

func TestMouseClicks(t *testing.T) {
	term, _ := newTestTerminal(t)
	press := tcell.NewEventMouse(75, 2, tcell.Button1, tcell.ModNone)
	release := tcell.NewEventMouse(75, 2, tcell.ButtonNone, tcell.ModNone)

	term.handle(press)
	term.handle(press)
	if got := term.ctl.Session.Progress().Mistakes; got != 1 {
		t.Fatalf("held button counted %d mistakes", got)
	}
	term.handle(release)
	term.handle(press)
	term.handle(release)
	if got := term.ctl.Session.Progress().Mistakes; got != 2 {
		t.Fatalf("mistakes %d, want 2", got)
	}

	term.handle(tcell.NewEventMouse(44, 17, tcell.Button1, tcell.ModNone))
	if st := term.ctl.Session.Progress().State; st != game.Complete {
		t.Fatalf("state %v after clicking the pebble", st)
	}
}

func TestKeys(t *testing.T) {
	term, _ := newTestTerminal(t)
	if !term.handle(tcell.NewEventKey(tcell.KeyRune, 'h', tcell.ModNone)) {
		t.Fatalf("h stopped the loop")
	}
	if got := term.ctl.HUD.Current(); got != "Hint: area 13" {
		t.Fatalf("hint %q", got)
	}
	if term.handle(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) {
		t.Fatalf("q did not stop the loop")
	}
	if term.handle(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Fatalf("Esc did not stop the loop")
	}
}

func TestDraw(t *testing.T) {
	term, screen := newTestTerminal(t)
	term.Draw()
	if r, _, _, _ := screen.GetContent(50, 5); r != halfRune {
		t.Fatalf("pane cell %q", r)
	}
	var hud strings.Builder
	for x := 0; x < 80; x++ {
		r, _, _, _ := screen.GetContent(x, 28)
		hud.WriteRune(r)
	}
	if !strings.Contains(hud.String(), "Found 0/1") {
		t.Fatalf("HUD row %q", hud.String())
	}
}

func TestPumpStopsWhenDone(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	screen.InjectKey(tcell.KeyRune, 'a', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'b', tcell.ModNone)

	events := make(chan tcell.Event)
	done := make(chan struct{})
	stopped := make(chan struct{})
	go func() {
		pump(screen, events, done)
		close(stopped)
	}()

	// nobody reads events, so the pump is parked on a send
	close(done)
	screen.Fini()
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("pump still running after done closed")
	}
	if _, ok := <-events; ok {
		t.Fatal("events channel left open")
	}
}
