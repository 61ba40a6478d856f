package game

import (
	"errors"
	"reflect"
	"testing"

	"github.com/example/spotdiff/internal/hittest"
	"github.com/example/spotdiff/internal/layout"
)

type fixedPlanner struct {
	descs []layout.Descriptor
	calls int
}

func (f *fixedPlanner) Plan([]layout.Tier) (layout.Plan, error) {
	f.calls++
	return layout.Plan{Descriptors: append([]layout.Descriptor(nil), f.descs...)}, nil
}

type recorder struct {
	cues     []Cue
	messages []string
	painted  int
	marked   []string
	rounds   int
}

func (r *recorder) Play(c Cue)          { r.cues = append(r.cues, c) }
func (r *recorder) Message(text string) { r.messages = append(r.messages, text) }
func (r *recorder) RoundStarted()       { r.rounds++ }
func (r *recorder) PaintRound([]layout.Descriptor, []hittest.Projected) {
	r.painted++
}
func (r *recorder) MarkFound(d layout.Descriptor, _ hittest.Projected) {
	r.marked = append(r.marked, d.Name)
}

func testBoard() []layout.Descriptor {
	return []layout.Descriptor{
		{ID: 0, Name: "pebble", Tier: layout.IQ100, Shape: layout.Circle{X: 0.1, Y: 0.9, R: 0.01}},
		{ID: 1, Name: "shell", Tier: layout.IQ110, Shape: layout.Rect{X: 0.6, Y: 0.9, W: 0.02, H: 0.02}},
		{ID: 2, Name: "spot", Tier: layout.IQ120, Shape: layout.Ellipse{X: 0.85, Y: 0.4, RX: 0.04, RY: 0.01}},
		{ID: 3, Name: "leaf", Tier: layout.IQ130, Shape: layout.Triangle{X: 0.1, Y: 0.2, W: 0.04, H: 0.06}},
		{ID: 4, Name: "grain", Tier: layout.IQ140, Shape: layout.Circle{X: 0.9, Y: 0.9, R: 0.003}},
	}
}

// pixel points that land on each descriptor of testBoard at 1000×1000.
var hits = [][2]float64{{100, 900}, {610, 910}, {850, 400}, {120, 230}, {900, 900}}

var (
	missPoint  = [2]float64{500, 50}
	chestPoint = [2]float64{500, 560}
)

func newTestSession(t *testing.T) (*Session, *recorder, *fixedPlanner) {
	t.Helper()
	rec := &recorder{}
	p := &fixedPlanner{descs: testBoard()}
	s, err := NewSession(Options{
		Planner:   p,
		Width:     1000,
		Height:    1000,
		Renderer:  rec,
		Cues:      rec,
		Messenger: rec,
		Counter:   rec,
	})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s, rec, p
}

func TestFiveMistakesFail(t *testing.T) {
	s, rec, _ := newTestSession(t)
	for i := 1; i <= 5; i++ {
		out := s.Click(missPoint[0], missPoint[1])
		if out.Kind != OutcomeMistake {
			t.Fatalf("click %d: %s, want mistake", i, out.Kind)
		}
	}
	if got := s.Progress(); got.State != Failed || got.Mistakes != 5 || got.Lives() != 0 {
		t.Fatalf("progress after five mistakes: %+v", got)
	}
	want := []Cue{CueMistake, CueMistake, CueMistake, CueMistake, CueFailed}
	if !reflect.DeepEqual(rec.cues, want) {
		t.Fatalf("cues = %v, want %v", rec.cues, want)
	}
	before := s.Progress()
	cues, msgs := len(rec.cues), len(rec.messages)
	out := s.Click(hits[0][0], hits[0][1])
	if out.Kind != OutcomeIgnored {
		t.Fatalf("sixth click: %s, want ignored", out.Kind)
	}
	if s.Progress() != before || len(rec.cues) != cues || len(rec.messages) != msgs {
		t.Fatalf("ignored click had side effects")
	}
	if s.Descriptors()[0].Found {
		t.Fatalf("ignored click marked a difference")
	}
	if !errors.Is(s.Err(), ErrNotPlaying) {
		t.Fatalf("Err() = %v", s.Err())
	}
}

func TestCompleteRound(t *testing.T) {
	s, rec, _ := newTestSession(t)
	for i, h := range hits {
		out := s.Click(h[0], h[1])
		if out.Kind != OutcomeFound || out.Descriptor.ID != i {
			t.Fatalf("hit %d: %+v", i, out)
		}
	}
	if s.Progress().State != Complete {
		t.Fatalf("state = %s, want complete", s.Progress().State)
	}
	if last := rec.cues[len(rec.cues)-1]; last != CueComplete {
		t.Fatalf("last cue %s, want complete", last)
	}
	if len(rec.marked) != len(hits) {
		t.Fatalf("marked %d differences, want %d", len(rec.marked), len(hits))
	}
	if out := s.Click(missPoint[0], missPoint[1]); out.Kind != OutcomeIgnored {
		t.Fatalf("click after completion: %s", out.Kind)
	}
	if s.Progress().Mistakes != 0 {
		t.Fatalf("mistake counted after completion")
	}
}

func TestFoundIsIdempotent(t *testing.T) {
	s, _, _ := newTestSession(t)
	if out := s.Click(hits[0][0], hits[0][1]); out.Kind != OutcomeFound {
		t.Fatalf("first click: %s", out.Kind)
	}
	if out := s.Click(hits[0][0], hits[0][1]); out.Kind != OutcomeMistake {
		t.Fatalf("second click on a found difference: %s, want mistake", out.Kind)
	}
	if got := s.Progress(); got.Found != 1 || got.Mistakes != 1 {
		t.Fatalf("progress %+v", got)
	}
}

func TestHintOnlyWithOneLeft(t *testing.T) {
	s, rec, _ := newTestSession(t)
	for _, h := range hits[:3] {
		s.Click(h[0], h[1])
	}
	if _, ok := s.Hint(); ok {
		t.Fatalf("hint offered with two differences left")
	}
	if s.HintMessage() || len(rec.messages) != 0 {
		t.Fatalf("hint message sent with two differences left: %v", rec.messages)
	}
	s.Click(hits[3][0], hits[3][1])
	cell, ok := s.Hint()
	if !ok || cell != 16 {
		t.Fatalf("Hint() = %d, %v; want 16, true", cell, ok)
	}
	if !s.HintMessage() || rec.messages[len(rec.messages)-1] != "Hint: area 16" {
		t.Fatalf("messages = %v", rec.messages)
	}
}

func TestEasterEggEveryTenClicks(t *testing.T) {
	s, rec, _ := newTestSession(t)
	pranks := 0
	for i := 1; i <= 25; i++ {
		out := s.Click(chestPoint[0], chestPoint[1])
		if out.Kind != OutcomeEasterEgg {
			t.Fatalf("click %d: %s", i, out.Kind)
		}
		if out.Prank {
			pranks++
			if i%10 != 0 {
				t.Fatalf("prank fired on click %d", i)
			}
			if s.Progress().EasterEggs != 0 {
				t.Fatalf("counter not reset after prank")
			}
		}
	}
	if pranks != 2 {
		t.Fatalf("pranks = %d, want 2", pranks)
	}
	if got := s.Progress(); got.EasterEggs != 5 || got.Mistakes != 0 || got.State != Playing {
		t.Fatalf("progress %+v", got)
	}
	n := 0
	for _, c := range rec.cues {
		if c == CuePrank {
			n++
		}
	}
	if n != 2 {
		t.Fatalf("prank cues = %d", n)
	}
}

func TestResetStartsFreshRound(t *testing.T) {
	s, rec, p := newTestSession(t)
	s.Click(hits[0][0], hits[0][1])
	s.Click(missPoint[0], missPoint[1])
	s.Click(chestPoint[0], chestPoint[1])
	if err := s.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	got := s.Progress()
	want := Progress{State: Playing, Total: 5, MaxMistakes: MaxMistakes}
	if got != want {
		t.Fatalf("progress %+v, want %+v", got, want)
	}
	for _, d := range s.Descriptors() {
		if d.Found {
			t.Fatalf("descriptor %s still found after reset", d.Name)
		}
	}
	if p.calls != 2 || rec.rounds != 2 || rec.painted != 2 {
		t.Fatalf("plans=%d rounds=%d paints=%d, want 2 each", p.calls, rec.rounds, rec.painted)
	}
}

func TestResizeReprojects(t *testing.T) {
	s, rec, _ := newTestSession(t)
	s.Click(hits[0][0], hits[0][1])
	rec.marked = nil
	if err := s.Resize(500, 500); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if len(rec.marked) != 1 || rec.marked[0] != "pebble" {
		t.Fatalf("found markers not repainted: %v", rec.marked)
	}
	c := s.Shapes()[4].(hittest.PixelCircle)
	if c.CX != 450 || c.CY != 450 {
		t.Fatalf("grain projected to (%v, %v)", c.CX, c.CY)
	}
	if out := s.Click(450, 450); out.Kind != OutcomeFound || out.Descriptor.Name != "grain" {
		t.Fatalf("click on resized canvas: %+v", out)
	}
	if err := s.Resize(0, 10); err == nil {
		t.Fatalf("zero width accepted")
	}
}

func TestNilCollaboratorsAreSkipped(t *testing.T) {
	s, err := NewSession(Options{Planner: &fixedPlanner{descs: testBoard()}, Width: 1000, Height: 1000})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	for i := 0; i < 5; i++ {
		s.Click(missPoint[0], missPoint[1])
	}
	if s.Progress().State != Failed {
		t.Fatalf("state %s", s.Progress().State)
	}
}
