// Package game owns one round of play: the placed differences, their pixel
// projection and the progress state machine driven by clicks.
package game

import (
	"errors"
	"fmt"

	"github.com/example/spotdiff/internal/geom"
	"github.com/example/spotdiff/internal/hittest"
	"github.com/example/spotdiff/internal/layout"
)

const (
	// MaxMistakes is the default mistake budget.
	MaxMistakes = 5
	// EasterEggThreshold is the number of hotzone clicks that fire a prank.
	EasterEggThreshold = 10
	// HintGrid is the side of the hint grid.
	HintGrid = 4
)

const (
	msgComplete = "All differences found!"
	msgFailed   = "%d mistakes... too bad!"
	msgPrank    = "Hey! Eyes on the picture!"
)

// ErrNotPlaying reports that the round has ended.
var ErrNotPlaying = errors.New("round is not in progress")

// State is the round state.
type State int

const (
	Playing State = iota
	Complete
	Failed
)

func (s State) String() string {
	switch s {
	case Playing:
		return "playing"
	case Complete:
		return "complete"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Progress is a snapshot of the round counters.
type Progress struct {
	State       State
	Found       int
	Total       int
	Mistakes    int
	MaxMistakes int
	EasterEggs  int
}

// Remaining returns the number of differences not yet found.
func (p Progress) Remaining() int { return p.Total - p.Found }

// Lives returns the mistakes still allowed.
func (p Progress) Lives() int {
	if p.Mistakes >= p.MaxMistakes {
		return 0
	}
	return p.MaxMistakes - p.Mistakes
}

// OutcomeKind classifies what a click did.
type OutcomeKind int

const (
	OutcomeMistake OutcomeKind = iota
	OutcomeFound
	OutcomeEasterEgg
	OutcomeIgnored
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeMistake:
		return "mistake"
	case OutcomeFound:
		return "found"
	case OutcomeEasterEgg:
		return "easter-egg"
	case OutcomeIgnored:
		return "ignored"
	default:
		return fmt.Sprintf("outcome(%d)", int(k))
	}
}

// Outcome describes the effect of a single click. Descriptor is set only
// for OutcomeFound. Prank is true on the click that fired the prank.
type Outcome struct {
	Kind       OutcomeKind
	Descriptor layout.Descriptor
	Prank      bool
	State      State
}

// Planner plans a round. *layout.Planner satisfies it.
type Planner interface {
	Plan(tiers []layout.Tier) (layout.Plan, error)
}

// Options configure a Session. Zero values take the package defaults and
// nil collaborators are skipped.
type Options struct {
	Planner            Planner
	Resolver           *hittest.Resolver
	Tiers              []layout.Tier
	MaxMistakes        int
	EasterEggThreshold int
	Width, Height      float64

	Renderer  Renderer
	Cues      CuePlayer
	Messenger Messenger
	Counter   PlayCounter
}

// Session is one game. It is not safe for concurrent use; front-ends feed it
// from their event loop.
type Session struct {
	planner   Planner
	resolver  *hittest.Resolver
	tiers     []layout.Tier
	threshold int

	renderer  Renderer
	cues      CuePlayer
	messenger Messenger
	counter   PlayCounter

	width, height float64
	descs         []layout.Descriptor
	shapes        []hittest.Projected
	progress      Progress
}

// NewSession builds a session and starts its first round.
func NewSession(opts Options) (*Session, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("new session: invalid canvas %vx%v", opts.Width, opts.Height)
	}
	s := &Session{
		planner:   opts.Planner,
		resolver:  opts.Resolver,
		tiers:     opts.Tiers,
		threshold: opts.EasterEggThreshold,
		renderer:  opts.Renderer,
		cues:      opts.Cues,
		messenger: opts.Messenger,
		counter:   opts.Counter,
		width:     opts.Width,
		height:    opts.Height,
	}
	if s.planner == nil {
		s.planner = layout.NewPlanner(nil)
	}
	if s.resolver == nil {
		s.resolver = hittest.NewResolver()
	}
	if len(s.tiers) == 0 {
		s.tiers = layout.Tiers()
	}
	if s.threshold <= 0 {
		s.threshold = EasterEggThreshold
	}
	if s.renderer == nil {
		s.renderer = nopRenderer{}
	}
	if s.cues == nil {
		s.cues = nopCues{}
	}
	if s.messenger == nil {
		s.messenger = nopMessenger{}
	}
	if s.counter == nil {
		s.counter = nopCounter{}
	}
	s.progress.MaxMistakes = opts.MaxMistakes
	if s.progress.MaxMistakes <= 0 {
		s.progress.MaxMistakes = MaxMistakes
	}
	if err := s.Reset(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reset discards the current round and plans a fresh one.
func (s *Session) Reset() error {
	plan, err := s.planner.Plan(s.tiers)
	if err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	if perr := plan.Err(); perr != nil {
		gameLog.Warn().Err(perr).Msg("round contains overlapping differences")
	}
	s.descs = make([]layout.Descriptor, len(plan.Descriptors))
	for i, d := range plan.Descriptors {
		d.Found = false
		s.descs[i] = d
	}
	s.progress = Progress{
		State:       Playing,
		Total:       len(s.descs),
		MaxMistakes: s.progress.MaxMistakes,
	}
	s.counter.RoundStarted()
	s.reproject()
	gameLog.Info().Int("differences", s.progress.Total).Msg("round started")
	return nil
}

// Resize re-projects the round onto a canvas of the new size and repaints
// it, keeping already found markers.
func (s *Session) Resize(width, height float64) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("resize: invalid canvas %vx%v", width, height)
	}
	s.width, s.height = width, height
	s.reproject()
	return nil
}

func (s *Session) reproject() {
	s.shapes = hittest.ProjectAll(s.descs, s.width, s.height)
	s.renderer.PaintRound(s.Descriptors(), s.shapes)
	for i, d := range s.descs {
		if d.Found {
			s.renderer.MarkFound(d, s.shapes[i])
		}
	}
}

// Click resolves a click at canvas pixel (x, y) on the interactive pane.
// Clicks after the round has ended are ignored without side effects.
func (s *Session) Click(x, y float64) Outcome {
	if s.progress.State != Playing {
		return Outcome{Kind: OutcomeIgnored, State: s.progress.State}
	}
	res := s.resolver.Resolve(x, y, s.descs, s.shapes, s.width, s.height)
	switch res.Kind {
	case hittest.DifferenceFound:
		return s.found(res.Index)
	case hittest.EasterEgg:
		return s.easterEgg()
	case hittest.Mistake:
		return s.mistake()
	default:
		panic(fmt.Sprintf("game: unhandled hit kind %v", res.Kind))
	}
}

func (s *Session) found(i int) Outcome {
	d := s.descs[i]
	s.progress.Found++
	s.cues.Play(CueFound)
	s.renderer.MarkFound(d, s.shapes[i])
	gameLog.Debug().Str("archetype", d.Name).Stringer("tier", d.Tier).Msg("difference found")
	if s.progress.Found == s.progress.Total {
		s.progress.State = Complete
		s.cues.Play(CueComplete)
		s.messenger.Message(msgComplete)
		gameLog.Info().Msg("round complete")
	}
	return Outcome{Kind: OutcomeFound, Descriptor: d, State: s.progress.State}
}

func (s *Session) easterEgg() Outcome {
	s.progress.EasterEggs++
	s.cues.Play(CueEasterEgg)
	out := Outcome{Kind: OutcomeEasterEgg, State: s.progress.State}
	if s.progress.EasterEggs >= s.threshold {
		s.progress.EasterEggs = 0
		s.cues.Play(CuePrank)
		s.messenger.Message(msgPrank)
		out.Prank = true
	}
	return out
}

func (s *Session) mistake() Outcome {
	s.progress.Mistakes++
	if s.progress.Mistakes >= s.progress.MaxMistakes {
		s.progress.State = Failed
		s.cues.Play(CueFailed)
		s.messenger.Message(fmt.Sprintf(msgFailed, s.progress.Mistakes))
		gameLog.Info().Int("mistakes", s.progress.Mistakes).Msg("round failed")
	} else {
		s.cues.Play(CueMistake)
	}
	return Outcome{Kind: OutcomeMistake, State: s.progress.State}
}

// Hint returns the 4×4 grid cell, numbered row-major from 1, holding the
// last unfound difference. It reports false unless exactly one is left.
func (s *Session) Hint() (int, bool) {
	if s.progress.Remaining() != 1 {
		return 0, false
	}
	for _, d := range s.descs {
		if !d.Found {
			x, y := layout.Center(d.Shape)
			return geom.GridCell(x, y, HintGrid), true
		}
	}
	return 0, false
}

// HintMessage sends the hint through the messenger when one is available.
func (s *Session) HintMessage() bool {
	cell, ok := s.Hint()
	if !ok {
		return false
	}
	s.messenger.Message(fmt.Sprintf("Hint: area %d", cell))
	return true
}

// Err returns ErrNotPlaying once the round has ended.
func (s *Session) Err() error {
	if s.progress.State != Playing {
		return fmt.Errorf("%w: %s", ErrNotPlaying, s.progress.State)
	}
	return nil
}

// Progress returns the current counters.
func (s *Session) Progress() Progress { return s.progress }

// Descriptors returns a copy of the round's descriptors in ID order.
func (s *Session) Descriptors() []layout.Descriptor {
	out := make([]layout.Descriptor, len(s.descs))
	copy(out, s.descs)
	return out
}

// Shapes returns the current pixel projection, indexed like Descriptors.
func (s *Session) Shapes() []hittest.Projected {
	out := make([]hittest.Projected, len(s.shapes))
	copy(out, s.shapes)
	return out
}

// Size returns the canvas size clicks are resolved against.
func (s *Session) Size() (float64, float64) { return s.width, s.height }
