package game

import (
	"github.com/example/spotdiff/internal/hittest"
	"github.com/example/spotdiff/internal/layout"
)

// Cue names a sound or visual effect the front-end plays in response to a
// click.
type Cue int

const (
	CueFound Cue = iota
	CueMistake
	CueEasterEgg
	CueComplete
	CueFailed
	CuePrank
)

func (c Cue) String() string {
	switch c {
	case CueFound:
		return "found"
	case CueMistake:
		return "mistake"
	case CueEasterEgg:
		return "easter-egg"
	case CueComplete:
		return "complete"
	case CueFailed:
		return "failed"
	case CuePrank:
		return "prank"
	default:
		return "unknown"
	}
}

// Renderer paints the two panes. PaintRound is called whenever a new
// descriptor set or canvas size is established; MarkFound once per find.
type Renderer interface {
	PaintRound(descs []layout.Descriptor, shapes []hittest.Projected)
	MarkFound(d layout.Descriptor, s hittest.Projected)
}

// CuePlayer plays feedback cues. Implementations must not block.
type CuePlayer interface {
	Play(c Cue)
}

// Messenger shows short opaque text to the player.
type Messenger interface {
	Message(text string)
}

// PlayCounter records that a round started.
type PlayCounter interface {
	RoundStarted()
}

type nopRenderer struct{}

func (nopRenderer) PaintRound([]layout.Descriptor, []hittest.Projected) {}
func (nopRenderer) MarkFound(layout.Descriptor, hittest.Projected)      {}

type nopCues struct{}

func (nopCues) Play(Cue) {}

type nopMessenger struct{}

func (nopMessenger) Message(string) {}

type nopCounter struct{}

func (nopCounter) RoundStarted() {}

// Cues fans a cue out to several players.
type Cues []CuePlayer

func (c Cues) Play(cue Cue) {
	for _, p := range c {
		if p != nil {
			p.Play(cue)
		}
	}
}

// Messengers fans a message out to several messengers.
type Messengers []Messenger

func (m Messengers) Message(text string) {
	for _, x := range m {
		if x != nil {
			x.Message(text)
		}
	}
}
