package layout

import (
	"errors"
	"image/color"
)

var (
	// ErrUnknownTier is returned for tiers outside IQ100..IQ140.
	ErrUnknownTier = errors.New("unknown difficulty tier")
	// ErrPlacementExhausted marks a tier whose candidate was accepted after
	// the retry budget ran out without finding a non-overlapping spot.
	ErrPlacementExhausted = errors.New("placement retries exhausted")
)

// Descriptor is one placed difference. Geometry never changes after the
// planner accepts it; Found flips to true at most once.
type Descriptor struct {
	ID    int
	Name  string
	Shape Shape
	Color color.NRGBA
	Tier  Tier
	Found bool
}

