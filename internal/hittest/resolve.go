package hittest

import (
	"fmt"

	"github.com/example/spotdiff/internal/geom"
	"github.com/example/spotdiff/internal/layout"
)

const (
	// CircleTolerance is added to a circle's radius; the hit test is strict.
	CircleTolerance = 40.0
	// BoxPadding grows a box on every side; the hit test is inclusive.
	BoxPadding = 30.0
)

// Hotzone is the normalized easter-egg region on the character's chest.
var Hotzone = geom.Box{X: 0.335, Y: 0.46, W: 0.365, H: 0.20}

// Kind classifies a resolved click.
type Kind int

const (
	Mistake Kind = iota
	DifferenceFound
	EasterEgg
)

func (k Kind) String() string {
	switch k {
	case Mistake:
		return "mistake"
	case DifferenceFound:
		return "found"
	case EasterEgg:
		return "easter-egg"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Outcome is the result of resolving one click. Index is the descriptor
// index for DifferenceFound and -1 otherwise.
type Outcome struct {
	Kind  Kind
	Index int
}

// Resolver holds the tolerances used to match clicks.
type Resolver struct {
	CircleTolerance float64
	BoxPadding      float64
	Hotzone         geom.Box
}

// NewResolver returns a resolver with the standard tolerances.
func NewResolver() *Resolver {
	return &Resolver{CircleTolerance: CircleTolerance, BoxPadding: BoxPadding, Hotzone: Hotzone}
}

// Hit reports whether the pixel point (x, y) falls on shape s.
func (r *Resolver) Hit(s Projected, x, y float64) bool {
	switch v := s.(type) {
	case PixelCircle:
		return geom.Distance(x, y, v.CX, v.CY) < v.Radius+r.CircleTolerance
	case PixelBox:
		return v.Inflate(r.BoxPadding).Contains(x, y)
	default:
		panic(fmt.Sprintf("hittest: unhandled projection %T", s))
	}
}

// Resolve matches a click at canvas pixel (x, y) against the unfound
// descriptors in ID order, then the hotzone. The first matching descriptor
// is marked found in descs. shapes must be indexed like descs.
func (r *Resolver) Resolve(x, y float64, descs []layout.Descriptor, shapes []Projected, width, height float64) Outcome {
	for i := range descs {
		if descs[i].Found || i >= len(shapes) {
			continue
		}
		if r.Hit(shapes[i], x, y) {
			descs[i].Found = true
			return Outcome{Kind: DifferenceFound, Index: i}
		}
	}
	if width > 0 && height > 0 && r.Hotzone.Contains(x/width, y/height) {
		return Outcome{Kind: EasterEgg, Index: -1}
	}
	return Outcome{Kind: Mistake, Index: -1}
}
