package layout

import (
	"fmt"
	"image/color"
	"math"
	"math/rand/v2"
)

// Rand is the random source consumed by the generator. *rand.Rand from
// math/rand/v2 satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }
func (globalRand) IntN(n int) int   { return rand.IntN(n) }

// DefaultRand draws from the math/rand/v2 global source.
func DefaultRand() Rand { return globalRand{} }

// Seeded returns a deterministic source for reproducible boards.
func Seeded(seed uint64) Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// placeFunc picks the anchor point of an archetype.
type placeFunc func(r Rand) (x, y float64)

type archetype struct {
	name  string
	color color.NRGBA
	place placeFunc
	shape func(x, y float64) Shape
}

func inZone(z Zone) placeFunc {
	return z.Sample
}

func fixedAt(x, y float64) placeFunc {
	return func(Rand) (float64, float64) { return x, y }
}

func rgba(r, g, b uint8, a float64) color.NRGBA {
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(a * 255))}
}

func circle(r float64) func(x, y float64) Shape {
	return func(x, y float64) Shape { return Circle{X: x, Y: y, R: r} }
}

func ellipse(rx, ry float64) func(x, y float64) Shape {
	return func(x, y float64) Shape { return Ellipse{X: x, Y: y, RX: rx, RY: ry} }
}

func rect(w, h float64) func(x, y float64) Shape {
	return func(x, y float64) Shape { return Rect{X: x, Y: y, W: w, H: h} }
}

func triangle(w, h float64) func(x, y float64) Shape {
	return func(x, y float64) Shape { return Triangle{X: x, Y: y, W: w, H: h} }
}

// archetypes lists what may be generated per tier. Low tiers are large and
// opaque; high tiers are tiny or nearly transparent.
var archetypes = map[Tier][]archetype{
	IQ100: {
		{"pebble_large", rgba(139, 69, 19, 0.8), inZone(ZoneSandBottom), circle(0.015)},
		{"cloud_patch", rgba(255, 255, 255, 0.4), inZone(ZoneSky), ellipse(0.08, 0.04)},
		{"navel_shade_deep", rgba(0, 0, 0, 0.25), fixedAt(0.49, 0.82), circle(0.012)},
	},
	IQ110: {
		{"leaf_extend", rgba(0, 80, 0, 0.35), inZone(ZoneTreeLeft), triangle(0.04, 0.06)},
		{"pebble_medium", rgba(160, 82, 45, 0.6), inZone(ZoneSandBottom), circle(0.01)},
		{"sea_shell", rgba(255, 228, 181, 0.6), inZone(ZoneSandBottom), rect(0.02, 0.02)},
	},
	IQ120: {
		{"sand_grain", rgba(85, 85, 85, 0.3), inZone(ZoneSandBottom), circle(0.006)},
		{"water_spot", rgba(0, 0, 50, 0.1), inZone(ZoneWaterRight), ellipse(0.04, 0.01)},
		{"palm_mark", rgba(60, 30, 0, 0.3), func(r Rand) (float64, float64) {
			return 0.1, uniform(r, 0.5, 0.7)
		}, rect(0.01, 0.03)},
	},
	IQ130: {
		{"water_glint", rgba(255, 255, 255, 0.15), inZone(ZoneWaterRight), ellipse(0.03, 0.01)},
		{"sky_wisp", rgba(255, 255, 255, 0.1), inZone(ZoneSky), rect(0.05, 0.005)},
	},
	IQ140: {
		{"hair_strand", rgba(150, 100, 50, 0.3), fixedAt(0.6, 0.15), rect(0.01, 0.04)},
		{"sand_micro_grain", rgba(0xc2, 0xb2, 0x80, 1), inZone(ZoneSandBottom), circle(0.003)},
	},
}

// Archetypes returns the archetype names a tier can produce.
func Archetypes(t Tier) []string {
	list := archetypes[t]
	names := make([]string, 0, len(list))
	for _, a := range list {
		names = append(names, a.name)
	}
	return names
}

// Generator produces candidate descriptors for a tier. Candidates carry no
// ID; the planner assigns one on acceptance.
type Generator struct {
	rng Rand
}

// NewGenerator returns a generator drawing from r, or from the global
// source when r is nil.
func NewGenerator(r Rand) *Generator {
	if r == nil {
		r = DefaultRand()
	}
	return &Generator{rng: r}
}

// Generate picks one archetype of the tier uniformly and places it.
func (g *Generator) Generate(t Tier) (Descriptor, error) {
	list, ok := archetypes[t]
	if !ok || len(list) == 0 {
		return Descriptor{}, fmt.Errorf("generate %d: %w", int(t), ErrUnknownTier)
	}
	a := list[g.rng.IntN(len(list))]
	x, y := a.place(g.rng)
	return Descriptor{
		Name:  a.name,
		Shape: a.shape(x, y),
		Color: a.color,
		Tier:  t,
	}, nil
}
