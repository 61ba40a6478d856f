package layout

import "fmt"

// MaxRetries is the default number of candidates tried per tier.
const MaxRetries = 50

// Source produces candidate descriptors. *Generator is the production
// implementation.
type Source interface {
	Generate(t Tier) (Descriptor, error)
}

// Planner places one difference per tier, keeping every accepted pair at
// least Padding apart where the retry budget allows.
type Planner struct {
	Source     Source
	MaxRetries int
	Padding    float64
}

// NewPlanner returns a planner over a generator backed by r with the
// default retry budget and padding.
func NewPlanner(r Rand) *Planner {
	return &Planner{Source: NewGenerator(r), MaxRetries: MaxRetries, Padding: Padding}
}

// Plan is an accepted descriptor set. Exhausted lists tiers whose
// difference was accepted while still overlapping an earlier one.
type Plan struct {
	Descriptors []Descriptor
	Exhausted   []Tier
}

// Err returns ErrPlacementExhausted wrapped with the affected tiers, or nil
// when every difference found a free spot.
func (p Plan) Err() error {
	if len(p.Exhausted) == 0 {
		return nil
	}
	return fmt.Errorf("tiers %v: %w", p.Exhausted, ErrPlacementExhausted)
}

// Plan generates descriptors for tiers in order. Earlier acceptances are
// never revisited. When the retry budget for a tier runs out the last
// candidate is kept anyway and the round stays playable.
func (p *Planner) Plan(tiers []Tier) (Plan, error) {
	src := p.Source
	if src == nil {
		src = NewGenerator(nil)
	}
	retries := p.MaxRetries
	if retries < 1 {
		retries = 1
	}
	seen := make(map[Tier]bool, len(tiers))
	var plan Plan
	for _, t := range tiers {
		if !t.Valid() {
			return Plan{}, fmt.Errorf("plan: %w: %d", ErrUnknownTier, int(t))
		}
		if seen[t] {
			return Plan{}, fmt.Errorf("plan: duplicate tier %s", t)
		}
		seen[t] = true

		var (
			cand  Descriptor
			err   error
			valid bool
			tries int
		)
		for !valid && tries < retries {
			cand, err = src.Generate(t)
			if err != nil {
				return Plan{}, fmt.Errorf("plan %s: %w", t, err)
			}
			valid = !OverlapsAny(cand, plan.Descriptors, p.Padding)
			tries++
		}
		if !valid {
			plan.Exhausted = append(plan.Exhausted, t)
			layoutLog.Warn().
				Err(ErrPlacementExhausted).
				Stringer("tier", t).
				Str("archetype", cand.Name).
				Int("attempts", tries).
				Msg("accepting overlapping difference")
		}
		cand.ID = len(plan.Descriptors)
		cand.Found = false
		plan.Descriptors = append(plan.Descriptors, cand)
	}
	layoutLog.Debug().
		Int("count", len(plan.Descriptors)).
		Int("exhausted", len(plan.Exhausted)).
		Msg("round planned")
	return plan, nil
}
