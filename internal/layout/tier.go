package layout

import (
	"fmt"
	"strconv"
	"strings"
)

// Tier is a difficulty level expressed on an ascending "how hard to spot"
// scale. Each accepted round carries exactly one difference per tier.
type Tier int

const (
	IQ100 Tier = 100
	IQ110 Tier = 110
	IQ120 Tier = 120
	IQ130 Tier = 130
	IQ140 Tier = 140
)

var allTiers = []Tier{IQ100, IQ110, IQ120, IQ130, IQ140}

// Tiers returns every tier in ascending order.
func Tiers() []Tier {
	out := make([]Tier, len(allTiers))
	copy(out, allTiers)
	return out
}

// Valid reports whether t is one of the known tiers.
func (t Tier) Valid() bool {
	for _, k := range allTiers {
		if k == t {
			return true
		}
	}
	return false
}

// String returns the label drawn next to a found marker, e.g. "IQ 120".
func (t Tier) String() string {
	return fmt.Sprintf("IQ %d", int(t))
}

// ParseTier accepts "120", "iq120" or "IQ 120".
func ParseTier(s string) (Tier, error) {
	num := strings.ToLower(strings.TrimSpace(s))
	num = strings.TrimSpace(strings.TrimPrefix(num, "iq"))
	n, err := strconv.Atoi(num)
	if err != nil {
		return 0, fmt.Errorf("parse tier %q: %w", s, err)
	}
	t := Tier(n)
	if !t.Valid() {
		return 0, fmt.Errorf("parse tier %q: %w", s, ErrUnknownTier)
	}
	return t, nil
}
