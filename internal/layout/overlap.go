package layout

import "github.com/example/spotdiff/internal/geom"

// Padding is the minimum normalized gap kept between two differences.
const Padding = 0.05

// Overlaps reports whether two descriptors come closer than Padding.
func Overlaps(a, b Descriptor) bool {
	return OverlapsPadded(a.Shape, b.Shape, Padding)
}

// OverlapsPadded grows both bounding boxes by pad/2 on every side and tests
// them for a strict intersection, so the result does not depend on argument
// order. Two differences therefore stay a full pad apart, not pad/2 as when
// only the candidate box is grown.
func OverlapsPadded(a, b Shape, pad float64) bool {
	return padded(a, pad).Intersects(padded(b, pad))
}

func padded(s Shape, pad float64) geom.Box {
	return Bounds(s).Inflate(pad / 2)
}

// OverlapsAny reports whether candidate collides with any accepted descriptor.
func OverlapsAny(candidate Descriptor, accepted []Descriptor, pad float64) bool {
	for _, d := range accepted {
		if OverlapsPadded(candidate.Shape, d.Shape, pad) {
			return true
		}
	}
	return false
}
