package geom

import "testing"

func TestBoxIntersects(t *testing.T) {
	a := Box{X: 0, Y: 0, W: 1, H: 1}
	cases := []struct {
		name string
		b    Box
		want bool
	}{
		{"overlap", Box{X: 0.5, Y: 0.5, W: 1, H: 1}, true},
		{"contained", Box{X: 0.25, Y: 0.25, W: 0.1, H: 0.1}, true},
		{"touching edge", Box{X: 1, Y: 0, W: 1, H: 1}, false},
		{"apart", Box{X: 2, Y: 2, W: 1, H: 1}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := a.Intersects(tc.b); got != tc.want {
				t.Fatalf("Intersects(%+v) = %v, want %v", tc.b, got, tc.want)
			}
			if got := tc.b.Intersects(a); got != tc.want {
				t.Fatalf("Intersects is not symmetric for %+v", tc.b)
			}
		})
	}
}

func TestBoxContainsInclusive(t *testing.T) {
	b := Box{X: 10, Y: 20, W: 30, H: 40}
	for _, pt := range [][2]float64{{10, 20}, {40, 60}, {10, 60}, {25, 40}} {
		if !b.Contains(pt[0], pt[1]) {
			t.Fatalf("expected %v inside %+v", pt, b)
		}
	}
	if b.Contains(40.001, 60) {
		t.Fatalf("point beyond right edge reported inside")
	}
}

func TestInflateAndCentered(t *testing.T) {
	b := CenteredBox(0.5, 0.5, 0.1, 0.2).Inflate(0.05)
	want := Box{X: 0.35, Y: 0.25, W: 0.3, H: 0.5}
	const eps = 1e-9
	if abs(b.X-want.X) > eps || abs(b.Y-want.Y) > eps || abs(b.W-want.W) > eps || abs(b.H-want.H) > eps {
		t.Fatalf("got %+v want %+v", b, want)
	}
}

func TestGridCell(t *testing.T) {
	cases := []struct {
		x, y float64
		want int
	}{
		{0, 0, 1},
		{0.9, 0.9, 16},
		{0.3, 0.1, 2},
		{0.1, 0.3, 5},
		{1.0, 1.0, 16},
		{-0.2, 0.5, 9},
	}
	for _, tc := range cases {
		if got := GridCell(tc.x, tc.y, 4); got != tc.want {
			t.Errorf("GridCell(%v, %v) = %d, want %d", tc.x, tc.y, got, tc.want)
		}
	}
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
