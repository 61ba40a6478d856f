package geom

import "math"

// Box is an axis-aligned bounding box with its origin at the top-left corner.
// The same type carries normalized [0,1] plane coordinates and pixel
// coordinates; callers keep track of which space they are in.
type Box struct {
	X, Y float64
	W, H float64
}

// CenteredBox returns the box centred on (cx, cy) with the given half extents.
func CenteredBox(cx, cy, halfW, halfH float64) Box {
	return Box{X: cx - halfW, Y: cy - halfH, W: halfW * 2, H: halfH * 2}
}

// Right returns the x coordinate of the right edge.
func (b Box) Right() float64 { return b.X + b.W }

// Bottom returns the y coordinate of the bottom edge.
func (b Box) Bottom() float64 { return b.Y + b.H }

// Center returns the centre point of the box.
func (b Box) Center() (float64, float64) {
	return b.X + b.W/2, b.Y + b.H/2
}

// Inflate grows the box by m on every side. A negative m shrinks it.
func (b Box) Inflate(m float64) Box {
	return Box{X: b.X - m, Y: b.Y - m, W: b.W + 2*m, H: b.H + 2*m}
}

// Intersects reports whether the interiors of b and o overlap. Boxes that
// only share an edge do not intersect.
func (b Box) Intersects(o Box) bool {
	return b.X < o.Right() && b.Right() > o.X && b.Y < o.Bottom() && b.Bottom() > o.Y
}

// Contains reports whether (x, y) lies inside the box, edges included.
func (b Box) Contains(x, y float64) bool {
	return x >= b.X && x <= b.Right() && y >= b.Y && y <= b.Bottom()
}

// Scale maps the box by independent x and y factors.
func (b Box) Scale(sx, sy float64) Box {
	return Box{X: b.X * sx, Y: b.Y * sy, W: b.W * sx, H: b.H * sy}
}

// Distance returns the euclidean distance between two points.
func Distance(x0, y0, x1, y1 float64) float64 {
	return math.Hypot(x1-x0, y1-y0)
}

// GridCell maps a normalized point onto an n×n partition of the unit plane
// and returns the cell number counted row-major from 1. Points outside the
// plane are clamped to the nearest edge cell.
func GridCell(x, y float64, n int) int {
	if n <= 0 {
		return 0
	}
	col := clampInt(int(math.Floor(x*float64(n))), 0, n-1)
	row := clampInt(int(math.Floor(y*float64(n))), 0, n-1)
	return row*n + col + 1
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
