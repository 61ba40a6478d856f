package layout

import (
	"fmt"

	"github.com/example/spotdiff/internal/geom"
)

// Kind tags the shape variant of a difference.
type Kind int

const (
	KindCircle Kind = iota
	KindEllipse
	KindRect
	KindTriangle
)

func (k Kind) String() string {
	switch k {
	case KindCircle:
		return "circle"
	case KindEllipse:
		return "ellipse"
	case KindRect:
		return "rect"
	case KindTriangle:
		return "triangle"
	default:
		return "unknown"
	}
}

// Shape is the sealed set of normalized difference geometries. Only the
// types in this file implement it.
type Shape interface {
	Kind() Kind
	isShape()
}

// Circle is centred on (X, Y) with radius R.
type Circle struct {
	X, Y, R float64
}

// Ellipse is centred on (X, Y) with radii RX and RY.
type Ellipse struct {
	X, Y   float64
	RX, RY float64
}

// Rect has its top-left corner at (X, Y).
type Rect struct {
	X, Y, W, H float64
}

// Triangle points right: apex at (X+W, Y+H/2), base along x = X.
type Triangle struct {
	X, Y, W, H float64
}

func (Circle) Kind() Kind   { return KindCircle }
func (Ellipse) Kind() Kind  { return KindEllipse }
func (Rect) Kind() Kind     { return KindRect }
func (Triangle) Kind() Kind { return KindTriangle }

func (Circle) isShape()   {}
func (Ellipse) isShape()  {}
func (Rect) isShape()     {}
func (Triangle) isShape() {}

// Bounds reduces a shape to its normalized axis-aligned bounding box.
func Bounds(s Shape) geom.Box {
	switch v := s.(type) {
	case Circle:
		return geom.CenteredBox(v.X, v.Y, v.R, v.R)
	case Ellipse:
		return geom.CenteredBox(v.X, v.Y, v.RX, v.RY)
	case Rect:
		return geom.Box{X: v.X, Y: v.Y, W: v.W, H: v.H}
	case Triangle:
		return geom.Box{X: v.X, Y: v.Y, W: v.W, H: v.H}
	default:
		panic(fmt.Sprintf("layout: unhandled shape %T", s))
	}
}

// Center returns the point the hint facility reports for a shape: the
// centre for circles and ellipses, the middle of the box otherwise.
func Center(s Shape) (float64, float64) {
	switch v := s.(type) {
	case Circle:
		return v.X, v.Y
	case Ellipse:
		return v.X, v.Y
	case Rect:
		return v.X + v.W/2, v.Y + v.H/2
	case Triangle:
		return v.X + v.W/2, v.Y + v.H/2
	default:
		panic(fmt.Sprintf("layout: unhandled shape %T", s))
	}
}
