// Package hittest maps normalized differences onto a pixel canvas and
// resolves clicks against them.
package hittest

import (
	"fmt"

	"github.com/example/spotdiff/internal/geom"
	"github.com/example/spotdiff/internal/layout"
)

// Projected is the pixel-space hit geometry of one descriptor. It is either
// a PixelCircle or a PixelBox.
type Projected interface {
	isProjected()
}

// PixelCircle is a circular hit area in canvas pixels.
type PixelCircle struct {
	CX, CY, Radius float64
}

// PixelBox is a rectangular hit area in canvas pixels.
type PixelBox struct {
	geom.Box
}

func (PixelCircle) isProjected() {}
func (PixelBox) isProjected()    {}

// Project converts a descriptor's normalized shape to canvas pixels.
// Circle radii scale with the canvas width only.
func Project(d layout.Descriptor, width, height float64) Projected {
	switch s := d.Shape.(type) {
	case layout.Circle:
		return PixelCircle{CX: s.X * width, CY: s.Y * height, Radius: s.R * width}
	case layout.Ellipse:
		return PixelBox{Box: geom.Box{
			X: (s.X - s.RX) * width,
			Y: (s.Y - s.RY) * height,
			W: s.RX * 2 * width,
			H: s.RY * 2 * height,
		}}
	case layout.Rect:
		return PixelBox{Box: geom.Box{X: s.X, Y: s.Y, W: s.W, H: s.H}.Scale(width, height)}
	case layout.Triangle:
		return PixelBox{Box: geom.Box{X: s.X, Y: s.Y, W: s.W, H: s.H}.Scale(width, height)}
	default:
		panic(fmt.Sprintf("hittest: unhandled shape %T", d.Shape))
	}
}

// ProjectAll projects descs in order. The result is indexed like descs and
// must be rebuilt whenever the canvas size changes.
func ProjectAll(descs []layout.Descriptor, width, height float64) []Projected {
	out := make([]Projected, len(descs))
	for i, d := range descs {
		out[i] = Project(d, width, height)
	}
	return out
}
