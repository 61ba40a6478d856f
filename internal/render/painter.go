package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"sync"

	"github.com/example/spotdiff/internal/hittest"
	"github.com/example/spotdiff/internal/layout"
)

const (
	markerWidth     = 5
	markerCircleGap = 10
	markerBoxGap    = 5
	labelLift       = 10
)

// DefaultMarkerColor is the stroke and label colour of found markers (#e74c3c).
var DefaultMarkerColor = color.RGBA{0xe7, 0x4c, 0x3c, 0xff}

// Options configure a Painter.
type Options struct {
	// Marker colours found markers and labels.
	Marker color.Color
	// SoftFrom is the first tier painted with feathered edges.
	SoftFrom layout.Tier
	// SoftRadius is the feather radius in pixels.
	SoftRadius int
}

// DefaultOptions returns the standard marker colour and feathering.
func DefaultOptions() Options {
	return Options{Marker: DefaultMarkerColor, SoftFrom: layout.IQ120, SoftRadius: 1}
}

// Painter draws a round onto two panes: the untouched reference on the left
// and the interactive copy carrying the differences on the right. It is safe
// to read panes from one goroutine while another paints.
type Painter struct {
	mu    sync.Mutex
	base  *image.RGBA
	left  *image.RGBA
	right *image.RGBA
	opts  Options
}

// NewPainter copies base into both panes.
func NewPainter(base image.Image, opts Options) *Painter {
	if opts.Marker == nil {
		opts.Marker = DefaultMarkerColor
	}
	b := base.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), base, b.Min, draw.Src)
	p := &Painter{base: rgba, opts: opts}
	p.left = clone(rgba)
	p.right = clone(rgba)
	return p
}

func clone(img *image.RGBA) *image.RGBA {
	out := image.NewRGBA(img.Bounds())
	copy(out.Pix, img.Pix)
	return out
}

// Size returns the pane size in pixels.
func (p *Painter) Size() (int, int) {
	return p.base.Bounds().Dx(), p.base.Bounds().Dy()
}

// PaintRound resets both panes from the base picture and paints every
// descriptor onto the right pane.
func (p *Painter) PaintRound(descs []layout.Descriptor, shapes []hittest.Projected) {
	p.mu.Lock()
	defer p.mu.Unlock()
	copy(p.left.Pix, p.base.Pix)
	copy(p.right.Pix, p.base.Pix)
	for i, d := range descs {
		if i >= len(shapes) {
			break
		}
		mask := shapeMask(d.Shape, shapes[i])
		if p.opts.SoftRadius > 0 && p.opts.SoftFrom.Valid() && d.Tier >= p.opts.SoftFrom {
			mask = soften(mask, p.opts.SoftRadius)
		}
		fillMask(p.right, mask, d.Color)
	}
	renderLog.Debug().Int("differences", len(descs)).Msg("round painted")
}

// MarkFound strokes the found marker and its tier label on both panes.
func (p *Painter) MarkFound(d layout.Descriptor, s hittest.Projected) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, pane := range []*image.RGBA{p.left, p.right} {
		drawMarker(pane, d, s, p.opts.Marker)
	}
}

// Reveal marks every descriptor as if it had been found.
func (p *Painter) Reveal(descs []layout.Descriptor, shapes []hittest.Projected) {
	for i, d := range descs {
		if i < len(shapes) {
			p.MarkFound(d, shapes[i])
		}
	}
}

// Panes returns copies of the left and right panes.
func (p *Painter) Panes() (*image.RGBA, *image.RGBA) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return clone(p.left), clone(p.right)
}

// Board lays both panes side by side with gap pixels of bg between them.
func (p *Painter) Board(gap int, bg color.Color) *image.RGBA {
	left, right := p.Panes()
	return Compose(left, right, gap, bg, ShadowOptions{})
}

func shapeMask(s layout.Shape, px hittest.Projected) *image.Alpha {
	switch v := px.(type) {
	case hittest.PixelCircle:
		return circleMask(v.CX, v.CY, v.Radius)
	case hittest.PixelBox:
		switch s.(type) {
		case layout.Ellipse:
			cx, cy := v.Center()
			return ellipseMask(cx, cy, v.W/2, v.H/2)
		case layout.Triangle:
			return triangleMask(v.X, v.Y, v.W, v.H)
		case layout.Rect:
			return rectMask(v.X, v.Y, v.W, v.H)
		default:
			panic(fmt.Sprintf("render: %T projected to a box", s))
		}
	default:
		panic(fmt.Sprintf("render: unhandled projection %T", px))
	}
}

func drawMarker(img *image.RGBA, d layout.Descriptor, s hittest.Projected, col color.Color) {
	var lx, ly int
	switch v := s.(type) {
	case hittest.PixelCircle:
		cx, cy := int(math.Round(v.CX)), int(math.Round(v.CY))
		DrawCircle(img, cx, cy, int(math.Round(v.Radius))+markerCircleGap, col, markerWidth)
		lx, ly = cx, cy
	case hittest.PixelBox:
		b := v.Inflate(markerBoxGap)
		r := image.Rect(int(math.Round(b.X)), int(math.Round(b.Y)), int(math.Round(b.Right())), int(math.Round(b.Bottom())))
		DrawRect(img, r, col, markerWidth)
		lx, ly = int(math.Round(v.X)), int(math.Round(v.Y))
	default:
		panic(fmt.Sprintf("render: unhandled projection %T", s))
	}
	DrawText(img, lx, ly-labelLift, d.Tier.String(), col)
}
