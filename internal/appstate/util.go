package appstate

import "image"

const (
	margin    = 12
	hudHeight = 56
)

// frame is the window layout: both panes scaled by the same factor, side by
// side above the HUD strip.
type frame struct {
	scale       float64
	left, right image.Rectangle
	hud         image.Rectangle
}

// layoutFrame fits two paneW×paneH panes into a winW×winH window.
func layoutFrame(winW, winH, paneW, paneH int) frame {
	availW := winW - 3*margin
	availH := winH - hudHeight - 2*margin
	if availW < 2 {
		availW = 2
	}
	if availH < 1 {
		availH = 1
	}
	zx := float64(availW) / float64(2*paneW)
	zy := float64(availH) / float64(paneH)
	scale := zx
	if zy < scale {
		scale = zy
	}
	w := int(float64(paneW) * scale)
	h := int(float64(paneH) * scale)
	x0 := (winW - (2*w + margin)) / 2
	left := image.Rect(x0, margin, x0+w, margin+h)
	right := left.Add(image.Pt(w+margin, 0))
	return frame{
		scale: scale,
		left:  left,
		right: right,
		hud:   image.Rect(0, winH-hudHeight, winW, winH),
	}
}

// toPane maps a window point over the right pane back to pane pixels.
func (f frame) toPane(p image.Point) (x, y float64, ok bool) {
	if !p.In(f.right) || f.scale <= 0 {
		return 0, 0, false
	}
	return float64(p.X-f.right.Min.X) / f.scale, float64(p.Y-f.right.Min.Y) / f.scale, true
}

// windowSize is the initial window size for panes shown at scale 1.
func windowSize(paneW, paneH int) image.Point {
	return image.Pt(2*paneW+3*margin, paneH+hudHeight+2*margin)
}
