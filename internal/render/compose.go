package render

import (
	"image"
	"image/color"
	"image/draw"
)

// Compose places left and right next to each other on a bg canvas with gap
// pixels between them. When shadow has a positive opacity each pane casts a
// drop shadow and the canvas grows to fit it.
func Compose(left, right *image.RGBA, gap int, bg color.Color, shadow ShadowOptions) *image.RGBA {
	if gap < 0 {
		gap = 0
	}
	l := ApplyShadow(left, shadow)
	r := ApplyShadow(right, shadow)
	if l.Image == nil || r.Image == nil {
		return nil
	}
	lb, rb := l.Image.Bounds(), r.Image.Bounds()
	w := lb.Dx() + gap + rb.Dx()
	h := lb.Dy()
	if rb.Dy() > h {
		h = rb.Dy()
	}
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	if bg == nil {
		bg = color.White
	}
	draw.Draw(out, out.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	draw.Draw(out, lb.Sub(lb.Min), l.Image, lb.Min, draw.Over)
	draw.Draw(out, rb.Sub(rb.Min).Add(image.Pt(lb.Dx()+gap, 0)), r.Image, rb.Min, draw.Over)
	return out
}

