package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// LabelSize is the point size of found-marker labels.
const LabelSize = 20

var labelFace font.Face = basicfont.Face7x13

func init() {
	f, err := opentype.Parse(gobold.TTF)
	if err != nil {
		renderLog.Warn().Err(err).Msg("parse label font, using basic font")
		return
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: LabelSize, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		renderLog.Warn().Err(err).Msg("label font face, using basic font")
		return
	}
	labelFace = face
}

func setThickPixel(img *image.RGBA, x, y, thick int, col color.Color) {
	r := thick / 2
	for dx := -r; dx <= r; dx++ {
		for dy := -r; dy <= r; dy++ {
			px := x + dx
			py := y + dy
			if image.Pt(px, py).In(img.Bounds()) {
				img.Set(px, py, col)
			}
		}
	}
}

// DrawLine draws a line between the two points with the given thickness and color.
func DrawLine(img *image.RGBA, x0, y0, x1, y1 int, col color.Color, thick int) {
	dx := math.Abs(float64(x1 - x0))
	dy := math.Abs(float64(y1 - y0))
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		setThickPixel(img, x0, y0, thick, col)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func drawCircleThin(img *image.RGBA, cx, cy, r int, col color.Color) {
	x := r
	y := 0
	err := 1 - r
	for x >= y {
		pts := [][2]int{{x, y}, {y, x}, {-y, x}, {-x, y}, {-x, -y}, {-y, -x}, {y, -x}, {x, -y}}
		for _, p := range pts {
			px := cx + p[0]
			py := cy + p[1]
			if image.Pt(px, py).In(img.Bounds()) {
				img.Set(px, py, col)
			}
		}
		y++
		if err < 0 {
			err += 2*y + 1
		} else {
			x--
			err += 2 * (y - x + 1)
		}
	}
}

// DrawCircle strokes a circle centred at (cx, cy) with radius r.
func DrawCircle(img *image.RGBA, cx, cy, r int, col color.Color, thick int) {
	if thick <= 0 {
		drawCircleThin(img, cx, cy, r, col)
		return
	}
	start := -thick / 2
	for i := 0; i < thick; i++ {
		rr := r + start + i
		if rr >= 0 {
			drawCircleThin(img, cx, cy, rr, col)
		}
	}
}

// DrawRect strokes rect with the given thickness and color.
func DrawRect(img *image.RGBA, rect image.Rectangle, col color.Color, thick int) {
	DrawLine(img, rect.Min.X, rect.Min.Y, rect.Max.X-1, rect.Min.Y, col, thick)
	DrawLine(img, rect.Max.X-1, rect.Min.Y, rect.Max.X-1, rect.Max.Y-1, col, thick)
	DrawLine(img, rect.Max.X-1, rect.Max.Y-1, rect.Min.X, rect.Max.Y-1, col, thick)
	DrawLine(img, rect.Min.X, rect.Max.Y-1, rect.Min.X, rect.Min.Y, col, thick)
}

// DrawText renders text with its baseline starting at (x, y).
func DrawText(img *image.RGBA, x, y int, text string, col color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: labelFace,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

// MeasureText returns the advance width of text in the label face.
func MeasureText(text string) int {
	d := &font.Drawer{Face: labelFace}
	return d.MeasureString(text).Ceil()
}

// Masks below cover whole pixels whose centre lies inside the shape.

func circleMask(cx, cy, r float64) *image.Alpha {
	rect := image.Rect(int(math.Floor(cx-r)), int(math.Floor(cy-r)), int(math.Ceil(cx+r))+1, int(math.Ceil(cy+r))+1)
	m := image.NewAlpha(rect)
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			dx := float64(x) + 0.5 - cx
			dy := float64(y) + 0.5 - cy
			if dx*dx+dy*dy <= r*r {
				m.SetAlpha(x, y, color.Alpha{A: 255})
			}
		}
	}
	return m
}

func ellipseMask(cx, cy, rx, ry float64) *image.Alpha {
	rect := image.Rect(int(math.Floor(cx-rx)), int(math.Floor(cy-ry)), int(math.Ceil(cx+rx))+1, int(math.Ceil(cy+ry))+1)
	m := image.NewAlpha(rect)
	if rx <= 0 || ry <= 0 {
		return m
	}
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			dx := (float64(x) + 0.5 - cx) / rx
			dy := (float64(y) + 0.5 - cy) / ry
			if dx*dx+dy*dy <= 1 {
				m.SetAlpha(x, y, color.Alpha{A: 255})
			}
		}
	}
	return m
}

func rectMask(x, y, w, h float64) *image.Alpha {
	rect := image.Rect(int(math.Round(x)), int(math.Round(y)), int(math.Round(x+w)), int(math.Round(y+h)))
	if rect.Empty() {
		rect = image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+1, rect.Min.Y+1)
	}
	m := image.NewAlpha(rect)
	draw.Draw(m, rect, image.Opaque, image.Point{}, draw.Src)
	return m
}

// triangleMask fills the right-pointing triangle (x, y), (x+w, y+h/2), (x, y+h).
func triangleMask(x, y, w, h float64) *image.Alpha {
	rect := image.Rect(int(math.Floor(x)), int(math.Floor(y)), int(math.Ceil(x+w))+1, int(math.Ceil(y+h))+1)
	m := image.NewAlpha(rect)
	if w <= 0 || h <= 0 {
		return m
	}
	mid := y + h/2
	for py := rect.Min.Y; py < rect.Max.Y; py++ {
		fy := float64(py) + 0.5
		if fy < y || fy > y+h {
			continue
		}
		span := w * (1 - math.Abs(fy-mid)/(h/2))
		for px := rect.Min.X; px < rect.Max.X; px++ {
			fx := float64(px) + 0.5
			if fx >= x && fx <= x+span {
				m.SetAlpha(px, py, color.Alpha{A: 255})
			}
		}
	}
	return m
}

// fillMask blends col into dst wherever mask is set.
func fillMask(dst *image.RGBA, mask *image.Alpha, col color.Color) {
	r := mask.Bounds().Intersect(dst.Bounds())
	if r.Empty() {
		return
	}
	draw.DrawMask(dst, r, image.NewUniform(col), image.Point{}, mask, r.Min, draw.Over)
}
