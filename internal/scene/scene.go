// Package scene provides the base picture a round is painted on.
package scene

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"

	"golang.org/x/image/colornames"
)

// DefaultWidth and DefaultHeight size the procedural backdrop.
const (
	DefaultWidth  = 640
	DefaultHeight = 800
)

// Beach paints a procedural beach aligned with the placement zones: sky on
// top, water bands on both sides, a sand strip along the bottom, a palm on
// the left and a figure standing in the centre.
func Beach(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	fw, fh := float64(w), float64(h)

	// sky gradient down to the horizon
	horizon := int(0.28 * fh)
	top := colornames.Deepskyblue
	bottom := colornames.Lightskyblue
	for y := 0; y < horizon; y++ {
		t := float64(y) / float64(horizon)
		fill(img, image.Rect(0, y, w, y+1), lerp(top, bottom, t))
	}
	fill(img, image.Rect(0, horizon, w, int(0.7*fh)), colornames.Steelblue)
	fill(img, image.Rect(0, int(0.7*fh), w, h), colornames.Burlywood)
	fill(img, image.Rect(0, int(0.84*fh), w, h), colornames.Tan)

	// clouds
	ellipse(img, 0.2*fw, 0.09*fh, 0.08*fw, 0.03*fh, colornames.White)
	ellipse(img, 0.78*fw, 0.12*fh, 0.1*fw, 0.035*fh, colornames.Whitesmoke)

	// palm trunk on the left and its crown in the tree zone
	trunk := image.Rect(int(0.08*fw), int(0.2*fh), int(0.13*fw), int(0.86*fh))
	fill(img, trunk, colornames.Saddlebrown)
	for i := 0; i < 5; i++ {
		a := float64(i) * math.Pi / 4
		ellipse(img, 0.105*fw+math.Cos(a)*0.06*fw, 0.2*fh+math.Sin(a)*0.03*fh-0.02*fh, 0.07*fw, 0.025*fh, colornames.Forestgreen)
	}

	// figure in the protected centre
	skin := colornames.Peachpuff
	ellipse(img, 0.5*fw, 0.27*fh, 0.07*fw, 0.06*fh, skin)
	ellipse(img, 0.5*fw, 0.56*fh, 0.16*fw, 0.24*fh, skin)
	fill(img, image.Rect(int(0.42*fw), int(0.46*fh), int(0.58*fw), int(0.54*fh)), colornames.Crimson)
	fill(img, image.Rect(int(0.43*fw), int(0.68*fh), int(0.57*fw), int(0.76*fh)), colornames.Crimson)
	fill(img, image.Rect(int(0.42*fw), int(0.76*fh), int(0.48*fw), int(0.9*fh)), skin)
	fill(img, image.Rect(int(0.52*fw), int(0.76*fh), int(0.58*fw), int(0.9*fh)), skin)
	ellipse(img, 0.6*fw, 0.2*fh, 0.06*fw, 0.1*fh, colornames.Sienna)
	return img
}

// Load decodes a PNG or JPEG file into an RGBA image anchored at the origin.
func Load(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scene: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			sceneLog.Warn().Err(cerr).Str("path", path).Msg("close scene")
		}
	}()
	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode scene %q: %w", path, err)
	}
	sceneLog.Debug().Str("path", path).Str("format", format).Msg("scene loaded")
	return Rebase(img), nil
}

// Rebase copies img into an RGBA image whose bounds start at the origin.
func Rebase(img image.Image) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

// Open returns the picture at path, or the procedural beach when path is
// empty.
func Open(path string) (*image.RGBA, error) {
	if path == "" {
		return Beach(DefaultWidth, DefaultHeight), nil
	}
	return Load(path)
}

func fill(img *image.RGBA, r image.Rectangle, c color.Color) {
	draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
}

func ellipse(img *image.RGBA, cx, cy, rx, ry float64, c color.Color) {
	if rx <= 0 || ry <= 0 {
		return
	}
	b := img.Bounds()
	for y := int(cy - ry); y <= int(cy+ry); y++ {
		dy := (float64(y) - cy) / ry
		if dy*dy > 1 {
			continue
		}
		span := rx * math.Sqrt(1-dy*dy)
		for x := int(cx - span); x <= int(cx+span); x++ {
			if image.Pt(x, y).In(b) {
				img.Set(x, y, c)
			}
		}
	}
}

func lerp(a, b color.RGBA, t float64) color.RGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return color.RGBA{mix(a.R, b.R), mix(a.G, b.G), mix(a.B, b.B), 255}
}
