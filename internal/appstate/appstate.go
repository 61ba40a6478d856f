package appstate

import (
	"context"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/exp/shiny/screen"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/example/spotdiff/internal/game"
)

var (
	backdrop  = color.RGBA{0x1f, 0x2a, 0x36, 0xff}
	hudBg     = color.RGBA{0x2c, 0x3e, 0x50, 0xff}
	hudText   = color.RGBA{0xec, 0xf0, 0xf1, 0xff}
	hudAccent = color.RGBA{0xf1, 0xc4, 0x0f, 0xff}
)

var (
	hudFace     font.Face = basicfont.Face7x13
	messageFace font.Face = basicfont.Face7x13
)

func init() {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		appLog.Warn().Err(err).Msg("parse font, using basicfont")
		return
	}
	if face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: 16, DPI: 72, Hinting: font.HintingFull}); err == nil {
		hudFace = face
	}
	if face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: 40, DPI: 72, Hinting: font.HintingFull}); err == nil {
		messageFace = face
	}
}

// paintState is a snapshot handed to the paint goroutine.
type paintState struct {
	width, height int
	left, right   *image.RGBA
	progress      game.Progress
	message       string
}

func drawFrame(ctx context.Context, s screen.Screen, w screen.Window, st paintState) {
	b, err := s.NewBuffer(image.Point{st.width, st.height})
	if err != nil {
		appLog.Error().Err(err).Msg("new buffer")
		return
	}
	defer b.Release()

	renderFrame(ctx, b.RGBA(), st)
	if ctx.Err() != nil {
		return
	}
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}

// renderFrame paints everything except the upload so it can run without a
// screen.
func renderFrame(ctx context.Context, dst *image.RGBA, st paintState) {
	draw.Draw(dst, dst.Bounds(), image.NewUniform(backdrop), image.Point{}, draw.Src)
	pw, ph := st.left.Bounds().Dx(), st.left.Bounds().Dy()
	f := layoutFrame(st.width, st.height, pw, ph)

	xdraw.ApproxBiLinear.Scale(dst, f.left, st.left, st.left.Bounds(), draw.Src, nil)
	if ctx.Err() != nil {
		return
	}
	xdraw.ApproxBiLinear.Scale(dst, f.right, st.right, st.right.Bounds(), draw.Src, nil)
	if ctx.Err() != nil {
		return
	}

	drawHUD(dst, f.hud, st.progress, st.message)
	if title, sub, ok := Overlay(st.progress); ok {
		drawBanner(dst, f.right, title, sub)
	}
}

func drawHUD(dst *image.RGBA, r image.Rectangle, p game.Progress, message string) {
	draw.Draw(dst, r, image.NewUniform(hudBg), image.Point{}, draw.Src)
	ascent := hudFace.Metrics().Ascent.Ceil()
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(hudText), Face: hudFace}
	d.Dot = fixed.P(r.Min.X+margin, r.Min.Y+8+ascent)
	d.DrawString(StatusLine(p))
	if message != "" {
		d.Src = image.NewUniform(hudAccent)
		d.DrawString("   " + message)
	}
	d.Src = image.NewUniform(hudText)
	d.Dot = fixed.P(r.Min.X+margin, r.Max.Y-10)
	d.DrawString(Help)
}

func drawBanner(dst *image.RGBA, over image.Rectangle, title, sub string) {
	draw.Draw(dst, over, image.NewUniform(color.RGBA{0, 0, 0, 0x90}), image.Point{}, draw.Over)
	d := &font.Drawer{Dst: dst, Src: image.White, Face: messageFace}
	tw := d.MeasureString(title).Ceil()
	cx := over.Min.X + over.Dx()/2
	cy := over.Min.Y + over.Dy()/2
	d.Dot = fixed.P(cx-tw/2, cy)
	d.DrawString(title)

	d.Face = hudFace
	d.Src = image.NewUniform(hudAccent)
	sw := d.MeasureString(sub).Ceil()
	d.Dot = fixed.P(cx-sw/2, cy+hudFace.Metrics().Height.Ceil()+8)
	d.DrawString(sub)
}
