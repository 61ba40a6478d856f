package scene

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/colornames"
)

func TestBeachZones(t *testing.T) {
	img := Beach(200, 400)
	if !img.Bounds().Eq(image.Rect(0, 0, 200, 400)) {
		t.Fatalf("bounds %v", img.Bounds())
	}
	if got := img.RGBAAt(190, 390); got != colornames.Tan {
		t.Fatalf("sand strip = %+v", got)
	}
	if got := img.RGBAAt(190, 200); got != colornames.Steelblue {
		t.Fatalf("right water = %+v", got)
	}
	if got := img.RGBAAt(100, 220); got != colornames.Peachpuff {
		t.Fatalf("figure torso = %+v", got)
	}
}

func TestLoadRoundTrip(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 15, 25))
	src.Set(5, 5, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	path := filepath.Join(t.TempDir(), "base.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, src); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	img, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !img.Bounds().Eq(image.Rect(0, 0, 10, 20)) {
		t.Fatalf("bounds %v not rebased", img.Bounds())
	}
	if got := img.RGBAAt(0, 0); got != (color.RGBA{R: 10, G: 20, B: 30, A: 255}) {
		t.Fatalf("pixel %+v", got)
	}
}

func TestOpenFallsBackToBeach(t *testing.T) {
	img, err := Open("")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if img.Bounds().Dx() != DefaultWidth || img.Bounds().Dy() != DefaultHeight {
		t.Fatalf("bounds %v", img.Bounds())
	}
	if _, err := Open(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Fatalf("missing file accepted")
	}
}
