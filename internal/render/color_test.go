package render

import (
	"image/color"
	"testing"
)

func TestParseColor(t *testing.T) {
	cases := []struct {
		in   string
		want color.RGBA
		ok   bool
	}{
		{"tomato", color.RGBA{255, 99, 71, 255}, true},
		{" Red ", color.RGBA{255, 0, 0, 255}, true},
		{"#e74c3c", DefaultMarkerColor, true},
		{"#00000080", color.RGBA{0, 0, 0, 128}, true},
		{"#zzzzzz", color.RGBA{}, false},
		{"", color.RGBA{}, false},
		{"not-a-colour", color.RGBA{}, false},
	}
	for _, tc := range cases {
		got, err := ParseColor(tc.in)
		if (err == nil) != tc.ok {
			t.Fatalf("ParseColor(%q) error = %v", tc.in, err)
		}
		if tc.ok && got != tc.want {
			t.Errorf("ParseColor(%q) = %+v, want %+v", tc.in, got, tc.want)
		}
	}
	if s := FormatColor(DefaultMarkerColor); s != "#e74c3c" {
		t.Errorf("FormatColor = %q", s)
	}
}
