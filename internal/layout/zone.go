package layout

import "github.com/example/spotdiff/internal/geom"

// Zone is a named rectangle of the normalized image plane used as a
// placement pool. Zones keep generated content away from the protected
// centre of the picture (x 0.25–0.75, y 0.15–0.9) where the main character
// stands.
type Zone struct {
	Name       string
	XMin, XMax float64
	YMin, YMax float64
}

var (
	ZoneSky        = Zone{Name: "sky", XMin: 0.05, XMax: 0.95, YMin: 0.05, YMax: 0.2}
	ZoneWaterLeft  = Zone{Name: "water_left", XMin: 0.05, XMax: 0.25, YMin: 0.3, YMax: 0.5}
	ZoneWaterRight = Zone{Name: "water_right", XMin: 0.75, XMax: 0.95, YMin: 0.3, YMax: 0.6}
	ZoneSandBottom = Zone{Name: "sand_bottom", XMin: 0.05, XMax: 0.95, YMin: 0.85, YMax: 0.95}
	ZoneTreeLeft   = Zone{Name: "tree_left", XMin: 0.05, XMax: 0.25, YMin: 0.05, YMax: 0.4}
)

var zones = []Zone{ZoneSky, ZoneWaterLeft, ZoneWaterRight, ZoneSandBottom, ZoneTreeLeft}

// Zones returns the catalog in a fixed order.
func Zones() []Zone {
	out := make([]Zone, len(zones))
	copy(out, zones)
	return out
}

// ZoneByName looks a zone up by its catalog name.
func ZoneByName(name string) (Zone, bool) {
	for _, z := range zones {
		if z.Name == name {
			return z, true
		}
	}
	return Zone{}, false
}

// Box returns the zone as a normalized bounding box.
func (z Zone) Box() geom.Box {
	return geom.Box{X: z.XMin, Y: z.YMin, W: z.XMax - z.XMin, H: z.YMax - z.YMin}
}

// Sample draws a uniformly distributed point inside the zone.
func (z Zone) Sample(r Rand) (float64, float64) {
	x := uniform(r, z.XMin, z.XMax)
	y := uniform(r, z.YMin, z.YMax)
	return x, y
}

func uniform(r Rand, min, max float64) float64 {
	return r.Float64()*(max-min) + min
}
