package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/example/spotdiff/internal/game"
	"github.com/example/spotdiff/internal/hittest"
	"github.com/example/spotdiff/internal/layout"
	"github.com/example/spotdiff/internal/render"
)

// Game holds round tuning.
type Game struct {
	MaxMistakes        int
	MaxRetries         int
	EasterEggThreshold int
	CircleTolerance    float64
	BoxPadding         float64
	Padding            float64
}

// Notify holds notification settings.
type Notify struct {
	Complete bool
	Failed   bool
	Prank    bool
	Message  bool
	Save     bool
	Copy     bool
}

// Audio holds sound settings.
type Audio struct {
	Enabled bool
	Volume  float64
}

// Marker holds found-marker styling.
type Marker struct {
	Color      color.RGBA
	SoftFrom   layout.Tier
	SoftRadius int
}

// Config holds the application configuration.
type Config struct {
	Image   string
	SaveDir string
	Game    Game
	Notify  Notify
	Audio   Audio
	Marker  Marker
}

// New creates a new Config with defaults.
func New() *Config {
	ro := render.DefaultOptions()
	return &Config{
		Game: Game{
			MaxMistakes:        game.MaxMistakes,
			MaxRetries:         layout.MaxRetries,
			EasterEggThreshold: game.EasterEggThreshold,
			CircleTolerance:    hittest.CircleTolerance,
			BoxPadding:         hittest.BoxPadding,
			Padding:            layout.Padding,
		},
		Notify: Notify{Complete: true, Failed: true},
		Audio:  Audio{Enabled: true, Volume: 1},
		Marker: Marker{
			Color:      render.DefaultMarkerColor,
			SoftFrom:   ro.SoftFrom,
			SoftRadius: ro.SoftRadius,
		},
	}
}

// RenderOptions converts the marker section for the painter.
func (c *Config) RenderOptions() render.Options {
	return render.Options{Marker: c.Marker.Color, SoftFrom: c.Marker.SoftFrom, SoftRadius: c.Marker.SoftRadius}
}

// Resolver builds a hit resolver from the game section.
func (c *Config) Resolver() *hittest.Resolver {
	r := hittest.NewResolver()
	r.CircleTolerance = c.Game.CircleTolerance
	r.BoxPadding = c.Game.BoxPadding
	return r
}

// Planner builds a layout planner over src using the game section.
func (c *Config) Planner(src layout.Rand) *layout.Planner {
	p := layout.NewPlanner(src)
	p.MaxRetries = c.Game.MaxRetries
	p.Padding = c.Game.Padding
	return p
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Image != "" {
		fmt.Fprintf(&sb, "image = %s\n", c.Image)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	sb.WriteString("\n")

	sb.WriteString("[game]\n")
	fmt.Fprintf(&sb, "max_mistakes = %d\n", c.Game.MaxMistakes)
	fmt.Fprintf(&sb, "max_retries = %d\n", c.Game.MaxRetries)
	fmt.Fprintf(&sb, "easter_egg_threshold = %d\n", c.Game.EasterEggThreshold)
	fmt.Fprintf(&sb, "circle_tolerance = %s\n", formatFloat(c.Game.CircleTolerance))
	fmt.Fprintf(&sb, "box_padding = %s\n", formatFloat(c.Game.BoxPadding))
	fmt.Fprintf(&sb, "padding = %s\n", formatFloat(c.Game.Padding))
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "complete = %v\n", c.Notify.Complete)
	fmt.Fprintf(&sb, "failed = %v\n", c.Notify.Failed)
	fmt.Fprintf(&sb, "prank = %v\n", c.Notify.Prank)
	fmt.Fprintf(&sb, "message = %v\n", c.Notify.Message)
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	sb.WriteString("[audio]\n")
	fmt.Fprintf(&sb, "enabled = %v\n", c.Audio.Enabled)
	fmt.Fprintf(&sb, "volume = %s\n", formatFloat(c.Audio.Volume))
	sb.WriteString("\n")

	sb.WriteString("[marker]\n")
	fmt.Fprintf(&sb, "color = %s\n", render.FormatColor(c.Marker.Color))
	fmt.Fprintf(&sb, "soft_from = %d\n", int(c.Marker.SoftFrom))
	fmt.Fprintf(&sb, "soft_radius = %d\n", c.Marker.SoftRadius)

	return sb.String()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
