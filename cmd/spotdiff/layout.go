package main

import (
	"flag"
	"fmt"
	"image/color"
	"strings"
	"text/tabwriter"

	"github.com/bytedance/sonic"

	"github.com/example/spotdiff/internal/clipboard"
	"github.com/example/spotdiff/internal/hittest"
	"github.com/example/spotdiff/internal/layout"
	"github.com/example/spotdiff/internal/render"
	"github.com/example/spotdiff/internal/scene"
)

var writeClipboardText = clipboard.WriteText

// layoutCmd prints the differences a seed produces.
type layoutCmd struct {
	seed        uint64
	width       int
	height      int
	json        bool
	toClipboard bool
	*root
	fs *flag.FlagSet
}

func (l *layoutCmd) FlagSet() *flag.FlagSet { return l.fs }
func (l *layoutCmd) Program() string        { return l.root.subcommand("layout") }

func parseLayoutCmd(args []string, r *root) (*layoutCmd, error) {
	fs := flag.NewFlagSet("layout", flag.ExitOnError)
	l := &layoutCmd{root: r, fs: fs}
	fs.Usage = usageFunc(l)
	fs.Uint64Var(&l.seed, "seed", 0, "random seed; 0 picks one")
	fs.IntVar(&l.width, "width", scene.DefaultWidth, "canvas width used for pixel coordinates")
	fs.IntVar(&l.height, "height", scene.DefaultHeight, "canvas height used for pixel coordinates")
	fs.BoolVar(&l.json, "json", false, "print JSON instead of a table")
	fs.BoolVar(&l.toClipboard, "to-clipboard", false, "copy the output to the clipboard as text")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if l.width <= 0 || l.height <= 0 {
		return nil, fmt.Errorf("-width and -height must be positive")
	}
	return l, nil
}

type layoutBox struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

type layoutPixels struct {
	CX     float64    `json:"cx,omitempty"`
	CY     float64    `json:"cy,omitempty"`
	Radius float64    `json:"radius,omitempty"`
	Box    *layoutBox `json:"box,omitempty"`
}

type layoutEntry struct {
	ID     int          `json:"id"`
	Name   string       `json:"name"`
	Tier   int          `json:"tier"`
	Kind   string       `json:"kind"`
	Color  string       `json:"color"`
	Bounds layoutBox    `json:"bounds"`
	Pixels layoutPixels `json:"pixels"`
}

type layoutReport struct {
	Seed        uint64        `json:"seed,omitempty"`
	Width       int           `json:"width"`
	Height      int           `json:"height"`
	Exhausted   []int         `json:"exhausted,omitempty"`
	Differences []layoutEntry `json:"differences"`
}

func (l *layoutCmd) report() (layoutReport, error) {
	var src layout.Rand = layout.DefaultRand()
	if l.seed != 0 {
		src = layout.Seeded(l.seed)
	}
	plan, err := l.root.config.Planner(src).Plan(layout.Tiers())
	if err != nil {
		return layoutReport{}, err
	}
	if err := plan.Err(); err != nil {
		cliLog.Warn().Err(err).Msg("layout has overlapping differences")
	}
	rep := layoutReport{Seed: l.seed, Width: l.width, Height: l.height}
	for _, t := range plan.Exhausted {
		rep.Exhausted = append(rep.Exhausted, int(t))
	}
	w, h := float64(l.width), float64(l.height)
	for _, d := range plan.Descriptors {
		b := layout.Bounds(d.Shape)
		e := layoutEntry{
			ID:     d.ID,
			Name:   d.Name,
			Tier:   int(d.Tier),
			Kind:   d.Shape.Kind().String(),
			Color:  render.FormatColor(color.RGBA(d.Color)),
			Bounds: layoutBox{X: b.X, Y: b.Y, W: b.W, H: b.H},
		}
		switch p := hittest.Project(d, w, h).(type) {
		case hittest.PixelCircle:
			e.Pixels = layoutPixels{CX: p.CX, CY: p.CY, Radius: p.Radius}
		case hittest.PixelBox:
			e.Pixels = layoutPixels{Box: &layoutBox{X: p.X, Y: p.Y, W: p.W, H: p.H}}
		}
		rep.Differences = append(rep.Differences, e)
	}
	return rep, nil
}

func (l *layoutCmd) Run() error {
	rep, err := l.report()
	if err != nil {
		return err
	}
	var text string
	if l.json {
		data, err := sonic.ConfigStd.MarshalIndent(rep, "", "  ")
		if err != nil {
			return fmt.Errorf("encode layout: %w", err)
		}
		text = string(data) + "\n"
	} else {
		text = formatLayout(rep)
	}
	if l.toClipboard {
		if err := writeClipboardText(text); err != nil {
			return fmt.Errorf("failed to copy layout: %w", err)
		}
		l.root.notifier.Copy("layout")
	}
	_, err = fmt.Fprint(l.root.stdout, text)
	return err
}

func formatLayout(rep layoutReport) string {
	var buf strings.Builder
	tw := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTIER\tNAME\tKIND\tCOLOR\tPIXELS")
	for _, e := range rep.Differences {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\t%s\n", e.ID, e.Tier, e.Name, e.Kind, e.Color, e.Pixels)
	}
	tw.Flush()
	return buf.String()
}

func (p layoutPixels) String() string {
	if b := p.Box; b != nil {
		return fmt.Sprintf("box %.0f,%.0f %.0fx%.0f", b.X, b.Y, b.W, b.H)
	}
	return fmt.Sprintf("circle %.0f,%.0f r%.0f", p.CX, p.CY, p.Radius)
}
