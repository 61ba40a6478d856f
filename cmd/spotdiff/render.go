package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/example/spotdiff/internal/appstate"
	"github.com/example/spotdiff/internal/clipboard"
	"github.com/example/spotdiff/internal/render"
)

var writeClipboardImage = clipboard.WriteImage

// renderCmd plans a round and writes the board without opening a window.
type renderCmd struct {
	scene         sceneFlags
	output        string
	stdout        bool
	toClipboard   bool
	reveal        bool
	gap           int
	shadow        bool
	shadowRadius  int
	shadowOffset  string
	shadowPoint   image.Point
	shadowOpacity float64
	*root
	fs *flag.FlagSet
}

func (c *renderCmd) FlagSet() *flag.FlagSet { return c.fs }
func (c *renderCmd) Program() string        { return c.root.subcommand("render") }

func parseRenderCmd(args []string, r *root) (*renderCmd, error) {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	c := &renderCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	defaults := render.DefaultShadowOptions()
	c.scene.register(fs, r)
	fs.StringVar(&c.output, "output", "board.png", "write the board to this file path")
	fs.BoolVar(&c.stdout, "stdout", false, "write PNG data to stdout")
	fs.BoolVar(&c.toClipboard, "to-clipboard", false, "copy the board to the clipboard")
	fs.BoolVar(&c.reveal, "reveal", false, "mark every difference as found")
	fs.IntVar(&c.gap, "gap", appstate.BoardGap, "pixels between the two pictures")
	fs.BoolVar(&c.shadow, "shadow", false, "give each picture a drop shadow")
	fs.IntVar(&c.shadowRadius, "shadow-radius", defaults.Radius, "drop shadow blur radius in pixels")
	fs.StringVar(&c.shadowOffset, "shadow-offset", formatShadowOffset(defaults.Offset), "drop shadow offset as dx,dy")
	fs.Float64Var(&c.shadowOpacity, "shadow-opacity", defaults.Opacity, "drop shadow opacity between 0 and 1")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if err := c.scene.validate(); err != nil {
		return nil, err
	}
	pt, err := parseShadowOffset(c.shadowOffset)
	if err != nil {
		return nil, err
	}
	c.shadowPoint = pt
	if c.toClipboard && c.stdout {
		return nil, fmt.Errorf("-stdout cannot be used with -to-clipboard")
	}
	if c.shadowOpacity < 0 || c.shadowOpacity > 1 {
		return nil, fmt.Errorf("-shadow-opacity must be between 0 and 1")
	}
	return c, nil
}

func (c *renderCmd) shadowOptions() render.ShadowOptions {
	if !c.shadow {
		return render.ShadowOptions{}
	}
	return render.ShadowOptions{Radius: c.shadowRadius, Offset: c.shadowPoint, Opacity: c.shadowOpacity}
}

func (c *renderCmd) Run() error {
	k, err := c.root.newKit(&c.scene, false)
	if err != nil {
		return err
	}
	defer k.Close()
	session := k.ctl.Session
	if c.reveal {
		k.ctl.Painter.Reveal(session.Descriptors(), session.Shapes())
	}
	left, right := k.ctl.Painter.Panes()
	board := render.Compose(left, right, c.gap, appstate.BoardBackground, c.shadowOptions())

	switch {
	case c.stdout:
		return png.Encode(c.root.stdout, board)
	case c.toClipboard:
		if err := writeClipboardImage(board); err != nil {
			return fmt.Errorf("failed to copy board: %w", err)
		}
		c.root.notifier.Copy("board")
		fmt.Fprintln(os.Stderr, "board copied to clipboard")
		return nil
	}
	if err := writeBoard(c.output, board); err != nil {
		return err
	}
	c.root.notifier.Save(c.output)
	fmt.Fprintf(os.Stderr, "board written to %s\n", c.output)
	return nil
}

func writeBoard(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return f.Close()
}

func parseShadowOffset(val string) (image.Point, error) {
	parts := strings.Split(val, ",")
	if len(parts) != 2 {
		return image.Point{}, fmt.Errorf("invalid shadow offset %q", val)
	}
	vals := make([]int, 2)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return image.Point{}, fmt.Errorf("invalid shadow offset %q", val)
		}
		vals[i] = v
	}
	return image.Pt(vals[0], vals[1]), nil
}

func formatShadowOffset(pt image.Point) string {
	return fmt.Sprintf("%d,%d", pt.X, pt.Y)
}
