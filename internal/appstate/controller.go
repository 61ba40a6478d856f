// Package appstate drives a spot-the-difference round from a front-end: it
// owns the session, the painter and the HUD, maps keys to actions and runs
// the shiny play window.
package appstate

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/example/spotdiff/internal/clipboard"
	"github.com/example/spotdiff/internal/game"
	"github.com/example/spotdiff/internal/notify"
	"github.com/example/spotdiff/internal/render"
)

// BoardGap separates the two panes in exported boards.
const BoardGap = 16

// BoardBackground fills the gap in exported boards.
var BoardBackground = color.RGBA{0x2c, 0x3e, 0x50, 0xff}

// messageTTL is how long a HUD message stays on screen.
const messageTTL = 3 * time.Second

// ErrQuit is returned by Action when the player asked to leave.
var ErrQuit = errors.New("quit")

var (
	writeClipboard = clipboard.WriteImage
	now            = time.Now
)

// HUD keeps the transient message line. It implements game.Messenger.
type HUD struct {
	mu    sync.Mutex
	text  string
	until time.Time
}

// Message shows text for a few seconds.
func (h *HUD) Message(text string) {
	h.mu.Lock()
	h.text = text
	h.until = now().Add(messageTTL)
	h.mu.Unlock()
}

// Current returns the message still on screen, if any.
func (h *HUD) Current() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.text == "" || !now().Before(h.until) {
		return ""
	}
	return h.text
}

// Clear drops the current message.
func (h *HUD) Clear() {
	h.mu.Lock()
	h.text = ""
	h.mu.Unlock()
}

// StatusLine summarizes progress, e.g. "Found 2/5  Lives ♥♥♥".
func StatusLine(p game.Progress) string {
	return fmt.Sprintf("Found %d/%d  Lives %s", p.Found, p.Total, strings.Repeat("♥", p.Lives()))
}

// Overlay returns the end-of-round banner, or false while playing.
func Overlay(p game.Progress) (title, sub string, ok bool) {
	switch p.State {
	case game.Complete:
		return "All differences found!", "r: play again  q: quit", true
	case game.Failed:
		return fmt.Sprintf("%d mistakes... too bad!", p.Mistakes), "r: try again  q: quit", true
	default:
		return "", "", false
	}
}

// Controller binds a session to the painter, HUD and side channels shared
// by every front-end.
type Controller struct {
	Session  *game.Session
	Painter  *render.Painter
	HUD      *HUD
	Notifier *notify.Notifier

	// Output is the save path; empty means a timestamped file in SaveDir.
	Output  string
	SaveDir string
	Version string
	// Rounds reports the lifetime play counter for the version screen.
	Rounds func() int
}

// Click forwards a click in right-pane pixels to the session.
func (c *Controller) Click(x, y float64) game.Outcome {
	out := c.Session.Click(x, y)
	appLog.Debug().Float64("x", x).Float64("y", y).Stringer("outcome", out.Kind).Msg("click")
	return out
}

// Keys lists the action bound to each key rune.
var Keys = map[rune]string{
	'h': "hint",
	'r': "restart",
	'c': "copy",
	's': "save",
	'v': "version",
	'q': "quit",
}

// Help is the key legend shown under the panes.
const Help = "h:hint  r:restart  c:copy  s:save  v:version  q:quit"

// Key runs the action bound to r. Unbound keys are ignored.
func (c *Controller) Key(r rune) error {
	name, ok := Keys[r]
	if !ok {
		return nil
	}
	return c.Action(name)
}

// Action runs a named action. It returns ErrQuit for "quit".
func (c *Controller) Action(name string) error {
	switch name {
	case "hint":
		if !c.Session.HintMessage() {
			c.HUD.Message("No hint yet: find more differences first")
		}
	case "restart":
		if err := c.Session.Reset(); err != nil {
			c.HUD.Message("Could not start a new round")
			return err
		}
		c.HUD.Clear()
	case "copy":
		return c.Copy()
	case "save":
		_, err := c.Save()
		return err
	case "version":
		c.HUD.Message(c.versionText())
	case "quit":
		return ErrQuit
	default:
		return fmt.Errorf("unknown action %q", name)
	}
	return nil
}

func (c *Controller) versionText() string {
	v := c.Version
	if v == "" {
		v = "dev"
	}
	if c.Rounds == nil {
		return "spotdiff " + v
	}
	return fmt.Sprintf("spotdiff %s  %d rounds played", v, c.Rounds())
}

// Board composes both panes as shown to the player.
func (c *Controller) Board() *image.RGBA {
	return c.Painter.Board(BoardGap, BoardBackground)
}

// Copy places the board on the clipboard.
func (c *Controller) Copy() error {
	if err := writeClipboard(c.Board()); err != nil {
		appLog.Warn().Err(err).Msg("copy board")
		c.HUD.Message("Copy failed")
		return err
	}
	c.HUD.Message("Board copied to clipboard")
	c.Notifier.Copy("board")
	return nil
}

// Save writes the board as PNG and returns the path used.
func (c *Controller) Save() (string, error) {
	path := c.Output
	if path == "" {
		path = filepath.Join(c.SaveDir, "spotdiff-"+now().Format("20060102-150405")+".png")
	}
	if err := writePNG(path, c.Board()); err != nil {
		appLog.Warn().Err(err).Str("path", path).Msg("save board")
		c.HUD.Message("Save failed")
		return "", err
	}
	c.HUD.Message("Saved " + path)
	c.Notifier.Save(path)
	return path, nil
}

func writePNG(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(out, img); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
