package main

import (
	"flag"
	"fmt"
	"image"
	"strconv"

	"github.com/example/spotdiff/internal/appstate"
	"github.com/example/spotdiff/internal/audio"
	"github.com/example/spotdiff/internal/clipboard"
	"github.com/example/spotdiff/internal/game"
	"github.com/example/spotdiff/internal/layout"
	"github.com/example/spotdiff/internal/notify"
	"github.com/example/spotdiff/internal/playcount"
	"github.com/example/spotdiff/internal/render"
	"github.com/example/spotdiff/internal/scene"
)

var readClipboard = clipboard.ReadImage

// sceneFlags choose the base picture and the random source.
type sceneFlags struct {
	image         string
	fromClipboard bool
	seed          uint64
}

func (s *sceneFlags) register(fs *flag.FlagSet, r *root) {
	def := ""
	if r != nil && r.config != nil {
		def = r.config.Image
	}
	fs.StringVar(&s.image, "image", def, "base picture (PNG or JPEG); empty paints the built-in beach")
	fs.BoolVar(&s.fromClipboard, "from-clipboard", false, "use the clipboard image as the base picture")
	fs.Uint64Var(&s.seed, "seed", 0, "random seed for a reproducible round; 0 picks one")
}

func (s *sceneFlags) validate() error {
	if s.fromClipboard && s.image != "" {
		return fmt.Errorf("-from-clipboard cannot be used with -image")
	}
	return nil
}

func (s *sceneFlags) base() (*image.RGBA, error) {
	if s.fromClipboard {
		img, err := readClipboard()
		if err != nil {
			return nil, fmt.Errorf("read clipboard: %w", err)
		}
		return scene.Rebase(img), nil
	}
	return scene.Open(s.image)
}

func (s *sceneFlags) rand() layout.Rand {
	if s.seed == 0 {
		return layout.DefaultRand()
	}
	return layout.Seeded(s.seed)
}

// kit is everything a front-end needs for one game.
type kit struct {
	ctl     *appstate.Controller
	player  *audio.Player
	counter *playcount.Store
}

func (k *kit) Close() {
	if k.player != nil {
		k.player.Close()
	}
}

// newKit builds the session over the chosen scene. Interactive kits also get
// sound, desktop notifications and the play counter.
func (r *root) newKit(s *sceneFlags, interactive bool) (*kit, error) {
	base, err := s.base()
	if err != nil {
		return nil, err
	}
	cfg := r.config
	painter := render.NewPainter(base, cfg.RenderOptions())
	hud := &appstate.HUD{}
	k := &kit{}
	opts := game.Options{
		Planner:            cfg.Planner(s.rand()),
		Resolver:           cfg.Resolver(),
		MaxMistakes:        cfg.Game.MaxMistakes,
		EasterEggThreshold: cfg.Game.EasterEggThreshold,
		Width:              float64(base.Bounds().Dx()),
		Height:             float64(base.Bounds().Dy()),
		Renderer:           painter,
		Messenger:          hud,
	}

	var session *game.Session
	if interactive {
		k.player = audio.New(r.audio, r.volume)
		if err := k.player.Init(); err != nil {
			cliLog.Warn().Err(err).Msg("audio disabled")
		}
		r.notifier.SetDetail(func(ev notify.Event) string {
			if session == nil {
				return ""
			}
			p := session.Progress()
			switch ev {
			case notify.EventComplete:
				return strconv.Itoa(p.Total)
			case notify.EventFailed:
				return strconv.Itoa(p.Mistakes)
			}
			return ""
		})
		opts.Cues = game.Cues{k.player, r.notifier}
		opts.Messenger = game.Messengers{hud, r.notifier}

		store, err := playcount.Open(r.statsPath)
		if err != nil {
			cliLog.Warn().Err(err).Msg("play counter unavailable")
			store, _ = playcount.Open("")
		}
		k.counter = store
		opts.Counter = store
	}

	session, err = game.NewSession(opts)
	if err != nil {
		k.Close()
		return nil, err
	}
	k.ctl = &appstate.Controller{
		Session:  session,
		Painter:  painter,
		HUD:      hud,
		Notifier: r.notifier,
		SaveDir:  cfg.SaveDir,
		Version:  version,
	}
	if k.counter != nil {
		k.ctl.Rounds = k.counter.Count
	}
	return k, nil
}
