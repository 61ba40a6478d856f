package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/example/spotdiff/internal/config"
	"github.com/example/spotdiff/internal/notify"
	"github.com/example/spotdiff/internal/playcount"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

var cliLog zerolog.Logger = log.With().Str("module", "cli").Logger()

type runnable interface{ Run() error }

type root struct {
	fs       *flag.FlagSet
	program  string
	stdout   io.Writer
	config   *config.Config
	loader   *config.Loader
	notifier *notify.Notifier

	logLevel  string
	statsPath string
	audio     bool
	volume    float64
	alerts    map[notify.Event]*bool
}

func (r *root) Program() string {
	return r.program
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func (r *root) subcommand(name string) string {
	return strings.TrimSpace(strings.Join([]string{r.program, name}, " "))
}

func newRoot() *root {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	override := configPathOverride
	if v := os.Getenv("SPOTDIFF_CONFIG"); v != "" {
		override = v
	}
	loader := config.NewLoader(version, override)
	cfg, err := loader.Load()
	if err != nil {
		cliLog.Warn().Err(err).Msg("failed to load config, using defaults")
		cfg = config.New()
	}

	statsPath, err := playcount.DefaultPath()
	if err != nil {
		cliLog.Debug().Err(err).Msg("no stats location")
	}

	r := &root{
		fs:       flag.NewFlagSet("spotdiff", flag.ExitOnError),
		program:  "spotdiff",
		stdout:   os.Stdout,
		config:   cfg,
		loader:   loader,
		notifier: notify.New(notify.LoadPreferences(notify.DefaultPreferences())),
		alerts:   map[notify.Event]*bool{},
	}
	r.fs.StringVar(&r.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	r.fs.StringVar(&r.statsPath, "stats", statsPath, "play counter file; empty keeps it in memory")
	r.fs.BoolVar(&r.audio, "audio", cfg.Audio.Enabled, "play sound cues")
	r.fs.Float64Var(&r.volume, "volume", cfg.Audio.Volume, "sound volume between 0 and 1")
	defaults := map[notify.Event]bool{
		notify.EventComplete: cfg.Notify.Complete,
		notify.EventFailed:   cfg.Notify.Failed,
		notify.EventPrank:    cfg.Notify.Prank,
		notify.EventMessage:  cfg.Notify.Message,
		notify.EventSave:     cfg.Notify.Save,
		notify.EventCopy:     cfg.Notify.Copy,
	}
	for _, ev := range notify.Events() {
		v := new(bool)
		r.fs.BoolVar(v, "notify-"+string(ev), defaults[ev], fmt.Sprintf("show a desktop notification on %s", ev))
		r.alerts[ev] = v
	}
	r.fs.Usage = usageFunc(r)
	return r
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	lvl, err := zerolog.ParseLevel(r.logLevel)
	if err != nil {
		return fmt.Errorf("invalid -log-level %q: %w", r.logLevel, err)
	}
	zerolog.SetGlobalLevel(lvl)
	if r.volume < 0 || r.volume > 1 {
		return fmt.Errorf("-volume must be between 0 and 1")
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	for ev, on := range r.alerts {
		r.notifier.Enable(ev, *on)
	}

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var cmd runnable
	switch cmdName {
	case "play":
		cmd, err = parsePlayCmd(subArgs, r)
	case "tui":
		cmd, err = parseTuiCmd(subArgs, r)
	case "render":
		cmd, err = parseRenderCmd(subArgs, r)
	case "layout":
		cmd, err = parseLayoutCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "stats":
		cmd, err = parseStatsCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{root: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	defer r.notifier.Wait()
	return cmd.Run()
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
