package main

import (
	"flag"

	"github.com/example/spotdiff/internal/appstate"
	"github.com/example/spotdiff/internal/tui"
)

// playCmd opens the game window.
type playCmd struct {
	scene  sceneFlags
	output string
	*root
	fs *flag.FlagSet
}

func (p *playCmd) FlagSet() *flag.FlagSet { return p.fs }
func (p *playCmd) Program() string        { return p.root.subcommand("play") }

func parsePlayCmd(args []string, r *root) (*playCmd, error) {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	p := &playCmd{root: r, fs: fs}
	fs.Usage = usageFunc(p)
	p.scene.register(fs, r)
	fs.StringVar(&p.output, "output", "", "file written by the save key; empty uses a timestamped name in save_dir")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if err := p.scene.validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *playCmd) Run() error {
	k, err := p.root.newKit(&p.scene, true)
	if err != nil {
		return err
	}
	defer k.Close()
	k.ctl.Output = p.output
	appstate.New(k.ctl, appstate.WithTitle("Spotdiff")).Run()
	return nil
}

// tuiCmd plays in the terminal.
type tuiCmd struct {
	scene  sceneFlags
	output string
	*root
	fs *flag.FlagSet
}

func (t *tuiCmd) FlagSet() *flag.FlagSet { return t.fs }
func (t *tuiCmd) Program() string        { return t.root.subcommand("tui") }

func parseTuiCmd(args []string, r *root) (*tuiCmd, error) {
	fs := flag.NewFlagSet("tui", flag.ExitOnError)
	t := &tuiCmd{root: r, fs: fs}
	fs.Usage = usageFunc(t)
	t.scene.register(fs, r)
	fs.StringVar(&t.output, "output", "", "file written by the save key; empty uses a timestamped name in save_dir")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if err := t.scene.validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *tuiCmd) Run() error {
	k, err := t.root.newKit(&t.scene, true)
	if err != nil {
		return err
	}
	defer k.Close()
	k.ctl.Output = t.output
	return tui.Play(k.ctl)
}
