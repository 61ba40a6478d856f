package main

import (
	"flag"
	"fmt"

	"github.com/example/spotdiff/internal/config"
)

// configCmd prints or saves the effective configuration.
type configCmd struct {
	action string
	path   string
	*root
	fs *flag.FlagSet
}

func (c *configCmd) FlagSet() *flag.FlagSet { return c.fs }
func (c *configCmd) Program() string        { return c.root.subcommand("config") }

func parseConfigCmd(args []string, r *root) (*configCmd, error) {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	c := &configCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.path, "path", "", "file written by save; defaults to the loaded config or ~/.config/spotdiff/config.rc")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	c.action = "print"
	if fs.NArg() > 0 {
		c.action = fs.Arg(0)
	}
	switch c.action {
	case "print", "save":
	default:
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *configCmd) target() string {
	if c.path != "" {
		return c.path
	}
	if c.root.loader != nil {
		if p := c.root.loader.GetConfigPath(); p != "" {
			return p
		}
	}
	return config.DefaultPath()
}

func (c *configCmd) Run() error {
	if c.action == "print" {
		_, err := fmt.Fprint(c.root.stdout, c.root.config.String())
		return err
	}
	path := c.target()
	if path == "" {
		return fmt.Errorf("no config location; pass -path")
	}
	if err := config.Save(c.root.config, path); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	cliLog.Info().Str("path", path).Msg("config saved")
	_, err := fmt.Fprintf(c.root.stdout, "config saved to %s\n", path)
	return err
}
