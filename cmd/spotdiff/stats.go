package main

import (
	"flag"
	"fmt"

	"github.com/example/spotdiff/internal/playcount"
)

// statsCmd reports how many rounds have been started.
type statsCmd struct {
	*root
	fs *flag.FlagSet
}

func (s *statsCmd) FlagSet() *flag.FlagSet { return s.fs }
func (s *statsCmd) Program() string        { return s.root.subcommand("stats") }

func parseStatsCmd(args []string, r *root) (*statsCmd, error) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	s := &statsCmd{root: r, fs: fs}
	fs.Usage = usageFunc(s)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *statsCmd) Run() error {
	store, err := playcount.Open(s.root.statsPath)
	if err != nil {
		return err
	}
	where := store.Path()
	if where == "" {
		where = "memory"
	}
	_, err = fmt.Fprintf(s.root.stdout, "rounds played: %d\nstored in: %s\n", store.Count(), where)
	return err
}
