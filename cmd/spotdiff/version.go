package main

import (
	"flag"
	"fmt"
)

type versionCmd struct {
	*root
}

func (v *versionCmd) FlagSet() *flag.FlagSet { return nil }
func (v *versionCmd) Program() string        { return v.root.subcommand("version") }

func (v *versionCmd) Run() error {
	fmt.Fprintf(v.root.stdout, "%s version %s\n", v.root.program, version)
	if commit != "" {
		fmt.Fprintf(v.root.stdout, "commit: %s\n", commit)
	}
	if date != "" {
		fmt.Fprintf(v.root.stdout, "built: %s\n", date)
	}
	return nil
}
