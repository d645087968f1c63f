package main

import (
	"fmt"
	"io"
	"os"
)

type VersionCmd struct {
	FullVersion bool `long:"full-version" description:"show commit hash and build date"`

	out io.Writer
}

var (
	version = "dev"
	commit  = "dummy_hash"
	date    = "dummy_date"
)

func (cmd VersionCmd) Execute(args []string) error {
	out := cmd.out
	if out == nil {
		out = os.Stdout
	}
	if cmd.FullVersion {
		_, err := fmt.Fprintln(out, "pharinfo", version, "hash", commit, "build", date, "api", PharAPIVersion)
		return err
	}
	_, err := fmt.Fprintln(out, "pharinfo", version)
	return err
}
