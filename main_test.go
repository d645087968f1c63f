package main

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestParserCommands(t *testing.T) {
	var info InfoCmd
	var versioncmd VersionCmd
	parser, err := newParser(&info, &versioncmd)
	if err != nil {
		t.Error("parser", err)
		return
	}
	for _, name := range []string{"info", "version"} {
		if parser.Find(name) == nil {
			t.Error("command", name)
		}
	}
	cmd := parser.Find("info")
	if opt := cmd.FindOptionByShortName('l'); opt == nil || opt.LongName != "list" {
		t.Error("list option", opt)
	}
}

func TestVerboseLog(t *testing.T) {
	globalOption.Verbose = true
	init_log()
	if !slog.Default().Enabled(context.TODO(), slog.LevelDebug) {
		t.Error("debug disabled")
	}
	globalOption.Verbose = false
	globalOption.Quiet = true
	init_log()
	if slog.Default().Enabled(context.TODO(), slog.LevelInfo) {
		t.Error("info enabled")
	}
	globalOption.Quiet = false
	init_log()
}

func TestVersion(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := (VersionCmd{out: buf}).Execute([]string{}); err != nil {
		t.Error("version", err)
	}
	if buf.String() != "pharinfo dev\n" {
		t.Error("short", buf.String())
	}
	buf.Reset()
	if err := (VersionCmd{FullVersion: true, out: buf}).Execute([]string{}); err != nil {
		t.Error("full version", err)
	}
	if !strings.HasPrefix(buf.String(), "pharinfo dev hash dummy_hash") || !strings.Contains(buf.String(), "api 1.1.1") {
		t.Error("full", buf.String())
	}
}
