package main

import (
	"os"

	"log/slog"

	"github.com/jessevdk/go-flags"
)

var globalOption struct {
	Verbose bool `short:"v" long:"verbose" description:"show verbose logs"`
	Quiet   bool `short:"q" long:"quiet" description:"suppress logs"`
	JsonLog bool `long:"json-log" description:"use json format for logging" env:"PHARINFO_JSON_LOG"`
}

func init_log() {
	var level slog.Level = slog.LevelInfo
	if globalOption.Verbose {
		level = slog.LevelDebug
	} else if globalOption.Quiet {
		level = slog.LevelWarn
	}
	slog.SetLogLoggerLevel(level)
	if globalOption.JsonLog {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	}
}

func newParser(info *InfoCmd, versioncmd *VersionCmd) (*flags.Parser, error) {
	parser := flags.NewParser(&globalOption, flags.Default)
	_, err := parser.AddCommand("info", "Displays PHAR information", "show API version, compression and signature of a phar, or the supported algorithms without one", info)
	if err != nil {
		slog.Error("addcommand info", "error", err)
		return nil, err
	}
	_, err = parser.AddCommand("version", "show version", "show version", versioncmd)
	if err != nil {
		slog.Error("addcommand version", "error", err)
		return nil, err
	}
	return parser, nil
}

func main() {
	var info InfoCmd
	var versioncmd VersionCmd
	if err := validateCompressionTable(); err != nil {
		slog.Error("compression table", "error", err)
		panic(err)
	}
	parser, err := newParser(&info, &versioncmd)
	if err != nil {
		panic(err)
	}
	if _, err := parser.Parse(); err != nil {
		if fe, ok := err.(*flags.Error); ok && fe.Type == flags.ErrHelp {
			os.Exit(0)
		}
		slog.Error("error exit", "error", err)
		os.Exit(1)
	}
}
