package main

import (
	"fmt"
	"io"
	"log/slog"

	yaml "gopkg.in/yaml.v2"
)

// Sink receives report lines, one tag and message at a time.
type Sink interface {
	Putln(tag, message string)
	Flush() error
}

func NewSink(format string, out io.Writer) Sink {
	switch format {
	case "yaml":
		return &yamlSink{out: out}
	default:
		return &textSink{out: out}
	}
}

type textSink struct {
	out io.Writer
	err error
}

func (s *textSink) Putln(tag, message string) {
	if s.err != nil {
		return
	}
	_, s.err = fmt.Fprintln(s.out, tag, message)
}

func (s *textSink) Flush() error {
	return s.err
}

type yamlLine struct {
	Tag     string `yaml:"tag"`
	Message string `yaml:"message"`
}

// yamlSink buffers every line and writes them as one YAML list on Flush.
type yamlSink struct {
	out   io.Writer
	lines []yamlLine
}

func (s *yamlSink) Putln(tag, message string) {
	s.lines = append(s.lines, yamlLine{Tag: tag, Message: message})
}

func (s *yamlSink) Flush() error {
	if len(s.lines) == 0 {
		return nil
	}
	content, err := yaml.Marshal(s.lines)
	if err != nil {
		slog.Error("yaml marshal", "error", err)
		return err
	}
	s.lines = nil
	written, err := s.out.Write(content)
	if err != nil {
		slog.Error("write yaml", "error", err, "written", written)
		return err
	}
	return nil
}
