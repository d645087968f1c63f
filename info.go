package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"strings"

	"github.com/jessevdk/go-flags"
)

var ErrUnknownCompression = errors.New("unknown compression code")

var compressionNames = map[Compression]string{
	CompressBZ2: "BZ2",
	CompressGZ:  "GZ",
	CompressTAR: "TAR",
	CompressZIP: "ZIP",
}

func validateCompressionTable() error {
	for _, code := range compressionCodes {
		if _, ok := compressionNames[code]; !ok {
			return fmt.Errorf("%w: no name for %d", ErrUnknownCompression, code)
		}
	}
	if len(compressionNames) != len(compressionCodes) {
		return fmt.Errorf("compression table has %d names for %d codes", len(compressionNames), len(compressionCodes))
	}
	return nil
}

func compressionName(code Compression) (string, error) {
	if code == CompressNone {
		return "None", nil
	}
	name, ok := compressionNames[code]
	if !ok {
		return "", fmt.Errorf("%w: %d", ErrUnknownCompression, code)
	}
	return name, nil
}

type InfoCmd struct {
	List   bool   `short:"l" long:"list" description:"list the contents"`
	Format string `long:"format" choice:"text" choice:"yaml" default:"text" env:"PHARINFO_FORMAT" description:"output format"`
	Args   struct {
		Phar flags.Filename `positional-arg-name:"phar" description:"the PHAR to view"`
	} `positional-args:"yes"`

	lib ArchiveLibrary
	out io.Writer
}

func (cmd *InfoCmd) Execute(args []string) (err error) {
	init_log()
	lib := cmd.lib
	if lib == nil {
		lib = pharLibrary{}
	}
	out := cmd.out
	if out == nil {
		out = os.Stdout
	}
	sink := NewSink(cmd.Format, out)
	if cmd.Args.Phar == "" {
		reportCapabilities(sink, lib)
	} else {
		err = reportArchive(sink, lib, string(cmd.Args.Phar), cmd.List)
	}
	if ferr := sink.Flush(); ferr != nil && err == nil {
		err = ferr
	}
	return err
}

func reportCapabilities(sink Sink, lib ArchiveLibrary) {
	sink.Putln("PHAR", "v"+lib.APIVersion())
	sink.Putln("INFO", "Compression Algorithms: "+strings.Join(lib.SupportedCompression(), ", "))
	sink.Putln("INFO", "Signature Algorithms: "+strings.Join(lib.SupportedSignatures(), ", "))
}

func reportArchive(sink Sink, lib ArchiveLibrary, name string, list bool) error {
	arc, err := lib.Open(name)
	if err != nil {
		slog.Error("open error", "path", name, "error", err)
		return err
	}
	defer func() {
		if err := arc.Close(); err != nil {
			slog.Error("close archive", "path", name, "error", err)
		}
	}()
	sink.Putln("FILE", name)
	sink.Putln("INFO", "API: v"+arc.Version())
	comp, err := compressionName(arc.Compression())
	if err != nil {
		slog.Error("compression", "path", name, "error", err)
		return err
	}
	sink.Putln("INFO", "Compression: "+comp)
	hashType := arc.Signature().HashType
	if hashType == "" {
		hashType = "None"
	}
	sink.Putln("INFO", "Signature: "+hashType)
	if list {
		return listEntries(sink, arc, "", 0)
	}
	return nil
}

// listEntries prints dir and everything below it, two spaces per level.
// Subdirectories are read again from the archive rather than reused.
func listEntries(sink Sink, arc Archive, dir string, depth int) error {
	entries, err := arc.ReadDir(dir)
	if err != nil {
		slog.Error("read dir", "dir", dir, "error", err)
		return err
	}
	for _, ent := range entries {
		name := ent.Name
		if ent.Dir {
			name += "/"
		}
		sink.Putln("LIST", strings.Repeat(" ", depth*2)+name)
		if ent.Dir {
			if err := listEntries(sink, arc, path.Join(dir, ent.Name), depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}
