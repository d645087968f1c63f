package main

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
)

// api version implemented by this reader
const PharAPIVersion = "1.1.1"

const HaltToken = "__HALT_COMPILER();"

// manifest flags
const (
	PharHasSignature = 0x10000
)

// minimum manifest entry size: name length, uncompressed size, timestamp,
// compressed size, crc32, flags and metadata length, with empty name and metadata
const manifestEntryMinSize = 4 * 7

type pharLibrary struct{}

func (lib pharLibrary) APIVersion() string {
	return PharAPIVersion
}

func (lib pharLibrary) SupportedCompression() []string {
	return []string{"GZ", "BZIP2"}
}

func (lib pharLibrary) SupportedSignatures() []string {
	res := make([]string, 0, len(sigOrder))
	for _, v := range sigOrder {
		res = append(res, sigAlgos[v].name)
	}
	return res
}

func (lib pharLibrary) Open(name string) (Archive, error) {
	arc, err := openPhar(name)
	if err != nil {
		slog.Debug("open phar", "path", name, "error", err)
		return nil, &OpenError{Path: name, Err: err}
	}
	return arc, nil
}

type pharArchive struct {
	*entryTree
	format    string
	version   string
	alias     string
	files     int
	compress  Compression
	signature Signature
}

func (a *pharArchive) Version() string {
	return a.version
}

func (a *pharArchive) Compression() Compression {
	return a.compress
}

func (a *pharArchive) Signature() Signature {
	return a.signature
}

// everything is read on open
func (a *pharArchive) Close() error {
	return nil
}

func openPhar(name string) (*pharArchive, error) {
	raw, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	data, comp, err := uncompress(raw)
	if err != nil {
		return nil, err
	}
	var res *pharArchive
	switch {
	case iszip(data):
		res, err = readZipPhar(data)
	case istar(data):
		res, err = readTarPhar(data)
	default:
		res, err = readNativePhar(data, name+".pubkey")
	}
	if err != nil {
		return nil, err
	}
	res.compress = comp
	slog.Debug("opened", "path", name, "format", res.format, "version", res.version,
		"alias", res.alias, "files", res.files, "compression", comp, "signature", res.signature.HashType)
	return res, nil
}

// haltOffset returns where the manifest starts: after the halt token, an
// optional " ?>" and one optional newline.
func haltOffset(data []byte) (int, error) {
	pos := bytes.Index(data, []byte(HaltToken))
	if pos < 0 {
		return 0, ErrNotPhar
	}
	pos += len(HaltToken)
	for pos < len(data) && (data[pos] == ' ' || data[pos] == '\t') {
		pos++
	}
	if bytes.HasPrefix(data[pos:], []byte("?>")) {
		pos += 2
		if bytes.HasPrefix(data[pos:], []byte("\r\n")) {
			pos += 2
		} else if bytes.HasPrefix(data[pos:], []byte("\n")) {
			pos++
		}
	}
	return pos, nil
}

func apiString(v uint16) string {
	return fmt.Sprintf("%d.%d.%d", v>>12, (v>>8)&0xf, (v>>4)&0xf)
}

func readNativePhar(data []byte, keyfile string) (*pharArchive, error) {
	offset, err := haltOffset(data)
	if err != nil {
		return nil, err
	}
	head := cursor{buf: data, pos: offset}
	body := head.str()
	if head.err != nil {
		return nil, fmt.Errorf("%w: manifest length: %v", ErrBadManifest, head.err)
	}
	c := cursor{buf: body}
	count := c.u32()
	if c.err == nil && uint64(count)*manifestEntryMinSize > uint64(len(body)) {
		return nil, fmt.Errorf("%w: %d entries do not fit in %d bytes", ErrBadManifest, count, len(body))
	}
	res := &pharArchive{
		entryTree: newEntryTree(),
		format:    "phar",
		version:   apiString(c.u16be()),
		files:     int(count),
	}
	flags := c.u32()
	res.alias = string(c.str())
	c.str() // metadata
	var content uint64
	for i := uint32(0); i < count && c.err == nil; i++ {
		fname := c.str()
		c.u32() // uncompressed size
		c.u32() // timestamp
		content += uint64(c.u32())
		c.u32() // crc32
		c.u32() // flags
		c.str() // metadata
		if c.err == nil {
			res.add(string(fname), false)
		}
	}
	if c.err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadManifest, c.err)
	}
	end := uint64(head.pos) + content
	limit := len(data)
	if flags&PharHasSignature != 0 {
		res.signature, limit, err = nativeSignature(data, keyfile)
		if err != nil {
			return nil, err
		}
	}
	if end > uint64(limit) {
		return nil, fmt.Errorf("%w: content ends at %d, file at %d", ErrBadManifest, end, limit)
	}
	return res, nil
}
