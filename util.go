package main

import (
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"encoding/binary"
	"io"
	"log/slog"
)

// from RFC1952
var gzipMagic = []byte{0x1f, 0x8b}

// "BZh" + block size digit
var bzip2Magic = []byte("BZh")

// from APPNOTE.TXT, local file header or end of central directory (empty zip)
var (
	zipMagic      = []byte("PK\x03\x04")
	zipEmptyMagic = []byte("PK\x05\x06")
)

// from POSIX ustar header
const (
	TarMagicOffset = 257
	TarMagic       = "ustar"
)

// uncompress detects whole-file compression and returns the plain content.
func uncompress(data []byte) ([]byte, Compression, error) {
	switch {
	case bytes.HasPrefix(data, gzipMagic):
		rd, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			slog.Debug("gzip reader", "error", err)
			return nil, CompressNone, err
		}
		defer rd.Close()
		res, err := io.ReadAll(rd)
		slog.Debug("gunzip", "compressed", len(data), "uncompressed", len(res))
		return res, CompressGZ, err
	case bytes.HasPrefix(data, bzip2Magic):
		res, err := io.ReadAll(bzip2.NewReader(bytes.NewReader(data)))
		slog.Debug("bunzip2", "compressed", len(data), "uncompressed", len(res))
		return res, CompressBZ2, err
	}
	return data, CompressNone, nil
}

func iszip(data []byte) bool {
	return bytes.HasPrefix(data, zipMagic) || bytes.HasPrefix(data, zipEmptyMagic)
}

func istar(data []byte) bool {
	if len(data) < TarMagicOffset+len(TarMagic) {
		return false
	}
	return string(data[TarMagicOffset:TarMagicOffset+len(TarMagic)]) == TarMagic
}

// cursor reads little-endian fields and remembers the first short read.
type cursor struct {
	buf []byte
	pos int
	err error
}

func (c *cursor) take(n int) []byte {
	if c.err != nil {
		return nil
	}
	if n < 0 || len(c.buf)-c.pos < n {
		c.err = io.ErrUnexpectedEOF
		return nil
	}
	res := c.buf[c.pos : c.pos+n]
	c.pos += n
	return res
}

func (c *cursor) u32() uint32 {
	b := c.take(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

// u16be is only used for the manifest API version
func (c *cursor) u16be() uint16 {
	b := c.take(2)
	if b == nil {
		return 0
	}
	return binary.BigEndian.Uint16(b)
}

func (c *cursor) str() []byte {
	return c.take(int(c.u32()))
}
