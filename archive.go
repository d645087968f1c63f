package main

import (
	"errors"
	"fmt"
)

// Compression codes, same values as the PHP Phar constants.
type Compression int

const (
	CompressNone Compression = 0
	CompressTAR  Compression = 2
	CompressZIP  Compression = 3
	CompressGZ   Compression = 0x1000
	CompressBZ2  Compression = 0x2000
)

// every non-zero code the library can hand out
var compressionCodes = []Compression{CompressBZ2, CompressGZ, CompressTAR, CompressZIP}

var (
	ErrNotPhar           = errors.New("not a phar archive")
	ErrBadManifest       = errors.New("broken manifest")
	ErrBadSignature      = errors.New("broken signature")
	ErrSignatureMismatch = errors.New("signature mismatch")
	ErrNoPublicKey       = errors.New("public key not found")
	ErrNotDirectory      = errors.New("not a directory")
)

type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("open %s: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error {
	return e.Err
}

type Signature struct {
	HashType string `yaml:"hash_type"`
	Hash     string `yaml:"hash"`
}

type Entry struct {
	Name string
	Dir  bool
}

type Archive interface {
	Version() string
	Compression() Compression
	Signature() Signature
	// ReadDir lists the children of dir ("" is the root) in storage order.
	ReadDir(dir string) ([]Entry, error)
	Close() error
}

type ArchiveLibrary interface {
	Open(path string) (Archive, error)
	APIVersion() string
	SupportedCompression() []string
	SupportedSignatures() []string
}
