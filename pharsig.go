package main

import (
	"bytes"
	"crypto"
	_ "crypto/md5"
	"crypto/rsa"
	_ "crypto/sha1"
	_ "crypto/sha256"
	_ "crypto/sha512"
	"crypto/x509"
	"encoding/binary"
	"encoding/hex"
	"encoding/pem"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
)

// trailer magic of a signed native phar
const SignatureMagic = "GBMB"

type sigAlgo struct {
	name    string
	hash    crypto.Hash
	openssl bool
}

var sigAlgos = map[uint32]sigAlgo{
	0x01: {"MD5", crypto.MD5, false},
	0x02: {"SHA-1", crypto.SHA1, false},
	0x03: {"SHA-256", crypto.SHA256, false},
	0x04: {"SHA-512", crypto.SHA512, false},
	0x05: {"OpenSSL_SHA256", crypto.SHA256, true},
	0x06: {"OpenSSL_SHA512", crypto.SHA512, true},
	0x10: {"OpenSSL", crypto.SHA1, true},
}

// display order of SupportedSignatures
var sigOrder = []uint32{0x01, 0x02, 0x03, 0x04, 0x10, 0x05, 0x06}

func (a sigAlgo) digest(data []byte) []byte {
	h := a.hash.New()
	h.Write(data)
	return h.Sum(nil)
}

func sigHex(sig []byte) string {
	return strings.ToUpper(hex.EncodeToString(sig))
}

func (a sigAlgo) verify(signed, sig []byte, keyfile string) error {
	if !a.openssl {
		if !bytes.Equal(a.digest(signed), sig) {
			return ErrSignatureMismatch
		}
		return nil
	}
	raw, err := os.ReadFile(keyfile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNoPublicKey, keyfile)
		}
		return err
	}
	block, _ := pem.Decode(raw)
	if block == nil {
		return fmt.Errorf("%w: no PEM block in %s", ErrNoPublicKey, keyfile)
	}
	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		slog.Debug("parse public key", "name", keyfile, "error", err)
		return err
	}
	key, ok := pub.(*rsa.PublicKey)
	if !ok {
		return fmt.Errorf("%w: %s is not an RSA key", ErrNoPublicKey, keyfile)
	}
	if err = rsa.VerifyPKCS1v15(key, a.hash, a.digest(signed), sig); err != nil {
		return fmt.Errorf("%w: %v", ErrSignatureMismatch, err)
	}
	return nil
}

// nativeSignature checks the trailer of a native phar:
//
//	<signature> [<uint32 length>] <uint32 type> "GBMB"
//
// The length field exists only for OpenSSL signatures. All bytes before the
// signature are covered by it. It returns the offset where the signature
// starts.
func nativeSignature(data []byte, keyfile string) (Signature, int, error) {
	tail := len(data) - 8
	if tail < 0 || string(data[tail+4:]) != SignatureMagic {
		return Signature{}, 0, fmt.Errorf("%w: no %s trailer", ErrBadSignature, SignatureMagic)
	}
	sigtype := binary.LittleEndian.Uint32(data[tail : tail+4])
	algo, ok := sigAlgos[sigtype]
	if !ok {
		return Signature{}, 0, fmt.Errorf("%w: unknown type 0x%x", ErrBadSignature, sigtype)
	}
	var size int
	if algo.openssl {
		if tail < 4 {
			return Signature{}, 0, ErrBadSignature
		}
		tail -= 4
		size = int(binary.LittleEndian.Uint32(data[tail : tail+4]))
	} else {
		size = algo.hash.Size()
	}
	start := tail - size
	if start < 0 {
		return Signature{}, 0, fmt.Errorf("%w: %s signature truncated", ErrBadSignature, algo.name)
	}
	sig := data[start:tail]
	if err := algo.verify(data[:start], sig, keyfile); err != nil {
		slog.Debug("verify", "type", algo.name, "error", err)
		return Signature{}, 0, err
	}
	return Signature{HashType: algo.name, Hash: sigHex(sig)}, start, nil
}

// signatureBin decodes .phar/signature.bin of tar and zip based phars:
//
//	<uint32 type> <uint32 length> <signature>
func signatureBin(data []byte) (Signature, error) {
	c := cursor{buf: data}
	sigtype := c.u32()
	sig := c.str()
	if c.err != nil {
		return Signature{}, fmt.Errorf("%w: %v", ErrBadSignature, c.err)
	}
	algo, ok := sigAlgos[sigtype]
	if !ok {
		return Signature{}, fmt.Errorf("%w: unknown type 0x%x", ErrBadSignature, sigtype)
	}
	return Signature{HashType: algo.name, Hash: sigHex(sig)}, nil
}
