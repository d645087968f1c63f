package main

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"log/slog"
	"strings"
)

// tar and zip based phars keep their bookkeeping under this directory
const PharInternalDir = ".phar"

const PharSignatureFile = PharInternalDir + "/signature.bin"

func isinternal(name string) bool {
	name = strings.TrimPrefix(name, "./")
	return name == PharInternalDir || strings.HasPrefix(name, PharInternalDir+"/")
}

func readTarPhar(data []byte) (*pharArchive, error) {
	res := &pharArchive{
		entryTree: newEntryTree(),
		format:    "tar",
		version:   PharAPIVersion,
	}
	rd := tar.NewReader(bytes.NewReader(data))
	for {
		hdr, err := rd.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			slog.Debug("tar next", "error", err)
			return nil, err
		}
		name := strings.TrimPrefix(hdr.Name, "./")
		if isinternal(name) {
			if name == PharSignatureFile {
				buf, err := io.ReadAll(rd)
				if err != nil {
					return nil, err
				}
				if res.signature, err = signatureBin(buf); err != nil {
					return nil, err
				}
			}
			slog.Debug("skip internal", "name", name)
			continue
		}
		res.add(name, hdr.Typeflag == tar.TypeDir)
		res.files++
	}
	return res, nil
}

func readZipPhar(data []byte) (*pharArchive, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		slog.Debug("zip reader", "error", err)
		return nil, err
	}
	res := &pharArchive{
		entryTree: newEntryTree(),
		format:    "zip",
		version:   PharAPIVersion,
	}
	for _, fi := range zr.File {
		if isinternal(fi.Name) {
			if fi.Name == PharSignatureFile {
				if res.signature, err = readZipSignature(fi); err != nil {
					return nil, err
				}
			}
			slog.Debug("skip internal", "name", fi.Name)
			continue
		}
		res.add(fi.Name, fi.FileInfo().IsDir())
		res.files++
	}
	return res, nil
}

func readZipSignature(fi *zip.File) (Signature, error) {
	rd, err := fi.Open()
	if err != nil {
		return Signature{}, err
	}
	defer rd.Close()
	buf, err := io.ReadAll(rd)
	if err != nil {
		return Signature{}, err
	}
	return signatureBin(buf)
}
