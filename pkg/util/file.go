// pkg/util/file.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"bufio"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
)

// Unfortunately, unlike io.ReadCloser, the zstd Decoder's Close() method
// doesn't return an error, so we need to make our own custom ReadCloser
// interface.
type ReadCloser interface {
	io.Reader
	Close()
}

type fileReadCloser struct {
	*bufio.Reader
	f *os.File
}

func (f fileReadCloser) Close() { f.f.Close() }

type zstdReadCloser struct {
	*zstd.Decoder
	f *os.File
}

func (z zstdReadCloser) Close() {
	z.Decoder.Close()
	z.f.Close()
}

// IsZstd reports whether the file at path is zstd-compressed, judging by
// its extension.
func IsZstd(path string) bool {
	return filepath.Ext(path) == ".zst"
}

// BaseExt returns the extension of path after removing a .zst suffix, if
// present, so that "volumes.json.zst" gives ".json".
func BaseExt(path string) string {
	if IsZstd(path) {
		path = path[:len(path)-len(".zst")]
	}
	return filepath.Ext(path)
}

// OpenFile returns a ReadCloser for the given file; if it's zstd
// compressed, the reader handles decompression transparently.
func OpenFile(path string) (ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	if IsZstd(path) {
		zr, err := zstd.NewReader(bufio.NewReader(f), zstd.WithDecoderConcurrency(0))
		if err != nil {
			f.Close()
			return nil, err
		}
		return zstdReadCloser{Decoder: zr, f: f}, nil
	}
	return fileReadCloser{Reader: bufio.NewReader(f), f: f}, nil
}

// ReadFile returns the contents of the given file, decompressing it if
// it's zstd compressed.
func ReadFile(path string) ([]byte, error) {
	r, err := OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return io.ReadAll(r)
}

// WriteFile writes b to the given file, zstd-compressing it if the path
// ends in .zst.
func WriteFile(path string, b []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if !IsZstd(path) {
		if _, err := f.Write(b); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}

	zw, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		f.Close()
		return err
	}
	if _, err := zw.Write(b); err != nil {
		zw.Close()
		f.Close()
		return err
	}
	if err := zw.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
