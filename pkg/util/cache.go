// pkg/util/cache.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

func fullCachePath(path string) (string, error) {
	cd, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cd, "gcgeo", path), nil
}

// DiskCache holds values of type T in a subdirectory of the user's cache
// directory, msgpack-encoded and zstd-compressed. Keys are usually the
// hash of the data that the value was derived from, so stale entries are
// never returned; they are just left for CullDiskCache.
type DiskCache[T any] struct {
	dir string
}

func NewDiskCache[T any](dir string) DiskCache[T] {
	return DiskCache[T]{dir: dir}
}

func (c DiskCache[T]) path(key string) (string, error) {
	return fullCachePath(filepath.Join(c.dir, key+".msgpack.zst"))
}

// Get returns the value stored under key; ok is false if there is no
// entry or if it can't be decoded.
func (c DiskCache[T]) Get(key string) (v T, ok bool) {
	path, err := c.path(key)
	if err != nil {
		return
	}
	b, err := ReadFile(path)
	if err != nil {
		return
	}

	var d T
	if err := msgpack.Unmarshal(b, &d); err != nil {
		return
	}
	return d, true
}

// Put stores v under key. The entry is written to a temporary file and
// then renamed into place.
func (c DiskCache[T]) Put(key string, v T) error {
	path, err := c.path(key)
	if err != nil {
		return err
	}
	b, err := msgpack.Marshal(v)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	tmp := filepath.Join(dir, "."+filepath.Base(path))
	if err := WriteFile(tmp, b); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

// CullDiskCache removes the least recently written cache files until the
// cache uses at most maxBytes.
func CullDiskCache(maxBytes int64) error {
	cacheDir, err := fullCachePath("")
	if err != nil {
		return err
	}

	if _, err := os.Stat(cacheDir); os.IsNotExist(err) {
		return nil // Nothing to cull
	}

	type fileInfo struct {
		path    string
		size    int64
		modTime time.Time
	}
	var files []fileInfo
	var totalSize int64

	err = filepath.WalkDir(cacheDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if info, err := d.Info(); err == nil {
			files = append(files, fileInfo{path: path, size: info.Size(), modTime: info.ModTime()})
			totalSize += info.Size()
		}
		return nil
	})
	if err != nil {
		return err
	}

	// Oldest first
	slices.SortFunc(files, func(a, b fileInfo) int {
		return a.modTime.Compare(b.modTime)
	})

	for len(files) > 0 && totalSize > maxBytes {
		f := files[0]
		if err := os.Remove(f.path); err == nil {
			totalSize -= f.size
		}
		files = files[1:]
	}

	return nil
}
