// pkg/util/text.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
)

func Hash(r io.Reader) ([]byte, error) {
	hash := sha256.New()
	_, err := io.Copy(hash, r)
	if err != nil {
		return nil, err
	}
	return hash.Sum(nil), nil
}

// HashString returns the hex-encoded SHA256 hash of the bytes read from r.
func HashString(r io.Reader) (string, error) {
	h, err := Hash(r)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(h), nil
}
