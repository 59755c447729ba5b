// pkg/airspace/errors.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package airspace

import "errors"

var (
	ErrUnknownVolume     = errors.New("Unknown airspace volume")
	ErrUnsupportedFormat = errors.New("Unsupported airspace file format")
	ErrPackedVersion     = errors.New("Packed airspace file version mismatch")
)
