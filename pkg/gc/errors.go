// pkg/gc/errors.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package gc

import "errors"

var (
	// ErrInvalidInput is returned when two points that are supposed to
	// define a great circle are identical or antipodal. It's recoverable:
	// callers generally skip the degenerate edge and carry on.
	ErrInvalidInput = errors.New("Points do not define a unique great circle")
)
