// pkg/polygon/errors.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package polygon

import "errors"

var (
	ErrCrossesAntemeridian = errors.New("Polygon has an edge that crosses the antemeridian")
	ErrEnclosesPole        = errors.New("Polygon encloses a pole")
	ErrTooFewVertices      = errors.New("Polygon must have at least 3 distinct vertices")
)
