// pkg/math/core.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	gomath "math"

	"golang.org/x/exp/constraints"
)

const (
	// ZeroTolerance is used for sidedness tests, pole checks, and other
	// comparisons against zero of quantities measured in radians.
	ZeroTolerance = 1e-9

	// PointTolerance is the angular distance (radians) within which two
	// points on the unit sphere are considered to be the same point. On
	// the earth it's about 21 feet.
	PointTolerance = 1e-6
)

// Degrees converts an angle expressed in radians to degrees
func Degrees(r float64) float64 {
	return r * 180 / gomath.Pi
}

// Radians converts an angle expressed in degrees to radians
func Radians(d float64) float64 {
	return d / 180 * gomath.Pi
}

func SafeASin(a float64) float64 {
	return gomath.Asin(Clamp(a, -1, 1))
}

func Sign(v float64) float64 {
	if v > 0 {
		return 1
	} else if v < 0 {
		return -1
	}
	return 0
}

func Abs[V constraints.Integer | constraints.Float](x V) V {
	if x < 0 {
		return -x
	}
	return x
}

func Sqr[V constraints.Integer | constraints.Float](v V) V { return v * v }

func Clamp[T constraints.Ordered](x T, low T, high T) T {
	if x < low {
		return low
	} else if x > high {
		return high
	}
	return x
}

func Lerp[F constraints.Float](x, a, b F) F {
	return (1-x)*a + x*b
}

// NearZero reports whether |v| is within ZeroTolerance of zero.
func NearZero(v float64) bool {
	return Abs(v) <= ZeroTolerance
}
