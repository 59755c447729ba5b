// pkg/math/angle.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"fmt"
	gomath "math"
)

///////////////////////////////////////////////////////////////////////////
// Latitude

// Latitude is an angle in degrees in the range [-90,90]; positive values
// are north of the equator.
type Latitude float64

// NewLatitude returns the latitude for the given number of degrees,
// clamped to [-90,90].
func NewLatitude(deg float64) Latitude {
	return Latitude(Clamp(deg, -90, 90))
}

func LatitudeFromRadians(r float64) Latitude {
	return NewLatitude(Degrees(r))
}

func (l Latitude) Degrees() float64 { return float64(l) }

func (l Latitude) Radians() float64 { return Radians(float64(l)) }

func (l Latitude) IsNorthOf(o Latitude) bool { return l > o }

func (l Latitude) IsSouthOf(o Latitude) bool { return l < o }

func (l Latitude) String() string {
	if l < 0 {
		return fmt.Sprintf("S%.6f", -float64(l))
	}
	return fmt.Sprintf("N%.6f", float64(l))
}

///////////////////////////////////////////////////////////////////////////
// Longitude

// Longitude is an angle in degrees in the range [-180,180); positive
// values are east of the prime meridian.
type Longitude float64

// NormalizeLongitude wraps the given number of degrees into [-180,180).
func NormalizeLongitude(deg float64) float64 {
	d := gomath.Mod(deg+180, 360)
	if d < 0 {
		d += 360
	}
	return d - 180
}

func NewLongitude(deg float64) Longitude {
	return Longitude(NormalizeLongitude(deg))
}

func LongitudeFromRadians(r float64) Longitude {
	return NewLongitude(Degrees(r))
}

func (l Longitude) Degrees() float64 { return float64(l) }

func (l Longitude) Radians() float64 { return Radians(float64(l)) }

// Delta returns the signed number of degrees to travel east from l to
// reach o along the shorter way around, in [-180,180).
func (l Longitude) Delta(o Longitude) float64 {
	return NormalizeLongitude(float64(o) - float64(l))
}

// IsWestOf returns true if o is reached by heading east from l along the
// shorter way around the globe.
func (l Longitude) IsWestOf(o Longitude) bool {
	return l.Delta(o) > 0
}

// IsEastOf returns true if o is reached by heading west from l along the
// shorter way around the globe.
func (l Longitude) IsEastOf(o Longitude) bool {
	return l.Delta(o) < 0
}

func (l Longitude) String() string {
	if l < 0 {
		return fmt.Sprintf("W%.6f", -float64(l))
	}
	return fmt.Sprintf("E%.6f", float64(l))
}
