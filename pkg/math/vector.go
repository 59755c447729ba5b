// pkg/math/vector.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	gomath "math"

	"github.com/golang/geo/r3"
)

///////////////////////////////////////////////////////////////////////////
// unit vectors

// LatLongToVector returns the point on the unit sphere corresponding to
// the given latitude and longitude. +z is the north pole and the prime
// meridian is in the +x half of the xz plane.
func LatLongToVector(lat Latitude, lon Longitude) r3.Vector {
	phi, lambda := lat.Radians(), lon.Radians()
	c := gomath.Cos(phi)
	return r3.Vector{X: c * gomath.Cos(lambda), Y: c * gomath.Sin(lambda), Z: gomath.Sin(phi)}
}

// VectorToLatLong is the inverse of LatLongToVector; v need not be
// normalized but must not be the zero vector.
func VectorToLatLong(v r3.Vector) (Latitude, Longitude) {
	lat := gomath.Atan2(v.Z, gomath.Sqrt(v.X*v.X+v.Y*v.Y))
	lon := 0.
	if v.X != 0 || v.Y != 0 {
		lon = gomath.Atan2(v.Y, v.X)
	}
	return LatitudeFromRadians(lat), LongitudeFromRadians(lon)
}

// Complement returns the antipode of v.
func Complement(v r3.Vector) r3.Vector {
	return v.Mul(-1)
}

// VectorsEqual returns true if the unit vectors a and b are within
// PointTolerance radians of each other.
func VectorsEqual(a, b r3.Vector) bool {
	// For small angles the chord length and the angle agree to well
	// beyond the tolerance.
	return a.Sub(b).Norm() <= PointTolerance
}

// Antipodal returns true if the unit vectors a and b are (within
// PointTolerance) on opposite sides of the sphere.
func Antipodal(a, b r3.Vector) bool {
	return VectorsEqual(a, Complement(b))
}

// AngleBetween returns the angle in radians between two unit vectors.
// It's equivalent to acos(Dot(a, b)), but more numerically stable.
// via http://www.plunk.org/~hatch/rightway.html
func AngleBetween(a, b r3.Vector) float64 {
	if a.Dot(b) < 0 {
		return gomath.Pi - 2*SafeASin(a.Add(b).Norm()/2)
	}
	return 2 * SafeASin(a.Sub(b).Norm()/2)
}
