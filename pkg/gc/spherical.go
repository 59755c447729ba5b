// pkg/gc/spherical.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package gc provides great-circle geometry on the unit sphere: points,
// minor-arc edges, sidedness and intersection tests, and the distance,
// bearing and interpolation helpers used for route modeling.
package gc

import (
	"fmt"
	gomath "math"

	"github.com/golang/geo/r3"

	"github.com/mmp/gcgeo/pkg/math"
)

// Angle returns the angular distance in radians between two points given
// by their latitudes and longitudes in radians. It uses the haversine
// form, which unlike the spherical law of cosines stays accurate for
// very small separations.
func Angle(lat1, lon1, lat2, lon2 float64) float64 {
	s := math.Sqr(gomath.Sin((lat2-lat1)/2)) +
		gomath.Cos(lat1)*gomath.Cos(lat2)*math.Sqr(gomath.Sin((lon2-lon1)/2))
	return 2 * gomath.Asin(gomath.Sqrt(math.Clamp(s, 0, 1)))
}

// TrueCourse returns the initial bearing in radians, in [0,2pi), for the
// great circle path from (lat1, lon1) to (lat2, lon2); all angles are in
// radians.
func TrueCourse(lat1, lon1, lat2, lon2 float64) float64 {
	if math.NearZero(gomath.Cos(lat1)) {
		// Every direction is south from the north pole and north from
		// the south pole.
		if lat1 > 0 {
			return gomath.Pi
		}
		return 0
	}
	if math.NearZero(Angle(lat1, lon1, lat2, lon2)) {
		return 0
	}

	dlon := lon2 - lon1
	y := gomath.Sin(dlon) * gomath.Cos(lat2)
	x := gomath.Cos(lat1)*gomath.Sin(lat2) - gomath.Sin(lat1)*gomath.Cos(lat2)*gomath.Cos(dlon)
	tc := gomath.Mod(gomath.Atan2(y, x), 2*gomath.Pi)
	if tc < 0 {
		tc += 2 * gomath.Pi
	}
	if tc >= 2*gomath.Pi {
		tc = 0
	}
	return tc
}

///////////////////////////////////////////////////////////////////////////
// Sidedness

// Side describes where a point lies with respect to a directed great
// circle.
type Side int

const (
	Right Side = iota - 1
	On
	Left
)

func (s Side) String() string {
	switch s {
	case Right:
		return "right"
	case On:
		return "on"
	case Left:
		return "left"
	default:
		return "invalid"
	}
}

// greatCircleNormal returns the unit normal of the plane of the great
// circle through v1 and v2, oriented so that points to the left of the
// direction v1->v2 have a positive dot product with it.
func greatCircleNormal(v1, v2 r3.Vector) (r3.Vector, error) {
	if math.VectorsEqual(v1, v2) || math.Antipodal(v1, v2) {
		return r3.Vector{}, fmt.Errorf("%v, %v: %w", v1, v2, ErrInvalidInput)
	}
	return v1.Cross(v2).Normalize(), nil
}

func sideOfNormal(n, v r3.Vector) Side {
	d := n.Dot(v)
	if d > math.ZeroTolerance {
		return Left
	} else if d < -math.ZeroTolerance {
		return Right
	}
	return On
}

// SideOf returns which side of the great circle through v1 and v2
// (traversed from v1 towards v2) v3 lies on. An error is returned if v1
// and v2 are identical or antipodal, since the great circle is then
// undefined.
func SideOf(v1, v2, v3 r3.Vector) (Side, error) {
	n, err := greatCircleNormal(v1, v2)
	if err != nil {
		return On, err
	}
	return sideOfNormal(n, v3), nil
}

func IsLeft(v1, v2, v3 r3.Vector) (bool, error) {
	s, err := SideOf(v1, v2, v3)
	return s == Left, err
}

func IsRight(v1, v2, v3 r3.Vector) (bool, error) {
	s, err := SideOf(v1, v2, v3)
	return s == Right, err
}

func IsLeftOrOn(v1, v2, v3 r3.Vector) (bool, error) {
	s, err := SideOf(v1, v2, v3)
	return err == nil && s != Right, err
}

func IsRightOrOn(v1, v2, v3 r3.Vector) (bool, error) {
	s, err := SideOf(v1, v2, v3)
	return err == nil && s != Left, err
}

// IsBetween returns true if z lies strictly inside the cone around the
// bisector of u and v whose boundary passes through u and v. For a point
// known to be on the great circle through u and v, this is exactly the
// test for whether it's in the interior of the minor arc between them.
func IsBetween(z, u, v r3.Vector) bool {
	m := u.Add(v)
	if m.Norm() == 0 {
		return false
	}
	m = m.Normalize()
	return m.Dot(z) > m.Dot(u)
}

///////////////////////////////////////////////////////////////////////////
// Rotation

// Rotate rotates v by the given angle (radians, counter-clockwise when
// looking down the axis towards its origin) about the axis that passes
// through axisPoint and is parallel to axisVector.
func Rotate(v, axisPoint, axisVector r3.Vector, angle float64) r3.Vector {
	k := axisVector.Normalize()
	w := v.Sub(axisPoint)
	s, c := gomath.Sincos(angle)

	// Rodrigues' rotation formula
	r := w.Mul(c).Add(k.Cross(w).Mul(s)).Add(k.Mul(k.Dot(w) * (1 - c)))
	return axisPoint.Add(r)
}
