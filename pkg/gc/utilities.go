// pkg/gc/utilities.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package gc

import (
	"fmt"
	gomath "math"
	"time"

	"github.com/golang/geo/r3"

	"github.com/mmp/gcgeo/pkg/math"
)

// EarthRadiusNM converts angular distances in radians to nautical miles.
const EarthRadiusNM = 3440.065

// Distance returns the great circle distance between two points in
// nautical miles.
func Distance(p1, p2 Point) float64 {
	lat1, lon1 := p1.LatLong()
	lat2, lon2 := p2.LatLong()
	return Angle(lat1, lon1, lat2, lon2) * EarthRadiusNM
}

// EuclideanDistance returns the straight-line (chord) distance between
// two points in nautical miles. It's cheaper than Distance and
// indistinguishable from it for points that are close together.
func EuclideanDistance(p1, p2 Point) float64 {
	return p1.Vector().Sub(p2.Vector()).Norm() * EarthRadiusNM
}

// Bearing returns the initial true course in degrees, in [0,360), for the
// great circle path from p1 to p2.
func Bearing(p1, p2 Point) float64 {
	lat1, lon1 := p1.LatLong()
	lat2, lon2 := p2.LatLong()
	return math.NormalizeHeading(math.Degrees(TrueCourse(lat1, lon1, lat2, lon2)))
}

// FindPoint returns the point reached by traveling along the great circle
// that leaves p with the given true course; both dist and heading are
// in radians. Altitude and time are carried over from p.
func FindPoint(p Point, dist, heading float64) Point {
	lat1, lon1 := p.LatLong()
	sinLat1, cosLat1 := gomath.Sincos(lat1)
	sinD, cosD := gomath.Sincos(dist)

	lat := math.SafeASin(sinLat1*cosD + cosLat1*sinD*gomath.Cos(heading))
	lon := lon1 + gomath.Atan2(gomath.Sin(heading)*sinD*cosLat1, cosD-sinLat1*gomath.Sin(lat))

	r := PointFromRadians(lat, lon)
	r.Altitude, r.HasAltitude, r.Time = p.Altitude, p.HasAltitude, p.Time
	return r
}

// FindPointNM is a convenience wrapper around FindPoint that takes the
// distance in nautical miles and the heading in degrees.
func FindPointNM(p Point, nm, heading float64) Point {
	return FindPoint(p, nm/EarthRadiusNM, math.Radians(heading))
}

// FindPointAlong returns the point at the given angular distance (radians)
// from p1 along the great circle from p1 towards p2. Distances greater
// than the length of the arc continue past p2 along the same great
// circle.
func FindPointAlong(p1, p2 Point, angle float64) (Point, error) {
	lat1, lon1 := p1.LatLong()
	lat2, lon2 := p2.LatLong()
	d := Angle(lat1, lon1, lat2, lon2)
	if math.NearZero(d) {
		return p1, nil
	}
	return alongTrack(p1, p2, d, angle, angle/d)
}

// InterpolatePoint returns the point that is the given fraction of the
// way along the great circle arc from p1 to p2. When both endpoints have
// an altitude (or a time), it's linearly interpolated as well.
func InterpolatePoint(p1, p2 Point, fraction float64) (Point, error) {
	if fraction == 0 {
		return p1, nil
	} else if fraction == 1 {
		return p2, nil
	}

	lat1, lon1 := p1.LatLong()
	lat2, lon2 := p2.LatLong()
	d := Angle(lat1, lon1, lat2, lon2)
	if math.NearZero(d) {
		return p1, nil
	}
	return alongTrack(p1, p2, d, fraction*d, fraction)
}

// alongTrack returns the point at angular distance theta along the arc of
// length d from p1 to p2; fraction is theta/d and is used to interpolate
// altitude and time.
func alongTrack(p1, p2 Point, d, theta, fraction float64) (Point, error) {
	sinD := gomath.Sin(d)
	if math.NearZero(sinD) {
		// Antipodal endpoints: every great circle through p1 passes
		// through p2.
		return Point{}, fmt.Errorf("%s - %s: %w", p1, p2, ErrInvalidInput)
	}

	a := gomath.Sin(d-theta) / sinD
	b := gomath.Sin(theta) / sinD
	v := p1.Vector().Mul(a).Add(p2.Vector().Mul(b))

	r := PointFromVector(v)
	r.Altitude, r.HasAltitude = p1.Altitude, p1.HasAltitude
	if p1.HasAltitude && p2.HasAltitude {
		r.Altitude = math.Lerp(fraction, p1.Altitude, p2.Altitude)
	}
	r.Time = p1.Time
	if p1.HasTime() && p2.HasTime() {
		dt := p2.Time.Sub(p1.Time)
		r.Time = p1.Time.Add(time.Duration(fraction * float64(dt)))
	}
	return r, nil
}

// Midpoint returns the point halfway along the arc from p1 to p2.
func Midpoint(p1, p2 Point) (Point, error) {
	return InterpolatePoint(p1, p2, 0.5)
}

// RotatePoint rotates p about the axis through the center of the earth
// and the given pole by angle radians; a positive angle is
// counter-clockwise when looking down at the pole from above the earth.
func RotatePoint(p, pole Point, angle float64) Point {
	r := PointFromVector(Rotate(p.Vector(), r3.Vector{}, pole.Vector(), angle))
	r.Altitude, r.HasAltitude, r.Time = p.Altitude, p.HasAltitude, p.Time
	return r
}
