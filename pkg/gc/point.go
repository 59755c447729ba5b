// pkg/gc/point.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package gc

import (
	"cmp"
	"fmt"
	"time"

	"github.com/golang/geo/r3"

	"github.com/mmp/gcgeo/pkg/math"
)

// Point is a position on the earth, optionally with an altitude (feet)
// and a time. Points are values; the unit vector used by the geometric
// routines is computed on demand rather than cached, so a Point may be
// freely copied and shared between goroutines.
type Point struct {
	Latitude  math.Latitude
	Longitude math.Longitude

	Altitude    float64
	HasAltitude bool
	// Time is the zero time.Time if unset.
	Time time.Time
}

// NewPoint returns the point at the given latitude and longitude in
// degrees; the longitude is normalized to [-180,180) and the latitude is
// clamped to [-90,90].
func NewPoint(lat, lon float64) Point {
	return Point{Latitude: math.NewLatitude(lat), Longitude: math.NewLongitude(lon)}
}

// PointFromRadians is like NewPoint, but takes the latitude and longitude
// in radians.
func PointFromRadians(lat, lon float64) Point {
	return Point{Latitude: math.LatitudeFromRadians(lat), Longitude: math.LongitudeFromRadians(lon)}
}

// PointFromVector returns the point corresponding to the given vector,
// which need not be normalized.
func PointFromVector(v r3.Vector) Point {
	lat, lon := math.VectorToLatLong(v)
	return Point{Latitude: lat, Longitude: lon}
}

// Vector returns the point's position on the unit sphere.
func (p Point) Vector() r3.Vector {
	return math.LatLongToVector(p.Latitude, p.Longitude)
}

func (p Point) WithAltitude(alt float64) Point {
	p.Altitude, p.HasAltitude = alt, true
	return p
}

func (p Point) WithTime(t time.Time) Point {
	p.Time = t
	return p
}

func (p Point) HasTime() bool {
	return !p.Time.IsZero()
}

// Equal returns true if the two points are within math.PointTolerance
// radians of each other. Altitude and time are not considered.
func (p Point) Equal(q Point) bool {
	return math.VectorsEqual(p.Vector(), q.Vector())
}

// Antipode returns the point on the opposite side of the earth.
func (p Point) Antipode() Point {
	a := PointFromVector(math.Complement(p.Vector()))
	a.Altitude, a.HasAltitude, a.Time = p.Altitude, p.HasAltitude, p.Time
	return a
}

// Compare orders points by latitude and then by longitude; points that
// are Equal compare as 0.
func (p Point) Compare(q Point) int {
	if p.Equal(q) {
		return 0
	}
	if d := float64(p.Latitude - q.Latitude); math.Abs(d) > math.Degrees(math.PointTolerance) {
		return int(math.Sign(d))
	}
	return cmp.Compare(p.Longitude, q.Longitude)
}

// LatLong returns the latitude and longitude in radians.
func (p Point) LatLong() (float64, float64) {
	return p.Latitude.Radians(), p.Longitude.Radians()
}

func (p Point) String() string {
	s := math.DDString(p.Latitude, p.Longitude)
	if p.HasAltitude {
		s += fmt.Sprintf(" %.0fft", p.Altitude)
	}
	if p.HasTime() {
		s += " " + p.Time.UTC().Format(time.RFC3339)
	}
	return s
}

// ParsePoint parses a position in any of the forms accepted by
// math.ParseLatLong.
func ParsePoint(s string) (Point, error) {
	lat, lon, err := math.ParseLatLong([]byte(s))
	if err != nil {
		return Point{}, err
	}
	return Point{Latitude: lat, Longitude: lon}, nil
}
