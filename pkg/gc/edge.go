// pkg/gc/edge.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package gc

import (
	"fmt"

	"github.com/mmp/gcgeo/pkg/math"
)

// Edge is the minor great-circle arc between two points. The order of
// the endpoints doesn't matter for any of its operations.
type Edge struct {
	First, Second Point
}

// NewEdge returns the edge between a and b; an error wrapping
// ErrInvalidInput is returned if they're the same point or antipodal, in
// which case the minor arc isn't unique.
func NewEdge(a, b Point) (Edge, error) {
	va, vb := a.Vector(), b.Vector()
	if math.VectorsEqual(va, vb) || math.Antipodal(va, vb) {
		return Edge{}, fmt.Errorf("%s - %s: %w", a, b, ErrInvalidInput)
	}
	return Edge{First: a, Second: b}, nil
}

// Equal returns true if both edges have the same endpoints, in either
// order.
func (e Edge) Equal(o Edge) bool {
	return (e.First.Equal(o.First) && e.Second.Equal(o.Second)) ||
		(e.First.Equal(o.Second) && e.Second.Equal(o.First))
}

// Length returns the angular length of the edge in radians.
func (e Edge) Length() float64 {
	lat1, lon1 := e.First.LatLong()
	lat2, lon2 := e.Second.LatLong()
	return Angle(lat1, lon1, lat2, lon2)
}

// Classify returns the full classification of how e and o meet.
func (e Edge) Classify(o Edge) (Intersection, error) {
	return Classify(e.First.Vector(), e.Second.Vector(), o.First.Vector(), o.Second.Vector())
}

// Intersection returns the point where e and o intersect, if there is one
// that is acceptable under the given mode.
func (e Edge) Intersection(o Edge, mode Mode) (Point, bool, error) {
	v, ok, err := Intersect(e.First.Vector(), e.Second.Vector(), o.First.Vector(), o.Second.Vector(), mode)
	if err != nil || !ok {
		return Point{}, false, err
	}
	return PointFromVector(v), true, nil
}

// Contains returns true if p lies on the edge, including at its
// endpoints.
func (e Edge) Contains(p Point) bool {
	v, v1, v2 := p.Vector(), e.First.Vector(), e.Second.Vector()
	if math.VectorsEqual(v, v1) || math.VectorsEqual(v, v2) {
		return true
	}
	s, err := SideOf(v1, v2, v)
	return err == nil && s == On && IsBetween(v, v1, v2)
}

func (e Edge) String() string {
	return e.First.String() + " - " + e.Second.String()
}
