// pkg/polygon/crossing.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package polygon

import (
	"fmt"

	"github.com/mmp/gcgeo/pkg/gc"
	"github.com/mmp/gcgeo/pkg/math"
)

// CrossingSimplePolygon adds a test for whether a line segment enters the
// polygon. Its bounding box is computed in plain latitude-longitude
// coordinates, so it can't represent polygons that straddle the
// antemeridian; NewCrossingSimplePolygon returns ErrCrossesAntemeridian
// for them.
type CrossingSimplePolygon struct {
	*SimplePolygon
	edges  []gc.Edge
	bounds math.Extent2D
}

func toXY(p gc.Point) [2]float64 {
	return [2]float64{p.Longitude.Degrees(), p.Latitude.Degrees()}
}

func NewCrossingSimplePolygon(pts []gc.Point) (*CrossingSimplePolygon, error) {
	sp, err := NewSimplePolygon(pts)
	if err != nil {
		return nil, err
	}
	if sp.CrossesAntemeridian() {
		return nil, ErrCrossesAntemeridian
	}

	cp := &CrossingSimplePolygon{
		SimplePolygon: sp,
		edges:         make([]gc.Edge, len(sp.vertices)),
		bounds:        math.EmptyExtent2D(),
	}
	for i, v := range sp.vertices {
		next := sp.vertices[(i+1)%len(sp.vertices)]
		if cp.edges[i], err = gc.NewEdge(v, next); err != nil {
			return nil, fmt.Errorf("edge %d: %w", i, err)
		}
		cp.bounds = math.Union(cp.bounds, toXY(v))
	}

	return cp, nil
}

// Bounds returns the polygon's bounding box, with longitude in the x
// coordinate and latitude in y.
func (cp *CrossingSimplePolygon) Bounds() math.Extent2D {
	return cp.bounds
}

// Crosses returns true if any part of the segment from a to b is inside
// the polygon. The segment is treated as a straight line in
// latitude-longitude, like the polygon's edges; it must not cross the
// antemeridian.
func (cp *CrossingSimplePolygon) Crosses(a, b gc.Point) bool {
	pa, pb := toXY(a), toXY(b)
	if !math.Overlaps(math.Extent2DFromPoints(pa, pb), cp.bounds) {
		return false
	}

	if cp.Contains(a) || cp.Contains(b) {
		return true
	}

	// Both endpoints are outside, so the segment is only inside if it
	// passes through the polygon, crossing at least two edges on the way.
	for _, e := range cp.edges {
		if _, ok := math.SegmentSegmentIntersect(pa, pb, toXY(e.First), toXY(e.Second)); ok {
			return true
		}
	}
	return false
}

// CrossesGreatCircle is like Crosses, but treats both the segment and the
// polygon's edges as great circle arcs. It's slower than Crosses but is
// valid for segments that cross the antemeridian. An error is returned if
// a and b are the same point or antipodal.
func (cp *CrossingSimplePolygon) CrossesGreatCircle(a, b gc.Point) (bool, error) {
	if cp.Contains(a) || cp.Contains(b) {
		return true, nil
	}

	seg, err := gc.NewEdge(a, b)
	if err != nil {
		return false, err
	}
	for _, e := range cp.edges {
		if _, ok, err := seg.Intersection(e, gc.NonStrict); err != nil {
			return false, err
		} else if ok {
			return true, nil
		}
	}
	return false, nil
}
