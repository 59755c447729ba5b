// pkg/polygon/indexed.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package polygon

import (
	gomath "math"

	"github.com/mmp/gcgeo/pkg/gc"
	"github.com/mmp/gcgeo/pkg/math"
)

const numLongitudeBins = 360

// IndexedSimplePolygon gives the same results as SimplePolygon but
// buckets the edges into one-degree longitude bins so that Contains only
// needs to consider the edges that span the point's longitude. It's
// worth it for polygons with many vertices that are queried often.
type IndexedSimplePolygon struct {
	*SimplePolygon
	bins [numLongitudeBins][]int32
}

func longitudeBin(lon float64) int {
	return math.Clamp(int(gomath.Floor(lon+180)), 0, numLongitudeBins-1)
}

func NewIndexedSimplePolygon(pts []gc.Point) (*IndexedSimplePolygon, error) {
	sp, err := NewSimplePolygon(pts)
	if err != nil {
		return nil, err
	}

	ip := &IndexedSimplePolygon{SimplePolygon: sp}
	register := func(edge, b0, b1 int) {
		for b := b0; b <= b1; b++ {
			ip.bins[b] = append(ip.bins[b], int32(edge))
		}
	}

	for i, e := range sp.edges {
		lo, hi := min(e.lon1, e.lon2), max(e.lon1, e.lon2)
		if e.crossesAntemeridian {
			// From the eastern vertex to 180 and then from -180 to the
			// western one.
			register(i, longitudeBin(hi), numLongitudeBins-1)
			register(i, 0, longitudeBin(lo))
		} else {
			register(i, longitudeBin(lo), longitudeBin(hi))
		}
	}

	return ip, nil
}

func (ip *IndexedSimplePolygon) Contains(p gc.Point) bool {
	lat, lon := p.Latitude.Degrees(), p.Longitude.Degrees()
	inside := false
	for _, i := range ip.bins[longitudeBin(lon)] {
		if ip.edges[i].crossedBelow(lat, lon) {
			inside = !inside
		}
	}
	return inside
}
