// pkg/polygon/edge.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package polygon

import (
	"github.com/mmp/gcgeo/pkg/gc"
	"github.com/mmp/gcgeo/pkg/math"
)

// SimpleEdge is a directed polygon edge, reduced to just what the
// point-in-polygon test needs. All values are in degrees.
type SimpleEdge struct {
	lat1, lon1, lon2    float64
	crossesAntemeridian bool
	// Signed change in longitude going from the first vertex to the
	// second, the short way around if the edge crosses the antemeridian.
	azimuth float64
	// Change in latitude from the first vertex to the second.
	elevation float64
}

// longitudeDelta returns the signed number of degrees to travel east to
// get from lon1 to lon2; if wrap is true, the path goes across the
// antemeridian.
func longitudeDelta(lon1, lon2 float64, wrap bool) float64 {
	d := lon2 - lon1
	if wrap {
		if d > 180 {
			d -= 360
		} else if d < -180 {
			d += 360
		}
	}
	return d
}

func NewSimpleEdge(p1, p2 gc.Point) SimpleEdge {
	lat1, lon1 := p1.Latitude.Degrees(), p1.Longitude.Degrees()
	lat2, lon2 := p2.Latitude.Degrees(), p2.Longitude.Degrees()
	wrap := math.Abs(lon2-lon1) > 180
	return SimpleEdge{
		lat1:                lat1,
		lon1:                lon1,
		lon2:                lon2,
		crossesAntemeridian: wrap,
		azimuth:             longitudeDelta(lon1, lon2, wrap),
		elevation:           lat2 - lat1,
	}
}

func (e SimpleEdge) CrossesAntemeridian() bool {
	return e.crossesAntemeridian
}

// crossedBelow reports whether a ray going due south from (lat, lon)
// crosses the edge. Vertices are treated as if they were infinitesimally
// east of their actual longitude, so edges of constant longitude are never
// crossed and a ray passing through a vertex is only counted once.
func (e SimpleEdge) crossedBelow(lat, lon float64) bool {
	// For an ordinary edge the test longitude must be between the two
	// endpoints' longitudes; for one that wraps around the antemeridian
	// it must instead be outside of that range.
	if ((e.lon1 < lon) == (e.lon2 < lon)) != e.crossesAntemeridian {
		return false
	}

	edgeLat := e.lat1 + longitudeDelta(e.lon1, lon, e.crossesAntemeridian)/e.azimuth*e.elevation
	return edgeLat < lat
}
