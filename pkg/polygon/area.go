// pkg/polygon/area.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package polygon

import (
	gomath "math"

	"github.com/golang/geo/r3"
	"github.com/mmp/earcut-go"

	"github.com/mmp/gcgeo/pkg/gc"
	"github.com/mmp/gcgeo/pkg/math"
)

// Triangulate returns a triangulation of the polygon. It is computed in
// latitude-longitude space using the unwrapped longitudes, so polygons
// that straddle the antemeridian are handled.
func (bp *BoundedSimplePolygon) Triangulate() [][3]gc.Point {
	vertices := make([]earcut.Vertex, len(bp.vertices))
	for i, v := range bp.vertices {
		vertices[i].P = [2]float64{bp.unwrapped[i], v.Latitude.Degrees()}
	}

	var tris [][3]gc.Point
	for _, tri := range earcut.Triangulate(earcut.Polygon{Rings: [][]earcut.Vertex{vertices}}) {
		var t [3]gc.Point
		for i, v := range tri.Vertices {
			t[i] = gc.NewPoint(v.P[1], v.P[0])
		}
		tris = append(tris, t)
	}
	return tris
}

// sphericalExcess returns the area in steradians of the spherical
// triangle with unit vector vertices a, b, and c.
func sphericalExcess(a, b, c r3.Vector) float64 {
	num := math.Abs(a.Dot(b.Cross(c)))
	den := 1 + a.Dot(b) + b.Dot(c) + c.Dot(a)
	return 2 * gomath.Atan2(num, den)
}

// Area returns the area of the polygon in square nautical miles, taking
// its edges as great circle arcs.
func (bp *BoundedSimplePolygon) Area() float64 {
	sum := 0.
	for _, t := range bp.Triangulate() {
		sum += sphericalExcess(t[0].Vector(), t[1].Vector(), t[2].Vector())
	}
	return sum * gc.EarthRadiusNM * gc.EarthRadiusNM
}
