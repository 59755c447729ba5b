// pkg/polygon/simple.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package polygon provides point-in-polygon, segment crossing, and extent
// computations for simple polygons on the earth whose vertices are given
// in latitude-longitude.
package polygon

import (
	"fmt"
	"slices"

	"github.com/mmp/gcgeo/pkg/gc"
)

// Region is implemented by all of the polygon types.
type Region interface {
	Contains(p gc.Point) bool
}

// SimplePolygon is a closed ring of vertices. Edges between vertices are
// treated as straight lines in latitude-longitude space (which is a fine
// approximation to the great circle arc for the short edges found in
// airspace definitions), taking the shorter way around the globe in
// longitude. A SimplePolygon isn't modified after it's created and so may
// be used concurrently.
type SimplePolygon struct {
	vertices []gc.Point
	edges    []SimpleEdge
}

// closeRing removes consecutive duplicate vertices and an explicit
// closing vertex, if present, so that there are no zero-length edges. At
// least three distinct vertices must remain.
func closeRing(pts []gc.Point) ([]gc.Point, error) {
	var v []gc.Point
	for _, p := range pts {
		if len(v) == 0 || !p.Equal(v[len(v)-1]) {
			v = append(v, p)
		}
	}
	for len(v) > 1 && v[len(v)-1].Equal(v[0]) {
		v = v[:len(v)-1]
	}

	if len(v) < 3 {
		return nil, fmt.Errorf("%d vertices: %w", len(v), ErrTooFewVertices)
	}
	// v[0] and v[1] differ, so there are at least three distinct vertices
	// if any vertex matches neither of them.
	if !slices.ContainsFunc(v[2:], func(p gc.Point) bool { return !p.Equal(v[0]) && !p.Equal(v[1]) }) {
		return nil, fmt.Errorf("2 distinct vertices: %w", ErrTooFewVertices)
	}
	return v, nil
}

// NewSimplePolygon returns a polygon with the given vertices. The ring is
// implicitly closed; the last vertex may repeat the first, but need not.
func NewSimplePolygon(pts []gc.Point) (*SimplePolygon, error) {
	v, err := closeRing(pts)
	if err != nil {
		return nil, err
	}

	sp := &SimplePolygon{vertices: v, edges: make([]SimpleEdge, len(v))}
	for i := range v {
		sp.edges[i] = NewSimpleEdge(v[i], v[(i+1)%len(v)])
	}
	return sp, nil
}

// Contains uses the even-odd rule to determine whether p is inside the
// polygon: it counts how many edges a ray from p to the south pole
// crosses.
func (sp *SimplePolygon) Contains(p gc.Point) bool {
	lat, lon := p.Latitude.Degrees(), p.Longitude.Degrees()
	inside := false
	for _, e := range sp.edges {
		if e.crossedBelow(lat, lon) {
			inside = !inside
		}
	}
	return inside
}

// Vertices returns a copy of the polygon's vertices, without a repeated
// closing vertex.
func (sp *SimplePolygon) Vertices() []gc.Point {
	return slices.Clone(sp.vertices)
}

func (sp *SimplePolygon) NumEdges() int {
	return len(sp.edges)
}

// Edge returns the i'th edge, which goes from vertex i to vertex i+1
// (wrapping around at the end).
func (sp *SimplePolygon) Edge(i int) SimpleEdge {
	return sp.edges[i]
}

// CrossesAntemeridian returns true if any of the polygon's edges crosses
// the antemeridian.
func (sp *SimplePolygon) CrossesAntemeridian() bool {
	return slices.ContainsFunc(sp.edges, func(e SimpleEdge) bool { return e.crossesAntemeridian })
}
