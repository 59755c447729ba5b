// pkg/polygon/bounded.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package polygon

import (
	"github.com/mmp/gcgeo/pkg/gc"
	"github.com/mmp/gcgeo/pkg/math"
)

// BoundedSimplePolygon records which vertices are the polygon's northern,
// southern, eastern, and western extremes. East and west are found after
// "unwrapping" the vertices' longitudes so that they vary continuously
// around the ring, which gives the right answer for polygons that
// straddle the antemeridian. Polygons that enclose a pole have no
// meaningful east/west extent and are rejected.
type BoundedSimplePolygon struct {
	*SimplePolygon
	north, south, east, west int
	// Longitudes with multiples of 360 added so that there are no jumps
	// at the antemeridian.
	unwrapped []float64
}

// Extent describes the latitude and longitude range covered by a
// polygon's vertices. West may be greater than East if the polygon
// straddles the antemeridian.
type Extent struct {
	North, South math.Latitude
	West, East   math.Longitude
}

func NewBoundedSimplePolygon(pts []gc.Point) (*BoundedSimplePolygon, error) {
	sp, err := NewSimplePolygon(pts)
	if err != nil {
		return nil, err
	}

	v := sp.vertices
	bp := &BoundedSimplePolygon{SimplePolygon: sp, unwrapped: make([]float64, len(v))}

	offset, seamCrossings := 0., 0
	step := func(prev, cur gc.Point) {
		delta := cur.Longitude.Degrees() - prev.Longitude.Degrees()
		if delta == 0 || math.Abs(delta) == 180 {
			// Half-way around is ambiguous; like SimpleEdge, take it
			// as not crossing the antemeridian.
			return
		}
		if east := prev.Longitude.IsWestOf(cur.Longitude); east && delta < 0 {
			// Heading east across the antemeridian
			offset += 360
			seamCrossings++
		} else if !east && delta > 0 {
			offset -= 360
			seamCrossings--
		}
	}

	bp.unwrapped[0] = v[0].Longitude.Degrees()
	for i := 1; i < len(v); i++ {
		step(v[i-1], v[i])
		bp.unwrapped[i] = v[i].Longitude.Degrees() + offset
	}
	step(v[len(v)-1], v[0])

	if seamCrossings != 0 {
		return nil, ErrEnclosesPole
	}

	for i := range v {
		if v[i].Latitude > v[bp.north].Latitude {
			bp.north = i
		}
		if v[i].Latitude < v[bp.south].Latitude {
			bp.south = i
		}
		if bp.unwrapped[i] > bp.unwrapped[bp.east] {
			bp.east = i
		}
		if bp.unwrapped[i] < bp.unwrapped[bp.west] {
			bp.west = i
		}
	}

	return bp, nil
}

// North returns the index of the northernmost vertex; when more than one
// vertex is at the same latitude, the first one is returned. (And
// similarly for South, East, and West.)
func (bp *BoundedSimplePolygon) North() int { return bp.north }

func (bp *BoundedSimplePolygon) South() int { return bp.south }

func (bp *BoundedSimplePolygon) East() int { return bp.east }

func (bp *BoundedSimplePolygon) West() int { return bp.west }

func (bp *BoundedSimplePolygon) Extent() Extent {
	return Extent{
		North: bp.vertices[bp.north].Latitude,
		South: bp.vertices[bp.south].Latitude,
		West:  bp.vertices[bp.west].Longitude,
		East:  bp.vertices[bp.east].Longitude,
	}
}

// LongitudeSpan returns the number of degrees of longitude between the
// western and eastern extremes.
func (bp *BoundedSimplePolygon) LongitudeSpan() float64 {
	return bp.unwrapped[bp.east] - bp.unwrapped[bp.west]
}

// Center returns the point at the middle of the polygon's latitude and
// (unwrapped) longitude ranges.
func (bp *BoundedSimplePolygon) Center() gc.Point {
	e := bp.Extent()
	return gc.NewPoint((e.North.Degrees()+e.South.Degrees())/2,
		(bp.unwrapped[bp.east]+bp.unwrapped[bp.west])/2)
}
