// pkg/math/kdtree_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	gomath "math"
	"testing"

	"github.com/golang/geo/r3"
)

func TestBuildKDTree(t *testing.T) {
	if tree := BuildKDTree(nil); tree != nil {
		t.Error("expected nil tree for nil input")
	}
	if _, ok := BuildKDTree(nil).Nearest(r3.Vector{X: 1}); ok {
		t.Error("expected no nearest item in empty tree")
	}

	items := []KDItem{{Location: LatLongToVector(NewLatitude(40), NewLongitude(-75)), Index: 7}}
	tree := BuildKDTree(items)
	if tree == nil {
		t.Fatal("expected non-nil tree for single item")
	}
	if tree.Index != 7 || tree.Left != nil || tree.Right != nil {
		t.Errorf("unexpected single-item tree %+v", tree)
	}
}

func TestKDTreeNearest(t *testing.T) {
	// A 5 degree grid of points over the whole sphere.
	var items []KDItem
	var lls [][2]float64
	for lat := -85.; lat <= 85; lat += 5 {
		for lon := -180.; lon < 180; lon += 5 {
			items = append(items, KDItem{Location: LatLongToVector(NewLatitude(lat), NewLongitude(lon)), Index: len(lls)})
			lls = append(lls, [2]float64{lat, lon})
		}
	}
	tree := BuildKDTree(items)

	for _, test := range []struct {
		name     string
		lat, lon float64
		expected [2]float64
	}{
		{"interior", 41, -74, [2]float64{40, -75}},
		{"across the antemeridian", 1, 179.4, [2]float64{0, -180}},
		{"west of the antemeridian", -1, -177.6, [2]float64{0, -180}},
		{"near the pole", 89.9, 12, [2]float64{85, 10}},
	} {
		t.Run(test.name, func(t *testing.T) {
			item, ok := tree.Nearest(LatLongToVector(NewLatitude(test.lat), NewLongitude(test.lon)))
			if !ok {
				t.Fatal("no nearest item")
			}
			if lls[item.Index] != test.expected {
				t.Errorf("got %v, expected %v", lls[item.Index], test.expected)
			}
		})
	}
}

func TestKDTreeNearestMatchesBruteForce(t *testing.T) {
	// Deterministic but irregular points.
	var items []KDItem
	for i := range 500 {
		lat := 80 * gomath.Sin(float64(i)*1.7)
		lon := 180 * gomath.Sin(float64(i)*0.37+1)
		items = append(items, KDItem{Location: LatLongToVector(NewLatitude(lat), NewLongitude(lon)), Index: i})
	}
	all := append([]KDItem(nil), items...)
	tree := BuildKDTree(items)

	for i := range 200 {
		v := LatLongToVector(NewLatitude(85*gomath.Cos(float64(i)*2.3)), NewLongitude(179*gomath.Cos(float64(i)*0.91)))

		best, bestDist := -1, gomath.Inf(1)
		for _, it := range all {
			if d := v.Sub(it.Location).Norm2(); d < bestDist {
				best, bestDist = it.Index, d
			}
		}

		if item, _ := tree.Nearest(v); item.Index != best {
			t.Errorf("query %d: got %d, expected %d", i, item.Index, best)
		}
	}
}
