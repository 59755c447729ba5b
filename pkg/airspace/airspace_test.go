// pkg/airspace/airspace_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package airspace

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/mmp/gcgeo/pkg/gc"
	"github.com/mmp/gcgeo/pkg/math"
	"github.com/mmp/gcgeo/pkg/polygon"
	"github.com/mmp/gcgeo/pkg/rand"
)

var (
	box     = [][2]float64{{1, 0}, {1, 10}, {10, 10}, {10, 0}}
	pacific = [][2]float64{{-10, 170}, {-10, -170}, {10, -170}, {10, 170}}

	testSpecs = []VolumeSpec{
		{Name: "Box", Floor: 0, Ceiling: 10000, Boundaries: [][][2]float64{box}},
		{Name: "Upper", Floor: 11000, Ceiling: 20000, Boundaries: [][][2]float64{box}},
		{Name: "ClassA", Floor: 25000, Ceiling: 40000, Boundaries: [][][2]float64{box}},
		{Name: "Donut", Floor: 0, Ceiling: 5000, Boundaries: [][][2]float64{
			{{20, 20}, {20, 30}, {30, 30}, {30, 20}},
			{{24, 24}, {24, 26}, {26, 26}, {26, 24}},
		}},
		{Name: "Pacific", Floor: 0, Ceiling: 18000, Boundaries: [][][2]float64{pacific}},
	}
)

func makeAirspace(t *testing.T, cfg Config) *Airspace {
	t.Helper()
	a, err := New(testSpecs, cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	return a
}

func TestContains(t *testing.T) {
	a := makeAirspace(t, DefaultConfig())

	for _, test := range []struct {
		name     string
		p        gc.Point
		expected []string
	}{
		{"box, no altitude", gc.NewPoint(5, 5), []string{"Box", "Upper", "ClassA"}},
		{"box, low", gc.NewPoint(5, 5).WithAltitude(5000), []string{"Box"}},
		{"box, floor", gc.NewPoint(5, 5).WithAltitude(11000), []string{"Upper"}},
		{"box, ceiling", gc.NewPoint(5, 5).WithAltitude(10000), []string{"Box"}},
		{"box, gap", gc.NewPoint(5, 5).WithAltitude(10500), nil},
		{"box, above", gc.NewPoint(5, 5).WithAltitude(50000), nil},
		{"donut", gc.NewPoint(21, 21), []string{"Donut"}},
		{"donut hole", gc.NewPoint(25, 25), nil},
		{"pacific west", gc.NewPoint(0, 175), []string{"Pacific"}},
		{"pacific east", gc.NewPoint(0, -175), []string{"Pacific"}},
		{"pacific antemeridian", gc.NewPoint(5, 180).WithAltitude(10000), []string{"Pacific"}},
		{"nowhere", gc.NewPoint(50, 50), nil},
	} {
		t.Run(test.name, func(t *testing.T) {
			// Twice, to check cached results as well.
			for range 2 {
				if got := a.Contains(test.p); !slices.Equal(got, test.expected) {
					t.Errorf("got %v, expected %v", got, test.expected)
				}
			}
		})
	}
}

func TestContainsCache(t *testing.T) {
	a := makeAirspace(t, DefaultConfig())
	p := gc.NewPoint(5, 5)

	names := a.Contains(p)
	if a.CacheLen() != 1 {
		t.Errorf("expected 1 cached result, got %d", a.CacheLen())
	}
	names[0] = "modified"
	if got := a.Contains(p); got[0] != "Box" {
		t.Errorf("cached result was modified by caller: %v", got)
	}

	cfg := DefaultConfig()
	cfg.CacheSize = 0
	nc := makeAirspace(t, cfg)
	nc.Contains(p)
	if nc.CacheLen() != 0 {
		t.Errorf("cache disabled but has %d entries", nc.CacheLen())
	}
}

func TestInAirspace(t *testing.T) {
	a := makeAirspace(t, DefaultConfig())

	for _, test := range []struct {
		name   string
		p      gc.Point
		alt    int
		inside bool
		ranges [][2]int
	}{
		{"merged gap", gc.NewPoint(5, 5), 10500, true, [][2]int{{0, 20000}, {25000, 40000}}},
		{"between ranges", gc.NewPoint(5, 5), 22000, false, [][2]int{{0, 20000}, {25000, 40000}}},
		{"within slop", gc.NewPoint(5, 5), 20005, true, [][2]int{{0, 20000}, {25000, 40000}}},
		{"above", gc.NewPoint(5, 5), 45000, false, [][2]int{{0, 20000}, {25000, 40000}}},
		{"donut", gc.NewPoint(21, 29), 3000, true, [][2]int{{0, 5000}}},
		{"donut hole", gc.NewPoint(25, 25), 3000, false, nil},
		{"nowhere", gc.NewPoint(50, 50), 3000, false, nil},
	} {
		t.Run(test.name, func(t *testing.T) {
			inside, ranges := a.InAirspace(test.p, test.alt)
			if inside != test.inside {
				t.Errorf("got inside %v, expected %v", inside, test.inside)
			}
			if !slices.Equal(ranges, test.ranges) {
				t.Errorf("got ranges %v, expected %v", ranges, test.ranges)
			}
		})
	}
}

func TestInAirspaceContainedRange(t *testing.T) {
	a, err := New([]VolumeSpec{
		{Name: "Wide", Floor: 0, Ceiling: 20000, Boundaries: [][][2]float64{box}},
		{Name: "Narrow", Floor: 5000, Ceiling: 6000, Boundaries: [][][2]float64{box}},
	}, DefaultConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}

	// A range inside another mustn't shrink the merged range.
	if inside, ranges := a.InAirspace(gc.NewPoint(5, 5), 15000); !inside || !slices.Equal(ranges, [][2]int{{0, 20000}}) {
		t.Errorf("got %v %v", inside, ranges)
	}
}

func TestContainsAll(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CacheSize = 0
	a := makeAirspace(t, cfg)

	r := rand.Make()
	pts := make([]gc.Point, 2000)
	for i := range pts {
		if i%4 == 0 {
			// Make sure that some of them are inside.
			pts[i] = gc.NewPoint(r.Uniform(1.5, 9.5), r.Uniform(0.5, 9.5))
		} else {
			pts[i] = gc.NewPoint(r.LatLong())
		}
	}

	all, err := a.ContainsAll(context.Background(), pts)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if len(all) != len(pts) {
		t.Fatalf("got %d results for %d points", len(all), len(pts))
	}
	for i, p := range pts {
		if expected := a.Contains(p); !slices.Equal(all[i], expected) {
			t.Errorf("%s: got %v, expected %v", p, all[i], expected)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := a.ContainsAll(ctx, pts); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRouteCrossings(t *testing.T) {
	a := makeAirspace(t, DefaultConfig())

	route := []gc.Point{
		gc.NewPoint(5, -5),
		gc.NewPoint(5, 15),
		gc.NewPoint(5, 15), // degenerate leg
		gc.NewPoint(0, 175),
		gc.NewPoint(0, -175),
		gc.NewPoint(40, -120),
		gc.NewPoint(45, -100),
	}
	crossings, err := a.RouteCrossings(route)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	expected := []struct {
		leg     int
		volumes []string
	}{
		{0, []string{"Box", "Upper", "ClassA"}},
		{2, []string{"Pacific"}},
		{3, []string{"Pacific"}},
		{4, []string{"Pacific"}},
		{5, nil},
	}
	if len(crossings) != len(expected) {
		t.Fatalf("got %d crossings, expected %d: %+v", len(crossings), len(expected), crossings)
	}
	for i, c := range crossings {
		if c.Leg != expected[i].leg || !slices.Equal(c.Volumes, expected[i].volumes) {
			t.Errorf("leg %d: got %v, expected leg %d %v", c.Leg, c.Volumes, expected[i].leg, expected[i].volumes)
		}
		if d := gc.Distance(route[c.Leg], route[c.Leg+1]); math.Abs(c.LengthNM-d) > 1e-9 {
			t.Errorf("leg %d: got length %f, expected %f", c.Leg, c.LengthNM, d)
		}
	}

	// (0, 175) to (0, -175) is 10 degrees along the equator.
	if math.Abs(crossings[2].LengthNM-600) > 1 {
		t.Errorf("antemeridian leg: got %f nm", crossings[2].LengthNM)
	}
}

func TestRouteCrossingsAntipodal(t *testing.T) {
	a := makeAirspace(t, DefaultConfig())

	// The great circle fallback for the Pacific volume needs a unique
	// minor arc.
	_, err := a.RouteCrossings([]gc.Point{gc.NewPoint(50, 50), gc.NewPoint(-50, -130)})
	if !errors.Is(err, gc.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAntipodalRingEdge(t *testing.T) {
	// The first edge runs 180 degrees along the equator, so its endpoints
	// don't define a unique great circle.
	a, err := New([]VolumeSpec{
		{Name: "Half", Floor: 0, Ceiling: 10000, Boundaries: [][][2]float64{{{0, -90}, {0, 90}, {10, 0}}}},
	}, DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	if got := a.Contains(gc.NewPoint(5, 0)); !slices.Equal(got, []string{"Half"}) {
		t.Errorf("got %v, expected [Half]", got)
	}
	if got := a.Contains(gc.NewPoint(-5, 0)); got != nil {
		t.Errorf("got %v, expected nil", got)
	}

	route := []gc.Point{gc.NewPoint(5, 0), gc.NewPoint(20, 0), gc.NewPoint(30, 10), gc.NewPoint(40, 10)}
	crossings, err := a.RouteCrossings(route)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if len(crossings) != 3 {
		t.Fatalf("got %d crossings, expected 3", len(crossings))
	}
	for i, expected := range [][]string{{"Half"}, nil, nil} {
		if !slices.Equal(crossings[i].Volumes, expected) {
			t.Errorf("leg %d: got %v, expected %v", i, crossings[i].Volumes, expected)
		}
	}
}

func TestExtent(t *testing.T) {
	a := makeAirspace(t, DefaultConfig())

	for _, test := range []struct {
		name                     string
		north, south, west, east float64
	}{
		{"Box", 10, 1, 0, 10},
		{"Pacific", 10, -10, 170, -170},
	} {
		t.Run(test.name, func(t *testing.T) {
			ext, err := a.Extent(test.name)
			if err != nil {
				t.Fatalf("unexpected error %v", err)
			}
			if len(ext) != 1 {
				t.Fatalf("expected 1 extent, got %d", len(ext))
			}
			e := ext[0]
			if e.North.Degrees() != test.north || e.South.Degrees() != test.south ||
				e.West.Degrees() != test.west || e.East.Degrees() != test.east {
				t.Errorf("got %+v", e)
			}
		})
	}

	if ext, err := a.Extent("Donut"); err != nil || len(ext) != 2 {
		t.Errorf("Donut: got %v, %v", ext, err)
	}
	if _, err := a.Extent("Nowhere"); !errors.Is(err, ErrUnknownVolume) {
		t.Errorf("expected ErrUnknownVolume, got %v", err)
	}

	if c, err := a.Center("Box"); err != nil || !c.Equal(gc.NewPoint(5.5, 5)) {
		t.Errorf("Box center: got %s, %v", c, err)
	}
	if s, err := a.Span("Pacific"); err != nil || math.Abs(s-20) > 1e-9 {
		t.Errorf("Pacific span: got %f, %v", s, err)
	}
}

func TestPolarVolume(t *testing.T) {
	a, err := New([]VolumeSpec{{
		Name:       "Arctic",
		Ceiling:    60000,
		Boundaries: [][][2]float64{{{80, 0}, {80, 90}, {80, 180}, {80, -90}}},
	}}, DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	if got := a.Contains(gc.NewPoint(89, 45)); !slices.Equal(got, []string{"Arctic"}) {
		t.Errorf("got %v", got)
	}
	if got := a.Contains(gc.NewPoint(70, 45)); got != nil {
		t.Errorf("got %v", got)
	}
	if _, err := a.Extent("Arctic"); !errors.Is(err, polygon.ErrEnclosesPole) {
		t.Errorf("expected ErrEnclosesPole, got %v", err)
	}
}

func TestValidation(t *testing.T) {
	specs := []VolumeSpec{
		{Name: "", Ceiling: 1000, Boundaries: [][][2]float64{box}},
		{Name: "A", Floor: 10000, Ceiling: 0, Boundaries: [][][2]float64{box}},
		{Name: "A", Ceiling: 1000, Boundaries: [][][2]float64{{{0, 0}, {1, 1}}}},
		{Name: "B", Ceiling: 1000, Boundaries: [][][2]float64{{{95, 0}, {0, 1}, {1, 1}}}},
		{Name: "C", Ceiling: 1000},
		{Name: "D", Ceiling: 1000, Boundaries: [][][2]float64{box}},
	}

	_, err := New(specs, DefaultConfig(), nil)
	if err == nil {
		t.Fatalf("expected validation errors")
	}

	msg := err.Error()
	for _, s := range []string{
		`volume 0: must provide "name"`,
		`A: "floor" 10000 is above "ceiling" 0`,
		"A: volume name repeated",
		"A / ring 0: only 2 vertices",
		"B / ring 0: latitude 95.000000 out of range",
		"C: must provide at least one boundary",
	} {
		if !strings.Contains(msg, s) {
			t.Errorf("error %q doesn't contain %q", msg, s)
		}
	}
	if n := strings.Count(msg, "\n") + 1; n != 6 {
		t.Errorf("expected 6 errors, got %d: %s", n, msg)
	}
}

func TestBuildErrors(t *testing.T) {
	_, err := New([]VolumeSpec{
		{Name: "Fine", Ceiling: 1000, Boundaries: [][][2]float64{box}},
		{Name: "Degenerate", Ceiling: 1000, Boundaries: [][][2]float64{{{0, 0}, {0, 0}, {1, 1}}}},
	}, DefaultConfig(), nil)
	if !errors.Is(err, polygon.ErrTooFewVertices) || !strings.Contains(err.Error(), "Degenerate: ring 0") {
		t.Errorf("expected ErrTooFewVertices for Degenerate, got %v", err)
	}
}

func TestSpecs(t *testing.T) {
	a := makeAirspace(t, DefaultConfig())

	if names := a.Names(); !slices.Equal(names, []string{"Box", "Upper", "ClassA", "Donut", "Pacific"}) {
		t.Errorf("got names %v", names)
	}

	specs := a.Specs()
	specs[0].Name = "Changed"
	specs[0].Boundaries[0][0] = [2]float64{-45, -45}
	if s := a.Specs(); s[0].Name != "Box" || s[0].Boundaries[0][0] != box[0] {
		t.Errorf("Specs didn't return a copy: %+v", s[0])
	}
	if box[0] != [2]float64{1, 0} {
		t.Errorf("caller's boundary was modified")
	}
}

func TestNearest(t *testing.T) {
	a := makeAirspace(t, DefaultConfig())

	for _, test := range []struct {
		p      gc.Point
		name   string
		vertex gc.Point
	}{
		{gc.NewPoint(19, 19), "Donut", gc.NewPoint(20, 20)},
		{gc.NewPoint(25.5, 25.2), "Donut", gc.NewPoint(26, 26)},
		{gc.NewPoint(8, -168), "Pacific", gc.NewPoint(10, -170)},
		{gc.NewPoint(-12, 171), "Pacific", gc.NewPoint(-10, 170)},
	} {
		name, nm, ok := a.Nearest(test.p)
		if !ok || name != test.name {
			t.Errorf("%s: got %q, expected %q", test.p, name, test.name)
		}
		if d := gc.Distance(test.p, test.vertex); math.Abs(nm-d) > 1e-6 {
			t.Errorf("%s: got distance %f, expected %f", test.p, nm, d)
		}
	}

	empty, err := New(nil, DefaultConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, _, ok := empty.Nearest(gc.NewPoint(0, 0)); ok {
		t.Errorf("expected no nearest volume in empty airspace")
	}
}

func TestArea(t *testing.T) {
	a := makeAirspace(t, DefaultConfig())

	for _, test := range []struct {
		name     string
		expected float64 // square nm
	}{
		{"Box", 323405.3818},
		{"Donut", 313610.5269},
		{"Pacific", 1448927.4013},
	} {
		t.Run(test.name, func(t *testing.T) {
			if area, err := a.Area(test.name); err != nil || math.Abs(area-test.expected) > 1e-6*test.expected {
				t.Errorf("got %f, %v, expected %f", area, err, test.expected)
			}
		})
	}

	if _, err := a.Area("Nowhere"); !errors.Is(err, ErrUnknownVolume) {
		t.Errorf("expected ErrUnknownVolume, got %v", err)
	}
}
