// pkg/airspace/airspace.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package airspace

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"slices"
	"time"

	"github.com/mmp/gcgeo/pkg/gc"
	"github.com/mmp/gcgeo/pkg/log"
	"github.com/mmp/gcgeo/pkg/math"
	"github.com/mmp/gcgeo/pkg/polygon"
	"github.com/mmp/gcgeo/pkg/util"

	"github.com/brunoga/deep"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/errgroup"
)

// VolumeSpec describes a named volume of airspace: the region between
// Floor and Ceiling (feet) inside its lateral boundary. Each boundary
// ring is a list of [latitude, longitude] pairs in degrees; when there
// are multiple rings, a point is inside if it is inside an odd number
// of them, so rings may be used to cut holes.
type VolumeSpec struct {
	Name       string         `json:"name"`
	Floor      int            `json:"floor"`
	Ceiling    int            `json:"ceiling"`
	Boundaries [][][2]float64 `json:"boundaries"`
}

// File is the top-level structure of JSON airspace files.
type File struct {
	Volumes []VolumeSpec `json:"volumes"`
}

type Config struct {
	// CacheSize is the number of Contains results to cache; zero
	// disables caching.
	CacheSize int
	CacheTTL  time.Duration
	// DiskCache enables caching parsed JSON airspace files in the user's
	// cache directory.
	DiskCache bool
}

func DefaultConfig() Config {
	return Config{
		CacheSize: 4096,
		CacheTTL:  10 * time.Minute,
	}
}

type ring struct {
	indexed *polygon.IndexedSimplePolygon
	// nil if the ring encloses a pole.
	bounded *polygon.BoundedSimplePolygon
	// nil if the ring straddles the antemeridian.
	crossing *polygon.CrossingSimplePolygon
}

type volume struct {
	name           string
	floor, ceiling int
	rings          []ring
}

type cacheKey struct {
	lat, lon    float64
	alt         float64
	hasAltitude bool
}

// Airspace is a collection of airspace volumes that can be queried
// concurrently.
type Airspace struct {
	specs   []VolumeSpec
	volumes []volume
	byName  map[string]int

	// Boundary vertices, indexed by volume.
	vertices *math.KDNode

	cache *expirable.LRU[cacheKey, []string]
	lg    *log.Logger
}

// Crossing records the volumes that a leg of a route passes through.
type Crossing struct {
	Leg      int
	From, To gc.Point
	// Great circle length of the leg in nautical miles.
	LengthNM float64
	Volumes  []string
}

func validate(specs []VolumeSpec, e *util.ErrorLogger) {
	defer e.CheckDepth(e.CurrentDepth())

	seen := make(map[string]bool)
	for i, spec := range specs {
		if spec.Name == "" {
			e.Push(fmt.Sprintf("volume %d", i))
			e.ErrorString("must provide \"name\"")
		} else {
			e.Push(spec.Name)
			if seen[spec.Name] {
				e.ErrorString("volume name repeated")
			}
			seen[spec.Name] = true
		}

		if spec.Floor > spec.Ceiling {
			e.ErrorString("\"floor\" %d is above \"ceiling\" %d", spec.Floor, spec.Ceiling)
		}
		if len(spec.Boundaries) == 0 {
			e.ErrorString("must provide at least one boundary in \"boundaries\"")
		}

		for j, b := range spec.Boundaries {
			e.Push(fmt.Sprintf("ring %d", j))
			if len(b) < 3 {
				e.ErrorString("only %d vertices; at least 3 are required", len(b))
			}
			for _, ll := range b {
				if ll[0] < -90 || ll[0] > 90 {
					e.ErrorString("latitude %f out of range", ll[0])
				}
				if ll[1] < -180 || ll[1] > 180 {
					e.ErrorString("longitude %f out of range", ll[1])
				}
			}
			e.Pop()
		}

		e.Pop()
	}
}

func ringPoints(b [][2]float64) []gc.Point {
	pts := make([]gc.Point, len(b))
	for i, ll := range b {
		pts[i] = gc.NewPoint(ll[0], ll[1])
	}
	return pts
}

func buildVolume(spec VolumeSpec, lg *log.Logger) (volume, error) {
	v := volume{name: spec.Name, floor: spec.Floor, ceiling: spec.Ceiling}

	for i, b := range spec.Boundaries {
		pts := ringPoints(b)

		var r ring
		var err error
		if r.indexed, err = polygon.NewIndexedSimplePolygon(pts); err != nil {
			return v, fmt.Errorf("%s: ring %d: %w", spec.Name, i, err)
		}

		if r.bounded, err = polygon.NewBoundedSimplePolygon(pts); errors.Is(err, polygon.ErrEnclosesPole) {
			lg.Debug("ring encloses a pole", slog.String("volume", spec.Name), slog.Int("ring", i))
			r.bounded = nil
		} else if err != nil {
			return v, fmt.Errorf("%s: ring %d: %w", spec.Name, i, err)
		}

		if r.crossing, err = polygon.NewCrossingSimplePolygon(pts); errors.Is(err, polygon.ErrCrossesAntemeridian) {
			lg.Debug("ring straddles the antemeridian", slog.String("volume", spec.Name), slog.Int("ring", i))
			r.crossing = nil
		} else if errors.Is(err, gc.ErrInvalidInput) {
			// An edge with antipodal endpoints has no unique great circle;
			// route crossings fall back to the great circle scan, which
			// skips it.
			lg.Debug("ring has a degenerate edge", slog.String("volume", spec.Name), slog.Int("ring", i),
				slog.Any("error", err))
			r.crossing = nil
		} else if err != nil {
			return v, fmt.Errorf("%s: ring %d: %w", spec.Name, i, err)
		}

		v.rings = append(v.rings, r)
	}

	return v, nil
}

// New validates the given volume specifications and builds the polygons
// used to answer queries. All validation errors are reported together.
func New(specs []VolumeSpec, cfg Config, lg *log.Logger) (*Airspace, error) {
	var e util.ErrorLogger
	validate(specs, &e)
	if e.HaveErrors() {
		return nil, e.Err()
	}

	start := time.Now()
	a := &Airspace{
		specs:   deep.MustCopy(specs),
		volumes: make([]volume, len(specs)),
		byName:  make(map[string]int),
		lg:      lg,
	}

	var eg errgroup.Group
	eg.SetLimit(runtime.NumCPU())
	for i, spec := range a.specs {
		a.byName[spec.Name] = i
		eg.Go(func() error {
			var err error
			a.volumes[i], err = buildVolume(spec, lg)
			return err
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	var items []math.KDItem
	for i, spec := range a.specs {
		for _, b := range spec.Boundaries {
			for _, ll := range b {
				items = append(items, math.KDItem{Location: gc.NewPoint(ll[0], ll[1]).Vector(), Index: i})
			}
		}
	}
	a.vertices = math.BuildKDTree(items)

	if cfg.CacheSize > 0 {
		a.cache = expirable.NewLRU[cacheKey, []string](cfg.CacheSize, nil, cfg.CacheTTL)
	}

	lg.Info("built airspace", slog.Int("volumes", len(a.volumes)), slog.Duration("elapsed", time.Since(start)))

	return a, nil
}

func (v *volume) lateralContains(p gc.Point) bool {
	inside := false
	for _, r := range v.rings {
		if r.indexed.Contains(p) {
			inside = !inside
		}
	}
	return inside
}

// Contains returns the names of the volumes whose lateral boundary
// contains p, in the order they were specified. If p has an altitude,
// only volumes whose floor and ceiling include it are returned.
func (a *Airspace) Contains(p gc.Point) []string {
	key := cacheKey{
		lat:         p.Latitude.Degrees(),
		lon:         p.Longitude.Degrees(),
		alt:         p.Altitude,
		hasAltitude: p.HasAltitude,
	}
	if a.cache != nil {
		if names, ok := a.cache.Get(key); ok {
			return slices.Clone(names)
		}
	}

	var names []string
	for i := range a.volumes {
		v := &a.volumes[i]
		if p.HasAltitude && (p.Altitude < float64(v.floor) || p.Altitude > float64(v.ceiling)) {
			continue
		}
		if v.lateralContains(p) {
			names = append(names, v.name)
		}
	}

	if a.cache != nil {
		a.cache.Add(key, slices.Clone(names))
	}
	return names
}

// InAirspace returns whether the given position and altitude are inside
// the airspace along with the altitude ranges of the airspace above p.
// Ranges that overlap or are within 1000' of each other are merged, and
// altitudes within 10' of a range are considered to be inside it.
func (a *Airspace) InAirspace(p gc.Point, alt int) (bool, [][2]int) {
	var altRanges [][2]int
	for i := range a.volumes {
		if v := &a.volumes[i]; v.lateralContains(p) {
			altRanges = append(altRanges, [2]int{v.floor, v.ceiling})
		}
	}
	if len(altRanges) == 0 {
		return false, nil
	}

	slices.SortFunc(altRanges, func(a, b [2]int) int { return a[0] - b[0] })

	var merged [][2]int
	cur := altRanges[0]
	for _, r := range altRanges[1:] {
		if r[0]-cur[1] <= 1000 {
			cur[1] = max(cur[1], r[1])
		} else {
			merged = append(merged, cur)
			cur = r
		}
	}
	merged = append(merged, cur)

	inside := slices.ContainsFunc(merged, func(r [2]int) bool {
		return alt+10 >= r[0] && alt-10 <= r[1]
	})
	return inside, merged
}

// ContainsAll runs Contains for each of the given points concurrently.
func (a *Airspace) ContainsAll(ctx context.Context, pts []gc.Point) ([][]string, error) {
	result := make([][]string, len(pts))

	const chunk = 256
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.NumCPU())
	for start := 0; start < len(pts); start += chunk {
		end := min(start+chunk, len(pts))
		eg.Go(func() error {
			for i := start; i < end; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				result[i] = a.Contains(pts[i])
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

// crosses reports whether the leg from p0 to p1 passes through r. The
// planar test is used when the ring has one and the leg doesn't cross
// the antemeridian; otherwise the leg and the ring's edges are treated as
// great circle arcs. Ring edges with antipodal endpoints are skipped.
func (r *ring) crosses(p0, p1 gc.Point, legWraps bool) (bool, error) {
	if r.crossing != nil {
		if !legWraps {
			return r.crossing.Crosses(p0, p1), nil
		}
		return r.crossing.CrossesGreatCircle(p0, p1)
	}

	if r.indexed.Contains(p0) || r.indexed.Contains(p1) {
		return true, nil
	}

	leg, err := gc.NewEdge(p0, p1)
	if err != nil {
		return false, err
	}
	vtx := r.indexed.Vertices()
	for i := range vtx {
		e, err := gc.NewEdge(vtx[i], vtx[(i+1)%len(vtx)])
		if errors.Is(err, gc.ErrInvalidInput) {
			continue
		} else if err != nil {
			return false, err
		}
		if _, ok, err := leg.Intersection(e, gc.NonStrict); err != nil {
			return false, err
		} else if ok {
			return true, nil
		}
	}
	return false, nil
}

// RouteCrossings returns, for each leg of the route, the volumes whose
// lateral boundary the leg passes through. Legs with coincident
// endpoints are skipped.
func (a *Airspace) RouteCrossings(route []gc.Point) ([]Crossing, error) {
	var crossings []Crossing
	for i := 0; i+1 < len(route); i++ {
		p0, p1 := route[i], route[i+1]
		if p0.Equal(p1) {
			a.lg.Warn("skipping degenerate leg", slog.Int("leg", i), slog.String("point", p0.String()))
			continue
		}

		legWraps := polygon.NewSimpleEdge(p0, p1).CrossesAntemeridian()
		c := Crossing{Leg: i, From: p0, To: p1, LengthNM: gc.Distance(p0, p1)}
		for j := range a.volumes {
			v := &a.volumes[j]
			for k := range v.rings {
				ok, err := v.rings[k].crosses(p0, p1, legWraps)
				if err != nil {
					return nil, fmt.Errorf("leg %d: %s: %w", i, v.name, err)
				}
				if ok {
					c.Volumes = append(c.Volumes, v.name)
					break
				}
			}
		}
		crossings = append(crossings, c)
	}
	return crossings, nil
}

// Nearest returns the name of the volume with the boundary vertex
// closest to p along with the distance to that vertex in nautical miles.
func (a *Airspace) Nearest(p gc.Point) (string, float64, bool) {
	item, ok := a.vertices.Nearest(p.Vector())
	if !ok {
		return "", 0, false
	}
	return a.specs[item.Index].Name, gc.Distance(p, gc.PointFromVector(item.Location)), true
}

// Extent returns the extents of each of the named volume's boundary
// rings.
func (a *Airspace) Extent(name string) ([]polygon.Extent, error) {
	idx, ok := a.byName[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrUnknownVolume)
	}

	var ext []polygon.Extent
	for i, r := range a.volumes[idx].rings {
		if r.bounded == nil {
			return nil, fmt.Errorf("%s: ring %d: %w", name, i, polygon.ErrEnclosesPole)
		}
		ext = append(ext, r.bounded.Extent())
	}
	return ext, nil
}

// Center returns the center of the extent of the named volume's first
// boundary ring.
func (a *Airspace) Center(name string) (gc.Point, error) {
	if _, err := a.Extent(name); err != nil {
		return gc.Point{}, err
	}
	return a.volumes[a.byName[name]].rings[0].bounded.Center(), nil
}

// Area returns the lateral area of the named volume in square nautical
// miles. Rings inside an odd number of the volume's other rings are
// holes and their area is subtracted.
func (a *Airspace) Area(name string) (float64, error) {
	if _, err := a.Extent(name); err != nil {
		return 0, err
	}

	rings := a.volumes[a.byName[name]].rings
	area := 0.
	for i, r := range rings {
		first := r.indexed.Vertices()[0]
		depth := 0
		for j, o := range rings {
			if i != j && o.indexed.Contains(first) {
				depth++
			}
		}
		if depth%2 == 0 {
			area += r.bounded.Area()
		} else {
			area -= r.bounded.Area()
		}
	}
	return area, nil
}

// Names returns the volume names in the order they were specified.
func (a *Airspace) Names() []string {
	return util.MapSlice(a.specs, func(s VolumeSpec) string { return s.Name })
}

// Specs returns a copy of the volume specifications.
func (a *Airspace) Specs() []VolumeSpec {
	return deep.MustCopy(a.specs)
}

// CacheLen returns the number of cached Contains results.
func (a *Airspace) CacheLen() int {
	if a.cache == nil {
		return 0
	}
	return a.cache.Len()
}

// Span returns the longitude span in degrees of the named volume's
// widest boundary ring.
func (a *Airspace) Span(name string) (float64, error) {
	if _, err := a.Extent(name); err != nil {
		return 0, err
	}
	var span float64
	for _, r := range a.volumes[a.byName[name]].rings {
		span = max(span, r.bounded.LongitudeSpan())
	}
	return span, nil
}
