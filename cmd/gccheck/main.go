// cmd/gccheck/main.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

// gccheck loads an airspace definition and reports which volumes contain
// the given points and which volumes each leg of a route passes through.

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mmp/gcgeo/pkg/airspace"
	"github.com/mmp/gcgeo/pkg/gc"
	"github.com/mmp/gcgeo/pkg/log"
	"github.com/mmp/gcgeo/pkg/math"
	"github.com/mmp/gcgeo/pkg/rand"
	"github.com/mmp/gcgeo/pkg/util"

	"github.com/apenwarr/fixconsole"
	"github.com/goforj/godump"
)

var (
	airspaceFile = flag.String("airspace", "", "airspace definition file (.json or .msgpack, optionally .zst-compressed)")
	route        = flag.String("route", "", "route to check, as semicolon-separated points")
	volume       = flag.String("volume", "", "print the extent and area of the named volume")
	dump         = flag.Bool("dump", false, "dump the loaded airspace volumes")
	convert      = flag.String("convert", "", "write the loaded airspace to the given file and exit")
	randomPoints = flag.Int("random", 0, "check the given number of uniformly-distributed random points")
	seed         = flag.Int64("seed", 0, "random number seed for -random")
	logLevel     = flag.String("loglevel", "info", "logging level: debug, info, warn, error")
	logDir       = flag.String("logdir", "", "log file directory")
	cacheSize    = flag.Int("cachesize", airspace.DefaultConfig().CacheSize, "number of containment results to cache")
	cacheTTL     = flag.Duration("cachettl", airspace.DefaultConfig().CacheTTL, "lifetime of cached containment results")
	diskCache    = flag.Bool("diskcache", false, "cache parsed airspace files on disk")
	cacheLimit   = flag.Int64("cachelimit", 256*1024*1024, "maximum size in bytes of the on-disk cache")
	cpuprofile   = flag.String("cpuprofile", "", "write CPU profile to file")
	memprofile   = flag.String("memprofile", "", "write memory profile to this file")

	points []gc.Point
)

func init() {
	flag.Func("point", `point to check, e.g. "40.64,-73.78" or "40.64,-73.78@3000"; may be repeated`, func(s string) error {
		p, err := parsePoint(s)
		if err == nil {
			points = append(points, p)
		}
		return err
	})
}

// parsePoint parses a position in any form accepted by gc.ParsePoint,
// optionally followed by "@" and an altitude in feet.
func parsePoint(s string) (gc.Point, error) {
	pos, alt, hasAlt := strings.Cut(strings.TrimSpace(s), "@")

	p, err := gc.ParsePoint(strings.TrimSpace(pos))
	if err != nil {
		return gc.Point{}, err
	}
	if hasAlt {
		a, err := strconv.ParseFloat(strings.TrimSpace(alt), 64)
		if err != nil {
			return gc.Point{}, fmt.Errorf("%s: invalid altitude: %w", s, err)
		}
		p = p.WithAltitude(a)
	}
	return p, nil
}

func parseRoute(s string) ([]gc.Point, error) {
	var pts []gc.Point
	for f := range strings.SplitSeq(s, ";") {
		if strings.TrimSpace(f) == "" {
			continue
		}
		p, err := parsePoint(f)
		if err != nil {
			return nil, err
		}
		pts = append(pts, p)
	}
	if len(pts) < 2 {
		return nil, fmt.Errorf("%q: route must have at least two points", s)
	}
	return pts, nil
}

func reportPoints(w io.Writer, a *airspace.Airspace, pts []gc.Point) {
	for _, p := range pts {
		names := a.Contains(p)
		if len(names) == 0 {
			fmt.Fprintf(w, "%s: not in airspace\n", p)
			if name, nm, ok := a.Nearest(p); ok {
				fmt.Fprintf(w, "    nearest boundary: %s, %.1f nm\n", name, nm)
			}
		} else {
			fmt.Fprintf(w, "%s: %s\n", p, strings.Join(names, ", "))
		}

		if p.HasAltitude {
			inside, ranges := a.InAirspace(p, int(p.Altitude))
			fmt.Fprintf(w, "    inside %v, altitude ranges %v\n", inside, ranges)
		}
	}
}

func reportVolume(w io.Writer, a *airspace.Airspace, name string) error {
	ext, err := a.Extent(name)
	if err != nil {
		return err
	}
	for i, e := range ext {
		fmt.Fprintf(w, "%s ring %d: north %.4f south %.4f west %.4f east %.4f\n", name, i,
			e.North.Degrees(), e.South.Degrees(), e.West.Degrees(), e.East.Degrees())
	}

	center, err := a.Center(name)
	if err != nil {
		return err
	}
	span, err := a.Span(name)
	if err != nil {
		return err
	}
	area, err := a.Area(name)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s: center %s (%s), longitude span %.4f, area %.1f sq nm\n", name, center,
		math.DMSString(center.Latitude, center.Longitude), span, area)
	return nil
}

func reportRoute(w io.Writer, a *airspace.Airspace, pts []gc.Point) error {
	crossings, err := a.RouteCrossings(pts)
	if err != nil {
		return err
	}

	total := 0.
	for _, c := range crossings {
		total += c.LengthNM
		vols := "none"
		if len(c.Volumes) > 0 {
			vols = strings.Join(c.Volumes, ", ")
		}
		hdg := gc.Bearing(c.From, c.To)
		fmt.Fprintf(w, "leg %d: %s -> %s, %.1f nm (bearing %03.0f %s): %s\n", c.Leg, c.From, c.To, c.LengthNM,
			hdg, math.ShortCompass(hdg), vols)
	}
	fmt.Fprintf(w, "total %.1f nm\n", total)
	return nil
}

func reportRandom(ctx context.Context, w io.Writer, a *airspace.Airspace, n int, seed int64) error {
	r := rand.New()
	r.Seed(seed)

	pts := make([]gc.Point, n)
	for i := range pts {
		pts[i] = gc.NewPoint(r.LatLong())
	}

	start := time.Now()
	all, err := a.ContainsAll(ctx, pts)
	if err != nil {
		return err
	}

	counts := make(map[string]int)
	for _, names := range all {
		for _, name := range names {
			counts[name]++
		}
	}
	fmt.Fprintf(w, "%d points in %s\n", n, time.Since(start))
	for _, name := range util.SortedMapKeys(counts) {
		fmt.Fprintf(w, "    %s: %d (%.3f%%)\n", name, counts[name], 100*float64(counts[name])/float64(n))
	}
	return nil
}

func main() {
	flag.Parse()

	if err := fixconsole.FixConsoleIfNeeded(); err != nil {
		fmt.Printf("FixConsole: %v\n", err)
	}

	lg := log.New(*logLevel, *logDir)

	profiler, err := util.CreateProfiler(*cpuprofile, *memprofile)
	if err != nil {
		lg.Errorf("%v", err)
	}
	defer profiler.Cleanup()

	if *airspaceFile == "" {
		fmt.Fprintln(os.Stderr, "gccheck: must specify -airspace")
		flag.Usage()
		os.Exit(1)
	}

	if *diskCache {
		defer func() {
			if err := util.CullDiskCache(*cacheLimit); err != nil {
				lg.Warnf("culling cache: %v", err)
			}
		}()
	}

	cfg := airspace.Config{CacheSize: *cacheSize, CacheTTL: *cacheTTL, DiskCache: *diskCache}
	if err := run(context.Background(), os.Stdout, cfg, lg); err != nil {
		var e util.ErrorLogger
		e.Error(err)
		e.PrintErrors(os.Stderr, lg)
		profiler.Cleanup()
		os.Exit(1)
	}
}

func run(ctx context.Context, w io.Writer, cfg airspace.Config, lg *log.Logger) error {
	a, err := airspace.Load(*airspaceFile, cfg, lg)
	if err != nil {
		return err
	}

	if *dump {
		godump.Dump(a.Specs())
	}

	if *convert != "" {
		return airspace.WriteSpecs(*convert, a.Specs())
	}

	if *volume != "" {
		if err := reportVolume(w, a, *volume); err != nil {
			return err
		}
	}

	reportPoints(w, a, points)

	if *route != "" {
		pts, err := parseRoute(*route)
		if err != nil {
			return err
		}
		if err := reportRoute(w, a, pts); err != nil {
			return err
		}
	}

	if *randomPoints > 0 {
		return reportRandom(ctx, w, a, *randomPoints, *seed)
	}
	return nil
}
