// pkg/rand/rand.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package rand provides a small, fast, seedable random number generator
// for randomized geometry tests and synthetic workloads.
package rand

import (
	gomath "math"

	"github.com/MichaelTJones/pcg"
)

///////////////////////////////////////////////////////////////////////////
// Random numbers.

type Rand struct {
	r *pcg.PCG32
}

func New() Rand {
	return Rand{r: pcg.NewPCG32()}
}

// Make returns a generator with a fixed seed so that randomized tests are
// reproducible.
func Make() Rand {
	r := New()
	r.Seed(0)
	return r
}

func (r *Rand) Seed(s int64) {
	r.r.Seed(uint64(s), 0xda3e39cb94b95bdb)
}

func (r *Rand) Intn(n int) int {
	return int(r.r.Bounded(uint32(n)))
}

// Float64 returns a value in [0,1].
func (r *Rand) Float64() float64 {
	hi, lo := uint64(r.r.Random()), uint64(r.r.Random())
	return float64((hi<<21)^lo) / float64(1<<53)
}

// Uniform returns a value in [a,b].
func (r *Rand) Uniform(a, b float64) float64 {
	return a + r.Float64()*(b-a)
}

func (r *Rand) Uint32() uint32 {
	return r.r.Random()
}

// LatLong returns a latitude and longitude in degrees that is uniformly
// distributed over the sphere.
func (r *Rand) LatLong() (float64, float64) {
	z := r.Uniform(-1, 1)
	lat := gomath.Asin(z) * 180 / gomath.Pi
	lon := r.Uniform(-180, 180)
	if lon == 180 {
		lon = -180
	}
	return lat, lon
}
