// pkg/airspace/load_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package airspace

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/mmp/gcgeo/pkg/gc"
	"github.com/mmp/gcgeo/pkg/math"

	"github.com/vmihailenco/msgpack/v5"
)

const testJSON = `{
  "volumes": [
    {
      "name": "ZNY",
      "floor": 0,
      "ceiling": 18000,
      "boundaries": [[[40.5, -74.5], [40.5, -73.0], [41.5, -73.0], [41.5, -74.5]]]
    },
    {
      "name": "Dateline",
      "floor": 0,
      "ceiling": 60000,
      "boundaries": [[[-10.123456, 170.5], [-10.123456, -170.25], [10.000001, -170.25], [10.000001, 170.5]]]
    }
  ]
}`

func specsEqual(t *testing.T, got, expected []VolumeSpec) {
	t.Helper()
	if len(got) != len(expected) {
		t.Fatalf("got %d volumes, expected %d", len(got), len(expected))
	}
	for i := range got {
		g, e := got[i], expected[i]
		if g.Name != e.Name || g.Floor != e.Floor || g.Ceiling != e.Ceiling || len(g.Boundaries) != len(e.Boundaries) {
			t.Errorf("got %+v, expected %+v", g, e)
			continue
		}
		for j := range g.Boundaries {
			if !slices.EqualFunc(g.Boundaries[j], e.Boundaries[j], func(a, b [2]float64) bool {
				return math.Abs(a[0]-b[0]) < 1e-6 && math.Abs(a[1]-b[1]) < 1e-6
			}) {
				t.Errorf("%s: ring %d: got %v, expected %v", g.Name, j, g.Boundaries[j], e.Boundaries[j])
			}
		}
	}
}

func TestLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "airspace.json")
	if err := os.WriteFile(path, []byte(testJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	a, err := Load(path, DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if got := a.Contains(gc.NewPoint(40.7, -73.8)); !slices.Equal(got, []string{"ZNY"}) {
		t.Errorf("got %v", got)
	}
	if got := a.Contains(gc.NewPoint(0, 179.9)); !slices.Equal(got, []string{"Dateline"}) {
		t.Errorf("got %v", got)
	}
}

func TestLoadJSONErrors(t *testing.T) {
	for _, test := range []struct {
		name     string
		json     string
		contains string
	}{
		{"misspelled key", `{"volumes": [{"nmae": "A"}]}`, "misspelled"},
		{"repeated key", `{"volumes": [{"name": "A", "name": "B"}]}`, "key repeated"},
		{"syntax", `{"volumes": [`, "line 1"},
		{"invalid volume", `{"volumes": [{"name": "A", "floor": 10, "ceiling": 0, "boundaries": [[[0, 0], [1, 1], [0, 1]]]}]}`, "above"},
	} {
		t.Run(test.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.json")
			if err := os.WriteFile(path, []byte(test.json), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path, DefaultConfig(), nil); err == nil || !strings.Contains(err.Error(), test.contains) {
				t.Errorf("expected error containing %q, got %v", test.contains, err)
			}
		})
	}
}

func TestWriteReadSpecs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.json", "a.json.zst", "a.msgpack", "a.msgpack.zst"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := WriteSpecs(path, testSpecs); err != nil {
				t.Fatalf("write: %v", err)
			}
			specs, err := ReadSpecs(path, false, nil)
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			specsEqual(t, specs, testSpecs)
		})
	}

	if err := WriteSpecs(filepath.Join(dir, "a.txt"), testSpecs); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "b.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadSpecs(filepath.Join(dir, "b.txt"), false, nil); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func mustMsgpack(t *testing.T, v any) []byte {
	t.Helper()
	b, err := msgpack.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestPackedVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.msgpack")
	pf := pack(testSpecs)
	pf.Version = packedVersion + 1
	if err := os.WriteFile(path, mustMsgpack(t, pf), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadSpecs(path, false, nil); !errors.Is(err, ErrPackedVersion) {
		t.Errorf("expected ErrPackedVersion, got %v", err)
	}
}

func TestPackRoundTrip(t *testing.T) {
	pf := pack(testSpecs)

	// Coordinates within a ring are delta-encoded, so all but the first
	// are small for compact rings.
	if lats := pf.Volumes[0].Lats[0]; lats[0] != 1000000 || lats[1] != 0 || lats[2] != 9000000 {
		t.Errorf("unexpected packed latitudes %v", lats)
	}

	specs, err := unpack(pf)
	if err != nil {
		t.Fatal(err)
	}
	specsEqual(t, specs, testSpecs)

	pf.Volumes[0].Lons = pf.Volumes[0].Lons[:0]
	if _, err := unpack(pf); err == nil {
		t.Errorf("expected error for mismatched rings")
	}
}

func TestDiskCache(t *testing.T) {
	cacheDir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheDir)
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "airspace.json")
	if err := os.WriteFile(path, []byte(testJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	first, err := ReadSpecs(path, true, nil)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	cached, _ := filepath.Glob(filepath.Join(cacheDir, "gcgeo", "airspace", "*.msgpack.zst"))
	if len(cached) != 1 {
		t.Fatalf("expected one cached file, got %v", cached)
	}

	second, err := ReadSpecs(path, true, nil)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	specsEqual(t, second, first)
}
