// pkg/airspace/load.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package airspace

import (
	"bytes"
	"fmt"
	"log/slog"
	gomath "math"

	"github.com/mmp/gcgeo/pkg/log"
	"github.com/mmp/gcgeo/pkg/util"

	"github.com/vmihailenco/msgpack/v5"
)

// Packed airspace files store coordinates as delta-encoded integer
// microdegrees, which compress much better than floats.
const (
	packedVersion = 1
	microdegrees  = 1e6
)

type packedFile struct {
	Version int
	Volumes []packedVolume
}

type packedVolume struct {
	Name           string
	Floor, Ceiling int
	// Per-ring latitudes and longitudes.
	Lats, Lons [][]int32
}

// Parsed JSON files are cached in packed form, keyed by the hash of the
// JSON.
var packedCache = util.NewDiskCache[packedFile]("airspace")

func pack(specs []VolumeSpec) packedFile {
	pf := packedFile{Version: packedVersion}
	for _, spec := range specs {
		pv := packedVolume{Name: spec.Name, Floor: spec.Floor, Ceiling: spec.Ceiling}
		for _, b := range spec.Boundaries {
			lats := make([]int32, len(b))
			lons := make([]int32, len(b))
			for i, ll := range b {
				lats[i] = int32(gomath.Round(ll[0] * microdegrees))
				lons[i] = int32(gomath.Round(ll[1] * microdegrees))
			}
			pv.Lats = append(pv.Lats, util.DeltaEncode(lats))
			pv.Lons = append(pv.Lons, util.DeltaEncode(lons))
		}
		pf.Volumes = append(pf.Volumes, pv)
	}
	return pf
}

func unpack(pf packedFile) ([]VolumeSpec, error) {
	if pf.Version != packedVersion {
		return nil, fmt.Errorf("got version %d, expected %d: %w", pf.Version, packedVersion, ErrPackedVersion)
	}

	var specs []VolumeSpec
	for _, pv := range pf.Volumes {
		if len(pv.Lats) != len(pv.Lons) {
			return nil, fmt.Errorf("%s: mismatched latitude and longitude rings", pv.Name)
		}

		spec := VolumeSpec{Name: pv.Name, Floor: pv.Floor, Ceiling: pv.Ceiling}
		for i := range pv.Lats {
			lats, lons := util.DeltaDecode(pv.Lats[i]), util.DeltaDecode(pv.Lons[i])
			if len(lats) != len(lons) {
				return nil, fmt.Errorf("%s: ring %d: mismatched latitude and longitude counts", pv.Name, i)
			}

			b := make([][2]float64, len(lats))
			for j := range lats {
				b[j] = [2]float64{float64(lats[j]) / microdegrees, float64(lons[j]) / microdegrees}
			}
			spec.Boundaries = append(spec.Boundaries, b)
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func parseJSON(contents []byte) ([]VolumeSpec, error) {
	var e util.ErrorLogger
	util.CheckJSON[File](contents, &e)
	if e.HaveErrors() {
		return nil, e.Err()
	}

	var f File
	if err := util.UnmarshalJSON(contents, &f); err != nil {
		return nil, err
	}
	return f.Volumes, nil
}

// ReadSpecs reads volume specifications from a JSON or packed msgpack
// file; either may be zstd-compressed, in which case the filename should
// have a .zst suffix. With diskCache, parsed JSON files are cached in
// packed form, keyed by the hash of their contents.
func ReadSpecs(path string, diskCache bool, lg *log.Logger) ([]VolumeSpec, error) {
	contents, err := util.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch util.BaseExt(path) {
	case ".json":
		if !diskCache {
			return parseJSON(contents)
		}

		hash, err := util.HashString(bytes.NewReader(contents))
		if err != nil {
			return nil, err
		}
		if pf, ok := packedCache.Get(hash); ok {
			if specs, err := unpack(pf); err == nil {
				lg.Debug("using cached airspace", slog.String("path", path), slog.String("hash", hash))
				return specs, nil
			}
		}

		specs, err := parseJSON(contents)
		if err != nil {
			return nil, err
		}
		if err := packedCache.Put(hash, pack(specs)); err != nil {
			lg.Warn("unable to cache airspace", slog.String("path", path), slog.Any("error", err))
		}
		return specs, nil

	case ".msgpack":
		var pf packedFile
		if err := msgpack.Unmarshal(contents, &pf); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return unpack(pf)

	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
}

// WriteSpecs writes the volume specifications to the given path in the
// format given by its extension, as accepted by ReadSpecs.
func WriteSpecs(path string, specs []VolumeSpec) error {
	var b []byte
	var err error
	switch util.BaseExt(path) {
	case ".json":
		b, err = util.MarshalJSON(File{Volumes: specs})
	case ".msgpack":
		b, err = msgpack.Marshal(pack(specs))
	default:
		err = ErrUnsupportedFormat
	}
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return util.WriteFile(path, b)
}

// Load reads the airspace definition at path and builds an Airspace from
// it.
func Load(path string, cfg Config, lg *log.Logger) (*Airspace, error) {
	specs, err := ReadSpecs(path, cfg.DiskCache, lg)
	if err != nil {
		return nil, err
	}
	lg.Info("loaded airspace", slog.String("path", path), slog.Int("volumes", len(specs)))
	return New(specs, cfg, lg)
}
