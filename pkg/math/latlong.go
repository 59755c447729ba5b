// pkg/math/latlong.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"fmt"
	gomath "math"
	"regexp"
	"strconv"
)

const NMPerLatitude = 60

const NauticalMilesToFeet = 6076.12
const FeetToNauticalMiles = 1 / NauticalMilesToFeet

// DDString returns the position in decimal degrees, e.g.:
// (39.860901, -75.274864)
func DDString(lat Latitude, lon Longitude) string {
	return fmt.Sprintf("(%f, %f)", float64(lat), float64(lon))
}

// DMSString returns the position in degrees minutes, seconds, e.g.
// N039.51.39.243,W075.16.29.511
func DMSString(lat Latitude, lon Longitude) string {
	format := func(v float64) string {
		s := fmt.Sprintf("%03d", int(v))
		v -= gomath.Floor(v)
		v *= 60
		s += fmt.Sprintf(".%02d", int(v))
		v -= gomath.Floor(v)
		v *= 60
		s += fmt.Sprintf(".%02d", int(v))
		v -= gomath.Floor(v)
		v *= 1000
		s += fmt.Sprintf(".%03d", int(v))
		return s
	}

	var s string
	if lat >= 0 {
		s = "N"
	} else {
		s = "S"
	}
	s += format(Abs(float64(lat)))

	if lon >= 0 {
		s += ",E"
	} else {
		s += ",W"
	}
	s += format(Abs(float64(lon)))

	return s
}

var (
	// pair of floats (no exponents)
	reWaypointFloat = regexp.MustCompile(`^(\-?[0-9]+\.[0-9]+), *(\-?[0-9]+\.[0-9]+)`)
	// https://en.wikipedia.org/wiki/ISO_6709#String_expression_(Annex_H)
	// e.g. +403527.580-0734452.955
	reISO6709H = regexp.MustCompile(`^([-+][0-9][0-9])([0-9][0-9])([0-9][0-9])\.([0-9][0-9][0-9])([-+][0-9][0-9][0-9])([0-9][0-9])([0-9][0-9])\.([0-9][0-9][0-9])`)
)

// Parse positions of the form "N40.37.58.400, W073.46.17.000" by hand;
// it's the most common form in FAA data and is much faster than going
// through a regexp.
func tryParseWaypointDotted(b []byte) (float64, float64, bool) {
	if len(b) == 0 || (b[0] != 'N' && b[0] != 'S') {
		return 0, 0, false
	}
	negateLatitude := b[0] == 'S'

	// Skip over the N/S and parse the four dotted numbers following it
	b = b[1:]
	latitude, n, ok := tryParseWaypointNumbers(b)
	if !ok {
		return 0, 0, false
	}
	if negateLatitude {
		latitude = -latitude
	}
	// Skip what's been processed
	b = b[n:]

	// Skip comma
	if len(b) == 0 || b[0] != ',' {
		return 0, 0, false
	}
	b = b[1:]

	// Skip optional space
	if len(b) > 0 && b[0] == ' ' {
		b = b[1:]
	}

	// Onward to E/W
	if len(b) == 0 || (b[0] != 'E' && b[0] != 'W') {
		return 0, 0, false
	}
	negateLongitude := b[0] == 'W'

	// Skip over E/W and parse its four dotted numbers.
	b = b[1:]
	longitude, _, ok := tryParseWaypointNumbers(b)
	if !ok {
		return 0, 0, false
	}
	if negateLongitude {
		longitude = -longitude
	}

	return latitude, longitude, true
}

// Efficient function parse a latlong of the form aaa.bbb.ccc.ddd and
// return the corresponding value in degrees. Returns the latlong, the
// number of bytes of b consumed, and a bool indicating success or failure.
func tryParseWaypointNumbers(b []byte) (float64, int, bool) {
	n := 0
	var ll float64

	// Scan to the end of the current number group; return
	// the number of bytes it uses.
	scan := func(b []byte) int {
		for i, v := range b {
			if v == '.' || v == ',' {
				return i
			}
		}
		return len(b)
	}

	for i := range 4 {
		end := scan(b)
		if end == 0 {
			return 0, 0, false
		}

		value := 0
		for _, ch := range b[:end] {
			if ch < '0' || ch > '9' {
				return 0, 0, false
			}
			value *= 10
			value += int(ch - '0')
		}
		if i == 3 {
			// Treat the last set of digits as a decimal, so that
			// Nxx.yy.zz.1 is handled like Nxx.yy.zz.100.
			for j := end; j < 3; j++ {
				value *= 10
			}
		}

		scales := [4]float64{1, 60, 3600, 3600000}
		ll += float64(value) / scales[i]
		n += end
		b = b[end:]

		if i < 3 {
			if len(b) == 0 {
				return 0, 0, false
			}
			b = b[1:]
			n++
		}
	}

	return ll, n, true
}

// ParseLatLong parses a position given either in dotted
// degrees-minutes-seconds ("N40.37.58.400,W073.46.17.000"), as a pair of
// decimal degrees ("40.6328888, -73.771385"), or in ISO 6709 Annex H
// form ("+403758.400-0734617.000").
func ParseLatLong(llstr []byte) (Latitude, Longitude, error) {
	if lat, lon, ok := tryParseWaypointDotted(llstr); ok {
		return NewLatitude(lat), NewLongitude(lon), nil
	} else if strs := reWaypointFloat.FindStringSubmatch(string(llstr)); len(strs) == 3 {
		lat, err := strconv.ParseFloat(strs[1], 64)
		if err != nil {
			return 0, 0, err
		}
		lon, err := strconv.ParseFloat(strs[2], 64)
		if err != nil {
			return 0, 0, err
		}
		if lat < -90 || lat > 90 {
			return 0, 0, fmt.Errorf("%s: latitude out of range", llstr)
		}
		return NewLatitude(lat), NewLongitude(lon), nil
	} else if strs := reISO6709H.FindStringSubmatch(string(llstr)); len(strs) == 9 {
		parse := func(deg, min, sec, frac string) (float64, error) {
			d, err := strconv.Atoi(deg)
			if err != nil {
				return 0, err
			}
			m, err := strconv.Atoi(min)
			if err != nil {
				return 0, err
			}
			s, err := strconv.Atoi(sec)
			if err != nil {
				return 0, err
			}
			f, err := strconv.Atoi(frac)
			if err != nil {
				return 0, err
			}
			sgn := 1.
			if deg[0] == '-' {
				sgn = -1
			}
			d = Abs(d)
			return sgn * (float64(d) + float64(m)/60 + float64(s)/3600 + float64(f)/3600000), nil
		}

		lat, err := parse(strs[1], strs[2], strs[3], strs[4])
		if err != nil {
			return 0, 0, err
		}
		lon, err := parse(strs[5], strs[6], strs[7], strs[8])
		if err != nil {
			return 0, 0, err
		}
		return NewLatitude(lat), NewLongitude(lon), nil
	} else {
		return 0, 0, fmt.Errorf("%s: invalid latlong string", llstr)
	}
}
