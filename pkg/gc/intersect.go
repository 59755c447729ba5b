// pkg/gc/intersect.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package gc

import (
	"github.com/golang/geo/r3"

	"github.com/mmp/gcgeo/pkg/math"
)

// Mode selects which segment intersections are reported.
type Mode int

const (
	// Strict only reports proper crossings, where each segment passes
	// through the interior of the other.
	Strict Mode = iota
	// NonStrict also reports segments that touch at an endpoint.
	NonStrict
)

func (m Mode) String() string {
	if m == Strict {
		return "strict"
	}
	return "nonstrict"
}

// Kind is the overall classification of how two minor arcs meet.
type Kind int

const (
	NoIntersection Kind = iota
	Cross
	Touch
	// Colinear segments overlap along a shared great circle; there's no
	// single intersection point to report.
	Colinear
)

func (k Kind) String() string {
	return [...]string{"none", "cross", "touch", "colinear"}[k]
}

// Shape describes the geometric configuration of a Cross or Touch.
type Shape int

const (
	ShapeNone Shape = iota
	// ShapeX: the segments cross at a point interior to both.
	ShapeX
	// ShapeL: the segments share an endpoint and are not colinear.
	ShapeL
	// ShapeT: an endpoint of one segment lies in the interior of the other.
	ShapeT
	// ShapeI: the segments are colinear, share an endpoint, and extend
	// away from each other.
	ShapeI
)

func (s Shape) String() string {
	return [...]string{"", "X", "L", "T", "I"}[s]
}

// Intersection is the result of classifying a pair of segments. Point is
// only meaningful when Kind is Cross or Touch.
type Intersection struct {
	Kind  Kind
	Shape Shape
	Point r3.Vector
}

// Accepted reports whether the intersection should be reported as a point
// under the given mode.
func (in Intersection) Accepted(mode Mode) bool {
	switch in.Kind {
	case Cross:
		return true
	case Touch:
		return mode == NonStrict
	default:
		return false
	}
}

// Classify determines how the minor arcs a1-a2 and b1-b2 meet. All four
// arguments must be unit vectors. An error wrapping ErrInvalidInput is
// returned if either segment's endpoints coincide or are antipodal.
func Classify(a1, a2, b1, b2 r3.Vector) (Intersection, error) {
	na, err := greatCircleNormal(a1, a2)
	if err != nil {
		return Intersection{}, err
	}
	nb, err := greatCircleNormal(b1, b2)
	if err != nil {
		return Intersection{}, err
	}

	a1ToB, a2ToB := sideOfNormal(nb, a1), sideOfNormal(nb, a2)
	b1ToA, b2ToA := sideOfNormal(na, b1), sideOfNormal(na, b2)

	if a1ToB != On && a2ToB != On && b1ToA != On && b2ToA != On {
		if a1ToB == a2ToB || b1ToA == b2ToA {
			// One segment is entirely on one side of the other's great
			// circle.
			return Intersection{}, nil
		}

		// The two great circles meet at a pair of antipodal points; at
		// most one of them is on both arcs.
		p := na.Cross(nb).Normalize()
		for _, c := range [2]r3.Vector{p, math.Complement(p)} {
			if IsBetween(c, a1, a2) && IsBetween(c, b1, b2) {
				return Intersection{Kind: Cross, Shape: ShapeX, Point: c}, nil
			}
		}
		return Intersection{}, nil
	}

	if (a1ToB == On && a2ToB == On) || (b1ToA == On && b2ToA == On) {
		return classifyColinear(a1, a2, b1, b2, na), nil
	}

	// Exactly one great circle passes through each shared point, so
	// with the segments not colinear, a shared endpoint is the only
	// place they can meet.
	for _, a := range [2]r3.Vector{a1, a2} {
		for _, b := range [2]r3.Vector{b1, b2} {
			if math.VectorsEqual(a, b) {
				return Intersection{Kind: Touch, Shape: ShapeL, Point: a}, nil
			}
		}
	}

	if a1ToB == On && IsBetween(a1, b1, b2) {
		return Intersection{Kind: Touch, Shape: ShapeT, Point: a1}, nil
	}
	if a2ToB == On && IsBetween(a2, b1, b2) {
		return Intersection{Kind: Touch, Shape: ShapeT, Point: a2}, nil
	}
	if b1ToA == On && IsBetween(b1, a1, a2) {
		return Intersection{Kind: Touch, Shape: ShapeT, Point: b1}, nil
	}
	if b2ToA == On && IsBetween(b2, a1, a2) {
		return Intersection{Kind: Touch, Shape: ShapeT, Point: b2}, nil
	}

	return Intersection{}, nil
}

// classifyColinear handles segments that lie along the same great circle,
// whose unit normal is n.
func classifyColinear(a1, a2, b1, b2, n r3.Vector) Intersection {
	type match struct{ a, b, aOther, bOther r3.Vector }
	var matches []match
	for _, m := range [4]match{
		{a1, b1, a2, b2},
		{a1, b2, a2, b1},
		{a2, b1, a1, b2},
		{a2, b2, a1, b1},
	} {
		if math.VectorsEqual(m.a, m.b) {
			matches = append(matches, m)
		}
	}

	switch len(matches) {
	case 0:
		if IsBetween(b1, a1, a2) || IsBetween(b2, a1, a2) || IsBetween(a1, b1, b2) || IsBetween(a2, b1, b2) {
			return Intersection{Kind: Colinear}
		}
		return Intersection{}

	case 1:
		// Split the shared great circle with the perpendicular great
		// circle through the shared endpoint; the segments only touch if
		// their other endpoints fall on opposite sides of it.
		m := matches[0]
		perp := m.a.Cross(n).Normalize()
		sa, sb := sideOfNormal(perp, m.aOther), sideOfNormal(perp, m.bOther)
		if sa != On && sb != On && sa != sb {
			return Intersection{Kind: Touch, Shape: ShapeI, Point: m.a}
		}
		return Intersection{Kind: Colinear}

	default:
		// Same segment, possibly reversed.
		return Intersection{Kind: Colinear}
	}
}

// Intersect returns the intersection point of the minor arcs a1-a2 and
// b1-b2 if there is one that is acceptable under the given mode.
func Intersect(a1, a2, b1, b2 r3.Vector, mode Mode) (r3.Vector, bool, error) {
	in, err := Classify(a1, a2, b1, b2)
	if err != nil {
		return r3.Vector{}, false, err
	}
	if in.Accepted(mode) {
		return in.Point, true, nil
	}
	return r3.Vector{}, false, nil
}
