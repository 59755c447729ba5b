// pkg/math/kdtree.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"cmp"
	"slices"

	"github.com/golang/geo/r3"
)

// KDItem is a point stored in a KDNode tree along with an index supplied
// by the caller.
type KDItem struct {
	Location r3.Vector
	Index    int
}

// KDNode is a node in a 3D KD-tree. For unit vectors, the nearest point
// in Euclidean distance is also the nearest along the sphere, so the
// tree works across the antemeridian and at the poles.
type KDNode struct {
	KDItem
	Left  *KDNode
	Right *KDNode
	axis  int
}

func axisValue(v r3.Vector, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// BuildKDTree constructs a balanced KD-tree from a slice of items; the
// slice is reordered. The tree cycles through splitting by x, y, and z.
func BuildKDTree(items []KDItem) *KDNode {
	if len(items) == 0 {
		return nil
	}
	return buildKDTreeRecursive(items, 0)
}

func buildKDTreeRecursive(items []KDItem, depth int) *KDNode {
	if len(items) == 0 {
		return nil
	}

	axis := depth % 3
	if len(items) == 1 {
		return &KDNode{KDItem: items[0], axis: axis}
	}

	// Sort by the splitting axis and find median
	slices.SortFunc(items, func(a, b KDItem) int {
		return cmp.Compare(axisValue(a.Location, axis), axisValue(b.Location, axis))
	})
	median := len(items) / 2

	return &KDNode{
		KDItem: items[median],
		Left:   buildKDTreeRecursive(items[:median], depth+1),
		Right:  buildKDTreeRecursive(items[median+1:], depth+1),
		axis:   axis,
	}
}

// Nearest returns the item closest to v. It returns false if the tree
// is empty.
func (tree *KDNode) Nearest(v r3.Vector) (KDItem, bool) {
	if tree == nil {
		return KDItem{}, false
	}

	best := tree.KDItem
	bestDist := v.Sub(best.Location).Norm2()

	var search func(n *KDNode)
	search = func(n *KDNode) {
		if n == nil {
			return
		}

		if d := v.Sub(n.Location).Norm2(); d < bestDist {
			best, bestDist = n.KDItem, d
		}

		delta := axisValue(v, n.axis) - axisValue(n.Location, n.axis)
		near, far := n.Left, n.Right
		if delta > 0 {
			near, far = far, near
		}
		search(near)
		// Only descend into the other side if the splitting plane is
		// closer than the best so far.
		if delta*delta < bestDist {
			search(far)
		}
	}
	search(tree)

	return best, true
}
