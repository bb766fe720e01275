package gosiegeom

import (
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// Hull2 is the convex hull of a planar point set.
type Hull2 struct {
	// Dimension is 0 when all points coincide, 1 when they are collinear
	// and 2 otherwise.
	Dimension int
	// Indices lists hull vertices counterclockwise, starting at the
	// lexicographically smallest point. Collinear boundary points are
	// omitted. For Dimension 1 it holds the two extreme points, for
	// Dimension 0 the single distinct point.
	Indices []int
}

// ConvexHull2 computes the convex hull with Andrew's monotone chain. All
// turns are decided by exact orientation tests.
func ConvexHull2(points []mgl64.Vec2, opts ...Option) (*Hull2, error) {
	if len(points) == 0 {
		return nil, ErrNoPoints
	}
	if err := checkFinite2(points); err != nil {
		return nil, fmt.Errorf("convex hull: %w", err)
	}
	k := newKernel(applyOptions(opts))
	return convexHull2(k, points, nil), nil
}

// convexHull2 computes the hull of points restricted to subset (all points
// when subset is nil). Inputs must be finite.
func convexHull2(k kernel, points []mgl64.Vec2, subset []int) *Hull2 {
	idx := subset
	if idx == nil {
		idx = make([]int, len(points))
		for i := range idx {
			idx[i] = i
		}
	} else {
		idx = append([]int(nil), subset...)
	}
	sort.SliceStable(idx, func(i, j int) bool { return lexLess(points[idx[i]], points[idx[j]]) })

	// drop duplicates, keeping the first occurrence in sorted order
	unique := idx[:0]
	for _, i := range idx {
		if len(unique) > 0 && points[unique[len(unique)-1]] == points[i] {
			continue
		}
		unique = append(unique, i)
	}
	if len(unique) == 1 {
		return &Hull2{Dimension: 0, Indices: []int{unique[0]}}
	}

	hull := make([]int, 0, 2*len(unique))
	for _, i := range unique {
		for len(hull) >= 2 && k.orient2(points[hull[len(hull)-2]], points[hull[len(hull)-1]], points[i]) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, i)
	}
	lower := len(hull) + 1
	for j := len(unique) - 2; j >= 0; j-- {
		i := unique[j]
		for len(hull) >= lower && k.orient2(points[hull[len(hull)-2]], points[hull[len(hull)-1]], points[i]) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, i)
	}
	hull = hull[:len(hull)-1]

	if len(hull) == 2 {
		return &Hull2{Dimension: 1, Indices: hull}
	}
	return &Hull2{Dimension: 2, Indices: hull}
}

// Points returns the hull vertices.
func (h *Hull2) Points(points []mgl64.Vec2) []mgl64.Vec2 {
	out := make([]mgl64.Vec2, len(h.Indices))
	for i, idx := range h.Indices {
		out[i] = points[idx]
	}
	return out
}
