package gosiegeom

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// InsertConstraint forces the segment between input points i and j to be an
// edge of the triangulation. Triangles crossed by the segment are removed and
// the two pseudo-polygons on either side are retriangulated so the result is
// constrained Delaunay. A vertex lying on the open segment splits the
// constraint at that vertex. Duplicate indices are mapped to their first
// occurrence; a constraint between coincident points is a no-op.
func (d *Delaunay2) InsertConstraint(i, j int) error {
	if i < 0 || i >= len(d.points) || j < 0 || j >= len(d.points) {
		return fmt.Errorf("constraint (%d, %d): %w", i, j, ErrIndexRange)
	}
	if d.dimension < 2 {
		return fmt.Errorf("constraint (%d, %d): %w", i, j, ErrDegenerate)
	}
	a, b := d.duplicates[i], d.duplicates[j]
	for a != b {
		reached, err := d.insertSegment(a, b)
		if err != nil {
			return fmt.Errorf("constraint (%d, %d): %w", i, j, err)
		}
		a = reached
	}
	return nil
}

// IsConstrained reports whether the edge between i and j was constrained.
func (d *Delaunay2) IsConstrained(i, j int) bool {
	if i < 0 || i >= len(d.points) || j < 0 || j >= len(d.points) {
		return false
	}
	_, ok := d.constraints[edgeKey(d.duplicates[i], d.duplicates[j])]
	return ok
}

// Constraints returns the constrained edges as (i, j) with i < j.
func (d *Delaunay2) Constraints() [][2]int {
	out := make([][2]int, 0, len(d.constraints))
	for _, e := range d.Edges() {
		if _, ok := d.constraints[e]; ok {
			out = append(out, e)
		}
	}
	return out
}

// hasEdge reports whether a and b are joined by an edge.
func (d *Delaunay2) hasEdge(a, b int) bool {
	found := false
	d.aroundVertex(a, func(t int) bool {
		if d.tris[t].index(b) >= 0 {
			found = true
		}
		return !found
	})
	return found
}

// insertSegment constrains the part of a->b up to the first vertex on the
// segment and returns that vertex (b when there is none).
func (d *Delaunay2) insertSegment(a, b int) (int, error) {
	pa, pb := d.points[a], d.points[b]
	if d.hasEdge(a, b) {
		d.constraints[edgeKey(a, b)] = struct{}{}
		return b, nil
	}

	// find the triangle around a whose wedge contains the direction to b
	start, u, w := -1, -1, -1
	reached := -1
	d.aroundVertex(a, func(t int) bool {
		cur := &d.tris[t]
		if cur.isGhost() {
			return true
		}
		k := cur.index(a)
		cu, cw := cur.v[(k+1)%3], cur.v[(k+2)%3]
		for _, x := range [2]int{cu, cw} {
			if d.k.orient2(pa, pb, d.points[x]) == 0 && strictlyBetween(pa, pb, d.points[x]) {
				reached = x
				return false
			}
		}
		if d.k.orient2(pa, d.points[cu], pb) > 0 && d.k.orient2(pa, d.points[cw], pb) < 0 {
			start, u, w = t, cu, cw
			return false
		}
		return true
	})
	if reached >= 0 {
		d.constraints[edgeKey(a, reached)] = struct{}{}
		return reached, nil
	}
	if start < 0 {
		panic(fmt.Sprintf("cdt: no triangle around %d faces %d", a, b))
	}

	crossed := []int{start}
	right := []int{u}
	left := []int{w}
	t := start
	for {
		if _, ok := d.constraints[edgeKey(u, w)]; ok {
			return 0, fmt.Errorf("edge (%d, %d): %w", u, w, ErrConstraintCrossing)
		}
		n := d.tris[t].adj[d.tris[t].slot(u, w)]
		x := d.tris[n].v[(d.tris[n].slot(w, u)+2)%3]
		crossed = append(crossed, n)
		if x == b {
			break
		}
		switch o := d.k.orient2(pa, pb, d.points[x]); {
		case o == 0:
			// x splits the segment; nothing has been modified yet
			return d.insertSegment(a, x)
		case o < 0:
			right = append(right, x)
			u = x
		default:
			left = append(left, x)
			w = x
		}
		t = n
	}

	inCrossed := make(map[int]struct{}, len(crossed))
	for _, c := range crossed {
		inCrossed[c] = struct{}{}
	}
	outside := make(map[[2]int]int)
	for _, c := range crossed {
		cur := &d.tris[c]
		for e := 0; e < 3; e++ {
			if _, in := inCrossed[cur.adj[e]]; !in {
				outside[[2]int{cur.v[e], cur.v[(e+1)%3]}] = cur.adj[e]
			}
		}
		cur.dead = true
	}

	var created []int
	created = d.fillPseudoPolygon(left, a, b, created)
	for l, r := 0, len(right)-1; l < r; l, r = l+1, r-1 {
		right[l], right[r] = right[r], right[l]
	}
	created = d.fillPseudoPolygon(right, b, a, created)
	d.stitch(created, outside)
	d.last = created[0]
	d.constraints[edgeKey(a, b)] = struct{}{}
	return b, nil
}

// fillPseudoPolygon triangulates the region bounded by edge a->b and the
// vertex chain to its left. The chain vertex whose circle with a and b
// contains no other chain vertex is joined first, then both sub-chains are
// filled recursively.
func (d *Delaunay2) fillPseudoPolygon(chain []int, a, b int, created []int) []int {
	if len(chain) == 0 {
		return created
	}
	pa, pb := d.points[a], d.points[b]
	c := 0
	for i := 1; i < len(chain); i++ {
		if d.k.inCircle(pa, pb, d.points[chain[c]], d.points[chain[i]]) > 0 {
			c = i
		}
	}
	created = d.fillPseudoPolygon(chain[:c], a, chain[c], created)
	created = d.fillPseudoPolygon(chain[c+1:], chain[c], b, created)
	return append(created, d.newTri(a, b, chain[c]))
}

// PolygonTriangulation is the constrained Delaunay triangulation of a polygon
// with holes, restricted to its interior.
type PolygonTriangulation struct {
	// Points is the outer boundary followed by each hole. Triangle indices
	// address this slice.
	Points []mgl64.Vec2
	// Triangles are counterclockwise.
	Triangles [][3]int
	// Delaunay is the full constrained triangulation including the
	// triangles outside the polygon.
	Delaunay *Delaunay2
}

// TriangulatePolygon triangulates a polygon with holes by inserting every
// boundary edge as a constraint and keeping the triangles reached across an
// odd number of constrained edges from outside the hull. Loop orientation
// does not matter.
func TriangulatePolygon(outer []mgl64.Vec2, holes [][]mgl64.Vec2, opts ...Option) (*PolygonTriangulation, error) {
	if len(outer) < 3 {
		return nil, fmt.Errorf("polygon with %d vertices: %w", len(outer), ErrDegenerate)
	}
	points := append([]mgl64.Vec2(nil), outer...)
	loops := [][2]int{{0, len(outer)}}
	for h, hole := range holes {
		if len(hole) < 3 {
			return nil, fmt.Errorf("hole %d with %d vertices: %w", h, len(hole), ErrDegenerate)
		}
		loops = append(loops, [2]int{len(points), len(points) + len(hole)})
		points = append(points, hole...)
	}

	d, err := NewDelaunay2(points, opts...)
	if err != nil {
		return nil, fmt.Errorf("triangulate polygon: %w", err)
	}
	if d.Dimension() < 2 {
		return nil, fmt.Errorf("triangulate polygon: %w", ErrDegenerate)
	}
	for _, loop := range loops {
		n := loop[1] - loop[0]
		for i := 0; i < n; i++ {
			if err := d.InsertConstraint(loop[0]+i, loop[0]+(i+1)%n); err != nil {
				return nil, fmt.Errorf("triangulate polygon: %w", err)
			}
		}
	}

	depth := d.constraintDepth()
	out := &PolygonTriangulation{Points: points, Delaunay: d}
	for t, cur := range d.tris {
		if cur.dead || cur.isGhost() || depth[t]%2 == 0 {
			continue
		}
		out.Triangles = append(out.Triangles, cur.v)
	}
	Logger().Debug("triangulate polygon",
		"vertices", len(points), "holes", len(holes), "triangles", len(out.Triangles))
	return out, nil
}

// constraintDepth returns, per internal triangle, the least number of
// constrained edges crossed to reach it from outside the hull. Dead and
// ghost triangles get -1.
func (d *Delaunay2) constraintDepth() []int {
	depth := make([]int, len(d.tris))
	for t := range depth {
		depth[t] = -1
	}
	// buckets[l] queues triangles reached at depth l; stale entries are
	// skipped when popped
	var buckets [][]int
	push := func(t, level int) {
		depth[t] = level
		for len(buckets) <= level {
			buckets = append(buckets, nil)
		}
		buckets[level] = append(buckets[level], t)
	}
	for _, cur := range d.tris {
		if cur.dead || !cur.isGhost() {
			continue
		}
		level := 0
		if _, ok := d.constraints[edgeKey(cur.v[0], cur.v[1])]; ok {
			level = 1
		}
		if inner := cur.adj[0]; depth[inner] < 0 || level < depth[inner] {
			push(inner, level)
		}
	}

	for level := 0; level < len(buckets); level++ {
		for len(buckets[level]) > 0 {
			queue := buckets[level]
			t := queue[len(queue)-1]
			buckets[level] = queue[:len(queue)-1]
			if depth[t] != level {
				continue
			}
			cur := &d.tris[t]
			for e := 0; e < 3; e++ {
				n := cur.adj[e]
				if d.tris[n].isGhost() {
					continue
				}
				next := level
				if _, ok := d.constraints[edgeKey(cur.v[e], cur.v[(e+1)%3])]; ok {
					next++
				}
				if depth[n] < 0 || next < depth[n] {
					push(n, next)
				}
			}
		}
	}
	return depth
}
