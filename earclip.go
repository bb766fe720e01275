package gosiegeom

import (
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/smasonuk/gosiegeom/rational"
)

// TriangulateEC triangulates a simple polygon with optional holes by ear
// clipping. Loops may have either orientation. Holes are joined to the outer
// boundary by a bridge from their rightmost vertex, then ears are clipped
// until three vertices remain. Returned triangles are counterclockwise and
// index the outer loop followed by each hole in order.
func TriangulateEC(outer []mgl64.Vec2, holes [][]mgl64.Vec2) ([][3]int, error) {
	if len(outer) < 3 {
		return nil, fmt.Errorf("ear clipping: outer loop with %d vertices: %w", len(outer), ErrDegenerate)
	}
	points := append([]mgl64.Vec2(nil), outer...)
	var holeLoops [][]int
	for h, hole := range holes {
		if len(hole) < 3 {
			return nil, fmt.Errorf("ear clipping: hole %d with %d vertices: %w", h, len(hole), ErrDegenerate)
		}
		idx := make([]int, len(hole))
		for i := range hole {
			idx[i] = len(points) + i
		}
		points = append(points, hole...)
		holeLoops = append(holeLoops, idx)
	}
	if err := checkFinite2(points); err != nil {
		return nil, fmt.Errorf("ear clipping: %w", err)
	}

	ec := &earClipper{points: points, k: kernel{}}
	outerLoop := make([]int, len(outer))
	for i := range outerLoop {
		outerLoop[i] = i
	}
	if err := ec.orientLoop(outerLoop, 1); err != nil {
		return nil, fmt.Errorf("ear clipping: outer loop: %w", err)
	}
	for h, loop := range holeLoops {
		if err := ec.orientLoop(loop, -1); err != nil {
			return nil, fmt.Errorf("ear clipping: hole %d: %w", h, err)
		}
	}

	ec.list = newClist(len(points) + 2*len(holes))
	ec.head = ec.list.insertAfter(0, outerLoop)

	sort.SliceStable(holeLoops, func(i, j int) bool {
		return lexLess(points[holeLoops[j][rightmost(points, holeLoops[j])]],
			points[holeLoops[i][rightmost(points, holeLoops[i])]])
	})
	for h, loop := range holeLoops {
		if err := ec.bridge(loop); err != nil {
			return nil, fmt.Errorf("ear clipping: hole %d: %w", h, err)
		}
	}
	return ec.clip()
}

type earClipper struct {
	points []mgl64.Vec2
	k      kernel
	list   *clist
	head   int
}

// orientLoop reverses loop in place unless its signed area has sign want.
func (ec *earClipper) orientLoop(loop []int, want int) error {
	s := signedArea2Exact(ec.points, loop).Sign()
	if s == 0 {
		return ErrDegenerate
	}
	if s != want {
		for l, r := 0, len(loop)-1; l < r; l, r = l+1, r-1 {
			loop[l], loop[r] = loop[r], loop[l]
		}
	}
	return nil
}

// signedArea2Exact returns twice the signed area of the loop.
func signedArea2Exact(points []mgl64.Vec2, loop []int) rational.Number {
	var sum rational.Number
	for i, v := range loop {
		p := rational.V2(points[v])
		q := rational.V2(points[loop[(i+1)%len(loop)]])
		sum = sum.Add(p.Cross(q))
	}
	return sum
}

// rightmost returns the position in loop of its lexicographically largest
// point.
func rightmost(points []mgl64.Vec2, loop []int) int {
	best := 0
	for i := range loop {
		if lexLess(points[loop[best]], points[loop[i]]) {
			best = i
		}
	}
	return best
}

func (ec *earClipper) at(n int) mgl64.Vec2 {
	return ec.points[ec.list.vert[n]]
}

func (ec *earClipper) orientAt(n int) int {
	return ec.k.orient2(ec.at(ec.list.prev[n]), ec.at(n), ec.at(ec.list.next[n]))
}

// bridge splices a clockwise hole into the boundary through a pair of
// coincident edges between the hole's rightmost vertex M and a boundary
// vertex visible from it.
func (ec *earClipper) bridge(loop []int) error {
	m := rightmost(ec.points, loop)
	pm := ec.points[loop[m]]
	rm := rational.V2(pm)

	// nearest boundary edge hit by the ray from M towards +x
	hitNode := -1
	var hitX rational.Number
	ec.list.each(ec.head, func(n int) {
		a, b := ec.at(n), ec.at(ec.list.next[n])
		if ec.k.orient2(a, b, pm) <= 0 {
			return
		}
		if pm[1] < min(a[1], b[1]) || pm[1] > max(a[1], b[1]) {
			return
		}
		ra, rb := rational.V2(a), rational.V2(b)
		x := ra.X.Add(rm.Y.Sub(ra.Y).Mul(rb.X.Sub(ra.X)).Div(rb.Y.Sub(ra.Y)))
		if x.Cmp(rm.X) < 0 {
			return
		}
		if hitNode < 0 || x.Cmp(hitX) < 0 {
			hitNode, hitX = n, x
		}
	})
	if hitNode < 0 {
		return fmt.Errorf("hole is not inside the outer loop: %w", ErrDegenerate)
	}

	hit := rational.Vec2{X: hitX, Y: rm.Y}
	na, nb := hitNode, ec.list.next[hitNode]
	visible := -1
	switch {
	case rational.V2(ec.at(na)).Equal(hit):
		visible = na
	case rational.V2(ec.at(nb)).Equal(hit):
		visible = nb
	default:
		visible = nb
		if ec.at(na)[0] > ec.at(nb)[0] {
			visible = na
		}
		visible = ec.blockingReflex(pm, hit, visible)
	}

	seq := make([]int, 0, len(loop)+2)
	seq = append(seq, loop[m:]...)
	seq = append(seq, loop[:m]...)
	seq = append(seq, loop[m], ec.list.vert[visible])
	ec.list.insertAfter(visible, seq)
	return nil
}

// blockingReflex returns the node visible from M when the candidate P may be
// hidden: among reflex vertices inside triangle (M, hit, P) the one with the
// smallest angle to the ray wins, nearer first on ties. P itself is returned
// when nothing blocks it.
func (ec *earClipper) blockingReflex(pm mgl64.Vec2, hit rational.Vec2, p int) int {
	rm, rp := rational.V2(pm), rational.V2(ec.at(p))
	o := orientRational(rm, hit, rp)
	best := p
	var bestDx, bestDy rational.Number
	ec.list.each(ec.head, func(n int) {
		pr := ec.at(n)
		if pr == ec.at(p) || pr == pm || ec.orientAt(n) >= 0 {
			return
		}
		r := rational.V2(pr)
		if orientRational(rm, hit, r)*o < 0 || orientRational(hit, rp, r)*o < 0 || orientRational(rp, rm, r)*o < 0 {
			return
		}
		dx := r.X.Sub(rm.X)
		dy := r.Y.Sub(rm.Y).Abs()
		if dx.Sign() <= 0 {
			return
		}
		if best != p {
			// compare dy/dx against bestDy/bestDx without dividing
			c := dy.Mul(bestDx).Cmp(bestDy.Mul(dx))
			if c > 0 || (c == 0 && dx.Cmp(bestDx) >= 0) {
				return
			}
		}
		best, bestDx, bestDy = n, dx, dy
	})
	return best
}

func orientRational(a, b, c rational.Vec2) int {
	return b.Sub(a).Cross(c.Sub(a)).Sign()
}

// clip removes ears until a triangle remains. When no ear exists a
// collinear vertex is dropped instead; if there is none the polygon is not
// simple.
func (ec *earClipper) clip() ([][3]int, error) {
	l := ec.list
	tris := make([][3]int, 0, l.count)
	n := ec.head
	for l.count > 3 {
		clipped := false
		for k, cur := 0, n; k < l.count; k, cur = k+1, l.next[cur] {
			if ec.isEar(cur) {
				tris = append(tris, [3]int{l.vert[l.prev[cur]], l.vert[cur], l.vert[l.next[cur]]})
				n = l.next[cur]
				l.remove(cur)
				clipped = true
				break
			}
		}
		if clipped {
			continue
		}
		for k, cur := 0, n; k < l.count; k, cur = k+1, l.next[cur] {
			if ec.orientAt(cur) == 0 {
				n = l.next[cur]
				l.remove(cur)
				clipped = true
				break
			}
		}
		if !clipped {
			return nil, fmt.Errorf("ear clipping: no ear among %d vertices: %w", l.count, ErrDegenerate)
		}
	}
	if ec.orientAt(n) > 0 {
		tris = append(tris, [3]int{l.vert[l.prev[n]], l.vert[n], l.vert[l.next[n]]})
	}
	return tris, nil
}

// isEar reports whether node n is convex and its triangle with its
// neighbors holds no other boundary vertex, boundary included.
func (ec *earClipper) isEar(n int) bool {
	l := ec.list
	p, nx := l.prev[n], l.next[n]
	a, b, c := ec.at(p), ec.at(n), ec.at(nx)
	if ec.k.orient2(a, b, c) <= 0 {
		return false
	}
	for k, m := 0, l.next[nx]; k < l.count-3; k, m = k+1, l.next[m] {
		r := ec.at(m)
		if r == a || r == b || r == c {
			continue
		}
		if ec.k.toTriangle(r, a, b, c) <= 0 {
			return false
		}
	}
	return true
}
