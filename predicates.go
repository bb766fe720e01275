package gosiegeom

import (
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/smasonuk/gosiegeom/rational"
)

// Every finite float64 is a rational number, so the predicates below are
// exact for all finite inputs. Each determinant is evaluated once with
// outward-rounded intervals; only when the interval straddles zero is it
// recomputed with big rationals.

// field is satisfied by rational.Interval and rational.Number, which lets
// each determinant be written once for both the filter and the exact path.
type field[T any] interface {
	Add(T) T
	Sub(T) T
	Mul(T) T
}

func det2[T field[T]](a, b, c, d T) T {
	return a.Mul(d).Sub(b.Mul(c))
}

func det3[T field[T]](u, v, w [3]T) T {
	return u[0].Mul(det2(v[1], v[2], w[1], w[2])).
		Sub(u[1].Mul(det2(v[0], v[2], w[0], w[2]))).
		Add(u[2].Mul(det2(v[0], v[1], w[0], w[1])))
}

func sub3[T field[T]](a, b [3]T) [3]T {
	return [3]T{a[0].Sub(b[0]), a[1].Sub(b[1]), a[2].Sub(b[2])}
}

func orient2Det[T field[T]](a, b, c [2]T) T {
	return det2(b[0].Sub(a[0]), b[1].Sub(a[1]), c[0].Sub(a[0]), c[1].Sub(a[1]))
}

func inCircleDet[T field[T]](a, b, c, d [2]T) T {
	adx, ady := a[0].Sub(d[0]), a[1].Sub(d[1])
	bdx, bdy := b[0].Sub(d[0]), b[1].Sub(d[1])
	cdx, cdy := c[0].Sub(d[0]), c[1].Sub(d[1])
	alift := adx.Mul(adx).Add(ady.Mul(ady))
	blift := bdx.Mul(bdx).Add(bdy.Mul(bdy))
	clift := cdx.Mul(cdx).Add(cdy.Mul(cdy))
	return alift.Mul(det2(bdx, bdy, cdx, cdy)).
		Add(blift.Mul(det2(cdx, cdy, adx, ady))).
		Add(clift.Mul(det2(adx, ady, bdx, bdy)))
}

func orient3Det[T field[T]](a, b, c, d [3]T) T {
	return det3(sub3(b, a), sub3(c, a), sub3(d, a))
}

// inSphereDet is the lifted 4x4 determinant of a-e, b-e, c-e, d-e expanded
// along the lift column, negated so that it is positive for e inside the
// sphere when orient3Det(a, b, c, d) > 0.
func inSphereDet[T field[T]](a, b, c, d, e [3]T) T {
	ae, be, ce, de := sub3(a, e), sub3(b, e), sub3(c, e), sub3(d, e)
	lift := func(v [3]T) T { return v[0].Mul(v[0]).Add(v[1].Mul(v[1])).Add(v[2].Mul(v[2])) }
	return lift(ae).Mul(det3(be, ce, de)).
		Sub(lift(be).Mul(det3(ae, ce, de))).
		Add(lift(ce).Mul(det3(ae, be, de))).
		Sub(lift(de).Mul(det3(ae, be, ce)))
}

func iv2(v mgl64.Vec2) [2]rational.Interval {
	return [2]rational.Interval{rational.Point(v[0]), rational.Point(v[1])}
}

func rv2(v mgl64.Vec2) [2]rational.Number {
	return [2]rational.Number{rational.FromFloat64(v[0]), rational.FromFloat64(v[1])}
}

func iv3(v mgl64.Vec3) [3]rational.Interval {
	return [3]rational.Interval{rational.Point(v[0]), rational.Point(v[1]), rational.Point(v[2])}
}

func rv3(v mgl64.Vec3) [3]rational.Number {
	return [3]rational.Number{rational.FromFloat64(v[0]), rational.FromFloat64(v[1]), rational.FromFloat64(v[2])}
}

var predicateCounts struct {
	filtered atomic.Int64
	exact    atomic.Int64
}

// PredicateCounts reports how many predicate evaluations were decided by the
// interval filter and how many needed exact arithmetic.
type PredicateCounts struct {
	Filtered int64
	Exact    int64
}

// PredicateStats returns the process-wide predicate counters.
func PredicateStats() PredicateCounts {
	return PredicateCounts{
		Filtered: predicateCounts.filtered.Load(),
		Exact:    predicateCounts.exact.Load(),
	}
}

// ResetPredicateStats zeroes the process-wide predicate counters.
func ResetPredicateStats() {
	predicateCounts.filtered.Store(0)
	predicateCounts.exact.Store(0)
}

// kernel evaluates predicates, optionally without the interval filter.
type kernel struct {
	exactOnly bool
}

func newKernel(o options) kernel {
	return kernel{exactOnly: o.exactOnly}
}

func (k kernel) decide(filter func() (int, bool), exact func() int) int {
	if !k.exactOnly {
		if s, ok := filter(); ok {
			predicateCounts.filtered.Add(1)
			return s
		}
	}
	predicateCounts.exact.Add(1)
	return exact()
}

func (k kernel) orient2(a, b, c mgl64.Vec2) int {
	return k.decide(
		func() (int, bool) { return orient2Det(iv2(a), iv2(b), iv2(c)).Sign() },
		func() int { return orient2Det(rv2(a), rv2(b), rv2(c)).Sign() },
	)
}

func (k kernel) inCircle(a, b, c, d mgl64.Vec2) int {
	return k.decide(
		func() (int, bool) { return inCircleDet(iv2(a), iv2(b), iv2(c), iv2(d)).Sign() },
		func() int { return inCircleDet(rv2(a), rv2(b), rv2(c), rv2(d)).Sign() },
	)
}

func (k kernel) orient3(a, b, c, d mgl64.Vec3) int {
	return k.decide(
		func() (int, bool) { return orient3Det(iv3(a), iv3(b), iv3(c), iv3(d)).Sign() },
		func() int { return orient3Det(rv3(a), rv3(b), rv3(c), rv3(d)).Sign() },
	)
}

func (k kernel) inSphere(a, b, c, d, e mgl64.Vec3) int {
	return k.decide(
		func() (int, bool) { return inSphereDet(iv3(a), iv3(b), iv3(c), iv3(d), iv3(e)).Sign() },
		func() int { return inSphereDet(rv3(a), rv3(b), rv3(c), rv3(d), rv3(e)).Sign() },
	)
}

// toTriangle returns +1 when p is outside triangle abc, -1 inside and 0 on
// its boundary. The triangle may have either orientation; a degenerate
// triangle is treated as the segment hull of its vertices.
func (k kernel) toTriangle(p, a, b, c mgl64.Vec2) int {
	o := k.orient2(a, b, c)
	if o == 0 {
		if onClosedSegment(k, p, a, b) || onClosedSegment(k, p, b, c) || onClosedSegment(k, p, c, a) {
			return 0
		}
		return 1
	}
	s0 := k.orient2(a, b, p) * o
	s1 := k.orient2(b, c, p) * o
	s2 := k.orient2(c, a, p) * o
	if s0 < 0 || s1 < 0 || s2 < 0 {
		return 1
	}
	if s0 == 0 || s1 == 0 || s2 == 0 {
		return 0
	}
	return -1
}

// Orient2 returns +1 if c lies to the left of the directed line a->b, -1 if
// it lies to the right and 0 if the three points are collinear.
func Orient2(a, b, c mgl64.Vec2) int {
	return kernel{}.orient2(a, b, c)
}

// InCircle returns +1 if d lies strictly inside the circle through a, b, c,
// 0 if it lies on it and -1 outside, provided a, b, c are counterclockwise.
// For clockwise input the sign is reversed.
func InCircle(a, b, c, d mgl64.Vec2) int {
	return kernel{}.inCircle(a, b, c, d)
}

// Orient3 returns the sign of det[b-a, c-a, d-a]: +1 when d lies on the side
// of plane abc that (b-a)x(c-a) points to.
func Orient3(a, b, c, d mgl64.Vec3) int {
	return kernel{}.orient3(a, b, c, d)
}

// InSphere returns +1 if e lies strictly inside the sphere through a, b, c,
// d, 0 on it and -1 outside, provided Orient3(a, b, c, d) > 0. For negative
// orientation the sign is reversed.
func InSphere(a, b, c, d, e mgl64.Vec3) int {
	return kernel{}.inSphere(a, b, c, d, e)
}

// Query2 answers predicates about indexed vertices with the sign
// conventions of classic primal queries: ToLine is +1 right, -1 left;
// ToTriangle and ToCircumcircle are +1 outside, -1 inside, 0 on.
type Query2 struct {
	points []mgl64.Vec2
	k      kernel
}

func NewQuery2(points []mgl64.Vec2, opts ...Option) *Query2 {
	return &Query2{points: points, k: newKernel(applyOptions(opts))}
}

func (q *Query2) ToLine(i, v0, v1 int) int {
	return -q.k.orient2(q.points[v0], q.points[v1], q.points[i])
}

func (q *Query2) ToTriangle(i, v0, v1, v2 int) int {
	return q.k.toTriangle(q.points[i], q.points[v0], q.points[v1], q.points[v2])
}

func (q *Query2) ToCircumcircle(i, v0, v1, v2 int) int {
	p0, p1, p2 := q.points[v0], q.points[v1], q.points[v2]
	return -q.k.inCircle(p0, p1, p2, q.points[i]) * q.k.orient2(p0, p1, p2)
}
