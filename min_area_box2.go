package gosiegeom

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/smasonuk/gosiegeom/rational"
)

// caliperBox is the box flush with one hull edge, in the edge's unnormalized
// frame: U is the edge vector, V = perp(U), and s and t are coordinates
// relative to the edge start scaled by |U|.
type caliperBox struct {
	edge       int
	origin     rational.Vec2
	u, v       rational.Vec2
	minS, maxS rational.Number
	maxT       rational.Number
	lenSq      rational.Number
	areaNumer  rational.Number
	minI, maxI int
	farI       int
}

// area returns the exact box area: (maxS-minS)/|U| * maxT/|U|.
func (b *caliperBox) area() rational.Number {
	return b.areaNumer.Div(b.lenSq)
}

// MinAreaBox2 returns the oriented rectangle of least area containing
// points. The optimal box has a side flush with a hull edge, so every edge is
// tried with rotating calipers and areas are compared exactly; on ties the
// earliest edge (counterclockwise from the lexicographically smallest hull
// vertex) wins.
func MinAreaBox2(points []mgl64.Vec2, opts ...Option) (OrientedBox2, error) {
	if len(points) == 0 {
		return OrientedBox2{}, ErrNoPoints
	}
	if err := checkFinite2(points); err != nil {
		return OrientedBox2{}, fmt.Errorf("min area box: %w", err)
	}
	k := newKernel(applyOptions(opts))
	hull := convexHull2(k, points, nil)

	switch hull.Dimension {
	case 0:
		p := points[hull.Indices[0]]
		return OrientedBox2{Center: p, Axis: [2]mgl64.Vec2{{1, 0}, {0, 1}}}, nil
	case 1:
		a, b := points[hull.Indices[0]], points[hull.Indices[1]]
		d := b.Sub(a)
		u := d.Normalize()
		return OrientedBox2{
			Center: a.Add(b).Mul(0.5),
			Axis:   [2]mgl64.Vec2{u, Perp(u)},
			Extent: mgl64.Vec2{d.Len() / 2, 0},
		}, nil
	}

	h := make([]rational.Vec2, len(hull.Indices))
	for i, idx := range hull.Indices {
		h[i] = rational.V2(points[idx])
	}
	n := len(h)
	s := func(b *caliperBox, i int) rational.Number { return h[i].Sub(b.origin).Dot(b.u) }
	t := func(b *caliperBox, i int) rational.Number { return h[i].Sub(b.origin).Dot(b.v) }

	var best *caliperBox
	var prev *caliperBox
	for e := 0; e < n; e++ {
		b := &caliperBox{edge: e, origin: h[e]}
		b.u = h[(e+1)%n].Sub(h[e])
		b.v = b.u.Perp()
		b.lenSq = b.u.Dot(b.u)

		if prev == nil {
			for i := 0; i < n; i++ {
				if s(b, i).Cmp(s(b, b.minI)) < 0 {
					b.minI = i
				}
				if s(b, i).Cmp(s(b, b.maxI)) > 0 {
					b.maxI = i
				}
				if t(b, i).Cmp(t(b, b.farI)) > 0 {
					b.farI = i
				}
			}
		} else {
			// extreme points only move forward as the edge turns
			b.minI, b.maxI, b.farI = prev.minI, prev.maxI, prev.farI
			for step := 0; step < n && s(b, (b.maxI+1)%n).Cmp(s(b, b.maxI)) >= 0; step++ {
				b.maxI = (b.maxI + 1) % n
			}
			for step := 0; step < n && s(b, (b.minI+1)%n).Cmp(s(b, b.minI)) <= 0; step++ {
				b.minI = (b.minI + 1) % n
			}
			for step := 0; step < n && t(b, (b.farI+1)%n).Cmp(t(b, b.farI)) >= 0; step++ {
				b.farI = (b.farI + 1) % n
			}
		}
		b.minS, b.maxS, b.maxT = s(b, b.minI), s(b, b.maxI), t(b, b.farI)
		b.areaNumer = b.maxS.Sub(b.minS).Mul(b.maxT)

		if best == nil || b.area().Cmp(best.area()) < 0 {
			best = b
		}
		prev = b
	}

	two := rational.FromInt(2)
	center := best.origin.
		Add(best.u.Scale(best.minS.Add(best.maxS).Div(two.Mul(best.lenSq)))).
		Add(best.v.Scale(best.maxT.Div(two.Mul(best.lenSq))))
	ulen := math.Sqrt(best.lenSq.F())
	axis := best.u.Float64().Normalize()

	Logger().Debug("min area box", "points", len(points), "hull", n, "edge", best.edge)
	return OrientedBox2{
		Center: center.Float64(),
		Axis:   [2]mgl64.Vec2{axis, Perp(axis)},
		Extent: mgl64.Vec2{
			best.maxS.Sub(best.minS).Div(best.lenSq).F() * ulen / 2,
			best.maxT.Div(best.lenSq).F() * ulen / 2,
		},
	}, nil
}
