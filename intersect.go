package gosiegeom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/smasonuk/gosiegeom/rational"
)

// Containment is the position of a point relative to a region.
type Containment int

const (
	Outside Containment = iota
	Inside
	OnBoundary
)

func (c Containment) String() string {
	switch c {
	case Outside:
		return "outside"
	case Inside:
		return "inside"
	case OnBoundary:
		return "boundary"
	}
	return "unknown"
}

// IntersectionKind classifies a segment intersection.
type IntersectionKind int

const (
	NoIntersection IntersectionKind = iota
	PointIntersection
	OverlapIntersection
)

func (k IntersectionKind) String() string {
	switch k {
	case NoIntersection:
		return "none"
	case PointIntersection:
		return "point"
	case OverlapIntersection:
		return "overlap"
	}
	return "unknown"
}

// SegmentIntersection is the exact intersection of two closed segments.
type SegmentIntersection struct {
	Kind IntersectionKind
	// Point is set for PointIntersection.
	Point rational.Vec2
	// Overlap is set for OverlapIntersection, ordered along the first
	// segment.
	Overlap [2]rational.Vec2
}

// IntersectSegments2 intersects the closed segments p0p1 and q0q1. The
// classification is exact; the intersection point is a rational number, not
// a rounded float.
func IntersectSegments2(p0, p1, q0, q1 mgl64.Vec2) SegmentIntersection {
	k := kernel{}
	if p0 == p1 {
		p0, p1, q0, q1 = q0, q1, p0, p1
	}
	if p0 == p1 {
		if q0 == p0 {
			return SegmentIntersection{Kind: PointIntersection, Point: rational.V2(p0)}
		}
		return SegmentIntersection{}
	}
	if q0 == q1 {
		if onClosedSegment(k, q0, p0, p1) {
			return SegmentIntersection{Kind: PointIntersection, Point: rational.V2(q0)}
		}
		return SegmentIntersection{}
	}

	o0, o1 := k.orient2(p0, p1, q0), k.orient2(p0, p1, q1)
	if o0 == 0 && o1 == 0 {
		return collinearOverlap(p0, p1, q0, q1)
	}
	if o0*o1 > 0 {
		return SegmentIntersection{}
	}
	o2, o3 := k.orient2(q0, q1, p0), k.orient2(q0, q1, p1)
	if o2*o3 > 0 {
		return SegmentIntersection{}
	}

	rp0, rq0 := rational.V2(p0), rational.V2(q0)
	d := rational.V2(p1).Sub(rp0)
	e := rational.V2(q1).Sub(rq0)
	t := rq0.Sub(rp0).Cross(e).Div(d.Cross(e))
	return SegmentIntersection{Kind: PointIntersection, Point: rp0.Add(d.Scale(t))}
}

func collinearOverlap(p0, p1, q0, q1 mgl64.Vec2) SegmentIntersection {
	e := Edge2{A: rational.V2(p0), B: rational.V2(p1)}
	t0, t1 := e.param(rational.V2(q0)), e.param(rational.V2(q1))
	lo := rational.Max(rational.Min(t0, t1), rational.Number{})
	hi := rational.Min(rational.Max(t0, t1), rational.FromInt(1))
	switch lo.Cmp(hi) {
	case 1:
		return SegmentIntersection{}
	case 0:
		return SegmentIntersection{Kind: PointIntersection, Point: e.at(lo)}
	}
	return SegmentIntersection{Kind: OverlapIntersection, Overlap: [2]rational.Vec2{e.at(lo), e.at(hi)}}
}

// DistancePointSegment2 returns the distance from p to segment ab and the
// closest point on it.
func DistancePointSegment2(p, a, b mgl64.Vec2) (float64, mgl64.Vec2) {
	d := b.Sub(a)
	l2 := d.Dot(d)
	if l2 == 0 {
		return p.Sub(a).Len(), a
	}
	t := p.Sub(a).Dot(d) / l2
	t = math.Max(0, math.Min(1, t))
	closest := a.Add(d.Mul(t))
	return p.Sub(closest).Len(), closest
}

// DistancePointTriangle2 returns the distance from p to the solid triangle
// abc and the closest point. Points inside have distance 0.
func DistancePointTriangle2(p, a, b, c mgl64.Vec2) (float64, mgl64.Vec2) {
	if (kernel{}).toTriangle(p, a, b, c) <= 0 {
		return 0, p
	}
	best, closest := DistancePointSegment2(p, a, b)
	for _, e := range [2][2]mgl64.Vec2{{b, c}, {c, a}} {
		if dist, q := DistancePointSegment2(p, e[0], e[1]); dist < best {
			best, closest = dist, q
		}
	}
	return best, closest
}

// PointInPolygon2 classifies p against the closed loop by its winding
// number. The loop may have either orientation and may self-overlap; any
// nonzero winding counts as inside.
func PointInPolygon2(p mgl64.Vec2, loop []mgl64.Vec2) Containment {
	k := kernel{}
	winding := 0
	for i := range loop {
		a, b := loop[i], loop[(i+1)%len(loop)]
		if onClosedSegment(k, p, a, b) {
			return OnBoundary
		}
		switch {
		case a[1] <= p[1] && p[1] < b[1] && k.orient2(a, b, p) > 0:
			winding++
		case b[1] <= p[1] && p[1] < a[1] && k.orient2(a, b, p) < 0:
			winding--
		}
	}
	if winding != 0 {
		return Inside
	}
	return Outside
}
