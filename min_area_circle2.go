package gosiegeom

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/smasonuk/gosiegeom/rational"
)

// exactCircle is a circle with rational center and squared radius.
type exactCircle struct {
	center rational.Vec2
	r2     rational.Number
}

func (c exactCircle) contains(p rational.Vec2) bool {
	d := p.Sub(c.center)
	return d.Dot(d).Cmp(c.r2) <= 0
}

func diametralCircle(a, b rational.Vec2) exactCircle {
	half := rational.FromFrac(1, 2)
	center := a.Add(b).Scale(half)
	d := a.Sub(center)
	return exactCircle{center: center, r2: d.Dot(d)}
}

// circleThrough returns the smallest circle with every support point on its
// boundary. For collinear triples no such circle exists and the circle on
// the farthest pair is used instead.
func circleThrough(support ...rational.Vec2) exactCircle {
	switch len(support) {
	case 1:
		return exactCircle{center: support[0]}
	case 2:
		return diametralCircle(support[0], support[1])
	}
	a, b, c := support[0], support[1], support[2]
	ba, ca := b.Sub(a), c.Sub(a)
	d := ba.Cross(ca).Mul(rational.FromInt(2))
	if d.IsZero() {
		best := diametralCircle(a, b)
		for _, pair := range [2][2]rational.Vec2{{a, c}, {b, c}} {
			if cand := diametralCircle(pair[0], pair[1]); cand.r2.Cmp(best.r2) > 0 {
				best = cand
			}
		}
		Logger().Warn("min circle: collinear support, using farthest pair")
		return best
	}
	bl, cl := ba.Dot(ba), ca.Dot(ca)
	off := rational.Vec2{
		X: ca.Y.Mul(bl).Sub(ba.Y.Mul(cl)).Div(d),
		Y: ba.X.Mul(cl).Sub(ca.X.Mul(bl)).Div(d),
	}
	return exactCircle{center: a.Add(off), r2: off.Dot(off)}
}

// shuffledUnique2 returns the distinct finite points in a seeded random order.
func shuffledUnique2(points []mgl64.Vec2, seed int64) []rational.Vec2 {
	seen := make(map[mgl64.Vec2]struct{}, len(points))
	var out []rational.Vec2
	for _, p := range points {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, rational.V2(p))
	}
	rnd := rand.New(rand.NewSource(seed))
	rnd.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// MinAreaCircle2 returns the smallest circle containing points, computed by
// Welzl's randomized incremental method in exact arithmetic. Points are
// always visited in a shuffled order; WithShuffle picks the seed.
func MinAreaCircle2(points []mgl64.Vec2, opts ...Option) (Circle2, error) {
	if len(points) == 0 {
		return Circle2{}, ErrNoPoints
	}
	if err := checkFinite2(points); err != nil {
		return Circle2{}, fmt.Errorf("min area circle: %w", err)
	}
	o := applyOptions(opts)
	p := shuffledUnique2(points, o.seed)

	c := circleThrough(p[0])
	for i := 1; i < len(p); i++ {
		if c.contains(p[i]) {
			continue
		}
		c = circleThrough(p[i])
		for j := 0; j < i; j++ {
			if c.contains(p[j]) {
				continue
			}
			c = circleThrough(p[i], p[j])
			for k := 0; k < j; k++ {
				if !c.contains(p[k]) {
					c = circleThrough(p[i], p[j], p[k])
				}
			}
		}
	}
	Logger().Debug("min area circle", "points", len(points), "distinct", len(p))
	return Circle2{Center: c.center.Float64(), Radius: math.Sqrt(c.r2.F())}, nil
}
