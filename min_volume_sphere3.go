package gosiegeom

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/smasonuk/gosiegeom/rational"
)

type exactSphere struct {
	center rational.Vec3
	r2     rational.Number
}

func (s exactSphere) contains(p rational.Vec3) bool {
	d := p.Sub(s.center)
	return d.Dot(d).Cmp(s.r2) <= 0
}

func sphereAt(center, onBoundary rational.Vec3) exactSphere {
	d := onBoundary.Sub(center)
	return exactSphere{center: center, r2: d.Dot(d)}
}

// sphereThrough returns the smallest sphere with every support point on its
// boundary. Affinely dependent supports have no such sphere; the smallest
// sphere through a subset that still encloses all of them is used instead.
func sphereThrough(support ...rational.Vec3) exactSphere {
	switch len(support) {
	case 1:
		return exactSphere{center: support[0]}
	case 2:
		half := rational.FromFrac(1, 2)
		return sphereAt(support[0].Add(support[1]).Scale(half), support[0])
	case 3:
		a := support[0]
		b, c := support[1].Sub(a), support[2].Sub(a)
		n := b.Cross(c)
		nn := n.Dot(n)
		if nn.IsZero() {
			return fallbackSphere(support)
		}
		num := c.Cross(n).Scale(b.Dot(b)).Add(n.Cross(b).Scale(c.Dot(c)))
		return sphereAt(a.Add(num.Scale(rational.FromInt(1).Div(nn.Mul(rational.FromInt(2))))), support[0])
	}
	a := support[0]
	b, c, d := support[1].Sub(a), support[2].Sub(a), support[3].Sub(a)
	det := b.Dot(c.Cross(d))
	if det.IsZero() {
		return fallbackSphere(support)
	}
	num := c.Cross(d).Scale(b.Dot(b)).
		Add(d.Cross(b).Scale(c.Dot(c))).
		Add(b.Cross(c).Scale(d.Dot(d)))
	return sphereAt(a.Add(num.Scale(rational.FromInt(1).Div(det.Mul(rational.FromInt(2))))), support[0])
}

// fallbackSphere tries every smaller support subset and keeps the smallest
// sphere that encloses the whole support.
func fallbackSphere(support []rational.Vec3) exactSphere {
	Logger().Warn("min sphere: degenerate support, using a smaller support set", "size", len(support))
	var best *exactSphere
	n := len(support)
	for mask := 1; mask < 1<<n-1; mask++ {
		var sub []rational.Vec3
		for i := 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				sub = append(sub, support[i])
			}
		}
		if len(sub) < 2 {
			continue
		}
		cand := sphereThrough(sub...)
		enclosing := true
		for _, p := range support {
			if !cand.contains(p) {
				enclosing = false
				break
			}
		}
		if enclosing && (best == nil || cand.r2.Cmp(best.r2) < 0) {
			best = &cand
		}
	}
	if best == nil {
		// unreachable: the farthest pair of collinear points encloses all
		return sphereThrough(support[0])
	}
	return *best
}

func shuffledUnique3(points []mgl64.Vec3, seed int64) []rational.Vec3 {
	seen := make(map[mgl64.Vec3]struct{}, len(points))
	var out []rational.Vec3
	for _, p := range points {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, rational.V3(p))
	}
	rnd := rand.New(rand.NewSource(seed))
	rnd.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// MinVolumeSphere3 returns the smallest sphere containing points, computed
// by Welzl's randomized incremental method in exact arithmetic with up to
// four support points.
func MinVolumeSphere3(points []mgl64.Vec3, opts ...Option) (Sphere3, error) {
	if len(points) == 0 {
		return Sphere3{}, ErrNoPoints
	}
	if err := checkFinite3(points); err != nil {
		return Sphere3{}, fmt.Errorf("min volume sphere: %w", err)
	}
	o := applyOptions(opts)
	p := shuffledUnique3(points, o.seed)

	s := sphereThrough(p[0])
	for i := 1; i < len(p); i++ {
		if s.contains(p[i]) {
			continue
		}
		s = sphereThrough(p[i])
		for j := 0; j < i; j++ {
			if s.contains(p[j]) {
				continue
			}
			s = sphereThrough(p[i], p[j])
			for k := 0; k < j; k++ {
				if s.contains(p[k]) {
					continue
				}
				s = sphereThrough(p[i], p[j], p[k])
				for l := 0; l < k; l++ {
					if !s.contains(p[l]) {
						s = sphereThrough(p[i], p[j], p[k], p[l])
					}
				}
			}
		}
	}
	Logger().Debug("min volume sphere", "points", len(points), "distinct", len(p))
	return Sphere3{Center: s.center.Float64(), Radius: math.Sqrt(s.r2.F())}, nil
}
