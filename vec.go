package gosiegeom

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func checkFinite2(points []mgl64.Vec2) error {
	for i, p := range points {
		if !isFinite(p[0]) || !isFinite(p[1]) {
			return fmt.Errorf("point %d %v: %w", i, p, ErrNonFinite)
		}
	}
	return nil
}

func checkFinite3(points []mgl64.Vec3) error {
	for i, p := range points {
		if !isFinite(p[0]) || !isFinite(p[1]) || !isFinite(p[2]) {
			return fmt.Errorf("point %d %v: %w", i, p, ErrNonFinite)
		}
	}
	return nil
}

// lexLess orders points by x, then y.
func lexLess(a, b mgl64.Vec2) bool {
	if a[0] != b[0] {
		return a[0] < b[0]
	}
	return a[1] < b[1]
}

// strictlyBetween reports whether p lies strictly inside segment ab, given
// that the three points are already known to be collinear. Only coordinate
// comparisons are used, so the answer is exact.
func strictlyBetween(a, b, p mgl64.Vec2) bool {
	axis := 0
	if a[0] == b[0] {
		axis = 1
	}
	lo, hi := a[axis], b[axis]
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo < p[axis] && p[axis] < hi
}

// onClosedSegment reports whether p lies on the closed segment ab.
func onClosedSegment(k kernel, p, a, b mgl64.Vec2) bool {
	if p == a || p == b {
		return true
	}
	if a == b {
		return false
	}
	return k.orient2(a, b, p) == 0 && strictlyBetween(a, b, p)
}

// Perp returns v rotated a quarter turn counterclockwise.
func Perp(v mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{-v[1], v[0]}
}

// VectorFromAngle returns the unit vector at angle radians from +x.
func VectorFromAngle(angle float64) mgl64.Vec2 {
	return mgl64.Vec2{math.Cos(angle), math.Sin(angle)}
}

// Rotate2 rotates v counterclockwise by angle radians about the origin.
func Rotate2(v mgl64.Vec2, angle float64) mgl64.Vec2 {
	c, s := math.Cos(angle), math.Sin(angle)
	return mgl64.Vec2{v[0]*c - v[1]*s, v[0]*s + v[1]*c}
}

// AngleBetween returns the unsigned angle between a and b in radians, or 0
// when either vector is zero.
func AngleBetween(a, b mgl64.Vec2) float64 {
	la, lb := a.Len(), b.Len()
	if la == 0 || lb == 0 {
		return 0
	}
	cos := a.Dot(b) / (la * lb)
	// clamp rounding noise so Acos never sees |cos| > 1
	return math.Acos(math.Max(-1, math.Min(1, cos)))
}

// SignedArea2 returns the signed area of a closed loop, positive when the
// loop is counterclockwise.
func SignedArea2(loop []mgl64.Vec2) float64 {
	var area float64
	for i := range loop {
		p, q := loop[i], loop[(i+1)%len(loop)]
		area += p[0]*q[1] - q[0]*p[1]
	}
	return area / 2
}
