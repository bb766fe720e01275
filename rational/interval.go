package rational

import "math"

// Interval is a closed float64 interval [Lo, Hi]. Arithmetic widens each
// result bound by one ulp outward, so the exact real result of an operation
// on any reals inside the operands always lies inside the result.
type Interval struct {
	Lo, Hi float64
}

// Point returns the degenerate interval [f, f].
func Point(f float64) Interval {
	return Interval{Lo: f, Hi: f}
}

func down(f float64) float64 { return math.Nextafter(f, math.Inf(-1)) }
func up(f float64) float64   { return math.Nextafter(f, math.Inf(1)) }

func (a Interval) Add(b Interval) Interval {
	return Interval{Lo: down(a.Lo + b.Lo), Hi: up(a.Hi + b.Hi)}
}

func (a Interval) Sub(b Interval) Interval {
	return Interval{Lo: down(a.Lo - b.Hi), Hi: up(a.Hi - b.Lo)}
}

func (a Interval) Mul(b Interval) Interval {
	p0, p1, p2, p3 := a.Lo*b.Lo, a.Lo*b.Hi, a.Hi*b.Lo, a.Hi*b.Hi
	lo := math.Min(math.Min(p0, p1), math.Min(p2, p3))
	hi := math.Max(math.Max(p0, p1), math.Max(p2, p3))
	return Interval{Lo: down(lo), Hi: up(hi)}
}

// Contains reports whether f lies in the interval.
func (a Interval) Contains(f float64) bool {
	return a.Lo <= f && f <= a.Hi
}

// Sign returns the sign of every value in the interval and true, or 0 and
// false when the interval straddles zero or holds a NaN bound.
func (a Interval) Sign() (int, bool) {
	switch {
	case a.Lo > 0:
		return 1, true
	case a.Hi < 0:
		return -1, true
	case a.Lo == 0 && a.Hi == 0:
		return 0, true
	}
	return 0, false
}
