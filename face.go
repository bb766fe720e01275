package gosiegeom

import (
	"fmt"

	"github.com/smasonuk/gosiegeom/rational"
)

// Edge2 is a directed polygon edge. The polygon interior lies to its left.
type Edge2 struct {
	A, B rational.Vec2
}

func (e Edge2) Reverse() Edge2 {
	return Edge2{A: e.B, B: e.A}
}

func (e Edge2) Degenerate() bool {
	return e.A.Equal(e.B)
}

func (e Edge2) Dir() rational.Vec2 {
	return e.B.Sub(e.A)
}

// at returns A + t(B-A).
func (e Edge2) at(t rational.Number) rational.Vec2 {
	return e.A.Add(e.Dir().Scale(t))
}

// param returns t with at(t) = p for p on the edge's line.
func (e Edge2) param(p rational.Vec2) rational.Number {
	d := e.Dir()
	return p.Sub(e.A).Dot(d).Div(d.Dot(d))
}

// contains reports whether p lies on the closed edge.
func (e Edge2) contains(p rational.Vec2) bool {
	if !e.Dir().Cross(p.Sub(e.A)).IsZero() {
		return false
	}
	t := e.param(p)
	return t.Sign() >= 0 && t.Cmp(rational.FromInt(1)) <= 0
}

func (e Edge2) String() string {
	return fmt.Sprintf("%s->%s", e.A, e.B)
}
