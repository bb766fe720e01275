package gosiegeom

import "github.com/smasonuk/gosiegeom/rational"

// line2 is the supporting line of an edge. The positive side is to the left
// of Dir, which is the interior side of the edge.
type line2 struct {
	Origin rational.Vec2
	Dir    rational.Vec2
}

func newLine2(e Edge2) line2 {
	return line2{Origin: e.A, Dir: e.B.Sub(e.A)}
}

// PointOnLine returns the signed distance of p scaled by |Dir|.
func (l line2) PointOnLine(p rational.Vec2) rational.Number {
	return l.Dir.Cross(p.Sub(l.Origin))
}

func (l line2) Side(p rational.Vec2) int {
	return l.PointOnLine(p).Sign()
}

// LineIntersect returns where segment ab crosses the line. The endpoints
// must lie strictly on opposite sides.
func (l line2) LineIntersect(a, b rational.Vec2) rational.Vec2 {
	da := l.PointOnLine(a)
	db := l.PointOnLine(b)
	t := da.Div(da.Sub(db))
	return a.Add(b.Sub(a).Scale(t))
}

// EdgeIntersect reports whether the line crosses the open edge.
func (l line2) EdgeIntersect(e Edge2) bool {
	return l.Side(e.A)*l.Side(e.B) < 0
}

// SplitEdge cuts e at the line and returns the piece on the positive side
// and the piece on the negative side. A piece is nil when e lies entirely on
// the other side; an edge on the line is returned as neither.
func (l line2) SplitEdge(e Edge2) (pos, neg *Edge2) {
	sa, sb := l.Side(e.A), l.Side(e.B)
	switch {
	case sa == 0 && sb == 0:
		return nil, nil
	case sa >= 0 && sb >= 0:
		return &e, nil
	case sa <= 0 && sb <= 0:
		return nil, &e
	}
	m := l.LineIntersect(e.A, e.B)
	first, second := Edge2{A: e.A, B: m}, Edge2{A: m, B: e.B}
	if sa > 0 {
		return &first, &second
	}
	return &second, &first
}

// Coincident reports whether e lies on the line.
func (l line2) Coincident(e Edge2) bool {
	return l.Side(e.A) == 0 && l.Side(e.B) == 0
}
