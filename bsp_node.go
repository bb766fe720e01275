package gosiegeom

import (
	"sort"

	"github.com/smasonuk/gosiegeom/rational"
)

// bspNode partitions the plane by the line of one polygon edge. Edges lying
// on the line stay with the node. Pos holds the edges to the left (the
// interior side of the node's edges), Neg those to the right. A missing Pos
// child is a region entirely inside the polygon, a missing Neg child one
// entirely outside.
type bspNode struct {
	line       line2
	coincident []Edge2
	Pos        *bspNode
	Neg        *bspNode
}

func createBspTree(edges *edgeStore) *bspNode {
	if edges.EdgeCount() == 0 {
		return nil
	}

	splitter := edges.chooseSplitter()
	parent := &bspNode{line: newLine2(splitter), coincident: []Edge2{splitter}}

	pos := newEdgeStore()
	neg := newEdgeStore()
	for a := 0; a < edges.EdgeCount(); a++ {
		e := edges.GetEdge(a)
		if parent.line.Coincident(e) {
			parent.coincident = append(parent.coincident, e)
			continue
		}
		p, n := parent.line.SplitEdge(e)
		if p != nil {
			pos.AddEdge(*p)
		}
		if n != nil {
			neg.AddEdge(*n)
		}
	}

	if pos.EdgeCount() > 0 {
		parent.Pos = createBspTree(pos)
	}
	if neg.EdgeCount() > 0 {
		parent.Neg = createBspTree(neg)
	}
	return parent
}

func (b *bspNode) size() int {
	if b == nil {
		return 0
	}
	return 1 + b.Pos.size() + b.Neg.size()
}

// edgeParts sorts the pieces of one polygon's edges by where they fall
// relative to another polygon.
type edgeParts struct {
	in, out []Edge2
	// coSame and coOpp lie on the other polygon's boundary with the same
	// or the opposite direction.
	coSame, coOpp []Edge2
}

// classify cuts e along the tree and files every piece in parts.
func (b *bspNode) classify(e Edge2, parts *edgeParts) {
	if e.Degenerate() {
		return
	}
	sa, sb := b.line.Side(e.A), b.line.Side(e.B)
	switch {
	case sa == 0 && sb == 0:
		b.classifyCoincident(e, parts)
	case sa >= 0 && sb >= 0:
		b.toPos(e, parts)
	case sa <= 0 && sb <= 0:
		b.toNeg(e, parts)
	default:
		p, n := b.line.SplitEdge(e)
		b.toPos(*p, parts)
		b.toNeg(*n, parts)
	}
}

func (b *bspNode) toPos(e Edge2, parts *edgeParts) {
	if b.Pos == nil {
		parts.in = append(parts.in, e)
		return
	}
	b.Pos.classify(e, parts)
}

func (b *bspNode) toNeg(e Edge2, parts *edgeParts) {
	if b.Neg == nil {
		parts.out = append(parts.out, e)
		return
	}
	b.Neg.classify(e, parts)
}

type overlap struct {
	lo, hi rational.Number
	same   bool
}

// classifyCoincident splits an edge on the node line into the stretches
// covered by the node's edges and the gaps between them. Gaps are not on
// the boundary here, so both sides of them agree and they continue down the
// positive side.
func (b *bspNode) classifyCoincident(e Edge2, parts *edgeParts) {
	zero, one := rational.Number{}, rational.FromInt(1)
	var cover []overlap
	for _, c := range b.coincident {
		t0, t1 := e.param(c.A), e.param(c.B)
		lo := rational.Max(rational.Min(t0, t1), zero)
		hi := rational.Min(rational.Max(t0, t1), one)
		if lo.Cmp(hi) >= 0 {
			continue
		}
		cover = append(cover, overlap{lo: lo, hi: hi, same: c.Dir().Dot(e.Dir()).Sign() > 0})
	}
	sort.Slice(cover, func(i, j int) bool { return cover[i].lo.Cmp(cover[j].lo) < 0 })

	t := zero
	for _, c := range cover {
		if c.lo.Cmp(t) > 0 {
			b.toPos(Edge2{A: e.at(t), B: e.at(c.lo)}, parts)
		}
		if c.hi.Cmp(t) <= 0 {
			continue
		}
		lo := rational.Max(c.lo, t)
		piece := Edge2{A: e.at(lo), B: e.at(c.hi)}
		if c.same {
			parts.coSame = append(parts.coSame, piece)
		} else {
			parts.coOpp = append(parts.coOpp, piece)
		}
		t = c.hi
	}
	if t.Cmp(one) < 0 {
		b.toPos(Edge2{A: e.at(t), B: e.B}, parts)
	}
}

// locate classifies p by descending the tree. ok is false when p lies on a
// splitting line away from that node's edges; the descent cannot decide
// such points on its own.
func (b *bspNode) locate(p rational.Vec2) (c Containment, ok bool) {
	for node := b; ; {
		switch node.line.Side(p) {
		case 1:
			if node.Pos == nil {
				return Inside, true
			}
			node = node.Pos
		case -1:
			if node.Neg == nil {
				return Outside, true
			}
			node = node.Neg
		default:
			for _, e := range node.coincident {
				if e.contains(p) {
					return OnBoundary, true
				}
			}
			return Outside, false
		}
	}
}
