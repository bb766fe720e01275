package gosiegeom

import (
	"fmt"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/smasonuk/gosiegeom/rational"
)

// Polygon2 is a planar region bounded by directed edges with exact rational
// endpoints. The interior lies to the left of every edge, so outer loops run
// counterclockwise and holes clockwise. Boolean operations build a BSP tree
// from each operand's edges and keep the pieces of each boundary that fall
// inside or outside the other.
//
// A Polygon2 is immutable and safe for concurrent use.
type Polygon2 struct {
	edges []Edge2

	once sync.Once
	tree *bspNode
	// unbounded is set for complements, whose exterior is inside.
	unbounded bool
}

// NewPolygon2 builds a polygon from closed float loops.
func NewPolygon2(loops ...[]mgl64.Vec2) (*Polygon2, error) {
	rloops := make([][]rational.Vec2, len(loops))
	for i, loop := range loops {
		if err := checkFinite2(loop); err != nil {
			return nil, fmt.Errorf("polygon loop %d: %w", i, err)
		}
		rloops[i] = make([]rational.Vec2, len(loop))
		for j, p := range loop {
			rloops[i][j] = rational.V2(p)
		}
	}
	return NewPolygon2Rational(rloops...)
}

// NewPolygon2Rational builds a polygon from closed rational loops. Repeated
// consecutive vertices are ignored.
func NewPolygon2Rational(loops ...[]rational.Vec2) (*Polygon2, error) {
	var edges []Edge2
	for i, loop := range loops {
		if len(loop) < 3 {
			return nil, fmt.Errorf("polygon loop %d with %d vertices: %w", i, len(loop), ErrDegenerate)
		}
		for j := range loop {
			e := Edge2{A: loop[j], B: loop[(j+1)%len(loop)]}
			if !e.Degenerate() {
				edges = append(edges, e)
			}
		}
	}
	return NewPolygon2Edges(edges), nil
}

// NewPolygon2Edges wraps an edge set. Degenerate edges are dropped.
func NewPolygon2Edges(edges []Edge2) *Polygon2 {
	p := &Polygon2{edges: make([]Edge2, 0, len(edges))}
	for _, e := range edges {
		if !e.Degenerate() {
			p.edges = append(p.edges, e)
		}
	}
	return p
}

// Edges returns a copy of the boundary edges.
func (p *Polygon2) Edges() []Edge2 {
	return append([]Edge2(nil), p.edges...)
}

func (p *Polygon2) bsp() *bspNode {
	p.once.Do(func() {
		store := newEdgeStore()
		for _, e := range p.edges {
			store.AddEdge(e)
		}
		p.tree = createBspTree(store)
		p.unbounded = p.Area().Sign() < 0
		Logger().Debug("bsp: built tree", "edges", len(p.edges), "nodes", p.tree.size())
	})
	return p.tree
}

// partition classifies p's edges against q's tree.
func (p *Polygon2) partition(q *Polygon2) *edgeParts {
	parts := &edgeParts{}
	tree := q.bsp()
	for _, e := range p.edges {
		if tree == nil {
			parts.out = append(parts.out, e)
			continue
		}
		tree.classify(e, parts)
	}
	return parts
}

func reversed(edges []Edge2) []Edge2 {
	out := make([]Edge2, len(edges))
	for i, e := range edges {
		out[i] = e.Reverse()
	}
	return out
}

func joinEdges(sets ...[]Edge2) *Polygon2 {
	var n int
	for _, s := range sets {
		n += len(s)
	}
	out := make([]Edge2, 0, n)
	for _, s := range sets {
		out = append(out, s...)
	}
	return NewPolygon2Edges(out)
}

// Intersection returns p ∩ q. Boundary shared with the same orientation is
// taken from p only.
func (p *Polygon2) Intersection(q *Polygon2) *Polygon2 {
	a, b := p.partition(q), q.partition(p)
	return joinEdges(a.in, a.coSame, b.in)
}

// Union returns p ∪ q.
func (p *Polygon2) Union(q *Polygon2) *Polygon2 {
	a, b := p.partition(q), q.partition(p)
	return joinEdges(a.out, a.coSame, b.out)
}

// Difference returns p − q.
func (p *Polygon2) Difference(q *Polygon2) *Polygon2 {
	a, b := p.partition(q), q.partition(p)
	return joinEdges(a.out, a.coOpp, reversed(b.in))
}

// Xor returns the symmetric difference of p and q.
func (p *Polygon2) Xor(q *Polygon2) *Polygon2 {
	a, b := p.partition(q), q.partition(p)
	return joinEdges(a.out, reversed(a.in), b.out, reversed(b.in))
}

// Negate returns the complement: every edge reversed. Its Area is the
// negated area of p.
func (p *Polygon2) Negate() *Polygon2 {
	return NewPolygon2Edges(reversed(p.edges))
}

// Area returns the exact signed area enclosed by the edges.
func (p *Polygon2) Area() rational.Number {
	var sum rational.Number
	for _, e := range p.edges {
		sum = sum.Add(e.A.Cross(e.B))
	}
	return sum.Div(rational.FromInt(2))
}

// Contains classifies p against the polygon.
func (p *Polygon2) Contains(pt mgl64.Vec2) Containment {
	return p.ContainsRational(rational.V2(pt))
}

func (p *Polygon2) ContainsRational(pt rational.Vec2) Containment {
	tree := p.bsp()
	if tree == nil {
		return Outside
	}
	if c, ok := tree.locate(pt); ok {
		return c
	}
	return windingContainment(p.edges, pt, p.unbounded)
}

// windingContainment classifies pt by the winding number of the edges. For
// an unbounded region, points of winding number zero are inside.
func windingContainment(edges []Edge2, pt rational.Vec2, unbounded bool) Containment {
	winding := 0
	for _, e := range edges {
		if e.contains(pt) {
			return OnBoundary
		}
		side := e.Dir().Cross(pt.Sub(e.A)).Sign()
		switch {
		case e.A.Y.Cmp(pt.Y) <= 0 && pt.Y.Cmp(e.B.Y) < 0 && side > 0:
			winding++
		case e.B.Y.Cmp(pt.Y) <= 0 && pt.Y.Cmp(e.A.Y) < 0 && side < 0:
			winding--
		}
	}
	if unbounded {
		winding++
	}
	if winding > 0 {
		return Inside
	}
	return Outside
}

// Loops chains the edges into closed vertex loops, merging consecutive
// collinear edges.
func (p *Polygon2) Loops() [][]rational.Vec2 {
	outgoing := make(map[string][]int, len(p.edges))
	for i, e := range p.edges {
		k := e.A.String()
		outgoing[k] = append(outgoing[k], i)
	}
	used := make([]bool, len(p.edges))
	next := func(at rational.Vec2) int {
		for _, i := range outgoing[at.String()] {
			if !used[i] {
				return i
			}
		}
		return -1
	}

	var loops [][]rational.Vec2
	for i := range p.edges {
		if used[i] {
			continue
		}
		start := p.edges[i].A
		var loop []rational.Vec2
		for cur := i; cur >= 0; {
			used[cur] = true
			loop = append(loop, p.edges[cur].A)
			if p.edges[cur].B.Equal(start) {
				break
			}
			cur = next(p.edges[cur].B)
		}
		if loop = mergeCollinear(loop); len(loop) >= 3 {
			loops = append(loops, loop)
		}
	}
	return loops
}

// mergeCollinear drops vertices where the loop continues straight on.
func mergeCollinear(loop []rational.Vec2) []rational.Vec2 {
	for changed := true; changed && len(loop) >= 3; {
		changed = false
		for i := 0; i < len(loop); i++ {
			prev := loop[(i+len(loop)-1)%len(loop)]
			next := loop[(i+1)%len(loop)]
			in, out := loop[i].Sub(prev), next.Sub(loop[i])
			if in.Cross(out).IsZero() && in.Dot(out).Sign() > 0 {
				loop = append(loop[:i], loop[i+1:]...)
				changed = true
				break
			}
		}
	}
	return loop
}

// LoopsFloat64 returns Loops rounded to float64.
func (p *Polygon2) LoopsFloat64() [][]mgl64.Vec2 {
	loops := p.Loops()
	out := make([][]mgl64.Vec2, len(loops))
	for i, loop := range loops {
		out[i] = make([]mgl64.Vec2, len(loop))
		for j, v := range loop {
			out[i][j] = v.Float64()
		}
	}
	return out
}
