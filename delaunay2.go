package gosiegeom

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// ghost is the symbolic vertex at infinity. Every hull edge a->b has a ghost
// triangle (b, a, ghost) on its outer side, so the triangulation is closed
// and insertion outside the hull needs no bounding super-triangle.
const ghost = -1

// tri is a triangle of the working mesh. adj[i] is the triangle across the
// edge v[i]->v[(i+1)%3]. Ghost triangles keep the ghost vertex in v[2].
type tri struct {
	v    [3]int
	adj  [3]int
	dead bool
}

func (t *tri) isGhost() bool {
	return t.v[2] == ghost
}

// slot returns i such that the directed edge v[i]->v[i+1] is a->b, or -1.
func (t *tri) slot(a, b int) int {
	for i := 0; i < 3; i++ {
		if t.v[i] == a && t.v[(i+1)%3] == b {
			return i
		}
	}
	return -1
}

func (t *tri) index(a int) int {
	for i := 0; i < 3; i++ {
		if t.v[i] == a {
			return i
		}
	}
	return -1
}

// Delaunay2 is an incremental Delaunay triangulation of a planar point set.
// It also serves as the mesh for constrained triangulation, see
// InsertConstraint.
type Delaunay2 struct {
	points      []mgl64.Vec2
	k           kernel
	tris        []tri
	vertTri     []int
	duplicates  []int
	vertices    []int
	dimension   int
	last        int
	constraints map[[2]int]struct{}
}

// NewDelaunay2 triangulates points with Bowyer-Watson insertion. Points are
// inserted in input order unless WithShuffle is given. Input that does not
// span the plane is not an error; check Dimension.
func NewDelaunay2(points []mgl64.Vec2, opts ...Option) (*Delaunay2, error) {
	if len(points) == 0 {
		return nil, ErrNoPoints
	}
	if err := checkFinite2(points); err != nil {
		return nil, fmt.Errorf("delaunay: %w", err)
	}
	o := applyOptions(opts)
	d := &Delaunay2{
		points:      points,
		k:           newKernel(o),
		vertTri:     make([]int, len(points)),
		duplicates:  make([]int, len(points)),
		constraints: make(map[[2]int]struct{}),
		last:        -1,
	}

	pointIndex := make(map[mgl64.Vec2]int, len(points))
	for i, p := range points {
		d.vertTri[i] = -1
		if first, found := pointIndex[p]; found {
			d.duplicates[i] = first
			continue
		}
		pointIndex[p] = i
		d.duplicates[i] = i
		d.vertices = append(d.vertices, i)
	}

	order := append([]int(nil), d.vertices...)
	if o.shuffle {
		rnd := rand.New(rand.NewSource(o.seed))
		rnd.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
	}

	if !d.seed(order) {
		Logger().Debug("delaunay: input does not span the plane",
			"points", len(points), "dimension", d.dimension)
		return d, nil
	}
	for _, i := range order {
		if d.vertTri[i] >= 0 {
			continue
		}
		d.insert(i)
	}
	Logger().Debug("delaunay: triangulated",
		"points", len(points), "vertices", len(d.vertices), "triangles", len(d.Triangles()))
	return d, nil
}

// seed builds the first triangle and its three ghosts from the first
// non-collinear triple in order. It reports false when there is none.
func (d *Delaunay2) seed(order []int) bool {
	if len(order) < 3 {
		d.dimension = len(order) - 1
		return false
	}
	a, b, c := order[0], order[1], -1
	for _, i := range order[2:] {
		if d.k.orient2(d.points[a], d.points[b], d.points[i]) != 0 {
			c = i
			break
		}
	}
	if c < 0 {
		d.dimension = 1
		return false
	}
	d.dimension = 2
	if d.k.orient2(d.points[a], d.points[b], d.points[c]) < 0 {
		b, c = c, b
	}
	created := []int{
		d.newTri(a, b, c),
		d.newTri(b, a, ghost),
		d.newTri(c, b, ghost),
		d.newTri(a, c, ghost),
	}
	d.stitch(created, nil)
	d.last = created[0]
	return true
}

// newTri appends a triangle, rotating a ghost vertex into the last slot.
func (d *Delaunay2) newTri(a, b, c int) int {
	switch {
	case a == ghost:
		a, b, c = b, c, a
	case b == ghost:
		a, b, c = c, a, b
	}
	d.tris = append(d.tris, tri{v: [3]int{a, b, c}, adj: [3]int{-1, -1, -1}})
	return len(d.tris) - 1
}

// stitch links the adjacency of freshly created triangles. Edges shared by
// two new triangles are linked to each other; every other edge must appear
// in outside, which maps a directed edge of a new triangle to the surviving
// triangle across it.
func (d *Delaunay2) stitch(created []int, outside map[[2]int]int) {
	edges := make(map[[2]int]int, 3*len(created))
	for _, t := range created {
		v := d.tris[t].v
		for i := 0; i < 3; i++ {
			edges[[2]int{v[i], v[(i+1)%3]}] = t
		}
	}
	for _, t := range created {
		v := d.tris[t].v
		for i := 0; i < 3; i++ {
			a, b := v[i], v[(i+1)%3]
			if n, ok := edges[[2]int{b, a}]; ok {
				d.tris[t].adj[i] = n
				continue
			}
			n, ok := outside[[2]int{a, b}]
			if !ok {
				panic(fmt.Sprintf("delaunay: unlinked edge %d->%d", a, b))
			}
			d.tris[t].adj[i] = n
			d.tris[n].adj[d.tris[n].slot(b, a)] = t
		}
		for _, x := range v {
			if x != ghost {
				d.vertTri[x] = t
			}
		}
	}
}

// conflicts reports whether p invalidates triangle t. A real triangle
// conflicts when p is strictly inside its circumcircle, a ghost when p is
// strictly outside its hull edge or on the open edge.
func (d *Delaunay2) conflicts(t int, p mgl64.Vec2) bool {
	v := d.tris[t].v
	a, b := d.points[v[0]], d.points[v[1]]
	if v[2] == ghost {
		o := d.k.orient2(a, b, p)
		return o > 0 || (o == 0 && strictlyBetween(a, b, p))
	}
	return d.k.inCircle(a, b, d.points[v[2]], p) > 0
}

// walk steps from the last created triangle towards p and returns the real
// triangle containing it, or the ghost entered when p is outside the hull.
// found is false when the step budget runs out.
func (d *Delaunay2) walk(p mgl64.Vec2) (t int, found bool) {
	t = d.last
	limit := 4*len(d.tris) + 16
	for step := 0; step < limit; step++ {
		cur := &d.tris[t]
		if cur.isGhost() {
			return t, true
		}
		moved := false
		// rotating the first edge tried keeps the walk from cycling
		for e := 0; e < 3; e++ {
			i := (e + step) % 3
			if d.k.orient2(d.points[cur.v[i]], d.points[cur.v[(i+1)%3]], p) < 0 {
				t = cur.adj[i]
				moved = true
				break
			}
		}
		if !moved {
			return t, true
		}
	}
	return -1, false
}

func (d *Delaunay2) locateConflict(p mgl64.Vec2) int {
	if t, ok := d.walk(p); ok && d.conflicts(t, p) {
		return t
	}
	Logger().Warn("delaunay: walk failed, scanning all triangles", "point", p)
	for t := range d.tris {
		if !d.tris[t].dead && d.conflicts(t, p) {
			return t
		}
	}
	panic(fmt.Sprintf("delaunay: no triangle conflicts with %v", p))
}

// insert adds vertex i by carving the conflict cavity and fanning it from i.
func (d *Delaunay2) insert(i int) {
	p := d.points[i]
	start := d.locateConflict(p)

	cavity := map[int]struct{}{start: {}}
	stack := []int{start}
	for len(stack) > 0 {
		t := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, n := range d.tris[t].adj {
			if _, in := cavity[n]; in {
				continue
			}
			if d.conflicts(n, p) {
				cavity[n] = struct{}{}
				stack = append(stack, n)
			}
		}
	}

	outside := make(map[[2]int]int)
	var boundary [][2]int
	for t := range cavity {
		cur := &d.tris[t]
		for e := 0; e < 3; e++ {
			if _, in := cavity[cur.adj[e]]; in {
				continue
			}
			edge := [2]int{cur.v[e], cur.v[(e+1)%3]}
			outside[edge] = cur.adj[e]
			boundary = append(boundary, edge)
		}
		cur.dead = true
	}
	// map iteration order is random; sorting keeps triangle ids reproducible
	sort.Slice(boundary, func(a, b int) bool {
		if boundary[a][0] != boundary[b][0] {
			return boundary[a][0] < boundary[b][0]
		}
		return boundary[a][1] < boundary[b][1]
	})

	created := make([]int, 0, len(boundary))
	for _, e := range boundary {
		created = append(created, d.newTri(e[0], e[1], i))
	}
	d.stitch(created, outside)
	for _, t := range created {
		if !d.tris[t].isGhost() {
			d.last = t
		}
	}
}

// Dimension is 0 when all points coincide, 1 when they are collinear and 2
// when the triangulation has triangles.
func (d *Delaunay2) Dimension() int {
	return d.dimension
}

// Points returns the input points.
func (d *Delaunay2) Points() []mgl64.Vec2 {
	return d.points
}

// Duplicates maps each input index to the index of the first input point
// with the same coordinates.
func (d *Delaunay2) Duplicates() []int {
	return append([]int(nil), d.duplicates...)
}

// live returns the ids of the real triangles and, for every internal id,
// its position in that list (-1 for ghosts and dead triangles).
func (d *Delaunay2) live() (ids []int, pos []int) {
	pos = make([]int, len(d.tris))
	for t := range d.tris {
		pos[t] = -1
		if d.tris[t].dead || d.tris[t].isGhost() {
			continue
		}
		pos[t] = len(ids)
		ids = append(ids, t)
	}
	return ids, pos
}

// Triangles returns the counterclockwise triangles as input indices.
func (d *Delaunay2) Triangles() [][3]int {
	ids, _ := d.live()
	out := make([][3]int, len(ids))
	for i, t := range ids {
		out[i] = d.tris[t].v
	}
	return out
}

// Adjacencies returns, for each triangle of Triangles, the triangle across
// edge (v[i], v[i+1]), or -1 across a hull edge.
func (d *Delaunay2) Adjacencies() [][3]int {
	ids, pos := d.live()
	out := make([][3]int, len(ids))
	for i, t := range ids {
		for e, n := range d.tris[t].adj {
			out[i][e] = pos[n]
		}
	}
	return out
}

// Edges returns every triangulation edge once, as (i, j) with i < j, sorted.
func (d *Delaunay2) Edges() [][2]int {
	seen := make(map[[2]int]struct{})
	var out [][2]int
	for _, t := range d.tris {
		if t.dead || t.isGhost() {
			continue
		}
		for i := 0; i < 3; i++ {
			e := edgeKey(t.v[i], t.v[(i+1)%3])
			if _, ok := seen[e]; ok {
				continue
			}
			seen[e] = struct{}{}
			out = append(out, e)
		}
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a][0] != out[b][0] {
			return out[a][0] < out[b][0]
		}
		return out[a][1] < out[b][1]
	})
	return out
}

func edgeKey(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}

// Hull returns the hull vertices counterclockwise, starting at the
// lexicographically smallest point. Vertices lying on a hull edge are
// included because they are triangulation vertices. For Dimension < 2 the
// extreme points are returned.
func (d *Delaunay2) Hull() []int {
	if d.dimension < 2 {
		return convexHull2(d.k, d.points, d.vertices).Indices
	}
	// ghost (a, b) sits on hull edge b->a, so hull successor of b is a
	next := make(map[int]int)
	start := -1
	for _, t := range d.tris {
		if t.dead || !t.isGhost() {
			continue
		}
		next[t.v[1]] = t.v[0]
		if start < 0 || lexLess(d.points[t.v[1]], d.points[start]) {
			start = t.v[1]
		}
	}
	hull := []int{start}
	for v := next[start]; v != start; v = next[v] {
		hull = append(hull, v)
	}
	return hull
}

// ContainingTriangle returns the index into Triangles of a triangle whose
// closed region contains p. ok is false when p is outside the hull.
func (d *Delaunay2) ContainingTriangle(p mgl64.Vec2) (index int, ok bool) {
	if d.dimension < 2 {
		return -1, false
	}
	_, pos := d.live()
	if t, found := d.walk(p); found {
		if d.tris[t].isGhost() {
			return -1, false
		}
		return pos[t], true
	}
	for t, cur := range d.tris {
		if cur.dead || cur.isGhost() {
			continue
		}
		v := cur.v
		if d.k.toTriangle(p, d.points[v[0]], d.points[v[1]], d.points[v[2]]) <= 0 {
			return pos[t], true
		}
	}
	return -1, false
}

// aroundVertex calls fn for every triangle, ghosts included, incident to
// vertex a, stopping early when fn returns false.
func (d *Delaunay2) aroundVertex(a int, fn func(t int) bool) {
	start := d.vertTri[a]
	if start < 0 {
		return
	}
	t := start
	for {
		if !fn(t) {
			return
		}
		k := d.tris[t].index(a)
		t = d.tris[t].adj[k]
		if t == start {
			return
		}
	}
}
