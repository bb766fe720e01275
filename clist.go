package gosiegeom

// clist is a circular doubly linked list of polygon vertex indices. Nodes and
// vertex indices differ because bridging a hole into the outer boundary
// visits two vertices twice.
type clist struct {
	vert  []int
	prev  []int
	next  []int
	alive []bool
	count int
}

func newClist(size int) *clist {
	return &clist{
		vert:  make([]int, 0, size),
		prev:  make([]int, 0, size),
		next:  make([]int, 0, size),
		alive: make([]bool, 0, size),
	}
}

// add inserts vertex v after node after (or as the only node when the list
// is empty) and returns the new node.
func (c *clist) add(v, after int) int {
	n := len(c.vert)
	c.vert = append(c.vert, v)
	c.alive = append(c.alive, true)
	if c.count == 0 {
		c.prev = append(c.prev, n)
		c.next = append(c.next, n)
	} else {
		nx := c.next[after]
		c.prev = append(c.prev, after)
		c.next = append(c.next, nx)
		c.next[after] = n
		c.prev[nx] = n
	}
	c.count++
	return n
}

// insertAfter adds verts in order after node after and returns the last
// node added.
func (c *clist) insertAfter(after int, verts []int) int {
	for _, v := range verts {
		after = c.add(v, after)
	}
	return after
}

func (c *clist) remove(n int) {
	p, nx := c.prev[n], c.next[n]
	c.next[p] = nx
	c.prev[nx] = p
	c.alive[n] = false
	c.count--
}

// each calls fn for every live node starting at start.
func (c *clist) each(start int, fn func(n int)) {
	n := start
	for k := 0; k < c.count; k++ {
		fn(n)
		n = c.next[n]
	}
}
