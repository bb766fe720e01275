package gosiegeom

// maxSplitterCandidates bounds how many edges are scored when choosing a
// splitting line; the tree stays correct with any choice.
const maxSplitterCandidates = 32

type edgeStore struct {
	edges []Edge2
}

func newEdgeStore() *edgeStore {
	return &edgeStore{edges: make([]Edge2, 0, 10)}
}

func (es *edgeStore) AddEdge(e Edge2) {
	if e.Degenerate() {
		return
	}
	es.edges = append(es.edges, e)
}

func (es *edgeStore) GetEdge(i int) Edge2 {
	return es.edges[i]
}

func (es *edgeStore) EdgeCount() int {
	return len(es.edges)
}

func (es *edgeStore) RemoveEdgeAt(i int) Edge2 {
	e := es.edges[i]
	es.edges = append(es.edges[:i], es.edges[i+1:]...)
	return e
}

// chooseSplitter removes and returns the candidate edge whose line splits
// the fewest other edges.
func (es *edgeStore) chooseSplitter() Edge2 {
	least, leastTotal := 0, es.EdgeCount()
	candidates := min(es.EdgeCount(), maxSplitterCandidates)

	for chosen := 0; chosen < candidates; chosen++ {
		total := 0
		l := newLine2(es.GetEdge(chosen))
		for i := 0; i < es.EdgeCount(); i++ {
			if i == chosen {
				continue
			}
			if l.EdgeIntersect(es.GetEdge(i)) {
				total++
			}
		}
		if total < leastTotal {
			leastTotal = total
			least = chosen
			if total == 0 {
				break
			}
		}
	}
	return es.RemoveEdgeAt(least)
}
