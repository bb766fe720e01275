package gosiegeom

import (
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hasEdge(edges [][2]int, i, j int) bool {
	e := edgeKey(i, j)
	for _, f := range edges {
		if f == e {
			return true
		}
	}
	return false
}

func TestInsertConstraintFlipsDiagonal(t *testing.T) {
	// a flat rhombus: the Delaunay diagonal is the short one, 1-3
	points := []mgl64.Vec2{{0, 0}, {4, -1}, {8, 0}, {4, 1}}
	d, err := NewDelaunay2(points)
	require.NoError(t, err)
	require.True(t, hasEdge(d.Edges(), 1, 3))

	require.NoError(t, d.InsertConstraint(2, 0))
	assert.True(t, hasEdge(d.Edges(), 0, 2))
	assert.False(t, hasEdge(d.Edges(), 1, 3))
	assert.True(t, d.IsConstrained(0, 2))
	assert.True(t, d.IsConstrained(2, 0))
	assert.False(t, d.IsConstrained(0, 1))
	assert.Equal(t, [][2]int{{0, 2}}, d.Constraints())
	assert.Len(t, d.Triangles(), 2)
	assertTriangulation(t, d)

	err = d.InsertConstraint(1, 3)
	assert.ErrorIs(t, err, ErrConstraintCrossing)
}

func TestInsertConstraintThroughVertex(t *testing.T) {
	points := []mgl64.Vec2{{0, 0}, {2, 0}, {4, 0}, {2, 3}, {2, -3}}
	d, err := NewDelaunay2(points)
	require.NoError(t, err)

	require.NoError(t, d.InsertConstraint(0, 2))
	assert.Equal(t, [][2]int{{0, 1}, {1, 2}}, d.Constraints())
	assert.False(t, d.IsConstrained(0, 2))
	assertTriangulation(t, d)
}

func TestInsertConstraintErrors(t *testing.T) {
	d, err := NewDelaunay2([]mgl64.Vec2{{0, 0}, {1, 0}, {0, 1}, {0, 0}})
	require.NoError(t, err)

	assert.ErrorIs(t, d.InsertConstraint(0, 7), ErrIndexRange)
	assert.ErrorIs(t, d.InsertConstraint(-1, 1), ErrIndexRange)
	assert.NoError(t, d.InsertConstraint(0, 3), "coincident endpoints")
	assert.Empty(t, d.Constraints())

	require.NoError(t, d.InsertConstraint(3, 1))
	assert.True(t, d.IsConstrained(0, 1))

	line, err := NewDelaunay2([]mgl64.Vec2{{0, 0}, {1, 1}, {2, 2}})
	require.NoError(t, err)
	assert.ErrorIs(t, line.InsertConstraint(0, 2), ErrDegenerate)
}

func TestInsertConstraintRandom(t *testing.T) {
	points := randomGridPoints(9, 150, 40)
	d, err := NewDelaunay2(points, WithShuffle(4))
	require.NoError(t, err)
	before := len(d.Triangles())

	// a zigzag of disjoint segments between the lexicographically ordered
	// points never crosses itself
	order := make([]int, len(points))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return lexLess(points[order[a]], points[order[b]]) })
	var inserted [][2]int
	for i := 0; i+1 < len(order); i += 7 {
		a, b := order[i], order[i+1]
		if points[a] == points[b] {
			continue
		}
		require.NoError(t, d.InsertConstraint(a, b))
		inserted = append(inserted, [2]int{a, b})
	}

	assert.Len(t, d.Triangles(), before)
	assertTriangulation(t, d)
	assertEmptyCircles(t, d)
	for _, c := range inserted {
		a, b := d.Duplicates()[c[0]], d.Duplicates()[c[1]]
		// the segment is covered by constrained edges, possibly split at
		// collinear vertices
		covered := d.IsConstrained(a, b)
		for _, e := range d.Constraints() {
			if e[0] == a || e[1] == a {
				covered = true
			}
		}
		assert.True(t, covered, "constraint %v missing", c)
	}
}

func sumArea(points []mgl64.Vec2, tris [][3]int) float64 {
	var area float64
	for _, tri := range tris {
		area += triangleArea(points, tri)
	}
	return area
}

func TestTriangulatePolygon(t *testing.T) {
	testCases := []struct {
		name  string
		outer []mgl64.Vec2
		holes [][]mgl64.Vec2
		area  float64
		count int
	}{
		{
			name:  "convex square",
			outer: []mgl64.Vec2{{0, 0}, {4, 0}, {4, 4}, {0, 4}},
			area:  16,
			count: 2,
		},
		{
			name:  "clockwise L shape",
			outer: []mgl64.Vec2{{0, 0}, {0, 2}, {1, 2}, {1, 1}, {2, 1}, {2, 0}},
			area:  3,
			count: 4,
		},
		{
			name:  "square with square hole",
			outer: []mgl64.Vec2{{0, 0}, {4, 0}, {4, 4}, {0, 4}},
			holes: [][]mgl64.Vec2{{{1, 1}, {3, 1}, {3, 3}, {1, 3}}},
			area:  12,
			count: 8,
		},
		{
			name:  "two holes",
			outer: []mgl64.Vec2{{0, 0}, {10, 0}, {10, 4}, {0, 4}},
			holes: [][]mgl64.Vec2{
				{{1, 1}, {1, 3}, {3, 3}, {3, 1}},
				{{6, 1}, {8, 2}, {6, 3}},
			},
			area:  40 - 4 - 2,
			count: 11 + 2*2 - 2,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			pt, err := TriangulatePolygon(tc.outer, tc.holes)
			require.NoError(t, err)
			assert.Len(t, pt.Triangles, tc.count)
			assert.InDelta(t, tc.area, sumArea(pt.Points, pt.Triangles), 1e-9)

			for _, tri := range pt.Triangles {
				a, b, c := pt.Points[tri[0]], pt.Points[tri[1]], pt.Points[tri[2]]
				centroid := a.Add(b).Add(c).Mul(1.0 / 3)
				assert.Equal(t, Inside, PointInPolygon2(centroid, tc.outer))
				for _, hole := range tc.holes {
					assert.Equal(t, Outside, PointInPolygon2(centroid, hole))
				}
			}
			assertTriangulation(t, pt.Delaunay)
			assertEmptyCircles(t, pt.Delaunay)
		})
	}
}

func TestTriangulatePolygonStar(t *testing.T) {
	rnd := rand.New(rand.NewSource(21))
	const n = 40
	outer := make([]mgl64.Vec2, n)
	for i := range outer {
		angle := 2 * math.Pi * float64(i) / n
		r := 1 + rnd.Float64()
		outer[i] = VectorFromAngle(angle).Mul(r)
	}
	pt, err := TriangulatePolygon(outer, nil, WithShuffle(8))
	require.NoError(t, err)
	assert.Len(t, pt.Triangles, n-2)
	assert.InDelta(t, SignedArea2(outer), sumArea(pt.Points, pt.Triangles), 1e-9)
}

func TestTriangulatePolygonErrors(t *testing.T) {
	_, err := TriangulatePolygon([]mgl64.Vec2{{0, 0}, {1, 0}}, nil)
	assert.ErrorIs(t, err, ErrDegenerate)

	_, err = TriangulatePolygon([]mgl64.Vec2{{0, 0}, {1, 1}, {2, 2}}, nil)
	assert.ErrorIs(t, err, ErrDegenerate)

	_, err = TriangulatePolygon([]mgl64.Vec2{{0, 0}, {4, 0}, {4, 4}, {0, 4}}, [][]mgl64.Vec2{{{1, 1}, {2, 2}}})
	assert.ErrorIs(t, err, ErrDegenerate)

	// the hole edge crosses the outer boundary
	_, err = TriangulatePolygon(
		[]mgl64.Vec2{{0, 0}, {4, 0}, {4, 4}, {0, 4}},
		[][]mgl64.Vec2{{{1, 1}, {6, 2}, {1, 3}}},
	)
	assert.ErrorIs(t, err, ErrConstraintCrossing)
}
