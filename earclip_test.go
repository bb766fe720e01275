package gosiegeom

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func concatLoops(outer []mgl64.Vec2, holes [][]mgl64.Vec2) []mgl64.Vec2 {
	points := append([]mgl64.Vec2(nil), outer...)
	for _, h := range holes {
		points = append(points, h...)
	}
	return points
}

func TestTriangulateEC(t *testing.T) {
	testCases := []struct {
		name  string
		outer []mgl64.Vec2
		holes [][]mgl64.Vec2
		area  float64
		count int
	}{
		{
			name:  "triangle",
			outer: []mgl64.Vec2{{0, 0}, {1, 0}, {0, 1}},
			area:  0.5,
			count: 1,
		},
		{
			name:  "clockwise L shape",
			outer: []mgl64.Vec2{{0, 0}, {0, 2}, {1, 2}, {1, 1}, {2, 1}, {2, 0}},
			area:  3,
			count: 4,
		},
		{
			name:  "square with hole",
			outer: []mgl64.Vec2{{0, 0}, {10, 0}, {10, 10}, {0, 10}},
			holes: [][]mgl64.Vec2{{{3, 3}, {3, 6}, {6, 6}, {6, 3}}},
			area:  91,
			count: 8,
		},
		{
			name:  "three holes in a clockwise square",
			outer: []mgl64.Vec2{{0, 10}, {10, 10}, {10, 0}, {0, 0}},
			holes: [][]mgl64.Vec2{
				{{1, 1}, {2, 1}, {2, 2}, {1, 2}},
				{{5, 5}, {8, 5}, {8, 8}, {5, 8}},
				{{5, 1}, {6, 1}, {6, 2}},
			},
			area:  100 - 1 - 9 - 0.5,
			count: 15 + 2*3 - 2,
		},
		{
			name:  "bridge blocked by a reflex vertex",
			outer: []mgl64.Vec2{{0, 0}, {10, 0}, {10, 10}, {7, 10}, {7, 6}, {6, 10}, {0, 10}},
			holes: [][]mgl64.Vec2{{{1, 4}, {2, 5}, {1, 6}}},
			area:  97,
			count: 10,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tris, err := TriangulateEC(tc.outer, tc.holes)
			require.NoError(t, err)
			points := concatLoops(tc.outer, tc.holes)
			assert.Len(t, tris, tc.count)
			assert.InDelta(t, tc.area, sumArea(points, tris), 1e-9)
			for _, tri := range tris {
				assert.Equal(t, 1, Orient2(points[tri[0]], points[tri[1]], points[tri[2]]), "triangle %v", tri)
			}
		})
	}
}

func TestTriangulateECBridgesToVisibleVertex(t *testing.T) {
	outer := []mgl64.Vec2{{0, 0}, {10, 0}, {10, 10}, {7, 10}, {7, 6}, {6, 10}, {0, 10}}
	holes := [][]mgl64.Vec2{{{1, 4}, {2, 5}, {1, 6}}}
	tris, err := TriangulateEC(outer, holes)
	require.NoError(t, err)

	// the hole's rightmost vertex (2, 5) is index 8; the ray from it hits
	// the right wall, but the reflex vertex (7, 6) hides (10, 10)
	bridged := false
	for _, tri := range tris {
		has4, has8 := false, false
		for _, v := range tri {
			has4 = has4 || v == 4
			has8 = has8 || v == 8
		}
		bridged = bridged || (has4 && has8)
	}
	assert.True(t, bridged)
}

func TestTriangulateECCollinearVertices(t *testing.T) {
	outer := []mgl64.Vec2{{0, 0}, {2, 0}, {4, 0}, {4, 4}, {0, 4}}
	tris, err := TriangulateEC(outer, nil)
	require.NoError(t, err)
	assert.InDelta(t, 16, sumArea(outer, tris), 1e-12)
	for _, tri := range tris {
		assert.Equal(t, 1, Orient2(outer[tri[0]], outer[tri[1]], outer[tri[2]]))
	}
}

func TestTriangulateECStar(t *testing.T) {
	rnd := rand.New(rand.NewSource(17))
	for trial := 0; trial < 20; trial++ {
		n := 5 + rnd.Intn(40)
		outer := make([]mgl64.Vec2, n)
		for i := range outer {
			angle := 2 * math.Pi * float64(i) / float64(n)
			outer[i] = VectorFromAngle(angle).Mul(0.5 + rnd.Float64())
		}
		tris, err := TriangulateEC(outer, nil)
		require.NoError(t, err)
		assert.Len(t, tris, n-2)
		assert.InDelta(t, SignedArea2(outer), sumArea(outer, tris), 1e-9)
	}
}

func TestTriangulateECErrors(t *testing.T) {
	square := []mgl64.Vec2{{0, 0}, {4, 0}, {4, 4}, {0, 4}}
	testCases := []struct {
		name  string
		outer []mgl64.Vec2
		holes [][]mgl64.Vec2
		err   error
	}{
		{"too few vertices", []mgl64.Vec2{{0, 0}, {1, 1}}, nil, ErrDegenerate},
		{"zero area", []mgl64.Vec2{{0, 0}, {1, 1}, {2, 2}}, nil, ErrDegenerate},
		{"short hole", square, [][]mgl64.Vec2{{{1, 1}, {2, 2}}}, ErrDegenerate},
		{"hole outside", square, [][]mgl64.Vec2{{{5, 1}, {6, 1}, {6, 2}}}, ErrDegenerate},
		{"non-finite", []mgl64.Vec2{{0, 0}, {1, math.NaN()}, {0, 1}}, nil, ErrNonFinite},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := TriangulateEC(tc.outer, tc.holes)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}
