package gosiegeom

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/smasonuk/gosiegeom/rational"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlignedBoxes(t *testing.T) {
	b2, err := NewAlignedBox2([]mgl64.Vec2{{1, 5}, {-2, 3}, {4, 4}})
	require.NoError(t, err)
	assert.Equal(t, AlignedBox2{Min: mgl64.Vec2{-2, 3}, Max: mgl64.Vec2{4, 5}}, b2)
	assert.Equal(t, mgl64.Vec2{1, 4}, b2.Center())
	assert.Equal(t, mgl64.Vec2{3, 1}, b2.Extent())
	assert.True(t, b2.Contains(mgl64.Vec2{4, 3}))
	assert.False(t, b2.Contains(mgl64.Vec2{4.5, 3}))

	b3, err := NewAlignedBox3([]mgl64.Vec3{{0, 0, 0}, {1, 2, 3}, {-1, 0, 1}})
	require.NoError(t, err)
	assert.Equal(t, mgl64.Vec3{2, 2, 3}, b3.Size())
	assert.Equal(t, mgl64.Vec3{0, 1, 1.5}, b3.Center())
	assert.Equal(t, mgl64.Vec3{1, 1, 1.5}, b3.Extent())
	assert.True(t, b3.Contains(mgl64.Vec3{0, 1, 1}))
	assert.False(t, b3.Contains(mgl64.Vec3{0, 1, 4}))

	_, err = NewAlignedBox2(nil)
	assert.ErrorIs(t, err, ErrNoPoints)
	_, err = NewAlignedBox3([]mgl64.Vec3{{math.NaN(), 0, 0}})
	assert.ErrorIs(t, err, ErrNonFinite)
}

func TestOrientedBox2Vertices(t *testing.T) {
	b := OrientedBox2{Center: mgl64.Vec2{1, 1}, Axis: [2]mgl64.Vec2{{1, 0}, {0, 1}}, Extent: mgl64.Vec2{2, 1}}
	assert.Equal(t, [4]mgl64.Vec2{{-1, 0}, {3, 0}, {3, 2}, {-1, 2}}, b.Vertices())
	assert.Equal(t, 8.0, b.Area())
	assert.True(t, b.Contains(mgl64.Vec2{3, 2}))
	assert.False(t, b.Contains(mgl64.Vec2{3.1, 2}))
}

// boxAreaAt returns the area of the box aligned with direction angle.
func boxAreaAt(points []mgl64.Vec2, angle float64) float64 {
	u := VectorFromAngle(angle)
	v := Perp(u)
	minS, maxS := math.Inf(1), math.Inf(-1)
	minT, maxT := math.Inf(1), math.Inf(-1)
	for _, p := range points {
		s, t := p.Dot(u), p.Dot(v)
		minS, maxS = math.Min(minS, s), math.Max(maxS, s)
		minT, maxT = math.Min(minT, t), math.Max(maxT, t)
	}
	return (maxS - minS) * (maxT - minT)
}

func TestMinAreaBox2(t *testing.T) {
	testCases := []struct {
		name   string
		points []mgl64.Vec2
		area   float64
		center mgl64.Vec2
	}{
		{"square", []mgl64.Vec2{{0, 0}, {2, 0}, {2, 2}, {0, 2}, {1, 1}}, 4, mgl64.Vec2{1, 1}},
		{"diamond", []mgl64.Vec2{{1, 0}, {2, 1}, {1, 2}, {0, 1}}, 2, mgl64.Vec2{1, 1}},
		{"rectangle", []mgl64.Vec2{{0, 0}, {4, 0}, {4, 1}, {0, 1}, {2, 0}}, 4, mgl64.Vec2{2, 0.5}},
		{"single point", []mgl64.Vec2{{3, 3}, {3, 3}}, 0, mgl64.Vec2{3, 3}},
		{"segment", []mgl64.Vec2{{0, 0}, {6, 8}, {3, 4}}, 0, mgl64.Vec2{3, 4}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			box, err := MinAreaBox2(tc.points)
			require.NoError(t, err)
			assert.InDelta(t, tc.area, box.Area(), 1e-12)
			assert.InDelta(t, tc.center[0], box.Center[0], 1e-12)
			assert.InDelta(t, tc.center[1], box.Center[1], 1e-12)
			assert.InDelta(t, 0, box.Axis[0].Dot(box.Axis[1]), 1e-12)
			for _, p := range tc.points {
				assert.True(t, box.Contains(p), "%v outside %+v", p, box)
			}
		})
	}

	box, err := MinAreaBox2([]mgl64.Vec2{{0, 0}, {6, 8}})
	require.NoError(t, err)
	assert.InDelta(t, 5, box.Extent[0], 1e-12)
	assert.InDelta(t, 0.6, box.Axis[0][0], 1e-12)
}

func TestMinAreaBox2Random(t *testing.T) {
	rnd := rand.New(rand.NewSource(23))
	for trial := 0; trial < 10; trial++ {
		points := make([]mgl64.Vec2, 50)
		for i := range points {
			points[i] = mgl64.Vec2{rnd.NormFloat64() * 3, rnd.NormFloat64()}
			points[i] = Rotate2(points[i], float64(trial))
		}
		box, err := MinAreaBox2(points)
		require.NoError(t, err)
		for _, p := range points {
			assert.True(t, box.Contains(p))
		}
		for a := 0.0; a < math.Pi; a += 0.01 {
			assert.LessOrEqual(t, box.Area(), boxAreaAt(points, a)*(1+1e-9))
		}

		exact, err := MinAreaBox2(points, WithExactOnly())
		require.NoError(t, err)
		assert.Equal(t, box, exact)
	}
}

func TestMinAreaCircle2(t *testing.T) {
	testCases := []struct {
		name   string
		points []mgl64.Vec2
		center mgl64.Vec2
		radius float64
	}{
		{"single point", []mgl64.Vec2{{2, 3}}, mgl64.Vec2{2, 3}, 0},
		{"right triangle", []mgl64.Vec2{{0, 0}, {2, 0}, {1, 1}}, mgl64.Vec2{1, 0}, 1},
		{"obtuse triangle", []mgl64.Vec2{{0, 0}, {4, 0}, {2, 1}}, mgl64.Vec2{2, 0}, 2},
		{"acute triangle", []mgl64.Vec2{{0, 0}, {2, 0}, {1, 2}}, mgl64.Vec2{1, 0.75}, 1.25},
		{"collinear", []mgl64.Vec2{{1, 1}, {0, 0}, {3, 3}}, mgl64.Vec2{1.5, 1.5}, 1.5 * math.Sqrt2},
		{"square with duplicates", []mgl64.Vec2{{0, 0}, {2, 0}, {2, 2}, {0, 2}, {0, 0}, {1, 1}}, mgl64.Vec2{1, 1}, math.Sqrt2},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			for _, seed := range []int64{1, 2, 3} {
				c, err := MinAreaCircle2(tc.points, WithShuffle(seed))
				require.NoError(t, err)
				assert.InDelta(t, tc.center[0], c.Center[0], 1e-12)
				assert.InDelta(t, tc.center[1], c.Center[1], 1e-12)
				assert.InDelta(t, tc.radius, c.Radius, 1e-12)
			}
		})
	}

	_, err := MinAreaCircle2(nil)
	assert.ErrorIs(t, err, ErrNoPoints)
	_, err = MinAreaCircle2([]mgl64.Vec2{{0, math.Inf(1)}})
	assert.ErrorIs(t, err, ErrNonFinite)
}

// bruteForceCircle returns the smallest circle through two or three points
// that contains all points.
func bruteForceCircle(points []mgl64.Vec2) float64 {
	best := math.Inf(1)
	var candidates []exactCircle
	for i := range points {
		for j := i + 1; j < len(points); j++ {
			candidates = append(candidates, circleThrough(rational.V2(points[i]), rational.V2(points[j])))
			for k := j + 1; k < len(points); k++ {
				if Orient2(points[i], points[j], points[k]) != 0 {
					candidates = append(candidates, circleThrough(rational.V2(points[i]), rational.V2(points[j]), rational.V2(points[k])))
				}
			}
		}
	}
	for _, c := range candidates {
		ok := true
		for _, p := range points {
			if !c.contains(rational.V2(p)) {
				ok = false
				break
			}
		}
		if ok {
			best = math.Min(best, math.Sqrt(c.r2.F()))
		}
	}
	return best
}

func TestMinAreaCircle2Random(t *testing.T) {
	rnd := rand.New(rand.NewSource(29))
	for trial := 0; trial < 5; trial++ {
		points := make([]mgl64.Vec2, 15)
		for i := range points {
			points[i] = mgl64.Vec2{rnd.Float64() * 10, rnd.Float64() * 4}
		}
		c, err := MinAreaCircle2(points)
		require.NoError(t, err)
		for _, p := range points {
			assert.True(t, c.Contains(p))
		}
		assert.InDelta(t, bruteForceCircle(points), c.Radius, 1e-9)
	}
}

func TestMinVolumeSphere3(t *testing.T) {
	cube := []mgl64.Vec3{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0},
		{0, 0, 1}, {1, 0, 1}, {0, 1, 1}, {1, 1, 1},
	}
	testCases := []struct {
		name   string
		points []mgl64.Vec3
		center mgl64.Vec3
		radius float64
	}{
		{"single point", []mgl64.Vec3{{1, 2, 3}, {1, 2, 3}}, mgl64.Vec3{1, 2, 3}, 0},
		{"segment with interior point", []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {4, 0, 0}}, mgl64.Vec3{2, 0, 0}, 2},
		{"coplanar square", []mgl64.Vec3{{0, 0, 0}, {2, 0, 0}, {2, 2, 0}, {0, 2, 0}}, mgl64.Vec3{1, 1, 0}, math.Sqrt2},
		{"cube", cube, mgl64.Vec3{0.5, 0.5, 0.5}, math.Sqrt(3) / 2},
		{"tetrahedron", []mgl64.Vec3{{1, 1, 1}, {1, -1, -1}, {-1, 1, -1}, {-1, -1, 1}}, mgl64.Vec3{0, 0, 0}, math.Sqrt(3)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			for _, seed := range []int64{1, 5} {
				s, err := MinVolumeSphere3(tc.points, WithShuffle(seed))
				require.NoError(t, err)
				for i := 0; i < 3; i++ {
					assert.InDelta(t, tc.center[i], s.Center[i], 1e-12)
				}
				assert.InDelta(t, tc.radius, s.Radius, 1e-12)
			}
		})
	}

	_, err := MinVolumeSphere3(nil)
	assert.ErrorIs(t, err, ErrNoPoints)
}

func TestMinVolumeSphere3Random(t *testing.T) {
	rnd := rand.New(rand.NewSource(31))
	points := make([]mgl64.Vec3, 80)
	maxPair := 0.0
	for i := range points {
		points[i] = mgl64.Vec3{rnd.NormFloat64(), rnd.NormFloat64() * 2, rnd.NormFloat64()}
		for j := 0; j < i; j++ {
			maxPair = math.Max(maxPair, points[i].Sub(points[j]).Len())
		}
	}
	s, err := MinVolumeSphere3(points)
	require.NoError(t, err)
	for _, p := range points {
		assert.True(t, s.Contains(p))
	}
	box, err := NewAlignedBox3(points)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, s.Radius, maxPair/2-1e-12)
	assert.LessOrEqual(t, s.Radius, box.Extent().Len())

	other, err := MinVolumeSphere3(points, WithShuffle(99))
	require.NoError(t, err)
	assert.InDelta(t, s.Radius, other.Radius, 1e-12)
}

func TestBoundingCone3(t *testing.T) {
	points := []mgl64.Vec3{{1, 0, 1}, {0, 0, 2}, {0, 0.5, 3}, {0, 0, 0}}
	c, err := BoundingCone3(mgl64.Vec3{}, mgl64.Vec3{0, 0, 5}, points)
	require.NoError(t, err)
	assert.InDelta(t, math.Pi/4, c.Angle, 1e-12)
	assert.Equal(t, mgl64.Vec3{0, 0, 1}, c.Axis)
	assert.Equal(t, 1.0, c.MinHeight)
	assert.Equal(t, 3.0, c.MaxHeight)
	assert.InDelta(t, 2, c.RadiusAt(2), 1e-12)
	assert.InDelta(t, math.Sqrt2/2, c.Cos(), 1e-12)
	assert.InDelta(t, math.Sqrt2/2, c.Sin(), 1e-12)
	for _, p := range points[:3] {
		assert.True(t, c.Contains(p), "%v", p)
	}
	assert.False(t, c.Contains(mgl64.Vec3{2, 0, 1.5}))
	assert.False(t, c.Contains(mgl64.Vec3{0, 0, 4}))

	testCases := []struct {
		name   string
		axis   mgl64.Vec3
		points []mgl64.Vec3
		err    error
	}{
		{"no points", mgl64.Vec3{0, 0, 1}, nil, ErrNoPoints},
		{"zero axis", mgl64.Vec3{}, points, ErrDegenerate},
		{"point behind vertex", mgl64.Vec3{0, 0, 1}, []mgl64.Vec3{{1, 0, 1}, {0, 1, -1}}, ErrDegenerate},
		{"point on vertex plane", mgl64.Vec3{0, 0, 1}, []mgl64.Vec3{{1, 0, 0}}, ErrDegenerate},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := BoundingCone3(mgl64.Vec3{}, tc.axis, tc.points)
			assert.ErrorIs(t, err, tc.err)
		})
	}

	_, err = NewCone3(mgl64.Vec3{}, mgl64.Vec3{0, 0, 1}, math.Pi/2, 0, 1)
	assert.ErrorIs(t, err, ErrDegenerate)
}
