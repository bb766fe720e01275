package rational

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumberArithmetic(t *testing.T) {
	third := FromFrac(1, 3)
	sum := third.Add(third).Add(third)
	assert.True(t, sum.Equal(FromInt(1)))
	assert.Equal(t, "1", sum.String())

	// 0.1 is not representable, so 0.1+0.2 != 0.3 exactly, as in float64.
	a := FromFloat64(0.1).Add(FromFloat64(0.2))
	assert.False(t, a.Equal(FromFloat64(0.3)))

	assert.Equal(t, "-7/6", FromFrac(1, 2).Sub(FromFrac(5, 3)).String())
	assert.Equal(t, "10/9", FromFrac(2, 3).Mul(FromFrac(5, 3)).String())
	assert.Equal(t, "2/5", FromFrac(2, 3).Div(FromFrac(5, 3)).String())
	assert.Equal(t, 1, FromFrac(-2, 3).Abs().Sign())
	assert.Equal(t, -1, FromFrac(2, 3).Neg().Sign())

	var zero Number
	assert.True(t, zero.IsZero())
	assert.Equal(t, "0", zero.String())
	assert.Equal(t, "3/4", zero.Add(FromFrac(3, 4)).String())
}

func TestNumberPanics(t *testing.T) {
	assert.Panics(t, func() { FromFloat64(math.NaN()) })
	assert.Panics(t, func() { FromFloat64(math.Inf(1)) })
	assert.Panics(t, func() { FromInt(1).Div(Number{}) })
	assert.Panics(t, func() { FromFrac(1, 0) })
}

func TestParse(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{"3", "3"},
		{"-1/3", "-1/3"},
		{"0.25", "1/4"},
		{"1e-3", "1/1000"},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			n, err := Parse(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, n.String())
		})
	}

	_, err := Parse("one")
	assert.Error(t, err)
}

func TestTextRoundTrip(t *testing.T) {
	var n Number
	require.NoError(t, n.UnmarshalText([]byte("22/7")))
	b, err := n.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "22/7", string(b))
	assert.Error(t, n.UnmarshalText([]byte("x")))
}

func TestFloat64(t *testing.T) {
	f, exact := FromFloat64(0.1).Float64()
	assert.True(t, exact)
	assert.Equal(t, 0.1, f)

	f, exact = FromFrac(1, 3).Float64()
	assert.False(t, exact)
	assert.InDelta(t, 1.0/3.0, f, 1e-16)

	assert.Equal(t, 2.5, Max(FromFrac(5, 2), FromInt(-1)).F())
	assert.Equal(t, -1.0, Min(FromFrac(5, 2), FromInt(-1)).F())
}

func TestVec(t *testing.T) {
	a := V2(mgl64.Vec2{1, 2})
	b := V2(mgl64.Vec2{3, -1})
	assert.Equal(t, "-7", a.Cross(b).String())
	assert.Equal(t, "1", a.Dot(b).String())
	assert.True(t, a.Perp().Equal(Vec2{FromInt(-2), FromInt(1)}))
	assert.True(t, a.Less(b))
	assert.False(t, b.Less(a))
	assert.Equal(t, mgl64.Vec2{4, 1}, a.Add(b).Float64())

	x := V3(mgl64.Vec3{1, 0, 0})
	y := V3(mgl64.Vec3{0, 1, 0})
	assert.True(t, x.Cross(y).Equal(V3(mgl64.Vec3{0, 0, 1})))
	assert.True(t, x.Dot(y).IsZero())
	assert.Equal(t, mgl64.Vec3{2, 2, 0}, x.Add(y).Scale(FromInt(2)).Float64())
}

func TestIntervalEnclosesExactResult(t *testing.T) {
	a := Point(0.1)
	b := Point(0.2)
	sum := a.Add(b)
	exact := FromFloat64(0.1).Add(FromFloat64(0.2))
	assert.True(t, FromFloat64(sum.Lo).Cmp(exact) <= 0)
	assert.True(t, FromFloat64(sum.Hi).Cmp(exact) >= 0)

	prod := Point(1.0 / 3.0).Mul(Point(3))
	assert.True(t, prod.Contains(1))

	diff := Point(1).Sub(Point(1))
	_, certain := diff.Sign()
	assert.False(t, certain, "widened zero must defer to exact arithmetic")

	s, certain := Interval{Lo: 1, Hi: 2}.Sign()
	assert.True(t, certain)
	assert.Equal(t, 1, s)

	s, certain = Interval{Lo: -2, Hi: -1}.Sign()
	assert.True(t, certain)
	assert.Equal(t, -1, s)

	_, certain = Interval{Lo: math.NaN(), Hi: 1}.Sign()
	assert.False(t, certain)
}
