package gosiegeom

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// containsTolerance is the relative slack used by the float Contains methods
// of the bounding primitives, so a solver's own support points test inside
// after rounding.
const containsTolerance = 1e-9

// AlignedBox2 is an axis-aligned rectangle.
type AlignedBox2 struct {
	Min, Max mgl64.Vec2
}

// NewAlignedBox2 returns the smallest axis-aligned box holding points.
func NewAlignedBox2(points []mgl64.Vec2) (AlignedBox2, error) {
	if len(points) == 0 {
		return AlignedBox2{}, ErrNoPoints
	}
	if err := checkFinite2(points); err != nil {
		return AlignedBox2{}, fmt.Errorf("aligned box: %w", err)
	}
	b := AlignedBox2{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		for i := 0; i < 2; i++ {
			b.Min[i] = math.Min(b.Min[i], p[i])
			b.Max[i] = math.Max(b.Max[i], p[i])
		}
	}
	return b, nil
}

func (b AlignedBox2) Center() mgl64.Vec2 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Extent returns the half side lengths.
func (b AlignedBox2) Extent() mgl64.Vec2 {
	return b.Max.Sub(b.Min).Mul(0.5)
}

func (b AlignedBox2) Contains(p mgl64.Vec2) bool {
	return p[0] >= b.Min[0] && p[0] <= b.Max[0] && p[1] >= b.Min[1] && p[1] <= b.Max[1]
}

// AlignedBox3 is an axis-aligned box.
type AlignedBox3 struct {
	Min, Max mgl64.Vec3
}

// NewAlignedBox3 returns the smallest axis-aligned box holding points.
func NewAlignedBox3(points []mgl64.Vec3) (AlignedBox3, error) {
	if len(points) == 0 {
		return AlignedBox3{}, ErrNoPoints
	}
	if err := checkFinite3(points); err != nil {
		return AlignedBox3{}, fmt.Errorf("aligned box: %w", err)
	}
	b := AlignedBox3{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		for i := 0; i < 3; i++ {
			b.Min[i] = math.Min(b.Min[i], p[i])
			b.Max[i] = math.Max(b.Max[i], p[i])
		}
	}
	return b, nil
}

func (b AlignedBox3) Center() mgl64.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Extent returns the half side lengths.
func (b AlignedBox3) Extent() mgl64.Vec3 {
	return b.Max.Sub(b.Min).Mul(0.5)
}

// Size returns the side lengths along x, y and z.
func (b AlignedBox3) Size() mgl64.Vec3 {
	return b.Max.Sub(b.Min)
}

func (b AlignedBox3) Contains(p mgl64.Vec3) bool {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] || p[i] > b.Max[i] {
			return false
		}
	}
	return true
}

// OrientedBox2 is a rectangle with center, unit axes and half extents
// along each axis.
type OrientedBox2 struct {
	Center mgl64.Vec2
	Axis   [2]mgl64.Vec2
	Extent mgl64.Vec2
}

func (b OrientedBox2) Area() float64 {
	return 4 * b.Extent[0] * b.Extent[1]
}

// Vertices returns the corners counterclockwise when Axis[1] is Axis[0]
// turned a quarter counterclockwise.
func (b OrientedBox2) Vertices() [4]mgl64.Vec2 {
	u := b.Axis[0].Mul(b.Extent[0])
	v := b.Axis[1].Mul(b.Extent[1])
	return [4]mgl64.Vec2{
		b.Center.Sub(u).Sub(v),
		b.Center.Add(u).Sub(v),
		b.Center.Add(u).Add(v),
		b.Center.Sub(u).Add(v),
	}
}

func (b OrientedBox2) Contains(p mgl64.Vec2) bool {
	d := p.Sub(b.Center)
	for i := 0; i < 2; i++ {
		slack := containsTolerance * math.Max(1, b.Extent[i]+d.Len())
		if math.Abs(d.Dot(b.Axis[i])) > b.Extent[i]+slack {
			return false
		}
	}
	return true
}

type Circle2 struct {
	Center mgl64.Vec2
	Radius float64
}

func (c Circle2) Contains(p mgl64.Vec2) bool {
	return p.Sub(c.Center).Len() <= c.Radius+containsTolerance*math.Max(1, c.Radius)
}

func (c Circle2) Area() float64 {
	return math.Pi * c.Radius * c.Radius
}

type Sphere3 struct {
	Center mgl64.Vec3
	Radius float64
}

func (s Sphere3) Contains(p mgl64.Vec3) bool {
	return p.Sub(s.Center).Len() <= s.Radius+containsTolerance*math.Max(1, s.Radius)
}

func (s Sphere3) Volume() float64 {
	return 4 * math.Pi * s.Radius * s.Radius * s.Radius / 3
}

// Cone3 is a finite cone: the points whose angle to Axis seen from Vertex
// is at most Angle and whose height along Axis is in [MinHeight, MaxHeight].
type Cone3 struct {
	Vertex    mgl64.Vec3
	Axis      mgl64.Vec3
	Angle     float64
	MinHeight float64
	MaxHeight float64

	cos, sin, tan float64
}

// NewCone3 normalizes axis and caches the trigonometric values of angle,
// which must be in [0, pi/2).
func NewCone3(vertex, axis mgl64.Vec3, angle, minHeight, maxHeight float64) (Cone3, error) {
	if axis.Len() == 0 {
		return Cone3{}, fmt.Errorf("cone axis: %w", ErrDegenerate)
	}
	if angle < 0 || angle >= math.Pi/2 {
		return Cone3{}, fmt.Errorf("cone angle %v: %w", angle, ErrDegenerate)
	}
	return Cone3{
		Vertex:    vertex,
		Axis:      axis.Normalize(),
		Angle:     angle,
		MinHeight: minHeight,
		MaxHeight: maxHeight,
		cos:       math.Cos(angle),
		sin:       math.Sin(angle),
		tan:       math.Tan(angle),
	}, nil
}

func (c Cone3) Cos() float64 { return c.cos }
func (c Cone3) Sin() float64 { return c.sin }
func (c Cone3) Tan() float64 { return c.tan }

// RadiusAt returns the cone radius at height h along the axis.
func (c Cone3) RadiusAt(h float64) float64 {
	return h * c.tan
}

func (c Cone3) Contains(p mgl64.Vec3) bool {
	v := p.Sub(c.Vertex)
	h := v.Dot(c.Axis)
	slack := containsTolerance * math.Max(1, v.Len())
	if h < c.MinHeight-slack || h > c.MaxHeight+slack {
		return false
	}
	return h >= v.Len()*c.cos-slack
}

// BoundingCone3 returns the narrowest cone with the given vertex and axis
// that contains points. Its height range spans the points' heights. Points
// at the vertex are ignored; a point at or behind the vertex plane cannot
// be enclosed and yields ErrDegenerate.
func BoundingCone3(vertex, axis mgl64.Vec3, points []mgl64.Vec3) (Cone3, error) {
	if len(points) == 0 {
		return Cone3{}, ErrNoPoints
	}
	if err := checkFinite3(points); err != nil {
		return Cone3{}, fmt.Errorf("bounding cone: %w", err)
	}
	if axis.Len() == 0 {
		return Cone3{}, fmt.Errorf("bounding cone axis: %w", ErrDegenerate)
	}
	axis = axis.Normalize()

	angle := 0.0
	minH, maxH := math.Inf(1), math.Inf(-1)
	for i, p := range points {
		v := p.Sub(vertex)
		if v.Len() == 0 {
			continue
		}
		h := v.Dot(axis)
		if h <= 0 {
			return Cone3{}, fmt.Errorf("bounding cone: point %d behind vertex: %w", i, ErrDegenerate)
		}
		r := v.Sub(axis.Mul(h)).Len()
		angle = math.Max(angle, math.Atan2(r, h))
		minH = math.Min(minH, h)
		maxH = math.Max(maxH, h)
	}
	if math.IsInf(minH, 1) {
		minH, maxH = 0, 0
	}
	return NewCone3(vertex, axis, angle, minH, maxH)
}
