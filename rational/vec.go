package rational

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec2 is a point or vector with exact rational coordinates.
type Vec2 struct {
	X, Y Number
}

// V2 converts a float vector exactly. It panics on non-finite coordinates.
func V2(v mgl64.Vec2) Vec2 {
	return Vec2{X: FromFloat64(v[0]), Y: FromFloat64(v[1])}
}

func (a Vec2) Add(b Vec2) Vec2 { return Vec2{a.X.Add(b.X), a.Y.Add(b.Y)} }
func (a Vec2) Sub(b Vec2) Vec2 { return Vec2{a.X.Sub(b.X), a.Y.Sub(b.Y)} }

func (a Vec2) Scale(s Number) Vec2 { return Vec2{a.X.Mul(s), a.Y.Mul(s)} }

func (a Vec2) Dot(b Vec2) Number { return a.X.Mul(b.X).Add(a.Y.Mul(b.Y)) }

// Cross returns the z component of the 3D cross product of a and b.
func (a Vec2) Cross(b Vec2) Number { return a.X.Mul(b.Y).Sub(a.Y.Mul(b.X)) }

// Perp returns a rotated a quarter turn counterclockwise.
func (a Vec2) Perp() Vec2 { return Vec2{a.Y.Neg(), a.X} }

func (a Vec2) Equal(b Vec2) bool { return a.X.Equal(b.X) && a.Y.Equal(b.Y) }

// Less orders points lexicographically by X then Y.
func (a Vec2) Less(b Vec2) bool {
	if c := a.X.Cmp(b.X); c != 0 {
		return c < 0
	}
	return a.Y.Cmp(b.Y) < 0
}

// Float64 rounds a to the nearest float vector.
func (a Vec2) Float64() mgl64.Vec2 { return mgl64.Vec2{a.X.F(), a.Y.F()} }

func (a Vec2) String() string { return fmt.Sprintf("(%s, %s)", a.X, a.Y) }

// Vec3 is the three dimensional counterpart of Vec2.
type Vec3 struct {
	X, Y, Z Number
}

// V3 converts a float vector exactly. It panics on non-finite coordinates.
func V3(v mgl64.Vec3) Vec3 {
	return Vec3{X: FromFloat64(v[0]), Y: FromFloat64(v[1]), Z: FromFloat64(v[2])}
}

func (a Vec3) Add(b Vec3) Vec3 { return Vec3{a.X.Add(b.X), a.Y.Add(b.Y), a.Z.Add(b.Z)} }
func (a Vec3) Sub(b Vec3) Vec3 { return Vec3{a.X.Sub(b.X), a.Y.Sub(b.Y), a.Z.Sub(b.Z)} }

func (a Vec3) Scale(s Number) Vec3 { return Vec3{a.X.Mul(s), a.Y.Mul(s), a.Z.Mul(s)} }

func (a Vec3) Dot(b Vec3) Number {
	return a.X.Mul(b.X).Add(a.Y.Mul(b.Y)).Add(a.Z.Mul(b.Z))
}

func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a.Y.Mul(b.Z).Sub(a.Z.Mul(b.Y)),
		a.Z.Mul(b.X).Sub(a.X.Mul(b.Z)),
		a.X.Mul(b.Y).Sub(a.Y.Mul(b.X)),
	}
}

func (a Vec3) Equal(b Vec3) bool {
	return a.X.Equal(b.X) && a.Y.Equal(b.Y) && a.Z.Equal(b.Z)
}

func (a Vec3) Float64() mgl64.Vec3 { return mgl64.Vec3{a.X.F(), a.Y.F(), a.Z.F()} }

func (a Vec3) String() string { return fmt.Sprintf("(%s, %s, %s)", a.X, a.Y, a.Z) }
