// Package rational provides exact rational arithmetic and a conservative
// float64 interval type. The geometric predicates in gosiegeom evaluate
// determinants with Interval first and fall back to Number when the interval
// cannot decide the sign.
package rational

import (
	"fmt"
	"math"
	"math/big"
)

// Number is an exact rational value backed by math/big. The zero value is 0.
// Numbers are immutable: every operation returns a new Number and never
// modifies its operands, so they can be shared freely between goroutines.
type Number struct {
	r *big.Rat
}

var zeroRat = new(big.Rat)

// FromFloat64 converts a finite float64 to the rational it represents
// exactly. It panics on NaN or Inf.
func FromFloat64(f float64) Number {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		panic(fmt.Sprintf("rational: non-finite value %v", f))
	}
	r := new(big.Rat)
	r.SetFloat64(f)
	return Number{r: r}
}

// FromInt returns i as a Number.
func FromInt(i int64) Number {
	return Number{r: new(big.Rat).SetInt64(i)}
}

// FromFrac returns a/b. It panics if b is zero.
func FromFrac(a, b int64) Number {
	if b == 0 {
		panic("rational: zero denominator")
	}
	return Number{r: big.NewRat(a, b)}
}

// FromRat returns a copy of r as a Number.
func FromRat(r *big.Rat) Number {
	return Number{r: new(big.Rat).Set(r)}
}

// Parse reads a fraction ("-1/3"), an integer or a decimal/exponent literal
// ("0.25", "1e-3").
func Parse(s string) (Number, error) {
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return Number{}, fmt.Errorf("rational: cannot parse %q", s)
	}
	return Number{r: r}, nil
}

func (x Number) rat() *big.Rat {
	if x.r == nil {
		return zeroRat
	}
	return x.r
}

func (x Number) Add(y Number) Number {
	return Number{r: new(big.Rat).Add(x.rat(), y.rat())}
}

func (x Number) Sub(y Number) Number {
	return Number{r: new(big.Rat).Sub(x.rat(), y.rat())}
}

func (x Number) Mul(y Number) Number {
	return Number{r: new(big.Rat).Mul(x.rat(), y.rat())}
}

// Div returns x/y. It panics if y is zero.
func (x Number) Div(y Number) Number {
	if y.Sign() == 0 {
		panic("rational: division by zero")
	}
	return Number{r: new(big.Rat).Quo(x.rat(), y.rat())}
}

func (x Number) Neg() Number {
	return Number{r: new(big.Rat).Neg(x.rat())}
}

func (x Number) Abs() Number {
	return Number{r: new(big.Rat).Abs(x.rat())}
}

// Sign returns -1, 0 or +1.
func (x Number) Sign() int {
	return x.rat().Sign()
}

// Cmp compares x and y and returns -1, 0 or +1.
func (x Number) Cmp(y Number) int {
	return x.rat().Cmp(y.rat())
}

func (x Number) Equal(y Number) bool {
	return x.Cmp(y) == 0
}

func (x Number) IsZero() bool {
	return x.Sign() == 0
}

// Min returns the smaller of x and y.
func Min(x, y Number) Number {
	if y.Cmp(x) < 0 {
		return y
	}
	return x
}

// Max returns the larger of x and y.
func Max(x, y Number) Number {
	if y.Cmp(x) > 0 {
		return y
	}
	return x
}

// Float64 returns the float64 nearest to x and whether it represents x
// exactly.
func (x Number) Float64() (float64, bool) {
	return x.rat().Float64()
}

// F is Float64 without the exactness flag.
func (x Number) F() float64 {
	f, _ := x.Float64()
	return f
}

// Rat returns a copy of the underlying big.Rat.
func (x Number) Rat() *big.Rat {
	return new(big.Rat).Set(x.rat())
}

// String formats x as "a/b", or "a" when the denominator is 1.
func (x Number) String() string {
	return x.rat().RatString()
}

func (x Number) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}

func (x *Number) UnmarshalText(text []byte) error {
	n, err := Parse(string(text))
	if err != nil {
		return err
	}
	*x = n
	return nil
}
