package scalar

import (
	"math"

	"gonum.org/v1/gonum/num/dual"
)

// Dual implements Ops on dual numbers.
// The real part of every operation is computed exactly as Float computes it,
// the dual part carries the first derivative along the seeded direction.
type Dual struct{}

// Const returns v with zero derivative
func (Dual) Const(v float64) dual.Number { return dual.Number{Real: v} }

// Add returns a+b
func (Dual) Add(a, b dual.Number) dual.Number { return dual.Add(a, b) }

// Sub returns a-b
func (Dual) Sub(a, b dual.Number) dual.Number { return dual.Sub(a, b) }

// Mul returns a*b
func (Dual) Mul(a, b dual.Number) dual.Number { return dual.Mul(a, b) }

// Div returns a/b.
func (Dual) Div(a, b dual.Number) dual.Number {
	// dual has no quotient; a*Inv(b) would round the real part differently
	return dual.Number{
		Real: a.Real / b.Real,
		Emag: (a.Emag*b.Real - a.Real*b.Emag) / (b.Real * b.Real),
	}
}

// Neg returns -a
func (Dual) Neg(a dual.Number) dual.Number { return dual.Scale(-1, a) }

// Sqrt returns square root of a
func (Dual) Sqrt(a dual.Number) dual.Number { return dual.Sqrt(a) }

// Pow returns a**p
func (Dual) Pow(a dual.Number, p float64) dual.Number { return dual.PowReal(a, p) }

// Max returns b if a.Real < b.Real, otherwise a
func (Dual) Max(a, b dual.Number) dual.Number {
	if a.Real < b.Real {
		return b
	}
	return a
}

// Atan2 returns the arc tangent of y/x
func (Dual) Atan2(y, x dual.Number) dual.Number {
	d := x.Real*x.Real + y.Real*y.Real
	return dual.Number{
		Real: math.Atan2(y.Real, x.Real),
		Emag: (x.Real*y.Emag - y.Real*x.Emag) / d,
	}
}

// Real returns the real part of a
func (Dual) Real(a dual.Number) float64 { return a.Real }
