package scalar

import "math"

// Float implements Ops on float64
type Float struct{}

// Const returns v
func (Float) Const(v float64) float64 { return v }

// Add returns a+b
func (Float) Add(a, b float64) float64 { return a + b }

// Sub returns a-b
func (Float) Sub(a, b float64) float64 { return a - b }

// Mul returns a*b
func (Float) Mul(a, b float64) float64 { return a * b }

// Div returns a/b
func (Float) Div(a, b float64) float64 { return a / b }

// Neg returns -a
func (Float) Neg(a float64) float64 { return -a }

// Sqrt returns square root of a
func (Float) Sqrt(a float64) float64 { return math.Sqrt(a) }

// Pow returns a**p
func (Float) Pow(a float64, p float64) float64 { return math.Pow(a, p) }

// Max returns b if a < b, otherwise a.
// Unlike math.Max it never returns NaN when a is a number.
func (Float) Max(a, b float64) float64 {
	if a < b {
		return b
	}
	return a
}

// Atan2 returns the arc tangent of y/x
func (Float) Atan2(y, x float64) float64 { return math.Atan2(y, x) }

// Real returns a
func (Float) Real(a float64) float64 { return a }
