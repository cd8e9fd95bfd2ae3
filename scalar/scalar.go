// Package scalar provides the arithmetic a measurement kernel is written against.
//
// Kernels never touch float64 directly: they go through an Ops value so the same
// code evaluates on plain floats or on dual numbers carrying a derivative.
package scalar

// Ops is the scalar capability set used by kernels
type Ops[T any] interface {
	// Const lifts a float64 constant into T
	Const(v float64) T
	// Add returns a+b
	Add(a, b T) T
	// Sub returns a-b
	Sub(a, b T) T
	// Mul returns a*b
	Mul(a, b T) T
	// Div returns a/b
	Div(a, b T) T
	// Neg returns -a
	Neg(a T) T
	// Sqrt returns square root of a
	Sqrt(a T) T
	// Pow returns a raised to the power of p
	Pow(a T, p float64) T
	// Max returns b if a < b, otherwise it returns a
	Max(a, b T) T
	// Atan2 returns the arc tangent of y/x
	Atan2(y, x T) T
	// Real returns the value part of a
	Real(a T) float64
}
