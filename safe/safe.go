// Package safe implements epsilon guarded arithmetic shared by all measurement kernels.
//
// None of the functions here fail: a denominator that is zero, negative or smaller
// than epsilon is replaced by epsilon. Callers are expected to pass a small positive epsilon.
package safe

import "github.com/milosgajdos/go-measure/scalar"

// Inv returns 1/max(eps, d)
func Inv[T any](o scalar.Ops[T], d, eps T) T {
	return o.Div(o.Const(1.0), o.Max(eps, d))
}

// Div returns n/max(eps, d)
func Div[T any](o scalar.Ops[T], n, d, eps T) T {
	return o.Div(n, o.Max(eps, d))
}

// SumSq returns the sum of squares of xs.
func SumSq[T any](o scalar.Ops[T], xs ...T) T {
	sum := o.Const(0.0)
	for _, x := range xs {
		sum = o.Add(sum, o.Mul(x, x))
	}
	return sum
}

// InvNorm returns (sum(xs^2) + eps)^(-1/2).
// Epsilon shifts the argument of the root away from zero instead of clamping it.
func InvNorm[T any](o scalar.Ops[T], eps T, xs ...T) T {
	return o.Pow(o.Add(SumSq(o, xs...), eps), -0.5)
}

// InvNormClamped returns 1/sqrt(max(eps, sum(xs^2)))
func InvNormClamped[T any](o scalar.Ops[T], eps T, xs ...T) T {
	return o.Div(o.Const(1.0), o.Sqrt(o.Max(eps, SumSq(o, xs...))))
}

// Norm returns sqrt(sum(xs^2) + eps)
func Norm[T any](o scalar.Ops[T], eps T, xs ...T) T {
	return o.Sqrt(o.Add(SumSq(o, xs...), eps))
}
