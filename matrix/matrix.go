package matrix

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Symmetrize stores (m + m^T)/2 in dst.
// It returns error if m is not square or its dimension does not match dst.
func Symmetrize(dst *mat.SymDense, m mat.Matrix) error {
	r, c := m.Dims()
	if r != c || r != dst.SymmetricDim() {
		return fmt.Errorf("invalid matrix dims: [%d x %d]", r, c)
	}

	for i := 0; i < r; i++ {
		for j := i; j < r; j++ {
			dst.SetSym(i, j, 0.5*(m.At(i, j)+m.At(j, i)))
		}
	}

	return nil
}

// Asymmetry returns the largest absolute difference between m and its transpose.
// It panics if m is nil.
func Asymmetry(m mat.Matrix) float64 {
	r, c := m.Dims()
	max := 0.0
	for i := 0; i < r && i < c; i++ {
		for j := i + 1; j < c && j < r; j++ {
			max = math.Max(max, math.Abs(m.At(i, j)-m.At(j, i)))
		}
	}

	return max
}

// Diag returns a slice containing the diagonal of s.
// It panics if s is nil.
func Diag(s mat.Symmetric) []float64 {
	n := s.SymmetricDim()
	d := make([]float64, n)

	for i := 0; i < n; i++ {
		d[i] = s.At(i, i)
	}

	return d
}

// Std returns a slice containing square roots of the diagonal of s.
// It panics if s is nil.
func Std(s mat.Symmetric) []float64 {
	d := Diag(s)
	for i := range d {
		d[i] = math.Sqrt(d[i])
	}

	return d
}
