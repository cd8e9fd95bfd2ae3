package noise

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Zero is noise of an ideal sensor
type Zero struct {
	// size is noise dimension
	size int
}

// NewZero creates new zero noise of given dimension.
// It returns error if size is negative.
func NewZero(size int) (*Zero, error) {
	if size < 0 {
		return nil, fmt.Errorf("invalid noise dimension: %d", size)
	}

	return &Zero{size: size}, nil
}

// Sample returns zero vector.
func (z *Zero) Sample() mat.Vector {
	return mat.NewVecDense(z.size, nil)
}

// Cov returns zero covariance matrix.
func (z *Zero) Cov() mat.Symmetric {
	return mat.NewSymDense(z.size, nil)
}

// Var returns zero variance.
func (z *Zero) Var(int) float64 {
	return 0
}

// Mean returns zero mean.
func (z *Zero) Mean() []float64 {
	return make([]float64, z.size)
}

// Reset does nothing: ideal sensor noise has no state.
func (z *Zero) Reset() {}

// String implements the Stringer interface.
func (z *Zero) String() string {
	return fmt.Sprintf("Zero{\nMean=%v\nCov=%v\n}", z.Mean(), mat.Formatted(z.Cov(), mat.Prefix("    "), mat.Squeeze()))
}
