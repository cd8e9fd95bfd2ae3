// Package noise provides sensor noise models used to corrupt simulated measurements.
package noise

import (
	"fmt"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"
)

// Gaussian is gaussian sensor noise
type Gaussian struct {
	// dist is a multivariate normal distribution
	dist *distmv.Normal
	// src is the source of randomness; nil means time seeded
	src rand.Source
	// mean is Gaussian mean
	mean []float64
	// cov is Gaussian covariance
	cov *mat.SymDense
}

// NewGaussian creates new Gaussian noise with given mean and covariance.
// If src is nil the noise draws from a time seeded source.
// It returns error if it fails to create Gaussian.
func NewGaussian(mean []float64, cov mat.Symmetric, src rand.Source) (*Gaussian, error) {
	if cov == nil || len(mean) != cov.SymmetricDim() {
		return nil, fmt.Errorf("invalid gaussian noise dimensions")
	}

	c := mat.NewSymDense(cov.SymmetricDim(), nil)
	c.CopySym(cov)

	m := make([]float64, len(mean))
	copy(m, mean)

	dist, ok := newGaussianDist(m, c, src)
	if !ok {
		return nil, fmt.Errorf("failed to create gaussian noise")
	}

	return &Gaussian{
		dist: dist,
		src:  src,
		mean: m,
		cov:  c,
	}, nil
}

// NewScalar creates zero mean scalar Gaussian noise with variance v.
func NewScalar(v float64, src rand.Source) (*Gaussian, error) {
	return NewGaussian([]float64{0}, mat.NewSymDense(1, []float64{v}), src)
}

// Sample generates a sample from Gaussian noise and returns it.
func (g *Gaussian) Sample() mat.Vector {
	r := g.dist.Rand(nil)
	return mat.NewVecDense(len(r), r)
}

// Cov returns covariance matrix of Gaussian noise.
func (g *Gaussian) Cov() mat.Symmetric {
	cov := mat.NewSymDense(g.cov.SymmetricDim(), nil)
	cov.CopySym(g.cov)

	return cov
}

// Var returns variance of noise element i.
func (g *Gaussian) Var(i int) float64 {
	return g.cov.At(i, i)
}

// Mean returns Gaussian mean.
func (g *Gaussian) Mean() []float64 {
	mean := make([]float64, len(g.mean))
	copy(mean, g.mean)

	return mean
}

// Reset resets Gaussian noise distribution.
// Noise with an explicit source keeps drawing from it.
func (g *Gaussian) Reset() {
	if dist, ok := newGaussianDist(g.mean, g.cov, g.src); ok {
		g.dist = dist
	}
}

func newGaussianDist(mean []float64, cov mat.Symmetric, src rand.Source) (*distmv.Normal, bool) {
	if src == nil {
		src = rand.NewSource(uint64(time.Now().UnixNano()))
	}

	return distmv.NewNormal(mean, cov, src)
}

// String implements the Stringer interface.
func (g *Gaussian) String() string {
	return fmt.Sprintf("Gaussian{\nMean=%v\nCov=%v\n}", g.mean, mat.Formatted(g.cov, mat.Prefix("    "), mat.Squeeze()))
}
