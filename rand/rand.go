// Package rand draws random navigation states and covariances.
package rand

import (
	"fmt"
	"math"

	"github.com/milosgajdos/go-measure/state"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// WithCovN draws n random samples from a zero-mean Normal (aka Gaussian) distribution with covariance cov.
// It returns matrix which contains the randomly generated samples stored in its columns.
// It fails with error if n is non-positive or if SVD factorization of cov fails.
func WithCovN(cov mat.Symmetric, n int, src rand.Source) (*mat.Dense, error) {
	if n <= 0 {
		return nil, fmt.Errorf("invalid number of samples requested: %d", n)
	}

	// SVD rather than Cholesky: cov may be (almost) singular
	var svd mat.SVD
	if ok := svd.Factorize(cov, mat.SVDFull); !ok {
		return nil, fmt.Errorf("SVD factorization failed")
	}

	U := new(mat.Dense)
	svd.UTo(U)
	vals := svd.Values(nil)
	for i := range vals {
		vals[i] = math.Sqrt(vals[i])
	}
	U.Mul(U, mat.NewDiagDense(len(vals), vals))

	norm := distuv.Normal{Mu: 0, Sigma: 1, Src: src}
	rows := cov.SymmetricDim()
	data := make([]float64, rows*n)
	for i := range data {
		data[i] = norm.Rand()
	}
	samples := mat.NewDense(rows, n, data)
	samples.Mul(U, samples)

	return samples, nil
}

// SPD returns a random n x n symmetric positive definite matrix.
// Its eigenvalues are bounded below by floor.
func SPD(n int, floor float64, src rand.Source) (*mat.SymDense, error) {
	if n <= 0 {
		return nil, fmt.Errorf("invalid matrix dimension: %d", n)
	}

	norm := distuv.Normal{Mu: 0, Sigma: 1, Src: src}
	data := make([]float64, n*n)
	for i := range data {
		data[i] = norm.Rand()
	}

	s := mat.NewSymDense(n, nil)
	s.SymOuterK(1/float64(n), mat.NewDense(n, n, data))
	for i := 0; i < n; i++ {
		s.SetSym(i, i, s.At(i, i)+floor)
	}

	return s, nil
}

// Nav returns a random navigation state of a vehicle in steady forward flight:
// moderate roll and pitch, ground speed well above wind speed and a
// plausible earth magnetic field in gauss.
func Nav(src rand.Source) *state.Vector[float64] {
	u := func(lo, hi float64) float64 {
		return distuv.Uniform{Min: lo, Max: hi, Src: src}.Rand()
	}

	x := new(state.Vector[float64])

	yaw := u(-math.Pi, math.Pi)
	x[state.QuatW], x[state.QuatX], x[state.QuatY], x[state.QuatZ] = state.Quat(u(-0.3, 0.3), u(-0.3, 0.3), yaw)

	speed := u(18, 30)
	x[state.VelN] = speed * math.Cos(yaw)
	x[state.VelE] = speed * math.Sin(yaw)
	x[state.VelD] = u(-1, 1)

	for i := state.PosN; i <= state.PosD; i++ {
		x[i] = u(-500, 500)
	}
	for i := state.GyroBiasX; i <= state.AccelBiasZ; i++ {
		x[i] = u(-0.01, 0.01)
	}

	x[state.MagN] = u(0.15, 0.3)
	x[state.MagE] = u(-0.05, 0.05)
	x[state.MagD] = u(0.3, 0.5)
	for i := state.MagBiasX; i <= state.MagBiasZ; i++ {
		x[i] = u(-0.02, 0.02)
	}

	x[state.WindN] = u(-5, 5)
	x[state.WindE] = u(-5, 5)

	return x
}
