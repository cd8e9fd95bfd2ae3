package measure

import "gonum.org/v1/gonum/mat"

// InitCond is initial condition of a navigation filter
type InitCond interface {
	// State returns initial filter state
	State() mat.Vector
	// Cov returns initial error state covariance
	Cov() mat.Symmetric
}

// Estimate is navigation filter estimate
type Estimate interface {
	// Val returns estimated state
	Val() mat.Vector
	// Cov returns error state covariance
	Cov() mat.Symmetric
}

// Noise is sensor noise
type Noise interface {
	// Mean returns noise mean
	Mean() []float64
	// Cov returns covariance matrix of the noise
	Cov() mat.Symmetric
	// Sample returns a sample of the noise
	Sample() mat.Vector
	// Reset resets the noise
	Reset()
}
