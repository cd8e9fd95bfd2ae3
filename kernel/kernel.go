// Package kernel implements EKF measurement update kernels.
//
// A kernel takes the current navigation state, its error state covariance and the
// model parameters of one sensor, and produces the observation Jacobian row H and
// the Kalman gain column K = P*H^T / max(eps, innovation variance).
// Either output may be skipped by leaving its destination nil; a skipped output
// is not computed.
//
// Kernels are pure: they do not allocate, retain or synchronise anything. Several
// kernels may run concurrently as long as each gets its own output buffers and
// nobody mutates the state and covariance they read.
package kernel

import (
	"github.com/milosgajdos/go-measure/scalar"
	"github.com/milosgajdos/go-measure/state"
)

// Params are kernel model parameters
type Params[T any] struct {
	// InnovVar is innovation variance of the measurement
	InnovVar T
	// Epsilon guards every division by a possibly vanishing quantity
	Epsilon T
	// Range is distance to the ground along the sensor axis (optical flow)
	Range T
	// Coef is the drag coefficient in 1/s (drag specific force)
	Coef T
}

// Output holds kernel output destinations.
// A nil destination means the output is not requested.
type Output[T any] struct {
	// H is observation Jacobian row
	H *state.Column[T]
	// K is Kalman gain column
	K *state.Column[T]
}

// Func computes observation Jacobian and Kalman gain of a measurement
type Func[T any] func(o scalar.Ops[T], x *state.Vector[T], p *state.Cov[T], prm Params[T], out Output[T])

// PredictFunc predicts measurement value in state x
type PredictFunc[T any] func(o scalar.Ops[T], x *state.Vector[T], prm Params[T]) T
