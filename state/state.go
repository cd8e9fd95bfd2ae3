// Package state defines the navigation state layout shared by all measurement kernels.
//
// The full state has Len elements and carries attitude as a quaternion. The error
// state has ErrLen elements: attitude error is a 3-vector rotation in the body frame,
// every other element maps one-to-one onto the full state shifted down by one.
package state

// Len is the number of full state elements
const Len = 24

// ErrLen is the number of error state elements, i.e. the covariance dimension
const ErrLen = 23

// Full state indices
const (
	QuatW = iota
	QuatX
	QuatY
	QuatZ
	VelN
	VelE
	VelD
	PosN
	PosE
	PosD
	GyroBiasX
	GyroBiasY
	GyroBiasZ
	AccelBiasX
	AccelBiasY
	AccelBiasZ
	MagN
	MagE
	MagD
	MagBiasX
	MagBiasY
	MagBiasZ
	WindN
	WindE
)

// Error state indices
const (
	ErrAngX = iota
	ErrAngY
	ErrAngZ
	ErrVelN
	ErrVelE
	ErrVelD
	ErrPosN
	ErrPosE
	ErrPosD
	ErrGyroBiasX
	ErrGyroBiasY
	ErrGyroBiasZ
	ErrAccelBiasX
	ErrAccelBiasY
	ErrAccelBiasZ
	ErrMagN
	ErrMagE
	ErrMagD
	ErrMagBiasX
	ErrMagBiasY
	ErrMagBiasZ
	ErrWindN
	ErrWindE
)

// Vector is the full navigation state
type Vector[T any] [Len]T

// Cov is the error state covariance.
// It is assumed symmetric; nothing in this module enforces it.
type Cov[T any] [ErrLen][ErrLen]T

// Column is a vector over the error state: an observation Jacobian row or a Kalman gain column.
type Column[T any] [ErrLen]T

// ErrIndex returns the error state index of full state index i.
// Quaternion elements have no single error state counterpart and return -1.
func ErrIndex(i int) int {
	if i < VelN || i >= Len {
		return -1
	}
	return i - 1
}
