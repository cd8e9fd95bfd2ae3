package state

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/num/quat"
)

// Retract applies error state correction dx to x and returns the corrected state.
// Attitude is corrected by right multiplication with the rotation dx[0:3] and
// renormalized; every other element is corrected additively.
func Retract(x *Vector[float64], dx []float64) (*Vector[float64], error) {
	if len(dx) != ErrLen {
		return nil, fmt.Errorf("invalid error state length: %d", len(dx))
	}

	out := *x

	q := quat.Number{Real: x[QuatW], Imag: x[QuatX], Jmag: x[QuatY], Kmag: x[QuatZ]}
	// exp of the half angle pure quaternion is the unit rotation quaternion
	d := quat.Exp(quat.Number{Imag: 0.5 * dx[ErrAngX], Jmag: 0.5 * dx[ErrAngY], Kmag: 0.5 * dx[ErrAngZ]})

	q = quat.Mul(q, d)
	if n := quat.Abs(q); n > 0 {
		q = quat.Scale(1/n, q)
	}
	out[QuatW], out[QuatX], out[QuatY], out[QuatZ] = q.Real, q.Imag, q.Jmag, q.Kmag

	for e := ErrVelN; e < ErrLen; e++ {
		out[e+1] += dx[e]
	}

	return &out, nil
}

// Quat returns unit quaternion of a rotation given by roll, pitch and yaw Euler angles in radians.
func Quat(roll, pitch, yaw float64) (w, x, y, z float64) {
	sr, cr := math.Sincos(0.5 * roll)
	sp, cp := math.Sincos(0.5 * pitch)
	sy, cy := math.Sincos(0.5 * yaw)

	q := quat.Mul(
		quat.Mul(quat.Number{Real: cy, Kmag: sy}, quat.Number{Real: cp, Jmag: sp}),
		quat.Number{Real: cr, Imag: sr},
	)

	return q.Real, q.Imag, q.Jmag, q.Kmag
}
