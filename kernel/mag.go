package kernel

import (
	"github.com/milosgajdos/go-measure/safe"
	"github.com/milosgajdos/go-measure/scalar"
	"github.com/milosgajdos/go-measure/state"
)

// earthField returns the earth magnetic field resolved in the body frame
func earthField[T any](o scalar.Ops[T], x *state.Vector[T]) ([3]T, [3][3]T) {
	r := state.Rotation(o, x)
	m := [3]T{x[state.MagN], x[state.MagE], x[state.MagD]}

	return state.ToBody(o, &r, m), r
}

// MagXHK computes observation Jacobian and Kalman gain of the body X magnetometer axis.
func MagXHK[T any](o scalar.Ops[T], x *state.Vector[T], p *state.Cov[T], prm Params[T], out Output[T]) {
	c, r := earthField(o, x)

	row := [...]term[T]{
		{state.ErrAngY, o.Neg(c[2])},
		{state.ErrAngZ, c[1]},
		{state.ErrMagN, r[0][0]},
		{state.ErrMagE, r[1][0]},
		{state.ErrMagD, r[2][0]},
		{state.ErrMagBiasX, o.Const(1.0)},
	}

	write(o, p, row[:], safe.Inv(o, prm.InnovVar, prm.Epsilon), out)
}

// MagYHK computes observation Jacobian and Kalman gain of the body Y magnetometer axis.
func MagYHK[T any](o scalar.Ops[T], x *state.Vector[T], p *state.Cov[T], prm Params[T], out Output[T]) {
	c, r := earthField(o, x)

	row := [...]term[T]{
		{state.ErrAngX, c[2]},
		{state.ErrAngZ, o.Neg(c[0])},
		{state.ErrMagN, r[0][1]},
		{state.ErrMagE, r[1][1]},
		{state.ErrMagD, r[2][1]},
		{state.ErrMagBiasY, o.Const(1.0)},
	}

	write(o, p, row[:], safe.Inv(o, prm.InnovVar, prm.Epsilon), out)
}

// MagZHK computes observation Jacobian and Kalman gain of the body Z magnetometer axis.
func MagZHK[T any](o scalar.Ops[T], x *state.Vector[T], p *state.Cov[T], prm Params[T], out Output[T]) {
	c, r := earthField(o, x)

	row := [...]term[T]{
		{state.ErrAngX, o.Neg(c[1])},
		{state.ErrAngY, c[0]},
		{state.ErrMagN, r[0][2]},
		{state.ErrMagE, r[1][2]},
		{state.ErrMagD, r[2][2]},
		{state.ErrMagBiasZ, o.Const(1.0)},
	}

	write(o, p, row[:], safe.Inv(o, prm.InnovVar, prm.Epsilon), out)
}

// MagXPredict returns body X magnetometer reading in state x
func MagXPredict[T any](o scalar.Ops[T], x *state.Vector[T], _ Params[T]) T {
	c, _ := earthField(o, x)
	return o.Add(c[0], x[state.MagBiasX])
}

// MagYPredict returns body Y magnetometer reading in state x
func MagYPredict[T any](o scalar.Ops[T], x *state.Vector[T], _ Params[T]) T {
	c, _ := earthField(o, x)
	return o.Add(c[1], x[state.MagBiasY])
}

// MagZPredict returns body Z magnetometer reading in state x
func MagZPredict[T any](o scalar.Ops[T], x *state.Vector[T], _ Params[T]) T {
	c, _ := earthField(o, x)
	return o.Add(c[2], x[state.MagBiasZ])
}

// DeclinationHK computes observation Jacobian and Kalman gain of a magnetic declination
// measurement, the angle of the horizontal earth field from north.
func DeclinationHK[T any](o scalar.Ops[T], x *state.Vector[T], p *state.Cov[T], prm Params[T], out Output[T]) {
	n, e := x[state.MagN], x[state.MagE]
	inv := safe.Inv(o, o.Add(o.Mul(n, n), o.Mul(e, e)), prm.Epsilon)

	row := [...]term[T]{
		{state.ErrMagN, o.Neg(o.Mul(e, inv))},
		{state.ErrMagE, o.Mul(n, inv)},
	}

	write(o, p, row[:], safe.Inv(o, prm.InnovVar, prm.Epsilon), out)
}

// DeclinationPredict returns magnetic declination in state x
func DeclinationPredict[T any](o scalar.Ops[T], x *state.Vector[T], _ Params[T]) T {
	return o.Atan2(x[state.MagE], x[state.MagN])
}
