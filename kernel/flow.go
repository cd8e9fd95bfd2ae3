package kernel

import (
	"github.com/milosgajdos/go-measure/safe"
	"github.com/milosgajdos/go-measure/scalar"
	"github.com/milosgajdos/go-measure/state"
)

// groundBody returns the ground velocity resolved in the body frame
func groundBody[T any](o scalar.Ops[T], x *state.Vector[T]) ([3]T, [3][3]T) {
	r := state.Rotation(o, x)
	v := [3]T{x[state.VelN], x[state.VelE], x[state.VelD]}

	return state.ToBody(o, &r, v), r
}

// FlowXHK computes observation Jacobian and Kalman gain of the optical flow rate about the body X axis.
// The sensor looks along the body Z axis and sees the ground at prm.Range.
func FlowXHK[T any](o scalar.Ops[T], x *state.Vector[T], p *state.Cov[T], prm Params[T], out Output[T]) {
	b, r := groundBody(o, x)
	invR := safe.Inv(o, prm.Range, prm.Epsilon)

	row := [...]term[T]{
		{state.ErrAngX, o.Mul(invR, b[2])},
		{state.ErrAngZ, o.Neg(o.Mul(invR, b[0]))},
		{state.ErrVelN, o.Mul(invR, r[0][1])},
		{state.ErrVelE, o.Mul(invR, r[1][1])},
		{state.ErrVelD, o.Mul(invR, r[2][1])},
	}

	write(o, p, row[:], safe.Inv(o, prm.InnovVar, prm.Epsilon), out)
}

// FlowYHK computes observation Jacobian and Kalman gain of the optical flow rate about the body Y axis.
func FlowYHK[T any](o scalar.Ops[T], x *state.Vector[T], p *state.Cov[T], prm Params[T], out Output[T]) {
	b, r := groundBody(o, x)
	invR := safe.Inv(o, prm.Range, prm.Epsilon)

	row := [...]term[T]{
		{state.ErrAngY, o.Mul(invR, b[2])},
		{state.ErrAngZ, o.Neg(o.Mul(invR, b[1]))},
		{state.ErrVelN, o.Neg(o.Mul(invR, r[0][0]))},
		{state.ErrVelE, o.Neg(o.Mul(invR, r[1][0]))},
		{state.ErrVelD, o.Neg(o.Mul(invR, r[2][0]))},
	}

	write(o, p, row[:], safe.Inv(o, prm.InnovVar, prm.Epsilon), out)
}

// FlowXPredict returns optical flow rate about the body X axis in state x
func FlowXPredict[T any](o scalar.Ops[T], x *state.Vector[T], prm Params[T]) T {
	b, _ := groundBody(o, x)
	return o.Mul(b[1], safe.Inv(o, prm.Range, prm.Epsilon))
}

// FlowYPredict returns optical flow rate about the body Y axis in state x
func FlowYPredict[T any](o scalar.Ops[T], x *state.Vector[T], prm Params[T]) T {
	b, _ := groundBody(o, x)
	return o.Neg(o.Mul(b[0], safe.Inv(o, prm.Range, prm.Epsilon)))
}
