package kernel

import (
	"github.com/milosgajdos/go-measure/safe"
	"github.com/milosgajdos/go-measure/scalar"
	"github.com/milosgajdos/go-measure/state"
)

// DragXHK computes observation Jacobian and Kalman gain of the body X specific force
// produced by linear rotor drag, -Coef * body relative velocity.
func DragXHK[T any](o scalar.Ops[T], x *state.Vector[T], p *state.Cov[T], prm Params[T], out Output[T]) {
	b, r := relBody(o, x)
	k := prm.Coef

	vn := o.Neg(o.Mul(k, r[0][0]))
	ve := o.Neg(o.Mul(k, r[1][0]))

	row := [...]term[T]{
		{state.ErrAngY, o.Mul(k, b[2])},
		{state.ErrAngZ, o.Neg(o.Mul(k, b[1]))},
		{state.ErrVelN, vn},
		{state.ErrVelE, ve},
		{state.ErrVelD, o.Neg(o.Mul(k, r[2][0]))},
		{state.ErrWindN, o.Neg(vn)},
		{state.ErrWindE, o.Neg(ve)},
	}

	write(o, p, row[:], safe.Inv(o, prm.InnovVar, prm.Epsilon), out)
}

// DragYHK computes observation Jacobian and Kalman gain of the body Y drag specific force.
func DragYHK[T any](o scalar.Ops[T], x *state.Vector[T], p *state.Cov[T], prm Params[T], out Output[T]) {
	b, r := relBody(o, x)
	k := prm.Coef

	vn := o.Neg(o.Mul(k, r[0][1]))
	ve := o.Neg(o.Mul(k, r[1][1]))

	row := [...]term[T]{
		{state.ErrAngX, o.Neg(o.Mul(k, b[2]))},
		{state.ErrAngZ, o.Mul(k, b[0])},
		{state.ErrVelN, vn},
		{state.ErrVelE, ve},
		{state.ErrVelD, o.Neg(o.Mul(k, r[2][1]))},
		{state.ErrWindN, o.Neg(vn)},
		{state.ErrWindE, o.Neg(ve)},
	}

	write(o, p, row[:], safe.Inv(o, prm.InnovVar, prm.Epsilon), out)
}

// DragXPredict returns body X drag specific force in state x
func DragXPredict[T any](o scalar.Ops[T], x *state.Vector[T], prm Params[T]) T {
	b, _ := relBody(o, x)
	return o.Neg(o.Mul(prm.Coef, b[0]))
}

// DragYPredict returns body Y drag specific force in state x
func DragYPredict[T any](o scalar.Ops[T], x *state.Vector[T], prm Params[T]) T {
	b, _ := relBody(o, x)
	return o.Neg(o.Mul(prm.Coef, b[1]))
}

// HeightHK computes observation Jacobian and Kalman gain of a barometric height measurement.
func HeightHK[T any](o scalar.Ops[T], x *state.Vector[T], p *state.Cov[T], prm Params[T], out Output[T]) {
	row := [...]term[T]{
		{state.ErrPosD, o.Const(-1.0)},
	}

	write(o, p, row[:], safe.Inv(o, prm.InnovVar, prm.Epsilon), out)
}

// HeightPredict returns height above the origin in state x
func HeightPredict[T any](o scalar.Ops[T], x *state.Vector[T], _ Params[T]) T {
	return o.Neg(x[state.PosD])
}
