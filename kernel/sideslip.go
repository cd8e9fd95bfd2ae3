package kernel

import (
	"github.com/milosgajdos/go-measure/safe"
	"github.com/milosgajdos/go-measure/scalar"
	"github.com/milosgajdos/go-measure/state"
)

// relBody returns velocity relative to the air resolved in the body frame
// together with the body to navigation rotation it was resolved with.
func relBody[T any](o scalar.Ops[T], x *state.Vector[T]) ([3]T, [3][3]T) {
	r := state.Rotation(o, x)
	rel := [3]T{
		o.Sub(x[state.VelN], x[state.WindN]),
		o.Sub(x[state.VelE], x[state.WindE]),
		x[state.VelD],
	}

	return state.ToBody(o, &r, rel), r
}

// SideslipHK computes observation Jacobian and Kalman gain of a synthetic sideslip measurement.
// Sideslip is the ratio of lateral to forward body frame velocity relative to the air.
func SideslipHK[T any](o scalar.Ops[T], x *state.Vector[T], p *state.Cov[T], prm Params[T], out Output[T]) {
	b, r := relBody(o, x)

	invX := safe.Inv(o, b[0], prm.Epsilon)
	// gradient of b[1]/b[0] w.r.t. b
	g0 := o.Neg(o.Mul(o.Mul(b[1], invX), invX))
	g1 := invX

	vn := o.Add(o.Mul(g0, r[0][0]), o.Mul(g1, r[0][1]))
	ve := o.Add(o.Mul(g0, r[1][0]), o.Mul(g1, r[1][1]))
	vd := o.Add(o.Mul(g0, r[2][0]), o.Mul(g1, r[2][1]))

	row := [...]term[T]{
		{state.ErrAngX, o.Mul(g1, b[2])},
		{state.ErrAngY, o.Neg(o.Mul(g0, b[2]))},
		{state.ErrAngZ, o.Sub(o.Mul(g0, b[1]), o.Mul(g1, b[0]))},
		{state.ErrVelN, vn},
		{state.ErrVelE, ve},
		{state.ErrVelD, vd},
		{state.ErrWindN, o.Neg(vn)},
		{state.ErrWindE, o.Neg(ve)},
	}

	write(o, p, row[:], safe.Inv(o, prm.InnovVar, prm.Epsilon), out)
}

// SideslipPredict returns sideslip ratio in state x
func SideslipPredict[T any](o scalar.Ops[T], x *state.Vector[T], prm Params[T]) T {
	b, _ := relBody(o, x)

	return o.Mul(b[1], safe.Inv(o, b[0], prm.Epsilon))
}
