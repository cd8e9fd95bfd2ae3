package kernel

import (
	"github.com/milosgajdos/go-measure/safe"
	"github.com/milosgajdos/go-measure/scalar"
	"github.com/milosgajdos/go-measure/state"
)

// AirspeedHK computes observation Jacobian and Kalman gain of a true airspeed measurement.
//
// Airspeed is the norm of the velocity relative to the horizontal wind, so the
// wind entries of H are the negated horizontal velocity entries.
func AirspeedHK[T any](o scalar.Ops[T], x *state.Vector[T], p *state.Cov[T], prm Params[T], out Output[T]) {
	eps := prm.Epsilon

	ve := o.Sub(x[state.VelE], x[state.WindE])
	vn := o.Sub(x[state.VelN], x[state.WindN])
	vd := x[state.VelD]

	// inlined rather than safe.InvNorm to keep this exact term order:
	// epsilon sits under the root, (ve^2 + vn^2 + eps + vd^2)^(-1/2)
	inv := o.Pow(o.Add(o.Add(o.Add(o.Mul(ve, ve), o.Mul(vn, vn)), eps), o.Mul(vd, vd)), -0.5)

	hn := o.Mul(vn, inv)
	he := o.Mul(ve, inv)
	hd := o.Mul(inv, vd)
	invS := safe.Inv(o, prm.InnovVar, eps)

	// rows are written inline, not through writeH/writeK, for the same term order
	if out.H != nil {
		h := out.H
		zero := o.Const(0.0)
		for i := range h {
			h[i] = zero
		}

		h[state.ErrVelN] = hn
		h[state.ErrVelE] = he
		h[state.ErrVelD] = hd
		h[state.ErrWindN] = o.Neg(hn)
		h[state.ErrWindE] = o.Neg(he)
	}

	if out.K != nil {
		k := out.K
		for i := 0; i < state.ErrLen; i++ {
			pi := &p[i]
			acc := o.Mul(o.Neg(pi[state.ErrWindN]), hn)
			acc = o.Sub(acc, o.Mul(pi[state.ErrWindE], he))
			acc = o.Add(acc, o.Mul(pi[state.ErrVelN], hn))
			acc = o.Add(acc, o.Mul(pi[state.ErrVelE], he))
			acc = o.Add(acc, o.Mul(pi[state.ErrVelD], hd))
			k[i] = o.Mul(invS, acc)
		}
	}
}

// AirspeedPredict returns true airspeed in state x
func AirspeedPredict[T any](o scalar.Ops[T], x *state.Vector[T], prm Params[T]) T {
	vn := o.Sub(x[state.VelN], x[state.WindN])
	ve := o.Sub(x[state.VelE], x[state.WindE])

	return safe.Norm(o, prm.Epsilon, vn, ve, x[state.VelD])
}
