package kernel

import (
	"github.com/milosgajdos/go-measure/scalar"
	"github.com/milosgajdos/go-measure/state"
)

// term is a nonzero entry of an observation Jacobian row
type term[T any] struct {
	idx int
	h   T
}

// writeH zero fills h and stores the row entries in it.
func writeH[T any](o scalar.Ops[T], h *state.Column[T], row []term[T]) {
	zero := o.Const(0.0)
	for i := range h {
		h[i] = zero
	}
	for _, t := range row {
		h[t.idx] = t.h
	}
}

// writeK stores invS * P*H^T in k, visiting only the columns of P in the row support.
func writeK[T any](o scalar.Ops[T], k *state.Column[T], p *state.Cov[T], row []term[T], invS T) {
	for i := 0; i < state.ErrLen; i++ {
		acc := o.Mul(p[i][row[0].idx], row[0].h)
		for _, t := range row[1:] {
			acc = o.Add(acc, o.Mul(p[i][t.idx], t.h))
		}
		k[i] = o.Mul(invS, acc)
	}
}

// write emits the requested outputs of a kernel with the given row.
func write[T any](o scalar.Ops[T], p *state.Cov[T], row []term[T], invS T, out Output[T]) {
	if out.H != nil {
		writeH(o, out.H, row)
	}

	if out.K != nil {
		writeK(o, out.K, p, row, invS)
	}
}

// InnovVar returns innovation variance H*P*H^T + r of a measurement with Jacobian row h.
func InnovVar[T any](o scalar.Ops[T], h *state.Column[T], p *state.Cov[T], r T) T {
	s := r
	for i := 0; i < state.ErrLen; i++ {
		ph := o.Const(0.0)
		for j := 0; j < state.ErrLen; j++ {
			ph = o.Add(ph, o.Mul(p[i][j], h[j]))
		}
		s = o.Add(s, o.Mul(h[i], ph))
	}

	return s
}
