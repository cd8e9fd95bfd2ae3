package state

import (
	"fmt"

	"github.com/milosgajdos/go-measure/scalar"
	"gonum.org/v1/gonum/mat"
)

// FromVec copies v into a new state vector.
// It returns error if v does not have Len elements.
func FromVec(v mat.Vector) (*Vector[float64], error) {
	if v == nil || v.Len() != Len {
		return nil, fmt.Errorf("invalid state vector")
	}

	x := new(Vector[float64])
	for i := range x {
		x[i] = v.AtVec(i)
	}

	return x, nil
}

// CovFromSym copies s into a new error state covariance.
// It returns error if s is not ErrLen x ErrLen.
func CovFromSym(s mat.Symmetric) (*Cov[float64], error) {
	if s == nil || s.SymmetricDim() != ErrLen {
		return nil, fmt.Errorf("invalid covariance matrix")
	}

	p := new(Cov[float64])
	for i := 0; i < ErrLen; i++ {
		for j := 0; j < ErrLen; j++ {
			p[i][j] = s.At(i, j)
		}
	}

	return p, nil
}

// Vec returns x as gonum vector
func (x *Vector[T]) Vec(o scalar.Ops[T]) *mat.VecDense {
	v := mat.NewVecDense(Len, nil)
	for i := range x {
		v.SetVec(i, o.Real(x[i]))
	}

	return v
}

// Vec returns c as gonum vector
func (c *Column[T]) Vec(o scalar.Ops[T]) *mat.VecDense {
	v := mat.NewVecDense(ErrLen, nil)
	for i := range c {
		v.SetVec(i, o.Real(c[i]))
	}

	return v
}

// Sym returns upper triangle of p as gonum symmetric matrix
func (p *Cov[T]) Sym(o scalar.Ops[T]) *mat.SymDense {
	s := mat.NewSymDense(ErrLen, nil)
	for i := 0; i < ErrLen; i++ {
		for j := i; j < ErrLen; j++ {
			s.SetSym(i, j, o.Real(p[i][j]))
		}
	}

	return s
}

// Lift converts x into a state vector over scalar type T
func Lift[T any](o scalar.Ops[T], x *Vector[float64]) *Vector[T] {
	out := new(Vector[T])
	for i := range x {
		out[i] = o.Const(x[i])
	}

	return out
}

// LiftCov converts p into a covariance over scalar type T
func LiftCov[T any](o scalar.Ops[T], p *Cov[float64]) *Cov[T] {
	out := new(Cov[T])
	for i := range p {
		for j := range p[i] {
			out[i][j] = o.Const(p[i][j])
		}
	}

	return out
}
