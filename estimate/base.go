package estimate

import (
	"fmt"

	"github.com/milosgajdos/go-measure/state"
	"gonum.org/v1/gonum/mat"
)

// Nav is navigation estimate: full state and its error state covariance
type Nav struct {
	// val is estimated state
	val *mat.VecDense
	// cov is error state covariance
	cov *mat.SymDense
}

// NewNav returns navigation estimate given state val and error state covariance cov.
// It returns error if val or cov dimensions do not match the navigation state layout.
func NewNav(val mat.Vector, cov mat.Symmetric) (*Nav, error) {
	if val == nil || val.Len() != state.Len {
		return nil, fmt.Errorf("invalid state dimension")
	}

	if cov == nil || cov.SymmetricDim() != state.ErrLen {
		return nil, fmt.Errorf("invalid covariance dimension")
	}

	v := &mat.VecDense{}
	v.CloneFromVec(val)

	c := mat.NewSymDense(state.ErrLen, nil)
	c.CopySym(cov)

	return &Nav{
		val: v,
		cov: c,
	}, nil
}

// Val returns estimated state
func (n *Nav) Val() mat.Vector {
	v := &mat.VecDense{}
	v.CloneFromVec(n.val)

	return v
}

// Cov returns error state covariance estimate
func (n *Nav) Cov() mat.Symmetric {
	cov := mat.NewSymDense(n.cov.SymmetricDim(), nil)
	cov.CopySym(n.cov)

	return cov
}
