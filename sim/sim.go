// Package sim simulates steady flight and the sensors observing it.
package sim

import (
	"fmt"

	measrand "github.com/milosgajdos/go-measure/rand"
	"github.com/milosgajdos/go-measure/scalar"
	"github.com/milosgajdos/go-measure/state"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

// InitCond implements measure.InitCond
type InitCond struct {
	state *mat.VecDense
	cov   *mat.SymDense
}

// NewInitCond creates new InitCond and returns it.
// It returns error if state or cov dimensions do not match the navigation state layout.
func NewInitCond(x mat.Vector, cov mat.Symmetric) (*InitCond, error) {
	if x == nil || x.Len() != state.Len {
		return nil, fmt.Errorf("invalid initial state")
	}

	if cov == nil || cov.SymmetricDim() != state.ErrLen {
		return nil, fmt.Errorf("invalid initial covariance")
	}

	s := &mat.VecDense{}
	s.CloneFromVec(x)

	c := mat.NewSymDense(cov.SymmetricDim(), nil)
	c.CopySym(cov)

	return &InitCond{
		state: s,
		cov:   c,
	}, nil
}

// State returns initial state
func (c *InitCond) State() mat.Vector {
	x := mat.NewVecDense(c.state.Len(), nil)
	x.CloneFromVec(c.state)

	return x
}

// Cov returns initial covariance
func (c *InitCond) Cov() mat.Symmetric {
	cov := mat.NewSymDense(c.cov.SymmetricDim(), nil)
	cov.CopySym(c.cov)

	return cov
}

// NewPerturbedInitCond creates new InitCond whose state is x corrected by a random error
// drawn from the zero mean Gaussian with error state covariance cov.
// It returns error if cov dimension does not match the error state layout or if sampling fails.
func NewPerturbedInitCond(x *state.Vector[float64], cov mat.Symmetric, src rand.Source) (*InitCond, error) {
	if cov == nil || cov.SymmetricDim() != state.ErrLen {
		return nil, fmt.Errorf("invalid initial covariance")
	}

	dx, err := measrand.WithCovN(cov, 1, src)
	if err != nil {
		return nil, fmt.Errorf("failed to draw initial error: %v", err)
	}

	xp, err := state.Retract(x, mat.Col(nil, 0, dx))
	if err != nil {
		return nil, err
	}

	return NewInitCond(xp.Vec(scalar.Float{}), cov)
}
