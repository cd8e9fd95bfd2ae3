// Package fusion fuses scalar navigation measurements into an error state EKF.
package fusion

import (
	"errors"
	"fmt"
	"math"

	measure "github.com/milosgajdos/go-measure"
	"github.com/milosgajdos/go-measure/estimate"
	"github.com/milosgajdos/go-measure/kernel"
	"github.com/milosgajdos/go-measure/matrix"
	"github.com/milosgajdos/go-measure/scalar"
	"github.com/milosgajdos/go-measure/state"
	gomatrix "github.com/milosgajdos/matrix"
	"gonum.org/v1/gonum/mat"
)

// ErrInnovation is returned when a measurement fails the innovation gate
var ErrInnovation = errors.New("innovation gate rejected measurement")

// Measurement is a scalar sensor measurement
type Measurement struct {
	// ID is the measurement kernel
	ID kernel.ID
	// Value is measured value
	Value float64
	// Var is measurement noise variance
	Var float64
	// Range is distance to the ground along the sensor axis (optical flow)
	Range float64
	// Coef is the drag coefficient (drag specific force)
	Coef float64
}

// Filter is error state EKF measurement update.
// Filter is not safe for concurrent use.
type Filter struct {
	// o are filter options
	o Options
	// x is navigation state
	x *state.Vector[float64]
	// p is error state covariance
	p *mat.SymDense
	// k is the last Kalman gain
	k *mat.VecDense
}

// New creates new Filter and returns it.
// It returns error if init dimensions do not match the navigation state layout
// or if options are invalid.
func New(init measure.InitCond, opts ...Option) (*Filter, error) {
	o := DefaultOptions()
	for _, apply := range opts {
		apply(&o)
	}

	if !(o.Epsilon > 0) {
		return nil, fmt.Errorf("invalid epsilon: %v", o.Epsilon)
	}

	if !(o.Gate >= 0) {
		return nil, fmt.Errorf("invalid innovation gate: %v", o.Gate)
	}

	x, err := state.FromVec(init.State())
	if err != nil {
		return nil, err
	}

	cov := init.Cov()
	if cov == nil || cov.SymmetricDim() != state.ErrLen {
		return nil, fmt.Errorf("invalid covariance matrix")
	}

	p := mat.NewSymDense(state.ErrLen, nil)
	p.CopySym(cov)

	return &Filter{
		o: o,
		x: x,
		p: p,
		k: mat.NewVecDense(state.ErrLen, nil),
	}, nil
}

// step is a measurement linearised at a fixed state
type step struct {
	m   Measurement
	prm kernel.Params[float64]
	// y is predicted measurement
	y float64
	// h is observation Jacobian row
	h state.Column[float64]
}

// linearise predicts measurement m in state x and evaluates its Jacobian row.
func (f *Filter) linearise(x *state.Vector[float64], p *state.Cov[float64], m Measurement) (*step, error) {
	if !m.ID.Valid() {
		return nil, fmt.Errorf("%w: %v", kernel.ErrUnknown, m.ID)
	}

	if math.IsNaN(m.Value) || math.IsInf(m.Value, 0) {
		return nil, fmt.Errorf("invalid %v measurement: %v", m.ID, m.Value)
	}

	if !(m.Var >= 0) || math.IsInf(m.Var, 0) {
		return nil, fmt.Errorf("invalid %v measurement variance: %v", m.ID, m.Var)
	}

	st := &step{
		m: m,
		prm: kernel.Params[float64]{
			Epsilon: f.o.Epsilon,
			Range:   m.Range,
			Coef:    m.Coef,
		},
	}

	o := scalar.Float{}
	y, err := kernel.Predict(m.ID, o, x, st.prm)
	if err != nil {
		return nil, err
	}
	st.y = y

	if err := kernel.Eval(m.ID, o, x, p, st.prm, kernel.Output[float64]{H: &st.h}); err != nil {
		return nil, err
	}

	return st, nil
}

// innov returns innovation of the step measurement given prediction y.
func (st *step) innov(y float64) float64 {
	d := st.m.Value - y
	if st.m.ID == kernel.Declination {
		d = math.Remainder(d, 2*math.Pi)
	}

	return d
}

// gain gates innovation d and returns Kalman gain of the step evaluated at x with covariance p.
// It returns ErrInnovation if the gate rejects the measurement.
func (f *Filter) gain(x *state.Vector[float64], p *state.Cov[float64], st *step, d float64) (*state.Column[float64], error) {
	o := scalar.Float{}
	s := kernel.InnovVar(o, &st.h, p, st.m.Var)

	if f.o.Gate > 0 && d*d > f.o.Gate*f.o.Gate*s {
		return nil, fmt.Errorf("%w: %v innovation %.4g, variance %.4g", ErrInnovation, st.m.ID, d, s)
	}

	prm := st.prm
	prm.InnovVar = s

	k := new(state.Column[float64])
	if err := kernel.Eval(st.m.ID, o, x, p, prm, kernel.Output[float64]{K: k}); err != nil {
		return nil, err
	}

	return k, nil
}

// joseph corrects covariance p in place in Joseph form given Jacobian row h, gain k and noise variance r.
func joseph(p *mat.SymDense, h, k *state.Column[float64], r float64) error {
	hm := mat.NewDense(1, state.ErrLen, h[:])
	kv := mat.NewVecDense(state.ErrLen, k[:])

	eye, err := gomatrix.NewDenseValIdentity(state.ErrLen, 1.0)
	if err != nil {
		return fmt.Errorf("failed to create identity matrix: %v", err)
	}

	// I - K*H
	a := &mat.Dense{}
	a.Mul(kv, hm)
	a.Sub(eye, a)

	ap := &mat.Dense{}
	ap.Mul(a, p)
	apa := &mat.Dense{}
	apa.Mul(ap, a.T())

	// K*R*K'
	krk := mat.NewDense(state.ErrLen, state.ErrLen, nil)
	krk.Outer(r, kv, kv)
	apa.Add(apa, krk)

	return matrix.Symmetrize(p, apa)
}

// Update corrects the filter state using measurement m and returns the corrected estimate.
// It returns error wrapping ErrInnovation if the measurement fails the innovation gate,
// in which case the filter is left untouched.
func (f *Filter) Update(m Measurement) (measure.Estimate, error) {
	p, err := state.CovFromSym(f.p)
	if err != nil {
		return nil, err
	}

	st, err := f.linearise(f.x, p, m)
	if err != nil {
		return nil, err
	}

	d := st.innov(st.y)
	k, err := f.gain(f.x, p, st, d)
	if err != nil {
		return nil, err
	}

	dx := make([]float64, state.ErrLen)
	for i := range dx {
		dx[i] = k[i] * d
	}

	x, err := state.Retract(f.x, dx)
	if err != nil {
		return nil, err
	}

	cov := mat.NewSymDense(state.ErrLen, nil)
	cov.CopySym(f.p)
	if err := joseph(cov, &st.h, k, m.Var); err != nil {
		return nil, err
	}

	f.x = x
	f.p = cov
	f.k = mat.NewVecDense(state.ErrLen, k[:])

	return estimate.NewNav(x.Vec(scalar.Float{}), f.p)
}

// State returns filter state
func (f *Filter) State() mat.Vector {
	return f.x.Vec(scalar.Float{})
}

// SetState sets filter state to x.
// It returns error if x dimension does not match the navigation state layout.
func (f *Filter) SetState(x mat.Vector) error {
	v, err := state.FromVec(x)
	if err != nil {
		return err
	}
	f.x = v

	return nil
}

// Cov returns filter error state covariance
func (f *Filter) Cov() mat.Symmetric {
	cov := mat.NewSymDense(f.p.SymmetricDim(), nil)
	cov.CopySym(f.p)

	return cov
}

// SetCov sets filter error state covariance to cov.
// It returns error if either cov is nil or its dimensions are not the same as filter covariance dimensions.
func (f *Filter) SetCov(cov mat.Symmetric) error {
	if cov == nil {
		return fmt.Errorf("invalid covariance matrix: %v", cov)
	}

	if cov.SymmetricDim() != f.p.SymmetricDim() {
		return fmt.Errorf("invalid covariance matrix dims: [%d x %d]", cov.SymmetricDim(), cov.SymmetricDim())
	}

	f.p.CopySym(cov)

	return nil
}

// Gain returns the Kalman gain of the last accepted measurement
func (f *Filter) Gain() mat.Vector {
	k := &mat.VecDense{}
	k.CloneFromVec(f.k)

	return k
}
