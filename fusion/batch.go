package fusion

import (
	"context"
	"errors"

	measure "github.com/milosgajdos/go-measure"
	"github.com/milosgajdos/go-measure/estimate"
	"github.com/milosgajdos/go-measure/scalar"
	"github.com/milosgajdos/go-measure/state"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

// UpdateBatch corrects the filter state using all measurements in ms and returns the corrected estimate.
//
// Every measurement is linearised concurrently at the current state. The corrections are
// then applied one after another in the order of ms, each seeing the covariance left by
// the previous one, and the accumulated error state correction is applied to the state once.
//
// It returns error without touching the filter if any measurement is invalid or ctx is done
// before the corrections start. Measurements rejected by the innovation gate are skipped and
// reported in the returned error alongside a valid estimate; a batch with no accepted
// measurement leaves the filter untouched.
func (f *Filter) UpdateBatch(ctx context.Context, ms []Measurement) (measure.Estimate, error) {
	x0 := *f.x
	p0, err := state.CovFromSym(f.p)
	if err != nil {
		return nil, err
	}

	steps := make([]*step, len(ms))
	g, gctx := errgroup.WithContext(ctx)
	for i, m := range ms {
		i, m := i, m
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			st, err := f.linearise(&x0, p0, m)
			if err != nil {
				return err
			}
			steps[i] = st

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cov := mat.NewSymDense(state.ErrLen, nil)
	cov.CopySym(f.p)
	dx := make([]float64, state.ErrLen)
	var gain *state.Column[float64]
	var rejected []error

	for _, st := range steps {
		p, err := state.CovFromSym(cov)
		if err != nil {
			return nil, err
		}

		// prediction linearised around the accumulated correction
		y := st.y
		for i, h := range st.h {
			y += h * dx[i]
		}

		d := st.innov(y)
		k, err := f.gain(&x0, p, st, d)
		if err != nil {
			if errors.Is(err, ErrInnovation) {
				rejected = append(rejected, err)
				continue
			}
			return nil, err
		}

		for i := range dx {
			dx[i] += k[i] * d
		}

		if err := joseph(cov, &st.h, k, st.m.Var); err != nil {
			return nil, err
		}
		gain = k
	}

	// nothing accepted
	if gain == nil {
		est, err := estimate.NewNav(f.x.Vec(scalar.Float{}), f.p)
		if err != nil {
			return nil, err
		}
		return est, errors.Join(rejected...)
	}

	x, err := state.Retract(&x0, dx)
	if err != nil {
		return nil, err
	}
	f.x = x
	f.p = cov
	f.k = mat.NewVecDense(state.ErrLen, gain[:])

	est, err := estimate.NewNav(x.Vec(scalar.Float{}), f.p)
	if err != nil {
		return nil, err
	}

	return est, errors.Join(rejected...)
}
