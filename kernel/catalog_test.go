package kernel

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/milosgajdos/go-measure/scalar"
	"github.com/milosgajdos/go-measure/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/dual"
)

func TestIDs(t *testing.T) {
	assert := assert.New(t)

	ids := IDs()
	assert.Len(ids, 11)

	names := make(map[string]bool)
	for _, id := range ids {
		assert.True(id.Valid())
		names[id.String()] = true
	}
	assert.Len(names, len(ids))
	assert.Equal("airspeed", Airspeed.String())
	assert.Equal("mag_z", MagZ.String())

	bad := ID(200)
	assert.False(bad.Valid())
	assert.Equal("ID(200)", bad.String())

	s, err := Support(bad)
	assert.Nil(s)
	assert.True(errors.Is(err, ErrUnknown))

	hk, predict, err := Lookup[float64](bad)
	assert.Nil(hk)
	assert.Nil(predict)
	assert.True(errors.Is(err, ErrUnknown))

	err = Eval[float64](bad, f, states[0], covs[0], prm, Output[float64]{})
	assert.True(errors.Is(err, ErrUnknown))

	_, err = Predict[float64](bad, f, states[0], prm)
	assert.True(errors.Is(err, ErrUnknown))
}

func TestSupport(t *testing.T) {
	assert := assert.New(t)

	for _, id := range IDs() {
		support, err := Support(id)
		require.NoError(t, err)

		in := make(map[int]bool)
		for _, j := range support {
			in[j] = true
		}

		for i, x := range states {
			h := new(state.Column[float64])
			for j := range h {
				h[j] = math.NaN()
			}

			err := Eval[float64](id, f, x, covs[i], prm, Output[float64]{H: h})
			require.NoError(t, err)

			for j := range h {
				if in[j] {
					assert.NotEqual(0.0, h[j], "%v: index %d", id, j)
					continue
				}
				assert.Equal(0.0, h[j], "%v: index %d", id, j)
			}
		}
	}
}

func TestNumericJacobian(t *testing.T) {
	assert := assert.New(t)

	settings := &fd.JacobianSettings{Formula: fd.Central}

	for _, id := range IDs() {
		hk, predict, err := Lookup[float64](id)
		require.NoError(t, err)

		for i, x := range states[:5] {
			h := new(state.Column[float64])
			hk(f, x, covs[i], prm, Output[float64]{H: h})

			jac := mat.NewDense(1, state.ErrLen, nil)
			fd.Jacobian(jac, func(y, dx []float64) {
				xr, err := state.Retract(x, dx)
				if err != nil {
					panic(err)
				}
				y[0] = predict(f, xr, prm)
			}, make([]float64, state.ErrLen), settings)

			for j := range h {
				assert.InDelta(jac.At(0, j), h[j], 1e-6*(1+math.Abs(h[j])), "%v: index %d", id, j)
			}
		}
	}
}

func TestGain(t *testing.T) {
	assert := assert.New(t)

	for _, id := range IDs() {
		for i, x := range states {
			p := covs[i]

			h := new(state.Column[float64])
			require.NoError(t, Eval[float64](id, f, x, p, prm, Output[float64]{H: h}))

			s := InnovVar[float64](f, h, p, 0.05)
			assert.InDelta(mat.Inner(h.Vec(f), p.Sym(f), h.Vec(f))+0.05, s, 1e-9)

			k := new(state.Column[float64])
			kprm := prm
			kprm.InnovVar = s
			require.NoError(t, Eval[float64](id, f, x, p, kprm, Output[float64]{K: k}))

			ref := refGain(p, h, s, prm.Epsilon)
			for j := range k {
				assert.InDelta(ref[j], k[j], 1e-9*(1+math.Abs(ref[j])), "%v: index %d", id, j)
			}
		}
	}
}

func TestOutputIndependence(t *testing.T) {
	assert := assert.New(t)

	for _, id := range IDs() {
		hk, _, err := Lookup[float64](id)
		require.NoError(t, err)

		x, p := states[3], covs[3]

		h, k := new(state.Column[float64]), new(state.Column[float64])
		hk(f, x, p, prm, Output[float64]{H: h, K: k})

		hOnly := new(state.Column[float64])
		hk(f, x, p, prm, Output[float64]{H: hOnly})

		kOnly := new(state.Column[float64])
		hk(f, x, p, prm, Output[float64]{K: kOnly})

		assert.Empty(cmp.Diff(*h, *hOnly), id.String())
		assert.Empty(cmp.Diff(*k, *kOnly), id.String())
	}
}

func TestOpCounts(t *testing.T) {
	assert := assert.New(t)

	for _, id := range IDs() {
		hk, _, err := Lookup[float64](id)
		require.NoError(t, err)

		x, p := states[4], covs[4]
		count := func(wantH, wantK bool) int {
			var out Output[float64]
			if wantH {
				out.H = new(state.Column[float64])
			}
			if wantK {
				out.K = new(state.Column[float64])
			}
			c := &counter{}
			hk(c, x, p, prm, out)
			return c.n
		}

		none := count(false, false)
		hOnly := count(true, false)
		kOnly := count(false, true)
		both := count(true, true)

		assert.True(none < hOnly, id.String())
		assert.True(none < kOnly, id.String())
		assert.True(hOnly < both, id.String())
		assert.True(kOnly < both, id.String())
		// gain alone does no Jacobian work and vice versa
		assert.Equal(both, hOnly+kOnly-none, id.String())
	}
}

func TestDual(t *testing.T) {
	assert := assert.New(t)

	var d scalar.Dual
	dprm := Params[dual.Number]{
		InnovVar: d.Const(prm.InnovVar),
		Epsilon:  d.Const(prm.Epsilon),
		Range:    d.Const(prm.Range),
		Coef:     d.Const(prm.Coef),
	}

	for _, id := range IDs() {
		support, err := Support(id)
		require.NoError(t, err)

		for i, x := range states[:5] {
			p := covs[i]

			h, k := new(state.Column[float64]), new(state.Column[float64])
			require.NoError(t, Eval[float64](id, f, x, p, prm, Output[float64]{H: h, K: k}))

			dx := state.Lift[dual.Number](d, x)
			dp := state.LiftCov[dual.Number](d, p)
			dh, dk := new(state.Column[dual.Number]), new(state.Column[dual.Number])
			require.NoError(t, Eval[dual.Number](id, d, dx, dp, dprm, Output[dual.Number]{H: dh, K: dk}))

			// same numbers regardless of the scalar type
			for j := range h {
				assert.Equal(h[j], dh[j].Real, "%v: index %d", id, j)
				assert.Equal(k[j], dk[j].Real, "%v: index %d", id, j)
			}

			// derivative of the prediction along each non-attitude state equals H
			for _, e := range support {
				if e < state.ErrVelN {
					continue
				}
				seeded := state.Lift[dual.Number](d, x)
				seeded[e+1].Emag = 1.0

				y, err := Predict[dual.Number](id, d, seeded, dprm)
				require.NoError(t, err)
				assert.InDelta(h[e], y.Emag, 1e-9*(1+math.Abs(h[e])), "%v: index %d", id, e)
			}
		}
	}
}

func BenchmarkKernels(b *testing.B) {
	x, p := states[0], covs[0]
	out := Output[float64]{H: new(state.Column[float64]), K: new(state.Column[float64])}

	for _, id := range IDs() {
		hk, _, err := Lookup[float64](id)
		if err != nil {
			b.Fatal(err)
		}
		b.Run(id.String(), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				hk(f, x, p, prm, out)
			}
		})
	}
}
