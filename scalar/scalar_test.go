package scalar

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/num/dual"
)

var (
	_ Ops[float64]        = Float{}
	_ Ops[dual.Number] = Dual{}
)

func TestFloatMax(t *testing.T) {
	assert := assert.New(t)

	var f Float
	assert.Equal(2.0, f.Max(1.0, 2.0))
	assert.Equal(2.0, f.Max(2.0, 1.0))
	assert.Equal(1e-9, f.Max(1e-9, -3.0))
	// NaN never wins
	assert.Equal(1e-9, f.Max(1e-9, math.NaN()))
}

func TestDualRealMatchesFloat(t *testing.T) {
	assert := assert.New(t)

	var (
		f Float
		d Dual
	)

	a, b := 1.3, -0.7
	da, db := d.Const(a), d.Const(b)

	assert.Equal(f.Add(a, b), d.Real(d.Add(da, db)))
	assert.Equal(f.Sub(a, b), d.Real(d.Sub(da, db)))
	assert.Equal(f.Mul(a, b), d.Real(d.Mul(da, db)))
	assert.Equal(f.Div(a, b), d.Real(d.Div(da, db)))
	assert.Equal(f.Neg(a), d.Real(d.Neg(da)))
	assert.Equal(f.Sqrt(a), d.Real(d.Sqrt(da)))
	assert.Equal(f.Pow(a, -0.5), d.Real(d.Pow(da, -0.5)))
	assert.Equal(f.Max(a, b), d.Real(d.Max(da, db)))
	assert.Equal(f.Atan2(b, a), d.Real(d.Atan2(db, da)))
}

func TestDualDerivatives(t *testing.T) {
	assert := assert.New(t)

	var d Dual
	delta := 1e-12

	x := dual.Number{Real: 2.0, Emag: 1.0}
	c := d.Const(3.0)

	assert.InDelta(3.0, d.Mul(x, c).Emag, delta)
	// d/dx 3/x = -3/x^2
	assert.InDelta(-0.75, d.Div(c, x).Emag, delta)
	// d/dx x^-0.5 = -0.5 x^-1.5
	assert.InDelta(-0.5*math.Pow(2.0, -1.5), d.Pow(x, -0.5).Emag, delta)
	assert.InDelta(0.5/math.Sqrt(2.0), d.Sqrt(x).Emag, delta)
	assert.InDelta(-1.0, d.Neg(x).Emag, delta)
	assert.InDelta(1.0, d.Add(x, c).Emag, delta)
	assert.InDelta(-1.0, d.Sub(c, x).Emag, delta)
	assert.Equal(dual.Number{Real: 5.0, Emag: 1.0}, d.Add(x, c))
	assert.Equal(dual.Number{Real: -2.0, Emag: -1.0}, d.Neg(x))

	// d/dy atan2(y, 1) at y=2 is 1/(1+4)
	y := dual.Number{Real: 2.0, Emag: 1.0}
	assert.InDelta(0.2, d.Atan2(y, d.Const(1.0)).Emag, delta)
	// d/dx atan2(1, x) at x=2 is -1/(1+4)
	assert.InDelta(-0.2, d.Atan2(d.Const(1.0), x).Emag, delta)
}
