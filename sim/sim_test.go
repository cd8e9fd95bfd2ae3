package sim

import (
	"math"
	"os"
	"testing"

	"github.com/milosgajdos/go-measure/kernel"
	"github.com/milosgajdos/go-measure/noise"
	"github.com/milosgajdos/go-measure/state"
	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

var (
	cfg   Config
	ideal *noise.Zero
)

func setup() {
	cfg = Config{
		Airspeed: 20.0,
		Yaw:      0.3,
		YawRate:  0.1,
		Height:   50.0,
		Wind:     [2]float64{4.0, -2.0},
		Mag:      [3]float64{0.21, 0.01, 0.43},
	}

	ideal, _ = noise.NewZero(1)
}

func TestMain(m *testing.M) {
	// set up tests
	setup()
	// run the tests
	retCode := m.Run()
	// call with result of m.Run()
	os.Exit(retCode)
}

func TestInitCond(t *testing.T) {
	assert := assert.New(t)

	x := mat.NewVecDense(state.Len, nil)
	x.SetVec(state.QuatW, 1.0)
	cov := mat.NewSymDense(state.ErrLen, nil)
	for i := 0; i < state.ErrLen; i++ {
		cov.SetSym(i, i, 0.25)
	}

	ic, err := NewInitCond(x, cov)
	assert.NoError(err)

	s := ic.State()
	for i := 0; i < x.Len(); i++ {
		assert.Equal(x.AtVec(i), s.AtVec(i))
	}

	c := ic.Cov()
	for i := 0; i < cov.SymmetricDim(); i++ {
		for j := 0; j < cov.SymmetricDim(); j++ {
			assert.Equal(cov.At(i, j), c.At(i, j))
		}
	}

	ic, err = NewInitCond(mat.NewVecDense(2, nil), cov)
	assert.Nil(ic)
	assert.Error(err)

	ic, err = NewInitCond(x, mat.NewSymDense(2, nil))
	assert.Nil(ic)
	assert.Error(err)
}

func TestNewPerturbedInitCond(t *testing.T) {
	assert := assert.New(t)

	f, err := NewFlight(cfg)
	assert.NoError(err)
	x := f.State()

	cov := mat.NewSymDense(state.ErrLen, nil)
	cov.SetSym(state.ErrWindN, state.ErrWindN, 25.0)
	cov.SetSym(state.ErrWindE, state.ErrWindE, 25.0)

	ic, err := NewPerturbedInitCond(x, cov, rand.NewSource(3))
	assert.NoError(err)
	assert.True(mat.Equal(cov, ic.Cov()))

	// only the uncertain block moves
	s := ic.State()
	for i := 0; i < state.Len; i++ {
		switch i {
		case state.WindN, state.WindE:
			assert.NotEqual(x[i], s.AtVec(i), "index %d", i)
			assert.InDelta(x[i], s.AtVec(i), 5*5.0, "index %d", i)
		default:
			assert.InDelta(x[i], s.AtVec(i), 1e-9, "index %d", i)
		}
	}

	ic, err = NewPerturbedInitCond(x, mat.NewSymDense(3, nil), rand.NewSource(3))
	assert.Nil(ic)
	assert.Error(err)
}

func TestNewFlight(t *testing.T) {
	assert := assert.New(t)

	f, err := NewFlight(cfg)
	assert.NotNil(f)
	assert.NoError(err)

	x := f.State()
	assert.Equal(-cfg.Height, x[state.PosD])
	assert.Equal(cfg.Wind[0], x[state.WindN])
	assert.Equal(cfg.Mag[2], x[state.MagD])

	bad := cfg
	bad.Airspeed = 0
	f, err = NewFlight(bad)
	assert.Nil(f)
	assert.Error(err)

	bad = cfg
	bad.Height = math.NaN()
	f, err = NewFlight(bad)
	assert.Nil(f)
	assert.Error(err)
}

func TestFlightStep(t *testing.T) {
	assert := assert.New(t)

	f, err := NewFlight(cfg)
	assert.NoError(err)

	x0 := f.State()
	assert.NoError(f.Step(0.5))
	assert.Error(f.Step(0))
	assert.Equal(0.5, f.Time())

	x1 := f.State()
	assert.InDelta(x0[state.PosN]+0.5*x0[state.VelN], x1[state.PosN], 1e-12)
	assert.InDelta(x0[state.PosE]+0.5*x0[state.VelE], x1[state.PosE], 1e-12)

	// velocity relative to air keeps airspeed
	vn, ve := x1[state.VelN]-x1[state.WindN], x1[state.VelE]-x1[state.WindE]
	assert.InDelta(cfg.Airspeed, math.Hypot(vn, ve), 1e-9)
	assert.InDelta(cfg.Yaw+0.5*cfg.YawRate, math.Atan2(ve, vn), 1e-9)

	// returned state is a copy
	x1[state.PosN] = 1e6
	assert.NotEqual(1e6, f.State()[state.PosN])
}

func TestMeasure(t *testing.T) {
	assert := assert.New(t)

	f, err := NewFlight(cfg)
	assert.NoError(err)

	r, err := f.Measure(Sensor{ID: kernel.Airspeed, Noise: ideal})
	assert.NoError(err)
	assert.InDelta(cfg.Airspeed, r.Value, 1e-6)
	assert.Equal(0.0, r.Var)
	assert.Equal(kernel.Airspeed, r.ID)

	// coordinated flight has no sideslip
	r, err = f.Measure(Sensor{ID: kernel.Sideslip, Noise: ideal})
	assert.NoError(err)
	assert.InDelta(0.0, r.Value, 1e-9)

	r, err = f.Measure(Sensor{ID: kernel.Height, Noise: ideal})
	assert.NoError(err)
	assert.Equal(cfg.Height, r.Value)
	assert.Equal(cfg.Height, r.Range)

	r, err = f.Measure(Sensor{ID: kernel.Declination, Noise: ideal})
	assert.NoError(err)
	assert.InDelta(math.Atan2(cfg.Mag[1], cfg.Mag[0]), r.Value, 1e-12)

	g, err := noise.NewScalar(0.04, rand.NewSource(7))
	assert.NoError(err)
	r, err = f.Measure(Sensor{ID: kernel.Airspeed, Noise: g})
	assert.NoError(err)
	assert.Equal(0.04, r.Var)
	assert.InDelta(cfg.Airspeed, r.Value, 5*0.2)

	// invalid sensors
	_, err = f.Measure(Sensor{ID: kernel.Airspeed})
	assert.Error(err)

	wide, err := noise.NewZero(2)
	assert.NoError(err)
	_, err = f.Measure(Sensor{ID: kernel.Airspeed, Noise: wide})
	assert.Error(err)

	_, err = f.Measure(Sensor{ID: kernel.ID(200), Noise: ideal})
	assert.ErrorIs(err, kernel.ErrUnknown)
}

func TestNewTimePlot(t *testing.T) {
	assert := assert.New(t)

	truth := mat.NewDense(3, 2, nil)
	measure := mat.NewDense(3, 2, nil)
	filter := mat.NewDense(3, 2, nil)

	plt, err := NewTimePlot("wind", "m/s", truth, measure, filter)
	assert.NotNil(plt)
	assert.NoError(err)

	plt, err = NewTimePlot("wind", "m/s", nil, nil, nil)
	assert.Nil(plt)
	assert.Error(err)

	plt, err = NewTimePlot("wind", "m/s", truth, mat.NewDense(3, 1, nil), filter)
	assert.Nil(plt)
	assert.Error(err)
}
