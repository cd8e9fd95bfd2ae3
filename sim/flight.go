package sim

import (
	"fmt"
	"math"

	measure "github.com/milosgajdos/go-measure"
	"github.com/milosgajdos/go-measure/kernel"
	"github.com/milosgajdos/go-measure/scalar"
	"github.com/milosgajdos/go-measure/state"
)

// Config configures simulated flight
type Config struct {
	// Airspeed is true airspeed in m/s
	Airspeed float64
	// Yaw is initial heading in radians
	Yaw float64
	// YawRate is turn rate in rad/s
	YawRate float64
	// Height is height above ground in m
	Height float64
	// Wind is north and east wind velocity in m/s
	Wind [2]float64
	// Mag is north, east and down earth magnetic field in gauss
	Mag [3]float64
}

// Flight is level, coordinated flight at constant airspeed and turn rate
type Flight struct {
	c Config
	// t is simulation time
	t float64
	// yaw is current heading
	yaw float64
	// x is true navigation state
	x state.Vector[float64]
}

// NewFlight creates new Flight and returns it.
// It returns error if airspeed or height is not positive.
func NewFlight(c Config) (*Flight, error) {
	if !(c.Airspeed > 0) {
		return nil, fmt.Errorf("invalid airspeed: %v", c.Airspeed)
	}

	if !(c.Height > 0) {
		return nil, fmt.Errorf("invalid height: %v", c.Height)
	}

	f := &Flight{c: c, yaw: c.Yaw}
	f.x[state.PosD] = -c.Height
	f.x[state.WindN], f.x[state.WindE] = c.Wind[0], c.Wind[1]
	f.x[state.MagN], f.x[state.MagE], f.x[state.MagD] = c.Mag[0], c.Mag[1], c.Mag[2]
	f.attitude()

	return f, nil
}

// attitude aligns attitude and velocity with the current heading.
func (f *Flight) attitude() {
	f.x[state.QuatW], f.x[state.QuatX], f.x[state.QuatY], f.x[state.QuatZ] = state.Quat(0, 0, f.yaw)
	f.x[state.VelN] = f.c.Airspeed*math.Cos(f.yaw) + f.c.Wind[0]
	f.x[state.VelE] = f.c.Airspeed*math.Sin(f.yaw) + f.c.Wind[1]
	f.x[state.VelD] = 0
}

// Step advances the flight by dt seconds.
// It returns error if dt is not positive.
func (f *Flight) Step(dt float64) error {
	if !(dt > 0) {
		return fmt.Errorf("invalid time step: %v", dt)
	}

	f.x[state.PosN] += f.x[state.VelN] * dt
	f.x[state.PosE] += f.x[state.VelE] * dt
	f.yaw = math.Remainder(f.yaw+f.c.YawRate*dt, 2*math.Pi)
	f.attitude()
	f.t += dt

	return nil
}

// Time returns simulation time
func (f *Flight) Time() float64 {
	return f.t
}

// State returns a copy of true navigation state
func (f *Flight) State() *state.Vector[float64] {
	x := f.x
	return &x
}

// Sensor is a scalar sensor
type Sensor struct {
	// ID is the measurement kernel of the sensor
	ID kernel.ID
	// Noise is scalar sensor noise
	Noise measure.Noise
	// Coef is the drag coefficient (drag specific force)
	Coef float64
}

// Reading is a sensor reading
type Reading struct {
	// ID is the measurement kernel of the sensor
	ID kernel.ID
	// Time is simulation time of the reading
	Time float64
	// Value is measured value
	Value float64
	// Var is measurement noise variance
	Var float64
	// Range is distance to the ground along the sensor axis
	Range float64
	// Coef is the drag coefficient
	Coef float64
}

// Measure returns reading of sensor s in the current flight state.
// It returns error if s noise is not scalar or its kernel is unknown.
func (f *Flight) Measure(s Sensor) (Reading, error) {
	if s.Noise == nil || s.Noise.Cov().SymmetricDim() != 1 {
		return Reading{}, fmt.Errorf("invalid %v sensor noise", s.ID)
	}

	prm := kernel.Params[float64]{
		Epsilon: 1e-9,
		Range:   f.c.Height,
		Coef:    s.Coef,
	}

	y, err := kernel.Predict(s.ID, scalar.Float{}, &f.x, prm)
	if err != nil {
		return Reading{}, err
	}

	return Reading{
		ID:    s.ID,
		Time:  f.t,
		Value: y + s.Noise.Sample().AtVec(0),
		Var:   s.Noise.Cov().At(0, 0),
		Range: prm.Range,
		Coef:  s.Coef,
	}, nil
}
