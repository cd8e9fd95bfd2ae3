package kernel

import (
	"errors"
	"fmt"

	"github.com/milosgajdos/go-measure/scalar"
	"github.com/milosgajdos/go-measure/state"
)

// ErrUnknown is returned when dispatching an ID that is not in the catalog
var ErrUnknown = errors.New("unknown measurement kernel")

// ID identifies a measurement kernel
type ID uint8

// Measurement kernels
const (
	Airspeed ID = iota
	Sideslip
	MagX
	MagY
	MagZ
	Declination
	FlowX
	FlowY
	DragX
	DragY
	Height
	numIDs
)

// info describes a catalog entry
type info struct {
	name    string
	support []int
}

var catalog = [numIDs]info{
	Airspeed: {
		name:    "airspeed",
		support: []int{state.ErrVelN, state.ErrVelE, state.ErrVelD, state.ErrWindN, state.ErrWindE},
	},
	Sideslip: {
		name: "sideslip",
		support: []int{
			state.ErrAngX, state.ErrAngY, state.ErrAngZ,
			state.ErrVelN, state.ErrVelE, state.ErrVelD,
			state.ErrWindN, state.ErrWindE,
		},
	},
	MagX: {
		name: "mag_x",
		support: []int{
			state.ErrAngY, state.ErrAngZ,
			state.ErrMagN, state.ErrMagE, state.ErrMagD,
			state.ErrMagBiasX,
		},
	},
	MagY: {
		name: "mag_y",
		support: []int{
			state.ErrAngX, state.ErrAngZ,
			state.ErrMagN, state.ErrMagE, state.ErrMagD,
			state.ErrMagBiasY,
		},
	},
	MagZ: {
		name: "mag_z",
		support: []int{
			state.ErrAngX, state.ErrAngY,
			state.ErrMagN, state.ErrMagE, state.ErrMagD,
			state.ErrMagBiasZ,
		},
	},
	Declination: {
		name:    "declination",
		support: []int{state.ErrMagN, state.ErrMagE},
	},
	FlowX: {
		name:    "flow_x",
		support: []int{state.ErrAngX, state.ErrAngZ, state.ErrVelN, state.ErrVelE, state.ErrVelD},
	},
	FlowY: {
		name:    "flow_y",
		support: []int{state.ErrAngY, state.ErrAngZ, state.ErrVelN, state.ErrVelE, state.ErrVelD},
	},
	DragX: {
		name: "drag_x",
		support: []int{
			state.ErrAngY, state.ErrAngZ,
			state.ErrVelN, state.ErrVelE, state.ErrVelD,
			state.ErrWindN, state.ErrWindE,
		},
	},
	DragY: {
		name: "drag_y",
		support: []int{
			state.ErrAngX, state.ErrAngZ,
			state.ErrVelN, state.ErrVelE, state.ErrVelD,
			state.ErrWindN, state.ErrWindE,
		},
	},
	Height: {
		name:    "height",
		support: []int{state.ErrPosD},
	},
}

// entry pairs a kernel with its measurement prediction
type entry[T any] struct {
	hk      Func[T]
	predict PredictFunc[T]
}

// table returns the dispatch table for scalar type T
func table[T any]() [numIDs]entry[T] {
	return [numIDs]entry[T]{
		Airspeed:    {AirspeedHK[T], AirspeedPredict[T]},
		Sideslip:    {SideslipHK[T], SideslipPredict[T]},
		MagX:        {MagXHK[T], MagXPredict[T]},
		MagY:        {MagYHK[T], MagYPredict[T]},
		MagZ:        {MagZHK[T], MagZPredict[T]},
		Declination: {DeclinationHK[T], DeclinationPredict[T]},
		FlowX:       {FlowXHK[T], FlowXPredict[T]},
		FlowY:       {FlowYHK[T], FlowYPredict[T]},
		DragX:       {DragXHK[T], DragXPredict[T]},
		DragY:       {DragYHK[T], DragYPredict[T]},
		Height:      {HeightHK[T], HeightPredict[T]},
	}
}

// IDs returns all kernel IDs in the catalog
func IDs() []ID {
	ids := make([]ID, numIDs)
	for i := range ids {
		ids[i] = ID(i)
	}

	return ids
}

// Valid returns true if id is in the catalog
func (id ID) Valid() bool {
	return id < numIDs
}

// String implements the Stringer interface.
func (id ID) String() string {
	if !id.Valid() {
		return fmt.Sprintf("ID(%d)", uint8(id))
	}

	return catalog[id].name
}

// Support returns error state indices of the nonzero Jacobian entries of kernel id.
// It returns error if id is not in the catalog.
func Support(id ID) ([]int, error) {
	if !id.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrUnknown, id)
	}

	s := make([]int, len(catalog[id].support))
	copy(s, catalog[id].support)

	return s, nil
}

// Lookup returns kernel and measurement prediction functions of id for scalar type T.
// It returns error if id is not in the catalog.
func Lookup[T any](id ID) (Func[T], PredictFunc[T], error) {
	if !id.Valid() {
		return nil, nil, fmt.Errorf("%w: %v", ErrUnknown, id)
	}

	e := table[T]()[id]

	return e.hk, e.predict, nil
}

// Eval evaluates kernel id and writes the requested outputs to out.
// It returns error if id is not in the catalog.
func Eval[T any](id ID, o scalar.Ops[T], x *state.Vector[T], p *state.Cov[T], prm Params[T], out Output[T]) error {
	hk, _, err := Lookup[T](id)
	if err != nil {
		return err
	}

	hk(o, x, p, prm, out)

	return nil
}

// Predict returns the measurement kernel id predicts in state x.
// It returns error if id is not in the catalog.
func Predict[T any](id ID, o scalar.Ops[T], x *state.Vector[T], prm Params[T]) (T, error) {
	_, predict, err := Lookup[T](id)
	if err != nil {
		var zero T
		return zero, err
	}

	return predict(o, x, prm), nil
}
