package calibration

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MMartini1/endline-tension-meter/pkg/console"
	"github.com/MMartini1/endline-tension-meter/pkg/loadcell"
)

func TestState_Weight(t *testing.T) {
	s := State{ZeroOffset: 1000, CalFactor: 2}
	assert.InDelta(t, 100.0, s.Weight(1200), 1e-4)
	assert.InDelta(t, -50.0, s.Weight(900), 1e-4)
}

func TestState_Weight_ZeroFactor(t *testing.T) {
	s := State{ZeroOffset: 1000, CalFactor: 0}
	w := s.Weight(1200)
	assert.True(t, math.IsInf(float64(w), 1))
}

func TestTare(t *testing.T) {
	amp := loadcell.NewMock(40)
	e := NewEngine(amp, console.New(console.NewMockTransport()), State{ZeroOffset: 1000, CalFactor: 5})

	e.Tare()
	assert.InDelta(t, 40.0, e.State().ZeroOffset, 1e-4)
	// The factor survives a tare.
	assert.InDelta(t, 5.0, e.State().CalFactor, 1e-4)
}

func TestGuided(t *testing.T) {
	// 64 unloaded conversions, then the loaded plateau.
	readings := make([]int32, 64, 65)
	for i := range readings {
		readings[i] = 100
	}
	readings = append(readings, 228)
	amp := loadcell.NewMock(readings...)

	mt := console.NewMockTransport(
		"y\n",    // confirm
		"k",      // scale is empty
		"k",      // weight is on
		"2.00\n", // the known weight
	)
	e := NewEngine(amp, console.New(mt), State{})

	require.True(t, e.Guided())
	assert.InDelta(t, 100.0, e.State().ZeroOffset, 1e-4)
	assert.InDelta(t, 64.0, e.State().CalFactor, 1e-4)

	out := mt.Out.String()
	assert.Contains(t, out, "LC calibration")
	assert.Contains(t, out, "New zero offset: 100.00")
	assert.Contains(t, out, "Calibration weight entered: 2.00")
	assert.Contains(t, out, "New cal factor: 64.00")
}

func TestGuided_Abort(t *testing.T) {
	amp := loadcell.NewMock(100)
	mt := console.NewMockTransport("n\n")
	e := NewEngine(amp, console.New(mt), State{ZeroOffset: 7, CalFactor: 3})

	assert.False(t, e.Guided())
	assert.Equal(t, State{ZeroOffset: 7, CalFactor: 3}, e.State())
	assert.Contains(t, mt.Out.String(), "Calibration aborted")
}

func TestManual(t *testing.T) {
	amp := loadcell.NewMock(100)
	mt := console.NewMockTransport("y\n", "5.00\n", "12.50\n")
	e := NewEngine(amp, console.New(mt), State{})

	require.True(t, e.Manual())
	assert.InDelta(t, 5.0, e.State().ZeroOffset, 1e-4)
	assert.InDelta(t, 12.5, e.State().CalFactor, 1e-4)
	assert.Contains(t, mt.Out.String(), "LC calibrated")
}

func TestManual_Abort(t *testing.T) {
	amp := loadcell.NewMock(100)
	mt := console.NewMockTransport("\n")
	e := NewEngine(amp, console.New(mt), State{ZeroOffset: 7, CalFactor: 3})

	assert.False(t, e.Manual())
	assert.Equal(t, State{ZeroOffset: 7, CalFactor: 3}, e.State())
}

func TestReport(t *testing.T) {
	amp := loadcell.NewMock(100)
	mt := console.NewMockTransport()
	e := NewEngine(amp, console.New(mt), State{ZeroOffset: 1000, CalFactor: 2})

	e.Report(1700)
	out := mt.Out.String()
	assert.Contains(t, out, "LC 0 offset: 1000.00")
	assert.Contains(t, out, "LC cali factor: 2.00")
	assert.Contains(t, out, "LC gain: 16")
	assert.Contains(t, out, "LC trip value: 1700.00")
}
