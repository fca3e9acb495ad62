package battery

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVolts(t *testing.T) {
	assert.InDelta(t, 0.0, Volts(0), 1e-6)
	assert.InDelta(t, 3.3, Volts(512), 1e-4)
	assert.InDelta(t, 6.6, Volts(1024), 1e-4)
}

func TestCountsForVolts_RoundTrips(t *testing.T) {
	for _, v := range []float32{3.2, 3.5, 3.7, 4.2} {
		got := Volts(CountsForVolts(v))
		assert.InDelta(t, v, got, 0.01, "volts %v", v)
	}
}

func TestModeStack_PushPop(t *testing.T) {
	pin := NewMockPin(512)
	s := NewModeStack(pin)

	require.NoError(t, s.Push(ModeAnalogInput))
	assert.Equal(t, ModeAnalogInput, pin.Mode())
	require.NoError(t, s.Pop())
	assert.Equal(t, ModeOutput, pin.Mode())

	assert.Error(t, s.Pop())
}

func TestMonitor_Check(t *testing.T) {
	pin := NewMockPin(CountsForVolts(4.0))
	m := NewMonitor(pin)

	volts, low, err := m.Check()
	require.NoError(t, err)
	assert.InDelta(t, 4.0, volts, 0.01)
	assert.False(t, low)
	// The pin is back in output mode, ready to carry the green channel.
	assert.Equal(t, ModeOutput, pin.Mode())
	assert.Equal(t, []PinMode{ModeAnalogInput, ModeOutput}, pin.Modes)
}

func TestMonitor_CheckLow(t *testing.T) {
	pin := NewMockPin(CountsForVolts(3.2))
	m := NewMonitor(pin)

	volts, low, err := m.Check()
	require.NoError(t, err)
	assert.Less(t, volts, LowVolts)
	assert.True(t, low)
}

func TestMonitor_CheckRestoresModeOnReadError(t *testing.T) {
	pin := NewMockPin(0)
	pin.ReadErr = errors.New("adc dead")
	m := NewMonitor(pin)

	_, _, err := m.Check()
	assert.Error(t, err)
	assert.Equal(t, ModeOutput, pin.Mode())
}
