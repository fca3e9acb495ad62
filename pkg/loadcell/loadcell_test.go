package loadcell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGainCode_Multiplier(t *testing.T) {
	want := map[GainCode]int{
		Gain1: 1, Gain2: 2, Gain4: 4, Gain8: 8,
		Gain16: 16, Gain32: 32, Gain64: 64, Gain128: 128,
	}
	for code, mult := range want {
		assert.Equal(t, mult, code.Multiplier())
	}
	assert.Equal(t, 0, GainCode(8).Multiplier())
}

func TestParseLine(t *testing.T) {
	cases := []struct {
		line    string
		want    int32
		wantErr bool
	}{
		{"12345,812345", 812345, false},
		{"0,-42", -42, false},
		{"4294967295,0", 0, false},
		{"", 0, true},
		{"12345", 0, true},
		{"12345,1,2", 0, true},
		{"x,812345", 0, true},
		{"12345,x", 0, true},
		{"-1,812345", 0, true},
	}
	for _, c := range cases {
		raw, err := parseLine(c.line)
		if c.wantErr {
			assert.Error(t, err, c.line)
			continue
		}
		require.NoError(t, err, c.line)
		assert.Equal(t, c.want, raw, c.line)
	}
}

func TestMock_ServesScriptedReadings(t *testing.T) {
	m := NewMock(10, 20, 30)
	require.NoError(t, m.Begin())

	assert.True(t, m.Available())
	assert.Equal(t, int32(10), m.Reading())
	assert.Equal(t, int32(20), m.Reading())
	assert.Equal(t, int32(30), m.Reading())
	// The script's last value repeats.
	assert.Equal(t, int32(30), m.Reading())
}

func TestMock_NotReady(t *testing.T) {
	m := NewMock(10)
	m.NotReady = true
	assert.False(t, m.Available())
}

func TestMock_Gain(t *testing.T) {
	m := NewMock(10)
	assert.Equal(t, Gain16, m.Gain())
	require.NoError(t, m.SetGain(Gain128))
	assert.Equal(t, Gain128, m.Gain())
	require.NoError(t, m.CalibrateAFE())
	assert.Equal(t, 1, m.AFECalls)
}
