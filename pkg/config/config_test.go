package config

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MMartini1/endline-tension-meter/pkg/storage"
)

func TestDefault(t *testing.T) {
	s := Default()

	assert.True(t, s.Echo)
	assert.Equal(t, uint32(1000), s.LogInterval)
	assert.Equal(t, uint32(10000), s.SyncInterval)
	assert.Equal(t, float32(0), s.CalFactor)
	assert.Equal(t, float32(1000), s.ZeroOffset)
	assert.Equal(t, float32(1700), s.TripValue)
}

func TestSettingsDetected(t *testing.T) {
	s := Default()
	assert.False(t, s.SettingsDetected())

	s.CalFactor = 412.5
	s.ZeroOffset = -38212
	assert.True(t, s.SettingsDetected())
}

func TestRenderParse_RoundTrip(t *testing.T) {
	records := []Settings{
		Default(),
		{Echo: false, LogInterval: 250, SyncInterval: 2500, CalFactor: 412.25, ZeroOffset: -38212, TripValue: 900},
		{Echo: true, LogInterval: 1, SyncInterval: 1, CalFactor: -0.5, ZeroOffset: 0, TripValue: 1700},
	}

	for _, want := range records {
		var buf bytes.Buffer
		require.NoError(t, want.Render(&buf))

		got := Default()
		got.Parse(&buf)
		assert.Equal(t, want, got)
	}
}

func TestParse_UnknownKeysIgnored(t *testing.T) {
	s := Default()
	s.Parse(strings.NewReader("wifi_ssid = boat\nlog_interval = 500\n"))

	assert.Equal(t, uint32(500), s.LogInterval)
	assert.Equal(t, uint32(10000), s.SyncInterval)
}

func TestParse_MalformedLinesIgnored(t *testing.T) {
	s := Default()
	s.Parse(strings.NewReader("log_interval\nlog_interval 500\nlog_interval : 500\n= 500\ncal_factor = not_a_number\n\n"))

	assert.Equal(t, Default(), s)
}

func TestParse_MissingKeysKeepDefaults(t *testing.T) {
	s := Default()
	s.Parse(strings.NewReader("trip_value = 2100.00\n"))

	assert.Equal(t, float32(2100), s.TripValue)
	assert.Equal(t, uint32(1000), s.LogInterval)
	assert.Equal(t, float32(1000), s.ZeroOffset)
}

func TestParse_OneKeyPerLine(t *testing.T) {
	// Extra tokens after the value never apply a second key.
	s := Default()
	s.Parse(strings.NewReader("trip_value = 2100.00 zero_offset = 5\n"))

	assert.Equal(t, float32(2100), s.TripValue)
	assert.Equal(t, float32(1000), s.ZeroOffset)
}

func TestStore_FirstRunCreatesDefaults(t *testing.T) {
	card := storage.NewMemCard()
	st := NewStore(card)

	s, err := st.Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
	assert.False(t, s.SettingsDetected())

	data, ok := card.Contents(FileName)
	require.True(t, ok, "default record should be persisted")
	assert.Equal(t, "echo = 1\nlog_interval = 1000\nsync_interval = 10000\ncal_factor = 0.00\nzero_offset = 1000.00\ntrip_value = 1700.00\n", string(data))
}

func TestStore_SaveLoad_RoundTrip(t *testing.T) {
	card := storage.NewMemCard()
	st := NewStore(card)

	want := Settings{Echo: false, LogInterval: 500, SyncInterval: 5000, CalFactor: 103.77, ZeroOffset: -4411, TripValue: 1250}
	require.NoError(t, st.Save(want))

	got, err := st.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestStore_SaveRewritesWholeRecord(t *testing.T) {
	card := storage.NewMemCard()
	st := NewStore(card)
	require.NoError(t, st.Save(Default()))

	first, _ := card.Contents(FileName)

	changed := Default()
	changed.LogInterval = 100
	require.NoError(t, st.Save(changed))

	second, ok := card.Contents(FileName)
	require.True(t, ok)
	// Full rewrite: same shape as the first record, one value changed,
	// nothing appended.
	assert.Equal(t, len(strings.Split(string(first), "\n")), len(strings.Split(string(second), "\n")))
	assert.Contains(t, string(second), "log_interval = 100\n")
	assert.NotContains(t, string(second), "log_interval = 1000\n")
}
