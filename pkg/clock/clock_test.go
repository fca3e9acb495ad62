package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatUTC(t *testing.T) {
	cases := []struct {
		in   time.Time
		want string
	}{
		{time.Date(2026, 8, 31, 12, 4, 9, 0, time.UTC), "2026-08-31T12:04:09Z"},
		{time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), "2026-01-01T00:00:00Z"},
		// Sub-second precision is dropped, not rounded up.
		{time.Date(2026, 12, 31, 23, 59, 59, 999e6, time.UTC), "2026-12-31T23:59:59Z"},
		// Non-UTC inputs are converted.
		{time.Date(2026, 6, 15, 2, 30, 0, 0, time.FixedZone("AEST", 10*3600)), "2026-06-14T16:30:00Z"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, FormatUTC(c.in))
	}
}

func TestSystemRTC_Adjust(t *testing.T) {
	rtc := NewSystemRTC()
	require.NoError(t, rtc.Begin())
	assert.True(t, rtc.Initialized())

	target := time.Now().UTC().Add(-3 * time.Hour)
	require.NoError(t, rtc.Adjust(target))
	assert.WithinDuration(t, target, rtc.Now(), time.Second)
}

func TestMockRTC(t *testing.T) {
	rtc := &MockRTC{Time: time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), Unset: true}
	require.NoError(t, rtc.Begin())
	assert.False(t, rtc.Initialized())

	target := time.Date(2026, 9, 1, 6, 0, 0, 0, time.UTC)
	require.NoError(t, rtc.Adjust(target))
	assert.True(t, rtc.Initialized())
	assert.Equal(t, target, rtc.Now())
	assert.Equal(t, []time.Time{target}, rtc.Adjusted)
}

func TestNewMillis_Monotonic(t *testing.T) {
	millis := NewMillis()
	a := millis()
	time.Sleep(5 * time.Millisecond)
	b := millis()
	assert.GreaterOrEqual(t, b-a, uint32(5))
}
