// Package clock is the boundary for the battery-backed real-time
// clock and for the monotonic millisecond tick domain the logging
// loop runs on.
package clock

import (
	"fmt"
	"sync"
	"time"
)

// RTC is the real-time clock boundary. Time is always UTC.
type RTC interface {
	// Begin probes the clock. Failure is fatal to the logger.
	Begin() error
	// Initialized reports whether the clock has ever been set.
	Initialized() bool
	Now() time.Time
	// Adjust sets the clock.
	Adjust(t time.Time) error
}

var (
	_ RTC = (*SystemRTC)(nil)
	_ RTC = (*MockRTC)(nil)
)

// FormatUTC renders t the way log rows and the z command expect:
// second precision ISO-8601 with a Z suffix.
func FormatUTC(t time.Time) string {
	u := t.UTC()
	return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:%02dZ",
		u.Year(), int(u.Month()), u.Day(), u.Hour(), u.Minute(), u.Second())
}

// SystemRTC serves the host clock as the RTC. Adjust cannot set the
// host clock, so it tracks an offset instead.
type SystemRTC struct {
	mu     sync.Mutex
	offset time.Duration
}

func NewSystemRTC() *SystemRTC { return &SystemRTC{} }

func (r *SystemRTC) Begin() error      { return nil }
func (r *SystemRTC) Initialized() bool { return true }

func (r *SystemRTC) Now() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return time.Now().UTC().Add(r.offset)
}

func (r *SystemRTC) Adjust(t time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.offset = time.Until(t.UTC())
	return nil
}

// MockRTC is a settable clock for tests.
type MockRTC struct {
	Time     time.Time
	Unset    bool
	ErrOn    bool
	Begun    bool
	Adjusted []time.Time
}

func (r *MockRTC) Begin() error {
	r.Begun = true
	if r.ErrOn {
		return fmt.Errorf("rtc not responding")
	}
	return nil
}

func (r *MockRTC) Initialized() bool { return !r.Unset }
func (r *MockRTC) Now() time.Time    { return r.Time }

func (r *MockRTC) Adjust(t time.Time) error {
	r.Time = t
	r.Unset = false
	r.Adjusted = append(r.Adjusted, t)
	return nil
}

// NewMillis returns a monotonic millisecond counter starting at zero.
// The counter lives in uint32 space and wraps; interval arithmetic on
// it must use modular subtraction, never absolute comparison.
func NewMillis() func() uint32 {
	start := time.Now()
	return func() uint32 {
		return uint32(time.Since(start).Milliseconds())
	}
}
