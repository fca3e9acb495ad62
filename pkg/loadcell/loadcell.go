// Package loadcell is the boundary for the load-cell amplifier. The
// real amplifier head is an MCU streaming raw conversion counts over
// a serial line; tests use the scripted mock.
package loadcell

// GainCode selects the amplifier's programmable gain. Code 0 maps to
// a gain of 1, code 7 to a gain of 128.
type GainCode uint8

const (
	Gain1 GainCode = iota
	Gain2
	Gain4
	Gain8
	Gain16
	Gain32
	Gain64
	Gain128
)

var gainTable = [8]int{1, 2, 4, 8, 16, 32, 64, 128}

// Multiplier returns the amplification factor for the code, so the
// operator sees "16" rather than a register value.
func (g GainCode) Multiplier() int {
	if int(g) >= len(gainTable) {
		return 0
	}
	return gainTable[g]
}

// Amplifier is the load-cell amplifier boundary.
type Amplifier interface {
	// Begin probes the amplifier. Failure is fatal to the logger.
	Begin() error
	// Available reports whether a conversion not yet consumed by
	// Reading is ready.
	Available() bool
	// Reading returns the latest raw conversion and marks it
	// consumed.
	Reading() int32
	SetGain(g GainCode) error
	Gain() GainCode
	// CalibrateAFE recalibrates the analog front end; required after
	// a gain change.
	CalibrateAFE() error
}

var (
	_ Amplifier = (*Serial)(nil)
	_ Amplifier = (*Mock)(nil)
)
