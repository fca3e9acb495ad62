package battery

import "fmt"

// MockPin is a scripted dual-role pin. It records mode transitions so
// tests can prove the save/switch/restore sequence holds on every
// path.
type MockPin struct {
	Counts  uint16
	ReadErr error
	ModeErr error

	mode  PinMode
	Modes []PinMode
}

// NewMockPin creates a pin in output mode reading the given counts.
func NewMockPin(counts uint16) *MockPin {
	return &MockPin{Counts: counts, mode: ModeOutput}
}

func (p *MockPin) SetMode(m PinMode) error {
	if p.ModeErr != nil {
		return p.ModeErr
	}
	p.mode = m
	p.Modes = append(p.Modes, m)
	return nil
}

func (p *MockPin) Mode() PinMode {
	return p.mode
}

func (p *MockPin) ReadCounts() (uint16, error) {
	if p.ReadErr != nil {
		return 0, p.ReadErr
	}
	if p.mode != ModeAnalogInput {
		return 0, fmt.Errorf("read while pin in mode %d", p.mode)
	}
	return p.Counts, nil
}

var _ DualRolePin = (*MockPin)(nil)

// CountsForVolts returns the raw count that converts to the given
// pack voltage, for scripting mock pins.
func CountsForVolts(volts float32) uint16 {
	return uint16(volts * FullScale / (DividerRatio * ReferenceVolts))
}
