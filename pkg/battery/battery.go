// Package battery measures the pack voltage through the sense input
// that shares a pin with the indicator's green channel. The pin is a
// scoped resource: its mode is pushed, switched for the analog read,
// and popped on every exit path.
package battery

import (
	"errors"
	"fmt"
)

// Electrical constants for the sense divider.
const (
	// ReferenceVolts is the ADC reference.
	ReferenceVolts = 3.3
	// DividerRatio undoes the on-board halving divider.
	DividerRatio = 2
	// FullScale is the ADC count range.
	FullScale = 1024
	// LowVolts is the low-battery threshold.
	LowVolts = float32(3.5)
)

// PinMode is the dual-role pin's configured direction.
type PinMode uint8

const (
	ModeOutput PinMode = iota
	ModeAnalogInput
)

// DualRolePin is a pin that can be an LED output or an analog input,
// one at a time.
type DualRolePin interface {
	SetMode(m PinMode) error
	Mode() PinMode
	// ReadCounts samples the pin; only meaningful in ModeAnalogInput.
	ReadCounts() (uint16, error)
}

// ModeStack wraps a DualRolePin with an explicit mode stack so a
// temporary mode switch is guaranteed to be undone.
type ModeStack struct {
	pin   DualRolePin
	stack []PinMode
}

func NewModeStack(pin DualRolePin) *ModeStack {
	return &ModeStack{pin: pin}
}

// Push saves the current mode and switches to m.
func (s *ModeStack) Push(m PinMode) error {
	prev := s.pin.Mode()
	if err := s.pin.SetMode(m); err != nil {
		return fmt.Errorf("failed to switch pin mode: %w", err)
	}
	s.stack = append(s.stack, prev)
	return nil
}

// Pop restores the mode saved by the matching Push.
func (s *ModeStack) Pop() error {
	if len(s.stack) == 0 {
		return errors.New("pin mode stack is empty")
	}
	prev := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	if err := s.pin.SetMode(prev); err != nil {
		return fmt.Errorf("failed to restore pin mode: %w", err)
	}
	return nil
}

func (s *ModeStack) ReadCounts() (uint16, error) {
	return s.pin.ReadCounts()
}

// Monitor converts sense-pin samples to pack voltage. Checks run only
// at sync cadence; an analog read costs an LED mode round-trip.
type Monitor struct {
	pin       *ModeStack
	threshold float32
}

func NewMonitor(pin DualRolePin) *Monitor {
	return &Monitor{pin: NewModeStack(pin), threshold: LowVolts}
}

// Check reads the pack voltage and reports whether it is below the
// low-battery threshold. The pin mode is restored before Check
// returns, whatever path it takes; the caller re-applies the LED
// color afterwards.
func (m *Monitor) Check() (volts float32, low bool, err error) {
	if err := m.pin.Push(ModeAnalogInput); err != nil {
		return 0, false, err
	}
	defer func() {
		if popErr := m.pin.Pop(); popErr != nil && err == nil {
			err = popErr
		}
	}()

	counts, err := m.pin.ReadCounts()
	if err != nil {
		return 0, false, fmt.Errorf("failed to read battery sense: %w", err)
	}
	volts = Volts(counts)
	return volts, volts < m.threshold, nil
}

// Volts converts a raw sense count to pack voltage: undo the divider,
// scale by the reference, normalize by the count range.
func Volts(counts uint16) float32 {
	return float32(counts) * DividerRatio * ReferenceVolts / FullScale
}
