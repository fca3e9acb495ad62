package indicator

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
)

// pwmFreq is the soft-PWM frequency for dimmed palette entries.
const pwmFreq = 25 * physic.KiloHertz

// PeriphBackend drives the RGB channels through periph.io GPIO pins.
type PeriphBackend struct {
	r, g, b gpio.PinIO
}

// NewPeriphBackend resolves the three channel pins by name (for
// example "GPIO17"). It initializes the periph host drivers.
func NewPeriphBackend(red, green, blue string) (*PeriphBackend, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed to init gpio host: %w", err)
	}
	be := &PeriphBackend{}
	for _, p := range []struct {
		name string
		pin  *gpio.PinIO
	}{{red, &be.r}, {green, &be.g}, {blue, &be.b}} {
		found := gpioreg.ByName(p.name)
		if found == nil {
			return nil, fmt.Errorf("gpio pin %s not found", p.name)
		}
		*p.pin = found
	}
	return be, nil
}

// NewPeriphLamp resolves the error-indicator pin by name.
func NewPeriphLamp(name string) (*PeriphLamp, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed to init gpio host: %w", err)
	}
	pin := gpioreg.ByName(name)
	if pin == nil {
		return nil, fmt.Errorf("gpio pin %s not found", name)
	}
	return &PeriphLamp{pin: pin}, nil
}

func (b *PeriphBackend) WriteRGB(r, g, bl uint8) error {
	for _, ch := range []struct {
		pin  gpio.PinIO
		duty uint8
	}{{b.r, r}, {b.g, g}, {b.b, bl}} {
		if err := writeChannel(ch.pin, ch.duty); err != nil {
			return err
		}
	}
	return nil
}

func writeChannel(pin gpio.PinIO, duty uint8) error {
	switch duty {
	case 0:
		if err := pin.Out(gpio.Low); err != nil {
			return fmt.Errorf("failed to drive %s low: %w", pin.Name(), err)
		}
	case 255:
		if err := pin.Out(gpio.High); err != nil {
			return fmt.Errorf("failed to drive %s high: %w", pin.Name(), err)
		}
	default:
		d := gpio.Duty(uint64(duty) * uint64(gpio.DutyMax) / 255)
		if err := pin.PWM(d, pwmFreq); err != nil {
			return fmt.Errorf("failed to pwm %s: %w", pin.Name(), err)
		}
	}
	return nil
}

// PeriphLamp latches the error line. The line is active low, the same
// as the on-board RX LED it replaces.
type PeriphLamp struct {
	pin gpio.PinIO
}

func (l *PeriphLamp) On() error {
	if err := l.pin.Out(gpio.Low); err != nil {
		return fmt.Errorf("failed to light error line: %w", err)
	}
	return nil
}

var (
	_ Backend = (*PeriphBackend)(nil)
	_ Lamp    = (*PeriphLamp)(nil)
)
