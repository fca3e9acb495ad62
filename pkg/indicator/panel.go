package indicator

import (
	"fmt"
	"io"
)

// Backend writes channel duties to the physical LED.
type Backend interface {
	WriteRGB(r, g, b uint8) error
}

// Lamp is the separate error-indicator line, latched on when a fatal
// error halts the logger.
type Lamp interface {
	On() error
}

// Panel owns the status LED: it applies colors through the backend
// and remembers the last one so it can be re-applied after the shared
// sense pin is borrowed for a battery read.
type Panel struct {
	be    Backend
	state Color
	trace io.Writer
}

// NewPanel creates a panel. The trace writer receives the operator-
// visible color change lines; pass the console, or io.Discard.
func NewPanel(be Backend, trace io.Writer) *Panel {
	if trace == nil {
		trace = io.Discard
	}
	return &Panel{be: be, state: AllOff, trace: trace}
}

// Set applies a color and records it as the panel state.
func (p *Panel) Set(c Color) error {
	if err := p.be.WriteRGB(c.R, c.G, c.B); err != nil {
		return fmt.Errorf("failed to set indicator: %w", err)
	}
	p.state = c
	fmt.Fprintf(p.trace, "RGB changed to: %s %d %d %d\n", c.Name(), c.R, c.G, c.B)
	return nil
}

// Reapply rewrites the remembered state to the hardware.
func (p *Panel) Reapply() error {
	return p.Set(p.state)
}

// State returns the last color explicitly set.
func (p *Panel) State() Color {
	return p.state
}
