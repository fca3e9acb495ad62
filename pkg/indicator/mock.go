package indicator

// MockBackend records every color written, for tests and for running
// without LED hardware.
type MockBackend struct {
	Writes []Color
	Err    error
}

func (m *MockBackend) WriteRGB(r, g, b uint8) error {
	if m.Err != nil {
		return m.Err
	}
	m.Writes = append(m.Writes, Color{r, g, b})
	return nil
}

// Last returns the most recent write, or AllOff if none happened.
func (m *MockBackend) Last() Color {
	if len(m.Writes) == 0 {
		return AllOff
	}
	return m.Writes[len(m.Writes)-1]
}

// MockLamp records whether the error line was latched.
type MockLamp struct {
	Lit bool
}

func (l *MockLamp) On() error {
	l.Lit = true
	return nil
}

var (
	_ Backend = (*MockBackend)(nil)
	_ Lamp    = (*MockLamp)(nil)
)
