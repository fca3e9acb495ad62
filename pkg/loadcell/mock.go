package loadcell

// Mock is a scripted amplifier for tests and for running the logger
// without hardware. Readings are served in order; when the script is
// exhausted the last value repeats. NotReady makes Available report
// false so sentinel rows can be exercised.
type Mock struct {
	Readings []int32
	NotReady bool
	BeginErr error

	next     int
	gain     GainCode
	AFECalls int
}

func NewMock(readings ...int32) *Mock {
	return &Mock{Readings: readings, gain: Gain16}
}

func (m *Mock) Begin() error {
	return m.BeginErr
}

func (m *Mock) Available() bool {
	return !m.NotReady && len(m.Readings) > 0
}

func (m *Mock) Reading() int32 {
	if len(m.Readings) == 0 {
		return 0
	}
	r := m.Readings[m.next]
	if m.next < len(m.Readings)-1 {
		m.next++
	}
	return r
}

func (m *Mock) SetGain(g GainCode) error {
	m.gain = g
	return nil
}

func (m *Mock) Gain() GainCode {
	return m.gain
}

func (m *Mock) CalibrateAFE() error {
	m.AFECalls++
	return nil
}
