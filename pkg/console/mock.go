package console

import (
	"bytes"
	"fmt"
)

// MockTransport is a scripted Transport for tests. Input is supplied
// in stages, one per operator entry: Available and Drain only see the
// current stage, and a blocking ReadByte on an exhausted stage
// advances to the next one, the way a real prompt waits for the
// operator's next line. ReadByte past the last stage fails the
// scenario instead of hanging the test binary.
type MockTransport struct {
	stages  [][]byte
	current []byte
	Out     bytes.Buffer
}

func NewMockTransport(stages ...string) *MockTransport {
	t := &MockTransport{}
	for _, s := range stages {
		t.Feed(s)
	}
	return t
}

// Feed appends one more operator entry.
func (t *MockTransport) Feed(input string) {
	t.stages = append(t.stages, []byte(input))
}

// Arrive makes the next staged entry visible to Available, the way a
// typed command shows up between loop iterations.
func (t *MockTransport) Arrive() {
	if len(t.stages) == 0 {
		return
	}
	t.current = append(t.current, t.stages[0]...)
	t.stages = t.stages[1:]
}

func (t *MockTransport) Write(p []byte) (int, error) {
	return t.Out.Write(p)
}

func (t *MockTransport) Available() bool {
	return len(t.current) > 0
}

func (t *MockTransport) ReadByte() (byte, error) {
	for len(t.current) == 0 {
		if len(t.stages) == 0 {
			return 0, fmt.Errorf("scripted input exhausted")
		}
		t.current = t.stages[0]
		t.stages = t.stages[1:]
	}
	b := t.current[0]
	t.current = t.current[1:]
	return b, nil
}

var _ Transport = (*MockTransport)(nil)
