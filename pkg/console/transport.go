package console

import (
	"fmt"
	"io"
	"os"

	"go.bug.st/serial"
)

// StreamTransport adapts a byte stream (serial port, stdio) to the
// Transport interface. A reader goroutine feeds an internal buffer so
// Available can poll without blocking; the control loop itself stays
// single-threaded.
type StreamTransport struct {
	w  io.Writer
	in chan byte
}

const streamBufferSize = 256

// NewStreamTransport starts reading from r immediately.
func NewStreamTransport(r io.Reader, w io.Writer) *StreamTransport {
	t := &StreamTransport{
		w:  w,
		in: make(chan byte, streamBufferSize),
	}
	go t.pump(r)
	return t
}

// NewStdioTransport serves the console on the process's stdin/stdout.
func NewStdioTransport() *StreamTransport {
	return NewStreamTransport(os.Stdin, os.Stdout)
}

// NewSerialTransport opens a serial port and serves the console on
// it.
func NewSerialTransport(port string, baud int) (*StreamTransport, error) {
	p, err := serial.Open(port, &serial.Mode{BaudRate: baud})
	if err != nil {
		return nil, fmt.Errorf("failed to open console port %s: %w", port, err)
	}
	return NewStreamTransport(p, p), nil
}

func (t *StreamTransport) pump(r io.Reader) {
	buf := make([]byte, 1)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			t.in <- buf[0]
		}
		if err != nil {
			// Leave the channel open so readers block forever, the
			// same as a silent terminal.
			return
		}
	}
}

func (t *StreamTransport) Write(p []byte) (int, error) {
	return t.w.Write(p)
}

func (t *StreamTransport) Available() bool {
	return len(t.in) > 0
}

func (t *StreamTransport) ReadByte() (byte, error) {
	return <-t.in, nil
}

var _ Transport = (*StreamTransport)(nil)
