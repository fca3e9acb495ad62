// Package console is the operator's serial command interface: a
// byte-oriented transport plus the blocking prompt/field reads the
// command menu is built on.
package console

import (
	"fmt"
	"strconv"
)

// MaxFieldLen caps one operator-entered field (filename, number).
// Bytes beyond the cap are discarded until the field terminator.
const MaxFieldLen = 15

// Transport carries bytes between the logger and the operator's
// terminal.
type Transport interface {
	Write(p []byte) (int, error)
	// Available reports whether at least one byte can be read without
	// blocking.
	Available() bool
	// ReadByte blocks until a byte arrives. There is no timeout: it
	// does not return until input is available. The operator either
	// supplies input or power-cycles the device.
	ReadByte() (byte, error)
}

// Console wraps a Transport with the menu's read/print helpers.
type Console struct {
	t       Transport
	pending []byte
}

func New(t Transport) *Console {
	return &Console{t: t}
}

// Available reports whether input is waiting, counting any byte held
// back by WaitForInput.
func (c *Console) Available() bool {
	return len(c.pending) > 0 || c.t.Available()
}

// ReadByte blocks until a byte arrives (no timeout).
func (c *Console) ReadByte() byte {
	if n := len(c.pending); n > 0 {
		b := c.pending[0]
		c.pending = c.pending[1:]
		return b
	}
	b, err := c.t.ReadByte()
	if err != nil {
		// A dead transport behaves like an operator who never types:
		// the loop keeps running without commands.
		return 0
	}
	return b
}

// Drain discards everything waiting in the input, defending against
// multi-character paste after a command byte.
func (c *Console) Drain() {
	c.pending = c.pending[:0]
	for c.t.Available() {
		if _, err := c.t.ReadByte(); err != nil {
			return
		}
	}
}

// WaitForInput drains stale input then blocks until the operator
// types something. The typed byte stays readable.
func (c *Console) WaitForInput() {
	c.Drain()
	b, err := c.t.ReadByte()
	if err != nil {
		return
	}
	c.pending = append(c.pending, b)
}

// ReadField blocks for one operator-entered field: bytes up to a
// newline, carriage return or comma, capped at MaxFieldLen with the
// overflow discarded.
func (c *Console) ReadField() string {
	buf := make([]byte, 0, MaxFieldLen)
	for {
		b := c.ReadByte()
		if b == '\n' || b == '\r' || b == ',' || b == 0 {
			return string(buf)
		}
		if len(buf) < MaxFieldLen {
			buf = append(buf, b)
		}
	}
}

// ReadFloat reads a field and parses it as a float. Unparseable input
// yields zero; operator numeric input is accepted as entered.
func (c *Console) ReadFloat() float32 {
	f, err := strconv.ParseFloat(c.ReadField(), 32)
	if err != nil {
		return 0
	}
	return float32(f)
}

// ReadInt reads a field and parses it as an integer, zero on error.
func (c *Console) ReadInt() int {
	n, err := strconv.Atoi(c.ReadField())
	if err != nil {
		return 0
	}
	return n
}

func (c *Console) Print(args ...any) {
	fmt.Fprint(c.t, args...)
}

func (c *Console) Println(args ...any) {
	fmt.Fprintln(c.t, args...)
}

func (c *Console) Printf(format string, args ...any) {
	fmt.Fprintf(c.t, format, args...)
}

// Write lets the console double as an io.Writer for file transfers
// and indicator traces.
func (c *Console) Write(p []byte) (int, error) {
	return c.t.Write(p)
}
