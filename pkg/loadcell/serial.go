package loadcell

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"go.bug.st/serial"
)

const (
	// DefaultBaudRate matches the amplifier head firmware.
	DefaultBaudRate = 115200
)

// Serial talks to the amplifier head over a serial line. The head
// streams one conversion per line as "millis,raw"; gain and AFE
// commands go the other way as single short lines. A reader goroutine
// caches the newest conversion so the control loop's Available/Reading
// calls never block — that goroutine is driver glue, the control core
// stays single-threaded.
type Serial struct {
	port string
	baud int

	mu    sync.Mutex
	conn  serial.Port
	raw   int32
	fresh bool
	gain  GainCode
}

// NewSerial creates an amplifier link on the named port. baud of 0
// selects DefaultBaudRate.
func NewSerial(port string, baud int) *Serial {
	if baud == 0 {
		baud = DefaultBaudRate
	}
	return &Serial{port: port, baud: baud, gain: Gain16}
}

func (s *Serial) Begin() error {
	conn, err := serial.Open(s.port, &serial.Mode{BaudRate: s.baud})
	if err != nil {
		return fmt.Errorf("failed to open amplifier port %s: %w", s.port, err)
	}
	s.mu.Lock()
	s.conn = conn
	s.mu.Unlock()
	go s.readStream(conn)
	return nil
}

func (s *Serial) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	return err
}

func (s *Serial) Available() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fresh
}

func (s *Serial) Reading() int32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fresh = false
	return s.raw
}

func (s *Serial) SetGain(g GainCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return fmt.Errorf("amplifier not connected")
	}
	if _, err := fmt.Fprintf(s.conn, "g%d\n", g); err != nil {
		return fmt.Errorf("failed to set gain: %w", err)
	}
	s.gain = g
	return nil
}

func (s *Serial) Gain() GainCode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gain
}

func (s *Serial) CalibrateAFE() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return fmt.Errorf("amplifier not connected")
	}
	if _, err := fmt.Fprint(s.conn, "a\n"); err != nil {
		return fmt.Errorf("failed to recalibrate AFE: %w", err)
	}
	return nil
}

func (s *Serial) readStream(conn serial.Port) {
	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		raw, err := parseLine(strings.TrimSpace(scanner.Text()))
		if err != nil {
			// Garbled line; the next conversion replaces it.
			continue
		}
		s.mu.Lock()
		s.raw = raw
		s.fresh = true
		s.mu.Unlock()
	}
}

// parseLine extracts the raw count from a "millis,raw" stream line.
func parseLine(line string) (int32, error) {
	parts := strings.Split(line, ",")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid stream line %q: expected 2 fields, got %d", line, len(parts))
	}
	if _, err := strconv.ParseUint(parts[0], 10, 32); err != nil {
		return 0, fmt.Errorf("invalid millis field: %w", err)
	}
	raw, err := strconv.ParseInt(parts[1], 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid raw count: %w", err)
	}
	return int32(raw), nil
}
