// Package config is the logger's persistent settings store. The
// record lives on the card as plain text, one "key = value" per line,
// and is fully rewritten on every change so a stale key can never
// survive an edit.
package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// FileName is the record's name on the card. The card uses FAT-style
// upper-case names and the bulk-clear guard compares it exactly.
const FileName = "CONFIG.TXT"

// Factory defaults, written out on first boot.
const (
	DefaultEcho         = true
	DefaultLogInterval  = 1000
	DefaultSyncInterval = 10000
	DefaultCalFactor    = float32(0)
	DefaultZeroOffset   = float32(1000)
	DefaultTripValue    = float32(1700)
)

// Settings is the persisted configuration record.
type Settings struct {
	Echo         bool
	LogInterval  uint32 // ms between samples
	SyncInterval uint32 // ms between forced card syncs, >= LogInterval
	CalFactor    float32
	ZeroOffset   float32
	TripValue    float32
}

// Default returns the factory settings.
func Default() Settings {
	return Settings{
		Echo:         DefaultEcho,
		LogInterval:  DefaultLogInterval,
		SyncInterval: DefaultSyncInterval,
		CalFactor:    DefaultCalFactor,
		ZeroOffset:   DefaultZeroOffset,
		TripValue:    DefaultTripValue,
	}
}

// SettingsDetected reports whether the operator has ever calibrated
// the scale. It only drives a startup prompt, never blocks logging.
func (s Settings) SettingsDetected() bool {
	return !(s.CalFactor == DefaultCalFactor && s.ZeroOffset == DefaultZeroOffset)
}

// Parse applies "key = value" lines from r onto s. Unknown keys and
// malformed lines are ignored silently; keys absent from the input
// keep their current values. Each line yields at most one key.
func (s *Settings) Parse(r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		s.parseLine(scanner.Text())
	}
}

func (s *Settings) parseLine(line string) {
	// A well-formed line tokenizes as name, separator, value.
	fields := strings.Fields(line)
	if len(fields) < 3 || fields[1] != "=" {
		return
	}
	name, value := fields[0], fields[2]

	switch name {
	case "echo":
		if n, err := strconv.Atoi(value); err == nil {
			s.Echo = n != 0
		}
	case "log_interval":
		if n, err := strconv.ParseUint(value, 10, 32); err == nil {
			s.LogInterval = uint32(n)
		}
	case "sync_interval":
		if n, err := strconv.ParseUint(value, 10, 32); err == nil {
			s.SyncInterval = uint32(n)
		}
	case "cal_factor":
		if f, err := strconv.ParseFloat(value, 32); err == nil {
			s.CalFactor = float32(f)
		}
	case "zero_offset":
		if f, err := strconv.ParseFloat(value, 32); err == nil {
			s.ZeroOffset = float32(f)
		}
	case "trip_value":
		if f, err := strconv.ParseFloat(value, 32); err == nil {
			s.TripValue = float32(f)
		}
	}
}

// Render writes the complete record to w in the persisted format.
func (s Settings) Render(w io.Writer) error {
	echo := 0
	if s.Echo {
		echo = 1
	}
	_, err := fmt.Fprintf(w, "echo = %d\nlog_interval = %d\nsync_interval = %d\ncal_factor = %s\nzero_offset = %s\ntrip_value = %s\n",
		echo, s.LogInterval, s.SyncInterval,
		formatFloat(s.CalFactor), formatFloat(s.ZeroOffset), formatFloat(s.TripValue))
	return err
}

func formatFloat(f float32) string {
	return strconv.FormatFloat(float64(f), 'f', 2, 32)
}
