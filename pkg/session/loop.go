package session

import (
	"fmt"
	"strconv"

	"github.com/chewxy/math32"

	"github.com/MMartini1/endline-tension-meter/pkg/clock"
	"github.com/MMartini1/endline-tension-meter/pkg/indicator"
)

// intervalElapsed reports whether interval milliseconds have passed
// since last. The subtraction is modular in uint32 space, so the
// result stays correct across counter wraparound; comparing absolute
// tick values would not.
func intervalElapsed(now, last, interval uint32) bool {
	return now-last >= interval
}

// Step runs one loop iteration: dispatch a pending command, then the
// log-interval gate, then the coarser sync-interval gate. The
// dispatcher is non-blocking when the console is idle.
func (s *Session) Step() {
	con := s.hw.Console
	if con.Available() {
		s.dispatch(con.ReadByte())
	}
	// Discard unconsumed bytes so a multi-character paste cannot
	// queue up surprise commands.
	con.Drain()

	now := s.hw.Millis()
	if !intervalElapsed(now, s.lastLog, s.cfg.LogInterval) {
		return
	}
	s.logTick(now)

	if !intervalElapsed(s.hw.Millis(), s.lastSync, s.cfg.SyncInterval) {
		return
	}
	s.flush()
}

// logTick appends one sample row. An amplifier that is not ready
// still produces a row with sentinel values; the cadence never skips.
func (s *Session) logTick(now uint32) {
	s.lastLog = now

	var raw int32
	var load float32
	if s.hw.Amp.Available() {
		raw = s.hw.Amp.Reading()
		load = s.cal.State().Weight(raw)
	} else {
		raw = SentinelReading
		load = SentinelReading
	}

	row := fmt.Sprintf("%d,%s,%d,%s", now, clock.FormatUTC(s.hw.RTC.Now()), raw, formatLoad(load))
	if _, err := fmt.Fprintln(s.logFile, row); err != nil {
		s.hw.Console.Println("log write failed")
	}
	if s.cfg.Echo {
		s.hw.Console.Println(row)
	}

	if load > s.maxLoad {
		s.maxLoad = load
		if c, ok := indicator.Escalate(s.maxLoad / s.cfg.TripValue); ok {
			s.hw.Panel.Set(c)
		}
	}
}

// flush forces buffered rows durable and re-checks the battery. The
// battery-low override outranks the load escalation colors.
func (s *Session) flush() {
	con := s.hw.Console
	s.lastSync = s.hw.Millis()

	if s.cfg.Echo {
		con.Println()
		con.Println("Writing to SD card.")
		con.Println()
	}
	if err := s.logFile.Sync(); err != nil {
		con.Println("card sync failed")
	}

	volts, low, err := s.hw.Battery.Check()
	if err != nil {
		con.Println("battery check failed")
		s.hw.Panel.Reapply()
	} else {
		con.Printf("VBat: %.2f\n", volts)
		if low {
			s.hw.Panel.Set(indicator.Blue)
		} else {
			s.hw.Panel.Reapply()
		}
	}
	con.Printf("RGB is: %s\n", s.hw.Panel.State().Name())
}

// formatLoad renders an engineering value the way the trace format
// expects: two decimals, with non-finite results from a degenerate
// calibration spelled out.
func formatLoad(load float32) string {
	if math32.IsNaN(load) {
		return "nan"
	}
	if math32.IsInf(load, 0) {
		return "inf"
	}
	return strconv.FormatFloat(float64(load), 'f', 2, 32)
}
