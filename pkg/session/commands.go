package session

import (
	"time"

	"github.com/MMartini1/endline-tension-meter/pkg/calibration"
	"github.com/MMartini1/endline-tension-meter/pkg/clock"
	"github.com/MMartini1/endline-tension-meter/pkg/config"
	"github.com/MMartini1/endline-tension-meter/pkg/filemanager"
)

// dispatch routes one command byte. Every mutating command persists
// the full settings record immediately. Unrecognized input is
// reported and ignored.
func (s *Session) dispatch(b byte) {
	con := s.hw.Console
	switch b {
	case 'e', 'E':
		s.cfg.Echo = !s.cfg.Echo
		con.Println()
		if s.cfg.Echo {
			con.Println("EOS ON")
		} else {
			con.Println("EOS OFF")
		}
		con.Println()
		s.persist()
	case 'l', 'L':
		s.setLogInterval()
	case 's', 'S':
		s.setSyncInterval()
	case 'z', 'Z':
		con.Println(clock.FormatUTC(s.hw.RTC.Now()))
	case 'd', 'D':
		s.setClock()
	case 't', 'T':
		s.cal.Tare()
		s.applyCalibration(s.cal.State())
		con.Println()
		con.Println("LC zeroed.")
		con.Println()
	case 'c', 'C':
		if s.cal.Guided() {
			s.applyCalibration(s.cal.State())
		}
		s.cal.Report(s.cfg.TripValue)
	case 'm', 'M':
		if s.cal.Manual() {
			s.applyCalibration(s.cal.State())
		}
		s.cal.Report(s.cfg.TripValue)
	case 'v', 'V':
		s.cal.Report(s.cfg.TripValue)
	case 'f', 'F':
		filemanager.New(s.hw.Card, con, s.logName, config.FileName).Run()
	default:
		con.Println("Invalid command ")
		con.Println(string(rune(b)))
	}
}

// applyCalibration copies the engine's live state into the settings
// record and persists it.
func (s *Session) applyCalibration(st calibration.State) {
	s.cfg.ZeroOffset = st.ZeroOffset
	s.cfg.CalFactor = st.CalFactor
	s.persist()
}

func (s *Session) persist() {
	if err := s.store.Save(s.cfg); err != nil {
		s.hw.Console.Println("config save failed")
	}
}

// setLogInterval prompts until the entered value respects the
// invariant log_interval <= sync_interval; rejected entries leave the
// prior value unchanged.
func (s *Session) setLogInterval() {
	con := s.hw.Console
	for {
		con.Println("Enter the LI in ms: ")
		con.WaitForInput()
		v := uint32(con.ReadInt())
		if v > s.cfg.SyncInterval {
			con.Println("Val is > than the sync int!")
			continue
		}
		s.cfg.LogInterval = v
		break
	}
	s.persist()
	con.Printf("LI set at: %d ms.\n", s.cfg.LogInterval)
}

func (s *Session) setSyncInterval() {
	con := s.hw.Console
	for {
		con.Println("Enter SI in ms: ")
		con.WaitForInput()
		v := uint32(con.ReadInt())
		if s.cfg.LogInterval > v {
			con.Println("Val is < than LI!")
			continue
		}
		s.cfg.SyncInterval = v
		break
	}
	s.persist()
	con.Printf("SI set at: %d ms.\n", s.cfg.SyncInterval)
}

// setClock prompts for each datetime component, then sets the RTC on
// the operator's final keypress.
func (s *Session) setClock() {
	con := s.hw.Console
	con.Println()
	con.Println("--- Set RTC ---")
	con.Println()
	con.Println("Provide a UTC datetime.")

	prompt := func(label string) int {
		con.Println(label)
		con.WaitForInput()
		return con.ReadInt()
	}
	year := prompt("Enter year:")
	month := prompt("Enter month:")
	day := prompt("Enter day:")
	hour := prompt("Enter hour (24 format):")
	minute := prompt("Enter minute:")
	second := prompt("Enter second:")

	con.Println("Press any key when ready to set time...")
	con.WaitForInput()
	con.Drain()

	t := time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC)
	if err := s.hw.RTC.Adjust(t); err != nil {
		con.Println("RTC set failed")
	}
}
