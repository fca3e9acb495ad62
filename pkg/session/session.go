// Package session is the logging/calibration control core: one
// single-threaded cooperative loop that alternates the command
// dispatcher with the sample/log cycle. Every operation inside it is
// synchronous and blocking; operator prompts suspend logging until
// answered.
package session

import (
	"fmt"
	"time"

	"github.com/MMartini1/endline-tension-meter/pkg/battery"
	"github.com/MMartini1/endline-tension-meter/pkg/calibration"
	"github.com/MMartini1/endline-tension-meter/pkg/clock"
	"github.com/MMartini1/endline-tension-meter/pkg/config"
	"github.com/MMartini1/endline-tension-meter/pkg/console"
	"github.com/MMartini1/endline-tension-meter/pkg/indicator"
	"github.com/MMartini1/endline-tension-meter/pkg/loadcell"
	"github.com/MMartini1/endline-tension-meter/pkg/storage"
)

// Version printed in the startup banner.
const Version = "5.0"

// SentinelReading fills both the raw and engineering columns of a row
// whose sample tick found the amplifier not ready.
const SentinelReading = 99999

// Header is the log file's first row.
const Header = "millis,time,raw_load,load"

// Hardware bundles the external collaborators the session drives. All
// of them are interface boundaries with mock implementations.
type Hardware struct {
	Card    storage.Card
	RTC     clock.RTC
	Amp     loadcell.Amplifier
	Panel   *indicator.Panel
	Lamp    indicator.Lamp
	Battery *battery.Monitor
	Console *console.Console
	// Millis is the monotonic millisecond source. It wraps in uint32
	// space; the loop's gates use modular subtraction.
	Millis func() uint32
}

// FatalError reports an unrecoverable subsystem failure. The logger
// halts permanently on one; recovery requires a power cycle.
type FatalError struct {
	Tag string // failed subsystem: Card, RTC, LC, logfile
	Err error
}

func (e *FatalError) Error() string {
	return e.Tag + " error"
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

// Session owns all mutable logger state: the loaded settings, the
// calibration engine, and the volatile per-power-cycle session state
// (peak load, tick timestamps, active log file).
type Session struct {
	hw    Hardware
	store *config.Store
	cfg   config.Settings
	cal   *calibration.Engine

	logName  string
	logFile  storage.File
	maxLoad  float32
	lastLog  uint32
	lastSync uint32
}

func New(hw Hardware) *Session {
	return &Session{
		hw:    hw,
		store: config.NewStore(hw.Card),
	}
}

// Begin brings up every subsystem and opens the session's log file.
// A non-nil return is always a *FatalError, already reported on the
// console with the indicator set to the error color.
func (s *Session) Begin() error {
	con := s.hw.Console
	s.banner()

	con.Println("Init SD card")
	if err := s.hw.Card.Begin(); err != nil {
		return s.fatal("Card", err)
	}
	con.Println("SD card OK")
	con.Println()

	if err := s.hw.RTC.Begin(); err != nil {
		return s.fatal("RTC", err)
	}
	if !s.hw.RTC.Initialized() {
		con.Println("Setting RTC")
		if err := s.hw.RTC.Adjust(time.Now().UTC()); err != nil {
			return s.fatal("RTC", err)
		}
	}
	con.Println("RTC OK")
	con.Println()

	if err := s.hw.Amp.Begin(); err != nil {
		return s.fatal("LC", err)
	}
	con.Println("LC OK")
	// A large-capacity cell wants the gain turned down; the front end
	// must be recalibrated after any gain change.
	if err := s.hw.Amp.SetGain(loadcell.Gain16); err != nil {
		return s.fatal("LC", err)
	}
	if err := s.hw.Amp.CalibrateAFE(); err != nil {
		return s.fatal("LC", err)
	}

	cfg, err := s.store.Load()
	if err != nil {
		return s.fatal("Card", err)
	}
	s.cfg = cfg
	s.cal = calibration.NewEngine(s.hw.Amp, con, calibration.State{
		ZeroOffset: cfg.ZeroOffset,
		CalFactor:  cfg.CalFactor,
	})
	s.cal.Report(cfg.TripValue)
	if !cfg.SettingsDetected() {
		con.Println("LC !cal")
	}

	name, ok := s.pickLogName(s.hw.RTC.Now())
	if !ok {
		return s.fatal("logfile", fmt.Errorf("no free log name for today"))
	}
	logFile, err := s.hw.Card.Create(name)
	if err != nil {
		return s.fatal("logfile", err)
	}
	s.logName = name
	s.logFile = logFile

	con.Printf("Logging to: %s at %d ms interval.\n", s.logName, s.cfg.LogInterval)
	con.Println()
	s.menu()

	if _, err := fmt.Fprintln(s.logFile, Header); err != nil {
		return s.fatal("logfile", err)
	}
	if s.cfg.Echo {
		con.Println(Header)
	}

	s.hw.Panel.Set(indicator.Green)
	return nil
}

// Run executes the control loop forever after a successful Begin,
// yielding the CPU briefly between iterations. It returns only on a
// fatal startup error.
func (s *Session) Run() error {
	if err := s.Begin(); err != nil {
		return err
	}
	for {
		s.Step()
		time.Sleep(time.Millisecond)
	}
}

// LogName returns the active log filename, fixed for the session.
func (s *Session) LogName() string {
	return s.logName
}

// MaxLoad returns the session's accumulated peak load.
func (s *Session) MaxLoad() float32 {
	return s.maxLoad
}

// Settings returns the current configuration record.
func (s *Session) Settings() config.Settings {
	return s.cfg
}

// pickLogName derives the session filename from the current date with
// the lowest unused two-digit suffix: YYMMDDnn.CSV.
func (s *Session) pickLogName(now time.Time) (string, bool) {
	base := fmt.Sprintf("%02d%02d%02d", now.Year()%100, int(now.Month()), now.Day())
	for i := 0; i < 100; i++ {
		name := fmt.Sprintf("%s%02d.CSV", base, i)
		if !s.hw.Card.Exists(name) {
			return name, true
		}
	}
	return "", false
}

// fatal reports the failed subsystem, latches the error line, sets
// the error color and hands back the halt decision.
func (s *Session) fatal(tag string, err error) error {
	con := s.hw.Console
	con.Println(tag + " error")
	if s.hw.Lamp != nil {
		s.hw.Lamp.On()
	}
	s.hw.Panel.Set(indicator.Magenta)
	con.Println("Program suspended")
	return &FatalError{Tag: tag, Err: err}
}

func (s *Session) banner() {
	con := s.hw.Console
	con.Println()
	con.Println("----------------------------------------")
	con.Println("      Lobster Endline Tension Meter")
	con.Println()
	con.Println("Created by Bill DeVoe, MaineDMR")
	con.Println("For questions, email william.devoe@maine.gov")
	con.Println("Updated for NOAA NEFSC by M. Martini")
	con.Println("For questions, email marinna.martini@noaa.gov")
	con.Println("Version " + Version)
	con.Println("----------------------------------------")
}

func (s *Session) menu() {
	con := s.hw.Console
	con.Println()
	con.Println("Type the following menu commands at any time:\n l - Change logging interval\n s - Change card sync interval\n e - Toggle echo to serial\n z - Get current real-time clock time\n d - Set real-time clock time\n c - Calibrate load cell with known weight\n m - Manually calibrate load cell with known values\n v - Retrieve load cell calibration values \n t - Tare the load cell\n f - Enter the file manager.")
	con.Println("Type menu CMD any time.")
	con.Println()
}
