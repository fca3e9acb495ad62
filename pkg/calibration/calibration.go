// Package calibration converts raw amplifier counts to engineering
// weight units and owns the operator-facing calibration protocols.
package calibration

import (
	"time"

	"github.com/MMartini1/endline-tension-meter/pkg/console"
	"github.com/MMartini1/endline-tension-meter/pkg/loadcell"
)

// Samples is how many conversions are averaged per calibration
// reading to smooth out jitter.
const Samples = 64

// State is the live sensor correction applied to every reading.
type State struct {
	ZeroOffset float32 // raw count at no applied load
	CalFactor  float32 // counts per unit weight
}

// Weight converts a raw count to engineering units. A zero CalFactor
// produces an infinite result; the engine does not validate operator
// calibration input.
func (s State) Weight(raw int32) float32 {
	return (float32(raw) - s.ZeroOffset) / s.CalFactor
}

// Engine runs the calibration protocols. All prompts block the
// control loop: no logging happens while the operator calibrates.
type Engine struct {
	amp   loadcell.Amplifier
	con   *console.Console
	state State
}

func NewEngine(amp loadcell.Amplifier, con *console.Console, state State) *Engine {
	return &Engine{amp: amp, con: con, state: state}
}

// State returns the live correction.
func (e *Engine) State() State {
	return e.state
}

// Set installs a correction directly, as when settings are loaded at
// startup.
func (e *Engine) Set(s State) {
	e.state = s
}

// Tare re-acquires the zero offset from the unloaded scale.
func (e *Engine) Tare() {
	e.state.ZeroOffset = e.averageRaw(Samples)
}

// Guided walks the operator through a two-point calibration: zero the
// unloaded scale, then derive the factor from a known reference
// weight. It reports whether new values were committed; persisting
// them is the caller's job.
func (e *Engine) Guided() bool {
	e.con.Println()
	e.con.Println()
	e.con.Println("LC calibration")
	e.con.Print("Are you sure you want to calibrate? Enter y to continue, any other key to abort: ")
	if !e.confirm() {
		e.con.Println("Calibration aborted")
		return false
	}

	e.con.Println("Setup load cell with no weight on it. Press a key when ready.")
	e.con.WaitForInput()
	e.con.Drain()
	e.state.ZeroOffset = e.averageRaw(Samples)
	e.con.Printf("New zero offset: %.2f\n", e.state.ZeroOffset)

	e.con.Println("Place known weight on LC. Press a key.")
	e.con.WaitForInput()
	e.con.Drain()
	e.con.Print("Enter weight on the LC: ")
	e.con.WaitForInput()
	weight := e.con.ReadFloat()
	// Echo the weight back: some terminals corrupt input and the
	// operator has to be able to see what actually arrived.
	e.con.Println()
	e.con.Printf("Calibration weight entered: %.2f\n", weight)

	loaded := e.averageRaw(Samples)
	// No validation of the entered weight: a zero or negative value
	// yields a degenerate factor and that is the operator's call.
	e.state.CalFactor = (loaded - e.state.ZeroOffset) / weight
	e.con.Println()
	e.con.Printf("New cal factor: %.2f\n", e.state.CalFactor)
	e.con.Println()
	return true
}

// Manual lets the operator type both correction values directly.
func (e *Engine) Manual() bool {
	e.con.Println()
	e.con.Print("Are you sure you want to change the calibration? Enter y to continue, any other key to abort: ")
	if !e.confirm() {
		e.con.Println("Manual calibration update aborted")
		return false
	}

	e.con.Println("Enter the 0 offset: ")
	e.con.WaitForInput()
	e.state.ZeroOffset = e.con.ReadFloat()
	e.con.Println()
	e.con.Println("Enter the cali factor: ")
	e.con.WaitForInput()
	e.state.CalFactor = e.con.ReadFloat()
	e.con.Println("LC calibrated")
	e.con.Println()
	return true
}

// Report prints the current calibration. Read-only.
func (e *Engine) Report(tripValue float32) {
	e.con.Println()
	e.con.Printf("LC 0 offset: %.2f\n", e.state.ZeroOffset)
	e.con.Printf("LC cali factor: %.2f\n", e.state.CalFactor)
	e.con.Printf("LC gain: %d\n", e.amp.Gain().Multiplier())
	e.con.Printf("LC trip value: %.2f\n", tripValue)
	e.con.Println()
}

func (e *Engine) confirm() bool {
	e.con.WaitForInput()
	field := e.con.ReadField()
	return len(field) > 0 && (field[0] == 'y' || field[0] == 'Y')
}

// averageRaw blocks for n fresh conversions and returns their mean.
func (e *Engine) averageRaw(n int) float32 {
	var sum float64
	for i := 0; i < n; i++ {
		sum += float64(e.nextRaw())
	}
	return float32(sum / float64(n))
}

// nextRaw waits for the amplifier's next conversion.
func (e *Engine) nextRaw() int32 {
	for !e.amp.Available() {
		time.Sleep(time.Millisecond)
	}
	return e.amp.Reading()
}
