// Package indicator drives the status RGB LED and owns the policy
// mapping accumulated peak load to a color.
package indicator

// Color holds the three channel duty values written to the LED. The
// LED is common anode, so pull-down lights a channel: 0 is full on,
// 255 is off.
type Color struct {
	R, G, B uint8
}

// The fixed palette. Values are channel duties for the common-anode
// wiring.
var (
	Blue    = Color{255, 255, 0}
	Green   = Color{255, 0, 255}
	Red     = Color{0, 255, 255}
	Magenta = Color{0, 255, 0}
	Yellow  = Color{10, 10, 255}
	Orange  = Color{0, 108, 255}
	AllOff  = Color{255, 255, 255}
)

// Name resolves a color against the palette by exact match.
func (c Color) Name() string {
	switch c {
	case Blue:
		return "blue"
	case Green:
		return "green"
	case Red:
		return "red"
	case Magenta:
		return "magenta"
	case Yellow:
		return "yellow"
	case Orange:
		return "orange"
	case AllOff:
		return "all off"
	}
	return "unrecognized color"
}

// Escalate maps the fraction of the trip value reached by the peak
// load to an escalation color. ok is false below the half-way point,
// where the last explicitly set color should stand.
func Escalate(fraction float32) (c Color, ok bool) {
	switch {
	case fraction > 1.0:
		return Red, true
	case fraction > 0.75:
		return Orange, true
	case fraction > 0.5:
		return Yellow, true
	}
	return Color{}, false
}
