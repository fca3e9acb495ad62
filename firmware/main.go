//go:build tinygo

//go:generate tinygo flash -target=xiao

// Amplifier head firmware: samples the bridge amplifier and streams
// averaged raw counts over UART as "millis,raw" lines for the host
// logger. Gain-select and AFE commands come back the other way.
package main

import (
	"machine"
	"time"
)

var (
	adcBridge machine.ADC
	uart      = machine.UART0

	// ADC averaging - running sum and count
	bridgeSum   uint32
	bridgeCount int

	// Current gain code (0-7 selects a gain of 1..128)
	gainCode byte = 4 // gain 16

	// Timing
	lastRead time.Time

	// Serial buffer for reading commands
	serialBuffer [4]byte
	serialPos    int
)

func main() {
	// Gain-select outputs
	PIN_GAIN0.Configure(machine.PinConfig{Mode: machine.PinOutput})
	PIN_GAIN1.Configure(machine.PinConfig{Mode: machine.PinOutput})
	PIN_GAIN2.Configure(machine.PinConfig{Mode: machine.PinOutput})

	// Bridge input with highest resolution
	PIN_BRIDGE.Configure(machine.PinConfig{Mode: machine.PinInput})
	adcBridge = machine.ADC{Pin: PIN_BRIDGE}
	adcBridge.Configure(machine.ADCConfig{
		Reference:  ADC_REFERENCE_MV,
		Resolution: ADC_RESOLUTION,
	})

	uart.Configure(machine.UARTConfig{
		BaudRate: UART_BAUD_RATE,
	})

	applyGain()
	lastRead = time.Now()

	for {
		now := time.Now()

		// Check for gain/AFE commands (non-blocking)
		processSerial()

		if now.Sub(lastRead) >= time.Duration(SAMPLE_INTERVAL_MS)*time.Millisecond {
			bridgeSum += uint32(adcBridge.Get())
			bridgeCount++
			lastRead = now
		}

		if bridgeCount >= AVG_SAMPLES {
			outputReading()
			bridgeSum = 0
			bridgeCount = 0
		}

		// Small delay to prevent a tight loop while keeping timing
		time.Sleep(100 * time.Microsecond)
	}
}

func outputReading() {
	avg := bridgeSum / uint32(bridgeCount)

	// Output format: "millis,raw\n"
	millis := time.Now().UnixNano() / int64(time.Millisecond)
	print(uint32(millis))
	print(",")
	print(avg)
	print("\n")
}

func processSerial() {
	for uart.Buffered() > 0 {
		data, err := uart.ReadByte()
		if err != nil {
			break
		}

		if data == '\n' || data == '\r' {
			handleCommand()
			serialPos = 0
			continue
		}

		if serialPos < len(serialBuffer) {
			serialBuffer[serialPos] = data
			serialPos++
		}
	}
}

func handleCommand() {
	if serialPos == 0 {
		return
	}
	switch serialBuffer[0] {
	case 'g':
		// "g<code>" selects the PGA gain
		if serialPos >= 2 && serialBuffer[1] >= '0' && serialBuffer[1] <= '7' {
			gainCode = serialBuffer[1] - '0'
			applyGain()
		}
	case 'a':
		// AFE recalibration: restart averaging so stale conversions
		// taken at the old operating point are discarded
		bridgeSum = 0
		bridgeCount = 0
	}
}

func applyGain() {
	setPin(PIN_GAIN0, gainCode&1 != 0)
	setPin(PIN_GAIN1, gainCode&2 != 0)
	setPin(PIN_GAIN2, gainCode&4 != 0)
}

func setPin(pin machine.Pin, high bool) {
	if high {
		pin.High()
	} else {
		pin.Low()
	}
}
