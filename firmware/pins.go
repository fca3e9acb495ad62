//go:build tinygo

package main

import "machine"

const (
	// Sampling configuration
	SAMPLE_INTERVAL_MS = 3  // ~320 conversions/s, matching the amplifier's top rate
	AVG_SAMPLES        = 20 // Number of conversions averaged per reported reading

	// ADC configuration
	ADC_REFERENCE_MV = 3300 // Reference voltage in millivolts (3.3V)
	ADC_RESOLUTION   = 12   // ADC resolution in bits (12-bit = 0-4095)

	// Bridge amplifier output pin
	PIN_BRIDGE = machine.A1

	// Gain-select pins driving the amplifier's PGA
	PIN_GAIN0 = machine.D7
	PIN_GAIN1 = machine.D8
	PIN_GAIN2 = machine.D9

	// Serial configuration
	// Format "millis,raw\n", worst case ~17 bytes per line.
	// 333 lines/sec * 17 bytes = ~5,700 bytes/sec; UART 8N1 at 115200
	// moves 11,520 bytes/sec, about 2x headroom.
	UART_BAUD_RATE = 115200
)
