//go:build tinygo

package main

import (
	"machine"
	"time"
)

const (
	// ADC configuration
	ADC_REFERENCE_MV = 3300 // Reference voltage in millivolts (3.3V)
	ADC_RESOLUTION   = 12   // ADC resolution in bits (12-bit = 0-4095)

	// Pot pins (wipers between GND and 3.3V)
	PIN_FREQ_POT = machine.A1
	PIN_AMP_POT  = machine.A2

	// Toggle button to GND, internal pull-up
	PIN_BUTTON = machine.D7

	// Control loop
	NUM_READINGS     = 5                     // Moving average length per pot
	SEND_INTERVAL    = 20 * time.Millisecond // Minimum time between reports
	DEBOUNCE_DELAY   = 50 * time.Millisecond // Button confirm delay
	FREQ_TOLERANCE   = 5.0                   // Hz
	AMP_TOLERANCE    = 0.01                  // 1% of full scale
	USE_LOG_MAPPING  = true                  // Logarithmic frequency pot
	COMBINED_REPORTS = false                 // "F=..,A=.." on every interval instead of gated F/A lines

	// Serial configuration
	// Worst case per report: "F20000.00\nA1.00\n" = 16 bytes.
	// 50 reports/sec * 16 bytes = 800 bytes/sec, 8,000 baud with 8N1.
	// 115200 leaves plenty of room for toggle lines and the combined format.
	UART_BAUD_RATE = 115200
)
