package control

import "time"

// ButtonMonitor turns presses of a pulled-up push-button into toggles of the
// audio enable state.
//
// A press is a HIGH to LOW transition that is still LOW after the debounce
// delay. The delay blocks the caller. Releases are not debounced.
type ButtonMonitor struct {
	pin      DigitalReader
	clock    Clock
	debounce time.Duration

	enabled bool
	last    bool // previous raw level, HIGH while idle
}

// NewButtonMonitor creates a monitor with the audio disabled.
func NewButtonMonitor(pin DigitalReader, clk Clock, debounce time.Duration) *ButtonMonitor {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &ButtonMonitor{
		pin:      pin,
		clock:    clk,
		debounce: debounce,
		last:     true,
	}
}

// Poll samples the pin once and reports whether the state was toggled.
func (b *ButtonMonitor) Poll() bool {
	current := b.pin.Get()
	toggled := false

	if !current && b.last {
		b.clock.Sleep(b.debounce)
		if !b.pin.Get() {
			b.enabled = !b.enabled
			toggled = true
		}
	}

	b.last = current
	return toggled
}

// Enabled returns the debounced audio state.
func (b *ButtonMonitor) Enabled() bool {
	return b.enabled
}
