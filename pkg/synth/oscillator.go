// Package synth generates the audible tone driven by the control board.
package synth

import (
	"math"
	"sync"

	"github.com/itohio/potsynth/pkg/protocol"
)

const (
	// DefaultSampleRate is at least twice the 20 kHz upper frequency.
	DefaultSampleRate = 44100
	// DefaultGain scales full amplitude down to a level safe for speakers.
	DefaultGain = 0.2

	defaultFrequency = 440.0
	twoPi            = 2 * math.Pi
)

// Oscillator is a phase-continuous sine generator. Frequency, amplitude and
// the enabled state may be changed from any goroutine while Fill runs.
type Oscillator struct {
	mu sync.Mutex

	sampleRate float64
	gain       float64
	frequency  float64
	amplitude  float64
	enabled    bool

	// phase is in [0, 2π).
	phase float64
}

// New returns a disabled oscillator at 440 Hz and full amplitude. It starts
// disabled like the board does. Non-positive arguments select the defaults.
func New(sampleRate int, gain float64) *Oscillator {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	if gain <= 0 {
		gain = DefaultGain
	}
	return &Oscillator{
		sampleRate: float64(sampleRate),
		gain:       gain,
		frequency:  defaultFrequency,
		amplitude:  1,
	}
}

// Apply updates the oscillator from a board message.
func (o *Oscillator) Apply(msg protocol.Message) {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch msg.Kind {
	case protocol.KindFrequency:
		o.frequency = msg.Frequency
	case protocol.KindAmplitude:
		o.amplitude = clamp01(msg.Amplitude)
	case protocol.KindCombined:
		o.frequency = msg.Frequency
		o.amplitude = clamp01(msg.Amplitude)
	case protocol.KindToggle:
		o.enabled = msg.Enabled
	}
}

// Fill writes the next len(buf) samples. A disabled oscillator writes
// silence and keeps its phase.
func (o *Oscillator) Fill(buf []float32) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.enabled {
		clear(buf)
		return
	}

	level := o.gain * o.amplitude
	delta := twoPi * o.frequency / o.sampleRate
	for i := range buf {
		buf[i] = float32(level * math.Sin(o.phase))
		o.phase += delta
		if o.phase >= twoPi {
			o.phase = math.Mod(o.phase, twoPi)
		}
	}
}

// Toggle flips the enabled state and returns the new one.
func (o *Oscillator) Toggle() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.enabled = !o.enabled
	return o.enabled
}

func (o *Oscillator) SetEnabled(enabled bool) {
	o.mu.Lock()
	o.enabled = enabled
	o.mu.Unlock()
}

func (o *Oscillator) SetFrequency(hz float64) {
	o.mu.Lock()
	o.frequency = max(hz, 0)
	o.mu.Unlock()
}

func (o *Oscillator) SetAmplitude(a float64) {
	o.mu.Lock()
	o.amplitude = clamp01(a)
	o.mu.Unlock()
}

// SetGain changes the output scale. Non-positive values are ignored.
func (o *Oscillator) SetGain(gain float64) {
	if gain <= 0 {
		return
	}
	o.mu.Lock()
	o.gain = gain
	o.mu.Unlock()
}

// State is a snapshot of the oscillator parameters.
type State struct {
	Frequency float64
	Amplitude float64
	Gain      float64
	Enabled   bool
}

// State returns the current parameters.
func (o *Oscillator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return State{
		Frequency: o.frequency,
		Amplitude: o.amplitude,
		Gain:      o.gain,
		Enabled:   o.enabled,
	}
}

// SampleRate returns the output sample rate in Hz.
func (o *Oscillator) SampleRate() int {
	return int(o.sampleRate)
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}
