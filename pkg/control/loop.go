// Package control implements the board's control loop: pot sampling with a
// moving average, button toggling with debounce, and change-gated reporting
// over a serial link.
//
// The package only talks to hardware through small interfaces so the same
// loop runs on the board (TinyGo), in the host-side mock device and in tests.
package control

import (
	"context"
	"io"
	"time"

	"github.com/itohio/potsynth/pkg/protocol"
)

// Loop is one single-threaded control loop.
type Loop struct {
	sampler  *Sampler
	button   *ButtonMonitor
	reporter *Reporter
	clock    Clock
	out      io.Writer

	buf []byte
}

// NewLoop wires the loop components. Settings are expected to be valid.
func NewLoop(s Settings, hw Hardware, clk Clock, out io.Writer) *Loop {
	return &Loop{
		sampler:  NewSampler(hw.Frequency, hw.Amplitude, s.Window),
		button:   NewButtonMonitor(hw.Button, clk, s.Debounce),
		reporter: NewReporter(s, clk),
		clock:    clk,
		out:      out,
		buf:      make([]byte, 0, 64),
	}
}

// Setup primes the moving average buffers. Call once before the first Tick.
func (l *Loop) Setup() {
	l.sampler.Prime()
}

// Tick runs one iteration: button, sampling, then reporting when due.
// All lines produced by the iteration are written with a single Write.
func (l *Loop) Tick() error {
	l.buf = l.buf[:0]

	if l.button.Poll() {
		l.buf = protocol.AppendToggle(l.buf, l.button.Enabled())
	}

	l.sampler.Sample()

	if l.reporter.Due() {
		l.buf = l.reporter.Report(l.buf, l.sampler.Frequency.Average(), l.sampler.Amplitude.Average())
	}

	if len(l.buf) == 0 {
		return nil
	}
	_, err := l.out.Write(l.buf)
	return err
}

// Run ticks until ctx is cancelled or a write fails, sleeping pause between
// iterations when pause is positive.
func (l *Loop) Run(ctx context.Context, pause time.Duration) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := l.Tick(); err != nil {
			return err
		}

		if pause > 0 {
			l.clock.Sleep(pause)
		}
	}
}

// Enabled returns the current audio enable state.
func (l *Loop) Enabled() bool {
	return l.button.Enabled()
}

// Sampler exposes the loop's sampler.
func (l *Loop) Sampler() *Sampler {
	return l.sampler
}

// Reporter exposes the loop's reporter.
func (l *Loop) Reporter() *Reporter {
	return l.reporter
}
