package control

import "time"

// AnalogReader returns a raw 12-bit reading (0..ADCMax).
type AnalogReader interface {
	Get() uint16
}

// DigitalReader returns the level of an input pin, true for HIGH.
// machine.Pin satisfies it directly.
type DigitalReader interface {
	Get() bool
}

// Clock is the time source of the loop. github.com/benbjohnson/clock
// satisfies it on the board, on the host and in tests.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// Hardware bundles the inputs read by the loop.
type Hardware struct {
	Frequency AnalogReader // Frequency pot
	Amplitude AnalogReader // Amplitude pot
	Button    DigitalReader
}

// AnalogFunc adapts a function to AnalogReader.
type AnalogFunc func() uint16

func (f AnalogFunc) Get() uint16 { return f() }

// DigitalFunc adapts a function to DigitalReader.
type DigitalFunc func() bool

func (f DigitalFunc) Get() bool { return f() }
