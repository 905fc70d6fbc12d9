package control

import (
	"fmt"

	"github.com/chewxy/math32"
)

const (
	// MinFrequency is the lowest reported frequency in Hz.
	MinFrequency float32 = 20
	// MaxFrequency is the highest reported frequency in Hz.
	MaxFrequency float32 = 20000
)

var (
	logMinFrequency = math32.Log10(MinFrequency)
	logMaxFrequency = math32.Log10(MaxFrequency)
)

// Mapping selects how a frequency pot position is turned into Hz.
type Mapping int

const (
	// MappingLog interpolates in log10 space, giving finer resolution at
	// low frequencies.
	MappingLog Mapping = iota
	// MappingLinear interpolates linearly between MinFrequency and MaxFrequency.
	MappingLinear
)

// ParseMapping converts a configuration name into a Mapping.
func ParseMapping(s string) (Mapping, error) {
	switch s {
	case "log", "logarithmic":
		return MappingLog, nil
	case "linear":
		return MappingLinear, nil
	}
	return MappingLog, fmt.Errorf("unknown frequency mapping %q", s)
}

func (m Mapping) String() string {
	switch m {
	case MappingLog:
		return "log"
	case MappingLinear:
		return "linear"
	}
	return fmt.Sprintf("Mapping(%d)", int(m))
}

// Frequency maps a raw reading to Hz using m.
func (m Mapping) Frequency(raw uint16) float32 {
	if m == MappingLinear {
		return LinearFrequency(raw)
	}
	return LogFrequency(raw)
}

// LinearFrequency maps [0, ADCMax] linearly onto [MinFrequency, MaxFrequency].
func LinearFrequency(raw uint16) float32 {
	f := MinFrequency + (MaxFrequency-MinFrequency)*fraction(raw)
	return clamp(f, MinFrequency, MaxFrequency)
}

// LogFrequency maps [0, ADCMax] onto [MinFrequency, MaxFrequency] so that equal
// pot travel covers equal frequency ratios.
func LogFrequency(raw uint16) float32 {
	exp := logMinFrequency + (logMaxFrequency-logMinFrequency)*fraction(raw)
	return clamp(math32.Pow(10, exp), MinFrequency, MaxFrequency)
}

// Amplitude maps [0, ADCMax] linearly onto [0, 1].
func Amplitude(raw uint16) float32 {
	return clamp(fraction(raw), 0, 1)
}

func fraction(raw uint16) float32 {
	if raw > ADCMax {
		raw = ADCMax
	}
	return float32(raw) / ADCMax
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
