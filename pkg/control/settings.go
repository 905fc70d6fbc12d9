package control

import (
	"fmt"
	"time"
)

// Format selects how the Reporter writes values.
type Format int

const (
	// FormatChanges writes separate F/A lines, each only when its value moved
	// by at least the configured tolerance.
	FormatChanges Format = iota
	// FormatCombined writes one "F=..,A=.." line on every report interval.
	FormatCombined
)

// ParseFormat converts a configuration name into a Format.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "changes":
		return FormatChanges, nil
	case "combined":
		return FormatCombined, nil
	}
	return FormatChanges, fmt.Errorf("unknown report format %q", s)
}

func (f Format) String() string {
	switch f {
	case FormatChanges:
		return "changes"
	case FormatCombined:
		return "combined"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

const (
	DefaultInterval           = 20 * time.Millisecond
	DefaultDebounce           = 50 * time.Millisecond
	DefaultFrequencyTolerance = 5.0
	DefaultAmplitudeTolerance = 0.01
)

// Settings tunes the control loop.
type Settings struct {
	Window             int           // Moving average length
	Interval           time.Duration // Minimum time between reports
	Debounce           time.Duration // Delay before confirming a button press
	Mapping            Mapping
	Format             Format
	FrequencyTolerance float32 // Hz
	AmplitudeTolerance float32
}

// DefaultSettings returns the settings of the filtered, change-gated board.
func DefaultSettings() Settings {
	return Settings{
		Window:             DefaultWindow,
		Interval:           DefaultInterval,
		Debounce:           DefaultDebounce,
		Mapping:            MappingLog,
		Format:             FormatChanges,
		FrequencyTolerance: DefaultFrequencyTolerance,
		AmplitudeTolerance: DefaultAmplitudeTolerance,
	}
}

// Validate reports the first invalid field.
func (s Settings) Validate() error {
	if s.Window <= 0 {
		return fmt.Errorf("window must be positive, got %d", s.Window)
	}
	if s.Interval <= 0 {
		return fmt.Errorf("report interval must be positive, got %s", s.Interval)
	}
	if s.Debounce <= 0 {
		return fmt.Errorf("debounce must be positive, got %s", s.Debounce)
	}
	if s.Mapping != MappingLog && s.Mapping != MappingLinear {
		return fmt.Errorf("invalid mapping %s", s.Mapping)
	}
	if s.Format != FormatChanges && s.Format != FormatCombined {
		return fmt.Errorf("invalid format %s", s.Format)
	}
	if s.FrequencyTolerance < 0 || s.AmplitudeTolerance < 0 {
		return fmt.Errorf("tolerances must not be negative")
	}
	return nil
}
