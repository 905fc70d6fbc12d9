// Package protocol implements the line-oriented text protocol spoken between
// the control board and the host.
//
// Every message is a single newline-terminated line:
//
//	F440.00          frequency in Hz
//	A0.55            amplitude in [0, 1]
//	T1 / T0          audio enabled / disabled
//	F=440.00,A=0.55  combined report
//
// Encoding only depends on strconv so it can be used from TinyGo firmware.
package protocol

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind identifies the type of a message.
type Kind byte

const (
	KindFrequency Kind = 'F'
	KindAmplitude Kind = 'A'
	KindToggle    Kind = 'T'
	// KindCombined carries both frequency and amplitude in one line.
	KindCombined Kind = 'C'
)

// Decimals is the number of decimal places used for values on the wire.
const Decimals = 2

var (
	// ErrEmpty is returned when parsing a blank line.
	ErrEmpty = errors.New("empty line")
	// ErrUnknownKind is returned when a line starts with an unknown prefix.
	ErrUnknownKind = errors.New("unknown message kind")
	// ErrMalformed is returned when the value part of a line cannot be parsed.
	ErrMalformed = errors.New("malformed message")
)

// Message is a single decoded protocol line.
type Message struct {
	Kind      Kind
	Frequency float64 // Hz, set for KindFrequency and KindCombined
	Amplitude float64 // 0..1, set for KindAmplitude and KindCombined
	Enabled   bool    // set for KindToggle
}

// String returns the wire representation without the trailing newline.
func (m Message) String() string {
	b := AppendMessage(nil, m)
	return string(b[:len(b)-1])
}

// AppendMessage appends the wire representation of m, including the newline.
func AppendMessage(dst []byte, m Message) []byte {
	switch m.Kind {
	case KindFrequency:
		return AppendFrequency(dst, m.Frequency)
	case KindAmplitude:
		return AppendAmplitude(dst, m.Amplitude)
	case KindToggle:
		return AppendToggle(dst, m.Enabled)
	case KindCombined:
		return AppendCombined(dst, m.Frequency, m.Amplitude)
	}
	return append(dst, '\n')
}

// AppendFrequency appends an "F<hz>" line.
func AppendFrequency(dst []byte, hz float64) []byte {
	dst = append(dst, byte(KindFrequency))
	dst = strconv.AppendFloat(dst, hz, 'f', Decimals, 64)
	return append(dst, '\n')
}

// AppendAmplitude appends an "A<amp>" line.
func AppendAmplitude(dst []byte, amp float64) []byte {
	dst = append(dst, byte(KindAmplitude))
	dst = strconv.AppendFloat(dst, amp, 'f', Decimals, 64)
	return append(dst, '\n')
}

// AppendToggle appends a "T1" or "T0" line.
func AppendToggle(dst []byte, enabled bool) []byte {
	dst = append(dst, byte(KindToggle))
	if enabled {
		dst = append(dst, '1')
	} else {
		dst = append(dst, '0')
	}
	return append(dst, '\n')
}

// AppendCombined appends an "F=<hz>,A=<amp>" line.
func AppendCombined(dst []byte, hz, amp float64) []byte {
	dst = append(dst, "F="...)
	dst = strconv.AppendFloat(dst, hz, 'f', Decimals, 64)
	dst = append(dst, ",A="...)
	dst = strconv.AppendFloat(dst, amp, 'f', Decimals, 64)
	return append(dst, '\n')
}

// Parse decodes a single line. Surrounding whitespace, including a trailing
// carriage return, is ignored.
func Parse(line string) (Message, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Message{}, ErrEmpty
	}

	if strings.HasPrefix(line, "F=") {
		return parseCombined(line)
	}

	value := line[1:]
	switch Kind(line[0]) {
	case KindFrequency:
		hz, err := parseValue(value)
		if err != nil {
			return Message{}, fmt.Errorf("frequency %q: %w", line, err)
		}
		return Message{Kind: KindFrequency, Frequency: hz}, nil
	case KindAmplitude:
		amp, err := parseValue(value)
		if err != nil {
			return Message{}, fmt.Errorf("amplitude %q: %w", line, err)
		}
		return Message{Kind: KindAmplitude, Amplitude: amp}, nil
	case KindToggle:
		switch value {
		case "1":
			return Message{Kind: KindToggle, Enabled: true}, nil
		case "0":
			return Message{Kind: KindToggle, Enabled: false}, nil
		}
		return Message{}, fmt.Errorf("toggle %q: %w", line, ErrMalformed)
	}

	return Message{}, fmt.Errorf("%q: %w", line, ErrUnknownKind)
}

// parseCombined parses "F=<hz>,A=<amp>".
func parseCombined(line string) (Message, error) {
	freqPart, ampPart, ok := strings.Cut(line, ",")
	if !ok || !strings.HasPrefix(ampPart, "A=") {
		return Message{}, fmt.Errorf("combined %q: %w", line, ErrMalformed)
	}

	hz, err := parseValue(strings.TrimPrefix(freqPart, "F="))
	if err != nil {
		return Message{}, fmt.Errorf("combined frequency %q: %w", line, err)
	}
	amp, err := parseValue(strings.TrimPrefix(ampPart, "A="))
	if err != nil {
		return Message{}, fmt.Errorf("combined amplitude %q: %w", line, err)
	}

	return Message{Kind: KindCombined, Frequency: hz, Amplitude: amp}, nil
}

// parseValue parses a non-negative finite decimal number.
func parseValue(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, fmt.Errorf("%w: value %q out of range", ErrMalformed, s)
	}
	return v, nil
}
