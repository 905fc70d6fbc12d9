package control

import (
	"time"

	"github.com/chewxy/math32"

	"github.com/itohio/potsynth/pkg/protocol"
)

// Reporter converts averaged readings into protocol lines at a fixed cadence.
type Reporter struct {
	settings Settings
	clock    Clock

	lastFrequency float32
	lastAmplitude float32
	lastReport    time.Time
}

// NewReporter creates a reporter whose first report is due one interval from now.
// Nothing has been sent yet, so the first report writes both values.
func NewReporter(s Settings, clk Clock) *Reporter {
	return &Reporter{
		settings:      s,
		clock:         clk,
		lastFrequency: -1,
		lastAmplitude: -1,
		lastReport:    clk.Now(),
	}
}

// Due reports whether the report interval has elapsed.
func (r *Reporter) Due() bool {
	return r.clock.Now().Sub(r.lastReport) >= r.settings.Interval
}

// Report maps the averaged readings and appends the resulting lines to dst.
// It restarts the interval even when nothing is written.
func (r *Reporter) Report(dst []byte, frequencyAvg, amplitudeAvg uint16) []byte {
	frequency := r.settings.Mapping.Frequency(frequencyAvg)
	amplitude := Amplitude(amplitudeAvg)

	if r.settings.Format == FormatCombined {
		dst = protocol.AppendCombined(dst, float64(frequency), float64(amplitude))
		r.lastFrequency = frequency
		r.lastAmplitude = amplitude
	} else {
		if math32.Abs(frequency-r.lastFrequency) >= r.settings.FrequencyTolerance {
			dst = protocol.AppendFrequency(dst, float64(frequency))
			r.lastFrequency = frequency
		}
		if math32.Abs(amplitude-r.lastAmplitude) >= r.settings.AmplitudeTolerance {
			dst = protocol.AppendAmplitude(dst, float64(amplitude))
			r.lastAmplitude = amplitude
		}
	}

	r.lastReport = r.clock.Now()
	return dst
}

// LastSent returns the last frequency and amplitude written, -1 before the first report.
func (r *Reporter) LastSent() (frequency, amplitude float32) {
	return r.lastFrequency, r.lastAmplitude
}
