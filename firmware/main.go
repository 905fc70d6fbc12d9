//go:build tinygo

//go:generate tinygo flash -target=xiao

package main

import (
	"machine"

	"github.com/benbjohnson/clock"

	"github.com/itohio/potsynth/pkg/control"
)

// adc12 reads a 12-bit value from a TinyGo ADC, which always scales
// readings to 16 bits.
type adc12 struct {
	machine.ADC
}

func (a adc12) Get() uint16 {
	return a.ADC.Get() >> 4
}

func settings() control.Settings {
	s := control.Settings{
		Window:             NUM_READINGS,
		Interval:           SEND_INTERVAL,
		Debounce:           DEBOUNCE_DELAY,
		Mapping:            control.MappingLinear,
		Format:             control.FormatChanges,
		FrequencyTolerance: FREQ_TOLERANCE,
		AmplitudeTolerance: AMP_TOLERANCE,
	}
	if USE_LOG_MAPPING {
		s.Mapping = control.MappingLog
	}
	if COMBINED_REPORTS {
		s.Format = control.FormatCombined
	}
	return s
}

func main() {
	// Configure ADC pins and set up ADCs with highest resolution
	PIN_FREQ_POT.Configure(machine.PinConfig{Mode: machine.PinInput})
	PIN_AMP_POT.Configure(machine.PinConfig{Mode: machine.PinInput})

	freqPot := machine.ADC{Pin: PIN_FREQ_POT}
	ampPot := machine.ADC{Pin: PIN_AMP_POT}

	adcConfig := machine.ADCConfig{
		Reference:  ADC_REFERENCE_MV,
		Resolution: ADC_RESOLUTION,
	}
	freqPot.Configure(adcConfig)
	ampPot.Configure(adcConfig)

	// Button idles HIGH and pulls LOW when pressed
	PIN_BUTTON.Configure(machine.PinConfig{Mode: machine.PinInputPullup})

	uart := machine.Serial
	uart.Configure(machine.UARTConfig{
		BaudRate: UART_BAUD_RATE,
	})

	loop := control.NewLoop(settings(), control.Hardware{
		Frequency: adc12{freqPot},
		Amplitude: adc12{ampPot},
		Button:    PIN_BUTTON,
	}, clock.New(), uart)

	// Fill the averaging windows before the first report
	loop.Setup()

	for {
		// Nothing useful can be done about a failed write here; the host
		// resynchronizes on the next line.
		_ = loop.Tick()
	}
}
