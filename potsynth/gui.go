package main

import (
	"fmt"
	"math"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/itohio/potsynth/pkg/control"
	"github.com/itohio/potsynth/pkg/protocol"
	"github.com/itohio/potsynth/pkg/scope"
)

// Throttle value updates to ~60 FPS. Toggles are never throttled.
const updateInterval = 16 * time.Millisecond

// appState holds the application state.
type appState struct {
	session    *session
	window     fyne.Window
	configPath string

	connectBtn  *widget.Button
	audioBtn    *widget.Button
	amplitude   *widget.Slider
	frequency   *widget.Slider
	phase       *widget.Slider
	freqLabel   *widget.Label
	scopeWidget *scope.ScopeWidget

	// syncing is set on the main thread while sliders follow the oscillator,
	// so their change handlers do not write snapped values back.
	syncing bool

	lastUpdateTime time.Time
	updateMu       sync.Mutex
}

func newAppState(s *session, window fyne.Window, configPath string) *appState {
	return &appState{
		session:    s,
		window:     window,
		configPath: configPath,
	}
}

// build creates the window content: toolbar on top, controls on the left and
// the scope filling the rest.
func (state *appState) build() fyne.CanvasObject {
	state.scopeWidget = scope.New(&state.session.cfg.Scope)

	return container.NewBorder(
		state.createToolbar(),
		nil,
		state.createControls(),
		nil,
		state.scopeWidget,
	)
}

// createToolbar creates the application toolbar with Connect and Settings buttons.
func (state *appState) createToolbar() fyne.CanvasObject {
	state.connectBtn = widget.NewButtonWithIcon("Connect", theme.LoginIcon(), state.handleConnect)

	settingsBtn := widget.NewButtonWithIcon("", theme.SettingsIcon(), func() {
		showSettingsDialog(state)
	})

	return container.NewBorder(nil, nil, container.NewHBox(state.connectBtn, settingsBtn), nil, nil)
}

// createControls creates the audio toggle and the tone sliders.
func (state *appState) createControls() fyne.CanvasObject {
	osc := state.session.osc
	st := osc.State()

	state.audioBtn = widget.NewButtonWithIcon("", theme.VolumeMuteIcon(), func() {
		osc.Toggle()
		state.refreshControls()
	})

	warning := widget.NewLabel("Mind your ears:\nlower the PC volume")
	warning.Importance = widget.DangerImportance
	warning.Alignment = fyne.TextAlignCenter

	state.amplitude = widget.NewSlider(0, 1)
	state.amplitude.Step = 0.01
	state.amplitude.SetValue(st.Amplitude)
	state.amplitude.OnChanged = func(v float64) {
		if state.syncing {
			return
		}
		osc.SetAmplitude(v)
		state.refreshScope()
	}

	state.frequency = widget.NewSlider(float64(control.MinFrequency), float64(control.MaxFrequency))
	state.frequency.Step = 1
	state.frequency.SetValue(st.Frequency)
	state.frequency.OnChanged = func(v float64) {
		if state.syncing {
			return
		}
		osc.SetFrequency(v)
		state.refreshScope()
	}

	state.phase = widget.NewSlider(-math.Pi, math.Pi)
	state.phase.Step = 0.01
	state.phase.SetValue(state.session.cfg.Scope.Phase)
	state.phase.OnChanged = func(v float64) {
		state.scopeWidget.SetPhase(v)
	}

	state.freqLabel = widget.NewLabel(scope.Readout(st.Frequency))
	state.freqLabel.TextStyle = fyne.TextStyle{Bold: true}
	state.freqLabel.Alignment = fyne.TextAlignCenter

	state.refreshControls()

	return widget.NewCard("Controls", "", container.NewVBox(
		state.audioBtn,
		warning,
		widget.NewSeparator(),
		widget.NewLabel("Amplitude"),
		state.amplitude,
		widget.NewLabel("Frequency (Hz)"),
		state.frequency,
		widget.NewLabel("Phase (visual)"),
		state.phase,
		state.freqLabel,
	))
}

// handleConnect handles the connect/disconnect button click.
func (state *appState) handleConnect() {
	s := state.session
	if s.connected() {
		if err := s.disconnect(); err != nil {
			dialog.ShowError(fmt.Errorf("failed to disconnect: %w", err), state.window)
		}
		state.connectBtn.SetText("Connect")
		return
	}

	if err := s.connect(state.onMessage); err != nil {
		if s.useMock {
			dialog.ShowError(fmt.Errorf("failed to connect to mocked device: %w", err), state.window)
		} else {
			dialog.ShowError(fmt.Errorf("failed to connect to %s: %w", s.cfg.Serial.Port, err), state.window)
		}
		return
	}
	state.connectBtn.SetText("Disconnect")

	// Reflect an unexpected disconnect in the toolbar.
	done := s.done()
	go func() {
		<-done
		fyne.Do(func() {
			if !s.connected() {
				state.connectBtn.SetText("Connect")
			}
		})
	}()
}

// onMessage runs on the device pump goroutine after the oscillator has been
// updated, and schedules the UI refresh on the main thread.
func (state *appState) onMessage(msg protocol.Message) {
	if msg.Kind != protocol.KindToggle {
		state.updateMu.Lock()
		now := time.Now()
		if now.Sub(state.lastUpdateTime) < updateInterval {
			state.updateMu.Unlock()
			return
		}
		state.lastUpdateTime = now
		state.updateMu.Unlock()
	}

	fyne.Do(state.refreshControls)
}

// refreshControls brings every control in line with the oscillator.
// Must run on the main thread.
func (state *appState) refreshControls() {
	st := state.session.osc.State()

	if st.Enabled {
		state.audioBtn.SetText("Audio ON")
		state.audioBtn.SetIcon(theme.VolumeUpIcon())
		state.audioBtn.Importance = widget.HighImportance
	} else {
		state.audioBtn.SetText("Audio OFF")
		state.audioBtn.SetIcon(theme.VolumeMuteIcon())
		state.audioBtn.Importance = widget.MediumImportance
	}
	state.audioBtn.Refresh()

	state.syncing = true
	state.amplitude.SetValue(st.Amplitude)
	state.frequency.SetValue(st.Frequency)
	state.syncing = false
	state.refreshScope()
}

// refreshScope redraws the scope and the frequency readout. Must run on the
// main thread.
func (state *appState) refreshScope() {
	if state.scopeWidget == nil || state.freqLabel == nil {
		return
	}
	st := state.session.osc.State()
	state.freqLabel.SetText(scope.Readout(st.Frequency))
	state.scopeWidget.Update(st.Frequency, st.Amplitude, st.Enabled)
}
