package main

import (
	"fmt"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/itohio/potsynth/pkg/device"
)

// showSettingsDialog displays a settings dialog with tabs for all configuration options.
func showSettingsDialog(state *appState) {
	tabs := container.NewAppTabs(
		createSerialTab(state),
		createControlsTab(state),
		createSynthTab(state),
		createMockTab(state),
	)

	content := container.NewBorder(nil, nil, nil, nil, tabs)
	content.Resize(fyne.NewSize(600, 450))

	d := dialog.NewCustom("Settings", "Close", content, state.window)
	d.Resize(fyne.NewSize(600, 450))
	d.Show()
}

// save writes the configuration and reports failures in a dialog.
func (state *appState) save() bool {
	if err := state.session.cfg.Save(state.configPath); err != nil {
		dialog.ShowError(fmt.Errorf("failed to save config: %w", err), state.window)
		return false
	}
	return true
}

// reconnect restarts the connection so new device settings take effect.
func (state *appState) reconnect() {
	if !state.session.connected() {
		return
	}
	state.handleConnect() // disconnect
	state.handleConnect() // connect with the new settings
}

// createSerialTab creates the Serial configuration tab.
func createSerialTab(state *appState) *container.TabItem {
	cfg := state.session.cfg

	// Get available serial ports
	ports, err := device.Ports()
	portOptions := []string{}
	portMap := make(map[string]string) // Map display name to actual port name

	if err == nil {
		for _, port := range ports {
			portOptions = append(portOptions, port.Description)
			portMap[port.Description] = port.Name
		}
	}

	// Add current port if not in list
	currentPort := cfg.Serial.Port
	currentDisplay := currentPort
	found := false
	for _, opt := range portOptions {
		if portMap[opt] == currentPort {
			currentDisplay = opt
			found = true
			break
		}
	}
	if !found && currentPort != "" {
		portOptions = append(portOptions, currentPort)
		portMap[currentPort] = currentPort
	}

	portSelect := widget.NewSelect(portOptions, nil)
	if currentDisplay != "" {
		portSelect.SetSelected(currentDisplay)
	}

	baudEntry := widget.NewEntry()
	baudEntry.SetText(strconv.Itoa(cfg.Serial.BaudRate))

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Serial Port", Widget: portSelect},
			{Text: "Baud Rate", Widget: baudEntry},
		},
		OnSubmit: func() {
			changed := false
			if portSelect.Selected != "" {
				selectedPort := portMap[portSelect.Selected]
				if selectedPort == "" {
					selectedPort = portSelect.Selected // Fallback to selected text
				}
				changed = cfg.Serial.Port != selectedPort
				cfg.Serial.Port = selectedPort
			}
			if baud, err := strconv.Atoi(baudEntry.Text); err == nil && baud > 0 {
				changed = changed || cfg.Serial.BaudRate != baud
				cfg.Serial.BaudRate = baud
			}
			if !state.save() {
				return
			}
			if changed && !state.session.useMock {
				state.reconnect()
			}
		},
	}

	return container.NewTabItem("Serial", form)
}

// createControlsTab creates the control loop tab. The board compiles these
// values in, so on the host they only drive the mocked device.
func createControlsTab(state *appState) *container.TabItem {
	cfg := state.session.cfg

	windowEntry := widget.NewEntry()
	windowEntry.SetText(strconv.Itoa(cfg.Controls.Window))

	intervalEntry := widget.NewEntry()
	intervalEntry.SetText(cfg.Controls.Interval.String())

	debounceEntry := widget.NewEntry()
	debounceEntry.SetText(cfg.Controls.Debounce.String())

	mappingSelect := widget.NewSelect([]string{"log", "linear"}, nil)
	mappingSelect.SetSelected(cfg.Controls.Mapping)

	formatSelect := widget.NewSelect([]string{"changes", "combined"}, nil)
	formatSelect.SetSelected(cfg.Controls.Format)

	freqTolEntry := widget.NewEntry()
	freqTolEntry.SetText(strconv.FormatFloat(cfg.Controls.FrequencyTolerance, 'f', -1, 64))

	ampTolEntry := widget.NewEntry()
	ampTolEntry.SetText(strconv.FormatFloat(cfg.Controls.AmplitudeTolerance, 'f', -1, 64))

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Average Window", Widget: windowEntry},
			{Text: "Report Interval", Widget: intervalEntry},
			{Text: "Debounce", Widget: debounceEntry},
			{Text: "Frequency Mapping", Widget: mappingSelect},
			{Text: "Report Format", Widget: formatSelect},
			{Text: "Frequency Tolerance (Hz)", Widget: freqTolEntry},
			{Text: "Amplitude Tolerance", Widget: ampTolEntry},
		},
		OnSubmit: func() {
			controls := cfg.Controls
			if w, err := strconv.Atoi(windowEntry.Text); err == nil {
				controls.Window = w
			}
			if d, err := time.ParseDuration(intervalEntry.Text); err == nil {
				controls.Interval = d
			}
			if d, err := time.ParseDuration(debounceEntry.Text); err == nil {
				controls.Debounce = d
			}
			controls.Mapping = mappingSelect.Selected
			controls.Format = formatSelect.Selected
			if v, err := strconv.ParseFloat(freqTolEntry.Text, 64); err == nil {
				controls.FrequencyTolerance = v
			}
			if v, err := strconv.ParseFloat(ampTolEntry.Text, 64); err == nil {
				controls.AmplitudeTolerance = v
			}

			if _, err := controls.Settings(); err != nil {
				dialog.ShowError(err, state.window)
				return
			}
			cfg.Controls = controls
			if state.save() && state.session.useMock {
				state.reconnect()
			}
		},
	}

	return container.NewTabItem("Controls", form)
}

// createSynthTab creates the Synth configuration tab.
func createSynthTab(state *appState) *container.TabItem {
	cfg := state.session.cfg

	gainEntry := widget.NewEntry()
	gainEntry.SetText(strconv.FormatFloat(cfg.Synth.Gain, 'f', -1, 64))

	sampleRateEntry := widget.NewEntry()
	sampleRateEntry.SetText(strconv.Itoa(cfg.Synth.SampleRate))

	pointsEntry := widget.NewEntry()
	pointsEntry.SetText(strconv.Itoa(cfg.Scope.Points))

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Output Gain", Widget: gainEntry},
			{Text: "Sample Rate (restart)", Widget: sampleRateEntry},
			{Text: "Scope Points (restart)", Widget: pointsEntry},
		},
		OnSubmit: func() {
			if g, err := strconv.ParseFloat(gainEntry.Text, 64); err == nil && g > 0 && g <= 1 {
				cfg.Synth.Gain = g
			}
			if sr, err := strconv.Atoi(sampleRateEntry.Text); err == nil && sr > 0 {
				cfg.Synth.SampleRate = sr
			}
			if p, err := strconv.Atoi(pointsEntry.Text); err == nil && p > 1 {
				cfg.Scope.Points = p
			}
			cfg.Scope.Phase = state.phase.Value
			if state.save() {
				state.session.applyConfig(cfg)
			}
		},
	}

	return container.NewTabItem("Synth", form)
}

// createMockTab creates the Mock device configuration tab.
func createMockTab(state *appState) *container.TabItem {
	cfg := state.session.cfg

	sweepEntry := widget.NewEntry()
	sweepEntry.SetText(cfg.Mock.SweepPeriod.String())

	amplitudeEntry := widget.NewEntry()
	amplitudeEntry.SetText(cfg.Mock.AmplitudePeriod.String())

	buttonEntry := widget.NewEntry()
	buttonEntry.SetText(cfg.Mock.ButtonPeriod.String())

	pressEntry := widget.NewEntry()
	pressEntry.SetText(cfg.Mock.PressDuration.String())

	tickEntry := widget.NewEntry()
	tickEntry.SetText(cfg.Mock.TickInterval.String())

	noiseEntry := widget.NewEntry()
	noiseEntry.SetText(strconv.FormatFloat(cfg.Mock.Noise, 'f', -1, 64))

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Frequency Sweep Period", Widget: sweepEntry},
			{Text: "Amplitude Sweep Period", Widget: amplitudeEntry},
			{Text: "Button Period (0 = never)", Widget: buttonEntry},
			{Text: "Press Duration", Widget: pressEntry},
			{Text: "Tick Interval", Widget: tickEntry},
			{Text: "Noise (fraction)", Widget: noiseEntry},
		},
		OnSubmit: func() {
			if d, err := time.ParseDuration(sweepEntry.Text); err == nil {
				cfg.Mock.SweepPeriod = d
			}
			if d, err := time.ParseDuration(amplitudeEntry.Text); err == nil {
				cfg.Mock.AmplitudePeriod = d
			}
			if d, err := time.ParseDuration(buttonEntry.Text); err == nil {
				cfg.Mock.ButtonPeriod = d
			}
			if d, err := time.ParseDuration(pressEntry.Text); err == nil {
				cfg.Mock.PressDuration = d
			}
			if d, err := time.ParseDuration(tickEntry.Text); err == nil {
				cfg.Mock.TickInterval = d
			}
			if n, err := strconv.ParseFloat(noiseEntry.Text, 64); err == nil {
				cfg.Mock.Noise = n
			}
			if state.save() && state.session.useMock {
				state.reconnect()
			}
		},
	}

	return container.NewTabItem("Mock", form)
}
