package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itohio/potsynth/pkg/control"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.NotNil(t, cfg)
	assert.Equal(t, "COM3", cfg.Serial.Port)
	assert.Equal(t, 115200, cfg.Serial.BaudRate)
	assert.Equal(t, 5, cfg.Controls.Window)
	assert.Equal(t, 20*time.Millisecond, cfg.Controls.Interval)
	assert.Equal(t, 50*time.Millisecond, cfg.Controls.Debounce)
	assert.Equal(t, "log", cfg.Controls.Mapping)
	assert.Equal(t, "changes", cfg.Controls.Format)
	assert.Equal(t, 44100, cfg.Synth.SampleRate)
	assert.Equal(t, 0.2, cfg.Synth.Gain)
	assert.Equal(t, 1000, cfg.Scope.Points)
	assert.Equal(t, 5*time.Second, cfg.Mock.ButtonPeriod)
	assert.False(t, cfg.Logging.Debug)
}

func TestLoad_FileNotExists(t *testing.T) {
	cfg, err := Load("nonexistent.yaml")
	require.NoError(t, err)
	assert.NotNil(t, cfg)
	assert.Equal(t, "COM3", cfg.Serial.Port)
}

func TestLoad_ValidYAML(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "test_config_*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	yamlContent := `
serial:
  port: "/dev/ttyACM0"
  baud_rate: 9600

controls:
  window: 8
  interval: 50ms
  debounce: 30ms
  mapping: linear
  format: combined
  frequency_tolerance: 10
  amplitude_tolerance: 0.05

synth:
  sample_rate: 48000
  gain: 0.5

mock:
  button_period: 2s
  noise: 0
`

	_, err = tmpfile.WriteString(yamlContent)
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())

	cfg, err := Load(tmpfile.Name())
	require.NoError(t, err)
	assert.NotNil(t, cfg)

	assert.Equal(t, "/dev/ttyACM0", cfg.Serial.Port)
	assert.Equal(t, 9600, cfg.Serial.BaudRate)
	assert.Equal(t, 8, cfg.Controls.Window)
	assert.Equal(t, 50*time.Millisecond, cfg.Controls.Interval)
	assert.Equal(t, 30*time.Millisecond, cfg.Controls.Debounce)
	assert.Equal(t, "linear", cfg.Controls.Mapping)
	assert.Equal(t, "combined", cfg.Controls.Format)
	assert.Equal(t, float64(10), cfg.Controls.FrequencyTolerance)
	assert.Equal(t, 0.05, cfg.Controls.AmplitudeTolerance)
	assert.Equal(t, 48000, cfg.Synth.SampleRate)
	assert.Equal(t, 0.5, cfg.Synth.Gain)
	assert.Equal(t, 2*time.Second, cfg.Mock.ButtonPeriod)
	assert.Equal(t, float64(0), cfg.Mock.Noise)
}

func TestLoad_InvalidYAML(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "test_config_*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	_, err = tmpfile.WriteString("invalid: yaml: content: [")
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())

	cfg, err := Load(tmpfile.Name())
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_PartialYAML(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "test_config_*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	yamlContent := `
serial:
  port: "/dev/ttyACM0"
controls:
  window: 0
  mapping: ""
`

	_, err = tmpfile.WriteString(yamlContent)
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())

	cfg, err := Load(tmpfile.Name())
	require.NoError(t, err)
	assert.NotNil(t, cfg)

	// Should use defaults for missing fields
	assert.Equal(t, "/dev/ttyACM0", cfg.Serial.Port)
	assert.Equal(t, 115200, cfg.Serial.BaudRate)
	assert.Equal(t, 5, cfg.Controls.Window)
	assert.Equal(t, "log", cfg.Controls.Mapping)
	assert.Equal(t, 44100, cfg.Synth.SampleRate)
}

func TestSave(t *testing.T) {
	cfg := Default()
	cfg.Serial.Port = "/dev/ttyUSB0"
	cfg.Controls.Format = "combined"
	cfg.Synth.Gain = 0.1

	tmpfile, err := os.CreateTemp("", "test_save_*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	err = cfg.Save(tmpfile.Name())
	require.NoError(t, err)

	// Load it back and verify
	loaded, err := Load(tmpfile.Name())
	require.NoError(t, err)
	assert.Equal(t, "/dev/ttyUSB0", loaded.Serial.Port)
	assert.Equal(t, "combined", loaded.Controls.Format)
	assert.Equal(t, 0.1, loaded.Synth.Gain)
	assert.Equal(t, cfg.Controls.Interval, loaded.Controls.Interval)
}

func TestControlsConfig_Settings(t *testing.T) {
	cfg := Default()

	s, err := cfg.Controls.Settings()
	require.NoError(t, err)
	assert.Equal(t, control.DefaultSettings(), s)

	cfg.Controls.Mapping = "linear"
	cfg.Controls.Format = "combined"
	s, err = cfg.Controls.Settings()
	require.NoError(t, err)
	assert.Equal(t, control.MappingLinear, s.Mapping)
	assert.Equal(t, control.FormatCombined, s.Format)
}

func TestControlsConfig_SettingsErrors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*ControlsConfig)
	}{
		{"unknown mapping", func(c *ControlsConfig) { c.Mapping = "cubic" }},
		{"unknown format", func(c *ControlsConfig) { c.Format = "json" }},
		{"negative window", func(c *ControlsConfig) { c.Window = -1 }},
		{"negative tolerance", func(c *ControlsConfig) { c.FrequencyTolerance = -5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default().Controls
			tt.modify(&c)
			_, err := c.Settings()
			assert.Error(t, err)
		})
	}
}
