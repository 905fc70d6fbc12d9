package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/itohio/potsynth/pkg/control"
)

// Config represents the application configuration.
type Config struct {
	Serial   SerialConfig   `yaml:"serial"`
	Controls ControlsConfig `yaml:"controls"`
	Synth    SynthConfig    `yaml:"synth"`
	Scope    ScopeConfig    `yaml:"scope"`
	Mock     MockConfig     `yaml:"mock"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// SerialConfig contains serial port configuration.
type SerialConfig struct {
	Port     string `yaml:"port"`
	BaudRate int    `yaml:"baud_rate"`
}

// ControlsConfig mirrors the board's control loop settings. The host uses it
// for the mock device; the firmware compiles the same values in.
type ControlsConfig struct {
	Window             int           `yaml:"window"`              // Moving average length
	Interval           time.Duration `yaml:"interval"`            // Report interval
	Debounce           time.Duration `yaml:"debounce"`            // Button debounce delay
	Mapping            string        `yaml:"mapping"`             // "log" or "linear"
	Format             string        `yaml:"format"`              // "changes" or "combined"
	FrequencyTolerance float64       `yaml:"frequency_tolerance"` // Hz
	AmplitudeTolerance float64       `yaml:"amplitude_tolerance"`
}

// SynthConfig contains audio generation parameters.
type SynthConfig struct {
	SampleRate int     `yaml:"sample_rate"`
	Gain       float64 `yaml:"gain"` // Output scale applied on top of the amplitude
	Frequency  float64 `yaml:"frequency"`
	Amplitude  float64 `yaml:"amplitude"`
}

// ScopeConfig contains waveform display parameters.
type ScopeConfig struct {
	Points int     `yaml:"points"`
	Phase  float64 `yaml:"phase"` // Visual phase offset in radians
}

// MockConfig contains mock device configuration.
type MockConfig struct {
	SweepPeriod     time.Duration `yaml:"sweep_period"`     // Frequency pot triangle period
	AmplitudePeriod time.Duration `yaml:"amplitude_period"` // Amplitude pot triangle period
	ButtonPeriod    time.Duration `yaml:"button_period"`    // Time between simulated presses (0 = never)
	PressDuration   time.Duration `yaml:"press_duration"`   // How long a simulated press is held
	TickInterval    time.Duration `yaml:"tick_interval"`    // Pause between loop iterations
	Noise           float64       `yaml:"noise"`            // Pot noise as a fraction of full scale
}

// LoggingConfig contains logger configuration.
type LoggingConfig struct {
	Debug bool `yaml:"debug"`
}

// Default returns a default configuration with sensible values.
func Default() *Config {
	return &Config{
		Serial: SerialConfig{
			Port:     "COM3", // Default for Windows, should be "/dev/ttyACM0" on Linux/Mac
			BaudRate: 115200,
		},
		Controls: ControlsConfig{
			Window:             control.DefaultWindow,
			Interval:           control.DefaultInterval,
			Debounce:           control.DefaultDebounce,
			Mapping:            "log",
			Format:             "changes",
			FrequencyTolerance: control.DefaultFrequencyTolerance,
			AmplitudeTolerance: control.DefaultAmplitudeTolerance,
		},
		Synth: SynthConfig{
			SampleRate: 44100,
			Gain:       0.2, // Keep speakers and ears safe at full amplitude
			Frequency:  440,
			Amplitude:  1.0,
		},
		Scope: ScopeConfig{
			Points: 1000,
			Phase:  0,
		},
		Mock: MockConfig{
			SweepPeriod:     20 * time.Second,
			AmplitudePeriod: 30 * time.Second,
			ButtonPeriod:    5 * time.Second,
			PressDuration:   200 * time.Millisecond,
			TickInterval:    time.Millisecond,
			Noise:           0.002,
		},
	}
}

// Load loads configuration from a YAML file. If the file doesn't exist or
// fields are missing, it uses default values.
func Load(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ensureDefaults()

	return cfg, nil
}

// Save saves the configuration to a YAML file.
func (c *Config) Save(filename string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Settings converts the controls section into control loop settings.
func (c ControlsConfig) Settings() (control.Settings, error) {
	mapping, err := control.ParseMapping(c.Mapping)
	if err != nil {
		return control.Settings{}, err
	}
	format, err := control.ParseFormat(c.Format)
	if err != nil {
		return control.Settings{}, err
	}

	s := control.Settings{
		Window:             c.Window,
		Interval:           c.Interval,
		Debounce:           c.Debounce,
		Mapping:            mapping,
		Format:             format,
		FrequencyTolerance: float32(c.FrequencyTolerance),
		AmplitudeTolerance: float32(c.AmplitudeTolerance),
	}
	if err := s.Validate(); err != nil {
		return control.Settings{}, fmt.Errorf("invalid controls: %w", err)
	}
	return s, nil
}

// ensureDefaults ensures that all required fields have default values if missing.
func (c *Config) ensureDefaults() {
	def := Default()

	if c.Serial.Port == "" {
		c.Serial.Port = def.Serial.Port
	}
	if c.Serial.BaudRate == 0 {
		c.Serial.BaudRate = def.Serial.BaudRate
	}

	if c.Controls.Window == 0 {
		c.Controls.Window = def.Controls.Window
	}
	if c.Controls.Interval == 0 {
		c.Controls.Interval = def.Controls.Interval
	}
	if c.Controls.Debounce == 0 {
		c.Controls.Debounce = def.Controls.Debounce
	}
	if c.Controls.Mapping == "" {
		c.Controls.Mapping = def.Controls.Mapping
	}
	if c.Controls.Format == "" {
		c.Controls.Format = def.Controls.Format
	}

	if c.Synth.SampleRate == 0 {
		c.Synth.SampleRate = def.Synth.SampleRate
	}
	if c.Synth.Gain == 0 {
		c.Synth.Gain = def.Synth.Gain
	}
	if c.Synth.Frequency == 0 {
		c.Synth.Frequency = def.Synth.Frequency
	}

	if c.Scope.Points == 0 {
		c.Scope.Points = def.Scope.Points
	}

	if c.Mock.SweepPeriod == 0 {
		c.Mock.SweepPeriod = def.Mock.SweepPeriod
	}
	if c.Mock.AmplitudePeriod == 0 {
		c.Mock.AmplitudePeriod = def.Mock.AmplitudePeriod
	}
	if c.Mock.PressDuration == 0 {
		c.Mock.PressDuration = def.Mock.PressDuration
	}
	if c.Mock.TickInterval == 0 {
		c.Mock.TickInterval = def.Mock.TickInterval
	}
}
