package device

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/itohio/potsynth/pkg/config"
	"github.com/itohio/potsynth/pkg/control"
	"github.com/itohio/potsynth/pkg/protocol"
)

// Mock simulates the control board. It runs the real control loop against
// simulated pots and a periodically pressed button, and feeds its serial
// output through a pipe into the same line reader the Serial device uses.
type Mock struct {
	cfg      *config.MockConfig
	settings control.Settings
	logger   *zap.SugaredLogger
	clock    clock.Clock

	messages  chan protocol.Message
	mu        sync.RWMutex
	cancel    context.CancelFunc
	pipe      *io.PipeReader
	connected bool
}

// NewMock creates a new mocked device instance.
func NewMock(cfg *config.MockConfig, settings control.Settings, logger *zap.SugaredLogger) *Mock {
	if cfg == nil {
		cfg = &config.Default().Mock
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	return &Mock{
		cfg:      cfg,
		settings: settings,
		logger:   logger.Named("mock"),
		clock:    clock.New(),
		messages: make(chan protocol.Message, DefaultBufferSize),
	}
}

// Connect starts the simulated board.
func (m *Mock) Connect() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.connected {
		return fmt.Errorf("already connected")
	}
	if err := m.settings.Validate(); err != nil {
		return fmt.Errorf("invalid mock settings: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	pr, pw := io.Pipe()

	sim := newSimulation(m.cfg, m.clock)
	m.cancel = cancel
	m.pipe = pr
	m.messages = make(chan protocol.Message, DefaultBufferSize)
	m.connected = true

	loop := control.NewLoop(m.settings, control.Hardware{
		Frequency: control.AnalogFunc(sim.frequencyPot),
		Amplitude: control.AnalogFunc(sim.amplitudePot),
		Button:    control.DigitalFunc(sim.button),
	}, m.clock, pw)
	loop.Setup()

	go func() {
		err := loop.Run(ctx, m.cfg.TickInterval)
		pw.CloseWithError(err)
	}()
	go readLines(ctx, pr, m.messages, m.logger)

	m.logger.Infow("connected", "mapping", m.settings.Mapping, "format", m.settings.Format)
	return nil
}

// Close stops the simulated board.
func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.connected {
		return nil
	}

	m.cancel()
	m.connected = false
	m.logger.Info("disconnected")

	return m.pipe.Close()
}

// Messages returns the channel for reading messages.
func (m *Mock) Messages() <-chan protocol.Message {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.messages
}

// IsConnected returns whether the device is currently connected.
func (m *Mock) IsConnected() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.connected
}

// simulation holds the state of one connection's simulated hardware. It is
// only touched by that connection's loop goroutine.
type simulation struct {
	cfg   config.MockConfig
	clock clock.Clock
	start time.Time
	rng   *rand.Rand
}

func newSimulation(cfg *config.MockConfig, clk clock.Clock) *simulation {
	start := clk.Now()
	return &simulation{
		cfg:   *cfg,
		clock: clk,
		start: start,
		rng:   rand.New(rand.NewPCG(uint64(start.UnixNano()), 0x5eed)),
	}
}

func (s *simulation) frequencyPot() uint16 {
	return s.pot(s.cfg.SweepPeriod)
}

func (s *simulation) amplitudePot() uint16 {
	return s.pot(s.cfg.AmplitudePeriod)
}

// pot returns a noisy triangle sweep over the full ADC range.
func (s *simulation) pot(period time.Duration) uint16 {
	v := triangle(s.clock.Since(s.start), period)
	if s.cfg.Noise > 0 {
		v += (s.rng.Float64()*2 - 1) * s.cfg.Noise
	}
	v = min(max(v, 0), 1)
	return uint16(v*control.ADCMax + 0.5)
}

// button returns the simulated pin level. The button idles HIGH and is held
// LOW for PressDuration at the start of every ButtonPeriod, beginning one
// period after connecting.
func (s *simulation) button() bool {
	return buttonLevel(s.clock.Since(s.start), s.cfg.ButtonPeriod, s.cfg.PressDuration)
}

func buttonLevel(elapsed, period, press time.Duration) bool {
	if period <= 0 || elapsed < period {
		return true
	}
	return elapsed%period >= press
}

// triangle maps elapsed time onto 0..1..0 over period. A zero period holds
// the midpoint.
func triangle(elapsed, period time.Duration) float64 {
	if period <= 0 {
		return 0.5
	}
	phase := float64(elapsed%period) / float64(period)
	if phase < 0.5 {
		return 2 * phase
	}
	return 2 - 2*phase
}
