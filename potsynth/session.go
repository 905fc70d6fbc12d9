package main

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/itohio/potsynth/pkg/audio"
	"github.com/itohio/potsynth/pkg/config"
	"github.com/itohio/potsynth/pkg/device"
	"github.com/itohio/potsynth/pkg/protocol"
	"github.com/itohio/potsynth/pkg/record"
	"github.com/itohio/potsynth/pkg/synth"
)

var errNotConnected = errors.New("not connected")

// session owns everything between the board and the speakers: the device
// connection, the oscillator and the optional player and recorder.
type session struct {
	cfg     *config.Config
	logger  *zap.SugaredLogger
	useMock bool

	osc      *synth.Oscillator
	player   *audio.Player
	recorder *record.Recorder

	mu     sync.Mutex
	device device.Device
	pumped chan struct{} // Closed when the message pump exits
}

func newSession(cfg *config.Config, logger *zap.SugaredLogger, useMock bool) *session {
	osc := synth.New(cfg.Synth.SampleRate, cfg.Synth.Gain)
	osc.SetFrequency(cfg.Synth.Frequency)
	osc.SetAmplitude(cfg.Synth.Amplitude)

	return &session{
		cfg:     cfg,
		logger:  logger,
		useMock: useMock,
		osc:     osc,
	}
}

// startAudio opens the sound device and, when recordPath is set, tees the
// output into a WAV file.
func (s *session) startAudio(recordPath string) error {
	player, err := audio.NewPlayer(s.osc.SampleRate(), s.osc, s.logger.Named("audio"))
	if err != nil {
		return err
	}
	s.player = player

	if recordPath != "" {
		rec, err := record.Create(recordPath, s.osc.SampleRate())
		if err != nil {
			return err
		}
		s.recorder = rec
		player.Record(rec)
		s.logger.Infow("recording", "file", recordPath)
	}

	player.Start()
	return nil
}

// newDevice creates the configured device without connecting it.
func (s *session) newDevice() (device.Device, error) {
	if s.useMock {
		settings, err := s.cfg.Controls.Settings()
		if err != nil {
			return nil, err
		}
		return device.NewMock(&s.cfg.Mock, settings, s.logger.Named("device")), nil
	}
	return device.New(s.cfg.Serial.Port, s.cfg.Serial.BaudRate, device.DefaultBufferSize, s.logger.Named("device")), nil
}

// connect opens the device and starts pumping its messages into the
// oscillator. onMessage, if set, is called from the pump goroutine after the
// oscillator has been updated.
func (s *session) connect(onMessage func(protocol.Message)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.device != nil {
		return fmt.Errorf("already connected")
	}

	dev, err := s.newDevice()
	if err != nil {
		return fmt.Errorf("failed to create device: %w", err)
	}
	if err := dev.Connect(); err != nil {
		return err
	}

	pumped := make(chan struct{})
	messages := dev.Messages()
	go func() {
		defer close(pumped)
		for msg := range messages {
			s.osc.Apply(msg)
			if onMessage != nil {
				onMessage(msg)
			}
		}
	}()

	s.device = dev
	s.pumped = pumped
	return nil
}

// connected reports whether a device is attached.
func (s *session) connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.device != nil && s.device.IsConnected()
}

// done returns a channel closed once the current connection's messages
// stop. It is nil when not connected.
func (s *session) done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pumped
}

// disconnect closes the device and waits for the message pump to drain.
func (s *session) disconnect() error {
	s.mu.Lock()
	dev, pumped := s.device, s.pumped
	s.device, s.pumped = nil, nil
	s.mu.Unlock()

	if dev == nil {
		return errNotConnected
	}

	err := dev.Close()
	<-pumped
	return err
}

// applyConfig picks up settings that can change while running.
func (s *session) applyConfig(cfg *config.Config) {
	s.osc.SetGain(cfg.Synth.Gain)
	s.logger.Infow("configuration reloaded", "gain", cfg.Synth.Gain)
}

// close releases every resource, combining their errors.
func (s *session) close() error {
	var err error
	if derr := s.disconnect(); derr != nil && !errors.Is(derr, errNotConnected) {
		err = multierr.Append(err, derr)
	}
	if s.player != nil {
		err = multierr.Append(err, s.player.Close())
	}
	if s.recorder != nil {
		err = multierr.Append(err, s.recorder.Close())
		s.logger.Infow("recording finished", "frames", s.recorder.Frames())
	}
	return err
}
