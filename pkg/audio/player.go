// Package audio plays oscillator output on the default sound device.
package audio

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"

	"github.com/ebitengine/oto/v3"
	"go.uber.org/zap"
)

const bytesPerSample = 4

// Source produces mono float32 samples. *synth.Oscillator satisfies it.
type Source interface {
	Fill(buf []float32)
}

// Sink receives a copy of every sample sent to the sound device.
// *record.Recorder satisfies it.
type Sink interface {
	WriteSamples(samples []float32) error
}

// stream adapts a Source to the io.Reader oto pulls from.
type stream struct {
	source  Source
	logger  *zap.SugaredLogger
	scratch []float32

	mu   sync.Mutex
	sink Sink
}

func (s *stream) Read(p []byte) (int, error) {
	n := len(p) / bytesPerSample
	if n == 0 {
		return 0, nil
	}
	if cap(s.scratch) < n {
		s.scratch = make([]float32, n)
	}
	samples := s.scratch[:n]
	s.source.Fill(samples)

	for i, v := range samples {
		binary.LittleEndian.PutUint32(p[i*bytesPerSample:], math.Float32bits(v))
	}

	s.mu.Lock()
	sink := s.sink
	s.mu.Unlock()
	if sink != nil {
		if err := sink.WriteSamples(samples); err != nil {
			s.logger.Errorw("recording failed, detaching recorder", "error", err)
			s.setSink(nil)
		}
	}

	return n * bytesPerSample, nil
}

func (s *stream) setSink(sink Sink) {
	s.mu.Lock()
	s.sink = sink
	s.mu.Unlock()
}

// Player streams a Source to the sound device.
type Player struct {
	ctx    *oto.Context
	player *oto.Player
	stream *stream

	mu      sync.Mutex
	started bool
}

// NewPlayer opens the sound device for mono float32 output at sampleRate.
// oto allows only one context per process.
func NewPlayer(sampleRate int, src Source, logger *zap.SugaredLogger) (*Player, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open audio device: %w", err)
	}
	<-ready

	s := &stream{source: src, logger: logger}
	return &Player{
		ctx:    ctx,
		player: ctx.NewPlayer(s),
		stream: s,
	}, nil
}

// Record tees every played sample into sink. Pass nil to stop.
func (p *Player) Record(sink Sink) {
	p.stream.setSink(sink)
}

// Start begins playback.
func (p *Player) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started && p.player != nil {
		p.player.Play()
		p.started = true
	}
}

// IsStarted reports whether playback is running.
func (p *Player) IsStarted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.started
}

// Close stops playback and releases the player.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.started = false
	if p.player == nil {
		return nil
	}
	err := p.player.Close()
	p.player = nil
	if err != nil {
		return fmt.Errorf("failed to close audio player: %w", err)
	}
	return nil
}
