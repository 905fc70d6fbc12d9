// Package record captures synthesized audio to WAV files.
package record

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sync"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"go.uber.org/multierr"
)

const (
	bitDepth       = 16
	channels       = 1
	pcmFormat      = 1
	fullScale16Bit = math.MaxInt16
)

// ErrClosed is returned when writing to a closed recorder.
var ErrClosed = errors.New("recorder closed")

// Recorder writes mono 16-bit PCM WAV files. It is safe to write from the
// audio goroutine while another goroutine closes it.
type Recorder struct {
	mu     sync.Mutex
	file   *os.File
	enc    *wav.Encoder
	buf    *audio.IntBuffer
	frames int
	closed bool
}

// Create creates or truncates path and prepares it for recording.
func Create(path string, sampleRate int) (*Recorder, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate %d", sampleRate)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create recording: %w", err)
	}

	return &Recorder{
		file: f,
		enc:  wav.NewEncoder(f, sampleRate, bitDepth, channels, pcmFormat),
		buf: &audio.IntBuffer{
			Format:         &audio.Format{NumChannels: channels, SampleRate: sampleRate},
			SourceBitDepth: bitDepth,
		},
	}, nil
}

// WriteSamples appends samples, clamping them to [-1, 1].
func (r *Recorder) WriteSamples(samples []float32) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrClosed
	}

	if cap(r.buf.Data) < len(samples) {
		r.buf.Data = make([]int, len(samples))
	}
	r.buf.Data = r.buf.Data[:len(samples)]
	for i, v := range samples {
		r.buf.Data[i] = quantize(v)
	}

	if err := r.enc.Write(r.buf); err != nil {
		return fmt.Errorf("failed to write samples: %w", err)
	}
	r.frames += len(samples)
	return nil
}

// Frames returns the number of frames written so far.
func (r *Recorder) Frames() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

// Close finalizes the WAV header and closes the file.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true

	return multierr.Combine(
		r.enc.Close(),
		r.file.Close(),
	)
}

func quantize(v float32) int {
	f := min(max(float64(v), -1), 1)
	return int(math.Round(f * fullScale16Bit))
}
