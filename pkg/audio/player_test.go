package audio

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itohio/potsynth/pkg/logging"
	"github.com/itohio/potsynth/pkg/synth"
)

type rampSource struct{ next float32 }

func (r *rampSource) Fill(buf []float32) {
	for i := range buf {
		buf[i] = r.next
		r.next += 0.25
	}
}

type captureSink struct {
	samples []float32
	err     error
	calls   int
}

func (c *captureSink) WriteSamples(s []float32) error {
	c.calls++
	c.samples = append(c.samples, s...)
	return c.err
}

func decode(p []byte) []float32 {
	out := make([]float32, len(p)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(p[i*4:]))
	}
	return out
}

func TestStream_EncodesFloat32LE(t *testing.T) {
	s := &stream{source: &rampSource{}, logger: logging.NewTestLogger(t)}

	p := make([]byte, 16)
	n, err := s.Read(p)
	require.NoError(t, err)
	assert.Equal(t, 16, n)
	assert.Equal(t, []float32{0, 0.25, 0.5, 0.75}, decode(p))

	n, err = s.Read(p[:8])
	require.NoError(t, err)
	assert.Equal(t, 8, n)
	assert.Equal(t, []float32{1, 1.25}, decode(p[:8]))
}

func TestStream_PartialSampleBuffer(t *testing.T) {
	s := &stream{source: &rampSource{}, logger: logging.NewTestLogger(t)}

	n, err := s.Read(make([]byte, 3))
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = s.Read(make([]byte, 10))
	require.NoError(t, err)
	assert.Equal(t, 8, n, "only whole samples are written")
}

func TestStream_TeesToSink(t *testing.T) {
	sink := &captureSink{}
	s := &stream{source: &rampSource{}, logger: logging.NewTestLogger(t)}
	s.setSink(sink)

	_, err := s.Read(make([]byte, 12))
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 0.25, 0.5}, sink.samples)

	s.setSink(nil)
	_, err = s.Read(make([]byte, 12))
	require.NoError(t, err)
	assert.Len(t, sink.samples, 3)
}

func TestStream_DetachesFailingSink(t *testing.T) {
	sink := &captureSink{err: errors.New("disk full")}
	s := &stream{source: &rampSource{}, logger: logging.NewTestLogger(t)}
	s.setSink(sink)

	for range 3 {
		_, err := s.Read(make([]byte, 8))
		require.NoError(t, err, "playback continues")
	}
	assert.Equal(t, 1, sink.calls)
}

func TestStream_Oscillator(t *testing.T) {
	osc := synth.New(8000, 1)
	osc.SetFrequency(2000)
	osc.SetEnabled(true)
	s := &stream{source: osc, logger: logging.NewTestLogger(t)}

	p := make([]byte, 16)
	_, err := s.Read(p)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float32{0, 1, 0, -1}, decode(p), 1e-6)
}
