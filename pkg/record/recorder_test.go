package record

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itohio/potsynth/pkg/synth"
)

func TestQuantize(t *testing.T) {
	tests := []struct {
		in   float32
		want int
	}{
		{0, 0},
		{1, 32767},
		{-1, -32767},
		{0.5, 16384},
		{2, 32767},
		{-3, -32767},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, quantize(tt.in), "quantize(%v)", tt.in)
	}
}

func TestRecorder_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wav")

	rec, err := Create(path, 8000)
	require.NoError(t, err)

	require.NoError(t, rec.WriteSamples([]float32{0, 0.5, 1, -1}))
	require.NoError(t, rec.WriteSamples([]float32{2, -0.5}))
	assert.Equal(t, 6, rec.Frames())
	require.NoError(t, rec.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	dec := wav.NewDecoder(f)
	require.True(t, dec.IsValidFile())
	assert.Equal(t, uint32(8000), dec.SampleRate)
	assert.Equal(t, uint16(16), dec.BitDepth)
	assert.Equal(t, uint16(1), dec.NumChans)

	buf, err := dec.FullPCMBuffer()
	require.NoError(t, err)
	assert.Equal(t, []int{0, 16384, 32767, -32767, 32767, -16384}, buf.Data)
}

func TestRecorder_Oscillator(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")
	osc := synth.New(8000, 0.2)
	osc.SetEnabled(true)

	rec, err := Create(path, osc.SampleRate())
	require.NoError(t, err)

	buf := make([]float32, 800)
	for range 10 {
		osc.Fill(buf)
		require.NoError(t, rec.WriteSamples(buf))
	}
	require.NoError(t, rec.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	pcm, err := wav.NewDecoder(f).FullPCMBuffer()
	require.NoError(t, err)
	require.Len(t, pcm.Data, 8000)
	for _, v := range pcm.Data {
		assert.LessOrEqual(t, v, 6554)
		assert.GreaterOrEqual(t, v, -6554)
	}
}

func TestRecorder_WriteAfterClose(t *testing.T) {
	rec, err := Create(filepath.Join(t.TempDir(), "x.wav"), 44100)
	require.NoError(t, err)
	require.NoError(t, rec.Close())

	assert.ErrorIs(t, rec.WriteSamples([]float32{0}), ErrClosed)
	assert.NoError(t, rec.Close(), "closing twice is harmless")
}

func TestCreate_Errors(t *testing.T) {
	_, err := Create(filepath.Join(t.TempDir(), "x.wav"), 0)
	assert.Error(t, err)

	_, err = Create(filepath.Join(t.TempDir(), "missing", "x.wav"), 44100)
	assert.Error(t, err)
}
