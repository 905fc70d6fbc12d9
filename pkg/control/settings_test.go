package control

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	assert.Equal(t, 5, s.Window)
	assert.Equal(t, 20*time.Millisecond, s.Interval)
	assert.Equal(t, 50*time.Millisecond, s.Debounce)
	assert.Equal(t, MappingLog, s.Mapping)
	assert.Equal(t, FormatChanges, s.Format)
	assert.Equal(t, float32(5), s.FrequencyTolerance)
	assert.Equal(t, float32(0.01), s.AmplitudeTolerance)
	assert.NoError(t, s.Validate())
}

func TestSettings_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Settings)
	}{
		{"zero window", func(s *Settings) { s.Window = 0 }},
		{"zero interval", func(s *Settings) { s.Interval = 0 }},
		{"negative debounce", func(s *Settings) { s.Debounce = -time.Millisecond }},
		{"bad mapping", func(s *Settings) { s.Mapping = Mapping(9) }},
		{"bad format", func(s *Settings) { s.Format = Format(9) }},
		{"negative frequency tolerance", func(s *Settings) { s.FrequencyTolerance = -1 }},
		{"negative amplitude tolerance", func(s *Settings) { s.AmplitudeTolerance = -0.1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.modify(&s)
			assert.Error(t, s.Validate())
		})
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("changes")
	require.NoError(t, err)
	assert.Equal(t, FormatChanges, f)

	f, err = ParseFormat("combined")
	require.NoError(t, err)
	assert.Equal(t, FormatCombined, f)

	_, err = ParseFormat("csv")
	assert.Error(t, err)

	assert.Equal(t, "combined", FormatCombined.String())
	assert.Equal(t, "Format(4)", Format(4).String())
}
