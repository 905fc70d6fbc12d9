package control

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewChannelBuffer_Defaults(t *testing.T) {
	assert.Equal(t, DefaultWindow, NewChannelBuffer(0).Len())
	assert.Equal(t, DefaultWindow, NewChannelBuffer(-3).Len())
	assert.Equal(t, 8, NewChannelBuffer(8).Len())
}

func TestChannelBuffer_IndexWraps(t *testing.T) {
	b := NewChannelBuffer(5)

	for i := range 23 {
		assert.Equal(t, i%5, b.Index())
		b.Add(uint16(i))
		assert.GreaterOrEqual(t, b.Index(), 0)
		assert.Less(t, b.Index(), b.Len())
	}
}

func TestChannelBuffer_Average(t *testing.T) {
	tests := []struct {
		name   string
		values []uint16
		want   uint16
	}{
		{"empty buffer", nil, 0},
		{"exact mean", []uint16{1, 2, 3, 4, 5}, 3},
		{"truncated mean", []uint16{1, 1, 1, 1, 2}, 1},
		{"partially filled", []uint16{4095, 4095}, 1638},
		{"full scale", []uint16{4095, 4095, 4095, 4095, 4095}, 4095},
		{"oldest overwritten", []uint16{4095, 0, 0, 0, 0, 10}, 2},
		{"clamped above range", []uint16{65535, 65535, 65535, 65535, 65535}, 4095},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewChannelBuffer(5)
			for _, v := range tt.values {
				b.Add(v)
			}
			got := b.Average()
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, got, uint16(ADCMax))
		})
	}
}
