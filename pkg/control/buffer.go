package control

const (
	// ADCMax is the largest raw reading of a 12-bit converter.
	ADCMax = 4095
	// DefaultWindow is the number of readings in the moving average.
	DefaultWindow = 5
)

// ChannelBuffer is a fixed-size ring of raw ADC readings used as a moving
// average filter. The oldest reading is overwritten on every Add.
type ChannelBuffer struct {
	data []uint16
	pos  int
}

// NewChannelBuffer creates a buffer holding n readings. Non-positive sizes
// fall back to DefaultWindow.
func NewChannelBuffer(n int) *ChannelBuffer {
	if n <= 0 {
		n = DefaultWindow
	}
	return &ChannelBuffer{data: make([]uint16, n)}
}

// Len returns the capacity of the buffer.
func (b *ChannelBuffer) Len() int {
	return len(b.data)
}

// Index returns the slot the next reading will be written to.
func (b *ChannelBuffer) Index() int {
	return b.pos
}

// Add stores a reading at the current index and advances it.
// Readings above ADCMax are clamped.
func (b *ChannelBuffer) Add(v uint16) {
	if v > ADCMax {
		v = ADCMax
	}
	b.data[b.pos] = v
	b.pos++
	if b.pos >= len(b.data) {
		b.pos = 0
	}
}

// Average returns the integer mean of all slots.
func (b *ChannelBuffer) Average() uint16 {
	var sum uint32
	for _, v := range b.data {
		sum += uint32(v)
	}
	return uint16(sum / uint32(len(b.data)))
}
