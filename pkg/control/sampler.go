package control

// Sampler feeds both pot readings into their moving average buffers.
type Sampler struct {
	frequencyIn AnalogReader
	amplitudeIn AnalogReader

	Frequency *ChannelBuffer
	Amplitude *ChannelBuffer
}

// NewSampler creates a sampler with buffers of the given window size.
func NewSampler(frequency, amplitude AnalogReader, window int) *Sampler {
	return &Sampler{
		frequencyIn: frequency,
		amplitudeIn: amplitude,
		Frequency:   NewChannelBuffer(window),
		Amplitude:   NewChannelBuffer(window),
	}
}

// Prime fills every slot with a fresh reading so the first average is not
// pulled towards zero. The write index ends where it started.
func (s *Sampler) Prime() {
	for range s.Frequency.Len() {
		s.Sample()
	}
}

// Sample reads both channels once.
func (s *Sampler) Sample() {
	s.Frequency.Add(s.frequencyIn.Get())
	s.Amplitude.Add(s.amplitudeIn.Get())
}
