package scope

import (
	"math"
	"strconv"
	"time"
)

const (
	// YMin and YMax fix the vertical range so amplitude changes stay visible.
	YMin = -1.5
	YMax = 1.5

	// DefaultPoints is the number of points plotted per trace.
	DefaultPoints = 1000
)

// Point is one plotted sample: T in seconds from the left edge.
type Point struct {
	T, V float64
}

// Window returns the time span shown for a tone, zooming in on higher
// frequencies so individual cycles stay visible.
func Window(frequency float64) time.Duration {
	switch {
	case frequency > 5000:
		return time.Millisecond
	case frequency > 1000:
		return 5 * time.Millisecond
	default:
		return 20 * time.Millisecond
	}
}

// Waveform fills dst with n evenly spaced points of A·sin(2πf·t + φ) over
// window, both ends included, reusing dst's storage.
func Waveform(dst []Point, amplitude, frequency, phase float64, window time.Duration, n int) []Point {
	dst = dst[:0]
	if n <= 0 {
		return dst
	}
	if n == 1 {
		return append(dst, Point{T: 0, V: amplitude * math.Sin(phase)})
	}

	span := window.Seconds()
	omega := 2 * math.Pi * frequency
	for i := range n {
		t := span * float64(i) / float64(n-1)
		dst = append(dst, Point{T: t, V: amplitude * math.Sin(omega*t+phase)})
	}
	return dst
}

// Readout formats the frequency label shown next to the scope.
func Readout(frequency float64) string {
	return "Freq: " + strconv.Itoa(int(frequency)) + " Hz"
}

func formatFloat(v float64, decimals int) string {
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

func formatTime(seconds float64) string {
	return formatFloat(seconds*1000, 1) + "ms"
}
