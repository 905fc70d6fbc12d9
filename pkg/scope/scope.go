// Package scope provides an oscilloscope-style Fyne widget that draws the
// tone currently produced by the synthesizer.
package scope

import (
	"image/color"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/itohio/potsynth/pkg/config"
)

// ScopeWidget is a custom Fyne widget that displays the synthesized waveform.
type ScopeWidget struct {
	widget.BaseWidget

	// Data (protected by mu)
	mu        sync.RWMutex
	points    []Point
	window    time.Duration
	frequency float64
	amplitude float64
	phase     float64
	enabled   bool

	maxDisplayPoints int
}

// New creates a new ScopeWidget instance.
func New(cfg *config.ScopeConfig) *ScopeWidget {
	n := DefaultPoints
	phase := 0.0
	if cfg != nil {
		if cfg.Points > 1 {
			n = cfg.Points
		}
		phase = cfg.Phase
	}

	s := &ScopeWidget{
		points:           make([]Point, 0, n),
		phase:            phase,
		maxDisplayPoints: n,
	}
	s.ExtendBaseWidget(s)
	s.Update(440, 1, false)
	return s
}

// Update redraws the trace for a tone. Call it from the UI goroutine
// (fyne.Do when coming from elsewhere).
func (s *ScopeWidget) Update(frequency, amplitude float64, enabled bool) {
	s.mu.Lock()
	s.frequency = frequency
	s.amplitude = amplitude
	s.enabled = enabled
	s.recompute()
	s.mu.Unlock()

	s.Refresh()
}

// SetPhase changes the visual phase offset in radians.
func (s *ScopeWidget) SetPhase(phase float64) {
	s.mu.Lock()
	s.phase = phase
	s.recompute()
	s.mu.Unlock()

	s.Refresh()
}

// Phase returns the visual phase offset in radians.
func (s *ScopeWidget) Phase() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phase
}

// Points returns a copy of the current trace.
func (s *ScopeWidget) Points() []Point {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Point(nil), s.points...)
}

// recompute must be called with mu held.
func (s *ScopeWidget) recompute() {
	s.window = Window(s.frequency)
	s.points = Waveform(s.points, s.amplitude, s.frequency, s.phase, s.window, s.maxDisplayPoints)
}

// CreateRenderer creates the widget renderer.
func (s *ScopeWidget) CreateRenderer() fyne.WidgetRenderer {
	grid := canvas.NewRectangle(color.RGBA{R: 20, G: 20, B: 20, A: 255}) // Dark background
	return &scopeRenderer{
		scope:   s,
		grid:    grid,
		objects: []fyne.CanvasObject{grid},
	}
}
