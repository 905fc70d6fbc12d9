package scope

import (
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
)

var (
	gridColor  = color.RGBA{R: 40, G: 40, B: 40, A: 255}
	labelColor = color.RGBA{R: 150, G: 150, B: 150, A: 255}
	traceColor = color.RGBA{R: 0, G: 122, B: 204, A: 255}
	mutedColor = color.RGBA{R: 70, G: 90, B: 110, A: 255}
)

// scopeRenderer renders the scope widget.
type scopeRenderer struct {
	scope *ScopeWidget

	// Background
	grid *canvas.Rectangle

	// Objects list for Fyne
	objects []fyne.CanvasObject

	// Track last size to detect changes
	lastSize fyne.Size
}

// MinSize returns the minimum size of the widget.
func (r *scopeRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 300)
}

// Layout arranges the widget components.
func (r *scopeRenderer) Layout(size fyne.Size) {
	r.grid.Resize(size)

	if r.lastSize != size {
		r.lastSize = size
		r.scope.BaseWidget.Refresh()
	}
}

// Refresh rebuilds the grid and the trace.
func (r *scopeRenderer) Refresh() {
	r.scope.mu.RLock()
	points := r.scope.points
	window := r.scope.window
	enabled := r.scope.enabled
	r.scope.mu.RUnlock()

	size := r.scope.Size()
	if size.Width == 0 || size.Height == 0 {
		return
	}

	r.objects = []fyne.CanvasObject{r.grid}

	marginLeft := float32(50.0)
	marginRight := float32(20.0)
	marginTop := float32(20.0)
	marginBottom := float32(40.0)

	plotWidth := size.Width - marginLeft - marginRight
	plotHeight := size.Height - marginTop - marginBottom
	plotX := marginLeft
	plotY := marginTop

	r.drawGrid(plotX, plotY, plotWidth, plotHeight, window)

	// The trace is dimmed while audio is off.
	c := traceColor
	if !enabled {
		c = mutedColor
	}
	r.drawTrace(plotX, plotY, plotWidth, plotHeight, points, window, c)
}

// drawGrid draws the oscilloscope-style grid.
func (r *scopeRenderer) drawGrid(plotX, plotY, plotWidth, plotHeight float32, window time.Duration) {
	numHLines := 6
	for i := range numHLines + 1 {
		y := plotY + float32(i)*plotHeight/float32(numHLines)
		line := canvas.NewLine(gridColor)
		line.Position1 = fyne.NewPos(plotX, y)
		line.Position2 = fyne.NewPos(plotX+plotWidth, y)
		line.StrokeWidth = 1
		r.objects = append(r.objects, line)

		value := YMax - float64(i)*(YMax-YMin)/float64(numHLines)
		text := canvas.NewText(formatFloat(value, 1), labelColor)
		text.TextSize = 10
		text.Alignment = fyne.TextAlignTrailing
		text.Move(fyne.NewPos(plotX-5, y-6))
		r.objects = append(r.objects, text)
	}

	numVLines := 10
	for i := range numVLines + 1 {
		x := plotX + float32(i)*plotWidth/float32(numVLines)
		line := canvas.NewLine(gridColor)
		line.Position1 = fyne.NewPos(x, plotY)
		line.Position2 = fyne.NewPos(x, plotY+plotHeight)
		line.StrokeWidth = 1
		r.objects = append(r.objects, line)

		if i%2 != 0 {
			continue
		}
		text := canvas.NewText(formatTime(window.Seconds()*float64(i)/float64(numVLines)), labelColor)
		text.TextSize = 10
		text.Alignment = fyne.TextAlignCenter
		text.Move(fyne.NewPos(x-20, plotY+plotHeight+5))
		r.objects = append(r.objects, text)
	}
}

// drawTrace draws the waveform as connected segments.
func (r *scopeRenderer) drawTrace(plotX, plotY, plotWidth, plotHeight float32, points []Point, window time.Duration, c color.Color) {
	span := window.Seconds()
	if len(points) < 2 || span <= 0 {
		return
	}

	toPos := func(p Point) fyne.Position {
		x := plotX + float32(p.T/span)*plotWidth
		y := plotY + plotHeight - float32((p.V-YMin)/(YMax-YMin))*plotHeight
		return fyne.NewPos(x, y)
	}

	prev := toPos(points[0])
	for _, p := range points[1:] {
		next := toPos(p)
		line := canvas.NewLine(c)
		line.Position1 = prev
		line.Position2 = next
		line.StrokeWidth = 2
		r.objects = append(r.objects, line)
		prev = next
	}
}

// Objects returns all canvas objects for rendering.
func (r *scopeRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

// Destroy cleans up resources.
func (r *scopeRenderer) Destroy() {}
