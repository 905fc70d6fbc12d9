package control

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// pollEvery polls the monitor every step until the clock passes until,
// returning the number of toggles.
func pollEvery(b *ButtonMonitor, clk stepClock, step, until time.Duration) int {
	start := clk.Now()
	toggles := 0
	for clk.Now().Sub(start) < until {
		if b.Poll() {
			toggles++
		}
		clk.Add(step)
	}
	return toggles
}

func TestButtonMonitor_ConfirmedPressToggles(t *testing.T) {
	clk := newStepClock()
	pin := newScriptedPin(clk).pressAt(10*time.Millisecond, 200*time.Millisecond)
	b := NewButtonMonitor(pin, clk, 50*time.Millisecond)

	assert.False(t, b.Enabled())
	toggles := pollEvery(b, clk, time.Millisecond, 300*time.Millisecond)

	assert.Equal(t, 1, toggles, "holding the button must toggle only once")
	assert.True(t, b.Enabled())
}

func TestButtonMonitor_GlitchIgnored(t *testing.T) {
	clk := newStepClock()
	// LOW for 5 ms only, released well before the 50 ms re-read.
	pin := newScriptedPin(clk).pressAt(10*time.Millisecond, 15*time.Millisecond)
	b := NewButtonMonitor(pin, clk, 50*time.Millisecond)

	toggles := pollEvery(b, clk, time.Millisecond, 200*time.Millisecond)

	assert.Equal(t, 0, toggles)
	assert.False(t, b.Enabled())
}

func TestButtonMonitor_SecondPressTogglesBack(t *testing.T) {
	clk := newStepClock()
	pin := newScriptedPin(clk).
		pressAt(10*time.Millisecond, 100*time.Millisecond).
		pressAt(300*time.Millisecond, 400*time.Millisecond)
	b := NewButtonMonitor(pin, clk, 50*time.Millisecond)

	toggles := pollEvery(b, clk, time.Millisecond, 150*time.Millisecond)
	assert.Equal(t, 1, toggles)
	assert.True(t, b.Enabled())

	toggles = pollEvery(b, clk, time.Millisecond, 350*time.Millisecond)
	assert.Equal(t, 1, toggles)
	assert.False(t, b.Enabled())
}

func TestButtonMonitor_DebounceBlocks(t *testing.T) {
	clk := newStepClock()
	pin := newScriptedPin(clk).pressAt(0, time.Second)
	b := NewButtonMonitor(pin, clk, 50*time.Millisecond)

	start := clk.Now()
	assert.True(t, b.Poll())
	assert.Equal(t, 50*time.Millisecond, clk.Now().Sub(start))
	assert.Equal(t, 2, pin.reads, "edge read plus confirming re-read")

	// Still held: no new edge, no delay.
	assert.False(t, b.Poll())
	assert.Equal(t, 50*time.Millisecond, clk.Now().Sub(start))
}

func TestButtonMonitor_ReleaseNotDebounced(t *testing.T) {
	clk := newStepClock()
	pin := newScriptedPin(clk).pressAt(0, 60*time.Millisecond)
	b := NewButtonMonitor(pin, clk, 50*time.Millisecond)

	assert.True(t, b.Poll())
	clk.Add(20 * time.Millisecond)

	before := clk.Now()
	assert.False(t, b.Poll())
	assert.Equal(t, before, clk.Now())
	assert.True(t, b.Enabled())
}

func TestNewButtonMonitor_DefaultDebounce(t *testing.T) {
	clk := newStepClock()
	b := NewButtonMonitor(newScriptedPin(clk), clk, 0)
	assert.Equal(t, DefaultDebounce, b.debounce)
}
