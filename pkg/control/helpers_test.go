package control

import (
	"time"

	"github.com/benbjohnson/clock"
)

// stepClock is a mock clock whose Sleep advances time instead of blocking,
// so the single-threaded loop can be driven deterministically.
type stepClock struct {
	*clock.Mock
}

func newStepClock() stepClock {
	return stepClock{Mock: clock.NewMock()}
}

func (c stepClock) Sleep(d time.Duration) {
	c.Add(d)
}

// scriptedPin is LOW during [from, to) relative to the clock's start time.
type scriptedPin struct {
	clk   Clock
	start time.Time
	lows  [][2]time.Duration
	reads int
}

func newScriptedPin(clk Clock) *scriptedPin {
	return &scriptedPin{clk: clk, start: clk.Now()}
}

func (p *scriptedPin) pressAt(from, to time.Duration) *scriptedPin {
	p.lows = append(p.lows, [2]time.Duration{from, to})
	return p
}

func (p *scriptedPin) Get() bool {
	p.reads++
	elapsed := p.clk.Now().Sub(p.start)
	for _, low := range p.lows {
		if elapsed >= low[0] && elapsed < low[1] {
			return false
		}
	}
	return true
}

type constADC uint16

func (c *constADC) Get() uint16 { return uint16(*c) }
