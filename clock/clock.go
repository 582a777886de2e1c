// Package clock supplies per-tick time deltas from an injectable time source.
package clock

import (
	"sync"
	"time"
)

// Source reports the current time.
type Source interface {
	Now() time.Time
}

// System reads the wall clock (with its monotonic reading).
type System struct{}

// Now returns time.Now().
func (System) Now() time.Time {
	return time.Now()
}

// Manual is a controllable Source for tests and fixed-step runs.
type Manual struct {
	mu      sync.RWMutex
	current time.Time
}

// NewManual creates a manual source starting at start.
func NewManual(start time.Time) *Manual {
	return &Manual{current: start}
}

// Now returns the current manual time.
func (m *Manual) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Advance moves the time by d, which may be negative.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = m.current.Add(d)
}

// Clock turns successive Source readings into tick deltas.
// A Clock is owned by the simulation loop and is not safe for concurrent use.
type Clock struct {
	src      Source
	maxDelta time.Duration
	last     time.Time
	started  bool
}

// New creates a clock over src. Deltas larger than maxDelta are clamped
// (0 disables clamping), so a stalled window does not produce one huge step.
func New(src Source, maxDelta time.Duration) *Clock {
	if src == nil {
		src = System{}
	}
	return &Clock{src: src, maxDelta: maxDelta}
}

// Tick returns the seconds elapsed since the previous Tick.
// The first call anchors the clock and returns 0.
func (c *Clock) Tick() float64 {
	now := c.src.Now()
	if !c.started {
		c.started = true
		c.last = now
		return 0
	}

	d := now.Sub(c.last)
	c.last = now
	if d < 0 {
		return 0
	}
	if c.maxDelta > 0 && d > c.maxDelta {
		d = c.maxDelta
	}
	return d.Seconds()
}

// Reanchor drops any time accumulated since the last Tick.
func (c *Clock) Reanchor() {
	c.last = c.src.Now()
	c.started = true
}
