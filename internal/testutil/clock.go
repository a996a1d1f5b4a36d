package testutil

import (
	"sync"
	"time"
)

// Epoch is the default start time for deterministic clocks.
var Epoch = time.Date(2025, time.March, 14, 9, 30, 0, 0, time.Local)

// Clock is a manually driven wall clock for tests.
//
// Now never moves on its own; call Advance to simulate elapsed time.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock creates a clock stopped at start. A zero start uses Epoch.
func NewClock(start time.Time) *Clock {
	if start.IsZero() {
		start = Epoch
	}
	return &Clock{now: start}
}

// Now returns the current fake time. Its signature matches time.Now so it
// can be injected wherever a func() time.Time is expected.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
