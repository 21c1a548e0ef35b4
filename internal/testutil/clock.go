package testutil

import (
	"sync"
	"time"
)

// DeterministicClock provides a thread-safe, resettable time source for
// tests and golden traces.
//
// Each call to Now() returns base + n*step for increasing n, so the same
// scenario produces byte-identical timestamps on every run.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type DeterministicClock struct {
	mu   sync.Mutex
	base time.Time
	step time.Duration
	n    int64
}

// DefaultClockBase is the epoch deterministic clocks start from unless
// overridden. Chosen to be obviously synthetic in trace output.
var DefaultClockBase = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// NewDeterministicClock creates a clock starting at DefaultClockBase
// advancing one second per Now() call. The first call returns base+1s.
func NewDeterministicClock() *DeterministicClock {
	return NewDeterministicClockAt(DefaultClockBase, time.Second)
}

// NewDeterministicClockAt creates a clock with an explicit base and step.
func NewDeterministicClockAt(base time.Time, step time.Duration) *DeterministicClock {
	return &DeterministicClock{base: base.UTC(), step: step}
}

// Now advances the clock and returns the next timestamp.
func (c *DeterministicClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n++
	return c.base.Add(time.Duration(c.n) * c.step)
}

// Current returns the last timestamp handed out without advancing.
func (c *DeterministicClock) Current() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.base.Add(time.Duration(c.n) * c.step)
}

// Reset rewinds the clock so the next Now() returns base+step again.
// Used for test reuse.
func (c *DeterministicClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n = 0
}
