// Package testutil provides test doubles shared across package tests.
package testutil

import (
	"sync"
	"time"
)

// ManualClock is a cache.Clock whose time only moves when a test advances
// it. This lets expiry tests simulate elapsed time deterministically
// instead of sleeping.
//
// Thread-safety: all methods are safe for concurrent use via internal
// mutex, so tests may advance the clock from helper goroutines.
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewManualClock creates a clock frozen at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the clock's current time.
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Set jumps the clock to t.
func (c *ManualClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}
