// Package testutil provides deterministic substitutes for the store's
// injectable collaborators: a manual clock and a sequential id source.
package testutil

import (
	"fmt"
	"sync"
	"time"
)

// ManualClock is a thread-safe clock that only moves when told to.
//
// Substituting it for record.SystemClock makes creation timestamps,
// audit ordering and export filenames reproducible across runs.
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewManualClock creates a clock frozen at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the current reading without advancing.
//
// Thread-safe: uses mutex to protect the reading.
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
//
// Monotonic as long as callers only pass positive durations.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Set jumps the clock to t. Used to pin exact instants in golden tests.
func (c *ManualClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// SequentialIDs returns an id source yielding uuid-shaped identifiers
// in a fixed sequence (…-000000000001, …-000000000002, …). Not unique
// across sources; for tests only.
func SequentialIDs() func() string {
	var (
		mu sync.Mutex
		n  int
	)
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("00000000-0000-4000-8000-%012d", n)
	}
}
