package skyward

import "time"

// Clock provides the engine's time source. Injecting a custom Clock makes
// booking and cancellation timestamps deterministic in tests.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// Today returns today's date as a string (YYYY-MM-DD).
	Today() string
}

// SystemClock is the standard Clock using the system time.
type SystemClock struct{}

// NewSystemClock creates a new SystemClock.
func NewSystemClock() *SystemClock {
	return &SystemClock{}
}

// Now returns the current system time.
func (c *SystemClock) Now() time.Time {
	return time.Now()
}

// Today returns today's date as YYYY-MM-DD.
func (c *SystemClock) Today() string {
	return c.Now().Format("2006-01-02")
}

// FixedClock is a Clock that returns a fixed time. Useful for testing
// time-dependent behavior such as booking timestamps.
type FixedClock struct {
	fixed time.Time
}

// NewFixedClock creates a FixedClock pinned to t.
func NewFixedClock(t time.Time) *FixedClock {
	return &FixedClock{fixed: t}
}

// SetTime updates the time returned by Now().
func (c *FixedClock) SetTime(t time.Time) {
	c.fixed = t
}

// Now returns the fixed time.
func (c *FixedClock) Now() time.Time {
	return c.fixed
}

// Today returns the fixed date as YYYY-MM-DD.
func (c *FixedClock) Today() string {
	return c.fixed.Format("2006-01-02")
}

// Compile-time check that both clocks implement Clock.
var (
	_ Clock = (*SystemClock)(nil)
	_ Clock = (*FixedClock)(nil)
)
