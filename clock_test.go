package skyward

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFixedClock(t *testing.T) {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	clock := NewFixedClock(start)

	assert.Equal(t, start, clock.Now())
	assert.Equal(t, "2026-03-01", clock.Today())

	later := time.Date(2026, 12, 24, 23, 59, 0, 0, time.UTC)
	clock.SetTime(later)
	assert.Equal(t, later, clock.Now())
	assert.Equal(t, "2026-12-24", clock.Today())
}

func TestSystemClock(t *testing.T) {
	clock := NewSystemClock()

	before := time.Now()
	now := clock.Now()
	assert.False(t, now.Before(before.Add(-time.Second)))
	assert.Equal(t, now.Format("2006-01-02"), clock.Today())
}
