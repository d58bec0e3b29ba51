package ostime

import (
	"time"

	"github.com/benbjohnson/clock"
)

// Clock sleeps in whole timer ticks on top of an injectable base clock.
type Clock struct {
	base clock.Clock
}

// New returns a Clock backed by the system clock.
func New() *Clock {
	return &Clock{base: clock.New()}
}

// NewWithClock returns a Clock backed by base, typically a *clock.Mock in tests.
func NewWithClock(base clock.Clock) *Clock {
	return &Clock{base: base}
}

// Sleep blocks for d rounded down to the timer resolution.
func (c *Clock) Sleep(d time.Duration) {
	c.SleepTicks(DurationToTicks(d))
}

func (c *Clock) SleepTicks(ticks Ticks) {
	if ticks <= 0 {
		return
	}
	c.base.Sleep(ticks.Duration())
}

// Now returns the base clock's current time.
func (c *Clock) Now() time.Time {
	return c.base.Now()
}
