package eventloop

import (
	"time"
)

// Clock is the periodic game timer. It remembers when it last fired so a
// slow consumer can tell how many periods went by.
type Clock struct {
	period time.Duration
	ticker *time.Ticker
	last   time.Time
}

// NewClock starts a clock firing hz times per second.
func NewClock(hz int) *Clock {
	period := time.Second / time.Duration(hz)
	return &Clock{
		period: period,
		ticker: time.NewTicker(period),
		last:   time.Now(),
	}
}

// Period returns the time between expirations.
func (c *Clock) Period() time.Duration {
	return c.period
}

// C delivers one value per expiration. A nil clock has a nil channel.
func (c *Clock) C() <-chan time.Time {
	if c == nil {
		return nil
	}
	return c.ticker.C
}

// Drain returns the number of whole periods between the previous
// expiration and now, at least 1.
func (c *Clock) Drain(now time.Time) uint64 {
	n := uint64(0)
	if elapsed := now.Sub(c.last); elapsed > 0 {
		n = uint64(elapsed / c.period)
	}
	if n == 0 {
		n = 1
	}
	c.last = c.last.Add(time.Duration(n) * c.period)
	return n
}

// Stop disarms the clock.
func (c *Clock) Stop() {
	if c != nil {
		c.ticker.Stop()
	}
}
