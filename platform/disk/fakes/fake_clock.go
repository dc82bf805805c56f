package fakes

import (
	"time"

	"code.cloudfoundry.org/clock"
)

// FakeClock never blocks: Sleep records the requested duration and returns.
type FakeClock struct {
	clock.Clock

	NowTime        time.Time
	SleptDurations []time.Duration
}

func (c *FakeClock) Now() time.Time {
	if c.NowTime.IsZero() {
		return time.Now()
	}
	return c.NowTime
}

func (c *FakeClock) Sleep(d time.Duration) {
	c.SleptDurations = append(c.SleptDurations, d)
}

func (c *FakeClock) Since(t time.Time) time.Duration {
	return c.Now().Sub(t)
}
