package viewer

import "time"

// Clock measures the time between frames.
type Clock struct {
	// AutoStart makes the first Delta after construction or Stop start the
	// clock.
	AutoStart bool

	now     func() time.Time
	last    time.Time
	running bool
}

// NewClock returns a stopped clock with AutoStart set. now may be nil.
func NewClock(now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{AutoStart: true, now: now}
}

// Start (re)starts the clock.
func (c *Clock) Start() {
	c.last = c.now()
	c.running = true
}

// Stop freezes the clock.
func (c *Clock) Stop() { c.running = false }

// Running reports whether the clock is ticking.
func (c *Clock) Running() bool { return c.running }

// Delta returns the seconds elapsed since the previous call. A call that
// starts the clock returns 0.
func (c *Clock) Delta() float64 {
	if !c.running {
		if !c.AutoStart {
			return 0
		}
		c.Start()
		return 0
	}
	now := c.now()
	d := now.Sub(c.last).Seconds()
	c.last = now
	return d
}
