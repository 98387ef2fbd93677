// Package sched drives the simulation at a fixed tick rate independently of
// how often frames are presented or input is sampled.
package sched

import (
	"context"
	"fmt"
	"time"
)

// maxCatchUp caps how many ticks a single Advance may release, so a stalled
// frame does not turn into a burst of simulation steps.
const maxCatchUp = 5

// MaxRate is the highest supported rate in ticks or frames per second.
const MaxRate = 1000

// Stepper converts elapsed wall-clock time into a whole number of ticks.
type Stepper struct {
	interval time.Duration
	acc      time.Duration
	total    uint64
}

// CheckRate reports whether rate is within (0, MaxRate].
func CheckRate(rate int) error {
	if rate <= 0 {
		return fmt.Errorf("sched: rate must be positive, got %d", rate)
	}
	if rate > MaxRate {
		return fmt.Errorf("sched: rate %d exceeds %d per second", rate, MaxRate)
	}
	return nil
}

// New creates a stepper running at rate ticks per second.
func New(rate int) (*Stepper, error) {
	if err := CheckRate(rate); err != nil {
		return nil, err
	}
	return &Stepper{interval: time.Second / time.Duration(rate)}, nil
}

// Interval returns the duration of one tick.
func (s *Stepper) Interval() time.Duration {
	return s.interval
}

// Advance accumulates elapsed time and returns how many ticks are now due.
func (s *Stepper) Advance(elapsed time.Duration) int {
	if elapsed > 0 {
		s.acc += elapsed
	}

	n := int(s.acc / s.interval)
	s.acc -= time.Duration(n) * s.interval
	if n > maxCatchUp {
		// Drop the backlog beyond the cap; the remainder keeps sub-tick phase.
		n = maxCatchUp
	}
	s.total += uint64(n)
	return n
}

// Total returns the number of ticks released so far.
func (s *Stepper) Total() uint64 {
	return s.total
}

// Reset clears accumulated time and the tick counter.
func (s *Stepper) Reset() {
	s.acc = 0
	s.total = 0
}

// Run calls step once per tick until step returns false or ctx is done.
// It returns ctx.Err() on cancellation and nil when step ends the loop.
func Run(ctx context.Context, rate int, step func() bool) error {
	s, err := New(rate)
	if err != nil {
		return err
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if !step() {
				return nil
			}
		}
	}
}

// Clock measures the time between successive frames.
type Clock struct {
	last time.Time
	now  func() time.Time
}

// NewClock creates a frame clock starting at the current time.
func NewClock() *Clock {
	return newClockWith(time.Now)
}

func newClockWith(now func() time.Time) *Clock {
	return &Clock{last: now(), now: now}
}

// Lap returns the time since the previous Lap (or since creation).
func (c *Clock) Lap() time.Duration {
	t := c.now()
	d := t.Sub(c.last)
	c.last = t
	return d
}
