package loop

import (
	"time"

	"github.com/benbjohnson/clock"
)

// Scheduler owns the single timer that drives the game. At most one tick
// is outstanding: scheduling a new one stops the previous timer first.
type Scheduler struct {
	clock clock.Clock
	timer *clock.Timer
}

// NewScheduler creates a scheduler on the given clock
func NewScheduler(c clock.Clock) *Scheduler {
	if c == nil {
		c = clock.New()
	}
	return &Scheduler{clock: c}
}

// Schedule arms the timer to fire after d, replacing any pending tick
func (s *Scheduler) Schedule(d time.Duration) {
	s.Cancel()
	s.timer = s.clock.Timer(d)
}

// Cancel stops and releases the pending timer, if any
func (s *Scheduler) Cancel() {
	if s.timer == nil {
		return
	}
	s.timer.Stop()
	s.timer = nil
}

// C returns the channel of the pending timer. With nothing scheduled it
// returns nil, which blocks forever in a select.
func (s *Scheduler) C() <-chan time.Time {
	if s.timer == nil {
		return nil
	}
	return s.timer.C
}

// Pending reports whether a tick is scheduled
func (s *Scheduler) Pending() bool {
	return s.timer != nil
}

// fired releases the timer after its value was received
func (s *Scheduler) fired() {
	s.timer = nil
}
