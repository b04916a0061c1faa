package loop

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
)

func fired(c <-chan time.Time) bool {
	select {
	case <-c:
		return true
	default:
		return false
	}
}

func TestSchedulerFires(t *testing.T) {
	mock := clock.NewMock()
	s := NewScheduler(mock)

	if s.Pending() || s.C() != nil {
		t.Fatal("new scheduler must be idle")
	}

	s.Schedule(100 * time.Millisecond)
	mock.Add(99 * time.Millisecond)
	if fired(s.C()) {
		t.Fatal("fired early")
	}
	mock.Add(time.Millisecond)
	if !fired(s.C()) {
		t.Fatal("expected the tick after 100ms")
	}
}

func TestSchedulerReplacesPendingTick(t *testing.T) {
	mock := clock.NewMock()
	s := NewScheduler(mock)

	s.Schedule(100 * time.Millisecond)
	first := s.C()
	s.Schedule(100 * time.Millisecond)

	mock.Add(100 * time.Millisecond)
	if fired(first) {
		t.Error("replaced timer still fired")
	}
	if !fired(s.C()) {
		t.Error("current timer did not fire")
	}
}

func TestSchedulerCancel(t *testing.T) {
	mock := clock.NewMock()
	s := NewScheduler(mock)

	s.Schedule(100 * time.Millisecond)
	c := s.C()
	s.Cancel()

	if s.Pending() || s.C() != nil {
		t.Error("cancel must release the timer")
	}
	mock.Add(time.Second)
	if fired(c) {
		t.Error("cancelled timer fired")
	}

	// Cancelling twice is harmless
	s.Cancel()
}
