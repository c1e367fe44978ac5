package interaction

import (
	"slices"
	"time"
)

// Timer is a pending callback. Stop reports whether it prevented the call.
type Timer interface {
	Stop() bool
}

// Scheduler injects time into the controller. Callbacks must run on the
// same goroutine that drives the controller; hosts with a UI loop implement
// After by posting a message to that loop.
type Scheduler interface {
	After(d time.Duration, fn func()) Timer
	Now() time.Time
}

// ManualScheduler is a deterministic [Scheduler]. Time only moves when
// [ManualScheduler.Advance] is called, and due callbacks run inside Advance in
// deadline order, ties in scheduling order.
type ManualScheduler struct {
	now    time.Time
	seq    uint64
	timers []*manualTimer
}

type manualTimer struct {
	s       *ManualScheduler
	at      time.Time
	seq     uint64
	fn      func()
	stopped bool
	fired   bool
}

// NewManualScheduler returns a scheduler whose clock starts at start.
func NewManualScheduler(start time.Time) *ManualScheduler {
	return &ManualScheduler{now: start}
}

// Now returns the scheduler's clock.
func (s *ManualScheduler) Now() time.Time { return s.now }

// After schedules fn to run once the clock has advanced by d.
func (s *ManualScheduler) After(d time.Duration, fn func()) Timer {
	s.seq++
	t := &manualTimer{s: s, at: s.now.Add(d), seq: s.seq, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

// Pending returns the number of scheduled callbacks that have not run.
func (s *ManualScheduler) Pending() int { return len(s.timers) }

// Advance moves the clock forward by d, running every callback that becomes
// due. Callbacks scheduled by other callbacks run too if they fall due
// within the window. Advance returns the number of callbacks run.
func (s *ManualScheduler) Advance(d time.Duration) int {
	end := s.now.Add(d)
	ran := 0
	for {
		t := s.nextDue(end)
		if t == nil {
			break
		}
		s.remove(t)
		if t.at.After(s.now) {
			s.now = t.at
		}
		t.fired = true
		t.fn()
		ran++
	}
	s.now = end
	return ran
}

// Flush runs every pending callback, however far in the future, and
// returns the number run.
func (s *ManualScheduler) Flush() int {
	ran := 0
	for len(s.timers) > 0 {
		latest := slices.MaxFunc(s.timers, func(a, b *manualTimer) int { return a.at.Compare(b.at) })
		ran += s.Advance(latest.at.Sub(s.now))
	}
	return ran
}

func (s *ManualScheduler) nextDue(end time.Time) *manualTimer {
	var next *manualTimer
	for _, t := range s.timers {
		if t.at.After(end) {
			continue
		}
		if next == nil || t.at.Before(next.at) || (t.at.Equal(next.at) && t.seq < next.seq) {
			next = t
		}
	}
	return next
}

func (s *ManualScheduler) remove(t *manualTimer) {
	s.timers = slices.DeleteFunc(s.timers, func(x *manualTimer) bool { return x == t })
}

func (t *manualTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	t.s.remove(t)
	return true
}
