package testing

import (
	"sync"
	"time"

	"github.com/go-drift/tappable/pkg/schedule"
)

// FakeClock provides controllable time for deterministic timing tests.
// All methods are safe for concurrent use.
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFakeClock returns a FakeClock starting at a fixed epoch.
func NewFakeClock() *FakeClock {
	return &FakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

// Now returns the current fake time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Set sets the clock to an exact time.
func (c *FakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

type virtualTimer struct {
	due time.Time
	fn  func()
}

// VirtualScheduler is a schedule.Scheduler driven by a FakeClock. Timers
// fire only from Advance, in deadline order, with the clock set to each
// timer's deadline while its callback runs.
//
// VirtualScheduler is not safe for concurrent use.
type VirtualScheduler struct {
	clock  *FakeClock
	timers map[schedule.Handle]*virtualTimer
	last   schedule.Handle
}

// NewVirtualScheduler creates a scheduler with a fresh FakeClock.
func NewVirtualScheduler() *VirtualScheduler {
	return &VirtualScheduler{
		clock:  NewFakeClock(),
		timers: make(map[schedule.Handle]*virtualTimer),
	}
}

// Clock returns the underlying clock.
func (s *VirtualScheduler) Clock() *FakeClock {
	return s.clock
}

// Now returns the virtual time.
func (s *VirtualScheduler) Now() time.Time {
	return s.clock.Now()
}

// Schedule registers fn to run once delay has elapsed on the virtual clock.
func (s *VirtualScheduler) Schedule(delay time.Duration, fn func()) schedule.Handle {
	s.last++
	s.timers[s.last] = &virtualTimer{due: s.clock.Now().Add(max(delay, 0)), fn: fn}
	return s.last
}

// Cancel drops a pending timer. Unknown and zero handles are ignored.
func (s *VirtualScheduler) Cancel(h schedule.Handle) {
	delete(s.timers, h)
}

// Pending returns the number of timers that have not fired or been
// cancelled.
func (s *VirtualScheduler) Pending() int {
	return len(s.timers)
}

// Advance moves the clock forward by d, firing every timer that comes due.
// Timers scheduled by callbacks fire too if they fall within the window.
func (s *VirtualScheduler) Advance(d time.Duration) {
	target := s.clock.Now().Add(d)
	for {
		h, ok := s.next(target)
		if !ok {
			break
		}
		timer := s.timers[h]
		delete(s.timers, h)
		if timer.due.After(s.clock.Now()) {
			s.clock.Set(timer.due)
		}
		timer.fn()
	}
	s.clock.Set(target)
}

// next returns the earliest timer due at or before target. Ties go to the
// timer scheduled first.
func (s *VirtualScheduler) next(target time.Time) (schedule.Handle, bool) {
	var best schedule.Handle
	var bestDue time.Time
	for h, timer := range s.timers {
		if timer.due.After(target) {
			continue
		}
		if best == 0 || timer.due.Before(bestDue) || (timer.due.Equal(bestDue) && h < best) {
			best, bestDue = h, timer.due
		}
	}
	return best, best != 0
}
