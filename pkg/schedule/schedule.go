// Package schedule abstracts timers behind a small cancelable interface so
// press timing can run on a real UI loop or on a virtual clock in tests.
package schedule

import "time"

// Clock provides the current time. The default implementation uses system
// time; tests inject a fake clock to control timing deterministically.
type Clock interface {
	Now() time.Time
}

// Handle identifies a scheduled callback. The zero Handle never refers to
// a timer, so it can be stored as "no timer pending".
type Handle uint64

// Scheduler runs callbacks after a delay. Cancel must be idempotent:
// cancelling a fired, cancelled or zero handle is a no-op.
type Scheduler interface {
	Clock
	Schedule(delay time.Duration, fn func()) Handle
	Cancel(h Handle)
}

// realClock uses system time.
type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// SystemClock is the wall clock.
var SystemClock Clock = realClock{}
