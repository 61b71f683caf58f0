package schedule

import (
	"context"
	"sync"
	"time"

	"github.com/go-drift/tappable/pkg/errors"
)

// DefaultQueueSize is the buffer used by NewLoop when size is not positive.
const DefaultQueueSize = 64

type task struct {
	handle Handle
	fn     func()
}

// Loop is a single-threaded event loop. Posted work and fired timers are
// queued and executed one at a time by Run, so callbacks never observe
// each other mid-flight.
//
// Schedule, Cancel and Post are safe to call from any goroutine. Timer
// bookkeeping is guarded because time.AfterFunc fires on runtime
// goroutines.
type Loop struct {
	clock Clock

	mu     sync.Mutex
	next   Handle
	timers map[Handle]*time.Timer

	queue    chan task
	done     chan struct{}
	doneOnce sync.Once
}

// NewLoop creates a loop with the given queue size.
func NewLoop(size int) *Loop {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Loop{
		clock:  SystemClock,
		timers: make(map[Handle]*time.Timer),
		queue:  make(chan task, size),
		done:   make(chan struct{}),
	}
}

// Now returns the loop's current time.
func (l *Loop) Now() time.Time { return l.clock.Now() }

// Schedule queues fn to run on the loop after delay.
func (l *Loop) Schedule(delay time.Duration, fn func()) Handle {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.next++
	h := l.next
	l.timers[h] = time.AfterFunc(delay, func() {
		l.enqueue(task{handle: h, fn: fn})
	})
	return h
}

// Cancel stops a scheduled callback. A callback that already fired but has
// not yet been run by the loop is dropped.
func (l *Loop) Cancel(h Handle) {
	if h == 0 {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if t, ok := l.timers[h]; ok {
		t.Stop()
		delete(l.timers, h)
	}
}

// Pending returns the number of scheduled callbacks that have not run.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.timers)
}

// Post queues fn to run on the loop as soon as possible.
func (l *Loop) Post(fn func()) {
	if fn == nil {
		return
	}
	l.enqueue(task{fn: fn})
}

func (l *Loop) enqueue(t task) {
	select {
	case l.queue <- t:
	case <-l.done:
	}
}

// Run executes queued work on the calling goroutine until ctx is done.
// Pending timers are stopped on return.
func (l *Loop) Run(ctx context.Context) error {
	defer l.stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case t := <-l.queue:
			l.run(t)
		}
	}
}

func (l *Loop) run(t task) {
	if t.handle != 0 {
		l.mu.Lock()
		_, live := l.timers[t.handle]
		delete(l.timers, t.handle)
		l.mu.Unlock()
		if !live {
			return
		}
	}
	defer errors.Recover("schedule.Loop")
	t.fn()
}

func (l *Loop) stop() {
	l.doneOnce.Do(func() { close(l.done) })
	l.mu.Lock()
	defer l.mu.Unlock()
	for h, t := range l.timers {
		t.Stop()
		delete(l.timers, h)
	}
}
