// Package registry tracks surfaces that are pressed or about to be, and
// keeps at most one of them in that state at any time.
//
// A Registry is meant to be constructed once per application root and
// shared by reference with every surface under it. It is not safe for
// concurrent use; all calls must come from the UI loop.
package registry

import (
	"sort"
	"strconv"

	"github.com/go-drift/tappable/pkg/schedule"
)

// IDPrefix prefixes every id returned by NextID.
const IDPrefix = "tappable-"

// Entry is the registry's view of one surface.
type Entry struct {
	// ActivationTimer is the pending "become active" timer, if any.
	ActivationTimer schedule.Handle
	// ReleaseTimer is the pending "become inactive" timer, if any.
	ReleaseTimer schedule.Handle
	// Deactivate forces the owning surface out of the active state.
	Deactivate func()

	seq uint64
}

// Registry holds one Entry per surface that has a pending activation or is
// active.
type Registry struct {
	timers  schedule.Scheduler
	entries map[string]*Entry
	lastID  uint64
	seq     uint64
}

// New creates an empty registry whose timers are cancelled through s.
func New(s schedule.Scheduler) *Registry {
	return &Registry{
		timers:  s,
		entries: make(map[string]*Entry),
	}
}

// Scheduler returns the scheduler the registry cancels timers with.
func (r *Registry) Scheduler() schedule.Scheduler {
	return r.timers
}

// NextID returns a new instance id. Ids are never reused.
func (r *Registry) NextID() string {
	r.lastID++
	return IDPrefix + strconv.FormatUint(r.lastID, 10)
}

// RegisterPendingActivation records id's activation timer and deactivate
// callback, then purges every other entry.
//
// Registering an id that already has an entry replaces it; the previous
// entry's timers are cancelled unless they are being carried over.
func (r *Registry) RegisterPendingActivation(id string, timer schedule.Handle, deactivate func()) {
	if prev, ok := r.entries[id]; ok {
		if prev.ActivationTimer != timer {
			r.timers.Cancel(prev.ActivationTimer)
		}
		r.timers.Cancel(prev.ReleaseTimer)
	}
	r.seq++
	r.entries[id] = &Entry{
		ActivationTimer: timer,
		Deactivate:      deactivate,
		seq:             r.seq,
	}
	r.ClearAllExcept(id)
}

// ClearAllExcept purges every entry other than id: timers are cancelled,
// Deactivate is invoked and the entry is removed. An empty id purges all.
//
// Entries are removed before any callback runs, so a callback that calls
// back into the registry sees the purged state.
func (r *Registry) ClearAllExcept(id string) {
	var victims []*Entry
	for key, e := range r.entries {
		if key == id {
			continue
		}
		victims = append(victims, e)
		delete(r.entries, key)
	}
	sort.Slice(victims, func(i, j int) bool { return victims[i].seq < victims[j].seq })
	for _, e := range victims {
		r.timers.Cancel(e.ActivationTimer)
		r.timers.Cancel(e.ReleaseTimer)
		if e.Deactivate != nil {
			e.Deactivate()
		}
	}
}

// Entry returns a copy of id's entry.
func (r *Registry) Entry(id string) (Entry, bool) {
	e, ok := r.entries[id]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// SetReleaseTimer stores h as id's release timer, cancelling any previous
// one. It reports false when id has no entry; the caller then owns h.
func (r *Registry) SetReleaseTimer(id string, h schedule.Handle) bool {
	e, ok := r.entries[id]
	if !ok {
		return false
	}
	if e.ReleaseTimer != h {
		r.timers.Cancel(e.ReleaseTimer)
	}
	e.ReleaseTimer = h
	return true
}

// ClearActivationTimer cancels id's pending activation timer, keeping the
// entry.
func (r *Registry) ClearActivationTimer(id string) {
	e, ok := r.entries[id]
	if !ok {
		return
	}
	r.timers.Cancel(e.ActivationTimer)
	e.ActivationTimer = 0
}

// Remove cancels id's timers and deletes its entry without invoking
// Deactivate. Removing a missing id is a no-op.
func (r *Registry) Remove(id string) {
	e, ok := r.entries[id]
	if !ok {
		return
	}
	delete(r.entries, id)
	r.timers.Cancel(e.ActivationTimer)
	r.timers.Cancel(e.ReleaseTimer)
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	return len(r.entries)
}

// IDs returns the registered ids in registration order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return r.entries[ids[i]].seq < r.entries[ids[j]].seq })
	return ids
}
