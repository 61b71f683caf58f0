package core

import "sync"

// StateBase provides the dispose and rebuild plumbing shared by stateful
// components. Embed it in a component to get OnDispose, SetState and
// change listeners without boilerplate:
//
//	type counter struct {
//	    core.StateBase
//	    count int
//	}
//
//	func (c *counter) Increment() {
//	    c.SetState(func() { c.count++ })
//	}
type StateBase struct {
	notifier  Notifier
	disposers []func()
	disposed  bool
	mu        sync.Mutex
}

// SetState executes the given function and notifies listeners.
// Safe to call even after disposal (becomes a no-op).
//
// SetState is NOT thread-safe. It must only be called from the UI loop.
func (s *StateBase) SetState(fn func()) {
	if s.IsDisposed() {
		return
	}
	if fn != nil {
		fn()
	}
	s.notifier.Notify()
}

// AddListener registers fn to be called after every SetState. It returns
// a function that removes the listener.
func (s *StateBase) AddListener(fn func()) func() {
	return s.notifier.AddListener(fn)
}

// OnDispose registers a cleanup function to be called when the state is disposed.
// Returns an unregister function that can be called to remove the disposer.
// The cleanup function will only be called once.
func (s *StateBase) OnDispose(cleanup func()) func() {
	if cleanup == nil {
		return func() {}
	}

	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		// Already disposed, run cleanup immediately
		cleanup()
		return func() {}
	}
	index := len(s.disposers)
	s.disposers = append(s.disposers, cleanup)
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if index < len(s.disposers) {
			s.disposers[index] = nil
		}
	}
}

// RunDisposers executes all registered disposers in reverse order and
// drops every listener.
func (s *StateBase) RunDisposers() {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}
	s.disposed = true
	disposers := s.disposers
	s.disposers = nil
	s.mu.Unlock()

	// Run disposers in reverse order (LIFO)
	for i := len(disposers) - 1; i >= 0; i-- {
		if disposers[i] != nil {
			disposers[i]()
		}
	}
	s.notifier.Clear()
}

// Dispose cleans up resources. Override this method if you need custom cleanup,
// but always call s.RunDisposers() or s.StateBase.Dispose() in your override.
func (s *StateBase) Dispose() {
	s.RunDisposers()
}

// IsDisposed returns true if this state has been disposed.
func (s *StateBase) IsDisposed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disposed
}
