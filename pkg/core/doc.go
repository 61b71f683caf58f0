// Package core provides the lifecycle plumbing shared by stateful
// components.
//
// Embed StateBase in a component to get change notification and ordered
// cleanup:
//
//	type counter struct {
//	    core.StateBase
//	    count int
//	}
//
//	func (c *counter) Increment() {
//	    c.SetState(func() { c.count++ })
//	}
//
// Cleanup registered with OnDispose runs once, in reverse order, when the
// component is disposed. UseController and UseListenable tie a child
// resource or subscription to that same lifetime.
//
// Nothing in this package is safe for concurrent use apart from dispose
// bookkeeping. SetState and listeners belong to the UI loop.
package core
