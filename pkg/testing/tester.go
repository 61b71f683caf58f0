package testing

import (
	"testing"
	"time"

	"github.com/go-drift/tappable/pkg/focus"
	"github.com/go-drift/tappable/pkg/gestures"
	"github.com/go-drift/tappable/pkg/graphics"
	"github.com/go-drift/tappable/pkg/registry"
	"github.com/go-drift/tappable/pkg/tappable"
)

// SurfaceTester mounts surfaces on a virtual scheduler and drives them
// with simulated pointer and keyboard input. Every surface it mounts
// shares one registry, as under a single application root.
type SurfaceTester struct {
	scheduler *VirtualScheduler
	registry  *registry.Registry
	router    *gestures.Router
	focus     *focus.FocusManager
	surfaces  []*tappable.Surface
	pointers  map[int64]graphics.Offset
	nextID    int64
}

// NewSurfaceTester creates a tester with an empty registry.
// Call Cleanup() when done, or use NewSurfaceTesterWithT() instead.
func NewSurfaceTester() *SurfaceTester {
	sched := NewVirtualScheduler()
	return &SurfaceTester{
		scheduler: sched,
		registry:  registry.New(sched),
		router:    gestures.NewRouter(),
		focus:     focus.NewFocusManager(),
		pointers:  make(map[int64]graphics.Offset),
	}
}

// NewSurfaceTesterWithT creates a tester that auto-cleans up via t.Cleanup().
// This is the recommended constructor for tests.
func NewSurfaceTesterWithT(t testing.TB) *SurfaceTester {
	tester := NewSurfaceTester()
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup disposes every mounted surface.
func (t *SurfaceTester) Cleanup() {
	for len(t.surfaces) > 0 {
		t.Unmount(t.surfaces[len(t.surfaces)-1])
	}
}

// Scheduler returns the virtual scheduler.
func (t *SurfaceTester) Scheduler() *VirtualScheduler {
	return t.scheduler
}

// Clock returns the virtual clock.
func (t *SurfaceTester) Clock() *FakeClock {
	return t.scheduler.Clock()
}

// Registry returns the shared registry.
func (t *SurfaceTester) Registry() *registry.Registry {
	return t.registry
}

// Router returns the pointer router surfaces are mounted on.
func (t *SurfaceTester) Router() *gestures.Router {
	return t.router
}

// FocusManager returns the focus manager surfaces are registered with.
func (t *SurfaceTester) FocusManager() *focus.FocusManager {
	return t.focus
}

// Advance moves virtual time forward, firing due timers.
func (t *SurfaceTester) Advance(d time.Duration) {
	t.scheduler.Advance(d)
}

// Mount creates a surface covering bounds. Surfaces mounted later sit on
// top of earlier ones, so mount ancestors before their descendants.
func (t *SurfaceTester) Mount(bounds graphics.Rect, opts tappable.Options) *tappable.Surface {
	s := tappable.New(t.registry, opts)
	s.AttachNode(Node{Rect: bounds})
	t.router.Add(s)
	t.focus.Register(s.FocusNode())
	t.surfaces = append(t.surfaces, s)
	return s
}

// Unmount removes s from the router and disposes it.
func (t *SurfaceTester) Unmount(s *tappable.Surface) {
	for i, mounted := range t.surfaces {
		if mounted == s {
			t.surfaces = append(t.surfaces[:i], t.surfaces[i+1:]...)
			break
		}
	}
	t.router.Remove(s)
	s.Dispose()
}

// Surfaces returns the mounted surfaces in mount order.
func (t *SurfaceTester) Surfaces() []*tappable.Surface {
	return append([]*tappable.Surface(nil), t.surfaces...)
}

// ActiveCount returns how many mounted surfaces show press feedback.
func (t *SurfaceTester) ActiveCount() int {
	n := 0
	for _, s := range t.surfaces {
		if s.IsActive() {
			n++
		}
	}
	return n
}

// PressKey delivers a key to the focused surface.
func (t *SurfaceTester) PressKey(key focus.Key) *focus.KeyEvent {
	event := &focus.KeyEvent{Key: key}
	t.focus.HandleKey(event)
	return event
}

// Node is a fixed-bounds node for AttachNode.
type Node struct {
	Rect graphics.Rect
}

// Bounds returns the node's rect.
func (n Node) Bounds() graphics.Rect {
	return n.Rect
}
