package gestures

import (
	"slices"

	"github.com/go-drift/tappable/pkg/graphics"
)

// Target receives raw pointer events from a Router.
type Target interface {
	HandlePointer(PointerEvent)
	// StopsPropagation reports whether outer targets should not see
	// events this target handled.
	StopsPropagation() bool
}

// Region is a Target with hit-test bounds.
type Region interface {
	Target
	Bounds() graphics.Rect
}

// Dispatch delivers event to targets in order, innermost first, stopping
// after the first target that stops propagation. It returns the number of
// targets that received the event.
func Dispatch(targets []Target, event PointerEvent) int {
	for i, t := range targets {
		t.HandlePointer(event)
		if t.StopsPropagation() {
			return i + 1
		}
	}
	return len(targets)
}

// Router hit-tests regions and routes pointer events to them. Regions
// added later are treated as nested inside earlier ones, so parents must
// be added before their children.
//
// A pointer is captured by the regions under it when it goes down; its
// moves and release go to that chain even if it leaves their bounds.
type Router struct {
	regions  []Region
	captured map[int64][]Target
	hovered  map[Region]bool
}

// NewRouter creates an empty router.
func NewRouter() *Router {
	return &Router{
		captured: make(map[int64][]Target),
		hovered:  make(map[Region]bool),
	}
}

// Add registers a region.
func (r *Router) Add(region Region) {
	r.regions = append(r.regions, region)
}

// Remove unregisters a region and drops it from captured chains.
func (r *Router) Remove(region Region) {
	r.regions = slices.DeleteFunc(r.regions, func(x Region) bool { return x == region })
	delete(r.hovered, region)
	for id, chain := range r.captured {
		r.captured[id] = slices.DeleteFunc(chain, func(t Target) bool { return t == Target(region) })
	}
}

// Regions returns the registered regions in insertion order.
func (r *Router) Regions() []Region {
	return slices.Clone(r.regions)
}

// HitTest returns the regions containing p, innermost first.
func (r *Router) HitTest(p graphics.Offset) []Target {
	var chain []Target
	for i := len(r.regions) - 1; i >= 0; i-- {
		if r.regions[i].Bounds().Contains(p) {
			chain = append(chain, r.regions[i])
		}
	}
	return chain
}

// Route delivers a raw pointer event.
func (r *Router) Route(event PointerEvent) {
	switch event.Phase {
	case PointerPhaseDown:
		if event.Kind == PointerKindMouse {
			r.updateHover(event)
		}
		chain := r.HitTest(event.Position)
		r.captured[event.PointerID] = chain
		event.Contacts = len(r.captured)
		Dispatch(chain, event)
	case PointerPhaseMove:
		if chain, ok := r.captured[event.PointerID]; ok {
			event.Contacts = len(r.captured)
			Dispatch(chain, event)
		}
		if event.Kind == PointerKindMouse {
			r.updateHover(event)
		}
	case PointerPhaseUp, PointerPhaseCancel:
		chain, ok := r.captured[event.PointerID]
		if !ok {
			return
		}
		delete(r.captured, event.PointerID)
		event.Contacts = len(r.captured)
		Dispatch(chain, event)
	case PointerPhaseHover:
		r.updateHover(event)
	}
}

// updateHover sends enter/exit to regions whose containment of the
// pointer changed. Exits are sent before enters, innermost first.
func (r *Router) updateHover(event PointerEvent) {
	var enter []Region
	for i := len(r.regions) - 1; i >= 0; i-- {
		region := r.regions[i]
		inside := region.Bounds().Contains(event.Position)
		if inside == r.hovered[region] {
			continue
		}
		if inside {
			enter = append(enter, region)
			continue
		}
		delete(r.hovered, region)
		region.HandlePointer(PointerEvent{PointerID: event.PointerID, Position: event.Position, Phase: PointerPhaseExit, Kind: event.Kind})
	}
	for _, region := range enter {
		r.hovered[region] = true
		region.HandlePointer(PointerEvent{PointerID: event.PointerID, Position: event.Position, Phase: PointerPhaseEnter, Kind: event.Kind})
	}
}
