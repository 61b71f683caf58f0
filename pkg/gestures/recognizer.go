package gestures

import "github.com/go-drift/tappable/pkg/graphics"

// Recognizer converts the raw pointer events of one region into Handler
// callbacks. It is not safe for concurrent use.
type Recognizer struct {
	handler  Handler
	origins  map[int64]graphics.Offset
	hovering bool
}

// NewRecognizer creates a recognizer that reports to h.
func NewRecognizer(h Handler) *Recognizer {
	return &Recognizer{
		handler: h,
		origins: make(map[int64]graphics.Offset),
	}
}

// HandlePointer processes a pointer event.
func (r *Recognizer) HandlePointer(event PointerEvent) {
	switch event.Phase {
	case PointerPhaseDown:
		if _, ok := r.origins[event.PointerID]; ok {
			return
		}
		r.origins[event.PointerID] = event.Position
		r.handler.GestureStart(StartEvent{Position: event.Position, Contacts: max(len(r.origins), event.Contacts)})
	case PointerPhaseMove:
		origin, ok := r.origins[event.PointerID]
		if !ok {
			return
		}
		shift := event.Position.Sub(origin).Abs()
		r.handler.GestureMove(MoveEvent{Position: event.Position, ShiftXAbs: shift.X, ShiftYAbs: shift.Y})
	case PointerPhaseUp, PointerPhaseCancel:
		if _, ok := r.origins[event.PointerID]; !ok {
			return
		}
		delete(r.origins, event.PointerID)
		r.handler.GestureEnd(EndEvent{
			Position:  event.Position,
			Remaining: max(len(r.origins), event.Contacts),
			Cancelled: event.Phase == PointerPhaseCancel,
		})
	case PointerPhaseEnter:
		if !r.hovering {
			r.hovering = true
			r.handler.PointerEnter()
		}
	case PointerPhaseExit:
		if r.hovering {
			r.hovering = false
			r.handler.PointerLeave()
		}
	}
}

// Contacts returns the number of contacts currently down.
func (r *Recognizer) Contacts() int {
	return len(r.origins)
}

// Hovering reports whether the pointer is inside the region.
func (r *Recognizer) Hovering() bool {
	return r.hovering
}

// Reset forgets all contacts and hover state without emitting callbacks.
func (r *Recognizer) Reset() {
	clear(r.origins)
	r.hovering = false
}
