// Package gestures normalizes raw pointer input into the start/move/end
// and enter/leave callbacks that press-feedback surfaces consume.
//
// Touch, mouse and pen input all arrive as [PointerEvent] values. A
// [Recognizer] turns the events of one surface into gesture callbacks with
// contact counts and cumulative shifts; a [Router] hit-tests regions,
// captures pointers on down, and derives hover enter/leave from mouse
// movement.
package gestures

import "github.com/go-drift/tappable/pkg/graphics"

// PointerPhase describes the lifecycle stage of a pointer event.
type PointerPhase int

const (
	// PointerPhaseDown is a new contact (finger down, button pressed).
	PointerPhaseDown PointerPhase = iota
	// PointerPhaseMove is movement of a contact that is down.
	PointerPhaseMove
	// PointerPhaseUp is a contact released.
	PointerPhaseUp
	// PointerPhaseCancel is a contact taken away by the system.
	PointerPhaseCancel
	// PointerPhaseHover is movement with no contact down (mouse only).
	PointerPhaseHover
	// PointerPhaseEnter is delivered when the pointer enters a region.
	PointerPhaseEnter
	// PointerPhaseExit is delivered when the pointer leaves a region.
	PointerPhaseExit
)

func (p PointerPhase) String() string {
	switch p {
	case PointerPhaseDown:
		return "down"
	case PointerPhaseMove:
		return "move"
	case PointerPhaseUp:
		return "up"
	case PointerPhaseCancel:
		return "cancel"
	case PointerPhaseHover:
		return "hover"
	case PointerPhaseEnter:
		return "enter"
	case PointerPhaseExit:
		return "exit"
	default:
		return "unknown"
	}
}

// PointerKind identifies the input device.
type PointerKind int

const (
	// PointerKindTouch is a finger on a touch screen.
	PointerKindTouch PointerKind = iota
	// PointerKindMouse is a mouse or trackpad.
	PointerKindMouse
)

// PointerEvent is a single raw pointer sample.
type PointerEvent struct {
	PointerID int64
	Position  graphics.Offset
	Phase     PointerPhase
	Kind      PointerKind
	// Contacts is the number of contacts down on the whole screen after
	// this event, as the platform reports it. Zero means unknown, in
	// which case only the contacts seen by the receiving region count.
	Contacts int
}

// StartEvent begins a gesture.
type StartEvent struct {
	// Position is where the new contact went down.
	Position graphics.Offset
	// Contacts is the number of contacts down, including the new one.
	Contacts int
}

// MoveEvent reports movement of a contact.
type MoveEvent struct {
	Position graphics.Offset
	// ShiftXAbs and ShiftYAbs are the absolute distances from where the
	// contact went down.
	ShiftXAbs float64
	ShiftYAbs float64
}

// EndEvent reports a released contact.
type EndEvent struct {
	Position graphics.Offset
	// Remaining is the number of contacts still down.
	Remaining int
	// Cancelled is true when the system cancelled the contact.
	Cancelled bool
}

// Handler receives normalized gesture callbacks.
type Handler interface {
	GestureStart(StartEvent)
	GestureMove(MoveEvent)
	GestureEnd(EndEvent)
	PointerEnter()
	PointerLeave()
}
