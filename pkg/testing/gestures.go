package testing

import (
	"time"

	"github.com/go-drift/tappable/pkg/gestures"
	"github.com/go-drift/tappable/pkg/graphics"
	"github.com/go-drift/tappable/pkg/tappable"
)

func (t *SurfaceTester) allocPointerID() int64 {
	t.nextID++
	return t.nextID
}

// Down puts a new touch contact at pos and returns its pointer id.
func (t *SurfaceTester) Down(pos graphics.Offset) int64 {
	id := t.allocPointerID()
	t.pointers[id] = pos
	t.router.Route(gestures.PointerEvent{
		PointerID: id,
		Position:  pos,
		Phase:     gestures.PointerPhaseDown,
	})
	return id
}

// Move moves contact id to pos.
func (t *SurfaceTester) Move(id int64, pos graphics.Offset) {
	if _, ok := t.pointers[id]; !ok {
		return
	}
	t.pointers[id] = pos
	t.router.Route(gestures.PointerEvent{
		PointerID: id,
		Position:  pos,
		Phase:     gestures.PointerPhaseMove,
	})
}

// Up releases contact id where it last was.
func (t *SurfaceTester) Up(id int64) {
	t.release(id, gestures.PointerPhaseUp)
}

// Cancel cancels contact id.
func (t *SurfaceTester) Cancel(id int64) {
	t.release(id, gestures.PointerPhaseCancel)
}

func (t *SurfaceTester) release(id int64, phase gestures.PointerPhase) {
	pos, ok := t.pointers[id]
	if !ok {
		return
	}
	delete(t.pointers, id)
	t.router.Route(gestures.PointerEvent{
		PointerID: id,
		Position:  pos,
		Phase:     phase,
	})
}

// TapAt presses and immediately releases a contact at pos.
func (t *SurfaceTester) TapAt(pos graphics.Offset) {
	t.Up(t.Down(pos))
}

// Tap taps the center of s.
func (t *SurfaceTester) Tap(s *tappable.Surface) {
	t.TapAt(s.Bounds().Center())
}

// HoldAt presses at pos, advances virtual time by d and releases.
func (t *SurfaceTester) HoldAt(pos graphics.Offset, d time.Duration) {
	id := t.Down(pos)
	t.Advance(d)
	t.Up(id)
}

// Hold presses the center of s for d.
func (t *SurfaceTester) Hold(s *tappable.Surface, d time.Duration) {
	t.HoldAt(s.Bounds().Center(), d)
}

// DragFrom presses at start, moves by delta and releases.
func (t *SurfaceTester) DragFrom(start, delta graphics.Offset) {
	id := t.Down(start)
	t.Move(id, graphics.Offset{X: start.X + delta.X, Y: start.Y + delta.Y})
	t.Up(id)
}

// HoverAt moves a mouse pointer with no button pressed to pos.
func (t *SurfaceTester) HoverAt(pos graphics.Offset) {
	t.router.Route(gestures.PointerEvent{
		Position: pos,
		Phase:    gestures.PointerPhaseHover,
		Kind:     gestures.PointerKindMouse,
	})
}
