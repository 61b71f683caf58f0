package tappable

import (
	"time"

	"github.com/go-drift/tappable/pkg/core"
	"github.com/go-drift/tappable/pkg/focus"
	"github.com/go-drift/tappable/pkg/gestures"
	"github.com/go-drift/tappable/pkg/graphics"
	"github.com/go-drift/tappable/pkg/press"
	"github.com/go-drift/tappable/pkg/registry"
	"github.com/go-drift/tappable/pkg/schedule"
)

// BoundsProvider is the node a surface is attached to. Its bounds place
// ripples and hit-test pointer input.
type BoundsProvider interface {
	Bounds() graphics.Rect
}

// Surface is an interactive region with simulated press feedback.
//
// A Surface is not safe for concurrent use. Every method, including the
// timer callbacks it schedules, must run on the UI loop that owns the
// registry's scheduler.
type Surface struct {
	core.StateBase

	id    string
	reg   *registry.Registry
	sched schedule.Scheduler
	opts  Options

	recognizer *gestures.Recognizer
	node       BoundsProvider
	focusNode  *focus.FocusNode

	active      bool
	activatedAt time.Time
	dragging    bool
	// pressed is set while the surface tracks the current gesture, with
	// or without feedback.
	pressed bool
	// feedback is set when the current gesture may show press feedback.
	feedback bool
	// aborted is set when the current gesture went multi-touch; nothing
	// activates until every contact is released.
	aborted  bool
	contacts int

	hovered      bool
	focusVisible bool
	suppressed   int
	holdsHover   bool
	holdsPress   bool

	activationTimer schedule.Handle
	releaseTimer    schedule.Handle

	ripples      map[int]Ripple
	rippleTimers map[int]schedule.Handle
	nextRipple   int
}

// New creates a surface coordinated through reg. Call Dispose when the
// surface goes away.
func New(reg *registry.Registry, opts Options) *Surface {
	id := reg.NextID()
	s := &Surface{
		id:           id,
		reg:          reg,
		sched:        reg.Scheduler(),
		opts:         opts.normalize(id),
		ripples:      make(map[int]Ripple),
		rippleTimers: make(map[int]schedule.Handle),
	}
	s.recognizer = gestures.NewRecognizer(s)
	s.focusNode = &focus.FocusNode{
		CanRequestFocus: !s.opts.Disabled,
		DebugLabel:      id,
		OnFocusChange: func(hasFocus bool, cause focus.FocusCause) {
			s.setFocusVisible(hasFocus && cause == focus.FocusCauseTraversal)
		},
		OnKeyEvent: s.HandleKey,
		Rect:       s,
	}
	s.OnDispose(s.teardown)
	return s
}

// ID returns the surface's instance id.
func (s *Surface) ID() string {
	return s.id
}

// Options returns the normalized options.
func (s *Surface) Options() Options {
	return s.opts
}

// AttachNode records the node the surface renders into.
func (s *Surface) AttachNode(n BoundsProvider) {
	s.node = n
}

// Bounds returns the attached node's bounds, or an empty rect.
func (s *Surface) Bounds() graphics.Rect {
	if s.node == nil {
		return graphics.Rect{}
	}
	return s.node.Bounds()
}

// HandlePointer feeds a raw pointer event through the surface's gesture
// recognizer. Disabled and disposed surfaces ignore input.
func (s *Surface) HandlePointer(event gestures.PointerEvent) {
	if s.IsDisposed() || s.opts.Disabled {
		return
	}
	s.recognizer.HandlePointer(event)
}

// StopsPropagation reports whether outer surfaces must not see this
// surface's pointer events.
func (s *Surface) StopsPropagation() bool {
	return s.opts.StopPropagation && !s.opts.InsideTouchRoot && !s.opts.Disabled
}

func (s *Surface) hasHover() bool {
	return *s.opts.HasHover && s.suppressed == 0
}

func (s *Surface) hasActive() bool {
	return *s.opts.HasActive && s.suppressed == 0
}

func (s *Surface) live() bool {
	return !s.IsDisposed() && !s.opts.Disabled
}

// GestureStart begins a press.
func (s *Surface) GestureStart(e gestures.StartEvent) {
	if !s.live() {
		return
	}
	s.contacts++
	decision := press.Start(s.hasActive(), e.Contacts)
	switch decision.Action {
	case press.StartIgnore:
		// No feedback, but the release still counts as a click.
		s.pressed = true
		s.feedback = false
		if e.Contacts > 1 {
			s.aborted = true
		}
	case press.StartClearAll:
		s.pressed = true
		s.aborted = true
		s.feedback = false
		s.reg.ClearAllExcept("")
		s.deactivate()
	case press.StartSchedule:
		if s.pressed && s.aborted {
			return
		}
		s.pressed = true
		s.feedback = true
		s.dragging = false
		s.holdPress()
		if s.opts.ShowRipples {
			s.spawnRipple(e.Position)
		}
		s.sched.Cancel(s.activationTimer)
		s.activationTimer = s.sched.Schedule(decision.Delay, s.onActivationTimer)
		s.reg.RegisterPendingActivation(s.id, s.activationTimer, s.forceDeactivate)
	}
}

// GestureMove cancels the press once movement exceeds the drag threshold.
func (s *Surface) GestureMove(e gestures.MoveEvent) {
	if !s.live() || !s.pressed || s.dragging {
		return
	}
	if !press.IsDrag(e.ShiftXAbs, e.ShiftYAbs) {
		return
	}
	s.SetState(func() { s.dragging = true })
	s.deactivate()
}

// GestureEnd releases a contact.
func (s *Surface) GestureEnd(e gestures.EndEvent) {
	if !s.live() {
		return
	}
	if s.contacts > 0 {
		s.contacts--
	}
	if !s.pressed {
		return
	}
	tap := !s.dragging && !s.aborted && !e.Cancelled
	switch {
	case e.Remaining > 0:
		tap = false
		s.dragging = false
		s.aborted = true
		s.deactivate()
	case s.aborted, e.Cancelled, !s.feedback:
		s.deactivate()
	default:
		decision := press.End(press.EndInput{
			Remaining: e.Remaining,
			Active:    s.active,
			Dragging:  s.dragging,
			Elapsed:   s.elapsed(),
			Effect:    s.opts.ActiveEffectDelay,
		})
		s.applyEnd(decision)
	}
	if s.contacts == 0 {
		s.finishGesture(tap)
	}
}

func (s *Surface) applyEnd(d press.EndDecision) {
	switch d.Action {
	case press.EndAbort, press.EndDeactivate:
		s.deactivate()
	case press.EndDeactivateAfter:
		s.scheduleRelease(d.Delay)
	case press.EndActivateThenDeactivate:
		s.cancelActivation()
		s.activate()
		if s.active {
			s.scheduleRelease(d.Delay)
		} else {
			s.deactivate()
		}
	}
}

func (s *Surface) elapsed() time.Duration {
	if !s.active {
		return 0
	}
	return s.sched.Now().Sub(s.activatedAt)
}

func (s *Surface) finishGesture(tap bool) {
	s.pressed = false
	s.feedback = false
	s.dragging = false
	s.aborted = false
	s.releasePress()
	if tap {
		s.click()
	}
}

func (s *Surface) onActivationTimer() {
	s.activationTimer = 0
	s.reg.ClearActivationTimer(s.id)
	if !s.live() || s.dragging || s.aborted {
		return
	}
	s.activate()
}

// activate shows press feedback. It re-registers when the entry is gone so
// the registry keeps at most one surface active.
func (s *Surface) activate() {
	if s.active || !s.hasActive() {
		return
	}
	if _, ok := s.reg.Entry(s.id); !ok {
		s.reg.RegisterPendingActivation(s.id, 0, s.forceDeactivate)
	}
	s.SetState(func() {
		s.active = true
		s.activatedAt = s.sched.Now()
	})
}

func (s *Surface) scheduleRelease(d time.Duration) {
	s.sched.Cancel(s.releaseTimer)
	s.releaseTimer = s.sched.Schedule(d, s.onReleaseTimer)
	s.reg.SetReleaseTimer(s.id, s.releaseTimer)
}

func (s *Surface) onReleaseTimer() {
	s.releaseTimer = 0
	if s.IsDisposed() {
		return
	}
	s.deactivate()
}

func (s *Surface) cancelActivation() {
	s.sched.Cancel(s.activationTimer)
	s.activationTimer = 0
	s.reg.ClearActivationTimer(s.id)
}

// deactivate hides press feedback, cancels both timers and drops the
// registry entry.
func (s *Surface) deactivate() {
	s.sched.Cancel(s.activationTimer)
	s.sched.Cancel(s.releaseTimer)
	s.activationTimer = 0
	s.releaseTimer = 0
	s.reg.Remove(s.id)
	if !s.active {
		return
	}
	s.SetState(func() {
		s.active = false
		s.activatedAt = time.Time{}
	})
}

// forceDeactivate is the registry's purge callback. The entry is already
// gone and its timers cancelled.
func (s *Surface) forceDeactivate() {
	s.sched.Cancel(s.activationTimer)
	s.sched.Cancel(s.releaseTimer)
	s.activationTimer = 0
	s.releaseTimer = 0
	if s.pressed {
		s.aborted = true
	}
	if !s.active {
		return
	}
	s.SetState(func() {
		s.active = false
		s.activatedAt = time.Time{}
	})
}

func (s *Surface) spawnRipple(p graphics.Offset) {
	if s.node != nil {
		p = p.Sub(s.node.Bounds().TopLeft())
	}
	s.nextRipple++
	id := s.nextRipple
	s.SetState(func() {
		s.ripples[id] = Ripple{ID: id, X: p.X, Y: p.Y}
	})
	s.rippleTimers[id] = s.sched.Schedule(press.RippleDuration, func() {
		delete(s.rippleTimers, id)
		s.SetState(func() { delete(s.ripples, id) })
	})
}

func (s *Surface) click() {
	s.opts.Haptics.LightImpact()
	if s.opts.OnClick != nil {
		s.opts.OnClick()
	}
}

// teardown cancels everything the surface scheduled and releases its
// registry entry and ancestor.
func (s *Surface) teardown() {
	s.sched.Cancel(s.activationTimer)
	s.sched.Cancel(s.releaseTimer)
	s.activationTimer = 0
	s.releaseTimer = 0
	for id, h := range s.rippleTimers {
		s.sched.Cancel(h)
		delete(s.rippleTimers, id)
	}
	clear(s.ripples)
	s.reg.Remove(s.id)
	s.releasePress()
	s.releaseHover()
	s.recognizer.Reset()
	s.focusNode.Manager().Unregister(s.focusNode)
	s.active = false
	s.pressed = false
	s.hovered = false
	s.focusVisible = false
}
