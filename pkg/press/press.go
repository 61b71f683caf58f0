// Package press decides how a gesture's timing maps onto press feedback.
//
// Feedback is delayed by [ActivationDelay] so fast swipes never flash, but
// once shown it stays visible for the configured effect duration so that
// quick taps are still perceptible. Movement past [DragThreshold] on either
// axis cancels feedback entirely.
//
// Every function here is pure; callers own timers and state.
package press

import "time"

const (
	// ActivationDelay is the minimum hold time before feedback appears.
	ActivationDelay = 70 * time.Millisecond
	// LongPressThreshold is how long feedback must have been visible for a
	// release to hide it immediately.
	LongPressThreshold = 100 * time.Millisecond
	// DragThreshold is the cumulative movement, per axis, that turns a
	// press into a drag.
	DragThreshold = 20.0
	// DefaultEffectDuration is the guaranteed visible duration of feedback.
	DefaultEffectDuration = 600 * time.Millisecond
	// RippleDuration is how long a ripple marker lives.
	RippleDuration = 225 * time.Millisecond
)

// Effect returns d, or DefaultEffectDuration when d is not positive.
func Effect(d time.Duration) time.Duration {
	if d <= 0 {
		return DefaultEffectDuration
	}
	return d
}

// StartAction is the outcome of a gesture start.
type StartAction int

const (
	// StartIgnore means the surface cannot show press feedback.
	StartIgnore StartAction = iota
	// StartClearAll means the start is ambiguous (several contacts) and
	// every active surface must be cleared.
	StartClearAll
	// StartSchedule means activation should be scheduled after Delay.
	StartSchedule
)

func (a StartAction) String() string {
	switch a {
	case StartClearAll:
		return "clear_all"
	case StartSchedule:
		return "schedule"
	default:
		return "ignore"
	}
}

// StartDecision is returned by Start.
type StartDecision struct {
	Action StartAction
	Delay  time.Duration
}

// Start decides what a gesture start does.
func Start(canActivate bool, contacts int) StartDecision {
	if !canActivate {
		return StartDecision{Action: StartIgnore}
	}
	if contacts > 1 {
		return StartDecision{Action: StartClearAll}
	}
	return StartDecision{Action: StartSchedule, Delay: ActivationDelay}
}

// IsDrag reports whether cumulative movement turns the gesture into a drag.
func IsDrag(shiftXAbs, shiftYAbs float64) bool {
	return shiftXAbs > DragThreshold || shiftYAbs > DragThreshold
}

// EndAction is the outcome of a gesture end.
type EndAction int

const (
	// EndReset clears per-gesture flags without touching feedback. It is
	// returned for a drag that ends while inactive.
	EndReset EndAction = iota
	// EndAbort means contacts remain: stop dragging and deactivate.
	EndAbort
	// EndDeactivate hides feedback immediately.
	EndDeactivate
	// EndDeactivateAfter keeps feedback visible for Delay more.
	EndDeactivateAfter
	// EndActivateThenDeactivate shows feedback now and hides it after Delay.
	EndActivateThenDeactivate
)

func (a EndAction) String() string {
	switch a {
	case EndAbort:
		return "abort"
	case EndDeactivate:
		return "deactivate"
	case EndDeactivateAfter:
		return "deactivate_after"
	case EndActivateThenDeactivate:
		return "activate_then_deactivate"
	default:
		return "reset"
	}
}

// EndInput describes the gesture at release time.
type EndInput struct {
	// Remaining is the number of contacts still down.
	Remaining int
	// Active reports whether feedback is currently shown.
	Active bool
	// Dragging reports whether the gesture exceeded the drag threshold.
	Dragging bool
	// Elapsed is the time since feedback was shown. Ignored when inactive.
	Elapsed time.Duration
	// Effect is the configured effect duration.
	Effect time.Duration
}

// EndDecision is returned by End.
type EndDecision struct {
	Action EndAction
	Delay  time.Duration
}

// End decides what a release does.
func End(in EndInput) EndDecision {
	effect := Effect(in.Effect)
	switch {
	case in.Remaining > 0:
		return EndDecision{Action: EndAbort}
	case in.Active && in.Elapsed >= LongPressThreshold:
		return EndDecision{Action: EndDeactivate}
	case in.Active:
		return EndDecision{Action: EndDeactivateAfter, Delay: effect - in.Elapsed}
	case !in.Dragging:
		return EndDecision{Action: EndActivateThenDeactivate, Delay: effect}
	default:
		return EndDecision{Action: EndReset}
	}
}
