package tappable

import (
	"cmp"
	"slices"
)

// Phase is a surface's position in the press state machine.
type Phase int

const (
	// PhaseIdle shows no press feedback and has nothing scheduled.
	PhaseIdle Phase = iota
	// PhasePending is waiting out the activation delay.
	PhasePending
	// PhaseActive shows press feedback.
	PhaseActive
	// PhaseDragging is a press that moved past the drag threshold.
	PhaseDragging
)

func (p Phase) String() string {
	switch p {
	case PhasePending:
		return "pending"
	case PhaseActive:
		return "active"
	case PhaseDragging:
		return "dragging"
	default:
		return "idle"
	}
}

// Ripple is a transient marker at a press position, relative to the
// surface's top-left corner.
type Ripple struct {
	ID int
	X  float64
	Y  float64
}

// State is the render output of a surface. Presentation layers turn it
// into visuals; the surface itself never styles anything.
type State struct {
	Active       bool
	Hovered      bool
	FocusVisible bool

	// HasHover and HasActive are the effective capabilities: the
	// configured values, cleared while a nested surface is engaged.
	HasHover  bool
	HasActive bool
	Disabled  bool

	ActiveMode       Mode
	HoverMode        Mode
	FocusVisibleMode Mode

	// Ripples are sorted by ID, oldest first.
	Ripples []Ripple
}

// Classes returns the modes a presentation layer should apply, in the
// order hover, active, focus-visible.
func (st State) Classes() []Mode {
	var out []Mode
	if st.Hovered {
		out = append(out, st.HoverMode)
	}
	if st.Active {
		out = append(out, st.ActiveMode)
	}
	if st.FocusVisible {
		out = append(out, st.FocusVisibleMode)
	}
	return out
}

// State returns the current render output.
func (s *Surface) State() State {
	st := State{
		Disabled:         s.opts.Disabled,
		ActiveMode:       s.opts.ActiveMode,
		HoverMode:        s.opts.HoverMode,
		FocusVisibleMode: s.opts.FocusVisibleMode,
	}
	if s.opts.Disabled {
		return st
	}
	st.HasHover = s.hasHover()
	st.HasActive = s.hasActive()
	st.Active = s.active && st.HasActive
	st.Hovered = s.hovered && st.HasHover
	st.FocusVisible = s.focusVisible
	if len(s.ripples) > 0 {
		st.Ripples = make([]Ripple, 0, len(s.ripples))
		for _, r := range s.ripples {
			st.Ripples = append(st.Ripples, r)
		}
		slices.SortFunc(st.Ripples, func(a, b Ripple) int { return cmp.Compare(a.ID, b.ID) })
	}
	return st
}

// Phase returns the surface's state machine phase.
func (s *Surface) Phase() Phase {
	switch {
	case s.active:
		return PhaseActive
	case s.dragging:
		return PhaseDragging
	case s.activationTimer != 0:
		return PhasePending
	default:
		return PhaseIdle
	}
}

// IsActive reports whether press feedback is shown.
func (s *Surface) IsActive() bool {
	return s.active
}
