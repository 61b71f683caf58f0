package tappable

import "github.com/go-drift/tappable/pkg/focus"

// HandleKey applies keyboard activation. A custom element with role
// button clicks on Enter and Space; with role link it clicks on Enter
// only. Native interactive elements are left to their own handling.
// OnKeyDown runs afterwards whether or not a click was synthesized.
func (s *Surface) HandleKey(e *focus.KeyEvent) focus.KeyEventResult {
	if !s.live() {
		return focus.KeyEventIgnored
	}
	result := focus.KeyEventIgnored
	if s.activatesOn(e.Key) {
		e.PreventDefault()
		s.click()
		result = focus.KeyEventHandled
	}
	if s.opts.OnKeyDown != nil {
		s.opts.OnKeyDown(e)
	}
	return result
}

func (s *Surface) activatesOn(k focus.Key) bool {
	if nativeElements[s.opts.RenderAs] {
		return false
	}
	switch s.opts.Role {
	case RoleButton:
		return k == focus.KeyEnter || k == focus.KeySpace
	case RoleLink:
		return k == focus.KeyEnter
	}
	return false
}

// FocusNode returns the node to register with a focus manager.
func (s *Surface) FocusNode() *focus.FocusNode {
	return s.focusNode
}

// FocusRect implements focus.RectProvider.
func (s *Surface) FocusRect() focus.FocusRect {
	b := s.Bounds()
	return focus.FocusRect{Left: b.Left, Top: b.Top, Right: b.Right, Bottom: b.Bottom}
}

// Focus marks the surface focused. Keyboard focus shows the focus-visible
// indicator; pointer or programmatic focus does not.
func (s *Surface) Focus(byKeyboard bool) {
	if !s.live() {
		return
	}
	s.setFocusVisible(byKeyboard)
}

// Blur clears the focus-visible indicator.
func (s *Surface) Blur() {
	s.setFocusVisible(false)
}

func (s *Surface) setFocusVisible(v bool) {
	if s.focusVisible == v || s.IsDisposed() {
		return
	}
	if v && s.opts.Disabled {
		return
	}
	s.SetState(func() { s.focusVisible = v })
}
