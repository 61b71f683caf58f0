package tappable

// SuppressFeedback is called by a nested surface when it becomes hovered
// or pressed. Calls are counted; feedback comes back after the matching
// number of RestoreFeedback calls.
func (s *Surface) SuppressFeedback() {
	if s.IsDisposed() {
		return
	}
	s.suppressed++
	if s.suppressed > 1 {
		return
	}
	s.deactivate()
	s.SetState(nil)
}

// RestoreFeedback undoes one SuppressFeedback.
func (s *Surface) RestoreFeedback() {
	if s.IsDisposed() || s.suppressed == 0 {
		return
	}
	s.suppressed--
	if s.suppressed == 0 {
		s.SetState(nil)
	}
}

// Suppressed reports whether a nested surface is currently engaged.
func (s *Surface) Suppressed() bool {
	return s.suppressed > 0
}

// PointerEnter marks the surface hovered and suppresses its ancestor.
func (s *Surface) PointerEnter() {
	if !s.live() || s.hovered {
		return
	}
	s.holdHover()
	s.SetState(func() { s.hovered = true })
}

// PointerLeave clears hover and restores the ancestor.
func (s *Surface) PointerLeave() {
	if !s.live() || !s.hovered {
		return
	}
	s.releaseHover()
	s.SetState(func() { s.hovered = false })
}

func (s *Surface) holdHover() {
	if s.holdsHover || s.opts.Ancestor == nil {
		return
	}
	s.holdsHover = true
	s.opts.Ancestor.SuppressFeedback()
}

func (s *Surface) releaseHover() {
	if !s.holdsHover {
		return
	}
	s.holdsHover = false
	s.opts.Ancestor.RestoreFeedback()
}

func (s *Surface) holdPress() {
	if s.holdsPress || s.opts.Ancestor == nil {
		return
	}
	s.holdsPress = true
	s.opts.Ancestor.SuppressFeedback()
}

func (s *Surface) releasePress() {
	if !s.holdsPress {
		return
	}
	s.holdsPress = false
	s.opts.Ancestor.RestoreFeedback()
}
