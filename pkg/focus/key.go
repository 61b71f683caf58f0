package focus

// Key identifies a keyboard key relevant to focus and activation.
type Key int

const (
	// KeyOther is any key without a dedicated constant; see KeyEvent.Rune.
	KeyOther Key = iota
	KeyEnter
	KeySpace
	KeyTab
	KeyEscape
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
)

func (k Key) String() string {
	switch k {
	case KeyEnter:
		return "Enter"
	case KeySpace:
		return "Space"
	case KeyTab:
		return "Tab"
	case KeyEscape:
		return "Escape"
	case KeyUp:
		return "ArrowUp"
	case KeyDown:
		return "ArrowDown"
	case KeyLeft:
		return "ArrowLeft"
	case KeyRight:
		return "ArrowRight"
	default:
		return "Other"
	}
}

// KeyEvent is a key press delivered to the focused node.
type KeyEvent struct {
	Key   Key
	Rune  rune
	Shift bool

	defaultPrevented bool
}

// PreventDefault marks the event as consumed so that default handling
// (such as focus traversal) is skipped.
func (e *KeyEvent) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *KeyEvent) DefaultPrevented() bool {
	return e.defaultPrevented
}

// KeyEventResult indicates how a key event was handled.
type KeyEventResult int

const (
	// KeyEventIgnored indicates the event was not handled.
	KeyEventIgnored KeyEventResult = iota

	// KeyEventHandled indicates the event was consumed.
	KeyEventHandled
)
