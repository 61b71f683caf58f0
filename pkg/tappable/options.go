package tappable

import (
	"fmt"
	"time"

	"github.com/go-drift/tappable/pkg/errors"
	"github.com/go-drift/tappable/pkg/focus"
	"github.com/go-drift/tappable/pkg/haptics"
	"github.com/go-drift/tappable/pkg/press"
)

// Mode selects how a state is presented. The predefined modes are
// understood by presentation layers; any other value is a custom class
// name passed through untouched.
type Mode string

const (
	ModeOpacity    Mode = "opacity"
	ModeBackground Mode = "background"
	ModeOutline    Mode = "outline"
)

// IsCustom reports whether m is a caller-supplied class name.
func (m Mode) IsCustom() bool {
	switch m {
	case ModeOpacity, ModeBackground, ModeOutline, "":
		return false
	}
	return true
}

// Roles recognized for keyboard activation.
const (
	RoleButton = "button"
	RoleLink   = "link"
)

// DefaultElement is the element a surface renders as when RenderAs is empty.
const DefaultElement = "div"

// nativeElements handle Enter and Space themselves.
var nativeElements = map[string]bool{
	"a":        true,
	"button":   true,
	"input":    true,
	"select":   true,
	"textarea": true,
}

// Ancestor is the nearest enclosing surface. Descendants suppress its
// feedback while they are hovered or pressed.
type Ancestor interface {
	SuppressFeedback()
	RestoreFeedback()
}

// Options configures a Surface. The zero value is a hoverable, pressable
// div with default timing.
type Options struct {
	// ActiveEffectDelay is how long active feedback stays visible after a
	// quick tap. Defaults to press.DefaultEffectDuration.
	ActiveEffectDelay time.Duration `yaml:"activeEffectDelay"`
	// HasHover enables hover feedback. Defaults to true.
	HasHover *bool `yaml:"hasHover"`
	// HasActive enables press feedback. Defaults to true.
	HasActive *bool `yaml:"hasActive"`

	ActiveMode       Mode `yaml:"activeMode"`
	HoverMode        Mode `yaml:"hoverMode"`
	FocusVisibleMode Mode `yaml:"focusVisibleMode"`

	// StopPropagation keeps outer surfaces from seeing this surface's
	// pointer events. Ignored inside a touch root.
	StopPropagation bool `yaml:"stopPropagation"`
	// RenderAs is the element type. Native interactive elements (a,
	// button, input, select, textarea) handle keyboard activation
	// themselves.
	RenderAs string `yaml:"renderAs"`
	// Role is the accessibility role. Custom elements with OnClick
	// default to "button".
	Role string `yaml:"role"`
	// Disabled turns the surface into a passive element.
	Disabled bool `yaml:"disabled"`
	// ShowRipples spawns a ripple marker at every press.
	ShowRipples bool `yaml:"showRipples"`

	OnClick   func()                `yaml:"-"`
	OnKeyDown func(*focus.KeyEvent) `yaml:"-"`
	// Haptics is played on every click. Defaults to haptics.Silent.
	Haptics haptics.Feedback `yaml:"-"`

	// Ancestor is the nearest enclosing surface, if any.
	Ancestor Ancestor `yaml:"-"`
	// InsideTouchRoot is true when an outer region captures gestures
	// itself.
	InsideTouchRoot bool `yaml:"-"`
}

// Bool returns a pointer to v, for the optional boolean options.
func Bool(v bool) *bool {
	return &v
}

// normalize fills in defaults. id is used for error reports only.
func (o Options) normalize(id string) Options {
	if o.ActiveEffectDelay < 0 {
		errors.Report(&errors.TapError{
			Op:      "tappable.New",
			Kind:    errors.KindConfig,
			Surface: id,
			Err: &errors.ConfigError{
				Field:  "activeEffectDelay",
				Value:  o.ActiveEffectDelay,
				Reason: fmt.Sprintf("must not be negative, using %v", press.DefaultEffectDuration),
			},
		})
	}
	o.ActiveEffectDelay = press.Effect(o.ActiveEffectDelay)
	if o.HasHover == nil {
		o.HasHover = Bool(true)
	}
	if o.HasActive == nil {
		o.HasActive = Bool(true)
	}
	if o.ActiveMode == "" {
		o.ActiveMode = ModeBackground
	}
	if o.HoverMode == "" {
		o.HoverMode = ModeBackground
	}
	if o.FocusVisibleMode == "" {
		o.FocusVisibleMode = ModeOutline
	}
	if o.RenderAs == "" {
		o.RenderAs = DefaultElement
	}
	if o.Role == "" && !nativeElements[o.RenderAs] && o.OnClick != nil {
		o.Role = RoleButton
	}
	if o.Haptics == nil {
		o.Haptics = haptics.Silent{}
	}
	return o
}
