// Package errors provides structured error handling for tappable surfaces
// and the loops that drive them.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindConfig indicates an invalid option or configuration file value.
	KindConfig
	// KindScheduler indicates a timer or event loop failure.
	KindScheduler
	// KindInput indicates a malformed or unexpected input event.
	KindInput
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindScheduler:
		return "scheduler"
	case KindInput:
		return "input"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// TapError represents a structured error raised while driving surfaces.
type TapError struct {
	// Op is the operation that failed (e.g., "tappable.New").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Surface is the instance id of the surface involved, if any.
	Surface string
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *TapError) Error() string {
	if e.Surface != "" {
		return fmt.Sprintf("%s [%s] surface=%s: %v", e.Op, e.Kind, e.Surface, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *TapError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "schedule.Loop").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ConfigError reports a configuration value that failed validation.
type ConfigError struct {
	// Field is the option or yaml key that was rejected.
	Field string
	// Value is the rejected value.
	Value any
	// Reason explains the constraint that was violated.
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

// ErrorHandler receives errors reported by surfaces and loops.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *TapError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
