package errors

import (
	"os"
	"sync"

	"github.com/charmbracelet/log"
)

var (
	stderrOnce   sync.Once
	stderrLogger *log.Logger
)

func defaultLogger() *log.Logger {
	stderrOnce.Do(func() {
		stderrLogger = log.NewWithOptions(os.Stderr, log.Options{
			Prefix:          "tappable",
			ReportTimestamp: true,
		})
	})
	return stderrLogger
}

// LogHandler is an ErrorHandler that writes errors to a structured logger.
type LogHandler struct {
	// Verbose enables detailed output including stack traces.
	Verbose bool
	// Logger receives the records. Defaults to a stderr logger.
	Logger *log.Logger
}

func (h *LogHandler) logger() *log.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return defaultLogger()
}

// HandleError logs a TapError.
func (h *LogHandler) HandleError(err *TapError) {
	if err == nil {
		return
	}
	keyvals := []any{"op", err.Op, "kind", err.Kind.String(), "err", err.Err}
	if err.Surface != "" {
		keyvals = append(keyvals, "surface", err.Surface)
	}
	if h.Verbose && err.StackTrace != "" {
		keyvals = append(keyvals, "stack", err.StackTrace)
	}
	h.logger().Error("tappable error", keyvals...)
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	keyvals := []any{"value", err.Value}
	if err.Op != "" {
		keyvals = append(keyvals, "op", err.Op)
	}
	if h.Verbose && err.StackTrace != "" {
		keyvals = append(keyvals, "stack", err.StackTrace)
	}
	h.logger().Error("tappable panic", keyvals...)
}
