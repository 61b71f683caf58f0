package cmd

import (
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/go-drift/tappable/pkg/errors"
)

// newLogger builds the CLI logger and routes tappable error reports to it.
// Records go to path when set, else to fallback.
func newLogger(path string, fallback io.Writer) (*log.Logger, func(), error) {
	out := fallback
	closeFn := func() {}
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		out = f
		closeFn = func() { _ = f.Close() }
	}
	logger := log.NewWithOptions(out, log.Options{
		Prefix:          "tapdemo",
		ReportTimestamp: true,
	})
	if global.verbose {
		logger.SetLevel(log.DebugLevel)
	}
	errors.SetHandler(&errors.LogHandler{Verbose: global.verbose, Logger: logger})
	return logger, closeFn, nil
}
