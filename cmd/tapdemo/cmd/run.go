package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"

	"github.com/go-drift/tappable/cmd/tapdemo/internal/config"
	"github.com/go-drift/tappable/cmd/tapdemo/internal/scene"
	"github.com/go-drift/tappable/cmd/tapdemo/internal/screen"
	"github.com/go-drift/tappable/pkg/haptics"
	"github.com/go-drift/tappable/pkg/registry"
	"github.com/go-drift/tappable/pkg/schedule"
)

func init() {
	RegisterCommand(&Command{
		Name:  "run",
		Short: "Run the interactive terminal demo",
		Long: `Mount the configured surfaces in the terminal.

Press with the mouse to see delayed active feedback, drag to cancel it,
hover to see nested suppression. Tab and the arrow keys move focus;
Enter and Space activate the focused surface. Esc or Ctrl+C quits.

Flags:
  --log FILE   Write logs to FILE (the terminal is owned by the demo)
  --beep       Play a click tone through the speaker on every click`,
		Usage: "tapdemo run [--log FILE] [--beep]",
		Run:   runRun,
	})
}

type runOptions struct {
	logPath string
	beep    bool
}

func parseRunArgs(args []string) (runOptions, error) {
	var opts runOptions
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--log":
			if i+1 >= len(args) {
				return opts, fmt.Errorf("--log requires a file path")
			}
			opts.logPath = args[i+1]
			i++
		case "--beep":
			opts.beep = true
		default:
			return opts, fmt.Errorf("unknown flag %q", args[i])
		}
	}
	return opts, nil
}

func runRun(args []string) error {
	opts, err := parseRunArgs(args)
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(opts.logPath, io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	var fb haptics.Feedback = haptics.Silent{}
	if opts.beep || cfg.Haptics == config.HapticsBeep {
		b := haptics.NewBeep()
		if err := b.Init(); err != nil {
			// Non-fatal, the demo runs without sound.
			logger.Warn("audio unavailable", "err", err)
		} else {
			defer b.Close()
			fb = b
		}
	}

	scr, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := scr.Init(); err != nil {
		return err
	}
	defer scr.Fini()

	loop := schedule.NewLoop(0)
	reg := registry.New(loop)
	var app *screen.App
	sc, err := scene.Build(reg, cfg, fb, func(label string) { app.Clicked(label) })
	if err != nil {
		return err
	}
	app = screen.New(scr, sc, loop, logger)
	loop.Post(app.Draw)
	logger.Info("demo started", "surfaces", len(sc.Items), "haptics", cfg.Haptics)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return loop.Run(ctx) })
	g.Go(func() error { return app.Pump(ctx) })
	g.Go(func() error {
		select {
		case <-app.Done():
			cancel()
		case <-ctx.Done():
		}
		return nil
	})
	err = g.Wait()

	// The loop has stopped, so disposing here cannot race a callback.
	sc.Dispose()
	logger.Info("demo stopped")
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
