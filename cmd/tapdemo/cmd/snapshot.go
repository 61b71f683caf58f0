package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/go-drift/tappable/cmd/tapdemo/internal/config"
	"github.com/go-drift/tappable/cmd/tapdemo/internal/scene"
	"github.com/go-drift/tappable/pkg/gestures"
	"github.com/go-drift/tappable/pkg/graphics"
	"github.com/go-drift/tappable/pkg/haptics"
	"github.com/go-drift/tappable/pkg/registry"
	"github.com/go-drift/tappable/pkg/snapshot"
	taptest "github.com/go-drift/tappable/pkg/testing"
)

func init() {
	RegisterCommand(&Command{
		Name:  "snapshot",
		Short: "Render a scripted press to PNG",
		Long: `Press a surface on a virtual clock and render the result to PNG.

The mouse goes down at the center of the target surface and the clock
advances by --at. With --release the pointer is lifted before rendering,
which shows the minimum active duration at work.

Flags:
  --out FILE        Output path (default: tapdemo.png)
  --target LABEL    Surface to press (default: first enabled surface)
  --at DURATION     Time between press and capture (default: 80ms)
  --release         Lift the pointer before capturing
  --scale N         Enlarge the image by N (default: 2)`,
		Usage: "tapdemo snapshot [--out FILE] [--target LABEL] [--at DURATION] [--release] [--scale N]",
		Run:   runSnapshot,
	})
}

type snapshotOptions struct {
	out     string
	target  string
	at      time.Duration
	release bool
	scale   int
}

func parseSnapshotArgs(args []string) (snapshotOptions, error) {
	opts := snapshotOptions{out: "tapdemo.png", at: 80 * time.Millisecond, scale: 2}
	value := func(i int, name string) (string, error) {
		if i+1 >= len(args) {
			return "", fmt.Errorf("%s requires a value", name)
		}
		return args[i+1], nil
	}
	for i := 0; i < len(args); i++ {
		switch arg := args[i]; arg {
		case "--out", "--target", "--at", "--scale":
			v, err := value(i, arg)
			if err != nil {
				return opts, err
			}
			i++
			switch arg {
			case "--out":
				opts.out = v
			case "--target":
				opts.target = v
			case "--at":
				d, err := time.ParseDuration(v)
				if err != nil || d < 0 {
					return opts, fmt.Errorf("invalid --at %q", v)
				}
				opts.at = d
			case "--scale":
				n, err := strconv.Atoi(v)
				if err != nil || n < 1 {
					return opts, fmt.Errorf("invalid --scale %q", v)
				}
				opts.scale = n
			}
		case "--release":
			opts.release = true
		default:
			return opts, fmt.Errorf("unknown flag %q", arg)
		}
	}
	return opts, nil
}

func runSnapshot(args []string) error {
	opts, err := parseSnapshotArgs(args)
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	sched := taptest.NewVirtualScheduler()
	sc, err := scene.Build(registry.New(sched), cfg, haptics.Silent{}, nil)
	if err != nil {
		return err
	}
	defer sc.Dispose()

	target, err := pickTarget(sc, opts.target)
	if err != nil {
		return err
	}
	c := target.Config
	pos := scene.CellCenter(c.X+c.Width/2, c.Y+c.Height/2)
	sc.Router.Route(gestures.PointerEvent{PointerID: 1, Position: pos, Phase: gestures.PointerPhaseHover, Kind: gestures.PointerKindMouse})
	sc.Router.Route(gestures.PointerEvent{PointerID: 1, Position: pos, Phase: gestures.PointerPhaseDown, Kind: gestures.PointerKindMouse})
	if opts.release {
		sc.Router.Route(gestures.PointerEvent{PointerID: 1, Position: pos, Phase: gestures.PointerPhaseUp, Kind: gestures.PointerKindMouse})
	}
	sched.Advance(opts.at)

	frames := make([]snapshot.Frame, 0, len(sc.Items))
	for _, it := range sc.Items {
		frames = append(frames, snapshot.FrameOf(it.Surface, it.Label))
	}
	r := snapshot.NewRenderer(canvasSize(cfg))
	r.Scale = opts.scale
	if err := snapshot.SavePNG(opts.out, r.Render(frames)); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "%s: pressed %s for %s (active=%t)\n", opts.out, target.Label, opts.at, target.Surface.IsActive())
	return nil
}

func pickTarget(sc *scene.Scene, label string) (*scene.Item, error) {
	if label != "" {
		it, ok := sc.Find(label)
		if !ok {
			return nil, fmt.Errorf("unknown surface %q", label)
		}
		return it, nil
	}
	for _, it := range sc.Items {
		if !it.Config.Disabled {
			return it, nil
		}
	}
	return nil, fmt.Errorf("no enabled surface to press")
}

// canvasSize covers every surface plus a one-cell margin.
func canvasSize(cfg *config.Config) graphics.Size {
	w, h := 1, 1
	for _, s := range cfg.Surfaces {
		w = max(w, s.X+s.Width+1)
		h = max(h, s.Y+s.Height+1)
	}
	return graphics.Size{Width: float64(w) * scene.CellWidth, Height: float64(h) * scene.CellHeight}
}
