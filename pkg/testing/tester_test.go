package testing

import (
	"testing"
	"time"

	"github.com/go-drift/tappable/pkg/graphics"
	"github.com/go-drift/tappable/pkg/press"
	"github.com/go-drift/tappable/pkg/tappable"
)

func TestSurfaceTester_MountAndCleanup(t *testing.T) {
	tester := NewSurfaceTester()
	a := tester.Mount(graphics.RectFromLTWH(0, 0, 50, 50), tappable.Options{})
	b := tester.Mount(graphics.RectFromLTWH(60, 0, 50, 50), tappable.Options{})

	if got := len(tester.Surfaces()); got != 2 {
		t.Fatalf("Surfaces = %d, want 2", got)
	}
	if got := len(tester.Router().Regions()); got != 2 {
		t.Fatalf("Regions = %d, want 2", got)
	}

	tester.Down(graphics.Offset{X: 10, Y: 10})
	tester.Cleanup()

	if !a.IsDisposed() || !b.IsDisposed() {
		t.Error("expected every surface disposed")
	}
	if tester.Scheduler().Pending() != 0 {
		t.Errorf("Pending = %d after cleanup", tester.Scheduler().Pending())
	}
	if tester.Registry().Len() != 0 {
		t.Errorf("registry Len = %d after cleanup", tester.Registry().Len())
	}
}

func TestSurfaceTester_TapHitsTarget(t *testing.T) {
	tester := NewSurfaceTesterWithT(t)
	clicks := map[string]int{}
	a := tester.Mount(graphics.RectFromLTWH(0, 0, 50, 50), tappable.Options{OnClick: func() { clicks["a"]++ }})
	tester.Mount(graphics.RectFromLTWH(60, 0, 50, 50), tappable.Options{OnClick: func() { clicks["b"]++ }})

	tester.Tap(a)
	tester.HoldAt(graphics.Offset{X: 70, Y: 10}, 200*time.Millisecond)
	tester.TapAt(graphics.Offset{X: 500, Y: 500})

	if clicks["a"] != 1 || clicks["b"] != 1 {
		t.Errorf("clicks = %v, want one each", clicks)
	}
}

func TestSurfaceTester_ActiveCount(t *testing.T) {
	tester := NewSurfaceTesterWithT(t)
	s := tester.Mount(graphics.RectFromLTWH(0, 0, 50, 50), tappable.Options{})

	id := tester.Down(s.Bounds().Center())
	if tester.ActiveCount() != 0 {
		t.Error("expected nothing active before the activation delay")
	}
	tester.Advance(press.ActivationDelay)
	if tester.ActiveCount() != 1 {
		t.Errorf("ActiveCount = %d, want 1", tester.ActiveCount())
	}
	tester.Up(id)
	tester.Advance(press.DefaultEffectDuration)
	if tester.ActiveCount() != 0 {
		t.Errorf("ActiveCount = %d after release, want 0", tester.ActiveCount())
	}
}
