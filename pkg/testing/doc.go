// Package testing provides deterministic test tooling for tappable
// surfaces: a virtual clock and scheduler, and a tester that mounts
// surfaces under one registry and simulates input.
//
// # Quick Start
//
// Mount a surface, drive it with gestures and advance virtual time:
//
//	func TestQuickTap(t *testing.T) {
//	    tester := taptest.NewSurfaceTesterWithT(t)
//	    s := tester.Mount(graphics.RectFromLTWH(0, 0, 100, 40), tappable.Options{})
//
//	    tester.Tap(s)
//	    if !s.IsActive() {
//	        t.Fatal("expected feedback on release")
//	    }
//
//	    tester.Advance(press.DefaultEffectDuration)
//	    if s.IsActive() {
//	        t.Error("expected feedback to clear after the effect duration")
//	    }
//	}
//
// # Virtual Time
//
// Nothing fires until Advance is called. Timers run in deadline order and
// see the clock set to their own deadline:
//
//	tester.Advance(press.ActivationDelay)
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import taptest "github.com/go-drift/tappable/pkg/testing"
package testing
