package tappable_test

import (
	"testing"
	"time"

	"github.com/go-drift/tappable/pkg/errors"
	"github.com/go-drift/tappable/pkg/gestures"
	"github.com/go-drift/tappable/pkg/graphics"
	"github.com/go-drift/tappable/pkg/press"
	"github.com/go-drift/tappable/pkg/registry"
	"github.com/go-drift/tappable/pkg/tappable"
	taptest "github.com/go-drift/tappable/pkg/testing"
)

var (
	left  = graphics.RectFromLTWH(0, 0, 50, 50)
	right = graphics.RectFromLTWH(100, 0, 50, 50)
)

func TestQuickTap_ActivatesOnReleaseForEffectDuration(t *testing.T) {
	tests := []struct {
		name   string
		delay  time.Duration
		effect time.Duration
	}{
		{name: "default", delay: 0, effect: press.DefaultEffectDuration},
		{name: "custom", delay: 300 * time.Millisecond, effect: 300 * time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tester := taptest.NewSurfaceTesterWithT(t)
			s := tester.Mount(left, tappable.Options{ActiveEffectDelay: tt.delay})

			id := tester.Down(s.Bounds().Center())
			tester.Advance(30 * time.Millisecond)
			if s.IsActive() {
				t.Fatal("active before the activation delay")
			}
			tester.Up(id)
			if !s.IsActive() {
				t.Fatal("expected feedback on release")
			}

			tester.Advance(tt.effect - time.Millisecond)
			if !s.IsActive() {
				t.Errorf("feedback cleared before %v", tt.effect)
			}
			tester.Advance(time.Millisecond)
			if s.IsActive() {
				t.Errorf("feedback still shown after %v", tt.effect)
			}
			if tester.Registry().Len() != 0 {
				t.Errorf("registry Len = %d, want 0", tester.Registry().Len())
			}
		})
	}
}

func TestLongPress_DeactivatesOnRelease(t *testing.T) {
	tester := taptest.NewSurfaceTesterWithT(t)
	s := tester.Mount(left, tappable.Options{})

	id := tester.Down(s.Bounds().Center())
	tester.Advance(press.ActivationDelay)
	if !s.IsActive() {
		t.Fatal("expected feedback after the activation delay")
	}
	tester.Advance(press.LongPressThreshold)
	tester.Up(id)

	if s.IsActive() {
		t.Error("expected feedback to clear on release")
	}
	if tester.Scheduler().Pending() != 0 {
		t.Errorf("Pending = %d, want 0", tester.Scheduler().Pending())
	}
}

func TestShortActivePress_KeepsFeedbackForRemainder(t *testing.T) {
	tester := taptest.NewSurfaceTesterWithT(t)
	s := tester.Mount(left, tappable.Options{})

	id := tester.Down(s.Bounds().Center())
	tester.Advance(press.ActivationDelay)
	elapsed := 40 * time.Millisecond
	tester.Advance(elapsed)
	tester.Up(id)

	remainder := press.DefaultEffectDuration - elapsed
	tester.Advance(remainder - time.Millisecond)
	if !s.IsActive() {
		t.Fatalf("feedback cleared before %v", remainder)
	}
	tester.Advance(time.Millisecond)
	if s.IsActive() {
		t.Errorf("feedback still shown %v after release", remainder)
	}
}

func TestDrag_CancelsFeedback(t *testing.T) {
	tests := []struct {
		name  string
		hold  time.Duration
		delta graphics.Offset
	}{
		{name: "pending horizontal", hold: 10 * time.Millisecond, delta: graphics.Offset{X: 21}},
		{name: "pending vertical", hold: 0, delta: graphics.Offset{Y: -25}},
		{name: "active", hold: 80 * time.Millisecond, delta: graphics.Offset{X: 30, Y: 30}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tester := taptest.NewSurfaceTesterWithT(t)
			clicks := 0
			s := tester.Mount(graphics.RectFromLTWH(0, 0, 200, 200), tappable.Options{OnClick: func() { clicks++ }})

			start := s.Bounds().Center()
			id := tester.Down(start)
			tester.Advance(tt.hold)
			tester.Move(id, graphics.Offset{X: start.X + tt.delta.X, Y: start.Y + tt.delta.Y})

			if s.IsActive() {
				t.Error("active after drag")
			}
			if s.Phase() != tappable.PhaseDragging {
				t.Errorf("Phase = %v, want dragging", s.Phase())
			}
			if tester.Scheduler().Pending() != 0 {
				t.Errorf("Pending = %d, want 0", tester.Scheduler().Pending())
			}
			if tester.Registry().Len() != 0 {
				t.Errorf("registry Len = %d, want 0", tester.Registry().Len())
			}

			tester.Advance(time.Second)
			tester.Up(id)
			tester.Advance(time.Second)
			if s.IsActive() {
				t.Error("drag release showed feedback")
			}
			if clicks != 0 {
				t.Errorf("clicks = %d, want 0", clicks)
			}
			if s.Phase() != tappable.PhaseIdle {
				t.Errorf("Phase = %v after release, want idle", s.Phase())
			}
		})
	}
}

func TestDrag_AtThresholdIsNotDrag(t *testing.T) {
	tester := taptest.NewSurfaceTesterWithT(t)
	clicks := 0
	s := tester.Mount(graphics.RectFromLTWH(0, 0, 200, 200), tappable.Options{OnClick: func() { clicks++ }})

	start := s.Bounds().Center()
	id := tester.Down(start)
	tester.Move(id, graphics.Offset{X: start.X + press.DragThreshold, Y: start.Y - press.DragThreshold})
	tester.Advance(press.ActivationDelay)
	if !s.IsActive() {
		t.Error("expected feedback when movement stays within the threshold")
	}
	tester.Up(id)
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
}

func TestMultiTouch_ClearsAndPreventsActivation(t *testing.T) {
	tester := taptest.NewSurfaceTesterWithT(t)
	clicks := 0
	onClick := func() { clicks++ }
	a := tester.Mount(left, tappable.Options{OnClick: onClick})
	b := tester.Mount(right, tappable.Options{OnClick: onClick})

	first := tester.Down(a.Bounds().Center())
	tester.Advance(press.ActivationDelay)
	if !a.IsActive() {
		t.Fatal("expected a active")
	}

	second := tester.Down(b.Bounds().Center())
	if tester.ActiveCount() != 0 {
		t.Fatalf("ActiveCount = %d after second contact, want 0", tester.ActiveCount())
	}
	tester.Advance(time.Second)
	if tester.ActiveCount() != 0 {
		t.Errorf("ActiveCount = %d while both contacts are down", tester.ActiveCount())
	}

	tester.Up(first)
	tester.Up(second)
	tester.Advance(time.Second)
	if tester.ActiveCount() != 0 {
		t.Errorf("ActiveCount = %d after release", tester.ActiveCount())
	}
	if clicks != 0 {
		t.Errorf("clicks = %d, want 0", clicks)
	}
	if tester.Registry().Len() != 0 || tester.Scheduler().Pending() != 0 {
		t.Errorf("leftover entries=%d timers=%d", tester.Registry().Len(), tester.Scheduler().Pending())
	}

	// The next single-contact gesture works normally.
	tester.Tap(a)
	if !a.IsActive() || clicks != 1 {
		t.Errorf("after multi-touch: active=%v clicks=%d", a.IsActive(), clicks)
	}
}

func TestMultiTouch_SameSurface(t *testing.T) {
	tester := taptest.NewSurfaceTesterWithT(t)
	clicks := 0
	s := tester.Mount(graphics.RectFromLTWH(0, 0, 200, 200), tappable.Options{OnClick: func() { clicks++ }})

	first := tester.Down(graphics.Offset{X: 20, Y: 20})
	second := tester.Down(graphics.Offset{X: 150, Y: 150})
	tester.Advance(time.Second)
	if s.IsActive() {
		t.Error("two-finger press showed feedback")
	}
	tester.Up(second)
	tester.Up(first)
	tester.Advance(time.Second)
	if s.IsActive() || clicks != 0 {
		t.Errorf("active=%v clicks=%d, want neither", s.IsActive(), clicks)
	}
}

func TestAtMostOneActive(t *testing.T) {
	tester := taptest.NewSurfaceTesterWithT(t)
	rects := []graphics.Rect{
		graphics.RectFromLTWH(0, 0, 40, 40),
		graphics.RectFromLTWH(50, 0, 40, 40),
		graphics.RectFromLTWH(100, 0, 40, 40),
	}
	var surfaces []*tappable.Surface
	worst := 0
	for _, r := range rects {
		s := tester.Mount(r, tappable.Options{ActiveEffectDelay: 400 * time.Millisecond})
		s.AddListener(func() { worst = max(worst, tester.ActiveCount()) })
		surfaces = append(surfaces, s)
	}

	steps := []func(){
		func() { tester.Tap(surfaces[0]) },
		func() { tester.Advance(20 * time.Millisecond) },
		func() { tester.Tap(surfaces[1]) },
		func() { tester.Hold(surfaces[2], 90*time.Millisecond) },
		func() { tester.Tap(surfaces[0]) },
		func() { tester.Advance(75 * time.Millisecond) },
		func() { tester.Hold(surfaces[1], 300*time.Millisecond) },
		func() { tester.Tap(surfaces[2]) },
		func() { tester.Tap(surfaces[1]) },
		func() { tester.Advance(time.Second) },
	}
	for i, step := range steps {
		step()
		if n := tester.ActiveCount(); n > 1 {
			t.Fatalf("step %d: %d surfaces active", i, n)
		}
		if n := tester.Registry().Len(); n > 1 {
			t.Fatalf("step %d: %d registry entries", i, n)
		}
	}
	if worst > 1 {
		t.Errorf("observed %d surfaces active at once", worst)
	}
	if tester.ActiveCount() != 0 {
		t.Errorf("ActiveCount = %d at the end", tester.ActiveCount())
	}
}

func TestSecondSurfacePurgesFirst(t *testing.T) {
	tester := taptest.NewSurfaceTesterWithT(t)
	a := tester.Mount(left, tappable.Options{})
	b := tester.Mount(right, tappable.Options{})

	tester.Tap(a)
	if !a.IsActive() {
		t.Fatal("expected a active")
	}
	id := tester.Down(b.Bounds().Center())
	if a.IsActive() {
		t.Error("a still active after b started")
	}
	if got := tester.Registry().IDs(); len(got) != 1 || got[0] != b.ID() {
		t.Errorf("registry IDs = %v, want [%s]", got, b.ID())
	}
	tester.Advance(press.ActivationDelay)
	tester.Up(id)
	if !b.IsActive() || a.IsActive() {
		t.Errorf("a=%v b=%v, want only b", a.IsActive(), b.IsActive())
	}
}

func TestRepeatedStart_IsIdempotent(t *testing.T) {
	tester := taptest.NewSurfaceTesterWithT(t)
	s := tester.Mount(left, tappable.Options{})

	s.GestureStart(gestures.StartEvent{Position: graphics.Offset{X: 5, Y: 5}, Contacts: 1})
	s.GestureStart(gestures.StartEvent{Position: graphics.Offset{X: 5, Y: 5}, Contacts: 1})

	if tester.Registry().Len() != 1 {
		t.Errorf("registry Len = %d, want 1", tester.Registry().Len())
	}
	if tester.Scheduler().Pending() != 1 {
		t.Errorf("Pending = %d, want 1", tester.Scheduler().Pending())
	}
	if s.Phase() != tappable.PhasePending {
		t.Errorf("Phase = %v, want pending", s.Phase())
	}
}

func TestDispose_LeavesNoTimersOrEntries(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*taptest.SurfaceTester, *tappable.Surface)
	}{
		{
			name: "pending activation",
			setup: func(tester *taptest.SurfaceTester, s *tappable.Surface) {
				tester.Down(s.Bounds().Center())
			},
		},
		{
			name: "release timer",
			setup: func(tester *taptest.SurfaceTester, s *tappable.Surface) {
				tester.Tap(s)
			},
		},
		{
			name: "active with ripple",
			setup: func(tester *taptest.SurfaceTester, s *tappable.Surface) {
				tester.Down(s.Bounds().Center())
				tester.Advance(press.ActivationDelay)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tester := taptest.NewSurfaceTesterWithT(t)
			s := tester.Mount(left, tappable.Options{ShowRipples: true})
			tt.setup(tester, s)
			if tester.Scheduler().Pending() == 0 {
				t.Fatal("setup scheduled nothing")
			}

			tester.Unmount(s)

			if tester.Scheduler().Pending() != 0 {
				t.Errorf("Pending = %d, want 0", tester.Scheduler().Pending())
			}
			if tester.Registry().Len() != 0 {
				t.Errorf("registry Len = %d, want 0", tester.Registry().Len())
			}
			if s.IsActive() {
				t.Error("disposed surface still active")
			}
		})
	}
}

func TestDispose_IgnoresLateInput(t *testing.T) {
	tester := taptest.NewSurfaceTesterWithT(t)
	clicks := 0
	s := tester.Mount(left, tappable.Options{OnClick: func() { clicks++ }})
	notified := 0
	s.AddListener(func() { notified++ })

	s.Dispose()
	s.GestureStart(gestures.StartEvent{Contacts: 1})
	s.GestureEnd(gestures.EndEvent{})
	s.PointerEnter()
	tester.Registry().ClearAllExcept("")
	tester.Advance(time.Second)

	if clicks != 0 || notified != 0 || s.IsActive() {
		t.Errorf("clicks=%d notified=%d active=%v after dispose", clicks, notified, s.IsActive())
	}
	if tester.Scheduler().Pending() != 0 {
		t.Errorf("Pending = %d, want 0", tester.Scheduler().Pending())
	}
}

func TestRipples(t *testing.T) {
	tester := taptest.NewSurfaceTesterWithT(t)
	s := tester.Mount(graphics.RectFromLTWH(100, 200, 80, 40), tappable.Options{ShowRipples: true})

	tester.TapAt(graphics.Offset{X: 110, Y: 215})
	tester.Advance(100 * time.Millisecond)
	tester.TapAt(graphics.Offset{X: 170, Y: 230})

	ripples := s.State().Ripples
	if len(ripples) != 2 {
		t.Fatalf("Ripples = %v, want 2", ripples)
	}
	if ripples[0].X != 10 || ripples[0].Y != 15 {
		t.Errorf("first ripple at (%v, %v), want (10, 15)", ripples[0].X, ripples[0].Y)
	}
	if ripples[1].X != 70 || ripples[1].Y != 30 {
		t.Errorf("second ripple at (%v, %v), want (70, 30)", ripples[1].X, ripples[1].Y)
	}
	if ripples[0].ID >= ripples[1].ID {
		t.Errorf("ripples out of order: %v", ripples)
	}

	tester.Advance(press.RippleDuration - 100*time.Millisecond)
	if got := len(s.State().Ripples); got != 1 {
		t.Errorf("Ripples = %d after first expiry, want 1", got)
	}
	tester.Advance(100 * time.Millisecond)
	if got := len(s.State().Ripples); got != 0 {
		t.Errorf("Ripples = %d after both expired, want 0", got)
	}
}

func TestRipples_OffByDefault(t *testing.T) {
	tester := taptest.NewSurfaceTesterWithT(t)
	s := tester.Mount(left, tappable.Options{})
	tester.Tap(s)
	if got := len(s.State().Ripples); got != 0 {
		t.Errorf("Ripples = %d, want 0", got)
	}
}

func TestHasActiveFalse_ClicksWithoutFeedback(t *testing.T) {
	tester := taptest.NewSurfaceTesterWithT(t)
	clicks := 0
	s := tester.Mount(left, tappable.Options{HasActive: tappable.Bool(false), OnClick: func() { clicks++ }})

	tester.Hold(s, 200*time.Millisecond)
	tester.Tap(s)

	if s.IsActive() || s.State().Active {
		t.Error("feedback shown with HasActive false")
	}
	if clicks != 2 {
		t.Errorf("clicks = %d, want 2", clicks)
	}
	if tester.Registry().Len() != 0 {
		t.Errorf("registry Len = %d, want 0", tester.Registry().Len())
	}
}

func TestDisabled(t *testing.T) {
	tester := taptest.NewSurfaceTesterWithT(t)
	clicks := 0
	s := tester.Mount(left, tappable.Options{Disabled: true, OnClick: func() { clicks++ }, StopPropagation: true})

	tester.HoverAt(s.Bounds().Center())
	tester.Hold(s, 200*time.Millisecond)
	tester.Tap(s)

	st := s.State()
	if st.Active || st.Hovered || st.HasActive || st.HasHover || !st.Disabled {
		t.Errorf("State = %+v, want passive", st)
	}
	if clicks != 0 {
		t.Errorf("clicks = %d, want 0", clicks)
	}
	if s.StopsPropagation() {
		t.Error("disabled surface stops propagation")
	}
	if s.FocusNode().CanRequestFocus {
		t.Error("disabled surface is focusable")
	}
}

func TestCancelledContact_NoClick(t *testing.T) {
	tester := taptest.NewSurfaceTesterWithT(t)
	clicks := 0
	s := tester.Mount(left, tappable.Options{OnClick: func() { clicks++ }})

	id := tester.Down(s.Bounds().Center())
	tester.Advance(press.ActivationDelay)
	tester.Cancel(id)

	if s.IsActive() || clicks != 0 {
		t.Errorf("active=%v clicks=%d after cancel", s.IsActive(), clicks)
	}
}

func TestPhaseTransitions(t *testing.T) {
	tester := taptest.NewSurfaceTesterWithT(t)
	s := tester.Mount(left, tappable.Options{})

	if s.Phase() != tappable.PhaseIdle {
		t.Fatalf("initial Phase = %v", s.Phase())
	}
	id := tester.Down(s.Bounds().Center())
	if s.Phase() != tappable.PhasePending {
		t.Errorf("Phase after down = %v, want pending", s.Phase())
	}
	tester.Advance(press.ActivationDelay)
	if s.Phase() != tappable.PhaseActive {
		t.Errorf("Phase after delay = %v, want active", s.Phase())
	}
	tester.Up(id)
	tester.Advance(press.DefaultEffectDuration)
	if s.Phase() != tappable.PhaseIdle {
		t.Errorf("Phase at end = %v, want idle", s.Phase())
	}
}

func TestListenersNotified(t *testing.T) {
	tester := taptest.NewSurfaceTesterWithT(t)
	s := tester.Mount(left, tappable.Options{})
	var seen []bool
	s.AddListener(func() { seen = append(seen, s.State().Active) })

	tester.Tap(s)
	tester.Advance(press.DefaultEffectDuration)

	if len(seen) != 2 || !seen[0] || seen[1] {
		t.Errorf("listener saw %v, want [true false]", seen)
	}
}

type recordingHandler struct {
	errs []*errors.TapError
}

func (h *recordingHandler) HandleError(err *errors.TapError) { h.errs = append(h.errs, err) }
func (h *recordingHandler) HandlePanic(*errors.PanicError)   {}

func TestNew_NegativeEffectDelay(t *testing.T) {
	rec := &recordingHandler{}
	errors.SetHandler(rec)
	t.Cleanup(func() { errors.SetHandler(nil) })

	reg := registry.New(taptest.NewVirtualScheduler())
	s := tappable.New(reg, tappable.Options{ActiveEffectDelay: -time.Second})
	defer s.Dispose()

	if got := s.Options().ActiveEffectDelay; got != press.DefaultEffectDuration {
		t.Errorf("ActiveEffectDelay = %v, want %v", got, press.DefaultEffectDuration)
	}
	if len(rec.errs) != 1 {
		t.Fatalf("reported %d errors, want 1", len(rec.errs))
	}
	if rec.errs[0].Kind != errors.KindConfig || rec.errs[0].Surface != s.ID() {
		t.Errorf("reported %v", rec.errs[0])
	}
}

func TestOptionDefaults(t *testing.T) {
	reg := registry.New(taptest.NewVirtualScheduler())
	s := tappable.New(reg, tappable.Options{OnClick: func() {}})
	defer s.Dispose()

	opts := s.Options()
	if opts.RenderAs != tappable.DefaultElement {
		t.Errorf("RenderAs = %q", opts.RenderAs)
	}
	if opts.Role != tappable.RoleButton {
		t.Errorf("Role = %q, want button", opts.Role)
	}
	if !*opts.HasHover || !*opts.HasActive {
		t.Error("expected hover and active enabled")
	}
	st := s.State()
	if st.ActiveMode != tappable.ModeBackground || st.HoverMode != tappable.ModeBackground || st.FocusVisibleMode != tappable.ModeOutline {
		t.Errorf("modes = %q %q %q", st.ActiveMode, st.HoverMode, st.FocusVisibleMode)
	}
	if s.ID() != registry.IDPrefix+"1" {
		t.Errorf("ID = %q", s.ID())
	}
}

func TestModeIsCustom(t *testing.T) {
	tests := []struct {
		mode tappable.Mode
		want bool
	}{
		{tappable.ModeOpacity, false},
		{tappable.ModeBackground, false},
		{tappable.ModeOutline, false},
		{"", false},
		{"my-pressed", true},
	}
	for _, tt := range tests {
		if got := tt.mode.IsCustom(); got != tt.want {
			t.Errorf("Mode(%q).IsCustom() = %v, want %v", tt.mode, got, tt.want)
		}
	}
}

func TestStateClasses(t *testing.T) {
	st := tappable.State{
		Active:           true,
		Hovered:          true,
		FocusVisible:     true,
		ActiveMode:       tappable.ModeOpacity,
		HoverMode:        "hover-x",
		FocusVisibleMode: tappable.ModeOutline,
	}
	got := st.Classes()
	want := []tappable.Mode{"hover-x", tappable.ModeOpacity, tappable.ModeOutline}
	if len(got) != len(want) {
		t.Fatalf("Classes = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Classes[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
