package tappable_test

import (
	"testing"

	"github.com/go-drift/tappable/pkg/focus"
	"github.com/go-drift/tappable/pkg/graphics"
	"github.com/go-drift/tappable/pkg/registry"
	"github.com/go-drift/tappable/pkg/tappable"
	taptest "github.com/go-drift/tappable/pkg/testing"
)

func TestHandleKey_Activation(t *testing.T) {
	tests := []struct {
		name      string
		renderAs  string
		role      string
		key       focus.Key
		wantClick bool
	}{
		{name: "button enter", role: tappable.RoleButton, key: focus.KeyEnter, wantClick: true},
		{name: "button space", role: tappable.RoleButton, key: focus.KeySpace, wantClick: true},
		{name: "link enter", role: tappable.RoleLink, key: focus.KeyEnter, wantClick: true},
		{name: "link space", role: tappable.RoleLink, key: focus.KeySpace, wantClick: false},
		{name: "button escape", role: tappable.RoleButton, key: focus.KeyEscape, wantClick: false},
		{name: "no role", role: "checkbox", key: focus.KeyEnter, wantClick: false},
		{name: "native button", renderAs: "button", role: tappable.RoleButton, key: focus.KeyEnter, wantClick: false},
		{name: "native anchor", renderAs: "a", role: tappable.RoleLink, key: focus.KeyEnter, wantClick: false},
		{name: "custom span", renderAs: "span", role: tappable.RoleButton, key: focus.KeySpace, wantClick: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := registry.New(taptest.NewVirtualScheduler())
			clicks := 0
			s := tappable.New(reg, tappable.Options{
				RenderAs: tt.renderAs,
				Role:     tt.role,
				OnClick:  func() { clicks++ },
			})
			defer s.Dispose()

			event := &focus.KeyEvent{Key: tt.key}
			result := s.HandleKey(event)

			if got := clicks == 1; got != tt.wantClick {
				t.Errorf("clicked = %v, want %v", got, tt.wantClick)
			}
			if got := result == focus.KeyEventHandled; got != tt.wantClick {
				t.Errorf("handled = %v, want %v", got, tt.wantClick)
			}
			if event.DefaultPrevented() != tt.wantClick {
				t.Errorf("DefaultPrevented = %v, want %v", event.DefaultPrevented(), tt.wantClick)
			}
		})
	}
}

func TestHandleKey_CallsOnKeyDownAfterClick(t *testing.T) {
	reg := registry.New(taptest.NewVirtualScheduler())
	var calls []string
	s := tappable.New(reg, tappable.Options{
		OnClick: func() { calls = append(calls, "click") },
		OnKeyDown: func(e *focus.KeyEvent) {
			calls = append(calls, "keydown:"+e.Key.String())
		},
	})
	defer s.Dispose()

	s.HandleKey(&focus.KeyEvent{Key: focus.KeySpace})
	s.HandleKey(&focus.KeyEvent{Key: focus.KeyOther, Rune: 'x'})

	want := []string{"click", "keydown:Space", "keydown:Other"}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("calls[%d] = %q, want %q", i, calls[i], want[i])
		}
	}
}

func TestHandleKey_OnKeyDownPanicPropagates(t *testing.T) {
	reg := registry.New(taptest.NewVirtualScheduler())
	s := tappable.New(reg, tappable.Options{
		OnKeyDown: func(*focus.KeyEvent) { panic("boom") },
	})
	defer s.Dispose()

	defer func() {
		if r := recover(); r != "boom" {
			t.Errorf("recovered %v, want boom", r)
		}
	}()
	s.HandleKey(&focus.KeyEvent{Key: focus.KeyEnter})
	t.Error("expected panic")
}

func TestHandleKey_Disabled(t *testing.T) {
	reg := registry.New(taptest.NewVirtualScheduler())
	clicks, keys := 0, 0
	s := tappable.New(reg, tappable.Options{
		Disabled:  true,
		OnClick:   func() { clicks++ },
		OnKeyDown: func(*focus.KeyEvent) { keys++ },
	})
	defer s.Dispose()

	event := &focus.KeyEvent{Key: focus.KeyEnter}
	if s.HandleKey(event) != focus.KeyEventIgnored || event.DefaultPrevented() {
		t.Error("disabled surface intercepted Enter")
	}
	if clicks != 0 || keys != 0 {
		t.Errorf("clicks=%d keys=%d, want 0", clicks, keys)
	}
}

func TestFocusVisible_KeyboardTraversal(t *testing.T) {
	tester := taptest.NewSurfaceTesterWithT(t)
	clicks := 0
	a := tester.Mount(graphics.RectFromLTWH(0, 0, 50, 50), tappable.Options{OnClick: func() { clicks++ }})
	b := tester.Mount(graphics.RectFromLTWH(60, 0, 50, 50), tappable.Options{})

	tester.PressKey(focus.KeyTab)
	if !a.State().FocusVisible || b.State().FocusVisible {
		t.Fatalf("after Tab: a=%v b=%v", a.State().FocusVisible, b.State().FocusVisible)
	}

	if ev := tester.PressKey(focus.KeyEnter); !ev.DefaultPrevented() {
		t.Error("Enter on focused button not consumed")
	}
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}

	tester.PressKey(focus.KeyRight)
	if a.State().FocusVisible || !b.State().FocusVisible {
		t.Errorf("after ArrowRight: a=%v b=%v", a.State().FocusVisible, b.State().FocusVisible)
	}

	b.FocusNode().Unfocus()
	if b.State().FocusVisible {
		t.Error("focus-visible kept after unfocus")
	}
}

func TestFocusVisible_ProgrammaticFocus(t *testing.T) {
	tester := taptest.NewSurfaceTesterWithT(t)
	s := tester.Mount(graphics.RectFromLTWH(0, 0, 50, 50), tappable.Options{})

	s.FocusNode().RequestFocus()
	if s.State().FocusVisible {
		t.Error("programmatic focus showed focus-visible")
	}

	s.Focus(true)
	if !s.State().FocusVisible {
		t.Error("Focus(true) did not show focus-visible")
	}
	s.Blur()
	if s.State().FocusVisible {
		t.Error("Blur kept focus-visible")
	}
}
