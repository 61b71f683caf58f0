// Package screen presents a scene on a terminal and feeds terminal mouse
// and keyboard input back into it.
package screen

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/go-drift/tappable/cmd/tapdemo/internal/scene"
	"github.com/go-drift/tappable/pkg/focus"
	"github.com/go-drift/tappable/pkg/gestures"
	"github.com/go-drift/tappable/pkg/tappable"
)

// mousePointer is the pointer id used for the terminal mouse.
const mousePointer = 1

// Styles used by Draw.
var (
	StyleBase     = tcell.StyleDefault
	StyleSurface  = tcell.StyleDefault.Background(tcell.ColorWhite).Foreground(tcell.ColorBlack)
	StyleHover    = tcell.StyleDefault.Background(tcell.ColorLightBlue).Foreground(tcell.ColorBlack)
	StyleActive   = tcell.StyleDefault.Background(tcell.ColorBlue).Foreground(tcell.ColorWhite)
	StyleDisabled = tcell.StyleDefault.Background(tcell.ColorGray).Foreground(tcell.ColorBlack)
	StyleStatus   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
)

// RippleRune marks a live ripple.
const RippleRune = '•'

// Poster queues work onto the UI loop.
type Poster interface {
	Post(fn func())
}

// App connects a tcell screen to a scene. HandleEvent and Draw must run on
// the UI loop; Pump runs on its own goroutine and posts events to the loop.
type App struct {
	screen tcell.Screen
	scene  *scene.Scene
	loop   Poster
	logger *log.Logger

	buttons tcell.ButtonMask
	status  string

	done     chan struct{}
	doneOnce sync.Once
}

// New creates an app drawing sc on s. The screen must be initialized.
func New(s tcell.Screen, sc *scene.Scene, loop Poster, logger *log.Logger) *App {
	if logger == nil {
		logger = log.Default()
	}
	s.EnableMouse(tcell.MouseMotionEvents)
	a := &App{
		screen: s,
		scene:  sc,
		loop:   loop,
		logger: logger,
		status: "Tab/arrows move focus, Enter/Space activate, Esc quits",
		done:   make(chan struct{}),
	}
	sc.AddListener(a.Draw)
	return a
}

// Done is closed when the user asks to quit.
func (a *App) Done() <-chan struct{} {
	return a.done
}

// Clicked records a click for the status line.
func (a *App) Clicked(label string) {
	a.status = "clicked " + label
	a.logger.Debug("click", "surface", label)
	a.Draw()
}

func (a *App) quit() {
	a.doneOnce.Do(func() { close(a.done) })
}

// Pump reads terminal events and posts them to the loop until ctx is
// done.
func (a *App) Pump(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		_ = a.screen.PostEvent(tcell.NewEventInterrupt(nil))
	}()
	for {
		ev := a.screen.PollEvent()
		if ev == nil || ctx.Err() != nil {
			return nil
		}
		if _, ok := ev.(*tcell.EventInterrupt); ok {
			continue
		}
		a.loop.Post(func() { a.HandleEvent(ev) })
	}
}

// HandleEvent applies one terminal event.
func (a *App) HandleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventMouse:
		a.handleMouse(ev)
	case *tcell.EventKey:
		a.handleKey(ev)
	case *tcell.EventResize:
		a.screen.Sync()
		a.Draw()
	}
}

func (a *App) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	pos := scene.CellCenter(x, y)
	pressed := ev.Buttons()&tcell.Button1 != 0
	wasPressed := a.buttons&tcell.Button1 != 0
	a.buttons = ev.Buttons()

	phase := gestures.PointerPhaseHover
	switch {
	case pressed && !wasPressed:
		phase = gestures.PointerPhaseDown
	case pressed:
		phase = gestures.PointerPhaseMove
	case wasPressed:
		phase = gestures.PointerPhaseUp
	}
	a.scene.Router.Route(gestures.PointerEvent{
		PointerID: mousePointer,
		Position:  pos,
		Phase:     phase,
		Kind:      gestures.PointerKindMouse,
	})
	if phase == gestures.PointerPhaseUp {
		// The release position doubles as a hover sample.
		a.scene.Router.Route(gestures.PointerEvent{
			PointerID: mousePointer,
			Position:  pos,
			Phase:     gestures.PointerPhaseHover,
			Kind:      gestures.PointerKindMouse,
		})
	}
}

func (a *App) handleKey(ev *tcell.EventKey) {
	if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
		a.quit()
		return
	}
	key, ok := translateKey(ev)
	if !ok {
		return
	}
	a.scene.Focus.HandleKey(key)
	a.Draw()
}

// translateKey maps a tcell key to a focus key event.
func translateKey(ev *tcell.EventKey) (*focus.KeyEvent, bool) {
	switch ev.Key() {
	case tcell.KeyEnter:
		return &focus.KeyEvent{Key: focus.KeyEnter}, true
	case tcell.KeyTab:
		return &focus.KeyEvent{Key: focus.KeyTab}, true
	case tcell.KeyBacktab:
		return &focus.KeyEvent{Key: focus.KeyTab, Shift: true}, true
	case tcell.KeyUp:
		return &focus.KeyEvent{Key: focus.KeyUp}, true
	case tcell.KeyDown:
		return &focus.KeyEvent{Key: focus.KeyDown}, true
	case tcell.KeyLeft:
		return &focus.KeyEvent{Key: focus.KeyLeft}, true
	case tcell.KeyRight:
		return &focus.KeyEvent{Key: focus.KeyRight}, true
	case tcell.KeyRune:
		if ev.Rune() == ' ' {
			return &focus.KeyEvent{Key: focus.KeySpace, Rune: ' '}, true
		}
		return &focus.KeyEvent{Key: focus.KeyOther, Rune: ev.Rune()}, true
	}
	return nil, false
}

// Draw repaints the whole scene.
func (a *App) Draw() {
	a.screen.Clear()
	for _, it := range a.scene.Items {
		drawItem(a.screen, it)
	}
	_, h := a.screen.Size()
	drawText(a.screen, 0, h-1, a.status, StyleStatus)
	a.screen.Show()
}

// StyleFor returns the cell style for a surface state.
func StyleFor(st tappable.State) tcell.Style {
	switch {
	case st.Disabled:
		return StyleDisabled
	case st.Active:
		return modeStyle(st.ActiveMode, StyleActive)
	case st.Hovered:
		return modeStyle(st.HoverMode, StyleHover)
	}
	return StyleSurface
}

func modeStyle(m tappable.Mode, style tcell.Style) tcell.Style {
	switch m {
	case tappable.ModeOpacity:
		return style.Dim(true)
	case tappable.ModeOutline:
		return StyleSurface.Bold(true)
	}
	return style
}

func drawItem(s tcell.Screen, it *scene.Item) {
	st := it.Surface.State()
	style := StyleFor(st)
	c := it.Config
	for y := c.Y; y < c.Y+c.Height; y++ {
		for x := c.X; x < c.X+c.Width; x++ {
			s.SetContent(x, y, ' ', nil, style)
		}
	}
	if st.FocusVisible {
		outline(s, c.X, c.Y, c.Width, c.Height, style.Bold(true))
	}
	label := it.Label
	if len(label) > c.Width {
		label = label[:c.Width]
	}
	drawText(s, c.X+(c.Width-len(label))/2, c.Y+c.Height/2, label, style)
	for _, r := range st.Ripples {
		x := c.X + int(r.X/scene.CellWidth)
		y := c.Y + int(r.Y/scene.CellHeight)
		s.SetContent(x, y, RippleRune, nil, style)
	}
}

func outline(s tcell.Screen, x, y, w, h int, style tcell.Style) {
	for i := x; i < x+w; i++ {
		s.SetContent(i, y, tcell.RuneHLine, nil, style)
		s.SetContent(i, y+h-1, tcell.RuneHLine, nil, style)
	}
	for j := y; j < y+h; j++ {
		s.SetContent(x, j, tcell.RuneVLine, nil, style)
		s.SetContent(x+w-1, j, tcell.RuneVLine, nil, style)
	}
}

func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		s.SetContent(x+i, y, r, nil, style)
	}
}
