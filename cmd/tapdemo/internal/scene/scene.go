// Package scene builds the demo's surfaces from a configuration and wires
// them to a pointer router and focus manager.
package scene

import (
	"fmt"

	"github.com/go-drift/tappable/cmd/tapdemo/internal/config"
	"github.com/go-drift/tappable/pkg/core"
	"github.com/go-drift/tappable/pkg/focus"
	"github.com/go-drift/tappable/pkg/gestures"
	"github.com/go-drift/tappable/pkg/graphics"
	"github.com/go-drift/tappable/pkg/haptics"
	"github.com/go-drift/tappable/pkg/registry"
	"github.com/go-drift/tappable/pkg/tappable"
)

// Logical size of one terminal cell. Cells are scaled so that the drag
// threshold spans a few cells rather than a fraction of one.
const (
	CellWidth  = 8.0
	CellHeight = 16.0
)

// Item is one mounted surface.
type Item struct {
	Label   string
	Config  config.SurfaceConfig
	Surface *tappable.Surface
}

// Bounds returns the item's logical bounds.
func (it *Item) Bounds() graphics.Rect {
	return CellRect(it.Config.X, it.Config.Y, it.Config.Width, it.Config.Height)
}

// Scene owns the surfaces of one configuration. Disposing the scene
// disposes every surface.
type Scene struct {
	core.StateBase

	Items  []*Item
	Router *gestures.Router
	Focus  *focus.FocusManager
	Clicks map[string]int
}

// CellRect converts a cell rectangle to logical coordinates.
func CellRect(x, y, w, h int) graphics.Rect {
	return graphics.RectFromLTWH(float64(x)*CellWidth, float64(y)*CellHeight, float64(w)*CellWidth, float64(h)*CellHeight)
}

// CellCenter returns the logical center of cell (x, y).
func CellCenter(x, y int) graphics.Offset {
	return graphics.Offset{X: (float64(x) + 0.5) * CellWidth, Y: (float64(y) + 0.5) * CellHeight}
}

// Build mounts every configured surface on reg. onClick, if set, is
// called with the label of each clicked surface.
func Build(reg *registry.Registry, cfg *config.Config, fb haptics.Feedback, onClick func(label string)) (*Scene, error) {
	sc := &Scene{
		Router: gestures.NewRouter(),
		Focus:  focus.NewFocusManager(),
		Clicks: make(map[string]int),
	}
	byLabel := make(map[string]*Item, len(cfg.Surfaces))
	for _, entry := range cfg.Surfaces {
		opts := entry.Options
		opts.Haptics = fb
		if entry.Parent != "" {
			parent, ok := byLabel[entry.Parent]
			if !ok {
				sc.Dispose()
				return nil, fmt.Errorf("surface %q: unknown parent %q", entry.Label, entry.Parent)
			}
			opts.Ancestor = parent.Surface
		}
		label := entry.Label
		opts.OnClick = func() {
			sc.Clicks[label]++
			if onClick != nil {
				onClick(label)
			}
		}
		it := &Item{Label: label, Config: entry}
		it.Surface = core.UseController(sc, func() *tappable.Surface {
			return tappable.New(reg, opts)
		})
		it.Surface.AttachNode(it)
		sc.Router.Add(it.Surface)
		sc.OnDispose(func() { sc.Router.Remove(it.Surface) })
		sc.Focus.Register(it.Surface.FocusNode())
		sc.Items = append(sc.Items, it)
		byLabel[label] = it
	}
	return sc, nil
}

// Find returns the item with the given label.
func (sc *Scene) Find(label string) (*Item, bool) {
	for _, it := range sc.Items {
		if it.Label == label {
			return it, true
		}
	}
	return nil, false
}

// AddListener calls fn whenever any surface changes, until the scene is
// disposed.
func (sc *Scene) AddListener(fn func()) {
	for _, it := range sc.Items {
		core.UseListenable(sc, it.Surface, fn)
	}
}

// Dispose disposes every surface, innermost first.
func (sc *Scene) Dispose() {
	sc.StateBase.Dispose()
	sc.Items = nil
}
