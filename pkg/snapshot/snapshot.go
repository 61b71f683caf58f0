// Package snapshot renders surface states to raster images.
//
// Snapshots are a debugging and documentation aid: each frame draws the
// surfaces' bounds, fills them according to their hover and active modes,
// outlines focus-visible surfaces and marks live ripples. Pixel output is
// deterministic so tests can assert on individual pixels.
package snapshot

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/go-drift/tappable/pkg/graphics"
	"github.com/go-drift/tappable/pkg/tappable"
)

// RippleRadius is the radius, in logical pixels, of a ripple marker.
const RippleRadius = 4

// Palette holds the colors a Renderer paints with.
type Palette struct {
	Background graphics.Color
	Surface    graphics.Color
	Hover      graphics.Color
	Active     graphics.Color
	Outline    graphics.Color
	Ripple     graphics.Color
	Label      graphics.Color
	Disabled   graphics.Color
}

// DefaultPalette is a light palette.
var DefaultPalette = Palette{
	Background: graphics.RGB(0xF5, 0xF5, 0xF5),
	Surface:    graphics.RGB(0xFF, 0xFF, 0xFF),
	Hover:      graphics.RGB(0xE3, 0xF2, 0xFD),
	Active:     graphics.RGB(0x90, 0xCA, 0xF9),
	Outline:    graphics.RGB(0x15, 0x65, 0xC0),
	Ripple:     graphics.RGBA(0x0D, 0x47, 0xA1, 0.6),
	Label:      graphics.ColorBlack,
	Disabled:   graphics.RGB(0xBD, 0xBD, 0xBD),
}

// Frame is one surface to draw.
type Frame struct {
	Bounds graphics.Rect
	State  tappable.State
	Label  string
}

// FrameOf captures s's current bounds and state.
func FrameOf(s *tappable.Surface, label string) Frame {
	return Frame{Bounds: s.Bounds(), State: s.State(), Label: label}
}

// Renderer draws frames onto an RGBA canvas.
type Renderer struct {
	Size    graphics.Size
	Palette Palette
	// Scale enlarges the output by an integer factor. Values below 1 are
	// treated as 1.
	Scale int
}

// NewRenderer creates a renderer with the default palette.
func NewRenderer(size graphics.Size) *Renderer {
	return &Renderer{Size: size, Palette: DefaultPalette, Scale: 1}
}

// Render draws frames in order; later frames paint over earlier ones.
func (r *Renderer) Render(frames []Frame) *image.RGBA {
	canvas := image.NewRGBA(image.Rect(0, 0, int(r.Size.Width), int(r.Size.Height)))
	fill(canvas, canvas.Bounds(), r.Palette.Background)
	for _, f := range frames {
		r.drawFrame(canvas, f)
	}
	if r.Scale <= 1 {
		return canvas
	}
	b := canvas.Bounds()
	scaled := image.NewRGBA(image.Rect(0, 0, b.Dx()*r.Scale, b.Dy()*r.Scale))
	draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), canvas, b, draw.Src, nil)
	return scaled
}

func (r *Renderer) drawFrame(canvas *image.RGBA, f Frame) {
	rect := toImageRect(f.Bounds)
	st := f.State
	base := r.Palette.Surface
	if st.Disabled {
		base = r.Palette.Disabled
	}
	fill(canvas, rect, base)

	if st.Hovered {
		r.applyMode(canvas, rect, st.HoverMode, r.Palette.Hover)
	}
	if st.Active {
		r.applyMode(canvas, rect, st.ActiveMode, r.Palette.Active)
	}
	if st.FocusVisible {
		r.applyMode(canvas, rect, st.FocusVisibleMode, r.Palette.Outline)
	}
	for _, rp := range st.Ripples {
		cx := int(f.Bounds.Left + rp.X)
		cy := int(f.Bounds.Top + rp.Y)
		disc(canvas, cx, cy, RippleRadius, r.Palette.Ripple, rect)
	}
	if f.Label != "" {
		label(canvas, rect, f.Label, r.Palette.Label)
	}
}

// applyMode paints one state. Custom modes have no known visual and are
// drawn like the background mode.
func (r *Renderer) applyMode(canvas *image.RGBA, rect image.Rectangle, mode tappable.Mode, c graphics.Color) {
	switch mode {
	case tappable.ModeOutline:
		border(canvas, rect, 2, c)
	case tappable.ModeOpacity:
		blend(canvas, rect, c.WithAlpha(0.5))
	default:
		fill(canvas, rect, c)
	}
}

func toImageRect(r graphics.Rect) image.Rectangle {
	return image.Rect(int(r.Left), int(r.Top), int(r.Right), int(r.Bottom))
}

func fill(dst *image.RGBA, r image.Rectangle, c graphics.Color) {
	draw.Draw(dst, r, image.NewUniform(c.NRGBA()), image.Point{}, draw.Src)
}

func blend(dst *image.RGBA, r image.Rectangle, c graphics.Color) {
	draw.Draw(dst, r, image.NewUniform(c.NRGBA()), image.Point{}, draw.Over)
}

func border(dst *image.RGBA, r image.Rectangle, width int, c graphics.Color) {
	fill(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+width), c)
	fill(dst, image.Rect(r.Min.X, r.Max.Y-width, r.Max.X, r.Max.Y), c)
	fill(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+width, r.Max.Y), c)
	fill(dst, image.Rect(r.Max.X-width, r.Min.Y, r.Max.X, r.Max.Y), c)
}

// disc blends a filled circle clipped to clip.
func disc(dst *image.RGBA, cx, cy, radius int, c graphics.Color, clip image.Rectangle) {
	src := c.NRGBA()
	for y := cy - radius; y <= cy+radius; y++ {
		for x := cx - radius; x <= cx+radius; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy > radius*radius || !(image.Point{X: x, Y: y}).In(clip) {
				continue
			}
			draw.Draw(dst, image.Rect(x, y, x+1, y+1), image.NewUniform(src), image.Point{}, draw.Over)
		}
	}
}

func label(dst *image.RGBA, r image.Rectangle, text string, c graphics.Color) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  dst.SubImage(r).(*image.RGBA),
		Src:  image.NewUniform(c.NRGBA()),
		Face: face,
	}
	width := d.MeasureString(text)
	x := fixed.I(r.Min.X) + (fixed.I(r.Dx())-width)/2
	y := fixed.I(r.Min.Y) + (fixed.I(r.Dy())+fixed.I(face.Ascent-face.Descent))/2
	d.Dot = fixed.Point26_6{X: x, Y: y}
	d.DrawString(text)
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// SavePNG writes img to path.
func SavePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close snapshot: %w", cerr)
		}
	}()
	return WritePNG(f, img)
}
