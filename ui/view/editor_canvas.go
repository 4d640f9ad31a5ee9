package view

import (
	"image"
	"log/slog"

	"github.com/anzohr/snapcrop/assets"
	"github.com/anzohr/snapcrop/domain/editor"
	"github.com/anzohr/snapcrop/domain/surface"
	"github.com/anzohr/snapcrop/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

const (
	// Max preview dimensions; scaling is proportional.
	maxPreviewW = 760
	maxPreviewH = 480

	// Grip hit tolerance and drawn grip size in display pixels.
	gripHitSize  = 10
	gripDrawSize = 8
)

// EditorCanvas hosts the surface preview and feeds pointer input to the crop
// editor. It implements editor.GestureScope: motion and release events are
// delivered only between BeginGesture and EndGesture, so presses that start
// outside an editing session never leak into it.
type EditorCanvas struct {
	logger *slog.Logger

	label     *LabelWidget
	prevPhoto *Img // last Tk photo instance, disposed before replacing

	ed        *editor.Editor
	base      image.Image // scaled surface as currently displayed
	inGesture bool
}

var _ editor.GestureScope = (*EditorCanvas)(nil)

// NewEditorCanvas creates the preview label and grids it at the given row.
func NewEditorCanvas(logger *slog.Logger, row int) *EditorCanvas {
	c := &EditorCanvas{logger: logger}
	photo := NewPhoto(Data(placeholderPNG()))
	c.prevPhoto = photo
	c.label = Label(Image(photo), Borderwidth(1), Relief("sunken"))
	Grid(c.label, Row(row), Column(0), Columnspan(4), Sticky("w"), Padx("0.4m"), Pady("0.4m"))
	return c
}

// Attach connects the crop editor and installs pointer bindings. Tk delivers
// drag events to the widget that received the press, so binding the preview
// label covers the whole drag even when the pointer leaves the window.
func (c *EditorCanvas) Attach(ed *editor.Editor) {
	if c == nil || c.label == nil {
		return
	}
	c.ed = ed
	Bind(c.label, "<ButtonPress-1>", Command(func(e *Event) { c.pointerDown(e.X, e.Y) }))
	Bind(c.label, "<B1-Motion>", Command(func(e *Event) { c.pointerMove(e.X, e.Y) }))
	Bind(c.label, "<ButtonRelease-1>", Command(func(e *Event) { c.pointerUp(e.X, e.Y) }))
	Bind(App, "<Escape>", Command(func() { c.pointerCancel() }))
}

// BeginGesture marks the start of pointer capture for one gesture.
func (c *EditorCanvas) BeginGesture() {
	if c == nil {
		return
	}
	c.inGesture = true
}

// EndGesture releases pointer capture.
func (c *EditorCanvas) EndGesture() {
	if c == nil {
		return
	}
	c.inGesture = false
}

// DisplaySurface scales the surface to the preview bounds, shows it and
// returns the projection between display and surface coordinates.
func (c *EditorCanvas) DisplaySurface(s *surface.Surface) editor.Projection {
	if c == nil || s == nil {
		return editor.Projection{}
	}
	w, h := s.Size()
	scaled := images.ScaleToFit(s.Image(), maxPreviewW, maxPreviewH)
	c.base = scaled
	c.show(scaled)
	sb := scaled.Bounds()
	return editor.Projection{
		IntrinsicW: float64(w),
		IntrinsicH: float64(h),
		Rendered:   editor.DisplayRect{W: float64(sb.Dx()), H: float64(sb.Dy())},
	}
}

// Overlay redraws the preview with or without the crop rectangle. It matches
// editor.OverlayFunc and is called by the editor whenever the region changes.
func (c *EditorCanvas) Overlay(visible bool, rect editor.DisplayRect) {
	if c == nil || c.base == nil {
		return
	}
	if !visible {
		c.show(c.base)
		return
	}
	sel := image.Rect(
		int(rect.X+0.5), int(rect.Y+0.5),
		int(rect.X+rect.W+0.5), int(rect.Y+rect.H+0.5),
	)
	var grips []image.Point
	for _, p := range editor.HandleAnchors(rect) {
		grips = append(grips, image.Point{X: int(p.X + 0.5), Y: int(p.Y + 0.5)})
	}
	c.show(images.RenderOverlay(c.base, sel, grips, gripDrawSize))
}

// Reset clears the preview back to the placeholder and drops the surface.
func (c *EditorCanvas) Reset() {
	if c == nil || c.label == nil {
		return
	}
	c.base = nil
	c.inGesture = false
	if c.prevPhoto != nil {
		c.prevPhoto.Delete()
	}
	c.prevPhoto = NewPhoto(Data(placeholderPNG()))
	c.label.Configure(Image(c.prevPhoto))
}

func placeholderPNG() []byte {
	if len(assets.PlaceholderPNG) > 0 {
		return assets.PlaceholderPNG
	}
	return images.EncodePNG(image.NewRGBA(image.Rect(0, 0, 320, 200)))
}

func (c *EditorCanvas) show(img image.Image) {
	if c.label == nil || img == nil {
		return
	}
	if c.prevPhoto != nil {
		c.prevPhoto.Delete()
	}
	photo := NewPhoto(Data(images.EncodePNG(img)))
	c.prevPhoto = photo
	c.label.Configure(Image(photo))
}

func (c *EditorCanvas) pointerDown(x, y int) {
	if c.ed == nil || !c.ed.Active() {
		return
	}
	p := editor.Point{X: float64(x), Y: float64(y)}
	hit := editor.Hit{Zone: editor.HitOutside}
	if rect, ok := c.ed.DisplayRegion(); ok {
		hit = editor.HitTest(p, rect, gripHitSize)
	}
	c.ed.PointerDown(p, hit)
}

func (c *EditorCanvas) pointerMove(x, y int) {
	if c.ed == nil || !c.inGesture {
		return
	}
	c.ed.PointerMove(editor.Point{X: float64(x), Y: float64(y)})
}

func (c *EditorCanvas) pointerUp(x, y int) {
	if c.ed == nil || !c.inGesture {
		return
	}
	c.ed.PointerUp(editor.Point{X: float64(x), Y: float64(y)})
}

// pointerCancel aborts an in-flight gesture (Escape key).
func (c *EditorCanvas) pointerCancel() {
	if c.ed == nil || !c.inGesture {
		return
	}
	c.ed.PointerCancel()
}
