package editor

import (
	"log/slog"
	"math"
)

// Mode enumerates the pointer gesture states.
type Mode int

const (
	// ModeIdle: no gesture in progress; a region may or may not exist.
	ModeIdle Mode = iota
	// ModeDrawing: first gesture, dragging out a new region.
	ModeDrawing
	// ModeManipulating: dragging an existing region's body or a handle.
	ModeManipulating
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeDrawing:
		return "drawing"
	case ModeManipulating:
		return "manipulating"
	default:
		return "unknown"
	}
}

// HitZone classifies what a pointer-down landed on. The host performs the
// hit test (it owns the rendered overlay) and reports the identity here.
type HitZone int

const (
	HitOutside HitZone = iota
	HitBody
	HitHandle
)

// Hit is the target identity delivered with a pointer-down event.
type Hit struct {
	Zone   HitZone
	Handle Handle // meaningful only when Zone == HitHandle
}

// Raster is the backing surface contract the editor needs: intrinsic pixel
// dimensions and a pixel-exact block copy.
type Raster interface {
	Size() (w, h int)
	Crop(x, y, w, h int) Raster
}

// GestureScope is the host-side resource acquired for the lifetime of one
// pointer gesture. Hosts typically register window-level move/up handlers in
// BeginGesture and unregister them in EndGesture. The editor guarantees the
// pair is balanced, including on Deactivate mid-gesture.
type GestureScope interface {
	BeginGesture()
	EndGesture()
}

// OverlayFunc receives the region's display rect after every mutation.
// visible is false while no region is defined or the editor is inactive.
type OverlayFunc func(visible bool, rect DisplayRect)

// Config tunes the editor geometry.
type Config struct {
	// MinRegionSize is the per-axis minimum in surface pixels.
	MinRegionSize float64
	// DragThreshold is the displacement in surface pixels beyond which a
	// draw gesture defines a region. A tap below it produces nothing.
	DragThreshold float64
}

// DefaultConfig returns the standard editor tuning.
func DefaultConfig() Config {
	return Config{MinRegionSize: 30, DragThreshold: 5}
}

func (c Config) withDefaults() Config {
	if c.MinRegionSize <= 0 {
		c.MinRegionSize = 30
	}
	if c.DragThreshold <= 0 {
		c.DragThreshold = 5
	}
	return c
}

// Editor is the interactive crop-region editor. All methods are synchronous
// and expected to be called from the host's UI event thread; nothing blocks.
type Editor struct {
	logger *slog.Logger
	cfg    Config

	surface Raster
	proj    Projection
	scope   GestureScope
	overlay OverlayFunc

	active  bool
	mode    Mode
	region  Region
	defined bool

	// Gesture session, valid while mode != ModeIdle.
	anchorPtr    Point
	anchorRegion Region
	activeHandle Handle
	inGesture    bool
}

// New constructs an editor. scope and overlay may be nil for headless use.
func New(logger *slog.Logger, cfg Config, scope GestureScope, overlay OverlayFunc) *Editor {
	return &Editor{logger: logger, cfg: cfg.withDefaults(), scope: scope, overlay: overlay}
}

// Activate enters editing mode on the given surface. Any prior region is
// cleared; replacing the surface (a new capture, a rotation) goes through
// Activate again.
func (e *Editor) Activate(surface Raster, proj Projection) {
	e.endGesture()
	e.surface = surface
	e.proj = proj
	e.mode = ModeIdle
	e.region = Region{}
	e.defined = false
	e.active = surface != nil
	if e.logger != nil {
		w, h := 0, 0
		if surface != nil {
			w, h = surface.Size()
		}
		e.logger.Debug("editor activated", "surface_w", w, "surface_h", h)
	}
	e.syncOverlay()
}

// Deactivate leaves editing mode, releasing any gesture-scoped resources and
// clearing the region. Safe to call repeatedly and on abnormal teardown.
func (e *Editor) Deactivate() {
	e.endGesture()
	e.mode = ModeIdle
	e.region = Region{}
	e.defined = false
	e.active = false
	e.surface = nil
	e.syncOverlay()
}

// Clear force-resets to the no-region state without deactivating.
func (e *Editor) Clear() {
	e.endGesture()
	e.mode = ModeIdle
	e.region = Region{}
	e.defined = false
	e.syncOverlay()
}

// SetProjection updates the rendered box (layout changes) and re-projects
// the overlay. Surface-space state is untouched.
func (e *Editor) SetProjection(proj Projection) {
	e.proj = proj
	e.syncOverlay()
}

// Projection returns the current display mapping.
func (e *Editor) Projection() Projection { return e.proj }

// Active reports whether the editor currently holds a surface.
func (e *Editor) Active() bool { return e.active }

// Mode returns the current gesture state.
func (e *Editor) Mode() Mode { return e.mode }

// IsDefined reports whether a crop region currently exists.
func (e *Editor) IsDefined() bool { return e.defined }

// Region returns the current region and whether it is defined.
func (e *Editor) Region() (Region, bool) { return e.region, e.defined }

// DisplayRegion returns the region projected into display space.
func (e *Editor) DisplayRegion() (DisplayRect, bool) {
	return e.proj.ToDisplay(e.region), e.defined
}

// PointerDown starts a gesture session. hit identifies what was pressed: a
// resize handle, the region body, or the surface outside the overlay.
func (e *Editor) PointerDown(display Point, hit Hit) {
	if !e.active {
		return
	}
	// A down while a session is still open means the matching up never
	// arrived; close the stale session before starting a new one.
	if e.mode != ModeIdle {
		e.finishSession()
	}
	sp := e.proj.ToSurface(display)
	if e.defined && hit.Zone != HitOutside {
		e.activeHandle = HandleMove
		if hit.Zone == HitHandle {
			e.activeHandle = hit.Handle
		}
		e.anchorPtr = sp
		e.anchorRegion = e.region
		e.mode = ModeManipulating
		e.beginGesture()
		if e.logger != nil {
			e.logger.Debug("gesture start", "mode", e.mode.String(), "handle", e.activeHandle.String())
		}
		return
	}
	// Drawing a new region discards any prior one.
	e.defined = false
	e.anchorPtr = sp
	e.anchorRegion = Region{}
	e.region = Region{X: sp.X, Y: sp.Y}
	e.activeHandle = HandleNone
	e.mode = ModeDrawing
	e.beginGesture()
	e.syncOverlay()
}

// PointerMove advances the active gesture. State is recomputed from the
// anchor and the current pointer, so arbitrarily many move events per
// gesture cannot accumulate error.
func (e *Editor) PointerMove(display Point) {
	if !e.active || e.mode == ModeIdle {
		return
	}
	sp := e.proj.ToSurface(display)
	dx := sp.X - e.anchorPtr.X
	dy := sp.Y - e.anchorPtr.Y
	surfW, surfH := e.surfaceSize()

	switch e.mode {
	case ModeDrawing:
		if !e.defined {
			if math.Abs(dx) <= e.cfg.DragThreshold && math.Abs(dy) <= e.cfg.DragThreshold {
				return
			}
			e.defined = true
			if e.logger != nil {
				e.logger.Debug("region defined", "dx", dx, "dy", dy)
			}
		}
		e.region = clampRegion(regionBetween(e.anchorPtr, sp), surfW, surfH, e.cfg.MinRegionSize)
	case ModeManipulating:
		next := applyHandle(e.anchorRegion, e.activeHandle, dx, dy, surfW, surfH)
		e.region = clampRegion(next, surfW, surfH, e.cfg.MinRegionSize)
	}
	e.syncOverlay()
}

// PointerUp ends the gesture and returns the machine to idle.
func (e *Editor) PointerUp(display Point) {
	if e.mode == ModeIdle {
		return
	}
	e.PointerMove(display)
	e.finishSession()
}

// PointerCancel aborts the gesture. The machine still returns to idle and
// the gesture scope is released; a drawing gesture that never crossed the
// threshold leaves no region behind.
func (e *Editor) PointerCancel() {
	if e.mode == ModeIdle {
		return
	}
	e.finishSession()
}

// Commit produces a new raster whose pixel dimensions equal the region's
// size, containing exactly the source content within the region. With no
// defined region it returns the source unchanged.
func (e *Editor) Commit() Raster {
	if !e.defined || e.surface == nil {
		return e.surface
	}
	x := int(math.Round(e.region.X))
	y := int(math.Round(e.region.Y))
	w := int(math.Round(e.region.W))
	h := int(math.Round(e.region.H))
	if e.logger != nil {
		e.logger.Info("commit crop", "x", x, "y", y, "w", w, "h", h)
	}
	return e.surface.Crop(x, y, w, h)
}

func (e *Editor) surfaceSize() (float64, float64) {
	if e.surface == nil {
		return 0, 0
	}
	w, h := e.surface.Size()
	return float64(w), float64(h)
}

func (e *Editor) finishSession() {
	drawn := e.mode == ModeDrawing
	e.mode = ModeIdle
	e.activeHandle = HandleNone
	if drawn && !e.defined {
		// A tap that never crossed the threshold produces no region.
		e.region = Region{}
	}
	e.endGesture()
	e.syncOverlay()
}

func (e *Editor) beginGesture() {
	if e.inGesture {
		return
	}
	e.inGesture = true
	if e.scope != nil {
		e.scope.BeginGesture()
	}
}

func (e *Editor) endGesture() {
	if !e.inGesture {
		return
	}
	e.inGesture = false
	if e.scope != nil {
		e.scope.EndGesture()
	}
}

func (e *Editor) syncOverlay() {
	if e.overlay == nil {
		return
	}
	e.overlay(e.active && e.defined, e.proj.ToDisplay(e.region))
}
