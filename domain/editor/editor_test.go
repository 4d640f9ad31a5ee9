package editor

import (
	"log/slog"
	"testing"
)

var testLogger = slog.New(slog.NewTextHandler(discardWriter{}, nil))

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

// fakeRaster records crop requests without holding pixels.
type fakeRaster struct {
	w, h     int
	lastCrop [4]int
	cropages int
}

func (f *fakeRaster) Size() (int, int) { return f.w, f.h }

func (f *fakeRaster) Crop(x, y, w, h int) Raster {
	f.lastCrop = [4]int{x, y, w, h}
	f.cropages++
	return &fakeRaster{w: w, h: h}
}

// scopeRecorder counts gesture-scope acquisitions and releases.
type scopeRecorder struct {
	begins, ends int
}

func (s *scopeRecorder) BeginGesture() { s.begins++ }
func (s *scopeRecorder) EndGesture()   { s.ends++ }

func (s *scopeRecorder) balanced() bool { return s.begins == s.ends }

type overlayRecorder struct {
	visible bool
	rect    DisplayRect
	calls   int
}

func (o *overlayRecorder) sink(visible bool, rect DisplayRect) {
	o.visible = visible
	o.rect = rect
	o.calls++
}

// identityProj maps display 1:1 onto a 200x200 surface.
func identityProj() Projection {
	return Projection{IntrinsicW: 200, IntrinsicH: 200, Rendered: DisplayRect{W: 200, H: 200}}
}

func newTestEditor(scope *scopeRecorder, overlay *overlayRecorder) (*Editor, *fakeRaster) {
	var sink OverlayFunc
	if overlay != nil {
		sink = overlay.sink
	}
	var gs GestureScope
	if scope != nil {
		gs = scope
	}
	e := New(testLogger, DefaultConfig(), gs, sink)
	surf := &fakeRaster{w: 200, h: 200}
	e.Activate(surf, identityProj())
	return e, surf
}

// drawRegion drags out a region from a to b and releases.
func drawRegion(e *Editor, a, b Point) {
	e.PointerDown(a, Hit{Zone: HitOutside})
	e.PointerMove(b)
	e.PointerUp(b)
}

func TestEditor_TapProducesNoRegion(t *testing.T) {
	scope := &scopeRecorder{}
	e, _ := newTestEditor(scope, nil)

	e.PointerDown(Point{50, 50}, Hit{Zone: HitOutside})
	e.PointerMove(Point{53, 54})
	e.PointerMove(Point{55, 55})
	e.PointerUp(Point{55, 55})

	if e.IsDefined() {
		t.Fatalf("sub-threshold drag defined a region")
	}
	if e.Mode() != ModeIdle {
		t.Fatalf("mode after release = %v, want idle", e.Mode())
	}
	if !scope.balanced() {
		t.Fatalf("gesture scope leaked: begins=%d ends=%d", scope.begins, scope.ends)
	}
}

func TestEditor_DrawDefinesRegion(t *testing.T) {
	scope := &scopeRecorder{}
	overlay := &overlayRecorder{}
	e, _ := newTestEditor(scope, overlay)

	drawRegion(e, Point{50, 50}, Point{120, 90})

	r, ok := e.Region()
	if !ok {
		t.Fatalf("region not defined after drag")
	}
	if !regionsEqual(r, Region{X: 50, Y: 50, W: 70, H: 40}) {
		t.Fatalf("drawn region = %+v", r)
	}
	if !overlay.visible {
		t.Fatalf("overlay not revealed")
	}
	if e.Mode() != ModeIdle || !scope.balanced() {
		t.Fatalf("session not closed: mode=%v begins=%d ends=%d", e.Mode(), scope.begins, scope.ends)
	}
}

func TestEditor_DrawReversedCorner(t *testing.T) {
	e, _ := newTestEditor(nil, nil)
	drawRegion(e, Point{120, 90}, Point{50, 50})
	r, _ := e.Region()
	if !regionsEqual(r, Region{X: 50, Y: 50, W: 70, H: 40}) {
		t.Fatalf("reversed drag region = %+v", r)
	}
}

func TestEditor_DrawClampedToSurface(t *testing.T) {
	e, _ := newTestEditor(nil, nil)
	// Pointer far past the rendered box; ToSurface clamps to the edge.
	drawRegion(e, Point{50, 50}, Point{500, 500})
	r, _ := e.Region()
	if !regionsEqual(r, Region{X: 50, Y: 50, W: 150, H: 150}) {
		t.Fatalf("clamped region = %+v", r)
	}
}

func TestEditor_ResizeEast(t *testing.T) {
	e, _ := newTestEditor(nil, nil)
	drawRegion(e, Point{10, 10}, Point{60, 60})

	// Grab the east grip and pull 20px right.
	e.PointerDown(Point{60, 35}, Hit{Zone: HitHandle, Handle: HandleE})
	e.PointerMove(Point{80, 35})
	e.PointerUp(Point{80, 35})

	r, _ := e.Region()
	if !regionsEqual(r, Region{X: 10, Y: 10, W: 70, H: 50}) {
		t.Fatalf("east resize = %+v, want {10 10 70 50}", r)
	}
}

func TestEditor_ResizeNorthwestClampsAtOrigin(t *testing.T) {
	e, _ := newTestEditor(nil, nil)
	drawRegion(e, Point{10, 10}, Point{60, 60})

	e.PointerDown(Point{10, 10}, Hit{Zone: HitHandle, Handle: HandleN | HandleW})
	e.PointerMove(Point{0, 0})
	e.PointerUp(Point{0, 0})

	r, _ := e.Region()
	if !regionsEqual(r, Region{X: 0, Y: 0, W: 60, H: 60}) {
		t.Fatalf("nw resize = %+v, want {0 0 60 60}", r)
	}
}

func TestEditor_MoveClampsToSurface(t *testing.T) {
	e, _ := newTestEditor(nil, nil)
	drawRegion(e, Point{10, 10}, Point{60, 60})

	e.PointerDown(Point{30, 30}, Hit{Zone: HitBody})
	// Display point clamps to the surface edge; the move delta still lands
	// the region against the far bound.
	e.PointerMove(Point{400, 30})
	e.PointerUp(Point{400, 30})

	r, _ := e.Region()
	if !regionsEqual(r, Region{X: 150, Y: 10, W: 50, H: 50}) {
		t.Fatalf("move clamp = %+v, want {150 10 50 50}", r)
	}
}

func TestEditor_ManipulationDoesNotCompound(t *testing.T) {
	e, _ := newTestEditor(nil, nil)
	drawRegion(e, Point{10, 10}, Point{60, 60})

	e.PointerDown(Point{60, 35}, Hit{Zone: HitHandle, Handle: HandleE})
	// Many intermediate moves; only the final delta against the anchor counts.
	for x := 61.0; x <= 80; x++ {
		e.PointerMove(Point{x, 35})
	}
	e.PointerUp(Point{80, 35})

	r, _ := e.Region()
	if !regionsEqual(r, Region{X: 10, Y: 10, W: 70, H: 50}) {
		t.Fatalf("compounded resize = %+v, want {10 10 70 50}", r)
	}
}

func TestEditor_MalformedHandleIsNoop(t *testing.T) {
	e, _ := newTestEditor(nil, nil)
	drawRegion(e, Point{10, 10}, Point{60, 60})
	before, _ := e.Region()

	unknown, _ := ParseHandle("diag")
	e.PointerDown(Point{35, 35}, Hit{Zone: HitHandle, Handle: unknown})
	e.PointerMove(Point{90, 90})
	e.PointerUp(Point{90, 90})

	after, _ := e.Region()
	if !regionsEqual(before, after) {
		t.Fatalf("malformed handle moved region: %+v -> %+v", before, after)
	}
	if e.Mode() != ModeIdle {
		t.Fatalf("mode = %v after release", e.Mode())
	}
}

func TestEditor_CancelReleasesScope(t *testing.T) {
	scope := &scopeRecorder{}
	e, _ := newTestEditor(scope, nil)

	e.PointerDown(Point{50, 50}, Hit{Zone: HitOutside})
	e.PointerMove(Point{90, 90})
	e.PointerCancel()

	if e.Mode() != ModeIdle || !scope.balanced() {
		t.Fatalf("cancel left session open: mode=%v begins=%d ends=%d", e.Mode(), scope.begins, scope.ends)
	}
}

func TestEditor_DeactivateMidGestureReleasesScope(t *testing.T) {
	scope := &scopeRecorder{}
	e, _ := newTestEditor(scope, nil)

	e.PointerDown(Point{50, 50}, Hit{Zone: HitOutside})
	e.PointerMove(Point{90, 90})
	e.Deactivate()

	if !scope.balanced() {
		t.Fatalf("deactivate leaked listeners: begins=%d ends=%d", scope.begins, scope.ends)
	}
	if e.IsDefined() || e.Active() {
		t.Fatalf("deactivate did not clear state")
	}
}

func TestEditor_StaleDownClosesPriorSession(t *testing.T) {
	scope := &scopeRecorder{}
	e, _ := newTestEditor(scope, nil)

	e.PointerDown(Point{50, 50}, Hit{Zone: HitOutside})
	e.PointerMove(Point{90, 90})
	// The matching up never arrives; the next down must not leak the scope.
	e.PointerDown(Point{20, 20}, Hit{Zone: HitOutside})
	e.PointerUp(Point{20, 20})

	if scope.begins != 2 || !scope.balanced() {
		t.Fatalf("stale session handling: begins=%d ends=%d", scope.begins, scope.ends)
	}
	if e.Mode() != ModeIdle {
		t.Fatalf("mode = %v", e.Mode())
	}
}

func TestEditor_NewDrawDiscardsPriorRegion(t *testing.T) {
	e, _ := newTestEditor(nil, nil)
	drawRegion(e, Point{10, 10}, Point{60, 60})

	// Start a fresh draw elsewhere but never cross the threshold: the old
	// region must not come back.
	e.PointerDown(Point{100, 100}, Hit{Zone: HitOutside})
	e.PointerUp(Point{102, 102})

	if e.IsDefined() {
		t.Fatalf("prior region survived a fresh draw gesture")
	}
}

func TestEditor_CommitUndefinedIsIdentity(t *testing.T) {
	e, surf := newTestEditor(nil, nil)
	out := e.Commit()
	if out != Raster(surf) {
		t.Fatalf("commit of undefined region did not return the source")
	}
	if surf.cropages != 0 {
		t.Fatalf("commit of undefined region cropped anyway")
	}
}

func TestEditor_CommitCropsRegion(t *testing.T) {
	e, surf := newTestEditor(nil, nil)
	drawRegion(e, Point{0, 0}, Point{40, 40})

	out := e.Commit()
	if surf.lastCrop != [4]int{0, 0, 40, 40} {
		t.Fatalf("crop args = %v", surf.lastCrop)
	}
	if w, h := out.Size(); w != 40 || h != 40 {
		t.Fatalf("committed surface %dx%d, want 40x40", w, h)
	}
}

func TestEditor_PointerEventsIgnoredWhenInactive(t *testing.T) {
	scope := &scopeRecorder{}
	e := New(testLogger, DefaultConfig(), scope, nil)

	e.PointerDown(Point{50, 50}, Hit{Zone: HitOutside})
	e.PointerMove(Point{90, 90})
	e.PointerUp(Point{90, 90})

	if scope.begins != 0 || e.IsDefined() {
		t.Fatalf("inactive editor reacted to pointer input")
	}
}

func TestEditor_ScaledProjection(t *testing.T) {
	e := New(testLogger, DefaultConfig(), nil, nil)
	surf := &fakeRaster{w: 400, h: 400}
	// Rendered at half size with an offset.
	e.Activate(surf, Projection{
		IntrinsicW: 400, IntrinsicH: 400,
		Rendered: DisplayRect{X: 10, Y: 10, W: 200, H: 200},
	})

	drawRegion(e, Point{20, 20}, Point{70, 70})
	r, _ := e.Region()
	if !regionsEqual(r, Region{X: 20, Y: 20, W: 100, H: 100}) {
		t.Fatalf("scaled draw region = %+v", r)
	}
	d, ok := e.DisplayRegion()
	if !ok {
		t.Fatalf("display region missing")
	}
	if d.X != 20 || d.Y != 20 || d.W != 50 || d.H != 50 {
		t.Fatalf("display region = %+v", d)
	}
}

func TestEditor_AnySequenceEndsIdleWithScopeReleased(t *testing.T) {
	sequences := [][]func(e *Editor){
		{
			func(e *Editor) { e.PointerDown(Point{10, 10}, Hit{Zone: HitOutside}) },
			func(e *Editor) { e.PointerUp(Point{10, 10}) },
		},
		{
			func(e *Editor) { e.PointerDown(Point{10, 10}, Hit{Zone: HitOutside}) },
			func(e *Editor) { e.PointerMove(Point{80, 80}) },
			func(e *Editor) { e.PointerCancel() },
		},
		{
			func(e *Editor) { e.PointerMove(Point{80, 80}) },
			func(e *Editor) { e.PointerUp(Point{80, 80}) },
		},
		{
			func(e *Editor) { e.PointerDown(Point{10, 10}, Hit{Zone: HitOutside}) },
			func(e *Editor) { e.PointerMove(Point{80, 80}) },
			func(e *Editor) { e.PointerDown(Point{40, 40}, Hit{Zone: HitBody}) },
			func(e *Editor) { e.PointerCancel() },
			func(e *Editor) { e.PointerCancel() },
		},
	}
	for i, seq := range sequences {
		scope := &scopeRecorder{}
		e, _ := newTestEditor(scope, nil)
		for _, step := range seq {
			step(e)
		}
		if e.Mode() != ModeIdle {
			t.Fatalf("sequence %d: mode = %v, want idle", i, e.Mode())
		}
		if !scope.balanced() {
			t.Fatalf("sequence %d: scope begins=%d ends=%d", i, scope.begins, scope.ends)
		}
	}
}
