package presenter

import (
	"context"
	"errors"
	"image"
	"testing"
	"time"

	"github.com/anzohr/snapcrop/config"
	"github.com/anzohr/snapcrop/domain/capture"
	"github.com/anzohr/snapcrop/domain/editor"
	"github.com/anzohr/snapcrop/domain/surface"
	"github.com/anzohr/snapcrop/ui/model"
)

type mockModel struct{ enabled bool }

func (m *mockModel) Enabled() bool     { return m.enabled }
func (m *mockModel) SetEnabled(b bool) { m.enabled = b }

type mockSnaps struct {
	img  *image.RGBA
	err  error
	hits int
}

func (s *mockSnaps) Snapshot() (capture.Snapshot, error) {
	s.hits++
	if s.err != nil {
		return capture.Snapshot{}, s.err
	}
	return capture.Snapshot{Image: s.img, CapturedAt: time.Now(), Sequence: uint64(s.hits)}, nil
}

type mockEditor struct {
	activations, deactivations, clears, commits int
	lastSurface                                 editor.Raster
	defined                                     bool
	region                                      editor.Region
	committed                                   editor.Raster
}

func (e *mockEditor) Activate(s editor.Raster, proj editor.Projection) {
	e.activations++
	e.lastSurface = s
}
func (e *mockEditor) Deactivate()                   { e.deactivations++ }
func (e *mockEditor) Clear()                        { e.clears++ }
func (e *mockEditor) IsDefined() bool               { return e.defined }
func (e *mockEditor) Region() (editor.Region, bool) { return e.region, e.defined }
func (e *mockEditor) Commit() editor.Raster {
	e.commits++
	return e.committed
}

type mockAsker struct {
	answer string
	err    error
	calls  int
}

func (a *mockAsker) Ask(ctx context.Context, model, prompt, imageB64 string) (string, error) {
	a.calls++
	if a.err != nil {
		return "", a.err
	}
	return a.answer, nil
}

type mockEditorView struct {
	displays, resets, editableCalls int
	lastEditable                    bool
	lastAnswer                      string
}

func (v *mockEditorView) DisplaySurface(s *surface.Surface) editor.Projection {
	v.displays++
	w, h := s.Size()
	return editor.Projection{
		IntrinsicW: float64(w), IntrinsicH: float64(h),
		Rendered: editor.DisplayRect{W: float64(w), H: float64(h)},
	}
}
func (v *mockEditorView) PreviewReset()         { v.resets++ }
func (v *mockEditorView) ConfigEditable(b bool) { v.editableCalls++; v.lastEditable = b }
func (v *mockEditorView) SetAnswer(s string)    { v.lastAnswer = s }

func newTestPresenter(snaps *mockSnaps, ed *mockEditor, asker *mockAsker, view *mockEditorView) (*EditorPresenter, *mockModel) {
	cfg := config.DefaultConfig()
	cfg.OutputDir = "" // skip disk writes in tests
	m := &mockModel{}
	p := NewEditorPresenter(nil, cfg, m, model.NewCropModel(), snaps, ed, asker, view)
	return p, m
}

func TestEditorPresenter_CaptureActivatesEditing(t *testing.T) {
	snaps := &mockSnaps{img: image.NewRGBA(image.Rect(0, 0, 64, 48))}
	ed := &mockEditor{}
	view := &mockEditorView{}
	p, m := newTestPresenter(snaps, ed, &mockAsker{}, view)

	p.Capture()
	if !m.Enabled() || ed.activations != 1 || view.displays != 1 {
		t.Fatalf("capture failed: enabled=%v activations=%d displays=%d", m.Enabled(), ed.activations, view.displays)
	}
	if view.lastEditable || view.editableCalls != 1 {
		t.Fatalf("config should be locked while editing")
	}
	if p.Surface() == nil {
		t.Fatal("no current surface after capture")
	}
}

func TestEditorPresenter_CaptureErrorLeavesStateAlone(t *testing.T) {
	snaps := &mockSnaps{err: errors.New("boom")}
	ed := &mockEditor{}
	view := &mockEditorView{}
	p, m := newTestPresenter(snaps, ed, &mockAsker{}, view)

	p.Capture()
	if m.Enabled() || ed.activations != 0 || view.displays != 0 {
		t.Fatalf("error capture mutated state")
	}
	if p.Surface() != nil {
		t.Fatal("surface set despite error")
	}
}

func TestEditorPresenter_RotateReactivates(t *testing.T) {
	snaps := &mockSnaps{img: image.NewRGBA(image.Rect(0, 0, 40, 20))}
	ed := &mockEditor{}
	view := &mockEditorView{}
	p, _ := newTestPresenter(snaps, ed, &mockAsker{}, view)

	p.Rotate() // no surface yet
	if ed.activations != 0 {
		t.Fatal("rotate without surface should be a no-op")
	}

	p.Capture()
	p.Rotate()
	if ed.activations != 2 {
		t.Fatalf("activations = %d, want 2", ed.activations)
	}
	w, h := p.Surface().Size()
	if w != 20 || h != 40 {
		t.Fatalf("rotated size = %dx%d, want 20x40", w, h)
	}
}

func TestEditorPresenter_CommitReplacesSurface(t *testing.T) {
	snaps := &mockSnaps{img: image.NewRGBA(image.Rect(0, 0, 100, 100))}
	cropped := surface.New(30, 20)
	ed := &mockEditor{defined: true, region: editor.Region{X: 10, Y: 10, W: 30, H: 20}, committed: cropped}
	view := &mockEditorView{}
	p, _ := newTestPresenter(snaps, ed, &mockAsker{}, view)

	p.Capture()
	p.Commit()
	if ed.commits != 1 {
		t.Fatalf("commits = %d, want 1", ed.commits)
	}
	if p.Surface() != cropped {
		t.Fatal("surface not replaced by committed crop")
	}
	if ed.activations != 2 {
		t.Fatalf("editing should restart on the cropped surface, activations=%d", ed.activations)
	}
}

func TestEditorPresenter_CommitWithoutRegionIsNoop(t *testing.T) {
	snaps := &mockSnaps{img: image.NewRGBA(image.Rect(0, 0, 100, 100))}
	ed := &mockEditor{defined: false}
	view := &mockEditorView{}
	p, _ := newTestPresenter(snaps, ed, &mockAsker{}, view)

	p.Capture()
	before := p.Surface()
	p.Commit()
	if ed.commits != 0 || p.Surface() != before {
		t.Fatal("undefined commit should not touch the surface")
	}
}

func TestEditorPresenter_AskDeliversAnswerOnTick(t *testing.T) {
	snaps := &mockSnaps{img: image.NewRGBA(image.Rect(0, 0, 32, 32))}
	asker := &mockAsker{answer: "a red square"}
	view := &mockEditorView{}
	p, _ := newTestPresenter(snaps, &mockEditor{}, asker, view)

	p.Capture()
	p.Ask()

	deadline := time.Now().Add(2 * time.Second)
	for view.lastAnswer == "" && time.Now().Before(deadline) {
		p.Tick()
		time.Sleep(5 * time.Millisecond)
	}
	if view.lastAnswer != "a red square" {
		t.Fatalf("answer = %q", view.lastAnswer)
	}
	if asker.calls != 1 {
		t.Fatalf("asker calls = %d, want 1", asker.calls)
	}
}

func TestEditorPresenter_CloseIdempotent(t *testing.T) {
	snaps := &mockSnaps{img: image.NewRGBA(image.Rect(0, 0, 10, 10))}
	ed := &mockEditor{}
	view := &mockEditorView{}
	p, m := newTestPresenter(snaps, ed, &mockAsker{}, view)

	p.Capture()
	p.Close()
	if m.Enabled() || ed.deactivations != 1 || view.resets != 1 || !view.lastEditable {
		t.Fatalf("close failed: enabled=%v deactivations=%d resets=%d", m.Enabled(), ed.deactivations, view.resets)
	}
	p.Close()
	if ed.deactivations != 1 || view.resets != 1 {
		t.Fatal("close not idempotent")
	}
}

func TestEditorPresenter_ClearDelegates(t *testing.T) {
	ed := &mockEditor{}
	p, _ := newTestPresenter(&mockSnaps{}, ed, &mockAsker{}, &mockEditorView{})
	p.Clear()
	if ed.clears != 1 {
		t.Fatalf("clears = %d, want 1", ed.clears)
	}
}
