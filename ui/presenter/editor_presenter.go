package presenter

import (
	"context"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/anzohr/snapcrop/config"
	"github.com/anzohr/snapcrop/domain/capture"
	"github.com/anzohr/snapcrop/domain/editor"
	"github.com/anzohr/snapcrop/domain/surface"
	"github.com/anzohr/snapcrop/ui/model"
)

// EditModel provides editing-enabled state access.
type EditModel interface {
	Enabled() bool
	SetEnabled(bool)
}

// SnapshotSource narrows what the presenter needs from the capture layer.
type SnapshotSource interface {
	Snapshot() (capture.Snapshot, error)
}

// CropEditor narrows the crop editor contract the presenter drives.
type CropEditor interface {
	Activate(surface editor.Raster, proj editor.Projection)
	Deactivate()
	Clear()
	IsDefined() bool
	Region() (editor.Region, bool)
	Commit() editor.Raster
}

// Asker narrows the vision client contract.
type Asker interface {
	Ask(ctx context.Context, model, prompt, imageB64 string) (string, error)
}

// EditorView updates UI elements affected by capture and crop actions.
// Mode label updates are owned solely by ModePresenter; this presenter
// does not mutate it directly.
type EditorView interface {
	DisplaySurface(s *surface.Surface) editor.Projection
	PreviewReset()
	ConfigEditable(bool)
	SetAnswer(string)
}

// EditorPresenter owns presentation logic for the capture/crop/ask workflow.
type EditorPresenter struct {
	logger *slog.Logger
	cfg    *config.Config
	model  EditModel
	crops  *model.CropModel
	snaps  SnapshotSource
	editor CropEditor
	vision Asker
	view   EditorView

	// Clipboard receives committed crops; nil disables copying.
	Clipboard func(image.Image) error

	current *surface.Surface

	mu      sync.Mutex
	pending []string // vision answers awaiting the next Tick
	askBusy bool
}

func NewEditorPresenter(logger *slog.Logger, cfg *config.Config, m EditModel, crops *model.CropModel, snaps SnapshotSource, ed CropEditor, vision Asker, view EditorView) *EditorPresenter {
	return &EditorPresenter{logger: logger, cfg: cfg, model: m, crops: crops, snaps: snaps, editor: ed, vision: vision, view: view}
}

// Capture grabs a fresh snapshot, displays it and activates the crop editor.
func (p *EditorPresenter) Capture() {
	if p == nil || p.model == nil || p.snaps == nil || p.editor == nil || p.view == nil {
		return
	}
	snap, err := p.snaps.Snapshot()
	if err != nil {
		if p.logger != nil {
			p.logger.Error("capture failed", slog.Any("error", err))
		}
		return
	}
	p.show(surface.FromImage(snap.Image))
	p.model.SetEnabled(true)
	p.view.ConfigEditable(false)
}

// Rotate turns the surface 90 degrees clockwise and restarts editing on it.
// Any in-progress region is discarded.
func (p *EditorPresenter) Rotate() {
	if p == nil || p.current == nil {
		return
	}
	p.show(p.current.RotateCW())
}

// Commit replaces the surface with the selected region, saves the crop to the
// output directory and copies it to the clipboard. Without a defined region
// this is a no-op.
func (p *EditorPresenter) Commit() {
	if p == nil || p.editor == nil || p.current == nil {
		return
	}
	if !p.editor.IsDefined() {
		return
	}
	region, _ := p.editor.Region()
	cropped, ok := p.editor.Commit().(*surface.Surface)
	if !ok {
		return
	}
	p.crops.RecordCrop(image.Rect(
		int(region.X), int(region.Y),
		int(region.X+region.W), int(region.Y+region.H),
	))
	p.show(cropped)
	p.persist(cropped)
	if p.Clipboard != nil {
		if err := p.Clipboard(cropped.Image()); err != nil && p.logger != nil {
			p.logger.Warn("clipboard copy failed", slog.Any("error", err))
		}
	}
}

// Ask sends the current surface to the vision model. The answer is queued and
// pushed to the view on a later Tick so the network call never blocks the UI.
func (p *EditorPresenter) Ask() {
	if p == nil || p.vision == nil || p.current == nil || p.cfg == nil {
		return
	}
	p.mu.Lock()
	if p.askBusy {
		p.mu.Unlock()
		return
	}
	p.askBusy = true
	p.mu.Unlock()

	payload, err := surface.ModelPayload(p.current, p.cfg.SendMaxDim)
	if err != nil {
		p.finishAsk("encode failed: " + err.Error())
		return
	}
	modelName, prompt := p.cfg.Model, p.cfg.Prompt
	go func() {
		answer, err := p.vision.Ask(context.Background(), modelName, prompt, payload)
		if err != nil {
			p.finishAsk("ask failed: " + err.Error())
			return
		}
		p.finishAsk(answer)
	}()
}

// Clear removes the crop region, keeping the surface and editing active.
func (p *EditorPresenter) Clear() {
	if p == nil || p.editor == nil {
		return
	}
	p.editor.Clear()
}

// Close deactivates editing and resets the preview. Idempotent.
func (p *EditorPresenter) Close() {
	if p == nil || p.model == nil || p.editor == nil || p.view == nil {
		return
	}
	if !p.model.Enabled() {
		return
	}
	p.editor.Deactivate()
	p.current = nil
	p.model.SetEnabled(false)
	p.view.PreviewReset()
	p.view.ConfigEditable(true)
}

// Tick flushes queued vision answers to the view. Call from the UI loop.
func (p *EditorPresenter) Tick() {
	if p == nil || p.view == nil {
		return
	}
	p.mu.Lock()
	if len(p.pending) == 0 {
		p.mu.Unlock()
		return
	}
	last := p.pending[len(p.pending)-1]
	p.pending = p.pending[:0]
	p.mu.Unlock()
	p.view.SetAnswer(last)
}

// Surface returns the surface currently under edit (may be nil).
func (p *EditorPresenter) Surface() *surface.Surface {
	if p == nil {
		return nil
	}
	return p.current
}

func (p *EditorPresenter) show(s *surface.Surface) {
	p.current = s
	proj := p.view.DisplaySurface(s)
	p.editor.Activate(s, proj)
}

func (p *EditorPresenter) persist(s *surface.Surface) {
	if p.cfg == nil || p.cfg.OutputDir == "" {
		return
	}
	if err := os.MkdirAll(p.cfg.OutputDir, 0o755); err != nil {
		if p.logger != nil {
			p.logger.Warn("output dir", slog.Any("error", err))
		}
		return
	}
	name := uuid.NewString() + "." + p.cfg.OutputFormat
	path := filepath.Join(p.cfg.OutputDir, name)
	if err := surface.Save(s, path, p.cfg.OutputFormat, p.cfg.OutputQuality, p.cfg.WebPLossless); err != nil {
		if p.logger != nil {
			p.logger.Error("save crop failed", slog.String("path", path), slog.Any("error", err))
		}
		return
	}
	if p.logger != nil {
		p.logger.Info("crop saved", slog.String("path", path))
	}
}

func (p *EditorPresenter) finishAsk(answer string) {
	p.mu.Lock()
	p.askBusy = false
	p.pending = append(p.pending, answer)
	p.mu.Unlock()
}
