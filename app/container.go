package app

import (
	"image"
	"image/draw"
	"log/slog"

	"github.com/anzohr/snapcrop/assets"
	"github.com/anzohr/snapcrop/config"
	"github.com/anzohr/snapcrop/domain/capture"
	"github.com/anzohr/snapcrop/domain/editor"
	"github.com/anzohr/snapcrop/domain/vision"
	"github.com/anzohr/snapcrop/ui/model"
	"github.com/anzohr/snapcrop/ui/presenter"
	"github.com/anzohr/snapcrop/ui/view"
)

// AppContainer assembles models, services, presenters and the root view.
type AppContainer struct {
	Config    *config.Config
	Logger    *slog.Logger
	Edit      *model.EditModel
	Session   *model.SessionModel
	Crops     *model.CropModel
	Snapshots capture.SnapshotService
	Vision    *vision.Client
	Editor    *editor.Editor
	RootView  *view.RootView

	// Presenters
	SessionPresenter *presenter.SessionPresenter
	ModePresenter    *presenter.ModePresenter
	EditorPresenter  *presenter.EditorPresenter
	Loop             *presenter.Loop
}

// BuildContainer constructs models, services and the root view. The editor and
// presenters are wired later by WirePresenters, once the Tk widgets exist.
func BuildContainer(cfg *config.Config, logger *slog.Logger, cfgPath string) *AppContainer {
	c := &AppContainer{Config: cfg, Logger: logger}
	c.Edit = &model.EditModel{}
	c.Session = model.NewSessionModel()
	c.Crops = model.NewCropModel()
	c.Snapshots = capture.NewSnapshotService(logger, sampleFallbackGrabber(logger))
	if client, err := vision.NewClient(cfg.ServerURL); err == nil {
		c.Vision = client
	} else if logger != nil {
		logger.Warn("vision client unavailable", slog.String("server", cfg.ServerURL), slog.Any("error", err))
	}
	c.RootView = view.NewRootView(cfg, cfgPath, logger)
	return c
}

// WirePresenters creates the crop editor bound to the view's gesture scope and
// overlay sink, then builds the presenters on top. Call after RootView.Build.
func (c *AppContainer) WirePresenters(schedule func()) {
	canvas := c.RootView.Canvas
	c.Editor = editor.New(c.Logger, editor.Config{
		MinRegionSize: float64(c.Config.MinRegionSize),
	}, canvas, canvas.Overlay)
	canvas.Attach(c.Editor)

	var asker presenter.Asker
	if c.Vision != nil {
		asker = c.Vision
	}
	c.EditorPresenter = presenter.NewEditorPresenter(
		c.Logger, c.Config, c.Edit, c.Crops, c.Snapshots, c.Editor, asker, c.RootView)
	c.EditorPresenter.Clipboard = copyImageToClipboard

	c.SessionPresenter = presenter.NewSessionPresenter(c.Session, c.Edit, c.RootView)
	c.ModePresenter = presenter.NewModePresenter(c.Editor, c.RootView)
	c.Loop = presenter.NewLoop(c.SessionPresenter, c.ModePresenter, c.EditorPresenter, schedule)
}

// sampleFallbackGrabber captures the screen, falling back to the embedded
// sample image when no capture backend is available (headless sessions).
func sampleFallbackGrabber(logger *slog.Logger) capture.Grabber {
	return func() (*image.RGBA, error) {
		img, err := capture.Grab()
		if err == nil {
			return img, nil
		}
		sample, serr := assets.PlaceholderImage()
		if serr != nil {
			return nil, err
		}
		if logger != nil {
			logger.Warn("screen grab failed, using sample image", slog.Any("error", err))
		}
		b := sample.Bounds()
		rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), sample, b.Min, draw.Src)
		return rgba, nil
	}
}
