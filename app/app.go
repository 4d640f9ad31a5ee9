package app

import (
	"fmt"
	"log/slog"
	"time"

	. "modernc.org/tk9.0"

	"github.com/anzohr/snapcrop/config"
	"github.com/anzohr/snapcrop/debug"
	"github.com/anzohr/snapcrop/ui/theme"
	"github.com/anzohr/snapcrop/ui/view"
)

const (
	tick = 100 * time.Millisecond
)

type app struct {
	title   string
	width   int
	height  int
	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger

	container *AppContainer
	afterID   string
}

// NewApp creates the application shell and configures the Tk root window.
// cfgPath is where the config panel persists applied changes.
func NewApp(title string, width, height int, cfg *config.Config, cfgPath string, logger *slog.Logger) *app {
	a := &app{title: title, width: width, height: height, cfg: cfg, cfgPath: cfgPath, logger: logger}

	App.WmTitle(title)
	WmProtocol(App, "WM_DELETE_WINDOW", a.exitHandler)
	WmGeometry(App, fmt.Sprintf("%dx%d+100+100", width, height))
	return a
}

// Start builds the UI, wires the presenters and runs the Tk event loop.
// It blocks until the window is closed.
func (a *app) Start() {
	theme.InitStyles()

	c := BuildContainer(a.cfg, a.logger, a.cfgPath)
	a.container = c

	// Handlers resolve presenter fields at call time; the presenters are
	// wired right after Build, once the canvas widget exists.
	c.RootView.Build(view.Handlers{
		OnCapture: func() { c.EditorPresenter.Capture() },
		OnRotate:  func() { c.EditorPresenter.Rotate() },
		OnCommit:  func() { c.EditorPresenter.Commit() },
		OnAsk:     func() { c.EditorPresenter.Ask() },
		OnClear:   func() { c.EditorPresenter.Clear() },
		OnClose:   func() { c.EditorPresenter.Close() },
		OnExit:    a.exitHandler,
	})
	c.WirePresenters(a.scheduleUpdate)

	if a.cfg != nil && a.cfg.Debug {
		debug.StartGoroutineLogger(2*time.Second, a.logger)
		debug.StartMemLogger(2*time.Second, a.logger)
	}

	if a.logger != nil {
		a.logger.Info("ui ready", slog.String("title", a.title))
	}

	a.scheduleUpdate()
	App.Wait()
}

func (a *app) exitHandler() {
	if a.afterID != "" {
		TclAfterCancel(a.afterID)
		a.afterID = ""
	}
	if a.container != nil && a.container.EditorPresenter != nil {
		a.container.EditorPresenter.Close()
	}
	Destroy(App)
}

// scheduleUpdate arms the next tick using TclAfter to stay on Tk's event loop thread.
func (a *app) scheduleUpdate() {
	a.afterID = TclAfter(tick, func() {
		if a.container != nil && a.container.Loop != nil {
			a.container.Loop.Tick()
		}
	})
}
