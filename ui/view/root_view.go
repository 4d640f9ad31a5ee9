package view

import (
	"log/slog"
	"time"

	"github.com/anzohr/snapcrop/config"
	"github.com/anzohr/snapcrop/domain/editor"
	"github.com/anzohr/snapcrop/domain/surface"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// RootView composes the top-level application layout and wires UI callbacks.
// It owns high-level subviews but exposes minimal exported fields for presenters.
type RootView struct {
	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger

	// Subviews
	Session     SessionStats
	ConfigPanel ConfigPanel
	Canvas      *EditorCanvas
	Answer      AnswerPanel

	// Widgets
	StateLabel *LabelWidget
}

// Handlers carries the user-action callbacks the view invokes.
type Handlers struct {
	OnCapture func()
	OnRotate  func()
	OnCommit  func()
	OnAsk     func()
	OnClear   func()
	OnClose   func()
	OnExit    func()
}

func NewRootView(cfg *config.Config, cfgPath string, logger *slog.Logger) *RootView {
	return &RootView{cfg: cfg, cfgPath: cfgPath, logger: logger}
}

// Build constructs the layout. Handlers are invoked on user actions.
func (rv *RootView) Build(h Handlers) {
	if rv == nil {
		return
	}
	// Row 0: session stats, state label, buttons frame
	rv.Session = NewSessionStats(nil, 0, 0)
	rv.StateLabel = Label(Txt("Mode: off"), Borderwidth(1), Relief("ridge"))
	Grid(rv.StateLabel, Row(0), Column(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))

	btnFrame := Frame()
	Grid(btnFrame, Row(0), Column(4), Rowspan(4), Sticky("ne"), Padx("0.3m"), Pady("0.3m"))
	actions := []struct {
		label string
		fn    func()
	}{
		{"Capture", h.OnCapture},
		{"Rotate", h.OnRotate},
		{"Commit Crop", h.OnCommit},
		{"Ask Model", h.OnAsk},
		{"Clear Region", h.OnClear},
		{"Close", h.OnClose},
		{"Exit", h.OnExit},
	}
	for i, a := range actions {
		btn := Button(Txt(a.label), Command(a.fn))
		Grid(btn, In(btnFrame), Row(i), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	}

	// Config panel rows
	rv.ConfigPanel = NewConfigPanel(rv.cfg, rv.cfgPath, rv.logger)
	endRow := rv.ConfigPanel.Build(1)

	// Preview canvas and answer panel below the form.
	rv.Canvas = NewEditorCanvas(rv.logger, endRow)
	rv.Answer = NewAnswerPanel(endRow + 1)
}

// SetStateLabel updates the state label text.
func (rv *RootView) SetStateLabel(text string) {
	if rv != nil && rv.StateLabel != nil {
		rv.StateLabel.Configure(Txt(text))
	}
}

// SetConfigEditable toggles config panel editability.
func (rv *RootView) SetConfigEditable(enabled bool) {
	if rv != nil && rv.ConfigPanel != nil {
		rv.ConfigPanel.SetEditable(enabled)
	}
}

// DisplaySurface shows the surface in the preview and returns the projection
// mapping display coordinates to surface pixels.
func (rv *RootView) DisplaySurface(s *surface.Surface) editor.Projection {
	if rv == nil || rv.Canvas == nil {
		return editor.Projection{}
	}
	return rv.Canvas.DisplaySurface(s)
}

// PreviewReset clears the preview back to the placeholder.
func (rv *RootView) PreviewReset() {
	if rv != nil && rv.Canvas != nil {
		rv.Canvas.Reset()
	}
}

// SetAnswer displays the latest vision model answer.
func (rv *RootView) SetAnswer(text string) {
	if rv != nil && rv.Answer != nil {
		rv.Answer.SetAnswer(text)
	}
}

// SetSession updates both session and total editing durations.
func (rv *RootView) SetSession(session, total time.Duration) {
	if rv == nil || rv.Session == nil {
		return
	}
	rv.Session.SetSession(session)
	rv.Session.SetTotal(total)
}

// ConfigEditable redirects to SetConfigEditable to satisfy the presenter contract.
func (rv *RootView) ConfigEditable(b bool) { rv.SetConfigEditable(b) }
