package presenter

import (
	"time"

	"github.com/anzohr/snapcrop/domain/editor"
)

// ModeSource provides the editor state the presenter reflects.
type ModeSource interface {
	Active() bool
	Mode() editor.Mode
	IsDefined() bool
}

// StateView sets the state label in the view.
type StateView interface{ SetStateLabel(string) }

// ModePresenter polls the editor mode each tick and updates the view when it
// changes.
type ModePresenter struct {
	eng    ModeSource
	view   StateView
	latest string
}

func NewModePresenter(eng ModeSource, view StateView) *ModePresenter {
	return &ModePresenter{eng: eng, view: view}
}

// Tick reads the current editor state and updates the view label on change.
func (p *ModePresenter) Tick(now time.Time) {
	if p == nil || p.eng == nil || p.view == nil {
		return
	}
	label := p.describe()
	if label != p.latest {
		p.latest = label
		p.view.SetStateLabel(label)
	}
}

func (p *ModePresenter) describe() string {
	if !p.eng.Active() {
		return "Mode: off"
	}
	label := "Mode: " + p.eng.Mode().String()
	if p.eng.IsDefined() {
		label += " (region set)"
	}
	return label
}
