package presenter

import (
	"time"

	"github.com/anzohr/snapcrop/ui/model"
)

// EnabledModel reports whether editing is enabled.
type EnabledModel interface{ Enabled() bool }

// SessionView displays formatted session and total durations.
type SessionView interface {
	SetSession(session, total time.Duration)
}

// SessionPresenter formats session and total durations from the model to the view.
type SessionPresenter struct {
	sess *model.SessionModel
	edit EnabledModel
	view SessionView
}

// NewSessionPresenter returns a new SessionPresenter.
func NewSessionPresenter(sess *model.SessionModel, edit EnabledModel, view SessionView) *SessionPresenter {
	return &SessionPresenter{sess: sess, edit: edit, view: view}
}

// Tick updates the presenter: advance the session model and push values to the view.
func (p *SessionPresenter) Tick(now time.Time) {
	if p == nil || p.sess == nil || p.edit == nil || p.view == nil {
		return
	}
	p.sess.OnTick(p.edit.Enabled(), now)
	s, t := p.sess.Values()
	p.view.SetSession(s, t)
}
