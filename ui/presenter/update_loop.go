package presenter

import "time"

// Loop aggregates feature presenters and drives periodic updates.
//
// It calls Tick on the sub-presenters and invokes a scheduler callback.
// The zero value is usable (methods are nil-safe).
type Loop struct {
	Session  *SessionPresenter
	Mode     *ModePresenter
	Editor   *EditorPresenter
	Schedule func()
}

func NewLoop(sess *SessionPresenter, mode *ModePresenter, ed *EditorPresenter, schedule func()) *Loop {
	return &Loop{Session: sess, Mode: mode, Editor: ed, Schedule: schedule}
}

func (l *Loop) Tick() {
	if l == nil {
		return
	}
	now := time.Now()
	// Drive the mode presenter first so label changes land before durations.
	if l.Mode != nil {
		l.Mode.Tick(now)
	}
	if l.Session != nil {
		l.Session.Tick(now)
	}
	if l.Editor != nil {
		l.Editor.Tick()
	}
	if l.Schedule != nil {
		l.Schedule()
	}
}
