package model

import (
	"sync/atomic"
)

// EditModel tracks whether crop editing is enabled. The zero value is disabled and usable.
// Concurrency-safe via atomic Bool because UI callbacks and presenter ticks may race.
type EditModel struct{ enabled atomic.Bool }

// Enabled reports whether editing is currently enabled.
func (m *EditModel) Enabled() bool {
	if m == nil {
		return false
	}
	return m.enabled.Load()
}

// SetEnabled stores the enabled flag.
func (m *EditModel) SetEnabled(b bool) {
	if m == nil {
		return
	}
	prev := m.enabled.Load()
	if prev == b { // no change
		return
	}
	m.enabled.Store(b)
}
