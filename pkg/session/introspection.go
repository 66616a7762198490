package session

import (
	"github.com/aretw0/introspection"
)

// SessionState exposes internal state for observability.
type SessionState struct {
	Started   bool   `json:"started"`
	Dirty     bool   `json:"dirty"`
	CurrentID string `json:"current_id,omitempty"`
	Notes     int    `json:"notes"`
}

// State implements introspection.Introspectable.
func (s *Session) State() any {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := SessionState{
		Started: s.started,
		Dirty:   s.dirty,
		Notes:   s.index.Len(),
	}
	if s.current != nil {
		state.CurrentID = s.current.ID
	}
	return state
}

// ComponentType implements introspection.Component.
func (s *Session) ComponentType() string {
	return "session"
}

var _ introspection.Introspectable = (*Session)(nil)
var _ introspection.Component = (*Session)(nil)
