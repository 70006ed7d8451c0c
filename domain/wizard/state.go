package wizard

import (
	"github.com/jamiesoo123/ENG40011-EndoMML/domain/core"
)

// Answers is the answer store: raw captured values keyed by feature key.
// Entries are written when a page is read and are never deleted, so
// revisiting a page restores prior input.
type Answers map[core.FeatureKey]string

// Clone returns a copy of the answer store
func (a Answers) Clone() Answers {
	out := make(Answers, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// State is the complete mutable control-flow state of one wizard session:
// the navigation cursor plus the answer store. It is an explicit value
// passed to and returned from each transition, so the state machine is
// testable without any rendering surface.
type State struct {
	SessionID core.SessionID `json:"session_id"`
	PageIndex int            `json:"page_index"`
	Answers   Answers        `json:"answers"`
	StartedAt core.Timestamp `json:"started_at"`
}

// NewState creates the initial state for a fresh session: cursor at the
// first page, empty answer store.
func NewState(id core.SessionID) State {
	return State{
		SessionID: id,
		PageIndex: 0,
		Answers:   make(Answers),
		StartedAt: core.Now(),
	}
}
