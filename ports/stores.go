package ports

import (
	"context"

	"github.com/jamiesoo123/ENG40011-EndoMML/domain/core"
	"github.com/jamiesoo123/ENG40011-EndoMML/domain/wizard"
)

// SurveyResult is the persisted outcome of a successful submission: the
// prediction merged with the raw answers it was computed from.
type SurveyResult struct {
	Prediction
	Answers     wizard.Answers `json:"answers"`
	SubmittedAt core.Timestamp `json:"submitted_at"`
}

// SessionStore holds in-progress wizard state, keyed by session ID. Entries
// are scoped to the browsing session: they expire rather than persist.
type SessionStore interface {
	Save(ctx context.Context, state wizard.State) error
	Get(ctx context.Context, id core.SessionID) (*wizard.State, error)
	Delete(ctx context.Context, id core.SessionID) error
}

// ResultStore is the hand-off channel between the wizard and the report
// view. After a successful submit it holds exactly two entries per session:
// the merged result and the normalized vector. SaveResult writes both
// atomically; partial results are never persisted.
type ResultStore interface {
	SaveResult(ctx context.Context, id core.SessionID, result SurveyResult, vector wizard.Vector) error
	GetResult(ctx context.Context, id core.SessionID) (*SurveyResult, error)
	GetVector(ctx context.Context, id core.SessionID) (wizard.Vector, error)
}
