package app

import (
	"context"

	"github.com/jamiesoo123/ENG40011-EndoMML/domain/catalog"
	"github.com/jamiesoo123/ENG40011-EndoMML/domain/core"
	"github.com/jamiesoo123/ENG40011-EndoMML/domain/wizard"
	"github.com/jamiesoo123/ENG40011-EndoMML/internal"
	"github.com/jamiesoo123/ENG40011-EndoMML/internal/errors"
	"github.com/jamiesoo123/ENG40011-EndoMML/ports"
)

// SubmissionService orchestrates the final wizard step: normalization,
// the single prediction call, and the atomic hand-off write the report view
// reads from. A failed call persists nothing; the wizard stays interactive
// on the last page and the user may resubmit manually.
type SubmissionService struct {
	predictor ports.Predictor
	results   ports.ResultStore
	types     catalog.TypeMap
	logger    *internal.Logger
}

// NewSubmissionService creates a submission controller
func NewSubmissionService(predictor ports.Predictor, results ports.ResultStore, types catalog.TypeMap, logger *internal.Logger) *SubmissionService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &SubmissionService{
		predictor: predictor,
		results:   results,
		types:     types,
		logger:    logger,
	}
}

// Submit computes a fresh feature vector from the validated answers, scores
// it, and persists {prediction, answers, vector} exactly once.
func (s *SubmissionService) Submit(ctx context.Context, state wizard.State) (*ports.SurveyResult, error) {
	vector := wizard.Normalize(state.Answers, s.types)

	s.logger.Info("submitting session %s with %d features", state.SessionID, len(vector))
	pred, err := s.predictor.Predict(ctx, vector)
	if err != nil {
		s.logger.Error("prediction call failed for session %s: %v", state.SessionID, err)
		if core.IsSubmissionError(err) {
			return nil, err
		}
		return nil, core.NewSubmissionError(err)
	}

	result := ports.SurveyResult{
		Prediction:  *pred,
		Answers:     state.Answers.Clone(),
		SubmittedAt: core.Now(),
	}
	if err := s.results.SaveResult(ctx, state.SessionID, result, vector); err != nil {
		s.logger.Error("persisting result for session %s: %v", state.SessionID, err)
		return nil, errors.StoreError("persisting survey result", err)
	}

	s.logger.Info("session %s scored prob1=%.4f pred=%d", state.SessionID, pred.Prob1, pred.Pred)
	return &result, nil
}
