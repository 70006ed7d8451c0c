package app

import (
	"context"
	"errors"
	"testing"

	"github.com/jamiesoo123/ENG40011-EndoMML/domain/catalog"
	"github.com/jamiesoo123/ENG40011-EndoMML/domain/core"
	"github.com/jamiesoo123/ENG40011-EndoMML/domain/wizard"
	"github.com/jamiesoo123/ENG40011-EndoMML/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Mock implementations for testing
type MockPredictor struct {
	mock.Mock
}

func (m *MockPredictor) Predict(ctx context.Context, features wizard.Vector) (*ports.Prediction, error) {
	args := m.Called(ctx, features)
	if pred, ok := args.Get(0).(*ports.Prediction); ok {
		return pred, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockResultStore struct {
	mock.Mock
}

func (m *MockResultStore) SaveResult(ctx context.Context, id core.SessionID, result ports.SurveyResult, vector wizard.Vector) error {
	args := m.Called(ctx, id, result, vector)
	return args.Error(0)
}

func (m *MockResultStore) GetResult(ctx context.Context, id core.SessionID) (*ports.SurveyResult, error) {
	args := m.Called(ctx, id)
	if result, ok := args.Get(0).(*ports.SurveyResult); ok {
		return result, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockResultStore) GetVector(ctx context.Context, id core.SessionID) (wizard.Vector, error) {
	args := m.Called(ctx, id)
	if vector, ok := args.Get(0).(wizard.Vector); ok {
		return vector, args.Error(1)
	}
	return nil, args.Error(1)
}

var testTypes = catalog.TypeMap{
	"Pain":     catalog.KindRadio,
	"Severity": catalog.KindScale10,
}

func testState() wizard.State {
	s := wizard.NewState(core.NewSessionID())
	s.Answers["Pain"] = "Yes"
	s.Answers["Severity"] = "7"
	return s
}

func TestSubmitPersistsResultOnce(t *testing.T) {
	predictor := &MockPredictor{}
	results := &MockResultStore{}
	svc := NewSubmissionService(predictor, results, testTypes, nil)

	state := testState()
	wantVector := wizard.Vector{"Pain": 1, "Severity": 0.7}

	predictor.On("Predict", mock.Anything, wantVector).
		Return(&ports.Prediction{Prob1: 0.82, Pred: 1, Label: "Endometriosis"}, nil)
	results.On("SaveResult", mock.Anything, state.SessionID, mock.Anything, wantVector).
		Return(nil)

	result, err := svc.Submit(context.Background(), state)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, 0.82, result.Prob1)
	assert.Equal(t, 1, result.Pred)
	assert.Equal(t, "Endometriosis", result.Label)
	assert.Equal(t, state.Answers, result.Answers)
	assert.False(t, result.SubmittedAt.IsZero())

	predictor.AssertExpectations(t)
	results.AssertExpectations(t)
	results.AssertNumberOfCalls(t, "SaveResult", 1)
}

func TestSubmitPredictionFailurePersistsNothing(t *testing.T) {
	predictor := &MockPredictor{}
	results := &MockResultStore{}
	svc := NewSubmissionService(predictor, results, testTypes, nil)

	predictor.On("Predict", mock.Anything, mock.Anything).
		Return(nil, errors.New("connection refused"))

	result, err := svc.Submit(context.Background(), testState())

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, core.IsSubmissionError(err))
	results.AssertNotCalled(t, "SaveResult", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitKeepsSubmissionErrorsUnwrapped(t *testing.T) {
	predictor := &MockPredictor{}
	results := &MockResultStore{}
	svc := NewSubmissionService(predictor, results, testTypes, nil)

	cause := core.NewSubmissionError(errors.New("API error 503"))
	predictor.On("Predict", mock.Anything, mock.Anything).Return(nil, cause)

	_, err := svc.Submit(context.Background(), testState())

	assert.Equal(t, cause, err)
}

func TestSubmitStoreFailure(t *testing.T) {
	predictor := &MockPredictor{}
	results := &MockResultStore{}
	svc := NewSubmissionService(predictor, results, testTypes, nil)

	predictor.On("Predict", mock.Anything, mock.Anything).
		Return(&ports.Prediction{Prob1: 0.3, Pred: 0}, nil)
	results.On("SaveResult", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("store unavailable"))

	result, err := svc.Submit(context.Background(), testState())

	assert.Error(t, err)
	assert.Nil(t, result)
}
