package ports

import (
	"context"

	"github.com/jamiesoo123/ENG40011-EndoMML/domain/core"
	"github.com/jamiesoo123/ENG40011-EndoMML/domain/wizard"
)

// Prediction is the model's scoring of one feature vector
type Prediction struct {
	Prob1 float64 `json:"prob1"`
	Pred  int     `json:"pred"`
	Label string  `json:"label,omitempty"`
}

// Contributor is one feature's contribution to a prediction, signed: a
// positive value pushed the model towards the positive class.
type Contributor struct {
	Feature core.FeatureKey `json:"feature"`
	Value   float64         `json:"value"`
}

// Predictor scores a normalized feature vector. Any non-success response is
// an error; callers never retry automatically.
type Predictor interface {
	Predict(ctx context.Context, features wizard.Vector) (*Prediction, error)
}

// Explainer returns the top per-feature contribution scores for a vector.
// It is consumed by the report view, not by the wizard itself.
type Explainer interface {
	Explain(ctx context.Context, features wizard.Vector, topN int) ([]Contributor, error)
}
