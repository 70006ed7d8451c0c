// Package endomodel scores feature vectors with a logistic model loaded
// from a coefficients document. It backs the bundled prediction service so
// the wizard can run end to end without an external model host.
package endomodel

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"

	"github.com/jamiesoo123/ENG40011-EndoMML/domain/core"
	"github.com/jamiesoo123/ENG40011-EndoMML/domain/wizard"
	"github.com/jamiesoo123/ENG40011-EndoMML/ports"
)

// document is the on-disk model shape: feature order, weights, intercept,
// optional background means or raw background sample rows.
type document struct {
	PositiveLabel string             `json:"positive_label"`
	NegativeLabel string             `json:"negative_label"`
	Features      []string           `json:"features"`
	Weights       []float64          `json:"weights"`
	Intercept     float64            `json:"intercept"`
	Means         map[string]float64 `json:"means"`
	Background    [][]float64        `json:"background"`
}

// Model is a loaded logistic scorer
type Model struct {
	features      []string
	weights       []float64
	intercept     float64
	means         []float64
	positiveLabel string
	negativeLabel string
}

// Load reads and validates a model document from disk
func Load(path string) (*Model, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model file %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse decodes and validates a model document
func Parse(raw []byte) (*Model, error) {
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("malformed model document: %w", err)
	}
	if len(doc.Features) == 0 {
		return nil, fmt.Errorf("model document declares no features")
	}
	if len(doc.Weights) != len(doc.Features) {
		return nil, fmt.Errorf("model document has %d weights for %d features", len(doc.Weights), len(doc.Features))
	}

	m := &Model{
		features:      doc.Features,
		weights:       doc.Weights,
		intercept:     doc.Intercept,
		positiveLabel: doc.PositiveLabel,
		negativeLabel: doc.NegativeLabel,
	}
	if m.positiveLabel == "" {
		m.positiveLabel = "Endometriosis"
	}
	if m.negativeLabel == "" {
		m.negativeLabel = "No Endometriosis"
	}

	means, err := backgroundMeans(doc)
	if err != nil {
		return nil, err
	}
	m.means = means
	return m, nil
}

// backgroundMeans resolves the per-feature background values used by
// Explain: explicit means win, otherwise column means of the background
// sample rows, otherwise zeros.
func backgroundMeans(doc document) ([]float64, error) {
	means := make([]float64, len(doc.Features))

	if len(doc.Means) > 0 {
		for i, f := range doc.Features {
			means[i] = doc.Means[f]
		}
		return means, nil
	}

	if len(doc.Background) > 0 {
		column := make([]float64, len(doc.Background))
		for i := range doc.Features {
			for r, row := range doc.Background {
				if len(row) != len(doc.Features) {
					return nil, fmt.Errorf("background row %d has %d columns, want %d", r, len(row), len(doc.Features))
				}
				column[r] = row[i]
			}
			mean, err := stats.Mean(column)
			if err != nil {
				return nil, fmt.Errorf("computing background mean for %s: %w", doc.Features[i], err)
			}
			means[i] = mean
		}
	}
	return means, nil
}

// align orders the vector to the model's feature schema, zero-filling any
// feature the wizard did not capture
func (m *Model) align(features wizard.Vector) []float64 {
	x := make([]float64, len(m.features))
	for i, f := range m.features {
		x[i] = features[core.FeatureKey(f)]
	}
	return x
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

// Predict scores one feature vector
func (m *Model) Predict(ctx context.Context, features wizard.Vector) (*ports.Prediction, error) {
	x := m.align(features)
	prob1 := sigmoid(floats.Dot(m.weights, x) + m.intercept)

	pred := 0
	label := m.negativeLabel
	if prob1 >= 0.5 {
		pred = 1
		label = m.positiveLabel
	}
	return &ports.Prediction{Prob1: prob1, Pred: pred, Label: label}, nil
}

// Contributions returns every feature's contribution in model feature
// order, where a feature's contribution is its weight times its displacement
// from the background mean.
func (m *Model) Contributions(features wizard.Vector) []ports.Contributor {
	x := m.align(features)

	out := make([]ports.Contributor, len(m.features))
	for i, f := range m.features {
		out[i] = ports.Contributor{
			Feature: core.FeatureKey(f),
			Value:   m.weights[i] * (x[i] - m.means[i]),
		}
	}
	return out
}

// Explain returns the topN features by absolute contribution
func (m *Model) Explain(ctx context.Context, features wizard.Vector, topN int) ([]ports.Contributor, error) {
	out := m.Contributions(features)
	sort.Slice(out, func(i, j int) bool {
		return math.Abs(out[i].Value) > math.Abs(out[j].Value)
	})

	if topN < 1 {
		topN = 10
	}
	if topN < len(out) {
		out = out[:topN]
	}
	return out, nil
}

// BaseValue is the model output at the background means
func (m *Model) BaseValue() float64 {
	return sigmoid(floats.Dot(m.weights, m.means) + m.intercept)
}

// Features returns the model's feature schema in training order
func (m *Model) Features() []string {
	return m.features
}
