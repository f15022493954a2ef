package ml

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
)

const defaultDecisionThreshold = 0.5

// LogisticRegression predicts 1 when sigmoid(w·x + b) reaches Threshold.
// An artifact without a threshold uses 0.5.
type LogisticRegression struct {
	Weights   []float64 `json:"weights"`
	Bias      float64   `json:"bias"`
	Threshold *float64  `json:"threshold,omitempty"`
}

// Predict classifies one feature vector.
func (lr *LogisticRegression) Predict(features []float64) (int, error) {
	if len(lr.Weights) == 0 {
		return 0, errors.New("model not loaded")
	}
	if len(features) != len(lr.Weights) {
		return 0, fmt.Errorf("expected %d features, got %d", len(lr.Weights), len(features))
	}
	if lr.Probability(features) >= lr.threshold() {
		return int(GoodRisk), nil
	}
	return int(BadRisk), nil
}

// Probability returns the modelled probability of label 1. The caller
// guarantees len(features) == len(Weights).
func (lr *LogisticRegression) Probability(features []float64) float64 {
	z := lr.Bias
	for i, w := range lr.Weights {
		z += w * features[i]
	}
	return 1 / (1 + math.Exp(-z))
}

// Load reads and checks a JSON artifact.
func (lr *LogisticRegression) Load(path string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var model LogisticRegression
	if err := json.Unmarshal(payload, &model); err != nil {
		return fmt.Errorf("decode logistic regression: %w", err)
	}
	if len(model.Weights) != FeatureCount {
		return fmt.Errorf("logistic regression: expected %d weights, got %d", FeatureCount, len(model.Weights))
	}
	if model.Threshold != nil && (*model.Threshold < 0 || *model.Threshold > 1) {
		return fmt.Errorf("logistic regression: threshold %v outside [0,1]", *model.Threshold)
	}
	*lr = model
	return nil
}

func (lr *LogisticRegression) threshold() float64 {
	if lr.Threshold == nil {
		return defaultDecisionThreshold
	}
	return *lr.Threshold
}
