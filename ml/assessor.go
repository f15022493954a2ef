package ml

import (
	"errors"
	"fmt"
)

// RiskLabel is the classifier output: 1 means good risk, 0 bad.
type RiskLabel int

const (
	BadRisk  RiskLabel = 0
	GoodRisk RiskLabel = 1
)

func (l RiskLabel) String() string {
	switch l {
	case GoodRisk:
		return "Good Credit Risk"
	case BadRisk:
		return "Bad Credit Risk"
	default:
		return fmt.Sprintf("RiskLabel(%d)", int(l))
	}
}

// Assessment is the outcome of one evaluated applicant.
type Assessment struct {
	Input    ApplicantInput
	Features FeatureVector
	Label    RiskLabel
}

// Assessor runs a loaded classifier against encoded applicants.
type Assessor struct {
	model Classifier
}

// NewAssessor wraps a loaded classifier. The classifier is only read.
func NewAssessor(model Classifier) (*Assessor, error) {
	if model == nil {
		return nil, errors.New("classifier is required")
	}
	return &Assessor{model: model}, nil
}

// Assess rejects vectors that are not FeatureCount wide before the
// classifier sees them. Classifier errors are returned as is, wrapped.
func (a *Assessor) Assess(vector FeatureVector) (RiskLabel, error) {
	if len(vector) != FeatureCount {
		return 0, &ValidationError{Expected: FeatureCount, Got: len(vector)}
	}

	label, err := a.model.Predict(vector)
	if err != nil {
		return 0, fmt.Errorf("classifier predict: %w", err)
	}

	switch RiskLabel(label) {
	case GoodRisk:
		return GoodRisk, nil
	case BadRisk:
		return BadRisk, nil
	default:
		return 0, fmt.Errorf("classifier returned non-binary label %d", label)
	}
}

// Evaluate encodes an applicant and assesses the result.
func (a *Assessor) Evaluate(input ApplicantInput) (Assessment, error) {
	vector, err := EncodeApplicant(input)
	if err != nil {
		return Assessment{}, err
	}
	label, err := a.Assess(vector)
	if err != nil {
		return Assessment{}, err
	}
	return Assessment{Input: input, Features: vector, Label: label}, nil
}
