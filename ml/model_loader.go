package ml

import "fmt"

// Artifact types accepted by LoadModel.
const (
	ModelTypeDecisionTree       = "decision_tree"
	ModelTypeLogisticRegression = "logistic_regression"
)

// SupportedModelType reports whether LoadModel understands modelType.
func SupportedModelType(modelType string) bool {
	switch modelType {
	case ModelTypeDecisionTree, ModelTypeLogisticRegression:
		return true
	default:
		return false
	}
}

// LoadModel reads a classifier artifact. The result is not modified afterwards
// and may be shared by concurrent callers.
func LoadModel(modelType, path string) (Classifier, error) {
	switch modelType {
	case ModelTypeDecisionTree:
		model := &DecisionTree{}
		if err := model.Load(path); err != nil {
			return nil, err
		}
		return model, nil
	case ModelTypeLogisticRegression:
		model := &LogisticRegression{}
		if err := model.Load(path); err != nil {
			return nil, err
		}
		return model, nil
	default:
		return nil, fmt.Errorf("unsupported model type %q", modelType)
	}
}
