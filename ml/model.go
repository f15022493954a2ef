package ml

// Classifier is a pre-trained binary model. Predict must be free of side
// effects and return 0 or 1.
type Classifier interface {
	Predict(features []float64) (int, error)
}
