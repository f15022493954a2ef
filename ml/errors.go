package ml

import "fmt"

// EncodingError reports an input value that no mapping covers.
type EncodingError struct {
	Field  string
	Value  string
	Reason string
}

func (e *EncodingError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "unmapped value"
	}
	return fmt.Sprintf("encode %s: %s %q", e.Field, reason, e.Value)
}

// ValidationError reports a feature vector whose length does not match the
// classifier's input width.
type ValidationError struct {
	Expected int
	Got      int
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("feature count mismatch: expected %d, got %d", e.Expected, e.Got)
}
