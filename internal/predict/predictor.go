package predict

import (
	"errors"
	"fmt"

	"NewsVerifier/internal/domain"
	"NewsVerifier/internal/ml"
	"NewsVerifier/internal/textproc"
)

// ErrModelUnavailable is returned when prediction is requested before a
// model pair has been loaded successfully.
var ErrModelUnavailable = errors.New("model artifacts not loaded")

// ServingContext holds the loaded model pair for the lifetime of the
// process. It is immutable after construction and shared across
// concurrent requests; there is deliberately no setter and no global.
type ServingContext struct {
	pair *ml.ModelPair
}

// NewServingContext wraps an already loaded pair. A nil pair yields a
// context that reports ErrModelUnavailable on every check.
func NewServingContext(pair *ml.ModelPair) *ServingContext {
	return &ServingContext{pair: pair}
}

// Load reads the artifact pair from disk and builds a serving context.
func Load(vectorizerPath, classifierPath string) (*ServingContext, error) {
	pair, err := ml.LoadPair(vectorizerPath, classifierPath)
	if err != nil {
		return nil, fmt.Errorf("load serving context: %w", err)
	}
	return &ServingContext{pair: pair}, nil
}

// Ready reports whether a model pair is loaded.
func (s *ServingContext) Ready() bool {
	return s != nil && s.pair != nil
}

// Check normalizes the text, vectorizes it through the fitted
// vocabulary, and returns the classifier's verdict.
func (s *ServingContext) Check(text string) (domain.Verdict, error) {
	if !s.Ready() {
		return domain.VerdictFake, ErrModelUnavailable
	}

	cleaned := textproc.Normalize(text)
	vec := s.pair.Vectorizer.Transform(cleaned)
	label := s.pair.Classifier.Predict(vec)
	return domain.VerdictFromLabel(label), nil
}
