package ml

import (
	"errors"
	"fmt"
)

const defaultDecisionThreshold = 0.5

// LogisticRegression is a fitted binary logistic model over the encoded features.
type LogisticRegression struct {
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
	Threshold    float64   `json:"threshold,omitempty"`
}

func (lr *LogisticRegression) Validate(width int) error {
	if len(lr.Coefficients) == 0 {
		return errors.New("model not trained")
	}
	if len(lr.Coefficients) != width {
		return fmt.Errorf("%w: %d coefficients, width %d", ErrFeatureMismatch, len(lr.Coefficients), width)
	}
	if lr.Threshold < 0 || lr.Threshold >= 1 {
		return fmt.Errorf("threshold %v out of range", lr.Threshold)
	}
	return nil
}

// Probability returns P(churn) for the feature vector.
func (lr *LogisticRegression) Probability(features []float64) (float64, error) {
	if len(features) != len(lr.Coefficients) {
		return 0, fmt.Errorf("%w: got %d features, want %d", ErrFeatureMismatch, len(features), len(lr.Coefficients))
	}
	z := lr.Intercept
	for i, w := range lr.Coefficients {
		z += w * features[i]
	}
	return sigmoid(z), nil
}

func (lr *LogisticRegression) Predict(features []float64) (int, float64, error) {
	p, err := lr.Probability(features)
	if err != nil {
		return 0, 0, err
	}
	threshold := lr.Threshold
	if threshold == 0 {
		threshold = defaultDecisionThreshold
	}
	if p >= threshold {
		return ChurnLabel, p, nil
	}
	return 0, 1 - p, nil
}
