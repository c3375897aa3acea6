package ml

import "context"

// ChurnLabel is the class label a classifier emits for a customer expected to churn.
const ChurnLabel = 1

const (
	OutcomeChurn   = "Churn"
	OutcomeNoChurn = "No Churn"
)

// Classifier scores an already encoded feature vector.
type Classifier interface {
	Predict(features []float64) (int, float64, error)
}

// ModelProvider turns a raw customer record into a prediction.
type ModelProvider interface {
	Predict(ctx context.Context, record CustomerRecord) (Prediction, error)
}

type Prediction struct {
	Label      int     `json:"label"`
	Confidence float64 `json:"confidence"`
}

func (p Prediction) Churn() bool {
	return p.Label == ChurnLabel
}

// Outcome returns the human readable label rendered on the form page.
func (p Prediction) Outcome() string {
	if p.Churn() {
		return OutcomeChurn
	}
	return OutcomeNoChurn
}
