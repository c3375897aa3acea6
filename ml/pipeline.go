package ml

import (
	"context"
	"errors"
	"fmt"
)

const (
	ModelTypeDecisionTree       = "decision_tree"
	ModelTypeLogisticRegression = "logistic_regression"
)

// ArtifactFormatVersion is the only artifact layout this build understands.
const ArtifactFormatVersion = 1

// Artifact is the on-disk form of a fitted pipeline.
type Artifact struct {
	FormatVersion int                 `json:"format_version"`
	Type          string              `json:"type"`
	Preprocessor  Preprocessor        `json:"preprocessor"`
	Tree          []TreeNode          `json:"tree,omitempty"`
	Logistic      *LogisticRegression `json:"logistic,omitempty"`
}

// Pipeline couples the fitted preprocessor with its classifier. It is
// immutable once built and safe for concurrent use.
type Pipeline struct {
	modelType    string
	preprocessor *Preprocessor
	classifier   Classifier
}

func NewPipeline(modelType string, preprocessor *Preprocessor, classifier Classifier) (*Pipeline, error) {
	if preprocessor == nil || classifier == nil {
		return nil, errors.New("preprocessor and classifier are required")
	}
	if err := preprocessor.Prepare(); err != nil {
		return nil, fmt.Errorf("prepare preprocessor: %w", err)
	}
	if v, ok := classifier.(interface{ Validate(int) error }); ok {
		if err := v.Validate(preprocessor.Width()); err != nil {
			return nil, fmt.Errorf("validate %s: %w", modelType, err)
		}
	}
	return &Pipeline{
		modelType:    modelType,
		preprocessor: preprocessor,
		classifier:   classifier,
	}, nil
}

func (p *Pipeline) Type() string {
	return p.modelType
}

func (p *Pipeline) FeatureNames() []string {
	return p.preprocessor.FeatureNames()
}

func (p *Pipeline) Predict(ctx context.Context, record CustomerRecord) (Prediction, error) {
	if err := ctx.Err(); err != nil {
		return Prediction{}, err
	}
	features, err := p.preprocessor.Transform(record)
	if err != nil {
		return Prediction{}, fmt.Errorf("transform record: %w", err)
	}
	label, confidence, err := p.classifier.Predict(features)
	if err != nil {
		return Prediction{}, fmt.Errorf("predict: %w", err)
	}
	return Prediction{Label: label, Confidence: confidence}, nil
}
