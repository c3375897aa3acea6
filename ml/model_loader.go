package ml

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

var (
	ErrUnsupportedModel = errors.New("unsupported model type")
	ErrFeatureMismatch  = errors.New("feature width mismatch")
)

// LoadModel reads the pipeline artifact at path. When modelType is set the
// artifact must declare the same type.
func LoadModel(modelType, path string) (*Pipeline, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}
	pipeline, err := ParseModel(modelType, payload)
	if err != nil {
		return nil, fmt.Errorf("load model %s: %w", path, err)
	}
	return pipeline, nil
}

func ParseModel(modelType string, payload []byte) (*Pipeline, error) {
	var artifact Artifact
	if err := json.Unmarshal(payload, &artifact); err != nil {
		return nil, fmt.Errorf("decode artifact: %w", err)
	}
	if artifact.FormatVersion != ArtifactFormatVersion {
		return nil, fmt.Errorf("unsupported artifact format version %d", artifact.FormatVersion)
	}
	if modelType != "" && modelType != artifact.Type {
		return nil, fmt.Errorf("artifact is %q, configured %q", artifact.Type, modelType)
	}

	switch artifact.Type {
	case ModelTypeDecisionTree:
		return NewPipeline(artifact.Type, &artifact.Preprocessor, NewDecisionTree(artifact.Tree))
	case ModelTypeLogisticRegression:
		if artifact.Logistic == nil {
			return nil, errors.New("logistic section missing")
		}
		return NewPipeline(artifact.Type, &artifact.Preprocessor, artifact.Logistic)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedModel, artifact.Type)
	}
}
