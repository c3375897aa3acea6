package ml

import (
	"errors"
	"fmt"
)

type DecisionTree struct {
	nodes []TreeNode
}

// TreeNode is one entry of the flattened tree; the root is node 0 and
// children always follow their parent.
type TreeNode struct {
	FeatureIdx int     `json:"feature_idx"`
	Threshold  float64 `json:"threshold"`
	LeftChild  int     `json:"left_child"`
	RightChild int     `json:"right_child"`
	ClassLabel int     `json:"class_label"`
	IsLeaf     bool    `json:"is_leaf"`
	Confidence float64 `json:"confidence,omitempty"`
}

func NewDecisionTree(nodes []TreeNode) *DecisionTree {
	return &DecisionTree{nodes: append([]TreeNode(nil), nodes...)}
}

// Validate checks the tree against the encoded feature width.
func (dt *DecisionTree) Validate(width int) error {
	if len(dt.nodes) == 0 {
		return errors.New("model not trained")
	}
	for idx, node := range dt.nodes {
		if node.IsLeaf {
			continue
		}
		if node.FeatureIdx < 0 || node.FeatureIdx >= width {
			return fmt.Errorf("node %d: %w: feature index %d, width %d", idx, ErrFeatureMismatch, node.FeatureIdx, width)
		}
		for _, child := range []int{node.LeftChild, node.RightChild} {
			if child <= idx || child >= len(dt.nodes) {
				return fmt.Errorf("node %d: invalid child index %d", idx, child)
			}
		}
	}
	return nil
}

func (dt *DecisionTree) Predict(features []float64) (int, float64, error) {
	if len(dt.nodes) == 0 {
		return 0, 0, errors.New("model not trained")
	}
	idx := 0
	for {
		node := dt.nodes[idx]
		if node.IsLeaf {
			return node.ClassLabel, nodeConfidence(node), nil
		}
		if node.FeatureIdx < 0 || node.FeatureIdx >= len(features) {
			return 0, 0, errors.New("feature index out of range")
		}
		if features[node.FeatureIdx] <= node.Threshold {
			idx = node.LeftChild
		} else {
			idx = node.RightChild
		}
		if idx < 0 || idx >= len(dt.nodes) {
			return 0, 0, errors.New("invalid tree state")
		}
	}
}

func (dt *DecisionTree) Depth() int {
	if len(dt.nodes) == 0 {
		return 0
	}
	return dt.depthFrom(0)
}

func (dt *DecisionTree) depthFrom(idx int) int {
	node := dt.nodes[idx]
	if node.IsLeaf {
		return 1
	}
	left := dt.depthFrom(node.LeftChild)
	right := dt.depthFrom(node.RightChild)
	if left > right {
		return left + 1
	}
	return right + 1
}

func nodeConfidence(node TreeNode) float64 {
	if node.Confidence <= 0 || node.Confidence > 1 {
		return 1
	}
	return node.Confidence
}
