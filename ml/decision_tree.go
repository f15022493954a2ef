package ml

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// DecisionTree is a binary classifier stored as a flat node list. Node 0 is
// the root; a node sends features[FeatureIdx] <= Threshold to LeftChild.
type DecisionTree struct {
	nodes []TreeNode
}

// TreeNode is one split or leaf. Leaves ignore FeatureIdx and Threshold.
type TreeNode struct {
	FeatureIdx int     `json:"feature_idx"`
	Threshold  float64 `json:"threshold"`
	LeftChild  int     `json:"left_child"`
	RightChild int     `json:"right_child"`
	ClassLabel int     `json:"class_label"`
	IsLeaf     bool    `json:"is_leaf"`
}

// NewDecisionTree checks the node list and returns a tree over it.
func NewDecisionTree(nodes []TreeNode) (*DecisionTree, error) {
	if err := validateNodes(nodes); err != nil {
		return nil, err
	}
	copied := append([]TreeNode(nil), nodes...)
	return &DecisionTree{nodes: copied}, nil
}

// Predict walks from the root to a leaf and returns its label.
func (dt *DecisionTree) Predict(features []float64) (int, error) {
	if len(dt.nodes) == 0 {
		return 0, errors.New("model not loaded")
	}
	idx := 0
	// A valid tree reaches a leaf in at most len(nodes) steps.
	for steps := 0; steps <= len(dt.nodes); steps++ {
		node := dt.nodes[idx]
		if node.IsLeaf {
			return node.ClassLabel, nil
		}
		if node.FeatureIdx < 0 || node.FeatureIdx >= len(features) {
			return 0, errors.New("feature index out of range")
		}
		if features[node.FeatureIdx] <= node.Threshold {
			idx = node.LeftChild
		} else {
			idx = node.RightChild
		}
		if idx < 0 || idx >= len(dt.nodes) {
			return 0, errors.New("invalid tree state")
		}
	}
	return 0, errors.New("tree contains a cycle")
}

// Load reads a JSON node list and validates it before use.
func (dt *DecisionTree) Load(path string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var nodes []TreeNode
	if err := json.Unmarshal(payload, &nodes); err != nil {
		return fmt.Errorf("decode decision tree: %w", err)
	}
	if err := validateNodes(nodes); err != nil {
		return err
	}
	dt.nodes = nodes
	return nil
}

// Size returns the number of nodes.
func (dt *DecisionTree) Size() int {
	return len(dt.nodes)
}

func validateNodes(nodes []TreeNode) error {
	if len(nodes) == 0 {
		return errors.New("decision tree has no nodes")
	}
	for i, node := range nodes {
		if node.IsLeaf {
			if node.ClassLabel != int(BadRisk) && node.ClassLabel != int(GoodRisk) {
				return fmt.Errorf("node %d: leaf label %d is not binary", i, node.ClassLabel)
			}
			continue
		}
		if node.FeatureIdx < 0 || node.FeatureIdx >= FeatureCount {
			return fmt.Errorf("node %d: feature index %d out of range", i, node.FeatureIdx)
		}
		if node.LeftChild <= i || node.LeftChild >= len(nodes) {
			return fmt.Errorf("node %d: left child %d out of range", i, node.LeftChild)
		}
		if node.RightChild <= i || node.RightChild >= len(nodes) {
			return fmt.Errorf("node %d: right child %d out of range", i, node.RightChild)
		}
	}
	return nil
}
