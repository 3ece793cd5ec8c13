// Package mcts implements the constraint-guided Monte Carlo Tree Search
// that picks a word for the crossword state's current most-constrained
// entry, one move at a time.
package mcts

import "github.com/crossplay/xwordgen/pkg/crossword"

// TreeNode is one position in the search tree: a crossword state reached
// by a particular action from a particular parent.
type TreeNode struct {
	Parent            *TreeNode
	ActionLeadingHere string
	State             *crossword.State

	Children        map[string]*TreeNode
	IsTerminal      bool
	IsFullyExpanded bool
	NumVisits       int
	RewardValue     float64
}

// NewTreeNode wraps state as a node reached from parent via action.
func NewTreeNode(parent *TreeNode, action string, state *crossword.State) *TreeNode {
	terminal := state.IsTerminal()
	return &TreeNode{
		Parent:            parent,
		ActionLeadingHere: action,
		State:             state,
		Children:          make(map[string]*TreeNode),
		IsTerminal:        terminal,
		IsFullyExpanded:   terminal,
	}
}
