package mcts

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/crossplay/xwordgen/pkg/crossword"
)

// ErrInvalidIterationLimit is returned by NewEngine when the caller asks
// for fewer than one search iteration per move.
var ErrInvalidIterationLimit = errors.New("mcts: iteration limit must be at least 1")

// ErrNoPossibleActions indicates the rollout policy reached a
// non-terminal state with no possible actions, which should never
// happen if State.IsTerminal is implemented correctly.
var ErrNoPossibleActions = errors.New("mcts: non-terminal state has no possible actions")

// StepStats summarizes one child of the searched root, for reporting.
type StepStats struct {
	Action  string
	Visits  int
	Reward  float64
	Options int
}

// Engine runs MCTS rounds against a tree of crossword states.
type Engine struct {
	iterationLimit      int
	explorationConstant float64
	rng                 *rand.Rand
}

// NewEngine builds an Engine with the given per-move iteration budget
// and exploration constant. iterationLimit must be >= 1.
func NewEngine(iterationLimit int, explorationConstant float64, rng *rand.Rand) (*Engine, error) {
	if iterationLimit < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidIterationLimit, iterationLimit)
	}
	return &Engine{
		iterationLimit:      iterationLimit,
		explorationConstant: explorationConstant,
		rng:                 rng,
	}, nil
}

// Search runs the engine's iteration budget against root, returning the
// best child (selected with zero exploration) and per-child statistics.
// root's parent link is cleared so ancestors above it are forgotten.
func (e *Engine) Search(root *TreeNode) (*TreeNode, []StepStats, error) {
	root.Parent = nil

	for i := 0; i < e.iterationLimit; i++ {
		if err := e.executeRound(root); err != nil {
			return nil, nil, err
		}
	}

	best := getBestChild(root, 0)
	stats := make([]StepStats, 0, len(root.Children))
	for action, child := range root.Children {
		stats = append(stats, StepStats{
			Action:  action,
			Visits:  child.NumVisits,
			Reward:  child.RewardValue,
			Options: child.State.NumOptions(),
		})
	}
	return best, stats, nil
}

func (e *Engine) executeRound(root *TreeNode) error {
	node, err := e.selectNode(root)
	if err != nil {
		return err
	}
	reward, err := e.rolloutPolicy(node.State)
	if err != nil {
		return err
	}
	backpropagate(node, reward)
	return nil
}

// selectNode descends from node, expanding the first not-fully-expanded
// node it finds, or following the best known child until it hits a
// terminal or unexpanded node.
func (e *Engine) selectNode(node *TreeNode) (*TreeNode, error) {
	for !node.IsTerminal {
		if !node.IsFullyExpanded {
			return expand(node)
		}
		node = getBestChild(node, e.explorationConstant)
		if node == nil {
			return nil, ErrNoPossibleActions
		}
	}
	return node, nil
}

// expand adds one previously-untried action as a new child of node.
func expand(node *TreeNode) (*TreeNode, error) {
	actions := node.State.PossibleActions()
	for _, action := range actions {
		if _, exists := node.Children[action]; exists {
			continue
		}
		child := NewTreeNode(node, action, node.State.TakeAction(action))
		node.Children[action] = child
		if len(node.Children) == len(actions) {
			node.IsFullyExpanded = true
		}
		return child, nil
	}
	return nil, fmt.Errorf("mcts: node reported not fully expanded but every action is already a child")
}

// getBestChild scores every child of parent and returns the strongest
// one. Children that are already a known dead end (zero candidates for
// their own next move) are forced to score 0 so they are avoided unless
// every child is equally doomed. Ties favor the child with more options.
func getBestChild(parent *TreeNode, explorationValue float64) *TreeNode {
	var best *TreeNode
	bestValue := math.Inf(-1)
	bestOptions := math.Inf(-1)

	for _, child := range parent.Children {
		value := child.RewardValue
		if explorationValue != 0 {
			value += explorationValue * math.Sqrt(math.Log(float64(parent.NumVisits))/float64(child.NumVisits))
		}
		options := float64(child.State.NumOptions())
		if options == 0 {
			value = 0
		}
		if value > bestValue || (value == bestValue && options > bestOptions) {
			best = child
			bestValue = value
			bestOptions = options
		}
	}
	return best
}

// rolloutPolicy takes uniformly random actions from state until a
// terminal state is reached, returning its reward.
func (e *Engine) rolloutPolicy(state *crossword.State) (float64, error) {
	for !state.IsTerminal() {
		actions := state.PossibleActions()
		if len(actions) == 0 {
			return 0, ErrNoPossibleActions
		}
		action := actions[e.rng.Intn(len(actions))]
		state = state.TakeAction(action)
	}
	return state.Reward(), nil
}

// backpropagate lifts reward up from node to the root, recording the
// best reward ever observed beneath each ancestor (a max, not a mean).
func backpropagate(node *TreeNode, reward float64) {
	for node != nil {
		node.NumVisits++
		if reward > node.RewardValue {
			node.RewardValue = reward
		}
		node = node.Parent
	}
}

// GetKnownDepth counts how many consecutive generations below root are
// fully expanded, stopping at the first generation that is not (or that
// has no children at all).
func GetKnownDepth(root *TreeNode) int {
	known := 0
	frontier := []*TreeNode{root}
	for {
		for _, n := range frontier {
			if !n.IsFullyExpanded {
				return known
			}
		}
		var next []*TreeNode
		seen := make(map[*TreeNode]bool)
		for _, n := range frontier {
			for _, c := range n.Children {
				if !seen[c] {
					seen[c] = true
					next = append(next, c)
				}
			}
		}
		if len(next) == 0 {
			return known
		}
		known++
		frontier = next
	}
}
