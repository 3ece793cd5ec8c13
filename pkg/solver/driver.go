// Package solver drives the MCTS engine entry by entry until the
// crossword is solved or a pattern cannot be matched.
package solver

import (
	"errors"
	"fmt"
	"log"
	"math/rand"

	"github.com/crossplay/xwordgen/pkg/crossword"
	"github.com/crossplay/xwordgen/pkg/grid"
	"github.com/crossplay/xwordgen/pkg/mcts"
)

// ErrConfiguration is returned when a Config is invalid.
var ErrConfiguration = errors.New("solver: invalid configuration")

// Config controls one solver run.
type Config struct {
	IterationLimit int
	RandomSeed     int64
	// PreFilledWords, if non-empty, are committed in order before the
	// MCTS loop starts (e.g. to seed a known starting word).
	PreFilledWords []string
	// OnStep, if set, is called after every committed move.
	OnStep func(StepResult)
}

func (c *Config) validate() error {
	if c.IterationLimit < 1 {
		return fmt.Errorf("%w: IterationLimit must be >= 1, got %d", ErrConfiguration, c.IterationLimit)
	}
	return nil
}

// StepResult reports one committed move.
type StepResult struct {
	Generation      int
	TotalEntries    int
	EntryIndex      int
	OptionsBefore   int
	Word            string
	ExpectedReward  float64
	NumVisits       int
	KnownFutureGens int
}

// Result is the outcome of a full solver run.
type Result struct {
	Solved        bool
	FinalState    *crossword.State
	Steps         []StepResult
	UnsolvedEntry *crossword.Entry // set only when Solved is false
}

// Run fills every entry of the layout using words, one move at a time,
// via MCTS, until the crossword is solved or a dead end is reached.
func Run(gridEntries []*grid.Entry, words crossword.WordSource, cfg Config) (*Result, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(cfg.RandomSeed))
	state := crossword.NewInitialState(gridEntries, words)

	for _, w := range cfg.PreFilledWords {
		state = state.TakeAction(w)
	}

	totalEntries := len(gridEntries)
	generation := len(state.FilledEntries())
	root := mcts.NewTreeNode(nil, "", state)

	engine, err := mcts.NewEngine(cfg.IterationLimit, float64(totalEntries), rng)
	if err != nil {
		return nil, err
	}

	var steps []StepResult
	for !root.State.IsTerminal() {
		entryBefore := root.State.NextEntryToFill()

		best, stats, err := engine.Search(root)
		if err != nil {
			return nil, fmt.Errorf("solver: mcts search failed: %w", err)
		}

		var chosen mcts.StepStats
		for _, st := range stats {
			if st.Action == best.ActionLeadingHere {
				chosen = st
				break
			}
		}

		step := StepResult{
			Generation:      generation + 1,
			TotalEntries:    totalEntries,
			EntryIndex:      entryBefore.Index,
			OptionsBefore:   entryBefore.NumPossibleWords(),
			Word:            best.ActionLeadingHere,
			ExpectedReward:  chosen.Reward,
			NumVisits:       chosen.Visits,
			KnownFutureGens: mcts.GetKnownDepth(best),
		}
		steps = append(steps, step)
		log.Printf("placed %q at entry %d (%d/%d), visits=%d reward=%.1f",
			step.Word, step.EntryIndex, step.Generation, step.TotalEntries, step.NumVisits, step.ExpectedReward)

		if cfg.OnStep != nil {
			cfg.OnStep(step)
		}

		generation++
		root = best
	}

	result := &Result{
		FinalState: root.State,
		Steps:      steps,
		Solved:     root.State.NextEntryToFill() == nil,
	}
	if !result.Solved {
		result.UnsolvedEntry = root.State.NextEntryToFill()
	}
	return result, nil
}
