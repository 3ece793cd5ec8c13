package solver

import (
	"log"
	"math/rand"

	"github.com/crossplay/xwordgen/pkg/crossword"
	"github.com/crossplay/xwordgen/pkg/grid"
	"github.com/crossplay/xwordgen/pkg/gridgen"
)

// RetryConfig bounds the optional "add more blocks and try again" loop
// that runs when an attempt leaves the grid unsolved.
type RetryConfig struct {
	MaxGeneralIterations         int
	NumBlocksToAddIfUnsuccessful int
	SymmetricDesign              bool
}

// AttemptResult pairs one retry's Result with the layout it was solved
// (or failed to be solved) against.
type AttemptResult struct {
	Layout *grid.Layout
	Result *Result
}

// RunWithRetries runs Run repeatedly against layout, adding
// retry.NumBlocksToAddIfUnsuccessful blocks between attempts, until
// either a solution is found or retry.MaxGeneralIterations attempts have
// been made. When retry.NumBlocksToAddIfUnsuccessful is zero or less, the
// layout cannot change, so no further attempt follows an unsolved one.
// The layout used for the last attempt is returned
// alongside its Result so callers can render the exact grid that was
// solved.
func RunWithRetries(layout *grid.Layout, words func(entries []*grid.Entry) crossword.WordSource, cfg Config, retry RetryConfig, rng *rand.Rand) (*AttemptResult, error) {
	if retry.MaxGeneralIterations < 1 {
		retry.MaxGeneralIterations = 1
	}

	current := layout
	var last *AttemptResult

	for attempt := 1; attempt <= retry.MaxGeneralIterations; attempt++ {
		log.Printf("attempt %d/%d: solving %dx%d grid", attempt, retry.MaxGeneralIterations, current.Rows, current.Cols)

		entries := grid.AnalyzeLayout(current)
		idx := words(entries)

		result, err := Run(entries, idx, cfg)
		if err != nil {
			return nil, err
		}
		last = &AttemptResult{Layout: current, Result: result}

		if result.Solved {
			return last, nil
		}
		if attempt == retry.MaxGeneralIterations || retry.NumBlocksToAddIfUnsuccessful <= 0 {
			break
		}
		current = gridgen.AddBlocks(current, retry.NumBlocksToAddIfUnsuccessful, retry.SymmetricDesign, rng)
	}

	return last, nil
}
