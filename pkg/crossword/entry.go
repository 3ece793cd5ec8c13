// Package crossword holds the immutable-by-convention crossword state
// the MCTS engine searches over: entries with their current pattern and
// candidate words, plus the constraint propagation that narrows crossing
// entries whenever one is filled.
package crossword

import "github.com/crossplay/xwordgen/pkg/grid"

// Entry is one word slot together with its current fill state. Entries
// are never mutated after construction; TakeAction produces new Entry
// values for the ones affected by a move.
type Entry struct {
	Index        int
	Direction    grid.Direction
	Coordinates  []grid.Coord
	Dependencies [][]grid.Dependency

	Pattern         []byte
	PossibleWords   []string
	NumLettersFixed int
	WordFixed       bool
}

// Length returns the entry's word length.
func (e *Entry) Length() int { return len(e.Pattern) }

// Word renders the entry's current pattern, with '_' for unfixed slots.
func (e *Entry) Word() string { return patternString(e.Pattern) }

// NumPossibleWords is the size of the entry's current candidate set.
func (e *Entry) NumPossibleWords() int { return len(e.PossibleWords) }
