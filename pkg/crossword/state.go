package crossword

import "github.com/crossplay/xwordgen/pkg/grid"

// WordSource supplies the initial candidate list for entries of a given
// length. pkg/wordindex.Index satisfies this.
type WordSource interface {
	CandidatesForLength(length int) []string
}

// State is an immutable snapshot of every entry's fill progress. States
// share Entry values with their ancestors for anything TakeAction did
// not touch.
type State struct {
	Entries []*Entry

	filledEntries []*Entry
	emptyEntries  []*Entry
	wordsUsed     map[string]bool
	nextEntry     *Entry
}

// NewState builds a State from a complete entry list, deriving the
// filled/empty partition and the most-constrained next entry to fill.
func NewState(entries []*Entry) *State {
	s := &State{Entries: entries, wordsUsed: make(map[string]bool)}
	for _, e := range entries {
		if e.WordFixed {
			s.filledEntries = append(s.filledEntries, e)
			s.wordsUsed[e.Word()] = true
		} else {
			s.emptyEntries = append(s.emptyEntries, e)
		}
	}
	s.nextEntry = pickNextEntry(s.emptyEntries)
	return s
}

// NewInitialState builds the starting State for a freshly analyzed
// layout: one Entry per grid.Entry, with candidate words seeded from
// words and narrowed by any pre-filled letters.
func NewInitialState(gridEntries []*grid.Entry, words WordSource) *State {
	entries := make([]*Entry, len(gridEntries))
	for i, ge := range gridEntries {
		pattern := make([]byte, len(ge.InitialPattern))
		copy(pattern, ge.InitialPattern)

		numFixed := countFixed(pattern)
		wordFixed := numFixed == len(pattern)

		var possible []string
		if wordFixed {
			possible = []string{patternString(pattern)}
		} else {
			all := words.CandidatesForLength(len(pattern))
			if numFixed > 0 {
				for _, w := range all {
					if matchesPattern(w, pattern) {
						possible = append(possible, w)
					}
				}
			} else {
				possible = append(possible, all...)
			}
		}

		entries[i] = &Entry{
			Index:           ge.Index,
			Direction:       ge.Direction,
			Coordinates:     ge.Coordinates,
			Dependencies:    ge.Dependencies,
			Pattern:         pattern,
			PossibleWords:   possible,
			NumLettersFixed: numFixed,
			WordFixed:       wordFixed,
		}
	}
	return NewState(entries)
}

func pickNextEntry(empty []*Entry) *Entry {
	if len(empty) == 0 {
		return nil
	}
	best := empty[0]
	for _, e := range empty[1:] {
		if e.NumPossibleWords() < best.NumPossibleWords() ||
			(e.NumPossibleWords() == best.NumPossibleWords() && e.Index < best.Index) {
			best = e
		}
	}
	return best
}

// NextEntryToFill is the most-constrained empty entry, or nil if every
// entry is filled.
func (s *State) NextEntryToFill() *Entry { return s.nextEntry }

// FilledEntries returns the entries whose word is fixed.
func (s *State) FilledEntries() []*Entry { return s.filledEntries }

// EmptyEntries returns the entries still awaiting a word.
func (s *State) EmptyEntries() []*Entry { return s.emptyEntries }

// NumOptions returns the candidate count of the next entry to fill, or
// 0 once the state is terminal.
func (s *State) NumOptions() int {
	if s.nextEntry == nil {
		return 0
	}
	return s.nextEntry.NumPossibleWords()
}

// PossibleActions lists the words that may be placed in the next entry
// to fill. Callers must not mutate the returned slice.
func (s *State) PossibleActions() []string {
	if s.nextEntry == nil {
		return nil
	}
	return s.nextEntry.PossibleWords
}

// IsTerminal reports whether the state is a success (no empty entries
// left) or a failure (the next entry has no candidates).
func (s *State) IsTerminal() bool {
	success := len(s.emptyEntries) == 0
	fail := s.nextEntry != nil && s.nextEntry.NumPossibleWords() == 0
	return success || fail
}

// Reward is the number of filled entries.
func (s *State) Reward() float64 { return float64(len(s.filledEntries)) }

// TakeAction fills the current next entry with action and narrows every
// crossing entry's pattern and candidate list accordingly. It returns a
// new State; s is left untouched.
func (s *State) TakeAction(action string) *State {
	next := s.nextEntry

	newEntries := make([]*Entry, len(s.Entries))
	copy(newEntries, s.Entries)

	filled := &Entry{
		Index:           next.Index,
		Direction:       next.Direction,
		Coordinates:     next.Coordinates,
		Dependencies:    next.Dependencies,
		Pattern:         []byte(action),
		PossibleWords:   []string{action},
		NumLettersFixed: len(next.Pattern),
		WordFixed:       true,
	}
	newEntries[next.Index] = filled

	for pos, deps := range next.Dependencies {
		for _, dep := range deps {
			affected := s.Entries[dep.OtherEntryIndex]
			if affected.WordFixed {
				continue
			}

			pattern := make([]byte, len(affected.Pattern))
			copy(pattern, affected.Pattern)
			pattern[dep.OtherPosition] = action[pos]

			var possible []string
			for _, w := range affected.PossibleWords {
				if w == action || s.wordsUsed[w] {
					continue
				}
				if matchesPattern(w, pattern) {
					possible = append(possible, w)
				}
			}

			newEntries[affected.Index] = &Entry{
				Index:           affected.Index,
				Direction:       affected.Direction,
				Coordinates:     affected.Coordinates,
				Dependencies:    affected.Dependencies,
				Pattern:         pattern,
				PossibleWords:   possible,
				NumLettersFixed: affected.NumLettersFixed + 1,
				WordFixed:       false,
			}
		}
	}

	return NewState(newEntries)
}
