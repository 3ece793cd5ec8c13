package crossword

import (
	"testing"

	"github.com/crossplay/xwordgen/pkg/grid"
)

type fakeWords map[int][]string

func (f fakeWords) CandidatesForLength(length int) []string { return f[length] }

func threeByThreeEntries() []*grid.Entry {
	l := grid.NewBlankLayout(3, 3)
	return grid.AnalyzeLayout(l)
}

func TestNewInitialState_AllEntriesEmpty(t *testing.T) {
	entries := threeByThreeEntries()
	words := fakeWords{3: {"CAT", "DOG", "BAT"}}
	s := NewInitialState(entries, words)

	if len(s.FilledEntries()) != 0 {
		t.Fatalf("expected no filled entries initially, got %d", len(s.FilledEntries()))
	}
	if len(s.EmptyEntries()) != len(entries) {
		t.Fatalf("expected %d empty entries, got %d", len(entries), len(s.EmptyEntries()))
	}
	if s.NextEntryToFill() == nil {
		t.Fatal("expected a next entry to fill")
	}
}

func TestTakeAction_NarrowsCrossingEntries(t *testing.T) {
	entries := threeByThreeEntries()
	words := fakeWords{3: {"CAT", "COT", "DOG"}}
	s := NewInitialState(entries, words)

	next := s.NextEntryToFill()
	action := next.PossibleWords[0]
	s2 := s.TakeAction(action)

	if len(s2.FilledEntries()) != 1 {
		t.Fatalf("expected 1 filled entry after one action, got %d", len(s2.FilledEntries()))
	}
	for _, e := range s2.Entries {
		if e.Index == next.Index {
			if !e.WordFixed || e.Word() != action {
				t.Errorf("filled entry does not reflect the action taken")
			}
		}
	}
	for pos, deps := range next.Dependencies {
		for _, dep := range deps {
			crossing := s2.Entries[dep.OtherEntryIndex]
			if crossing.Pattern[dep.OtherPosition] != action[pos] {
				t.Errorf("entry %d: expected %q fixed at position %d, got pattern %q", crossing.Index, action[pos], dep.OtherPosition, crossing.Word())
			}
			for _, w := range crossing.PossibleWords {
				if w == action || w[dep.OtherPosition] != action[pos] {
					t.Errorf("entry %d still offers %q after %q was placed", crossing.Index, w, action)
				}
			}
		}
	}
}

func TestTakeAction_DoesNotMutatePriorState(t *testing.T) {
	entries := threeByThreeEntries()
	words := fakeWords{3: {"CAT", "COT", "DOG"}}
	s := NewInitialState(entries, words)
	before := s.NextEntryToFill().NumPossibleWords()

	s.TakeAction(s.NextEntryToFill().PossibleWords[0])

	if s.NextEntryToFill().NumPossibleWords() != before {
		t.Error("TakeAction must not mutate the state it was called on")
	}
}

func TestIsTerminal_FailureWhenNoCandidates(t *testing.T) {
	entries := threeByThreeEntries()
	words := fakeWords{3: {}}
	s := NewInitialState(entries, words)
	if !s.IsTerminal() {
		t.Error("expected a terminal (failure) state when no entry has any candidate")
	}
	if s.Reward() != 0 {
		t.Errorf("expected reward 0 for empty grid, got %v", s.Reward())
	}
}

func TestIsTerminal_SuccessWhenAllEntriesFixed(t *testing.T) {
	l := grid.NewBlankLayout(1, 3)
	entries := grid.AnalyzeLayout(l)
	if len(entries) != 1 {
		t.Fatalf("expected a single entry in a 1x3 grid, got %d", len(entries))
	}
	words := fakeWords{3: {"CAT"}}
	s := NewInitialState(entries, words)
	s2 := s.TakeAction("CAT")
	if !s2.IsTerminal() {
		t.Fatal("expected terminal state once all entries are filled")
	}
	if s2.NextEntryToFill() != nil {
		t.Error("expected nil next entry at a fully solved state")
	}
	if s2.Reward() != 1 {
		t.Errorf("expected reward 1, got %v", s2.Reward())
	}
}

func TestPossibleActions_MatchCandidateList(t *testing.T) {
	entries := threeByThreeEntries()
	words := fakeWords{3: {"CAT", "DOG"}}
	s := NewInitialState(entries, words)
	actions := s.PossibleActions()
	if len(actions) != 2 {
		t.Fatalf("expected 2 possible actions, got %d", len(actions))
	}
}

func TestMostConstrainedVariable_TieBreakByIndex(t *testing.T) {
	entries := threeByThreeEntries()
	words := fakeWords{3: {"CAT"}}
	s := NewInitialState(entries, words)
	// All entries tie at 1 candidate each; must pick the lowest index.
	if s.NextEntryToFill().Index != 0 {
		t.Errorf("expected tie-break to choose index 0, got %d", s.NextEntryToFill().Index)
	}
}
