package cmd

import (
	"testing"

	"github.com/crossplay/xwordgen/pkg/grid"
)

func TestEntryLengths_DedupesPreservingFirstSeenOrder(t *testing.T) {
	entries := []*grid.Entry{
		{Length: 5},
		{Length: 3},
		{Length: 5},
		{Length: 7},
		{Length: 3},
	}

	got := entryLengths(entries)
	want := []int{5, 3, 7}

	if len(got) != len(want) {
		t.Fatalf("entryLengths(...) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("entryLengths(...) = %v, want %v", got, want)
		}
	}
}

func TestEntryLengths_EmptyForNoEntries(t *testing.T) {
	if got := entryLengths(nil); got != nil {
		t.Errorf("expected nil for no entries, got %v", got)
	}
}
