package wordindex

import (
	"math/rand"
	"testing"
)

func TestBuild_NormalizesAndFilters(t *testing.T) {
	raw := []string{"cat", "Dog!", "a", "CAT", "toolong1", "bird-3"}
	idx := Build(raw, []int{3, 4}, 0, rand.New(rand.NewSource(1)))

	cats := idx.CandidatesForLength(3)
	if len(cats) != 2 || cats[0] != "CAT" || cats[1] != "DOG" {
		t.Errorf("expected deduped [CAT DOG], got %v", cats)
	}

	dogs := idx.CandidatesForLength(3)
	found := false
	for _, w := range dogs {
		if w == "DOG" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected DOG among length-3 words, got %v", dogs)
	}

	birds := idx.CandidatesForLength(4)
	if len(birds) != 1 || birds[0] != "BIRD" {
		t.Errorf("expected BIRD (non-letters stripped) at length 4, got %v", birds)
	}
}

func TestBuild_SortedAscending(t *testing.T) {
	idx := Build([]string{"ZEBRA", "APPLE", "MANGO"}, []int{5}, 0, rand.New(rand.NewSource(1)))
	got := idx.CandidatesForLength(5)
	want := []string{"APPLE", "MANGO", "ZEBRA"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestBuild_CapAppliesSampling(t *testing.T) {
	raw := []string{"AAA", "BBB", "CCC", "DDD", "EEE"}
	idx := Build(raw, []int{3}, 2, rand.New(rand.NewSource(42)))
	got := idx.CandidatesForLength(3)
	if len(got) != 2 {
		t.Fatalf("expected cap of 2 words, got %d", len(got))
	}
}

func TestBuild_Deterministic(t *testing.T) {
	raw := []string{"AAA", "BBB", "CCC", "DDD", "EEE"}
	idx1 := Build(raw, []int{3}, 2, rand.New(rand.NewSource(42)))
	idx2 := Build(raw, []int{3}, 2, rand.New(rand.NewSource(42)))
	if idx1.CandidatesForLength(3)[0] != idx2.CandidatesForLength(3)[0] {
		t.Error("same seed must produce same sample")
	}
}

func TestBuild_DropsWrongLengths(t *testing.T) {
	idx := Build([]string{"AB", "ABC", "ABCD"}, []int{3}, 0, rand.New(rand.NewSource(1)))
	if len(idx.CandidatesForLength(2)) != 0 {
		t.Error("length 2 should have been dropped, not in wordLengths")
	}
	if len(idx.CandidatesForLength(3)) != 1 {
		t.Error("expected exactly one length-3 word")
	}
}
