// Package wordindex normalizes a raw word list and groups it by length so
// the solver can hand out an initial candidate set to every entry.
package wordindex

import (
	"math/rand"
	"sort"
	"strings"
)

// Index holds normalized candidate words grouped by length.
type Index struct {
	byLength map[int][]string
}

// Build normalizes raw into an Index restricted to wordLengths.
//
// Normalization, in order: drop non-alphabetic characters and uppercase
// the rest, drop words whose resulting length is not wanted, deduplicate,
// sort ascending for determinism, then (if the result still exceeds
// maxNumWords) sample maxNumWords of them uniformly without replacement
// using rng. maxNumWords <= 0 means no cap.
func Build(raw []string, wordLengths []int, maxNumWords int, rng *rand.Rand) *Index {
	wanted := make(map[int]bool, len(wordLengths))
	for _, l := range wordLengths {
		wanted[l] = true
	}

	seen := make(map[string]bool)
	var cleaned []string
	for _, w := range raw {
		u := cleanWord(w)
		if u == "" || !wanted[len(u)] {
			continue
		}
		if seen[u] {
			continue
		}
		seen[u] = true
		cleaned = append(cleaned, u)
	}
	sort.Strings(cleaned)

	if maxNumWords > 0 && len(cleaned) > maxNumWords {
		cleaned = sampleWithoutReplacement(cleaned, maxNumWords, rng)
	}

	idx := &Index{byLength: make(map[int][]string)}
	for _, w := range cleaned {
		idx.byLength[len(w)] = append(idx.byLength[len(w)], w)
	}
	return idx
}

// cleanWord uppercases w and strips every byte outside A-Z.
func cleanWord(w string) string {
	var b strings.Builder
	b.Grow(len(w))
	for _, r := range strings.ToUpper(w) {
		if r >= 'A' && r <= 'Z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// sampleWithoutReplacement draws n items from words without replacement,
// preserving none of the original order (the sample order is the draw
// order, matching the reference implementation's np.random.choice).
func sampleWithoutReplacement(words []string, n int, rng *rand.Rand) []string {
	pool := make([]string, len(words))
	copy(pool, words)
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	return pool[:n]
}

// CandidatesForLength returns the ordered candidate list for entries of
// the given length. The returned slice must not be mutated by callers.
func (idx *Index) CandidatesForLength(length int) []string {
	return idx.byLength[length]
}

// Size returns the total number of indexed words across all lengths.
func (idx *Index) Size() int {
	n := 0
	for _, words := range idx.byLength {
		n += len(words)
	}
	return n
}
