// Package wordsource loads raw candidate word lists from local CSV
// files or, failing that, a remote fallback dictionary, and hands them
// to pkg/wordindex for normalization.
package wordsource

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/crossplay/xwordgen/pkg/wordindex"
)

// answerColumnNames are the header spellings accepted for the column
// holding each row's candidate word; matched case-insensitively.
var answerColumnNames = []string{"answer", "word"}

// LoadCSVGlob loads every CSV file matching pattern (skipping any path
// containing "special"), unions the values of their answer column, and
// builds a normalized wordindex.Index sized to wordLengths.
func LoadCSVGlob(pattern string, wordLengths []int, maxNumWords int, rng *rand.Rand) (*wordindex.Index, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("wordsource: bad glob pattern %q: %w", pattern, err)
	}

	var paths []string
	for _, p := range matches {
		if !strings.Contains(p, "special") {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)

	if len(paths) == 0 {
		return nil, fmt.Errorf("wordsource: no files matched pattern %q", pattern)
	}

	var raw []string
	for _, path := range paths {
		words, err := readAnswerColumn(path)
		if err != nil {
			return nil, fmt.Errorf("wordsource: reading %s: %w", path, err)
		}
		raw = append(raw, words...)
	}

	return wordindex.Build(raw, wordLengths, maxNumWords, rng), nil
}

func readAnswerColumn(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = detectSeparator(path)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	col := findAnswerColumn(records[0])
	if col == -1 {
		return nil, fmt.Errorf("no answer/word column found in header %v", records[0])
	}

	var words []string
	for _, row := range records[1:] {
		if col < len(row) {
			words = append(words, row[col])
		}
	}
	return words, nil
}

func findAnswerColumn(header []string) int {
	for i, h := range header {
		lower := strings.ToLower(strings.TrimSpace(h))
		for _, name := range answerColumnNames {
			if lower == name {
				return i
			}
		}
	}
	return -1
}

// detectSeparator peeks at a file's first line and picks semicolon when
// it holds more semicolons than commas, comma otherwise, mirroring a
// pandas sep=None auto-detection closely enough for the two delimiters
// this project's word lists use.
func detectSeparator(path string) rune {
	f, err := os.Open(path)
	if err != nil {
		return ','
	}
	defer f.Close()

	buf := make([]byte, 512)
	n, _ := f.Read(buf)
	line := string(buf[:n])
	if idx := strings.IndexByte(line, '\n'); idx != -1 {
		line = line[:idx]
	}

	if strings.Count(line, ";") > strings.Count(line, ",") {
		return ';'
	}
	return ','
}
