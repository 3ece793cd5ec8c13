// Package report renders a solved (or partially solved) crossword
// state to a human-readable grid and persists per-step statistics and
// the final grid as timestamped CSV files, in both comma and
// semicolon flavors.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/crossplay/xwordgen/pkg/crossword"
	"github.com/crossplay/xwordgen/pkg/solver"
)

// RenderGrid lays every entry's current pattern back onto a rows x cols
// grid of letters, using '.' for cells no entry ever covers and '_' for
// cells that are still unfixed.
func RenderGrid(state *crossword.State, rows, cols int) [][]byte {
	grid := make([][]byte, rows)
	for r := range grid {
		grid[r] = make([]byte, cols)
		for c := range grid[r] {
			grid[r][c] = '.'
		}
	}

	for _, e := range state.FilledEntries() {
		placeEntry(grid, e)
	}
	for _, e := range state.EmptyEntries() {
		placeEntry(grid, e)
	}
	return grid
}

func placeEntry(grid [][]byte, e *crossword.Entry) {
	for i, coord := range e.Coordinates {
		letter := e.Pattern[i]
		if letter == 0 {
			letter = '_'
		}
		grid[coord.Row][coord.Col] = letter
	}
}

// FormatGrid renders grid as lines of space-separated characters.
func FormatGrid(grid [][]byte) string {
	var b strings.Builder
	for _, row := range grid {
		for i, ch := range row {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteByte(ch)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// csvVariant is one of the two delimiter flavors the reference
// implementation persists every run as.
type csvVariant struct {
	suffix string
	sep    byte
}

var csvVariants = []csvVariant{
	{suffix: "en", sep: ','},
	{suffix: "de", sep: ';'},
}

// PersistRun writes the final grid and per-step statistics to
// outputDir as four timestamped CSV files (grid and statistics, each in
// comma and semicolon variants), mirroring the reference
// implementation's dual-locale export.
func PersistRun(outputDir, timestamp string, result *solver.Result, rows, cols int) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("report: create output dir: %w", err)
	}

	grid := RenderGrid(result.FinalState, rows, cols)

	for _, v := range csvVariants {
		gridPath := filepath.Join(outputDir, fmt.Sprintf("%s_layout_%s.csv", timestamp, v.suffix))
		if err := writeGridCSV(gridPath, grid, v.sep); err != nil {
			return err
		}

		statsPath := filepath.Join(outputDir, fmt.Sprintf("%s_statistics_%s.csv", timestamp, v.suffix))
		if err := writeStatsCSV(statsPath, result.Steps, v.sep); err != nil {
			return err
		}
	}
	return nil
}

func writeGridCSV(path string, grid [][]byte, sep byte) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: create %s: %w", path, err)
	}
	defer f.Close()

	s := string(sep)
	for r, row := range grid {
		fields := make([]string, len(row)+1)
		fields[0] = fmt.Sprintf("%d", r)
		for c, ch := range row {
			fields[c+1] = string(ch)
		}
		if _, err := fmt.Fprintln(f, strings.Join(fields, s)); err != nil {
			return fmt.Errorf("report: write %s: %w", path, err)
		}
	}
	return nil
}

func writeStatsCSV(path string, steps []solver.StepResult, sep byte) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: create %s: %w", path, err)
	}
	defer f.Close()

	s := string(sep)
	header := []string{"generation", "total_entries", "entry_index", "options_before", "word", "expected_reward", "num_visits", "known_future_gens"}
	if _, err := fmt.Fprintln(f, strings.Join(header, s)); err != nil {
		return fmt.Errorf("report: write %s: %w", path, err)
	}

	for _, step := range steps {
		row := []string{
			fmt.Sprintf("%d", step.Generation),
			fmt.Sprintf("%d", step.TotalEntries),
			fmt.Sprintf("%d", step.EntryIndex),
			fmt.Sprintf("%d", step.OptionsBefore),
			step.Word,
			fmt.Sprintf("%.4f", step.ExpectedReward),
			fmt.Sprintf("%d", step.NumVisits),
			fmt.Sprintf("%d", step.KnownFutureGens),
		}
		if _, err := fmt.Fprintln(f, strings.Join(row, s)); err != nil {
			return fmt.Errorf("report: write %s: %w", path, err)
		}
	}
	return nil
}
