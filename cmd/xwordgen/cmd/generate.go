package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"

	"github.com/crossplay/xwordgen/internal/config"
	"github.com/crossplay/xwordgen/pkg/dashboard"
	"github.com/crossplay/xwordgen/pkg/crossword"
	"github.com/crossplay/xwordgen/pkg/grid"
	"github.com/crossplay/xwordgen/pkg/layoutio"
	"github.com/crossplay/xwordgen/pkg/report"
	"github.com/crossplay/xwordgen/pkg/runstore"
	"github.com/crossplay/xwordgen/pkg/solver"
	"github.com/crossplay/xwordgen/pkg/wordindex"
	"github.com/crossplay/xwordgen/pkg/wordsource"
)

var (
	genPathToLayout         string
	genNumRows              int
	genNumCols              int
	genPathToWords          string
	genMaxNumWords          int
	genMaxMCTSIterations    int
	genRandomSeed           int64
	genOutputPath           string
	genSymmetric            bool
	genBlocksPerRetry       int
	genMaxGeneralIterations int
	genDashboardAddr        string
	genRunDB                string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Fill a crossword grid with words via constraint-guided MCTS",
	Long: `generate reads (or synthesizes) a crossword layout, loads candidate words,
and fills every entry using Monte Carlo tree search guided by the crossing-letter
constraints between entries.

Examples:
  # Synthesize a blank 10x10 grid and fill it from a local word list
  xwordgen generate --num-rows 10 --num-cols 10 --path-to-words "./words/*.csv"

  # Fill an existing layout, persisting the result and watching it live
  xwordgen generate --path-to-layout ./layout.csv --output-path ./out --dashboard-addr :8090`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVar(&genPathToLayout, "path-to-layout", "", "CSV layout to read (default: synthesize a blank grid)")
	generateCmd.Flags().IntVar(&genNumRows, "num-rows", config.DefaultNumRows, "rows in a synthesized blank grid (ignored with --path-to-layout)")
	generateCmd.Flags().IntVar(&genNumCols, "num-cols", config.DefaultNumCols, "columns in a synthesized blank grid (ignored with --path-to-layout)")
	generateCmd.Flags().StringVar(&genPathToWords, "path-to-words", "", "glob of CSV word files (default: fetch the fallback dictionary)")
	generateCmd.Flags().IntVar(&genMaxNumWords, "max-num-words", config.MaxNumWords, "cap on candidate words across all lengths (0 = no cap)")
	generateCmd.Flags().IntVar(&genMaxMCTSIterations, "max-mcts-iterations", config.MaxMCTSIterations, "MCTS search budget per move")
	generateCmd.Flags().Int64Var(&genRandomSeed, "random-seed", config.RandomSeed, "seed for every random decision")
	generateCmd.Flags().StringVar(&genOutputPath, "output-path", "", "directory to write timestamped result CSVs (default: none)")
	generateCmd.Flags().BoolVar(&genSymmetric, "symmetric", config.SymmetricDesign, "mirror added blocks 180 degrees between retries")
	generateCmd.Flags().IntVar(&genBlocksPerRetry, "blocks-per-retry", config.NumBlocksToAddIfUnsuccessful, "blocks added to the grid after an unsolved attempt")
	generateCmd.Flags().IntVar(&genMaxGeneralIterations, "max-general-iterations", config.MaxGeneralIterations, "maximum number of layout attempts")
	generateCmd.Flags().StringVar(&genDashboardAddr, "dashboard-addr", getEnv("XWORDGEN_DASHBOARD_ADDR", ""), "if set, serve a live-progress dashboard at this address for the run's duration")
	generateCmd.Flags().StringVar(&genRunDB, "run-db", getEnv("XWORDGEN_RUN_DB", config.DefaultRunDBPath), "SQLite run-history database path (empty disables recording)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	runTag := uuid.New().String()

	layout, err := loadOrSynthesizeLayout()
	if err != nil {
		return fmt.Errorf("xwordgen: %w", err)
	}
	infof("[%s] layout: %dx%d", runTag, layout.Rows, layout.Cols)

	entries := grid.AnalyzeLayout(layout)
	lengths := entryLengths(entries)

	idx, err := loadWords(ctx, lengths)
	if err != nil {
		return fmt.Errorf("xwordgen: %w", err)
	}
	infof("[%s] loaded %d candidate words", runTag, idx.Size())

	var store *runstore.Store
	if genRunDB != "" {
		store, err = openRunStore(genRunDB)
		if err != nil {
			return fmt.Errorf("xwordgen: %w", err)
		}
	}

	var hub *dashboard.Hub
	if genDashboardAddr != "" {
		hub = dashboard.NewHub()
		go hub.Run()
		srv := dashboard.NewServer(genDashboardAddr, hub, store)
		go func() {
			if err := srv.ListenAndServe(); err != nil {
				infof("[%s] dashboard server stopped: %v", runTag, err)
			}
		}()
	}

	start := time.Now()

	var runID int64
	if store != nil {
		runID, err = store.CreateRun(start, layout.Rows, layout.Cols, genRandomSeed)
		if err != nil {
			return fmt.Errorf("xwordgen: reserve run record: %w", err)
		}
		infof("[%s] reserved as run %d in %s", runTag, runID, genRunDB)
	}

	cfg := solver.Config{
		IterationLimit: genMaxMCTSIterations,
		RandomSeed:     genRandomSeed,
		OnStep: func(step solver.StepResult) {
			infof("[%s] step %d/%d: entry %d -> %q", runTag, step.Generation, step.TotalEntries, step.EntryIndex, step.Word)
			if hub != nil {
				hub.Publish(runID, step)
			}
		},
	}
	retryCfg := solver.RetryConfig{
		MaxGeneralIterations:         genMaxGeneralIterations,
		NumBlocksToAddIfUnsuccessful: genBlocksPerRetry,
		SymmetricDesign:              genSymmetric,
	}

	rng := rand.New(rand.NewSource(genRandomSeed))
	attempt, err := solver.RunWithRetries(layout, func(entries []*grid.Entry) crossword.WordSource { return idx }, cfg, retryCfg, rng)
	if err != nil {
		return fmt.Errorf("xwordgen: %w", err)
	}
	elapsed := time.Since(start)

	if attempt.Result.Solved {
		fmt.Printf("Solved in %s.\n", elapsed)
	} else {
		fmt.Println("Failed to find a solution.")
	}

	if store != nil {
		if err := store.UpdateRun(runID, attempt.Result.Solved, elapsed, attempt.Result.Steps); err != nil {
			return fmt.Errorf("xwordgen: record run: %w", err)
		}
		infof("[%s] recorded as run %d in %s", runTag, runID, genRunDB)
	}

	if genOutputPath != "" {
		timestamp := start.Format("2006_01_02_15_04_05")
		if err := report.PersistRun(genOutputPath, timestamp, attempt.Result, attempt.Layout.Rows, attempt.Layout.Cols); err != nil {
			return fmt.Errorf("xwordgen: %w", err)
		}
		fmt.Printf("Results written to %s\n", genOutputPath)
	}

	fmt.Print(report.FormatGrid(report.RenderGrid(attempt.Result.FinalState, attempt.Layout.Rows, attempt.Layout.Cols)))
	return nil
}

func loadOrSynthesizeLayout() (*grid.Layout, error) {
	if genPathToLayout != "" {
		return layoutio.ReadCSV(genPathToLayout)
	}
	return layoutio.NewBlank(genNumRows, genNumCols)
}

func entryLengths(entries []*grid.Entry) []int {
	seen := make(map[int]bool)
	var lengths []int
	for _, e := range entries {
		if !seen[e.Length] {
			seen[e.Length] = true
			lengths = append(lengths, e.Length)
		}
	}
	return lengths
}

func loadWords(ctx context.Context, lengths []int) (*wordindex.Index, error) {
	rng := rand.New(rand.NewSource(genRandomSeed))

	if genPathToWords != "" {
		return wordsource.LoadCSVGlob(genPathToWords, lengths, genMaxNumWords, rng)
	}

	raw, err := wordsource.FetchDictionary(ctx, config.FallbackWordListURL)
	if err != nil {
		return nil, fmt.Errorf("fetch fallback dictionary: %w", err)
	}
	return wordindex.Build(raw, lengths, genMaxNumWords, rng), nil
}

func openRunStore(path string) (*runstore.Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open run database %s: %w", path, err)
	}
	return runstore.NewStore(db)
}
