package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

var verbosity int

var rootCmd = &cobra.Command{
	Use:   "xwordgen",
	Short: "Constraint-guided crossword grid solver",
	Long: `xwordgen fills a crossword grid with words using Monte Carlo tree search
guided by the crossing-letter constraints between entries.

It reads a layout (or synthesizes a blank one), loads candidate words from
local CSV files or a fallback online dictionary, and searches move by move
until every entry is filled or no candidate matches.`,
	Version: version,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to happen
// once to rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := godotenv.Load(); err != nil {
		// No .env file is fine; flags fall back to their own defaults.
	}

	rootCmd.PersistentFlags().IntVarP(&verbosity, "verbosity", "v", 0, "verbosity level (0=errors only, 1=info)")
}

func infof(format string, args ...interface{}) {
	if verbosity > 0 {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}

// getEnv returns the named environment variable, falling back to
// defaultValue if it is unset or empty. Flags registered with this still
// accept an explicit --flag override at the command line.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
