package cmd

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"

	"github.com/crossplay/xwordgen/internal/config"
	"github.com/crossplay/xwordgen/pkg/dashboard"
	"github.com/crossplay/xwordgen/pkg/runstore"
)

var (
	serveAddr  string
	serveRunDB string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the run-history dashboard standalone",
	Long: `serve starts the dashboard HTTP API and websocket feed against a
run-history database populated by prior "generate" invocations, without
running a solve itself.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", getEnv("XWORDGEN_DASHBOARD_ADDR", config.DefaultDashboardAddr), "address to bind the dashboard server to")
	serveCmd.Flags().StringVar(&serveRunDB, "run-db", getEnv("XWORDGEN_RUN_DB", config.DefaultRunDBPath), "SQLite run-history database path")
}

func runServe(cmd *cobra.Command, args []string) error {
	db, err := sql.Open("sqlite3", serveRunDB)
	if err != nil {
		return fmt.Errorf("xwordgen: open run database %s: %w", serveRunDB, err)
	}
	defer db.Close()

	store, err := runstore.NewStore(db)
	if err != nil {
		return fmt.Errorf("xwordgen: %w", err)
	}

	hub := dashboard.NewHub()
	go hub.Run()

	srv := dashboard.NewServer(serveAddr, hub, store)
	return srv.ListenAndServe()
}
