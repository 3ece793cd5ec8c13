package runstore

import (
	"database/sql"
	"fmt"
)

// Schema defines the SQL schema for the run history database.
const Schema = `
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	started_at DATETIME NOT NULL,
	num_rows INTEGER NOT NULL,
	num_cols INTEGER NOT NULL,
	random_seed INTEGER NOT NULL,
	solved BOOLEAN NOT NULL,
	elapsed_ms INTEGER NOT NULL,
	steps_json TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
`

// InitDB creates the run history schema if it does not already exist.
func InitDB(db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("runstore: database connection is nil")
	}
	if _, err := db.Exec(Schema); err != nil {
		return fmt.Errorf("runstore: initialize schema: %w", err)
	}
	return nil
}
