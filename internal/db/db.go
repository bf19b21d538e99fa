package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory backlog.
const MemoryPath = ":memory:"

// backlogPragmas run on every new handle. WAL lets `planner serve` answer
// reads while the CLI rewrites the backlog; busy_timeout makes the writer
// wait instead of failing with SQLITE_BUSY.
var backlogPragmas = []string{
	"PRAGMA journal_mode = WAL",
	"PRAGMA busy_timeout = 5000",
}

// OpenDB opens the backlog database at path, creating its directory, and
// migrates it before returning.
func OpenDB(path string) (*sql.DB, error) {
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// One connection: an in-memory backlog lives on a single connection, and
	// full rewrites are serialized anyway.
	db.SetMaxOpenConns(1)

	for _, pragma := range backlogPragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("applying %q: %w", pragma, err)
		}
	}

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return db, nil
}
