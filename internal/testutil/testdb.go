package testutil

import (
	"database/sql"
	"testing"

	"github.com/dubeymanas69-lgtm/ai-agent/internal/db"
	"github.com/stretchr/testify/require"
)

// NewTestDB returns an empty, migrated in-memory backlog. Each call gets its
// own database.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err, "opening test backlog")
	t.Cleanup(func() { _ = database.Close() })
	return database
}

// NewTestUoW wraps database in the production unit of work, so service
// tests commit and roll back exactly as the binary does.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
