package db

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesTasksTable(t *testing.T) {
	db := openTestDB(t)

	cols, err := tableColumns(t.Context(), db, "tasks")
	require.NoError(t, err)
	for _, c := range []string{"id", "name", "duration_minutes", "priority", "deadline", "earliest_start", "created_at", "position"} {
		assert.True(t, cols[c], "column %s should exist", c)
	}
	assert.False(t, cols["task_name"])

	var idx string
	err = db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name='idx_tasks_position'`).Scan(&idx)
	require.NoError(t, err)
}

func TestMigrate_Defaults(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO tasks (id, name, created_at) VALUES ('t1', 'Read', '2024-01-01T00:00:00Z')`)
	require.NoError(t, err)

	var dur int
	var prio string
	require.NoError(t, db.QueryRow(`SELECT duration_minutes, priority FROM tasks WHERE id='t1'`).Scan(&dur, &prio))
	assert.Equal(t, 60, dur)
	assert.Equal(t, "medium", prio)
}

func TestOpenDB_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "planner.db")

	db, err := OpenDB(path)
	require.NoError(t, err)
	defer db.Close()

	assert.FileExists(t, path)

	var mode string
	require.NoError(t, db.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "wal", mode)

	var timeout int
	require.NoError(t, db.QueryRow(`PRAGMA busy_timeout`).Scan(&timeout))
	assert.Equal(t, 5000, timeout)
}

func TestMigrate_UpgradesLegacyTasksTable(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE tasks (
		id TEXT PRIMARY KEY,
		task_name TEXT NOT NULL,
		duration_minutes INTEGER,
		priority TEXT,
		deadline TEXT,
		created_at TEXT,
		status TEXT DEFAULT 'pending',
		scheduled_date TEXT
	)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO tasks (id, task_name, duration_minutes, priority, deadline, created_at) VALUES
		('b', 'Second inserted', NULL, 'HIGH', '2024-02-01', '2024-01-01T10:00:00'),
		('a', 'First inserted', 45, 'urgent', NULL, NULL)`)
	require.NoError(t, err)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db), "upgrade must not re-run")

	cols, err := tableColumns(t.Context(), db, "tasks")
	require.NoError(t, err)
	assert.True(t, cols["name"])
	assert.False(t, cols["task_name"])
	assert.False(t, cols["scheduled_date"])

	rows, err := db.Query(`SELECT id, name, duration_minutes, priority, deadline FROM tasks ORDER BY position`)
	require.NoError(t, err)
	defer rows.Close()

	type row struct {
		id, name, prio string
		dur            int
		deadline       sql.NullString
	}
	var got []row
	for rows.Next() {
		var r row
		require.NoError(t, rows.Scan(&r.id, &r.name, &r.dur, &r.prio, &r.deadline))
		got = append(got, r)
	}
	require.NoError(t, rows.Err())
	require.Len(t, got, 2)

	assert.Equal(t, "b", got[0].id, "insertion order is kept")
	assert.Equal(t, "Second inserted", got[0].name)
	assert.Equal(t, 60, got[0].dur)
	assert.Equal(t, "high", got[0].prio)
	assert.Equal(t, "2024-02-01", got[0].deadline.String)

	assert.Equal(t, 45, got[1].dur)
	assert.Equal(t, "medium", got[1].prio)
	assert.False(t, got[1].deadline.Valid)
}
