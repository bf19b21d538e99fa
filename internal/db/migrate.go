package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Migrate brings the schema up to date. Every step is safe to re-run.
func Migrate(db *sql.DB) error {
	if err := migrateLegacyTasks(db); err != nil {
		return fmt.Errorf("upgrading legacy tasks table: %w", err)
	}
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

const tasksTableDDL = `CREATE TABLE IF NOT EXISTS %s (
		id               TEXT PRIMARY KEY,
		name             TEXT NOT NULL,
		duration_minutes INTEGER NOT NULL DEFAULT 60,
		priority         TEXT NOT NULL DEFAULT 'medium',
		deadline         TEXT,
		earliest_start   TEXT,
		created_at       TEXT NOT NULL,
		position         INTEGER NOT NULL DEFAULT 0
	)`

var migrations = []string{
	fmt.Sprintf(tasksTableDDL, "tasks"),
	`CREATE INDEX IF NOT EXISTS idx_tasks_position ON tasks(position)`,
}

// migrateLegacyTasks rebuilds a tasks table created by the first version of
// the planner (task_name, status, scheduled_date columns) into the current
// layout. Rows keep their insertion order as backlog position.
func migrateLegacyTasks(db *sql.DB) error {
	ctx := context.Background()

	cols, err := tableColumns(ctx, db, "tasks")
	if err != nil {
		return err
	}
	if !cols["task_name"] {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting migration transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	stmts := []string{
		`DROP TABLE IF EXISTS tasks_new`,
		fmt.Sprintf(tasksTableDDL, "tasks_new"),
		`INSERT INTO tasks_new (id, name, duration_minutes, priority, deadline, earliest_start, created_at, position)
		SELECT id,
		       task_name,
		       CASE WHEN duration_minutes IS NULL OR duration_minutes <= 0 THEN 60 ELSE duration_minutes END,
		       CASE WHEN LOWER(TRIM(COALESCE(priority, ''))) IN ('high','medium','low')
		            THEN LOWER(TRIM(priority)) ELSE 'medium' END,
		       NULLIF(SUBSTR(COALESCE(deadline, ''), 1, 10), ''),
		       NULL,
		       COALESCE(NULLIF(created_at, ''), strftime('%Y-%m-%dT%H:%M:%SZ', 'now')),
		       rowid
		FROM tasks`,
		`DROP TABLE tasks`,
		`ALTER TABLE tasks_new RENAME TO tasks`,
	}
	for i, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("legacy tasks step %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing legacy tasks migration: %w", err)
	}
	committed = true
	return nil
}

func tableColumns(ctx context.Context, db *sql.DB, table string) (map[string]bool, error) {
	rows, err := db.QueryContext(ctx, `SELECT name FROM pragma_table_info(?)`, table)
	if err != nil {
		return nil, fmt.Errorf("reading %s columns: %w", table, err)
	}
	defer rows.Close()

	cols := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning %s column: %w", table, err)
		}
		cols[name] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s columns: %w", table, err)
	}
	return cols, nil
}
