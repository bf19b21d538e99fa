package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dubeymanas69-lgtm/ai-agent/internal/db"
	"github.com/dubeymanas69-lgtm/ai-agent/internal/domain"
)

const taskColumns = `id, name, duration_minutes, priority, deadline, earliest_start, created_at`

// SQLiteTaskRepo implements TaskRepo using a SQLite database. Backlog order
// is kept in the position column.
type SQLiteTaskRepo struct {
	db db.DBTX
}

func NewSQLiteTaskRepo(conn db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: conn}
}

func (r *SQLiteTaskRepo) List(ctx context.Context) ([]domain.Task, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY position, rowid`)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	tasks := []domain.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	return t, err
}

// Replace overwrites the stored backlog with tasks, in order. Run it inside
// a unit of work so readers never observe a half-written list.
func (r *SQLiteTaskRepo) Replace(ctx context.Context, tasks []domain.Task) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return fmt.Errorf("clearing tasks: %w", err)
	}

	query := `INSERT INTO tasks (` + taskColumns + `, position) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	for i, t := range tasks {
		createdAt := t.CreatedAt
		if createdAt.IsZero() {
			createdAt = nowUTC()
		}
		_, err := r.db.ExecContext(ctx, query,
			t.ID,
			t.Name,
			t.EffectiveDuration(),
			string(t.EffectivePriority()),
			nullableTimeToString(t.Deadline, domain.DateLayout),
			nullableTimeToString(t.EarliestStart, time.RFC3339),
			createdAt.UTC().Format(time.RFC3339),
			i,
		)
		if err != nil {
			return fmt.Errorf("inserting task %s: %w", t.ID, err)
		}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var t domain.Task
	var priority, createdAt string
	var deadline, earliestStart sql.NullString

	err := row.Scan(&t.ID, &t.Name, &t.DurationMin, &priority, &deadline, &earliestStart, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning task: %w", err)
	}

	t.Priority = domain.ParsePriority(priority)
	t.Deadline = parseNullableTime(deadline, domain.DateLayout)
	t.EarliestStart = parseNullableTime(earliestStart, time.RFC3339)
	t.CreatedAt = parseTimestamp(createdAt)
	return &t, nil
}
