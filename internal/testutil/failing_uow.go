package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"

	"github.com/dubeymanas69-lgtm/ai-agent/internal/db"
)

// FailOnNthExecUoW injects Err on the FailOn-th ExecContext call inside a
// transaction, so backlog rewrites can be interrupted midway. Reads are not
// counted.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int32
	Err    error
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	wrapped := &failOnNthExec{DBTX: tx, failOn: u.FailOn, err: u.Err}
	if fnErr := fn(ctx, wrapped); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}

type failOnNthExec struct {
	db.DBTX
	count  atomic.Int32
	failOn int32
	err    error
}

func (f *failOnNthExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f.count.Add(1) == f.failOn {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
