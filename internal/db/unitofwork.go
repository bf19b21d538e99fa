package db

import (
	"context"
	"database/sql"
	"fmt"
)

// UnitOfWork runs fn inside one transaction. fn must only touch the store
// through tx; the pool holds a single connection.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error
}

type SQLiteUnitOfWork struct {
	db *sql.DB
}

func NewSQLiteUnitOfWork(db *sql.DB) *SQLiteUnitOfWork {
	return &SQLiteUnitOfWork{db: db}
}

// WithinTx commits when fn returns nil and rolls back on error or panic.
func (u *SQLiteUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error {
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
