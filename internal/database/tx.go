package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Executor is implemented by both *sqlx.DB and *sqlx.Tx.
type Executor interface {
	sqlx.ExtContext
	BindNamed(query string, arg interface{}) (string, []interface{}, error)
	DriverName() string
}

type txKey struct{}

// Conn returns the transaction stored in ctx, or db when there is none.
// Repositories call it on every statement so they join an outer WithTx.
func Conn(ctx context.Context, db *sqlx.DB) Executor {
	if tx, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok {
		return tx
	}
	return db
}

// WithTx runs fn inside a transaction carried by the context passed to fn.
// Nested calls reuse the outer transaction.
func WithTx(ctx context.Context, db *sqlx.DB, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok {
		return fn(ctx)
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// InsertReturningID runs a named INSERT ... RETURNING id and returns the new id.
func InsertReturningID(ctx context.Context, q Executor, query string, arg interface{}) (int64, error) {
	bound, args, err := q.BindNamed(query, arg)
	if err != nil {
		return 0, err
	}
	var id int64
	if err := q.QueryRowxContext(ctx, bound, args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}
