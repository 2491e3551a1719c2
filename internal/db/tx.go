package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// TxFunc receives a context carrying the open transaction. Repositories built
// on Client.Executor pick it up automatically.
type TxFunc func(ctx context.Context) error

type txKey struct{}

func txFromContext(ctx context.Context) (*sqlx.Tx, bool) {
	tx, ok := ctx.Value(txKey{}).(*sqlx.Tx)
	return tx, ok
}

// InTx reports whether ctx carries an open transaction.
func InTx(ctx context.Context) bool {
	_, ok := txFromContext(ctx)
	return ok
}

// WithTx runs the given function in a transaction. Nested calls join the
// outer transaction.
func (c *Client) WithTx(ctx context.Context, fn TxFunc) error {
	if InTx(ctx) {
		return fn(ctx)
	}

	tx, err := c.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("start tx: %w", err)
	}

	// If fn panics, rollback and re-panic.
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("tx rollback: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("tx commit: %w", err)
	}
	return nil
}
