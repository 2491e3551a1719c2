package db

import "context"

type Transactor interface {
	WithTx(ctx context.Context, fn TxFunc) error
}

// NoopTransactor runs fn without opening a transaction.
type NoopTransactor struct{}

func (NoopTransactor) WithTx(ctx context.Context, fn TxFunc) error {
	return fn(ctx)
}
