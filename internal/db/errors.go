package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrConflict    = errors.New("db: constraint violation")
	ErrMalformed   = errors.New("db: malformed value")
	ErrUnavailable = errors.New("db: database unavailable")
	ErrCanceled    = errors.New("db: operation canceled")
)

// HandleError annotates a driver error with op and, when it can be classified,
// one of the package sentinels. The original error stays in the chain.
func HandleError(op string, err error) error {
	if err == nil {
		return nil
	}

	if sentinel := classify(err); sentinel != nil {
		return fmt.Errorf("%s: %w: %w", op, sentinel, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func classify(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return ErrCanceled
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return ErrUnavailable
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil
	}

	switch {
	case pgerrcode.IsIntegrityConstraintViolation(pgErr.Code):
		return ErrConflict
	case pgerrcode.IsDataException(pgErr.Code):
		return ErrMalformed
	case pgerrcode.IsConnectionException(pgErr.Code),
		pgErr.Code == pgerrcode.AdminShutdown,
		pgErr.Code == pgerrcode.CannotConnectNow:
		return ErrUnavailable
	case pgErr.Code == pgerrcode.QueryCanceled:
		return ErrCanceled
	}
	return nil
}
