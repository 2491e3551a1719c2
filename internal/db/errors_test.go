package db

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestHandleError(t *testing.T) {
	cases := []struct {
		desc     string
		err      error
		sentinel error
	}{
		{desc: "unique violation", err: &pgconn.PgError{Code: pgerrcode.UniqueViolation}, sentinel: ErrConflict},
		{desc: "check violation", err: &pgconn.PgError{Code: pgerrcode.CheckViolation}, sentinel: ErrConflict},
		{desc: "string too long", err: &pgconn.PgError{Code: pgerrcode.StringDataRightTruncationDataException}, sentinel: ErrMalformed},
		{desc: "connection failure", err: &pgconn.PgError{Code: pgerrcode.ConnectionFailure}, sentinel: ErrUnavailable},
		{desc: "admin shutdown", err: &pgconn.PgError{Code: pgerrcode.AdminShutdown}, sentinel: ErrUnavailable},
		{desc: "query canceled", err: &pgconn.PgError{Code: pgerrcode.QueryCanceled}, sentinel: ErrCanceled},
		{desc: "context deadline", err: context.DeadlineExceeded, sentinel: ErrCanceled},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			got := HandleError("insert user", tc.err)
			assert.ErrorIs(t, got, tc.sentinel)
			assert.ErrorIs(t, got, tc.err)
			assert.Contains(t, got.Error(), "insert user")
		})
	}
}

func TestHandleErrorUnclassified(t *testing.T) {
	cause := errors.New("boom")
	got := HandleError("select user", cause)

	assert.ErrorIs(t, got, cause)
	for _, s := range []error{ErrConflict, ErrMalformed, ErrUnavailable, ErrCanceled} {
		assert.NotErrorIs(t, got, s)
	}
	assert.Equal(t, "select user: boom", got.Error())
}

func TestHandleErrorNil(t *testing.T) {
	assert.NoError(t, HandleError("noop", nil))
}

func TestNoopTransactor(t *testing.T) {
	called := false
	err := NoopTransactor{}.WithTx(context.Background(), func(ctx context.Context) error {
		called = true
		assert.False(t, InTx(ctx))
		return nil
	})
	assert.NoError(t, err)
	assert.True(t, called)
}
