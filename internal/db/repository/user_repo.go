package repository

import (
	"context"
	"database/sql"
	"errors"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/jmoiron/sqlx"

	"usersvc/internal/db"
	dom "usersvc/internal/domain/user"
	"usersvc/internal/logging"
)

type UserRepository struct {
	client *db.Client
	logger logging.Logger
}

func NewUserRepository(client *db.Client, logger logging.Logger) dom.Repository {
	return &UserRepository{
		client: client,
		logger: logger.With("component", "user_repo"),
	}
}

func (r *UserRepository) builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.Postgres)
}

func (r *UserRepository) Create(ctx context.Context, row dom.NewRow) (dom.Row, error) {
	query, args := r.builder().
		Insert(usersTable).
		Columns(colName, colLastName, colRut, colAddress).
		Values(row.Name, row.LastName, row.Rut, row.Address).
		Returning(userColumns...).
		Query()

	var created dom.Row
	if err := sqlx.GetContext(ctx, r.client.Executor(ctx), &created, query, args...); err != nil {
		return dom.Row{}, db.HandleError("insert user", err)
	}
	return created, nil
}

// FindOne locks the row when called inside a transaction so a following
// update or delete cannot race with a concurrent writer.
func (r *UserRepository) FindOne(ctx context.Context, id int64) (dom.Row, bool, error) {
	sel := r.builder().
		Select(userColumns...).
		From(entsql.Table(usersTable)).
		Where(entsql.EQ(colID, id))
	if db.InTx(ctx) {
		sel.ForUpdate()
	}
	query, args := sel.Query()

	var row dom.Row
	if err := sqlx.GetContext(ctx, r.client.Executor(ctx), &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return dom.Row{}, false, nil
		}
		return dom.Row{}, false, db.HandleError("select user", err)
	}
	return row, true, nil
}

func (r *UserRepository) FindMany(ctx context.Context, skip, take int) ([]dom.Row, error) {
	query, args := r.builder().
		Select(userColumns...).
		From(entsql.Table(usersTable)).
		OrderBy(entsql.Asc(colID)).
		Offset(skip).
		Limit(take).
		Query()

	rows := make([]dom.Row, 0, take)
	if err := sqlx.SelectContext(ctx, r.client.Executor(ctx), &rows, query, args...); err != nil {
		return nil, db.HandleError("select users", err)
	}
	return rows, nil
}

func (r *UserRepository) Update(ctx context.Context, id int64, patch dom.Patch) (dom.Row, bool, error) {
	if patch.IsEmpty() {
		return r.FindOne(ctx, id)
	}

	upd := applyPatch(r.builder().Update(usersTable), patch)
	query, args := upd.Where(entsql.EQ(colID, id)).Query()

	res, err := r.client.Executor(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return dom.Row{}, false, db.HandleError("update user", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return dom.Row{}, false, db.HandleError("update user", err)
	}
	if n == 0 {
		return dom.Row{}, false, nil
	}

	return r.FindOne(ctx, id)
}

func (r *UserRepository) Delete(ctx context.Context, id int64) (bool, error) {
	query, args := r.builder().
		Delete(usersTable).
		Where(entsql.EQ(colID, id)).
		Query()

	res, err := r.client.Executor(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return false, db.HandleError("delete user", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, db.HandleError("delete user", err)
	}
	return n > 0, nil
}
