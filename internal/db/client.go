package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"usersvc/internal/config"
	"usersvc/internal/logging"
)

const driverName = "pgx"

type Client struct {
	db     *sqlx.DB
	pool   *pgxpool.Pool
	logger logging.Logger
}

// NewClient opens a pgx pool, exposes it through database/sql + sqlx and
// verifies connectivity.
func NewClient(ctx context.Context, cfg config.PostgresConfig, logger logging.Logger) (*Client, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.EffectiveDSN())
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	poolCfg.MaxConns = cfg.Pool.MaxConns
	poolCfg.MinConns = cfg.Pool.MinConns
	poolCfg.MaxConnLifetime = cfg.Pool.MaxConnLifetime
	poolCfg.MaxConnIdleTime = cfg.Pool.MaxConnIdleTime
	poolCfg.HealthCheckPeriod = cfg.Pool.HealthCheckPeriod

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}

	sqlDB := sqlx.NewDb(stdlib.OpenDBFromPool(pool), driverName)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		pool.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}

	return &Client{
		db:     sqlDB,
		pool:   pool,
		logger: logger.With("component", "db_client"),
	}, nil
}

// NewClientFromDB wraps an already opened connection. Used by tests.
func NewClientFromDB(sqlDB *sqlx.DB, logger logging.Logger) *Client {
	return &Client{
		db:     sqlDB,
		logger: logger.With("component", "db_client"),
	}
}

// DB returns the underlying sqlx handle.
func (c *Client) DB() *sqlx.DB {
	return c.db
}

// Close closes the database/sql handle and the pgx pool behind it.
func (c *Client) Close() error {
	err := c.db.Close()
	if c.pool != nil {
		c.pool.Close()
	}
	return err
}

// Ping is used by health checks.
func (c *Client) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

// Executor returns the transaction bound to ctx, or the pool when there is none.
func (c *Client) Executor(ctx context.Context) sqlx.ExtContext {
	if tx, ok := txFromContext(ctx); ok {
		return tx
	}
	return c.db
}
