package db

import (
	"fmt"

	migrate "github.com/rubenv/sql-migrate"
)

// Migrations returns the schema of the users service.
func Migrations() *migrate.MemoryMigrationSource {
	return &migrate.MemoryMigrationSource{
		Migrations: []*migrate.Migration{
			{
				Id: "users_01",
				Up: []string{
					`CREATE TABLE IF NOT EXISTS users (
						id          BIGSERIAL PRIMARY KEY,
						name        TEXT NOT NULL CHECK (name <> ''),
						last_name   TEXT NOT NULL CHECK (last_name <> ''),
						rut         TEXT NOT NULL CHECK (rut <> ''),
						address     TEXT NOT NULL CHECK (address <> ''),
						created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
					)`,
				},
				Down: []string{
					`DROP TABLE IF EXISTS users`,
				},
			},
		},
	}
}

// Migrate applies pending migrations and returns how many were applied.
func (c *Client) Migrate() (int, error) {
	n, err := migrate.Exec(c.db.DB, "postgres", Migrations(), migrate.Up)
	if err != nil {
		return 0, fmt.Errorf("apply migrations: %w", err)
	}
	if n > 0 {
		c.logger.Info("applied migrations", "count", n)
	}
	return n, nil
}
