package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            UUID PRIMARY KEY,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL CHECK (password_hash <> ''),
	role          TEXT NOT NULL CONSTRAINT users_role_check CHECK (role IN ('ADMIN', 'MEMBER', 'TECHNICIAN')),
	designation   TEXT NOT NULL DEFAULT '',
	company       TEXT NOT NULL DEFAULT '',
	first_name    TEXT NOT NULL,
	last_name     TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// EnsureSchema creates the users table if it does not exist. It is idempotent.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, schema)
	return err
}
