package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS clients (
	username      text PRIMARY KEY,
	email         text UNIQUE NOT NULL,
	password_hash text NOT NULL,
	created_at    timestamptz NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS orders (
	id          uuid PRIMARY KEY,
	client_id   text NOT NULL,
	items       jsonb NOT NULL DEFAULT '[]',
	total_items int NOT NULL DEFAULT 0,
	status      text NOT NULL DEFAULT 'Received',
	created_at  timestamptz NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_orders_client ON orders (client_id, created_at DESC);
`

// Migrate applies the idempotent schema on startup.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, schema)
	return err
}
