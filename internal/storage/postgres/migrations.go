package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS roommates (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    avatar_url TEXT NOT NULL DEFAULT '',
    joined_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS bills (
    seq BIGSERIAL,
    id TEXT PRIMARY KEY,
    description TEXT NOT NULL,
    total_amount NUMERIC NOT NULL CHECK (total_amount > 0),
    paid_by TEXT NOT NULL,
    split_mode TEXT CHECK (split_mode IN ('split', 'full')),
    full_owed_by TEXT,
    is_settled BOOLEAN NOT NULL DEFAULT FALSE,
    due_date DATE,
    created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS bill_split_members (
    bill_id TEXT NOT NULL REFERENCES bills(id) ON DELETE CASCADE,
    roommate_id TEXT NOT NULL,
    PRIMARY KEY (bill_id, roommate_id)
);

CREATE TABLE IF NOT EXISTS bill_comments (
    seq BIGSERIAL,
    id TEXT PRIMARY KEY,
    bill_id TEXT NOT NULL REFERENCES bills(id) ON DELETE CASCADE,
    author_id TEXT NOT NULL,
    text TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS notifications (
    seq BIGSERIAL,
    id TEXT PRIMARY KEY,
    message TEXT NOT NULL,
    type TEXT NOT NULL,
    read BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_bills_created_at ON bills(created_at);
CREATE INDEX IF NOT EXISTS idx_bill_comments_bill_id ON bill_comments(bill_id);
CREATE INDEX IF NOT EXISTS idx_notifications_created_at ON notifications(created_at);
`

func runMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, schema)
	return err
}
