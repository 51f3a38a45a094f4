package sqlite

import "database/sql"

// schema sets up the database. It runs on startup to ensure tables exist.
// Amounts are stored as decimal strings so no precision is lost.
const schema = `
CREATE TABLE IF NOT EXISTS roommates (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    avatar_url TEXT NOT NULL DEFAULT '',
    joined_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS bills (
    id TEXT PRIMARY KEY,
    description TEXT NOT NULL,
    total_amount TEXT NOT NULL,
    paid_by TEXT NOT NULL,
    split_mode TEXT,
    full_owed_by TEXT,
    is_settled INTEGER NOT NULL DEFAULT 0,
    due_date TEXT,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS bill_split_members (
    bill_id TEXT NOT NULL,
    roommate_id TEXT NOT NULL,
    PRIMARY KEY (bill_id, roommate_id),
    FOREIGN KEY (bill_id) REFERENCES bills(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS bill_comments (
    id TEXT PRIMARY KEY,
    bill_id TEXT NOT NULL,
    author_id TEXT NOT NULL,
    text TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (bill_id) REFERENCES bills(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS notifications (
    id TEXT PRIMARY KEY,
    message TEXT NOT NULL,
    type TEXT NOT NULL,
    read INTEGER NOT NULL DEFAULT 0,
    created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_bills_created_at ON bills(created_at);
CREATE INDEX IF NOT EXISTS idx_bill_split_members_bill_id ON bill_split_members(bill_id);
CREATE INDEX IF NOT EXISTS idx_bill_comments_bill_id ON bill_comments(bill_id);
CREATE INDEX IF NOT EXISTS idx_notifications_created_at ON notifications(created_at);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
