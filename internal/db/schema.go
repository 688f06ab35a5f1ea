package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    username      TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    role          TEXT NOT NULL DEFAULT 'user' CHECK (role IN ('admin', 'user')),
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS items (
    id                 TEXT PRIMARY KEY,
    owner_id           INTEGER NOT NULL REFERENCES users(id),
    name               TEXT NOT NULL,
    picture_url        TEXT NOT NULL DEFAULT '',
    item_type          TEXT NOT NULL CHECK (item_type IN ('Clothing', 'Technology', 'Household Item', 'Vehicle', 'Other')),
    status             TEXT NOT NULL DEFAULT 'Keep' CHECK (status IN ('Keep', 'Give', 'Donate', 'Sell', 'Discard')),
    item_received_date DATETIME NOT NULL,
    last_used          DATETIME NOT NULL,
    created_at         DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS item_pictures (
    item_id TEXT PRIMARY KEY REFERENCES items(id) ON DELETE CASCADE,
    data    BLOB NOT NULL,
    mime    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS checkups (
    id                      INTEGER PRIMARY KEY,
    owner_id                INTEGER NOT NULL REFERENCES users(id),
    checkup_type            TEXT NOT NULL DEFAULT 'keep' CHECK (checkup_type IN ('keep', 'give')),
    last_checkup_date       DATETIME NOT NULL,
    checkup_interval_months INTEGER NOT NULL DEFAULT 1 CHECK (checkup_interval_months > 0)
);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS revoked_tokens (
    jti        TEXT PRIMARY KEY,
    expires_at DATETIME NOT NULL
);
`

// EnsureSchema creates all tables if they don't already exist and applies
// pending migrations.
func EnsureSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return migrate(db)
}
