package db

import (
	"database/sql"
	"fmt"
)

// migrations is a list of SQL statements applied in order after schema creation.
// Each migration must be idempotent. Append new migrations at the end.
var migrations = []string{
	// Migration 1: listing filters by owner and then status or type.
	`CREATE INDEX IF NOT EXISTS idx_items_owner_status ON items(owner_id, status)`,
	`CREATE INDEX IF NOT EXISTS idx_items_owner_type ON items(owner_id, item_type)`,
	// Migration 2: checkups are always listed per owner.
	`CREATE INDEX IF NOT EXISTS idx_checkups_owner ON checkups(owner_id, checkup_type)`,
}

func migrate(db *sql.DB) error {
	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("running migration %d: %w", i+1, err)
		}
	}
	return nil
}
