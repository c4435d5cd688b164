// Package journal records the final directory swap of a migration as a
// write-ahead manifest in SQLite, so an interrupted swap can be undone.
package journal

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS swaps (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	status     TEXT NOT NULL DEFAULT 'pending',
	started_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS swap_steps (
	swap_id INTEGER NOT NULL REFERENCES swaps(id) ON DELETE CASCADE,
	seq     INTEGER NOT NULL,
	src     TEXT NOT NULL,
	dst     TEXT NOT NULL,
	done    INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (swap_id, seq)
);

CREATE INDEX IF NOT EXISTS idx_swaps_status ON swaps(status);
`

// DB wraps a sql.DB with journal operations.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the journal database and applies the schema.
func Open(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("journal: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("journal: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("journal: apply schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}
