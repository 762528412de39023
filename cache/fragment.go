// Copyright © 2025 Ansisnap contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cache/fragment.go
// Summary: SQLite-backed cache for rendered per-line SVG fragments.
//
// Fragments are keyed by config hash, line number, and line hash, so a
// single database replaces a directory of thousands of tiny fragment files.
// The rendering layer alone decides whether to consult this store.

package cache

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite"
)

// FragmentKey builds the rendered-fragment cache key.
func FragmentKey(configHash string, lineNumber int, lineHash string) string {
	return "svg_" + configHash + "_" + strconv.Itoa(lineNumber) + "_" + lineHash
}

const fragmentSchemaVersion = 1

const fragmentSchema = `
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS fragments (
    key     TEXT PRIMARY KEY,
    payload BLOB NOT NULL,
    created INTEGER NOT NULL
);
`

// FragmentStore persists rendered SVG fragments.
type FragmentStore struct {
	db    *sql.DB
	debug bool
}

// OpenFragmentStore opens (creating if necessary) the fragment database at
// dbPath.
func OpenFragmentStore(dbPath string) (*FragmentStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create fragment cache dir: %w", err)
	}

	dsn := dbPath +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_pragma=temp_store(MEMORY)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open fragment database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to fragment database: %w", err)
	}
	if _, err := db.Exec(fragmentSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create fragment schema: %w", err)
	}
	if err := migrateFragmentSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &FragmentStore{db: db}, nil
}

// migrateFragmentSchema drops stale fragments when the schema version moves.
func migrateFragmentSchema(db *sql.DB) error {
	var version int
	err := db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err == sql.ErrNoRows {
		version = 0
	} else if err != nil {
		version = 0
	}
	if version == fragmentSchemaVersion {
		return nil
	}
	if _, err := db.Exec("DELETE FROM fragments"); err != nil {
		return fmt.Errorf("clear stale fragments: %w", err)
	}
	if _, err := db.Exec("DELETE FROM schema_version"); err != nil {
		return fmt.Errorf("reset schema version: %w", err)
	}
	if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", fragmentSchemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	return nil
}

// SetDebug enables per-key hit/miss logging.
func (f *FragmentStore) SetDebug(on bool) { f.debug = on }

// Get returns the cached fragment for key, counting the outcome in stats.
// Any failure is a miss.
func (f *FragmentStore) Get(key string, stats *Stats) ([]byte, bool) {
	var payload []byte
	err := f.db.QueryRow("SELECT payload FROM fragments WHERE key = ?", key).Scan(&payload)
	if err != nil {
		stats.FragmentMisses++
		return nil, false
	}
	stats.FragmentHits++
	if f.debug {
		log.Printf("Cache: fragment hit %s (%d bytes)", key, len(payload))
	}
	return payload, true
}

// Put stores a fragment, replacing any prior entry for the key. Best-effort:
// a failure is logged, never propagated.
func (f *FragmentStore) Put(key string, payload []byte) {
	_, err := f.db.Exec(
		"INSERT OR REPLACE INTO fragments (key, payload, created) VALUES (?, ?, ?)",
		key, payload, time.Now().Unix())
	if err != nil {
		log.Printf("Cache: failed to store fragment %s: %v", key, err)
	}
}

// Close closes the underlying database.
func (f *FragmentStore) Close() error {
	return f.db.Close()
}
