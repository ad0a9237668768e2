// internal/store/sqlite.go
//
// SQLite-backed KV implementation over the kv_state table
// (see sql/0001_init.sql). Values are opaque blobs; updated_at is kept
// for operational inspection only.

package store

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// SQLite persists keys in the kv_state table of an opened database.
type SQLite struct {
	db *sql.DB
}

// NewSQLite wraps an existing database handle. The caller owns the handle
// and runs migrations before use.
func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db: db}
}

func (s *SQLite) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var v []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM kv_state WHERE key=?`, key,
	).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func (s *SQLite) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO kv_state (key, value, updated_at)
        VALUES (?, ?, ?)
        ON CONFLICT(key) DO UPDATE SET
            value = excluded.value,
            updated_at = excluded.updated_at`,
		key, value, time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// Claim re-keys every row under fromNS to toNS. Rows that would collide
// with existing toNS state are left in place (the account's own state
// wins), matching how anonymous history is merged on login.
func (s *SQLite) Claim(ctx context.Context, fromNS, toNS string) error {
	if fromNS == "" || toNS == "" || fromNS == toNS {
		return nil
	}
	prefix := fromNS + "_"
	_, err := s.db.ExecContext(ctx, `
        UPDATE OR IGNORE kv_state
        SET key = ? || substr(key, ?)
        WHERE substr(key, 1, ?) = ?`,
		toNS, len(fromNS)+1, len(prefix), prefix,
	)
	return err
}
