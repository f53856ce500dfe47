package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Storage is a string key/value slot store. It is the only persistence
// surface the preference stores depend on.
type Storage interface {
	// Get returns the value under key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
	// Keys lists every key starting with prefix, sorted.
	Keys(ctx context.Context, prefix string) ([]string, error)
	// Watch registers fn for changes to key ("" for all keys) and returns
	// the function that unregisters it.
	Watch(key string, fn WatchFunc) func()
	Stats(ctx context.Context) (*Stats, error)
	Close() error
}

// SQLiteStore implements Storage backed by a single SQLite table.
type SQLiteStore struct {
	db  *sql.DB
	hub *Hub

	// Prepared statements
	getValue    *sql.Stmt
	setValue    *sql.Stmt
	removeValue *sql.Stmt
}

// NewSQLiteStore creates a new SQLiteStore from an already-opened and migrated database.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	s := &SQLiteStore{db: db, hub: NewHub()}

	if err := s.prepareStatements(); err != nil {
		return nil, fmt.Errorf("prepare statements: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) prepareStatements() error {
	var err error

	s.getValue, err = s.db.Prepare(`SELECT value FROM kv WHERE key = ?`)
	if err != nil {
		return err
	}

	s.setValue, err = s.db.Prepare(`
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`)
	if err != nil {
		return err
	}

	s.removeValue, err = s.db.Prepare(`DELETE FROM kv WHERE key = ?`)
	if err != nil {
		return err
	}

	return nil
}

// Get retrieves the value stored under key.
func (s *SQLiteStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.getValue.QueryRowContext(ctx, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("get %s: %w", key, err)
	}
	return value, nil
}

// Set upserts the value under key and notifies watchers.
func (s *SQLiteStore) Set(ctx context.Context, key, value string) error {
	ts := time.Now().UTC().Format(time.RFC3339)
	if _, err := s.setValue.ExecContext(ctx, key, value, ts); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	s.hub.Publish(key)
	return nil
}

// Remove deletes key and notifies watchers if a row was removed.
func (s *SQLiteStore) Remove(ctx context.Context, key string) error {
	res, err := s.removeValue.ExecContext(ctx, key)
	if err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		s.hub.Publish(key)
	}
	return nil
}

// Keys lists keys with the given prefix.
func (s *SQLiteStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key FROM kv WHERE substr(key, 1, ?) = ? ORDER BY key`,
		len(prefix), prefix,
	)
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scan key: %w", err)
		}
		keys = append(keys, k)
	}

	return keys, rows.Err()
}

// Watch registers fn for changes to key.
func (s *SQLiteStore) Watch(key string, fn WatchFunc) func() {
	return s.hub.Watch(key, fn)
}

// Stats returns the key count and the database size. For on-disk databases
// and in-memory ones alike the size is page_count * page_size.
func (s *SQLiteStore) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{Driver: "sqlite"}

	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM kv").Scan(&stats.TotalKeys); err != nil {
		return nil, fmt.Errorf("count keys: %w", err)
	}

	var pageCount, pageSize int64
	if err := s.db.QueryRowContext(ctx, "PRAGMA page_count").Scan(&pageCount); err != nil {
		return stats, nil
	}
	if err := s.db.QueryRowContext(ctx, "PRAGMA page_size").Scan(&pageSize); err != nil {
		return stats, nil
	}
	stats.SizeBytes = pageCount * pageSize

	return stats, nil
}

// Close releases all prepared statements. The underlying *sql.DB is NOT
// closed; that is the caller's responsibility.
func (s *SQLiteStore) Close() error {
	stmts := []*sql.Stmt{s.getValue, s.setValue, s.removeValue}
	for _, stmt := range stmts {
		if stmt != nil {
			stmt.Close()
		}
	}
	return nil
}
