package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"github.com/runnerr0/arcade/internal/config"
)

// Open creates the backend selected by cfg.Driver. Relative file locations
// resolve against cfg.Path.
func Open(ctx context.Context, cfg config.StorageConfig, logger zerolog.Logger) (Storage, error) {
	switch cfg.Driver {
	case "", "sqlite":
		return openSQLite(cfg)
	case "badger":
		dir, err := resolvePath(cfg.Path, cfg.BadgerDir)
		if err != nil {
			return nil, err
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create badger directory: %w", err)
		}
		return NewBadgerStore(dir)
	case "redis":
		return NewRedisStore(ctx, cfg.RedisAddr, cfg.RedisDB, cfg.RedisChannel, logger)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// SQLitePath returns the database file the sqlite driver uses for cfg.
func SQLitePath(cfg config.StorageConfig) (string, error) {
	return resolvePath(cfg.Path, cfg.SQLiteFile)
}

// ownedSQLite closes the *sql.DB along with the store's statements.
type ownedSQLite struct {
	*SQLiteStore
	db *sql.DB
}

func (o *ownedSQLite) Close() error {
	o.SQLiteStore.Close()
	return o.db.Close()
}

func openSQLite(cfg config.StorageConfig) (Storage, error) {
	dbPath, err := SQLitePath(cfg)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	runner := NewMigrationRunner(db).WithJournalMode(cfg.SQLiteJournalMode)
	if err := runner.Run(); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	store, err := NewSQLiteStore(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create store: %w", err)
	}

	return &ownedSQLite{SQLiteStore: store, db: db}, nil
}

// resolvePath joins name onto base unless name is already absolute, expanding
// a leading ~ in either.
func resolvePath(base, name string) (string, error) {
	if filepath.IsAbs(name) {
		return name, nil
	}
	dir, err := config.ExpandPath(base)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}
