package cli

import (
	"bytes"
	"database/sql"
	"io"
	"os"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/arcade/internal/catalog"
	"github.com/runnerr0/arcade/internal/config"
	"github.com/runnerr0/arcade/internal/storage"
)

// captureOutput captures stdout during fn execution and returns it as a string.
func captureOutput(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

// openTestStore creates a migrated in-memory SQLiteStore for testing.
func openTestStore(t *testing.T) *storage.SQLiteStore {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	runner := storage.NewMigrationRunner(db)
	require.NoError(t, runner.Run())

	store, err := storage.NewSQLiteStore(db)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

// newTestEnv wires the embedded catalog over an in-memory sqlite backend.
func newTestEnv(t *testing.T, profile string) *env {
	t.Helper()
	cat, err := catalog.Load(zerolog.Nop())
	require.NoError(t, err)

	e, err := newEnv(config.DefaultConfig(), cat, openTestStore(t), profile, zerolog.Nop())
	require.NoError(t, err)
	e.now = func() time.Time { return time.Date(2026, 2, 6, 12, 0, 0, 0, time.UTC) }
	return e
}
