// Package testutil opens throwaway SQLite databases carrying the catalog schema.
package testutil

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/fekuna/omnipos-catalog-service/internal/database"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // sqlite3 driver for database/sql
)

// NewDB returns a migrated SQLite database that lives for the duration of t.
func NewDB(t *testing.T) *sqlx.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "catalog.db")
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL", path)

	db, err := sqlx.Open("sqlite3", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.Migrate(context.Background(), db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}
