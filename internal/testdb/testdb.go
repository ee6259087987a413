// Package testdb provides a shared test database helper for fast,
// realistic testing against an in-memory SQLite database.
package testdb

import (
	"context"
	"testing"
	"time"

	"github.com/helixml/sitekit/infrastructure/persistence"
	"github.com/helixml/sitekit/internal/database"
)

// New creates an in-memory SQLite database with the schema applied.
// The pool is pinned to one connection because every new connection to
// ":memory:" opens a separate, empty database.
func New(t *testing.T) database.Database {
	t.Helper()
	db := NewPlain(t)
	if err := persistence.AutoMigrate(db); err != nil {
		t.Fatalf("testdb.New: auto migrate: %v", err)
	}
	return db
}

// NewPlain creates an in-memory SQLite database without a schema.
func NewPlain(t *testing.T) database.Database {
	t.Helper()
	db, err := database.NewDatabase(context.Background(), "sqlite:///:memory:")
	if err != nil {
		t.Fatalf("testdb.NewPlain: open database: %v", err)
	}
	if err := db.ConfigurePool(1, 1, time.Hour); err != nil {
		_ = db.Close()
		t.Fatalf("testdb.NewPlain: configure pool: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// Exec runs raw statements against db, failing the test on error. Tests
// use it to inject rows that the services would refuse to write.
func Exec(t *testing.T, db database.Database, statements ...string) {
	t.Helper()
	ctx := context.Background()
	for _, stmt := range statements {
		if err := db.Session(ctx).Exec(stmt).Error; err != nil {
			t.Fatalf("testdb.Exec: %v\nSQL: %s", err, stmt)
		}
	}
}
