// Package databasetest opens throwaway databases for tests.
package databasetest

import (
	"fmt"
	"testing"

	"github.com/google/uuid"

	"blogger/database"
)

// CreateTempDB opens a private in-memory SQLite database with the schema
// migrated. It is closed when the test finishes.
func CreateTempDB(t testing.TB) *database.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testonlydb_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.NewSQLite(dsn)
	if err != nil {
		t.Fatalf("cannot open temp DB: %v", err)
	}
	if err := db.Migrate(); err != nil {
		t.Fatalf("cannot migrate temp DB: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})
	return db
}
