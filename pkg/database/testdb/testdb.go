// Package testdb provides throwaway in-memory databases for tests.
package testdb

import (
	"fmt"
	"testing"

	"cryptnote-backend/pkg/database"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// New opens a private in-memory sqlite database migrated for models.
// It is closed when the test finishes.
func New(t testing.TB, models ...any) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.NewSQLiteConnection(dsn)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := database.AutoMigrate(db, models...); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
