// Package sqlitetest opens a migrated, file-backed SQLite store for tests.
package sqlitetest

import (
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"path/filepath"
	"storefront/repository"
	"testing"
)

func Open(t testing.TB) (*repository.GormStore, *gorm.DB) {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "store.db") + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// one connection: SQLite serializes writers anyway and this avoids SQLITE_BUSY
	sqlDB.SetMaxOpenConns(1)

	if err := repository.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	t.Cleanup(func() { _ = sqlDB.Close() })
	return repository.NewStore(db), db
}
