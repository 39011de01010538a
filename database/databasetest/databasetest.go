// Package databasetest opens migrated in-memory databases for tests.
package databasetest

import (
	"testing"

	"techtrek/config"
	"techtrek/database"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// New returns a fresh in-memory SQLite database with all tables migrated.
// A single connection keeps the in-memory database alive for the test.
func New(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := &config.Config{DBDriver: "sqlite", DBMaxOpenConns: 1, DBMaxIdleConns: 1}
	db, err := database.OpenWith(sqlite.Open(":memory:"), cfg)
	require.NoError(t, err)
	db.Logger = logger.Default.LogMode(logger.Silent)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
