// Package testdb opens a migrated in-memory sqlite database for tests.
package testdb

import (
	"testing"

	"gym-management-be/pkg/database"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func New(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.NewSqliteDB(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}
