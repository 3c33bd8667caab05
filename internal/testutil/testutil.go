// Package testutil provides common test helpers: an in-memory cache database
// and a recording dispatcher.
package testutil

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/persistence"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/persistence/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// NewTestDatabase opens an in-memory sqlite cache with every table created.
// A single connection keeps the in-memory database alive for the whole test.
func NewTestDatabase(t *testing.T) *persistence.Database {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(persistence.SQLiteDSN(":memory:")), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err, "Failed to open sqlite")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return persistence.NewDatabaseFromGorm(db, persistence.DriverSQLite)
}
