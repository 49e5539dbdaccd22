package postgres

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/andrewhigh08/account-service/internal/domain"
)

// newTestDB opens an in-memory SQLite database with the token ledger schema.
// The list queries use ILIKE and stay on the containerized Postgres tests;
// everything here is plain GORM that behaves the same on both engines.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&domain.Role{},
		&domain.User{},
		&domain.Session{},
		&domain.RevokedSession{},
		&domain.PasswordResetCode{},
		&domain.UserActivation{},
	)
	require.NoError(t, err)

	return db
}
