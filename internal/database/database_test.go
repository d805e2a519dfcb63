package database

import (
	"testing"
	"time"

	"bankteller/internal/config"
	"bankteller/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_SQLite(t *testing.T) {
	db, err := New(&config.DatabaseConfig{Driver: config.DriverSQLite})
	require.NoError(t, err)
	defer db.Close()

	assert.NoError(t, db.HealthCheck())
	assert.NoError(t, db.AutoMigrate())
}

func TestNew_UnsupportedDriver(t *testing.T) {
	_, err := New(&config.DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
}

func TestCleanupExpiredTokens(t *testing.T) {
	db := SetupTestDB(t)

	expired := &models.BlacklistedToken{
		JTI:       "expired",
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	require.NoError(t, db.Create(expired).Error)

	live := &models.BlacklistedToken{
		JTI:       "live",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, db.Create(live).Error)

	require.NoError(t, db.CleanupExpiredTokens())

	var count int64
	require.NoError(t, db.Model(&models.BlacklistedToken{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSetupTestDB_SchemaIsComplete(t *testing.T) {
	db := SetupTestDB(t)

	customer := CreateTestCustomer(t, db, "123456789", "Alice Smith")
	assert.NotEqual(t, uuid.Nil, customer.ID)

	account := CreateTestAccount(t, db, customer, models.AccountKindSavings, decimal.NewFromInt(500))
	assert.NotEqual(t, uuid.Nil, account.ID)
}
