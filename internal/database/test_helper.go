package database

import (
	"fmt"
	"testing"

	"bankteller/internal/config"
	"bankteller/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shopspring/decimal"
)

// SetupTestDB opens a fresh in-memory database with the full schema
func SetupTestDB(t *testing.T) *DB {
	t.Helper()

	gormConfig := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), gormConfig)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	testDB := &DB{
		DB: db,
		config: &config.DatabaseConfig{
			Driver:         config.DriverSQLite,
			MaxConnections: 1,
			MaxIdleConns:   1,
		},
	}

	if err := testDB.AutoMigrate(); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return testDB
}

// CreateTestCustomer creates a customer with a hashed PIN of "1234"
func CreateTestCustomer(t *testing.T, db *DB, number, name string) *models.Customer {
	t.Helper()

	// MinCost keeps the fixture cheap; production uses the configured cost
	hash, err := bcrypt.GenerateFromPassword([]byte("1234"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash test PIN: %v", err)
	}

	customer := &models.Customer{
		CustomerNumber: number,
		Name:           name,
		PINHash:        string(hash),
	}

	if err := db.Create(customer).Error; err != nil {
		t.Fatalf("failed to create test customer: %v", err)
	}

	return customer
}

// CreateTestAccount creates an account with an opening balance and the
// matching initial ledger entry
func CreateTestAccount(t *testing.T, db *DB, customer *models.Customer, kind string, balance decimal.Decimal) *models.Account {
	t.Helper()

	account := &models.Account{
		CustomerID: customer.ID,
		Kind:       kind,
		Balance:    balance,
	}

	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}

	entry := &models.LedgerEntry{
		AccountID:    account.ID,
		Direction:    models.EntryDirectionCredit,
		Amount:       balance,
		BalanceAfter: balance,
		Description:  models.InitialDepositDescription(balance),
	}

	if err := db.Create(entry).Error; err != nil {
		t.Fatalf("failed to create initial ledger entry: %v", err)
	}

	return account
}

// CleanupTestDB truncates all tables
func CleanupTestDB(t *testing.T, db *DB) {
	t.Helper()

	tables := []string{
		"ledger_entries",
		"transfers",
		"accounts",
		"audit_logs",
		"blacklisted_tokens",
		"customers",
	}

	for _, table := range tables {
		if err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			t.Logf("failed to cleanup table %s: %v", table, err)
		}
	}
}
