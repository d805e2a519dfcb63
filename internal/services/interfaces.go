package services

import (
	"time"

	"bankteller/internal/dto"
	"bankteller/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerServiceInterface defines the account ledger operations
type LedgerServiceInterface interface {
	OpenAccount(name, pin, kind string, initialDeposit decimal.Decimal, ipAddress, userAgent string) (*models.Account, error)
	GetAccount(accountID uuid.UUID) (*models.Account, error)
	Deposit(accountID uuid.UUID, amount decimal.Decimal, ipAddress, userAgent string) (*models.Account, error)
	Withdraw(accountID uuid.UUID, amount decimal.Decimal, ipAddress, userAgent string) (*models.Account, error)
	Transfer(fromAccountID uuid.UUID, toCustomerNumber string, amount decimal.Decimal, ipAddress, userAgent string) (*models.Transfer, error)
	MonthlyInterest(accountID uuid.UUID) (decimal.Decimal, error)
	History(accountID uuid.UUID) ([]models.LedgerEntry, error)
}

type AuthServiceInterface interface {
	SignUp(req *dto.SignUpRequest, ipAddress, userAgent string) (*models.Account, error)
	Login(req *dto.LoginRequest, ipAddress, userAgent string) (*dto.SessionResponse, error)
	Logout(accessToken, ipAddress, userAgent string) error
}

type TokenServiceInterface interface {
	GenerateSessionToken(customer *models.Customer, account *models.Account) (string, time.Time, error)
	ValidateSessionToken(tokenString string) (*models.CustomClaims, error)
	ExtractTokenFromHeader(authHeader string) (string, error)
	GetJTI(tokenString string) (string, error)
	GetTokenExpiry(tokenString string) (time.Time, error)
}

type PINServiceInterface interface {
	ValidatePIN(pin string) error
	HashPIN(pin string) (string, error)
	ComparePIN(pin, hash string) bool
}

type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
	RecordGauge(name string, value float64, tags map[string]string)
}

// DemoDataServiceInterface seeds the directory with plausible accounts for
// local development
type DemoDataServiceInterface interface {
	SeedAccounts(count int) ([]SeededAccount, error)
}
