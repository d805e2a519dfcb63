package repositories

import (
	"errors"

	"bankteller/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrCustomerNotFound    = errors.New("customer not found")
	ErrAccountNotFound     = errors.New("account not found")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrCustomerNumberTaken = errors.New("customer number already registered")
	ErrTransferNotFound    = errors.New("transfer not found")
	ErrTokenNotFound       = errors.New("blacklisted token not found")
)

// AccountRepositoryInterface is the account directory: registration,
// lookup, and the balance+history mutations. Every mutation that touches a
// balance appends its ledger entry in the same database transaction.
type AccountRepositoryInterface interface {
	CreateWithCustomer(customer *models.Customer, account *models.Account, initialEntry *models.LedgerEntry) error
	GetByID(id uuid.UUID) (*models.Account, error)
	GetByCustomerNumber(number string) (*models.Account, error)
	CustomerNumberExists(number string) (bool, error)
	GenerateUniqueCustomerNumber() (string, error)
	Deposit(accountID uuid.UUID, amount decimal.Decimal, description string) (*models.LedgerEntry, error)
	Withdraw(accountID uuid.UUID, amount decimal.Decimal, description string) (*models.LedgerEntry, error)
	ExecuteAtomicTransfer(fromAccountID, toAccountID uuid.UUID, amount decimal.Decimal, fromDescription, toDescription string) (debitEntryID, creditEntryID uuid.UUID, err error)
	CountAccounts() (int64, error)
}

// LedgerRepositoryInterface reads and appends transaction history
type LedgerRepositoryInterface interface {
	Create(entry *models.LedgerEntry) error
	ListByAccountID(accountID uuid.UUID) ([]models.LedgerEntry, error)
	CountByAccountID(accountID uuid.UUID) (int64, error)
}

// TransferRepositoryInterface stores transfer receipts
type TransferRepositoryInterface interface {
	Create(transfer *models.Transfer) error
	GetByID(id uuid.UUID) (*models.Transfer, error)
	ListByAccountID(accountID uuid.UUID) ([]models.Transfer, error)
}

// BlacklistedTokenRepositoryInterface stores revoked session tokens
type BlacklistedTokenRepositoryInterface interface {
	Create(token *models.BlacklistedToken) error
	GetByJTI(jti string) (*models.BlacklistedToken, error)
	DeleteExpired() (int64, error)
}

// AuditLogRepositoryInterface stores the operation audit trail
type AuditLogRepositoryInterface interface {
	Create(log *models.AuditLog) error
	ListByCustomerID(customerID uuid.UUID, limit int) ([]models.AuditLog, error)
}
