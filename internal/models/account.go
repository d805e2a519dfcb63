package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	AccountKindSavings  = "savings"
	AccountKindChecking = "checking"
)

var (
	ErrInvalidAccountKind = errors.New("invalid account kind")
	ErrInvalidBalance     = errors.New("balance cannot be negative")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrNonPositiveAmount  = errors.New("amount must be positive")
)

// KindSpec carries the two attributes that distinguish account kinds.
// A single Account type parameterized by kind replaces the subclass-per-rate
// design of older systems.
type KindSpec struct {
	InterestRate decimal.Decimal
	Label        string
}

var accountKinds = map[string]KindSpec{
	AccountKindSavings:  {InterestRate: decimal.NewFromFloat(5.0), Label: "Savings Account"},
	AccountKindChecking: {InterestRate: decimal.NewFromFloat(3.0), Label: "Checking Account"},
}

// Account is the ledger for one customer: a balance plus an append-only
// sequence of ledger entries. Exactly one account exists per customer.
type Account struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID   uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null" json:"customer_id"`
	Kind         string          `gorm:"type:varchar(20);not null" json:"kind"`
	Balance      decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"balance"`
	InterestRate decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"interest_rate"`
	CreatedAt    time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"not null" json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`

	// Associations
	Customer Customer      `gorm:"foreignKey:CustomerID" json:"-"`
	Entries  []LedgerEntry `gorm:"foreignKey:AccountID" json:"-"`
}

// BeforeCreate hook for Account
func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}

	// Set timestamps if not already set (for tests)
	now := time.Now()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = now
	}

	// The rate is a fixed property of the kind, set once at construction
	if a.InterestRate.IsZero() {
		if spec, ok := accountKinds[a.Kind]; ok {
			a.InterestRate = spec.InterestRate
		}
	}

	return a.Validate()
}

// BeforeUpdate hook for Account
func (a *Account) BeforeUpdate(tx *gorm.DB) error {
	a.UpdatedAt = time.Now()
	return nil
}

// Validate validates the account fields
func (a *Account) Validate() error {
	if a.CustomerID == uuid.Nil {
		return errors.New("customer ID is required")
	}

	if !IsValidAccountKind(a.Kind) {
		return ErrInvalidAccountKind
	}

	if a.Balance.LessThan(decimal.Zero) {
		return ErrInvalidBalance
	}

	return nil
}

// Label returns the display label for the account's kind
func (a *Account) Label() string {
	return accountKinds[a.Kind].Label
}

// CanWithdraw checks if the amount can be withdrawn
func (a *Account) CanWithdraw(amount decimal.Decimal) bool {
	return amount.GreaterThan(decimal.Zero) && a.Balance.GreaterThanOrEqual(amount)
}

// Debit removes the amount from the balance. The balance never goes
// negative: the check and the mutation are a single operation.
func (a *Account) Debit(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrNonPositiveAmount
	}

	if a.Balance.LessThan(amount) {
		return ErrInsufficientFunds
	}

	a.Balance = a.Balance.Sub(amount)
	return nil
}

// Credit adds the amount to the balance
func (a *Account) Credit(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrNonPositiveAmount
	}

	a.Balance = a.Balance.Add(amount)
	return nil
}

// MonthlyInterest returns the interest estimate for the next month:
// balance * rate / 100. Pure calculation, no state change.
func (a *Account) MonthlyInterest() decimal.Decimal {
	return a.Balance.Mul(a.InterestRate).Div(decimal.NewFromInt(100))
}

// TableName returns the table name for Account
func (a *Account) TableName() string {
	return "accounts"
}

// IsValidAccountKind checks if the account kind is valid
func IsValidAccountKind(kind string) bool {
	_, ok := accountKinds[kind]
	return ok
}

// KindSpecFor returns the spec for an account kind
func KindSpecFor(kind string) (KindSpec, bool) {
	spec, ok := accountKinds[kind]
	return spec, ok
}

// AccountKinds lists the supported account kinds
func AccountKinds() []string {
	return []string{AccountKindSavings, AccountKindChecking}
}
