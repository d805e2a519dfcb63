package models

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	EntryDirectionCredit = "credit"
	EntryDirectionDebit  = "debit"
)

var (
	ErrInvalidEntryDirection = errors.New("invalid ledger entry direction")
	ErrInvalidEntryAmount    = errors.New("ledger entry amount must be positive")
)

// LedgerEntry is one row of an account's transaction history. Entries are
// append-only; Sequence numbers them per account in insertion order, so
// history order never depends on timestamp resolution.
type LedgerEntry struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	AccountID    uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_ledger_entries_account_seq,priority:1" json:"account_id"`
	Sequence     int64           `gorm:"not null;uniqueIndex:idx_ledger_entries_account_seq,priority:2" json:"-"`
	Direction    string          `gorm:"type:varchar(10);not null" json:"direction"`
	Amount       decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	BalanceAfter decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"balance_after"`
	Description  string          `gorm:"type:text;not null" json:"description"`
	Reference    string          `gorm:"type:varchar(100);index" json:"reference,omitempty"`
	CreatedAt    time.Time       `gorm:"not null;index" json:"created_at"`

	// Associations
	Account Account `gorm:"foreignKey:AccountID" json:"-"`
}

// BeforeCreate hook for LedgerEntry
func (e *LedgerEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}

	if e.Reference == "" {
		e.Reference = GenerateEntryReference()
	}

	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	// Callers hold the account row lock when appending, so counting inside
	// the same transaction yields a gapless per-account sequence.
	if e.Sequence == 0 && e.AccountID != uuid.Nil {
		var count int64
		if err := tx.Model(&LedgerEntry{}).
			Where("account_id = ?", e.AccountID).
			Count(&count).Error; err != nil {
			return err
		}
		e.Sequence = count + 1
	}

	return e.Validate()
}

// Validate validates the ledger entry fields
func (e *LedgerEntry) Validate() error {
	if e.AccountID == uuid.Nil {
		return errors.New("account ID is required")
	}

	if e.Direction != EntryDirectionCredit && e.Direction != EntryDirectionDebit {
		return ErrInvalidEntryDirection
	}

	if e.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidEntryAmount
	}

	if e.Description == "" {
		return errors.New("ledger entry description is required")
	}

	return nil
}

// TableName returns the table name for LedgerEntry
func (e *LedgerEntry) TableName() string {
	return "ledger_entries"
}

// GenerateEntryReference generates a reference string for a ledger entry
func GenerateEntryReference() string {
	return fmt.Sprintf("TXN-%d-%06d", time.Now().Unix(), rand.Intn(1000000))
}

// Entry description helpers. These produce the exact strings an account's
// history exposes to callers.

// InitialDepositDescription describes the opening deposit of an account
func InitialDepositDescription(amount decimal.Decimal) string {
	return fmt.Sprintf("Initial deposit of %s", amount.StringFixed(2))
}

// DepositDescription describes a standalone deposit
func DepositDescription(amount decimal.Decimal) string {
	return fmt.Sprintf("Deposited %s", amount.StringFixed(2))
}

// WithdrawalDescription describes a standalone withdrawal
func WithdrawalDescription(amount decimal.Decimal) string {
	return fmt.Sprintf("Withdrew %s", amount.StringFixed(2))
}

// TransferOutDescription describes the debit side of a transfer,
// cross-referencing the receiving customer
func TransferOutDescription(amount decimal.Decimal, toNumber, toName string) string {
	return fmt.Sprintf("Transferred %s to %s (%s)", amount.StringFixed(2), toNumber, toName)
}

// TransferInDescription describes the credit side of a transfer,
// cross-referencing the sending customer
func TransferInDescription(amount decimal.Decimal, fromNumber, fromName string) string {
	return fmt.Sprintf("Received %s from %s (%s)", amount.StringFixed(2), fromNumber, fromName)
}
