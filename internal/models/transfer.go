package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	TransferStatusCompleted = "completed"
	TransferStatusFailed    = "failed"
)

// Transfer is the receipt of one account-to-account transfer. A completed
// transfer links the debit entry on the source account with the credit
// entry on the target account; a failed transfer records why nothing moved.
type Transfer struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	FromAccountID uuid.UUID       `gorm:"type:uuid;not null;index" json:"from_account_id"`
	ToAccountID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"to_account_id"`
	Amount        decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Status        string          `gorm:"type:varchar(20);not null" json:"status"`
	FailureReason string          `gorm:"type:text" json:"failure_reason,omitempty"`
	DebitEntryID  *uuid.UUID      `gorm:"type:uuid" json:"debit_entry_id,omitempty"`
	CreditEntryID *uuid.UUID      `gorm:"type:uuid" json:"credit_entry_id,omitempty"`
	CreatedAt     time.Time       `gorm:"not null;index" json:"created_at"`

	// Associations
	FromAccount Account `gorm:"foreignKey:FromAccountID" json:"-"`
	ToAccount   Account `gorm:"foreignKey:ToAccountID" json:"-"`
}

// BeforeCreate hook for Transfer
func (t *Transfer) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}

	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}

	return t.Validate()
}

// Validate validates the transfer fields
func (t *Transfer) Validate() error {
	if t.FromAccountID == uuid.Nil || t.ToAccountID == uuid.Nil {
		return errors.New("both transfer accounts are required")
	}

	if t.FromAccountID == t.ToAccountID {
		return errors.New("cannot transfer to the same account")
	}

	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return errors.New("transfer amount must be positive")
	}

	if t.Status != TransferStatusCompleted && t.Status != TransferStatusFailed {
		return errors.New("invalid transfer status")
	}

	return nil
}

// Completed reports whether the transfer moved funds
func (t *Transfer) Completed() bool {
	return t.Status == TransferStatusCompleted
}

// TableName returns the table name for Transfer
func (t *Transfer) TableName() string {
	return "transfers"
}
