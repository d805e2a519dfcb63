package models

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	// CustomerNumberLength is the fixed width of the public customer number
	CustomerNumberLength = 9

	// PINLength is the required length of a customer PIN
	PINLength = 4
)

var (
	ErrInvalidCustomerName   = errors.New("customer name must be non-empty and contain letters and spaces only")
	ErrInvalidCustomerNumber = errors.New("customer number must be exactly 9 digits")
	ErrInvalidPINFormat      = errors.New("PIN must be exactly 4 digits")
	ErrMissingPINHash        = errors.New("PIN hash is required")

	customerNameRegex   = regexp.MustCompile(`^[A-Za-z ]+$`)
	customerNumberRegex = regexp.MustCompile(`^\d{9}$`)
	pinRegex            = regexp.MustCompile(`^\d{4}$`)

	customerNumberMax = big.NewInt(1_000_000_000)
)

// Customer identifies an account holder. A customer is created together
// with their account at sign-up and is never mutated afterwards.
type Customer struct {
	ID             uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CustomerNumber string         `gorm:"type:varchar(9);uniqueIndex;not null" json:"customer_number"`
	Name           string         `gorm:"type:varchar(100);not null" json:"name"`
	PINHash        string         `gorm:"type:varchar(255);not null" json:"-"`
	CreatedAt      time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Associations
	Account *Account `gorm:"foreignKey:CustomerID" json:"-"`
}

// BeforeCreate hook for Customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}

	// Set timestamps if not already set (for tests)
	now := time.Now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = now
	}

	return c.Validate()
}

// Validate validates the customer fields
func (c *Customer) Validate() error {
	if !IsValidCustomerName(c.Name) {
		return ErrInvalidCustomerName
	}

	if !IsValidCustomerNumber(c.CustomerNumber) {
		return ErrInvalidCustomerNumber
	}

	if c.PINHash == "" {
		return ErrMissingPINHash
	}

	return nil
}

// TableName returns the table name for Customer
func (c *Customer) TableName() string {
	return "customers"
}

// IsValidCustomerName reports whether the name is non-empty and contains
// only letters and spaces
func IsValidCustomerName(name string) bool {
	return customerNameRegex.MatchString(name)
}

// IsValidCustomerNumber reports whether the number is exactly 9 digits
func IsValidCustomerNumber(number string) bool {
	return customerNumberRegex.MatchString(number)
}

// IsValidPINFormat reports whether the PIN is exactly 4 digits
func IsValidPINFormat(pin string) bool {
	return pinRegex.MatchString(pin)
}

// GenerateCustomerNumber draws a 9-digit zero-padded number from a uniform
// random source over [0, 10^9). Uniqueness is enforced at registration, not
// here.
func GenerateCustomerNumber() (string, error) {
	n, err := rand.Int(rand.Reader, customerNumberMax)
	if err != nil {
		return "", fmt.Errorf("failed to generate customer number: %w", err)
	}
	return fmt.Sprintf("%09d", n.Int64()), nil
}
