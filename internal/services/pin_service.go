package services

import (
	"errors"
	"fmt"

	"bankteller/internal/models"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBCryptCost factor 12 follows PCI DSS guidance for financial data
const DefaultBCryptCost = 12

var ErrPINEmpty = errors.New("PIN cannot be empty")

// PINService handles PIN hashing and verification
type PINService struct {
	cost int
}

// NewPINService creates a new PIN service with the given bcrypt cost.
// A cost outside bcrypt's valid range falls back to the default.
func NewPINService(cost int) PINServiceInterface {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBCryptCost
	}
	return &PINService{cost: cost}
}

// ValidatePIN checks that a PIN is exactly four digits
func (ps *PINService) ValidatePIN(pin string) error {
	if pin == "" {
		return ErrPINEmpty
	}
	if !models.IsValidPINFormat(pin) {
		return models.ErrInvalidPINFormat
	}
	return nil
}

// HashPIN hashes a PIN after validating its format
func (ps *PINService) HashPIN(pin string) (string, error) {
	if err := ps.ValidatePIN(pin); err != nil {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pin), ps.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash PIN: %w", err)
	}

	return string(hash), nil
}

// ComparePIN checks a PIN against its stored hash
func (ps *PINService) ComparePIN(pin, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin)) == nil
}
