package services

import (
	"testing"

	"bankteller/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPINService_ValidatePIN(t *testing.T) {
	ps := NewPINService(bcrypt.MinCost)

	assert.NoError(t, ps.ValidatePIN("1234"))
	assert.NoError(t, ps.ValidatePIN("0000"))
	assert.ErrorIs(t, ps.ValidatePIN(""), ErrPINEmpty)
	assert.ErrorIs(t, ps.ValidatePIN("123"), models.ErrInvalidPINFormat)
	assert.ErrorIs(t, ps.ValidatePIN("12345"), models.ErrInvalidPINFormat)
	assert.ErrorIs(t, ps.ValidatePIN("12ab"), models.ErrInvalidPINFormat)
}

func TestPINService_HashAndCompare(t *testing.T) {
	ps := NewPINService(bcrypt.MinCost)

	hash, err := ps.HashPIN("1234")
	require.NoError(t, err)
	assert.NotEqual(t, "1234", hash)

	assert.True(t, ps.ComparePIN("1234", hash))
	assert.False(t, ps.ComparePIN("4321", hash))
	assert.False(t, ps.ComparePIN("1234", "not-a-hash"))
}

func TestPINService_HashPIN_RejectsInvalidFormat(t *testing.T) {
	ps := NewPINService(bcrypt.MinCost)

	_, err := ps.HashPIN("12")
	assert.ErrorIs(t, err, models.ErrInvalidPINFormat)

	_, err = ps.HashPIN("")
	assert.ErrorIs(t, err, ErrPINEmpty)
}

func TestPINService_HashesAreSalted(t *testing.T) {
	ps := NewPINService(bcrypt.MinCost)

	first, err := ps.HashPIN("1234")
	require.NoError(t, err)
	second, err := ps.HashPIN("1234")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestNewPINService_CostOutOfRange(t *testing.T) {
	// An out-of-range cost must not break hashing
	ps := NewPINService(99)

	hash, err := ps.HashPIN("1234")
	require.NoError(t, err)
	assert.True(t, ps.ComparePIN("1234", hash))
}
