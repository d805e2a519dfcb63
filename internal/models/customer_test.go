package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomer_Validate(t *testing.T) {
	tests := []struct {
		name     string
		customer Customer
		wantErr  error
	}{
		{
			name: "valid customer",
			customer: Customer{
				ID:             uuid.New(),
				CustomerNumber: "123456789",
				Name:           "Jane Doe",
				PINHash:        "$2a$12$somehash",
			},
		},
		{
			name: "empty name",
			customer: Customer{
				CustomerNumber: "123456789",
				Name:           "",
				PINHash:        "$2a$12$somehash",
			},
			wantErr: ErrInvalidCustomerName,
		},
		{
			name: "name with digits",
			customer: Customer{
				CustomerNumber: "123456789",
				Name:           "Jane Doe 2nd",
				PINHash:        "$2a$12$somehash",
			},
			wantErr: ErrInvalidCustomerName,
		},
		{
			name: "customer number too short",
			customer: Customer{
				CustomerNumber: "12345678",
				Name:           "Jane Doe",
				PINHash:        "$2a$12$somehash",
			},
			wantErr: ErrInvalidCustomerNumber,
		},
		{
			name: "customer number with letters",
			customer: Customer{
				CustomerNumber: "12345678X",
				Name:           "Jane Doe",
				PINHash:        "$2a$12$somehash",
			},
			wantErr: ErrInvalidCustomerNumber,
		},
		{
			name: "missing PIN hash",
			customer: Customer{
				CustomerNumber: "123456789",
				Name:           "Jane Doe",
			},
			wantErr: ErrMissingPINHash,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.customer.Validate()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIsValidCustomerName(t *testing.T) {
	assert.True(t, IsValidCustomerName("Alice"))
	assert.True(t, IsValidCustomerName("Mary Jane Watson"))
	assert.False(t, IsValidCustomerName(""))
	assert.False(t, IsValidCustomerName("O'Brien"))
	assert.False(t, IsValidCustomerName("Ann-Marie"))
	assert.False(t, IsValidCustomerName("Agent 007"))
}

func TestIsValidCustomerNumber(t *testing.T) {
	assert.True(t, IsValidCustomerNumber("000000000"))
	assert.True(t, IsValidCustomerNumber("999999999"))
	assert.False(t, IsValidCustomerNumber("12345678"))
	assert.False(t, IsValidCustomerNumber("1234567890"))
	assert.False(t, IsValidCustomerNumber("12345678a"))
	assert.False(t, IsValidCustomerNumber(""))
}

func TestIsValidPINFormat(t *testing.T) {
	assert.True(t, IsValidPINFormat("0000"))
	assert.True(t, IsValidPINFormat("1234"))
	assert.False(t, IsValidPINFormat("123"))
	assert.False(t, IsValidPINFormat("12345"))
	assert.False(t, IsValidPINFormat("12a4"))
	assert.False(t, IsValidPINFormat(""))
}

func TestGenerateCustomerNumber(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		number, err := GenerateCustomerNumber()
		require.NoError(t, err)
		assert.Len(t, number, CustomerNumberLength)
		assert.True(t, IsValidCustomerNumber(number), "generated number %q is not 9 digits", number)
		seen[number] = true
	}
	// With a 10^9 space, 100 draws colliding down to a handful would
	// indicate a broken random source.
	assert.Greater(t, len(seen), 90)
}
