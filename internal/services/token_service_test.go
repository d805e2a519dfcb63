package services

import (
	"testing"
	"time"

	"bankteller/internal/config"
	"bankteller/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService(t *testing.T, duration time.Duration) TokenServiceInterface {
	t.Helper()

	privateKey, publicKey, err := config.GenerateRSAKeyPair()
	require.NoError(t, err)

	return NewTokenService(&config.JWTConfig{
		AccessTokenDuration: duration,
		PrivateKey:          privateKey,
		PublicKey:           publicKey,
		Issuer:              "bankteller-test",
	})
}

func testCustomerAndAccount() (*models.Customer, *models.Account) {
	customer := &models.Customer{
		ID:             uuid.New(),
		CustomerNumber: "123456789",
		Name:           "Alice Smith",
		PINHash:        "hash",
	}
	account := &models.Account{
		ID:         uuid.New(),
		CustomerID: customer.ID,
		Kind:       models.AccountKindSavings,
	}
	return customer, account
}

func TestTokenService_GenerateAndValidate(t *testing.T) {
	ts := newTestTokenService(t, time.Hour)
	customer, account := testCustomerAndAccount()

	token, expiresAt, err := ts.GenerateSessionToken(customer, account)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := ts.ValidateSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, account.ID.String(), claims.AccountID)
	assert.Equal(t, "123456789", claims.CustomerNumber)
	assert.Equal(t, "Alice Smith", claims.Name)
	assert.Equal(t, "123456789", claims.Subject)
	assert.NotEmpty(t, claims.ID, "every session token carries a JTI")
}

func TestTokenService_GenerateSessionToken_NilArguments(t *testing.T) {
	ts := newTestTokenService(t, time.Hour)
	customer, account := testCustomerAndAccount()

	_, _, err := ts.GenerateSessionToken(nil, account)
	assert.Error(t, err)

	_, _, err = ts.GenerateSessionToken(customer, nil)
	assert.Error(t, err)
}

func TestTokenService_ValidateSessionToken_Expired(t *testing.T) {
	ts := newTestTokenService(t, -time.Minute)
	customer, account := testCustomerAndAccount()

	token, _, err := ts.GenerateSessionToken(customer, account)
	require.NoError(t, err)

	_, err = ts.ValidateSessionToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenService_ValidateSessionToken_WrongIssuer(t *testing.T) {
	privateKey, publicKey, err := config.GenerateRSAKeyPair()
	require.NoError(t, err)

	issuing := NewTokenService(&config.JWTConfig{
		AccessTokenDuration: time.Hour,
		PrivateKey:          privateKey,
		PublicKey:           publicKey,
		Issuer:              "somewhere-else",
	})
	validating := NewTokenService(&config.JWTConfig{
		AccessTokenDuration: time.Hour,
		PrivateKey:          privateKey,
		PublicKey:           publicKey,
		Issuer:              "bankteller-test",
	})

	customer, account := testCustomerAndAccount()
	token, _, err := issuing.GenerateSessionToken(customer, account)
	require.NoError(t, err)

	_, err = validating.ValidateSessionToken(token)
	assert.ErrorIs(t, err, ErrInvalidIssuer)
}

func TestTokenService_ValidateSessionToken_WrongKey(t *testing.T) {
	issuing := newTestTokenService(t, time.Hour)
	validating := newTestTokenService(t, time.Hour)

	customer, account := testCustomerAndAccount()
	token, _, err := issuing.GenerateSessionToken(customer, account)
	require.NoError(t, err)

	_, err = validating.ValidateSessionToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_ValidateSessionToken_Malformed(t *testing.T) {
	ts := newTestTokenService(t, time.Hour)

	_, err := ts.ValidateSessionToken("")
	assert.ErrorIs(t, err, ErrEmptyToken)

	_, err = ts.ValidateSessionToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_ExtractTokenFromHeader(t *testing.T) {
	ts := newTestTokenService(t, time.Hour)

	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "bearer token", header: "Bearer abc123", want: "abc123"},
		{name: "lowercase scheme", header: "bearer abc123", want: "abc123"},
		{name: "empty header", header: "", wantErr: true},
		{name: "missing scheme", header: "abc123", wantErr: true},
		{name: "wrong scheme", header: "Basic abc123", wantErr: true},
		{name: "scheme without token", header: "Bearer ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ts.ExtractTokenFromHeader(tt.header)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidAuthHeader)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestTokenService_GetJTIAndExpiry(t *testing.T) {
	ts := newTestTokenService(t, time.Hour)
	customer, account := testCustomerAndAccount()

	token, expiresAt, err := ts.GenerateSessionToken(customer, account)
	require.NoError(t, err)

	jti, err := ts.GetJTI(token)
	require.NoError(t, err)
	assert.NotEmpty(t, jti)

	expiry, err := ts.GetTokenExpiry(token)
	require.NoError(t, err)
	assert.WithinDuration(t, expiresAt, expiry, time.Second)
}
