package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bankteller/internal/config"
	"bankteller/internal/database"
	apierrors "bankteller/internal/errors"
	"bankteller/internal/models"
	"bankteller/internal/repositories"
	"bankteller/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

type RequireSessionTestSuite struct {
	suite.Suite
	db            *database.DB
	tokenService  services.TokenServiceInterface
	blacklistRepo repositories.BlacklistedTokenRepositoryInterface
	echo          *echo.Echo
	customer      *models.Customer
	account       *models.Account
}

func (s *RequireSessionTestSuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.blacklistRepo = repositories.NewBlacklistedTokenRepository(s.db.DB)

	privateKey, publicKey, err := config.GenerateRSAKeyPair()
	s.Require().NoError(err)
	s.tokenService = services.NewTokenService(&config.JWTConfig{
		AccessTokenDuration: time.Hour,
		PrivateKey:          privateKey,
		PublicKey:           publicKey,
		Issuer:              "bankteller-test",
	})

	s.echo = echo.New()

	s.customer = &models.Customer{
		ID:             uuid.New(),
		CustomerNumber: "123456789",
		Name:           "Alice Smith",
		PINHash:        "hash",
	}
	s.account = &models.Account{
		ID:         uuid.New(),
		CustomerID: s.customer.ID,
		Kind:       models.AccountKindSavings,
	}
}

func (s *RequireSessionTestSuite) run(authHeader string) (*httptest.ResponseRecorder, echo.Context) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/account", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	var captured echo.Context
	handler := RequireSession(s.tokenService, s.blacklistRepo)(func(c echo.Context) error {
		captured = c
		return c.NoContent(http.StatusOK)
	})
	s.Require().NoError(handler(c))
	if captured == nil {
		captured = c
	}
	return rec, captured
}

func (s *RequireSessionTestSuite) errorCode(rec *httptest.ResponseRecorder) string {
	var response apierrors.ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	return response.Error.Code
}

func (s *RequireSessionTestSuite) TestValidToken() {
	token, _, err := s.tokenService.GenerateSessionToken(s.customer, s.account)
	s.Require().NoError(err)

	rec, c := s.run("Bearer " + token)
	s.Equal(http.StatusOK, rec.Code)

	s.Equal(s.account.ID, c.Get("account_id"))
	s.Equal("123456789", c.Get("customer_number"))
	s.Equal("Alice Smith", c.Get("customer_name"))
	s.NotEmpty(c.Get("token_jti"))
}

func (s *RequireSessionTestSuite) TestMissingHeader() {
	rec, _ := s.run("")
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal(string(apierrors.AuthMissingToken), s.errorCode(rec))
}

func (s *RequireSessionTestSuite) TestMalformedHeader() {
	rec, _ := s.run("Token abc")
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal(string(apierrors.AuthInvalidTokenFormat), s.errorCode(rec))
}

func (s *RequireSessionTestSuite) TestGarbageToken() {
	rec, _ := s.run("Bearer not.a.token")
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal(string(apierrors.AuthInvalidTokenFormat), s.errorCode(rec))
}

func (s *RequireSessionTestSuite) TestExpiredToken() {
	privateKey, publicKey, err := config.GenerateRSAKeyPair()
	s.Require().NoError(err)
	expiredIssuer := services.NewTokenService(&config.JWTConfig{
		AccessTokenDuration: -time.Minute,
		PrivateKey:          privateKey,
		PublicKey:           publicKey,
		Issuer:              "bankteller-test",
	})
	s.tokenService = expiredIssuer

	token, _, err := expiredIssuer.GenerateSessionToken(s.customer, s.account)
	s.Require().NoError(err)

	rec, _ := s.run("Bearer " + token)
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal(string(apierrors.AuthExpiredToken), s.errorCode(rec))
}

func (s *RequireSessionTestSuite) TestRevokedToken() {
	token, expiresAt, err := s.tokenService.GenerateSessionToken(s.customer, s.account)
	s.Require().NoError(err)

	jti, err := s.tokenService.GetJTI(token)
	s.Require().NoError(err)
	s.Require().NoError(s.blacklistRepo.Create(&models.BlacklistedToken{
		JTI:        jti,
		CustomerID: &s.customer.ID,
		ExpiresAt:  expiresAt,
	}))

	rec, _ := s.run("Bearer " + token)
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal(string(apierrors.AuthTokenRevoked), s.errorCode(rec))
}

func TestRequireSessionTestSuite(t *testing.T) {
	suite.Run(t, new(RequireSessionTestSuite))
}
