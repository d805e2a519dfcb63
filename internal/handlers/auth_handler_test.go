package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"bankteller/internal/dto"
	apierrors "bankteller/internal/errors"
	"bankteller/internal/models"
	"bankteller/internal/services"
	"bankteller/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type AuthHandlerTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	authService *service_mocks.MockAuthServiceInterface
	handler     *AuthHandler
	echo        *echo.Echo
}

func (s *AuthHandlerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.authService = service_mocks.NewMockAuthServiceInterface(s.ctrl)
	s.handler = NewAuthHandler(s.authService)
	s.echo = echo.New()
	s.echo.Validator = NewValidator()
}

func (s *AuthHandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *AuthHandlerTestSuite) newContext(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return s.echo.NewContext(req, rec), rec
}

func (s *AuthHandlerTestSuite) decodeError(rec *httptest.ResponseRecorder) apierrors.ErrorResponse {
	var response apierrors.ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	return response
}

func testAccount() *models.Account {
	customer := models.Customer{
		ID:             uuid.New(),
		CustomerNumber: "123456789",
		Name:           "Alice Smith",
		PINHash:        "hash",
	}
	return &models.Account{
		ID:           uuid.New(),
		CustomerID:   customer.ID,
		Kind:         models.AccountKindSavings,
		Balance:      decimal.NewFromInt(500),
		InterestRate: decimal.NewFromFloat(5.0),
		CreatedAt:    time.Now(),
		Customer:     customer,
	}
}

func (s *AuthHandlerTestSuite) TestSignUp() {
	account := testAccount()
	s.authService.EXPECT().
		SignUp(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(req *dto.SignUpRequest, ip, ua string) (*models.Account, error) {
			s.Equal("Alice Smith", req.Name)
			s.Equal("savings", req.AccountKind)
			return account, nil
		})

	body := `{"name":"Alice Smith","pin":"1234","accountKind":"savings","initialDeposit":"500"}`
	c, rec := s.newContext(http.MethodPost, "/api/v1/auth/signup", body)

	s.Require().NoError(s.handler.SignUp(c))
	s.Equal(http.StatusCreated, rec.Code)

	var response struct {
		Data    dto.SignUpResponse `json:"data"`
		Message string             `json:"message"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal("123456789", response.Data.CustomerNumber)
	s.Equal("Savings Account", response.Data.AccountLabel)
	s.Equal("500.00", response.Data.Balance)
	s.Equal("Account opened successfully", response.Message)
}

func (s *AuthHandlerTestSuite) TestSignUp_ValidationFailure() {
	// Name with digits never reaches the service
	body := `{"name":"Alice123","pin":"1234","accountKind":"savings","initialDeposit":"500"}`
	c, _ := s.newContext(http.MethodPost, "/api/v1/auth/signup", body)

	err := s.handler.SignUp(c)
	s.Error(err, "validation errors propagate to the central error handler")
}

func (s *AuthHandlerTestSuite) TestSignUp_DepositTooSmall() {
	s.authService.EXPECT().
		SignUp(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, services.ErrOpeningDepositTooSmall)

	body := `{"name":"Alice Smith","pin":"1234","accountKind":"savings","initialDeposit":"50"}`
	c, rec := s.newContext(http.MethodPost, "/api/v1/auth/signup", body)

	s.Require().NoError(s.handler.SignUp(c))
	s.Equal(http.StatusUnprocessableEntity, rec.Code)
	s.Equal(string(apierrors.AccountBelowMinimumDeposit), s.decodeError(rec).Error.Code)
}

func (s *AuthHandlerTestSuite) TestLogin() {
	session := &dto.SessionResponse{
		Token:          "token",
		TokenType:      "Bearer",
		ExpiresAt:      time.Now().Add(time.Hour),
		CustomerNumber: "123456789",
		Name:           "Alice Smith",
		WelcomeMessage: "Welcome, Alice Smith!",
	}
	s.authService.EXPECT().
		Login(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(session, nil)

	body := `{"customerNumber":"123456789","pin":"1234"}`
	c, rec := s.newContext(http.MethodPost, "/api/v1/auth/login", body)

	s.Require().NoError(s.handler.Login(c))
	s.Equal(http.StatusOK, rec.Code)

	var response dto.SessionResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal("token", response.Token)
	s.Equal("Welcome, Alice Smith!", response.WelcomeMessage)
}

func (s *AuthHandlerTestSuite) TestLogin_InvalidCredentials() {
	s.authService.EXPECT().
		Login(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, services.ErrInvalidCredentials)

	body := `{"customerNumber":"123456789","pin":"9999"}`
	c, rec := s.newContext(http.MethodPost, "/api/v1/auth/login", body)

	s.Require().NoError(s.handler.Login(c))
	s.Equal(http.StatusUnauthorized, rec.Code)

	response := s.decodeError(rec)
	s.Equal(string(apierrors.AuthInvalidCredentials), response.Error.Code)
	s.Equal("Invalid ID or PIN", response.Error.Message)
}

func (s *AuthHandlerTestSuite) TestLogin_MalformedCustomerNumber() {
	body := `{"customerNumber":"12","pin":"1234"}`
	c, _ := s.newContext(http.MethodPost, "/api/v1/auth/login", body)

	s.Error(s.handler.Login(c))
}

func (s *AuthHandlerTestSuite) TestLogout() {
	s.authService.EXPECT().
		Logout("some-token", gomock.Any(), gomock.Any()).
		Return(nil)

	c, rec := s.newContext(http.MethodPost, "/api/v1/auth/logout", "")
	c.Request().Header.Set("Authorization", "Bearer some-token")

	s.Require().NoError(s.handler.Logout(c))
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "Logged out successfully")
}

func (s *AuthHandlerTestSuite) TestLogout_MissingHeader() {
	c, rec := s.newContext(http.MethodPost, "/api/v1/auth/logout", "")

	s.Require().NoError(s.handler.Logout(c))
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal(string(apierrors.AuthMissingToken), s.decodeError(rec).Error.Code)
}

func TestAuthHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}
