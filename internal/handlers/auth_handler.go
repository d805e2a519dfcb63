package handlers

import (
	"errors"
	"net/http"

	"bankteller/internal/dto"
	apierrors "bankteller/internal/errors"
	"bankteller/internal/models"
	"bankteller/internal/services"

	"github.com/labstack/echo/v4"
)

// AuthHandler handles sign-up, login, and logout endpoints
type AuthHandler struct {
	authService services.AuthServiceInterface
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(authService services.AuthServiceInterface) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// SignUp opens an account for a new customer
// @Summary Open an account
// @Description Register a customer with name, PIN, account type, and initial deposit. Returns the generated 9-digit customer number.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.SignUpRequest true "Sign-up details"
// @Success 201 {object} SuccessResponse{data=dto.SignUpResponse} "Account opened"
// @Failure 400 {object} errors.ErrorResponse "Validation error - VALIDATION_001"
// @Failure 422 {object} errors.ErrorResponse "Invalid deposit - ACCOUNT_003"
// @Failure 500 {object} errors.ErrorResponse "System error - SYSTEM_001 or SYSTEM_002"
// @Router /auth/signup [post]
func (h *AuthHandler) SignUp(c echo.Context) error {
	var req dto.SignUpRequest

	if err := c.Bind(&req); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	ipAddress := getClientIP(c)
	userAgent := c.Request().UserAgent()

	account, err := h.authService.SignUp(&req, ipAddress, userAgent)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidCustomerName):
			return SendError(c, apierrors.ValidationInvalidName)
		case errors.Is(err, models.ErrInvalidPINFormat), errors.Is(err, services.ErrPINEmpty):
			return SendError(c, apierrors.ValidationInvalidPIN)
		case errors.Is(err, models.ErrInvalidAccountKind):
			return SendError(c, apierrors.AccountInvalidKind)
		case errors.Is(err, services.ErrOpeningDepositTooSmall), errors.Is(err, services.ErrInvalidDeposit):
			return SendError(c, apierrors.AccountBelowMinimumDeposit)
		}
		return SendSystemError(c, err)
	}

	response := dto.SignUpResponse{
		CustomerNumber: account.Customer.CustomerNumber,
		Name:           account.Customer.Name,
		AccountKind:    account.Kind,
		AccountLabel:   account.Label(),
		Balance:        account.Balance.StringFixed(2),
		CreatedAt:      account.CreatedAt,
	}

	return c.JSON(http.StatusCreated, SuccessResponse{
		Data:    response,
		Message: "Account opened successfully",
	})
}

// Login authenticates a customer and starts a session
// @Summary Login customer
// @Description Authenticate with customer number and PIN, receive a JWT session token
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.SessionResponse "Login successful"
// @Failure 400 {object} errors.ErrorResponse "Validation error - VALIDATION_001"
// @Failure 401 {object} errors.ErrorResponse "Invalid credentials - AUTH_001"
// @Failure 500 {object} errors.ErrorResponse "System error - SYSTEM_001 or SYSTEM_002"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest

	if err := c.Bind(&req); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	ipAddress := getClientIP(c)
	userAgent := c.Request().UserAgent()

	session, err := h.authService.Login(&req, ipAddress, userAgent)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return SendError(c, apierrors.AuthInvalidCredentials)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, session)
}

// Logout ends the customer's session
// @Summary Logout customer
// @Description Revoke the session token so it cannot be used again
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SuccessResponse "Logout successful"
// @Failure 401 {object} errors.ErrorResponse "Missing token - AUTH_002"
// @Failure 500 {object} errors.ErrorResponse "System error - SYSTEM_001 or SYSTEM_002"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return SendError(c, apierrors.AuthMissingToken)
	}

	const bearerPrefix = "Bearer "
	token := authHeader
	if len(authHeader) > len(bearerPrefix) {
		token = authHeader[len(bearerPrefix):]
	}

	ipAddress := getClientIP(c)
	userAgent := c.Request().UserAgent()

	if err := h.authService.Logout(token, ipAddress, userAgent); err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Message: "Logged out successfully",
	})
}
