package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"bankteller/internal/dto"
	"bankteller/internal/models"
	"bankteller/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidCredentials = errors.New("invalid customer number or PIN")
	ErrInvalidDeposit     = errors.New("invalid initial deposit amount")
)

// AuthService handles sign-up, login, and session revocation
type AuthService struct {
	accountRepo          repositories.AccountRepositoryInterface
	auditRepo            repositories.AuditLogRepositoryInterface
	blacklistedTokenRepo repositories.BlacklistedTokenRepositoryInterface
	pinService           PINServiceInterface
	tokenService         TokenServiceInterface
	ledgerService        LedgerServiceInterface
	metrics              MetricsRecorderInterface
	logger               *slog.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	accountRepo repositories.AccountRepositoryInterface,
	auditRepo repositories.AuditLogRepositoryInterface,
	blacklistedTokenRepo repositories.BlacklistedTokenRepositoryInterface,
	pinService PINServiceInterface,
	tokenService TokenServiceInterface,
	ledgerService LedgerServiceInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) AuthServiceInterface {
	return &AuthService{
		accountRepo:          accountRepo,
		auditRepo:            auditRepo,
		blacklistedTokenRepo: blacklistedTokenRepo,
		pinService:           pinService,
		tokenService:         tokenService,
		ledgerService:        ledgerService,
		metrics:              metrics,
		logger:               logger,
	}
}

// SignUp opens an account for a new customer
func (s *AuthService) SignUp(req *dto.SignUpRequest, ipAddress, userAgent string) (*models.Account, error) {
	initialDeposit, err := decimal.NewFromString(req.InitialDeposit)
	if err != nil {
		return nil, ErrInvalidDeposit
	}

	kind := strings.ToLower(req.AccountKind)
	account, err := s.ledgerService.OpenAccount(req.Name, req.PIN, kind, initialDeposit, ipAddress, userAgent)
	if err != nil {
		return nil, err
	}

	s.audit(&account.CustomerID, models.AuditActionSignUp, "customer", account.Customer.CustomerNumber, ipAddress, userAgent, nil)

	return account, nil
}

// Login authenticates a customer by number and PIN and issues a session
// token. Unknown numbers and wrong PINs fail identically so the response
// never reveals whether a customer number exists.
func (s *AuthService) Login(req *dto.LoginRequest, ipAddress, userAgent string) (*dto.SessionResponse, error) {
	account, err := s.accountRepo.GetByCustomerNumber(req.CustomerNumber)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			s.auditFailedLogin(req.CustomerNumber, ipAddress, userAgent, "customer_not_found")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up customer: %w", err)
	}

	customer := &account.Customer
	if !s.pinService.ComparePIN(req.PIN, customer.PINHash) {
		s.auditFailedLogin(req.CustomerNumber, ipAddress, userAgent, "invalid_pin")
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokenService.GenerateSessionToken(customer, account)
	if err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	s.audit(&customer.ID, models.AuditActionLogin, "customer", customer.CustomerNumber, ipAddress, userAgent, nil)
	s.metrics.IncrementCounter("authentication_event", map[string]string{"event_type": "login"})

	return &dto.SessionResponse{
		Token:          token,
		TokenType:      "Bearer",
		ExpiresAt:      expiresAt,
		CustomerNumber: customer.CustomerNumber,
		Name:           customer.Name,
		WelcomeMessage: fmt.Sprintf("Welcome, %s!", customer.Name),
	}, nil
}

// Logout revokes the session token by blacklisting its JTI until the token
// would have expired anyway
func (s *AuthService) Logout(accessToken, ipAddress, userAgent string) error {
	claims, err := s.tokenService.ValidateSessionToken(accessToken)
	if err != nil {
		// Blacklist even tokens that fail validation so a marginal token
		// cannot be replayed later. The owner is unknown at this point, so
		// the row carries no customer ID.
		jti, _ := s.tokenService.GetJTI(accessToken)
		if jti != "" {
			if err := s.blacklistToken(jti, nil, time.Now().Add(24*time.Hour)); err != nil {
				s.logger.Error("failed to blacklist token",
					"error", err,
					"jti", jti)
			}
		}
		return nil
	}

	var customerID *uuid.UUID
	if account, err := s.accountRepo.GetByCustomerNumber(claims.CustomerNumber); err == nil {
		customerID = &account.CustomerID
	}

	expiry, _ := s.tokenService.GetTokenExpiry(accessToken)
	if err := s.blacklistToken(claims.ID, customerID, expiry); err != nil {
		s.logger.Error("failed to blacklist token",
			"error", err,
			"jti", claims.ID,
			"customer_id", customerID)
	}

	if customerID != nil {
		s.audit(customerID, models.AuditActionLogout, "customer", claims.CustomerNumber, ipAddress, userAgent, nil)
	}
	s.metrics.IncrementCounter("authentication_event", map[string]string{"event_type": "logout"})

	return nil
}

func (s *AuthService) blacklistToken(jti string, customerID *uuid.UUID, expiresAt time.Time) error {
	token := &models.BlacklistedToken{
		JTI:        jti,
		CustomerID: customerID,
		ExpiresAt:  expiresAt,
	}
	return s.blacklistedTokenRepo.Create(token)
}

func (s *AuthService) auditFailedLogin(customerNumber, ipAddress, userAgent, reason string) {
	metadata := map[string]interface{}{
		"customer_number": customerNumber,
		"reason":          reason,
	}
	s.audit(nil, models.AuditActionFailedLogin, "customer", "", ipAddress, userAgent, metadata)
	s.metrics.IncrementCounter("authentication_event", map[string]string{"event_type": "login_failed"})
}

func (s *AuthService) audit(customerID *uuid.UUID, action, resource, resourceID, ipAddress, userAgent string, metadata map[string]interface{}) {
	log := &models.AuditLog{
		CustomerID: customerID,
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		IPAddress:  ipAddress,
		UserAgent:  userAgent,
		Metadata:   metadata,
	}

	if err := s.auditRepo.Create(log); err != nil {
		s.logger.Error("failed to create audit log",
			"error", err,
			"action", action,
			"resource", resource)
	}
}
