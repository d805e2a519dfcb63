package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"bankteller/internal/config"
	"bankteller/internal/models"
	"bankteller/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount          = errors.New("amount must be positive")
	ErrInsufficientFunds      = errors.New("insufficient funds")
	ErrOpeningDepositTooSmall = errors.New("initial deposit is below the minimum")
	ErrTransferTargetNotFound = errors.New("target account not found")
	ErrSameAccountTransfer    = errors.New("cannot transfer to your own account")
)

// LedgerService implements the account ledger: opening accounts, moving
// funds, and reading history. Every balance change goes through the
// repository so the balance and its ledger entry always commit together.
type LedgerService struct {
	accountRepo  repositories.AccountRepositoryInterface
	ledgerRepo   repositories.LedgerRepositoryInterface
	transferRepo repositories.TransferRepositoryInterface
	auditRepo    repositories.AuditLogRepositoryInterface
	pinService   PINServiceInterface
	metrics      MetricsRecorderInterface
	bank         config.BankConfig
	logger       *slog.Logger
}

// NewLedgerService creates a new ledger service
func NewLedgerService(
	accountRepo repositories.AccountRepositoryInterface,
	ledgerRepo repositories.LedgerRepositoryInterface,
	transferRepo repositories.TransferRepositoryInterface,
	auditRepo repositories.AuditLogRepositoryInterface,
	pinService PINServiceInterface,
	metrics MetricsRecorderInterface,
	bank config.BankConfig,
	logger *slog.Logger,
) LedgerServiceInterface {
	return &LedgerService{
		accountRepo:  accountRepo,
		ledgerRepo:   ledgerRepo,
		transferRepo: transferRepo,
		auditRepo:    auditRepo,
		pinService:   pinService,
		metrics:      metrics,
		bank:         bank,
		logger:       logger,
	}
}

// OpenAccount registers a new customer with a freshly generated customer
// number and creates their account with the opening deposit as its first
// ledger entry
func (s *LedgerService) OpenAccount(name, pin, kind string, initialDeposit decimal.Decimal, ipAddress, userAgent string) (*models.Account, error) {
	if !models.IsValidCustomerName(name) {
		return nil, models.ErrInvalidCustomerName
	}

	if !models.IsValidAccountKind(kind) {
		return nil, models.ErrInvalidAccountKind
	}

	if initialDeposit.LessThan(s.bank.MinOpeningDeposit) {
		return nil, ErrOpeningDepositTooSmall
	}

	pinHash, err := s.pinService.HashPIN(pin)
	if err != nil {
		return nil, err
	}

	// A generated number can collide with a registration that raced us
	// between the uniqueness check and the insert, so the insert retries
	// with a fresh number.
	maxAttempts := 3
	for attempt := 0; attempt < maxAttempts; attempt++ {
		number, err := s.accountRepo.GenerateUniqueCustomerNumber()
		if err != nil {
			return nil, fmt.Errorf("failed to generate customer number: %w", err)
		}

		customer := &models.Customer{
			CustomerNumber: number,
			Name:           name,
			PINHash:        pinHash,
		}
		account := &models.Account{
			Kind:    kind,
			Balance: initialDeposit,
		}
		entry := &models.LedgerEntry{
			Direction:   models.EntryDirectionCredit,
			Amount:      initialDeposit,
			Description: models.InitialDepositDescription(initialDeposit),
		}

		err = s.accountRepo.CreateWithCustomer(customer, account, entry)
		if errors.Is(err, repositories.ErrCustomerNumberTaken) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to open account: %w", err)
		}

		account.Customer = *customer
		s.audit(&customer.ID, models.AuditActionAccountOpened, "account", account.ID.String(), ipAddress, userAgent, map[string]interface{}{
			"kind":            kind,
			"initial_deposit": initialDeposit.StringFixed(2),
		})
		s.metrics.IncrementCounter("accounts_opened", map[string]string{"kind": kind})
		if count, err := s.accountRepo.CountAccounts(); err == nil {
			s.metrics.RecordGauge("registered_accounts", float64(count), nil)
		}

		return account, nil
	}

	return nil, fmt.Errorf("failed to open account after %d attempts", maxAttempts)
}

// GetAccount retrieves an account with its owning customer
func (s *LedgerService) GetAccount(accountID uuid.UUID) (*models.Account, error) {
	return s.accountRepo.GetByID(accountID)
}

// Deposit credits an account. Non-positive amounts are ignored: the balance
// and the history stay exactly as they were.
func (s *LedgerService) Deposit(accountID uuid.UUID, amount decimal.Decimal, ipAddress, userAgent string) (*models.Account, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return s.accountRepo.GetByID(accountID)
	}

	start := time.Now()
	entry, err := s.accountRepo.Deposit(accountID, amount, models.DepositDescription(amount))
	if err != nil {
		return nil, err
	}

	account, err := s.accountRepo.GetByID(accountID)
	if err != nil {
		return nil, err
	}

	s.audit(&account.CustomerID, models.AuditActionDeposit, "account", accountID.String(), ipAddress, userAgent, map[string]interface{}{
		"amount":    amount.StringFixed(2),
		"entry_id":  entry.ID.String(),
		"reference": entry.Reference,
	})
	s.metrics.IncrementCounter("deposits", nil)
	s.metrics.RecordProcessingTime("deposit", time.Since(start))

	return account, nil
}

// Withdraw debits an account. A non-positive amount fails with
// ErrInvalidAmount; a balance shortfall fails with ErrInsufficientFunds.
// Either way a failed withdrawal leaves no trace in the history.
func (s *LedgerService) Withdraw(accountID uuid.UUID, amount decimal.Decimal, ipAddress, userAgent string) (*models.Account, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}

	start := time.Now()
	entry, err := s.accountRepo.Withdraw(accountID, amount, models.WithdrawalDescription(amount))
	if err != nil {
		if errors.Is(err, repositories.ErrInsufficientFunds) {
			return nil, ErrInsufficientFunds
		}
		if errors.Is(err, models.ErrNonPositiveAmount) {
			return nil, ErrInvalidAmount
		}
		return nil, err
	}

	account, err := s.accountRepo.GetByID(accountID)
	if err != nil {
		return nil, err
	}

	s.audit(&account.CustomerID, models.AuditActionWithdrawal, "account", accountID.String(), ipAddress, userAgent, map[string]interface{}{
		"amount":    amount.StringFixed(2),
		"entry_id":  entry.ID.String(),
		"reference": entry.Reference,
	})
	s.metrics.IncrementCounter("withdrawals", nil)
	s.metrics.RecordProcessingTime("withdrawal", time.Since(start))

	return account, nil
}

// Transfer moves funds from the authenticated customer's account to the
// account registered under toCustomerNumber. Both sides of the movement
// commit atomically; each account's history cross-references the other
// customer by number and name.
func (s *LedgerService) Transfer(fromAccountID uuid.UUID, toCustomerNumber string, amount decimal.Decimal, ipAddress, userAgent string) (*models.Transfer, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}

	fromAccount, err := s.accountRepo.GetByID(fromAccountID)
	if err != nil {
		return nil, err
	}

	toAccount, err := s.accountRepo.GetByCustomerNumber(toCustomerNumber)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return nil, ErrTransferTargetNotFound
		}
		return nil, err
	}

	if fromAccount.ID == toAccount.ID {
		return nil, ErrSameAccountTransfer
	}

	start := time.Now()
	fromDescription := models.TransferOutDescription(amount, toAccount.Customer.CustomerNumber, toAccount.Customer.Name)
	toDescription := models.TransferInDescription(amount, fromAccount.Customer.CustomerNumber, fromAccount.Customer.Name)

	debitEntryID, creditEntryID, err := s.accountRepo.ExecuteAtomicTransfer(
		fromAccount.ID, toAccount.ID, amount, fromDescription, toDescription)
	if err != nil {
		if errors.Is(err, repositories.ErrInsufficientFunds) {
			s.recordFailedTransfer(fromAccount, toAccount, amount, "insufficient funds", ipAddress, userAgent)
			return nil, ErrInsufficientFunds
		}
		return nil, fmt.Errorf("transfer failed: %w", err)
	}

	transfer := &models.Transfer{
		FromAccountID: fromAccount.ID,
		ToAccountID:   toAccount.ID,
		Amount:        amount,
		Status:        models.TransferStatusCompleted,
		DebitEntryID:  &debitEntryID,
		CreditEntryID: &creditEntryID,
	}
	if err := s.transferRepo.Create(transfer); err != nil {
		// The funds already moved; a missing receipt is recoverable from
		// the ledger entries themselves.
		s.logger.Error("failed to record transfer receipt",
			"error", err,
			"from_account_id", fromAccount.ID,
			"to_account_id", toAccount.ID)
	}

	s.audit(&fromAccount.CustomerID, models.AuditActionTransfer, "transfer", transfer.ID.String(), ipAddress, userAgent, map[string]interface{}{
		"amount":             amount.StringFixed(2),
		"to_customer_number": toAccount.Customer.CustomerNumber,
	})
	s.metrics.IncrementCounter("transfers", map[string]string{"status": models.TransferStatusCompleted})
	s.metrics.RecordGauge("transfer_amount", amount.InexactFloat64(), nil)
	s.metrics.RecordProcessingTime("transfer", time.Since(start))

	return transfer, nil
}

// MonthlyInterest computes one month of interest on the current balance at
// the account kind's annual rate. Nothing is credited; the figure is
// informational.
func (s *LedgerService) MonthlyInterest(accountID uuid.UUID) (decimal.Decimal, error) {
	account, err := s.accountRepo.GetByID(accountID)
	if err != nil {
		return decimal.Zero, err
	}
	return account.MonthlyInterest(), nil
}

// History returns the account's full ledger in chronological order
func (s *LedgerService) History(accountID uuid.UUID) ([]models.LedgerEntry, error) {
	if _, err := s.accountRepo.GetByID(accountID); err != nil {
		return nil, err
	}
	return s.ledgerRepo.ListByAccountID(accountID)
}

func (s *LedgerService) recordFailedTransfer(from, to *models.Account, amount decimal.Decimal, reason, ipAddress, userAgent string) {
	transfer := &models.Transfer{
		FromAccountID: from.ID,
		ToAccountID:   to.ID,
		Amount:        amount,
		Status:        models.TransferStatusFailed,
		FailureReason: reason,
	}
	if err := s.transferRepo.Create(transfer); err != nil {
		s.logger.Error("failed to record failed transfer",
			"error", err,
			"from_account_id", from.ID,
			"to_account_id", to.ID)
	}

	s.audit(&from.CustomerID, models.AuditActionTransferFailed, "transfer", transfer.ID.String(), ipAddress, userAgent, map[string]interface{}{
		"amount": amount.StringFixed(2),
		"reason": reason,
	})
	s.metrics.IncrementCounter("transfers", map[string]string{"status": models.TransferStatusFailed})
}

func (s *LedgerService) audit(customerID *uuid.UUID, action, resource, resourceID, ipAddress, userAgent string, metadata map[string]interface{}) {
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
			"resource", resource,
			"resource_id", resourceID)
	}
}
