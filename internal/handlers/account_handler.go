package handlers

import (
	"errors"
	"net/http"

	"bankteller/internal/config"
	"bankteller/internal/dto"
	apierrors "bankteller/internal/errors"
	"bankteller/internal/repositories"
	"bankteller/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// AccountHandler serves the authenticated customer's account: balance,
// deposits, withdrawals, transfers, and history. Amount ranges are a
// front-desk policy enforced here; the ledger itself only insists that
// withdrawals and transfers are positive and covered.
type AccountHandler struct {
	ledgerService services.LedgerServiceInterface
	bank          config.BankConfig
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(ledgerService services.LedgerServiceInterface, bank config.BankConfig) *AccountHandler {
	return &AccountHandler{
		ledgerService: ledgerService,
		bank:          bank,
	}
}

// GetAccount returns the authenticated customer's account details
// @Summary Get account
// @Description Get the current balance, account type, and projected monthly interest
// @Tags Account
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SuccessResponse{data=dto.AccountResponse} "Account details"
// @Failure 401 {object} errors.ErrorResponse "Missing token - AUTH_002"
// @Failure 404 {object} errors.ErrorResponse "Account not found - ACCOUNT_001"
// @Router /account [get]
func (h *AccountHandler) GetAccount(c echo.Context) error {
	accountID, err := getAccountIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	account, err := h.ledgerService.GetAccount(accountID)
	if err != nil {
		return h.mapAccountError(c, err)
	}

	response := dto.AccountResponse{
		CustomerNumber:  account.Customer.CustomerNumber,
		Name:            account.Customer.Name,
		AccountKind:     account.Kind,
		AccountLabel:    account.Label(),
		Balance:         account.Balance.StringFixed(2),
		InterestRate:    account.InterestRate.StringFixed(2),
		MonthlyInterest: account.MonthlyInterest().StringFixed(2),
		CreatedAt:       account.CreatedAt,
	}

	return c.JSON(http.StatusOK, SuccessResponse{Data: response})
}

// Deposit credits the authenticated customer's account
// @Summary Deposit funds
// @Description Deposit an amount into the account. The amount must be at least the minimum deposit.
// @Tags Account
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.DepositRequest true "Deposit amount"
// @Success 200 {object} dto.BalanceResponse "Deposit successful"
// @Failure 400 {object} errors.ErrorResponse "Invalid amount - VALIDATION_007"
// @Failure 401 {object} errors.ErrorResponse "Missing token - AUTH_002"
// @Failure 422 {object} errors.ErrorResponse "Amount out of range - VALIDATION_004"
// @Router /account/deposit [post]
func (h *AccountHandler) Deposit(c echo.Context) error {
	accountID, err := getAccountIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	var req dto.DepositRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return SendError(c, apierrors.ValidationInvalidAmount)
	}

	if amount.LessThan(h.bank.MinDeposit) {
		return SendError(c, apierrors.AccountBelowMinimumDeposit)
	}

	account, err := h.ledgerService.Deposit(accountID, amount, getClientIP(c), c.Request().UserAgent())
	if err != nil {
		return h.mapAccountError(c, err)
	}

	return c.JSON(http.StatusOK, dto.BalanceResponse{
		Message: "Deposit successful",
		Balance: account.Balance.StringFixed(2),
	})
}

// Withdraw debits the authenticated customer's account
// @Summary Withdraw funds
// @Description Withdraw an amount within the allowed range, limited by the available balance
// @Tags Account
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.WithdrawRequest true "Withdrawal amount"
// @Success 200 {object} dto.BalanceResponse "Withdrawal successful"
// @Failure 400 {object} errors.ErrorResponse "Invalid amount - VALIDATION_007"
// @Failure 401 {object} errors.ErrorResponse "Missing token - AUTH_002"
// @Failure 422 {object} errors.ErrorResponse "Rejected - ACCOUNT_005"
// @Router /account/withdraw [post]
func (h *AccountHandler) Withdraw(c echo.Context) error {
	accountID, err := getAccountIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	var req dto.WithdrawRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return SendError(c, apierrors.ValidationInvalidAmount)
	}

	if amount.LessThan(h.bank.MinWithdrawal) || amount.GreaterThan(h.bank.MaxWithdrawal) {
		return SendError(c, apierrors.AccountWithdrawalRejected)
	}

	account, err := h.ledgerService.Withdraw(accountID, amount, getClientIP(c), c.Request().UserAgent())
	if err != nil {
		// One message for both failure modes: the response must not say
		// whether the amount or the balance was the problem.
		if errors.Is(err, services.ErrInvalidAmount) || errors.Is(err, services.ErrInsufficientFunds) {
			return SendError(c, apierrors.AccountWithdrawalRejected)
		}
		return h.mapAccountError(c, err)
	}

	return c.JSON(http.StatusOK, dto.BalanceResponse{
		Message: "Withdrawal successful",
		Balance: account.Balance.StringFixed(2),
	})
}

// Transfer moves funds to another customer's account
// @Summary Transfer funds
// @Description Transfer an amount to the account registered under another customer number
// @Tags Account
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.TransferRequest true "Transfer details"
// @Success 200 {object} dto.TransferResponse "Transfer successful"
// @Failure 400 {object} errors.ErrorResponse "Invalid amount - VALIDATION_007"
// @Failure 401 {object} errors.ErrorResponse "Missing token - AUTH_002"
// @Failure 404 {object} errors.ErrorResponse "Target not found - TRANSFER_001"
// @Failure 422 {object} errors.ErrorResponse "Rejected - TRANSFER_002 or TRANSFER_003"
// @Router /account/transfer [post]
func (h *AccountHandler) Transfer(c echo.Context) error {
	accountID, err := getAccountIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	var req dto.TransferRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return SendError(c, apierrors.ValidationInvalidAmount)
	}

	if amount.LessThan(h.bank.MinTransfer) || amount.GreaterThan(h.bank.MaxTransfer) {
		return SendError(c, apierrors.TransferInvalidAmount)
	}

	transfer, err := h.ledgerService.Transfer(accountID, req.ToCustomerNumber, amount, getClientIP(c), c.Request().UserAgent())
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTransferTargetNotFound):
			return SendError(c, apierrors.TransferTargetNotFound)
		case errors.Is(err, services.ErrSameAccountTransfer):
			return SendError(c, apierrors.TransferSameAccount)
		case errors.Is(err, services.ErrInvalidAmount), errors.Is(err, services.ErrInsufficientFunds):
			return SendError(c, apierrors.TransferFailed)
		}
		return h.mapAccountError(c, err)
	}

	account, err := h.ledgerService.GetAccount(accountID)
	if err != nil {
		return h.mapAccountError(c, err)
	}

	target, err := h.ledgerService.GetAccount(transfer.ToAccountID)
	if err != nil {
		return h.mapAccountError(c, err)
	}

	response := dto.TransferResponse{
		Message:          "Transfer successful",
		TransferID:       transfer.ID.String(),
		ToCustomerNumber: target.Customer.CustomerNumber,
		ToName:           target.Customer.Name,
		Amount:           transfer.Amount.StringFixed(2),
		Balance:          account.Balance.StringFixed(2),
	}
	if transfer.DebitEntryID != nil {
		id := transfer.DebitEntryID.String()
		response.DebitEntryID = &id
	}
	if transfer.CreditEntryID != nil {
		id := transfer.CreditEntryID.String()
		response.CreditEntryID = &id
	}

	return c.JSON(http.StatusOK, response)
}

// History returns the account's full transaction history
// @Summary Get transaction history
// @Description List every ledger entry on the account in chronological order
// @Tags Account
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SuccessResponse{data=dto.HistoryResponse} "Transaction history"
// @Failure 401 {object} errors.ErrorResponse "Missing token - AUTH_002"
// @Failure 404 {object} errors.ErrorResponse "Account not found - ACCOUNT_001"
// @Router /account/history [get]
func (h *AccountHandler) History(c echo.Context) error {
	accountID, err := getAccountIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	entries, err := h.ledgerService.History(accountID)
	if err != nil {
		return h.mapAccountError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Data: dto.HistoryResponse{
			Entries: entries,
			Count:   len(entries),
		},
	})
}

func (h *AccountHandler) mapAccountError(c echo.Context, err error) error {
	if errors.Is(err, repositories.ErrAccountNotFound) {
		return SendError(c, apierrors.AccountNotFound)
	}
	return SendSystemError(c, err)
}
