package dto

import (
	"time"

	"bankteller/internal/models"
)

// Account Request DTOs

// DepositRequest represents the request payload for depositing funds
type DepositRequest struct {
	Amount string `json:"amount" validate:"required"`
}

// WithdrawRequest represents the request payload for withdrawing funds
type WithdrawRequest struct {
	Amount string `json:"amount" validate:"required"`
}

// TransferRequest represents the request payload for transferring funds to
// another customer's account
type TransferRequest struct {
	ToCustomerNumber string `json:"toCustomerNumber" validate:"required,customer_number"`
	Amount           string `json:"amount" validate:"required"`
}

// Account Response DTOs

// AccountResponse represents the authenticated customer's account
type AccountResponse struct {
	CustomerNumber  string    `json:"customerNumber"`
	Name            string    `json:"name"`
	AccountKind     string    `json:"accountKind"`
	AccountLabel    string    `json:"accountLabel"`
	Balance         string    `json:"balance"`
	InterestRate    string    `json:"interestRate"`
	MonthlyInterest string    `json:"monthlyInterest"`
	CreatedAt       time.Time `json:"createdAt"`
}

// MessageResponse represents a simple message response
type MessageResponse struct {
	Message string `json:"message"`
}

// BalanceResponse reports the balance after a deposit or withdrawal
type BalanceResponse struct {
	Message string `json:"message"`
	Balance string `json:"balance"`
}

// TransferResponse represents the receipt of a completed transfer
type TransferResponse struct {
	Message          string  `json:"message"`
	TransferID       string  `json:"transferId"`
	ToCustomerNumber string  `json:"toCustomerNumber"`
	ToName           string  `json:"toName"`
	Amount           string  `json:"amount"`
	Balance          string  `json:"balance"`
	DebitEntryID     *string `json:"debitEntryId,omitempty"`
	CreditEntryID    *string `json:"creditEntryId,omitempty"`
}

// HistoryResponse represents an account's full transaction history in
// chronological order
type HistoryResponse struct {
	Entries []models.LedgerEntry `json:"entries"`
	Count   int                  `json:"count"`
}
