package errors

// ErrorCode represents a standardized error code used throughout the API
type ErrorCode string

// Authentication error codes (AUTH_*)
const (
	AuthInvalidCredentials ErrorCode = "AUTH_001"
	AuthMissingToken       ErrorCode = "AUTH_002"
	AuthExpiredToken       ErrorCode = "AUTH_003"
	AuthInvalidTokenFormat ErrorCode = "AUTH_004"
	AuthTokenRevoked       ErrorCode = "AUTH_005"
)

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral       ErrorCode = "VALIDATION_001"
	ValidationRequiredField ErrorCode = "VALIDATION_002"
	ValidationInvalidFormat ErrorCode = "VALIDATION_003"
	ValidationOutOfRange    ErrorCode = "VALIDATION_004"
	ValidationInvalidName   ErrorCode = "VALIDATION_005"
	ValidationInvalidPIN    ErrorCode = "VALIDATION_006"
	ValidationInvalidAmount ErrorCode = "VALIDATION_007"
)

// Customer error codes (CUSTOMER_*)
const (
	CustomerNotFound      ErrorCode = "CUSTOMER_001"
	CustomerNumberTaken   ErrorCode = "CUSTOMER_002"
	CustomerInvalidNumber ErrorCode = "CUSTOMER_003"
)

// Account error codes (ACCOUNT_*)
const (
	AccountNotFound            ErrorCode = "ACCOUNT_001"
	AccountInsufficientBalance ErrorCode = "ACCOUNT_002"
	AccountBelowMinimumDeposit ErrorCode = "ACCOUNT_003"
	AccountInvalidKind         ErrorCode = "ACCOUNT_004"
	AccountWithdrawalRejected  ErrorCode = "ACCOUNT_005"
)

// Transfer error codes (TRANSFER_*)
const (
	TransferTargetNotFound    ErrorCode = "TRANSFER_001"
	TransferSameAccount       ErrorCode = "TRANSFER_002"
	TransferFailed            ErrorCode = "TRANSFER_003"
	TransferInvalidAmount     ErrorCode = "TRANSFER_004"
	TransferInsufficientFunds ErrorCode = "TRANSFER_005"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError      ErrorCode = "SYSTEM_001"
	SystemDatabaseError      ErrorCode = "SYSTEM_002"
	SystemServiceUnavailable ErrorCode = "SYSTEM_003"
	SystemRateLimitExceeded  ErrorCode = "SYSTEM_004"
)

// errorMessages maps error codes to their default human-readable messages.
// The invalid-credentials message is deliberately generic: it must never
// reveal whether the customer number or the PIN was wrong.
var errorMessages = map[ErrorCode]string{
	AuthInvalidCredentials: "Invalid ID or PIN",
	AuthMissingToken:       "Authorization token is required",
	AuthExpiredToken:       "Authorization token has expired",
	AuthInvalidTokenFormat: "Invalid authorization token format",
	AuthTokenRevoked:       "Authorization token has been revoked",

	ValidationGeneral:       "Validation failed",
	ValidationRequiredField: "Required field is missing",
	ValidationInvalidFormat: "Invalid field format",
	ValidationOutOfRange:    "Field value is out of allowed range",
	ValidationInvalidName:   "Invalid name. Please enter alphabetic characters only",
	ValidationInvalidPIN:    "Invalid PIN. Must be exactly 4 digits",
	ValidationInvalidAmount: "Invalid amount. Please enter a numeric value",

	CustomerNotFound:      "Customer not found",
	CustomerNumberTaken:   "Customer number is already registered",
	CustomerInvalidNumber: "Invalid customer ID format",

	AccountNotFound:            "Account not found",
	AccountInsufficientBalance: "Insufficient account balance",
	AccountBelowMinimumDeposit: "Invalid deposit amount. Must be at least 100",
	AccountInvalidKind:         "Invalid account type",
	AccountWithdrawalRejected:  "Insufficient funds or invalid amount",

	TransferTargetNotFound:    "Target account not found",
	TransferSameAccount:       "Cannot transfer to the same account",
	TransferFailed:            "Insufficient funds or invalid amount",
	TransferInvalidAmount:     "Invalid transfer amount",
	TransferInsufficientFunds: "Source account has insufficient balance for this transfer",

	SystemInternalError:      "An unexpected error occurred. Please contact support with trace ID",
	SystemDatabaseError:      "Database connection error",
	SystemServiceUnavailable: "Service temporarily unavailable",
	SystemRateLimitExceeded:  "Rate limit exceeded. Please try again later",
}

// GetErrorMessage returns the default message for a given error code
// If the error code is not found, it returns a generic error message
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "An error occurred"
}

// IsValidErrorCode checks if the provided error code is a valid registered code
func IsValidErrorCode(code ErrorCode) bool {
	_, ok := errorMessages[code]
	return ok
}
