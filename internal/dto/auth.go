package dto

import "time"

// Auth Request DTOs

// SignUpRequest contains the data needed to open an account
type SignUpRequest struct {
	Name           string `json:"name" validate:"required,customer_name,max=100"`
	PIN            string `json:"pin" validate:"required,pin"`
	AccountKind    string `json:"accountKind" validate:"required,account_kind"`
	InitialDeposit string `json:"initialDeposit" validate:"required"`
}

// LoginRequest contains session credentials
type LoginRequest struct {
	CustomerNumber string `json:"customerNumber" validate:"required,customer_number"`
	PIN            string `json:"pin" validate:"required,pin"`
}

// Auth Response DTOs

// SessionResponse contains the session token issued at login
type SessionResponse struct {
	Token          string    `json:"token"`
	TokenType      string    `json:"tokenType"`
	ExpiresAt      time.Time `json:"expiresAt"`
	CustomerNumber string    `json:"customerNumber"`
	Name           string    `json:"name"`
	WelcomeMessage string    `json:"welcomeMessage"`
}

// SignUpResponse reports a freshly opened account. The customer number is
// shown exactly once; the customer needs it to log in.
type SignUpResponse struct {
	CustomerNumber string    `json:"customerNumber"`
	Name           string    `json:"name"`
	AccountKind    string    `json:"accountKind"`
	AccountLabel   string    `json:"accountLabel"`
	Balance        string    `json:"balance"`
	CreatedAt      time.Time `json:"createdAt"`
}
