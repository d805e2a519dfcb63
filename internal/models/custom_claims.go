package models

import "github.com/golang-jwt/jwt/v5"

// CustomClaims represents the custom claims in our JWT session tokens
type CustomClaims struct {
	jwt.RegisteredClaims
	AccountID      string `json:"account_id"`
	CustomerNumber string `json:"customer_number"`
	Name           string `json:"name,omitempty"`
}
