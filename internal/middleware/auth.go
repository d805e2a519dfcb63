package middleware

import (
	"bankteller/internal/errors"
	"bankteller/internal/handlers"
	"bankteller/internal/repositories"
	"bankteller/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RequireSession creates a middleware that requires a valid session token
// and checks that the token has not been revoked by a logout
func RequireSession(tokenService services.TokenServiceInterface, blacklistedTokenRepo repositories.BlacklistedTokenRepositoryInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return handlers.SendError(c, errors.AuthMissingToken)
			}

			token, err := tokenService.ExtractTokenFromHeader(authHeader)
			if err != nil {
				return handlers.SendError(c, errors.AuthInvalidTokenFormat)
			}

			claims, err := tokenService.ValidateSessionToken(token)
			if err != nil {
				if err == services.ErrExpiredToken {
					return handlers.SendError(c, errors.AuthExpiredToken)
				}
				return handlers.SendError(c, errors.AuthInvalidTokenFormat)
			}

			blacklistedToken, err := blacklistedTokenRepo.GetByJTI(claims.ID)
			if err == nil && blacklistedToken != nil {
				return handlers.SendError(c, errors.AuthTokenRevoked)
			}

			accountID, err := uuid.Parse(claims.AccountID)
			if err != nil {
				return handlers.SendError(c, errors.AuthInvalidTokenFormat, errors.WithDetails("Invalid account ID in token"))
			}

			c.Set("account_id", accountID)
			c.Set("customer_number", claims.CustomerNumber)
			c.Set("customer_name", claims.Name)
			c.Set("token_jti", claims.ID)

			return next(c)
		}
	}
}
