package handlers

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ErrUnauthorized is returned when session context is invalid
var ErrUnauthorized = fmt.Errorf("unauthorized")

// getAccountIDFromContext extracts the authenticated account ID set by the
// session middleware. Returns ErrUnauthorized if missing or invalid.
func getAccountIDFromContext(c echo.Context) (uuid.UUID, error) {
	accountIDValue := c.Get("account_id")
	if accountIDValue == nil {
		return uuid.UUID{}, ErrUnauthorized
	}

	accountID, ok := accountIDValue.(uuid.UUID)
	if !ok {
		return uuid.UUID{}, ErrUnauthorized
	}

	return accountID, nil
}

func getClientIP(c echo.Context) string {
	xff := c.Request().Header.Get("X-Forwarded-For")
	if xff != "" {
		ips := strings.Split(xff, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	xri := c.Request().Header.Get("X-Real-IP")
	if xri != "" {
		return xri
	}

	return c.Request().RemoteAddr
}
