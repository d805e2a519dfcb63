package handlers

import (
	"net/http"
	"strconv"

	apierrors "bankteller/internal/errors"
	"bankteller/internal/services"

	"github.com/labstack/echo/v4"
)

// DevHandler handles development-only endpoints
// These endpoints should only be available in development environments
type DevHandler struct {
	demoData services.DemoDataServiceInterface
}

// NewDevHandler creates a new development handler
func NewDevHandler(demoData services.DemoDataServiceInterface) *DevHandler {
	return &DevHandler{demoData: demoData}
}

// SeedDemoAccounts opens a batch of demo accounts with generated credentials
//
// Method: POST /api/v1/dev/seed-accounts
// Environment: Development only
//
// Query parameters:
//   - count: Number of accounts to open (default: 5, max: 50)
//
// Success Response: 201 Created
//   - data: the seeded accounts with their customer numbers and PINs
func (h *DevHandler) SeedDemoAccounts(c echo.Context) error {
	count := 5
	if param := c.QueryParam("count"); param != "" {
		parsed, err := strconv.Atoi(param)
		if err != nil || parsed <= 0 {
			return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("count must be a positive integer"))
		}
		count = parsed
	}
	if count > 50 {
		count = 50
	}

	seeded, err := h.demoData.SeedAccounts(count)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusCreated, SuccessResponse{
		Data:    seeded,
		Message: "Demo accounts created",
	})
}
