package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"bankteller/internal/services"
	"bankteller/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func devHandlerRequest(t *testing.T, handler *DevHandler, target string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handler.SeedDemoAccounts(c))
	return rec
}

func TestSeedDemoAccounts_DefaultCount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	demoData := service_mocks.NewMockDemoDataServiceInterface(ctrl)
	demoData.EXPECT().SeedAccounts(5).Return([]services.SeededAccount{
		{CustomerNumber: "123456789", Name: "Alice Smith", PIN: "1234", Kind: "savings", Balance: decimal.NewFromInt(500)},
	}, nil)

	rec := devHandlerRequest(t, NewDevHandler(demoData), "/api/v1/dev/seed-accounts")
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "Demo accounts created")
}

func TestSeedDemoAccounts_CountCappedAtFifty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	demoData := service_mocks.NewMockDemoDataServiceInterface(ctrl)
	demoData.EXPECT().SeedAccounts(50).Return(nil, nil)

	rec := devHandlerRequest(t, NewDevHandler(demoData), "/api/v1/dev/seed-accounts?count=500")
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestSeedDemoAccounts_ServiceFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	demoData := service_mocks.NewMockDemoDataServiceInterface(ctrl)
	demoData.EXPECT().SeedAccounts(5).Return(nil, assert.AnError)

	rec := devHandlerRequest(t, NewDevHandler(demoData), "/api/v1/dev/seed-accounts")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestSeedDemoAccounts_InvalidCount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	demoData := service_mocks.NewMockDemoDataServiceInterface(ctrl)

	rec := devHandlerRequest(t, NewDevHandler(demoData), "/api/v1/dev/seed-accounts?count=zero")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = devHandlerRequest(t, NewDevHandler(demoData), "/api/v1/dev/seed-accounts?count=-3")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
