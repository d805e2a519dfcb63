package middleware

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apierrors "bankteller/internal/errors"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func handleError(t *testing.T, err error) (*httptest.ResponseRecorder, apierrors.ErrorResponse) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/account", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	CustomHTTPErrorHandler(err, c)

	var resp apierrors.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func TestCustomHTTPErrorHandler_EchoHTTPError(t *testing.T) {
	rec, resp := handleError(t, echo.NewHTTPError(http.StatusNotFound, "route not found"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, string(apierrors.AccountNotFound), resp.Error.Code)
	assert.Equal(t, "route not found", resp.Error.Message)
}

func TestCustomHTTPErrorHandler_ValidationErrors(t *testing.T) {
	v := validator.New()
	err := v.Struct(struct {
		Name string `validate:"required"`
	}{})

	var validationErrs validator.ValidationErrors
	require.True(t, stderrors.As(err, &validationErrs))

	rec, resp := handleError(t, validationErrs)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, string(apierrors.ValidationGeneral), resp.Error.Code)
	assert.Contains(t, resp.Error.Details, "Name: is required")
}

func TestCustomHTTPErrorHandler_UnknownError(t *testing.T) {
	rec, resp := handleError(t, stderrors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, string(apierrors.SystemInternalError), resp.Error.Code)
	assert.NotContains(t, rec.Body.String(), "pq:")
}

func TestCustomHTTPErrorHandler_CommittedResponse(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/account", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, c.NoContent(http.StatusOK))
	CustomHTTPErrorHandler(stderrors.New("too late"), c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}
