package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveError(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	e.HTTPErrorHandler = HTTPErrorHandler(slog.New(slog.NewTextHandler(io.Discard, nil)))
	e.GET("/boom", func(echo.Context) error {
		return err
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	return rec
}

func TestHTTPErrorHandler(t *testing.T) {
	rec := serveError(t, errors.New("database exploded"))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error": "Internal server error"}`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "exploded", "internal details never leave the server")

	rec = serveError(t, echo.NewHTTPError(http.StatusBadRequest, "date is malformed"))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error": "date is malformed"}`, rec.Body.String())

	rec = serveError(t, echo.NewHTTPError(http.StatusInternalServerError, "secret detail"))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error": "Internal server error"}`, rec.Body.String())
}
