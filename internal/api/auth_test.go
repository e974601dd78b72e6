package api

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modle-app/modle/internal/config"
)

func newAuthServer(t *testing.T) (*echo.Echo, *JWTProcessor) {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	jwtProc := NewJWTProcessor(testJWTConfig(), time.Hour)
	cookiesProc := NewCookiesProcessor(config.Cookie{Path: "/", Domain: "localhost", AccessExpiresIn: time.Hour})

	e := echo.New()
	e.Validator = newRequestValidator()
	e.HTTPErrorHandler = HTTPErrorHandler(log)

	handler := NewAuthHandler(jwtProc, cookiesProc, log)
	e.POST("/dev/token", handler.Token)
	e.POST("/logout", handler.Logout)

	return e, jwtProc
}

func TestTokenEndpoint(t *testing.T) {
	e, jwtProc := newAuthServer(t)

	req := httptest.NewRequest(http.MethodPost, "/dev/token", strings.NewReader(`{"userId": "user-1"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, accessCookieName, cookie.Name)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.True(t, cookie.Expires.After(time.Now()))

	userID, err := jwtProc.ParseAccessToken(cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestTokenEndpointValidation(t *testing.T) {
	e, _ := newAuthServer(t)

	req := httptest.NewRequest(http.MethodPost, "/dev/token", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogoutExpiresCookie(t *testing.T) {
	e, _ := newAuthServer(t)

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, accessCookieName, cookies[0].Name)
	assert.False(t, cookies[0].Expires.After(time.Now()), "expiry in the past clears the cookie")
}
