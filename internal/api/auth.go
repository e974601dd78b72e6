package api

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

type (
	TokenRequest struct {
		UserID string `json:"userId" validate:"required,min=1"`
	}

	AuthHandler struct {
		jwt     *JWTProcessor
		cookies *CookiesProcessor
		log     *slog.Logger
	}
)

func NewAuthHandler(jwt *JWTProcessor, cookies *CookiesProcessor, log *slog.Logger) *AuthHandler {
	return &AuthHandler{
		jwt:     jwt,
		cookies: cookies,
		log:     log,
	}
}

// Token mints an access token for the requested user and sets the access
// cookie. Mounted in dev only; in prod the identity service issues tokens.
func (h *AuthHandler) Token(c echo.Context) error {
	var req TokenRequest
	if err := c.Bind(&req); err != nil {
		h.log.DebugContext(c.Request().Context(), "failed to bind request", "error", err)
		return c.JSON(http.StatusBadRequest, BadRequestError)
	}

	if err := c.Validate(&req); err != nil {
		h.log.DebugContext(c.Request().Context(), "failed to validate request", "error", err)
		return err
	}

	token, err := h.jwt.ToAccessToken(req.UserID)
	if err != nil {
		h.log.ErrorContext(c.Request().Context(), "failed to mint access token", "error", err)
		return c.JSON(http.StatusInternalServerError, InternalServerError)
	}

	c.SetCookie(h.cookies.NewAccessTokenCookie(token))

	return c.JSON(http.StatusOK, echo.Map{"accessToken": token})
}

// Logout expires the access cookie. Bearer clients just drop their token.
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(h.cookies.ExpireAccessTokenCookie())
	return c.NoContent(http.StatusNoContent)
}
