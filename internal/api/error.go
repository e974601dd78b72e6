package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Message string `json:"error"`
}

var (
	InternalServerError = ErrorResponse{"Internal server error"} //nolint:gochecknoglobals // constant response for internal server error
	BadRequestError     = ErrorResponse{"Bad request"}           //nolint:gochecknoglobals // constant response for bad request
)

// HTTPErrorHandler turns every error that escapes a handler into the JSON
// error envelope. 5xx details never leave the server.
func HTTPErrorHandler(log *slog.Logger) func(err error, c echo.Context) {
	return func(err error, c echo.Context) {
		log.ErrorContext(c.Request().Context(), "failed to process request", "error", err)

		var echoError *echo.HTTPError
		if !errors.As(err, &echoError) {
			writeErrorJSON(c, http.StatusInternalServerError, InternalServerError, log)
			return
		}

		if message, ok := echoError.Message.(string); ok {
			if message == "" || echoError.Code == http.StatusInternalServerError {
				message = InternalServerError.Message
			}
			writeErrorJSON(c, echoError.Code, ErrorResponse{Message: message}, log)
			return
		}

		body, mErr := json.Marshal(echoError.Message)
		if mErr != nil {
			log.ErrorContext(c.Request().Context(), "failed to marshal error message", "error", mErr)
			writeErrorJSON(c, echoError.Code, InternalServerError, log)
			return
		}

		c.Response().Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		if wErr := c.String(echoError.Code, string(body)); wErr != nil {
			log.ErrorContext(c.Request().Context(), "failed to write error response", "error", wErr)
		}
	}
}

func writeErrorJSON(c echo.Context, code int, body ErrorResponse, log *slog.Logger) {
	if err := c.JSON(code, body); err != nil {
		log.ErrorContext(c.Request().Context(), "failed to write error response", "error", err)
	}
}
