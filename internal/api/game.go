package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/modle-app/modle/internal/context"
	"github.com/modle-app/modle/internal/game"
)

// GlobalLanguage is the reserved wire value that selects the cross-language
// aggregate in status queries.
const GlobalLanguage = "global"

type (
	StatusQueryParams struct {
		Language string `query:"language" validate:"required,min=1"`
	}

	PuzzleQueryParams struct {
		Language string `query:"language" validate:"required,min=1"`
		Date     string `query:"date" validate:"omitempty,datetime=2006-01-02"`
	}

	SubmitResultRequest struct {
		Language string `json:"language" validate:"required,min=1"`
		Date     string `json:"date" validate:"required,datetime=2006-01-02"`
		Guess    string `json:"guess" validate:"required,min=1"`
	}

	GameHandler struct {
		svc *game.Service
		log *slog.Logger
	}
)

func NewGameHandler(svc *game.Service, log *slog.Logger) *GameHandler {
	return &GameHandler{
		svc: svc,
		log: log,
	}
}

func (h *GameHandler) Status(c echo.Context) error {
	userID := context.MustUserIDFromContext(c.Request().Context())

	var qp StatusQueryParams
	if err := c.Bind(&qp); err != nil {
		h.log.DebugContext(c.Request().Context(), "failed to bind request", "error", err)
		return c.JSON(http.StatusBadRequest, BadRequestError)
	}

	if err := c.Validate(&qp); err != nil {
		h.log.DebugContext(c.Request().Context(), "failed to validate request", "error", err)
		return err
	}

	if qp.Language == GlobalLanguage {
		status, err := h.svc.GlobalStatus(c.Request().Context(), userID)
		if err != nil {
			h.log.ErrorContext(c.Request().Context(), "failed to get global status", "error", err)
			return c.JSON(http.StatusInternalServerError, InternalServerError)
		}
		return c.JSON(http.StatusOK, status)
	}

	language, err := game.ParseLanguage(qp.Language)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
	}

	status, err := h.svc.LanguageStatus(c.Request().Context(), userID, language)
	if err != nil {
		h.log.ErrorContext(c.Request().Context(), "failed to get language status", "error", err, "language", qp.Language)
		return c.JSON(http.StatusInternalServerError, InternalServerError)
	}

	return c.JSON(http.StatusOK, status)
}

func (h *GameHandler) Puzzle(c echo.Context) error {
	userID := context.MustUserIDFromContext(c.Request().Context())

	var qp PuzzleQueryParams
	if err := c.Bind(&qp); err != nil {
		h.log.DebugContext(c.Request().Context(), "failed to bind request", "error", err)
		return c.JSON(http.StatusBadRequest, BadRequestError)
	}

	if err := c.Validate(&qp); err != nil {
		h.log.DebugContext(c.Request().Context(), "failed to validate request", "error", err)
		return err
	}

	language, err := game.ParseLanguage(qp.Language)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
	}

	view, err := h.svc.RevealPuzzle(c.Request().Context(), userID, language, qp.Date)
	if err != nil {
		return h.gameError(c, err)
	}

	return c.JSON(http.StatusOK, view)
}

func (h *GameHandler) SubmitResult(c echo.Context) error {
	userID := context.MustUserIDFromContext(c.Request().Context())

	var req SubmitResultRequest
	if err := c.Bind(&req); err != nil {
		h.log.DebugContext(c.Request().Context(), "failed to bind request", "error", err)
		return c.JSON(http.StatusBadRequest, BadRequestError)
	}

	if err := c.Validate(&req); err != nil {
		h.log.DebugContext(c.Request().Context(), "failed to validate request", "error", err)
		return err
	}

	language, err := game.ParseLanguage(req.Language)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
	}

	result, err := h.svc.SubmitGuess(c.Request().Context(), userID, language, req.Date, req.Guess)
	if err != nil {
		return h.gameError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"attempt":       result.Attempt,
		"language":      result.Language,
		"global":        result.Global,
		"primaryStreak": result.PrimaryStreak,
	})
}

// gameError maps the engine's error taxonomy onto the wire. Daily-limit and
// gating rejections are conflicts carrying enough state for the client to
// resync without another round trip.
func (h *GameHandler) gameError(c echo.Context, err error) error {
	var dailyLimit *game.DailyLimitError
	if errors.As(err, &dailyLimit) {
		return c.JSON(http.StatusConflict, echo.Map{
			"msg":               dailyLimit.Error(),
			"dailyLimitReached": true,
			"playedLanguage":    dailyLimit.PlayedLanguage,
		})
	}

	var rejected *game.GuessRejectedError
	if errors.As(err, &rejected) {
		return c.JSON(http.StatusConflict, echo.Map{
			"msg":               rejected.Error(),
			"dailyLimitReached": false,
			"attempt":           rejected.Attempt,
		})
	}

	switch {
	case errors.Is(err, game.ErrLockTimeout):
		return c.JSON(http.StatusConflict, echo.Map{
			"msg":       err.Error(),
			"retryable": true,
		})
	case errors.Is(err, game.ErrPuzzleNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Message: err.Error()})
	case errors.Is(err, game.ErrEmptyGuess), errors.Is(err, game.ErrInvalidDate), errors.Is(err, game.ErrUnknownLanguage):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
	}

	h.log.ErrorContext(c.Request().Context(), "failed to process game request", "error", err)
	return c.JSON(http.StatusInternalServerError, InternalServerError)
}
