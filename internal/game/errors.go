package game

import (
	"errors"
	"fmt"

	"github.com/modle-app/modle/internal/dal"
)

var (
	ErrPuzzleNotFound  = errors.New("no puzzle defined for this language and date")
	ErrUnknownLanguage = errors.New("unknown language")
	ErrEmptyGuess      = errors.New("guess is empty after normalization")
	ErrInvalidDate     = errors.New("date is outside the allowed window")
	ErrLockTimeout     = errors.New("user state is busy, retry")
)

// DailyLimitError is returned when the cross-language daily slot has already
// been consumed by another language. It is a normal terminal response for the
// user, not a failure.
type DailyLimitError struct {
	PlayedLanguage string
	Marker         dal.DailyAttempt
}

func (e *DailyLimitError) Error() string {
	if e.PlayedLanguage == "" {
		return "daily puzzle already completed"
	}
	return fmt.Sprintf("daily puzzle already completed in %s", e.PlayedLanguage)
}

// GuessRejectedError is returned when hint gating rejects a guess or the
// attempt is already won. The attempt it carries is the current, unchanged
// state for the client to resync against.
type GuessRejectedError struct {
	Reason  string
	Attempt dal.DailyAttempt
}

func (e *GuessRejectedError) Error() string {
	return "guess not accepted: " + e.Reason
}
