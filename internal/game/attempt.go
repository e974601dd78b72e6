package game

import (
	"time"

	"github.com/modle-app/modle/internal/dal"
)

// AttemptState is the per-(user, language, date) state machine position.
type AttemptState string

const (
	StateNotStarted AttemptState = "not_started"
	StateInProgress AttemptState = "in_progress"
	StateWon        AttemptState = "won"
)

func State(a *dal.DailyAttempt) AttemptState {
	switch {
	case a == nil:
		return StateNotStarted
	case a.Correct:
		return StateWon
	default:
		return StateInProgress
	}
}

// RevealedHintCount is the number of hints a player with guessCount recorded
// guesses is entitled to see: one ahead of the guesses made, capped at
// maxHints, floor 1. Zero guesses still reveal the first hint.
func RevealedHintCount(guessCount, maxHints int) int {
	n := guessCount + 1
	if n > maxHints {
		n = maxHints
	}
	if n < 1 {
		n = 1
	}
	return n
}

// AdvanceReveal moves the attempt's persisted reveal counter up to what the
// recorded guesses entitle. It never moves backwards, so the revealed count
// is monotonic for the lifetime of the attempt.
func AdvanceReveal(a *dal.DailyAttempt, maxHints int) {
	if n := RevealedHintCount(len(a.Guesses), maxHints); n > a.HintsRevealed {
		a.HintsRevealed = n
	}
}

// CanAcceptGuess applies hint gating: one guess per hint the server has
// actually revealed, until every hint is out, after which guesses are
// unlimited. A won attempt accepts nothing.
func CanAcceptGuess(a *dal.DailyAttempt, maxHints int) bool {
	if a.Correct {
		return false
	}
	return a.HintsRevealed >= maxHints || len(a.Guesses) < a.HintsRevealed
}

// ApplyGuess appends an already-normalized guess and its evaluation. Returns
// true when the guess matches the (normalized) answer, which makes the
// attempt terminal.
func ApplyGuess(a *dal.DailyAttempt, normalized, normalizedAnswer string) bool {
	correct := normalized == normalizedAnswer
	a.Guesses = append(a.Guesses, normalized)
	a.GuessesStatus = append(a.GuessesStatus, correct)
	if correct {
		a.Correct = true
	}
	return correct
}

func newAttempt(userID, language, date string) *dal.DailyAttempt {
	now := time.Now().UTC()
	return &dal.DailyAttempt{
		UserID:        userID,
		Language:      language,
		Date:          date,
		Guesses:       []string{},
		GuessesStatus: []bool{},
		HintsRevealed: 1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
