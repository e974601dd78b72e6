package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/modle-app/modle/internal/dal"
)

func TestRevealedHintCount(t *testing.T) {
	tests := []struct {
		name       string
		guessCount int
		maxHints   int
		want       int
	}{
		{name: "no guesses reveal first hint", guessCount: 0, maxHints: 5, want: 1},
		{name: "one guess reveals second", guessCount: 1, maxHints: 5, want: 2},
		{name: "capped at max", guessCount: 7, maxHints: 5, want: 5},
		{name: "single hint puzzle", guessCount: 0, maxHints: 1, want: 1},
		{name: "floor is one", guessCount: -1, maxHints: 5, want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RevealedHintCount(tt.guessCount, tt.maxHints))
		})
	}
}

func TestAdvanceReveal(t *testing.T) {
	a := newAttempt("user-1", string(English), "2026-08-29")
	assert.Equal(t, 1, a.HintsRevealed)

	AdvanceReveal(a, 5)
	assert.Equal(t, 1, a.HintsRevealed, "no guesses, nothing new to reveal")

	ApplyGuess(a, "JAWS", "THEGODFATHER")
	AdvanceReveal(a, 5)
	assert.Equal(t, 2, a.HintsRevealed)

	// monotonic: a stale lower entitlement never rolls it back
	a.Guesses = a.Guesses[:0]
	AdvanceReveal(a, 5)
	assert.Equal(t, 2, a.HintsRevealed)
}

func TestCanAcceptGuess(t *testing.T) {
	a := newAttempt("user-1", string(English), "2026-08-29")

	assert.True(t, CanAcceptGuess(a, 5), "one free guess against the first hint")

	ApplyGuess(a, "JAWS", "THEGODFATHER")
	assert.False(t, CanAcceptGuess(a, 5), "second guess needs a new hint reveal first")

	AdvanceReveal(a, 5)
	assert.True(t, CanAcceptGuess(a, 5))

	a.HintsRevealed = 5
	a.Guesses = []string{"A", "B", "C", "D", "E", "F", "G"}
	assert.True(t, CanAcceptGuess(a, 5), "unlimited guesses once every hint is out")

	a.Correct = true
	assert.False(t, CanAcceptGuess(a, 5), "won attempt is terminal")
}

func TestApplyGuess(t *testing.T) {
	a := newAttempt("user-1", string(English), "2026-08-29")

	assert.False(t, ApplyGuess(a, "JAWS", "THEGODFATHER"))
	assert.Equal(t, []string{"JAWS"}, a.Guesses)
	assert.Equal(t, []bool{false}, a.GuessesStatus)
	assert.False(t, a.Correct)

	assert.True(t, ApplyGuess(a, "THEGODFATHER", "THEGODFATHER"))
	assert.Equal(t, []bool{false, true}, a.GuessesStatus)
	assert.True(t, a.Correct)
}

func TestState(t *testing.T) {
	assert.Equal(t, StateNotStarted, State(nil))

	a := newAttempt("user-1", string(English), "2026-08-29")
	assert.Equal(t, StateInProgress, State(a))

	a.Correct = true
	assert.Equal(t, StateWon, State(a))
}

func TestParseLanguage(t *testing.T) {
	for _, l := range Languages() {
		parsed, err := ParseLanguage(string(l))
		assert.NoError(t, err)
		assert.Equal(t, l, parsed)
	}

	_, err := ParseLanguage("Klingon")
	assert.ErrorIs(t, err, ErrUnknownLanguage)

	_, err = ParseLanguage(dal.GlobalLanguage)
	assert.ErrorIs(t, err, ErrUnknownLanguage, "reserved aggregate key is not a playable language")
}
