package dal

import "time"

// GlobalLanguage is the reserved aggregate key under which the cross-language
// daily lock marker and the unified streak are stored. It is never accepted
// from the wire.
const GlobalLanguage = "_global"

type (
	// Puzzle is the immutable definition of one day's puzzle for one language.
	Puzzle struct {
		Language string
		Date     string // YYYY-MM-DD, UTC
		Answer   string
		Hints    []string
	}

	// DailyAttempt is one user's guess record against one (language, date)
	// puzzle. Rows with Language == GlobalLanguage are daily lock markers:
	// their guess arrays are empty and Correct is always true.
	DailyAttempt struct {
		UserID        string    `json:"-"`
		Language      string    `json:"language"`
		Date          string    `json:"date"`
		Guesses       []string  `json:"guesses"`
		GuessesStatus []bool    `json:"guessesStatus"`
		HintsRevealed int       `json:"hintsRevealed"`
		Correct       bool      `json:"correct"`
		CreatedAt     time.Time `json:"-"`
		UpdatedAt     time.Time `json:"-"`
	}

	// LanguageState holds the per-user, per-language streak. The row with
	// Language == GlobalLanguage carries the unified streak shown to the user.
	LanguageState struct {
		UserID         string
		Language       string
		LastPlayedDate string // last date a win was recorded, empty if never
		Streak         int
		UpdatedAt      time.Time
	}
)
