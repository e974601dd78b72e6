package game

import "fmt"

// Language is one of the supported puzzle languages. The zero value is not
// valid; use ParseLanguage for wire input.
type Language string

const (
	English   Language = "English"
	Hindi     Language = "Hindi"
	Tamil     Language = "Tamil"
	Telugu    Language = "Telugu"
	Kannada   Language = "Kannada"
	Malayalam Language = "Malayalam"
)

//nolint:gochecknoglobals // fixed language catalog
var languages = []Language{English, Hindi, Tamil, Telugu, Kannada, Malayalam}

func Languages() []Language {
	res := make([]Language, len(languages))
	copy(res, languages)
	return res
}

func ParseLanguage(s string) (Language, error) {
	for _, l := range languages {
		if string(l) == s {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLanguage, s)
}
