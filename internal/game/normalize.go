package game

import "strings"

// Normalize converts a raw guess into its canonical comparable form:
// uppercased, with every character that is not an ASCII letter or digit
// stripped. Guesses and answers are compared only in this form.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r - ('a' - 'A'))
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		}
	}
	return b.String()
}
