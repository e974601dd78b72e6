package data

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modle-app/modle/internal/dal"
)

func collect(t *testing.T, in io.ReadCloser) ([]dal.Puzzle, error) {
	t.Helper()

	out := make(chan dal.Puzzle)
	done := make(chan error, 1)
	go func() {
		done <- Parse(context.Background(), in, out)
	}()

	var puzzles []dal.Puzzle
	for p := range out {
		puzzles = append(puzzles, p)
	}
	return puzzles, <-done
}

func TestParse(t *testing.T) {
	in := io.NopCloser(strings.NewReader(`{
		"language": "English",
		"puzzles": {
			"2026-08-30": {"answer": "Jaws", "hints": ["A shark", "Spielberg"]},
			"2026-08-29": {"answer": "The Godfather", "hints": ["A mafia saga"]}
		}
	}`))

	puzzles, err := collect(t, in)
	require.NoError(t, err)
	require.Len(t, puzzles, 2)

	assert.Equal(t, "2026-08-29", puzzles[0].Date, "puzzles stream in date order")
	assert.Equal(t, "The Godfather", puzzles[0].Answer)
	assert.Equal(t, "English", puzzles[0].Language)
	assert.Equal(t, []string{"A shark", "Spielberg"}, puzzles[1].Hints)
}

func TestParseInvalidEntries(t *testing.T) {
	in := io.NopCloser(strings.NewReader(`{
		"language": "Tamil",
		"puzzles": {
			"2026-08-29": {"answer": "Nayakan", "hints": ["A Mani Ratnam film"]},
			"not-a-date": {"answer": "Ghilli", "hints": ["Sports drama"]},
			"2026-08-30": {"answer": "", "hints": ["Empty answer"]},
			"2026-08-31": {"answer": "Ghilli", "hints": []}
		}
	}`))

	puzzles, err := collect(t, in)

	var pErr *ParsingError
	require.ErrorAs(t, err, &pErr)
	assert.ElementsMatch(t, []string{"not-a-date", "2026-08-30", "2026-08-31"}, pErr.InvalidDates)

	require.Len(t, puzzles, 1, "valid entries still stream through")
	assert.Equal(t, "Nayakan", puzzles[0].Answer)
}

func TestParseUnknownLanguage(t *testing.T) {
	in := io.NopCloser(strings.NewReader(`{"language": "Klingon", "puzzles": {}}`))

	_, err := collect(t, in)
	assert.ErrorContains(t, err, "Klingon")
}

func TestParseMalformedJSON(t *testing.T) {
	in := io.NopCloser(strings.NewReader(`{"language":`))

	_, err := collect(t, in)
	assert.ErrorContains(t, err, "decode calendar")
}
