package data

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/modle-app/modle/internal/dal"
	"github.com/modle-app/modle/internal/game"
)

type (
	// Calendar is the import file format: one language with its dated puzzles.
	Calendar struct {
		Language string                   `json:"language"`
		Puzzles  map[string]CalendarEntry `json:"puzzles"`
	}

	CalendarEntry struct {
		Answer string   `json:"answer"`
		Hints  []string `json:"hints"`
	}

	ParsingError struct {
		InvalidDates []string
	}
)

func (e *ParsingError) Error() string {
	return fmt.Sprintf("parsing error: invalidDates=%v", e.InvalidDates)
}

// Parse decodes a puzzle calendar and streams valid puzzles to out in date
// order. Entries with a malformed date, empty answer or no hints are collected
// into a ParsingError instead of aborting the whole import.
func Parse(ctx context.Context, in io.ReadCloser, out chan<- dal.Puzzle) error {
	defer close(out)
	defer in.Close()

	var calendar Calendar
	if err := json.NewDecoder(in).Decode(&calendar); err != nil {
		return fmt.Errorf("decode calendar: %w", err)
	}

	lang, err := game.ParseLanguage(calendar.Language)
	if err != nil {
		return fmt.Errorf("parse language %q: %w", calendar.Language, err)
	}

	dates := make([]string, 0, len(calendar.Puzzles))
	for date := range calendar.Puzzles {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	invalidDates := make([]string, 0, 10) //nolint:mnd // 10 is the expected capacity
	for _, date := range dates {
		entry := calendar.Puzzles[date]
		if !game.ValidDate(date) || entry.Answer == "" || len(entry.Hints) == 0 {
			invalidDates = append(invalidDates, date)
			continue
		}

		select {
		case <-ctx.Done():
			return nil
		case out <- dal.Puzzle{
			Language: string(lang),
			Date:     date,
			Answer:   entry.Answer,
			Hints:    entry.Hints,
		}: // continue
		}
	}

	if len(invalidDates) > 0 {
		return &ParsingError{InvalidDates: invalidDates}
	}

	return nil
}
