package sql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/modle-app/modle/internal/dal"
)

func (r *Repository) GetPuzzle(ctx context.Context, language, date string) (*dal.Puzzle, error) {
	query := qb.Select("language", "puzzle_date", "answer", "hints").
		From("puzzles").
		Where(squirrel.Eq{"language": language, "puzzle_date": date})

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var (
		res       dal.Puzzle
		hintsJSON string
	)
	err = r.client.QueryRowContext(ctx, sqlQuery, args...).
		Scan(&res.Language, &res.Date, &res.Answer, &hintsJSON)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, dal.ErrNotFound
		}
		return nil, fmt.Errorf("get puzzle: %w", err)
	}

	if err = json.Unmarshal([]byte(hintsJSON), &res.Hints); err != nil {
		return nil, fmt.Errorf("unmarshal hints: %w", err)
	}

	return &res, nil
}

func (r *Repository) UpsertPuzzle(ctx context.Context, puzzle dal.Puzzle) error {
	if puzzle.Language == "" || puzzle.Date == "" {
		return errors.New("language and date are required")
	}
	if len(puzzle.Hints) == 0 {
		return errors.New("at least one hint is required")
	}

	hintsJSON, err := json.Marshal(puzzle.Hints)
	if err != nil {
		return fmt.Errorf("marshal hints: %w", err)
	}

	query := qb.Insert("puzzles").
		Columns("language", "puzzle_date", "answer", "hints").
		Values(puzzle.Language, puzzle.Date, puzzle.Answer, string(hintsJSON)).
		Suffix("ON CONFLICT (language, puzzle_date) DO UPDATE SET answer = EXCLUDED.answer, hints = EXCLUDED.hints")

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if _, err = r.client.ExecContext(ctx, sqlQuery, args...); err != nil {
		return fmt.Errorf("upsert puzzle: %w", err)
	}

	return nil
}
