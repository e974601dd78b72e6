package sql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/modle-app/modle/internal/dal"
)

var attemptColumns = []string{
	"user_id", "language", "puzzle_date",
	"guesses", "guesses_status", "hints_revealed", "correct",
	"created_at", "updated_at",
}

func (r *Repository) GetAttempt(ctx context.Context, userID, language, date string) (*dal.DailyAttempt, error) {
	query := qb.Select(attemptColumns...).
		From("daily_attempts").
		Where(squirrel.Eq{"user_id": userID, "language": language, "puzzle_date": date})

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	attempt, err := hydrateAttempt(r.client.QueryRowContext(ctx, sqlQuery, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, dal.ErrNotFound
		}
		return nil, fmt.Errorf("get attempt: %w", err)
	}

	return attempt, nil
}

func (r *Repository) ListAttempts(ctx context.Context, userID, language string) ([]dal.DailyAttempt, error) {
	query := qb.Select(attemptColumns...).
		From("daily_attempts").
		Where(squirrel.Eq{"user_id": userID, "language": language}).
		OrderBy("puzzle_date")

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.client.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	defer rows.Close()

	var res []dal.DailyAttempt
	for rows.Next() {
		attempt, err := hydrateAttempt(rows)
		if err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		res = append(res, *attempt)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate attempts: %w", rows.Err())
	}

	return res, nil
}

func (r *Repository) UpsertAttempt(ctx context.Context, attempt dal.DailyAttempt) error {
	if attempt.UserID == "" || attempt.Language == "" || attempt.Date == "" {
		return errors.New("user id, language and date are required")
	}
	if len(attempt.Guesses) != len(attempt.GuessesStatus) {
		return errors.New("guesses and statuses length mismatch")
	}

	guessesJSON, err := json.Marshal(attempt.Guesses)
	if err != nil {
		return fmt.Errorf("marshal guesses: %w", err)
	}
	statusJSON, err := json.Marshal(attempt.GuessesStatus)
	if err != nil {
		return fmt.Errorf("marshal guesses status: %w", err)
	}

	query := qb.Insert("daily_attempts").
		Columns("user_id", "language", "puzzle_date", "guesses", "guesses_status", "hints_revealed", "correct", "updated_at").
		Values(attempt.UserID, attempt.Language, attempt.Date, string(guessesJSON), string(statusJSON), attempt.HintsRevealed, attempt.Correct, time.Now().UTC()).
		Suffix(`ON CONFLICT (user_id, language, puzzle_date) DO UPDATE SET
			guesses = EXCLUDED.guesses,
			guesses_status = EXCLUDED.guesses_status,
			hints_revealed = EXCLUDED.hints_revealed,
			correct = EXCLUDED.correct,
			updated_at = EXCLUDED.updated_at`)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if _, err = r.client.ExecContext(ctx, sqlQuery, args...); err != nil {
		return fmt.Errorf("upsert attempt: %w", err)
	}

	return nil
}

type scannable interface {
	Scan(dest ...any) error
}

func hydrateAttempt(row scannable) (*dal.DailyAttempt, error) {
	var (
		res         dal.DailyAttempt
		guessesJSON string
		statusJSON  string
	)
	err := row.Scan(
		&res.UserID,
		&res.Language,
		&res.Date,
		&guessesJSON,
		&statusJSON,
		&res.HintsRevealed,
		&res.Correct,
		&res.CreatedAt,
		&res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err = json.Unmarshal([]byte(guessesJSON), &res.Guesses); err != nil {
		return nil, fmt.Errorf("unmarshal guesses: %w", err)
	}
	if err = json.Unmarshal([]byte(statusJSON), &res.GuessesStatus); err != nil {
		return nil, fmt.Errorf("unmarshal guesses status: %w", err)
	}

	return &res, nil
}
