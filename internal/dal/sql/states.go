package sql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/modle-app/modle/internal/dal"
)

func (r *Repository) GetLanguageState(ctx context.Context, userID, language string) (*dal.LanguageState, error) {
	query := qb.Select("user_id", "language", "last_played_date", "streak", "updated_at").
		From("language_states").
		Where(squirrel.Eq{"user_id": userID, "language": language})

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var res dal.LanguageState
	err = r.client.QueryRowContext(ctx, sqlQuery, args...).
		Scan(&res.UserID, &res.Language, &res.LastPlayedDate, &res.Streak, &res.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, dal.ErrNotFound
		}
		return nil, fmt.Errorf("get language state: %w", err)
	}

	return &res, nil
}

func (r *Repository) UpsertLanguageState(ctx context.Context, state dal.LanguageState) error {
	if state.UserID == "" || state.Language == "" {
		return errors.New("user id and language are required")
	}
	if state.Streak < 0 {
		return errors.New("streak must be non-negative")
	}

	query := qb.Insert("language_states").
		Columns("user_id", "language", "last_played_date", "streak", "updated_at").
		Values(state.UserID, state.Language, state.LastPlayedDate, state.Streak, time.Now().UTC()).
		Suffix(`ON CONFLICT (user_id, language) DO UPDATE SET
			last_played_date = EXCLUDED.last_played_date,
			streak = EXCLUDED.streak,
			updated_at = EXCLUDED.updated_at`)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if _, err = r.client.ExecContext(ctx, sqlQuery, args...); err != nil {
		return fmt.Errorf("upsert language state: %w", err)
	}

	return nil
}
