package sql

import (
	"context"
	"database/sql"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS puzzles (
	language    TEXT NOT NULL,
	puzzle_date TEXT NOT NULL,
	answer      TEXT NOT NULL,
	hints       TEXT NOT NULL,
	created_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (language, puzzle_date)
);

CREATE TABLE IF NOT EXISTS daily_attempts (
	user_id        TEXT NOT NULL,
	language       TEXT NOT NULL,
	puzzle_date    TEXT NOT NULL,
	guesses        TEXT NOT NULL DEFAULT '[]',
	guesses_status TEXT NOT NULL DEFAULT '[]',
	hints_revealed INTEGER NOT NULL DEFAULT 1,
	correct        BOOLEAN NOT NULL DEFAULT FALSE,
	created_at     TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at     TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (user_id, language, puzzle_date)
);

CREATE TABLE IF NOT EXISTS language_states (
	user_id          TEXT NOT NULL,
	language         TEXT NOT NULL,
	last_played_date TEXT NOT NULL DEFAULT '',
	streak           INTEGER NOT NULL DEFAULT 0,
	updated_at       TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (user_id, language)
);
`

// EnsureSchema applies the idempotent schema. Called on every startup.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
