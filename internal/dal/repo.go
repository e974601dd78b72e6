package dal

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

type (
	PuzzlesRepository interface {
		GetPuzzle(ctx context.Context, language, date string) (*Puzzle, error)
		UpsertPuzzle(ctx context.Context, puzzle Puzzle) error
	}

	AttemptsRepository interface {
		GetAttempt(ctx context.Context, userID, language, date string) (*DailyAttempt, error)
		ListAttempts(ctx context.Context, userID, language string) ([]DailyAttempt, error)
		UpsertAttempt(ctx context.Context, attempt DailyAttempt) error
	}

	StatesRepository interface {
		GetLanguageState(ctx context.Context, userID, language string) (*LanguageState, error)
		UpsertLanguageState(ctx context.Context, state LanguageState) error
	}

	Repository interface {
		Transact(ctx context.Context, txFunc func(r Repository) error) error
		PuzzlesRepository
		AttemptsRepository
		StatesRepository
	}
)
