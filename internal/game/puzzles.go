package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/modle-app/modle/internal/dal"
	"github.com/modle-app/modle/pkg/cache"
)

const puzzleCacheTTL = 24 * time.Hour

// PuzzleSource resolves (language, date) pairs to puzzle definitions.
// Definitions are immutable once a date has passed, so positive lookups are
// cached; misses are not, since a missing day may still be imported.
type PuzzleSource struct {
	repo  dal.PuzzlesRepository
	cache *cache.InMemory[dal.Puzzle]
}

func NewPuzzleSource(repo dal.PuzzlesRepository) *PuzzleSource {
	return &PuzzleSource{
		repo:  repo,
		cache: cache.NewInMemory[dal.Puzzle](),
	}
}

func (s *PuzzleSource) Get(ctx context.Context, language Language, date string) (*dal.Puzzle, error) {
	key := string(language) + "#" + date
	if p, ok := s.cache.Get(key); ok {
		return &p, nil
	}

	p, err := s.repo.GetPuzzle(ctx, string(language), date)
	if err != nil {
		if errors.Is(err, dal.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s %s", ErrPuzzleNotFound, language, date)
		}
		return nil, fmt.Errorf("get puzzle: %w", err)
	}

	s.cache.Set(key, *p, puzzleCacheTTL)
	return p, nil
}
