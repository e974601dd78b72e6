package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/modle-app/modle/internal/dal"
)

const DefaultLockTimeout = 5 * time.Second

type (
	// StateView is the wire-facing projection of one language's (or the
	// global aggregate's) per-user state.
	StateView struct {
		Language       string                      `json:"language"`
		LastPlayedDate string                      `json:"lastPlayedDate,omitempty"`
		Streak         int                         `json:"streak"`
		History        map[string]dal.DailyAttempt `json:"history"`
	}

	// SubmitResult is the authoritative outcome of a guess submission.
	SubmitResult struct {
		Attempt       dal.DailyAttempt
		Language      StateView
		Global        StateView
		PrimaryStreak int
	}

	// Status tells the client whether a language is playable before it
	// commits a guess. It reflects exactly the state SubmitGuess would see.
	Status struct {
		CanPlay           bool                        `json:"canPlay"`
		DailyLimitReached bool                        `json:"dailyLimitReached"`
		CompletedToday    bool                        `json:"completedToday"`
		Streak            int                         `json:"streak"`
		History           map[string]dal.DailyAttempt `json:"history"`
	}

	// PuzzleView is the hint-gated projection of a puzzle for one user.
	PuzzleView struct {
		Language          string           `json:"language"`
		Date              string           `json:"date"`
		Hints             []string         `json:"hints"`
		RevealedHintCount int              `json:"revealedHintCount"`
		MaxHints          int              `json:"maxHints"`
		Attempt           dal.DailyAttempt `json:"attempt"`
	}

	Service struct {
		repo    dal.Repository
		puzzles *PuzzleSource
		locks   *keyedLocks

		lockTimeout time.Duration
		now         func() time.Time

		log *slog.Logger
	}
)

func NewService(repo dal.Repository, puzzles *PuzzleSource, lockTimeout time.Duration, log *slog.Logger) *Service {
	if lockTimeout <= 0 {
		lockTimeout = DefaultLockTimeout
	}
	return &Service{
		repo:        repo,
		puzzles:     puzzles,
		locks:       newKeyedLocks(),
		lockTimeout: lockTimeout,
		now:         time.Now,
		log:         log,
	}
}

func (s *Service) today() string {
	return s.now().UTC().Format(DateLayout)
}

// SubmitGuess runs the full guess pipeline: daily lock check, hint gating,
// evaluation, persistence, and streak recomputation on a win. All state reads
// and writes for the user happen inside one per-user critical section and one
// storage transaction, so two racing devices cannot both win.
func (s *Service) SubmitGuess(ctx context.Context, userID string, language Language, date, rawGuess string) (*SubmitResult, error) {
	normalized := Normalize(rawGuess)
	if normalized == "" {
		return nil, ErrEmptyGuess
	}

	today := s.today()
	if date != today {
		return nil, fmt.Errorf("%w: got %q, today is %s", ErrInvalidDate, date, today)
	}

	puzzle, err := s.puzzles.Get(ctx, language, today)
	if err != nil {
		return nil, err
	}
	answer := Normalize(puzzle.Answer)
	maxHints := len(puzzle.Hints)

	release, err := s.locks.acquire(ctx, userID, s.lockTimeout)
	if err != nil {
		return nil, err
	}
	defer release()

	var result *SubmitResult
	err = s.repo.Transact(ctx, func(r dal.Repository) error {
		marker, err := getAttempt(ctx, r, userID, dal.GlobalLanguage, today)
		if err != nil {
			return err
		}
		attempt, err := getAttempt(ctx, r, userID, string(language), today)
		if err != nil {
			return err
		}

		if marker != nil {
			if attempt == nil || !attempt.Correct {
				return &DailyLimitError{
					PlayedLanguage: s.playedLanguage(ctx, r, userID, today),
					Marker:         *marker,
				}
			}
			// This language set the marker; the attempt is terminal and the
			// resubmission is answered idempotently.
			return &GuessRejectedError{Reason: "puzzle already solved", Attempt: *attempt}
		}

		if attempt == nil {
			attempt = newAttempt(userID, string(language), today)
		}

		if !CanAcceptGuess(attempt, maxHints) {
			return &GuessRejectedError{Reason: "no guess left for the revealed hints", Attempt: *attempt}
		}

		won := ApplyGuess(attempt, normalized, answer)
		if err = r.UpsertAttempt(ctx, *attempt); err != nil {
			return err
		}

		if won {
			if err = s.recordWin(ctx, r, userID, string(language), today); err != nil {
				return err
			}
		}

		langView, err := s.stateView(ctx, r, userID, string(language))
		if err != nil {
			return err
		}
		globalView, err := s.stateView(ctx, r, userID, dal.GlobalLanguage)
		if err != nil {
			return err
		}

		result = &SubmitResult{
			Attempt:       *attempt,
			Language:      langView,
			Global:        globalView,
			PrimaryStreak: globalView.Streak,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// recordWin writes the per-language streak, the cross-language daily lock
// marker, and the unified streak. Caller guarantees no marker exists yet for
// today.
func (s *Service) recordWin(ctx context.Context, r dal.Repository, userID, language, today string) error {
	langState, err := getState(ctx, r, userID, language)
	if err != nil {
		return err
	}
	langState.Streak = NextStreak(langState.LastPlayedDate, today, langState.Streak)
	langState.LastPlayedDate = today
	if err = r.UpsertLanguageState(ctx, *langState); err != nil {
		return err
	}

	marker := dal.DailyAttempt{
		UserID:        userID,
		Language:      dal.GlobalLanguage,
		Date:          today,
		Guesses:       []string{},
		GuessesStatus: []bool{},
		Correct:       true,
		CreatedAt:     s.now().UTC(),
		UpdatedAt:     s.now().UTC(),
	}
	if err = r.UpsertAttempt(ctx, marker); err != nil {
		return err
	}

	globalState, err := getState(ctx, r, userID, dal.GlobalLanguage)
	if err != nil {
		return err
	}
	globalState.Streak = NextStreak(globalState.LastPlayedDate, today, globalState.Streak)
	globalState.LastPlayedDate = today
	if err = r.UpsertLanguageState(ctx, *globalState); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "daily puzzle solved",
		"user_id", userID,
		"language", language,
		"date", today,
		"streak", globalState.Streak,
	)
	return nil
}

// RevealPuzzle returns the hint-gated puzzle view and, for today's puzzle,
// advances the persisted reveal counter to what the recorded guesses entitle.
// Past dates are read-only and fully revealed for history review.
func (s *Service) RevealPuzzle(ctx context.Context, userID string, language Language, date string) (*PuzzleView, error) {
	today := s.today()
	if date == "" {
		date = today
	}
	if !ValidDate(date) || date > today {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}

	puzzle, err := s.puzzles.Get(ctx, language, date)
	if err != nil {
		return nil, err
	}
	maxHints := len(puzzle.Hints)

	if date < today {
		attempt, err := getAttempt(ctx, s.repo, userID, string(language), date)
		if err != nil {
			return nil, err
		}
		if attempt == nil {
			attempt = newAttempt(userID, string(language), date)
			attempt.HintsRevealed = maxHints
		}
		return &PuzzleView{
			Language:          string(language),
			Date:              date,
			Hints:             puzzle.Hints,
			RevealedHintCount: maxHints,
			MaxHints:          maxHints,
			Attempt:           *attempt,
		}, nil
	}

	release, err := s.locks.acquire(ctx, userID, s.lockTimeout)
	if err != nil {
		return nil, err
	}
	defer release()

	var view *PuzzleView
	err = s.repo.Transact(ctx, func(r dal.Repository) error {
		marker, err := getAttempt(ctx, r, userID, dal.GlobalLanguage, today)
		if err != nil {
			return err
		}
		attempt, err := getAttempt(ctx, r, userID, string(language), today)
		if err != nil {
			return err
		}

		if marker != nil && (attempt == nil || !attempt.Correct) {
			return &DailyLimitError{
				PlayedLanguage: s.playedLanguage(ctx, r, userID, today),
				Marker:         *marker,
			}
		}

		created := attempt == nil
		if created {
			attempt = newAttempt(userID, string(language), today)
		}
		before := attempt.HintsRevealed
		if !attempt.Correct {
			AdvanceReveal(attempt, maxHints)
		}
		if created || attempt.HintsRevealed != before {
			if err = r.UpsertAttempt(ctx, *attempt); err != nil {
				return err
			}
		}

		view = &PuzzleView{
			Language:          string(language),
			Date:              today,
			Hints:             puzzle.Hints[:attempt.HintsRevealed],
			RevealedHintCount: attempt.HintsRevealed,
			MaxHints:          maxHints,
			Attempt:           *attempt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return view, nil
}

// LanguageStatus is the read-only projection for one playable language. The
// streak reported is the unified one; the per-language streak travels with
// SubmitResult.
func (s *Service) LanguageStatus(ctx context.Context, userID string, language Language) (*Status, error) {
	today := s.today()

	var (
		marker      *dal.DailyAttempt
		attempt     *dal.DailyAttempt
		globalState *dal.LanguageState
		history     []dal.DailyAttempt
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() (err error) {
		marker, err = getAttempt(egCtx, s.repo, userID, dal.GlobalLanguage, today)
		return err
	})
	eg.Go(func() (err error) {
		attempt, err = getAttempt(egCtx, s.repo, userID, string(language), today)
		return err
	})
	eg.Go(func() (err error) {
		globalState, err = getState(egCtx, s.repo, userID, dal.GlobalLanguage)
		return err
	})
	eg.Go(func() (err error) {
		history, err = s.repo.ListAttempts(egCtx, userID, string(language))
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	completedToday := attempt != nil && attempt.Correct
	dailyLimitReached := marker != nil && !completedToday

	return &Status{
		CanPlay:           !dailyLimitReached && !completedToday,
		DailyLimitReached: dailyLimitReached,
		CompletedToday:    completedToday,
		Streak:            globalState.Streak,
		History:           historyMap(history),
	}, nil
}

// GlobalStatus is the cross-language aggregate: the unified streak plus the
// daily lock markers. It is never playable.
func (s *Service) GlobalStatus(ctx context.Context, userID string) (*Status, error) {
	today := s.today()

	state, err := getState(ctx, s.repo, userID, dal.GlobalLanguage)
	if err != nil {
		return nil, err
	}
	history, err := s.repo.ListAttempts(ctx, userID, dal.GlobalLanguage)
	if err != nil {
		return nil, err
	}

	completedToday := state.LastPlayedDate == today

	return &Status{
		CanPlay:           false,
		DailyLimitReached: completedToday,
		CompletedToday:    completedToday,
		Streak:            state.Streak,
		History:           historyMap(history),
	}, nil
}

func (s *Service) stateView(ctx context.Context, r dal.Repository, userID, language string) (StateView, error) {
	state, err := getState(ctx, r, userID, language)
	if err != nil {
		return StateView{}, err
	}
	history, err := r.ListAttempts(ctx, userID, language)
	if err != nil {
		return StateView{}, err
	}
	return StateView{
		Language:       language,
		LastPlayedDate: state.LastPlayedDate,
		Streak:         state.Streak,
		History:        historyMap(history),
	}, nil
}

// playedLanguage reports which language consumed today's slot. Best effort:
// the marker itself does not record it, so the languages are scanned.
func (s *Service) playedLanguage(ctx context.Context, r dal.Repository, userID, today string) string {
	for _, l := range languages {
		attempt, err := getAttempt(ctx, r, userID, string(l), today)
		if err != nil {
			s.log.WarnContext(ctx, "failed to resolve played language", "error", err, "user_id", userID)
			return ""
		}
		if attempt != nil && attempt.Correct {
			return string(l)
		}
	}
	return ""
}

func getAttempt(ctx context.Context, r dal.AttemptsRepository, userID, language, date string) (*dal.DailyAttempt, error) {
	attempt, err := r.GetAttempt(ctx, userID, language, date)
	if err != nil {
		if errors.Is(err, dal.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return attempt, nil
}

func getState(ctx context.Context, r dal.StatesRepository, userID, language string) (*dal.LanguageState, error) {
	state, err := r.GetLanguageState(ctx, userID, language)
	if err != nil {
		if errors.Is(err, dal.ErrNotFound) {
			return &dal.LanguageState{UserID: userID, Language: language}, nil
		}
		return nil, err
	}
	return state, nil
}

func historyMap(attempts []dal.DailyAttempt) map[string]dal.DailyAttempt {
	res := make(map[string]dal.DailyAttempt, len(attempts))
	for _, a := range attempts {
		res[a.Date] = a
	}
	return res
}
