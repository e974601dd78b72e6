package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sync/errgroup"
	_ "modernc.org/sqlite"

	"github.com/modle-app/modle/internal/dal"
	sqlrepo "github.com/modle-app/modle/internal/dal/sql"
	"github.com/modle-app/modle/internal/data"
)

var (
	source string
	dbURL  string
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
	defer cancel()

	if err := validate(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	db, err := sql.Open("sqlite", dbURL)
	if err != nil {
		fmt.Printf("failed to connect to database: %v\n", err)
		os.Exit(2)
	}
	defer db.Close()

	if err = sqlrepo.EnsureSchema(ctx, db); err != nil {
		fmt.Printf("failed to apply database schema: %v\n", err)
		os.Exit(2)
	}

	f, err := os.Open(source)
	if err != nil {
		fmt.Printf("failed to open source file: %v\n", err)
		os.Exit(3)
	}

	repo := sqlrepo.NewRepository(db, slog.Default())
	puzzles := make(chan dal.Puzzle)

	group, gCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return data.Parse(gCtx, f, puzzles)
	})
	group.Go(func() error {
		count := 0
		for puzzle := range puzzles {
			if err := repo.UpsertPuzzle(gCtx, puzzle); err != nil {
				return fmt.Errorf("upsert puzzle %s/%s: %w", puzzle.Language, puzzle.Date, err)
			}
			count++
		}
		fmt.Printf("imported %d puzzles\n", count)
		return nil
	})

	if err = group.Wait(); err != nil {
		var pErr *data.ParsingError
		if errors.As(err, &pErr) {
			fmt.Printf("some entries were skipped: %v\n", pErr.InvalidDates)
			fmt.Println("done with warnings")
			return
		}

		fmt.Printf("failed to import puzzles: %v\n", err)
		os.Exit(4)
	}

	fmt.Println("done")
}

func validate() error {
	if source == "" {
		return errors.New("source file is required")
	}

	if dbURL == "" {
		return errors.New("database URL is required")
	}

	return nil
}

func init() {
	flag.StringVar(&source, "source", "", "source JSON puzzle calendar")
	flag.StringVar(&dbURL, "db-url", "", "database URL")
	flag.Parse()
}
