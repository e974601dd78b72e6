package sql

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/Masterminds/squirrel"

	"github.com/modle-app/modle/internal/dal"
)

var qb = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

type (
	// Client is the subset of database/sql operations the repository needs;
	// both *sql.DB and *sql.Tx satisfy it.
	Client interface {
		ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
		QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
		QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	}

	Repository struct {
		db     *sql.DB
		client Client
		log    *slog.Logger
	}
)

func NewRepository(db *sql.DB, log *slog.Logger) *Repository {
	return &Repository{db: db, client: db, log: log}
}

// Transact runs txFunc against a repository bound to a single transaction.
// Rollback on error, commit otherwise.
func (r *Repository) Transact(ctx context.Context, txFunc func(r dal.Repository) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // ignore rollback errors

	if err = txFunc(&Repository{db: r.db, client: tx, log: r.log}); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}
