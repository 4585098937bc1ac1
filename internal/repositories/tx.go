package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jamesruscoe/dog-kennel/internal/scope"
)

// TxRunner executes a function inside a database transaction. When the
// context is bound to a company, the transaction first takes an advisory
// lock keyed by that company, serialising capacity checks and booking
// writes against each other. A check-then-write done in two unsynchronised
// steps would oversell the kennel under concurrent load.
type TxRunner interface {
	InTx(ctx context.Context, fn func(tx pgx.Tx) error) error
}

// TxBeginner is the slice of pgx that TxRunner needs. It is satisfied by
// *pgxpool.Pool and by pgxmock in tests.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

type pgxTxRunner struct {
	db TxBeginner
}

func NewTxRunner(db TxBeginner) TxRunner {
	return &pgxTxRunner{db: db}
}

func (r *pgxTxRunner) InTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	sc, err := scope.FromContext(ctx)
	if err != nil {
		return err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if companyID, ok := sc.CompanyID(); ok {
		// pg_advisory_xact_lock releases automatically at commit/rollback.
		if _, err := tx.Exec(ctx,
			`SELECT pg_advisory_xact_lock(hashtextextended($1::text, 0))`,
			companyID.String()); err != nil {
			return fmt.Errorf("acquire company lock: %w", err)
		}
	}

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
