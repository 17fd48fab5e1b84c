package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/smarterworkco/GPT-UI/internal/analytics"
	"github.com/smarterworkco/GPT-UI/internal/domain"
)

var _ Repository = (*PostgresRepository)(nil)

const uniqueViolation = "23505"

type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// txStarter is a dbtx that can also open transactions, such as a pool
type txStarter interface {
	dbtx
	Begin(ctx context.Context) (pgx.Tx, error)
}

// PostgresRepository stores entities in Postgres. Ids come from bigserial
// sequences so they are never reused.
type PostgresRepository struct {
	db      txStarter
	now     func() time.Time
	metrics *analytics.Aggregator
}

// NewPostgresRepository creates a repository backed by pool. The schema is
// expected to be migrated already.
func NewPostgresRepository(pool *pgxpool.Pool, opts ...Option) *PostgresRepository {
	o := applyOptions(opts)
	r := &PostgresRepository{
		db:  pool,
		now: o.now,
	}
	r.metrics = analytics.NewAggregator(r, o.now)
	return r
}

func (r *PostgresRepository) GetBusinessMetrics(ctx context.Context, businessID int64) (domain.BusinessMetrics, error) {
	return r.metrics.BusinessMetrics(ctx, businessID)
}

// withTx runs fn against a transaction, rolling back when fn fails
func (r *PostgresRepository) withTx(ctx context.Context, fn func(db dbtx) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}

	return tx.Commit(ctx)
}

// stamp returns the current time at the precision Postgres stores
func (r *PostgresRepository) stamp() time.Time {
	return r.now().UTC().Truncate(time.Microsecond)
}

func notFound(err error, sentinel *domain.DomainError) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return sentinel
	}
	return err
}

func uniqueConstraint(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return pgErr.ConstraintName, true
	}
	return "", false
}

func wrapQuery(op string, err error) error {
	if err == nil {
		return nil
	}
	var de *domain.DomainError
	if errors.As(err, &de) {
		return err
	}
	return fmt.Errorf("%s: %w", op, err)
}
