package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/tanveerhkit/habit-tracker/internal/core/domain"
)

const pgForeignKeyViolation = "23503"

type PostgresCompletionRepository struct {
	db *sqlx.DB
}

func NewPostgresCompletionRepository(db *sqlx.DB) *PostgresCompletionRepository {
	return &PostgresCompletionRepository{db: db}
}

// Upsert relies on the unique constraint on (habit_id, day): a first
// write inserts, every later write for the same key updates in place.
// The constraint, not an application lookup, is what makes concurrent
// retried upserts converge to a single row.
func (r *PostgresCompletionRepository) Upsert(ctx context.Context, record *domain.CompletionRecord) (*domain.CompletionRecord, error) {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}

	query := `
		INSERT INTO habit_logs (id, habit_id, day, completed, value, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		ON CONFLICT (habit_id, day) DO UPDATE
		SET completed  = EXCLUDED.completed,
		    value      = EXCLUDED.value,
		    updated_at = EXCLUDED.updated_at
		RETURNING id, habit_id, day, completed, value, created_at, updated_at`

	var stored domain.CompletionRecord
	err := r.db.GetContext(ctx, &stored, query,
		record.ID, record.HabitID, record.Day, record.Completed, record.Value, time.Now().UTC())
	if err != nil {
		return nil, classifyError(err)
	}

	stored.Day = domain.NormalizeDay(stored.Day)
	return &stored, nil
}

func (r *PostgresCompletionRepository) ListByDateRange(ctx context.Context, from, to time.Time) ([]*domain.CompletionRecord, error) {
	records := []*domain.CompletionRecord{}

	query := `
		SELECT id, habit_id, day, completed, value, created_at, updated_at
		FROM habit_logs
		WHERE day >= $1 AND day <= $2
		ORDER BY day ASC, habit_id ASC`

	if err := r.db.SelectContext(ctx, &records, query, from, to); err != nil {
		return nil, classifyError(err)
	}

	for _, rec := range records {
		rec.Day = domain.NormalizeDay(rec.Day)
	}
	return records, nil
}

func (r *PostgresCompletionRepository) DeleteByHabitID(ctx context.Context, habitID string) error {
	query := `DELETE FROM habit_logs WHERE habit_id = $1`

	// Zero rows deleted is fine: a habit may have no logs yet.
	if _, err := r.db.ExecContext(ctx, query, habitID); err != nil {
		return classifyError(err)
	}
	return nil
}

// classifyError maps driver failures onto the domain taxonomy. Postgres
// error codes are checked against both pgconn (pgx driver) and pq (used
// by the integration tests) shapes; connection-level failures, including
// the dial errors pgx wraps in ConnectError, classify as store
// unavailability.
func classifyError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgForeignKeyViolation:
			return domain.ErrHabitNotFound
		}
		return err
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pgForeignKeyViolation:
			return domain.ErrHabitNotFound
		}
		return err
	}

	var connErr *pgconn.ConnectError
	var netErr net.Error
	switch {
	case errors.As(err, &connErr),
		errors.As(err, &netErr),
		pgconn.Timeout(err),
		errors.Is(err, driver.ErrBadConn),
		errors.Is(err, sql.ErrConnDone):
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	return err
}
