package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/tanveerhkit/habit-tracker/internal/core/domain"
)

type PostgresTimerRepository struct {
	db *sqlx.DB
}

func NewPostgresTimerRepository(db *sqlx.DB) *PostgresTimerRepository {
	return &PostgresTimerRepository{db: db}
}

func (r *PostgresTimerRepository) Create(ctx context.Context, s *domain.TimerSession) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}

	query := `
		INSERT INTO timer_sessions (id, category, start_time, end_time, duration_ms, created_at)
		VALUES (:id, :category, :start_time, :end_time, :duration_ms, :created_at)`

	if _, err := r.db.NamedExecContext(ctx, query, s); err != nil {
		return classifyError(err)
	}
	return nil
}

func (r *PostgresTimerRepository) ListByStartRange(ctx context.Context, from, to time.Time) ([]*domain.TimerSession, error) {
	sessions := []*domain.TimerSession{}

	query := `
		SELECT id, category, start_time, end_time, duration_ms, created_at
		FROM timer_sessions
		WHERE start_time >= $1 AND start_time <= $2
		ORDER BY start_time DESC`

	if err := r.db.SelectContext(ctx, &sessions, query, from, to); err != nil {
		return nil, classifyError(err)
	}
	return sessions, nil
}
