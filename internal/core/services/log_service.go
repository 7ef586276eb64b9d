package services

import (
	"context"
	"fmt"
	"time"

	"github.com/tanveerhkit/habit-tracker/internal/core/domain"
	"github.com/tanveerhkit/habit-tracker/internal/core/workers"
)

var errRangeBoundMissing = fmt.Errorf("%w: both range bounds are required", domain.ErrValidation)

// LogService owns the completion ledger operations: idempotent upsert of
// per-(habit, day) records and inclusive range queries across habits.
type LogService struct {
	repo      domain.CompletionRepository
	habitRepo domain.HabitRepository
	worker    *workers.StatsInvalidator
}

func NewLogService(repo domain.CompletionRepository, habitRepo domain.HabitRepository, worker *workers.StatsInvalidator) *LogService {
	return &LogService{
		repo:      repo,
		habitRepo: habitRepo,
		worker:    worker,
	}
}

type UpsertLogInput struct {
	HabitID   string
	Day       time.Time
	Completed bool
	Value     *float64
}

// Upsert normalizes the day and writes the single record for the
// (habit, day) key. Repeated identical calls converge to one record.
func (s *LogService) Upsert(ctx context.Context, input UpsertLogInput) (*domain.CompletionRecord, error) {
	record := domain.NewCompletionRecord(input.HabitID, input.Day, input.Completed, input.Value)

	if err := record.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.habitRepo.GetByID(ctx, record.HabitID); err != nil {
		return nil, err
	}

	stored, err := s.repo.Upsert(ctx, record)
	if err != nil {
		return nil, err
	}

	if s.worker != nil {
		s.worker.Enqueue(stored.Day)
	}

	return stored, nil
}

// ListByDateRange returns every record, across habits, whose day falls in
// the inclusive [from, to] range.
func (s *LogService) ListByDateRange(ctx context.Context, from, to time.Time) ([]*domain.CompletionRecord, error) {
	if from.IsZero() || to.IsZero() {
		return nil, errRangeBoundMissing
	}

	return s.repo.ListByDateRange(ctx, domain.NormalizeDay(from), domain.NormalizeDay(to))
}
