package services

import (
	"context"
	"fmt"
	"time"

	"github.com/tanveerhkit/habit-tracker/internal/core/domain"
)

var errUnknownTimerRange = fmt.Errorf("%w: unknown timer range (must be today, week, or month)", domain.ErrValidation)

const (
	TimerRangeToday = "today"
	TimerRangeWeek  = "week"
	TimerRangeMonth = "month"
)

type TimerService struct {
	repo domain.TimerRepository
}

func NewTimerService(repo domain.TimerRepository) *TimerService {
	return &TimerService{repo: repo}
}

type RecordSessionInput struct {
	Category   string
	StartTime  time.Time
	EndTime    time.Time
	DurationMS int64
}

func (s *TimerService) Record(ctx context.Context, input RecordSessionInput) (*domain.TimerSession, error) {
	session, err := domain.NewTimerSession(input.Category, input.StartTime, input.EndTime, input.DurationMS)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

// ListByRange resolves the named range against now. An empty name means
// no lower bound: all sessions. Week and month are rolling windows of 7
// and 30 days, not calendar units.
func (s *TimerService) ListByRange(ctx context.Context, rangeName string, now time.Time) ([]*domain.TimerSession, error) {
	now = now.UTC()

	var from time.Time
	switch rangeName {
	case "":
		// all sessions
	case TimerRangeToday:
		from = domain.NormalizeDay(now)
	case TimerRangeWeek:
		from = now.AddDate(0, 0, -7)
	case TimerRangeMonth:
		from = now.AddDate(0, 0, -30)
	default:
		return nil, errUnknownTimerRange
	}

	return s.repo.ListByStartRange(ctx, from, now)
}
