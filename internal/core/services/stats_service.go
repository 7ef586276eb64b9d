package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/tanveerhkit/habit-tracker/internal/core/domain"
)

// OverviewCache is an optional read-through cache for computed month
// overviews, keyed by YYYY-MM. A nil cache disables caching entirely.
type OverviewCache interface {
	GetOverview(ctx context.Context, monthKey string) (*domain.MonthOverview, error)
	SetOverview(ctx context.Context, monthKey string, overview *domain.MonthOverview) error
}

type StatsService struct {
	habitRepo      domain.HabitRepository
	completionRepo domain.CompletionRepository
	cache          OverviewCache
	logger         *zap.Logger
}

func NewStatsService(habitRepo domain.HabitRepository, completionRepo domain.CompletionRepository, cache OverviewCache, logger *zap.Logger) *StatsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsService{
		habitRepo:      habitRepo,
		completionRepo: completionRepo,
		cache:          cache,
		logger:         logger,
	}
}

// MonthOverview derives the full calendar state for ref's month: the
// padded Sunday-start week grid, the month snapshot, and per-week and
// per-day rollups. Everything is recomputed from the ledger; the cache
// only short-circuits repeat requests until a toggle invalidates it.
func (s *StatsService) MonthOverview(ctx context.Context, ref time.Time) (*domain.MonthOverview, error) {
	monthKey := ref.Format("2006-01")

	if s.cache != nil {
		if cached, err := s.cache.GetOverview(ctx, monthKey); err == nil && cached != nil {
			return cached, nil
		}
	}

	habits, err := s.habitRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	weeks := domain.MonthWeeks(ref)
	gridStart := weeks[0].Start()
	gridEnd := weeks[len(weeks)-1].End()

	records, err := s.completionRepo.ListByDateRange(ctx, gridStart, gridEnd)
	if err != nil {
		return nil, err
	}

	overview := &domain.MonthOverview{
		Month:   monthKey,
		Monthly: domain.MonthlySnapshot(habits, records, ref),
	}

	for wi, week := range weeks {
		days := make([]string, 0, 7)
		for _, d := range week {
			days = append(days, d.Format("2006-01-02"))
		}
		overview.Weeks = append(overview.Weeks, days)

		overview.Weekly = append(overview.Weekly, domain.WeekStats{
			WeekIndex: wi + 1,
			StartDate: week.Start().Format("2006-01-02"),
			EndDate:   week.End().Format("2006-01-02"),
			Stats:     domain.WeeklySnapshot(habits, records, week),
		})
	}

	first, last := domain.MonthBounds(ref)
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		overview.Days = append(overview.Days, domain.DayStats{
			Date:  d.Format("2006-01-02"),
			Stats: domain.DailySnapshot(habits, records, d),
		})
	}

	if s.cache != nil {
		if err := s.cache.SetOverview(ctx, monthKey, overview); err != nil {
			s.logger.Warn("failed to cache month overview",
				zap.String("month", monthKey),
				zap.Error(err))
		}
	}

	return overview, nil
}
