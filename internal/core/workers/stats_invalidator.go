package workers

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/tanveerhkit/habit-tracker/internal/core/domain"
)

// SnapshotCache drops cached month overviews whose scope contains a day.
type SnapshotCache interface {
	InvalidateDay(ctx context.Context, day time.Time) error
}

type InvalidateJob struct {
	Day time.Time
}

// StatsInvalidator retires cached StatsSnapshots off the request path.
// Every successful ledger write enqueues the touched day; the worker
// invalidates any month overview whose grid could include it.
type StatsInvalidator struct {
	cache  SnapshotCache
	jobs   chan InvalidateJob
	logger *zap.Logger
}

func NewStatsInvalidator(cache SnapshotCache, logger *zap.Logger) *StatsInvalidator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsInvalidator{
		cache:  cache,
		jobs:   make(chan InvalidateJob, 100),
		logger: logger,
	}
}

func (w *StatsInvalidator) Start(ctx context.Context) {
	go func() {
		w.logger.Info("stats invalidator started")
		for {
			select {
			case job := <-w.jobs:
				w.processJob(ctx, job)
			case <-ctx.Done():
				w.logger.Info("stats invalidator shutting down")
				return
			}
		}
	}()
}

func (w *StatsInvalidator) Enqueue(day time.Time) {
	if w.cache == nil {
		return
	}

	select {
	case w.jobs <- InvalidateJob{Day: domain.NormalizeDay(day)}:
	default:
		w.logger.Warn("invalidation queue full, dropping job",
			zap.Time("day", day))
	}
}

func (w *StatsInvalidator) processJob(ctx context.Context, job InvalidateJob) {
	if err := w.cache.InvalidateDay(ctx, job.Day); err != nil {
		w.logger.Error("failed to invalidate stats cache",
			zap.Time("day", job.Day),
			zap.Error(err))
		return
	}
	w.logger.Debug("stats cache invalidated", zap.Time("day", job.Day))
}
