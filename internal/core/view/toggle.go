// Package view holds the optimistic local view of the completion ledger
// that backs single-cell toggles: flip locally first, write through, and
// reconcile or resync depending on how the durable write lands.
package view

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tanveerhkit/habit-tracker/internal/core/domain"
	"github.com/tanveerhkit/habit-tracker/internal/core/workers"
)

type recordKey struct {
	habitID string
	day     string
}

func keyFor(habitID string, day time.Time) recordKey {
	return recordKey{habitID: habitID, day: day.Format("2006-01-02")}
}

// Controller is the toggle state machine over an in-memory arena keyed by
// (habit, day). A toggle moves Idle → Speculative synchronously, then
// Speculative → Reconciled when the upsert lands, or Speculative →
// RolledBack (full resync of the loaded scope) when it fails. For a single
// key the last local write wins: a reconciliation never clobbers a newer
// speculative record.
type Controller struct {
	ledger domain.CompletionRepository
	worker *workers.StatsInvalidator
	logger *zap.Logger

	mu         sync.Mutex
	local      map[recordKey]*domain.CompletionRecord
	seq        map[recordKey]uint64
	from, to   time.Time
	generation uint64
}

func NewController(ledger domain.CompletionRepository, worker *workers.StatsInvalidator, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		ledger: ledger,
		worker: worker,
		logger: logger,
		local:  make(map[recordKey]*domain.CompletionRecord),
		seq:    make(map[recordKey]uint64),
	}
}

// Load replaces the local view with the ledger's records for the
// inclusive [from, to] scope.
func (c *Controller) Load(ctx context.Context, from, to time.Time) error {
	from = domain.NormalizeDay(from)
	to = domain.NormalizeDay(to)

	records, err := c.ledger.ListByDateRange(ctx, from, to)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.local = make(map[recordKey]*domain.CompletionRecord, len(records))
	for _, r := range records {
		c.local[keyFor(r.HabitID, r.Day)] = r
	}
	c.from, c.to = from, to

	return nil
}

// Resync re-reads the whole loaded scope, discarding any speculative
// state. Used as the rollback path after a failed durable write.
func (c *Controller) Resync(ctx context.Context) error {
	c.mu.Lock()
	from, to := c.from, c.to
	c.mu.Unlock()

	if from.IsZero() {
		c.mu.Lock()
		c.local = make(map[recordKey]*domain.CompletionRecord)
		c.mu.Unlock()
		return nil
	}

	return c.Load(ctx, from, to)
}

// Toggle flips the completed flag for (habitID, day). The local view
// reflects the flip before the durable write is issued; the caller gets
// the authoritative stored record once the write lands.
func (c *Controller) Toggle(ctx context.Context, habitID string, day time.Time) (*domain.CompletionRecord, error) {
	if habitID == "" {
		return nil, domain.ErrHabitIDRequired
	}
	if day.IsZero() {
		return nil, domain.ErrDayRequired
	}

	day = domain.NormalizeDay(day)

	if err := c.ensureScope(ctx, day); err != nil {
		return nil, err
	}

	k := keyFor(habitID, day)

	// Speculative phase: negate the current local flag and publish it
	// before suspending on the write.
	c.mu.Lock()
	current := c.local[k]
	var value *float64
	completed := false
	if current != nil {
		completed = current.Completed
		value = current.Value
	}

	speculative := domain.NewCompletionRecord(habitID, day, !completed, value)
	c.local[k] = speculative
	c.seq[k]++
	mySeq := c.seq[k]
	c.generation++
	c.mu.Unlock()

	stored, err := c.ledger.Upsert(ctx, speculative)
	if err != nil {
		// Rollback: drop all speculative state and trust the ledger.
		if rerr := c.Resync(ctx); rerr != nil {
			c.logger.Error("resync after failed toggle also failed",
				zap.String("habit_id", habitID),
				zap.Time("day", day),
				zap.Error(rerr))
		}
		return nil, err
	}

	// Reconciled: the authoritative record wins unless a later toggle
	// already wrote a newer speculative value for this key.
	c.mu.Lock()
	if c.seq[k] == mySeq {
		c.local[k] = stored
	}
	c.mu.Unlock()

	if c.worker != nil {
		c.worker.Enqueue(day)
	}

	return stored, nil
}

// Completed reports the local view's flag for (habitID, day), which may
// be speculative while a write is in flight.
func (c *Controller) Completed(habitID string, day time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	r := c.local[keyFor(habitID, domain.NormalizeDay(day))]
	return r != nil && r.Completed
}

// Records returns a copy of the local view.
func (c *Controller) Records() []*domain.CompletionRecord {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]*domain.CompletionRecord, 0, len(c.local))
	for _, r := range c.local {
		out = append(out, r)
	}
	return out
}

// Generation increments on every local mutation; aggregated snapshots
// computed before a given generation are stale once it moves.
func (c *Controller) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

// ensureScope widens the loaded range to the month grid containing day
// the first time the day falls outside it.
func (c *Controller) ensureScope(ctx context.Context, day time.Time) error {
	c.mu.Lock()
	inScope := !c.from.IsZero() && !day.Before(c.from) && !day.After(c.to)
	c.mu.Unlock()

	if inScope {
		return nil
	}

	weeks := domain.MonthWeeks(day)
	return c.Load(ctx, weeks[0].Start(), weeks[len(weeks)-1].End())
}
