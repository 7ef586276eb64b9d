package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrHabitNotFound  = errors.New("habit not found")
	ErrRecordNotFound = errors.New("completion record not found")
)

type HabitRepository interface {
	// Create persists a new habit definition.
	Create(ctx context.Context, habit *Habit) error

	// GetByID retrieves a habit by its unique identifier.
	GetByID(ctx context.Context, id string) (*Habit, error)

	// List retrieves every habit, ordered by display order.
	List(ctx context.Context) ([]*Habit, error)

	// Update modifies the state of an existing habit.
	Update(ctx context.Context, habit *Habit) error

	// Delete permanently removes a habit. Completion records are
	// cascaded separately via CompletionRepository.DeleteByHabitID.
	Delete(ctx context.Context, id string) error
}

type CompletionRepository interface {
	// Upsert writes the record for its (habit, day) key, creating it on
	// first write and overwriting completed/value on every later one.
	// Implementations must enforce the key's uniqueness in the store
	// itself so that concurrent retries converge to a single record.
	// The returned record is the authoritative stored state.
	Upsert(ctx context.Context, record *CompletionRecord) (*CompletionRecord, error)

	// ListByDateRange returns all records, across habits, whose day
	// falls inside the inclusive [from, to] range.
	ListByDateRange(ctx context.Context, from, to time.Time) ([]*CompletionRecord, error)

	// DeleteByHabitID removes every record owned by the habit. Used as
	// the cascade when a habit is deleted.
	DeleteByHabitID(ctx context.Context, habitID string) error
}

type TimerRepository interface {
	Create(ctx context.Context, session *TimerSession) error

	// ListByStartRange returns sessions whose start time falls inside
	// the inclusive [from, to] range, most recent first.
	ListByStartRange(ctx context.Context, from, to time.Time) ([]*TimerSession, error)
}
