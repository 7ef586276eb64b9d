package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/tanveerhkit/habit-tracker/internal/core/domain"
)

// In-memory repositories mirror the Postgres semantics, including the
// (habit_id, day) uniqueness guarantee, for tests and local development.

type InMemoryHabitRepository struct {
	mu    sync.RWMutex
	store map[string]*domain.Habit
}

func NewInMemoryHabitRepository() *InMemoryHabitRepository {
	return &InMemoryHabitRepository{
		store: make(map[string]*domain.Habit),
	}
}

func (r *InMemoryHabitRepository) Create(ctx context.Context, habit *domain.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *habit
	r.store[habit.ID] = &clone
	return nil
}

func (r *InMemoryHabitRepository) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	habit, ok := r.store[id]
	if !ok {
		return nil, domain.ErrHabitNotFound
	}
	clone := *habit
	return &clone, nil
}

func (r *InMemoryHabitRepository) List(ctx context.Context) ([]*domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	habits := make([]*domain.Habit, 0, len(r.store))
	for _, h := range r.store {
		clone := *h
		habits = append(habits, &clone)
	}

	sort.Slice(habits, func(i, j int) bool {
		if habits[i].SortOrder != habits[j].SortOrder {
			return habits[i].SortOrder < habits[j].SortOrder
		}
		return habits[i].CreatedAt.Before(habits[j].CreatedAt)
	})

	return habits, nil
}

func (r *InMemoryHabitRepository) Update(ctx context.Context, habit *domain.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[habit.ID]; !ok {
		return domain.ErrHabitNotFound
	}

	clone := *habit
	r.store[habit.ID] = &clone
	return nil
}

func (r *InMemoryHabitRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[id]; !ok {
		return domain.ErrHabitNotFound
	}

	delete(r.store, id)
	return nil
}

// InMemoryCompletionRepository keys its store by (habit, day) the same
// way the Postgres unique constraint does, so upserts can never create a
// second record for an existing key.
type InMemoryCompletionRepository struct {
	mu     sync.RWMutex
	store  map[string]*domain.CompletionRecord
	habits *InMemoryHabitRepository
}

func NewInMemoryCompletionRepository() *InMemoryCompletionRepository {
	return &InMemoryCompletionRepository{
		store: make(map[string]*domain.CompletionRecord),
	}
}

// BindHabits makes Upsert enforce habit existence the way the Postgres
// foreign key does. Unbound, the repository accepts any habit id.
func (r *InMemoryCompletionRepository) BindHabits(habits *InMemoryHabitRepository) {
	r.habits = habits
}

func (r *InMemoryCompletionRepository) Upsert(ctx context.Context, record *domain.CompletionRecord) (*domain.CompletionRecord, error) {
	if r.habits != nil {
		if _, err := r.habits.GetByID(ctx, record.HabitID); err != nil {
			return nil, err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := record.Key()

	if existing, ok := r.store[key]; ok {
		existing.Completed = record.Completed
		existing.Value = record.Value
		existing.UpdatedAt = time.Now().UTC()
		clone := *existing
		return &clone, nil
	}

	clone := *record
	r.store[key] = &clone
	out := clone
	return &out, nil
}

func (r *InMemoryCompletionRepository) ListByDateRange(ctx context.Context, from, to time.Time) ([]*domain.CompletionRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var records []*domain.CompletionRecord
	for _, rec := range r.store {
		if rec.Day.Before(from) || rec.Day.After(to) {
			continue
		}
		clone := *rec
		records = append(records, &clone)
	}

	sort.Slice(records, func(i, j int) bool {
		if !records[i].Day.Equal(records[j].Day) {
			return records[i].Day.Before(records[j].Day)
		}
		return records[i].HabitID < records[j].HabitID
	})

	return records, nil
}

func (r *InMemoryCompletionRepository) DeleteByHabitID(ctx context.Context, habitID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, rec := range r.store {
		if rec.HabitID == habitID {
			delete(r.store, key)
		}
	}
	return nil
}

// Len reports the number of stored records. Test helper.
func (r *InMemoryCompletionRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.store)
}

type InMemoryTimerRepository struct {
	mu    sync.RWMutex
	store []*domain.TimerSession
}

func NewInMemoryTimerRepository() *InMemoryTimerRepository {
	return &InMemoryTimerRepository{}
}

func (r *InMemoryTimerRepository) Create(ctx context.Context, session *domain.TimerSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *session
	r.store = append(r.store, &clone)
	return nil
}

func (r *InMemoryTimerRepository) ListByStartRange(ctx context.Context, from, to time.Time) ([]*domain.TimerSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var sessions []*domain.TimerSession
	for _, s := range r.store {
		if s.StartTime.Before(from) || s.StartTime.After(to) {
			continue
		}
		clone := *s
		sessions = append(sessions, &clone)
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].StartTime.After(sessions[j].StartTime)
	})

	return sessions, nil
}
