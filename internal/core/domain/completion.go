package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrHabitIDRequired = fmt.Errorf("%w: habit id is required", ErrValidation)
	ErrDayRequired     = fmt.Errorf("%w: day is required", ErrValidation)
	ErrInvalidDay      = fmt.Errorf("%w: day is not a valid calendar date", ErrValidation)
	ErrNegativeValue   = fmt.Errorf("%w: value cannot be negative", ErrValidation)
)

// CompletionRecord is the per-(habit, day) entry of the completion ledger.
// At most one record exists for a given habit and calendar day; the store
// enforces this with a unique constraint on (habit_id, day).
type CompletionRecord struct {
	ID        string    `json:"id" db:"id"`
	HabitID   string    `json:"habit_id" db:"habit_id"`
	Day       time.Time `json:"day" db:"day"`
	Completed bool      `json:"completed" db:"completed"`
	Value     *float64  `json:"value,omitempty" db:"value"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// NormalizeDay strips any time-of-day component, anchoring t to midnight UTC.
// Two instants on the same calendar date normalize to the same key.
func NormalizeDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDay accepts a YYYY-MM-DD calendar date or an RFC3339 timestamp and
// returns the normalized day it identifies.
func ParseDay(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return NormalizeDay(t), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return NormalizeDay(t), nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDay, s)
}

func NewCompletionRecord(habitID string, day time.Time, completed bool, value *float64) *CompletionRecord {
	now := time.Now().UTC()

	return &CompletionRecord{
		ID:        uuid.New().String(),
		HabitID:   habitID,
		Day:       NormalizeDay(day),
		Completed: completed,
		Value:     value,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (r *CompletionRecord) Validate() error {
	if r.HabitID == "" {
		return ErrHabitIDRequired
	}
	if r.Day.IsZero() {
		return ErrDayRequired
	}
	if r.Value != nil && *r.Value < 0 {
		return ErrNegativeValue
	}
	return nil
}

// Key returns the ledger identity of the record, habit id plus calendar day.
func (r *CompletionRecord) Key() string {
	return r.HabitID + "@" + r.Day.Format("2006-01-02")
}
