package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidTimerCategory = fmt.Errorf("%w: invalid timer category (must be Study, Food, or Other)", ErrValidation)
	ErrInvalidTimerRange    = fmt.Errorf("%w: timer end must not precede start", ErrValidation)
)

const (
	TimerCategoryStudy = "Study"
	TimerCategoryFood  = "Food"
	TimerCategoryOther = "Other"
)

// TimerSession is one recorded focus interval. Sessions form an
// append-only ledger parallel to completion records; there is no
// uniqueness constraint and sessions are never updated.
type TimerSession struct {
	ID         string    `json:"id" db:"id"`
	Category   string    `json:"category" db:"category"`
	StartTime  time.Time `json:"start_time" db:"start_time"`
	EndTime    time.Time `json:"end_time" db:"end_time"`
	DurationMS int64     `json:"duration" db:"duration_ms"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

func NewTimerSession(category string, start, end time.Time, durationMS int64) (*TimerSession, error) {
	switch category {
	case TimerCategoryStudy, TimerCategoryFood, TimerCategoryOther:
	default:
		return nil, ErrInvalidTimerCategory
	}

	if end.Before(start) {
		return nil, ErrInvalidTimerRange
	}

	if durationMS <= 0 {
		durationMS = end.Sub(start).Milliseconds()
	}

	return &TimerSession{
		ID:         uuid.New().String(),
		Category:   category,
		StartTime:  start.UTC(),
		EndTime:    end.UTC(),
		DurationMS: durationMS,
		CreatedAt:  time.Now().UTC(),
	}, nil
}
