package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrHabitNameEmpty   = fmt.Errorf("%w: habit name cannot be empty", ErrValidation)
	ErrHabitNameTooLong = fmt.Errorf("%w: habit name is too long (max 100 chars)", ErrValidation)
	ErrHabitDescTooLong = fmt.Errorf("%w: habit description is too long (max 500 chars)", ErrValidation)
	ErrHabitInvalidGoal = fmt.Errorf("%w: goal cannot be negative", ErrValidation)
)

const (
	DefaultIcon  = "📝"
	DefaultColor = "neon-blue"
	MaxNameLen   = 100
	MaxDescLen   = 500
)

type Habit struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Icon        string    `json:"icon" db:"icon"`
	Color       string    `json:"color" db:"color"`
	Description string    `json:"description,omitempty" db:"description"`
	Goal        int       `json:"goal" db:"goal"`
	SortOrder   int       `json:"order" db:"sort_order"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

func validateHabitFields(name, desc string, goal int) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ErrHabitNameEmpty
	}
	if len(trimmed) > MaxNameLen {
		return ErrHabitNameTooLong
	}
	if len(strings.TrimSpace(desc)) > MaxDescLen {
		return ErrHabitDescTooLong
	}
	if goal < 0 {
		return ErrHabitInvalidGoal
	}
	return nil
}

func NewHabit(name, description, icon, color string, goal, order int) (*Habit, error) {
	if err := validateHabitFields(name, description, goal); err != nil {
		return nil, err
	}

	if icon == "" {
		icon = DefaultIcon
	}
	if color == "" {
		color = DefaultColor
	}

	now := time.Now().UTC()

	return &Habit{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(name),
		Icon:        icon,
		Color:       color,
		Description: strings.TrimSpace(description),
		Goal:        goal,
		SortOrder:   order,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Update mutates the habit in place. The ID is immutable once created.
func (h *Habit) Update(name, description, icon, color string, goal, order int) error {
	if err := validateHabitFields(name, description, goal); err != nil {
		return err
	}

	if icon == "" {
		icon = DefaultIcon
	}
	if color == "" {
		color = DefaultColor
	}

	h.Name = strings.TrimSpace(name)
	h.Description = strings.TrimSpace(description)
	h.Icon = icon
	h.Color = color
	h.Goal = goal
	h.SortOrder = order
	h.UpdatedAt = time.Now().UTC()

	return nil
}
