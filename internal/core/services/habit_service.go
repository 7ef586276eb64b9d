package services

import (
	"context"

	"github.com/tanveerhkit/habit-tracker/internal/core/domain"
)

type HabitService struct {
	repo           domain.HabitRepository
	completionRepo domain.CompletionRepository
}

func NewHabitService(repo domain.HabitRepository, completionRepo domain.CompletionRepository) *HabitService {
	return &HabitService{
		repo:           repo,
		completionRepo: completionRepo,
	}
}

type CreateHabitInput struct {
	Name        string
	Description string
	Icon        string
	Color       string
	Goal        int
	SortOrder   int
}

type UpdateHabitInput struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Color       string
	Goal        int
	SortOrder   int
}

func (s *HabitService) Create(ctx context.Context, input CreateHabitInput) (*domain.Habit, error) {
	habit, err := domain.NewHabit(input.Name, input.Description, input.Icon, input.Color, input.Goal, input.SortOrder)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, habit); err != nil {
		return nil, err
	}

	return habit, nil
}

func (s *HabitService) List(ctx context.Context) ([]*domain.Habit, error) {
	return s.repo.List(ctx)
}

func (s *HabitService) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	if id == "" {
		return nil, domain.ErrHabitIDRequired
	}
	return s.repo.GetByID(ctx, id)
}

func (s *HabitService) Update(ctx context.Context, input UpdateHabitInput) (*domain.Habit, error) {
	if input.ID == "" {
		return nil, domain.ErrHabitIDRequired
	}

	habit, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if err := habit.Update(input.Name, input.Description, input.Icon, input.Color, input.Goal, input.SortOrder); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, habit); err != nil {
		return nil, err
	}

	return habit, nil
}

// Delete removes the habit and cascades deletion of its ledger records.
// Records go first so a failure can never strand a live habit without
// its logs still queryable.
func (s *HabitService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrHabitIDRequired
	}

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.completionRepo.DeleteByHabitID(ctx, id); err != nil {
		return err
	}

	return s.repo.Delete(ctx, id)
}
