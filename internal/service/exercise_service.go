package service

import (
	"context"
	"fmt"

	"github.com/lsemperez/gymtrack/internal/domain"
	"github.com/lsemperez/gymtrack/internal/store"
)

// ExercisePage is one page of catalog exercises.
type ExercisePage struct {
	Items      []domain.Exercise `json:"items"`
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
	TotalCount int               `json:"totalCount"`
	TotalPages int               `json:"totalPages"`
}

// ExerciseService serves catalog reads and the update path.
type ExerciseService struct {
	exercises *store.ExerciseStore
	muscles   *store.MuscleStore
}

func NewExerciseService(exercises *store.ExerciseStore, muscles *store.MuscleStore) *ExerciseService {
	return &ExerciseService{exercises: exercises, muscles: muscles}
}

// List returns a page of exercises ordered by name. name, when non-empty,
// filters by case-insensitive suffix.
func (s *ExerciseService) List(ctx context.Context, page, pageSize int, name string) (*ExercisePage, error) {
	page, pageSize = normalizePage(page, pageSize)
	items, total, err := s.exercises.List(ctx, store.ListParams{
		Page:     page,
		PageSize: pageSize,
		Name:     name,
	})
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	if items == nil {
		items = []domain.Exercise{}
	}
	return &ExercisePage{
		Items:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: total,
		TotalPages: totalPages(total, pageSize),
	}, nil
}

// GetAll returns the whole catalog ordered by name.
func (s *ExerciseService) GetAll(ctx context.Context) ([]domain.Exercise, error) {
	items, err := s.exercises.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get all exercises: %w", err)
	}
	if items == nil {
		items = []domain.Exercise{}
	}
	return items, nil
}

// Get returns one exercise. The caller distinguishes store.ErrNotFound.
func (s *ExerciseService) Get(ctx context.Context, id int64) (*domain.Exercise, error) {
	return s.exercises.GetByID(ctx, id)
}

// Update replaces an exercise's description and full secondary muscle set.
// Secondary muscles must exist, must not repeat, and must not include the
// exercise's primary muscle. This is never invoked by the import pipeline,
// which skips existing names instead of updating them.
func (s *ExerciseService) Update(ctx context.Context, id int64, description string, secondaryMuscleIDs []int64) (*domain.Exercise, error) {
	current, err := s.exercises.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	seen := make(map[int64]bool, len(secondaryMuscleIDs))
	for _, muscleID := range secondaryMuscleIDs {
		if muscleID == current.PrimaryMuscleID {
			return nil, fmt.Errorf("muscle %d is the exercise's primary muscle", muscleID)
		}
		if seen[muscleID] {
			return nil, fmt.Errorf("muscle %d is listed more than once", muscleID)
		}
		seen[muscleID] = true
	}
	if len(secondaryMuscleIDs) > 0 {
		known, err := s.muscles.ExistingIDs(ctx, secondaryMuscleIDs)
		if err != nil {
			return nil, fmt.Errorf("checking secondary muscles: %w", err)
		}
		for _, muscleID := range secondaryMuscleIDs {
			if !known[muscleID] {
				return nil, fmt.Errorf("muscle %d does not exist", muscleID)
			}
		}
	}

	if err := s.exercises.Update(ctx, id, description, secondaryMuscleIDs); err != nil {
		return nil, fmt.Errorf("update exercise %d: %w", id, err)
	}
	return s.exercises.GetByID(ctx, id)
}
