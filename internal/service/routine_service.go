package service

import (
	"context"
	"fmt"

	"github.com/lsemperez/gymtrack/internal/domain"
	"github.com/lsemperez/gymtrack/internal/store"
)

// RoutinePage is one page of routine metadata; trees are not included.
type RoutinePage struct {
	Items      []domain.Routine `json:"items"`
	Page       int              `json:"page"`
	PageSize   int              `json:"pageSize"`
	TotalCount int              `json:"totalCount"`
	TotalPages int              `json:"totalPages"`
}

// RoutineService serves routine reads.
type RoutineService struct {
	routines *store.RoutineStore
}

func NewRoutineService(routines *store.RoutineStore) *RoutineService {
	return &RoutineService{routines: routines}
}

// List returns a page of routine metadata ordered by name.
func (s *RoutineService) List(ctx context.Context, page, pageSize int) (*RoutinePage, error) {
	page, pageSize = normalizePage(page, pageSize)
	items, total, err := s.routines.List(ctx, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("list routines: %w", err)
	}
	if items == nil {
		items = []domain.Routine{}
	}
	return &RoutinePage{
		Items:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: total,
		TotalPages: totalPages(total, pageSize),
	}, nil
}

// Get returns one full routine tree. The caller distinguishes
// store.ErrNotFound.
func (s *RoutineService) Get(ctx context.Context, id int64) (*domain.Routine, error) {
	return s.routines.GetByID(ctx, id)
}
