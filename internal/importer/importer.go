// Package importer implements the bulk import pipeline: reference resolution,
// exercise reconciliation with chunked persistence and per-record fallback,
// and all-or-nothing routine tree import. One Importer call processes its
// records strictly sequentially; all lookup snapshots are call-scoped.
package importer

import (
	"context"

	"github.com/lsemperez/gymtrack/internal/domain"
)

// DefaultChunkSize is the number of staged exercises committed per batch
// transaction.
const DefaultChunkSize = 100

// MuscleGroupStore is the persistence surface the pipeline needs for muscle
// groups.
type MuscleGroupStore interface {
	AllByName(ctx context.Context) (map[string]*domain.MuscleGroup, error)
	Create(ctx context.Context, name string) (*domain.MuscleGroup, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
}

// MuscleStore is the persistence surface the pipeline needs for muscles.
type MuscleStore interface {
	AllByName(ctx context.Context) (map[string]*domain.Muscle, error)
	Create(ctx context.Context, name string) (*domain.Muscle, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	ExistingIDs(ctx context.Context, ids []int64) (map[int64]bool, error)
}

// ExerciseStore is the persistence surface the pipeline needs for exercises.
// Create runs in its own transaction; CreateBatch commits all entities or
// none.
type ExerciseStore interface {
	ExistingByName(ctx context.Context) (map[string]*domain.Exercise, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	IDsByName(ctx context.Context, names []string) (map[string]int64, error)
	CreateBatch(ctx context.Context, exercises []*domain.Exercise) error
	Create(ctx context.Context, exercise *domain.Exercise) error
}

// RoutineStore persists routine trees atomically.
type RoutineStore interface {
	CreateAll(ctx context.Context, routines []*domain.Routine) error
}

// Importer runs import calls against the given stores. Each call builds its
// logger from the caller's context so request IDs carry into pipeline logs.
type Importer struct {
	groups    MuscleGroupStore
	muscles   MuscleStore
	exercises ExerciseStore
	routines  RoutineStore
	chunkSize int
}

type Option func(*Importer)

// WithChunkSize overrides the batch commit size.
func WithChunkSize(n int) Option {
	return func(imp *Importer) {
		if n > 0 {
			imp.chunkSize = n
		}
	}
}

func New(groups MuscleGroupStore, muscles MuscleStore, exercises ExerciseStore, routines RoutineStore, opts ...Option) *Importer {
	imp := &Importer{
		groups:    groups,
		muscles:   muscles,
		exercises: exercises,
		routines:  routines,
		chunkSize: DefaultChunkSize,
	}
	for _, opt := range opts {
		opt(imp)
	}
	return imp
}
