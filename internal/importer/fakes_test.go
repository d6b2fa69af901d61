package importer

import (
	"context"
	"strings"

	"github.com/lsemperez/gymtrack/internal/domain"
	"github.com/lsemperez/gymtrack/internal/store"
)

// fakeStore is an in-memory implementation of every store interface the
// pipeline consumes. Failure hooks let tests trigger the fallback tiers.
type fakeStore struct {
	groups    map[string]*domain.MuscleGroup
	muscles   map[string]*domain.Muscle
	exercises map[string]*domain.Exercise
	routines  []*domain.Routine
	nextID    int64

	batchSizes      []int                 // size of every CreateBatch call, in order
	failBatchCall   int                   // 1-based CreateBatch call number to fail, 0 = never
	batchErr        error                 // error returned by the failing batch call
	failCreateNames map[string]error      // individual Create failures keyed by exercise name
	createAllErr    error                 // CreateAll failure
	createRefErr    map[string]error      // group/muscle Create failures keyed by name
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		groups:          map[string]*domain.MuscleGroup{},
		muscles:         map[string]*domain.Muscle{},
		exercises:       map[string]*domain.Exercise{},
		failCreateNames: map[string]error{},
		createRefErr:    map[string]error{},
	}
}

func (f *fakeStore) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeStore) AllByName(ctx context.Context) (map[string]*domain.MuscleGroup, error) {
	out := make(map[string]*domain.MuscleGroup, len(f.groups))
	for k, v := range f.groups {
		out[k] = v
	}
	return out, nil
}

func (f *fakeStore) muscleMap() *fakeMuscleStore { return &fakeMuscleStore{f} }

func (f *fakeStore) Create(ctx context.Context, name string) (*domain.MuscleGroup, error) {
	if err := f.createRefErr[name]; err != nil {
		return nil, err
	}
	g := &domain.MuscleGroup{ID: f.id(), Name: name}
	f.groups[strings.ToLower(name)] = g
	return g, nil
}

func (f *fakeStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	for _, g := range f.groups {
		if g.ID == id {
			return true, nil
		}
	}
	return false, nil
}

// fakeMuscleStore adapts the same fakeStore data to the muscle interface.
type fakeMuscleStore struct {
	f *fakeStore
}

func (m *fakeMuscleStore) AllByName(ctx context.Context) (map[string]*domain.Muscle, error) {
	out := make(map[string]*domain.Muscle, len(m.f.muscles))
	for k, v := range m.f.muscles {
		out[k] = v
	}
	return out, nil
}

func (m *fakeMuscleStore) Create(ctx context.Context, name string) (*domain.Muscle, error) {
	if err := m.f.createRefErr[name]; err != nil {
		return nil, err
	}
	mu := &domain.Muscle{ID: m.f.id(), Name: name}
	m.f.muscles[strings.ToLower(name)] = mu
	return mu, nil
}

func (m *fakeMuscleStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	for _, mu := range m.f.muscles {
		if mu.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (m *fakeMuscleStore) ExistingIDs(ctx context.Context, ids []int64) (map[int64]bool, error) {
	out := make(map[int64]bool, len(ids))
	for _, id := range ids {
		for _, mu := range m.f.muscles {
			if mu.ID == id {
				out[id] = true
			}
		}
	}
	return out, nil
}

// fakeExerciseStore adapts fakeStore to the exercise interface.
type fakeExerciseStore struct {
	f *fakeStore
}

func (e *fakeExerciseStore) ExistingByName(ctx context.Context) (map[string]*domain.Exercise, error) {
	out := make(map[string]*domain.Exercise, len(e.f.exercises))
	for k, v := range e.f.exercises {
		out[k] = v
	}
	return out, nil
}

func (e *fakeExerciseStore) ExistsByName(ctx context.Context, name string) (bool, error) {
	_, ok := e.f.exercises[strings.ToLower(name)]
	return ok, nil
}

func (e *fakeExerciseStore) IDsByName(ctx context.Context, names []string) (map[string]int64, error) {
	out := make(map[string]int64, len(names))
	for _, name := range names {
		if ex, ok := e.f.exercises[strings.ToLower(name)]; ok && ex.Name == name {
			out[name] = ex.ID
		}
	}
	return out, nil
}

func (e *fakeExerciseStore) CreateBatch(ctx context.Context, exercises []*domain.Exercise) error {
	e.f.batchSizes = append(e.f.batchSizes, len(exercises))
	if e.f.failBatchCall == len(e.f.batchSizes) {
		return e.f.batchErr
	}
	for _, ex := range exercises {
		if _, ok := e.f.exercises[strings.ToLower(ex.Name)]; ok {
			return &store.ConstraintError{
				Kind:       store.ConstraintUnique,
				Constraint: "exercises_name_lower_key",
				Code:       "23505",
			}
		}
	}
	for _, ex := range exercises {
		ex.ID = e.f.id()
		e.f.exercises[strings.ToLower(ex.Name)] = ex
	}
	return nil
}

func (e *fakeExerciseStore) Create(ctx context.Context, ex *domain.Exercise) error {
	if err := e.f.failCreateNames[ex.Name]; err != nil {
		return err
	}
	if _, ok := e.f.exercises[strings.ToLower(ex.Name)]; ok {
		return &store.ConstraintError{
			Kind:       store.ConstraintUnique,
			Constraint: "exercises_name_lower_key",
			Code:       "23505",
		}
	}
	ex.ID = e.f.id()
	e.f.exercises[strings.ToLower(ex.Name)] = ex
	return nil
}

// fakeRoutineStore adapts fakeStore to the routine interface.
type fakeRoutineStore struct {
	f *fakeStore
}

func (r *fakeRoutineStore) CreateAll(ctx context.Context, routines []*domain.Routine) error {
	if r.f.createAllErr != nil {
		return r.f.createAllErr
	}
	r.f.routines = append(r.f.routines, routines...)
	return nil
}

func uniqueViolation() error {
	return &store.ConstraintError{
		Kind:       store.ConstraintUnique,
		Constraint: "exercises_name_lower_key",
		Code:       "23505",
	}
}

func newTestImporter(f *fakeStore, opts ...Option) *Importer {
	return New(f, f.muscleMap(), &fakeExerciseStore{f}, &fakeRoutineStore{f}, opts...)
}
