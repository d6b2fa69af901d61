package store

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lsemperez/gymtrack/internal/domain"
)

// MuscleGroupStore persists the muscle group taxonomy.
type MuscleGroupStore struct {
	pool *pgxpool.Pool
}

func NewMuscleGroupStore(pool *pgxpool.Pool) *MuscleGroupStore {
	return &MuscleGroupStore{pool: pool}
}

// AllByName returns every muscle group keyed by lowercased name.
func (s *MuscleGroupStore) AllByName(ctx context.Context) (map[string]*domain.MuscleGroup, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, name FROM muscle_groups`)
	if err != nil {
		return nil, wrapErr(err)
	}
	defer rows.Close()

	out := make(map[string]*domain.MuscleGroup)
	for rows.Next() {
		var g domain.MuscleGroup
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, wrapErr(err)
		}
		out[strings.ToLower(g.Name)] = &g
	}
	return out, wrapErr(rows.Err())
}

// Create inserts a muscle group and returns it with its assigned ID.
func (s *MuscleGroupStore) Create(ctx context.Context, name string) (*domain.MuscleGroup, error) {
	g := &domain.MuscleGroup{Name: name}
	err := s.pool.QueryRow(ctx,
		`INSERT INTO muscle_groups (name) VALUES ($1) RETURNING id`, name,
	).Scan(&g.ID)
	if err != nil {
		return nil, wrapErr(err)
	}
	return g, nil
}

// ExistsByID reports whether a muscle group row exists.
func (s *MuscleGroupStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM muscle_groups WHERE id = $1)`, id,
	).Scan(&exists)
	return exists, wrapErr(err)
}

// MuscleStore persists individual muscles.
type MuscleStore struct {
	pool *pgxpool.Pool
}

func NewMuscleStore(pool *pgxpool.Pool) *MuscleStore {
	return &MuscleStore{pool: pool}
}

// AllByName returns every muscle keyed by lowercased name.
func (s *MuscleStore) AllByName(ctx context.Context) (map[string]*domain.Muscle, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, name FROM muscles`)
	if err != nil {
		return nil, wrapErr(err)
	}
	defer rows.Close()

	out := make(map[string]*domain.Muscle)
	for rows.Next() {
		var m domain.Muscle
		if err := rows.Scan(&m.ID, &m.Name); err != nil {
			return nil, wrapErr(err)
		}
		out[strings.ToLower(m.Name)] = &m
	}
	return out, wrapErr(rows.Err())
}

// Create inserts a muscle and returns it with its assigned ID.
func (s *MuscleStore) Create(ctx context.Context, name string) (*domain.Muscle, error) {
	m := &domain.Muscle{Name: name}
	err := s.pool.QueryRow(ctx,
		`INSERT INTO muscles (name) VALUES ($1) RETURNING id`, name,
	).Scan(&m.ID)
	if err != nil {
		return nil, wrapErr(err)
	}
	return m, nil
}

// ExistsByID reports whether a muscle row exists.
func (s *MuscleStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM muscles WHERE id = $1)`, id,
	).Scan(&exists)
	return exists, wrapErr(err)
}

// ExistingIDs filters ids down to those that exist in storage, returned as a
// membership set.
func (s *MuscleStore) ExistingIDs(ctx context.Context, ids []int64) (map[int64]bool, error) {
	out := make(map[int64]bool, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := s.pool.Query(ctx, `SELECT id FROM muscles WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, wrapErr(err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, wrapErr(err)
		}
		out[id] = true
	}
	return out, wrapErr(rows.Err())
}
