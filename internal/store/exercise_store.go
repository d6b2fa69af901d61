package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lsemperez/gymtrack/internal/domain"
)

// ExerciseStore persists catalog exercises and their secondary muscle links.
type ExerciseStore struct {
	pool *pgxpool.Pool
}

func NewExerciseStore(pool *pgxpool.Pool) *ExerciseStore {
	return &ExerciseStore{pool: pool}
}

// ExistingByName returns every exercise keyed by lowercased name. Used as the
// import snapshot; secondary muscles are not loaded.
func (s *ExerciseStore) ExistingByName(ctx context.Context) (map[string]*domain.Exercise, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, description, muscle_group_id, primary_muscle_id FROM exercises`)
	if err != nil {
		return nil, wrapErr(err)
	}
	defer rows.Close()

	out := make(map[string]*domain.Exercise)
	for rows.Next() {
		var e domain.Exercise
		if err := rows.Scan(&e.ID, &e.Name, &e.Description, &e.MuscleGroupID, &e.PrimaryMuscleID); err != nil {
			return nil, wrapErr(err)
		}
		out[strings.ToLower(e.Name)] = &e
	}
	return out, wrapErr(rows.Err())
}

// ExistsByName reports whether an exercise with the given name exists,
// compared case-insensitively against live storage.
func (s *ExerciseStore) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM exercises WHERE LOWER(name) = LOWER($1))`, name,
	).Scan(&exists)
	return exists, wrapErr(err)
}

// IDsByName resolves exercise names to IDs by exact match. Names absent from
// storage are simply missing from the returned map.
func (s *ExerciseStore) IDsByName(ctx context.Context, names []string) (map[string]int64, error) {
	out := make(map[string]int64, len(names))
	if len(names) == 0 {
		return out, nil
	}
	rows, err := s.pool.Query(ctx, `SELECT id, name FROM exercises WHERE name = ANY($1)`, names)
	if err != nil {
		return nil, wrapErr(err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id   int64
			name string
		)
		if err := rows.Scan(&id, &name); err != nil {
			return nil, wrapErr(err)
		}
		out[name] = id
	}
	return out, wrapErr(rows.Err())
}

// CreateBatch inserts all exercises in one transaction. On error nothing is
// persisted and the first failure is returned, classified if it is a
// constraint violation. Assigned IDs are written back into the entities.
func (s *ExerciseStore) CreateBatch(ctx context.Context, exercises []*domain.Exercise) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return wrapErr(err)
	}
	defer tx.Rollback(ctx)

	for _, e := range exercises {
		if err := insertExercise(ctx, tx, e); err != nil {
			return err
		}
	}
	return wrapErr(tx.Commit(ctx))
}

// Create inserts a single exercise in its own transaction.
func (s *ExerciseStore) Create(ctx context.Context, e *domain.Exercise) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return wrapErr(err)
	}
	defer tx.Rollback(ctx)

	if err := insertExercise(ctx, tx, e); err != nil {
		return err
	}
	return wrapErr(tx.Commit(ctx))
}

func insertExercise(ctx context.Context, tx pgx.Tx, e *domain.Exercise) error {
	err := tx.QueryRow(ctx,
		`INSERT INTO exercises (name, description, muscle_group_id, primary_muscle_id)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		e.Name, e.Description, e.MuscleGroupID, e.PrimaryMuscleID,
	).Scan(&e.ID)
	if err != nil {
		return wrapErr(err)
	}
	for _, muscleID := range e.SecondaryMuscleIDs {
		_, err := tx.Exec(ctx,
			`INSERT INTO exercise_secondary_muscles (exercise_id, muscle_id) VALUES ($1, $2)`,
			e.ID, muscleID)
		if err != nil {
			return wrapErr(err)
		}
	}
	return nil
}

// ListParams bound a paged exercise query. Name, when set, keeps only
// exercises whose name ends with it, case-insensitively.
type ListParams struct {
	Page     int
	PageSize int
	Name     string
}

// List returns one page of exercises ordered by name plus the total row count
// for the filter. Muscle projections are populated.
func (s *ExerciseStore) List(ctx context.Context, p ListParams) ([]domain.Exercise, int, error) {
	where := ""
	args := []any{}
	if p.Name != "" {
		where = `WHERE e.name ILIKE '%' || $1`
		args = append(args, p.Name)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM exercises e ` + where
	if err := s.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, wrapErr(err)
	}

	query := fmt.Sprintf(`
		SELECT e.id, e.name, e.description, e.muscle_group_id, e.primary_muscle_id,
		       g.name, m.name
		FROM exercises e
		JOIN muscle_groups g ON g.id = e.muscle_group_id
		JOIN muscles m ON m.id = e.primary_muscle_id
		%s
		ORDER BY e.name
		LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2)
	args = append(args, p.PageSize, (p.Page-1)*p.PageSize)

	exercises, err := s.queryExercises(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return exercises, total, nil
}

// GetAll returns the whole catalog ordered by name with muscle projections.
func (s *ExerciseStore) GetAll(ctx context.Context) ([]domain.Exercise, error) {
	return s.queryExercises(ctx, `
		SELECT e.id, e.name, e.description, e.muscle_group_id, e.primary_muscle_id,
		       g.name, m.name
		FROM exercises e
		JOIN muscle_groups g ON g.id = e.muscle_group_id
		JOIN muscles m ON m.id = e.primary_muscle_id
		ORDER BY e.name`)
}

// GetByID returns one exercise with muscle projections, or ErrNotFound.
func (s *ExerciseStore) GetByID(ctx context.Context, id int64) (*domain.Exercise, error) {
	exercises, err := s.queryExercises(ctx, `
		SELECT e.id, e.name, e.description, e.muscle_group_id, e.primary_muscle_id,
		       g.name, m.name
		FROM exercises e
		JOIN muscle_groups g ON g.id = e.muscle_group_id
		JOIN muscles m ON m.id = e.primary_muscle_id
		WHERE e.id = $1`, id)
	if err != nil {
		return nil, err
	}
	if len(exercises) == 0 {
		return nil, ErrNotFound
	}
	return &exercises[0], nil
}

// Update replaces the description and the full secondary muscle set of an
// existing exercise in one transaction.
func (s *ExerciseStore) Update(ctx context.Context, id int64, description string, secondaryMuscleIDs []int64) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return wrapErr(err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE exercises SET description = $2 WHERE id = $1`, id, description)
	if err != nil {
		return wrapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	if _, err := tx.Exec(ctx,
		`DELETE FROM exercise_secondary_muscles WHERE exercise_id = $1`, id); err != nil {
		return wrapErr(err)
	}
	for _, muscleID := range secondaryMuscleIDs {
		_, err := tx.Exec(ctx,
			`INSERT INTO exercise_secondary_muscles (exercise_id, muscle_id) VALUES ($1, $2)`,
			id, muscleID)
		if err != nil {
			return wrapErr(err)
		}
	}
	return wrapErr(tx.Commit(ctx))
}

// queryExercises scans rows shaped like the shared projection select and
// attaches secondary muscles in a second query.
func (s *ExerciseStore) queryExercises(ctx context.Context, query string, args ...any) ([]domain.Exercise, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr(err)
	}
	defer rows.Close()

	var (
		exercises []domain.Exercise
		ids       []int64
		byID      = map[int64]*domain.Exercise{}
	)
	for rows.Next() {
		var (
			e           domain.Exercise
			groupName   string
			primaryName string
		)
		if err := rows.Scan(&e.ID, &e.Name, &e.Description, &e.MuscleGroupID,
			&e.PrimaryMuscleID, &groupName, &primaryName); err != nil {
			return nil, wrapErr(err)
		}
		e.Group = &domain.MuscleGroup{ID: e.MuscleGroupID, Name: groupName}
		e.PrimaryMuscle = &domain.Muscle{ID: e.PrimaryMuscleID, Name: primaryName}
		exercises = append(exercises, e)
		ids = append(ids, e.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(err)
	}
	if len(exercises) == 0 {
		return exercises, nil
	}
	for i := range exercises {
		byID[exercises[i].ID] = &exercises[i]
	}

	secRows, err := s.pool.Query(ctx, `
		SELECT esm.exercise_id, m.id, m.name
		FROM exercise_secondary_muscles esm
		JOIN muscles m ON m.id = esm.muscle_id
		WHERE esm.exercise_id = ANY($1)
		ORDER BY m.name`, ids)
	if err != nil {
		return nil, wrapErr(err)
	}
	defer secRows.Close()

	for secRows.Next() {
		var (
			exerciseID int64
			m          domain.Muscle
		)
		if err := secRows.Scan(&exerciseID, &m.ID, &m.Name); err != nil {
			return nil, wrapErr(err)
		}
		e := byID[exerciseID]
		e.SecondaryMuscleIDs = append(e.SecondaryMuscleIDs, m.ID)
		e.SecondaryMuscles = append(e.SecondaryMuscles, m)
	}
	return exercises, wrapErr(secRows.Err())
}
