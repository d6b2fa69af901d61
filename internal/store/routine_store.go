package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lsemperez/gymtrack/internal/domain"
)

// RoutineStore persists full routine trees.
type RoutineStore struct {
	pool *pgxpool.Pool
}

func NewRoutineStore(pool *pgxpool.Pool) *RoutineStore {
	return &RoutineStore{pool: pool}
}

// CreateAll persists every routine tree in a single transaction. Either the
// whole forest commits or nothing does. Assigned IDs are written back into the
// entities.
func (s *RoutineStore) CreateAll(ctx context.Context, routines []*domain.Routine) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return wrapErr(err)
	}
	defer tx.Rollback(ctx)

	for _, r := range routines {
		if err := insertRoutine(ctx, tx, r); err != nil {
			return err
		}
	}
	return wrapErr(tx.Commit(ctx))
}

func insertRoutine(ctx context.Context, tx pgx.Tx, r *domain.Routine) error {
	err := tx.QueryRow(ctx, `
		INSERT INTO routines (name, description, difficulty, session_duration, frequency, image_source)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		r.Name, r.Description, r.Difficulty, r.SessionDuration, r.Frequency, r.ImageSource,
	).Scan(&r.ID)
	if err != nil {
		return wrapErr(err)
	}

	for wi := range r.Weeks {
		week := &r.Weeks[wi]
		week.RoutineID = r.ID
		err := tx.QueryRow(ctx, `
			INSERT INTO routine_weeks (routine_id, week_number, name)
			VALUES ($1, $2, $3) RETURNING id`,
			week.RoutineID, week.WeekNumber, week.Name,
		).Scan(&week.ID)
		if err != nil {
			return wrapErr(err)
		}

		for di := range week.Days {
			day := &week.Days[di]
			day.WeekID = week.ID
			err := tx.QueryRow(ctx, `
				INSERT INTO routine_days (week_id, day_number, name, notes)
				VALUES ($1, $2, $3, $4) RETURNING id`,
				day.WeekID, day.DayNumber, day.Name, day.Notes,
			).Scan(&day.ID)
			if err != nil {
				return wrapErr(err)
			}

			for ei := range day.Exercises {
				ex := &day.Exercises[ei]
				ex.DayID = day.ID
				err := tx.QueryRow(ctx, `
					INSERT INTO routine_exercises (day_id, exercise_id, position)
					VALUES ($1, $2, $3) RETURNING id`,
					ex.DayID, ex.ExerciseID, ex.Position,
				).Scan(&ex.ID)
				if err != nil {
					return wrapErr(err)
				}

				for si := range ex.Sets {
					set := &ex.Sets[si]
					set.RoutineExerciseID = ex.ID
					err := tx.QueryRow(ctx, `
						INSERT INTO routine_sets (routine_exercise_id, set_number, reps, percent_one_rm, rest_ns, set_type)
						VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
						set.RoutineExerciseID, set.SetNumber, set.Reps, set.PercentOneRM,
						int64(set.Rest), string(set.Type),
					).Scan(&set.ID)
					if err != nil {
						return wrapErr(err)
					}
				}
			}
		}
	}
	return nil
}

// List returns one page of routine metadata ordered by name plus the total
// row count. Trees are not loaded.
func (s *RoutineStore) List(ctx context.Context, page, pageSize int) ([]domain.Routine, int, error) {
	var total int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM routines`).Scan(&total); err != nil {
		return nil, 0, wrapErr(err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, name, description, difficulty, session_duration, frequency, image_source
		FROM routines
		ORDER BY name
		LIMIT $1 OFFSET $2`, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, wrapErr(err)
	}
	defer rows.Close()

	var routines []domain.Routine
	for rows.Next() {
		var r domain.Routine
		if err := rows.Scan(&r.ID, &r.Name, &r.Description, &r.Difficulty,
			&r.SessionDuration, &r.Frequency, &r.ImageSource); err != nil {
			return nil, 0, wrapErr(err)
		}
		routines = append(routines, r)
	}
	return routines, total, wrapErr(rows.Err())
}

// GetByID loads a full routine tree ordered by sequence numbers at every
// level, or ErrNotFound.
func (s *RoutineStore) GetByID(ctx context.Context, id int64) (*domain.Routine, error) {
	var r domain.Routine
	err := s.pool.QueryRow(ctx, `
		SELECT id, name, description, difficulty, session_duration, frequency, image_source
		FROM routines WHERE id = $1`, id,
	).Scan(&r.ID, &r.Name, &r.Description, &r.Difficulty,
		&r.SessionDuration, &r.Frequency, &r.ImageSource)
	if err != nil {
		return nil, wrapErr(err)
	}

	weekRows, err := s.pool.Query(ctx, `
		SELECT id, week_number, name FROM routine_weeks
		WHERE routine_id = $1 ORDER BY week_number`, id)
	if err != nil {
		return nil, wrapErr(err)
	}
	defer weekRows.Close()

	weekByID := map[int64]*domain.RoutineWeek{}
	var weekIDs []int64
	for weekRows.Next() {
		var w domain.RoutineWeek
		w.RoutineID = r.ID
		if err := weekRows.Scan(&w.ID, &w.WeekNumber, &w.Name); err != nil {
			return nil, wrapErr(err)
		}
		r.Weeks = append(r.Weeks, w)
		weekIDs = append(weekIDs, w.ID)
	}
	if err := weekRows.Err(); err != nil {
		return nil, wrapErr(err)
	}
	for i := range r.Weeks {
		weekByID[r.Weeks[i].ID] = &r.Weeks[i]
	}

	dayRows, err := s.pool.Query(ctx, `
		SELECT id, week_id, day_number, name, notes FROM routine_days
		WHERE week_id = ANY($1) ORDER BY day_number`, weekIDs)
	if err != nil {
		return nil, wrapErr(err)
	}
	defer dayRows.Close()

	var days []domain.RoutineDay
	for dayRows.Next() {
		var d domain.RoutineDay
		if err := dayRows.Scan(&d.ID, &d.WeekID, &d.DayNumber, &d.Name, &d.Notes); err != nil {
			return nil, wrapErr(err)
		}
		days = append(days, d)
	}
	if err := dayRows.Err(); err != nil {
		return nil, wrapErr(err)
	}
	for _, d := range days {
		week := weekByID[d.WeekID]
		week.Days = append(week.Days, d)
	}

	// Pointers into the Days slices are stable once every day is attached.
	dayByID := map[int64]*domain.RoutineDay{}
	var dayIDs []int64
	for _, week := range weekByID {
		for i := range week.Days {
			dayByID[week.Days[i].ID] = &week.Days[i]
			dayIDs = append(dayIDs, week.Days[i].ID)
		}
	}

	exRows, err := s.pool.Query(ctx, `
		SELECT re.id, re.day_id, re.exercise_id, re.position, e.name
		FROM routine_exercises re
		JOIN exercises e ON e.id = re.exercise_id
		WHERE re.day_id = ANY($1) ORDER BY re.position`, dayIDs)
	if err != nil {
		return nil, wrapErr(err)
	}
	defer exRows.Close()

	var routineExercises []domain.RoutineExercise
	for exRows.Next() {
		var re domain.RoutineExercise
		if err := exRows.Scan(&re.ID, &re.DayID, &re.ExerciseID, &re.Position, &re.Name); err != nil {
			return nil, wrapErr(err)
		}
		routineExercises = append(routineExercises, re)
	}
	if err := exRows.Err(); err != nil {
		return nil, wrapErr(err)
	}
	for _, re := range routineExercises {
		day := dayByID[re.DayID]
		day.Exercises = append(day.Exercises, re)
	}

	exByID := map[int64]*domain.RoutineExercise{}
	var exIDs []int64
	for _, day := range dayByID {
		for i := range day.Exercises {
			exByID[day.Exercises[i].ID] = &day.Exercises[i]
			exIDs = append(exIDs, day.Exercises[i].ID)
		}
	}

	setRows, err := s.pool.Query(ctx, `
		SELECT id, routine_exercise_id, set_number, reps, percent_one_rm, rest_ns, set_type
		FROM routine_sets
		WHERE routine_exercise_id = ANY($1) ORDER BY set_number`, exIDs)
	if err != nil {
		return nil, wrapErr(err)
	}
	defer setRows.Close()

	for setRows.Next() {
		var (
			set    domain.RoutineSet
			restNs int64
			kind   string
		)
		if err := setRows.Scan(&set.ID, &set.RoutineExerciseID, &set.SetNumber,
			&set.Reps, &set.PercentOneRM, &restNs, &kind); err != nil {
			return nil, wrapErr(err)
		}
		set.Rest = time.Duration(restNs)
		set.Type = domain.SetType(kind)
		ex := exByID[set.RoutineExerciseID]
		ex.Sets = append(ex.Sets, set)
	}
	return &r, wrapErr(setRows.Err())
}
