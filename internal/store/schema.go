package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema holds the DDL applied on startup. Statements are idempotent so the
// server can run against an existing database.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS muscle_groups (
		id   BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		CONSTRAINT muscle_groups_name_key UNIQUE (name)
	)`,

	`CREATE TABLE IF NOT EXISTS muscles (
		id   BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		CONSTRAINT muscles_name_key UNIQUE (name)
	)`,

	`CREATE TABLE IF NOT EXISTS exercises (
		id                BIGSERIAL PRIMARY KEY,
		name              TEXT NOT NULL,
		description       TEXT NOT NULL DEFAULT '',
		muscle_group_id   BIGINT NOT NULL,
		primary_muscle_id BIGINT NOT NULL,
		CONSTRAINT exercises_muscle_group_id_fkey
			FOREIGN KEY (muscle_group_id) REFERENCES muscle_groups (id),
		CONSTRAINT exercises_primary_muscle_id_fkey
			FOREIGN KEY (primary_muscle_id) REFERENCES muscles (id)
	)`,

	// Name uniqueness is case-insensitive for lookups but names keep their
	// original casing.
	`CREATE UNIQUE INDEX IF NOT EXISTS exercises_name_lower_key
		ON exercises (LOWER(name))`,

	`CREATE TABLE IF NOT EXISTS exercise_secondary_muscles (
		exercise_id BIGINT NOT NULL,
		muscle_id   BIGINT NOT NULL,
		PRIMARY KEY (exercise_id, muscle_id),
		CONSTRAINT exercise_secondary_muscles_exercise_id_fkey
			FOREIGN KEY (exercise_id) REFERENCES exercises (id) ON DELETE CASCADE,
		CONSTRAINT exercise_secondary_muscles_muscle_id_fkey
			FOREIGN KEY (muscle_id) REFERENCES muscles (id)
	)`,

	`CREATE TABLE IF NOT EXISTS routines (
		id               BIGSERIAL PRIMARY KEY,
		name             TEXT NOT NULL,
		description      TEXT NOT NULL DEFAULT '',
		difficulty       TEXT NOT NULL DEFAULT '',
		session_duration TEXT NOT NULL DEFAULT '',
		frequency        TEXT NOT NULL DEFAULT '',
		image_source     TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS routine_weeks (
		id          BIGSERIAL PRIMARY KEY,
		routine_id  BIGINT NOT NULL,
		week_number INT NOT NULL,
		name        TEXT NOT NULL DEFAULT '',
		CONSTRAINT routine_weeks_routine_id_fkey
			FOREIGN KEY (routine_id) REFERENCES routines (id) ON DELETE CASCADE,
		CONSTRAINT routine_weeks_week_number_check CHECK (week_number >= 1)
	)`,

	`CREATE TABLE IF NOT EXISTS routine_days (
		id         BIGSERIAL PRIMARY KEY,
		week_id    BIGINT NOT NULL,
		day_number INT NOT NULL,
		name       TEXT NOT NULL DEFAULT '',
		notes      TEXT NOT NULL DEFAULT '',
		CONSTRAINT routine_days_week_id_fkey
			FOREIGN KEY (week_id) REFERENCES routine_weeks (id) ON DELETE CASCADE,
		CONSTRAINT routine_days_day_number_check CHECK (day_number >= 1)
	)`,

	`CREATE TABLE IF NOT EXISTS routine_exercises (
		id          BIGSERIAL PRIMARY KEY,
		day_id      BIGINT NOT NULL,
		exercise_id BIGINT NOT NULL,
		position    INT NOT NULL,
		CONSTRAINT routine_exercises_day_id_fkey
			FOREIGN KEY (day_id) REFERENCES routine_days (id) ON DELETE CASCADE,
		CONSTRAINT routine_exercises_exercise_id_fkey
			FOREIGN KEY (exercise_id) REFERENCES exercises (id),
		CONSTRAINT routine_exercises_position_check CHECK (position >= 1)
	)`,

	`CREATE TABLE IF NOT EXISTS routine_sets (
		id                  BIGSERIAL PRIMARY KEY,
		routine_exercise_id BIGINT NOT NULL,
		set_number          INT NOT NULL,
		reps                INT,
		percent_one_rm      INT,
		rest_ns             BIGINT NOT NULL DEFAULT 0,
		set_type            TEXT NOT NULL DEFAULT 'Normal',
		CONSTRAINT routine_sets_routine_exercise_id_fkey
			FOREIGN KEY (routine_exercise_id) REFERENCES routine_exercises (id) ON DELETE CASCADE,
		CONSTRAINT routine_sets_set_number_check CHECK (set_number >= 1),
		CONSTRAINT routine_sets_reps_check CHECK (reps IS NULL OR reps >= 0),
		CONSTRAINT routine_sets_percent_one_rm_check
			CHECK (percent_one_rm IS NULL OR (percent_one_rm >= 0 AND percent_one_rm <= 100)),
		CONSTRAINT routine_sets_set_type_check CHECK (set_type IN
			('Normal', 'DropSet', 'Cluster', 'MyoReps', 'Negatives', 'MaxRM'))
	)`,
}

// EnsureSchema applies the DDL. Called once from main before serving.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
