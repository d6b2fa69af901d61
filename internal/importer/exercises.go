package importer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lsemperez/gymtrack/internal/domain"
	"github.com/lsemperez/gymtrack/internal/logging"
	"github.com/lsemperez/gymtrack/internal/store"
)

// stagedExercise pairs a validated entity with its original payload index so
// persistence failures can be attributed to the right record.
type stagedExercise struct {
	index    int
	exercise *domain.Exercise
}

// ImportExercises runs the full exercise pipeline: reference resolution,
// per-record reconciliation, then chunked persistence with per-record
// fallback. It always returns a result; recoverable problems never surface
// as an error to the caller.
func (imp *Importer) ImportExercises(ctx context.Context, payloads []ExercisePayload) *ImportResult {
	start := time.Now()
	log := logging.WithFields(ctx, "import_id", uuid.NewString(), "kind", "exercises")
	res := NewResult(len(payloads))
	defer func() { res.Duration = time.Since(start) }()

	log.Info("exercise import started", "records", len(payloads))

	existing, err := imp.exercises.ExistingByName(ctx)
	if err != nil {
		log.Error("loading exercise snapshot failed", "error", err)
		res.CriticalFailure = true
		res.AddGlobalError("", fmt.Sprintf("could not load existing exercises: %v", err))
		return res
	}
	groupSnap, err := imp.groups.AllByName(ctx)
	if err != nil {
		log.Error("loading muscle group snapshot failed", "error", err)
		res.CriticalFailure = true
		res.AddGlobalError("", fmt.Sprintf("could not load muscle groups: %v", err))
		return res
	}
	muscleSnap, err := imp.muscles.AllByName(ctx)
	if err != nil {
		log.Error("loading muscle snapshot failed", "error", err)
		res.CriticalFailure = true
		res.AddGlobalError("", fmt.Sprintf("could not load muscles: %v", err))
		return res
	}

	var groupNames, muscleNames []string
	for _, p := range payloads {
		groupNames = append(groupNames, p.MuscleGroup)
		muscleNames = append(muscleNames, p.PrimaryMuscle)
		muscleNames = append(muscleNames, p.SecondaryMuscles...)
	}
	imp.resolveMuscleGroups(ctx, log, groupNames, groupSnap, res)
	imp.resolveMuscles(ctx, log, muscleNames, muscleSnap, res)

	staged := imp.reconcileExercises(ctx, log, payloads, groupSnap, muscleSnap, existing, res)
	imp.persistExercises(ctx, log, staged, res)

	log.Info("exercise import finished",
		"created", res.ExercisesCreated,
		"omitted", res.ExercisesOmitted,
		"duplicates", res.DuplicatesOmitted,
		"errors", len(res.Errors),
		"elapsed", time.Since(start))
	return res
}

// reconcileExercises validates candidates in order and returns the staged
// list. The existing snapshot is extended in memory as soon as a record
// passes validation so later records with the same name are caught here, not
// by storage constraints.
func (imp *Importer) reconcileExercises(
	ctx context.Context,
	log *slog.Logger,
	payloads []ExercisePayload,
	groupSnap map[string]*domain.MuscleGroup,
	muscleSnap map[string]*domain.Muscle,
	existing map[string]*domain.Exercise,
	res *ImportResult,
) []stagedExercise {
	seen := make(map[string]bool, len(payloads))
	var staged []stagedExercise

	for i, p := range payloads {
		name := strings.TrimSpace(p.Name)
		key := strings.ToLower(name)

		if name != "" && seen[key] {
			res.DuplicatesOmitted++
			res.AddWarning(fmt.Sprintf("record %d: duplicate exercise %q omitted", i, name))
			continue
		}
		if name == "" {
			res.AddError(i, "", "exercise name is required")
			continue
		}
		seen[key] = true

		group := strings.TrimSpace(p.MuscleGroup)
		if group == "" {
			res.AddError(i, name, "muscle group is required")
			continue
		}
		primary := strings.TrimSpace(p.PrimaryMuscle)
		if primary == "" {
			res.AddError(i, name, "primary muscle is required")
			continue
		}

		g, ok := groupSnap[strings.ToLower(group)]
		if !ok {
			res.AddError(i, name, fmt.Sprintf("muscle group %q could not be resolved", group))
			continue
		}
		pm, ok := muscleSnap[strings.ToLower(primary)]
		if !ok {
			res.AddError(i, name, fmt.Sprintf("muscle %q could not be resolved", primary))
			continue
		}

		if _, ok := existing[key]; ok {
			res.ExercisesOmitted++
			continue
		}

		e := buildExercise(name, p, g, pm, muscleSnap)
		if err := imp.validateStaged(ctx, e); err != nil {
			log.Warn("staged exercise failed pre-commit validation", "name", name, "error", err)
			res.AddError(i, name, err.Error())
			continue
		}

		existing[key] = e
		staged = append(staged, stagedExercise{index: i, exercise: e})
	}
	return staged
}

// buildExercise constructs the staged entity. The description defaults from
// the primary muscle when absent. Secondary muscles resolve by name; names
// matching the primary or repeating an earlier secondary are dropped without
// an error.
func buildExercise(name string, p ExercisePayload, g *domain.MuscleGroup, pm *domain.Muscle, muscles map[string]*domain.Muscle) *domain.Exercise {
	description := strings.TrimSpace(p.Description)
	if description == "" {
		description = "Exercise for " + pm.Name
	}
	e := &domain.Exercise{
		Name:            name,
		Description:     description,
		MuscleGroupID:   g.ID,
		PrimaryMuscleID: pm.ID,
		Group:           g,
		PrimaryMuscle:   pm,
	}
	added := make(map[int64]bool)
	for _, secondary := range p.SecondaryMuscles {
		m, ok := muscles[strings.ToLower(strings.TrimSpace(secondary))]
		if !ok {
			continue
		}
		if m.ID == pm.ID || added[m.ID] {
			continue
		}
		added[m.ID] = true
		e.SecondaryMuscleIDs = append(e.SecondaryMuscleIDs, m.ID)
		e.SecondaryMuscles = append(e.SecondaryMuscles, *m)
	}
	return e
}

// validateStaged re-checks a staged entity against live storage just before
// it joins the persistence list. Validation stops at the first violation.
func (imp *Importer) validateStaged(ctx context.Context, e *domain.Exercise) error {
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("staged exercise has an empty name")
	}
	if e.MuscleGroupID <= 0 {
		return fmt.Errorf("exercise %q has no muscle group assigned", e.Name)
	}
	if e.PrimaryMuscleID <= 0 {
		return fmt.Errorf("exercise %q has no primary muscle assigned", e.Name)
	}

	exists, err := imp.exercises.ExistsByName(ctx, e.Name)
	if err != nil {
		return fmt.Errorf("checking exercise name %q: %w", e.Name, err)
	}
	if exists {
		return fmt.Errorf("an exercise named %q already exists", e.Name)
	}

	ok, err := imp.groups.ExistsByID(ctx, e.MuscleGroupID)
	if err != nil {
		return fmt.Errorf("checking muscle group %d: %w", e.MuscleGroupID, err)
	}
	if !ok {
		return fmt.Errorf("muscle group %d does not exist", e.MuscleGroupID)
	}

	ok, err = imp.muscles.ExistsByID(ctx, e.PrimaryMuscleID)
	if err != nil {
		return fmt.Errorf("checking muscle %d: %w", e.PrimaryMuscleID, err)
	}
	if !ok {
		return fmt.Errorf("muscle %d does not exist", e.PrimaryMuscleID)
	}

	if len(e.SecondaryMuscleIDs) > 0 {
		known, err := imp.muscles.ExistingIDs(ctx, e.SecondaryMuscleIDs)
		if err != nil {
			return fmt.Errorf("checking secondary muscles: %w", err)
		}
		for _, id := range e.SecondaryMuscleIDs {
			if !known[id] {
				return fmt.Errorf("secondary muscle %d does not exist", id)
			}
		}
	}

	seen := make(map[int64]bool, len(e.SecondaryMuscleIDs))
	for _, id := range e.SecondaryMuscleIDs {
		if id == e.PrimaryMuscleID {
			return fmt.Errorf("exercise %q lists its primary muscle as secondary", e.Name)
		}
		if seen[id] {
			return fmt.Errorf("exercise %q repeats secondary muscle %d", e.Name, id)
		}
		seen[id] = true
	}

	if e.Group != nil && e.Group.ID != e.MuscleGroupID {
		return fmt.Errorf("exercise %q muscle group reference is inconsistent", e.Name)
	}
	if e.PrimaryMuscle != nil && e.PrimaryMuscle.ID != e.PrimaryMuscleID {
		return fmt.Errorf("exercise %q primary muscle reference is inconsistent", e.Name)
	}
	return nil
}

// persistExercises commits staged entities in fixed-size chunks. A
// constraint-class chunk failure triggers the per-record fallback tier so the
// failing record is attributed precisely; sibling chunks are unaffected
// either way.
func (imp *Importer) persistExercises(ctx context.Context, log *slog.Logger, staged []stagedExercise, res *ImportResult) {
	for from := 0; from < len(staged); from += imp.chunkSize {
		to := from + imp.chunkSize
		if to > len(staged) {
			to = len(staged)
		}
		chunk := staged[from:to]

		entities := make([]*domain.Exercise, len(chunk))
		for i, s := range chunk {
			entities[i] = s.exercise
		}

		err := imp.exercises.CreateBatch(ctx, entities)
		if err == nil {
			res.ExercisesCreated += len(chunk)
			continue
		}

		ce, ok := store.AsConstraintError(err)
		if !ok {
			log.Error("chunk commit failed", "size", len(chunk), "error", err)
			for _, s := range chunk {
				res.AddError(s.index, s.exercise.Name, fmt.Sprintf("unexpected storage failure: %v", err))
			}
			continue
		}

		log.Warn("chunk commit hit a constraint, retrying records individually",
			"size", len(chunk), "constraint_kind", ce.Kind.String(), "constraint", ce.Constraint)
		for _, s := range chunk {
			if err := imp.exercises.Create(ctx, s.exercise); err != nil {
				log.Warn("record rejected on individual retry", "name", s.exercise.Name, "error", err)
				res.AddError(s.index, s.exercise.Name, storageErrorMessage(s.exercise.Name, err))
				continue
			}
			res.ExercisesCreated++
		}
	}
}

// storageErrorMessage translates a storage failure into the message recorded
// against a single rejected record.
func storageErrorMessage(name string, err error) string {
	ce, ok := store.AsConstraintError(err)
	if !ok {
		return fmt.Sprintf("unexpected storage failure: %v", err)
	}
	switch ce.Kind {
	case store.ConstraintUnique:
		return fmt.Sprintf("an exercise named %q already exists", name)
	case store.ConstraintForeignKey:
		return "a referenced muscle or muscle group does not exist"
	case store.ConstraintCheck:
		return fmt.Sprintf("a value was rejected by constraint %s", ce.Constraint)
	default:
		return fmt.Sprintf("storage rejected the record (code %s)", ce.Code)
	}
}
