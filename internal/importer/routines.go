package importer

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lsemperez/gymtrack/internal/domain"
	"github.com/lsemperez/gymtrack/internal/logging"
)

// ImportRoutines persists candidate routine trees all-or-nothing. If any
// referenced exercise name fails to resolve, or the final commit fails, the
// call is a critical failure and zero rows are persisted.
func (imp *Importer) ImportRoutines(ctx context.Context, payloads []RoutinePayload) *ImportResult {
	start := time.Now()
	log := logging.WithFields(ctx, "import_id", uuid.NewString(), "kind", "routines")
	res := NewResult(len(payloads))
	defer func() { res.Duration = time.Since(start) }()

	log.Info("routine import started", "routines", len(payloads))

	names := collectExerciseNames(payloads)
	resolved, err := imp.exercises.IDsByName(ctx, names)
	if err != nil {
		log.Error("resolving exercise names failed", "error", err)
		res.CriticalFailure = true
		res.AddGlobalError("", fmt.Sprintf("could not resolve exercise names: %v", err))
		return res
	}

	missing := false
	for _, name := range names {
		if _, ok := resolved[name]; !ok {
			missing = true
			res.AddGlobalError(name, fmt.Sprintf("exercise %q does not exist", name))
		}
	}
	if missing {
		log.Warn("routine import aborted, unresolved exercise references",
			"errors", len(res.Errors))
		res.CriticalFailure = true
		return res
	}

	routines := make([]*domain.Routine, 0, len(payloads))
	for _, p := range payloads {
		routines = append(routines, buildRoutine(p, resolved, res))
	}

	if err := imp.routines.CreateAll(ctx, routines); err != nil {
		log.Error("routine commit failed", "error", err)
		res.CriticalFailure = true
		res.AddGlobalError("", fmt.Sprintf("could not persist routines: %v", err))
		return res
	}

	res.RoutinesCreated = len(routines)
	log.Info("routine import finished",
		"created", res.RoutinesCreated,
		"errors", len(res.Errors),
		"elapsed", time.Since(start))
	return res
}

// collectExerciseNames gathers the distinct exercise names referenced
// anywhere in the trees, in first-seen order. Matching is exact; an empty
// name is still a reference and surfaces as unresolved during resolution.
func collectExerciseNames(payloads []RoutinePayload) []string {
	seen := make(map[string]bool)
	var names []string
	for _, r := range payloads {
		for _, w := range r.Weeks {
			for _, d := range w.Days {
				for _, e := range d.Exercises {
					if seen[e.Name] {
						continue
					}
					seen[e.Name] = true
					names = append(names, e.Name)
				}
			}
		}
	}
	return names
}

// buildRoutine walks one tree assigning 1-based sequence numbers from source
// order at every level. A set whose rest duration fails to parse is dropped
// with an error tied to the owning exercise; its siblings survive.
func buildRoutine(p RoutinePayload, resolved map[string]int64, res *ImportResult) *domain.Routine {
	r := &domain.Routine{
		Name:            p.Name,
		Description:     p.Description,
		Difficulty:      p.Difficulty,
		SessionDuration: p.SessionDuration,
		Frequency:       p.Frequency,
		ImageSource:     p.ImageSource,
	}
	for wi, wp := range p.Weeks {
		week := domain.RoutineWeek{WeekNumber: wi + 1, Name: wp.Name}
		for di, dp := range wp.Days {
			day := domain.RoutineDay{DayNumber: di + 1, Name: dp.Name, Notes: dp.Notes}
			for ei, ep := range dp.Exercises {
				ex := domain.RoutineExercise{
					ExerciseID: resolved[ep.Name],
					Position:   ei + 1,
					Name:       ep.Name,
				}
				setNumber := 0
				for _, sp := range ep.Sets {
					rest, err := parseRestDuration(sp.Rest)
					if err != nil {
						res.AddGlobalError(ep.Name, fmt.Sprintf("invalid rest duration %q: %v", sp.Rest, err))
						continue
					}
					kind := sp.Type
					if kind == "" {
						kind = domain.SetNormal
					}
					setNumber++
					ex.Sets = append(ex.Sets, domain.RoutineSet{
						SetNumber:    setNumber,
						Reps:         sp.Reps,
						PercentOneRM: sp.PercentOneRM,
						Rest:         rest,
						Type:         kind,
					})
				}
				day.Exercises = append(day.Exercises, ex)
			}
			week.Days = append(week.Days, day)
		}
		r.Weeks = append(r.Weeks, week)
	}
	return r
}

// parseRestDuration accepts "hh:mm:ss", "mm:ss", and Go duration strings
// ("90s", "1m30s"). Empty text means no rest.
func parseRestDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if d, err := time.ParseDuration(s); err == nil {
		if d < 0 {
			return 0, fmt.Errorf("rest duration must not be negative")
		}
		return d, nil
	}

	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("not a recognized duration format")
	}
	values := make([]int, len(parts))
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 {
			return 0, fmt.Errorf("not a recognized duration format")
		}
		values[i] = n
	}

	var d time.Duration
	if len(values) == 3 {
		d = time.Duration(values[0])*time.Hour +
			time.Duration(values[1])*time.Minute +
			time.Duration(values[2])*time.Second
	} else {
		d = time.Duration(values[0])*time.Minute +
			time.Duration(values[1])*time.Second
	}
	return d, nil
}
