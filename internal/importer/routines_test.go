package importer

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func seedExercises(t *testing.T, f *fakeStore, names ...string) {
	t.Helper()
	imp := newTestImporter(f)
	payloads := make([]ExercisePayload, len(names))
	for i, name := range names {
		payloads[i] = validPayload(name)
	}
	res := imp.ImportExercises(context.Background(), payloads)
	if res.ExercisesCreated != len(names) {
		t.Fatalf("seeding created %d exercises, want %d: %+v",
			res.ExercisesCreated, len(names), res.Errors)
	}
}

func TestImportRoutinesUnresolvedName(t *testing.T) {
	f := newFakeStore()
	seedExercises(t, f, "Squat", "Bench Press")
	imp := newTestImporter(f)

	res := imp.ImportRoutines(context.Background(), []RoutinePayload{{
		Name: "Strength Block",
		Weeks: []WeekPayload{{
			Days: []DayPayload{{
				Exercises: []RoutineExercisePayload{
					{Name: "Squat"},
					{Name: "Zercher Squat"}, // not in the catalog
					{Name: "Bench Press"},
				},
			}},
		}},
	}})

	if !res.CriticalFailure {
		t.Error("expected critical failure")
	}
	if res.RoutinesCreated != 0 {
		t.Errorf("routines created = %d, want 0", res.RoutinesCreated)
	}
	if len(f.routines) != 0 {
		t.Errorf("%d routines persisted, want 0", len(f.routines))
	}
	if len(res.Errors) != 1 {
		t.Fatalf("errors = %d, want 1: %+v", len(res.Errors), res.Errors)
	}
	if res.Errors[0].Name != "Zercher Squat" {
		t.Errorf("error names %q, want %q", res.Errors[0].Name, "Zercher Squat")
	}
}

func TestImportRoutinesEmptyExerciseName(t *testing.T) {
	// An empty name is an unresolvable reference like any other, not something
	// to skip. Nothing may be persisted with a zero exercise ID.
	f := newFakeStore()
	seedExercises(t, f, "Squat")
	imp := newTestImporter(f)

	res := imp.ImportRoutines(context.Background(), []RoutinePayload{{
		Name: "Block A",
		Weeks: []WeekPayload{{Days: []DayPayload{{
			Exercises: []RoutineExercisePayload{
				{Name: "Squat"},
				{Name: ""},
			},
		}}}},
	}})

	if !res.CriticalFailure {
		t.Error("expected critical failure")
	}
	if res.RoutinesCreated != 0 {
		t.Errorf("routines created = %d, want 0", res.RoutinesCreated)
	}
	if len(f.routines) != 0 {
		t.Errorf("%d routines persisted, want 0", len(f.routines))
	}
	if len(res.Errors) != 1 {
		t.Fatalf("errors = %d, want 1: %+v", len(res.Errors), res.Errors)
	}
	if res.Errors[0].Name != "" {
		t.Errorf("error names %q, want the empty reference", res.Errors[0].Name)
	}
}

func TestImportRoutinesAssignsSequenceNumbers(t *testing.T) {
	f := newFakeStore()
	seedExercises(t, f, "Squat", "Bench Press")
	imp := newTestImporter(f)

	res := imp.ImportRoutines(context.Background(), []RoutinePayload{{
		Name: "Linear Progression",
		Weeks: []WeekPayload{
			{Days: []DayPayload{
				{Exercises: []RoutineExercisePayload{
					{Name: "Squat", Sets: []SetPayload{{Rest: "02:00"}, {Rest: "90s"}}},
					{Name: "Bench Press", Sets: []SetPayload{{Rest: ""}}},
				}},
				{Exercises: []RoutineExercisePayload{{Name: "Squat"}}},
			}},
			{Days: []DayPayload{{Exercises: []RoutineExercisePayload{{Name: "Bench Press"}}}}},
		},
	}})

	if res.CriticalFailure || res.HasErrors() {
		t.Fatalf("unexpected failure: %+v", res.Errors)
	}
	if res.RoutinesCreated != 1 || len(f.routines) != 1 {
		t.Fatalf("routines created = %d (persisted %d), want 1", res.RoutinesCreated, len(f.routines))
	}

	r := f.routines[0]
	for wi, w := range r.Weeks {
		if w.WeekNumber != wi+1 {
			t.Errorf("week %d has number %d", wi, w.WeekNumber)
		}
		for di, d := range w.Days {
			if d.DayNumber != di+1 {
				t.Errorf("day %d has number %d", di, d.DayNumber)
			}
			for ei, e := range d.Exercises {
				if e.Position != ei+1 {
					t.Errorf("exercise %d has position %d", ei, e.Position)
				}
				for si, set := range e.Sets {
					if set.SetNumber != si+1 {
						t.Errorf("set %d has number %d", si, set.SetNumber)
					}
				}
			}
		}
	}

	sets := r.Weeks[0].Days[0].Exercises[0].Sets
	if len(sets) != 2 {
		t.Fatalf("squat sets = %d, want 2", len(sets))
	}
	if sets[0].Rest != 2*time.Minute {
		t.Errorf("set 1 rest = %v, want 2m", sets[0].Rest)
	}
	if sets[1].Rest != 90*time.Second {
		t.Errorf("set 2 rest = %v, want 90s", sets[1].Rest)
	}
}

func TestImportRoutinesDropsUnparseableSet(t *testing.T) {
	f := newFakeStore()
	seedExercises(t, f, "Squat")
	imp := newTestImporter(f)

	res := imp.ImportRoutines(context.Background(), []RoutinePayload{{
		Name: "Block A",
		Weeks: []WeekPayload{{Days: []DayPayload{{
			Exercises: []RoutineExercisePayload{{
				Name: "Squat",
				Sets: []SetPayload{
					{Rest: "01:00"},
					{Rest: "not-a-duration"},
					{Rest: "01:30"},
				},
			}},
		}}}},
	}})

	if res.CriticalFailure {
		t.Fatalf("unexpected critical failure: %+v", res.Errors)
	}
	if res.RoutinesCreated != 1 {
		t.Fatalf("routines created = %d, want 1", res.RoutinesCreated)
	}
	if len(res.Errors) != 1 {
		t.Fatalf("errors = %d, want 1: %+v", len(res.Errors), res.Errors)
	}
	if res.Errors[0].Name != "Squat" {
		t.Errorf("error tied to %q, want the owning exercise", res.Errors[0].Name)
	}

	sets := f.routines[0].Weeks[0].Days[0].Exercises[0].Sets
	if len(sets) != 2 {
		t.Fatalf("persisted sets = %d, want 2", len(sets))
	}
	if sets[0].SetNumber != 1 || sets[1].SetNumber != 2 {
		t.Errorf("surviving sets numbered %d, %d; want contiguous 1, 2",
			sets[0].SetNumber, sets[1].SetNumber)
	}
}

func TestImportRoutinesCommitFailureIsCritical(t *testing.T) {
	f := newFakeStore()
	seedExercises(t, f, "Squat")
	f.createAllErr = fmt.Errorf("connection reset")
	imp := newTestImporter(f)

	res := imp.ImportRoutines(context.Background(), []RoutinePayload{{
		Name: "Block A",
		Weeks: []WeekPayload{{Days: []DayPayload{{
			Exercises: []RoutineExercisePayload{{Name: "Squat"}},
		}}}},
	}})

	if !res.CriticalFailure {
		t.Error("expected critical failure")
	}
	if res.RoutinesCreated != 0 {
		t.Errorf("routines created = %d, want 0", res.RoutinesCreated)
	}
}

func TestParseRestDuration(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{in: "", want: 0},
		{in: "01:30", want: time.Minute + 30*time.Second},
		{in: "00:01:30", want: time.Minute + 30*time.Second},
		{in: "1:00:00", want: time.Hour},
		{in: "90s", want: 90 * time.Second},
		{in: "1m30s", want: time.Minute + 30*time.Second},
		{in: " 02:00 ", want: 2 * time.Minute},
		{in: "not-a-duration", wantErr: true},
		{in: "1:xx", wantErr: true},
		{in: "1:2:3:4", wantErr: true},
		{in: "-30s", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseRestDuration(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseRestDuration(%q) = %v, want error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseRestDuration(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("parseRestDuration(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
