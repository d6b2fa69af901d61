package importer

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

func validPayload(name string) ExercisePayload {
	return ExercisePayload{
		Name:          name,
		MuscleGroup:   "Legs",
		PrimaryMuscle: "Quadriceps",
	}
}

func TestImportExercisesCountsBalance(t *testing.T) {
	f := newFakeStore()
	imp := newTestImporter(f)

	payloads := []ExercisePayload{
		validPayload("Squat"),
		validPayload("squat"),                                // intra-batch duplicate
		{Name: "", MuscleGroup: "Legs", PrimaryMuscle: "Q"},  // missing name
		{Name: "Lunge", MuscleGroup: "", PrimaryMuscle: "Q"}, // missing group
		validPayload("Leg Press"),
	}
	res := imp.ImportExercises(context.Background(), payloads)

	if res.CriticalFailure {
		t.Fatalf("unexpected critical failure: %+v", res.Errors)
	}
	got := res.ExercisesCreated + res.ExercisesOmitted + res.DuplicatesOmitted + len(res.Errors)
	if got != res.TotalProcessed {
		t.Errorf("created+omitted+duplicates+errors = %d, want %d", got, res.TotalProcessed)
	}
	if res.ExercisesCreated != 2 {
		t.Errorf("created = %d, want 2", res.ExercisesCreated)
	}
	if res.DuplicatesOmitted != 1 {
		t.Errorf("duplicates omitted = %d, want 1", res.DuplicatesOmitted)
	}
	if len(res.Errors) != 2 {
		t.Errorf("errors = %d, want 2", len(res.Errors))
	}
}

func TestImportExercisesIdempotent(t *testing.T) {
	f := newFakeStore()
	imp := newTestImporter(f)
	payloads := []ExercisePayload{validPayload("Squat"), validPayload("Deadlift")}

	first := imp.ImportExercises(context.Background(), payloads)
	if first.ExercisesCreated != 2 || first.ExercisesOmitted != 0 {
		t.Fatalf("first import: created=%d omitted=%d, want 2/0",
			first.ExercisesCreated, first.ExercisesOmitted)
	}

	second := imp.ImportExercises(context.Background(), payloads)
	if second.ExercisesCreated != 0 || second.ExercisesOmitted != 2 {
		t.Errorf("second import: created=%d omitted=%d, want 0/2",
			second.ExercisesCreated, second.ExercisesOmitted)
	}
	if second.HasErrors() {
		t.Errorf("second import recorded errors: %+v", second.Errors)
	}
}

func TestImportExercisesCaseWhitespaceDuplicate(t *testing.T) {
	f := newFakeStore()
	imp := newTestImporter(f)

	res := imp.ImportExercises(context.Background(), []ExercisePayload{
		validPayload("Squat"),
		validPayload("  squat "),
	})

	if res.ExercisesCreated != 1 {
		t.Errorf("created = %d, want 1", res.ExercisesCreated)
	}
	if res.ExercisesOmitted != 0 {
		t.Errorf("omitted = %d, want 0", res.ExercisesOmitted)
	}
	if res.DuplicatesOmitted != 1 {
		t.Errorf("duplicates omitted = %d, want 1", res.DuplicatesOmitted)
	}
	if !res.HasWarnings() {
		t.Fatal("expected a duplicate warning")
	}
	if !strings.Contains(res.Warnings[0], "duplicate") {
		t.Errorf("warning %q does not mention the duplicate", res.Warnings[0])
	}
}

func TestImportExercisesChunkFallback(t *testing.T) {
	f := newFakeStore()
	// Second chunk fails at the batch tier; one record in it also fails
	// individually.
	f.failBatchCall = 2
	f.batchErr = uniqueViolation()
	f.failCreateNames["Exercise 150"] = uniqueViolation()

	imp := newTestImporter(f, WithChunkSize(100))

	payloads := make([]ExercisePayload, 250)
	for i := range payloads {
		payloads[i] = validPayload(fmt.Sprintf("Exercise %d", i))
	}
	res := imp.ImportExercises(context.Background(), payloads)

	if want := []int{100, 100, 50}; len(f.batchSizes) != 3 ||
		f.batchSizes[0] != want[0] || f.batchSizes[1] != want[1] || f.batchSizes[2] != want[2] {
		t.Fatalf("batch sizes = %v, want %v", f.batchSizes, want)
	}
	if res.ExercisesCreated != 249 {
		t.Errorf("created = %d, want 249", res.ExercisesCreated)
	}
	if len(res.Errors) != 1 {
		t.Fatalf("errors = %d, want 1: %+v", len(res.Errors), res.Errors)
	}
	e := res.Errors[0]
	if e.Name != "Exercise 150" {
		t.Errorf("error name = %q, want %q", e.Name, "Exercise 150")
	}
	if e.Index == nil || *e.Index != 150 {
		t.Errorf("error index = %v, want 150", e.Index)
	}
	if !strings.Contains(e.Message, "already exists") {
		t.Errorf("error message %q does not mention the name conflict", e.Message)
	}
}

func TestImportExercisesCreatesReferences(t *testing.T) {
	f := newFakeStore()
	imp := newTestImporter(f)

	res := imp.ImportExercises(context.Background(), []ExercisePayload{
		{
			Name:             "Squat",
			MuscleGroup:      "Legs",
			PrimaryMuscle:    "Quadriceps",
			SecondaryMuscles: []string{"Glutes", "glutes", "Quadriceps", "Hamstrings"},
		},
		{
			Name:          "Leg Press",
			MuscleGroup:   "legs", // same group, different case
			PrimaryMuscle: "Quadriceps",
		},
	})

	if res.MuscleGroupsCreated != 1 {
		t.Errorf("muscle groups created = %d, want 1", res.MuscleGroupsCreated)
	}
	if res.MusclesCreated != 3 {
		t.Errorf("muscles created = %d, want 3", res.MusclesCreated)
	}

	squat := f.exercises["squat"]
	if squat == nil {
		t.Fatal("Squat was not persisted")
	}
	if want := "Exercise for Quadriceps"; squat.Description != want {
		t.Errorf("description = %q, want %q", squat.Description, want)
	}
	// Primary excluded, case duplicate collapsed.
	if len(squat.SecondaryMuscleIDs) != 2 {
		t.Errorf("secondary muscles = %d, want 2", len(squat.SecondaryMuscleIDs))
	}
	for _, id := range squat.SecondaryMuscleIDs {
		if id == squat.PrimaryMuscleID {
			t.Error("primary muscle listed as secondary")
		}
	}
}

func TestImportExercisesExistingSkipped(t *testing.T) {
	f := newFakeStore()
	imp := newTestImporter(f)

	seed := imp.ImportExercises(context.Background(), []ExercisePayload{validPayload("Squat")})
	if seed.ExercisesCreated != 1 {
		t.Fatalf("seed created = %d, want 1", seed.ExercisesCreated)
	}

	res := imp.ImportExercises(context.Background(), []ExercisePayload{
		validPayload("SQUAT"), // storage match is case-insensitive
		validPayload("Deadlift"),
	})
	if res.ExercisesOmitted != 1 {
		t.Errorf("omitted = %d, want 1", res.ExercisesOmitted)
	}
	if res.ExercisesCreated != 1 {
		t.Errorf("created = %d, want 1", res.ExercisesCreated)
	}
	if res.HasErrors() {
		t.Errorf("unexpected errors: %+v", res.Errors)
	}
}

func TestImportExercisesUnresolvedReference(t *testing.T) {
	f := newFakeStore()
	f.createRefErr["Legs"] = fmt.Errorf("connection reset")
	imp := newTestImporter(f)

	res := imp.ImportExercises(context.Background(), []ExercisePayload{validPayload("Squat")})

	if res.ExercisesCreated != 0 {
		t.Errorf("created = %d, want 0", res.ExercisesCreated)
	}
	// One global error for the failed group creation, one indexed error for
	// the record whose group never resolved.
	if len(res.Errors) != 2 {
		t.Fatalf("errors = %d, want 2: %+v", len(res.Errors), res.Errors)
	}
	if res.Errors[0].Index != nil {
		t.Error("reference resolution error should carry no index")
	}
	if res.Errors[1].Index == nil || *res.Errors[1].Index != 0 {
		t.Errorf("record error index = %v, want 0", res.Errors[1].Index)
	}
}
