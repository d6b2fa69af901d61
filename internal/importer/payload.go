package importer

import "github.com/lsemperez/gymtrack/internal/domain"

// ExercisePayload is one parsed, not-yet-validated exercise candidate from an
// import upload. Muscle references are by name; resolution happens in the
// pipeline.
type ExercisePayload struct {
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	MuscleGroup      string   `json:"muscleGroup"`
	PrimaryMuscle    string   `json:"primaryMuscle"`
	SecondaryMuscles []string `json:"secondaryMuscles"`
}

// RoutinePayload is one candidate routine tree. Exercise references are by
// name and must resolve against the existing catalog. Any sequence metadata
// in the payload is ignored; numbering is assigned from source order.
type RoutinePayload struct {
	Name            string        `json:"name"`
	Description     string        `json:"description"`
	Difficulty      string        `json:"difficulty"`
	SessionDuration string        `json:"sessionDuration"`
	Frequency       string        `json:"frequency"`
	ImageSource     string        `json:"imageSource"`
	Weeks           []WeekPayload `json:"weeks"`
}

type WeekPayload struct {
	Name string       `json:"name"`
	Days []DayPayload `json:"days"`
}

type DayPayload struct {
	Name      string                   `json:"name"`
	Notes     string                   `json:"notes"`
	Exercises []RoutineExercisePayload `json:"exercises"`
}

type RoutineExercisePayload struct {
	Name string       `json:"name"`
	Sets []SetPayload `json:"sets"`
}

// SetPayload carries one prescribed set. Rest is a textual duration; a value
// that fails to parse drops the set but keeps its siblings.
type SetPayload struct {
	Reps         *int           `json:"reps"`
	PercentOneRM *int           `json:"percentOneRm"`
	Rest         string         `json:"rest"`
	Type         domain.SetType `json:"type"`
}
