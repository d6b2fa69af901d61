package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// SetType tags how a set is performed.
type SetType string

const (
	SetNormal    SetType = "Normal"
	SetDropSet   SetType = "DropSet"
	SetCluster   SetType = "Cluster"
	SetMyoReps   SetType = "MyoReps"
	SetNegatives SetType = "Negatives"
	SetMaxRM     SetType = "MaxRM"
)

// setTypes is ordered; the numeric position matches the legacy wire encoding
// where set types were serialized as enum ordinals.
var setTypes = []SetType{SetNormal, SetDropSet, SetCluster, SetMyoReps, SetNegatives, SetMaxRM}

// ParseSetType resolves a set type tag case-insensitively.
func ParseSetType(s string) (SetType, error) {
	for _, t := range setTypes {
		if strings.EqualFold(s, string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown set type: %q", s)
}

// Valid reports whether t is one of the known set type tags.
func (t SetType) Valid() bool {
	for _, known := range setTypes {
		if t == known {
			return true
		}
	}
	return false
}

// UnmarshalJSON accepts either a tag name (case-insensitive) or a legacy
// numeric ordinal. Absent/empty values decode to SetNormal.
func (t *SetType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "" {
			*t = SetNormal
			return nil
		}
		parsed, perr := ParseSetType(s)
		if perr != nil {
			return perr
		}
		*t = parsed
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("set type must be a string or integer: %s", data)
	}
	if n < 0 || n >= len(setTypes) {
		return fmt.Errorf("unknown set type ordinal: %d", n)
	}
	*t = setTypes[n]
	return nil
}

// Routine is the root of a workout program tree.
type Routine struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	Difficulty      string `json:"difficulty"`
	SessionDuration string `json:"sessionDuration"`
	Frequency       string `json:"frequency"`
	ImageSource     string `json:"imageSource"`

	Weeks []RoutineWeek `json:"weeks,omitempty"`
}

// RoutineWeek groups days. WeekNumber is 1-based and contiguous, assigned in
// source order at import time.
type RoutineWeek struct {
	ID         int64  `json:"id"`
	RoutineID  int64  `json:"routineId"`
	WeekNumber int    `json:"weekNumber"`
	Name       string `json:"name,omitempty"`

	Days []RoutineDay `json:"days,omitempty"`
}

// RoutineDay groups the exercises of one training day.
type RoutineDay struct {
	ID        int64  `json:"id"`
	WeekID    int64  `json:"weekId"`
	DayNumber int    `json:"dayNumber"`
	Name      string `json:"name,omitempty"`
	Notes     string `json:"notes,omitempty"`

	Exercises []RoutineExercise `json:"exercises,omitempty"`
}

// RoutineExercise places a catalog exercise in a day at a 1-based position.
// ExerciseID references an existing Exercise, resolved from its name at
// import time.
type RoutineExercise struct {
	ID         int64  `json:"id"`
	DayID      int64  `json:"dayId"`
	ExerciseID int64  `json:"exerciseId"`
	Position   int    `json:"position"`
	Name       string `json:"name,omitempty"` // catalog exercise name, read paths only

	Sets []RoutineSet `json:"sets,omitempty"`
}

// RoutineSet is a single prescribed set. Rest is parsed from a textual
// duration at import time.
type RoutineSet struct {
	ID                int64         `json:"id"`
	RoutineExerciseID int64         `json:"routineExerciseId"`
	SetNumber         int           `json:"setNumber"`
	Reps              *int          `json:"reps,omitempty"`
	PercentOneRM      *int          `json:"percentOneRm,omitempty"`
	Rest              time.Duration `json:"restNs"`
	Type              SetType       `json:"type"`
}
