package importer

import (
	"encoding/json"
	"fmt"
	"time"
)

// ImportError is one structured failure tied to an import call. Index is the
// candidate record's position in the upload, nil when the error belongs to no
// single record (reference resolution, whole-call failures).
type ImportError struct {
	Index   *int   `json:"index"`
	Name    string `json:"name"`
	Message string `json:"message"`
	Trace   string `json:"trace,omitempty"`
}

// ImportResult accumulates the outcome of one import call. It is write-only
// while the pipeline runs and read-only by the caller afterwards.
type ImportResult struct {
	CriticalFailure bool

	TotalProcessed      int
	ExercisesCreated    int
	ExercisesUpdated    int
	ExercisesOmitted    int
	DuplicatesOmitted   int
	MuscleGroupsCreated int
	MusclesCreated      int
	RoutinesCreated     int

	Errors   []ImportError
	Warnings []string

	Duration time.Duration
}

// NewResult starts a result for a call processing n candidate records.
func NewResult(n int) *ImportResult {
	return &ImportResult{
		TotalProcessed: n,
		Errors:         []ImportError{},
		Warnings:       []string{},
	}
}

// AddError records an indexed per-record error.
func (r *ImportResult) AddError(index int, name, message string) {
	i := index
	r.Errors = append(r.Errors, ImportError{Index: &i, Name: name, Message: message})
}

// AddGlobalError records an error that belongs to no single record.
func (r *ImportResult) AddGlobalError(name, message string) {
	r.Errors = append(r.Errors, ImportError{Name: name, Message: message})
}

// AddWarning records a free-text warning.
func (r *ImportResult) AddWarning(message string) {
	r.Warnings = append(r.Warnings, message)
}

func (r *ImportResult) HasErrors() bool   { return len(r.Errors) > 0 }
func (r *ImportResult) HasWarnings() bool { return len(r.Warnings) > 0 }

// TotalAffected is every record the call changed in storage.
func (r *ImportResult) TotalAffected() int {
	return r.ExercisesCreated + r.ExercisesUpdated + r.RoutinesCreated
}

// TotalCreated counts every row kind the call created.
func (r *ImportResult) TotalCreated() int {
	return r.ExercisesCreated + r.RoutinesCreated + r.MuscleGroupsCreated + r.MusclesCreated
}

// SuccessPercent is affected over processed, zero when nothing was processed.
func (r *ImportResult) SuccessPercent() float64 {
	if r.TotalProcessed == 0 {
		return 0
	}
	return float64(r.TotalAffected()) / float64(r.TotalProcessed) * 100
}

// FormattedDuration renders the elapsed time using the largest applicable
// unit, down to milliseconds.
func (r *ImportResult) FormattedDuration() string {
	d := r.Duration
	switch {
	case d >= time.Hour:
		return fmt.Sprintf("%dh %dm %ds", int(d.Hours()), int(d.Minutes())%60, int(d.Seconds())%60)
	case d >= time.Minute:
		return fmt.Sprintf("%dm %ds", int(d.Minutes()), int(d.Seconds())%60)
	case d >= time.Second:
		return fmt.Sprintf("%ds %dms", int(d.Seconds()), d.Milliseconds()%1000)
	default:
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
}

// MarshalJSON serializes stored and derived values together; derived values
// are never stored on the struct.
func (r *ImportResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		CriticalFailure     bool          `json:"criticalFailure"`
		TotalProcessed      int           `json:"totalProcessed"`
		ExercisesCreated    int           `json:"exercisesCreated"`
		ExercisesUpdated    int           `json:"exercisesUpdated"`
		ExercisesOmitted    int           `json:"exercisesOmitted"`
		DuplicatesOmitted   int           `json:"duplicatesOmitted"`
		MuscleGroupsCreated int           `json:"muscleGroupsCreated"`
		MusclesCreated      int           `json:"musclesCreated"`
		RoutinesCreated     int           `json:"routinesCreated"`
		Errors              []ImportError `json:"errors"`
		Warnings            []string      `json:"warnings"`
		HasErrors           bool          `json:"hasErrors"`
		HasWarnings         bool          `json:"hasWarnings"`
		TotalAffected       int           `json:"totalAffected"`
		TotalCreated        int           `json:"totalCreated"`
		SuccessPercent      float64       `json:"successPercent"`
		DurationMs          int64         `json:"durationMs"`
		Duration            string        `json:"duration"`
	}{
		CriticalFailure:     r.CriticalFailure,
		TotalProcessed:      r.TotalProcessed,
		ExercisesCreated:    r.ExercisesCreated,
		ExercisesUpdated:    r.ExercisesUpdated,
		ExercisesOmitted:    r.ExercisesOmitted,
		DuplicatesOmitted:   r.DuplicatesOmitted,
		MuscleGroupsCreated: r.MuscleGroupsCreated,
		MusclesCreated:      r.MusclesCreated,
		RoutinesCreated:     r.RoutinesCreated,
		Errors:              r.Errors,
		Warnings:            r.Warnings,
		HasErrors:           r.HasErrors(),
		HasWarnings:         r.HasWarnings(),
		TotalAffected:       r.TotalAffected(),
		TotalCreated:        r.TotalCreated(),
		SuccessPercent:      r.SuccessPercent(),
		DurationMs:          r.Duration.Milliseconds(),
		Duration:            r.FormattedDuration(),
	})
}
