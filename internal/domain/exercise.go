// Package domain defines the entities stored by the workout catalog.
//
// Ownership is unidirectional: parents hold ordered collections of children,
// children hold non-owning back-reference IDs. There are no live object cycles;
// navigation fields (Group, PrimaryMuscle, SecondaryMuscles on Exercise) are
// optional projections populated by the stores when a caller asks for them.
package domain

// MuscleGroup is a coarse taxonomy bucket ("Legs", "Back"). Created lazily
// during exercise import, never deleted by the import pipeline.
type MuscleGroup struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Muscle is a specific muscle ("Quadriceps"). An exercise has exactly one
// primary muscle and zero or more secondary muscles.
type Muscle struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Exercise is a catalog entry. Name uniqueness is global and case-insensitive
// for lookups, but the name is stored in its original casing.
type Exercise struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	MuscleGroupID   int64  `json:"muscleGroupId"`
	PrimaryMuscleID int64  `json:"primaryMuscleId"`

	// IDs of secondary muscles, deduplicated, never containing PrimaryMuscleID.
	SecondaryMuscleIDs []int64 `json:"secondaryMuscleIds,omitempty"`

	// Optional projections, populated on read paths only.
	Group            *MuscleGroup `json:"muscleGroup,omitempty"`
	PrimaryMuscle    *Muscle      `json:"primaryMuscle,omitempty"`
	SecondaryMuscles []Muscle     `json:"secondaryMuscles,omitempty"`
}
