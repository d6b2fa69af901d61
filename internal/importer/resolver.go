package importer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lsemperez/gymtrack/internal/domain"
)

// dedupeNames returns names deduplicated case-insensitively after trimming,
// preserving first-seen order and original casing. Empty names are dropped.
func dedupeNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, name)
	}
	return out
}

// resolveMuscleGroups ensures every candidate name maps to a muscle group,
// creating groups absent from the snapshot. Resolution is independent per
// name; a creation failure is recorded without an index and the remaining
// names still resolve. The snapshot is extended in place.
func (imp *Importer) resolveMuscleGroups(ctx context.Context, log *slog.Logger, names []string, snapshot map[string]*domain.MuscleGroup, res *ImportResult) {
	for _, name := range dedupeNames(names) {
		key := strings.ToLower(name)
		if _, ok := snapshot[key]; ok {
			continue
		}
		g, err := imp.groups.Create(ctx, name)
		if err != nil {
			log.Error("create muscle group failed", "name", name, "error", err)
			res.AddGlobalError(name, fmt.Sprintf("could not create muscle group %q: %v", name, err))
			continue
		}
		snapshot[key] = g
		res.MuscleGroupsCreated++
	}
}

// resolveMuscles is the muscle counterpart of resolveMuscleGroups.
func (imp *Importer) resolveMuscles(ctx context.Context, log *slog.Logger, names []string, snapshot map[string]*domain.Muscle, res *ImportResult) {
	for _, name := range dedupeNames(names) {
		key := strings.ToLower(name)
		if _, ok := snapshot[key]; ok {
			continue
		}
		m, err := imp.muscles.Create(ctx, name)
		if err != nil {
			log.Error("create muscle failed", "name", name, "error", err)
			res.AddGlobalError(name, fmt.Sprintf("could not create muscle %q: %v", name, err))
			continue
		}
		snapshot[key] = m
		res.MusclesCreated++
	}
}
