package generator

import (
	"context"
	"fmt"
	"math/rand"

	"pcfit/routines-service/internal/clients"
	"pcfit/routines-service/internal/domain"

	"github.com/google/uuid"
)

// Equipment labels accepted as "body-weight" etc. after normalization;
// the catalog mixes Spanish and English values.
var (
	bodyweightEquipment = map[string]bool{
		"peso_corporal": true, "sin_equipo": true, "bodyweight": true, "ninguno": true,
	}
	dumbbellEquipment = map[string]bool{
		"mancuerna": true, "mancuernas": true, "dumbbell": true,
	}
	bandEquipment = map[string]bool{
		"banda": true, "bandas": true, "banda_elastica": true, "band": true,
	}
)

// Selector picks exercises for a (muscle group, count) quota from the
// external catalog. The random source is injected so tests can make
// selection deterministic.
type Selector struct {
	catalog clients.ExerciseCatalog
	rng     *rand.Rand
}

// NewSelector creates a selector over the given catalog.
func NewSelector(catalog clients.ExerciseCatalog, rng *rand.Rand) *Selector {
	return &Selector{catalog: catalog, rng: rng}
}

// Select returns exactly desiredCount exercises when the filtered
// candidate pool allows it, fewer when the pool is short but non-empty,
// and synthesized placeholders when the pool is empty. It never fails:
// a catalog gap for one muscle group must not abort generation.
func (s *Selector) Select(ctx context.Context, token, muscleGroup string, difficulty domain.Experience, equipment domain.Equipment, desiredCount int) []clients.CatalogExercise {
	if desiredCount <= 0 {
		return nil
	}

	candidates := s.catalog.FetchFiltered(ctx, token, muscleGroup, string(difficulty))
	candidates = filterByEquipment(candidates, equipment)

	if len(candidates) >= desiredCount {
		return s.sample(candidates, desiredCount)
	}
	if len(candidates) > 0 {
		return candidates
	}

	// Zero candidates: synthesize one placeholder per missing slot so the
	// day is never left without exercise entries.
	placeholders := make([]clients.CatalogExercise, desiredCount)
	for i := range placeholders {
		placeholders[i] = clients.CatalogExercise{
			ID:          "generated-" + uuid.NewString(),
			Name:        fmt.Sprintf("Exercise for %s", muscleGroup),
			MuscleGroup: muscleGroup,
			Difficulty:  string(difficulty),
			Equipment:   string(equipment),
		}
	}
	return placeholders
}

// sample draws count distinct elements uniformly at random.
func (s *Selector) sample(candidates []clients.CatalogExercise, count int) []clients.CatalogExercise {
	perm := s.rng.Perm(len(candidates))
	out := make([]clients.CatalogExercise, count)
	for i := 0; i < count; i++ {
		out[i] = candidates[perm[i]]
	}
	return out
}

// filterByEquipment narrows candidates to the user's equipment
// preference. Gym (or anything unrecognized) keeps everything; the home
// preferences keep body-weight exercises plus their own implement.
func filterByEquipment(candidates []clients.CatalogExercise, equipment domain.Equipment) []clients.CatalogExercise {
	var extra map[string]bool
	switch equipment {
	case domain.EquipmentBodyweight:
		extra = nil
	case domain.EquipmentDumbbell:
		extra = dumbbellEquipment
	case domain.EquipmentBand:
		extra = bandEquipment
	default:
		return candidates
	}

	filtered := make([]clients.CatalogExercise, 0, len(candidates))
	for _, c := range candidates {
		key := c.EquipmentKey()
		if bodyweightEquipment[key] || (extra != nil && extra[key]) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}
