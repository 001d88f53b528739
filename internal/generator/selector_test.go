package generator

import (
	"context"
	"math/rand"
	"strings"
	"testing"

	"pcfit/routines-service/internal/clients"
	"pcfit/routines-service/internal/domain"
)

func newTestSelector(pools map[string][]clients.CatalogExercise) *Selector {
	return NewSelector(&fakeCatalog{pools: pools}, rand.New(rand.NewSource(1)))
}

func TestSelectSamplesDistinct(t *testing.T) {
	sel := newTestSelector(map[string][]clients.CatalogExercise{
		"pierna": catalogPool("pierna", "beginner", 10),
	})

	picked := sel.Select(context.Background(), "tok", "pierna", domain.ExperienceBeginner, domain.EquipmentGym, 5)
	if len(picked) != 5 {
		t.Fatalf("got %d exercises, want 5", len(picked))
	}
	seen := make(map[string]bool)
	for _, ex := range picked {
		if seen[ex.ID] {
			t.Errorf("duplicate exercise %s in selection", ex.ID)
		}
		seen[ex.ID] = true
	}
}

func TestSelectShortPoolReturnsAll(t *testing.T) {
	sel := newTestSelector(map[string][]clients.CatalogExercise{
		"pecho": catalogPool("pecho", "beginner", 2),
	})

	picked := sel.Select(context.Background(), "tok", "pecho", domain.ExperienceBeginner, domain.EquipmentGym, 5)
	if len(picked) != 2 {
		t.Fatalf("got %d exercises, want the whole short pool of 2", len(picked))
	}
}

func TestSelectEmptyPoolSynthesizesPlaceholders(t *testing.T) {
	sel := newTestSelector(map[string][]clients.CatalogExercise{})

	picked := sel.Select(context.Background(), "tok", "espalda", domain.ExperienceIntermediate, domain.EquipmentDumbbell, 3)
	if len(picked) != 3 {
		t.Fatalf("got %d placeholders, want 3", len(picked))
	}
	ids := make(map[string]bool)
	for _, ex := range picked {
		if !strings.HasPrefix(ex.ID, "generated-") {
			t.Errorf("placeholder id %q lacks generated- prefix", ex.ID)
		}
		if ids[ex.ID] {
			t.Errorf("placeholder id %q not unique", ex.ID)
		}
		ids[ex.ID] = true
		if ex.Name != "Exercise for espalda" {
			t.Errorf("placeholder name %q, want %q", ex.Name, "Exercise for espalda")
		}
		if ex.MuscleGroup != "espalda" || ex.Difficulty != "intermediate" || ex.Equipment != "dumbbell" {
			t.Errorf("placeholder fields do not echo the request: %+v", ex)
		}
	}
}

func TestSelectFiltersByEquipment(t *testing.T) {
	pool := catalogPool("brazos", "beginner", 3) // all peso_corporal
	pool = append(pool, clients.CatalogExercise{
		ID: "brazos-barra", Name: "Curl con Barra",
		MuscleGroup: "brazos", Difficulty: "beginner", Equipment: "barra",
	})
	sel := newTestSelector(map[string][]clients.CatalogExercise{"brazos": pool})

	picked := sel.Select(context.Background(), "tok", "brazos", domain.ExperienceBeginner, domain.EquipmentBodyweight, 4)
	for _, ex := range picked {
		if ex.ID == "brazos-barra" {
			t.Error("barbell exercise survived a bodyweight-only filter")
		}
	}
	if len(picked) != 3 {
		t.Fatalf("got %d exercises after filtering, want 3", len(picked))
	}

	// Gym keeps everything.
	picked = sel.Select(context.Background(), "tok", "brazos", domain.ExperienceBeginner, domain.EquipmentGym, 4)
	if len(picked) != 4 {
		t.Fatalf("gym preference got %d exercises, want 4", len(picked))
	}
}

func TestSelectZeroCount(t *testing.T) {
	sel := newTestSelector(map[string][]clients.CatalogExercise{
		"pierna": catalogPool("pierna", "beginner", 5),
	})
	if got := sel.Select(context.Background(), "tok", "pierna", domain.ExperienceBeginner, domain.EquipmentGym, 0); got != nil {
		t.Fatalf("expected nil for zero count, got %d items", len(got))
	}
}
