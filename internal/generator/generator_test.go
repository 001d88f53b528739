package generator

import (
	"context"
	"errors"
	"math/rand"
	"strconv"
	"testing"

	"pcfit/routines-service/internal/clients"
	"pcfit/routines-service/internal/domain"
)

type generationHarness struct {
	users    *fakeUsers
	catalog  *fakeCatalog
	routines *fakeRoutineRepo
	days     *fakeDayRepo
	exs      *fakeExerciseRepo
	m        *Materializer
}

func newHarness(profile *domain.UserProfile, pools map[string][]clients.CatalogExercise) *generationHarness {
	h := &generationHarness{
		users:    &fakeUsers{profile: profile},
		catalog:  &fakeCatalog{pools: pools},
		routines: newFakeRoutineRepo(),
		days:     newFakeDayRepo(),
		exs:      newFakeExerciseRepo(),
	}
	h.m = NewMaterializer(h.users, h.catalog, h.routines, h.days, h.exs, fakeTx{}, rand.New(rand.NewSource(42)))
	return h
}

func fullBeginnerPools() map[string][]clients.CatalogExercise {
	pools := make(map[string][]clients.CatalogExercise)
	for _, mg := range []string{"pierna", "pecho", "espalda", "hombros", "brazos", "cardio", "abdomen", "gluteo", "cuerpo_completo"} {
		pools[mg] = catalogPool(mg, "beginner", 6)
	}
	return pools
}

func TestGenerateSmartRoutineFullCatalog(t *testing.T) {
	profile := &domain.UserProfile{
		Experience: domain.ExperienceBeginner,
		Goal:       domain.GoalMaintain,
		Equipment:  domain.EquipmentGym,
		Sex:        domain.SexMale,
	}
	h := newHarness(profile, fullBeginnerPools())

	routine, err := h.m.GenerateSmartRoutine(context.Background(), 7, "tok")
	if err != nil {
		t.Fatalf("GenerateSmartRoutine failed: %v", err)
	}
	if !routine.IsActive {
		t.Error("generated routine should be active")
	}
	if routine.Name != "Plan Principiante - Cuerpo Completo" {
		t.Errorf("routine name %q", routine.Name)
	}

	days, _ := h.days.GetByRoutineID(context.Background(), routine.ID)
	if len(days) != 5 {
		t.Fatalf("got %d days, want 5", len(days))
	}
	tpl, _ := LookupTemplate(domain.ExperienceBeginner, domain.SexMale)
	for i, day := range days {
		if day.Order != i {
			t.Errorf("day %d has order %d", i, day.Order)
		}
		if day.DayName != tpl.DayTemplates[i].Name {
			t.Errorf("day %d name %q, want %q", i, day.DayName, tpl.DayTemplates[i].Name)
		}

		exercises, _ := h.exs.GetByDayID(context.Background(), day.ID)
		wantCount := 0
		for _, q := range tpl.DayTemplates[i].Quotas {
			wantCount += q.Count
		}
		if len(exercises) != wantCount {
			t.Errorf("day %q: %d exercises, want %d", day.DayName, len(exercises), wantCount)
		}
		for j, ex := range exercises {
			if ex.Order != j {
				t.Errorf("day %q exercise %d has order %d, want dense ordering", day.DayName, j, ex.Order)
			}
			if ex.Sets == 0 || ex.Reps == "" || ex.RestSeconds == 0 {
				t.Errorf("day %q exercise %q missing prescription: %+v", day.DayName, ex.ExerciseName, ex)
			}
			if ex.UserID != 7 {
				t.Errorf("exercise %q has user %d, want 7", ex.ExerciseName, ex.UserID)
			}
		}
	}
}

func TestGenerateSmartRoutineDeactivatesPrevious(t *testing.T) {
	profile := &domain.UserProfile{
		Experience: domain.ExperienceBeginner,
		Goal:       domain.GoalMaintain,
		Sex:        domain.SexMale,
	}
	h := newHarness(profile, fullBeginnerPools())

	first, err := h.m.GenerateSmartRoutine(context.Background(), 7, "tok")
	if err != nil {
		t.Fatalf("first generation failed: %v", err)
	}
	second, err := h.m.GenerateSmartRoutine(context.Background(), 7, "tok")
	if err != nil {
		t.Fatalf("second generation failed: %v", err)
	}

	old, _ := h.routines.GetByID(context.Background(), first.ID)
	if old.IsActive {
		t.Error("previous routine stayed active after regeneration")
	}
	active, err := h.routines.GetActiveByUserID(context.Background(), 7)
	if err != nil {
		t.Fatalf("no active routine after generation: %v", err)
	}
	if active.ID != second.ID {
		t.Error("active routine is not the newly generated one")
	}
}

func TestGenerateSmartRoutineCatalogOutage(t *testing.T) {
	profile := &domain.UserProfile{
		Experience: domain.ExperienceIntermediate,
		Goal:       domain.GoalLoseWeight,
		Sex:        domain.SexFemale,
	}
	// Empty catalog: every quota must be filled with placeholders.
	h := newHarness(profile, map[string][]clients.CatalogExercise{})

	routine, err := h.m.GenerateSmartRoutine(context.Background(), 3, "tok")
	if err != nil {
		t.Fatalf("generation must survive a catalog outage, got: %v", err)
	}

	days, _ := h.days.GetByRoutineID(context.Background(), routine.ID)
	if len(days) == 0 {
		t.Fatal("no days persisted")
	}
	for _, day := range days {
		exercises, _ := h.exs.GetByDayID(context.Background(), day.ID)
		if len(exercises) == 0 {
			t.Errorf("day %q has no exercises under catalog outage", day.DayName)
		}
	}
}

func TestGenerateSmartRoutineProfileUnavailable(t *testing.T) {
	h := newHarness(nil, fullBeginnerPools())
	h.users.err = errors.New("connection refused")

	_, err := h.m.GenerateSmartRoutine(context.Background(), 1, "tok")
	if !errors.Is(err, ErrUpstreamUnavailable) {
		t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
	}
	if len(h.routines.routines) != 0 {
		t.Error("nothing should persist when the profile is unavailable")
	}
}

func TestGenerateSmartRoutineUnknownExperience(t *testing.T) {
	profile := &domain.UserProfile{Experience: "elite", Goal: domain.GoalMaintain}
	h := newHarness(profile, fullBeginnerPools())

	_, err := h.m.GenerateSmartRoutine(context.Background(), 1, "tok")
	if !errors.Is(err, ErrBadTemplate) {
		t.Fatalf("expected ErrBadTemplate, got %v", err)
	}
}

func legacyPools(short string, shortCount int) map[string][]clients.CatalogExercise {
	pools := make(map[string][]clients.CatalogExercise)
	for _, slot := range legacySplit {
		n := 8
		if slot.Muscle == short {
			n = shortCount
		}
		pools[slot.Muscle] = catalogPool(slot.Muscle, "beginner", n)
	}
	return pools
}

func TestGenerateLegacyRoutine(t *testing.T) {
	profile := &domain.UserProfile{
		Experience: domain.ExperienceBeginner,
		Goal:       domain.GoalGainMuscle,
		Sex:        domain.SexMale,
	}
	h := newHarness(profile, legacyPools("", 0))

	routine, err := h.m.GenerateLegacyRoutine(context.Background(), 9, "tok")
	if err != nil {
		t.Fatalf("GenerateLegacyRoutine failed: %v", err)
	}
	if routine.Name != "Rutina Semanal" {
		t.Errorf("routine name %q", routine.Name)
	}
	if routine.IsActive {
		t.Error("legacy routine must not auto-activate")
	}

	days, _ := h.days.GetByRoutineID(context.Background(), routine.ID)
	if len(days) != 5 {
		t.Fatalf("got %d days, want 5", len(days))
	}
	for i, day := range days {
		if day.DayOfWeek != legacySplit[i].Day {
			t.Errorf("day %d weekday %q, want %q", i, day.DayOfWeek, legacySplit[i].Day)
		}
		exercises, _ := h.exs.GetByDayID(context.Background(), day.ID)
		if len(exercises) != legacyExercisesPerDay {
			t.Errorf("day %q: %d exercises, want %d", day.DayName, len(exercises), legacyExercisesPerDay)
		}
		for _, ex := range exercises {
			if _, err := strconv.Atoi(ex.Reps); err != nil {
				t.Errorf("legacy reps %q should be numeric", ex.Reps)
			}
		}
	}
}

func TestGenerateLegacyRoutineInsufficientCatalog(t *testing.T) {
	profile := &domain.UserProfile{
		Experience: domain.ExperienceBeginner,
		Goal:       domain.GoalTone,
		Sex:        domain.SexMale,
	}
	h := newHarness(profile, legacyPools("espalda", 3))

	_, err := h.m.GenerateLegacyRoutine(context.Background(), 9, "tok")
	var insufficient *InsufficientCatalogError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientCatalogError, got %v", err)
	}
	if insufficient.MuscleGroup != "espalda" || insufficient.Received != 3 {
		t.Errorf("error names %q/%d, want espalda/3", insufficient.MuscleGroup, insufficient.Received)
	}
	if len(h.routines.routines) != 0 {
		t.Error("nothing should persist when a muscle group is short")
	}
}

func TestPrescriptionTable(t *testing.T) {
	cases := []struct {
		experience domain.Experience
		muscle     string
		sets       int
		reps       string
		rest       int
	}{
		{domain.ExperienceBeginner, "pierna", 3, "10-12", 90},
		{domain.ExperienceBeginner, "abdomen", 3, "12-15", 90},
		{domain.ExperienceBeginner, "cardio", 3, "30-45 segundos", 90},
		{domain.ExperienceIntermediate, "pecho", 4, "8-12", 75},
		{domain.ExperienceIntermediate, "pantorrilla", 3, "15-20", 75},
		{domain.ExperienceAdvanced, "espalda", 4, "6-10", 60},
		{domain.ExperienceAdvanced, "cardio", 4, "60-90 segundos", 60},
	}
	for _, tc := range cases {
		p := PrescriptionFor(tc.experience, tc.muscle)
		if p.Sets != tc.sets || p.Reps != tc.reps || p.RestSeconds != tc.rest {
			t.Errorf("PrescriptionFor(%s, %s) = %+v, want {%d %q %d}",
				tc.experience, tc.muscle, p, tc.sets, tc.reps, tc.rest)
		}
	}
}
