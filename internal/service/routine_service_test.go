package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"pcfit/routines-service/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type routineHarness struct {
	routines *memRoutineRepo
	days     *memDayRepo
	exs      *memExerciseRepo
	sessions *memSessionRepo
	svc      RoutineService
}

func newRoutineHarness() *routineHarness {
	h := &routineHarness{
		routines: newMemRoutineRepo(),
		days:     newMemDayRepo(),
		exs:      newMemExerciseRepo(),
		sessions: newMemSessionRepo(),
	}
	h.svc = NewRoutineService(h.routines, h.days, h.exs, h.sessions, passthroughTx{})
	return h
}

func (h *routineHarness) seedRoutine(t *testing.T, userID int64, dayCount int) (*domain.Routine, []domain.WorkoutDay) {
	t.Helper()
	ctx := context.Background()
	routine, err := h.svc.CreateRoutine(ctx, userID, RoutineInput{Name: "Rutina de Prueba", Days: []string{"lunes", "miercoles"}})
	if err != nil {
		t.Fatalf("seed routine: %v", err)
	}
	weekdays := []string{"lunes", "miercoles", "viernes", "martes", "jueves"}
	var days []domain.WorkoutDay
	for i := 0; i < dayCount; i++ {
		day, err := h.svc.AddDay(ctx, userID, routine.ID, DayInput{DayName: "Día " + weekdays[i], DayOfWeek: weekdays[i]})
		if err != nil {
			t.Fatalf("seed day %d: %v", i, err)
		}
		days = append(days, *day)
	}
	return routine, days
}

func TestRoutineOwnershipLooksLikeNotFound(t *testing.T) {
	h := newRoutineHarness()
	routine, _ := h.seedRoutine(t, 1, 1)

	_, err := h.svc.GetRoutineDetail(context.Background(), 2, routine.ID)
	if !errors.Is(err, ErrRoutineNotFound) {
		t.Fatalf("foreign routine access: got %v, want ErrRoutineNotFound", err)
	}
	if err := h.svc.DeleteRoutine(context.Background(), 2, routine.ID); !errors.Is(err, ErrRoutineNotFound) {
		t.Fatalf("foreign routine delete: got %v", err)
	}
}

func TestActivateRoutineSingleActive(t *testing.T) {
	h := newRoutineHarness()
	ctx := context.Background()
	first, _ := h.seedRoutine(t, 1, 0)
	second, _ := h.seedRoutine(t, 1, 0)

	if _, err := h.svc.ActivateRoutine(ctx, 1, first.ID); err != nil {
		t.Fatalf("activate first: %v", err)
	}
	if _, err := h.svc.ActivateRoutine(ctx, 1, second.ID); err != nil {
		t.Fatalf("activate second: %v", err)
	}

	all, _ := h.svc.ListRoutines(ctx, 1, true)
	activeCount := 0
	for _, r := range all {
		if r.IsActive {
			activeCount++
			if r.ID != second.ID {
				t.Errorf("wrong routine active: %s", r.Name)
			}
		}
	}
	if activeCount != 1 {
		t.Fatalf("%d active routines, want exactly 1", activeCount)
	}
}

func TestDeleteRoutineCascades(t *testing.T) {
	h := newRoutineHarness()
	ctx := context.Background()
	routine, days := h.seedRoutine(t, 1, 2)
	if _, err := h.svc.AddExercise(ctx, 1, days[0].ID, ExerciseInput{ExerciseName: "Sentadilla", Sets: 3, Reps: "10-12"}); err != nil {
		t.Fatalf("seed exercise: %v", err)
	}
	h.sessions.Create(ctx, &domain.WorkoutSession{UserID: 1, RoutineID: routine.ID, DayID: days[0].ID, ScheduledDate: time.Now(), Status: domain.SessionPlanned})

	if err := h.svc.DeleteRoutine(ctx, 1, routine.ID); err != nil {
		t.Fatalf("delete routine: %v", err)
	}

	if len(h.days.days) != 0 {
		t.Error("days survived routine deletion")
	}
	if len(h.exs.exercises) != 0 {
		t.Error("exercises survived routine deletion")
	}
	if len(h.sessions.sessions) != 0 {
		t.Error("sessions survived routine deletion")
	}
}

func TestDeleteDayResequencesSiblings(t *testing.T) {
	h := newRoutineHarness()
	ctx := context.Background()
	routine, days := h.seedRoutine(t, 1, 3)

	if err := h.svc.DeleteDay(ctx, 1, days[1].ID); err != nil {
		t.Fatalf("delete day: %v", err)
	}

	remaining, _ := h.svc.ListDays(ctx, 1, routine.ID)
	if len(remaining) != 2 {
		t.Fatalf("%d days remain, want 2", len(remaining))
	}
	for i, day := range remaining {
		if day.Order != i {
			t.Errorf("day %q has order %d, want %d", day.DayName, day.Order, i)
		}
	}
}

func TestDeleteExerciseResequencesSiblings(t *testing.T) {
	h := newRoutineHarness()
	ctx := context.Background()
	_, days := h.seedRoutine(t, 1, 1)

	var ids []primitive.ObjectID
	for _, name := range []string{"Press Banca", "Remo", "Fondos"} {
		ex, err := h.svc.AddExercise(ctx, 1, days[0].ID, ExerciseInput{ExerciseName: name, Sets: 3, Reps: "8-12"})
		if err != nil {
			t.Fatalf("add %s: %v", name, err)
		}
		ids = append(ids, ex.ID)
	}

	if err := h.svc.DeleteExercise(ctx, 1, ids[0]); err != nil {
		t.Fatalf("delete exercise: %v", err)
	}

	remaining, _ := h.svc.ListExercises(ctx, 1, days[0].ID)
	if len(remaining) != 2 {
		t.Fatalf("%d exercises remain, want 2", len(remaining))
	}
	for i, ex := range remaining {
		if ex.Order != i {
			t.Errorf("exercise %q has order %d, want %d", ex.ExerciseName, ex.Order, i)
		}
	}
}

func TestReorderExercises(t *testing.T) {
	h := newRoutineHarness()
	ctx := context.Background()
	_, days := h.seedRoutine(t, 1, 1)

	var ids []primitive.ObjectID
	for _, name := range []string{"A", "B", "C"} {
		ex, _ := h.svc.AddExercise(ctx, 1, days[0].ID, ExerciseInput{ExerciseName: name, Sets: 3, Reps: "10"})
		ids = append(ids, ex.ID)
	}

	reordered, err := h.svc.ReorderExercises(ctx, 1, days[0].ID, []primitive.ObjectID{ids[2], ids[0], ids[1]})
	if err != nil {
		t.Fatalf("reorder: %v", err)
	}
	wantNames := []string{"C", "A", "B"}
	for i, ex := range reordered {
		if ex.ExerciseName != wantNames[i] || ex.Order != i {
			t.Errorf("slot %d: %q order %d, want %q order %d", i, ex.ExerciseName, ex.Order, wantNames[i], i)
		}
	}

	// Incomplete id list is rejected.
	if _, err := h.svc.ReorderExercises(ctx, 1, days[0].ID, ids[:2]); !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("partial reorder: got %v, want ErrValidationFailed", err)
	}
	// Foreign id is rejected.
	bogus := []primitive.ObjectID{ids[0], ids[1], primitive.NewObjectID()}
	if _, err := h.svc.ReorderExercises(ctx, 1, days[0].ID, bogus); !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("foreign-id reorder: got %v, want ErrValidationFailed", err)
	}
}

func TestTodayRoutine(t *testing.T) {
	h := newRoutineHarness()
	ctx := context.Background()
	routine, _ := h.seedRoutine(t, 1, 2) // lunes + miercoles
	if _, err := h.svc.ActivateRoutine(ctx, 1, routine.ID); err != nil {
		t.Fatalf("activate: %v", err)
	}

	monday := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	view, err := h.svc.TodayRoutine(ctx, 1, monday)
	if err != nil {
		t.Fatalf("today on monday: %v", err)
	}
	if view.Day == nil {
		t.Fatal("monday should match the lunes day")
	}
	if view.Day.Day.DayOfWeek != "lunes" {
		t.Errorf("matched %q, want lunes", view.Day.Day.DayOfWeek)
	}

	tuesday := monday.AddDate(0, 0, 1)
	view, err = h.svc.TodayRoutine(ctx, 1, tuesday)
	if err != nil {
		t.Fatalf("today on tuesday: %v", err)
	}
	if view.Day != nil {
		t.Error("tuesday is a rest day; no day expected")
	}

	// Without an active routine the lookup fails cleanly.
	h2 := newRoutineHarness()
	if _, err := h2.svc.TodayRoutine(ctx, 1, monday); !errors.Is(err, ErrNoActiveRoutine) {
		t.Fatalf("got %v, want ErrNoActiveRoutine", err)
	}
}
