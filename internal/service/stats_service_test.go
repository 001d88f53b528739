package service

import (
	"context"
	"math"
	"testing"
	"time"

	"pcfit/routines-service/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type statsHarness struct {
	sessions *memSessionRepo
	perfs    *memPerformanceRepo
	exs      *memExerciseRepo
	svc      StatsService
}

func newStatsHarness() *statsHarness {
	h := &statsHarness{
		sessions: newMemSessionRepo(),
		perfs:    newMemPerformanceRepo(),
		exs:      newMemExerciseRepo(),
	}
	h.svc = NewStatsService(h.sessions, h.perfs, h.exs)
	return h
}

func (h *statsHarness) completedSession(userID int64, scheduled time.Time, durationMin int) primitive.ObjectID {
	start := scheduled
	end := start.Add(time.Duration(durationMin) * time.Minute)
	id, _ := h.sessions.Create(context.Background(), &domain.WorkoutSession{
		UserID:        userID,
		RoutineID:     primitive.NewObjectID(),
		DayID:         primitive.NewObjectID(),
		ScheduledDate: scheduled,
		ActualDate:    &end,
		StartTime:     &start,
		EndTime:       &end,
		Status:        domain.SessionCompleted,
	})
	return id
}

func TestUserStatsBasics(t *testing.T) {
	h := newStatsHarness()
	ctx := context.Background()
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	// Three completed sessions on consecutive days ending today, plus one
	// planned and one skipped inside the four-week window.
	s1 := h.completedSession(1, now.AddDate(0, 0, -2), 60)
	h.completedSession(1, now.AddDate(0, 0, -1), 40)
	h.completedSession(1, now.Add(-2*time.Hour), 50)
	h.sessions.Create(ctx, &domain.WorkoutSession{UserID: 1, ScheduledDate: now.AddDate(0, 0, -3), Status: domain.SessionSkipped})
	h.sessions.Create(ctx, &domain.WorkoutSession{UserID: 1, ScheduledDate: now.AddDate(0, 0, -4), Status: domain.SessionPlanned})

	// Three "pierna" slots ever created; performances logged only against
	// the lone "pecho" slot. Slot counts, not performances, decide the
	// dominant muscle group.
	for i := 0; i < 3; i++ {
		h.exs.Create(ctx, &domain.RoutineExercise{UserID: 1, ExerciseName: "Sentadilla", ExerciseMuscleGrp: "pierna", Sets: 3, Reps: "10"})
	}
	pechoID, _ := h.exs.Create(ctx, &domain.RoutineExercise{UserID: 1, ExerciseName: "Press Banca", ExerciseMuscleGrp: "pecho", Sets: 3, Reps: "8"})
	h.perfs.Create(ctx, &domain.ExercisePerformance{UserID: 1, SessionID: s1, RoutineExerciseID: pechoID, TotalVolume: 1200, PRAchieved: true})
	h.perfs.Create(ctx, &domain.ExercisePerformance{UserID: 1, SessionID: s1, RoutineExerciseID: pechoID, TotalVolume: 800})

	stats, err := h.svc.GetUserStats(ctx, 1, now)
	if err != nil {
		t.Fatalf("GetUserStats: %v", err)
	}

	if stats.TotalCompletedSessions != 3 {
		t.Errorf("completed sessions %d, want 3", stats.TotalCompletedSessions)
	}
	if stats.TotalVolume != 2000 {
		t.Errorf("total volume %v, want 2000", stats.TotalVolume)
	}
	if stats.PRCount != 1 {
		t.Errorf("PR count %d, want 1", stats.PRCount)
	}
	if stats.AvgSessionDurationSeconds != 50*60 {
		t.Errorf("avg duration %d, want %d", stats.AvgSessionDurationSeconds, 50*60)
	}
	// 3 of 5 scheduled sessions in the window completed.
	if math.Abs(stats.CompletionRate4Weeks-60.0) > 1e-9 {
		t.Errorf("completion rate %v, want 60", stats.CompletionRate4Weeks)
	}
	if stats.MostFrequentMuscleGroup != "pierna" {
		t.Errorf("most frequent muscle group %q", stats.MostFrequentMuscleGroup)
	}
	if stats.CurrentStreakDays != 3 {
		t.Errorf("streak %d, want 3 consecutive days", stats.CurrentStreakDays)
	}
}

func TestUserStatsStreakBrokenByGap(t *testing.T) {
	h := newStatsHarness()
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	h.completedSession(1, now.Add(-time.Hour), 45)         // today
	h.completedSession(1, now.AddDate(0, 0, -1), 45)       // yesterday
	h.completedSession(1, now.AddDate(0, 0, -3), 45)       // gap at -2
	h.completedSession(1, now.AddDate(0, 0, -4), 45)

	stats, err := h.svc.GetUserStats(context.Background(), 1, now)
	if err != nil {
		t.Fatalf("GetUserStats: %v", err)
	}
	if stats.CurrentStreakDays != 2 {
		t.Errorf("streak %d, want 2 (gap two days ago breaks it)", stats.CurrentStreakDays)
	}
}

func TestUserStatsStreakResetsOnRestToday(t *testing.T) {
	h := newStatsHarness()
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	h.completedSession(1, now.AddDate(0, 0, -1), 45)
	h.completedSession(1, now.AddDate(0, 0, -2), 45)

	stats, err := h.svc.GetUserStats(context.Background(), 1, now)
	if err != nil {
		t.Fatalf("GetUserStats: %v", err)
	}
	if stats.CurrentStreakDays != 0 {
		t.Errorf("streak %d, want 0 (the walk starts at today and stops at the first gap)", stats.CurrentStreakDays)
	}
}

func TestUserStatsEmptyHistory(t *testing.T) {
	h := newStatsHarness()
	stats, err := h.svc.GetUserStats(context.Background(), 42, time.Now())
	if err != nil {
		t.Fatalf("GetUserStats on empty history: %v", err)
	}
	if stats.TotalCompletedSessions != 0 || stats.TotalVolume != 0 || stats.CurrentStreakDays != 0 {
		t.Errorf("empty history produced non-zero stats: %+v", stats)
	}
	if stats.CompletionRate4Weeks != 0 {
		t.Errorf("completion rate %v with nothing scheduled", stats.CompletionRate4Weeks)
	}
}

func TestGetProgressReturnsRecentCompleted(t *testing.T) {
	h := newStatsHarness()
	ctx := context.Background()
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	// 12 completed sessions; only the 10 most recent should come back.
	newest := h.completedSession(1, now, 45)
	for i := 1; i < 12; i++ {
		h.completedSession(1, now.AddDate(0, 0, -i), 45)
	}

	h.sessions.Create(ctx, &domain.WorkoutSession{UserID: 1, ScheduledDate: now, Status: domain.SessionPlanned})

	exID, _ := h.exs.Create(ctx, &domain.RoutineExercise{UserID: 1, ExerciseName: "Remo", Sets: 3, Reps: "10"})
	h.perfs.Create(ctx, &domain.ExercisePerformance{UserID: 1, SessionID: newest, RoutineExerciseID: exID, TotalVolume: 500})

	progress, err := h.svc.GetProgress(ctx, 1)
	if err != nil {
		t.Fatalf("GetProgress: %v", err)
	}
	if len(progress) != 10 {
		t.Fatalf("%d progress entries, want 10", len(progress))
	}
	if progress[0].Session.ID != newest {
		t.Error("progress should start with the most recent completed session")
	}
	if len(progress[0].Performances) != 1 {
		t.Errorf("newest session carries %d performances, want 1", len(progress[0].Performances))
	}
	for _, entry := range progress {
		if entry.Session.Status != domain.SessionCompleted {
			t.Errorf("non-completed session %s in progress list", entry.Session.Status)
		}
	}
}
