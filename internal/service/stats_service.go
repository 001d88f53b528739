package service

import (
	"context"
	"time"

	"pcfit/routines-service/internal/domain"
	"pcfit/routines-service/internal/repository"
)

// UserStats is the aggregate view of a user's training history.
type UserStats struct {
	TotalCompletedSessions    int     `json:"total_completed_sessions"`
	TotalVolume               float64 `json:"total_volume"`
	AvgSessionDurationSeconds int     `json:"avg_session_duration_seconds"`
	CompletionRate4Weeks      float64 `json:"completion_rate_4_weeks"` // percentage 0-100
	MostFrequentMuscleGroup   string  `json:"most_frequent_muscle_group"`
	PRCount                   int     `json:"pr_count"`
	CurrentStreakDays         int     `json:"current_streak_days"`
}

// SessionProgress is one completed session with its performance records.
type SessionProgress struct {
	Session      domain.WorkoutSession        `json:"session"`
	Performances []domain.ExercisePerformance `json:"performances"`
}

// StatsService aggregates session and performance history.
type StatsService interface {
	GetUserStats(ctx context.Context, userID int64, now time.Time) (*UserStats, error)
	GetProgress(ctx context.Context, userID int64) ([]SessionProgress, error)
}

type statsService struct {
	sessionRepo  repository.SessionRepository
	perfRepo     repository.PerformanceRepository
	exerciseRepo repository.RoutineExerciseRepository
}

// NewStatsService creates a new instance of statsService.
func NewStatsService(
	sessionRepo repository.SessionRepository,
	perfRepo repository.PerformanceRepository,
	exerciseRepo repository.RoutineExerciseRepository,
) StatsService {
	return &statsService{
		sessionRepo:  sessionRepo,
		perfRepo:     perfRepo,
		exerciseRepo: exerciseRepo,
	}
}

// progressWindow caps GetProgress at the most recent completed sessions.
const progressWindow = 10

// streakLookbackDays bounds the streak walk so one query window covers it.
const streakLookbackDays = 30

// GetUserStats computes the full aggregate in one pass over the user's
// sessions and performances.
func (s *statsService) GetUserStats(ctx context.Context, userID int64, now time.Time) (*UserStats, error) {
	sessions, err := s.sessionRepo.GetByUserID(ctx, userID, 0)
	if err != nil {
		return nil, err
	}
	perfs, err := s.perfRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := &UserStats{}
	now = now.UTC()
	windowStart := now.AddDate(0, 0, -28)

	var durationSum time.Duration
	var durationCount int
	var scheduledInWindow, completedInWindow int
	completedDates := make(map[string]bool)

	for i := range sessions {
		session := &sessions[i]
		if !session.ScheduledDate.After(now) && session.ScheduledDate.After(windowStart) {
			scheduledInWindow++
			if session.Status == domain.SessionCompleted {
				completedInWindow++
			}
		}
		if session.Status != domain.SessionCompleted {
			continue
		}
		stats.TotalCompletedSessions++
		if session.StartTime != nil && session.EndTime != nil && session.EndTime.After(*session.StartTime) {
			durationSum += session.EndTime.Sub(*session.StartTime)
			durationCount++
		}
		if session.ActualDate != nil {
			completedDates[session.ActualDate.UTC().Format("2006-01-02")] = true
		}
	}

	if durationCount > 0 {
		stats.AvgSessionDurationSeconds = int(durationSum.Seconds()) / durationCount
	}
	if scheduledInWindow > 0 {
		stats.CompletionRate4Weeks = float64(completedInWindow) / float64(scheduledInWindow) * 100
	}

	// Streak: consecutive calendar days with a completed session, walking
	// back from today and stopping at the first gap.
	cursor := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	for i := 0; i < streakLookbackDays; i++ {
		if !completedDates[cursor.Format("2006-01-02")] {
			break
		}
		stats.CurrentStreakDays++
		cursor = cursor.AddDate(0, 0, -1)
	}

	// Volume and PRs come from performances.
	for i := range perfs {
		stats.TotalVolume += perfs[i].TotalVolume
		if perfs[i].PRAchieved {
			stats.PRCount++
		}
	}

	// The dominant muscle group is counted over every exercise slot the
	// user ever created, not just the ones with logged performances.
	exercises, err := s.exerciseRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	muscleCounts := make(map[string]int)
	for i := range exercises {
		if exercises[i].ExerciseMuscleGrp != "" {
			muscleCounts[exercises[i].ExerciseMuscleGrp]++
		}
	}
	best := 0
	for muscle, count := range muscleCounts {
		if count > best || (count == best && muscle < stats.MostFrequentMuscleGroup) {
			best = count
			stats.MostFrequentMuscleGroup = muscle
		}
	}

	return stats, nil
}

// GetProgress returns the most recent completed sessions, newest first,
// each with its performance records.
func (s *statsService) GetProgress(ctx context.Context, userID int64) ([]SessionProgress, error) {
	sessions, err := s.sessionRepo.GetByUserID(ctx, userID, 0)
	if err != nil {
		return nil, err
	}

	progress := make([]SessionProgress, 0, progressWindow)
	for i := range sessions {
		if sessions[i].Status != domain.SessionCompleted {
			continue
		}
		perfs, err := s.perfRepo.GetBySessionID(ctx, sessions[i].ID)
		if err != nil {
			return nil, err
		}
		progress = append(progress, SessionProgress{Session: sessions[i], Performances: perfs})
		if len(progress) == progressWindow {
			break
		}
	}
	return progress, nil
}
