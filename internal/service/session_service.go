package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pcfit/routines-service/internal/domain"
	"pcfit/routines-service/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrSessionNotFound     = errors.New("session not found")
	ErrPerformanceNotFound = errors.New("performance record not found")
	ErrInvalidTransition   = errors.New("invalid session state transition")
)

// SessionInput carries the writable fields of a manually created session.
type SessionInput struct {
	RoutineID     primitive.ObjectID
	DayID         primitive.ObjectID
	ScheduledDate time.Time
	Notes         string
}

// CompleteInput carries the closing details of a session.
type CompleteInput struct {
	Rating *int
	Notes  string
}

// PerformanceInput carries one exercise's recorded sets.
type PerformanceInput struct {
	RoutineExerciseID primitive.ObjectID
	SetsData          []domain.SetRecord
	Feedback          string
	PainLevel         *int
}

// SessionService drives the session lifecycle and performance recording.
type SessionService interface {
	CreateSession(ctx context.Context, userID int64, input SessionInput) (*domain.WorkoutSession, error)
	ListSessions(ctx context.Context, userID int64, limit int64) ([]domain.WorkoutSession, error)
	GetSession(ctx context.Context, userID int64, sessionID primitive.ObjectID) (*domain.WorkoutSession, error)
	StartSession(ctx context.Context, userID int64, sessionID primitive.ObjectID) (*domain.WorkoutSession, error)
	CompleteSession(ctx context.Context, userID int64, sessionID primitive.ObjectID, input CompleteInput) (*domain.WorkoutSession, error)
	SkipSession(ctx context.Context, userID int64, sessionID primitive.ObjectID) (*domain.WorkoutSession, error)
	DeleteSession(ctx context.Context, userID int64, sessionID primitive.ObjectID) error
	ScheduleWeek(ctx context.Context, userID int64, now time.Time) ([]domain.WorkoutSession, error)

	RecordPerformance(ctx context.Context, userID int64, sessionID primitive.ObjectID, input PerformanceInput) (*domain.ExercisePerformance, error)
	ListPerformances(ctx context.Context, userID int64, sessionID primitive.ObjectID) ([]domain.ExercisePerformance, error)
	GetPerformance(ctx context.Context, userID int64, performanceID primitive.ObjectID) (*domain.ExercisePerformance, error)
}

// sessionService implements the SessionService interface.
type sessionService struct {
	sessionRepo  repository.SessionRepository
	perfRepo     repository.PerformanceRepository
	routineRepo  repository.RoutineRepository
	dayRepo      repository.WorkoutDayRepository
	exerciseRepo repository.RoutineExerciseRepository
	tx           repository.TxManager
	now          func() time.Time
}

// NewSessionService creates a new instance of sessionService.
func NewSessionService(
	sessionRepo repository.SessionRepository,
	perfRepo repository.PerformanceRepository,
	routineRepo repository.RoutineRepository,
	dayRepo repository.WorkoutDayRepository,
	exerciseRepo repository.RoutineExerciseRepository,
	tx repository.TxManager,
) SessionService {
	return &sessionService{
		sessionRepo:  sessionRepo,
		perfRepo:     perfRepo,
		routineRepo:  routineRepo,
		dayRepo:      dayRepo,
		exerciseRepo: exerciseRepo,
		tx:           tx,
		now:          time.Now,
	}
}

func (s *sessionService) ownedSession(ctx context.Context, userID int64, sessionID primitive.ObjectID) (*domain.WorkoutSession, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if session.UserID != userID {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (s *sessionService) CreateSession(ctx context.Context, userID int64, input SessionInput) (*domain.WorkoutSession, error) {
	day, err := s.dayRepo.GetByID(ctx, input.DayID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDayNotFound
		}
		return nil, err
	}
	if day.UserID != userID || day.RoutineID != input.RoutineID {
		return nil, ErrDayNotFound
	}
	if input.ScheduledDate.IsZero() {
		input.ScheduledDate = s.now().UTC()
	}

	session := &domain.WorkoutSession{
		UserID:        userID,
		RoutineID:     input.RoutineID,
		DayID:         input.DayID,
		ScheduledDate: input.ScheduledDate,
		Status:        domain.SessionPlanned,
		Notes:         input.Notes,
	}
	id, err := s.sessionRepo.Create(ctx, session)
	if err != nil {
		return nil, err
	}
	session.ID = id
	return session, nil
}

func (s *sessionService) ListSessions(ctx context.Context, userID int64, limit int64) ([]domain.WorkoutSession, error) {
	return s.sessionRepo.GetByUserID(ctx, userID, limit)
}

func (s *sessionService) GetSession(ctx context.Context, userID int64, sessionID primitive.ObjectID) (*domain.WorkoutSession, error) {
	return s.ownedSession(ctx, userID, sessionID)
}

// StartSession moves the session into in_progress. Starting an already
// running session is a no-op; a finished one cannot be reopened.
func (s *sessionService) StartSession(ctx context.Context, userID int64, sessionID primitive.ObjectID) (*domain.WorkoutSession, error) {
	session, err := s.ownedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	switch session.Status {
	case domain.SessionInProgress:
		return session, nil
	case domain.SessionPlanned, domain.SessionSkipped, domain.SessionFailed:
		// ok
	default:
		return nil, fmt.Errorf("%w: cannot start a %s session", ErrInvalidTransition, session.Status)
	}

	session.Status = domain.SessionInProgress
	if session.StartTime == nil {
		start := s.now().UTC()
		session.StartTime = &start
	}
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// CompleteSession closes the session, stamping the actual date and the
// end time. A missing start time is backfilled so duration math stays
// defined for sessions completed without an explicit start.
func (s *sessionService) CompleteSession(ctx context.Context, userID int64, sessionID primitive.ObjectID, input CompleteInput) (*domain.WorkoutSession, error) {
	session, err := s.ownedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != domain.SessionPlanned && session.Status != domain.SessionInProgress {
		return nil, fmt.Errorf("%w: cannot complete a %s session", ErrInvalidTransition, session.Status)
	}
	if input.Rating != nil && (*input.Rating < 1 || *input.Rating > 5) {
		return nil, ErrValidationFailed
	}

	end := s.now().UTC()
	session.Status = domain.SessionCompleted
	session.ActualDate = &end
	session.EndTime = &end
	if session.StartTime == nil {
		session.StartTime = &end
	}
	if input.Rating != nil {
		session.Rating = input.Rating
	}
	if input.Notes != "" {
		session.Notes = input.Notes
	}
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// SkipSession marks a planned session as skipped.
func (s *sessionService) SkipSession(ctx context.Context, userID int64, sessionID primitive.ObjectID) (*domain.WorkoutSession, error) {
	session, err := s.ownedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != domain.SessionPlanned {
		return nil, fmt.Errorf("%w: cannot skip a %s session", ErrInvalidTransition, session.Status)
	}
	session.Status = domain.SessionSkipped
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// DeleteSession removes a session along with its performance records.
func (s *sessionService) DeleteSession(ctx context.Context, userID int64, sessionID primitive.ObjectID) error {
	session, err := s.ownedSession(ctx, userID, sessionID)
	if err != nil {
		return err
	}
	return s.tx.Run(ctx, func(ctx context.Context) error {
		if err := s.perfRepo.DeleteBySessionID(ctx, session.ID); err != nil {
			return err
		}
		return s.sessionRepo.Delete(ctx, session.ID)
	})
}

// ScheduleWeek plans one session per active-routine day for the current
// Monday-to-Sunday week. Existing planned sessions in the window are
// replaced; started or finished ones are left alone.
func (s *sessionService) ScheduleWeek(ctx context.Context, userID int64, now time.Time) ([]domain.WorkoutSession, error) {
	routine, err := s.routineRepo.GetActiveByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoActiveRoutine
		}
		return nil, err
	}
	days, err := s.dayRepo.GetByRoutineID(ctx, routine.ID)
	if err != nil {
		return nil, err
	}

	monday := startOfWeek(now)
	weekEnd := monday.AddDate(0, 0, 7)

	var created []domain.WorkoutSession
	err = s.tx.Run(ctx, func(ctx context.Context) error {
		created = created[:0]
		if err := s.sessionRepo.DeletePlannedInRange(ctx, userID, routine.ID, monday, weekEnd); err != nil {
			return err
		}
		for _, day := range days {
			offset, ok := weekdayOffsets[day.DayOfWeek]
			if !ok {
				continue
			}
			session := domain.WorkoutSession{
				UserID:        userID,
				RoutineID:     routine.ID,
				DayID:         day.ID,
				ScheduledDate: monday.AddDate(0, 0, offset),
				Status:        domain.SessionPlanned,
			}
			id, err := s.sessionRepo.Create(ctx, &session)
			if err != nil {
				return err
			}
			session.ID = id
			created = append(created, session)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// RecordPerformance stores the set data for one exercise of a session
// and derives the aggregates: total volume, average RPE over the sets
// that reported one, and whether any set beat the exercise's target
// weight.
func (s *sessionService) RecordPerformance(ctx context.Context, userID int64, sessionID primitive.ObjectID, input PerformanceInput) (*domain.ExercisePerformance, error) {
	session, err := s.ownedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if len(input.SetsData) == 0 {
		return nil, ErrValidationFailed
	}
	if input.PainLevel != nil && (*input.PainLevel < 0 || *input.PainLevel > 10) {
		return nil, ErrValidationFailed
	}
	exercise, err := s.exerciseRepo.GetByID(ctx, input.RoutineExerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	if exercise.UserID != userID {
		return nil, ErrExerciseNotFound
	}

	var totalVolume, rpeSum float64
	var rpeCount int
	prAchieved := false
	var bestWeight float64
	for i := range input.SetsData {
		set := &input.SetsData[i]
		if set.SetNumber == 0 {
			set.SetNumber = i + 1
		}
		totalVolume += float64(set.Reps) * set.Weight
		if set.RPE > 0 {
			rpeSum += set.RPE
			rpeCount++
		}
		if set.Weight > bestWeight {
			bestWeight = set.Weight
		}
	}
	avgRPE := 0.0
	if rpeCount > 0 {
		avgRPE = rpeSum / float64(rpeCount)
	}
	prNote := ""
	if exercise.TargetWeight != nil && bestWeight > *exercise.TargetWeight {
		prAchieved = true
		prNote = fmt.Sprintf("Nuevo récord: %.1f kg en %s", bestWeight, exercise.ExerciseName)
	}

	perf := &domain.ExercisePerformance{
		SessionID:         session.ID,
		RoutineExerciseID: exercise.ID,
		UserID:            userID,
		SetsData:          input.SetsData,
		TotalVolume:       totalVolume,
		AvgRPE:            avgRPE,
		PRAchieved:        prAchieved,
		PRNote:            prNote,
		Feedback:          input.Feedback,
		PainLevel:         input.PainLevel,
	}
	id, err := s.perfRepo.Create(ctx, perf)
	if err != nil {
		return nil, err
	}
	perf.ID = id
	return perf, nil
}

func (s *sessionService) ListPerformances(ctx context.Context, userID int64, sessionID primitive.ObjectID) ([]domain.ExercisePerformance, error) {
	if _, err := s.ownedSession(ctx, userID, sessionID); err != nil {
		return nil, err
	}
	return s.perfRepo.GetBySessionID(ctx, sessionID)
}

func (s *sessionService) GetPerformance(ctx context.Context, userID int64, performanceID primitive.ObjectID) (*domain.ExercisePerformance, error) {
	perf, err := s.perfRepo.GetByID(ctx, performanceID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPerformanceNotFound
		}
		return nil, err
	}
	if perf.UserID != userID {
		return nil, ErrPerformanceNotFound
	}
	return perf, nil
}
