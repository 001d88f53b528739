package service

import (
	"context"
	"errors"
	"time"

	"pcfit/routines-service/internal/domain"
	"pcfit/routines-service/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrRoutineNotFound  = errors.New("routine not found")
	ErrDayNotFound      = errors.New("workout day not found")
	ErrExerciseNotFound = errors.New("routine exercise not found")
	ErrNoActiveRoutine  = errors.New("user has no active routine")
	ErrValidationFailed = errors.New("validation failed")
)

// DayDetail is a workout day hydrated with its exercises.
type DayDetail struct {
	Day       domain.WorkoutDay
	Exercises []domain.RoutineExercise
}

// RoutineDetail is a routine hydrated with its full day/exercise graph.
type RoutineDetail struct {
	Routine domain.Routine
	Days    []DayDetail
}

// TodayView is the active routine's day matching today's weekday, plus
// today's session when one exists.
type TodayView struct {
	Routine *domain.Routine
	Day     *DayDetail
	Session *domain.WorkoutSession
}

// RoutineInput carries the writable fields of a routine.
type RoutineInput struct {
	Name          string
	Description   string
	RoutineType   domain.RoutineType
	Difficulty    domain.Experience
	Days          []string
	WeeksDuration int
	IsTemplate    bool
}

// DayInput carries the writable fields of a workout day.
type DayInput struct {
	DayName          string
	DayOfWeek        string
	WarmupDuration   int
	WorkoutDuration  int
	CooldownDuration int
	Notes            string
}

// ExerciseInput carries the writable fields of a routine exercise.
type ExerciseInput struct {
	ExerciseID         string
	ExerciseName       string
	ExerciseMuscleGrp  string
	ExerciseDifficulty string
	ExerciseEquipment  string
	ImageURL           string
	Sets               int
	Reps               string
	RestSeconds        int
	SetType            domain.SetType
	TargetWeight       *float64
	TargetRPE          *float64
	Notes              string
	CoachingTips       string
}

// RoutineService covers the routine/day/exercise CRUD surface, ordering
// invariants included: order values stay dense 0..n-1 within their
// parent after every mutation.
type RoutineService interface {
	CreateRoutine(ctx context.Context, userID int64, input RoutineInput) (*domain.Routine, error)
	ListRoutines(ctx context.Context, userID int64, includeInactive bool) ([]domain.Routine, error)
	GetRoutineDetail(ctx context.Context, userID int64, routineID primitive.ObjectID) (*RoutineDetail, error)
	UpdateRoutine(ctx context.Context, userID int64, routineID primitive.ObjectID, input RoutineInput) (*domain.Routine, error)
	DeleteRoutine(ctx context.Context, userID int64, routineID primitive.ObjectID) error
	ActivateRoutine(ctx context.Context, userID int64, routineID primitive.ObjectID) (*domain.Routine, error)

	AddDay(ctx context.Context, userID int64, routineID primitive.ObjectID, input DayInput) (*domain.WorkoutDay, error)
	ListDays(ctx context.Context, userID int64, routineID primitive.ObjectID) ([]domain.WorkoutDay, error)
	GetDay(ctx context.Context, userID int64, dayID primitive.ObjectID) (*DayDetail, error)
	UpdateDay(ctx context.Context, userID int64, dayID primitive.ObjectID, input DayInput) (*domain.WorkoutDay, error)
	DeleteDay(ctx context.Context, userID int64, dayID primitive.ObjectID) error

	AddExercise(ctx context.Context, userID int64, dayID primitive.ObjectID, input ExerciseInput) (*domain.RoutineExercise, error)
	ListExercises(ctx context.Context, userID int64, dayID primitive.ObjectID) ([]domain.RoutineExercise, error)
	GetExercise(ctx context.Context, userID int64, exerciseID primitive.ObjectID) (*domain.RoutineExercise, error)
	UpdateExercise(ctx context.Context, userID int64, exerciseID primitive.ObjectID, input ExerciseInput) (*domain.RoutineExercise, error)
	DeleteExercise(ctx context.Context, userID int64, exerciseID primitive.ObjectID) error
	ReorderExercises(ctx context.Context, userID int64, dayID primitive.ObjectID, orderedIDs []primitive.ObjectID) ([]domain.RoutineExercise, error)

	TodayRoutine(ctx context.Context, userID int64, now time.Time) (*TodayView, error)
}

// routineService implements the RoutineService interface.
type routineService struct {
	routineRepo  repository.RoutineRepository
	dayRepo      repository.WorkoutDayRepository
	exerciseRepo repository.RoutineExerciseRepository
	sessionRepo  repository.SessionRepository
	tx           repository.TxManager
}

// NewRoutineService creates a new instance of routineService.
func NewRoutineService(
	routineRepo repository.RoutineRepository,
	dayRepo repository.WorkoutDayRepository,
	exerciseRepo repository.RoutineExerciseRepository,
	sessionRepo repository.SessionRepository,
	tx repository.TxManager,
) RoutineService {
	return &routineService{
		routineRepo:  routineRepo,
		dayRepo:      dayRepo,
		exerciseRepo: exerciseRepo,
		sessionRepo:  sessionRepo,
		tx:           tx,
	}
}

// ownedRoutine fetches a routine and verifies ownership. A routine that
// exists but belongs to someone else looks exactly like a missing one.
func (s *routineService) ownedRoutine(ctx context.Context, userID int64, routineID primitive.ObjectID) (*domain.Routine, error) {
	routine, err := s.routineRepo.GetByID(ctx, routineID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRoutineNotFound
		}
		return nil, err
	}
	if routine.UserID != userID {
		return nil, ErrRoutineNotFound
	}
	return routine, nil
}

func (s *routineService) ownedDay(ctx context.Context, userID int64, dayID primitive.ObjectID) (*domain.WorkoutDay, error) {
	day, err := s.dayRepo.GetByID(ctx, dayID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDayNotFound
		}
		return nil, err
	}
	if day.UserID != userID {
		return nil, ErrDayNotFound
	}
	return day, nil
}

func (s *routineService) ownedExercise(ctx context.Context, userID int64, exerciseID primitive.ObjectID) (*domain.RoutineExercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	if exercise.UserID != userID {
		return nil, ErrExerciseNotFound
	}
	return exercise, nil
}

// === Routines ===

func (s *routineService) CreateRoutine(ctx context.Context, userID int64, input RoutineInput) (*domain.Routine, error) {
	if input.Name == "" {
		return nil, ErrValidationFailed
	}
	if input.RoutineType == "" {
		input.RoutineType = domain.RoutineCustom
	}
	if input.WeeksDuration <= 0 {
		input.WeeksDuration = 4
	}

	routine := &domain.Routine{
		UserID:        userID,
		Name:          input.Name,
		Description:   input.Description,
		RoutineType:   input.RoutineType,
		Difficulty:    input.Difficulty,
		Days:          input.Days,
		WeeksDuration: input.WeeksDuration,
		IsTemplate:    input.IsTemplate,
	}
	id, err := s.routineRepo.Create(ctx, routine)
	if err != nil {
		return nil, err
	}
	routine.ID = id
	return routine, nil
}

func (s *routineService) ListRoutines(ctx context.Context, userID int64, includeInactive bool) ([]domain.Routine, error) {
	return s.routineRepo.GetByUserID(ctx, userID, includeInactive)
}

func (s *routineService) GetRoutineDetail(ctx context.Context, userID int64, routineID primitive.ObjectID) (*RoutineDetail, error) {
	routine, err := s.ownedRoutine(ctx, userID, routineID)
	if err != nil {
		return nil, err
	}
	days, err := s.dayRepo.GetByRoutineID(ctx, routineID)
	if err != nil {
		return nil, err
	}
	detail := &RoutineDetail{Routine: *routine, Days: make([]DayDetail, 0, len(days))}
	for _, day := range days {
		exercises, err := s.exerciseRepo.GetByDayID(ctx, day.ID)
		if err != nil {
			return nil, err
		}
		detail.Days = append(detail.Days, DayDetail{Day: day, Exercises: exercises})
	}
	return detail, nil
}

func (s *routineService) UpdateRoutine(ctx context.Context, userID int64, routineID primitive.ObjectID, input RoutineInput) (*domain.Routine, error) {
	routine, err := s.ownedRoutine(ctx, userID, routineID)
	if err != nil {
		return nil, err
	}
	if input.Name != "" {
		routine.Name = input.Name
	}
	routine.Description = input.Description
	if input.RoutineType != "" {
		routine.RoutineType = input.RoutineType
	}
	if input.Difficulty != "" {
		routine.Difficulty = input.Difficulty
	}
	if input.Days != nil {
		routine.Days = input.Days
	}
	if input.WeeksDuration > 0 {
		routine.WeeksDuration = input.WeeksDuration
	}
	routine.IsTemplate = input.IsTemplate

	if err := s.routineRepo.Update(ctx, routine); err != nil {
		return nil, err
	}
	return routine, nil
}

// DeleteRoutine hard-deletes the routine and cascades to its days,
// exercises and sessions in one transaction.
func (s *routineService) DeleteRoutine(ctx context.Context, userID int64, routineID primitive.ObjectID) error {
	if _, err := s.ownedRoutine(ctx, userID, routineID); err != nil {
		return err
	}
	return s.tx.Run(ctx, func(ctx context.Context) error {
		if err := s.exerciseRepo.DeleteByRoutineID(ctx, routineID); err != nil {
			return err
		}
		if err := s.dayRepo.DeleteByRoutineID(ctx, routineID); err != nil {
			return err
		}
		if err := s.sessionRepo.DeleteByRoutineID(ctx, routineID); err != nil {
			return err
		}
		return s.routineRepo.Delete(ctx, routineID)
	})
}

// ActivateRoutine makes the routine the user's single active one. The
// flip happens atomically with deactivating the others.
func (s *routineService) ActivateRoutine(ctx context.Context, userID int64, routineID primitive.ObjectID) (*domain.Routine, error) {
	routine, err := s.ownedRoutine(ctx, userID, routineID)
	if err != nil {
		return nil, err
	}
	err = s.tx.Run(ctx, func(ctx context.Context) error {
		if err := s.routineRepo.DeactivateAllForUser(ctx, userID, routineID); err != nil {
			return err
		}
		return s.routineRepo.SetActive(ctx, routineID, true)
	})
	if err != nil {
		return nil, err
	}
	routine.IsActive = true
	return routine, nil
}

// === Days ===

func (s *routineService) AddDay(ctx context.Context, userID int64, routineID primitive.ObjectID, input DayInput) (*domain.WorkoutDay, error) {
	if input.DayName == "" {
		return nil, ErrValidationFailed
	}
	if _, err := s.ownedRoutine(ctx, userID, routineID); err != nil {
		return nil, err
	}
	siblings, err := s.dayRepo.GetByRoutineID(ctx, routineID)
	if err != nil {
		return nil, err
	}
	day := &domain.WorkoutDay{
		RoutineID:        routineID,
		UserID:           userID,
		DayName:          input.DayName,
		DayOfWeek:        input.DayOfWeek,
		Order:            len(siblings),
		WarmupDuration:   input.WarmupDuration,
		WorkoutDuration:  input.WorkoutDuration,
		CooldownDuration: input.CooldownDuration,
		Notes:            input.Notes,
	}
	id, err := s.dayRepo.Create(ctx, day)
	if err != nil {
		return nil, err
	}
	day.ID = id
	return day, nil
}

func (s *routineService) ListDays(ctx context.Context, userID int64, routineID primitive.ObjectID) ([]domain.WorkoutDay, error) {
	if _, err := s.ownedRoutine(ctx, userID, routineID); err != nil {
		return nil, err
	}
	return s.dayRepo.GetByRoutineID(ctx, routineID)
}

func (s *routineService) GetDay(ctx context.Context, userID int64, dayID primitive.ObjectID) (*DayDetail, error) {
	day, err := s.ownedDay(ctx, userID, dayID)
	if err != nil {
		return nil, err
	}
	exercises, err := s.exerciseRepo.GetByDayID(ctx, dayID)
	if err != nil {
		return nil, err
	}
	return &DayDetail{Day: *day, Exercises: exercises}, nil
}

func (s *routineService) UpdateDay(ctx context.Context, userID int64, dayID primitive.ObjectID, input DayInput) (*domain.WorkoutDay, error) {
	day, err := s.ownedDay(ctx, userID, dayID)
	if err != nil {
		return nil, err
	}
	if input.DayName != "" {
		day.DayName = input.DayName
	}
	day.DayOfWeek = input.DayOfWeek
	day.WarmupDuration = input.WarmupDuration
	day.WorkoutDuration = input.WorkoutDuration
	day.CooldownDuration = input.CooldownDuration
	day.Notes = input.Notes

	if err := s.dayRepo.Update(ctx, day); err != nil {
		return nil, err
	}
	return day, nil
}

// DeleteDay removes the day with its exercises and re-sequences the
// remaining sibling days to a dense 0..n-1 order.
func (s *routineService) DeleteDay(ctx context.Context, userID int64, dayID primitive.ObjectID) error {
	day, err := s.ownedDay(ctx, userID, dayID)
	if err != nil {
		return err
	}
	return s.tx.Run(ctx, func(ctx context.Context) error {
		if err := s.exerciseRepo.DeleteByDayID(ctx, dayID); err != nil {
			return err
		}
		if err := s.dayRepo.Delete(ctx, dayID); err != nil {
			return err
		}
		siblings, err := s.dayRepo.GetByRoutineID(ctx, day.RoutineID)
		if err != nil {
			return err
		}
		for i, sibling := range siblings {
			if sibling.Order != i {
				if err := s.dayRepo.UpdateOrder(ctx, sibling.ID, i); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// === Exercises ===

func (s *routineService) AddExercise(ctx context.Context, userID int64, dayID primitive.ObjectID, input ExerciseInput) (*domain.RoutineExercise, error) {
	if input.ExerciseName == "" || input.Sets <= 0 || input.Reps == "" {
		return nil, ErrValidationFailed
	}
	day, err := s.ownedDay(ctx, userID, dayID)
	if err != nil {
		return nil, err
	}
	siblings, err := s.exerciseRepo.GetByDayID(ctx, dayID)
	if err != nil {
		return nil, err
	}
	if input.SetType == "" {
		input.SetType = domain.SetTypeStraight
	}
	exercise := &domain.RoutineExercise{
		DayID:              dayID,
		RoutineID:          day.RoutineID,
		UserID:             userID,
		ExerciseID:         input.ExerciseID,
		ExerciseName:       input.ExerciseName,
		ExerciseMuscleGrp:  input.ExerciseMuscleGrp,
		ExerciseDifficulty: input.ExerciseDifficulty,
		ExerciseEquipment:  input.ExerciseEquipment,
		ImageURL:           input.ImageURL,
		Order:              len(siblings),
		Sets:               input.Sets,
		Reps:               input.Reps,
		RestSeconds:        input.RestSeconds,
		SetType:            input.SetType,
		TargetWeight:       input.TargetWeight,
		TargetRPE:          input.TargetRPE,
		Notes:              input.Notes,
		CoachingTips:       input.CoachingTips,
	}
	id, err := s.exerciseRepo.Create(ctx, exercise)
	if err != nil {
		return nil, err
	}
	exercise.ID = id
	return exercise, nil
}

func (s *routineService) ListExercises(ctx context.Context, userID int64, dayID primitive.ObjectID) ([]domain.RoutineExercise, error) {
	if _, err := s.ownedDay(ctx, userID, dayID); err != nil {
		return nil, err
	}
	return s.exerciseRepo.GetByDayID(ctx, dayID)
}

func (s *routineService) GetExercise(ctx context.Context, userID int64, exerciseID primitive.ObjectID) (*domain.RoutineExercise, error) {
	return s.ownedExercise(ctx, userID, exerciseID)
}

func (s *routineService) UpdateExercise(ctx context.Context, userID int64, exerciseID primitive.ObjectID, input ExerciseInput) (*domain.RoutineExercise, error) {
	exercise, err := s.ownedExercise(ctx, userID, exerciseID)
	if err != nil {
		return nil, err
	}
	if input.Sets > 0 {
		exercise.Sets = input.Sets
	}
	if input.Reps != "" {
		exercise.Reps = input.Reps
	}
	if input.RestSeconds > 0 {
		exercise.RestSeconds = input.RestSeconds
	}
	if input.SetType != "" {
		exercise.SetType = input.SetType
	}
	exercise.TargetWeight = input.TargetWeight
	exercise.TargetRPE = input.TargetRPE
	exercise.Notes = input.Notes
	exercise.CoachingTips = input.CoachingTips

	if err := s.exerciseRepo.Update(ctx, exercise); err != nil {
		return nil, err
	}
	return exercise, nil
}

// DeleteExercise removes the exercise and re-sequences its siblings.
func (s *routineService) DeleteExercise(ctx context.Context, userID int64, exerciseID primitive.ObjectID) error {
	exercise, err := s.ownedExercise(ctx, userID, exerciseID)
	if err != nil {
		return err
	}
	return s.tx.Run(ctx, func(ctx context.Context) error {
		if err := s.exerciseRepo.Delete(ctx, exerciseID); err != nil {
			return err
		}
		siblings, err := s.exerciseRepo.GetByDayID(ctx, exercise.DayID)
		if err != nil {
			return err
		}
		for i, sibling := range siblings {
			if sibling.Order != i {
				if err := s.exerciseRepo.UpdateOrder(ctx, sibling.ID, i); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// ReorderExercises rewrites the order of a day's exercises to match the
// given id list. Every exercise of the day must appear exactly once.
func (s *routineService) ReorderExercises(ctx context.Context, userID int64, dayID primitive.ObjectID, orderedIDs []primitive.ObjectID) ([]domain.RoutineExercise, error) {
	if _, err := s.ownedDay(ctx, userID, dayID); err != nil {
		return nil, err
	}
	current, err := s.exerciseRepo.GetByDayID(ctx, dayID)
	if err != nil {
		return nil, err
	}
	if len(orderedIDs) != len(current) {
		return nil, ErrValidationFailed
	}
	byID := make(map[primitive.ObjectID]*domain.RoutineExercise, len(current))
	for i := range current {
		byID[current[i].ID] = &current[i]
	}
	for _, id := range orderedIDs {
		if _, ok := byID[id]; !ok {
			return nil, ErrValidationFailed
		}
	}

	err = s.tx.Run(ctx, func(ctx context.Context) error {
		for i, id := range orderedIDs {
			if byID[id].Order != i {
				if err := s.exerciseRepo.UpdateOrder(ctx, id, i); err != nil {
					return err
				}
			}
			byID[id].Order = i
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	reordered := make([]domain.RoutineExercise, len(orderedIDs))
	for i, id := range orderedIDs {
		reordered[i] = *byID[id]
	}
	return reordered, nil
}

// === Today ===

// TodayRoutine resolves the active routine's day whose weekday tag
// matches today. Day may be nil when today is a rest day.
func (s *routineService) TodayRoutine(ctx context.Context, userID int64, now time.Time) (*TodayView, error) {
	routine, err := s.routineRepo.GetActiveByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoActiveRoutine
		}
		return nil, err
	}

	view := &TodayView{Routine: routine}
	weekday := spanishWeekdays[now.UTC().Weekday()]

	days, err := s.dayRepo.GetByRoutineID(ctx, routine.ID)
	if err != nil {
		return nil, err
	}
	for _, day := range days {
		if day.DayOfWeek == weekday {
			exercises, err := s.exerciseRepo.GetByDayID(ctx, day.ID)
			if err != nil {
				return nil, err
			}
			d := day
			view.Day = &DayDetail{Day: d, Exercises: exercises}
			break
		}
	}

	// Attach today's session when one exists.
	dayStart := time.Date(now.UTC().Year(), now.UTC().Month(), now.UTC().Day(), 0, 0, 0, 0, time.UTC)
	sessions, err := s.sessionRepo.GetByUserAndScheduledRange(ctx, userID, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	for i := range sessions {
		if sessions[i].RoutineID == routine.ID {
			view.Session = &sessions[i]
			break
		}
	}

	return view, nil
}
