package repository

import (
	"context"
	"time"

	"pcfit/routines-service/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// TxManager runs a callback within one logical transaction. Multi-row
// mutations (routine graph creation, activation flips, weekly session
// rescheduling, cascade deletes) go through it so they commit or roll
// back as a unit.
type TxManager interface {
	Run(ctx context.Context, fn func(ctx context.Context) error) error
}

// RoutineRepository defines the interface for interacting with routine data.
type RoutineRepository interface {
	Create(ctx context.Context, routine *domain.Routine) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Routine, error)
	GetByUserID(ctx context.Context, userID int64, includeInactive bool) ([]domain.Routine, error)
	GetActiveByUserID(ctx context.Context, userID int64) (*domain.Routine, error)
	Update(ctx context.Context, routine *domain.Routine) error
	SetActive(ctx context.Context, id primitive.ObjectID, active bool) error
	DeactivateAllForUser(ctx context.Context, userID int64, exclude primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// WorkoutDayRepository defines the interface for interacting with workout day data.
type WorkoutDayRepository interface {
	Create(ctx context.Context, day *domain.WorkoutDay) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutDay, error)
	GetByRoutineID(ctx context.Context, routineID primitive.ObjectID) ([]domain.WorkoutDay, error) // sorted by order
	Update(ctx context.Context, day *domain.WorkoutDay) error
	UpdateOrder(ctx context.Context, id primitive.ObjectID, order int) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByRoutineID(ctx context.Context, routineID primitive.ObjectID) error
}

// RoutineExerciseRepository defines the interface for interacting with
// the exercise slots of workout days.
type RoutineExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.RoutineExercise) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.RoutineExercise, error)
	GetByDayID(ctx context.Context, dayID primitive.ObjectID) ([]domain.RoutineExercise, error) // sorted by order
	GetByUserID(ctx context.Context, userID int64) ([]domain.RoutineExercise, error)
	Update(ctx context.Context, exercise *domain.RoutineExercise) error
	UpdateOrder(ctx context.Context, id primitive.ObjectID, order int) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByDayID(ctx context.Context, dayID primitive.ObjectID) error
	DeleteByRoutineID(ctx context.Context, routineID primitive.ObjectID) error
}

// SessionRepository defines the interface for interacting with workout sessions.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.WorkoutSession) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutSession, error)
	GetByUserID(ctx context.Context, userID int64, limit int64) ([]domain.WorkoutSession, error)
	GetByUserAndScheduledRange(ctx context.Context, userID int64, from, to time.Time) ([]domain.WorkoutSession, error)
	Update(ctx context.Context, session *domain.WorkoutSession) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByRoutineID(ctx context.Context, routineID primitive.ObjectID) error
	DeletePlannedInRange(ctx context.Context, userID int64, routineID primitive.ObjectID, from, to time.Time) error
}

// PerformanceRepository defines the interface for interacting with
// per-exercise performance records.
type PerformanceRepository interface {
	Create(ctx context.Context, perf *domain.ExercisePerformance) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ExercisePerformance, error)
	GetBySessionID(ctx context.Context, sessionID primitive.ObjectID) ([]domain.ExercisePerformance, error)
	GetByUserID(ctx context.Context, userID int64) ([]domain.ExercisePerformance, error)
	DeleteBySessionID(ctx context.Context, sessionID primitive.ObjectID) error
}
