package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pcfit/routines-service/internal/domain"
	"pcfit/routines-service/internal/repository"
	"pcfit/routines-service/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExportFormat tags the envelope so imports can reject payloads from
// incompatible versions.
const ExportFormat = "workout_routine_v1"

// --- Error Definitions ---
var (
	ErrBadExportFormat   = errors.New("unsupported export format")
	ErrArchivingDisabled = errors.New("export archiving is not configured")
)

// ExportedExercise is one exercise slot in portable form.
type ExportedExercise struct {
	ExerciseID         string   `json:"exercise_id,omitempty"`
	ExerciseName       string   `json:"exercise_name"`
	ExerciseMuscleGrp  string   `json:"exercise_muscle_group,omitempty"`
	ExerciseDifficulty string   `json:"exercise_difficulty,omitempty"`
	ExerciseEquipment  string   `json:"exercise_equipment,omitempty"`
	ImageURL           string   `json:"image_url,omitempty"`
	Order              int      `json:"order"`
	Sets               int      `json:"sets"`
	Reps               string   `json:"reps"`
	RestSeconds        int      `json:"rest_seconds"`
	SetType            string   `json:"set_type"`
	TargetWeight       *float64 `json:"target_weight,omitempty"`
	TargetRPE          *float64 `json:"target_rpe,omitempty"`
	Notes              string   `json:"notes,omitempty"`
	CoachingTips       string   `json:"coaching_tips,omitempty"`
}

// ExportedDay is one workout day in portable form.
type ExportedDay struct {
	DayName          string             `json:"day_name"`
	DayOfWeek        string             `json:"day_of_week,omitempty"`
	Order            int                `json:"order"`
	WarmupDuration   int                `json:"warmup_duration"`
	WorkoutDuration  int                `json:"workout_duration"`
	CooldownDuration int                `json:"cooldown_duration"`
	Notes            string             `json:"notes,omitempty"`
	Exercises        []ExportedExercise `json:"exercises"`
}

// ExportedRoutine is the routine subtree of the envelope.
type ExportedRoutine struct {
	Name          string        `json:"name"`
	Description   string        `json:"description,omitempty"`
	RoutineType   string        `json:"routine_type"`
	Difficulty    string        `json:"difficulty,omitempty"`
	Days          []string      `json:"days"`
	WeeksDuration int           `json:"weeks_duration"`
	WorkoutDays   []ExportedDay `json:"workout_days"`
}

// ExportEnvelope is the portable representation of a full routine graph.
// It carries no ids or user references, so it can be imported by anyone.
type ExportEnvelope struct {
	Format     string          `json:"format"`
	ExportedAt time.Time       `json:"exported_at"`
	Routine    ExportedRoutine `json:"routine"`
}

// ArchiveResult points at an archived export object.
type ArchiveResult struct {
	ObjectKey   string `json:"object_key"`
	DownloadURL string `json:"download_url"`
}

// ExportService serializes routines to portable envelopes and back.
type ExportService interface {
	Export(ctx context.Context, userID int64, routineID primitive.ObjectID) (*ExportEnvelope, error)
	Import(ctx context.Context, userID int64, envelope *ExportEnvelope) (*domain.Routine, error)
	ArchiveExport(ctx context.Context, userID int64, routineID primitive.ObjectID) (*ArchiveResult, error)
}

type exportService struct {
	routineRepo  repository.RoutineRepository
	dayRepo      repository.WorkoutDayRepository
	exerciseRepo repository.RoutineExerciseRepository
	tx           repository.TxManager
	fileStorage  storage.FileStorage // nil when archiving is disabled
}

// NewExportService creates a new instance of exportService. Pass a nil
// fileStorage to run without the archive endpoint.
func NewExportService(
	routineRepo repository.RoutineRepository,
	dayRepo repository.WorkoutDayRepository,
	exerciseRepo repository.RoutineExerciseRepository,
	tx repository.TxManager,
	fileStorage storage.FileStorage,
) ExportService {
	return &exportService{
		routineRepo:  routineRepo,
		dayRepo:      dayRepo,
		exerciseRepo: exerciseRepo,
		tx:           tx,
		fileStorage:  fileStorage,
	}
}

// Export builds the portable envelope for one of the user's routines.
func (s *exportService) Export(ctx context.Context, userID int64, routineID primitive.ObjectID) (*ExportEnvelope, error) {
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

	days, err := s.dayRepo.GetByRoutineID(ctx, routineID)
	if err != nil {
		return nil, err
	}

	exported := ExportedRoutine{
		Name:          routine.Name,
		Description:   routine.Description,
		RoutineType:   string(routine.RoutineType),
		Difficulty:    string(routine.Difficulty),
		Days:          routine.Days,
		WeeksDuration: routine.WeeksDuration,
		WorkoutDays:   make([]ExportedDay, 0, len(days)),
	}
	for _, day := range days {
		exercises, err := s.exerciseRepo.GetByDayID(ctx, day.ID)
		if err != nil {
			return nil, err
		}
		exportedDay := ExportedDay{
			DayName:          day.DayName,
			DayOfWeek:        day.DayOfWeek,
			Order:            day.Order,
			WarmupDuration:   day.WarmupDuration,
			WorkoutDuration:  day.WorkoutDuration,
			CooldownDuration: day.CooldownDuration,
			Notes:            day.Notes,
			Exercises:        make([]ExportedExercise, 0, len(exercises)),
		}
		for _, ex := range exercises {
			exportedDay.Exercises = append(exportedDay.Exercises, ExportedExercise{
				ExerciseID:         ex.ExerciseID,
				ExerciseName:       ex.ExerciseName,
				ExerciseMuscleGrp:  ex.ExerciseMuscleGrp,
				ExerciseDifficulty: ex.ExerciseDifficulty,
				ExerciseEquipment:  ex.ExerciseEquipment,
				ImageURL:           ex.ImageURL,
				Order:              ex.Order,
				Sets:               ex.Sets,
				Reps:               ex.Reps,
				RestSeconds:        ex.RestSeconds,
				SetType:            string(ex.SetType),
				TargetWeight:       ex.TargetWeight,
				TargetRPE:          ex.TargetRPE,
				Notes:              ex.Notes,
				CoachingTips:       ex.CoachingTips,
			})
		}
		exported.WorkoutDays = append(exported.WorkoutDays, exportedDay)
	}

	return &ExportEnvelope{
		Format:     ExportFormat,
		ExportedAt: time.Now().UTC(),
		Routine:    exported,
	}, nil
}

// Import recreates the envelope's routine graph under the caller's
// account. The imported copy arrives inactive.
func (s *exportService) Import(ctx context.Context, userID int64, envelope *ExportEnvelope) (*domain.Routine, error) {
	if envelope == nil || envelope.Format != ExportFormat {
		return nil, ErrBadExportFormat
	}
	if envelope.Routine.Name == "" || len(envelope.Routine.WorkoutDays) == 0 {
		return nil, ErrValidationFailed
	}

	routineType := domain.RoutineType(envelope.Routine.RoutineType)
	if routineType == "" {
		routineType = domain.RoutineCustom
	}
	weeks := envelope.Routine.WeeksDuration
	if weeks <= 0 {
		weeks = 4
	}

	routine := &domain.Routine{
		UserID:        userID,
		Name:          envelope.Routine.Name,
		Description:   envelope.Routine.Description,
		RoutineType:   routineType,
		Difficulty:    domain.Experience(envelope.Routine.Difficulty),
		Days:          envelope.Routine.Days,
		WeeksDuration: weeks,
	}

	err := s.tx.Run(ctx, func(ctx context.Context) error {
		routineID, err := s.routineRepo.Create(ctx, routine)
		if err != nil {
			return err
		}
		routine.ID = routineID

		for i, expDay := range envelope.Routine.WorkoutDays {
			day := &domain.WorkoutDay{
				RoutineID:        routineID,
				UserID:           userID,
				DayName:          expDay.DayName,
				DayOfWeek:        expDay.DayOfWeek,
				Order:            i,
				WarmupDuration:   expDay.WarmupDuration,
				WorkoutDuration:  expDay.WorkoutDuration,
				CooldownDuration: expDay.CooldownDuration,
				Notes:            expDay.Notes,
			}
			dayID, err := s.dayRepo.Create(ctx, day)
			if err != nil {
				return err
			}

			for j, expEx := range expDay.Exercises {
				setType := domain.SetType(expEx.SetType)
				if setType == "" {
					setType = domain.SetTypeStraight
				}
				exercise := &domain.RoutineExercise{
					DayID:              dayID,
					RoutineID:          routineID,
					UserID:             userID,
					ExerciseID:         expEx.ExerciseID,
					ExerciseName:       expEx.ExerciseName,
					ExerciseMuscleGrp:  expEx.ExerciseMuscleGrp,
					ExerciseDifficulty: expEx.ExerciseDifficulty,
					ExerciseEquipment:  expEx.ExerciseEquipment,
					ImageURL:           expEx.ImageURL,
					Order:              j,
					Sets:               expEx.Sets,
					Reps:               expEx.Reps,
					RestSeconds:        expEx.RestSeconds,
					SetType:            setType,
					TargetWeight:       expEx.TargetWeight,
					TargetRPE:          expEx.TargetRPE,
					Notes:              expEx.Notes,
					CoachingTips:       expEx.CoachingTips,
				}
				if _, err := s.exerciseRepo.Create(ctx, exercise); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return routine, nil
}

// ArchiveExport serializes the envelope, stores it as an object and
// returns a presigned download link.
func (s *exportService) ArchiveExport(ctx context.Context, userID int64, routineID primitive.ObjectID) (*ArchiveResult, error) {
	if s.fileStorage == nil {
		return nil, ErrArchivingDisabled
	}
	envelope, err := s.Export(ctx, userID, routineID)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(envelope)
	if err != nil {
		return nil, err
	}

	objectKey := fmt.Sprintf("exports/%d/%s-%s.json", userID, routineID.Hex(), uuid.NewString())
	if err := s.fileStorage.UploadObject(ctx, objectKey, "application/json", payload); err != nil {
		return nil, err
	}
	url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, objectKey, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, err
	}
	return &ArchiveResult{ObjectKey: objectKey, DownloadURL: url}, nil
}
