package generator

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"

	"pcfit/routines-service/internal/clients"
	"pcfit/routines-service/internal/domain"
	"pcfit/routines-service/internal/repository"
)

// --- Error Definitions ---
var (
	// ErrUpstreamUnavailable means the users collaborator could not be
	// reached; generation cannot proceed without a profile.
	ErrUpstreamUnavailable = errors.New("users service unavailable")
	// ErrBadTemplate means the template catalog has no entry for the
	// profile's experience level.
	ErrBadTemplate = errors.New("no template for user profile")
)

// InsufficientCatalogError is the legacy path's hard failure when a
// muscle group has fewer catalog exercises than required.
type InsufficientCatalogError struct {
	MuscleGroup string
	Received    int
}

func (e *InsufficientCatalogError) Error() string {
	return fmt.Sprintf("no hay suficientes ejercicios para %s: se recibieron %d", e.MuscleGroup, e.Received)
}

// Materializer turns a template plus live catalog data into a persisted
// routine graph. The whole graph commits in one transaction.
type Materializer struct {
	users    clients.UsersService
	catalog  clients.ExerciseCatalog
	selector *Selector
	routines repository.RoutineRepository
	days     repository.WorkoutDayRepository
	exs      repository.RoutineExerciseRepository
	tx       repository.TxManager
	rng      *rand.Rand
}

// NewMaterializer wires the routine generator. The random source drives
// exercise sampling and legacy day-name selection; inject a seeded one
// in tests.
func NewMaterializer(
	users clients.UsersService,
	catalog clients.ExerciseCatalog,
	routines repository.RoutineRepository,
	days repository.WorkoutDayRepository,
	exs repository.RoutineExerciseRepository,
	tx repository.TxManager,
	rng *rand.Rand,
) *Materializer {
	return &Materializer{
		users:    users,
		catalog:  catalog,
		selector: NewSelector(catalog, rng),
		routines: routines,
		days:     days,
		exs:      exs,
		tx:       tx,
		rng:      rng,
	}
}

// GenerateSmartRoutine builds and persists a full routine for the user:
// template by (experience, sex), adjusted by goal, each quota filled from
// the catalog with placeholder fallback. The new routine becomes the
// user's active routine; everything persists in one transaction.
func (m *Materializer) GenerateSmartRoutine(ctx context.Context, userID int64, token string) (*domain.Routine, error) {
	// 1. Resolve the profile. Unreachable users service is fatal here.
	profile, err := m.users.GetProfile(ctx, token)
	if err != nil || profile == nil {
		return nil, ErrUpstreamUnavailable
	}

	// 2. Template lookup and goal adjustment.
	tpl, err := LookupTemplate(profile.Experience, profile.Sex)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadTemplate, err)
	}
	tpl = AdjustForGoal(tpl, profile.Goal)

	// 3. Select exercises for every quota up front, keeping network calls
	// out of the transaction. The selector degrades to placeholders, so
	// this loop cannot fail.
	type daySelection struct {
		quota     MuscleQuota
		exercises []clients.CatalogExercise
	}
	selections := make([][]daySelection, len(tpl.DayTemplates))
	for i, dayTpl := range tpl.DayTemplates {
		for _, quota := range dayTpl.Quotas {
			picked := m.selector.Select(ctx, token, quota.MuscleGroup, profile.Experience, profile.Equipment, quota.Count)
			selections[i] = append(selections[i], daySelection{quota: quota, exercises: picked})
		}
	}

	// 4. Persist the routine graph.
	routine := &domain.Routine{
		UserID:        userID,
		Name:          tpl.Name,
		Description:   tpl.Description,
		RoutineType:   tpl.RoutineType,
		Difficulty:    profile.Experience,
		Days:          tpl.Days,
		WeeksDuration: tpl.WeeksDuration,
		IsActive:      true,
	}

	err = m.tx.Run(ctx, func(ctx context.Context) error {
		routineID, err := m.routines.Create(ctx, routine)
		if err != nil {
			return err
		}
		routine.ID = routineID

		// The fresh routine is the single active one.
		if err := m.routines.DeactivateAllForUser(ctx, userID, routineID); err != nil {
			return err
		}

		for i, dayTpl := range tpl.DayTemplates {
			day := &domain.WorkoutDay{
				RoutineID:        routineID,
				UserID:           userID,
				DayName:          dayTpl.Name,
				DayOfWeek:        dayTpl.DayOfWeek,
				Order:            i,
				WarmupDuration:   dayTpl.WarmupDuration,
				WorkoutDuration:  dayTpl.WorkoutDuration,
				CooldownDuration: dayTpl.CooldownDuration,
			}
			dayID, err := m.days.Create(ctx, day)
			if err != nil {
				return err
			}

			// Exercise order is a running index across the whole day,
			// not reset per muscle group.
			exerciseOrder := 0
			for _, sel := range selections[i] {
				prescription := PrescriptionFor(profile.Experience, sel.quota.MuscleGroup)
				notes, tips := CoachingFor(profile.Experience, sel.quota.MuscleGroup)
				for _, ex := range sel.exercises {
					slot := &domain.RoutineExercise{
						DayID:              dayID,
						RoutineID:          routineID,
						UserID:             userID,
						ExerciseID:         ex.ID,
						ExerciseName:       ex.Name,
						ExerciseMuscleGrp:  displayOr(ex.MuscleGroupDisplay, ex.MuscleGroup),
						ExerciseDifficulty: displayOr(ex.DifficultyDisplay, ex.Difficulty),
						ExerciseEquipment:  displayOr(ex.EquipmentDisplay, ex.Equipment),
						ImageURL:           ex.ImageURL,
						Order:              exerciseOrder,
						Sets:               prescription.Sets,
						Reps:               prescription.Reps,
						RestSeconds:        prescription.RestSeconds,
						SetType:            domain.SetTypeStraight,
						Notes:              notes,
						CoachingTips:       tips,
					}
					if _, err := m.exs.Create(ctx, slot); err != nil {
						return err
					}
					exerciseOrder++
				}
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("ERROR: smart routine generation failed for user %d: %v", userID, err)
		return nil, err
	}

	return routine, nil
}

func displayOr(display, machine string) string {
	if display != "" {
		return display
	}
	return machine
}
