package generator

import (
	"context"
	"log"
	"strconv"

	"pcfit/routines-service/internal/domain"
)

// The legacy weekly split: one muscle group per weekday, in order.
var legacySplit = []struct {
	Day    string
	Muscle string
}{
	{"lunes", "pierna"},
	{"martes", "pecho"},
	{"miercoles", "espalda"},
	{"jueves", "brazos"},
	{"viernes", "cuerpo_completo"},
}

const legacyExercisesPerDay = 5

var legacyDayNames = map[string][]string{
	"pierna":          {"Piernas de Acero", "Fuerza Inferior"},
	"pecho":           {"Empuje Superior", "Tono y Volumen"},
	"espalda":         {"Espalda Definida", "Fortaleza Dorsal"},
	"brazos":          {"Brazos de Acero", "Esculpe tus Brazos"},
	"cuerpo_completo": {"Entrenamiento Total", "Cuerpo Completo"},
}

// legacyPrescription is the original goal-by-experience table. Reps are
// numeric here; they are rendered as strings when persisted.
func legacyPrescription(goal domain.Goal, experience domain.Experience) (sets, reps, rest int) {
	switch goal {
	case domain.GoalGainMuscle:
		switch experience {
		case domain.ExperienceBeginner:
			return 3, 10, 60
		case domain.ExperienceIntermediate:
			return 4, 10, 75
		default:
			return 5, 8, 90
		}
	case domain.GoalLoseWeight:
		switch experience {
		case domain.ExperienceBeginner:
			return 3, 12, 45
		case domain.ExperienceIntermediate:
			return 4, 12, 45
		default:
			return 4, 15, 30
		}
	case domain.GoalTone, domain.GoalMaintain:
		switch experience {
		case domain.ExperienceBeginner:
			return 3, 12, 60
		case domain.ExperienceIntermediate:
			return 4, 10, 60
		default:
			return 4, 8, 75
		}
	}
	return 4, 10, 60
}

// legacyDuration draws the session length in minutes for the experience level.
func (m *Materializer) legacyDuration(experience domain.Experience) int {
	switch experience {
	case domain.ExperienceBeginner:
		return 30 + m.rng.Intn(11)
	case domain.ExperienceIntermediate:
		return 45 + m.rng.Intn(11)
	default:
		return 60 + m.rng.Intn(16)
	}
}

// GenerateLegacyRoutine builds the original fixed five-day split. Unlike
// the smart path it does not filter by equipment and does not synthesize
// placeholders: any muscle group with fewer than five catalog exercises
// fails the whole operation with InsufficientCatalogError.
func (m *Materializer) GenerateLegacyRoutine(ctx context.Context, userID int64, token string) (*domain.Routine, error) {
	profile, err := m.users.GetProfile(ctx, token)
	if err != nil || profile == nil {
		return nil, ErrUpstreamUnavailable
	}

	duration := m.legacyDuration(profile.Experience)

	// Gather all exercises first; the hard-fail policy means nothing
	// should persist when any group is short.
	type legacyDay struct {
		day       string
		muscle    string
		name      string
		exercises []domain.RoutineExercise
	}
	days := make([]legacyDay, 0, len(legacySplit))
	sets, reps, rest := legacyPrescription(profile.Goal, profile.Experience)

	for _, slot := range legacySplit {
		candidates := m.catalog.FetchFiltered(ctx, token, slot.Muscle, string(profile.Experience))
		if len(candidates) < legacyExercisesPerDay {
			return nil, &InsufficientCatalogError{MuscleGroup: slot.Muscle, Received: len(candidates)}
		}

		m.rng.Shuffle(len(candidates), func(i, j int) {
			candidates[i], candidates[j] = candidates[j], candidates[i]
		})
		picked := candidates[:legacyExercisesPerDay]

		names := legacyDayNames[slot.Muscle]
		dayName := "Día de Entrenamiento"
		if len(names) > 0 {
			dayName = names[m.rng.Intn(len(names))]
		}

		exercises := make([]domain.RoutineExercise, 0, len(picked))
		for i, ex := range picked {
			exercises = append(exercises, domain.RoutineExercise{
				UserID:             userID,
				ExerciseID:         ex.ID,
				ExerciseName:       ex.Name,
				ExerciseMuscleGrp:  displayOr(ex.MuscleGroupDisplay, ex.MuscleGroup),
				ExerciseDifficulty: displayOr(ex.DifficultyDisplay, ex.Difficulty),
				ExerciseEquipment:  displayOr(ex.EquipmentDisplay, ex.Equipment),
				ImageURL:           ex.ImageURL,
				Order:              i,
				Sets:               sets,
				Reps:               strconv.Itoa(reps),
				RestSeconds:        rest,
				SetType:            domain.SetTypeStraight,
			})
		}
		days = append(days, legacyDay{day: slot.Day, muscle: slot.Muscle, name: dayName, exercises: exercises})
	}

	routine := &domain.Routine{
		UserID:        userID,
		Name:          "Rutina Semanal",
		Description:   "Rutina generada con la división semanal clásica.",
		RoutineType:   domain.RoutineCustom,
		Difficulty:    profile.Experience,
		Days:          []string{"lunes", "martes", "miercoles", "jueves", "viernes"},
		WeeksDuration: 4,
	}

	err = m.tx.Run(ctx, func(ctx context.Context) error {
		routineID, err := m.routines.Create(ctx, routine)
		if err != nil {
			return err
		}
		routine.ID = routineID

		for i, d := range days {
			day := &domain.WorkoutDay{
				RoutineID:       routineID,
				UserID:          userID,
				DayName:         d.name,
				DayOfWeek:       d.day,
				Order:           i,
				WorkoutDuration: duration,
			}
			dayID, err := m.days.Create(ctx, day)
			if err != nil {
				return err
			}
			for j := range d.exercises {
				d.exercises[j].DayID = dayID
				d.exercises[j].RoutineID = routineID
				if _, err := m.exs.Create(ctx, &d.exercises[j]); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("ERROR: legacy routine generation failed for user %d: %v", userID, err)
		return nil, err
	}

	return routine, nil
}
