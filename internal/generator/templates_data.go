package generator

import "pcfit/routines-service/internal/domain"

// Hand-authored base templates, one per (experience, sex) pair. Day and
// muscle labels stay in Spanish to match the exercise catalog and the
// client apps.

var maleTemplates = map[domain.Experience]Template{
	domain.ExperienceBeginner: {
		Name:          "Plan Principiante - Cuerpo Completo",
		Description:   "Rutina de cuerpo completo para construir una base de fuerza y técnica.",
		RoutineType:   domain.RoutineFullBody,
		Days:          []string{"lunes", "martes", "miercoles", "jueves", "viernes"},
		WeeksDuration: 4,
		DayTemplates: []DayTemplate{
			{
				Name: "Lunes - Cuerpo Completo A", DayOfWeek: "lunes",
				WarmupDuration: 10, WorkoutDuration: 40, CooldownDuration: 5,
				Quotas: []MuscleQuota{{"pierna", 2}, {"pecho", 2}, {"espalda", 2}},
			},
			{
				Name: "Martes - Cuerpo Completo B", DayOfWeek: "martes",
				WarmupDuration: 10, WorkoutDuration: 40, CooldownDuration: 5,
				Quotas: []MuscleQuota{{"pierna", 2}, {"hombros", 2}, {"brazos", 2}},
			},
			{
				Name: "Miércoles - Cardio y Core", DayOfWeek: "miercoles",
				WarmupDuration: 5, WorkoutDuration: 30, CooldownDuration: 10,
				Quotas: []MuscleQuota{{"cardio", 2}, {"abdomen", 3}},
			},
			{
				Name: "Jueves - Cuerpo Completo C", DayOfWeek: "jueves",
				WarmupDuration: 10, WorkoutDuration: 40, CooldownDuration: 5,
				Quotas: []MuscleQuota{{"gluteo", 2}, {"espalda", 2}, {"pecho", 2}},
			},
			{
				Name: "Viernes - Fuerza Fundamental", DayOfWeek: "viernes",
				WarmupDuration: 10, WorkoutDuration: 45, CooldownDuration: 5,
				Quotas: []MuscleQuota{{"pierna", 2}, {"brazos", 2}, {"abdomen", 2}},
			},
		},
	},
	domain.ExperienceIntermediate: {
		Name:          "Plan Intermedio - Torso y Pierna",
		Description:   "División torso/pierna de cuatro días con mayor volumen por grupo muscular.",
		RoutineType:   domain.RoutineUpperLower,
		Days:          []string{"lunes", "martes", "jueves", "viernes"},
		WeeksDuration: 6,
		DayTemplates: []DayTemplate{
			{
				Name: "Lunes - Torso Fuerza", DayOfWeek: "lunes",
				WarmupDuration: 10, WorkoutDuration: 50, CooldownDuration: 5,
				Quotas: []MuscleQuota{{"pecho", 3}, {"espalda", 3}, {"hombros", 2}},
			},
			{
				Name: "Martes - Pierna Fuerza", DayOfWeek: "martes",
				WarmupDuration: 10, WorkoutDuration: 50, CooldownDuration: 5,
				Quotas: []MuscleQuota{{"pierna", 3}, {"gluteo", 2}, {"abdomen", 2}},
			},
			{
				Name: "Jueves - Torso Volumen", DayOfWeek: "jueves",
				WarmupDuration: 10, WorkoutDuration: 50, CooldownDuration: 5,
				Quotas: []MuscleQuota{{"espalda", 3}, {"pecho", 2}, {"brazos", 3}},
			},
			{
				Name: "Viernes - Pierna Volumen", DayOfWeek: "viernes",
				WarmupDuration: 10, WorkoutDuration: 50, CooldownDuration: 5,
				Quotas: []MuscleQuota{{"pierna", 3}, {"gluteo", 2}, {"pantorrilla", 2}},
			},
		},
	},
	domain.ExperienceAdvanced: {
		Name:          "Plan Avanzado - Empuje, Tirón y Pierna",
		Description:   "División empuje/tirón/pierna de cinco días para máxima especialización.",
		RoutineType:   domain.RoutinePushPullLegs,
		Days:          []string{"lunes", "martes", "miercoles", "jueves", "viernes"},
		WeeksDuration: 8,
		DayTemplates: []DayTemplate{
			{
				Name: "Lunes - Empuje Pesado", DayOfWeek: "lunes",
				WarmupDuration: 15, WorkoutDuration: 60, CooldownDuration: 5,
				Quotas: []MuscleQuota{{"pecho", 3}, {"hombros", 3}, {"brazos", 2}},
			},
			{
				Name: "Martes - Tirón Pesado", DayOfWeek: "martes",
				WarmupDuration: 15, WorkoutDuration: 60, CooldownDuration: 5,
				Quotas: []MuscleQuota{{"espalda", 4}, {"brazos", 2}, {"antebrazo", 1}},
			},
			{
				Name: "Miércoles - Pierna Pesada", DayOfWeek: "miercoles",
				WarmupDuration: 15, WorkoutDuration: 60, CooldownDuration: 5,
				Quotas: []MuscleQuota{{"pierna", 4}, {"gluteo", 2}, {"pantorrilla", 2}},
			},
			{
				Name: "Jueves - Empuje Volumen", DayOfWeek: "jueves",
				WarmupDuration: 10, WorkoutDuration: 55, CooldownDuration: 5,
				Quotas: []MuscleQuota{{"hombros", 3}, {"pecho", 2}, {"abdomen", 2}},
			},
			{
				Name: "Viernes - Tirón y Pierna", DayOfWeek: "viernes",
				WarmupDuration: 10, WorkoutDuration: 55, CooldownDuration: 5,
				Quotas: []MuscleQuota{{"espalda", 3}, {"pierna", 2}, {"abdomen", 2}},
			},
		},
	},
}

var femaleTemplates = map[domain.Experience]Template{
	domain.ExperienceBeginner: {
		Name:          "Plan Principiante - Tono Total",
		Description:   "Rutina de cuerpo completo con énfasis en tren inferior y glúteo.",
		RoutineType:   domain.RoutineFullBody,
		Days:          []string{"lunes", "miercoles", "viernes"},
		WeeksDuration: 4,
		DayTemplates: []DayTemplate{
			{
				Name: "Lunes - Inferior y Glúteo", DayOfWeek: "lunes",
				WarmupDuration: 10, WorkoutDuration: 40, CooldownDuration: 5,
				Quotas: []MuscleQuota{{"pierna", 2}, {"gluteo", 3}, {"abdomen", 2}},
			},
			{
				Name: "Miércoles - Superior y Core", DayOfWeek: "miercoles",
				WarmupDuration: 10, WorkoutDuration: 40, CooldownDuration: 5,
				Quotas: []MuscleQuota{{"espalda", 2}, {"hombros", 2}, {"abdomen", 2}},
			},
			{
				Name: "Viernes - Cuerpo Completo", DayOfWeek: "viernes",
				WarmupDuration: 10, WorkoutDuration: 40, CooldownDuration: 5,
				Quotas: []MuscleQuota{{"pierna", 2}, {"gluteo", 2}, {"brazos", 2}},
			},
		},
	},
	domain.ExperienceIntermediate: {
		Name:          "Plan Intermedio - Glúteo y Fuerza",
		Description:   "Cuatro días alternando tren inferior y tren superior con volumen medio.",
		RoutineType:   domain.RoutineUpperLower,
		Days:          []string{"lunes", "martes", "jueves", "viernes"},
		WeeksDuration: 6,
		DayTemplates: []DayTemplate{
			{
				Name: "Lunes - Glúteo y Pierna", DayOfWeek: "lunes",
				WarmupDuration: 10, WorkoutDuration: 50, CooldownDuration: 5,
				Quotas: []MuscleQuota{{"gluteo", 3}, {"pierna", 3}, {"abdomen", 2}},
			},
			{
				Name: "Martes - Superior Completo", DayOfWeek: "martes",
				WarmupDuration: 10, WorkoutDuration: 45, CooldownDuration: 5,
				Quotas: []MuscleQuota{{"espalda", 3}, {"hombros", 2}, {"brazos", 2}},
			},
			{
				Name: "Jueves - Inferior Volumen", DayOfWeek: "jueves",
				WarmupDuration: 10, WorkoutDuration: 50, CooldownDuration: 5,
				Quotas: []MuscleQuota{{"pierna", 3}, {"gluteo", 3}, {"pantorrilla", 2}},
			},
			{
				Name: "Viernes - Superior y Core", DayOfWeek: "viernes",
				WarmupDuration: 10, WorkoutDuration: 45, CooldownDuration: 5,
				Quotas: []MuscleQuota{{"pecho", 2}, {"espalda", 2}, {"abdomen", 3}},
			},
		},
	},
	domain.ExperienceAdvanced: {
		Name:          "Plan Avanzado - Escultura Total",
		Description:   "Cinco días de alta frecuencia para tren inferior con superior de soporte.",
		RoutineType:   domain.RoutinePushPullLegs,
		Days:          []string{"lunes", "martes", "miercoles", "jueves", "viernes"},
		WeeksDuration: 8,
		DayTemplates: []DayTemplate{
			{
				Name: "Lunes - Glúteo Pesado", DayOfWeek: "lunes",
				WarmupDuration: 15, WorkoutDuration: 55, CooldownDuration: 5,
				Quotas: []MuscleQuota{{"gluteo", 4}, {"pierna", 2}, {"abdomen", 2}},
			},
			{
				Name: "Martes - Tirón Superior", DayOfWeek: "martes",
				WarmupDuration: 10, WorkoutDuration: 50, CooldownDuration: 5,
				Quotas: []MuscleQuota{{"espalda", 4}, {"brazos", 2}},
			},
			{
				Name: "Miércoles - Pierna Completa", DayOfWeek: "miercoles",
				WarmupDuration: 15, WorkoutDuration: 60, CooldownDuration: 5,
				Quotas: []MuscleQuota{{"pierna", 4}, {"pantorrilla", 2}, {"abdomen", 2}},
			},
			{
				Name: "Jueves - Empuje Superior", DayOfWeek: "jueves",
				WarmupDuration: 10, WorkoutDuration: 50, CooldownDuration: 5,
				Quotas: []MuscleQuota{{"pecho", 3}, {"hombros", 3}},
			},
			{
				Name: "Viernes - Glúteo Volumen", DayOfWeek: "viernes",
				WarmupDuration: 15, WorkoutDuration: 55, CooldownDuration: 5,
				Quotas: []MuscleQuota{{"gluteo", 4}, {"pierna", 2}, {"abdomen", 2}},
			},
		},
	},
}
