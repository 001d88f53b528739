package generator

import "pcfit/routines-service/internal/domain"

// Prescription is the sets/reps/rest assigned to one exercise slot.
type Prescription struct {
	Sets        int
	Reps        string
	RestSeconds int
}

// Muscle classes for prescription purposes. Core, calves and forearms
// respond to higher rep ranges; cardio slots get time-based reps;
// everything else follows standard strength ranges.
const (
	classHighRep = "high_rep"
	classCardio  = "cardio"
	classOther   = "other"
)

var highRepMuscles = map[string]bool{
	"abdomen":     true,
	"pantorrilla": true,
	"antebrazo":   true,
}

func muscleClass(muscleGroup string) string {
	switch {
	case muscleGroup == cardioMuscleGroup:
		return classCardio
	case highRepMuscles[muscleGroup]:
		return classHighRep
	default:
		return classOther
	}
}

// restByExperience is fixed regardless of muscle class.
var restByExperience = map[domain.Experience]int{
	domain.ExperienceBeginner:     90,
	domain.ExperienceIntermediate: 75,
	domain.ExperienceAdvanced:     60,
}

var setsRepsTable = map[domain.Experience]map[string]Prescription{
	domain.ExperienceBeginner: {
		classOther:   {Sets: 3, Reps: "10-12"},
		classHighRep: {Sets: 3, Reps: "12-15"},
		classCardio:  {Sets: 3, Reps: "30-45 segundos"},
	},
	domain.ExperienceIntermediate: {
		classOther:   {Sets: 4, Reps: "8-12"},
		classHighRep: {Sets: 3, Reps: "15-20"},
		classCardio:  {Sets: 4, Reps: "45-60 segundos"},
	},
	domain.ExperienceAdvanced: {
		classOther:   {Sets: 4, Reps: "6-10"},
		classHighRep: {Sets: 4, Reps: "15-20"},
		classCardio:  {Sets: 4, Reps: "60-90 segundos"},
	},
}

// PrescriptionFor returns the deterministic sets/reps/rest for one
// exercise slot given the user's experience and the slot's muscle group.
func PrescriptionFor(experience domain.Experience, muscleGroup string) Prescription {
	byClass, ok := setsRepsTable[experience]
	if !ok {
		byClass = setsRepsTable[domain.ExperienceBeginner]
	}
	p := byClass[muscleClass(muscleGroup)]
	rest, ok := restByExperience[experience]
	if !ok {
		rest = restByExperience[domain.ExperienceBeginner]
	}
	p.RestSeconds = rest
	return p
}

// Static coaching notes per muscle group.
var coachingNotes = map[string]string{
	"pierna":          "Mantén la espalda recta y baja controlando el movimiento.",
	"gluteo":          "Aprieta el glúteo arriba de cada repetición.",
	"pecho":           "No bloquees los codos; controla la fase negativa.",
	"espalda":         "Inicia el tirón con la escápula, no con el brazo.",
	"hombros":         "Evita encoger los trapecios durante el press.",
	"brazos":          "Codos pegados al torso durante todo el recorrido.",
	"abdomen":         "Exhala al contraer; no tires del cuello.",
	"pantorrilla":     "Pausa un segundo arriba en cada repetición.",
	"antebrazo":       "Rango completo de muñeca, carga moderada.",
	"cuerpo_completo": "Prioriza la técnica sobre el peso.",
	"cardio":          "Mantén un ritmo que te permita hablar con esfuerzo.",
}

// Experience-specific coaching tips.
var coachingTips = map[domain.Experience]string{
	domain.ExperienceBeginner:     "Aprende el patrón de movimiento antes de subir el peso.",
	domain.ExperienceIntermediate: "Agrega peso cuando completes todas las series en el rango alto.",
	domain.ExperienceAdvanced:     "Lleva las últimas series cerca del fallo manteniendo la técnica.",
}

// CoachingFor returns the static notes and tips for an exercise slot.
func CoachingFor(experience domain.Experience, muscleGroup string) (notes, tips string) {
	notes = coachingNotes[muscleGroup]
	tips = coachingTips[experience]
	return notes, tips
}
