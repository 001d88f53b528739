package generator

import "pcfit/routines-service/internal/domain"

const (
	cardioMuscleGroup = "cardio"
	maxQuotaCount     = 6
)

// AdjustForGoal tunes a template to the user's goal and returns the
// result. The input is never mutated; adjustment is applied exactly once
// per generation.
//
// lose_weight: every day gets +10 workout minutes and, when missing, a
// cardio quota of one exercise. gain_muscle: every non-cardio quota is
// incremented by one, capped at 6. tone and maintain leave the template
// untouched.
func AdjustForGoal(tpl Template, goal domain.Goal) Template {
	out := tpl.clone()

	switch goal {
	case domain.GoalLoseWeight:
		for i := range out.DayTemplates {
			day := &out.DayTemplates[i]
			day.WorkoutDuration += 10
			if !hasCardioQuota(day.Quotas) {
				day.Quotas = append(day.Quotas, MuscleQuota{MuscleGroup: cardioMuscleGroup, Count: 1})
			}
		}
	case domain.GoalGainMuscle:
		for i := range out.DayTemplates {
			day := &out.DayTemplates[i]
			for j := range day.Quotas {
				if day.Quotas[j].MuscleGroup == cardioMuscleGroup {
					continue
				}
				if day.Quotas[j].Count < maxQuotaCount {
					day.Quotas[j].Count++
				}
			}
		}
	}

	return out
}

func hasCardioQuota(quotas []MuscleQuota) bool {
	for _, q := range quotas {
		if q.MuscleGroup == cardioMuscleGroup {
			return true
		}
	}
	return false
}
