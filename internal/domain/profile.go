package domain

// Experience is the training experience level reported by the users service.
type Experience string

const (
	ExperienceBeginner     Experience = "beginner"
	ExperienceIntermediate Experience = "intermediate"
	ExperienceAdvanced     Experience = "advanced"
)

// Goal is the user's stated training objective.
type Goal string

const (
	GoalGainMuscle Goal = "gain_muscle"
	GoalLoseWeight Goal = "lose_weight"
	GoalTone       Goal = "tone"
	GoalMaintain   Goal = "maintain"
)

// Equipment is the user's available equipment preference.
type Equipment string

const (
	EquipmentGym        Equipment = "gym"
	EquipmentBodyweight Equipment = "bodyweight"
	EquipmentDumbbell   Equipment = "dumbbell"
	EquipmentBand       Equipment = "band"
)

// Sex as reported by the users service. Anything other than "F" selects
// the male template family.
type Sex string

const (
	SexMale   Sex = "M"
	SexFemale Sex = "F"
)

// UserProfile is the slice of the external user record that routine
// generation needs. It is fetched per request from the users service and
// never stored locally.
type UserProfile struct {
	Experience Experience `json:"experience"`
	Goal       Goal       `json:"goal"`
	Equipment  Equipment  `json:"equipment"`
	Sex        Sex        `json:"sex"`
}
