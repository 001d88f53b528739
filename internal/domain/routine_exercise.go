package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SetType is how the sets of an exercise are organized.
type SetType string

const (
	SetTypeStraight SetType = "straight"
	SetTypePyramid  SetType = "pyramid"
	SetTypeDrop     SetType = "drop"
	SetTypeSuperset SetType = "superset"
)

// RoutineExercise is one exercise slot within a WorkoutDay. The exercise
// itself lives in the external catalog; name, muscle group, difficulty
// and equipment are snapshotted at creation time so rendering a routine
// never needs another catalog call. Order values are dense integers
// starting at 0 within the day.
type RoutineExercise struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DayID     primitive.ObjectID `bson:"dayId" json:"dayId"`
	RoutineID primitive.ObjectID `bson:"routineId" json:"routineId"` // denormalized for cascade deletes
	UserID    int64              `bson:"userId" json:"userId"`       // denormalized for query/auth

	ExerciseID         string `bson:"exerciseId" json:"exerciseId"` // external catalog id (or generated-*)
	ExerciseName       string `bson:"exerciseName" json:"exerciseName"`
	ExerciseMuscleGrp  string `bson:"exerciseMuscleGroup" json:"exerciseMuscleGroup"`
	ExerciseDifficulty string `bson:"exerciseDifficulty" json:"exerciseDifficulty"`
	ExerciseEquipment  string `bson:"exerciseEquipment,omitempty" json:"exerciseEquipment,omitempty"`
	ImageURL           string `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`

	Order        int      `bson:"order" json:"order"`
	Sets         int      `bson:"sets" json:"sets"`
	Reps         string   `bson:"reps" json:"reps"` // free-form: "8-12", "30-45 segundos"
	RestSeconds  int      `bson:"restSeconds" json:"restSeconds"`
	SetType      SetType  `bson:"setType" json:"setType"`
	TargetWeight *float64 `bson:"targetWeight,omitempty" json:"targetWeight,omitempty"`
	TargetRPE    *float64 `bson:"targetRpe,omitempty" json:"targetRpe,omitempty"`
	Notes        string   `bson:"notes,omitempty" json:"notes,omitempty"`
	CoachingTips string   `bson:"coachingTips,omitempty" json:"coachingTips,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
