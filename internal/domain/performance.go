package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SetRecord is one logged set within an ExercisePerformance.
type SetRecord struct {
	SetNumber int     `bson:"setNumber" json:"set_number"`
	Reps      int     `bson:"reps" json:"reps"`
	Weight    float64 `bson:"weight" json:"weight"`
	RPE       float64 `bson:"rpe,omitempty" json:"rpe,omitempty"`
}

// ExercisePerformance records how one RoutineExercise went during a
// session. TotalVolume and AvgRPE are computed once at creation and never
// recomputed; PRAchieved is set when any set's weight exceeds the
// exercise's target weight.
type ExercisePerformance struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SessionID         primitive.ObjectID `bson:"sessionId" json:"sessionId"`
	RoutineExerciseID primitive.ObjectID `bson:"routineExerciseId" json:"routineExerciseId"`
	UserID            int64              `bson:"userId" json:"userId"` // denormalized for stats queries
	SetsData          []SetRecord        `bson:"setsData" json:"sets_data"`
	TotalVolume       float64            `bson:"totalVolume" json:"total_volume"` // sum of reps*weight
	AvgRPE            float64            `bson:"avgRpe" json:"avg_rpe"`
	PRAchieved        bool               `bson:"prAchieved" json:"pr_achieved"`
	PRNote            string             `bson:"prNote,omitempty" json:"pr_note,omitempty"`
	Feedback          string             `bson:"feedback,omitempty" json:"feedback,omitempty"`
	PainLevel         *int               `bson:"painLevel,omitempty" json:"pain_level,omitempty"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
}
