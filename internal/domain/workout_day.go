package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutDay is one training day within a Routine. Order values are
// dense integers starting at 0 within the routine; siblings are
// re-sequenced after any deletion or reorder.
type WorkoutDay struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RoutineID        primitive.ObjectID `bson:"routineId" json:"routineId"`
	UserID           int64              `bson:"userId" json:"userId"` // denormalized for query/auth
	DayName          string             `bson:"dayName" json:"dayName"`
	DayOfWeek        string             `bson:"dayOfWeek,omitempty" json:"dayOfWeek,omitempty"` // weekday tag, e.g. "lunes"
	Order            int                `bson:"order" json:"order"`
	WarmupDuration   int                `bson:"warmupDuration" json:"warmupDuration"`   // minutes
	WorkoutDuration  int                `bson:"workoutDuration" json:"workoutDuration"` // minutes
	CooldownDuration int                `bson:"cooldownDuration" json:"cooldownDuration"`
	Notes            string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}
