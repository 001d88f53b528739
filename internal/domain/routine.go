package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RoutineType categorizes the weekly split of a routine.
type RoutineType string

const (
	RoutineFullBody     RoutineType = "full_body"
	RoutineUpperLower   RoutineType = "upper_lower"
	RoutinePushPullLegs RoutineType = "push_pull_legs"
	RoutineCustom       RoutineType = "custom"
)

// Routine is a user-owned multi-week workout plan. At most one routine
// per user is active at a time; the activation flow enforces this, not
// the database.
type Routine struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID        int64              `bson:"userId" json:"userId"` // subject id from the JWT
	Name          string             `bson:"name" json:"name"`
	Description   string             `bson:"description,omitempty" json:"description,omitempty"`
	RoutineType   RoutineType        `bson:"routineType" json:"routineType"`
	Difficulty    Experience         `bson:"difficulty" json:"difficulty"` // target difficulty
	Days          []string           `bson:"days" json:"days"`             // active weekday names, e.g. "lunes"
	WeeksDuration int                `bson:"weeksDuration" json:"weeksDuration"`
	IsActive      bool               `bson:"isActive" json:"isActive"`
	IsTemplate    bool               `bson:"isTemplate" json:"isTemplate"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}
