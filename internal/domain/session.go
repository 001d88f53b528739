package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SessionStatus is the lifecycle state of a workout session.
// planned -> in_progress -> completed, with skipped and failed reachable
// from planned. Nothing transitions out of completed.
type SessionStatus string

const (
	SessionPlanned    SessionStatus = "planned"
	SessionInProgress SessionStatus = "in_progress"
	SessionCompleted  SessionStatus = "completed"
	SessionSkipped    SessionStatus = "skipped"
	SessionFailed     SessionStatus = "failed"
)

// WorkoutSession is one scheduled or performed execution of a WorkoutDay.
type WorkoutSession struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID        int64              `bson:"userId" json:"userId"`
	RoutineID     primitive.ObjectID `bson:"routineId" json:"routineId"`
	DayID         primitive.ObjectID `bson:"dayId" json:"dayId"`
	ScheduledDate time.Time          `bson:"scheduledDate" json:"scheduledDate"`
	ActualDate    *time.Time         `bson:"actualDate,omitempty" json:"actualDate,omitempty"` // set on completion
	StartTime     *time.Time         `bson:"startTime,omitempty" json:"startTime,omitempty"`
	EndTime       *time.Time         `bson:"endTime,omitempty" json:"endTime,omitempty"`
	Status        SessionStatus      `bson:"status" json:"status"`
	Rating        *int               `bson:"rating,omitempty" json:"rating,omitempty"` // 1-5
	Notes         string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}
