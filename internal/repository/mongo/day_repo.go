package mongo

import (
	"context"
	"errors"
	"time"

	"pcfit/routines-service/internal/domain"
	"pcfit/routines-service/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const dayCollectionName = "workout_days"

// mongoWorkoutDayRepository implements repository.WorkoutDayRepository
type mongoWorkoutDayRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutDayRepository creates a new WorkoutDay repository.
func NewMongoWorkoutDayRepository(db *mongo.Database) repository.WorkoutDayRepository {
	return &mongoWorkoutDayRepository{
		collection: db.Collection(dayCollectionName),
	}
}

// Create inserts a new workout day.
func (r *mongoWorkoutDayRepository) Create(ctx context.Context, day *domain.WorkoutDay) (primitive.ObjectID, error) {
	if day.RoutineID == primitive.NilObjectID || day.DayName == "" {
		return primitive.NilObjectID, errors.New("workout day requires routineId and dayName")
	}
	day.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	day.CreatedAt = now
	day.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, day)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted day ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single workout day by its ID.
func (r *mongoWorkoutDayRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutDay, error) {
	var day domain.WorkoutDay
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&day)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &day, nil
}

// GetByRoutineID retrieves all days of a routine sorted by order.
func (r *mongoWorkoutDayRepository) GetByRoutineID(ctx context.Context, routineID primitive.ObjectID) ([]domain.WorkoutDay, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"routineId": routineID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var days []domain.WorkoutDay
	if err = cursor.All(ctx, &days); err != nil {
		return nil, err
	}
	return days, nil
}

// Update rewrites the mutable fields of a workout day.
func (r *mongoWorkoutDayRepository) Update(ctx context.Context, day *domain.WorkoutDay) error {
	if day.ID == primitive.NilObjectID {
		return errors.New("workout day ID is required for update")
	}
	updateDoc := bson.M{
		"$set": bson.M{
			"dayName":          day.DayName,
			"dayOfWeek":        day.DayOfWeek,
			"order":            day.Order,
			"warmupDuration":   day.WarmupDuration,
			"workoutDuration":  day.WorkoutDuration,
			"cooldownDuration": day.CooldownDuration,
			"notes":            day.Notes,
			"updatedAt":        time.Now().UTC(),
		},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": day.ID}, updateDoc)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// UpdateOrder rewrites only the order value; used by re-sequencing.
func (r *mongoWorkoutDayRepository) UpdateOrder(ctx context.Context, id primitive.ObjectID, order int) error {
	update := bson.M{"$set": bson.M{"order": order, "updatedAt": time.Now().UTC()}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes one workout day.
func (r *mongoWorkoutDayRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteByRoutineID removes all days of a routine (cascade delete).
func (r *mongoWorkoutDayRepository) DeleteByRoutineID(ctx context.Context, routineID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"routineId": routineID})
	return err
}

// EnsureWorkoutDayIndexes creates necessary indexes. Call during startup.
func EnsureWorkoutDayIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "routineId", Value: 1}, {Key: "order", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
