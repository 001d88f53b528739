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

const exerciseCollectionName = "routine_exercises"

// mongoRoutineExerciseRepository implements repository.RoutineExerciseRepository
type mongoRoutineExerciseRepository struct {
	collection *mongo.Collection
}

// NewMongoRoutineExerciseRepository creates a new RoutineExercise repository.
func NewMongoRoutineExerciseRepository(db *mongo.Database) repository.RoutineExerciseRepository {
	return &mongoRoutineExerciseRepository{
		collection: db.Collection(exerciseCollectionName),
	}
}

// Create inserts a new routine exercise.
func (r *mongoRoutineExerciseRepository) Create(ctx context.Context, exercise *domain.RoutineExercise) (primitive.ObjectID, error) {
	if exercise.DayID == primitive.NilObjectID || exercise.ExerciseName == "" {
		return primitive.NilObjectID, errors.New("routine exercise requires dayId and exerciseName")
	}
	exercise.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	exercise.CreatedAt = now
	exercise.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, exercise)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted exercise ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single routine exercise by its ID.
func (r *mongoRoutineExerciseRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.RoutineExercise, error) {
	var exercise domain.RoutineExercise
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&exercise)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &exercise, nil
}

// GetByDayID retrieves all exercises of a day sorted by order.
func (r *mongoRoutineExerciseRepository) GetByDayID(ctx context.Context, dayID primitive.ObjectID) ([]domain.RoutineExercise, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"dayId": dayID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var exercises []domain.RoutineExercise
	if err = cursor.All(ctx, &exercises); err != nil {
		return nil, err
	}
	return exercises, nil
}

// GetByUserID retrieves every routine exercise ever created for the
// user; the stats aggregator derives the most-frequent muscle group
// from this.
func (r *mongoRoutineExerciseRepository) GetByUserID(ctx context.Context, userID int64) ([]domain.RoutineExercise, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var exercises []domain.RoutineExercise
	if err = cursor.All(ctx, &exercises); err != nil {
		return nil, err
	}
	return exercises, nil
}

// Update rewrites the mutable fields of a routine exercise.
func (r *mongoRoutineExerciseRepository) Update(ctx context.Context, exercise *domain.RoutineExercise) error {
	if exercise.ID == primitive.NilObjectID {
		return errors.New("routine exercise ID is required for update")
	}
	updateDoc := bson.M{
		"$set": bson.M{
			"order":        exercise.Order,
			"sets":         exercise.Sets,
			"reps":         exercise.Reps,
			"restSeconds":  exercise.RestSeconds,
			"setType":      exercise.SetType,
			"targetWeight": exercise.TargetWeight,
			"targetRpe":    exercise.TargetRPE,
			"notes":        exercise.Notes,
			"coachingTips": exercise.CoachingTips,
			"updatedAt":    time.Now().UTC(),
		},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": exercise.ID}, updateDoc)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// UpdateOrder rewrites only the order value; used by re-sequencing and reorder.
func (r *mongoRoutineExerciseRepository) UpdateOrder(ctx context.Context, id primitive.ObjectID, order int) error {
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

// Delete removes one routine exercise.
func (r *mongoRoutineExerciseRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteByDayID removes all exercises of a day (cascade delete).
func (r *mongoRoutineExerciseRepository) DeleteByDayID(ctx context.Context, dayID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"dayId": dayID})
	return err
}

// DeleteByRoutineID removes all exercises of a routine (cascade delete).
func (r *mongoRoutineExerciseRepository) DeleteByRoutineID(ctx context.Context, routineID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"routineId": routineID})
	return err
}

// EnsureRoutineExerciseIndexes creates necessary indexes. Call during startup.
func EnsureRoutineExerciseIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "dayId", Value: 1}, {Key: "order", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "routineId", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
