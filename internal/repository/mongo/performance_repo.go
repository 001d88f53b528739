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

const performanceCollectionName = "exercise_performances"

// mongoPerformanceRepository implements repository.PerformanceRepository
type mongoPerformanceRepository struct {
	collection *mongo.Collection
}

// NewMongoPerformanceRepository creates a new ExercisePerformance repository.
func NewMongoPerformanceRepository(db *mongo.Database) repository.PerformanceRepository {
	return &mongoPerformanceRepository{
		collection: db.Collection(performanceCollectionName),
	}
}

// Create inserts a new performance record. Aggregates (total volume,
// avg RPE, PR flag) are expected to be computed by the caller already.
func (r *mongoPerformanceRepository) Create(ctx context.Context, perf *domain.ExercisePerformance) (primitive.ObjectID, error) {
	if perf.SessionID == primitive.NilObjectID || perf.RoutineExerciseID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("performance requires sessionId and routineExerciseId")
	}
	perf.ID = primitive.NewObjectID()
	perf.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, perf)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted performance ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single performance record by its ID.
func (r *mongoPerformanceRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ExercisePerformance, error) {
	var perf domain.ExercisePerformance
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&perf)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &perf, nil
}

// GetBySessionID retrieves all performances logged during a session.
func (r *mongoPerformanceRepository) GetBySessionID(ctx context.Context, sessionID primitive.ObjectID) ([]domain.ExercisePerformance, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"sessionId": sessionID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var perfs []domain.ExercisePerformance
	if err = cursor.All(ctx, &perfs); err != nil {
		return nil, err
	}
	return perfs, nil
}

// GetByUserID retrieves every performance of the user; the stats
// aggregator sums volume and counts PRs from this.
func (r *mongoPerformanceRepository) GetByUserID(ctx context.Context, userID int64) ([]domain.ExercisePerformance, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var perfs []domain.ExercisePerformance
	if err = cursor.All(ctx, &perfs); err != nil {
		return nil, err
	}
	return perfs, nil
}

// DeleteBySessionID removes every performance logged during a session.
// Used when the session itself is deleted.
func (r *mongoPerformanceRepository) DeleteBySessionID(ctx context.Context, sessionID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"sessionId": sessionID})
	return err
}

// EnsurePerformanceIndexes creates necessary indexes. Call during startup.
func EnsurePerformanceIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "sessionId", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
