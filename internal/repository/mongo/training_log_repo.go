package mongo

import (
	"context"
	"errors"
	"time"

	"entrena/gym-app/internal/domain"
	"entrena/gym-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const trainingLogCollectionName = "training_logs"

// mongoTrainingLogRepository implements repository.TrainingLogRepository
type mongoTrainingLogRepository struct {
	collection *mongo.Collection
}

// NewMongoTrainingLogRepository creates a new TrainingLog repository.
func NewMongoTrainingLogRepository(db *mongo.Database) repository.TrainingLogRepository {
	return &mongoTrainingLogRepository{
		collection: db.Collection(trainingLogCollectionName),
	}
}

// Create inserts a new training log. Logs are immutable after creation; there
// is deliberately no Update method.
func (r *mongoTrainingLogRepository) Create(ctx context.Context, log *domain.TrainingLog) (primitive.ObjectID, error) {
	if log.UserID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("training log requires userId")
	}

	log.ID = primitive.NewObjectID()
	log.CreatedAt = time.Now().UTC()
	if log.CompletedAt.IsZero() {
		log.CompletedAt = log.CreatedAt
	}

	result, err := r.collection.InsertOne(ctx, log)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted training log ID")
	}
	return insertedID, nil
}

// ListByUserDesc retrieves the user's logs ordered by completion time
// descending, capped at limit. Ownership is enforced by the store filter, not
// by post-filtering in application code.
func (r *mongoTrainingLogRepository) ListByUserDesc(ctx context.Context, userID primitive.ObjectID, limit int64) ([]domain.TrainingLog, error) {
	var logs []domain.TrainingLog
	filter := bson.M{"userId": userID}
	findOptions := options.Find().
		SetSort(bson.D{{Key: "completedAt", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return logs, nil
}

// ListByUserSince retrieves the user's logs completed at or after since,
// for aggregation windows such as the current calendar month.
func (r *mongoTrainingLogRepository) ListByUserSince(ctx context.Context, userID primitive.ObjectID, since time.Time) ([]domain.TrainingLog, error) {
	var logs []domain.TrainingLog
	filter := bson.M{
		"userId":      userID,
		"completedAt": bson.M{"$gte": since},
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return logs, nil
}

// EnsureTrainingLogIndexes creates necessary indexes. Call during startup.
func EnsureTrainingLogIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// History and monthly-window queries filter by user and sort/range
			// on completion time.
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "completedAt", Value: -1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// Index creation failure is not fatal for startup.
	}
}
