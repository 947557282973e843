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

const routineCollectionName = "routines"

// mongoRoutineRepository implements repository.RoutineRepository
type mongoRoutineRepository struct {
	collection *mongo.Collection
}

// NewMongoRoutineRepository creates a new Routine repository.
func NewMongoRoutineRepository(db *mongo.Database) repository.RoutineRepository {
	return &mongoRoutineRepository{
		collection: db.Collection(routineCollectionName),
	}
}

// Save inserts the routine when it has no ID yet, otherwise replaces the
// existing document. One routine is one logical write unit; day/exercise/set
// edits always travel with the whole document.
func (r *mongoRoutineRepository) Save(ctx context.Context, routine *domain.Routine) (primitive.ObjectID, error) {
	if routine.CoachID == primitive.NilObjectID || routine.Name == "" {
		return primitive.NilObjectID, errors.New("routine requires coachId and name")
	}

	now := time.Now().UTC()
	routine.UpdatedAt = now

	if routine.ID == primitive.NilObjectID {
		routine.ID = primitive.NewObjectID()
		routine.CreatedAt = now
		if _, err := r.collection.InsertOne(ctx, routine); err != nil {
			return primitive.NilObjectID, err
		}
		return routine.ID, nil
	}

	filter := bson.M{"_id": routine.ID}
	result, err := r.collection.ReplaceOne(ctx, filter, routine)
	if err != nil {
		return primitive.NilObjectID, err
	}
	if result.MatchedCount == 0 {
		return primitive.NilObjectID, repository.ErrNotFound
	}
	return routine.ID, nil
}

// GetByID retrieves a single routine by its ID.
func (r *mongoRoutineRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Routine, error) {
	var routine domain.Routine
	filter := bson.M{"_id": id}
	err := r.collection.FindOne(ctx, filter).Decode(&routine)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &routine, nil
}

// GetActiveByAthlete retrieves the athlete's active routine. The athleteId
// filter is applied in the store so another athlete's routine can never be
// returned.
func (r *mongoRoutineRepository) GetActiveByAthlete(ctx context.Context, athleteID primitive.ObjectID) (*domain.Routine, error) {
	var routine domain.Routine
	filter := bson.M{"athleteId": athleteID, "isActive": true}
	err := r.collection.FindOne(ctx, filter).Decode(&routine)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &routine, nil
}

// ListByAthlete retrieves all routines assigned to an athlete.
func (r *mongoRoutineRepository) ListByAthlete(ctx context.Context, athleteID primitive.ObjectID) ([]domain.Routine, error) {
	var routines []domain.Routine
	filter := bson.M{"athleteId": athleteID}
	findOptions := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &routines); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return routines, nil
}

// ListTemplates retrieves a coach's unassigned template routines.
func (r *mongoRoutineRepository) ListTemplates(ctx context.Context, coachID primitive.ObjectID) ([]domain.Routine, error) {
	var routines []domain.Routine
	filter := bson.M{"coachId": coachID, "athleteId": bson.M{"$exists": false}}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &routines); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return routines, nil
}

// EnsureRoutineIndexes creates necessary indexes. Call during startup.
func EnsureRoutineIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// Active-routine lookup per athlete.
			Keys:    bson.D{{Key: "athleteId", Value: 1}, {Key: "isActive", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
		{
			Keys:    bson.D{{Key: "coachId", Value: 1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// Index creation failure is not fatal for startup.
	}
}
