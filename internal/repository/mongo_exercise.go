package repository

import (
	"context"
	"fmt"

	"github.com/mansoorceksport/liftlog/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoExerciseRepository implements domain.ExerciseRemote
type MongoExerciseRepository struct {
	coll     *userCollection[domain.Exercise]
	defaults func() []domain.Exercise
}

// NewMongoExerciseRepository creates the exercise remote. defaults is the library
// PopulateDefaults copies into an empty user library.
func NewMongoExerciseRepository(db *mongo.Database, defaults func() []domain.Exercise) *MongoExerciseRepository {
	return &MongoExerciseRepository{
		coll:     newUserCollection[domain.Exercise](db, "exercises", "id", bson.D{{Key: "name", Value: 1}}),
		defaults: defaults,
	}
}

func (r *MongoExerciseRepository) ListForUser(ctx context.Context, userID string) ([]domain.Exercise, error) {
	return r.coll.list(ctx, userID)
}

func (r *MongoExerciseRepository) Upsert(ctx context.Context, ex domain.Exercise, userID string) error {
	return r.coll.upsert(ctx, ex.ID, ex, userID)
}

func (r *MongoExerciseRepository) Delete(ctx context.Context, id string, userID string) error {
	return r.coll.delete(ctx, id, userID)
}

func (r *MongoExerciseRepository) PopulateDefaults(ctx context.Context, userID string) error {
	if err := r.coll.insertMany(ctx, r.defaults(), userID); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPopulateFailed, err)
	}
	return nil
}
