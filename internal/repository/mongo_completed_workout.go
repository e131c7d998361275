package repository

import (
	"context"

	"github.com/mansoorceksport/liftlog/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoWorkoutRepository implements domain.WorkoutRemote for completed workouts
type MongoWorkoutRepository struct {
	coll *userCollection[domain.CompletedWorkout]
}

func NewMongoWorkoutRepository(db *mongo.Database) *MongoWorkoutRepository {
	return &MongoWorkoutRepository{
		coll: newUserCollection[domain.CompletedWorkout](db, "completed_workouts", "id",
			bson.D{{Key: "date", Value: 1}, {Key: "start_time", Value: 1}}),
	}
}

func (r *MongoWorkoutRepository) ListForUser(ctx context.Context, userID string) ([]domain.CompletedWorkout, error) {
	return r.coll.list(ctx, userID)
}

func (r *MongoWorkoutRepository) Upsert(ctx context.Context, workout domain.CompletedWorkout, userID string) error {
	return r.coll.upsert(ctx, workout.ID, workout, userID)
}

func (r *MongoWorkoutRepository) Delete(ctx context.Context, id string, userID string) error {
	return r.coll.delete(ctx, id, userID)
}

// DeleteAllForUser clears the user's workout log
func (r *MongoWorkoutRepository) DeleteAllForUser(ctx context.Context, userID string) error {
	return r.coll.deleteAll(ctx, userID)
}
