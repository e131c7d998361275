package repository

import (
	"context"

	"github.com/mansoorceksport/liftlog/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoPlanRepository implements domain.PlanRemote
type MongoPlanRepository struct {
	coll *userCollection[domain.WorkoutPlan]
}

func NewMongoPlanRepository(db *mongo.Database) *MongoPlanRepository {
	return &MongoPlanRepository{
		coll: newUserCollection[domain.WorkoutPlan](db, "workout_plans", "id", bson.D{{Key: "name", Value: 1}}),
	}
}

func (r *MongoPlanRepository) ListForUser(ctx context.Context, userID string) ([]domain.WorkoutPlan, error) {
	return r.coll.list(ctx, userID)
}

// Upsert replaces the whole plan, exercises included
func (r *MongoPlanRepository) Upsert(ctx context.Context, plan domain.WorkoutPlan, userID string) error {
	return r.coll.upsert(ctx, plan.ID, plan, userID)
}

func (r *MongoPlanRepository) Delete(ctx context.Context, id string, userID string) error {
	return r.coll.delete(ctx, id, userID)
}
