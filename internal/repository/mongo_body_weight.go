package repository

import (
	"context"

	"github.com/mansoorceksport/liftlog/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoBodyWeightRepository implements domain.BodyWeightRemote. Entries are keyed
// by (user_id, date) so an upsert for an existing date replaces the weight.
type MongoBodyWeightRepository struct {
	coll *userCollection[domain.BodyWeightEntry]
}

func NewMongoBodyWeightRepository(db *mongo.Database) *MongoBodyWeightRepository {
	return &MongoBodyWeightRepository{
		coll: newUserCollection[domain.BodyWeightEntry](db, "body_weights", "date", bson.D{{Key: "date", Value: 1}}),
	}
}

func (r *MongoBodyWeightRepository) ListForUser(ctx context.Context, userID string) ([]domain.BodyWeightEntry, error) {
	return r.coll.list(ctx, userID)
}

func (r *MongoBodyWeightRepository) Upsert(ctx context.Context, entry domain.BodyWeightEntry, userID string) error {
	return r.coll.upsert(ctx, entry.Date, entry, userID)
}

func (r *MongoBodyWeightRepository) Delete(ctx context.Context, date string, userID string) error {
	return r.coll.delete(ctx, date, userID)
}
