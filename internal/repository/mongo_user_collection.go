package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/mansoorceksport/liftlog/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// userDocument stores one entity of a user's collection. The entity's own key
// (id, or date for body weights) is only unique per user.
type userDocument[T any] struct {
	UserID    string    `bson:"user_id"`
	Item      T         `bson:",inline"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// userCollection is the shared per-user CRUD used by the entity repositories
type userCollection[T any] struct {
	collection *mongo.Collection
	keyField   string
	sort       bson.D
}

func newUserCollection[T any](db *mongo.Database, name, keyField string, sort bson.D) *userCollection[T] {
	coll := db.Collection(name)

	// Create Index
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	mod := mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: keyField, Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	coll.Indexes().CreateOne(ctx, mod)

	return &userCollection[T]{
		collection: coll,
		keyField:   keyField,
		sort:       sort,
	}
}

func remoteErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", domain.ErrRemoteUnavailable, op, err)
}

func (c *userCollection[T]) list(ctx context.Context, userID string) ([]T, error) {
	opts := options.Find()
	if len(c.sort) > 0 {
		opts.SetSort(c.sort)
	}

	cursor, err := c.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, remoteErr("find "+c.collection.Name(), err)
	}
	defer cursor.Close(ctx)

	var docs []userDocument[T]
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, remoteErr("decode "+c.collection.Name(), err)
	}

	items := make([]T, 0, len(docs))
	for _, doc := range docs {
		items = append(items, doc.Item)
	}
	return items, nil
}

func (c *userCollection[T]) upsert(ctx context.Context, key string, item T, userID string) error {
	doc := userDocument[T]{UserID: userID, Item: item, UpdatedAt: time.Now()}

	_, err := c.collection.ReplaceOne(ctx,
		bson.M{"user_id": userID, c.keyField: key},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return remoteErr("upsert "+c.collection.Name(), err)
	}
	return nil
}

func (c *userCollection[T]) delete(ctx context.Context, key string, userID string) error {
	_, err := c.collection.DeleteOne(ctx, bson.M{"user_id": userID, c.keyField: key})
	if err != nil {
		return remoteErr("delete "+c.collection.Name(), err)
	}
	return nil
}

func (c *userCollection[T]) deleteAll(ctx context.Context, userID string) error {
	_, err := c.collection.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return remoteErr("delete all "+c.collection.Name(), err)
	}
	return nil
}

// insertMany inserts items, skipping ones whose key already exists for the user
func (c *userCollection[T]) insertMany(ctx context.Context, items []T, userID string) error {
	if len(items) == 0 {
		return nil
	}
	now := time.Now()
	docs := make([]interface{}, len(items))
	for i, item := range items {
		docs[i] = userDocument[T]{UserID: userID, Item: item, UpdatedAt: now}
	}

	_, err := c.collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return remoteErr("insert many "+c.collection.Name(), err)
	}
	return nil
}
