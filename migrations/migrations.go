package migrations

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the core relies on: unique sequence
// numbers on both order collections, sale lookup by originating order, and
// the TTL purge on notifications. Stock items are keyed by name as _id and
// need no extra index.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	sequenceIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "sequence_num", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	for _, coll := range []string{"orders_pos", "orders_mobile"} {
		if err := createWithRetry(ctx, db.Collection(coll), sequenceIndex); err != nil {
			return err
		}
	}

	saleIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "order_id", Value: 1}},
	}
	if err := createWithRetry(ctx, db.Collection("sales"), saleIndex); err != nil {
		return err
	}

	ttlIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	}
	if err := createWithRetry(ctx, db.Collection("notifications"), ttlIndex); err != nil {
		return err
	}

	return nil
}

func createWithRetry(ctx context.Context, coll *mongo.Collection, model mongo.IndexModel) error {
	_, err := coll.Indexes().CreateOne(ctx, model)
	for i := 0; err != nil && i < 3; i++ {
		time.Sleep(1 * time.Second)
		_, err = coll.Indexes().CreateOne(ctx, model)
	}
	return err
}
