package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"restopos/internal/entity"
	"restopos/internal/service"
)

// OrderRepository spans the two order collections, orders_pos and
// orders_mobile. The sequence numbering space is shared across both.
type OrderRepository struct {
	pos    *mongo.Collection
	mobile *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{
		pos:    db.Collection("orders_pos"),
		mobile: db.Collection("orders_mobile"),
	}
}

// Verify interface compliance
var _ service.OrderRepository = (*OrderRepository)(nil)

func (r *OrderRepository) coll(channel entity.Channel) *mongo.Collection {
	if channel == entity.ChannelMobile {
		return r.mobile
	}
	return r.pos
}

func (r *OrderRepository) Create(ctx context.Context, order *entity.Order) error {
	// The unique index only covers one collection, so check the sibling
	// first. The remaining cross-collection race window is accepted.
	other := r.pos
	if order.Channel == entity.ChannelPOS {
		other = r.mobile
	}
	count, err := other.CountDocuments(ctx, bson.M{"sequence_num": order.SequenceNum})
	if err != nil {
		return err
	}
	if count > 0 {
		return entity.ErrDuplicateSequence
	}

	_, err = r.coll(order.Channel).InsertOne(ctx, order)
	if mongo.IsDuplicateKeyError(err) {
		return entity.ErrDuplicateSequence
	}
	return err
}

func (r *OrderRepository) GetByID(ctx context.Context, channel entity.Channel, id string) (*entity.Order, error) {
	var order entity.Order
	err := r.coll(channel).FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, channel entity.Channel, id string, status entity.OrderStatus) error {
	update := bson.M{
		"$set":         bson.M{"status": status},
		"$currentDate": bson.M{"updated_at": true},
	}
	result, err := r.coll(channel).UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func (r *OrderRepository) MaxSequence(ctx context.Context) (int, error) {
	max := 0
	for _, coll := range []*mongo.Collection{r.pos, r.mobile} {
		opts := options.FindOne().SetSort(bson.M{"sequence_num": -1}).SetProjection(bson.M{"sequence_num": 1})

		var doc struct {
			SequenceNum int `bson:"sequence_num"`
		}
		err := coll.FindOne(ctx, bson.M{}, opts).Decode(&doc)
		if errors.Is(err, mongo.ErrNoDocuments) {
			continue
		}
		if err != nil {
			return 0, err
		}
		if doc.SequenceNum > max {
			max = doc.SequenceNum
		}
	}
	return max, nil
}

func (r *OrderRepository) SequenceExists(ctx context.Context, seq int) (bool, error) {
	for _, coll := range []*mongo.Collection{r.pos, r.mobile} {
		count, err := coll.CountDocuments(ctx, bson.M{"sequence_num": seq})
		if err != nil {
			return false, err
		}
		if count > 0 {
			return true, nil
		}
	}
	return false, nil
}
