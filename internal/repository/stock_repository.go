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

// StockRepository stores stock items in the stock_items collection, keyed by
// name. Every mutation is a single-document operation; the driver guarantees
// atomicity at that level and nothing stronger.
type StockRepository struct {
	coll *mongo.Collection
}

func NewStockRepository(db *mongo.Database) *StockRepository {
	return &StockRepository{coll: db.Collection("stock_items")}
}

// Verify interface compliance
var _ service.StockRepository = (*StockRepository)(nil)

func (r *StockRepository) GetByName(ctx context.Context, name string) (*entity.StockItem, error) {
	var item entity.StockItem
	err := r.coll.FindOne(ctx, bson.M{"_id": name}).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *StockRepository) List(ctx context.Context) ([]entity.StockItem, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []entity.StockItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *StockRepository) Upsert(ctx context.Context, item *entity.StockItem) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": item.Name}, item, opts)
	return err
}

// DeductIfAvailable is the conditional decrement: the filter only matches
// when at least amount is on hand, so a concurrent deduction can never drive
// the quantity negative.
func (r *StockRepository) DeductIfAvailable(ctx context.Context, name string, amount int) (*entity.StockItem, error) {
	filter := bson.M{"_id": name, "quantity": bson.M{"$gte": amount}}
	update := bson.M{
		"$inc":         bson.M{"quantity": -amount},
		"$currentDate": bson.M{"updated_at": true},
	}
	return r.findOneAndUpdate(ctx, filter, update)
}

func (r *StockRepository) Credit(ctx context.Context, name string, amount int) (*entity.StockItem, error) {
	update := bson.M{
		"$inc":         bson.M{"quantity": amount},
		"$currentDate": bson.M{"updated_at": true},
	}
	return r.findOneAndUpdate(ctx, bson.M{"_id": name}, update)
}

func (r *StockRepository) findOneAndUpdate(ctx context.Context, filter, update bson.M) (*entity.StockItem, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var item entity.StockItem
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *StockRepository) SetStatus(ctx context.Context, name string, status entity.StockStatus) error {
	_, err := r.coll.UpdateOne(ctx, bson.M{"_id": name}, bson.M{"$set": bson.M{"status": status}})
	return err
}

// ReclassifyAll rewrites stored statuses in a three-way split against the
// threshold. The pass is unconditional: manual overrides are not consulted.
func (r *StockRepository) ReclassifyAll(ctx context.Context, threshold int) error {
	passes := []struct {
		filter bson.M
		status entity.StockStatus
	}{
		{bson.M{"quantity": bson.M{"$lte": 0}}, entity.StockOutOfStock},
		{bson.M{"quantity": bson.M{"$gt": 0, "$lte": threshold}}, entity.StockLowStock},
		{bson.M{"quantity": bson.M{"$gt": threshold}}, entity.StockInStock},
	}

	for _, pass := range passes {
		_, err := r.coll.UpdateMany(ctx, pass.filter, bson.M{"$set": bson.M{"status": pass.status}})
		if err != nil {
			return err
		}
	}
	return nil
}
