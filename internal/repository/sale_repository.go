package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"restopos/internal/entity"
	"restopos/internal/service"
)

type SaleRepository struct {
	coll *mongo.Collection
}

func NewSaleRepository(db *mongo.Database) *SaleRepository {
	return &SaleRepository{coll: db.Collection("sales")}
}

// Verify interface compliance
var _ service.SaleRepository = (*SaleRepository)(nil)

func (r *SaleRepository) Create(ctx context.Context, sale *entity.Sale) error {
	_, err := r.coll.InsertOne(ctx, sale)
	return err
}

func (r *SaleRepository) GetByOrderID(ctx context.Context, orderID string) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.coll.FindOne(ctx, bson.M{"order_id": orderID}).Decode(&sale)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *SaleRepository) UpdateStatusByOrderID(ctx context.Context, orderID string, status entity.OrderStatus) error {
	update := bson.M{
		"$set":         bson.M{"status": status},
		"$currentDate": bson.M{"updated_at": true},
	}
	result, err := r.coll.UpdateOne(ctx, bson.M{"order_id": orderID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return entity.ErrNotFound
	}
	return nil
}
