package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"restopos/internal/entity"
	"restopos/internal/service"
)

// NotificationRepository stores notification documents. A TTL index on
// expires_at (see migrations) purges them automatically.
type NotificationRepository struct {
	coll *mongo.Collection
}

func NewNotificationRepository(db *mongo.Database) *NotificationRepository {
	return &NotificationRepository{coll: db.Collection("notifications")}
}

// Verify interface compliance
var _ service.NotificationRepository = (*NotificationRepository)(nil)

func (r *NotificationRepository) Create(ctx context.Context, n *entity.Notification) error {
	_, err := r.coll.InsertOne(ctx, n)
	return err
}

// ListForRole returns unexpired notifications targeting a role, newest first.
func (r *NotificationRepository) ListForRole(ctx context.Context, role string) ([]entity.Notification, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"target_roles": role})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var notifications []entity.Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkRead records that a recipient has read a notification.
func (r *NotificationRepository) MarkRead(ctx context.Context, id, recipient string) error {
	update := bson.M{"$addToSet": bson.M{"read_by": recipient}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return entity.ErrNotFound
	}
	return nil
}
