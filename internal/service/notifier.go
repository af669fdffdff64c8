package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"restopos/internal/entity"
)

// NotificationService persists notification records and pushes them onto the
// outward real-time channel. It is purely observational: callers treat every
// failure as non-fatal.
type NotificationService struct {
	notificationRepo NotificationRepository
	publisher        EventPublisher
}

func NewNotificationService(notificationRepo NotificationRepository, publisher EventPublisher) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		publisher:        publisher,
	}
}

var _ Notifier = (*NotificationService)(nil)

// Emit stores the notification with a bounded lifetime and publishes its
// real-time payload. The record is returned on success, nil on failure; the
// publish step is itself best-effort.
func (n *NotificationService) Emit(ctx context.Context, notification *entity.Notification) (*entity.Notification, error) {
	now := time.Now()
	notification.ID = uuid.NewString()
	notification.ReadBy = []string{}
	notification.CreatedAt = now
	notification.ExpiresAt = now.Add(entity.NotificationTTL)

	if err := n.notificationRepo.Create(ctx, notification); err != nil {
		logger.Error().Err(err).Msgf("Error storing %s notification", notification.Category)
		return nil, err
	}

	key := fmt.Sprintf("%s.%s", notification.Category, notification.ID)
	if err := n.publisher.Publish(ctx, key, notification); err != nil {
		logger.Error().Err(err).Msgf("Error publishing %s event", notification.Category)
	}

	return notification, nil
}
