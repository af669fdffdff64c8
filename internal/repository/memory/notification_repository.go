package memory

import (
	"context"
	"sync"

	"restopos/internal/entity"
	"restopos/internal/service"
)

type NotificationRepository struct {
	mu            sync.RWMutex
	notifications []entity.Notification
}

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{}
}

// Verify interface compliance
var _ service.NotificationRepository = (*NotificationRepository)(nil)

func (r *NotificationRepository) Create(ctx context.Context, n *entity.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.notifications = append(r.notifications, *n)
	return nil
}

// All returns every stored notification, in creation order.
func (r *NotificationRepository) All() []entity.Notification {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entity.Notification, len(r.notifications))
	copy(out, r.notifications)
	return out
}
