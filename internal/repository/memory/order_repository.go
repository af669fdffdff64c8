package memory

import (
	"context"
	"sync"
	"time"

	"restopos/internal/entity"
	"restopos/internal/service"
)

// OrderRepository keeps both channels' orders behind one lock, which makes
// the shared sequence numbering space trivially enforceable: Create rejects
// a sequence number already taken in either channel.
type OrderRepository struct {
	mu     sync.RWMutex
	orders map[entity.Channel]map[string]entity.Order
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{
		orders: map[entity.Channel]map[string]entity.Order{
			entity.ChannelPOS:    {},
			entity.ChannelMobile: {},
		},
	}
}

// Verify interface compliance
var _ service.OrderRepository = (*OrderRepository)(nil)

func (r *OrderRepository) Create(ctx context.Context, order *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, channel := range r.orders {
		for _, existing := range channel {
			if existing.SequenceNum == order.SequenceNum {
				return entity.ErrDuplicateSequence
			}
		}
	}

	r.orders[order.Channel][order.ID] = *order
	return nil
}

func (r *OrderRepository) GetByID(ctx context.Context, channel entity.Channel, id string) (*entity.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[channel][id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	return &order, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, channel entity.Channel, id string, status entity.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[channel][id]
	if !ok {
		return entity.ErrNotFound
	}

	order.Status = status
	order.UpdatedAt = time.Now()
	r.orders[channel][id] = order
	return nil
}

func (r *OrderRepository) MaxSequence(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	max := 0
	for _, channel := range r.orders {
		for _, order := range channel {
			if order.SequenceNum > max {
				max = order.SequenceNum
			}
		}
	}
	return max, nil
}

func (r *OrderRepository) SequenceExists(ctx context.Context, seq int) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, channel := range r.orders {
		for _, order := range channel {
			if order.SequenceNum == seq {
				return true, nil
			}
		}
	}
	return false, nil
}
