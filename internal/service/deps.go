package service

import (
	"context"

	"restopos/internal/entity"
)

// StockRepository persists stock items. Single-document writes are atomic;
// nothing stronger is assumed of the store.
type StockRepository interface {
	GetByName(ctx context.Context, name string) (*entity.StockItem, error)
	List(ctx context.Context) ([]entity.StockItem, error)
	Upsert(ctx context.Context, item *entity.StockItem) error
	// DeductIfAvailable atomically decrements quantity when at least amount is
	// on hand and returns the updated item. It returns entity.ErrNotFound when
	// no document matched, i.e. the item is missing or short.
	DeductIfAvailable(ctx context.Context, name string, amount int) (*entity.StockItem, error)
	// Credit atomically increments quantity and returns the updated item, or
	// entity.ErrNotFound when the item does not exist.
	Credit(ctx context.Context, name string, amount int) (*entity.StockItem, error)
	SetStatus(ctx context.Context, name string, status entity.StockStatus) error
	// ReclassifyAll rewrites every item's status from its quantity and the
	// given threshold, ignoring manual overrides.
	ReclassifyAll(ctx context.Context, threshold int) error
}

type MenuRepository interface {
	GetByID(ctx context.Context, id string) (*entity.MenuItem, error)
	List(ctx context.Context) ([]entity.MenuItem, error)
	Upsert(ctx context.Context, item *entity.MenuItem) error
}

// OrderRepository spans both order collections; the channel selects one.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, channel entity.Channel, id string) (*entity.Order, error)
	UpdateStatus(ctx context.Context, channel entity.Channel, id string, status entity.OrderStatus) error
	// MaxSequence returns the highest sequence number across both channels,
	// or 0 when no orders exist.
	MaxSequence(ctx context.Context) (int, error)
	SequenceExists(ctx context.Context, seq int) (bool, error)
}

type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByOrderID(ctx context.Context, orderID string) (*entity.Sale, error)
	UpdateStatusByOrderID(ctx context.Context, orderID string, status entity.OrderStatus) error
}

type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) error
}

// ThresholdStore holds the process-wide low-stock threshold as mutable
// external state, read fresh on every operation so admin changes apply live.
type ThresholdStore interface {
	Get(ctx context.Context) (int, error)
	Set(ctx context.Context, value int) error
}

// EventPublisher pushes a notification payload onto the outward real-time
// channel. Delivery is best-effort everywhere it is used.
type EventPublisher interface {
	Publish(ctx context.Context, key string, value interface{}) error
}

// Notifier produces a notification record and its real-time event. All call
// sites treat failures as non-fatal.
type Notifier interface {
	Emit(ctx context.Context, n *entity.Notification) (*entity.Notification, error)
}
