package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"restopos/internal/entity"
	"restopos/internal/service"
)

// StockRepository provides in-memory stock storage with the same
// single-document atomicity the document store gives: each mutation happens
// under one lock acquisition.
type StockRepository struct {
	mu    sync.RWMutex
	items map[string]entity.StockItem
}

func NewStockRepository() *StockRepository {
	return &StockRepository{items: make(map[string]entity.StockItem)}
}

// Verify interface compliance
var _ service.StockRepository = (*StockRepository)(nil)

func (r *StockRepository) GetByName(ctx context.Context, name string) (*entity.StockItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[name]
	if !ok {
		return nil, entity.ErrNotFound
	}
	return &item, nil
}

func (r *StockRepository) List(ctx context.Context) ([]entity.StockItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]entity.StockItem, 0, len(r.items))
	for _, item := range r.items {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })

	return items, nil
}

func (r *StockRepository) Upsert(ctx context.Context, item *entity.StockItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.Name] = *item
	return nil
}

func (r *StockRepository) DeductIfAvailable(ctx context.Context, name string, amount int) (*entity.StockItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[name]
	if !ok || item.Quantity < amount {
		return nil, entity.ErrNotFound
	}

	item.Quantity -= amount
	item.UpdatedAt = time.Now()
	r.items[name] = item

	return &item, nil
}

func (r *StockRepository) Credit(ctx context.Context, name string, amount int) (*entity.StockItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[name]
	if !ok {
		return nil, entity.ErrNotFound
	}

	item.Quantity += amount
	item.UpdatedAt = time.Now()
	r.items[name] = item

	return &item, nil
}

func (r *StockRepository) SetStatus(ctx context.Context, name string, status entity.StockStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[name]
	if !ok {
		return entity.ErrNotFound
	}

	item.Status = status
	r.items[name] = item
	return nil
}

func (r *StockRepository) ReclassifyAll(ctx context.Context, threshold int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for name, item := range r.items {
		switch {
		case item.Quantity <= 0:
			item.Status = entity.StockOutOfStock
		case item.Quantity <= threshold:
			item.Status = entity.StockLowStock
		default:
			item.Status = entity.StockInStock
		}
		r.items[name] = item
	}
	return nil
}
