package memory

import (
	"context"
	"sync"
	"time"

	"restopos/internal/entity"
	"restopos/internal/service"
)

type SaleRepository struct {
	mu    sync.RWMutex
	sales map[string]entity.Sale // keyed by sale id
}

func NewSaleRepository() *SaleRepository {
	return &SaleRepository{sales: make(map[string]entity.Sale)}
}

// Verify interface compliance
var _ service.SaleRepository = (*SaleRepository)(nil)

func (r *SaleRepository) Create(ctx context.Context, sale *entity.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sales[sale.ID] = *sale
	return nil
}

func (r *SaleRepository) GetByOrderID(ctx context.Context, orderID string) (*entity.Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, sale := range r.sales {
		if sale.OrderID == orderID {
			s := sale
			return &s, nil
		}
	}
	return nil, entity.ErrNotFound
}

func (r *SaleRepository) UpdateStatusByOrderID(ctx context.Context, orderID string, status entity.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, sale := range r.sales {
		if sale.OrderID == orderID {
			sale.Status = status
			sale.UpdatedAt = time.Now()
			r.sales[id] = sale
			return nil
		}
	}
	return entity.ErrNotFound
}
