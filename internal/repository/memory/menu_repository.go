package memory

import (
	"context"
	"sort"
	"sync"

	"restopos/internal/entity"
	"restopos/internal/service"
)

type MenuRepository struct {
	mu    sync.RWMutex
	items map[string]entity.MenuItem
}

func NewMenuRepository() *MenuRepository {
	return &MenuRepository{items: make(map[string]entity.MenuItem)}
}

// Verify interface compliance
var _ service.MenuRepository = (*MenuRepository)(nil)

func (r *MenuRepository) GetByID(ctx context.Context, id string) (*entity.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	return &item, nil
}

func (r *MenuRepository) List(ctx context.Context) ([]entity.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]entity.MenuItem, 0, len(r.items))
	for _, item := range r.items {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })

	return items, nil
}

func (r *MenuRepository) Upsert(ctx context.Context, item *entity.MenuItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = *item
	return nil
}
