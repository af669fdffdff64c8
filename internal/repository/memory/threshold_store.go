package memory

import (
	"context"
	"sync"

	"restopos/internal/entity"
	"restopos/internal/service"
)

type ThresholdStore struct {
	mu    sync.RWMutex
	value int
	set   bool
}

func NewThresholdStore() *ThresholdStore {
	return &ThresholdStore{}
}

// Verify interface compliance
var _ service.ThresholdStore = (*ThresholdStore)(nil)

func (s *ThresholdStore) Get(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.set {
		return entity.DefaultLowStockThreshold, nil
	}
	return s.value, nil
}

func (s *ThresholdStore) Set(ctx context.Context, value int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.value = value
	s.set = true
	return nil
}
