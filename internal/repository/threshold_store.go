package repository

import (
	"context"
	"errors"

	"github.com/go-redis/redis/v8"

	"restopos/internal/entity"
	"restopos/internal/service"
)

const thresholdKey = "inventory:low-stock-threshold"

// ThresholdStore keeps the low-stock threshold in Redis so admin changes
// apply across the fleet without a restart. Reads fall back to the default
// when the key has never been set.
type ThresholdStore struct {
	rdb *redis.Client
}

func NewThresholdStore(rdb *redis.Client) *ThresholdStore {
	return &ThresholdStore{rdb: rdb}
}

// Verify interface compliance
var _ service.ThresholdStore = (*ThresholdStore)(nil)

func (s *ThresholdStore) Get(ctx context.Context) (int, error) {
	value, err := s.rdb.Get(ctx, thresholdKey).Int()
	if errors.Is(err, redis.Nil) {
		return entity.DefaultLowStockThreshold, nil
	}
	if err != nil {
		return 0, err
	}
	return value, nil
}

func (s *ThresholdStore) Set(ctx context.Context, value int) error {
	return s.rdb.Set(ctx, thresholdKey, value, 0).Err()
}
