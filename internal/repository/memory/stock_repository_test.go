package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"restopos/internal/entity"
)

func TestStockRepository_DeductIfAvailable(t *testing.T) {
	repo := NewStockRepository()
	err := repo.Upsert(context.Background(), &entity.StockItem{Name: "Noodles", Quantity: 5})
	if err != nil {
		t.Fatalf("Failed to seed: %v", err)
	}

	item, err := repo.DeductIfAvailable(context.Background(), "Noodles", 5)
	if err != nil {
		t.Fatalf("Deduct failed: %v", err)
	}
	if item.Quantity != 0 {
		t.Errorf("Expected quantity 0, got %d", item.Quantity)
	}

	if _, err := repo.DeductIfAvailable(context.Background(), "Noodles", 1); !errors.Is(err, entity.ErrNotFound) {
		t.Errorf("Expected ErrNotFound when short, got %v", err)
	}
}

func TestStockRepository_ConcurrentDeductionsNeverGoNegative(t *testing.T) {
	repo := NewStockRepository()
	err := repo.Upsert(context.Background(), &entity.StockItem{Name: "Noodles", Quantity: 50})
	if err != nil {
		t.Fatalf("Failed to seed: %v", err)
	}

	const attempts = 80
	var wg sync.WaitGroup
	failures := make(chan struct{}, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.DeductIfAvailable(context.Background(), "Noodles", 1); err != nil {
				failures <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(failures)

	failed := 0
	for range failures {
		failed++
	}
	if failed != attempts-50 {
		t.Errorf("Expected exactly %d rejected deductions, got %d", attempts-50, failed)
	}

	item, _ := repo.GetByName(context.Background(), "Noodles")
	if item.Quantity != 0 {
		t.Errorf("Expected quantity 0, got %d", item.Quantity)
	}
	if item.Quantity < 0 {
		t.Error("Quantity must never go negative")
	}
}
