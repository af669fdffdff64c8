package service_test

import (
	"context"
	"errors"
	"testing"

	"restopos/internal/entity"
	"restopos/internal/repository/memory"
	"restopos/internal/service"
)

func newStockService(t *testing.T) (*service.StockService, *memory.StockRepository, *memory.ThresholdStore) {
	t.Helper()
	stockRepo := memory.NewStockRepository()
	thresholds := memory.NewThresholdStore()
	return service.NewStockService(stockRepo, thresholds), stockRepo, thresholds
}

func seedStock(t *testing.T, repo *memory.StockRepository, name string, quantity int) {
	t.Helper()
	err := repo.Upsert(context.Background(), &entity.StockItem{
		Name:     name,
		Quantity: quantity,
		Unit:     "pcs",
		Status:   service.Classify(quantity, entity.DefaultLowStockThreshold),
	})
	if err != nil {
		t.Fatalf("Failed to seed stock item %s: %v", name, err)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		quantity  int
		threshold int
		want      entity.StockStatus
	}{
		{"negative_is_out", -3, 10, entity.StockOutOfStock},
		{"zero_is_out", 0, 10, entity.StockOutOfStock},
		{"one_is_low", 1, 10, entity.StockLowStock},
		{"at_threshold_is_low", 10, 10, entity.StockLowStock},
		{"above_threshold_is_in", 11, 10, entity.StockInStock},
		{"threshold_one_boundary", 1, 1, entity.StockLowStock},
		{"threshold_one_above", 2, 1, entity.StockInStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := service.Classify(tt.quantity, tt.threshold); got != tt.want {
				t.Errorf("Classify(%d, %d) = %q, want %q", tt.quantity, tt.threshold, got, tt.want)
			}
		})
	}
}

func TestClassify_ExactlyOneBranch(t *testing.T) {
	// Totality: for any quantity and positive threshold, exactly one
	// classification fires.
	for q := -5; q <= 25; q++ {
		for th := 1; th <= 15; th++ {
			got := service.Classify(q, th)
			var want entity.StockStatus
			switch {
			case q <= 0:
				want = entity.StockOutOfStock
			case q <= th:
				want = entity.StockLowStock
			default:
				want = entity.StockInStock
			}
			if got != want {
				t.Fatalf("Classify(%d, %d) = %q, want %q", q, th, got, want)
			}
		}
	}
}

func TestDeduct_ExactAvailableSucceeds(t *testing.T) {
	svc, repo, _ := newStockService(t)
	seedStock(t, repo, "Noodles", 5)

	result, err := svc.Deduct(context.Background(), "Noodles", 5)
	if err != nil {
		t.Fatalf("Deduct failed: %v", err)
	}
	if result.Quantity != 0 {
		t.Errorf("Expected quantity 0, got %d", result.Quantity)
	}
	if result.Status != entity.StockOutOfStock {
		t.Errorf("Expected status %q, got %q", entity.StockOutOfStock, result.Status)
	}
	if !result.Crossed {
		t.Error("Expected the deduction to report a threshold crossing")
	}

	item, err := repo.GetByName(context.Background(), "Noodles")
	if err != nil {
		t.Fatalf("Failed to read back stock item: %v", err)
	}
	if item.Status != entity.StockOutOfStock {
		t.Errorf("Expected persisted status %q, got %q", entity.StockOutOfStock, item.Status)
	}
}

func TestDeduct_OneOverAvailableFails(t *testing.T) {
	svc, repo, _ := newStockService(t)
	seedStock(t, repo, "Noodles", 5)

	_, err := svc.Deduct(context.Background(), "Noodles", 6)

	var insufficient *entity.InsufficientStockError
	if !errors.As(err, &insufficient) {
		t.Fatalf("Expected InsufficientStockError, got %v", err)
	}
	if insufficient.Item != "Noodles" || insufficient.Available != 5 || insufficient.Required != 6 {
		t.Errorf("Expected shortfall Noodles 5/6, got %+v", insufficient)
	}

	item, _ := repo.GetByName(context.Background(), "Noodles")
	if item.Quantity != 5 {
		t.Errorf("Expected quantity to remain 5, got %d", item.Quantity)
	}
}

func TestDeduct_UnknownItem(t *testing.T) {
	svc, _, _ := newStockService(t)

	_, err := svc.Deduct(context.Background(), "Phantom", 1)

	var unknown *entity.UnknownIngredientError
	if !errors.As(err, &unknown) {
		t.Fatalf("Expected UnknownIngredientError, got %v", err)
	}
	if unknown.Item != "Phantom" {
		t.Errorf("Expected item Phantom, got %q", unknown.Item)
	}
}

func TestDeduct_RespectsManualOverride(t *testing.T) {
	svc, repo, _ := newStockService(t)
	err := repo.Upsert(context.Background(), &entity.StockItem{
		Name:           "Chili Oil",
		Quantity:       50,
		Status:         entity.StockOutOfStock, // pinned by an admin
		StatusOverride: true,
	})
	if err != nil {
		t.Fatalf("Failed to seed stock item: %v", err)
	}

	if _, err := svc.Deduct(context.Background(), "Chili Oil", 1); err != nil {
		t.Fatalf("Deduct failed: %v", err)
	}

	item, _ := repo.GetByName(context.Background(), "Chili Oil")
	if item.Status != entity.StockOutOfStock {
		t.Errorf("Expected pinned status to survive deduction, got %q", item.Status)
	}
}

func TestCredit_MissingItemIsNoop(t *testing.T) {
	svc, _, _ := newStockService(t)

	quantity, err := svc.Credit(context.Background(), "Gone", 3)
	if err != nil {
		t.Fatalf("Credit of a missing item must not fail, got %v", err)
	}
	if quantity != 0 {
		t.Errorf("Expected zero quantity for a missing item, got %d", quantity)
	}
}

func TestCredit_RecomputesStatus(t *testing.T) {
	svc, repo, _ := newStockService(t)
	seedStock(t, repo, "Noodles", 0)

	quantity, err := svc.Credit(context.Background(), "Noodles", 20)
	if err != nil {
		t.Fatalf("Credit failed: %v", err)
	}
	if quantity != 20 {
		t.Errorf("Expected quantity 20, got %d", quantity)
	}

	item, _ := repo.GetByName(context.Background(), "Noodles")
	if item.Status != entity.StockInStock {
		t.Errorf("Expected status %q, got %q", entity.StockInStock, item.Status)
	}
}

func TestSetThreshold_RejectsInvalidWithoutMutating(t *testing.T) {
	svc, _, thresholds := newStockService(t)

	for _, bad := range []int{0, -1, -100} {
		if err := svc.SetThreshold(context.Background(), bad); !errors.Is(err, entity.ErrInvalidThreshold) {
			t.Errorf("SetThreshold(%d): expected ErrInvalidThreshold, got %v", bad, err)
		}
	}

	value, _ := thresholds.Get(context.Background())
	if value != entity.DefaultLowStockThreshold {
		t.Errorf("Expected stored threshold to stay at default %d, got %d", entity.DefaultLowStockThreshold, value)
	}
}

func TestSetThreshold_ReclassifiesAllStock(t *testing.T) {
	svc, repo, _ := newStockService(t)
	seedStock(t, repo, "Noodles", 0)
	seedStock(t, repo, "Chashu", 3)
	seedStock(t, repo, "Nori", 8)

	if err := svc.SetThreshold(context.Background(), 5); err != nil {
		t.Fatalf("SetThreshold failed: %v", err)
	}

	expect := map[string]entity.StockStatus{
		"Noodles": entity.StockOutOfStock,
		"Chashu":  entity.StockLowStock,
		"Nori":    entity.StockInStock,
	}
	for name, want := range expect {
		item, _ := repo.GetByName(context.Background(), name)
		if item.Status != want {
			t.Errorf("%s: expected status %q, got %q", name, want, item.Status)
		}
	}
}

func TestSetThreshold_Idempotent(t *testing.T) {
	svc, repo, _ := newStockService(t)
	seedStock(t, repo, "Noodles", 4)
	seedStock(t, repo, "Nori", 12)

	if err := svc.SetThreshold(context.Background(), 5); err != nil {
		t.Fatalf("SetThreshold failed: %v", err)
	}
	first, _ := repo.List(context.Background())

	if err := svc.SetThreshold(context.Background(), 5); err != nil {
		t.Fatalf("Second SetThreshold failed: %v", err)
	}
	second, _ := repo.List(context.Background())

	for i := range first {
		if first[i].Status != second[i].Status {
			t.Errorf("%s: status changed between identical reclassifications: %q then %q",
				first[i].Name, first[i].Status, second[i].Status)
		}
	}
}

func TestSetThreshold_BulkPassIgnoresOverride(t *testing.T) {
	svc, repo, _ := newStockService(t)
	err := repo.Upsert(context.Background(), &entity.StockItem{
		Name:           "Chili Oil",
		Quantity:       50,
		Status:         entity.StockOutOfStock,
		StatusOverride: true,
	})
	if err != nil {
		t.Fatalf("Failed to seed stock item: %v", err)
	}

	if err := svc.SetThreshold(context.Background(), 5); err != nil {
		t.Fatalf("SetThreshold failed: %v", err)
	}

	// The bulk reclassification overwrites even manually pinned statuses;
	// only per-item recomputes honor the override flag.
	item, _ := repo.GetByName(context.Background(), "Chili Oil")
	if item.Status != entity.StockInStock {
		t.Errorf("Expected bulk pass to overwrite pinned status, got %q", item.Status)
	}
}
