package service

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/rs/zerolog"

	"restopos/internal/entity"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// StockService owns stock counts and their classification against the
// configurable low-stock threshold.
type StockService struct {
	stockRepo  StockRepository
	thresholds ThresholdStore
}

func NewStockService(stockRepo StockRepository, thresholds ThresholdStore) *StockService {
	return &StockService{
		stockRepo:  stockRepo,
		thresholds: thresholds,
	}
}

// Classify maps a quantity to a stock status. Pure and total: exactly one
// branch fires for any quantity and positive threshold.
func Classify(quantity, threshold int) entity.StockStatus {
	switch {
	case quantity <= 0:
		return entity.StockOutOfStock
	case quantity <= threshold:
		return entity.StockLowStock
	default:
		return entity.StockInStock
	}
}

// Threshold fetches the current low-stock threshold. It is read fresh per
// operation, never cached across requests, so admin changes take effect live.
func (s *StockService) Threshold(ctx context.Context) int {
	value, err := s.thresholds.Get(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error reading low-stock threshold, using default")
		return entity.DefaultLowStockThreshold
	}
	return value
}

// SetThreshold validates and stores a new threshold, then reclassifies every
// stock item against it. The bulk pass overwrites stored status regardless of
// the manual-override flag; only per-item updates honor the flag.
func (s *StockService) SetThreshold(ctx context.Context, value int) error {
	if value < 1 {
		return entity.ErrInvalidThreshold
	}

	if err := s.thresholds.Set(ctx, value); err != nil {
		logger.Error().Err(err).Msg("Error storing low-stock threshold")
		return err
	}

	if err := s.stockRepo.ReclassifyAll(ctx, value); err != nil {
		logger.Error().Err(err).Msgf("Error reclassifying stock for threshold %d", value)
		return err
	}

	return nil
}

// DeductionResult reports the outcome of one stock deduction. Crossed is true
// when the deduction moved the item into low or out-of-stock territory.
type DeductionResult struct {
	Item     string
	Quantity int
	Status   entity.StockStatus
	Crossed  bool
}

// Deduct removes amount units of a stock item. The decrement is conditional
// and atomic at the document level: it applies only when at least amount is on
// hand, so concurrent deductions cannot drive the count negative.
func (s *StockService) Deduct(ctx context.Context, name string, amount int) (*DeductionResult, error) {
	threshold := s.Threshold(ctx)

	updated, err := s.stockRepo.DeductIfAvailable(ctx, name, amount)
	if err != nil {
		if !errors.Is(err, entity.ErrNotFound) {
			return nil, err
		}
		// No document matched: either the item is unknown or it is short.
		current, getErr := s.stockRepo.GetByName(ctx, name)
		if errors.Is(getErr, entity.ErrNotFound) {
			return nil, &entity.UnknownIngredientError{Item: name}
		}
		if getErr != nil {
			return nil, getErr
		}
		return nil, &entity.InsufficientStockError{Item: name, Available: current.Quantity, Required: amount}
	}

	previous := Classify(updated.Quantity+amount, threshold)
	status := Classify(updated.Quantity, threshold)
	s.storeStatus(ctx, updated, status)

	return &DeductionResult{
		Item:     name,
		Quantity: updated.Quantity,
		Status:   status,
		Crossed:  status != previous && status != entity.StockInStock,
	}, nil
}

// Credit adds quantity back to a stock item, used on cancellation. It no-ops
// with a log line when the item no longer exists.
func (s *StockService) Credit(ctx context.Context, name string, amount int) (int, error) {
	updated, err := s.stockRepo.Credit(ctx, name, amount)
	if errors.Is(err, entity.ErrNotFound) {
		logger.Warn().Msgf("Credit of %d skipped: no stock item %q", amount, name)
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	status := Classify(updated.Quantity, s.Threshold(ctx))
	s.storeStatus(ctx, updated, status)

	return updated.Quantity, nil
}

// storeStatus persists a recomputed status. Per-item updates respect the
// manual-override flag; items pinned by an admin keep their pinned status.
func (s *StockService) storeStatus(ctx context.Context, item *entity.StockItem, status entity.StockStatus) {
	if item.StatusOverride || item.Status == status {
		return
	}
	if err := s.stockRepo.SetStatus(ctx, item.Name, status); err != nil {
		logger.Error().Err(err).Msgf("Error storing status %q for stock item %q", status, item.Name)
	}
}

// GetItem returns one stock item by name.
func (s *StockService) GetItem(ctx context.Context, name string) (*entity.StockItem, error) {
	return s.stockRepo.GetByName(ctx, name)
}

// ListItems returns every stock item.
func (s *StockService) ListItems(ctx context.Context) ([]entity.StockItem, error) {
	return s.stockRepo.List(ctx)
}

// UpsertItem applies a direct admin edit. A status differing from what the
// threshold would produce marks the item as manually overridden; an increased
// quantity refreshes the restock timestamp.
func (s *StockService) UpsertItem(ctx context.Context, item *entity.StockItem) (*entity.StockItem, error) {
	threshold := s.Threshold(ctx)
	computed := Classify(item.Quantity, threshold)

	if item.Status == "" {
		item.Status = computed
		item.StatusOverride = false
	} else {
		item.StatusOverride = item.Status != computed
	}

	now := time.Now()
	item.UpdatedAt = now

	existing, err := s.stockRepo.GetByName(ctx, item.Name)
	switch {
	case errors.Is(err, entity.ErrNotFound):
		item.LastRestocked = now
	case err != nil:
		return nil, err
	default:
		item.LastRestocked = existing.LastRestocked
		if item.Quantity > existing.Quantity {
			item.LastRestocked = now
		}
	}

	if err := s.stockRepo.Upsert(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}
