package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"restopos/internal/entity"
)

// sequenceRetries bounds how many sequential candidates a commit tries before
// falling back to a timestamp-derived sequence number.
const sequenceRetries = 5

// OrderService validates carts, commits them against the shared stock pool
// and drives the per-channel status lifecycle. One routine serves both
// channels; the channel tag selects the status vocabulary.
type OrderService struct {
	orderRepo OrderRepository
	saleRepo  SaleRepository
	resolver  *MenuResolver
	stock     *StockService
	notifier  Notifier
}

func NewOrderService(orderRepo OrderRepository, saleRepo SaleRepository, resolver *MenuResolver, stock *StockService, notifier Notifier) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		saleRepo:  saleRepo,
		resolver:  resolver,
		stock:     stock,
		notifier:  notifier,
	}
}

// Validate checks a cart against the menu and current stock without mutating
// anything. There is no reservation: callers must commit promptly, and commit
// re-runs the same availability checks inside its deduction loop.
func (s *OrderService) Validate(ctx context.Context, cart *entity.Cart) error {
	if len(cart.Items) == 0 {
		return entity.Validationf("cart has no items")
	}

	for _, line := range cart.Items {
		if line.Quantity < 1 {
			return entity.Validationf("menu item %q: quantity must be a positive integer", line.MenuItemID)
		}

		resolved, err := s.resolver.Resolve(ctx, line)
		if err != nil {
			return err
		}

		for _, addOn := range resolved.AddOns {
			if !addOn.Item.IsAddOn() {
				return entity.Validationf("menu item %q is not in the %q category", addOn.Item.Name, entity.CategoryAddOns)
			}
		}

		// Removing more than the declared per-unit quantity is a client
		// error; removing an undeclared ingredient is a deliberate no-op.
		for _, removal := range line.RemovedIngredients {
			declared := resolved.Item.DeclaredQuantity(removal.IngredientName)
			if declared > 0 && removal.Quantity > declared {
				return entity.Validationf("cannot remove %d of %q: item declares only %d per unit",
					removal.Quantity, removal.IngredientName, declared)
			}
		}

		for _, sl := range resolved.StockLines {
			stockItem, err := s.stock.GetItem(ctx, sl.Name)
			if errors.Is(err, entity.ErrNotFound) {
				return &entity.UnknownIngredientError{Item: sl.Name}
			}
			if err != nil {
				return err
			}
			if stockItem.Quantity <= 0 || stockItem.Quantity < sl.Amount {
				return &entity.InsufficientStockError{Item: sl.Name, Available: stockItem.Quantity, Required: sl.Amount}
			}
		}
	}

	return nil
}

// Commit turns a validated cart into a persisted order: it deducts every
// stock line in cart order, computes the total, persists the order under a
// unique sequence id shared by both channels, then mirrors a Sale record and
// emits notifications best-effort.
//
// Deductions are per-document atomic but not transactional across items: a
// failure partway leaves prior deductions applied. That partial-commit gap is
// inherited behavior and is logged, not rolled back.
func (s *OrderService) Commit(ctx context.Context, cart *entity.Cart, channel entity.Channel) (*entity.Order, error) {
	if err := s.Validate(ctx, cart); err != nil {
		return nil, err
	}

	now := time.Now()
	order := &entity.Order{
		ID:            uuid.NewString(),
		Channel:       channel,
		PaymentMethod: cart.PaymentMethod,
		ServiceType:   cart.ServiceType,
		Notes:         cart.Notes,
		CustomerRef:   cart.CustomerRef,
		Status:        entity.StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	var crossings []*DeductionResult
	total := decimal.Zero
	applied := 0

	for _, line := range cart.Items {
		resolved, err := s.resolver.Resolve(ctx, line)
		if err != nil {
			return nil, err
		}

		for _, sl := range resolved.StockLines {
			result, err := s.stock.Deduct(ctx, sl.Name, sl.Amount)
			if err != nil {
				if applied > 0 {
					logger.Warn().Err(err).Msgf("Order commit aborted after partial deduction; %d prior stock lines remain applied", applied)
				}
				return nil, err
			}
			applied++
			if result.Crossed {
				crossings = append(crossings, result)
			}
		}

		orderLine := entity.OrderLine{
			MenuItemID:         resolved.Item.ID,
			Name:               resolved.Item.Name,
			Quantity:           line.Quantity,
			UnitPrice:          resolved.Item.Price,
			RemovedIngredients: line.RemovedIngredients,
		}

		// Line total = (unit price + add-on prices) * quantity.
		unit := decimal.NewFromFloat(resolved.Item.Price)
		for _, addOn := range resolved.AddOns {
			orderLine.SelectedAddOns = append(orderLine.SelectedAddOns, entity.AddOnSelection{
				MenuItemID: addOn.Item.ID,
				Name:       addOn.Item.Name,
				Quantity:   addOn.Quantity,
				UnitPrice:  addOn.Item.Price,
			})
			unit = unit.Add(decimal.NewFromFloat(addOn.Item.Price).Mul(decimal.NewFromInt(int64(addOn.Quantity))))
		}
		total = total.Add(unit.Mul(decimal.NewFromInt(int64(line.Quantity))))

		order.Items = append(order.Items, orderLine)
	}

	if cart.ServiceType == entity.ServiceTypeDelivery {
		total = total.Add(decimal.NewFromFloat(entity.DeliveryFee))
	}
	order.Total, _ = total.Float64()

	if err := s.persistWithSequence(ctx, order); err != nil {
		logger.Error().Err(err).Msg("Error persisting order")
		return nil, err
	}

	s.mirrorSale(ctx, order)

	for _, crossing := range crossings {
		s.emit(ctx, stockNotification(crossing))
	}
	s.emit(ctx, orderNotification(order, "order.created",
		fmt.Sprintf("New %s order #%s", order.Channel, order.SequenceID),
		fmt.Sprintf("Order #%s received for %.2f", order.SequenceID, order.Total),
		entity.PriorityMedium))

	return order, nil
}

// persistWithSequence resolves the next free sequence number across both
// order collections and inserts the order under it. Collisions from racing
// commits retry with the next candidate up to sequenceRetries, then fall back
// to a timestamp-derived number; the fallback is logged, never surfaced.
func (s *OrderService) persistWithSequence(ctx context.Context, order *entity.Order) error {
	max, err := s.orderRepo.MaxSequence(ctx)
	if err != nil {
		return err
	}

	candidate := max + 1
	for attempt := 0; attempt < sequenceRetries; attempt++ {
		if exists, err := s.orderRepo.SequenceExists(ctx, candidate); err == nil && exists {
			candidate++
			continue
		}

		order.SequenceNum = candidate
		order.SequenceID = formatSequence(candidate)
		err := s.orderRepo.Create(ctx, order)
		if errors.Is(err, entity.ErrDuplicateSequence) {
			candidate++
			continue
		}
		return err
	}

	fallback := int(time.Now().UnixNano() % 100000000)
	logger.Warn().Msgf("Sequence collision retries exhausted, falling back to timestamp-derived id %d", fallback)
	order.SequenceNum = fallback
	order.SequenceID = formatSequence(fallback)
	return s.orderRepo.Create(ctx, order)
}

// formatSequence renders the human-facing order number, zero-padded to four
// digits.
func formatSequence(seq int) string {
	return fmt.Sprintf("%04d", seq)
}

// UpdateStatus moves an order to a new status in its channel's vocabulary.
// Cancellation is the only guarded transition; any other known status is
// accepted as-is. Every transition syncs the mirrored Sale and emits a
// notification, both best-effort.
func (s *OrderService) UpdateStatus(ctx context.Context, channel entity.Channel, orderID string, status entity.OrderStatus) (*entity.Order, error) {
	if !channel.Knows(status) {
		return nil, entity.Validationf("unknown status %q for %s orders", status, channel)
	}
	if status == entity.StatusCancelled {
		return s.Cancel(ctx, channel, orderID)
	}

	order, err := s.orderRepo.GetByID(ctx, channel, orderID)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.UpdateStatus(ctx, channel, orderID, status); err != nil {
		return nil, err
	}
	order.Status = status
	order.UpdatedAt = time.Now()

	// A POS order reaching ready must have its Sale record; create it if the
	// commit-time mirror did not stick.
	if channel == entity.ChannelPOS && status == entity.StatusReady {
		if _, err := s.saleRepo.GetByOrderID(ctx, orderID); errors.Is(err, entity.ErrNotFound) {
			s.mirrorSale(ctx, order)
		}
	}

	s.syncSale(ctx, order)
	s.emit(ctx, orderNotification(order, "order.status",
		fmt.Sprintf("Order #%s %s", order.SequenceID, status),
		fmt.Sprintf("Order #%s moved to %s", order.SequenceID, status),
		entity.PriorityLow))

	return order, nil
}

// Cancel rejects the order and restores stock. Cancellation is valid only
// from the initial pending state; the credits are the exact inverse of the
// commit-time deductions, applied in the same order and, like them, not
// transactional: a credit failure is logged and the rest continue.
func (s *OrderService) Cancel(ctx context.Context, channel entity.Channel, orderID string) (*entity.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, channel, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != entity.StatusPending {
		return nil, entity.ErrInvalidTransition
	}

	for _, line := range order.Items {
		resolved, err := s.resolver.Resolve(ctx, orderLineToCartItem(line))
		if err != nil {
			logger.Error().Err(err).Msgf("Error re-expanding order line %q during cancellation, stock not restored for it", line.Name)
			continue
		}
		for _, sl := range resolved.StockLines {
			if _, err := s.stock.Credit(ctx, sl.Name, sl.Amount); err != nil {
				logger.Error().Err(err).Msgf("Error crediting %d back to %q during cancellation", sl.Amount, sl.Name)
			}
		}
	}

	if err := s.orderRepo.UpdateStatus(ctx, channel, orderID, entity.StatusCancelled); err != nil {
		return nil, err
	}
	order.Status = entity.StatusCancelled
	order.UpdatedAt = time.Now()

	s.syncSale(ctx, order)
	s.emit(ctx, orderNotification(order, "order.status",
		fmt.Sprintf("Order #%s cancelled", order.SequenceID),
		fmt.Sprintf("Order #%s was cancelled and its stock restored", order.SequenceID),
		entity.PriorityMedium))

	return order, nil
}

// GetOrder returns one order from the channel's collection.
func (s *OrderService) GetOrder(ctx context.Context, channel entity.Channel, orderID string) (*entity.Order, error) {
	return s.orderRepo.GetByID(ctx, channel, orderID)
}

func orderLineToCartItem(line entity.OrderLine) entity.CartItem {
	return entity.CartItem{
		MenuItemID:         line.MenuItemID,
		Quantity:           line.Quantity,
		SelectedAddOns:     line.SelectedAddOns,
		RemovedIngredients: line.RemovedIngredients,
	}
}

// mirrorSale writes the denormalized reporting record. The Sale is never
// authoritative: failure here must not fail the order.
func (s *OrderService) mirrorSale(ctx context.Context, order *entity.Order) {
	sale := &entity.Sale{
		ID:            uuid.NewString(),
		OrderID:       order.ID,
		SequenceID:    order.SequenceID,
		Channel:       order.Channel,
		Items:         order.Items,
		Total:         order.Total,
		Status:        order.Status,
		PaymentMethod: order.PaymentMethod,
		CreatedAt:     order.CreatedAt,
		UpdatedAt:     order.UpdatedAt,
	}
	if err := s.saleRepo.Create(ctx, sale); err != nil {
		logger.Error().Err(err).Msgf("Error mirroring sale for order #%s", order.SequenceID)
	}
}

// syncSale keeps the Sale's status mirror in step with the order.
func (s *OrderService) syncSale(ctx context.Context, order *entity.Order) {
	err := s.saleRepo.UpdateStatusByOrderID(ctx, order.ID, order.Status)
	if err != nil && !errors.Is(err, entity.ErrNotFound) {
		logger.Error().Err(err).Msgf("Error syncing sale status for order #%s", order.SequenceID)
	}
}

// emit requests a notification, swallowing failures: notifications are
// observational and must never fail a commit or a status transition.
func (s *OrderService) emit(ctx context.Context, n *entity.Notification) {
	if _, err := s.notifier.Emit(ctx, n); err != nil {
		logger.Error().Err(err).Msgf("Error emitting %s notification", n.Category)
	}
}

// stockNotification describes a threshold crossing caused by a deduction.
func stockNotification(result *DeductionResult) *entity.Notification {
	category := "stock.low"
	priority := entity.PriorityHigh
	title := fmt.Sprintf("%s is running low", result.Item)
	message := fmt.Sprintf("%s is down to %d", result.Item, result.Quantity)

	if result.Status == entity.StockOutOfStock {
		category = "stock.out"
		priority = entity.PriorityUrgent
		title = fmt.Sprintf("%s is out of stock", result.Item)
		message = fmt.Sprintf("%s has run out", result.Item)
	}

	return &entity.Notification{
		Category:         category,
		Title:            title,
		Message:          message,
		TargetRoles:      []string{"admin", "manager"},
		Priority:         priority,
		RelatedStockItem: result.Item,
	}
}

func orderNotification(order *entity.Order, category, title, message string, priority entity.Priority) *entity.Notification {
	return &entity.Notification{
		Category:       category,
		Title:          title,
		Message:        message,
		TargetRoles:    []string{"admin", "cashier", "kitchen"},
		Priority:       priority,
		RelatedOrderID: order.ID,
	}
}
