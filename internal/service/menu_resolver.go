package service

import (
	"context"
	"errors"

	"restopos/internal/entity"
)

// MenuResolver flattens order lines into the stock lines they consume: the
// menu item's own base stock record when one exists, its declared ingredients
// net of removals, and one level of add-ons.
type MenuResolver struct {
	menuRepo  MenuRepository
	stockRepo StockRepository
}

func NewMenuResolver(menuRepo MenuRepository, stockRepo StockRepository) *MenuResolver {
	return &MenuResolver{
		menuRepo:  menuRepo,
		stockRepo: stockRepo,
	}
}

// ResolvedAddOn pairs a selected add-on with its menu record and effective
// multiplier (selection quantity, defaulting to 1).
type ResolvedAddOn struct {
	Item     *entity.MenuItem
	Quantity int
}

// ResolvedLine is one cart line expanded against the menu and stock catalog.
// StockLines preserves deduction order: base record, ingredients, then each
// add-on's base record and ingredients.
type ResolvedLine struct {
	Item       *entity.MenuItem
	Quantity   int
	AddOns     []ResolvedAddOn
	StockLines []entity.StockLine
}

// Resolve expands one cart line. Ingredients whose effective quantity is zero
// after removals are skipped entirely: no stock lookup, no deduction.
func (r *MenuResolver) Resolve(ctx context.Context, line entity.CartItem) (*ResolvedLine, error) {
	item, err := r.menuRepo.GetByID(ctx, line.MenuItemID)
	if errors.Is(err, entity.ErrNotFound) {
		return nil, entity.Validationf("unknown menu item %q", line.MenuItemID)
	}
	if err != nil {
		return nil, err
	}

	resolved := &ResolvedLine{Item: item, Quantity: line.Quantity}

	// Base stock record keyed by the item's own name. This is the fallback
	// path for simple items with no declared ingredients, and an independent
	// stock line when both exist.
	hasBase, err := r.hasStockRecord(ctx, item.Name)
	if err != nil {
		return nil, err
	}
	if hasBase {
		resolved.StockLines = append(resolved.StockLines, entity.StockLine{Name: item.Name, Amount: line.Quantity})
	}

	for _, ing := range item.Ingredients {
		effective := ing.Quantity - removedQuantity(line.RemovedIngredients, ing.InventoryItem)
		if effective <= 0 {
			continue
		}
		resolved.StockLines = append(resolved.StockLines, entity.StockLine{
			Name:   ing.InventoryItem,
			Amount: effective * line.Quantity,
		})
	}

	// Add-ons expand one level only: they carry no add-ons or removals of
	// their own.
	for _, sel := range line.SelectedAddOns {
		addOn, err := r.menuRepo.GetByID(ctx, sel.MenuItemID)
		if errors.Is(err, entity.ErrNotFound) {
			return nil, entity.Validationf("unknown add-on %q", sel.MenuItemID)
		}
		if err != nil {
			return nil, err
		}

		qty := sel.Quantity
		if qty < 1 {
			qty = 1
		}
		multiplier := qty * line.Quantity

		resolved.AddOns = append(resolved.AddOns, ResolvedAddOn{Item: addOn, Quantity: qty})

		hasBase, err := r.hasStockRecord(ctx, addOn.Name)
		if err != nil {
			return nil, err
		}
		if hasBase {
			resolved.StockLines = append(resolved.StockLines, entity.StockLine{Name: addOn.Name, Amount: multiplier})
		}

		for _, ing := range addOn.Ingredients {
			if ing.Quantity <= 0 {
				continue
			}
			resolved.StockLines = append(resolved.StockLines, entity.StockLine{
				Name:   ing.InventoryItem,
				Amount: ing.Quantity * multiplier,
			})
		}
	}

	return resolved, nil
}

func (r *MenuResolver) hasStockRecord(ctx context.Context, name string) (bool, error) {
	_, err := r.stockRepo.GetByName(ctx, name)
	if errors.Is(err, entity.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// removedQuantity looks up how much of an ingredient the customer removed.
// An ingredient not present in the overrides removes nothing.
func removedQuantity(overrides []entity.IngredientOverride, ingredientName string) int {
	for _, o := range overrides {
		if o.IngredientName == ingredientName {
			return o.Quantity
		}
	}
	return 0
}
